package cli

import (
	"github.com/spf13/cobra"

	"github.com/relabs-tech/hue_composer/internal/app"
)

// newRunCmd creates the run command, the main entry point: poll the bridge,
// make music, publish state.
func newRunCmd() *cobra.Command {
	var (
		mock     bool
		quiet    bool
		bridgeIP string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the ambient music generator",
		Long: `Start the generator: pair with a bridge if needed, open the audio device
and turn light and sensor state into music until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.RunGenerator(mock, quiet, bridgeIP)
		},
	}

	cmd.Flags().BoolVar(&mock, "mock", false, "use simulated lights and sensors (no bridge needed)")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "don't print the live status dashboard")
	cmd.Flags().StringVar(&bridgeIP, "bridge", "", "bridge IP address (skips discovery)")

	return cmd
}
