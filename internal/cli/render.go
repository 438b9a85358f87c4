package cli

import (
	"github.com/spf13/cobra"

	"github.com/relabs-tech/hue_composer/internal/app"
)

// newRenderCmd creates the render command: offline mock-driven WAV export.
func newRenderCmd() *cobra.Command {
	var (
		out     string
		seconds float64
		seed    int64
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render mock-driven ambient music to a WAV file",
		Long: `Render ambient music to a WAV file using the simulated bridge, without
an audio device or MQTT broker. Useful for testing and for generating
background tracks. A fixed --seed makes the output reproducible.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.RunRender(out, seconds, seed)
		},
	}

	cmd.Flags().StringVar(&out, "out", "ambient.wav", "output WAV file path")
	cmd.Flags().Float64Var(&seconds, "seconds", 60, "length of audio to render")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = time-based)")

	return cmd
}
