package cli

import (
	"github.com/spf13/cobra"

	"github.com/relabs-tech/hue_composer/internal/app"
)

// newDebugLightsCmd creates the debug-lights command.
func newDebugLightsCmd() *cobra.Command {
	var mock bool

	cmd := &cobra.Command{
		Use:   "debug-lights",
		Short: "Print the lights-to-music mapping table once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.RunDebugLights(mock)
		},
	}

	cmd.Flags().BoolVar(&mock, "mock", false, "use simulated lights and sensors")

	return cmd
}

// newDebugSensorsCmd creates the debug-sensors command.
func newDebugSensorsCmd() *cobra.Command {
	var mock bool

	cmd := &cobra.Command{
		Use:   "debug-sensors",
		Short: "Dump raw and parsed sensor data from the bridge",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.RunDebugSensors(mock)
		},
	}

	cmd.Flags().BoolVar(&mock, "mock", false, "use simulated lights and sensors")

	return cmd
}
