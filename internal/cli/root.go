// Package cli wires the cobra command tree for the hue_composer binary.
package cli

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"

	"github.com/relabs-tech/hue_composer/internal/config"
)

// DefaultConfigPath is where the binary looks for its config file when
// --config is not given. A missing file means compiled-in defaults.
const DefaultConfigPath = "composer_config.txt"

// NewRootCmd creates the root cobra command.
func NewRootCmd(version string) *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "hue_composer",
		Short: "Generative ambient music from Philips Hue lights and sensors",
		Long: `hue_composer turns the state of a Philips Hue installation into evolving
ambient music: lamp colors become drone voices, motion sensors play melodies
and the room's temperature and light level shape tempo and timbre.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.InitGlobal(configPath); err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if logFile := config.Get().LogFile; logFile != "" {
				log.SetOutput(&lumberjack.Logger{
					Filename:   logFile,
					MaxSize:    10, // MB
					MaxBackups: 3,
					MaxAge:     14, // days
				})
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", DefaultConfigPath,
		"path to the KEY=VALUE config file")

	// Add subcommands
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newSetupCmd())
	rootCmd.AddCommand(newRenderCmd())
	rootCmd.AddCommand(newDebugLightsCmd())
	rootCmd.AddCommand(newDebugSensorsCmd())

	return rootCmd
}
