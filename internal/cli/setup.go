package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/relabs-tech/hue_composer/internal/app"
	"github.com/relabs-tech/hue_composer/internal/config"
)

// newSetupCmd creates the setup command: pair with a bridge without starting
// the generator. Running it when already paired is a no-op.
func newSetupCmd() *cobra.Command {
	var bridgeIP string

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Pair with a Hue bridge and save credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Get()
			if bridgeIP == "" {
				bridgeIP = cfg.HueBridgeIP
			}
			creds, err := app.EnsureEnvironment(context.Background(), cfg.HueCredentialsFile, bridgeIP, nil)
			if err != nil {
				return err
			}
			fmt.Printf("paired with bridge %s\n", creds.BridgeIP)
			return nil
		},
	}

	cmd.Flags().StringVar(&bridgeIP, "bridge", "", "bridge IP address (skips discovery)")

	return cmd
}
