package env

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github/gaspayer/relay-service/internal/config"
)

// New prints the resolved service configuration, for debugging ENV wiring.
func New() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "Prints the config",
		Run: func(_ *cobra.Command, _ []string) {
			cfg := config.DefaultServiceConfigFromEnv()

			c, err := json.MarshalIndent(cfg, "", "  ")
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to marshal config")
			}

			fmt.Println(string(c))
		},
	}
}
