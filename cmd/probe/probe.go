package probe

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github/gaspayer/relay-service/internal/config"
	"github/gaspayer/relay-service/internal/util/command"
)

const probeTimeout = 5 * time.Second

// New groups the liveness and readiness probes used by container runtimes.
func New() *cobra.Command {
	return command.NewSubcommandGroup("probe",
		newLiveness(),
		newReadiness(),
	)
}

func newLiveness() *cobra.Command {
	return &cobra.Command{
		Use:   "liveness",
		Short: "Runs the liveness probe against the local server",
		Run: func(_ *cobra.Command, _ []string) {
			runProbe("/-/healthy")
		},
	}
}

func newReadiness() *cobra.Command {
	return &cobra.Command{
		Use:   "readiness",
		Short: "Runs the readiness probe against the local server",
		Run: func(_ *cobra.Command, _ []string) {
			runProbe("/-/ready")
		},
	}
}

func runProbe(path string) {
	cfg := config.DefaultServiceConfigFromEnv()

	url := fmt.Sprintf("http://localhost%s%s", cfg.Echo.ListenAddress, path)
	if cfg.Management.Secret != "" {
		url += "?mgmt-secret=" + cfg.Management.Secret
	}

	client := &http.Client{Timeout: probeTimeout}

	res, err := client.Get(url)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)
	fmt.Println(string(body))

	if res.StatusCode != http.StatusOK {
		os.Exit(1)
	}
}
