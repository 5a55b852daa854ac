package config

import "fmt"

// ModuleName is the service identifier used in CLI output and logs.
const ModuleName = "gas-relay-service"

// Build arguments, overridden via -ldflags at build time.
var (
	Commit    = "unknown"
	BuildDate = "unknown"
)

// GetFormattedBuildArgs returns "<module> @ <commit> (<build date>)".
func GetFormattedBuildArgs() string {
	return fmt.Sprintf("%v @ %v (%v)", ModuleName, Commit, BuildDate)
}
