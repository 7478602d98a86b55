// Package cmd wires the command-line interface.
package cmd

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nameclaim/nameclaim/internal/config"
	"github.com/nameclaim/nameclaim/internal/observability"
	"github.com/nameclaim/nameclaim/internal/registry"
)

var (
	cfgDir   string
	logLevel string

	versionInfo struct {
		Version   string
		Commit    string
		BuildDate string
	}
)

// SetVersionInfo is called by main to inject build metadata.
func SetVersionInfo(version, commit, buildDate string) {
	versionInfo.Version = version
	versionInfo.Commit = commit
	versionInfo.BuildDate = buildDate
}

// rootCmd launches the interactive session when invoked without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "nameclaim",
	Short: "Check and claim project names across package registries",
	Long: `nameclaim checks whether a name is free on npm, crates.io, PyPI,
Homebrew, Flatpak, Debian, GitHub and as a .dev domain, and can reserve
available names by creating placeholder GitHub repositories.

Run without arguments for the interactive session, or use the subcommands
for scripted checks.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd, args)
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgDir, "config-dir", "", "config directory (default: the user config dir)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
}

// loadConfig opens the store and reads the effective configuration.
func loadConfig() (*config.Store, *config.Config, error) {
	store, err := config.NewStore(cfgDir)
	if err != nil {
		return nil, nil, err
	}
	cfg, err := store.Load()
	if err != nil {
		return nil, nil, err
	}
	return store, cfg, nil
}

func effectiveLogLevel(cfg *config.Config) string {
	if logLevel != "" {
		return logLevel
	}
	return cfg.Logging.Level
}

func newCLILogger(cfg *config.Config) (*zap.Logger, error) {
	logger, err := observability.NewCLILogger(effectiveLogLevel(cfg))
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return logger, nil
}

// newProbeSet builds the probe set from the configuration. The GitHub token
// is resolved here so the probe can report on the caller's own namespace.
func newProbeSet(cfg *config.Config) *registry.Set {
	return registry.NewSet(registry.Options{
		Client:      &http.Client{Timeout: cfg.HTTPTimeout},
		GitHubToken: cfg.Token(),
	})
}

func newDomainChecker(cfg *config.Config) *registry.DomainChecker {
	return &registry.DomainChecker{Timeout: cfg.HTTPTimeout}
}
