package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nameclaim/nameclaim/internal/core"
	"github.com/nameclaim/nameclaim/internal/publish"
)

var publishCmd = &cobra.Command{
	Use:   "publish <registry>",
	Short: "Run the registry's publish tooling to claim a reserved name",
	Long: `Run the ecosystem's own publisher (npm, cargo, twine) in the current
directory. A reserved repository only parks a name; publishing is what
actually claims it on the index.`,
	Args: cobra.ExactArgs(1),
	RunE: runPublish,
}

func init() {
	rootCmd.AddCommand(publishCmd)

	publishCmd.Flags().String("dir", ".", "project directory to publish from")
}

func runPublish(cmd *cobra.Command, args []string) error {
	kind, ok := core.ParseKind(strings.TrimSpace(args[0]))
	if !ok {
		return fmt.Errorf("unknown registry %q", args[0])
	}
	if !publish.Supported(kind) {
		return fmt.Errorf("%s has no publish command; see the registry's submission process", kind.Label())
	}

	dir, err := cmd.Flags().GetString("dir")
	if err != nil {
		return err
	}

	_, cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newCLILogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync() // nolint:errcheck // stderr sync is best-effort

	runner := &publish.Runner{
		Dir:    dir,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Logger: logger,
	}
	return runner.Publish(cmd.Context(), kind)
}
