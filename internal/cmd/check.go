package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nameclaim/nameclaim/internal/core"
	"github.com/nameclaim/nameclaim/internal/output"
)

var checkCmd = &cobra.Command{
	Use:   "check <name>",
	Short: "Check name availability across registries",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringSlice("registries", nil, "registries to check (npm, crates, pypi, brew, flatpak, debian, dev_domain, github); default: configured selection")
	checkCmd.Flags().String("output", "table", "output format: table, json")
}

func runCheck(cmd *cobra.Command, args []string) error {
	name := strings.ToLower(strings.TrimSpace(args[0]))
	if name == "" {
		return fmt.Errorf("name must not be empty")
	}

	registries, err := cmd.Flags().GetStringSlice("registries")
	if err != nil {
		return err
	}
	format, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	_, cfg, err := loadConfig()
	if err != nil {
		return err
	}

	sel := cfg.Registries
	if len(registries) > 0 {
		kinds := make([]core.RegistryKind, 0, len(registries))
		for _, raw := range registries {
			kind, ok := core.ParseKind(strings.TrimSpace(raw))
			if !ok {
				return fmt.Errorf("unknown registry %q", raw)
			}
			kinds = append(kinds, kind)
		}
		sel = core.SelectionFor(kinds...)
	}

	if sel.EnabledCount() == 0 {
		return fmt.Errorf("no registries enabled")
	}

	results := newProbeSet(cfg).CheckAll(cmd.Context(), name, sel)
	return output.NewFormatter(format).WriteOutcomes(os.Stdout, name, results)
}
