package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nameclaim/nameclaim/internal/output"
)

var domainCmd = &cobra.Command{
	Use:   "domain <name>",
	Short: "Check domain availability across TLDs",
	Long: `Check whether <name> resolves under each TLD. DNS presence means
taken; NXDOMAIN is confirmed against the TLD's RDAP service when possible.

A full domain (e.g. banana.wiki) is checked as given, then its base label
is swept across the TLD list as well.`,
	Args: cobra.ExactArgs(1),
	RunE: runDomain,
}

func init() {
	rootCmd.AddCommand(domainCmd)

	domainCmd.Flags().StringSlice("tlds", []string{"com", "dev", "io", "app", "net", "org"}, "TLDs to sweep")
	domainCmd.Flags().String("output", "table", "output format: table, json")
}

func runDomain(cmd *cobra.Command, args []string) error {
	name := strings.ToLower(strings.TrimSpace(args[0]))
	if name == "" {
		return fmt.Errorf("name must not be empty")
	}

	tlds, err := cmd.Flags().GetStringSlice("tlds")
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

	results := newDomainChecker(cfg).CheckName(cmd.Context(), name, tlds)
	return output.NewFormatter(format).WriteDomains(os.Stdout, results)
}
