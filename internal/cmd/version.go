package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("nameclaim %s\n", versionInfo.Version)
		fmt.Printf("  commit:     %s\n", versionInfo.Commit)
		fmt.Printf("  build date: %s\n", versionInfo.BuildDate)
		fmt.Printf("  go:         %s (%s/%s)\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
