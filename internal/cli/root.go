package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set during build using ldflags.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:     "package-health-agent",
	Short:   "Dependency health reports for Python and npm projects",
	Long:    `package-health-agent checks declared dependencies against their package registries and the OSV vulnerability database, scores each package 0-100 and produces per-batch health reports. Run "serve" for the HTTP service or "check" for a one-shot analysis of a local project.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
