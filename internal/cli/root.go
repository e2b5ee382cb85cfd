package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rpmtool",
		Short: "Inspect and decompose RPM packages",
		Long: `Rpmtool splits RPM packages into their structural sections and
inspects the set of files a package installs.

Subcommands:
  - split:   dump the lead, signature header, header and payload sections
  - extract: expand the payload contents to a directory
  - list:    print the installed file paths
  - tree:    print the installed file paths as a tree`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			} else {
				logrus.SetLevel(logrus.InfoLevel)
			}
		},
	}

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	rootCmd.AddCommand(NewSplitCmd())
	rootCmd.AddCommand(NewExtractCmd())
	rootCmd.AddCommand(NewListCmd())
	rootCmd.AddCommand(NewTreeCmd())

	return rootCmd
}
