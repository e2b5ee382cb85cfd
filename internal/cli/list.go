package cli

import (
	"fmt"

	"github.com/ralt/rpmtool/internal/rpmfile"
	"github.com/spf13/cobra"
)

// NewListCmd creates the list command
func NewListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <package>",
		Short: "List the files installed by an RPM",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pkg, err := rpmfile.Open(args[0])
			if err != nil {
				return err
			}

			files, err := pkg.Files()
			if err != nil {
				return err
			}

			for _, file := range files {
				fmt.Fprintln(cmd.OutOrStdout(), file.Path)
			}
			return nil
		},
	}
}
