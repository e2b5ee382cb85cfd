package cli

import (
	"github.com/ralt/rpmtool/internal/filetree"
	"github.com/ralt/rpmtool/internal/rpmfile"
	"github.com/spf13/cobra"
)

// NewTreeCmd creates the tree command
func NewTreeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tree <package>",
		Short: "Show the files installed by an RPM as a tree",
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

			root := filetree.New()
			for _, file := range files {
				root.Insert(file.Path)
			}

			filetree.Render(cmd.OutOrStdout(), root)
			return nil
		},
	}
}
