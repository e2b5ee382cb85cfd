package cli

import (
	"fmt"

	"github.com/ralt/rpmtool/internal/rpmfile"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewExtractCmd creates the extract command
func NewExtractCmd() *cobra.Command {
	var destination string

	cmd := &cobra.Command{
		Use:   "extract <package>",
		Short: "Extract the payload contents of an RPM",
		Long: `Expands the package payload under the destination directory and
prints the path of each installed file, one per line.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pkg, err := rpmfile.Open(args[0])
			if err != nil {
				return err
			}

			dest := destination
			if dest == "" {
				dest = pkg.Identity().NEVRA()
			}

			files, err := pkg.Files()
			if err != nil {
				return err
			}

			if err := pkg.Extract(dest); err != nil {
				return err
			}

			for _, file := range files {
				fmt.Fprintln(cmd.OutOrStdout(), file.Path)
			}

			logrus.Infof("Payload extracted to: %s", dest)
			return nil
		},
	}

	cmd.Flags().StringVarP(&destination, "destination", "d", "", "Destination directory (default: NEVRA of the package)")

	return cmd
}
