package cli

import (
	"github.com/ralt/rpmtool/internal/rpmfile"
	"github.com/ralt/rpmtool/internal/splitter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewSplitCmd creates the split command
func NewSplitCmd() *cobra.Command {
	var destination string

	cmd := &cobra.Command{
		Use:   "split <package>",
		Short: "Split an RPM into its four structural sections",
		Long: `Splits an RPM into its lead, signature header, header and payload
sections and writes each one as a file under the destination
directory. Concatenating the four files in that order reconstructs
the original package bit-for-bit.`,
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

			if err := splitter.Split(pkg.Data(), pkg.SegmentOffsets(), dest); err != nil {
				return err
			}

			logrus.Infof("Package sections written to: %s", dest)
			return nil
		},
	}

	cmd.Flags().StringVarP(&destination, "destination", "d", "", "Destination directory (default: NEVRA of the package)")

	return cmd
}
