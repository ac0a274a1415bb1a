package cli

import (
	"github.com/spf13/cobra"

	"github.com/rshade/vlist/pkg/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := version.Semver()
			if err != nil {
				return err
			}
			if short {
				cmd.Println(v.String())
				return nil
			}
			cmd.Println(version.String())
			return nil
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "print only the semantic version")

	return cmd
}
