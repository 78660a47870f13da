package commands

import (
	"fmt"

	"github.com/leapstack-labs/dopler/pkg/loader"
	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display dopler version and the model formats it can read.`,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "dopler v%s\n", version)
			for _, f := range loader.New(nil).SupportedFormats() {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Reads %s decision models\n", f)
			}
		},
	}
}
