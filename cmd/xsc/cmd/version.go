package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xs-lang/xs/internal/cli"
)

func (a *app) versionCommand() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.PrintVersion(a.stdout, "xsc", jsonOutput)
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print as JSON")
	return cmd
}
