package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xs-lang/xs/internal/ast"
	"github.com/xs-lang/xs/internal/cli"
	"github.com/xs-lang/xs/internal/printer"
)

func (a *app) parseCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Print the syntax tree of a source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = a.config.Output.TreeFormat
			}
			if !cli.ValidTreeFormat(format) {
				return fmt.Errorf("unknown format %q, want one of %s", format, strings.Join(cli.TreeFormats, ", "))
			}

			s, err := a.parse(args[0])
			if err != nil {
				return err
			}
			out, err := render(s.Root, format, s.File.Path)
			if err != nil {
				return err
			}
			if !strings.HasSuffix(out, "\n") {
				out += "\n"
			}
			_, err = fmt.Fprint(a.stdout, out)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "tree format: "+strings.Join(cli.TreeFormats, ", "))
	return cmd
}

func render(root *ast.Block, format, title string) (string, error) {
	switch format {
	case "html":
		return printer.HTML(root, title), nil
	case "yaml":
		return printer.YAML(root)
	case "source":
		return printer.Source(root), nil
	case "dump":
		return printer.Dump(root), nil
	}
	return printer.SExpr(root), nil
}
