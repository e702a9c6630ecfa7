package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xs-lang/xs/internal/lexer"
	"github.com/xs-lang/xs/internal/position"
	"github.com/xs-lang/xs/internal/printer"
	"github.com/xs-lang/xs/internal/source"
)

func (a *app) tokensCommand() *cobra.Command {
	var table bool

	cmd := &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the tokens of a source file",
		Long: `Print the tokens of a source file, comments removed, one per line as

  (kind,type) [row,col] value`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := source.Load(a.fsys, args[0])
			if err != nil {
				a.log.Report(err, nil)
				return errReported
			}
			seq, err := lexer.Scan(file.Content, lexer.Options{
				Filename:       file.Path,
				AutoSemicolons: a.config.Source.AutoSemicolons,
			})
			if err != nil {
				a.log.Report(err, position.NewSourceFile(file.Path, file.Content))
				return errReported
			}

			if table {
				printer.TokenTable(a.stdout, seq)
				return nil
			}
			return printer.Tokens(a.stdout, seq)
		},
	}
	cmd.Flags().BoolVar(&table, "table", false, "print a table with symbolic names")
	return cmd
}
