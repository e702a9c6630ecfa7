package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xs-lang/xs/internal/frontend"
)

func (a *app) checkCommand() *cobra.Command {
	var (
		update   bool
		showDiff bool
		workers  int
	)

	cmd := &cobra.Command{
		Use:   "check [dir]",
		Short: "Parse a source tree and compare the saved outputs",
		Long: `Parse every source file under dir and compare its token listing
(<file>.lex.txt) and HTML tree (<file>.tree.html) with the saved copies.
With --update the outputs that changed are rewritten; --diff shows
what changed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			if !cmd.Flags().Changed("workers") {
				workers = a.config.Check.Workers
			}
			return a.check(cmd, root, workers, update, showDiff)
		},
	}
	cmd.Flags().BoolVar(&update, "update", false, "rewrite outputs that changed")
	cmd.Flags().BoolVar(&showDiff, "diff", false, "print a unified diff of every changed output")
	cmd.Flags().IntVarP(&workers, "workers", "j", 0, "files parsed in parallel")
	return cmd
}

func (a *app) check(cmd *cobra.Command, root string, workers int, update, showDiff bool) error {
	paths, err := frontend.Discover(a.fsys, root, a.config.Source.Extension)
	if err != nil {
		a.log.Error("%v", err)
		return errReported
	}
	a.log.Info("checking %d files in %s with %d workers", len(paths), root, workers)

	outcomes, err := frontend.ParseAll(cmd.Context(), a.fsys, paths, workers, a.options())
	if err != nil {
		return err
	}

	artOpts := frontend.ArtifactOptions{
		Dir:    a.config.Output.Dir,
		Tokens: a.config.Output.WriteTokens,
		Tree:   a.config.Output.WriteTree,
	}
	var failed, changed int
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
			a.report(o.Session, o.Err)
			if o.Session == nil {
				continue
			}
		}

		arts, err := frontend.Artifacts(o.Session, artOpts)
		if err != nil {
			return err
		}
		stale, err := frontend.Stale(a.fsys, arts)
		if err != nil {
			return err
		}
		changed += len(stale)
		for _, art := range stale {
			if update {
				fmt.Fprintf(a.stdout, "updated %s\n", art.Path)
			} else {
				fmt.Fprintf(a.stdout, "changed %s\n", art.Path)
			}
			if showDiff {
				fmt.Fprint(a.stdout, art.Diff())
			}
		}
		if update {
			if err := frontend.Write(a.fsys, stale); err != nil {
				return err
			}
		}
	}

	fmt.Fprintf(a.stdout, "%d files, %d failed, %d outputs changed\n", len(outcomes), failed, changed)
	if failed > 0 || (changed > 0 && !update) {
		return errReported
	}
	return nil
}
