// Package cmd implements the xsc command tree.
package cmd

import (
	"context"
	stderrors "errors"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/xs-lang/xs/internal/cli"
	"github.com/xs-lang/xs/internal/frontend"
	"github.com/xs-lang/xs/internal/position"
	"github.com/xs-lang/xs/internal/vfs"
)

// errReported marks a failure whose details were already printed.
var errReported = stderrors.New("xsc: failed")

// app is the state shared by all subcommands of one invocation.
type app struct {
	fsys   vfs.FileSystem
	stdout io.Writer
	stderr io.Writer

	cfgFile        string
	verbose        bool
	debug          bool
	autoSemicolons bool

	config *cli.Config
	log    *cli.Logger
}

// Execute runs xsc on the process arguments.
func Execute() error {
	ctx := context.Background()
	return Run(ctx, vfs.NewOS(), os.Args[1:], os.Stdout, os.Stderr)
}

// Run executes the command tree over fsys with args. Errors not yet
// shown to the user are printed to stderr.
func Run(ctx context.Context, fsys vfs.FileSystem, args []string, stdout, stderr io.Writer) error {
	root := NewRootCommand(fsys, stdout, stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if err != nil && !stderrors.Is(err, errReported) {
		root.PrintErrln("Error:", err)
	}
	return err
}

// NewRootCommand builds the command tree over fsys.
func NewRootCommand(fsys vfs.FileSystem, stdout, stderr io.Writer) *cobra.Command {
	a := &app{fsys: fsys, stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "xsc",
		Short: "xs tokenizer and parser",
		Long: `xsc tokenizes and parses xs sources.

It prints token listings and syntax trees, checks whole source trees
against their saved outputs and re-parses files as they change.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", cli.DefaultConfigFile, "config file")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")
	flags.BoolVar(&a.debug, "debug", false, "debug output")
	flags.BoolVar(&a.autoSemicolons, "auto-semicolons", false, "end statements at line breaks")

	root.AddCommand(
		a.tokensCommand(),
		a.parseCommand(),
		a.checkCommand(),
		a.watchCommand(),
		a.versionCommand(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	a.log = cli.NewLogger(a.verbose, a.debug)
	a.log.SetOutput(a.stderr)

	config, err := cli.LoadConfig(a.fsys, a.cfgFile)
	if err != nil {
		a.log.Error("%v", err)
		return errReported
	}
	if cmd.Flags().Changed("auto-semicolons") {
		config.Source.AutoSemicolons = a.autoSemicolons
	}
	if err := cli.CheckRequires(config.Project.Requires, cli.Version); err != nil {
		a.log.Error("%v", err)
		return errReported
	}
	a.config = config
	a.log.Debug("config: %+v", *config)
	return nil
}

func (a *app) options() frontend.Options {
	return frontend.Options{
		AutoSemicolons: a.config.Source.AutoSemicolons,
		Logger:         a.log,
	}
}

// report prints a parse failure with the source snippet when the file
// was loaded.
func (a *app) report(s *frontend.Session, err error) {
	var sf *position.SourceFile
	if s != nil {
		sf = s.SourceFile()
	}
	a.log.Report(err, sf)
}

// parse parses path and reports a failure.
func (a *app) parse(path string) (*frontend.Session, error) {
	s, err := frontend.ParseFile(a.fsys, path, a.options())
	if err != nil {
		a.report(s, err)
		return nil, errReported
	}
	return s, nil
}
