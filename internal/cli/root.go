// Package cli implements the par2mirror command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/raoulx24/par2mirror/internal/config"
	"github.com/raoulx24/par2mirror/internal/engine"
	"github.com/raoulx24/par2mirror/internal/exitcode"
	"github.com/raoulx24/par2mirror/internal/fs"
	"github.com/raoulx24/par2mirror/internal/fsprobe"
	"github.com/raoulx24/par2mirror/internal/logging"
	"github.com/raoulx24/par2mirror/internal/priority"
	"github.com/raoulx24/par2mirror/internal/recovery"
	"github.com/raoulx24/par2mirror/internal/relation"
	"github.com/raoulx24/par2mirror/internal/retention"
	"github.com/raoulx24/par2mirror/internal/tree"
	"github.com/raoulx24/par2mirror/internal/worker"
)

// lowerPriority is swapped out in tests.
var lowerPriority = priority.Lower

// flags holds the global command line options.
type flags struct {
	fast           bool
	configPath     string
	enginePath     string
	redundancy     int
	jobs           int
	followSymlinks bool
	verbose        int
	logFormat      string
}

func (f *flags) register(set *pflag.FlagSet) {
	set.BoolVar(&f.fast, "fast", false, "Do not lower CPU and I/O priority")
	set.StringVar(&f.configPath, "config", "", "Path to a YAML config file")
	set.StringVar(&f.enginePath, "engine", "", "Parity engine binary (default par2)")
	set.IntVar(&f.redundancy, "redundancy", 0, "Redundancy percentage for new artifacts (default 10)")
	set.IntVar(&f.jobs, "jobs", 0, "Number of engine processes to run at once (default 1)")
	set.BoolVar(&f.followSymlinks, "follow-symlinks", false, "Descend into symlinked directories")
	set.CountVarP(&f.verbose, "verbose", "v", "Print more logs, repeat for debug")
	set.StringVar(&f.logFormat, "log-format", "", "Log format, text or json")
}

// apply overlays explicitly set flags on cfg.
func (f *flags) apply(set *pflag.FlagSet, cfg *config.Config) {
	if f.enginePath != "" {
		cfg.Engine.Path = f.enginePath
	}
	if set.Changed("redundancy") {
		cfg.Engine.Redundancy = f.redundancy
	}
	if set.Changed("jobs") {
		cfg.Jobs = f.jobs
	}
	if f.followSymlinks {
		cfg.Scan.FollowSymlinks = true
	}
	switch {
	case f.verbose >= 2:
		cfg.Logging.Level = "debug"
	case f.verbose == 1:
		cfg.Logging.Level = "info"
	}
	if f.logFormat != "" {
		cfg.Logging.Format = f.logFormat
	}
}

// usageError marks errors caused by bad arguments.
type usageError struct{ error }

func (e usageError) Unwrap() error { return e.error }

func twoDirs(cmd *cobra.Command, args []string) error {
	if len(args) != 2 {
		return usageError{fmt.Errorf("%s needs SOURCEDIR and RECOVERYDIR, got %d arguments", cmd.Name(), len(args))}
	}
	return nil
}

// app is the state shared by one command invocation.
type app struct {
	log      logging.Logger
	computer *relation.Computer
	worker   *worker.Worker
}

// setup loads config, checks the roots, lowers priority and wires the
// components for the two directory arguments.
func setup(cmd *cobra.Command, f *flags, args []string) (*app, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}
	f.apply(cmd.Flags(), cfg)
	if err := cfg.Validate(); err != nil {
		return nil, usageError{err}
	}

	log, err := logging.New(cfg.Logging.Level, cfg.Logging.Format, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	sourceRoot, err := filepath.Abs(args[0])
	if err != nil {
		return nil, err
	}
	recoveryRoot, err := filepath.Abs(args[1])
	if err != nil {
		return nil, err
	}

	filesystem := fs.New()
	if err := fsprobe.CheckRoots(filesystem, sourceRoot, recoveryRoot); err != nil {
		return nil, err
	}
	log.Info("roots", "source", sourceRoot, "recovery", recoveryRoot)

	if !f.fast {
		if err := lowerPriority(); err != nil {
			return nil, fmt.Errorf("lowering priority: %w", err)
		}
		log.Debug("priority lowered", "niceness", priority.Niceness)
	}

	mapper := recovery.NewMapper(sourceRoot, recoveryRoot)
	computer := relation.New(mapper, filesystem, log, tree.Options{FollowSymlinks: cfg.Scan.FollowSymlinks})
	w := worker.New(
		engine.NewPar2(cfg.Engine.Path, log),
		retention.New(filesystem, log),
		filesystem,
		log,
		worker.Options{
			BaseDir:    sourceRoot,
			Redundancy: cfg.Engine.Redundancy,
			Jobs:       cfg.Jobs,
			Out:        cmd.OutOrStdout(),
			ErrOut:     cmd.ErrOrStderr(),
		},
	)

	return &app{log: log, computer: computer, worker: w}, nil
}

func newRootCommand() *cobra.Command {
	f := &flags{}
	root := &cobra.Command{
		Use:   "par2mirror",
		Short: "Maintain a mirrored tree of PAR2 recovery files",
		Long: `
par2mirror keeps a recovery tree next to a source tree. Every regular file
SOURCEDIR/path gets a PAR2 artifact RECOVERYDIR/path.par2 made by the external
par2 tool, so bit rot and damage in the source tree can be detected and repaired.
`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	f.register(root.PersistentFlags())
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	root.AddCommand(
		createCommand(f),
		verifyCommand(f),
		listOutdatedCommand(f),
		deleteOutdatedCommand(f),
	)
	return root
}

// Run executes the command line args and returns the process exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := newRootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return exitcode.Success
	}

	fmt.Fprintf(stderr, "error: %v\n", err)
	var usage usageError
	switch {
	case errors.Is(err, fsprobe.ErrSourceMissing):
		return exitcode.SourceNotFound
	case errors.As(err, &usage), errors.Is(err, fsprobe.ErrOverlappingRoots):
		return exitcode.UsageError
	default:
		return exitcode.UncategorizedError
	}
}

// Main runs the CLI with the process arguments and standard streams.
func Main(ctx context.Context) int {
	return Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
}
