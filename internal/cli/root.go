package cli

import (
	"errors"
	"fmt"
	"os"

	"bookcheck/config"
	"bookcheck/internal/domain"
	"bookcheck/internal/logging"
	"github.com/spf13/cobra"
)

// options is the state shared by a command tree: persistent flags plus the
// configuration they resolve to.
type options struct {
	cfgFile  string
	rootDir  string
	logLevel string
	jsonOut  bool
	progress bool
	noColor  bool

	cfg    *config.Config
	logger *logging.Logger
}

// NewRootCmd builds the bookcheck command with every subcommand attached.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "bookcheck",
		Short: "Content-quality checks for book manuscripts",
		Long: `bookcheck validates APA citations, detects text reused from reference
sources, and scores readability of markdown manuscripts.

Example usage:
  bookcheck citations docs/             # Validate citations and references
  bookcheck plagiarism docs/ refs/      # Compare chapters against reference texts
  bookcheck readability docs/intro.md   # Flesch-Kincaid grade level
  bookcheck corpus refs/                # Pre-build the reference cache`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("%w: missing command", domain.ErrUsage)
		},
	}

	opts.attach(cmd)
	cmd.AddCommand(
		newCitationCmd(opts),
		newPlagiarismCmd(opts),
		newReadabilityCmd(opts),
		newCorpusCmd(opts),
	)
	return cmd
}

// NewCitationValidatorCmd builds the standalone citation-validator command.
func NewCitationValidatorCmd() *cobra.Command {
	opts := &options{}
	cmd := newCitationCmd(opts)
	cmd.Use = "citation-validator <path-to-file-or-directory>"
	opts.attach(cmd)
	return cmd
}

// NewPlagiarismDetectorCmd builds the standalone plagiarism-detector command.
func NewPlagiarismDetectorCmd() *cobra.Command {
	opts := &options{}
	cmd := newPlagiarismCmd(opts)
	cmd.Use = "plagiarism-detector <path-to-file-or-directory> [sources-directory]"
	opts.attach(cmd)
	return cmd
}

// NewReadabilityAnalyzerCmd builds the standalone readability-analyzer command.
func NewReadabilityAnalyzerCmd() *cobra.Command {
	opts := &options{}
	cmd := newReadabilityCmd(opts)
	cmd.Use = "readability-analyzer <path-to-file-or-directory>"
	opts.attach(cmd)
	return cmd
}

// attach makes cmd the top of a command tree: persistent flags, config
// loading before any subcommand runs, and quiet cobra error handling.
func (o *options) attach(cmd *cobra.Command) {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return o.load(cmd)
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", domain.ErrUsage, err)
	})

	flags := cmd.PersistentFlags()
	flags.StringVar(&o.cfgFile, "config", "", "config file (default is ./bookcheck.yaml)")
	flags.StringVarP(&o.rootDir, "dir", "d", "", "project directory for config and cache (default is current directory)")
	flags.StringVar(&o.logLevel, "log-level", "", "log level: debug, info or error (default from config)")
	flags.BoolVar(&o.jsonOut, "json", false, "output as JSON")
	flags.BoolVar(&o.progress, "progress", false, "show a progress bar on stderr")
	flags.BoolVar(&o.noColor, "no-color", false, "disable colored output")
}

func (o *options) load(cmd *cobra.Command) error {
	var err error

	if o.rootDir == "" {
		o.rootDir, err = os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
	}

	if o.cfgFile != "" {
		o.cfg, err = config.Load(o.cfgFile)
	} else {
		o.cfg, err = config.LoadFromDir(o.rootDir)
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if o.logLevel != "" {
		o.cfg.Logging.Level = o.logLevel
	}
	if o.progress {
		o.cfg.Batch.Progress = true
	}
	if err := o.cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	o.logger = logging.New(cmd.ErrOrStderr(), o.cfg.Logging.Level)
	o.logger.Debug("config loaded for %s", o.rootDir)
	return nil
}

// Execute runs the bookcheck command and exits with its status.
func Execute() {
	os.Exit(Run(NewRootCmd(), os.Args[1:]))
}

// Run executes cmd with args, reports any error on the command's stderr and
// returns the process exit code.
func Run(cmd *cobra.Command, args []string) int {
	cmd.SetArgs(args)
	executed, err := cmd.ExecuteC()
	if err != nil {
		reportError(executed, err)
	}
	return ExitCode(err)
}

// ExitCode maps a command error to a process exit status: 0 for success and
// 1 for usage errors, invalid targets, failed checks and anything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}

func reportError(cmd *cobra.Command, err error) {
	w := cmd.ErrOrStderr()
	switch {
	case errors.Is(err, domain.ErrChecksFailed):
		// The report already says what failed.
	case errors.Is(err, domain.ErrUsage):
		fmt.Fprintf(w, "Error: %v\n", err)
		fmt.Fprint(w, cmd.UsageString())
	default:
		fmt.Fprintf(w, "Error: %v\n", err)
	}
}

// targetArgs accepts one target path plus up to extra optional arguments.
func targetArgs(extra int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return fmt.Errorf("%w: missing path to file or directory", domain.ErrUsage)
		}
		if len(args) > 1+extra {
			return fmt.Errorf("%w: too many arguments", domain.ErrUsage)
		}
		return nil
	}
}
