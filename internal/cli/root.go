package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/arthur-debert/linkany/internal/version"
	"github.com/arthur-debert/linkany/pkg/commands"
	"github.com/arthur-debert/linkany/pkg/config"
	"github.com/arthur-debert/linkany/pkg/display"
	"github.com/arthur-debert/linkany/pkg/logging"
	"github.com/arthur-debert/linkany/pkg/runner"
	"github.com/arthur-debert/linkany/pkg/types"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// ExitError carries the process exit code of a command. Err is nil when the
// command already reported the failure on its output.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode maps the error returned by Execute to a process exit code
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}

// globalOptions are the flags shared by every command
type globalOptions struct {
	verbosity int
	manifest  string
	dryRun    bool
	plan      bool
	auditLog  string
	format    string
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "linkany",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging based on verbosity
			logging.SetupLogger(opts.verbosity)
			logging.LogCommand(cmd.CommandPath(), args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVarP(&opts.manifest, "manifest", "m", "", MsgFlagManifest)
	rootCmd.PersistentFlags().BoolVar(&opts.dryRun, "dry-run", false, MsgFlagDryRun)
	rootCmd.PersistentFlags().BoolVar(&opts.plan, "plan", false, MsgFlagPlan)
	rootCmd.PersistentFlags().StringVar(&opts.auditLog, "audit-log", "", MsgFlagAuditLog)
	rootCmd.PersistentFlags().StringVar(&opts.format, "format", "json", MsgFlagFormat)

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newManifestCmd())
	rootCmd.AddCommand(newAddCmd(opts))
	rootCmd.AddCommand(newRemoveCmd(opts))
	rootCmd.AddCommand(newInstallCmd(opts))
	rootCmd.AddCommand(newUninstallCmd(opts))

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "linkany version %s\n", version.Version)
			fmt.Fprintf(out, "  commit: %s\n", version.Commit)
			fmt.Fprintf(out, "  built:  %s\n", version.Date)
		},
	}
}

// operationOptions resolves the manifest and run options for a command.
// Flags win over the config file.
func (g *globalOptions) operationOptions() (commands.AddOptions, error) {
	cfg, err := config.Load()
	if err != nil {
		return commands.AddOptions{}, err
	}

	manifestPath := g.manifest
	if manifestPath != "" {
		abs, err := filepath.Abs(manifestPath)
		if err != nil {
			return commands.AddOptions{}, err
		}
		manifestPath = abs
	} else {
		manifestPath = cfg.ManifestPath
	}
	if manifestPath == "" {
		return commands.AddOptions{}, errors.New(MsgErrNoManifest)
	}

	auditLog := g.auditLog
	if auditLog == "" {
		auditLog = cfg.AuditLog
	}

	log.Debug().
		Str("manifest", manifestPath).
		Bool("dry_run", g.dryRun).
		Msg("Resolved operation options")

	return commands.AddOptions{
		Options: runner.Options{
			DryRun:          g.dryRun,
			IncludePlanText: g.plan || cfg.IncludePlan,
			AuditLogPath:    auditLog,
		},
		ManifestPath: manifestPath,
	}, nil
}

// render prints result and turns a failed result into exit code 1
func (g *globalOptions) render(cmd *cobra.Command, result *types.Result) error {
	format, err := display.ParseFormat(g.format)
	if err != nil {
		return err
	}
	renderer, err := display.NewRenderer(format, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if err := renderer.RenderResult(result); err != nil {
		return err
	}
	if !result.OK {
		return &ExitError{Code: 1}
	}
	return nil
}
