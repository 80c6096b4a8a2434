// Package runner drives one user-facing operation end to end: apply the
// plan, let the caller finalize (usually the manifest write), append the
// audit record and return the result.
package runner

import (
	"github.com/arthur-debert/linkany/pkg/audit"
	"github.com/arthur-debert/linkany/pkg/display"
	"github.com/arthur-debert/linkany/pkg/errors"
	"github.com/arthur-debert/linkany/pkg/executor"
	"github.com/arthur-debert/linkany/pkg/filesystem"
	"github.com/arthur-debert/linkany/pkg/logging"
	"github.com/arthur-debert/linkany/pkg/types"
	"github.com/jonboulle/clockwork"
)

// Options are shared by every operation
type Options struct {
	DryRun          bool
	IncludePlanText bool
	// AuditLogPath overrides the log next to the manifest
	AuditLogPath string

	FS    types.FS
	Clock clockwork.Clock
}

// WithDefaults fills in the real filesystem and clock
func (o Options) WithDefaults() Options {
	if o.FS == nil {
		o.FS = filesystem.NewOS()
	}
	if o.Clock == nil {
		o.Clock = clockwork.NewRealClock()
	}
	return o
}

// AuditPath returns where the result of an operation on manifestPath is
// logged, or "" when there is nowhere to log.
func (o Options) AuditPath(manifestPath string) string {
	if o.AuditLogPath != "" {
		return o.AuditLogPath
	}
	if manifestPath != "" {
		return audit.DefaultLogPath(manifestPath)
	}
	return ""
}

// Input describes one operation
type Input struct {
	Operation    types.Operation
	ManifestPath string
	Steps        []types.Step
	// Warnings found while planning, copied onto the result
	Warnings []string
	Options  Options
	// Finalize runs after the plan, before the audit append. It may add
	// steps and changes and may fail the result.
	Finalize func(r *types.Result)
}

// Run applies in.Steps and assembles the result
func Run(in Input) *types.Result {
	opts := in.Options.WithDefaults()
	logger := logging.GetLogger("runner").With().Str("operation", string(in.Operation)).Logger()
	started := opts.Clock.Now()
	done := logging.LogOperationStart(logging.GetLogger("runner"), string(in.Operation))
	defer done()

	result := executor.New(executor.Options{
		DryRun: opts.DryRun,
		Logger: logging.GetLogger("executor"),
		FS:     opts.FS,
		Clock:  opts.Clock,
	}).Apply(in.Steps)

	result.Operation = in.Operation
	result.ManifestPath = in.ManifestPath
	result.StartedAt = started

	for _, w := range in.Warnings {
		result.Warn(w)
	}

	if opts.IncludePlanText {
		result.PlanText = display.FormatPlan(in.Steps)
	}

	if in.Finalize != nil {
		in.Finalize(result)
	}
	result.Finish(opts.Clock.Now())

	if path := opts.AuditPath(in.ManifestPath); path != "" && !opts.DryRun {
		audit.Record(opts.FS, path, result)
	}

	outcome := "ok"
	if !result.OK {
		outcome = "fail"
	}
	logger.Info().Msgf("%s %s (%dms)", in.Operation, outcome, result.DurationMs)
	return result
}

// Refuse builds the result of an operation stopped before any mutation. The
// refusal is recorded as a failed noop step carrying message and paths.
func Refuse(op types.Operation, manifestPath string, opts Options, message string, reason error, paths map[string]string) *types.Result {
	opts = opts.WithDefaults()
	now := opts.Clock.Now()

	result := types.NewResult(op, manifestPath, now)
	msg := errors.Describe(reason)
	step := types.NoopStep(message, paths)
	step.Status = types.StatusFailed
	step.Error = msg
	result.AddStep(step)
	result.Fail(msg)
	result.Finish(now)

	logger := logging.GetLogger("runner")
	logger.Warn().
		Str("operation", string(op)).
		Str("reason", msg).
		Msg("Operation refused")
	return result
}

// Failed builds the result of an operation that could not start, for
// example because its manifest is missing. It carries no steps.
func Failed(op types.Operation, manifestPath string, opts Options, reason error) *types.Result {
	opts = opts.WithDefaults()
	now := opts.Clock.Now()

	result := types.NewResult(op, manifestPath, now)
	result.Fail(errors.Describe(reason))
	result.Finish(now)

	logger := logging.GetLogger("runner")
	logger.Warn().
		Str("operation", string(op)).
		Err(reason).
		Msg("Operation failed before planning")
	return result
}
