package executor

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/linkany/pkg/errors"
	"github.com/arthur-debert/linkany/pkg/filesystem"
	"github.com/arthur-debert/linkany/pkg/logging"
	"github.com/arthur-debert/linkany/pkg/plan"
	"github.com/arthur-debert/linkany/pkg/types"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
)

// Options contains configuration for the executor
type Options struct {
	DryRun bool
	Logger zerolog.Logger
	// Filesystem operations interface for testing
	FS    types.FS
	Clock clockwork.Clock
}

// Executor applies plans
type Executor struct {
	dryRun bool
	logger zerolog.Logger
	fs     types.FS
	clock  clockwork.Clock
}

// New creates a new executor instance
func New(opts Options) *Executor {
	logger := opts.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = logging.GetLogger("executor")
	}

	fs := opts.FS
	if fs == nil {
		fs = filesystem.NewOS()
	}

	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &Executor{
		dryRun: opts.DryRun,
		logger: logger,
		fs:     fs,
		clock:  clock,
	}
}

// Apply runs steps in order and reports what happened. The returned result
// carries no operation name; callers stamp it.
func (e *Executor) Apply(steps []types.Step) *types.Result {
	result := types.NewResult("", "", e.clock.Now())

	for _, s := range steps {
		step := s
		step.Status = types.StatusPlanned

		if e.dryRun && step.Kind != types.StepNoop {
			step.Status = types.StatusSkipped
			result.AddStep(step)
			continue
		}

		e.logger.Debug().
			Str("kind", string(step.Kind)).
			Str("message", step.Message).
			Interface("paths", step.Paths).
			Msg("Executing step")

		if err := e.execute(&step, result); err != nil {
			step.Status = types.StatusFailed
			step.Error = errors.Describe(err)
			result.AddStep(step)
			result.Fail(step.Error)

			e.logger.Error().
				Err(err).
				Str("kind", string(step.Kind)).
				Msg("Step failed")

			e.cleanupStaged(step)
			break
		}

		result.AddStep(step)
	}

	result.RollbackSteps = RollbackPlan(result.Steps)
	result.Finish(e.clock.Now())
	return result
}

// execute performs one step, setting its status and undo hint and recording
// the semantic change on success.
func (e *Executor) execute(step *types.Step, result *types.Result) error {
	switch step.Kind {
	case types.StepNoop, types.StepWriteManifest, types.StepAudit:
		step.Status = types.StatusSkipped
		return nil

	case types.StepMkdirp:
		dir, err := requirePaths(step, types.PathDir)
		if err != nil {
			return err
		}
		if err := e.fs.MkdirAll(dir[0], 0755); err != nil {
			return wrapStep(err, step)
		}

	case types.StepTouch:
		file, err := requirePaths(step, types.PathFile)
		if err != nil {
			return err
		}
		if err := e.touch(file[0]); err != nil {
			return wrapStep(err, step)
		}
		result.AddChange(types.ChangeCreateSourceFile, file[0], "")

	case types.StepSymlink:
		p, err := requirePaths(step, types.PathSource, types.PathTarget)
		if err != nil {
			return err
		}
		source, target := p[0], p[1]
		if err := e.symlink(source, target); err != nil {
			return wrapStep(err, step)
		}
		result.AddChange(types.ChangeSymlink, source, target)
		step.Undo = &types.Undo{
			Kind:    types.StepUnlink,
			Message: "Rollback: remove created symlink",
			Paths:   map[string]string{types.PathTarget: target},
		}

	case types.StepUnlink:
		target, err := requirePaths(step, types.PathTarget)
		if err != nil {
			return err
		}
		if err := e.removeSymlink(target[0]); err != nil {
			return err
		}
		result.AddChange(types.ChangeUnlink, "", target[0])

	case types.StepRemove:
		p, err := requirePaths(step, types.PathPath)
		if err != nil {
			return err
		}
		if err := e.fs.RemoveAll(p[0]); err != nil {
			return wrapStep(err, step)
		}
		result.AddChange(types.ChangeRemove, "", p[0])

	case types.StepMove:
		p, err := requirePaths(step, types.PathFrom, types.PathTo)
		if err != nil {
			return err
		}
		from, to := p[0], p[1]
		if err := e.fs.Rename(from, to); err != nil {
			return wrapStep(err, step)
		}
		result.AddChange(types.ChangeMove, from, to)
		if step.Undo == nil {
			step.Undo = &types.Undo{
				Kind:    types.StepMove,
				Message: "Rollback: move back",
				Paths:   map[string]string{types.PathFrom: to, types.PathTo: from},
			}
		}

	case types.StepCopy:
		p, err := requirePaths(step, types.PathFrom, types.PathTo)
		if err != nil {
			return err
		}
		from, to := p[0], p[1]
		if err := e.fs.Copy(from, to); err != nil {
			return wrapStep(err, step)
		}
		result.AddChange(types.ChangeCopy, from, to)

	default:
		return errors.Newf(errors.ErrStepInvalid, "Unknown step kind: %s", step.Kind)
	}

	step.Status = types.StatusExecuted
	return nil
}

// touch creates an empty file, leaving an existing one untouched
func (e *Executor) touch(file string) error {
	if _, err := e.fs.Lstat(file); err == nil {
		return nil
	}
	if err := e.fs.MkdirAll(filepath.Dir(file), 0755); err != nil {
		return err
	}
	return e.fs.WriteFile(file, nil, 0644)
}

// symlink creates target pointing at source. The stored link value is
// relative to target's directory so that link farms survive being moved
// together.
func (e *Executor) symlink(source, target string) error {
	dir := filepath.Dir(target)
	if err := e.fs.MkdirAll(dir, 0755); err != nil {
		return err
	}
	value, err := filepath.Rel(dir, source)
	if err != nil || value == "" {
		value = source
	}
	return e.fs.Symlink(value, target)
}

// removeSymlink deletes target only when it is a symlink
func (e *Executor) removeSymlink(target string) error {
	info, err := e.fs.Lstat(target)
	if err != nil {
		return errors.Wrapf(err, errors.ErrStepExecute, "unlink %s", target)
	}
	if info.Mode()&os.ModeSymlink == 0 {
		return errors.Newf(errors.ErrTargetNotSymlink, "Refusing to remove non-symlink: %s", target)
	}
	if err := e.fs.Remove(target); err != nil {
		return errors.Wrapf(err, errors.ErrStepExecute, "unlink %s", target)
	}
	return nil
}

// cleanupStaged removes the temporary artifact a failed step was writing
func (e *Executor) cleanupStaged(step types.Step) {
	staged := step.StagedPath()
	if !plan.IsTempPath(staged) {
		return
	}
	if err := e.fs.RemoveAll(staged); err != nil {
		e.logger.Warn().Err(err).Str("path", staged).Msg("Failed to clean up temporary path")
		return
	}
	e.logger.Debug().Str("path", staged).Msg("Removed temporary path after failure")
}

// RollbackPlan returns the undo hints of executed steps, newest first
func RollbackPlan(steps []types.Step) []types.Step {
	var out []types.Step
	for i := len(steps) - 1; i >= 0; i-- {
		s := steps[i]
		if s.Status == types.StatusExecuted && s.Undo != nil {
			out = append(out, s.Undo.AsStep())
		}
	}
	return out
}

func requirePaths(step *types.Step, keys ...string) ([]string, error) {
	values := make([]string, len(keys))
	for i, key := range keys {
		values[i] = step.Path(key)
		if values[i] == "" {
			return nil, errors.Newf(errors.ErrStepInvalid, "%s step missing %s", step.Kind, key)
		}
	}
	return values, nil
}

func wrapStep(err error, step *types.Step) error {
	return errors.Wrapf(err, errors.ErrStepExecute, "%s failed", step.Kind)
}
