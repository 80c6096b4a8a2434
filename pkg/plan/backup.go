package plan

import (
	"path/filepath"

	"github.com/arthur-debert/linkany/pkg/types"
)

// Replacement swaps an existing target for a new symlink without a window
// in which the old content is gone and the new link is missing. The old
// target is renamed to Backup and left there.
type Replacement struct {
	Target string
	Backup string
	Temp   string
}

// PlanReplacement reserves backup and temp names for target
func (c *Compiler) PlanReplacement(target string) Replacement {
	return Replacement{
		Target: target,
		Backup: c.namer.BackupPath(target),
		Temp:   c.namer.TempPath(target),
	}
}

// BackupStep moves the target aside. Its origin is the user's own target,
// so it is never staged.
func (r Replacement) BackupStep() types.Step {
	return types.MoveStep(r.Target, r.Backup, "Move existing target aside to backup before replacement").
		WithUndo(types.Undo{
			Kind:    types.StepMove,
			Message: "Rollback: restore previous target from backup",
			Paths:   map[string]string{types.PathFrom: r.Backup, types.PathTo: r.Target},
		})
}

// CommitStep moves the staged symlink into the target's place
func (r Replacement) CommitStep() types.Step {
	return types.MoveStep(r.Temp, r.Target, "Atomically move temp symlink into place").
		Stage().
		WithUndo(types.Undo{
			Kind:    types.StepMove,
			Message: "Rollback: move current target back to tmp",
			Paths:   map[string]string{types.PathFrom: r.Target, types.PathTo: r.Temp},
		})
}

// LinkSteps backs the target up and puts a symlink to source in its place.
// Non-atomic replacements create the link directly at the vacated target.
func (r Replacement) LinkSteps(source string, kind types.LinkKind, atomic bool) []types.Step {
	steps := []types.Step{
		r.BackupStep(),
		types.MkdirStep(filepath.Dir(r.Target), "Ensure target parent directory exists"),
	}
	if !atomic {
		return append(steps, types.SymlinkStep(source, r.Target, kind, "Create symlink"))
	}
	return append(steps,
		types.SymlinkStep(source, r.Temp, kind, "Create symlink at temp path").Stage(),
		r.CommitStep(),
	)
}
