package plan

import (
	"path/filepath"

	"github.com/arthur-debert/linkany/pkg/types"
)

// EnsureSource returns the steps creating source when it is missing
func (c *Compiler) EnsureSource(source string, kind types.LinkKind) []types.Step {
	if c.state.Exists(source) {
		return nil
	}

	steps := []types.Step{
		types.MkdirStep(filepath.Dir(source), "Ensure parent dir for source exists"),
	}
	if kind == types.KindDir {
		steps = append(steps, types.MkdirStep(source, "Create source directory"))
	} else {
		steps = append(steps, types.TouchStep(source, "Create empty source file"))
	}
	return steps
}

// LinkSteps creates target as a symlink to source. Atomic links are staged
// at a temporary sibling and renamed over target.
func (c *Compiler) LinkSteps(source, target string, kind types.LinkKind, atomic bool) []types.Step {
	steps := []types.Step{
		types.MkdirStep(filepath.Dir(target), "Ensure target parent directory exists"),
	}

	if !atomic {
		return append(steps, types.SymlinkStep(source, target, kind, "Create symlink"))
	}

	tmp := c.namer.TempPath(target)
	return append(steps,
		types.SymlinkStep(source, tmp, kind, "Create symlink at temp path").Stage(),
		types.MoveStep(tmp, target, "Atomically move temp symlink into place").Stage(),
	)
}

// Unlink plans the removal of target. Nothing is planned when target is
// absent. A target that is not a symlink is never removed: a noop step is
// planned and its message is returned as a warning.
func (c *Compiler) Unlink(target string) ([]types.Step, string) {
	isLink, err := c.state.IsSymlink(target)
	if err != nil {
		return nil, ""
	}
	if !isLink {
		msg := "Target exists but is not a symlink; skipping unlink for safety"
		return []types.Step{
			types.NoopStep(msg, map[string]string{types.PathTarget: target}),
		}, msg + ": " + target
	}
	return []types.Step{types.UnlinkStep(target, "Remove target symlink")}, ""
}

// CopySteps copies from to to. Atomic copies land at a temporary sibling
// first so a partial copy never occupies the destination.
func (c *Compiler) CopySteps(from, to string, kind types.LinkKind, atomic bool) []types.Step {
	steps := []types.Step{
		types.MkdirStep(filepath.Dir(to), "Ensure destination parent directory exists"),
	}

	if !atomic {
		return append(steps, types.CopyStep(from, to, kind, "Copy to destination"))
	}

	tmp := c.namer.TempPath(to)
	return append(steps,
		types.CopyStep(from, tmp, kind, "Copy to temp destination").Stage(),
		types.MoveStep(tmp, to, "Atomically move copied temp into place").Stage(),
	)
}
