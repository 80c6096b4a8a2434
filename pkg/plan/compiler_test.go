package plan_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/linkany/pkg/errors"
	"github.com/arthur-debert/linkany/pkg/filesystem"
	"github.com/arthur-debert/linkany/pkg/plan"
	"github.com/arthur-debert/linkany/pkg/types"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCompiler() *plan.Compiler {
	return plan.New(filesystem.NewOS(), plan.NewNamer(clockwork.NewFakeClock()))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func kinds(steps []types.Step) []types.StepKind {
	out := make([]types.StepKind, 0, len(steps))
	for _, s := range steps {
		out = append(out, s.Kind)
	}
	return out
}

func indexOf(steps []types.Step, pred func(types.Step) bool) int {
	for i, s := range steps {
		if pred(s) {
			return i
		}
	}
	return -1
}

func TestCompileLinkMapping_AlreadyLinked(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "pkg", "bashrc")
	target := filepath.Join(dir, "home", ".bashrc")
	writeFile(t, source, "x")
	require.NoError(t, os.MkdirAll(filepath.Dir(target), 0755))
	require.NoError(t, os.Symlink(source, target))

	got := newCompiler().CompileLinkMapping(plan.Mapping{Source: source, Target: target, Atomic: true})

	require.NoError(t, got.Err)
	assert.Equal(t, types.DispositionNoop, got.Disposition)
	assert.Empty(t, got.Steps)
}

func TestCompileLinkMapping_BothExist(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "pkg", "bashrc")
	target := filepath.Join(dir, "home", ".bashrc")
	writeFile(t, source, "x")
	writeFile(t, target, "y")

	got := newCompiler().CompileLinkMapping(plan.Mapping{Source: source, Target: target, Atomic: true})

	require.Error(t, got.Err)
	assert.True(t, errors.IsErrorCode(got.Err, errors.ErrConflict))
	assert.Contains(t, got.Err.Error(), "both exist")
	assert.Contains(t, got.Err.Error(), source)
	assert.Contains(t, got.Err.Error(), target)
	assert.Equal(t, types.DispositionConflict, got.Disposition)
	assert.Empty(t, got.Steps)
}

func TestCompileLinkMapping_CreatesMissingSource(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "pkg", "bashrc")
	target := filepath.Join(dir, "home", ".bashrc")

	got := newCompiler().CompileLinkMapping(plan.Mapping{Source: source, Target: target, Atomic: true})

	require.NoError(t, got.Err)
	assert.Equal(t, types.DispositionCreate, got.Disposition)
	assert.Equal(t, types.KindFile, got.Kind)
	assert.Equal(t, []types.StepKind{
		types.StepMkdirp, types.StepTouch,
		types.StepMkdirp, types.StepSymlink, types.StepMove,
	}, kinds(got.Steps))

	tmp := got.Steps[3].Path(types.PathTarget)
	assert.True(t, plan.IsTempPath(tmp))
	assert.Equal(t, source, got.Steps[3].Path(types.PathSource))
	assert.Equal(t, tmp, got.Steps[4].Path(types.PathFrom))
	assert.Equal(t, target, got.Steps[4].Path(types.PathTo))
}

func TestCompileLinkMapping_DirKindNonAtomic(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "pkg", "nvim")
	target := filepath.Join(dir, "home", ".config", "nvim")

	got := newCompiler().CompileLinkMapping(plan.Mapping{
		Source: source, Target: target, Kind: types.KindDir, Atomic: false,
	})

	require.NoError(t, got.Err)
	assert.Equal(t, []types.StepKind{
		types.StepMkdirp, types.StepMkdirp,
		types.StepMkdirp, types.StepSymlink,
	}, kinds(got.Steps))
	assert.Equal(t, source, got.Steps[1].Path(types.PathDir))
	assert.Equal(t, target, got.Steps[3].Path(types.PathTarget))
	assert.Equal(t, "dir", got.Steps[3].Path(types.PathKind))
}

func TestCompileLinkMapping_DetectsSourceKind(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "pkg", "nvim")
	require.NoError(t, os.MkdirAll(source, 0755))

	got := newCompiler().CompileLinkMapping(plan.Mapping{
		Source: source, Target: filepath.Join(dir, "home", "nvim"), Atomic: true,
	})

	require.NoError(t, got.Err)
	assert.Equal(t, types.KindDir, got.Kind)
	assert.Equal(t, []types.StepKind{types.StepMkdirp, types.StepSymlink, types.StepMove}, kinds(got.Steps))
}

func TestCompileLinkMapping_KindMismatch(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "pkg", "bashrc")
	writeFile(t, source, "x")

	got := newCompiler().CompileLinkMapping(plan.Mapping{
		Source: source, Target: filepath.Join(dir, "home", ".bashrc"), Kind: types.KindDir, Atomic: true,
	})

	assert.True(t, errors.IsErrorCode(got.Err, errors.ErrKindMismatch))
	assert.Equal(t, types.DispositionConflict, got.Disposition)
	assert.Empty(t, got.Steps)
}

func TestCompileLinkMapping_ReplacesForeignSymlink(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "pkg", "bashrc")
	other := filepath.Join(dir, "other")
	target := filepath.Join(dir, "home", ".bashrc")
	writeFile(t, source, "x")
	writeFile(t, other, "y")
	require.NoError(t, os.MkdirAll(filepath.Dir(target), 0755))
	require.NoError(t, os.Symlink(other, target))

	got := newCompiler().CompileLinkMapping(plan.Mapping{Source: source, Target: target, Atomic: true})

	require.NoError(t, got.Err)
	assert.Equal(t, types.DispositionReplace, got.Disposition)
	assert.Equal(t, []types.StepKind{
		types.StepUnlink, types.StepMkdirp, types.StepSymlink, types.StepMove,
	}, kinds(got.Steps))
	assert.Equal(t, target, got.Steps[0].Path(types.PathTarget))
}

func TestCompileLinkMapping_RefusesSymlinkMigration(t *testing.T) {
	dir := t.TempDir()
	other := filepath.Join(dir, "other")
	target := filepath.Join(dir, "home", ".bashrc")
	writeFile(t, other, "y")
	require.NoError(t, os.MkdirAll(filepath.Dir(target), 0755))
	require.NoError(t, os.Symlink(other, target))

	got := newCompiler().CompileLinkMapping(plan.Mapping{
		Source: filepath.Join(dir, "pkg", "bashrc"), Target: target, Atomic: true,
	})

	assert.True(t, errors.IsErrorCode(got.Err, errors.ErrSymlinkMigration))
	assert.Contains(t, got.Err.Error(), "Refusing to migrate: target is an existing symlink")
	assert.Empty(t, got.Steps)
}

func TestCompileLinkMapping_Migration(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "pkg", "bashrc")
	target := filepath.Join(dir, "home", ".bashrc")
	writeFile(t, target, "content")

	got := newCompiler().CompileLinkMapping(plan.Mapping{Source: source, Target: target, Atomic: true})

	require.NoError(t, got.Err)
	assert.Equal(t, types.DispositionReplace, got.Disposition)
	assert.Equal(t, []types.StepKind{
		types.StepMkdirp, types.StepCopy, types.StepMove,
		types.StepMove, types.StepMkdirp, types.StepSymlink, types.StepMove,
	}, kinds(got.Steps))

	copyStep := got.Steps[1]
	assert.Equal(t, target, copyStep.Path(types.PathFrom))
	assert.True(t, plan.IsTempPath(copyStep.Path(types.PathTo)))

	backup := indexOf(got.Steps, func(s types.Step) bool {
		return s.Kind == types.StepMove && s.Path(types.PathFrom) == target
	})
	commit := indexOf(got.Steps, func(s types.Step) bool {
		return s.Kind == types.StepMove && s.Path(types.PathTo) == target
	})
	require.NotEqual(t, -1, backup)
	require.NotEqual(t, -1, commit)
	assert.Less(t, backup, commit, "target must be moved aside before the link takes its place")

	backupStep := got.Steps[backup]
	assert.True(t, plan.IsBackupPath(backupStep.Path(types.PathTo)))
	require.NotNil(t, backupStep.Undo)
	assert.Equal(t, types.StepMove, backupStep.Undo.Kind)
	assert.Equal(t, backupStep.Path(types.PathTo), backupStep.Undo.Paths[types.PathFrom])
	assert.Equal(t, target, backupStep.Undo.Paths[types.PathTo])

	require.NotNil(t, got.Steps[commit].Undo)
	assert.Equal(t, target, got.Steps[commit].Undo.Paths[types.PathFrom])
}

func TestCompileLinkMapping_MigrationKindMismatch(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "home", ".bashrc")
	writeFile(t, target, "content")

	got := newCompiler().CompileLinkMapping(plan.Mapping{
		Source: filepath.Join(dir, "pkg", "bashrc"), Target: target, Kind: types.KindDir, Atomic: true,
	})

	assert.True(t, errors.IsErrorCode(got.Err, errors.ErrKindMismatch))
	assert.Empty(t, got.Steps)
}

func TestCompileInstallAll(t *testing.T) {
	dir := t.TempDir()
	linkedSource := filepath.Join(dir, "pkg", "a")
	linkedTarget := filepath.Join(dir, "home", "a")
	newSource := filepath.Join(dir, "pkg", "b")
	newTarget := filepath.Join(dir, "home", "b")
	writeFile(t, linkedSource, "a")
	writeFile(t, newSource, "b")
	require.NoError(t, os.MkdirAll(filepath.Dir(linkedTarget), 0755))
	require.NoError(t, os.Symlink(linkedSource, linkedTarget))

	steps, err := newCompiler().CompileInstallAll([]plan.Entry{
		{Key: "a", Mapping: plan.Mapping{Source: linkedSource, Target: linkedTarget, Atomic: true}},
		{Key: "b", Mapping: plan.Mapping{Source: newSource, Target: newTarget, Atomic: true}},
	})

	require.NoError(t, err)
	assert.Equal(t, []types.StepKind{types.StepMkdirp, types.StepSymlink, types.StepMove}, kinds(steps))
	assert.Equal(t, newTarget, steps[2].Path(types.PathTo))
}

func TestCompileInstallAll_AlreadyConverged(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "pkg", "a")
	target := filepath.Join(dir, "home", "a")
	writeFile(t, source, "a")
	require.NoError(t, os.MkdirAll(filepath.Dir(target), 0755))
	require.NoError(t, os.Symlink(source, target))

	steps, err := newCompiler().CompileInstallAll([]plan.Entry{
		{Key: "a", Mapping: plan.Mapping{Source: source, Target: target, Atomic: true}},
	})

	require.NoError(t, err)
	assert.Empty(t, steps)
}

func TestCompileInstallAll_FailsClosed(t *testing.T) {
	dir := t.TempDir()
	okSource := filepath.Join(dir, "pkg", "ok")
	writeFile(t, okSource, "ok")
	conflictSource := filepath.Join(dir, "pkg", "conflict")
	conflictTarget := filepath.Join(dir, "home", "conflict")
	writeFile(t, conflictSource, "c")
	writeFile(t, conflictTarget, "real")

	ok := plan.Entry{Key: "ok", Mapping: plan.Mapping{Source: okSource, Target: filepath.Join(dir, "home", "ok"), Atomic: true}}

	t.Run("missing source", func(t *testing.T) {
		missing := plan.Entry{Key: "missing", Mapping: plan.Mapping{
			Source: filepath.Join(dir, "pkg", "missing"), Target: filepath.Join(dir, "home", "missing"), Atomic: true,
		}}
		steps, err := newCompiler().CompileInstallAll([]plan.Entry{ok, missing})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrSourceMissing))
		assert.Contains(t, err.Error(), "Source missing: "+missing.Source)
		assert.Empty(t, steps)
	})

	t.Run("real target", func(t *testing.T) {
		conflict := plan.Entry{Key: "conflict", Mapping: plan.Mapping{Source: conflictSource, Target: conflictTarget, Atomic: true}}
		steps, err := newCompiler().CompileInstallAll([]plan.Entry{ok, conflict})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrTargetNotSymlink))
		assert.Contains(t, err.Error(), "Conflict: target exists and is not a symlink: "+conflictTarget)
		assert.Empty(t, steps)
	})
}

func TestCompileInstallAll_ForeignSymlink(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "pkg", "a")
	other := filepath.Join(dir, "other")
	target := filepath.Join(dir, "home", "a")
	writeFile(t, source, "a")
	writeFile(t, other, "o")
	require.NoError(t, os.MkdirAll(filepath.Dir(target), 0755))
	require.NoError(t, os.Symlink(other, target))

	atomic, err := newCompiler().CompileInstallAll([]plan.Entry{
		{Key: "a", Mapping: plan.Mapping{Source: source, Target: target, Atomic: true}},
	})
	require.NoError(t, err)
	assert.Equal(t, []types.StepKind{types.StepMove, types.StepMkdirp, types.StepSymlink, types.StepMove}, kinds(atomic))
	assert.True(t, plan.IsBackupPath(atomic[0].Path(types.PathTo)))
	assert.NotNil(t, atomic[0].Undo)

	direct, err := newCompiler().CompileInstallAll([]plan.Entry{
		{Key: "a", Mapping: plan.Mapping{Source: source, Target: target, Atomic: false}},
	})
	require.NoError(t, err)
	assert.Equal(t, []types.StepKind{types.StepUnlink, types.StepMkdirp, types.StepSymlink}, kinds(direct))
}

func TestCompileUninstallAll(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "pkg", "a")
	link := filepath.Join(dir, "home", "a")
	realTarget := filepath.Join(dir, "home", "real")
	writeFile(t, source, "a")
	writeFile(t, realTarget, "keep me")
	require.NoError(t, os.Symlink(source, link))

	steps, warnings := newCompiler().CompileUninstallAll([]plan.Entry{
		{Key: "a", Mapping: plan.Mapping{Source: source, Target: link}},
		{Key: "real", Mapping: plan.Mapping{Source: source, Target: realTarget}},
		{Key: "gone", Mapping: plan.Mapping{Source: source, Target: filepath.Join(dir, "home", "gone")}},
	})

	assert.Equal(t, []types.StepKind{types.StepUnlink, types.StepNoop}, kinds(steps))
	assert.Equal(t, link, steps[0].Path(types.PathTarget))
	assert.Equal(t, realTarget, steps[1].Path(types.PathTarget))
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "not a symlink")
	assert.Contains(t, warnings[0], realTarget)
}

func TestCompileInstallAll_DanglingTarget(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "pkg", "gitconfig")
	target := filepath.Join(dir, "home", ".gitconfig")
	writeFile(t, source, "[user]")
	require.NoError(t, os.MkdirAll(filepath.Dir(target), 0755))
	require.NoError(t, os.Symlink(filepath.Join(dir, "gone"), target))

	steps, err := newCompiler().CompileInstallAll([]plan.Entry{
		{Key: target, Mapping: plan.Mapping{Source: source, Target: target, Atomic: false}},
	})

	require.NoError(t, err)
	assert.Equal(t, []types.StepKind{types.StepUnlink, types.StepMkdirp, types.StepSymlink}, kinds(steps))
}

func TestUnlink(t *testing.T) {
	dir := t.TempDir()
	c := newCompiler()

	t.Run("absent target", func(t *testing.T) {
		steps, warning := c.Unlink(filepath.Join(dir, "missing"))
		assert.Empty(t, steps)
		assert.Empty(t, warning)
	})

	t.Run("real file is left alone", func(t *testing.T) {
		target := filepath.Join(dir, "real")
		writeFile(t, target, "keep")

		steps, warning := c.Unlink(target)

		assert.Equal(t, []types.StepKind{types.StepNoop}, kinds(steps))
		assert.Contains(t, warning, "not a symlink")
		assert.Contains(t, warning, target)
	})

	t.Run("symlink is unlinked", func(t *testing.T) {
		target := filepath.Join(dir, "link")
		require.NoError(t, os.Symlink(filepath.Join(dir, "real"), target))

		steps, warning := c.Unlink(target)

		assert.Equal(t, []types.StepKind{types.StepUnlink}, kinds(steps))
		assert.Equal(t, target, steps[0].Path(types.PathTarget))
		assert.Empty(t, warning)
	})
}

func TestCompileLinkMapping_MigrationStagesOnlyTempPaths(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "pkg", "report.txt")
	target := filepath.Join(dir, "home", "report.tmp.txt")
	writeFile(t, target, "content")

	got := newCompiler().CompileLinkMapping(plan.Mapping{Source: source, Target: target, Atomic: true})
	require.NoError(t, got.Err)

	backup := indexOf(got.Steps, func(s types.Step) bool {
		return s.Kind == types.StepMove && s.Path(types.PathFrom) == target
	})
	require.GreaterOrEqual(t, backup, 0)
	assert.Empty(t, got.Steps[backup].StagedPath(), "the user's target is never staged")

	for _, s := range got.Steps {
		if staged := s.StagedPath(); staged != "" {
			assert.NotEqual(t, target, staged)
			assert.True(t, plan.IsTempPath(staged), "staged path %s", staged)
		}
	}
}
