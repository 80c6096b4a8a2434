package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/linkany/pkg/state"
	"github.com/arthur-debert/linkany/pkg/types"
	"github.com/stretchr/testify/assert"
)

// AssertLinksTo checks that target is a symlink resolving to source
func AssertLinksTo(t *testing.T, target, source string) bool {
	t.Helper()

	info, err := os.Lstat(target)
	if !assert.NoError(t, err, "target %s should exist", target) {
		return false
	}
	if !assert.True(t, info.Mode()&os.ModeSymlink != 0, "%s should be a symlink", target) {
		return false
	}
	value, err := os.Readlink(target)
	if !assert.NoError(t, err) {
		return false
	}
	return assert.Equal(t, filepath.Clean(source), state.ResolveLink(target, value),
		"%s should link to %s", target, source)
}

// AssertNotExists checks that nothing, not even a dangling link, is at path
func AssertNotExists(t *testing.T, path string) bool {
	t.Helper()
	_, err := os.Lstat(path)
	return assert.True(t, os.IsNotExist(err), "%s should not exist", path)
}

// AssertStepKinds checks the kinds of steps in order
func AssertStepKinds(t *testing.T, steps []types.Step, want ...types.StepKind) bool {
	t.Helper()
	got := make([]types.StepKind, 0, len(steps))
	for _, s := range steps {
		got = append(got, s.Kind)
	}
	if want == nil {
		want = []types.StepKind{}
	}
	return assert.Equal(t, want, got)
}

// AssertStepStatuses checks the statuses of steps in order
func AssertStepStatuses(t *testing.T, steps []types.Step, want ...types.StepStatus) bool {
	t.Helper()
	got := make([]types.StepStatus, 0, len(steps))
	for _, s := range steps {
		got = append(got, s.Status)
	}
	if want == nil {
		want = []types.StepStatus{}
	}
	return assert.Equal(t, want, got)
}

// FindBackups returns the backup siblings of target
func FindBackups(t *testing.T, target string) []string {
	t.Helper()
	matches, err := filepath.Glob(target + ".bak.*")
	if err != nil {
		t.Fatalf("Failed to glob backups of %s: %v", target, err)
	}
	return matches
}
