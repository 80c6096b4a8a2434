// pkg/types/step_test.go
// TEST TYPE: Unit
// DEPENDENCIES: None
// PURPOSE: Test step constructors, staged paths and undo hints

package types_test

import (
	"testing"

	"github.com/arthur-debert/linkany/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestStepKind_Valid(t *testing.T) {
	for _, k := range types.StepKinds {
		assert.True(t, k.Valid(), k)
	}
	assert.False(t, types.StepKind("chmod").Valid())
	assert.False(t, types.StepKind("").Valid())
}

func TestStepKind_External(t *testing.T) {
	assert.True(t, types.StepWriteManifest.External())
	assert.True(t, types.StepAudit.External())
	assert.False(t, types.StepSymlink.External())
	assert.False(t, types.StepNoop.External())
}

func TestStagedPath(t *testing.T) {
	tests := []struct {
		name string
		step types.Step
		want string
	}{
		{"symlink stages its target", types.SymlinkStep("/s", "/t.tmp.1", types.KindFile, "").Stage(), "/t.tmp.1"},
		{"copy stages its destination", types.CopyStep("/a", "/b.tmp.1", "", "").Stage(), "/b.tmp.1"},
		{"move stages its origin", types.MoveStep("/t.tmp.1", "/t", "").Stage(), "/t.tmp.1"},
		{"unstaged move stages nothing", types.MoveStep("/report.tmp.txt", "/report.tmp.txt.bak.1.x", ""), ""},
		{"unstaged symlink stages nothing", types.SymlinkStep("/s", "/t.tmp.1", types.KindFile, ""), ""},
		{"mkdir stages nothing", types.MkdirStep("/d", "").Stage(), ""},
		{"unlink stages nothing", types.UnlinkStep("/t", "").Stage(), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.step.StagedPath())
		})
	}
}

func TestSymlinkStep_KindIsOptional(t *testing.T) {
	withKind := types.SymlinkStep("/s", "/t", types.KindDir, "link")
	assert.Equal(t, "dir", withKind.Path(types.PathKind))

	withoutKind := types.SymlinkStep("/s", "/t", "", "link")
	_, ok := withoutKind.Paths[types.PathKind]
	assert.False(t, ok)
}

func TestWithUndo_DoesNotShareState(t *testing.T) {
	base := types.MoveStep("/a", "/b", "move")
	undone := base.WithUndo(types.Undo{
		Kind:    types.StepMove,
		Message: "Rollback: move back",
		Paths:   map[string]string{types.PathFrom: "/b", types.PathTo: "/a"},
	})

	assert.Nil(t, base.Undo)
	if assert.NotNil(t, undone.Undo) {
		step := undone.Undo.AsStep()
		assert.Equal(t, types.StepMove, step.Kind)
		assert.Equal(t, "/b", step.Path(types.PathFrom))

		step.Paths[types.PathFrom] = "/elsewhere"
		assert.Equal(t, "/b", undone.Undo.Paths[types.PathFrom], "AsStep copies paths")
	}
}

func TestPath_NilPaths(t *testing.T) {
	assert.Equal(t, "", types.Step{Kind: types.StepNoop}.Path(types.PathTarget))
}

func TestParseLinkKind(t *testing.T) {
	kind, err := types.ParseLinkKind("dir")
	assert.NoError(t, err)
	assert.Equal(t, types.KindDir, kind)

	kind, err = types.ParseLinkKind("")
	assert.NoError(t, err)
	assert.Equal(t, types.LinkKind(""), kind)

	_, err = types.ParseLinkKind("socket")
	assert.Error(t, err)
}
