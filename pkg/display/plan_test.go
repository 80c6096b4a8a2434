package display_test

import (
	"testing"

	"github.com/arthur-debert/linkany/pkg/display"
	"github.com/arthur-debert/linkany/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestFormatPlanEmpty(t *testing.T) {
	assert.Equal(t, "No changes.", display.FormatPlan(nil))
}

func TestFormatPlan(t *testing.T) {
	steps := []types.Step{
		types.MkdirStep("/home", "Ensure target parent directory exists"),
		types.SymlinkStep("/pkg/a", "/home/a.tmp.x", types.KindFile, "Create symlink at temp path"),
		types.MoveStep("/home/a.tmp.x", "/home/a", "Atomically move temp symlink into place"),
		types.NoopStep("Nothing to do", nil),
		types.NoopStep("Custom", map[string]string{"zeta": "z", "alpha": "a", types.PathTarget: "/t"}),
	}

	want := "- mkdirp: Ensure target parent directory exists (dir=/home)\n" +
		"- symlink: Create symlink at temp path (source=/pkg/a target=/home/a.tmp.x kind=file)\n" +
		"- move: Atomically move temp symlink into place (from=/home/a.tmp.x to=/home/a)\n" +
		"- noop: Nothing to do\n" +
		"- noop: Custom (target=/t alpha=a zeta=z)"
	assert.Equal(t, want, display.FormatPlan(steps))
}
