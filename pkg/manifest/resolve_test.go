package manifest_test

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/linkany/pkg/errors"
	"github.com/arthur-debert/linkany/pkg/manifest"
	"github.com/arthur-debert/linkany/pkg/types"
	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseDir(t *testing.T) {
	dir, err := manifest.BaseDir("/etc/linkany/linkany.json")
	require.NoError(t, err)
	assert.Equal(t, "/etc/linkany", dir)
}

func TestResolvePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })

	tests := []struct {
		in   string
		want string
	}{
		{"/abs/./path", "/abs/path"},
		{"rel/path", "/base/rel/path"},
		{"../up", "/up"},
		{"~/.bashrc", filepath.Join(home, ".bashrc")},
		{"", ""},
	}

	for _, tt := range tests {
		got, err := manifest.ResolvePath("/base", tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestResolveAll(t *testing.T) {
	atomic := false
	m := manifest.New()
	m.Installs = []manifest.InstallEntry{
		{ID: "a", Source: "pkg/a", Target: "/home/a", Kind: types.KindDir},
		{Source: "pkg/b", Target: "home/b", Atomic: &atomic},
	}

	resolved, err := m.ResolveAll("/base")
	require.NoError(t, err)
	assert.Equal(t, []manifest.Resolved{
		{Key: "a", Source: "/base/pkg/a", Target: "/home/a", Kind: types.KindDir, Atomic: true},
		{Key: "home/b", Source: "/base/pkg/b", Target: "/base/home/b", Atomic: false},
	}, resolved)
}

func TestResolveRejectsSamePath(t *testing.T) {
	_, err := manifest.InstallEntry{Source: "home/a", Target: "/base/home/a"}.Resolve("/base")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	m := manifest.New()
	m.Installs = []manifest.InstallEntry{{Source: "x", Target: "./x"}}
	_, err = m.ResolveAll("/base")
	assert.Error(t, err)
}
