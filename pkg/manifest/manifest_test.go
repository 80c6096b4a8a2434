// pkg/manifest/manifest_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test entry keys, upsert and remove

package manifest_test

import (
	"testing"

	"github.com/arthur-debert/linkany/pkg/errors"
	"github.com/arthur-debert/linkany/pkg/manifest"
	"github.com/arthur-debert/linkany/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func TestInstallEntryKey(t *testing.T) {
	assert.Equal(t, "bash", manifest.InstallEntry{ID: "bash", Target: "~/.bashrc"}.Key())
	assert.Equal(t, "~/.bashrc", manifest.InstallEntry{Target: "~/.bashrc"}.Key())
}

func TestInstallEntryIsAtomic(t *testing.T) {
	assert.True(t, manifest.InstallEntry{}.IsAtomic())
	assert.True(t, manifest.InstallEntry{Atomic: boolPtr(true)}.IsAtomic())
	assert.False(t, manifest.InstallEntry{Atomic: boolPtr(false)}.IsAtomic())
}

func TestUpsert(t *testing.T) {
	m := manifest.New()

	res, err := m.Upsert(manifest.InstallEntry{Source: "pkg/a", Target: "home/a", Extra: map[string]interface{}{"note": "x"}})
	require.NoError(t, err)
	assert.Equal(t, manifest.UpsertResult{Key: "home/a", Created: true}, res)

	res, err = m.Upsert(manifest.InstallEntry{Source: "pkg/b", Target: "home/a", Kind: types.KindFile, Atomic: boolPtr(false)})
	require.NoError(t, err)
	assert.Equal(t, manifest.UpsertResult{Key: "home/a", Updated: true}, res)

	require.Len(t, m.Installs, 1)
	entry := m.Installs[0]
	assert.Equal(t, "pkg/b", entry.Source)
	assert.Equal(t, types.KindFile, entry.Kind)
	assert.False(t, entry.IsAtomic())
	assert.Equal(t, "x", entry.Extra["note"], "fields not mentioned by the update survive")

	_, err = m.Upsert(manifest.InstallEntry{Source: "pkg/c"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestUpsertByID(t *testing.T) {
	m := manifest.New()
	_, err := m.Upsert(manifest.InstallEntry{ID: "shell", Source: "pkg/a", Target: "home/a"})
	require.NoError(t, err)

	res, err := m.Upsert(manifest.InstallEntry{ID: "shell", Source: "pkg/a", Target: "home/b"})
	require.NoError(t, err)
	assert.True(t, res.Updated)
	require.Len(t, m.Installs, 1)
	assert.Equal(t, "home/b", m.Installs[0].Target)
}

func TestFindAndRemove(t *testing.T) {
	m := manifest.New()
	m.Installs = []manifest.InstallEntry{
		{ID: "one", Source: "pkg/1", Target: "home/1"},
		{Source: "pkg/2", Target: "home/2"},
		{Source: "pkg/3", Target: "home/3"},
	}

	assert.Equal(t, 0, m.Find("one"))
	assert.Equal(t, 0, m.Find("home/1"), "entries with an id are also found by target")
	assert.Equal(t, 1, m.Find("home/2"))
	assert.Equal(t, -1, m.Find("missing"))
	assert.Equal(t, -1, m.Find(""))

	assert.True(t, m.Remove("home/2"))
	assert.False(t, m.Remove("home/2"))
	require.Len(t, m.Installs, 2)
	assert.Equal(t, "home/3", m.Installs[1].Target)
}

func TestClone(t *testing.T) {
	m := manifest.New()
	m.Installs = []manifest.InstallEntry{{Source: "a", Target: "b"}}

	c := m.Clone()
	c.Remove("b")

	assert.Len(t, m.Installs, 1)
	assert.Empty(t, c.Installs)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		m    *manifest.Manifest
		want string
	}{
		{
			name: "missing source",
			m:    &manifest.Manifest{Version: 1, Installs: []manifest.InstallEntry{{Target: "t"}}},
			want: "Invalid manifest: installs[0].source is required",
		},
		{
			name: "bad kind",
			m:    &manifest.Manifest{Version: 1, Installs: []manifest.InstallEntry{{Source: "s", Target: "t", Kind: "socket"}}},
			want: `Invalid manifest: installs[0].kind must be one of [file dir], got "socket"`,
		},
		{
			name: "duplicate key",
			m: &manifest.Manifest{Version: 1, Installs: []manifest.InstallEntry{
				{Source: "s1", Target: "t"}, {Source: "s2", Target: "t"},
			}},
			want: `Invalid manifest: installs[0] and installs[1] share the key "t"`,
		},
		{
			name: "version",
			m:    &manifest.Manifest{Version: 2},
			want: "Unsupported manifest version: 2 (expected 1)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.m.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrManifestInvalid))
			assert.Equal(t, tt.want, errors.Describe(err))
		})
	}

	assert.NoError(t, manifest.New().Validate())
}
