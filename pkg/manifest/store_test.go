// pkg/manifest/store_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: Temp directories, Mock FS
// PURPOSE: Test loading and atomically saving manifests on disk

package manifest_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	lerrors "github.com/arthur-debert/linkany/pkg/errors"
	"github.com/arthur-debert/linkany/pkg/filesystem"
	"github.com/arthur-debert/linkany/pkg/manifest"
	"github.com/arthur-debert/linkany/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLoadMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "linkany.json")

	_, err := manifest.Load(filesystem.NewOS(), path)
	require.Error(t, err)
	assert.True(t, lerrors.IsErrorCode(err, lerrors.ErrManifestNotFound))
	assert.Equal(t, "Manifest not found: "+path, lerrors.Describe(err))

	m, err := manifest.LoadOrCreate(filesystem.NewOS(), path)
	require.NoError(t, err)
	assert.Equal(t, 1, m.Version)
	assert.Empty(t, m.Installs)
	assert.NoFileExists(t, path, "LoadOrCreate never writes")
}

func TestLoadOrCreateKeepsParseErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "linkany.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version": 3, "installs": []}`), 0644))

	_, err := manifest.LoadOrCreate(filesystem.NewOS(), path)
	assert.True(t, lerrors.IsErrorCode(err, lerrors.ErrManifestInvalid))
}

func TestSaveAndLoad(t *testing.T) {
	for _, name := range []string{"linkany.json", "linkany.yaml"} {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "nested", name)
			fs := filesystem.NewOS()

			m := manifest.New()
			_, err := m.Upsert(manifest.InstallEntry{Source: "pkg/a", Target: "home/a"})
			require.NoError(t, err)

			require.NoError(t, manifest.Save(fs, path, m))

			entries, err := os.ReadDir(filepath.Dir(path))
			require.NoError(t, err)
			require.Len(t, entries, 1, "no temporary files are left behind")

			back, err := manifest.Load(fs, path)
			require.NoError(t, err)
			require.Len(t, back.Installs, 1)
			assert.Equal(t, "home/a", back.Installs[0].Target)
		})
	}
}

func TestSaveJSONLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "linkany.json")
	require.NoError(t, manifest.Save(filesystem.NewOS(), path, manifest.New()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(data), "}\n"))
	assert.Contains(t, string(data), "\n  \"installs\": []")
}

func TestSaveCleansUpOnRenameFailure(t *testing.T) {
	fs := new(testutil.MockFS)
	fs.On("MkdirAll", "/m", mock.Anything).Return(nil)
	fs.On("WriteFile", mock.MatchedBy(func(p string) bool {
		return strings.HasPrefix(p, "/m/linkany.json.tmp.")
	}), mock.Anything, mock.Anything).Return(nil)
	fs.On("Rename", mock.Anything, "/m/linkany.json").Return(errors.New("read-only file system"))
	fs.On("Remove", mock.MatchedBy(func(p string) bool {
		return strings.HasPrefix(p, "/m/linkany.json.tmp.")
	})).Return(nil)

	err := manifest.Save(fs, "/m/linkany.json", manifest.New())

	require.Error(t, err)
	assert.True(t, lerrors.IsErrorCode(err, lerrors.ErrManifestWrite))
	assert.Contains(t, err.Error(), "read-only file system")
	fs.AssertExpectations(t)
}
