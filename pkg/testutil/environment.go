// pkg/testutil/environment.go
// DEPENDENCIES: pkg/filesystem
// PURPOSE: Isolated on-disk environments for linkany tests

package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/linkany/pkg/filesystem"
	"github.com/arthur-debert/linkany/pkg/types"
)

// TestEnvironment is a temp directory laid out like a small link farm
type TestEnvironment struct {
	Root         string
	PkgDir       string
	HomeDir      string
	ManifestPath string
	FS           types.FS

	t *testing.T
}

// NewTestEnvironment creates pkg/ and home/ under a fresh temp dir. HOME
// and the XDG directories point inside it so nothing leaks into the real
// user environment.
func NewTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()

	root := t.TempDir()
	env := &TestEnvironment{
		Root:         root,
		PkgDir:       filepath.Join(root, "pkg"),
		HomeDir:      filepath.Join(root, "home"),
		ManifestPath: filepath.Join(root, "linkany.manifest.json"),
		FS:           filesystem.NewOS(),
		t:            t,
	}

	for _, dir := range []string{env.PkgDir, env.HomeDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create %s: %v", dir, err)
		}
	}

	t.Setenv("HOME", env.HomeDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(env.HomeDir, ".config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(env.HomeDir, ".local", "state"))

	return env
}

// Pkg returns a path under the package root
func (env *TestEnvironment) Pkg(elem ...string) string {
	return filepath.Join(append([]string{env.PkgDir}, elem...)...)
}

// Home returns a path under the home directory
func (env *TestEnvironment) Home(elem ...string) string {
	return filepath.Join(append([]string{env.HomeDir}, elem...)...)
}

// WriteFile creates path with content, creating parents as needed
func (env *TestEnvironment) WriteFile(path, content string) string {
	env.t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		env.t.Fatalf("Failed to create parent of %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		env.t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

// Mkdir creates a directory and its parents
func (env *TestEnvironment) Mkdir(path string) string {
	env.t.Helper()
	if err := os.MkdirAll(path, 0755); err != nil {
		env.t.Fatalf("Failed to create directory %s: %v", path, err)
	}
	return path
}

// Symlink creates link pointing at value, creating link's parent
func (env *TestEnvironment) Symlink(value, link string) string {
	env.t.Helper()
	if err := os.MkdirAll(filepath.Dir(link), 0755); err != nil {
		env.t.Fatalf("Failed to create parent of %s: %v", link, err)
	}
	if err := os.Symlink(value, link); err != nil {
		env.t.Fatalf("Failed to create symlink %s: %v", link, err)
	}
	return link
}

// ReadFile returns the content of path, following symlinks
func (env *TestEnvironment) ReadFile(path string) string {
	env.t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		env.t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}

// Snapshot describes the whole environment tree
func (env *TestEnvironment) Snapshot() map[string]string {
	env.t.Helper()
	return Snapshot(env.t, env.Root)
}
