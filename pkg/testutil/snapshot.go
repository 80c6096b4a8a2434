package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

// Snapshot walks root without following symlinks and returns one entry per
// path: "dir", "link:<value>" or "file:<content>". Two equal snapshots mean
// nothing under root was created, removed, retargeted or rewritten.
func Snapshot(t *testing.T, root string) map[string]string {
	t.Helper()

	fs := afero.NewOsFs()
	out := make(map[string]string)
	err := afero.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(root, path)
		switch {
		case info.Mode()&os.ModeSymlink != 0:
			value, err := os.Readlink(path)
			if err != nil {
				return err
			}
			out[rel] = "link:" + value
		case info.IsDir():
			out[rel] = "dir"
		default:
			data, err := afero.ReadFile(fs, path)
			if err != nil {
				return err
			}
			out[rel] = "file:" + string(data)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to snapshot %s: %v", root, err)
	}
	return out
}
