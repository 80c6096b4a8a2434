package state

import (
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/linkany/pkg/types"
)

// Classifier inspects paths through a types.FS. It never mutates anything.
type Classifier struct {
	fs types.FS
}

// New creates a Classifier over the given filesystem
func New(fs types.FS) *Classifier {
	return &Classifier{fs: fs}
}

// Exists reports whether something is present at path. Symlinks count as
// present even when they dangle.
func (c *Classifier) Exists(path string) bool {
	_, err := c.fs.Lstat(path)
	return err == nil
}

// IsSymlink reports whether path is a symlink. It fails if path is missing.
func (c *Classifier) IsSymlink(path string) (bool, error) {
	info, err := c.fs.Lstat(path)
	if err != nil {
		return false, err
	}
	return info.Mode()&fs.ModeSymlink != 0, nil
}

// ResolvesTo reports whether target is a symlink whose value, resolved
// relative to target's own directory, is the same absolute path as source.
// Any error while inspecting yields false.
func (c *Classifier) ResolvesTo(target, source string) bool {
	isLink, err := c.IsSymlink(target)
	if err != nil || !isLink {
		return false
	}
	dest, err := c.fs.Readlink(target)
	if err != nil {
		return false
	}
	return ResolveLink(target, dest) == filepath.Clean(source)
}

// DetectKind returns KindDir when path resolves to a directory and KindFile
// otherwise. A dangling symlink is reported as a file.
func (c *Classifier) DetectKind(path string) (types.LinkKind, error) {
	info, err := c.fs.Stat(path)
	if err != nil {
		info, err = c.fs.Lstat(path)
		if err != nil {
			return "", err
		}
	}
	if info.IsDir() {
		return types.KindDir, nil
	}
	return types.KindFile, nil
}

// ResolveLink turns a link value read from link into an absolute, cleaned path
func ResolveLink(link, value string) string {
	if filepath.IsAbs(value) {
		return filepath.Clean(value)
	}
	return filepath.Clean(filepath.Join(filepath.Dir(link), value))
}
