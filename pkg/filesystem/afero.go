package filesystem

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arthur-debert/linkany/pkg/types"
	"github.com/spf13/afero"
)

// aferoFS implements types.FS using afero
type aferoFS struct {
	fs afero.Fs
}

// NewAferoFS creates a new afero filesystem implementation
func NewAferoFS(fs afero.Fs) types.FS {
	return &aferoFS{fs: fs}
}

// NewOS creates the OS-backed filesystem used outside of tests
func NewOS() types.FS {
	return NewAferoFS(afero.NewOsFs())
}

func (a *aferoFS) Stat(name string) (fs.FileInfo, error) {
	return a.fs.Stat(name)
}

func (a *aferoFS) Lstat(name string) (fs.FileInfo, error) {
	if l, ok := a.fs.(afero.Lstater); ok {
		info, _, err := l.LstatIfPossible(name)
		return info, err
	}
	return a.fs.Stat(name)
}

func (a *aferoFS) Readlink(name string) (string, error) {
	if r, ok := a.fs.(afero.LinkReader); ok {
		return r.ReadlinkIfPossible(name)
	}
	return "", &os.PathError{Op: "readlink", Path: name, Err: afero.ErrNoReadlink}
}

func (a *aferoFS) ReadFile(name string) ([]byte, error) {
	info, err := a.fs.Stat(name)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrInvalid}
	}
	return afero.ReadFile(a.fs, name)
}

func (a *aferoFS) MkdirAll(path string, perm fs.FileMode) error {
	return a.fs.MkdirAll(path, perm)
}

func (a *aferoFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return afero.WriteFile(a.fs, name, data, perm)
}

func (a *aferoFS) AppendFile(name string, data []byte, perm fs.FileMode) error {
	f, err := a.fs.OpenFile(name, os.O_CREATE|os.O_APPEND|os.O_WRONLY, perm)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func (a *aferoFS) Symlink(oldname, newname string) error {
	if l, ok := a.fs.(afero.Linker); ok {
		return l.SymlinkIfPossible(oldname, newname)
	}
	return &os.LinkError{Op: "symlink", Old: oldname, New: newname, Err: afero.ErrNoSymlink}
}

func (a *aferoFS) Rename(oldpath, newpath string) error {
	return a.fs.Rename(oldpath, newpath)
}

func (a *aferoFS) Remove(name string) error {
	return a.fs.Remove(name)
}

func (a *aferoFS) RemoveAll(path string) error {
	return a.fs.RemoveAll(path)
}

// Copy follows symlinks at every level, so the destination never contains
// links back into the source tree.
func (a *aferoFS) Copy(src, dst string) error {
	info, err := a.fs.Stat(src)
	if err != nil {
		return fmt.Errorf("failed to stat copy source: %w", err)
	}
	if err := a.fs.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("failed to create copy destination parent: %w", err)
	}
	return a.copyEntry(src, dst, info)
}

func (a *aferoFS) copyEntry(src, dst string, info fs.FileInfo) error {
	if !info.IsDir() {
		return a.copyFile(src, dst, info.Mode().Perm())
	}

	if err := a.fs.MkdirAll(dst, info.Mode().Perm()); err != nil {
		return err
	}
	entries, err := afero.ReadDir(a.fs, src)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		childSrc := filepath.Join(src, entry.Name())
		childInfo, err := a.fs.Stat(childSrc)
		if err != nil {
			return fmt.Errorf("failed to stat %s: %w", childSrc, err)
		}
		if err := a.copyEntry(childSrc, filepath.Join(dst, entry.Name()), childInfo); err != nil {
			return err
		}
	}
	return nil
}

func (a *aferoFS) copyFile(src, dst string, perm fs.FileMode) error {
	data, err := afero.ReadFile(a.fs, src)
	if err != nil {
		return err
	}
	return afero.WriteFile(a.fs, dst, data, perm)
}
