package types

import (
	"io/fs"
)

// FS is the filesystem capability the engine runs against. Everything the
// classifier reads and everything the executor mutates goes through it.
type FS interface {
	// Inspection
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
	Readlink(name string) (string, error)
	ReadFile(name string) ([]byte, error)

	// Mutation
	MkdirAll(path string, perm fs.FileMode) error
	WriteFile(name string, data []byte, perm fs.FileMode) error
	AppendFile(name string, data []byte, perm fs.FileMode) error
	Symlink(oldname, newname string) error
	Rename(oldpath, newpath string) error
	Remove(name string) error
	RemoveAll(path string) error

	// Copy copies src to dst recursively, following symlinks so that dst
	// holds real content.
	Copy(src, dst string) error
}
