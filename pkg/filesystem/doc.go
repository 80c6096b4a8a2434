// Package filesystem provides filesystem implementations for linkany.
//
// This package contains implementations of the types.FS interface built on
// afero. The OS-backed implementation supports symlinks through
// afero.Symlinker; in-memory afero filesystems work for everything except
// symlink creation and inspection.
package filesystem
