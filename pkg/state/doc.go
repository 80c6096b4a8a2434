// Package state answers read-only questions about the filesystem: whether a
// path exists, whether it is a symlink, whether a symlink already points at
// a given source, and whether a path is a file or a directory.
//
// It also detects dangling symlinks, whose referent no longer exists.
package state
