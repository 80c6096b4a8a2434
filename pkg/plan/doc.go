// Package plan compiles desired symlink mappings into ordered step lists.
//
// Compiling only ever reads the filesystem. The returned steps are pure
// data; pkg/executor performs them. Ordering is part of the contract: a
// target is always moved to its backup before anything is renamed into its
// place, and symlinks are staged at a temporary sibling before being
// renamed over the target when a mapping is atomic.
//
// Sub-plans:
//
//	EnsureSource   create a missing source as an empty file or directory
//	LinkSteps      mkdir parent, symlink (at temp path when atomic), rename
//	Unlink         remove a target only if it is a symlink
//	CopySteps      copy (dereferencing) to a temp path, then rename
//	Replacement    move a target aside to a timestamped backup
package plan
