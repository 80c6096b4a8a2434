// Package manifest reads, edits and writes the linkany manifest document:
//
//	{ "version": 1, "installs": [ {"id"?, "source", "target", "kind"?, "atomic"?} ] }
//
// Entries are identified by their key: the id when present, otherwise the
// target. Relative paths in entries resolve against the directory holding
// the manifest. Unknown fields at the top level and on entries are kept
// across load and save.
//
// Manifests are JSON unless the file name ends in .yaml or .yml. Saving
// writes a temporary sibling and renames it into place.
package manifest
