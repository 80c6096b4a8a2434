// Package testutil provides utilities for testing linkany components.
//
// Key components:
//   - TestEnvironment: a temp directory with a package root, a home
//     directory and a manifest path, plus helpers to lay out files and links
//   - MockFS: a testify mock of types.FS for failure injection
//   - Snapshot: a flat description of a directory tree, used to prove that
//     an operation did not mutate anything
//
// Symlink behaviour matters for nearly every test here, so environments sit
// on the real filesystem rather than an in-memory one.
package testutil
