// Package executor walks a compiled plan and performs each step's effect on
// the filesystem.
//
// Steps run strictly in order and one at a time. Each step ends up
// executed, skipped or failed. The first failure stops the walk, and any
// temporary artifact the failed step was staging is removed. After the
// walk the executor derives a rollback plan from the undo hints of the
// steps that executed, newest first. The rollback plan is returned as data
// and never run automatically.
//
// Under dry-run every step except noop is skipped without touching the
// filesystem, so the result still lists everything that would have run.
package executor
