// Package types defines the data shared by every stage of a linkany
// operation: the step vocabulary, plans, results and the filesystem
// capability the engine runs against.
package types
