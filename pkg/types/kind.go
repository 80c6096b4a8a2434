package types

import "fmt"

// LinkKind declares whether a mapping's source is a file or a directory
type LinkKind string

const (
	KindFile LinkKind = "file"
	KindDir  LinkKind = "dir"
)

// ParseLinkKind validates a user supplied kind. The empty string is
// accepted and means "detect from the filesystem".
func ParseLinkKind(s string) (LinkKind, error) {
	switch LinkKind(s) {
	case "":
		return "", nil
	case KindFile, KindDir:
		return LinkKind(s), nil
	default:
		return "", fmt.Errorf("invalid kind %q (expected file|dir)", s)
	}
}

// Operation names a user-facing operation
type Operation string

const (
	OperationAdd       Operation = "add"
	OperationRemove    Operation = "remove"
	OperationInstall   Operation = "install"
	OperationUninstall Operation = "uninstall"
)

// Disposition is the compiler's classification of a mapping
type Disposition string

const (
	// DispositionNoop means the target already resolves to the source
	DispositionNoop Disposition = "noop"
	// DispositionCreate means the target is absent and will be linked
	DispositionCreate Disposition = "create"
	// DispositionReplace means something at the target is moved or removed first
	DispositionReplace Disposition = "replace"
	// DispositionConflict means the mapping must not be applied
	DispositionConflict Disposition = "conflict"
)
