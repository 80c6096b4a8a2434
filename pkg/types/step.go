package types

// StepKind is the closed set of instructions a plan may contain. Adding a
// kind means updating the executor switch, the plan compiler and the undo
// hints in the same change.
type StepKind string

const (
	StepNoop          StepKind = "noop"
	StepMkdirp        StepKind = "mkdirp"
	StepTouch         StepKind = "touch"
	StepSymlink       StepKind = "symlink"
	StepUnlink        StepKind = "unlink"
	StepRemove        StepKind = "rm"
	StepMove          StepKind = "move"
	StepCopy          StepKind = "copy"
	StepWriteManifest StepKind = "write_manifest"
	StepAudit         StepKind = "audit"
)

// StepKinds lists every valid kind in declaration order
var StepKinds = []StepKind{
	StepNoop, StepMkdirp, StepTouch, StepSymlink, StepUnlink,
	StepRemove, StepMove, StepCopy, StepWriteManifest, StepAudit,
}

// Valid reports whether k belongs to the step vocabulary
func (k StepKind) Valid() bool {
	for _, known := range StepKinds {
		if k == known {
			return true
		}
	}
	return false
}

// External reports whether the step is performed outside the executor.
// The executor records these as skipped.
func (k StepKind) External() bool {
	return k == StepWriteManifest || k == StepAudit
}

// StepStatus is filled in while a plan executes
type StepStatus string

const (
	StatusPlanned  StepStatus = "planned"
	StatusExecuted StepStatus = "executed"
	StatusSkipped  StepStatus = "skipped"
	StatusFailed   StepStatus = "failed"
)

// Keys used in Step.Paths
const (
	PathDir    = "dir"
	PathFile   = "file"
	PathPath   = "path"
	PathSource = "source"
	PathTarget = "target"
	PathFrom   = "from"
	PathTo     = "to"
	PathKind   = "kind"
)

// Undo describes how to reverse a step. It is only meaningful when the
// step it is attached to actually executed.
type Undo struct {
	Kind    StepKind          `json:"kind"`
	Message string            `json:"message"`
	Paths   map[string]string `json:"paths,omitempty"`
}

// Step is one filesystem instruction
type Step struct {
	Kind    StepKind          `json:"kind"`
	Message string            `json:"message"`
	Paths   map[string]string `json:"paths,omitempty"`
	Status  StepStatus        `json:"status,omitempty"`
	Error   string            `json:"error,omitempty"`
	Undo    *Undo             `json:"undo,omitempty"`

	// Staged marks steps that write or commit a temporary sibling the
	// plan itself named. Only those are cleaned up after a failure.
	Staged bool `json:"-"`
}

// Path returns the value stored under key, or "" when absent
func (s Step) Path(key string) string {
	if s.Paths == nil {
		return ""
	}
	return s.Paths[key]
}

// StagedPath returns the temporary path a staged step writes before it is
// committed into its final location, if any.
func (s Step) StagedPath() string {
	if !s.Staged {
		return ""
	}
	switch s.Kind {
	case StepSymlink:
		return s.Path(PathTarget)
	case StepCopy:
		return s.Path(PathTo)
	case StepMove:
		return s.Path(PathFrom)
	}
	return ""
}

// Stage returns a copy of s marked as staged
func (s Step) Stage() Step {
	s.Staged = true
	return s
}

// WithUndo returns a copy of s carrying the given undo hint
func (s Step) WithUndo(u Undo) Step {
	s.Undo = &u
	return s
}

// AsStep turns an undo hint into a plannable step
func (u Undo) AsStep() Step {
	return Step{Kind: u.Kind, Message: u.Message, Paths: copyPaths(u.Paths)}
}

func copyPaths(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// NoopStep records a decision without touching the filesystem
func NoopStep(message string, paths map[string]string) Step {
	return Step{Kind: StepNoop, Message: message, Paths: paths}
}

// MkdirStep creates dir and its parents
func MkdirStep(dir, message string) Step {
	return Step{Kind: StepMkdirp, Message: message, Paths: map[string]string{PathDir: dir}}
}

// TouchStep creates an empty file
func TouchStep(file, message string) Step {
	return Step{Kind: StepTouch, Message: message, Paths: map[string]string{PathFile: file}}
}

// SymlinkStep creates a symlink at target pointing to source
func SymlinkStep(source, target string, kind LinkKind, message string) Step {
	paths := map[string]string{PathSource: source, PathTarget: target}
	if kind != "" {
		paths[PathKind] = string(kind)
	}
	return Step{Kind: StepSymlink, Message: message, Paths: paths}
}

// UnlinkStep removes target, which must be a symlink
func UnlinkStep(target, message string) Step {
	return Step{Kind: StepUnlink, Message: message, Paths: map[string]string{PathTarget: target}}
}

// RemoveStep removes an arbitrary path
func RemoveStep(path, message string) Step {
	return Step{Kind: StepRemove, Message: message, Paths: map[string]string{PathPath: path}}
}

// MoveStep renames from to to
func MoveStep(from, to, message string) Step {
	return Step{Kind: StepMove, Message: message, Paths: map[string]string{PathFrom: from, PathTo: to}}
}

// CopyStep copies from to to, dereferencing symlinks
func CopyStep(from, to string, kind LinkKind, message string) Step {
	paths := map[string]string{PathFrom: from, PathTo: to}
	if kind != "" {
		paths[PathKind] = string(kind)
	}
	return Step{Kind: StepCopy, Message: message, Paths: paths}
}
