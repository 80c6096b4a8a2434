// Package internal holds what the linkany operations share: locating and
// loading the manifest, resolving paths against the right base directory,
// and persisting manifest edits once a plan has succeeded.
package internal

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/linkany/pkg/errors"
	"github.com/arthur-debert/linkany/pkg/manifest"
	"github.com/arthur-debert/linkany/pkg/plan"
	"github.com/arthur-debert/linkany/pkg/runner"
	"github.com/arthur-debert/linkany/pkg/types"
)

// Options select the manifest an operation works on and how it runs
type Options struct {
	runner.Options

	// ManifestPath names the manifest on disk. When Manifest is set it is
	// only reported on the result and used to place the audit log.
	ManifestPath string
	// Manifest is an in-memory manifest. It is never written anywhere.
	Manifest *manifest.Manifest
	// BaseDir resolves relative paths of an in-memory manifest. Defaults
	// to the working directory.
	BaseDir string
}

// Session is an operation's view of its manifest
type Session struct {
	Run          runner.Options
	ManifestPath string
	BaseDir      string
	InMemory     bool
	Manifest     *manifest.Manifest
	Compiler     *plan.Compiler
}

// Open loads the manifest named by opts. A missing manifest file is an
// error unless create is set, in which case an empty one is used.
func Open(opts Options, create bool) (*Session, error) {
	s := &Session{Run: opts.Options.WithDefaults()}

	if opts.Manifest != nil {
		if err := opts.Manifest.Validate(); err != nil {
			return nil, err
		}
		baseDir := opts.BaseDir
		if baseDir == "" {
			wd, err := os.Getwd()
			if err != nil {
				return nil, errors.Wrap(err, errors.ErrInternal, "cannot determine working directory")
			}
			baseDir = wd
		}
		abs, err := filepath.Abs(baseDir)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidInput, "invalid base dir %s", baseDir)
		}
		s.InMemory = true
		s.BaseDir = abs
		s.Manifest = opts.Manifest.Clone()
		if opts.ManifestPath != "" {
			s.ManifestPath = absOrSelf(opts.ManifestPath)
		}
	} else {
		if opts.ManifestPath == "" {
			return nil, errors.New(errors.ErrInvalidInput, "No manifest given")
		}
		abs := absOrSelf(opts.ManifestPath)
		load := manifest.Load
		if create {
			load = manifest.LoadOrCreate
		}
		m, err := load(s.Run.FS, abs)
		if err != nil {
			return nil, err
		}
		s.ManifestPath = abs
		s.BaseDir = filepath.Dir(abs)
		s.Manifest = m
	}

	s.Compiler = plan.New(s.Run.FS, plan.NewNamer(s.Run.Clock))
	return s, nil
}

// Entries resolves every manifest entry for the plan compiler
func (s *Session) Entries() ([]plan.Entry, error) {
	resolved, err := s.Manifest.ResolveAll(s.BaseDir)
	if err != nil {
		return nil, err
	}
	entries := make([]plan.Entry, 0, len(resolved))
	for _, r := range resolved {
		entries = append(entries, plan.Entry{
			Key: r.Key,
			Mapping: plan.Mapping{
				Source: r.Source,
				Target: r.Target,
				Kind:   r.Kind,
				Atomic: r.Atomic,
			},
		})
	}
	return entries, nil
}

// Persist stores next as the session manifest and records the outcome on
// r: a write_manifest step, and change when the manifest was accepted.
// Dry runs write nothing and record no change. In-memory manifests are
// updated but never written. A failed write fails r.
func (s *Session) Persist(r *types.Result, next *manifest.Manifest, change types.Change) {
	step := types.Step{Kind: types.StepWriteManifest, Message: "Update manifest"}
	if s.ManifestPath != "" && !s.InMemory {
		step.Paths = map[string]string{types.PathFile: s.ManifestPath}
	}

	switch {
	case s.Run.DryRun:
		step.Message = "Dry run; manifest not written"
		step.Status = types.StatusSkipped
		r.AddStep(step)
		return

	case s.InMemory:
		step.Message = "In-memory manifest; not writing to disk"
		step.Status = types.StatusSkipped
		s.Manifest = next

	default:
		if err := manifest.Save(s.Run.FS, s.ManifestPath, next); err != nil {
			msg := errors.Describe(err)
			step.Status = types.StatusFailed
			step.Error = msg
			r.AddStep(step)
			r.Fail("Failed to write manifest: " + msg)
			return
		}
		step.Status = types.StatusExecuted
		s.Manifest = next
	}

	r.AddStep(step)
	r.AddChange(change.Action, change.Source, change.Target)
}

// Refuse builds a safety refusal result for this session
func (s *Session) Refuse(op types.Operation, message string, reason error, paths map[string]string) *types.Result {
	return runner.Refuse(op, s.ManifestPath, s.Run, message, reason, paths)
}

// Fail builds a result for an operation that could not be planned
func (s *Session) Fail(op types.Operation, reason error) *types.Result {
	return runner.Failed(op, s.ManifestPath, s.Run, reason)
}

// OpenFailed builds the result for an operation whose manifest could not
// be opened
func OpenFailed(op types.Operation, opts Options, reason error) *types.Result {
	path := ""
	if opts.ManifestPath != "" {
		path = absOrSelf(opts.ManifestPath)
	}
	return runner.Failed(op, path, opts.Options, reason)
}

func absOrSelf(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
