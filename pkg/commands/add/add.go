// Package add declares a new mapping and links it in one step
package add

import (
	"github.com/arthur-debert/linkany/pkg/commands/internal"
	"github.com/arthur-debert/linkany/pkg/logging"
	"github.com/arthur-debert/linkany/pkg/manifest"
	"github.com/arthur-debert/linkany/pkg/plan"
	"github.com/arthur-debert/linkany/pkg/runner"
	"github.com/arthur-debert/linkany/pkg/types"
)

// Mapping is the link to declare. Paths may be relative to the manifest
// directory (or BaseDir for in-memory manifests) and may start with ~.
type Mapping struct {
	Source string
	Target string
	// Kind is optional; it is detected from the filesystem when empty
	Kind types.LinkKind
	// Atomic defaults to true when nil
	Atomic *bool
}

// AddOptions holds options for the add command
type AddOptions = internal.Options

// Add records mapping in the manifest and converges the filesystem to it.
//
// A target that already links to the source only updates the manifest. A
// real file or directory at the target with no source yet is migrated: its
// content is copied to the source and the original is kept as a backup.
// When both exist as unrelated objects the operation is refused without
// touching anything.
func Add(mapping Mapping, opts AddOptions) (*types.Result, *manifest.Manifest) {
	logger := logging.GetLogger("commands.add")
	logger.Info().
		Str("source", mapping.Source).
		Str("target", mapping.Target).
		Bool("dry_run", opts.DryRun).
		Msg("Adding mapping")

	session, err := internal.Open(opts, true)
	if err != nil {
		return internal.OpenFailed(types.OperationAdd, opts, err), opts.Manifest
	}

	entry := manifest.InstallEntry{Source: mapping.Source, Target: mapping.Target, Kind: mapping.Kind}
	if err := manifest.ValidateEntry(entry); err != nil {
		return session.Fail(types.OperationAdd, err), session.Manifest
	}

	source, err := manifest.ResolvePath(session.BaseDir, mapping.Source)
	if err != nil {
		return session.Fail(types.OperationAdd, err), session.Manifest
	}
	target, err := manifest.ResolvePath(session.BaseDir, mapping.Target)
	if err != nil {
		return session.Fail(types.OperationAdd, err), session.Manifest
	}
	if err := manifest.ValidatePaths(source, target); err != nil {
		return session.Fail(types.OperationAdd, err), session.Manifest
	}

	atomic := mapping.Atomic == nil || *mapping.Atomic
	compiled := session.Compiler.CompileLinkMapping(plan.Mapping{
		Source: source,
		Target: target,
		Kind:   mapping.Kind,
		Atomic: atomic,
	})
	if compiled.Err != nil {
		logger.Warn().Err(compiled.Err).Msg("Refusing to add mapping")
		return session.Refuse(types.OperationAdd, "Safety refusal", compiled.Err, map[string]string{
			types.PathSource: source,
			types.PathTarget: target,
		}), session.Manifest
	}

	// Already linked mappings are recorded as declared; everything else
	// records the kind the plan settled on.
	if compiled.Disposition == types.DispositionNoop {
		entry.Atomic = mapping.Atomic
	} else {
		entry.Kind = compiled.Kind
		entry.Atomic = &atomic
	}

	next := session.Manifest.Clone()
	if _, err := next.Upsert(entry); err != nil {
		return session.Fail(types.OperationAdd, err), session.Manifest
	}

	logger.Debug().
		Str("disposition", string(compiled.Disposition)).
		Int("steps", len(compiled.Steps)).
		Msg("Planned add")

	result := runner.Run(runner.Input{
		Operation:    types.OperationAdd,
		ManifestPath: session.ManifestPath,
		Steps:        compiled.Steps,
		Options:      session.Run,
		Finalize: func(r *types.Result) {
			if !r.OK {
				return
			}
			session.Persist(r, next, types.Change{
				Action: types.ChangeManifestUpsert,
				Source: source,
				Target: target,
			})
		},
	})

	if !result.OK {
		logger.Error().Strs("errors", result.Errors).Msg("Add failed")
	}
	return result, session.Manifest
}
