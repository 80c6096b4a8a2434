// Package remove drops a mapping from the manifest and unlinks its target
package remove

import (
	"github.com/arthur-debert/linkany/pkg/commands/internal"
	"github.com/arthur-debert/linkany/pkg/errors"
	"github.com/arthur-debert/linkany/pkg/logging"
	"github.com/arthur-debert/linkany/pkg/manifest"
	"github.com/arthur-debert/linkany/pkg/runner"
	"github.com/arthur-debert/linkany/pkg/types"
)

// RemoveOptions holds options for the remove command
type RemoveOptions struct {
	internal.Options

	// KeepLink leaves the target symlink in place
	KeepLink bool
}

// Remove deletes the entry identified by key (its id, or its target as
// written in the manifest). The target is only unlinked when it is a
// symlink; anything else is left alone with a warning. The source is never
// touched.
func Remove(key string, opts RemoveOptions) (*types.Result, *manifest.Manifest) {
	logger := logging.GetLogger("commands.remove")
	logger.Info().
		Str("key", key).
		Bool("keep_link", opts.KeepLink).
		Bool("dry_run", opts.DryRun).
		Msg("Removing mapping")

	session, err := internal.Open(opts.Options, false)
	if err != nil {
		return internal.OpenFailed(types.OperationRemove, opts.Options, err), opts.Manifest
	}

	idx := session.Manifest.Find(key)
	if idx < 0 {
		err := errors.Newf(errors.ErrEntryNotFound, "Entry not found in manifest: %s", key).
			WithDetail("key", key)
		return session.Fail(types.OperationRemove, err), session.Manifest
	}
	entry := session.Manifest.Installs[idx]

	target, err := manifest.ResolvePath(session.BaseDir, entry.Target)
	if err != nil {
		return session.Fail(types.OperationRemove, err), session.Manifest
	}

	var steps []types.Step
	var warnings []string
	if opts.KeepLink {
		steps = []types.Step{
			types.NoopStep("keepLink=true; not unlinking target", map[string]string{types.PathTarget: target}),
		}
	} else {
		var warning string
		steps, warning = session.Compiler.Unlink(target)
		if warning != "" {
			warnings = append(warnings, warning)
		}
	}

	next := session.Manifest.Clone()
	next.Remove(entry.Key())

	result := runner.Run(runner.Input{
		Operation:    types.OperationRemove,
		ManifestPath: session.ManifestPath,
		Steps:        steps,
		Warnings:     warnings,
		Options:      session.Run,
		Finalize: func(r *types.Result) {
			if !r.OK {
				return
			}
			session.Persist(r, next, types.Change{
				Action: types.ChangeManifestRemove,
				Target: target,
			})
		},
	})
	return result, session.Manifest
}
