// Package install converges the filesystem to every manifest entry
package install

import (
	"github.com/arthur-debert/linkany/pkg/commands/internal"
	"github.com/arthur-debert/linkany/pkg/errors"
	"github.com/arthur-debert/linkany/pkg/logging"
	"github.com/arthur-debert/linkany/pkg/manifest"
	"github.com/arthur-debert/linkany/pkg/runner"
	"github.com/arthur-debert/linkany/pkg/types"
)

// InstallOptions holds options for the install command
type InstallOptions = internal.Options

// Install links every entry of the manifest. The whole manifest is checked
// before anything is changed: a missing source or a real file at a target
// refuses the operation with no mutation. Entries already linked are
// skipped. The manifest itself is not modified.
func Install(opts InstallOptions) (*types.Result, *manifest.Manifest) {
	logger := logging.GetLogger("commands.install")
	logger.Info().Bool("dry_run", opts.DryRun).Msg("Installing manifest")

	session, err := internal.Open(opts, false)
	if err != nil {
		return internal.OpenFailed(types.OperationInstall, opts, err), opts.Manifest
	}

	entries, err := session.Entries()
	if err != nil {
		return session.Fail(types.OperationInstall, err), session.Manifest
	}

	steps, err := session.Compiler.CompileInstallAll(entries)
	if err != nil {
		message, paths := refusal(err)
		return session.Refuse(types.OperationInstall, message, err, paths), session.Manifest
	}

	logger.Debug().
		Int("entries", len(entries)).
		Int("steps", len(steps)).
		Msg("Planned install")

	result := runner.Run(runner.Input{
		Operation:    types.OperationInstall,
		ManifestPath: session.ManifestPath,
		Steps:        steps,
		Options:      session.Run,
	})
	return result, session.Manifest
}

// refusal picks the step message and paths describing why install stopped
func refusal(err error) (string, map[string]string) {
	switch errors.GetErrorCode(err) {
	case errors.ErrSourceMissing:
		return "Source missing; aborting without changes",
			map[string]string{types.PathSource: errors.DetailString(err, "source")}
	case errors.ErrTargetNotSymlink:
		return "Conflict detected; aborting without changes",
			map[string]string{types.PathTarget: errors.DetailString(err, "target")}
	default:
		return "Safety refusal", nil
	}
}
