// Package uninstall removes the symlinks of every manifest entry
package uninstall

import (
	"github.com/arthur-debert/linkany/pkg/commands/internal"
	"github.com/arthur-debert/linkany/pkg/logging"
	"github.com/arthur-debert/linkany/pkg/manifest"
	"github.com/arthur-debert/linkany/pkg/runner"
	"github.com/arthur-debert/linkany/pkg/types"
)

// UninstallOptions holds options for the uninstall command
type UninstallOptions = internal.Options

// Uninstall unlinks every target that is a symlink. Targets that are real
// files or directories are left in place and reported as warnings. Sources
// and the manifest are never modified.
func Uninstall(opts UninstallOptions) (*types.Result, *manifest.Manifest) {
	logger := logging.GetLogger("commands.uninstall")
	logger.Info().Bool("dry_run", opts.DryRun).Msg("Uninstalling manifest")

	session, err := internal.Open(opts, false)
	if err != nil {
		return internal.OpenFailed(types.OperationUninstall, opts, err), opts.Manifest
	}

	entries, err := session.Entries()
	if err != nil {
		return session.Fail(types.OperationUninstall, err), session.Manifest
	}

	steps, warnings := session.Compiler.CompileUninstallAll(entries)

	result := runner.Run(runner.Input{
		Operation:    types.OperationUninstall,
		ManifestPath: session.ManifestPath,
		Steps:        steps,
		Warnings:     warnings,
		Options:      session.Run,
	})
	return result, session.Manifest
}
