// Package commands provides the public linkany operations.
//
// Each command is implemented in its own subdirectory:
//   - add/       - Add command
//   - remove/    - Remove command
//   - install/   - Install command
//   - uninstall/ - Uninstall command
//   - internal/  - Manifest session shared by every command
//
// Every command works against a manifest on disk (ManifestPath) or an
// in-memory manifest (Manifest plus BaseDir) and always returns a Result:
// failures and safety refusals are reported as data, never as errors. The
// manifest returned alongside is the command's view after it ran.
package commands

import (
	"github.com/arthur-debert/linkany/pkg/commands/add"
	"github.com/arthur-debert/linkany/pkg/commands/install"
	"github.com/arthur-debert/linkany/pkg/commands/remove"
	"github.com/arthur-debert/linkany/pkg/commands/uninstall"
	"github.com/arthur-debert/linkany/pkg/manifest"
	"github.com/arthur-debert/linkany/pkg/types"
)

// Mapping is the link declared by Add
type Mapping = add.Mapping

// AddOptions holds options for Add
type AddOptions = add.AddOptions

// RemoveOptions holds options for Remove
type RemoveOptions = remove.RemoveOptions

// InstallOptions holds options for Install
type InstallOptions = install.InstallOptions

// UninstallOptions holds options for Uninstall
type UninstallOptions = uninstall.UninstallOptions

// Add records a mapping in the manifest and links it.
func Add(mapping Mapping, opts AddOptions) (*types.Result, *manifest.Manifest) {
	return add.Add(mapping, opts)
}

// Remove drops a manifest entry and unlinks its target.
func Remove(key string, opts RemoveOptions) (*types.Result, *manifest.Manifest) {
	return remove.Remove(key, opts)
}

// Install links every manifest entry.
func Install(opts InstallOptions) (*types.Result, *manifest.Manifest) {
	return install.Install(opts)
}

// Uninstall removes every manifest entry's symlink.
func Uninstall(opts UninstallOptions) (*types.Result, *manifest.Manifest) {
	return uninstall.Uninstall(opts)
}
