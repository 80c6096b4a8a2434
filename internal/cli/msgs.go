package cli

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort      = "Keep declared symlinks in place, safely"
	MsgVersionShort   = "Print version information"
	MsgManifestShort  = "Manage the default manifest"
	MsgManifestSet    = "Set the default manifest"
	MsgManifestShow   = "Print the default manifest"
	MsgManifestClear  = "Forget the default manifest"
	MsgAddShort       = "Declare a mapping and link it"
	MsgRemoveShort    = "Drop a mapping and unlink its target"
	MsgInstallShort   = "Link every mapping in the manifest"
	MsgUninstallShort = "Remove every symlink declared in the manifest"

	// Error messages
	MsgErrNoManifest      = "No manifest specified. Please run `linkany manifest set <path>` or pass `--manifest <path>`."
	MsgErrNoDefault       = "No default manifest set. Run `linkany manifest set <path>`."
	MsgErrAddNeedsPaths   = "add requires --source and --target"
	MsgErrInvalidKind     = "Invalid --kind: %s (expected file|dir)"
	MsgErrAtomicExclusive = "--atomic and --no-atomic are mutually exclusive"

	// Flag descriptions
	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagManifest = "Manifest file (default: the configured default manifest)"
	MsgFlagDryRun   = "Plan and report without touching the filesystem"
	MsgFlagPlan     = "Include a human readable plan in the result"
	MsgFlagAuditLog = "Audit log file (default: <manifest>.log.jsonl)"
	MsgFlagFormat   = "Output format: json, text, term or auto"
	MsgFlagSource   = "Source path (the real file or directory)"
	MsgFlagTarget   = "Target path (where the symlink lives)"
	MsgFlagKind     = "Kind of the source: file or dir (detected when omitted)"
	MsgFlagAtomic   = "Stage the symlink and rename it into place (default)"
	MsgFlagNoAtomic = "Create the symlink directly at the target"
	MsgFlagKeepLink = "Keep the target symlink, only drop the manifest entry"
)

// Long messages
const (
	MsgRootLong = `linkany keeps a set of declared symlinks in place.

A manifest lists mappings from a source (the real file or directory) to a
target (the path that should be a symlink to it). Every operation plans its
filesystem changes first, refuses anything that could lose data, and then
applies the plan step by step. Each result is printed and appended to an
audit log next to the manifest.`

	MsgAddLong = `Add records a mapping in the manifest and links it.

If the target already exists as a real file or directory and the source does
not, the target's content is copied to the source, the original is kept as a
backup and the target becomes a symlink. If both exist, nothing is changed.`

	MsgRemoveLong = `Remove drops the manifest entry identified by <key> (its id, or its
target as written in the manifest) and unlinks the target when it is a
symlink. The source is never touched.`

	MsgInstallLong = `Install links every mapping in the manifest. The whole manifest is checked
first: a missing source or a real file at a target aborts without changes.`

	MsgUninstallLong = `Uninstall removes the symlink of every mapping. Targets that are not
symlinks are left alone. Sources and the manifest are not modified.`
)
