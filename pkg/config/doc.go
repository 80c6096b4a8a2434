// Package config manages the linkany CLI configuration.
//
// The configuration lives in $XDG_CONFIG_HOME/linkany/config.toml, or in
// the file named by LINKANY_CONFIG. Values are layered:
//
//  1. Built-in defaults
//  2. The config file, when present
//  3. LINKANY_* environment variables (LINKANY_MANIFEST_PATH,
//     LINKANY_AUDIT_LOG, LINKANY_INCLUDE_PLAN)
//
// Only the CLI reads this package. The engine always receives its manifest
// path explicitly.
package config
