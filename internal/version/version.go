// Package version exposes the staffdex build identity logged at startup.
package version

// Populated by the release pipeline via -ldflags "-X".
//
//nolint:revive
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)
