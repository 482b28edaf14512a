// Package version exposes build metadata for the catpoint binaries.
//
// Variables Version, Commit, and BuildTime are injected at build time via
// Go ldflags and default to development values for local builds.
package version
