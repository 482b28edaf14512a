// Package common holds helpers shared by the catpoint binaries.
//
// It provides a gRPC client wrapper with call timeouts that converts wire
// messages into domain types, and detects the current "user@host" for the
// audit trail attached to every call.
//
//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common
