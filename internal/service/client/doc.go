// Package client implements the operations of the catpoint CLI.
//
// Each operation connects to the security server, performs one call and
// prints the resulting state.
package client
