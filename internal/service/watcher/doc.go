// Package watcher polls the security server and reports state transitions.
package watcher
