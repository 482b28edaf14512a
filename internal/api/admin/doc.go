// Package admin serves the HTTP admin endpoints: health, Prometheus metrics
// and a JSON status snapshot.
package admin
