// Package config defines the settings shared by the catpoint binaries and
// provides helpers to load, validate and save them in YAML format.
//
// The Config type holds the gRPC and HTTP addresses, the storage backend, the
// camera classifier settings and the optional MQTT publisher settings.
package config
