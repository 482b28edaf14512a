// Package imaging provides the camera frame classifiers used by the security
// service to decide whether a cat is in view, and decoding of raw frames.
package imaging
