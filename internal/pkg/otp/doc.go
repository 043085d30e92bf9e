// Package otp generates short numeric one-time codes.
//
// Codes are random rather than time-based: callers store a hash of the
// issued code and compare it on verification, so the code itself is the only
// shared secret and never needs to be reconstructed later.
package otp
