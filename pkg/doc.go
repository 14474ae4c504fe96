// Package pkg provides shared utilities for the softfloppy bridge.
//
// This package contains common functionality used across the bridge,
// transport, and disk layers, including:
//
//   - Structured logging via Go's standard [log/slog] package
//   - Sentinel error types for bridge and storage errors
//   - Component identifiers for log filtering
//   - A hex-preview formatter for payload debug logging
//
// The package is designed to have zero external dependencies, relying
// only on the Go standard library.
//
// # Logging
//
// The logging subsystem wraps [log/slog] with bridge-specific context:
//
//	pkg.SetLogLevel(slog.LevelDebug)
//	pkg.LogInfo(pkg.ComponentBridge, "handshake complete", "sector", sector)
//
// # Errors
//
// Common errors are defined as sentinel values:
//
//	if errors.Is(err, pkg.ErrOutOfRange) {
//	    // Handle out-of-range sector access
//	}
package pkg
