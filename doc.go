// Package smbc is the foundation of a Go binding for libsmbclient, the SMB
// client library shipped with Samba.
//
// The binding itself talks to libsmbclient through cgo. Every native call
// site funnels its results through internal/cutil, which turns raw pointers,
// "-1 means error" return codes, fixed-size char buffers and NUL-terminated
// strings into Go values and errors. This package holds the error types those
// conversions produce, so callers can inspect them with errors.Is and
// errors.As without reaching into the internal packages.
//
// Logging goes through log/slog; see the log package for the TRACE level and
// per-target filtering, and the config package for loading those settings
// from YAML.
//
// libsmbclient only exists on unix systems, and the error types are built on
// golang.org/x/sys/unix, so the module builds for unix targets only.
package smbc
