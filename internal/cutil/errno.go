package cutil

import (
	"fmt"
	"syscall"

	"github.com/smbc-go/smbc"
)

// lastError builds the failure for a call whose primary result signalled an
// error. errno is the value cgo captured for that call; nil means errno was 0.
func lastError(op string, errno error) error {
	if errno == nil {
		return &smbc.OSError{Op: op}
	}
	if e, ok := errno.(syscall.Errno); ok {
		return &smbc.OSError{Op: op, Errno: e}
	}
	// cgo only ever reports a bare syscall.Errno; anything else, including an
	// errno wrapped with context, came from a caller and is passed through.
	if op != "" {
		return fmt.Errorf("%s: %w", op, errno)
	}
	return errno
}

// codeError builds the failure for a call that returned its errno explicitly.
func codeError(op string, code int) error {
	return &smbc.OSError{Op: op, Errno: syscall.Errno(code)}
}
