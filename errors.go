//go:build unix

package smbc

import (
	"errors"
	"fmt"
	"syscall"

	"golang.org/x/sys/unix"
)

// OSError is a failure reported by the native library through errno, either
// read right after the call or handed back explicitly as a return value.
// It unwraps to the errno, so errors.Is(err, unix.ENOENT) and
// errors.Is(err, fs.ErrNotExist) both work.
type OSError struct {
	Op    string        // Native call that failed, e.g. "smbc_opendir". Optional.
	Errno syscall.Errno // Zero when the library failed without setting errno.
}

func (e *OSError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %v (os error %d)", e.Op, e.Errno, int(e.Errno))
	}
	return fmt.Sprintf("%v (os error %d)", e.Errno, int(e.Errno))
}

func (e *OSError) Unwrap() error {
	return e.Errno
}

// Code returns the raw errno value.
func (e *OSError) Code() int {
	return int(e.Errno)
}

// Name returns the symbolic errno name ("ENOENT"), or "" if unknown.
func (e *OSError) Name() string {
	return unix.ErrnoName(e.Errno)
}

func (e *OSError) Timeout() bool {
	return e.Errno.Timeout()
}

func (e *OSError) Temporary() bool {
	return e.Errno.Temporary()
}

// NulError is returned when a string bound for the native side contains a
// NUL byte, which a NUL-terminated representation cannot carry.
type NulError struct {
	Offset int // Index of the first NUL byte
	Len    int // Length of the rejected string in bytes
}

func (e *NulError) Error() string {
	return fmt.Sprintf("invalid argument: nul byte at offset %d in %d-byte string", e.Offset, e.Len)
}

func (e *NulError) Unwrap() error {
	return unix.EINVAL
}

// AsErrno extracts the errno carried by err, if any. cgo reports errno as
// the second result of a call as a syscall.Errno; OSError wraps one.
func AsErrno(err error) (syscall.Errno, bool) {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno, true
	}
	return 0, false
}
