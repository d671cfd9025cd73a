package cutil

import (
	"strings"
	"unicode/utf8"
	"unsafe"

	"golang.org/x/text/encoding/unicode"

	"github.com/smbc-go/smbc"
)

// GoString decodes the NUL-terminated string at p. Invalid UTF-8 is replaced
// with U+FFFD rather than reported.
//
// p must be non-nil and point to a NUL-terminated byte sequence that stays
// valid for the duration of the call. This is the only place the package
// trusts a native string pointer; nothing can check it, and violating it
// reads arbitrary memory. A nil p panics.
func GoString(p unsafe.Pointer) string {
	if p == nil {
		panic("cutil: GoString called with nil pointer")
	}
	n := 0
	for *(*byte)(unsafe.Add(p, n)) != 0 {
		n++
	}
	return decodeLossy(unsafe.Slice((*byte)(p), n))
}

// GoStringN is GoString for fixed-capacity fields that may not be
// terminated: it stops at the first NUL or after size bytes. p must point to
// at least size readable bytes.
func GoStringN(p unsafe.Pointer, size int) string {
	if p == nil || size <= 0 {
		return ""
	}
	b := unsafe.Slice((*byte)(p), size)
	if i := indexNul(b); i >= 0 {
		b = b[:i]
	}
	return decodeLossy(b)
}

// decodeLossy copies b into a string, replacing invalid sequences.
func decodeLossy(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	out, err := unicode.UTF8.NewDecoder().Bytes(b)
	if err != nil {
		return strings.ToValidUTF8(string(b), string(utf8.RuneError))
	}
	return string(out)
}

func indexNul(b []byte) int {
	for i, c := range b {
		if c == 0 {
			return i
		}
	}
	return -1
}

// CStr is a NUL-terminated copy of a Go string, ready to be passed as a
// const char * argument. The buffer lives in Go memory and holds no Go
// pointers, so cgo may pass it for the duration of a call; keep the CStr
// reachable (runtime.KeepAlive) until the native call returns. The native
// side must not retain the pointer past the call.
type CStr struct {
	buf []byte // content followed by exactly one NUL
}

// CString copies s into a new NUL-terminated buffer. It fails with
// *smbc.NulError (which unwraps to EINVAL) if s contains a NUL byte.
func CString(s string) (*CStr, error) {
	if i := strings.IndexByte(s, 0); i >= 0 {
		return nil, &smbc.NulError{Offset: i, Len: len(s)}
	}
	buf := make([]byte, len(s)+1)
	copy(buf, s)
	return &CStr{buf: buf}, nil
}

// CStrings encodes each of ss, stopping at the first string that contains
// a NUL byte.
func CStrings(ss ...string) ([]*CStr, error) {
	out := make([]*CStr, 0, len(ss))
	for _, s := range ss {
		c, err := CString(s)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// Ptr returns a pointer to the first byte, suitable for a char * parameter
// after conversion: (*C.char)(unsafe.Pointer(c.Ptr())).
func (c *CStr) Ptr() *byte { return &c.buf[0] }

// Pointer is Ptr as an unsafe.Pointer.
func (c *CStr) Pointer() unsafe.Pointer { return unsafe.Pointer(&c.buf[0]) }

// Bytes returns the buffer including its terminator.
func (c *CStr) Bytes() []byte { return c.buf }

// Len returns the length of the string, excluding the terminator.
func (c *CStr) Len() int { return len(c.buf) - 1 }

func (c *CStr) String() string { return string(c.buf[:len(c.buf)-1]) }
