package cutil

import (
	"context"
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/smbc-go/smbc/log"
)

const traceTarget = "smbc/cutil"

// FixedBuf is a char buffer of known capacity owned by the native side,
// typically an output parameter such as the workgroup, username and
// password buffers of the auth callback.
type FixedBuf struct {
	Ptr unsafe.Pointer
	Len int
}

// FixedBufOf describes a Go byte slice as a FixedBuf.
func FixedBufOf(b []byte) FixedBuf {
	if len(b) == 0 {
		return FixedBuf{}
	}
	return FixedBuf{Ptr: unsafe.Pointer(&b[0]), Len: len(b)}
}

// Bytes returns a Go view over the buffer.
func (f FixedBuf) Bytes() []byte {
	return unsafe.Slice((*byte)(f.Ptr), f.Len)
}

// String decodes the buffer contents up to the first NUL.
func (f FixedBuf) String() string {
	return GoStringN(f.Ptr, f.Len)
}

// WriteFixed copies src into dst and NUL-terminates it. Input longer than
// dst.Len-1 bytes is truncated without error; truncation is byte-wise and
// may split a multi-byte character. It returns the number of bytes of src
// written. dst must have a non-nil pointer and Len >= 1.
func WriteFixed(dst FixedBuf, src string) int {
	if dst.Ptr == nil || dst.Len < 1 {
		panic(fmt.Sprintf("cutil: invalid fixed buffer (ptr %p, len %d)", dst.Ptr, dst.Len))
	}
	return WriteFixedBytes(dst.Bytes(), src)
}

// WriteFixedBytes is WriteFixed over a slice. It panics if dst is empty.
func WriteFixedBytes(dst []byte, src string) int {
	n := len(dst)
	if n < 1 {
		panic("cutil: WriteFixedBytes called with empty buffer")
	}

	// Terminate first so dst reads as a C string whatever happens below.
	dst[n-1] = 0

	logger := log.For(traceTarget)
	tracing := logger.Enabled(context.Background(), log.LevelTrace)
	if tracing {
		logger.Log(context.Background(), log.LevelTrace, "fixed buffer before write",
			slog.String("orig", decodeLossy(dst[:cstrlen(dst)])))
	}

	idx := copy(dst, src)
	if idx == n {
		idx--
	}
	dst[idx] = 0

	if tracing {
		logger.Log(context.Background(), log.LevelTrace, "fixed buffer written",
			slog.String("dest", fmt.Sprintf("%p", &dst[0])),
			slog.Int("len", n),
			slog.Int("src_len", len(src)),
			slog.Int("written", idx),
			slog.String("value", decodeLossy(dst[:idx])))
	}
	return idx
}

func cstrlen(b []byte) int {
	if i := indexNul(b); i >= 0 {
		return i
	}
	return len(b)
}
