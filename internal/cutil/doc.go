// Package cutil converts between libsmbclient's C conventions and Go.
//
// Every cgo call site in the binding hands its raw results to one of four
// adapters:
//
//   - FromPtr / FromMutPtr / FromUnsafePtr turn a returned pointer into a
//     handle or an error, treating nil as failure.
//   - GoString / CString bridge NUL-terminated strings.
//   - WriteFixed fills a caller-owned fixed-size char buffer, always leaving
//     it NUL-terminated.
//   - Check / CheckErrno turn a "-1 means error" return code into a value or
//     an error.
//
// Errno handling: cgo samples errno on the calling OS thread right after the
// C function returns and hands it back as the call's second result:
//
//	ctx, errno := C.smbc_new_context()
//	h, err := cutil.FromUnsafePtrOp("smbc_new_context", unsafe.Pointer(ctx), errno)
//
// The adapters only look at that captured value, and only when the primary
// result signals failure. Pass it unmodified and before making another
// native call.
package cutil
