package cutil

import "unsafe"

// Ref is a read-only, non-owning view of memory owned by libsmbclient. It is
// valid until the next native call that may free or reuse that memory (for
// a dirent, the next smbc_readdir on the same handle).
type Ref[T any] struct {
	p *T
}

// Ptr returns the borrowed pointer.
func (r Ref[T]) Ptr() *T { return r.p }

// IsNil reports whether r holds no pointer. Handles returned by FromPtr
// without an error are never nil.
func (r Ref[T]) IsNil() bool { return r.p == nil }

// Load copies the pointed-to value into Go memory.
func (r Ref[T]) Load() T { return *r.p }

// Mut is a writable, non-owning view of memory owned by libsmbclient. The
// same validity rules as Ref apply.
type Mut[T any] struct {
	p *T
}

func (m Mut[T]) Ptr() *T     { return m.p }
func (m Mut[T]) IsNil() bool { return m.p == nil }
func (m Mut[T]) Load() T     { return *m.p }
func (m Mut[T]) Store(v T)   { *m.p = v }

// Ref narrows m to a read-only view of the same memory.
func (m Mut[T]) Ref() Ref[T] { return Ref[T]{p: m.p} }

// FromPtr returns a read-only handle for p, or an *smbc.OSError built from
// errno when p is nil.
func FromPtr[T any](p *T, errno error) (Ref[T], error) {
	return FromPtrOp("", p, errno)
}

// FromPtrOp is FromPtr with the failing native call's name recorded in the error.
func FromPtrOp[T any](op string, p *T, errno error) (Ref[T], error) {
	if p == nil {
		return Ref[T]{}, lastError(op, errno)
	}
	return Ref[T]{p: p}, nil
}

// FromMutPtr returns a writable handle for p, or an *smbc.OSError built from
// errno when p is nil.
func FromMutPtr[T any](p *T, errno error) (Mut[T], error) {
	return FromMutPtrOp("", p, errno)
}

// FromMutPtrOp is FromMutPtr with the failing native call's name recorded in the error.
func FromMutPtrOp[T any](op string, p *T, errno error) (Mut[T], error) {
	if p == nil {
		return Mut[T]{}, lastError(op, errno)
	}
	return Mut[T]{p: p}, nil
}

// FromUnsafePtr is the adapter for opaque handles (SMBCCTX *, SMBCFILE *)
// that are only ever passed back to the library and never dereferenced.
func FromUnsafePtr(p unsafe.Pointer, errno error) (unsafe.Pointer, error) {
	return FromUnsafePtrOp("", p, errno)
}

// FromUnsafePtrOp is FromUnsafePtr with the failing native call's name recorded in the error.
func FromUnsafePtrOp(op string, p unsafe.Pointer, errno error) (unsafe.Pointer, error) {
	if p == nil {
		return nil, lastError(op, errno)
	}
	return p, nil
}
