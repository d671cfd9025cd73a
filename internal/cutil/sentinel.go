package cutil

// Signed covers the C return types that use -1 as their error sentinel:
// C.int, C.long, C.ssize_t, C.off_t and their Go counterparts.
type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// sentinel is -1 in T's own width, i.e. all bits set.
func sentinel[T Signed]() T {
	return T(-1)
}

// Check returns v unchanged unless it is -1, in which case it returns an
// *smbc.OSError built from errno, the value cgo captured for the call. Every
// other value, negative ones included, is a valid result.
func Check[T Signed](v T, errno error) (T, error) {
	return CheckOp("", v, errno)
}

// CheckOp is Check with the failing native call's name recorded in the error.
func CheckOp[T Signed](op string, v T, errno error) (T, error) {
	if v != sentinel[T]() {
		return v, nil
	}
	return v, lastError(op, errno)
}

// CheckErrno is Check for calls that hand back their error code explicitly
// (as a return value or out-parameter) instead of setting errno.
func CheckErrno[T Signed](v T, code int) (T, error) {
	return CheckErrnoOp("", v, code)
}

// CheckErrnoOp is CheckErrno with the failing native call's name recorded in the error.
func CheckErrnoOp[T Signed](op string, v T, code int) (T, error) {
	if v != sentinel[T]() {
		return v, nil
	}
	return v, codeError(op, code)
}
