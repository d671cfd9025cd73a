package cutil

import (
	"errors"
	"fmt"
	"io/fs"
	"syscall"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/smbc-go/smbc"
)

type dirent struct {
	Type    uint32
	NameLen uint32
}

func TestFromPtr_Nil(t *testing.T) {
	tests := []struct {
		name  string
		errno error
		want  syscall.Errno
	}{
		{"ENOENT", unix.ENOENT, unix.ENOENT},
		{"EACCES", unix.EACCES, unix.EACCES},
		{"errno not set", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := FromPtr[dirent](nil, tt.errno)
			require.Error(t, err)
			assert.True(t, ref.IsNil())

			var osErr *smbc.OSError
			require.True(t, errors.As(err, &osErr))
			assert.Equal(t, tt.want, osErr.Errno)
		})
	}
}

func TestFromPtr_NonNil(t *testing.T) {
	d := &dirent{Type: 7, NameLen: 3}

	// A stale errno from an earlier call must not turn success into failure.
	ref, err := FromPtr(d, unix.EAGAIN)
	require.NoError(t, err)
	assert.Same(t, d, ref.Ptr())
	assert.False(t, ref.IsNil())
	assert.Equal(t, dirent{Type: 7, NameLen: 3}, ref.Load())
}

func TestFromPtrOp_RecordsOp(t *testing.T) {
	_, err := FromPtrOp[dirent]("smbc_readdir", nil, unix.EBADF)
	require.Error(t, err)
	assert.EqualError(t, err, "smbc_readdir: bad file descriptor (os error 9)")
	assert.True(t, errors.Is(err, unix.EBADF))
}

func TestFromPtr_ErrnoZeroMessage(t *testing.T) {
	_, err := FromPtr[dirent](nil, nil)
	assert.EqualError(t, err, "errno 0 (os error 0)")
}

func TestFromPtr_NonErrnoPassthrough(t *testing.T) {
	cause := errors.New("wrapped call failed")

	_, err := FromPtrOp[dirent]("smbc_open", nil, cause)
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "smbc_open: wrapped call failed", err.Error())

	_, err = FromPtr[dirent](nil, cause)
	assert.Same(t, cause, err)
}

func TestFromPtr_WrappedErrnoKeepsContext(t *testing.T) {
	wrapped := fmt.Errorf("reading share list: %w", unix.EIO)

	_, err := FromPtrOp[dirent]("smbc_opendir", nil, wrapped)
	require.Error(t, err)
	assert.Equal(t, "smbc_opendir: reading share list: input/output error", err.Error())
	assert.ErrorIs(t, err, unix.EIO)

	var osErr *smbc.OSError
	assert.False(t, errors.As(err, &osErr))

	_, err = Check(int32(-1), wrapped)
	assert.Same(t, wrapped, err)
}

func TestFromMutPtr(t *testing.T) {
	d := &dirent{}

	m, err := FromMutPtr(d, nil)
	require.NoError(t, err)
	m.Store(dirent{Type: 1, NameLen: 5})
	assert.Equal(t, uint32(5), d.NameLen)
	assert.Equal(t, d, m.Ref().Ptr())
	assert.Equal(t, dirent{Type: 1, NameLen: 5}, m.Ref().Load())

	m, err = FromMutPtr[dirent](nil, unix.ENOENT)
	require.Error(t, err)
	assert.True(t, m.IsNil())
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestFromUnsafePtr(t *testing.T) {
	var handle [16]byte
	p := unsafe.Pointer(&handle[0])

	got, err := FromUnsafePtr(p, unix.ENOMEM)
	require.NoError(t, err)
	assert.Equal(t, p, got)

	got, err = FromUnsafePtrOp("smbc_new_context", nil, unix.ENOMEM)
	require.Error(t, err)
	assert.True(t, got == nil)
	assert.ErrorIs(t, err, unix.ENOMEM)
	assert.Contains(t, err.Error(), "smbc_new_context")
}
