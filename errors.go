//go:build !ios && !android && (amd64 || arm64)

package ffbind

import (
	"errors"

	"github.com/obinnaokechukwu/ffbind/avutil"
	"github.com/obinnaokechukwu/ffbind/internal/bindings"
)

// FFmpegError is an error from FFmpeg operations.
// It contains the raw FFmpeg error code and a human-readable message.
type FFmpegError = avutil.Error

// Common errors
var (
	// ErrOutOfMemory indicates memory allocation failed.
	ErrOutOfMemory = errors.New("ffbind: out of memory")

	// ErrNotLoaded indicates FFmpeg libraries are not loaded.
	ErrNotLoaded = bindings.ErrNotLoaded

	// ErrClosed indicates the handle has been freed.
	ErrClosed = errors.New("ffbind: handle is closed")

	// ErrFilterGraphClosed is returned when operating on a closed filter
	// graph, including pulls on a Sink it handed out.
	ErrFilterGraphClosed = errors.New("ffbind: filter graph is closed")

	// ErrOwnerReleased is returned when an Owner is released more times
	// than it was retained.
	ErrOwnerReleased = errors.New("ffbind: owner already released")
)

// Error code constants re-exported from avutil
const (
	AVERROR_EOF    = avutil.AVERROR_EOF
	AVERROR_EAGAIN = avutil.AVERROR_EAGAIN
	AVERROR_EINVAL = avutil.AVERROR_EINVAL
	AVERROR_ENOMEM = avutil.AVERROR_ENOMEM
)

// NewError creates an FFmpegError from an error code.
// Returns nil if code >= 0.
func NewError(code int32, op string) error {
	return avutil.NewError(code, op)
}

// ErrorCode returns the FFmpeg error code from an error, or 0 if not an FFmpeg error.
func ErrorCode(err error) int32 {
	return avutil.Code(err)
}
