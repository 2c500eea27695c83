//go:build !ios && !android && (amd64 || arm64)

// Package avutil provides bindings to FFmpeg's libavutil library: the native
// allocator, frames, error strings, AVOptions and the log level.
package avutil

import (
	"unsafe"

	"github.com/ebitengine/purego"
	"github.com/obinnaokechukwu/ffbind/internal/bindings"
)

// Frame is an opaque FFmpeg AVFrame pointer.
type Frame = unsafe.Pointer

// Function bindings - registered when init() is called
var (
	avFrameAlloc     func() unsafe.Pointer
	avFrameFree      func(frame *unsafe.Pointer)
	avFrameRef       func(dst, src unsafe.Pointer) int32
	avFrameUnref     func(frame unsafe.Pointer)
	avFrameGetBuffer func(frame unsafe.Pointer, align int32) int32

	avMalloc  func(size uintptr) unsafe.Pointer
	avMallocz func(size uintptr) unsafe.Pointer
	avFree    func(ptr unsafe.Pointer)

	avStrerror func(errnum int32, errbuf unsafe.Pointer, errbufSize uintptr) int32

	avOptSetInt func(obj unsafe.Pointer, name string, val int64, searchFlags int32) int32
	avOptSet    func(obj unsafe.Pointer, name, val string, searchFlags int32) int32

	avLogSetLevel func(level int32)
	avLogGetLevel func() int32

	// FFmpeg 5.1+
	avChannelLayoutUninit func(chLayout unsafe.Pointer)

	bindingsRegistered bool
)

func init() {
	registerBindings()
}

func registerBindings() {
	if bindingsRegistered {
		return
	}

	if err := bindings.Load(); err != nil {
		return // Will fail later when functions are called
	}

	lib := bindings.LibAVUtil()
	if lib == 0 {
		return
	}

	purego.RegisterLibFunc(&avFrameAlloc, lib, "av_frame_alloc")
	purego.RegisterLibFunc(&avFrameFree, lib, "av_frame_free")
	purego.RegisterLibFunc(&avFrameRef, lib, "av_frame_ref")
	purego.RegisterLibFunc(&avFrameUnref, lib, "av_frame_unref")
	purego.RegisterLibFunc(&avFrameGetBuffer, lib, "av_frame_get_buffer")

	purego.RegisterLibFunc(&avMalloc, lib, "av_malloc")
	purego.RegisterLibFunc(&avMallocz, lib, "av_mallocz")
	purego.RegisterLibFunc(&avFree, lib, "av_free")

	purego.RegisterLibFunc(&avStrerror, lib, "av_strerror")

	purego.RegisterLibFunc(&avOptSetInt, lib, "av_opt_set_int")
	purego.RegisterLibFunc(&avOptSet, lib, "av_opt_set")

	purego.RegisterLibFunc(&avLogSetLevel, lib, "av_log_set_level")
	purego.RegisterLibFunc(&avLogGetLevel, lib, "av_log_get_level")

	bindings.RegisterOptional(&avChannelLayoutUninit, lib, "av_channel_layout_uninit")

	bindingsRegistered = true
}

// Malloc allocates memory using FFmpeg's allocator. Memory that will be
// attached to an FFmpeg struct must come from here (or Mallocz) so that
// FFmpeg's own free routines can release it.
func Malloc(size uintptr) unsafe.Pointer {
	if avMalloc == nil {
		return nil
	}
	return avMalloc(size)
}

// Mallocz is Malloc with the memory zeroed.
func Mallocz(size uintptr) unsafe.Pointer {
	if avMallocz == nil {
		return nil
	}
	return avMallocz(size)
}

// Free frees memory allocated by Malloc or Mallocz.
func Free(ptr unsafe.Pointer) {
	if ptr == nil || avFree == nil {
		return
	}
	avFree(ptr)
}

// FrameAlloc allocates an AVFrame and returns a pointer to it.
// The returned frame must be freed with FrameFree when no longer needed.
func FrameAlloc() Frame {
	if avFrameAlloc == nil {
		return nil
	}
	return avFrameAlloc()
}

// FrameFree frees an AVFrame and sets the pointer to nil.
// Safe to call with nil pointer.
func FrameFree(frame *Frame) {
	if frame == nil || *frame == nil || avFrameFree == nil {
		return
	}

	// Stage the pointer in FFmpeg memory: handing a pointer into the Go stack
	// to foreign code trips some purego backends.
	tmp := Malloc(unsafe.Sizeof(uintptr(0)))
	if tmp == nil {
		avFrameFree(frame)
		*frame = nil
		return
	}
	*(*unsafe.Pointer)(tmp) = *frame
	avFrameFree((*unsafe.Pointer)(tmp))
	Free(tmp)
	*frame = nil
}

// FrameRef creates a reference to src and stores it in dst.
func FrameRef(dst, src Frame) error {
	if avFrameRef == nil {
		return bindings.ErrNotLoaded
	}
	if ret := avFrameRef(dst, src); ret < 0 {
		return NewError(ret, "av_frame_ref")
	}
	return nil
}

// FrameUnref unreferences all buffers referenced by frame.
func FrameUnref(frame Frame) {
	if frame == nil || avFrameUnref == nil {
		return
	}
	avFrameUnref(frame)
}

// FrameGetBuffer allocates data buffers for the frame. Format, width and
// height (video) or format, nb_samples and channel layout (audio) must be set.
func FrameGetBuffer(frame Frame, align int32) error {
	if avFrameGetBuffer == nil {
		return bindings.ErrNotLoaded
	}
	if ret := avFrameGetBuffer(frame, align); ret < 0 {
		return NewError(ret, "av_frame_get_buffer")
	}
	return nil
}

// NoPTSValue is the value used to indicate no PTS.
const NoPTSValue int64 = -9223372036854775808 // 0x8000000000000000

// AVFrame field offsets (FFmpeg 6.x / avutil 58.x).
const (
	offsetFrameWidth      = 104
	offsetFrameHeight     = 108
	offsetFrameNbSamples  = 112
	offsetFrameFormat     = 116
	offsetFramePts        = 136
	offsetFrameSampleRate = 216
)

func frameInt32(frame Frame, offset uintptr) *int32 {
	return (*int32)(unsafe.Pointer(uintptr(frame) + offset))
}

// GetFrameWidth returns the width of the frame.
func GetFrameWidth(frame Frame) int32 {
	if frame == nil {
		return 0
	}
	return *frameInt32(frame, offsetFrameWidth)
}

// SetFrameWidth sets the width of the frame.
func SetFrameWidth(frame Frame, width int32) {
	if frame == nil {
		return
	}
	*frameInt32(frame, offsetFrameWidth) = width
}

// GetFrameHeight returns the height of the frame.
func GetFrameHeight(frame Frame) int32 {
	if frame == nil {
		return 0
	}
	return *frameInt32(frame, offsetFrameHeight)
}

// SetFrameHeight sets the height of the frame.
func SetFrameHeight(frame Frame, height int32) {
	if frame == nil {
		return
	}
	*frameInt32(frame, offsetFrameHeight) = height
}

// GetFrameFormat returns the pixel format (video) or sample format (audio).
func GetFrameFormat(frame Frame) int32 {
	if frame == nil {
		return -1
	}
	return *frameInt32(frame, offsetFrameFormat)
}

// SetFrameFormat sets the pixel format (video) or sample format (audio).
func SetFrameFormat(frame Frame, format int32) {
	if frame == nil {
		return
	}
	*frameInt32(frame, offsetFrameFormat) = format
}

// GetFrameNbSamples returns the number of audio samples in this frame.
func GetFrameNbSamples(frame Frame) int32 {
	if frame == nil {
		return 0
	}
	return *frameInt32(frame, offsetFrameNbSamples)
}

// SetFrameNbSamples sets the number of audio samples.
func SetFrameNbSamples(frame Frame, nbSamples int32) {
	if frame == nil {
		return
	}
	*frameInt32(frame, offsetFrameNbSamples) = nbSamples
}

// GetFrameSampleRate returns the audio sample rate.
func GetFrameSampleRate(frame Frame) int32 {
	if frame == nil {
		return 0
	}
	return *frameInt32(frame, offsetFrameSampleRate)
}

// GetFramePTS returns the presentation timestamp.
func GetFramePTS(frame Frame) int64 {
	if frame == nil {
		return NoPTSValue
	}
	return *(*int64)(unsafe.Pointer(uintptr(frame) + offsetFramePts))
}

// SetFramePTS sets the presentation timestamp.
func SetFramePTS(frame Frame, pts int64) {
	if frame == nil {
		return
	}
	*(*int64)(unsafe.Pointer(uintptr(frame) + offsetFramePts)) = pts
}

// ErrorString returns a human-readable error message for an FFmpeg error code.
func ErrorString(errnum int32) string {
	if avStrerror == nil {
		return "unknown error (FFmpeg not loaded)"
	}

	buf := make([]byte, 256)
	avStrerror(errnum, unsafe.Pointer(&buf[0]), uintptr(len(buf)))
	for i, b := range buf {
		if b == 0 {
			return string(buf[:i])
		}
	}
	return string(buf)
}

// OptSetInt sets an integer AVOption on obj (a context with an AVClass).
func OptSetInt(obj unsafe.Pointer, name string, val int64, searchFlags int32) error {
	if avOptSetInt == nil {
		return bindings.ErrNotLoaded
	}
	if ret := avOptSetInt(obj, name, val, searchFlags); ret < 0 {
		return NewError(ret, "av_opt_set_int")
	}
	return nil
}

// OptSet sets an AVOption on obj from its string form.
func OptSet(obj unsafe.Pointer, name, val string, searchFlags int32) error {
	if avOptSet == nil {
		return bindings.ErrNotLoaded
	}
	if ret := avOptSet(obj, name, val, searchFlags); ret < 0 {
		return NewError(ret, "av_opt_set")
	}
	return nil
}

// SetLogLevel sets FFmpeg's global log level (av_log_set_level).
func SetLogLevel(level int32) error {
	if avLogSetLevel == nil {
		return bindings.ErrNotLoaded
	}
	avLogSetLevel(level)
	return nil
}

// LogLevel returns FFmpeg's global log level, or -8 (quiet) if not loaded.
func LogLevel() int32 {
	if avLogGetLevel == nil {
		return -8
	}
	return avLogGetLevel()
}
