//go:build !ios && !android && (amd64 || arm64)

package ffbind

import (
	"runtime"
	"unsafe"

	"github.com/obinnaokechukwu/ffbind/avutil"
)

// Frame is a reusable AVFrame slot. Pulling from a Sink writes into a
// caller-supplied Frame; the previous contents are unreferenced first, so a
// single slot can be reused for a whole pull loop.
type Frame struct {
	ptr unsafe.Pointer
}

// NewFrame allocates an empty frame slot.
func NewFrame() (*Frame, error) {
	ptr := lib.frameAlloc()
	if ptr == nil {
		if err := Init(); err != nil {
			return nil, err
		}
		return nil, ErrOutOfMemory
	}
	f := &Frame{ptr: ptr}
	runtime.SetFinalizer(f, (*Frame).Free)
	return f, nil
}

// NewVideoFrame allocates a frame with data buffers for the given geometry,
// ready to be filled and pushed into a FilterGraph.
func NewVideoFrame(width, height int, pixFmt PixelFormat) (*Frame, error) {
	f, err := NewFrame()
	if err != nil {
		return nil, err
	}
	avutil.SetFrameWidth(f.ptr, int32(width))
	avutil.SetFrameHeight(f.ptr, int32(height))
	avutil.SetFrameFormat(f.ptr, int32(pixFmt))
	if err := avutil.FrameGetBuffer(f.ptr, 0); err != nil {
		f.Free()
		return nil, err
	}
	return f, nil
}

// Free releases the frame and everything it references. Safe to call twice.
func (f *Frame) Free() {
	if f == nil || f.ptr == nil {
		return
	}
	runtime.SetFinalizer(f, nil)
	lib.frameFree(&f.ptr)
	f.ptr = nil
}

// Unref drops the buffers the frame references, keeping the slot.
func (f *Frame) Unref() {
	if f == nil || f.ptr == nil {
		return
	}
	lib.frameUnref(f.ptr)
}

// Raw returns the underlying AVFrame pointer.
func (f *Frame) Raw() unsafe.Pointer {
	if f == nil {
		return nil
	}
	return f.ptr
}

// Width returns the frame width (video only).
func (f *Frame) Width() int {
	return int(avutil.GetFrameWidth(f.Raw()))
}

// Height returns the frame height (video only).
func (f *Frame) Height() int {
	return int(avutil.GetFrameHeight(f.Raw()))
}

// Format returns the pixel format (video) or sample format (audio).
func (f *Frame) Format() int32 {
	return avutil.GetFrameFormat(f.Raw())
}

// PixelFormat returns the pixel format for video frames.
func (f *Frame) PixelFormat() PixelFormat {
	return avutil.PixelFormatFromNative(f.Format())
}

// SampleFormat returns the sample format for audio frames.
func (f *Frame) SampleFormat() SampleFormat {
	return avutil.SampleFormatFromNative(f.Format())
}

// NumSamples returns the number of audio samples in this frame (audio only).
func (f *Frame) NumSamples() int {
	return int(avutil.GetFrameNbSamples(f.Raw()))
}

// SampleRate returns the sample rate for audio frames.
func (f *Frame) SampleRate() int {
	return int(avutil.GetFrameSampleRate(f.Raw()))
}

// PTS returns the presentation timestamp of the frame.
func (f *Frame) PTS() int64 {
	return avutil.GetFramePTS(f.Raw())
}

// SetPTS sets the presentation timestamp of the frame.
func (f *Frame) SetPTS(pts int64) {
	avutil.SetFramePTS(f.Raw(), pts)
}
