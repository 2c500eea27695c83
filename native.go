//go:build !ios && !android && (amd64 || arm64)

package ffbind

import (
	"unsafe"

	"github.com/obinnaokechukwu/ffbind/avcodec"
	"github.com/obinnaokechukwu/ffbind/avfilter"
	"github.com/obinnaokechukwu/ffbind/avutil"
)

// native is every FFmpeg entry point the handles in this package call.
// Field reads and writes on native structs go straight through the offset
// accessors in the low-level packages.
type native interface {
	mallocz(size uintptr) unsafe.Pointer
	free(ptr unsafe.Pointer)

	parametersAlloc() avcodec.Parameters
	parametersFree(par *avcodec.Parameters)
	parametersCopy(dst, src avcodec.Parameters) error
	parametersFromContext(par avcodec.Parameters, ctx avcodec.Context) error
	parametersToContext(ctx avcodec.Context, par avcodec.Parameters) error

	frameAlloc() unsafe.Pointer
	frameFree(frame *unsafe.Pointer)
	frameUnref(frame unsafe.Pointer)

	sinkGetFrame(ctx avfilter.Context, frame unsafe.Pointer, flags int32) int32
	sinkGetSamples(ctx avfilter.Context, frame unsafe.Pointer, n int32) int32
	sinkSetFrameSize(ctx avfilter.Context, n uint32)
	sinkType(ctx avfilter.Context) int32
	sinkWidth(ctx avfilter.Context) int32
	sinkHeight(ctx avfilter.Context) int32
	sinkFormat(ctx avfilter.Context) int32
	sinkTimeBase(ctx avfilter.Context) avutil.Rational
	sinkFrameRate(ctx avfilter.Context) avutil.Rational
	sinkSampleRate(ctx avfilter.Context) int32
	sinkChannels(ctx avfilter.Context) int32
	sinkChannelLayout(ctx avfilter.Context) (avutil.ChannelLayout, error)
}

var lib native = ffmpegNative{}

// ffmpegNative forwards to the purego bindings.
type ffmpegNative struct{}

func (ffmpegNative) mallocz(size uintptr) unsafe.Pointer { return avutil.Mallocz(size) }
func (ffmpegNative) free(ptr unsafe.Pointer)              { avutil.Free(ptr) }

func (ffmpegNative) parametersAlloc() avcodec.Parameters     { return avcodec.ParametersAlloc() }
func (ffmpegNative) parametersFree(par *avcodec.Parameters) { avcodec.ParametersFree(par) }
func (ffmpegNative) parametersCopy(dst, src avcodec.Parameters) error {
	return avcodec.ParametersCopy(dst, src)
}
func (ffmpegNative) parametersFromContext(par avcodec.Parameters, ctx avcodec.Context) error {
	return avcodec.ParametersFromContext(par, ctx)
}
func (ffmpegNative) parametersToContext(ctx avcodec.Context, par avcodec.Parameters) error {
	return avcodec.ParametersToContext(ctx, par)
}

func (ffmpegNative) frameAlloc() unsafe.Pointer       { return avutil.FrameAlloc() }
func (ffmpegNative) frameFree(frame *unsafe.Pointer) { avutil.FrameFree(frame) }
func (ffmpegNative) frameUnref(frame unsafe.Pointer) { avutil.FrameUnref(frame) }

func (ffmpegNative) sinkGetFrame(ctx avfilter.Context, frame unsafe.Pointer, flags int32) int32 {
	if flags == 0 {
		return avfilter.BufferSinkGetFrame(ctx, frame)
	}
	return avfilter.BufferSinkGetFrameFlags(ctx, frame, flags)
}
func (ffmpegNative) sinkGetSamples(ctx avfilter.Context, frame unsafe.Pointer, n int32) int32 {
	return avfilter.BufferSinkGetSamples(ctx, frame, n)
}
func (ffmpegNative) sinkSetFrameSize(ctx avfilter.Context, n uint32) {
	avfilter.BufferSinkSetFrameSize(ctx, n)
}
func (ffmpegNative) sinkType(ctx avfilter.Context) int32   { return avfilter.BufferSinkGetType(ctx) }
func (ffmpegNative) sinkWidth(ctx avfilter.Context) int32  { return avfilter.BufferSinkGetW(ctx) }
func (ffmpegNative) sinkHeight(ctx avfilter.Context) int32 { return avfilter.BufferSinkGetH(ctx) }
func (ffmpegNative) sinkFormat(ctx avfilter.Context) int32 { return avfilter.BufferSinkGetFormat(ctx) }
func (ffmpegNative) sinkTimeBase(ctx avfilter.Context) avutil.Rational {
	return avfilter.BufferSinkGetTimeBase(ctx)
}
func (ffmpegNative) sinkFrameRate(ctx avfilter.Context) avutil.Rational {
	return avfilter.BufferSinkGetFrameRate(ctx)
}
func (ffmpegNative) sinkSampleRate(ctx avfilter.Context) int32 {
	return avfilter.BufferSinkGetSampleRate(ctx)
}
func (ffmpegNative) sinkChannels(ctx avfilter.Context) int32 {
	return avfilter.BufferSinkGetChannels(ctx)
}
func (ffmpegNative) sinkChannelLayout(ctx avfilter.Context) (avutil.ChannelLayout, error) {
	return avfilter.BufferSinkGetChLayout(ctx)
}
