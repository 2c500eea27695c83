//go:build !ios && !android && (amd64 || arm64)

package avfilter

import (
	"unsafe"

	"github.com/obinnaokechukwu/ffbind/avutil"
)

// BufferSinkGetFrame pulls the next frame from a buffersink into frame.
// It returns the raw status: 0, AVERROR(EAGAIN), AVERROR_EOF or another
// negative error code.
func BufferSinkGetFrame(ctx Context, frame unsafe.Pointer) int32 {
	if ctx == nil || Init() != nil {
		return avutil.AVERROR_EINVAL
	}
	return av_buffersink_get_frame(uintptr(ctx), uintptr(frame))
}

// BufferSinkGetFrameFlags is BufferSinkGetFrame with AV_BUFFERSINK_FLAG_* flags.
func BufferSinkGetFrameFlags(ctx Context, frame unsafe.Pointer, flags int32) int32 {
	if ctx == nil || Init() != nil {
		return avutil.AVERROR_EINVAL
	}
	return av_buffersink_get_frame_flags(uintptr(ctx), uintptr(frame), flags)
}

// BufferSinkGetSamples pulls exactly nbSamples audio samples from an
// abuffersink. At end of stream the last frame may carry fewer.
func BufferSinkGetSamples(ctx Context, frame unsafe.Pointer, nbSamples int32) int32 {
	if ctx == nil || Init() != nil {
		return avutil.AVERROR_EINVAL
	}
	return av_buffersink_get_samples(uintptr(ctx), uintptr(frame), nbSamples)
}

// BufferSinkSetFrameSize makes an abuffersink emit frames of frameSize
// samples, the last one possibly shorter. BufferSinkGetFrame and
// BufferSinkGetSamples must not be mixed on the same sink.
func BufferSinkSetFrameSize(ctx Context, frameSize uint32) {
	if ctx == nil || Init() != nil {
		return
	}
	av_buffersink_set_frame_size(uintptr(ctx), frameSize)
}

// BufferSinkGetType returns the negotiated media type (enum AVMediaType).
func BufferSinkGetType(ctx Context) int32 {
	if ctx == nil || Init() != nil {
		return int32(avutil.MediaTypeUnknown)
	}
	return av_buffersink_get_type(uintptr(ctx))
}

// BufferSinkGetW returns the negotiated frame width.
func BufferSinkGetW(ctx Context) int32 {
	if ctx == nil || Init() != nil {
		return 0
	}
	return av_buffersink_get_w(uintptr(ctx))
}

// BufferSinkGetH returns the negotiated frame height.
func BufferSinkGetH(ctx Context) int32 {
	if ctx == nil || Init() != nil {
		return 0
	}
	return av_buffersink_get_h(uintptr(ctx))
}

// BufferSinkGetFormat returns the negotiated pixel or sample format.
func BufferSinkGetFormat(ctx Context) int32 {
	if ctx == nil || Init() != nil {
		return -1
	}
	return av_buffersink_get_format(uintptr(ctx))
}

// BufferSinkGetTimeBase returns the time base of the sink input link.
func BufferSinkGetTimeBase(ctx Context) avutil.Rational {
	if ctx == nil || Init() != nil {
		return avutil.Rational{}
	}
	return avutil.RationalFromRegister(av_buffersink_get_time_base(uintptr(ctx)))
}

// BufferSinkGetFrameRate returns the frame rate of the sink input link,
// 0/1 when unknown.
func BufferSinkGetFrameRate(ctx Context) avutil.Rational {
	if ctx == nil || Init() != nil {
		return avutil.Rational{}
	}
	return avutil.RationalFromRegister(av_buffersink_get_frame_rate(uintptr(ctx)))
}

// BufferSinkGetSampleRate returns the negotiated sample rate.
func BufferSinkGetSampleRate(ctx Context) int32 {
	if ctx == nil || Init() != nil {
		return 0
	}
	return av_buffersink_get_sample_rate(uintptr(ctx))
}

// BufferSinkGetChannels returns the negotiated channel count, or 0 when the
// loaded libavfilter predates av_buffersink_get_channels.
func BufferSinkGetChannels(ctx Context) int32 {
	if ctx == nil || Init() != nil || av_buffersink_get_channels == nil {
		return 0
	}
	return av_buffersink_get_channels(uintptr(ctx))
}

// BufferSinkGetChLayout returns a copy of the negotiated channel layout.
func BufferSinkGetChLayout(ctx Context) (avutil.ChannelLayout, error) {
	if ctx == nil {
		return avutil.ChannelLayout{}, errNilContext
	}
	if err := Init(); err != nil {
		return avutil.ChannelLayout{}, err
	}
	if av_buffersink_get_ch_layout == nil {
		return avutil.ChannelLayout{Channels: BufferSinkGetChannels(ctx)}, nil
	}

	// FFmpeg may attach a custom channel map to the layout, so the struct
	// lives in FFmpeg memory and is uninitialised before being freed.
	tmp := avutil.Mallocz(avutil.SizeofChannelLayout)
	if tmp == nil {
		return avutil.ChannelLayout{}, avutil.NewError(avutil.AVERROR_ENOMEM, "av_mallocz")
	}
	defer avutil.Free(tmp)

	if ret := av_buffersink_get_ch_layout(uintptr(ctx), uintptr(tmp)); ret < 0 {
		return avutil.ChannelLayout{}, avutil.NewError(ret, "av_buffersink_get_ch_layout")
	}
	layout := avutil.ReadChannelLayout(tmp)
	avutil.ChannelLayoutUninit(tmp)
	return layout, nil
}
