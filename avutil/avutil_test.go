//go:build !ios && !android && (amd64 || arm64)

package avutil

import (
	"errors"
	"fmt"
	"os"
	"testing"
	"unsafe"

	"github.com/obinnaokechukwu/ffbind/internal/bindings"
	"github.com/stretchr/testify/require"
)

var ffmpegAvailable bool

func TestMain(m *testing.M) {
	if err := bindings.Load(); err == nil {
		ffmpegAvailable = true
	}
	os.Exit(m.Run())
}

func skipIfNoFFmpeg(t *testing.T) {
	t.Helper()
	if !ffmpegAvailable {
		t.Skip("FFmpeg not available")
	}
}

func TestFrameAllocAndFields(t *testing.T) {
	skipIfNoFFmpeg(t)
	frame := FrameAlloc()
	require.NotNil(t, frame)
	defer FrameFree(&frame)

	SetFrameWidth(frame, 1920)
	SetFrameHeight(frame, 1080)
	SetFrameFormat(frame, int32(PixelFormatYUV420P))
	SetFramePTS(frame, 42)

	require.Equal(t, int32(1920), GetFrameWidth(frame))
	require.Equal(t, int32(1080), GetFrameHeight(frame))
	require.Equal(t, int32(PixelFormatYUV420P), GetFrameFormat(frame))
	require.Equal(t, int64(42), GetFramePTS(frame))
}

func TestFrameFreeTwice(t *testing.T) {
	skipIfNoFFmpeg(t)
	frame := FrameAlloc()
	require.NotNil(t, frame)

	FrameFree(&frame)
	require.Nil(t, frame)
	FrameFree(&frame)
}

func TestNilFrameAccessors(t *testing.T) {
	require.Equal(t, int32(0), GetFrameWidth(nil))
	require.Equal(t, int32(-1), GetFrameFormat(nil))
	require.Equal(t, NoPTSValue, GetFramePTS(nil))
	require.Equal(t, int32(0), GetFrameNbSamples(nil))
	SetFrameWidth(nil, 1)
	FrameUnref(nil)
}

func TestMalloczIsZeroed(t *testing.T) {
	skipIfNoFFmpeg(t)
	ptr := Mallocz(128)
	require.NotNil(t, ptr)
	defer Free(ptr)

	for _, b := range unsafe.Slice((*byte)(ptr), 128) {
		require.Zero(t, b)
	}
}

func TestLogLevelRoundTrip(t *testing.T) {
	skipIfNoFFmpeg(t)
	prev := LogLevel()
	defer func() { _ = SetLogLevel(prev) }()

	require.NoError(t, SetLogLevel(16))
	require.Equal(t, int32(16), LogLevel())
}

func TestRational(t *testing.T) {
	r := NewRational(30000, 1001)
	require.InDelta(t, 29.97002997, r.Float64(), 0.0001)
	require.Zero(t, NewRational(1, 0).Float64())
	require.Equal(t, "30000/1001", r.String())
	require.Equal(t, NewRational(1001, 30000), r.Invert())
}

func TestRationalCmpAndReduce(t *testing.T) {
	require.Equal(t, 1, NewRational(1, 2).Cmp(NewRational(1, 3)))
	require.Equal(t, 0, NewRational(1, 2).Cmp(NewRational(2, 4)))
	require.Equal(t, -1, NewRational(1, 3).Cmp(NewRational(1, 2)))
	require.Equal(t, NewRational(2, 3), NewRational(4, 6).Reduce())
}

func TestRationalFromRegister(t *testing.T) {
	v := uint64(uint32(1)) | uint64(uint32(48000))<<32
	require.Equal(t, NewRational(1, 48000), RationalFromRegister(v))

	neg := uint64(uint32(0xFFFFFFFF)) | uint64(uint32(1))<<32
	require.Equal(t, NewRational(-1, 1), RationalFromRegister(neg))
}

func TestMediaTypeFromNative(t *testing.T) {
	require.Equal(t, MediaTypeVideo, MediaTypeFromNative(0))
	require.Equal(t, MediaTypeAttachment, MediaTypeFromNative(4))
	require.Equal(t, MediaTypeUnknown, MediaTypeFromNative(5))
	require.Equal(t, MediaTypeUnknown, MediaTypeFromNative(-7))
	require.Equal(t, "audio", MediaTypeAudio.String())
	require.Equal(t, "unknown", MediaType(99).String())
}

func TestFormatsFromNative(t *testing.T) {
	require.Equal(t, PixelFormatNone, PixelFormatFromNative(-5))
	require.Equal(t, PixelFormatNV12, PixelFormatFromNative(23))
	require.Equal(t, SampleFormatFltP, SampleFormatFromNative(8))
	require.Equal(t, SampleFormatNone, SampleFormatFromNative(-2))
	require.Equal(t, "none", SampleFormat(12).String())
	require.Equal(t, "fltp", SampleFormatFltP.String())
	require.Equal(t, "yuv420p", PixelFormatYUV420P.String())
}

func TestReadChannelLayout(t *testing.T) {
	raw := make([]byte, SizeofChannelLayout)
	ptr := unsafe.Pointer(&raw[0])
	*(*int32)(ptr) = int32(ChannelOrderNative)
	*(*int32)(unsafe.Pointer(uintptr(ptr) + 4)) = 2
	*(*uint64)(unsafe.Pointer(uintptr(ptr) + 8)) = ChannelMaskStereo

	l := ReadChannelLayout(ptr)
	require.Equal(t, ChannelLayout{Order: ChannelOrderNative, Channels: 2, Mask: ChannelMaskStereo}, l)
	require.Equal(t, "stereo", l.String())

	require.Equal(t, ChannelLayout{}, ReadChannelLayout(nil))
	require.Equal(t, "3 channels", ChannelLayout{Order: ChannelOrderUnspec, Channels: 3}.String())
}

func TestErrorHelpers(t *testing.T) {
	require.NoError(t, NewError(0, "noop"))

	err := fmt.Errorf("wrapped: %w", &Error{Code: AVERROR_EOF, Op: "av_buffersink_get_frame"})
	require.True(t, IsEOF(err))
	require.False(t, IsAgain(err))
	require.Equal(t, AVERROR_EOF, Code(err))
	require.Zero(t, Code(errors.New("plain")))

	again := &Error{Code: AVERROR_EAGAIN, Message: "Resource temporarily unavailable", Op: "x"}
	require.True(t, IsAgain(again))
	require.Contains(t, again.Error(), "code")
}

func TestErrorString(t *testing.T) {
	skipIfNoFFmpeg(t)
	require.NotEmpty(t, ErrorString(AVERROR_EOF))
	require.NotEmpty(t, ErrorString(-999999))
}
