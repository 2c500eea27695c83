//go:build !ios && !android && (amd64 || arm64)

package avcodec

import (
	"os"
	"testing"
	"unsafe"

	"github.com/obinnaokechukwu/ffbind/avutil"
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

func TestFindDecoder(t *testing.T) {
	skipIfNoFFmpeg(t)
	codec := FindDecoder(CodecIDRAWVIDEO)
	require.NotNil(t, codec)
	require.Equal(t, "rawvideo", GetCodecName(codec))
}

func TestFindDecoderByName(t *testing.T) {
	skipIfNoFFmpeg(t)
	codec := FindDecoderByName("h264")
	if codec == nil {
		t.Skip("h264 decoder not found by name")
	}
	require.Equal(t, "h264", GetCodecName(codec))
}

func TestFreeContext(t *testing.T) {
	skipIfNoFFmpeg(t)
	ctx := AllocContext3(nil)
	require.NotNil(t, ctx)

	FreeContext(&ctx)
	require.Nil(t, ctx)

	// Double free should be safe
	FreeContext(&ctx)
}

func TestParametersAllocDefaults(t *testing.T) {
	skipIfNoFFmpeg(t)
	par := ParametersAlloc()
	require.NotNil(t, par)
	defer ParametersFree(&par)

	require.Equal(t, int32(avutil.MediaTypeUnknown), GetParCodecType(par))
	require.Equal(t, int32(CodecIDNone), GetParCodecID(par))
	require.Equal(t, int32(-1), GetParFormat(par))

	ptr, size := GetParExtradata(par)
	require.Nil(t, ptr)
	require.Zero(t, size)
}

func TestParametersFieldsRoundTrip(t *testing.T) {
	skipIfNoFFmpeg(t)
	par := ParametersAlloc()
	require.NotNil(t, par)
	defer ParametersFree(&par)

	SetParCodecType(par, int32(avutil.MediaTypeVideo))
	SetParCodecID(par, int32(CodecIDH264))
	SetParCodecTag(par, 0x31637661)
	SetParWidth(par, 1280)
	SetParHeight(par, 720)
	SetParFormat(par, int32(avutil.PixelFormatYUV420P))
	SetParBitRate(par, 4_000_000)
	SetParProfile(par, 100)
	SetParLevel(par, 31)

	require.Equal(t, int32(avutil.MediaTypeVideo), GetParCodecType(par))
	require.Equal(t, int32(CodecIDH264), GetParCodecID(par))
	require.Equal(t, uint32(0x31637661), GetParCodecTag(par))
	require.Equal(t, int32(1280), GetParWidth(par))
	require.Equal(t, int32(720), GetParHeight(par))
	require.Equal(t, int32(avutil.PixelFormatYUV420P), GetParFormat(par))
	require.Equal(t, int64(4_000_000), GetParBitRate(par))
	require.Equal(t, int32(100), GetParProfile(par))
	require.Equal(t, int32(31), GetParLevel(par))
}

func TestParametersCopyDuplicatesExtradata(t *testing.T) {
	skipIfNoFFmpeg(t)
	src := ParametersAlloc()
	dst := ParametersAlloc()
	require.NotNil(t, src)
	require.NotNil(t, dst)
	defer ParametersFree(&src)
	defer ParametersFree(&dst)

	data := []byte{0x01, 0x64, 0x00, 0x1f}
	buf := avutil.Mallocz(uintptr(len(data) + InputBufferPaddingSize))
	require.NotNil(t, buf)
	copy(unsafe.Slice((*byte)(buf), len(data)), data)
	SetParExtradata(src, buf, int32(len(data)))
	SetParWidth(src, 320)

	require.NoError(t, ParametersCopy(dst, src))
	require.Equal(t, int32(320), GetParWidth(dst))

	dstPtr, dstSize := GetParExtradata(dst)
	require.Equal(t, int32(len(data)), dstSize)
	require.NotEqual(t, buf, dstPtr)
	require.Equal(t, data, unsafe.Slice((*byte)(dstPtr), dstSize))
}

func TestParametersContextRoundTrip(t *testing.T) {
	skipIfNoFFmpeg(t)
	ctx := AllocContext3(nil)
	require.NotNil(t, ctx)
	defer FreeContext(&ctx)

	par := ParametersAlloc()
	require.NotNil(t, par)
	defer ParametersFree(&par)
	SetParCodecType(par, int32(avutil.MediaTypeVideo))
	SetParCodecID(par, int32(CodecIDRAWVIDEO))
	SetParWidth(par, 64)
	SetParHeight(par, 48)
	SetParFormat(par, int32(avutil.PixelFormatYUV420P))
	require.NoError(t, ParametersToContext(ctx, par))

	out := ParametersAlloc()
	require.NotNil(t, out)
	defer ParametersFree(&out)
	require.NoError(t, ParametersFromContext(out, ctx))
	require.Equal(t, int32(64), GetParWidth(out))
	require.Equal(t, int32(48), GetParHeight(out))
	require.Equal(t, int32(CodecIDRAWVIDEO), GetParCodecID(out))
}

func TestParametersLayoutFor(t *testing.T) {
	require.Equal(t, layoutLegacy, parametersLayoutFor(60))
	require.Equal(t, layoutLegacy, parametersLayoutFor(58))
	require.Equal(t, layoutV61, parametersLayoutFor(61))
	require.Equal(t, layoutV61, parametersLayoutFor(0))
}

func TestNilParametersAccessors(t *testing.T) {
	require.Equal(t, int32(-1), GetParCodecType(nil))
	require.Equal(t, int32(-1), GetParFormat(nil))
	require.Zero(t, GetParWidth(nil))
	require.Zero(t, GetParProfile(nil))
	require.Zero(t, GetParLevel(nil))
	ptr, size := GetParExtradata(nil)
	require.Nil(t, ptr)
	require.Zero(t, size)
	SetParWidth(nil, 1)
	SetParProfile(nil, 1)
	SetParLevel(nil, 1)
	var par Parameters
	ParametersFree(&par)
}

func TestCodecIDs(t *testing.T) {
	require.Equal(t, CodecID(27), CodecIDH264)
	require.Equal(t, CodecID(173), CodecIDHEVC)
	require.Equal(t, CodecID(226), CodecIDAV1)
	require.Equal(t, CodecIDNone, CodecIDFromNative(-3))
	require.Equal(t, CodecIDAAC, CodecIDFromNative(86018))
	require.True(t, CodecIDH264.IsVideo())
	require.True(t, CodecIDOPUS.IsAudio())
	require.False(t, CodecIDDVDSubtitle.IsAudio())
	require.Equal(t, "h264", CodecIDH264.String())
}
