//go:build !ios && !android && (amd64 || arm64)

package avutil

// MediaType represents FFmpeg media types (enum AVMediaType).
type MediaType int32

const (
	MediaTypeUnknown    MediaType = -1
	MediaTypeVideo      MediaType = 0
	MediaTypeAudio      MediaType = 1
	MediaTypeData       MediaType = 2
	MediaTypeSubtitle   MediaType = 3
	MediaTypeAttachment MediaType = 4
)

// MediaTypeFromNative maps a raw codec_type value. Anything FFmpeg does not
// define becomes MediaTypeUnknown.
func MediaTypeFromNative(v int32) MediaType {
	if v < int32(MediaTypeVideo) || v > int32(MediaTypeAttachment) {
		return MediaTypeUnknown
	}
	return MediaType(v)
}

func (t MediaType) String() string {
	switch t {
	case MediaTypeVideo:
		return "video"
	case MediaTypeAudio:
		return "audio"
	case MediaTypeData:
		return "data"
	case MediaTypeSubtitle:
		return "subtitle"
	case MediaTypeAttachment:
		return "attachment"
	default:
		return "unknown"
	}
}

// PixelFormat represents FFmpeg pixel formats.
type PixelFormat int32

// Common pixel formats (from FFmpeg's pixfmt.h)
const (
	PixelFormatNone     PixelFormat = -1
	PixelFormatYUV420P  PixelFormat = 0  // Planar YUV 4:2:0
	PixelFormatYUYV422  PixelFormat = 1  // Packed YUV 4:2:2
	PixelFormatRGB24    PixelFormat = 2  // Packed RGB 8:8:8
	PixelFormatBGR24    PixelFormat = 3  // Packed BGR 8:8:8
	PixelFormatYUV422P  PixelFormat = 4  // Planar YUV 4:2:2
	PixelFormatYUV444P  PixelFormat = 5  // Planar YUV 4:4:4
	PixelFormatGray8    PixelFormat = 8  // 8-bit grayscale
	PixelFormatYUVJ420P PixelFormat = 12 // Planar YUV 4:2:0 (JPEG)
	PixelFormatNV12     PixelFormat = 23 // Planar YUV 4:2:0 (UV interleaved)
	PixelFormatARGB     PixelFormat = 25 // Packed ARGB 8:8:8:8
	PixelFormatRGBA     PixelFormat = 26 // Packed RGBA 8:8:8:8
	PixelFormatABGR     PixelFormat = 27 // Packed ABGR 8:8:8:8
	PixelFormatBGRA     PixelFormat = 28 // Packed BGRA 8:8:8:8
)

// PixelFormatFromNative maps a raw format value; negatives become PixelFormatNone.
func PixelFormatFromNative(v int32) PixelFormat {
	if v < 0 {
		return PixelFormatNone
	}
	return PixelFormat(v)
}

func (f PixelFormat) String() string {
	switch f {
	case PixelFormatNone:
		return "none"
	case PixelFormatYUV420P:
		return "yuv420p"
	case PixelFormatYUYV422:
		return "yuyv422"
	case PixelFormatRGB24:
		return "rgb24"
	case PixelFormatBGR24:
		return "bgr24"
	case PixelFormatYUV422P:
		return "yuv422p"
	case PixelFormatYUV444P:
		return "yuv444p"
	case PixelFormatGray8:
		return "gray"
	case PixelFormatYUVJ420P:
		return "yuvj420p"
	case PixelFormatNV12:
		return "nv12"
	case PixelFormatARGB:
		return "argb"
	case PixelFormatRGBA:
		return "rgba"
	case PixelFormatABGR:
		return "abgr"
	case PixelFormatBGRA:
		return "bgra"
	default:
		return "unknown"
	}
}

// SampleFormat represents FFmpeg audio sample formats.
type SampleFormat int32

const (
	SampleFormatNone SampleFormat = -1
	SampleFormatU8   SampleFormat = 0  // Unsigned 8-bit
	SampleFormatS16  SampleFormat = 1  // Signed 16-bit
	SampleFormatS32  SampleFormat = 2  // Signed 32-bit
	SampleFormatFlt  SampleFormat = 3  // Float 32-bit
	SampleFormatDbl  SampleFormat = 4  // Float 64-bit
	SampleFormatU8P  SampleFormat = 5  // Unsigned 8-bit planar
	SampleFormatS16P SampleFormat = 6  // Signed 16-bit planar
	SampleFormatS32P SampleFormat = 7  // Signed 32-bit planar
	SampleFormatFltP SampleFormat = 8  // Float 32-bit planar
	SampleFormatDblP SampleFormat = 9  // Float 64-bit planar
	SampleFormatS64  SampleFormat = 10 // Signed 64-bit
	SampleFormatS64P SampleFormat = 11 // Signed 64-bit planar
)

// SampleFormatFromNative maps a raw format value; negatives become SampleFormatNone.
func SampleFormatFromNative(v int32) SampleFormat {
	if v < 0 {
		return SampleFormatNone
	}
	return SampleFormat(v)
}

// String returns the name FFmpeg uses in filter arguments ("fltp", "s16"...).
func (f SampleFormat) String() string {
	switch f {
	case SampleFormatU8:
		return "u8"
	case SampleFormatS16:
		return "s16"
	case SampleFormatS32:
		return "s32"
	case SampleFormatFlt:
		return "flt"
	case SampleFormatDbl:
		return "dbl"
	case SampleFormatU8P:
		return "u8p"
	case SampleFormatS16P:
		return "s16p"
	case SampleFormatS32P:
		return "s32p"
	case SampleFormatFltP:
		return "fltp"
	case SampleFormatDblP:
		return "dblp"
	case SampleFormatS64:
		return "s64"
	case SampleFormatS64P:
		return "s64p"
	default:
		return "none"
	}
}
