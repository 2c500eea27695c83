//go:build !ios && !android && (amd64 || arm64)

// Package ffbind wraps two kinds of FFmpeg resources in Go handles with a
// clear ownership model: codec parameter blocks (Parameters) and the outputs
// of filter graphs (Sink). FFmpeg is loaded at runtime with purego; no cgo
// is involved.
//
// A Parameters handle either owns its AVCodecParameters and frees it exactly
// once, or borrows it from an Owner and only drops a reference. A Sink is
// always borrowed: the filter graph that created the buffersink context
// stays responsible for it.
//
// The low-level packages (avutil, avcodec, avfilter) are available for code
// that needs to reach past these handles.
package ffbind

import (
	"github.com/obinnaokechukwu/ffbind/avcodec"
	"github.com/obinnaokechukwu/ffbind/avutil"
	"github.com/obinnaokechukwu/ffbind/internal/bindings"
)

// Init loads the FFmpeg libraries. Handles load them lazily, but calling
// Init first surfaces a missing installation as an error. Safe to call
// multiple times.
func Init() error {
	return bindings.Load()
}

// IsLoaded returns true if FFmpeg libraries have been successfully loaded.
func IsLoaded() bool {
	return bindings.IsLoaded()
}

// Version returns the loaded library versions, packed as major<<16|minor<<8|micro.
func Version() (avutil, avcodec, avfilter uint32) {
	return bindings.AVUtilVersion(), bindings.AVCodecVersion(), bindings.AVFilterVersion()
}

// LibDirEnv is the environment variable naming a directory searched for the
// FFmpeg libraries before any other location.
const LibDirEnv = bindings.LibDirEnv

// Re-export common types for convenience
type (
	// Rational represents a rational number (fraction).
	Rational = avutil.Rational

	// PixelFormat represents video pixel formats.
	PixelFormat = avutil.PixelFormat

	// SampleFormat represents audio sample formats.
	SampleFormat = avutil.SampleFormat

	// MediaType represents stream types (video, audio, etc.).
	MediaType = avutil.MediaType

	// ChannelLayout describes the channels of an audio stream.
	ChannelLayout = avutil.ChannelLayout

	// CodecID represents codec identifiers.
	CodecID = avcodec.CodecID
)

// Re-export common constants
const (
	// InputBufferPaddingSize is the number of zeroed bytes kept after extradata.
	InputBufferPaddingSize = avcodec.InputBufferPaddingSize

	// Pixel formats
	PixelFormatNone    = avutil.PixelFormatNone
	PixelFormatYUV420P = avutil.PixelFormatYUV420P
	PixelFormatRGB24   = avutil.PixelFormatRGB24
	PixelFormatRGBA    = avutil.PixelFormatRGBA
	PixelFormatNV12    = avutil.PixelFormatNV12

	// Media types
	MediaTypeUnknown    = avutil.MediaTypeUnknown
	MediaTypeVideo      = avutil.MediaTypeVideo
	MediaTypeAudio      = avutil.MediaTypeAudio
	MediaTypeData       = avutil.MediaTypeData
	MediaTypeSubtitle   = avutil.MediaTypeSubtitle
	MediaTypeAttachment = avutil.MediaTypeAttachment

	// Common codec IDs
	CodecIDNone     = avcodec.CodecIDNone
	CodecIDH264     = avcodec.CodecIDH264
	CodecIDHEVC     = avcodec.CodecIDHEVC
	CodecIDAV1      = avcodec.CodecIDAV1
	CodecIDVP9      = avcodec.CodecIDVP9
	CodecIDRAWVIDEO = avcodec.CodecIDRAWVIDEO
	CodecIDAAC      = avcodec.CodecIDAAC
	CodecIDOPUS     = avcodec.CodecIDOPUS

	// Sample formats
	SampleFormatNone = avutil.SampleFormatNone
	SampleFormatS16  = avutil.SampleFormatS16
	SampleFormatFlt  = avutil.SampleFormatFlt
	SampleFormatS16P = avutil.SampleFormatS16P
	SampleFormatFltP = avutil.SampleFormatFltP
)

// NewRational creates a new rational number.
func NewRational(num, den int32) Rational {
	return avutil.NewRational(num, den)
}
