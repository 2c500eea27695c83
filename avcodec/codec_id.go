//go:build !ios && !android && (amd64 || arm64)

package avcodec

// CodecID represents FFmpeg codec identifiers.
type CodecID int32

const (
	CodecIDNone CodecID = 0

	// Video codecs
	CodecIDMPEG1VIDEO CodecID = 1
	CodecIDMPEG2VIDEO CodecID = 2
	CodecIDH263       CodecID = 4
	CodecIDMJPEG      CodecID = 7
	CodecIDMPEG4      CodecID = 12
	CodecIDRAWVIDEO   CodecID = 13
	CodecIDH264       CodecID = 27
	CodecIDVP3        CodecID = 29
	CodecIDTHEORA     CodecID = 30
	CodecIDPNG        CodecID = 61
	CodecIDVP8        CodecID = 139
	CodecIDVP9        CodecID = 167
	CodecIDHEVC       CodecID = 173 // H.265
	CodecIDAV1        CodecID = 226

	// Audio codecs start at 0x10000
	CodecIDPCMS16LE CodecID = 65536
	CodecIDPCMS16BE CodecID = 65537
	CodecIDPCMU8    CodecID = 65541

	CodecIDMP2    CodecID = 86016
	CodecIDMP3    CodecID = 86017
	CodecIDAAC    CodecID = 86018
	CodecIDAC3    CodecID = 86019
	CodecIDVORBIS CodecID = 86021
	CodecIDFLAC   CodecID = 86028
	CodecIDALAC   CodecID = 86032
	CodecIDOPUS   CodecID = 86076

	// Subtitle codecs start at 0x17000
	CodecIDDVDSubtitle CodecID = 94208

	// Data/attachment codecs start at 0x18000
	CodecIDTTF CodecID = 98304
)

// CodecIDFromNative maps a raw codec_id; negative values become CodecIDNone.
func CodecIDFromNative(v int32) CodecID {
	if v < 0 {
		return CodecIDNone
	}
	return CodecID(v)
}

// String returns the string representation of the codec ID.
func (id CodecID) String() string {
	switch id {
	case CodecIDNone:
		return "none"
	case CodecIDMPEG2VIDEO:
		return "mpeg2video"
	case CodecIDH264:
		return "h264"
	case CodecIDHEVC:
		return "hevc"
	case CodecIDAV1:
		return "av1"
	case CodecIDVP8:
		return "vp8"
	case CodecIDVP9:
		return "vp9"
	case CodecIDMPEG4:
		return "mpeg4"
	case CodecIDMJPEG:
		return "mjpeg"
	case CodecIDRAWVIDEO:
		return "rawvideo"
	case CodecIDPNG:
		return "png"
	case CodecIDPCMS16LE:
		return "pcm_s16le"
	case CodecIDAAC:
		return "aac"
	case CodecIDMP3:
		return "mp3"
	case CodecIDOPUS:
		return "opus"
	case CodecIDFLAC:
		return "flac"
	default:
		return "unknown"
	}
}

// IsVideo returns true if the codec ID is for a video codec.
func (id CodecID) IsVideo() bool {
	return id > 0 && id < 65536
}

// IsAudio returns true if the codec ID is for an audio codec.
func (id CodecID) IsAudio() bool {
	return id >= 65536 && id < 94208
}
