//go:build !ios && !android && (amd64 || arm64)

package avcodec

import "unsafe"

// parametersLayout holds AVCodecParameters field offsets. The leading fields
// are stable; libavcodec 61 moved coded_side_data in front of format, which
// shifts everything after it.
type parametersLayout struct {
	format  uintptr
	bitRate uintptr
	profile uintptr
	level   uintptr
	width   uintptr
	height  uintptr
}

const (
	offsetParCodecType     = 0
	offsetParCodecID       = 4
	offsetParCodecTag      = 8
	offsetParExtradata     = 16
	offsetParExtradataSize = 24
)

var (
	layoutLegacy = parametersLayout{format: 28, bitRate: 32, profile: 48, level: 52, width: 56, height: 60}
	layoutV61    = parametersLayout{format: 44, bitRate: 48, profile: 64, level: 68, width: 72, height: 76}

	parLayout = layoutV61
)

func parametersLayoutFor(major uint32) parametersLayout {
	if major != 0 && major < 61 {
		return layoutLegacy
	}
	return layoutV61
}

func parInt32(par Parameters, off uintptr) *int32 {
	return (*int32)(unsafe.Pointer(uintptr(par) + off))
}

// GetParCodecType returns the raw codec_type (enum AVMediaType).
func GetParCodecType(par Parameters) int32 {
	if par == nil {
		return -1
	}
	return *parInt32(par, offsetParCodecType)
}

// SetParCodecType sets codec_type.
func SetParCodecType(par Parameters, t int32) {
	if par == nil {
		return
	}
	*parInt32(par, offsetParCodecType) = t
}

// GetParCodecID returns codec_id.
func GetParCodecID(par Parameters) int32 {
	if par == nil {
		return 0
	}
	return *parInt32(par, offsetParCodecID)
}

// SetParCodecID sets codec_id.
func SetParCodecID(par Parameters, id int32) {
	if par == nil {
		return
	}
	*parInt32(par, offsetParCodecID) = id
}

// GetParCodecTag returns codec_tag.
func GetParCodecTag(par Parameters) uint32 {
	if par == nil {
		return 0
	}
	return *(*uint32)(unsafe.Pointer(uintptr(par) + offsetParCodecTag))
}

// SetParCodecTag sets codec_tag. Zero lets a muxer choose a tag.
func SetParCodecTag(par Parameters, tag uint32) {
	if par == nil {
		return
	}
	*(*uint32)(unsafe.Pointer(uintptr(par) + offsetParCodecTag)) = tag
}

// GetParExtradata returns the extradata pointer and its logical size, which
// does not include padding.
func GetParExtradata(par Parameters) (unsafe.Pointer, int32) {
	if par == nil {
		return nil, 0
	}
	ptr := *(*unsafe.Pointer)(unsafe.Pointer(uintptr(par) + offsetParExtradata))
	return ptr, *parInt32(par, offsetParExtradataSize)
}

// SetParExtradata stores ptr and size on par. par takes ownership of ptr,
// which must come from av_malloc/av_mallocz; the previous pointer is not
// freed here.
func SetParExtradata(par Parameters, ptr unsafe.Pointer, size int32) {
	if par == nil {
		return
	}
	*(*unsafe.Pointer)(unsafe.Pointer(uintptr(par) + offsetParExtradata)) = ptr
	*parInt32(par, offsetParExtradataSize) = size
}

// GetParFormat returns format: a pixel format for video, a sample format
// for audio.
func GetParFormat(par Parameters) int32 {
	if par == nil {
		return -1
	}
	return *parInt32(par, parLayout.format)
}

// SetParFormat sets format.
func SetParFormat(par Parameters, format int32) {
	if par == nil {
		return
	}
	*parInt32(par, parLayout.format) = format
}

// GetParBitRate returns bit_rate.
func GetParBitRate(par Parameters) int64 {
	if par == nil {
		return 0
	}
	return *(*int64)(unsafe.Pointer(uintptr(par) + parLayout.bitRate))
}

// SetParBitRate sets bit_rate.
func SetParBitRate(par Parameters, bitRate int64) {
	if par == nil {
		return
	}
	*(*int64)(unsafe.Pointer(uintptr(par) + parLayout.bitRate)) = bitRate
}

// GetParProfile returns profile.
func GetParProfile(par Parameters) int32 {
	if par == nil {
		return 0
	}
	return *parInt32(par, parLayout.profile)
}

// SetParProfile sets profile.
func SetParProfile(par Parameters, profile int32) {
	if par == nil {
		return
	}
	*parInt32(par, parLayout.profile) = profile
}

// GetParLevel returns level.
func GetParLevel(par Parameters) int32 {
	if par == nil {
		return 0
	}
	return *parInt32(par, parLayout.level)
}

// SetParLevel sets level.
func SetParLevel(par Parameters, level int32) {
	if par == nil {
		return
	}
	*parInt32(par, parLayout.level) = level
}

// GetParWidth returns width.
func GetParWidth(par Parameters) int32 {
	if par == nil {
		return 0
	}
	return *parInt32(par, parLayout.width)
}

// SetParWidth sets width.
func SetParWidth(par Parameters, width int32) {
	if par == nil {
		return
	}
	*parInt32(par, parLayout.width) = width
}

// GetParHeight returns height.
func GetParHeight(par Parameters) int32 {
	if par == nil {
		return 0
	}
	return *parInt32(par, parLayout.height)
}

// SetParHeight sets height.
func SetParHeight(par Parameters, height int32) {
	if par == nil {
		return
	}
	*parInt32(par, parLayout.height) = height
}
