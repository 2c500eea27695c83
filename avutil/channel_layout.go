//go:build !ios && !android && (amd64 || arm64)

package avutil

import (
	"fmt"
	"unsafe"
)

// ChannelOrder mirrors enum AVChannelOrder.
type ChannelOrder int32

const (
	ChannelOrderUnspec    ChannelOrder = 0
	ChannelOrderNative    ChannelOrder = 1
	ChannelOrderCustom    ChannelOrder = 2
	ChannelOrderAmbisonic ChannelOrder = 3
)

// Common native channel masks (AV_CH_LAYOUT_*).
const (
	ChannelMaskMono    uint64 = 0x4
	ChannelMaskStereo  uint64 = 0x3
	ChannelMask5Point1 uint64 = 0x60F
	ChannelMask7Point1 uint64 = 0x63F
)

// SizeofChannelLayout is sizeof(AVChannelLayout) on 64-bit targets:
// order(4) nb_channels(4) u(8) opaque(8).
const SizeofChannelLayout = 24

// ChannelLayout is a Go copy of an AVChannelLayout. Mask is only meaningful
// for ChannelOrderNative.
type ChannelLayout struct {
	Order    ChannelOrder
	Channels int32
	Mask     uint64
}

// ReadChannelLayout copies the fields of the AVChannelLayout at ptr.
func ReadChannelLayout(ptr unsafe.Pointer) ChannelLayout {
	if ptr == nil {
		return ChannelLayout{}
	}
	l := ChannelLayout{
		Order:    ChannelOrder(*(*int32)(ptr)),
		Channels: *(*int32)(unsafe.Pointer(uintptr(ptr) + 4)),
	}
	if l.Order == ChannelOrderNative {
		l.Mask = *(*uint64)(unsafe.Pointer(uintptr(ptr) + 8))
	}
	return l
}

// ChannelLayoutUninit releases whatever an AVChannelLayout at ptr owns
// (the custom channel map) and resets it.
func ChannelLayoutUninit(ptr unsafe.Pointer) {
	if ptr == nil || avChannelLayoutUninit == nil {
		return
	}
	avChannelLayoutUninit(ptr)
}

// String returns FFmpeg's name for common layouts.
func (l ChannelLayout) String() string {
	if l.Order == ChannelOrderNative {
		switch l.Mask {
		case ChannelMaskMono:
			return "mono"
		case ChannelMaskStereo:
			return "stereo"
		case ChannelMask5Point1:
			return "5.1"
		case ChannelMask7Point1:
			return "7.1"
		}
	}
	if l.Channels == 0 {
		return "unknown"
	}
	return fmt.Sprintf("%d channels", l.Channels)
}
