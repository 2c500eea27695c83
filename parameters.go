//go:build !ios && !android && (amd64 || arm64)

package ffbind

import (
	"bytes"
	"fmt"
	"math"
	"runtime"
	"sync/atomic"
	"unsafe"

	"github.com/obinnaokechukwu/ffbind/avcodec"
	"github.com/obinnaokechukwu/ffbind/avutil"
	"github.com/obinnaokechukwu/ffbind/internal/allocs"
)

// Parameters is a handle over an AVCodecParameters block: the codec
// configuration of one stream.
//
// A handle created by NewParameters, NewParametersFromContext or Clone owns
// its block and frees it exactly once, on Free or, failing that, when it is
// garbage collected. A handle created by WrapParameters with a non-nil Owner
// borrows the block: Free only drops its reference on the owner.
//
// A Parameters may be handed to another goroutine, but callers must
// serialize mutations of the same handle.
type Parameters struct {
	ptr   avcodec.Parameters
	owner *Owner
}

// NewParameters allocates an empty, exclusively owned parameter block.
// Allocation failure panics.
func NewParameters() *Parameters {
	ptr := lib.parametersAlloc()
	if ptr == nil {
		if err := Init(); err != nil {
			panic(fmt.Errorf("ffbind: avcodec_parameters_alloc: %w", err))
		}
		panic(fmt.Errorf("ffbind: avcodec_parameters_alloc: %w", ErrOutOfMemory))
	}
	atomic.AddUint64(&stats.allocatedParameters, 1)
	return newOwnedParameters(ptr)
}

func newOwnedParameters(ptr avcodec.Parameters) *Parameters {
	p := &Parameters{ptr: ptr}
	runtime.SetFinalizer(p, (*Parameters).Free)
	return p
}

// WrapParameters builds a handle over an existing block.
//
// With owner == nil the handle takes exclusive ownership of ptr, which must
// come from avcodec_parameters_alloc and must not be freed by anyone else.
// With a non-nil owner the handle borrows ptr and retains owner until Free;
// ptr must stay valid until owner's release chain runs. Wrapping with an
// owner that was already fully released panics with ErrOwnerReleased.
func WrapParameters(ptr avcodec.Parameters, owner *Owner) *Parameters {
	if owner == nil {
		return newOwnedParameters(ptr)
	}
	if err := owner.Retain(); err != nil {
		panic(err)
	}
	return &Parameters{ptr: ptr, owner: owner}
}

// NewParametersFromContext builds an exclusively owned block filled from a
// configured codec context (avcodec_parameters_from_context). The block is
// independent of ctx afterwards.
func NewParametersFromContext(ctx avcodec.Context) *Parameters {
	p := NewParameters()
	err := lib.parametersFromContext(p.ptr, ctx)
	runtime.KeepAlive(p)
	if err != nil {
		p.Free()
		panic(fmt.Errorf("ffbind: extracting parameters from context: %w", err))
	}
	return p
}

// Owned reports whether the handle frees the block itself.
func (p *Parameters) Owned() bool {
	return p.owner == nil
}

// Owner returns the token the block is borrowed from, nil when owned.
func (p *Parameters) Owner() *Owner {
	return p.owner
}

// Raw returns the underlying AVCodecParameters pointer, nil after Free.
func (p *Parameters) Raw() avcodec.Parameters {
	return p.ptr
}

// Free releases the handle. An owned block is freed with
// avcodec_parameters_free, which also frees its extradata; a borrowed
// block only has its owner reference dropped. Calling Free more than once
// is a no-op.
func (p *Parameters) Free() {
	if p == nil || p.ptr == nil {
		return
	}
	runtime.SetFinalizer(p, nil)

	if p.owner != nil {
		if err := p.owner.Release(); err != nil {
			currentLogger().Errorf("ffbind: releasing owner of parameters %p failed: %v", p.ptr, err)
		}
		p.ptr, p.owner = nil, nil
		return
	}

	currentLogger().Debugf("ffbind: freeing parameters %p", p.ptr)
	lib.parametersFree(&p.ptr)
	p.ptr = nil
	atomic.AddUint64(&stats.freedParameters, 1)
}

func (p *Parameters) live() avcodec.Parameters {
	if p.ptr == nil {
		panic(ErrClosed)
	}
	return p.ptr
}

// MediaType returns the kind of stream. Values FFmpeg does not define map
// to MediaTypeUnknown.
func (p *Parameters) MediaType() MediaType {
	defer runtime.KeepAlive(p)
	return avutil.MediaTypeFromNative(avcodec.GetParCodecType(p.live()))
}

// SetMediaType sets the kind of stream.
func (p *Parameters) SetMediaType(t MediaType) {
	avcodec.SetParCodecType(p.live(), int32(t))
	runtime.KeepAlive(p)
}

// CodecID returns the codec identity; negative values map to CodecIDNone.
func (p *Parameters) CodecID() CodecID {
	defer runtime.KeepAlive(p)
	return avcodec.CodecIDFromNative(avcodec.GetParCodecID(p.live()))
}

// SetCodecID sets the codec identity.
func (p *Parameters) SetCodecID(id CodecID) {
	avcodec.SetParCodecID(p.live(), int32(id))
	runtime.KeepAlive(p)
}

// Width returns the frame width in pixels.
func (p *Parameters) Width() uint32 {
	defer runtime.KeepAlive(p)
	return uint32(avcodec.GetParWidth(p.live()))
}

// SetWidth sets the frame width in pixels.
func (p *Parameters) SetWidth(w uint32) {
	avcodec.SetParWidth(p.live(), int32(w))
	runtime.KeepAlive(p)
}

// Height returns the frame height in pixels.
func (p *Parameters) Height() uint32 {
	defer runtime.KeepAlive(p)
	return uint32(avcodec.GetParHeight(p.live()))
}

// SetHeight sets the frame height in pixels.
func (p *Parameters) SetHeight(h uint32) {
	avcodec.SetParHeight(p.live(), int32(h))
	runtime.KeepAlive(p)
}

// Format returns the raw format field: a pixel format for video streams, a
// sample format for audio streams.
func (p *Parameters) Format() int32 {
	defer runtime.KeepAlive(p)
	return avcodec.GetParFormat(p.live())
}

// PixelFormat returns Format as a pixel format.
func (p *Parameters) PixelFormat() PixelFormat {
	return avutil.PixelFormatFromNative(p.Format())
}

// SetPixelFormat sets Format to a pixel format.
func (p *Parameters) SetPixelFormat(f PixelFormat) {
	avcodec.SetParFormat(p.live(), int32(f))
	runtime.KeepAlive(p)
}

// SampleFormat returns Format as a sample format.
func (p *Parameters) SampleFormat() SampleFormat {
	return avutil.SampleFormatFromNative(p.Format())
}

// SetSampleFormat sets Format to a sample format.
func (p *Parameters) SetSampleFormat(f SampleFormat) {
	avcodec.SetParFormat(p.live(), int32(f))
	runtime.KeepAlive(p)
}

// CodecTag returns the container-specific codec tag (fourcc).
func (p *Parameters) CodecTag() uint32 {
	defer runtime.KeepAlive(p)
	return avcodec.GetParCodecTag(p.live())
}

// SetCodecTag sets the codec tag.
func (p *Parameters) SetCodecTag(tag uint32) {
	avcodec.SetParCodecTag(p.live(), tag)
	runtime.KeepAlive(p)
}

// BitRate returns the average bit rate in bits per second.
func (p *Parameters) BitRate() int64 {
	defer runtime.KeepAlive(p)
	return avcodec.GetParBitRate(p.live())
}

// SetBitRate sets the average bit rate.
func (p *Parameters) SetBitRate(b int64) {
	avcodec.SetParBitRate(p.live(), b)
	runtime.KeepAlive(p)
}

// Profile returns the codec profile (FF_PROFILE_*, -99 when unknown).
func (p *Parameters) Profile() int32 {
	defer runtime.KeepAlive(p)
	return avcodec.GetParProfile(p.live())
}

// SetProfile sets the codec profile.
func (p *Parameters) SetProfile(profile int32) {
	avcodec.SetParProfile(p.live(), profile)
	runtime.KeepAlive(p)
}

// Level returns the codec level (-99 when unknown).
func (p *Parameters) Level() int32 {
	defer runtime.KeepAlive(p)
	return avcodec.GetParLevel(p.live())
}

// SetLevel sets the codec level.
func (p *Parameters) SetLevel(level int32) {
	avcodec.SetParLevel(p.live(), level)
	runtime.KeepAlive(p)
}

// ExtraData returns a copy of the codec's out-of-band configuration bytes
// (SPS/PPS, AudioSpecificConfig...), or nil when the block has none.
func (p *Parameters) ExtraData() []byte {
	defer runtime.KeepAlive(p)
	ptr, size := avcodec.GetParExtradata(p.live())
	if ptr == nil || size <= 0 {
		return nil
	}
	return bytes.Clone(unsafe.Slice((*byte)(ptr), size))
}

// SetExtraData replaces the extradata with a copy of b.
//
// The copy lives in an av_mallocz buffer of len(b)+InputBufferPaddingSize
// bytes whose padding is zero. The block owns that buffer from then on and
// releases it in avcodec_parameters_free. Any previous extradata is freed
// first. An empty b clears the extradata. A b too large for a native int
// size panics.
func (p *Parameters) SetExtraData(b []byte) {
	ptr := p.live()
	defer runtime.KeepAlive(p)

	if len(b) == 0 {
		p.replaceExtraData(ptr, nil, 0)
		return
	}

	size, err := extraDataSize(len(b))
	if err != nil {
		panic(err)
	}
	buf := lib.mallocz(uintptr(size))
	if buf == nil {
		panic(fmt.Errorf("ffbind: allocating %d bytes of extradata: %w", size, ErrOutOfMemory))
	}
	allocs.Track(buf, size)
	copy(unsafe.Slice((*byte)(buf), len(b)), b)

	allocs.Transfer(buf, func(buf unsafe.Pointer, _ int) {
		p.replaceExtraData(ptr, buf, int32(len(b)))
	})
	atomic.AddUint64(&stats.transferredExtraData, 1)
}

// extraDataSize returns the padded allocation size for n bytes of extradata.
func extraDataSize(n int) (int, error) {
	if n > math.MaxInt32-InputBufferPaddingSize {
		return 0, fmt.Errorf("ffbind: %d bytes of extradata: %w", n,
			&avutil.Error{Code: avutil.AVERROR_EINVAL, Message: "Invalid argument", Op: "extradata"})
	}
	return n + InputBufferPaddingSize, nil
}

func (p *Parameters) replaceExtraData(ptr avcodec.Parameters, buf unsafe.Pointer, size int32) {
	if prev, prevSize := avcodec.GetParExtradata(ptr); prev != nil {
		currentLogger().Debugf("ffbind: replacing %d bytes of extradata on parameters %p", prevSize, ptr)
		lib.free(prev)
	}
	avcodec.SetParExtradata(ptr, buf, size)
}

// Clone returns an exclusively owned deep copy, whatever the ownership of p.
// The copy gets its own extradata buffer.
func (p *Parameters) Clone() *Parameters {
	c := NewParameters()
	if err := p.CopyTo(c); err != nil {
		c.Free()
		panic(fmt.Errorf("ffbind: cloning parameters: %w", err))
	}
	return c
}

// CopyTo overwrites dst with a deep copy of p (avcodec_parameters_copy).
// dst keeps its own ownership.
func (p *Parameters) CopyTo(dst *Parameters) error {
	if p.ptr == nil || dst.ptr == nil {
		return ErrClosed
	}
	defer runtime.KeepAlive(dst)
	defer runtime.KeepAlive(p)
	return lib.parametersCopy(dst.ptr, p.ptr)
}

// ApplyTo fills a codec context from p (avcodec_parameters_to_context),
// typically before opening a decoder.
func (p *Parameters) ApplyTo(ctx avcodec.Context) error {
	if p.ptr == nil {
		return ErrClosed
	}
	defer runtime.KeepAlive(p)
	return lib.parametersToContext(ctx, p.ptr)
}

// String returns a short description, e.g. "video h264 1920x1080".
func (p *Parameters) String() string {
	if p.ptr == nil {
		return "freed parameters"
	}
	switch t := p.MediaType(); t {
	case MediaTypeVideo:
		return fmt.Sprintf("%s %s %dx%d", t, p.CodecID(), p.Width(), p.Height())
	default:
		return fmt.Sprintf("%s %s", t, p.CodecID())
	}
}
