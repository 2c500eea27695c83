//go:build !ios && !android && (amd64 || arm64)

package ffbind

import (
	"fmt"
	"math"
	"runtime"
	"sync/atomic"

	"github.com/obinnaokechukwu/ffbind/avfilter"
	"github.com/obinnaokechukwu/ffbind/avutil"
)

// PullStatus is the outcome of pulling from a Sink.
type PullStatus int

const (
	// PullOK means a unit was written into the frame slot.
	PullOK PullStatus = iota
	// PullAgain means no unit is available yet: feed the graph more input
	// and pull again.
	PullAgain
	// PullEOF means the sink will never produce another unit.
	PullEOF
	// PullFatal means the pull failed; the accompanying error carries the
	// FFmpeg status code.
	PullFatal
)

func (s PullStatus) String() string {
	switch s {
	case PullOK:
		return "ok"
	case PullAgain:
		return "again"
	case PullEOF:
		return "eof"
	default:
		return "fatal"
	}
}

// Sink is a borrowed handle over a buffersink or abuffersink filter
// context. It never frees the context; the graph that owns it must outlive
// the Sink.
//
// Pulls on the same sink must be serialized by the caller, and a Sink
// should stay on the goroutine driving its graph.
type Sink struct {
	ctx   avfilter.Context
	graph *FilterGraph
}

// WrapSink borrows a configured buffersink context.
func WrapSink(ctx avfilter.Context) *Sink {
	return &Sink{ctx: ctx}
}

// Raw returns the underlying AVFilterContext pointer.
func (s *Sink) Raw() avfilter.Context {
	return s.ctx
}

func (s *Sink) usable() error {
	if s.graph != nil && s.graph.closed {
		return ErrFilterGraphClosed
	}
	if s.ctx == nil {
		return ErrClosed
	}
	return nil
}

// Frame pulls the next unit into f (av_buffersink_get_frame). Whatever f
// held before is unreferenced first. Only PullFatal comes with an error.
func (s *Sink) Frame(f *Frame) (PullStatus, error) {
	if err := s.prepare(f); err != nil {
		return PullFatal, err
	}
	defer runtime.KeepAlive(f)
	return s.pulled(s.status(lib.sinkGetFrame(s.ctx, f.ptr, 0), "av_buffersink_get_frame"))
}

// Peek writes a new reference to the next unit into f without removing it
// from the sink (AV_BUFFERSINK_FLAG_PEEK): the following Frame returns the
// same unit.
func (s *Sink) Peek(f *Frame) (PullStatus, error) {
	if err := s.prepare(f); err != nil {
		return PullFatal, err
	}
	defer runtime.KeepAlive(f)
	return s.status(lib.sinkGetFrame(s.ctx, f.ptr, avfilter.AV_BUFFERSINK_FLAG_PEEK), "av_buffersink_get_frame_flags")
}

// Samples pulls exactly n audio samples per frame into f
// (av_buffersink_get_samples). At end of stream the last frame may hold
// fewer. A sink is drained either with Frame or with Samples, never both.
func (s *Sink) Samples(f *Frame, n int) (PullStatus, error) {
	if err := s.prepare(f); err != nil {
		return PullFatal, err
	}
	if n <= 0 || n > math.MaxInt32 {
		return PullFatal, fmt.Errorf("ffbind: invalid sample count %d: %w", n,
			&avutil.Error{Code: avutil.AVERROR_EINVAL, Message: "Invalid argument", Op: "av_buffersink_get_samples"})
	}
	defer runtime.KeepAlive(f)
	return s.pulled(s.status(lib.sinkGetSamples(s.ctx, f.ptr, int32(n)), "av_buffersink_get_samples"))
}

func (s *Sink) prepare(f *Frame) error {
	if err := s.usable(); err != nil {
		return err
	}
	if f == nil || f.ptr == nil {
		return fmt.Errorf("ffbind: pull into freed frame: %w", ErrClosed)
	}
	lib.frameUnref(f.ptr)
	return nil
}

func (s *Sink) status(ret int32, op string) (PullStatus, error) {
	switch {
	case ret >= 0:
		return PullOK, nil
	case ret == avutil.AVERROR_EAGAIN:
		return PullAgain, nil
	case ret == avutil.AVERROR_EOF:
		return PullEOF, nil
	}
	err := avutil.NewError(ret, op)
	currentLogger().Errorf("ffbind: pulling from sink %p failed: %v", s.ctx, err)
	return PullFatal, err
}

func (s *Sink) pulled(st PullStatus, err error) (PullStatus, error) {
	if st == PullOK {
		atomic.AddUint64(&stats.pulledUnits, 1)
	}
	return st, err
}

// Drain pulls until the sink runs dry, calling fn for every unit. It
// returns PullAgain or PullEOF once the sink has nothing more to give, or
// the first error from the sink or from fn.
func (s *Sink) Drain(f *Frame, fn func(*Frame) error) (PullStatus, error) {
	return s.drain(f, fn, s.Frame)
}

// DrainSamples is Drain with fixed n-sample frames.
func (s *Sink) DrainSamples(f *Frame, n int, fn func(*Frame) error) (PullStatus, error) {
	return s.drain(f, fn, func(f *Frame) (PullStatus, error) { return s.Samples(f, n) })
}

func (s *Sink) drain(f *Frame, fn func(*Frame) error, pull func(*Frame) (PullStatus, error)) (PullStatus, error) {
	for {
		st, err := pull(f)
		if st != PullOK {
			return st, err
		}
		if err := fn(f); err != nil {
			return st, err
		}
	}
}

// SetFrameSize makes an audio sink emit frames of exactly n samples
// (av_buffersink_set_frame_size); the last one may be shorter. It applies to
// both Frame and Samples pulls.
func (s *Sink) SetFrameSize(n uint32) {
	if s.usable() != nil {
		return
	}
	lib.sinkSetFrameSize(s.ctx, n)
}

// The getters below describe the negotiated output and are only meaningful
// once the graph is configured. They return zero values on a closed graph.

// MediaType returns the kind of units the sink produces.
func (s *Sink) MediaType() MediaType {
	if s.usable() != nil {
		return MediaTypeUnknown
	}
	return avutil.MediaTypeFromNative(lib.sinkType(s.ctx))
}

// Width returns the output frame width.
func (s *Sink) Width() uint32 {
	if s.usable() != nil {
		return 0
	}
	return uint32(lib.sinkWidth(s.ctx))
}

// Height returns the output frame height.
func (s *Sink) Height() uint32 {
	if s.usable() != nil {
		return 0
	}
	return uint32(lib.sinkHeight(s.ctx))
}

// Format returns the raw output format: pixel format for video, sample
// format for audio.
func (s *Sink) Format() int32 {
	if s.usable() != nil {
		return -1
	}
	return lib.sinkFormat(s.ctx)
}

// PixelFormat returns Format as a pixel format.
func (s *Sink) PixelFormat() PixelFormat {
	return avutil.PixelFormatFromNative(s.Format())
}

// SampleFormat returns Format as a sample format.
func (s *Sink) SampleFormat() SampleFormat {
	return avutil.SampleFormatFromNative(s.Format())
}

// TimeBase returns the time base of the output timestamps.
func (s *Sink) TimeBase() Rational {
	if s.usable() != nil {
		return Rational{}
	}
	return lib.sinkTimeBase(s.ctx)
}

// FrameRate returns the output frame rate, 0/1 when unknown.
func (s *Sink) FrameRate() Rational {
	if s.usable() != nil {
		return Rational{}
	}
	return lib.sinkFrameRate(s.ctx)
}

// SampleRate returns the output sample rate.
func (s *Sink) SampleRate() int {
	if s.usable() != nil {
		return 0
	}
	return int(lib.sinkSampleRate(s.ctx))
}

// Channels returns the output channel count.
func (s *Sink) Channels() int {
	if s.usable() != nil {
		return 0
	}
	return int(lib.sinkChannels(s.ctx))
}

// ChannelLayout returns the output channel layout.
func (s *Sink) ChannelLayout() (ChannelLayout, error) {
	if err := s.usable(); err != nil {
		return ChannelLayout{}, err
	}
	return lib.sinkChannelLayout(s.ctx)
}
