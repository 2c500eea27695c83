//go:build !ios && !android && (amd64 || arm64)

package ffbind

import (
	"sync"
	"testing"
	"time"
	"unsafe"

	"github.com/obinnaokechukwu/ffbind/avcodec"
	"github.com/obinnaokechukwu/ffbind/avfilter"
	"github.com/obinnaokechukwu/ffbind/avutil"
	"github.com/stretchr/testify/require"
)

const (
	fakeParametersSize = 128
	fakeFrameSize      = 512
)

// fakeNative is an in-memory stand-in for FFmpeg. Native blocks are Go
// allocations kept alive in blocks until "freed"; every free is counted.
type fakeNative struct {
	m      sync.Mutex
	blocks map[unsafe.Pointer][]uint64
	sizes  map[unsafe.Pointer]int
	sinks  map[unsafe.Pointer]*fakeSink

	failAlloc bool

	parametersFrees int
	frees           []unsafe.Pointer
	frameFrees      int
	frameUnrefs     int
}

// fakeSink simulates a buffersink: queued units, buffered samples and an
// end-of-stream flag.
type fakeSink struct {
	mediaType  avutil.MediaType
	width      int32
	height     int32
	format     int32
	timeBase   avutil.Rational
	frameRate  avutil.Rational
	sampleRate int32
	layout     avutil.ChannelLayout

	frames    []int64 // pts of queued video frames
	samples   int     // buffered audio samples
	nextPTS   int64
	eof       bool
	fatal     int32
	frameSize uint32
}

func useFakeNative(t *testing.T) *fakeNative {
	t.Helper()
	f := &fakeNative{
		blocks: make(map[unsafe.Pointer][]uint64),
		sizes:  make(map[unsafe.Pointer]int),
		sinks:  make(map[unsafe.Pointer]*fakeSink),
	}
	prev := lib
	lib = f
	t.Cleanup(func() { lib = prev })
	return f
}

func (f *fakeNative) alloc(size int) unsafe.Pointer {
	f.m.Lock()
	defer f.m.Unlock()
	if f.failAlloc {
		return nil
	}
	b := make([]uint64, (size+7)/8)
	ptr := unsafe.Pointer(&b[0])
	f.blocks[ptr] = b
	f.sizes[ptr] = size
	return ptr
}

func (f *fakeNative) release(ptr unsafe.Pointer) bool {
	f.m.Lock()
	defer f.m.Unlock()
	if _, ok := f.blocks[ptr]; !ok {
		return false
	}
	delete(f.blocks, ptr)
	delete(f.sizes, ptr)
	return true
}

func (f *fakeNative) live(ptr unsafe.Pointer) bool {
	f.m.Lock()
	defer f.m.Unlock()
	_, ok := f.blocks[ptr]
	return ok
}

func (f *fakeNative) sizeOf(ptr unsafe.Pointer) int {
	f.m.Lock()
	defer f.m.Unlock()
	return f.sizes[ptr]
}

func (f *fakeNative) mallocz(size uintptr) unsafe.Pointer { return f.alloc(int(size)) }

func (f *fakeNative) free(ptr unsafe.Pointer) {
	if ptr == nil {
		return
	}
	if f.release(ptr) {
		f.m.Lock()
		f.frees = append(f.frees, ptr)
		f.m.Unlock()
	}
}

func (f *fakeNative) parametersAlloc() avcodec.Parameters {
	ptr := f.alloc(fakeParametersSize)
	if ptr == nil {
		return nil
	}
	avcodec.SetParCodecType(ptr, int32(avutil.MediaTypeUnknown))
	avcodec.SetParFormat(ptr, -1)
	return ptr
}

func (f *fakeNative) parametersFree(par *avcodec.Parameters) {
	if par == nil || *par == nil {
		return
	}
	extradata, _ := avcodec.GetParExtradata(*par)
	f.free(extradata)
	if f.release(*par) {
		f.m.Lock()
		f.parametersFrees++
		f.m.Unlock()
	}
	*par = nil
}

func (f *fakeNative) parametersCopy(dst, src avcodec.Parameters) error {
	avcodec.SetParCodecType(dst, avcodec.GetParCodecType(src))
	avcodec.SetParCodecID(dst, avcodec.GetParCodecID(src))
	avcodec.SetParCodecTag(dst, avcodec.GetParCodecTag(src))
	avcodec.SetParFormat(dst, avcodec.GetParFormat(src))
	avcodec.SetParBitRate(dst, avcodec.GetParBitRate(src))
	avcodec.SetParWidth(dst, avcodec.GetParWidth(src))
	avcodec.SetParHeight(dst, avcodec.GetParHeight(src))
	avcodec.SetParProfile(dst, avcodec.GetParProfile(src))
	avcodec.SetParLevel(dst, avcodec.GetParLevel(src))

	old, _ := avcodec.GetParExtradata(dst)
	f.free(old)
	avcodec.SetParExtradata(dst, nil, 0)

	data, size := avcodec.GetParExtradata(src)
	if data == nil {
		return nil
	}
	buf := f.alloc(int(size) + avcodec.InputBufferPaddingSize)
	if buf == nil {
		return avutil.NewError(avutil.AVERROR_ENOMEM, "avcodec_parameters_copy")
	}
	copy(unsafe.Slice((*byte)(buf), size), unsafe.Slice((*byte)(data), size))
	avcodec.SetParExtradata(dst, buf, size)
	return nil
}

// Fake codec contexts share the parameter block layout.
func (f *fakeNative) newContext() avcodec.Context {
	return f.parametersAlloc()
}

func (f *fakeNative) parametersFromContext(par avcodec.Parameters, ctx avcodec.Context) error {
	return f.parametersCopy(par, ctx)
}

func (f *fakeNative) parametersToContext(ctx avcodec.Context, par avcodec.Parameters) error {
	return f.parametersCopy(ctx, par)
}

func (f *fakeNative) frameAlloc() unsafe.Pointer {
	ptr := f.alloc(fakeFrameSize)
	if ptr == nil {
		return nil
	}
	f.resetFrame(ptr)
	return ptr
}

func (f *fakeNative) resetFrame(ptr unsafe.Pointer) {
	avutil.SetFrameWidth(ptr, 0)
	avutil.SetFrameHeight(ptr, 0)
	avutil.SetFrameFormat(ptr, -1)
	avutil.SetFrameNbSamples(ptr, 0)
	avutil.SetFramePTS(ptr, avutil.NoPTSValue)
}

func (f *fakeNative) frameFree(frame *unsafe.Pointer) {
	if frame == nil || *frame == nil {
		return
	}
	if f.release(*frame) {
		f.m.Lock()
		f.frameFrees++
		f.m.Unlock()
	}
	*frame = nil
}

func (f *fakeNative) frameUnref(frame unsafe.Pointer) {
	f.m.Lock()
	f.frameUnrefs++
	f.m.Unlock()
	f.resetFrame(frame)
}

func (f *fakeNative) newSink(s *fakeSink) *Sink {
	ctx := f.alloc(8)
	f.m.Lock()
	f.sinks[ctx] = s
	f.m.Unlock()
	return WrapSink(ctx)
}

func (f *fakeNative) sink(ctx avfilter.Context) *fakeSink {
	f.m.Lock()
	defer f.m.Unlock()
	return f.sinks[ctx]
}

func (f *fakeNative) sinkGetFrame(ctx avfilter.Context, frame unsafe.Pointer, flags int32) int32 {
	s := f.sink(ctx)
	switch {
	case s.fatal != 0:
		return s.fatal
	case len(s.frames) > 0:
		pts := s.frames[0]
		if flags&avfilter.AV_BUFFERSINK_FLAG_PEEK == 0 {
			s.frames = s.frames[1:]
		}
		avutil.SetFrameWidth(frame, s.width)
		avutil.SetFrameHeight(frame, s.height)
		avutil.SetFrameFormat(frame, s.format)
		avutil.SetFramePTS(frame, pts)
		return 0
	case s.eof:
		return avutil.AVERROR_EOF
	}
	return avutil.AVERROR_EAGAIN
}

func (f *fakeNative) sinkGetSamples(ctx avfilter.Context, frame unsafe.Pointer, n int32) int32 {
	s := f.sink(ctx)
	var got int
	switch {
	case s.fatal != 0:
		return s.fatal
	case s.samples >= int(n):
		got = int(n)
	case s.eof && s.samples > 0:
		got = s.samples
	case s.eof:
		return avutil.AVERROR_EOF
	default:
		return avutil.AVERROR_EAGAIN
	}
	s.samples -= got
	avutil.SetFrameNbSamples(frame, int32(got))
	avutil.SetFrameFormat(frame, s.format)
	avutil.SetFramePTS(frame, s.nextPTS)
	s.nextPTS += int64(got)
	return 0
}

func (f *fakeNative) sinkSetFrameSize(ctx avfilter.Context, n uint32) { f.sink(ctx).frameSize = n }
func (f *fakeNative) sinkType(ctx avfilter.Context) int32          { return int32(f.sink(ctx).mediaType) }
func (f *fakeNative) sinkWidth(ctx avfilter.Context) int32         { return f.sink(ctx).width }
func (f *fakeNative) sinkHeight(ctx avfilter.Context) int32        { return f.sink(ctx).height }
func (f *fakeNative) sinkFormat(ctx avfilter.Context) int32        { return f.sink(ctx).format }
func (f *fakeNative) sinkTimeBase(ctx avfilter.Context) avutil.Rational {
	return f.sink(ctx).timeBase
}
func (f *fakeNative) sinkFrameRate(ctx avfilter.Context) avutil.Rational {
	return f.sink(ctx).frameRate
}
func (f *fakeNative) sinkSampleRate(ctx avfilter.Context) int32 { return f.sink(ctx).sampleRate }
func (f *fakeNative) sinkChannels(ctx avfilter.Context) int32   { return f.sink(ctx).layout.Channels }
func (f *fakeNative) sinkChannelLayout(ctx avfilter.Context) (avutil.ChannelLayout, error) {
	return f.sink(ctx).layout, nil
}

// statValue returns the current value of a delta stat.
func statValue(t *testing.T, name string) uint64 {
	t.Helper()
	for _, s := range DeltaStats() {
		if s.Metadata.Name == name {
			v, ok := s.Valuer.Value(time.Second).(uint64)
			require.True(t, ok)
			return v
		}
	}
	require.Failf(t, "missing delta stat", "%s", name)
	return 0
}
