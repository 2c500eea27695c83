//go:build !ios && !android && (amd64 || arm64)

// Package avfilter provides bindings to FFmpeg's libavfilter: graph
// construction, the buffer source and the buffer sink.
package avfilter

import (
	"errors"
	"fmt"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
	"github.com/obinnaokechukwu/ffbind/avutil"
	"github.com/obinnaokechukwu/ffbind/internal/bindings"
)

// Opaque types
type (
	// Graph represents an AVFilterGraph
	Graph = unsafe.Pointer
	// Context represents an AVFilterContext
	Context = unsafe.Pointer
	// Filter represents an AVFilter
	Filter = unsafe.Pointer
	// InOut represents an AVFilterInOut
	InOut = unsafe.Pointer
)

var (
	initOnce sync.Once
	initErr  error
)

var errNilContext = errors.New("avfilter: nil context")

// Function bindings
var (
	// Graph management
	avfilter_graph_alloc         func() uintptr
	avfilter_graph_free          func(graph *Graph)
	avfilter_graph_config        func(graphctx, log_ctx uintptr) int32
	avfilter_graph_parse2        func(graph uintptr, filters *byte, inputs, outputs *InOut) int32
	avfilter_graph_create_filter func(filt_ctx *Context, filt, namePtr, argsPtr, opaque, graphCtx uintptr) int32

	// Filter lookup
	avfilter_get_by_name func(name *byte) uintptr

	// Filter linking
	avfilter_link func(src uintptr, srcpad uint32, dst uintptr, dstpad uint32) int32

	// Buffer source
	av_buffersrc_add_frame_flags func(ctx, frame uintptr, flags int32) int32

	// Buffer sink
	av_buffersink_get_frame_flags func(ctx, frame uintptr, flags int32) int32
	av_buffersink_get_frame       func(ctx, frame uintptr) int32
	av_buffersink_get_samples     func(ctx, frame uintptr, nbSamples int32) int32
	av_buffersink_set_frame_size  func(ctx uintptr, frameSize uint32)
	av_buffersink_get_type        func(ctx uintptr) int32
	av_buffersink_get_w           func(ctx uintptr) int32
	av_buffersink_get_h           func(ctx uintptr) int32
	av_buffersink_get_format      func(ctx uintptr) int32
	av_buffersink_get_sample_rate func(ctx uintptr) int32
	// AVRational is returned in one register; see avutil.RationalFromRegister.
	av_buffersink_get_time_base  func(ctx uintptr) uint64
	av_buffersink_get_frame_rate func(ctx uintptr) uint64

	// FFmpeg 5.1+
	av_buffersink_get_channels  func(ctx uintptr) int32
	av_buffersink_get_ch_layout func(ctx, chLayout uintptr) int32

	// InOut management
	avfilter_inout_alloc func() uintptr
	avfilter_inout_free  func(inout *InOut)
)

// Buffer source flags
const (
	AV_BUFFERSRC_FLAG_NO_CHECK_FORMAT = 1 // Do not check for format changes
	AV_BUFFERSRC_FLAG_PUSH            = 4 // Push frame immediately
	AV_BUFFERSRC_FLAG_KEEP_REF        = 8 // Keep reference to frame
)

// Buffer sink flags
const (
	AV_BUFFERSINK_FLAG_PEEK       = 1 // Peek without consuming
	AV_BUFFERSINK_FLAG_NO_REQUEST = 2 // Don't request frame
)

// Init initializes the avfilter library bindings
func Init() error {
	initOnce.Do(func() {
		initErr = initLibrary()
	})
	return initErr
}

func initLibrary() error {
	if err := bindings.Load(); err != nil {
		return fmt.Errorf("avfilter: failed to load library: %w", err)
	}
	lib := bindings.LibAVFilter()

	purego.RegisterLibFunc(&avfilter_graph_alloc, lib, "avfilter_graph_alloc")
	purego.RegisterLibFunc(&avfilter_graph_free, lib, "avfilter_graph_free")
	purego.RegisterLibFunc(&avfilter_graph_config, lib, "avfilter_graph_config")
	purego.RegisterLibFunc(&avfilter_graph_parse2, lib, "avfilter_graph_parse2")
	purego.RegisterLibFunc(&avfilter_graph_create_filter, lib, "avfilter_graph_create_filter")
	purego.RegisterLibFunc(&avfilter_get_by_name, lib, "avfilter_get_by_name")
	purego.RegisterLibFunc(&avfilter_link, lib, "avfilter_link")
	purego.RegisterLibFunc(&avfilter_inout_alloc, lib, "avfilter_inout_alloc")
	purego.RegisterLibFunc(&avfilter_inout_free, lib, "avfilter_inout_free")

	purego.RegisterLibFunc(&av_buffersrc_add_frame_flags, lib, "av_buffersrc_add_frame_flags")

	purego.RegisterLibFunc(&av_buffersink_get_frame_flags, lib, "av_buffersink_get_frame_flags")
	purego.RegisterLibFunc(&av_buffersink_get_frame, lib, "av_buffersink_get_frame")
	purego.RegisterLibFunc(&av_buffersink_get_samples, lib, "av_buffersink_get_samples")
	purego.RegisterLibFunc(&av_buffersink_set_frame_size, lib, "av_buffersink_set_frame_size")
	purego.RegisterLibFunc(&av_buffersink_get_type, lib, "av_buffersink_get_type")
	purego.RegisterLibFunc(&av_buffersink_get_w, lib, "av_buffersink_get_w")
	purego.RegisterLibFunc(&av_buffersink_get_h, lib, "av_buffersink_get_h")
	purego.RegisterLibFunc(&av_buffersink_get_format, lib, "av_buffersink_get_format")
	purego.RegisterLibFunc(&av_buffersink_get_sample_rate, lib, "av_buffersink_get_sample_rate")
	purego.RegisterLibFunc(&av_buffersink_get_time_base, lib, "av_buffersink_get_time_base")
	purego.RegisterLibFunc(&av_buffersink_get_frame_rate, lib, "av_buffersink_get_frame_rate")

	bindings.RegisterOptional(&av_buffersink_get_channels, lib, "av_buffersink_get_channels")
	bindings.RegisterOptional(&av_buffersink_get_ch_layout, lib, "av_buffersink_get_ch_layout")

	return nil
}

// Version returns the libavfilter version.
func Version() uint32 {
	if err := Init(); err != nil {
		return 0
	}
	return bindings.AVFilterVersion()
}

// VersionString returns the libavfilter version as a string (e.g., "9.12.100").
func VersionString() string {
	v := Version()
	if v == 0 {
		return "unknown"
	}
	major := (v >> 16) & 0xFF
	minor := (v >> 8) & 0xFF
	micro := v & 0xFF
	return fmt.Sprintf("%d.%d.%d", major, minor, micro)
}

// GraphAlloc allocates a new filter graph.
func GraphAlloc() Graph {
	if err := Init(); err != nil {
		return nil
	}
	return unsafe.Pointer(avfilter_graph_alloc())
}

// GraphFree frees a filter graph and all associated filters.
func GraphFree(graph *Graph) {
	if graph == nil || *graph == nil {
		return
	}
	if err := Init(); err != nil {
		return
	}
	avfilter_graph_free(graph)
	*graph = nil
}

// GraphConfig validates and configures a filter graph.
func GraphConfig(graph Graph) error {
	if graph == nil {
		return errors.New("avfilter: nil graph")
	}
	if err := Init(); err != nil {
		return err
	}
	if ret := avfilter_graph_config(uintptr(graph), 0); ret < 0 {
		return avutil.NewError(ret, "avfilter_graph_config")
	}
	return nil
}

// cString converts a Go string to a null-terminated C string (as *byte)
func cString(s string) *byte {
	if s == "" {
		return nil
	}
	b := append([]byte(s), 0)
	return &b[0]
}

// GraphParse2 parses a filter graph description.
// Returns inputs and outputs that need to be linked.
func GraphParse2(graph Graph, filters string) (inputs, outputs InOut, err error) {
	if graph == nil {
		return nil, nil, errors.New("avfilter: nil graph")
	}
	if err := Init(); err != nil {
		return nil, nil, err
	}

	if ret := avfilter_graph_parse2(uintptr(graph), cString(filters), &inputs, &outputs); ret < 0 {
		return nil, nil, avutil.NewError(ret, "avfilter_graph_parse2")
	}
	return inputs, outputs, nil
}

// GraphCreateFilter creates and adds a filter to a graph.
func GraphCreateFilter(graph Graph, filter Filter, name, args string) (Context, error) {
	if graph == nil {
		return nil, errors.New("avfilter: nil graph")
	}
	if filter == nil {
		return nil, errors.New("avfilter: nil filter")
	}
	if err := Init(); err != nil {
		return nil, err
	}

	var ctx Context
	ret := avfilter_graph_create_filter(
		&ctx,
		uintptr(filter),
		uintptr(unsafe.Pointer(cString(name))),
		uintptr(unsafe.Pointer(cString(args))),
		0,
		uintptr(graph),
	)
	if ret < 0 {
		return nil, avutil.NewError(ret, "avfilter_graph_create_filter")
	}
	return ctx, nil
}

// GetByName finds a filter by name (e.g., "buffer", "buffersink", "scale").
func GetByName(name string) Filter {
	if err := Init(); err != nil {
		return nil
	}
	return unsafe.Pointer(avfilter_get_by_name(cString(name)))
}

// Link links two filter contexts together.
func Link(src Context, srcPad uint32, dst Context, dstPad uint32) error {
	if src == nil || dst == nil {
		return errNilContext
	}
	if err := Init(); err != nil {
		return err
	}
	if ret := avfilter_link(uintptr(src), srcPad, uintptr(dst), dstPad); ret < 0 {
		return avutil.NewError(ret, "avfilter_link")
	}
	return nil
}

// BufferSrcAddFrameFlags pushes a frame to a buffersrc filter. A nil frame
// signals end of stream.
func BufferSrcAddFrameFlags(ctx Context, frame unsafe.Pointer, flags int32) error {
	if ctx == nil {
		return errNilContext
	}
	if err := Init(); err != nil {
		return err
	}
	if ret := av_buffersrc_add_frame_flags(uintptr(ctx), uintptr(frame), flags); ret < 0 {
		return avutil.NewError(ret, "av_buffersrc_add_frame_flags")
	}
	return nil
}

// InOutAlloc allocates an AVFilterInOut structure.
func InOutAlloc() InOut {
	if err := Init(); err != nil {
		return nil
	}
	return unsafe.Pointer(avfilter_inout_alloc())
}

// InOutFree frees an AVFilterInOut list.
func InOutFree(inout *InOut) {
	if inout == nil || *inout == nil {
		return
	}
	if err := Init(); err != nil {
		return
	}
	avfilter_inout_free(inout)
	*inout = nil
}

// struct AVFilterInOut {
//     char *name;                   // offset 0
//     AVFilterContext *filter_ctx;  // offset 8
//     int pad_idx;                  // offset 16
//     struct AVFilterInOut *next;   // offset 24
// }
const (
	offsetInOutFilterCtx = 8
	offsetInOutPadIdx    = 16
	offsetInOutNext      = 24
)

// InOutGetFilterCtx gets the filter_ctx from an AVFilterInOut.
func InOutGetFilterCtx(inout InOut) Context {
	if inout == nil {
		return nil
	}
	return *(*unsafe.Pointer)(unsafe.Pointer(uintptr(inout) + offsetInOutFilterCtx))
}

// InOutGetPadIdx gets the pad_idx from an AVFilterInOut.
func InOutGetPadIdx(inout InOut) int32 {
	if inout == nil {
		return 0
	}
	return *(*int32)(unsafe.Pointer(uintptr(inout) + offsetInOutPadIdx))
}

// InOutSetPadIdx sets the pad_idx field of an AVFilterInOut.
func InOutSetPadIdx(inout InOut, padIdx int32) {
	if inout == nil {
		return
	}
	*(*int32)(unsafe.Pointer(uintptr(inout) + offsetInOutPadIdx)) = padIdx
}

// InOutGetNext gets the next pointer from an AVFilterInOut.
func InOutGetNext(inout InOut) InOut {
	if inout == nil {
		return nil
	}
	return *(*unsafe.Pointer)(unsafe.Pointer(uintptr(inout) + offsetInOutNext))
}
