//go:build !ios && !android && (amd64 || arm64)

package ffbind

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/obinnaokechukwu/ffbind/avfilter"
)

// FilterGraph is a linear filter pipeline: buffer -> filters -> buffersink
// for video, abuffer -> filters -> abuffersink for audio. Frames go in with
// Push and come out of the borrowed Sink.
type FilterGraph struct {
	graph      avfilter.Graph
	bufferSrc  avfilter.Context
	bufferSink avfilter.Context
	isVideo    bool
	closed     bool
}

// FilterGraphConfig configures a filter graph.
type FilterGraphConfig struct {
	// Video parameters (required for video filters)
	Width     int
	Height    int
	PixelFmt  PixelFormat
	TimeBase  Rational // defaults to 1/90000 (video) or 1/SampleRate (audio)
	FrameRate Rational // optional
	SAR       Rational // sample aspect ratio, defaults to 1/1

	// Audio parameters (required for audio filters)
	SampleRate int
	Channels   int
	SampleFmt  SampleFormat
	// FrameSize, when set, makes the audio sink emit frames of exactly that
	// many samples.
	FrameSize int

	// Filter string (e.g., "scale=320:240,transpose=1")
	Filters string
}

// NewVideoFilterGraph creates a video filter graph with the specified parameters.
// The filters string uses FFmpeg's filter graph syntax (e.g., "scale=320:240,transpose=1").
func NewVideoFilterGraph(filters string, width, height int, pixFmt PixelFormat) (*FilterGraph, error) {
	return NewFilterGraph(FilterGraphConfig{
		Width:    width,
		Height:   height,
		PixelFmt: pixFmt,
		Filters:  filters,
	})
}

// NewFilterGraph creates and configures a filter graph.
func NewFilterGraph(cfg FilterGraphConfig) (*FilterGraph, error) {
	if err := avfilter.Init(); err != nil {
		return nil, fmt.Errorf("ffbind: failed to initialize avfilter: %w", err)
	}

	isVideo := cfg.Width > 0 && cfg.Height > 0
	isAudio := cfg.SampleRate > 0 && cfg.Channels > 0

	if !isVideo && !isAudio {
		return nil, errors.New("ffbind: must specify either video (Width, Height) or audio (SampleRate, Channels) parameters")
	}
	if isVideo && isAudio {
		return nil, errors.New("ffbind: cannot mix video and audio parameters; create separate filter graphs")
	}

	g := &FilterGraph{isVideo: isVideo}

	g.graph = avfilter.GraphAlloc()
	if g.graph == nil {
		return nil, fmt.Errorf("ffbind: failed to allocate filter graph: %w", ErrOutOfMemory)
	}

	var err error
	if isVideo {
		err = g.setupVideoFilters(cfg)
	} else {
		err = g.setupAudioFilters(cfg)
	}
	if err != nil {
		avfilter.GraphFree(&g.graph)
		return nil, err
	}

	if !isVideo && cfg.FrameSize > 0 {
		lib.sinkSetFrameSize(g.bufferSink, uint32(cfg.FrameSize))
	}

	runtime.SetFinalizer(g, (*FilterGraph).cleanup)
	return g, nil
}

func (g *FilterGraph) setupVideoFilters(cfg FilterGraphConfig) error {
	timeBase := cfg.TimeBase
	if timeBase.Num == 0 {
		timeBase = Rational{Num: 1, Den: 90000}
	}
	sar := cfg.SAR
	if sar.Num == 0 {
		sar = Rational{Num: 1, Den: 1}
	}

	srcArgs := fmt.Sprintf("video_size=%dx%d:pix_fmt=%d:time_base=%d/%d:pixel_aspect=%d/%d",
		cfg.Width, cfg.Height, int(cfg.PixelFmt),
		timeBase.Num, timeBase.Den,
		sar.Num, sar.Den)
	if cfg.FrameRate.Num > 0 {
		srcArgs += fmt.Sprintf(":frame_rate=%d/%d", cfg.FrameRate.Num, cfg.FrameRate.Den)
	}

	if err := g.createEnds("buffer", srcArgs, "buffersink"); err != nil {
		return err
	}

	if cfg.Filters == "" || cfg.Filters == "null" {
		if err := avfilter.Link(g.bufferSrc, 0, g.bufferSink, 0); err != nil {
			return fmt.Errorf("ffbind: failed to link src to sink: %w", err)
		}
	} else if err := g.linkFilterChain(cfg.Filters); err != nil {
		return err
	}

	if err := avfilter.GraphConfig(g.graph); err != nil {
		return fmt.Errorf("ffbind: failed to configure filter graph: %w", err)
	}
	return nil
}

// createEnds creates the buffer source and sink filters.
func (g *FilterGraph) createEnds(srcName, srcArgs, sinkName string) error {
	src := avfilter.GetByName(srcName)
	if src == nil {
		return fmt.Errorf("ffbind: %s filter not found", srcName)
	}
	var err error
	if g.bufferSrc, err = avfilter.GraphCreateFilter(g.graph, src, "in", srcArgs); err != nil {
		return fmt.Errorf("ffbind: failed to create %s: %w", srcName, err)
	}

	sink := avfilter.GetByName(sinkName)
	if sink == nil {
		return fmt.Errorf("ffbind: %s filter not found", sinkName)
	}
	if g.bufferSink, err = avfilter.GraphCreateFilter(g.graph, sink, "out", ""); err != nil {
		return fmt.Errorf("ffbind: failed to create %s: %w", sinkName, err)
	}
	return nil
}

// linkFilterChain creates one filter per element of a "filter1=args1,filter2=args2"
// chain and links buffersrc -> chain -> buffersink.
func (g *FilterGraph) linkFilterChain(filters string) error {
	filterList := parseFilterChain(filters)

	prevCtx := g.bufferSrc
	for i, f := range filterList {
		filter := avfilter.GetByName(f.name)
		if filter == nil {
			return fmt.Errorf("ffbind: filter %q not found", f.name)
		}

		ctx, err := avfilter.GraphCreateFilter(g.graph, filter, fmt.Sprintf("f%d", i), f.args)
		if err != nil {
			return fmt.Errorf("ffbind: failed to create filter %q: %w", f.name, err)
		}
		if err := avfilter.Link(prevCtx, 0, ctx, 0); err != nil {
			return fmt.Errorf("ffbind: failed to link filter chain at filter %d: %w", i, err)
		}
		prevCtx = ctx
	}

	if err := avfilter.Link(prevCtx, 0, g.bufferSink, 0); err != nil {
		return fmt.Errorf("ffbind: failed to link to buffersink: %w", err)
	}
	return nil
}

// filterSpec represents a parsed filter specification
type filterSpec struct {
	name string
	args string
}

// parseFilterChain parses a filter chain string like "scale=320:240,format=yuv420p"
func parseFilterChain(filters string) []filterSpec {
	var result []filterSpec
	for _, part := range splitFilterChain(filters) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		var spec filterSpec
		if idx := strings.Index(part, "="); idx > 0 {
			spec.name = part[:idx]
			spec.args = part[idx+1:]
		} else {
			spec.name = part
		}
		result = append(result, spec)
	}
	return result
}

// splitFilterChain splits by comma but respects brackets and quotes
func splitFilterChain(s string) []string {
	var result []string
	var current strings.Builder
	depth := 0
	inQuote := false

	for _, c := range s {
		switch c {
		case '\'':
			inQuote = !inQuote
			current.WriteRune(c)
		case '[', '(':
			depth++
			current.WriteRune(c)
		case ']', ')':
			depth--
			current.WriteRune(c)
		case ',':
			if depth == 0 && !inQuote {
				result = append(result, current.String())
				current.Reset()
			} else {
				current.WriteRune(c)
			}
		default:
			current.WriteRune(c)
		}
	}

	if current.Len() > 0 {
		result = append(result, current.String())
	}
	return result
}

// channelLayoutName returns the abuffer channel_layout argument for a
// channel count.
func channelLayoutName(channels int) string {
	switch channels {
	case 1:
		return "mono"
	case 2:
		return "stereo"
	case 6:
		return "5.1"
	case 8:
		return "7.1"
	default:
		return fmt.Sprintf("%dc", channels)
	}
}

func (g *FilterGraph) setupAudioFilters(cfg FilterGraphConfig) error {
	timeBase := cfg.TimeBase
	if timeBase.Num == 0 {
		timeBase = Rational{Num: 1, Den: int32(cfg.SampleRate)}
	}
	sampleFmt := cfg.SampleFmt
	if sampleFmt == SampleFormatNone {
		sampleFmt = SampleFormatS16
	}

	srcArgs := fmt.Sprintf("sample_rate=%d:sample_fmt=%s:channel_layout=%s:time_base=%d/%d",
		cfg.SampleRate, sampleFmt, channelLayoutName(cfg.Channels), timeBase.Num, timeBase.Den)

	if err := g.createEnds("abuffer", srcArgs, "abuffersink"); err != nil {
		return err
	}

	if cfg.Filters != "" && cfg.Filters != "anull" {
		if err := g.linkParsed(cfg.Filters); err != nil {
			return err
		}
	} else if err := avfilter.Link(g.bufferSrc, 0, g.bufferSink, 0); err != nil {
		return fmt.Errorf("ffbind: failed to link src to sink: %w", err)
	}

	if err := avfilter.GraphConfig(g.graph); err != nil {
		return fmt.Errorf("ffbind: failed to configure filter graph: %w", err)
	}
	return nil
}

// linkParsed parses filters with avfilter_graph_parse2 and connects the
// source to its open input and its open output to the sink.
func (g *FilterGraph) linkParsed(filters string) error {
	inputs, outputs, err := avfilter.GraphParse2(g.graph, filters)
	if err != nil {
		return fmt.Errorf("ffbind: failed to parse filter graph: %w", err)
	}
	defer avfilter.InOutFree(&inputs)
	defer avfilter.InOutFree(&outputs)

	if inputs == nil || outputs == nil {
		return fmt.Errorf("ffbind: filter graph %q must have one open input and one open output", filters)
	}
	if err := avfilter.Link(g.bufferSrc, 0, avfilter.InOutGetFilterCtx(inputs), uint32(avfilter.InOutGetPadIdx(inputs))); err != nil {
		return fmt.Errorf("ffbind: failed to link abuffer: %w", err)
	}
	if err := avfilter.Link(avfilter.InOutGetFilterCtx(outputs), uint32(avfilter.InOutGetPadIdx(outputs)), g.bufferSink, 0); err != nil {
		return fmt.Errorf("ffbind: failed to link abuffersink: %w", err)
	}
	return nil
}

// Push feeds a frame into the graph. The graph takes its own reference, so
// f can be reused or freed afterwards.
func (g *FilterGraph) Push(f *Frame) error {
	if g.closed {
		return ErrFilterGraphClosed
	}
	if f == nil || f.ptr == nil {
		return fmt.Errorf("ffbind: push of freed frame: %w", ErrClosed)
	}
	if err := avfilter.BufferSrcAddFrameFlags(g.bufferSrc, f.ptr, avfilter.AV_BUFFERSRC_FLAG_KEEP_REF); err != nil {
		return fmt.Errorf("ffbind: failed to push frame to filter: %w", err)
	}
	runtime.KeepAlive(f)
	return nil
}

// PushEOF signals that no more frames will be pushed. Pulls then drain the
// frames still buffered and finally return PullEOF.
func (g *FilterGraph) PushEOF() error {
	if g.closed {
		return ErrFilterGraphClosed
	}
	if err := avfilter.BufferSrcAddFrameFlags(g.bufferSrc, nil, 0); err != nil {
		return fmt.Errorf("ffbind: failed to flush filter: %w", err)
	}
	return nil
}

// Filter pushes in (or end of stream when in is nil) and hands every frame
// then available to fn through the out slot.
func (g *FilterGraph) Filter(in, out *Frame, fn func(*Frame) error) error {
	var err error
	if in == nil {
		err = g.PushEOF()
	} else {
		err = g.Push(in)
	}
	if err != nil {
		return err
	}
	_, err = g.Sink().Drain(out, fn)
	return err
}

// Sink returns the graph's output. The Sink is borrowed: it stops working
// with ErrFilterGraphClosed once the graph is closed.
func (g *FilterGraph) Sink() *Sink {
	return &Sink{ctx: g.bufferSink, graph: g}
}

// Close releases all resources associated with the filter graph.
func (g *FilterGraph) Close() error {
	if g.closed {
		return nil
	}
	g.closed = true
	runtime.SetFinalizer(g, nil)
	g.cleanup()
	return nil
}

func (g *FilterGraph) cleanup() {
	if g.graph != nil {
		avfilter.GraphFree(&g.graph)
		g.graph = nil
	}
	g.bufferSrc, g.bufferSink = nil, nil
}

// IsVideo returns true if this is a video filter graph.
func (g *FilterGraph) IsVideo() bool {
	return g.isVideo
}

// IsAudio returns true if this is an audio filter graph.
func (g *FilterGraph) IsAudio() bool {
	return !g.isVideo
}
