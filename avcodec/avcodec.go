//go:build !ios && !android && (amd64 || arm64)

// Package avcodec provides bindings to the parts of FFmpeg's libavcodec that
// ffbind needs: codec parameters, codec contexts and codec lookup.
package avcodec

import (
	"runtime"
	"unsafe"

	"github.com/ebitengine/purego"
	"github.com/obinnaokechukwu/ffbind/avutil"
	"github.com/obinnaokechukwu/ffbind/internal/bindings"
)

// Codec is an opaque FFmpeg AVCodec pointer.
type Codec = unsafe.Pointer

// Context is an opaque FFmpeg AVCodecContext pointer.
type Context = unsafe.Pointer

// Parameters is an opaque FFmpeg AVCodecParameters pointer.
type Parameters = unsafe.Pointer

// InputBufferPaddingSize is AV_INPUT_BUFFER_PADDING_SIZE: the number of zero
// bytes every buffer read by FFmpeg's bitstream readers must carry past its end.
const InputBufferPaddingSize = 64

// Function bindings
var (
	avcodecFindDecoder       func(id int32) uintptr
	avcodecFindDecoderByName func(name string) uintptr
	avcodecAllocContext3     func(codec uintptr) uintptr
	avcodecFreeContext       func(ctx *unsafe.Pointer)

	avcodecParametersAlloc   func() uintptr
	avcodecParametersFree    func(par *unsafe.Pointer)
	avcodecParametersCopy    func(dst, src uintptr) int32
	avcodecParametersToCtx   func(ctx, par uintptr) int32
	avcodecParametersFromCtx func(par, ctx uintptr) int32

	bindingsRegistered bool
)

func init() {
	registerBindings()
}

func registerBindings() {
	if bindingsRegistered {
		return
	}

	if err := bindings.Load(); err != nil {
		return
	}

	lib := bindings.LibAVCodec()
	if lib == 0 {
		return
	}

	purego.RegisterLibFunc(&avcodecFindDecoder, lib, "avcodec_find_decoder")
	purego.RegisterLibFunc(&avcodecFindDecoderByName, lib, "avcodec_find_decoder_by_name")
	purego.RegisterLibFunc(&avcodecAllocContext3, lib, "avcodec_alloc_context3")
	purego.RegisterLibFunc(&avcodecFreeContext, lib, "avcodec_free_context")

	purego.RegisterLibFunc(&avcodecParametersAlloc, lib, "avcodec_parameters_alloc")
	purego.RegisterLibFunc(&avcodecParametersFree, lib, "avcodec_parameters_free")
	purego.RegisterLibFunc(&avcodecParametersCopy, lib, "avcodec_parameters_copy")
	purego.RegisterLibFunc(&avcodecParametersToCtx, lib, "avcodec_parameters_to_context")
	purego.RegisterLibFunc(&avcodecParametersFromCtx, lib, "avcodec_parameters_from_context")

	parLayout = parametersLayoutFor(bindings.AVCodecVersion() >> 16)
	bindingsRegistered = true
}

// FindDecoder finds a decoder by codec ID.
func FindDecoder(id CodecID) Codec {
	if avcodecFindDecoder == nil {
		return nil
	}
	return unsafe.Pointer(avcodecFindDecoder(int32(id)))
}

// FindDecoderByName finds a decoder by name.
func FindDecoderByName(name string) Codec {
	if avcodecFindDecoderByName == nil {
		return nil
	}
	codec := unsafe.Pointer(avcodecFindDecoderByName(name))
	runtime.KeepAlive(name)
	return codec
}

// AllocContext3 allocates a codec context. codec may be nil.
func AllocContext3(codec Codec) Context {
	if avcodecAllocContext3 == nil {
		return nil
	}
	return unsafe.Pointer(avcodecAllocContext3(uintptr(codec)))
}

// FreeContext frees a codec context and sets *ctx to nil.
func FreeContext(ctx *Context) {
	if ctx == nil || *ctx == nil || avcodecFreeContext == nil {
		return
	}
	freeStaged(avcodecFreeContext, ctx)
}

// ParametersAlloc allocates an AVCodecParameters with all fields at their
// defaults. Returns nil on allocation failure.
func ParametersAlloc() Parameters {
	if avcodecParametersAlloc == nil {
		return nil
	}
	return unsafe.Pointer(avcodecParametersAlloc())
}

// ParametersFree frees par, including its extradata, and sets *par to nil.
func ParametersFree(par *Parameters) {
	if par == nil || *par == nil || avcodecParametersFree == nil {
		return
	}
	freeStaged(avcodecParametersFree, par)
}

// freeStaged calls an FFmpeg "free and null" function. Passing a pointer into
// Go memory to foreign code can abort on some purego backends (notably
// macOS), so the pointer is staged in FFmpeg-allocated memory.
func freeStaged(free func(*unsafe.Pointer), ptr *unsafe.Pointer) {
	tmp := avutil.Malloc(unsafe.Sizeof(uintptr(0)))
	if tmp == nil {
		free(ptr)
		*ptr = nil
		return
	}
	*(*unsafe.Pointer)(tmp) = *ptr
	free((*unsafe.Pointer)(tmp))
	avutil.Free(tmp)
	*ptr = nil
}

// ParametersCopy copies codec parameters from src to dst, replacing the
// extradata of dst with a private copy.
func ParametersCopy(dst, src Parameters) error {
	if avcodecParametersCopy == nil {
		return bindings.ErrNotLoaded
	}
	ret := avcodecParametersCopy(uintptr(dst), uintptr(src))
	if ret < 0 {
		return avutil.NewError(ret, "avcodec_parameters_copy")
	}
	return nil
}

// ParametersToContext fills the codec context from par.
func ParametersToContext(ctx Context, par Parameters) error {
	if avcodecParametersToCtx == nil {
		return bindings.ErrNotLoaded
	}
	ret := avcodecParametersToCtx(uintptr(ctx), uintptr(par))
	if ret < 0 {
		return avutil.NewError(ret, "avcodec_parameters_to_context")
	}
	return nil
}

// ParametersFromContext fills par from the codec context.
func ParametersFromContext(par Parameters, ctx Context) error {
	if avcodecParametersFromCtx == nil {
		return bindings.ErrNotLoaded
	}
	ret := avcodecParametersFromCtx(uintptr(par), uintptr(ctx))
	if ret < 0 {
		return avutil.NewError(ret, "avcodec_parameters_from_context")
	}
	return nil
}

// AVCodec struct field offset for name (const char *name at offset 0)
const offsetCodecName = 0

// GetCodecName returns the name of the codec.
func GetCodecName(codec Codec) string {
	if codec == nil {
		return ""
	}
	namePtr := *(*unsafe.Pointer)(unsafe.Pointer(uintptr(codec) + offsetCodecName))
	return goString(namePtr)
}

// goString converts a C string to a Go string.
func goString(ptr unsafe.Pointer) string {
	if ptr == nil {
		return ""
	}
	var buf []byte
	for i := 0; ; i++ {
		b := *(*byte)(unsafe.Pointer(uintptr(ptr) + uintptr(i)))
		if b == 0 {
			break
		}
		buf = append(buf, b)
	}
	return string(buf)
}
