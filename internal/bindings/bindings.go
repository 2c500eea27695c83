//go:build !ios && !android && (amd64 || arm64)

// Package bindings loads the FFmpeg shared libraries ffbind talks to and
// exposes their handles to the low-level packages, which register their own
// function bindings with purego.
package bindings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/ebitengine/purego"
	"github.com/obinnaokechukwu/ffbind/internal/platform"
)

// LibDirEnv names a directory searched before every other location.
const LibDirEnv = "FFBIND_LIB_DIR"

// ErrNotLoaded is returned when FFmpeg functions are called before Load().
var ErrNotLoaded = errors.New("ffbind: FFmpeg libraries not loaded; call ffbind.Init() first")

// ErrLibraryNotFound is returned when a required FFmpeg library cannot be found.
var ErrLibraryNotFound = errors.New("ffbind: FFmpeg library not found")

// Supported major versions, newest first.
var (
	AVUtilVersions   = []int{59, 58, 57, 56}
	AVCodecVersions  = []int{61, 60, 59, 58}
	AVFilterVersions = []int{10, 9, 8, 7}
)

var (
	libAVUtil   uintptr
	libAVCodec  uintptr
	libAVFilter uintptr

	loaded   bool
	loadOnce sync.Once
	loadErr  error
)

var (
	avutilVersion   func() uint32
	avcodecVersion  func() uint32
	avfilterVersion func() uint32
)

// IsLoaded returns true if FFmpeg libraries have been successfully loaded.
func IsLoaded() bool {
	return loaded
}

// Load loads libavutil, libavcodec and libavfilter. It is safe to call
// multiple times; only the first call does any work.
func Load() error {
	loadOnce.Do(func() {
		loadErr = doLoad()
		if loadErr == nil {
			loaded = true
		}
	})
	return loadErr
}

func doLoad() error {
	// avutil first: the other two resolve symbols against it (RTLD_GLOBAL).
	var err error
	if libAVUtil, err = loadLibrary("avutil", AVUtilVersions); err != nil {
		return fmt.Errorf("loading libavutil: %w", err)
	}
	if libAVCodec, err = loadLibrary("avcodec", AVCodecVersions); err != nil {
		return fmt.Errorf("loading libavcodec: %w", err)
	}
	if libAVFilter, err = loadLibrary("avfilter", AVFilterVersions); err != nil {
		return fmt.Errorf("loading libavfilter: %w", err)
	}

	purego.RegisterLibFunc(&avutilVersion, libAVUtil, "avutil_version")
	purego.RegisterLibFunc(&avcodecVersion, libAVCodec, "avcodec_version")
	purego.RegisterLibFunc(&avfilterVersion, libAVFilter, "avfilter_version")
	return nil
}

func loadLibrary(name string, versions []int) (uintptr, error) {
	for _, dir := range LibrarySearchPaths() {
		for _, candidate := range candidateNames(name, versions) {
			if lib, err := tryOpen(filepath.Join(dir, candidate)); err == nil {
				return lib, nil
			}
		}
	}

	// Let the system loader resolve it.
	for _, candidate := range candidateNames(name, versions) {
		if lib, err := tryOpen(candidate); err == nil {
			return lib, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrLibraryNotFound, name)
}

// candidateNames lists versioned file names first, then the unversioned one.
func candidateNames(name string, versions []int) []string {
	names := make([]string, 0, len(versions)+1)
	for _, v := range versions {
		names = append(names, platform.FormatLibraryName(name, v))
	}
	return append(names, platform.FormatLibraryName(name, 0))
}

// tryOpen opens with RTLD_GLOBAL: FFmpeg libraries cross-reference each other.
func tryOpen(path string) (uintptr, error) {
	return purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
}

// FindLibrary searches for a library and returns its full path.
func FindLibrary(name string, versions []int) (string, error) {
	for _, dir := range LibrarySearchPaths() {
		for _, candidate := range candidateNames(name, versions) {
			full := filepath.Join(dir, candidate)
			if _, err := os.Stat(full); err == nil {
				return full, nil
			}
		}
	}
	return "", fmt.Errorf("%w: %s", ErrLibraryNotFound, name)
}

// LibrarySearchPaths returns the directories searched for FFmpeg, in order:
// FFBIND_LIB_DIR, the loader path variable, then platform defaults.
func LibrarySearchPaths() []string {
	var paths []string
	if dir := os.Getenv(LibDirEnv); dir != "" {
		paths = append(paths, filepath.SplitList(dir)...)
	}
	if env := os.Getenv(platform.LoaderPathEnv()); env != "" {
		paths = append(paths, filepath.SplitList(env)...)
	}

	switch runtime.GOOS {
	case "linux":
		paths = append(paths,
			"/usr/lib/x86_64-linux-gnu",
			"/usr/lib/aarch64-linux-gnu",
			"/usr/local/lib",
			"/usr/lib",
			"/lib/x86_64-linux-gnu",
			"/lib",
		)
	case "darwin":
		paths = append(paths,
			"/opt/homebrew/lib",
			"/usr/local/lib",
			"/opt/homebrew/opt/ffmpeg/lib",
			"/usr/local/opt/ffmpeg/lib",
		)
	case "windows":
		if exe, err := os.Executable(); err == nil {
			paths = append(paths, filepath.Dir(exe))
		}
		paths = append(paths,
			"C:\\ffmpeg\\bin",
			"C:\\Program Files\\ffmpeg\\bin",
		)
	case "freebsd":
		paths = append(paths,
			"/usr/local/lib",
			"/usr/lib",
		)
	}
	return paths
}

// AVUtilVersion returns the avutil library version, or 0 if not loaded.
func AVUtilVersion() uint32 {
	if !loaded || avutilVersion == nil {
		return 0
	}
	return avutilVersion()
}

// AVCodecVersion returns the avcodec library version, or 0 if not loaded.
func AVCodecVersion() uint32 {
	if !loaded || avcodecVersion == nil {
		return 0
	}
	return avcodecVersion()
}

// AVFilterVersion returns the avfilter library version, or 0 if not loaded.
func AVFilterVersion() uint32 {
	if !loaded || avfilterVersion == nil {
		return 0
	}
	return avfilterVersion()
}

// LibAVUtil returns the avutil library handle.
func LibAVUtil() uintptr {
	return libAVUtil
}

// LibAVCodec returns the avcodec library handle.
func LibAVCodec() uintptr {
	return libAVCodec
}

// LibAVFilter returns the avfilter library handle.
func LibAVFilter() uintptr {
	return libAVFilter
}

// RegisterOptional binds name if the library exports it. Symbols that moved
// or disappeared between FFmpeg majors leave fptr nil instead of panicking.
func RegisterOptional(fptr any, lib uintptr, name string) {
	defer func() { _ = recover() }()
	purego.RegisterLibFunc(fptr, lib, name)
}
