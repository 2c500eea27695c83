//go:build !ios && !android && (amd64 || arm64)

// Package platform describes how shared libraries are named and found on the
// host operating system.
package platform

import (
	"fmt"
	"runtime"
	"unsafe"
)

// Is64Bit indicates whether the platform is 64-bit.
// purego only calls into foreign code on 64-bit targets.
const Is64Bit = unsafe.Sizeof(uintptr(0)) == 8

// LittleEndian is true on every architecture ffbind builds for. Two-field
// structs returned in a register (AVRational) are unpacked relying on it.
const LittleEndian = runtime.GOARCH == "amd64" || runtime.GOARCH == "arm64"

// LibraryExtension is the file extension for shared libraries on this platform.
var LibraryExtension string

// LibraryPrefix is the prefix for shared library names on this platform.
var LibraryPrefix string

func init() {
	switch runtime.GOOS {
	case "darwin":
		LibraryExtension = ".dylib"
		LibraryPrefix = "lib"
	case "windows":
		LibraryExtension = ".dll"
		LibraryPrefix = ""
	default:
		LibraryExtension = ".so"
		LibraryPrefix = "lib"
	}
}

// FormatLibraryName returns the platform-specific library filename.
// A version of 0 yields the unversioned name.
//
//   - Linux:   FormatLibraryName("avfilter", 9) -> "libavfilter.so.9"
//   - macOS:   FormatLibraryName("avfilter", 9) -> "libavfilter.9.dylib"
//   - Windows: FormatLibraryName("avfilter", 9) -> "avfilter-9.dll"
func FormatLibraryName(name string, version int) string {
	base := LibraryPrefix + name
	if version <= 0 {
		return base + LibraryExtension
	}
	switch runtime.GOOS {
	case "darwin":
		return fmt.Sprintf("%s.%d%s", base, version, LibraryExtension)
	case "windows":
		return fmt.Sprintf("%s-%d%s", base, version, LibraryExtension)
	default:
		return fmt.Sprintf("%s%s.%d", base, LibraryExtension, version)
	}
}

// LoaderPathEnv returns the environment variable the dynamic loader consults
// for extra library directories.
func LoaderPathEnv() string {
	switch runtime.GOOS {
	case "darwin":
		return "DYLD_LIBRARY_PATH"
	case "windows":
		return "PATH"
	default:
		return "LD_LIBRARY_PATH"
	}
}
