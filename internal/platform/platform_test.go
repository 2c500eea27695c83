//go:build !ios && !android && (amd64 || arm64)

package platform

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIs64Bit(t *testing.T) {
	require.True(t, Is64Bit)
	require.True(t, LittleEndian)
}

func TestLibraryExtensionAndPrefix(t *testing.T) {
	switch runtime.GOOS {
	case "darwin":
		require.Equal(t, ".dylib", LibraryExtension)
		require.Equal(t, "lib", LibraryPrefix)
	case "windows":
		require.Equal(t, ".dll", LibraryExtension)
		require.Empty(t, LibraryPrefix)
	default:
		require.Equal(t, ".so", LibraryExtension)
		require.Equal(t, "lib", LibraryPrefix)
	}
}

func TestFormatLibraryName(t *testing.T) {
	tests := []struct {
		name    string
		version int
		goos    string
		want    string
	}{
		{"avfilter", 9, "linux", "libavfilter.so.9"},
		{"avfilter", 0, "linux", "libavfilter.so"},
		{"avfilter", 9, "darwin", "libavfilter.9.dylib"},
		{"avfilter", 0, "darwin", "libavfilter.dylib"},
		{"avfilter", 9, "windows", "avfilter-9.dll"},
		{"avfilter", 0, "windows", "avfilter.dll"},
	}

	for _, tt := range tests {
		t.Run(tt.name+"_"+tt.goos, func(t *testing.T) {
			if runtime.GOOS != tt.goos {
				t.Skipf("test only applies to %s", tt.goos)
			}
			require.Equal(t, tt.want, FormatLibraryName(tt.name, tt.version))
		})
	}
}

func TestLoaderPathEnv(t *testing.T) {
	require.NotEmpty(t, LoaderPathEnv())
}
