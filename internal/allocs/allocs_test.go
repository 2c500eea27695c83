package allocs

import (
	"sync"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestTrackAndUntrack(t *testing.T) {
	buf := make([]byte, 80)
	ptr := unsafe.Pointer(&buf[0])
	before := Count()

	Track(ptr, len(buf))
	require.Equal(t, before+1, Count())
	size, ok := Size(ptr)
	require.True(t, ok)
	require.Equal(t, 80, size)

	size, ok = Untrack(ptr)
	require.True(t, ok)
	require.Equal(t, 80, size)
	require.Equal(t, before, Count())

	_, ok = Untrack(ptr)
	require.False(t, ok)
}

func TestTrackNil(t *testing.T) {
	before := Count()
	Track(nil, 10)
	require.Equal(t, before, Count())
}

func TestTransfer(t *testing.T) {
	buf := make([]byte, 16)
	ptr := unsafe.Pointer(&buf[0])
	Track(ptr, len(buf))

	var recorded unsafe.Pointer
	var recordedSize int
	ok := Transfer(ptr, func(p unsafe.Pointer, size int) {
		// The registry no longer owns the buffer while it is being recorded.
		_, tracked := live[uintptr(p)]
		require.False(t, tracked)
		recorded, recordedSize = p, size
	})
	require.True(t, ok)
	require.Equal(t, ptr, recorded)
	require.Equal(t, 16, recordedSize)

	_, ok = Size(ptr)
	require.False(t, ok)

	called := false
	require.False(t, Transfer(ptr, func(unsafe.Pointer, int) { called = true }))
	require.False(t, called)
}

func TestConcurrentTracking(t *testing.T) {
	bufs := make([][]byte, 50)
	for i := range bufs {
		bufs[i] = make([]byte, 1)
	}
	before := Count()

	var wg sync.WaitGroup
	for i := range bufs {
		wg.Add(1)
		go func(b []byte) {
			defer wg.Done()
			p := unsafe.Pointer(&b[0])
			Track(p, 1)
			Untrack(p)
		}(bufs[i])
	}
	wg.Wait()
	require.Equal(t, before, Count())
}
