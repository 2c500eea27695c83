// Package allocs records native allocations that Go code currently owns.
//
// Memory obtained from av_malloc and not yet handed to an FFmpeg struct is
// tracked here so that exactly one side is responsible for releasing it.
// Handing a buffer to a native struct removes it from the registry in the
// same critical section as the pointer is recorded on the struct, so there is
// never a moment where both sides (or neither) believe they own it.
package allocs

import (
	"sync"
	"unsafe"
)

var (
	mu   sync.Mutex
	live = make(map[uintptr]int)
)

// Track records ptr as owned by Go code with the given physical size.
//
// Thread-safe.
func Track(ptr unsafe.Pointer, size int) {
	if ptr == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	live[uintptr(ptr)] = size
}

// Untrack forgets ptr and returns its recorded size. Used when Go code frees
// the allocation itself.
//
// Thread-safe.
func Untrack(ptr unsafe.Pointer) (size int, ok bool) {
	mu.Lock()
	defer mu.Unlock()
	size, ok = live[uintptr(ptr)]
	delete(live, uintptr(ptr))
	return
}

// Transfer hands ptr over to native code. record runs while the registry is
// locked, after ptr has been removed from it; it must only store the pointer
// on the receiving struct. Returns false, without calling record, if ptr is
// not tracked.
//
// Thread-safe.
func Transfer(ptr unsafe.Pointer, record func(ptr unsafe.Pointer, size int)) bool {
	mu.Lock()
	defer mu.Unlock()
	size, ok := live[uintptr(ptr)]
	if !ok {
		return false
	}
	delete(live, uintptr(ptr))
	record(ptr, size)
	return true
}

// Size returns the recorded size of a tracked allocation.
//
// Thread-safe.
func Size(ptr unsafe.Pointer) (int, bool) {
	mu.Lock()
	defer mu.Unlock()
	size, ok := live[uintptr(ptr)]
	return size, ok
}

// Count returns the number of allocations currently owned by Go code.
// Useful for leak checks in tests.
//
// Thread-safe.
func Count() int {
	mu.Lock()
	defer mu.Unlock()
	return len(live)
}
