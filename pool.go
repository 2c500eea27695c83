//go:build !ios && !android && (amd64 || arm64)

package ffbind

import (
	"errors"
	"sync"
)

// ErrFramePoolExhausted is returned by FramePool.Get when the in-use limit
// is reached.
var ErrFramePoolExhausted = errors.New("ffbind: frame pool exhausted")

// FramePool recycles frame slots for pull loops that hand pulled frames to
// other goroutines and need a fresh slot for the next pull.
//
// Frames returned from Get belong to the caller until they are handed back
// with Put.
type FramePool struct {
	mu       sync.Mutex
	idle     []*Frame
	closed   bool
	inUse    int
	maxInUse int
}

// NewFramePool creates a new pool. If maxInUse <= 0, the pool is unbounded.
func NewFramePool(maxInUse int) *FramePool {
	return &FramePool{maxInUse: maxInUse}
}

// Get returns an empty frame slot.
func (p *FramePool) Get() (*Frame, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, ErrClosed
	}
	if p.maxInUse > 0 && p.inUse >= p.maxInUse {
		return nil, ErrFramePoolExhausted
	}

	var f *Frame
	if n := len(p.idle); n > 0 {
		f = p.idle[n-1]
		p.idle = p.idle[:n-1]
	} else {
		var err error
		if f, err = NewFrame(); err != nil {
			return nil, err
		}
	}
	p.inUse++
	return f, nil
}

// Put unreferences f and keeps the slot for a later Get. On a closed pool
// the slot is freed instead. A slot the caller already freed still gives
// its place back but is not kept.
func (p *FramePool) Put(f *Frame) {
	if p == nil || f == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.inUse > 0 {
		p.inUse--
	}
	if f.ptr == nil {
		return
	}
	if p.closed {
		f.Free()
		return
	}
	f.Unref()
	p.idle = append(p.idle, f)
}

// Get pulls the next unit into a slot taken from pool. The slot is returned
// to the pool unless the status is PullOK, in which case the caller owns it.
func (s *Sink) Get(pool *FramePool) (*Frame, PullStatus, error) {
	f, err := pool.Get()
	if err != nil {
		return nil, PullFatal, err
	}
	st, err := s.Frame(f)
	if st != PullOK {
		pool.Put(f)
		return nil, st, err
	}
	return f, st, nil
}

// Close frees the idle slots. Slots still in use are freed when put back.
func (p *FramePool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	for _, f := range p.idle {
		f.Free()
	}
	p.idle = nil
	return nil
}
