//go:build !ios && !android && (amd64 || arm64)

package ffbind

import (
	"sync"

	"github.com/asticode/go-astikit"
)

// Owner is a shared-ownership token for native memory that outlives the
// handles borrowing it, typically a parameter block embedded in a codec
// context. It starts with one reference held by its creator; the release
// function runs once, when the last reference is dropped.
//
// Handles borrowing from an Owner never free the memory themselves.
type Owner struct {
	mu   sync.Mutex
	c    *astikit.Closer
	refs int64
}

// NewOwner creates a token holding one reference. release may be nil.
func NewOwner(release func()) *Owner {
	o := &Owner{c: astikit.NewCloser(), refs: 1}
	if release != nil {
		o.c.Add(release)
	}
	return o
}

// Retain adds a reference. It fails with ErrOwnerReleased once the token
// has been fully released.
//
// Thread-safe.
func (o *Owner) Retain() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.refs <= 0 {
		return ErrOwnerReleased
	}
	o.refs++
	return nil
}

// Release drops a reference and runs the release chain when it was the
// last one.
//
// Thread-safe.
func (o *Owner) Release() error {
	o.mu.Lock()
	if o.refs <= 0 {
		o.mu.Unlock()
		return ErrOwnerReleased
	}
	o.refs--
	last := o.refs == 0
	o.mu.Unlock()

	if !last {
		return nil
	}
	currentLogger().Debugf("ffbind: owner %p released, running release chain", o)
	return o.c.Close()
}

// Add chains another cleanup onto the release. On an owner that is already
// released fn runs immediately.
//
// Thread-safe.
func (o *Owner) Add(fn func()) {
	o.mu.Lock()
	if o.refs > 0 {
		o.c.Add(fn)
		o.mu.Unlock()
		return
	}
	o.mu.Unlock()
	fn()
}

// Refs returns the current reference count.
func (o *Owner) Refs() int64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.refs
}

// Released reports whether the release chain has run.
func (o *Owner) Released() bool {
	return o.Refs() <= 0
}
