//go:build !ios && !android && (amd64 || arm64)

package ffbind

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFramePoolGetPutAndLimit(t *testing.T) {
	fake := useFakeNative(t)
	p := NewFramePool(1)

	f1, err := p.Get()
	require.NoError(t, err)
	_, err = p.Get()
	require.ErrorIs(t, err, ErrFramePoolExhausted)

	f1.SetPTS(5)
	p.Put(f1)
	require.Equal(t, 1, fake.frameUnrefs)

	f2, err := p.Get()
	require.NoError(t, err)
	require.Same(t, f1, f2)

	p.Put(f2)
	require.NoError(t, p.Close())
	require.Equal(t, 1, fake.frameFrees)

	_, err = p.Get()
	require.ErrorIs(t, err, ErrClosed)
	require.NoError(t, p.Close())
}

func TestFramePoolPutAfterClose(t *testing.T) {
	fake := useFakeNative(t)
	p := NewFramePool(0)
	f, err := p.Get()
	require.NoError(t, err)

	require.NoError(t, p.Close())
	require.Zero(t, fake.frameFrees)
	p.Put(f)
	require.Equal(t, 1, fake.frameFrees)
	require.Nil(t, f.Raw())
}

func TestSinkGetFromPool(t *testing.T) {
	fake := useFakeNative(t)
	state := &fakeSink{frames: []int64{1, 2}}
	s := fake.newSink(state)
	p := NewFramePool(0)
	defer p.Close()

	a, st, err := s.Get(p)
	require.NoError(t, err)
	require.Equal(t, PullOK, st)
	b, st, err := s.Get(p)
	require.NoError(t, err)
	require.Equal(t, PullOK, st)
	require.NotSame(t, a, b)
	require.Equal(t, int64(1), a.PTS())
	require.Equal(t, int64(2), b.PTS())

	c, st, err := s.Get(p)
	require.NoError(t, err)
	require.Equal(t, PullAgain, st)
	require.Nil(t, c)

	p.Put(a)
	p.Put(b)
}

func TestFramePoolPutFreedFrameReturnsSlot(t *testing.T) {
	fake := useFakeNative(t)
	p := NewFramePool(1)
	defer p.Close()

	f, err := p.Get()
	require.NoError(t, err)
	f.Free()
	require.Equal(t, 1, fake.frameFrees)

	p.Put(f)
	require.Zero(t, fake.frameUnrefs)

	g, err := p.Get()
	require.NoError(t, err)
	require.NotSame(t, f, g)
	require.NotNil(t, g.Raw())
	p.Put(g)

	// Extra puts never drive the count below zero.
	p.Put(f)
	g, err = p.Get()
	require.NoError(t, err)
	_, err = p.Get()
	require.ErrorIs(t, err, ErrFramePoolExhausted)
	p.Put(g)
}
