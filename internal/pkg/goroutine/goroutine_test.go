package goroutine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/atomic"
)

func TestManager_CollectsErrors(t *testing.T) {
	m := NewManager(4)
	errBoom := errors.New("boom")
	var ran atomic.Int32

	assert.True(t, m.Go(context.Background(), func(context.Context) error { ran.Inc(); return nil }))
	assert.True(t, m.Go(context.Background(), func(context.Context) error { ran.Inc(); return errBoom }))

	err := m.Wait()
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, int32(2), ran.Load())
}

func TestManager_RecoversPanic(t *testing.T) {
	m := NewManager(1)

	m.Go(context.Background(), func(context.Context) error { panic("bad") })

	assert.NoError(t, m.Wait())
}

func TestManager_RejectsAfterWait(t *testing.T) {
	m := NewManager(1)
	assert.NoError(t, m.Wait())

	assert.False(t, m.Go(context.Background(), func(context.Context) error { return nil }))
}

func TestManager_RejectsWhenFull(t *testing.T) {
	m := NewManager(1)
	release := make(chan struct{})

	assert.True(t, m.Go(context.Background(), func(context.Context) error { <-release; return nil }))
	assert.False(t, m.Go(context.Background(), func(context.Context) error { return nil }))

	close(release)
	assert.NoError(t, m.Wait())
}

func TestManager_SkipsCanceledContext(t *testing.T) {
	m := NewManager(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var ran atomic.Bool

	m.Go(ctx, func(context.Context) error { ran.Store(true); return nil })

	assert.NoError(t, m.Wait())
	assert.False(t, ran.Load())
}

func TestManager_Nil(t *testing.T) {
	var m *Manager
	assert.False(t, m.Go(context.Background(), func(context.Context) error { return nil }))
	assert.NoError(t, m.Wait())
}
