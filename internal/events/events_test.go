package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitter_DeliversInSubscriptionOrder(t *testing.T) {
	var e Emitter[int]
	var got []string

	e.Subscribe(func(v int) { got = append(got, "a") })
	e.Subscribe(func(v int) { got = append(got, "b") })

	e.Emit(1)

	assert.Equal(t, []string{"a", "b"}, got)
	assert.Equal(t, 2, e.Len())
}

func TestEmitter_UnsubscribeIsIdempotent(t *testing.T) {
	var e Emitter[string]
	calls := 0

	unsub := e.Subscribe(func(string) { calls++ })
	other := e.Subscribe(func(string) {})

	unsub()
	unsub()
	e.Emit("x")

	assert.Equal(t, 0, calls)
	assert.Equal(t, 1, e.Len())

	other()
	assert.Equal(t, 0, e.Len())
}

func TestEmitter_HandlerRemovedDuringEmitIsSkipped(t *testing.T) {
	var e Emitter[int]
	secondCalls := 0

	var second Unsubscribe
	e.Subscribe(func(int) { second() })
	second = e.Subscribe(func(int) { secondCalls++ })

	e.Emit(0)

	assert.Equal(t, 0, secondCalls)
}

func TestEmitter_NilHandler(t *testing.T) {
	var e Emitter[int]

	unsub := e.Subscribe(nil)
	require.NotNil(t, unsub)
	unsub()

	assert.Equal(t, 0, e.Len())
}

func TestGroup_DisposeReleasesEverything(t *testing.T) {
	var scroll Emitter[int]
	var resize Emitter[int]
	var g Group

	On(&g, &scroll, func(int) {})
	On(&g, &resize, func(int) {})
	On(&g, &resize, func(int) {})

	require.Equal(t, 3, g.Len())
	require.Equal(t, 1, scroll.Len())
	require.Equal(t, 2, resize.Len())

	g.Dispose()
	g.Dispose()

	assert.True(t, g.Disposed())
	assert.Equal(t, 0, g.Len())
	assert.Equal(t, 0, scroll.Len())
	assert.Equal(t, 0, resize.Len())
}

func TestGroup_AddAfterDisposeReleasesImmediately(t *testing.T) {
	var e Emitter[int]
	var g Group
	g.Dispose()

	On(&g, &e, func(int) {})

	assert.Equal(t, 0, e.Len())
	assert.Equal(t, 0, g.Len())
}

func TestGroup_DisposeOnPanicPath(t *testing.T) {
	var e Emitter[int]
	var g Group

	func() {
		defer func() { _ = recover() }()
		defer g.Dispose()
		On(&g, &e, func(int) {})
		panic("render failed")
	}()

	assert.Equal(t, 0, e.Len())
}
