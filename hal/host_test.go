package hal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFramebufferClearAndResize(t *testing.T) {
	fb := newHostFramebuffer(4, 2)
	assert.Equal(t, 8, fb.StrideBytes())
	require.Len(t, fb.Buffer(), 16)

	fb.ClearRGB(0xFF, 0, 0)
	assert.Equal(t, byte(0x00), fb.Buffer()[0])
	assert.Equal(t, byte(0xF8), fb.Buffer()[1])

	assert.False(t, fb.resize(4, 2))
	assert.True(t, fb.resize(3, 3))
	assert.Equal(t, 3, fb.Width())
	assert.Len(t, fb.Buffer(), 18)

	assert.True(t, fb.resize(0, -5))
	assert.Equal(t, 1, fb.Width())
	assert.Equal(t, 1, fb.Height())
}

func TestRGB565RoundTripExtremes(t *testing.T) {
	r, g, b := RGB888From565(RGB565(0xFF, 0xFF, 0xFF))
	assert.Equal(t, [3]uint8{0xFF, 0xFF, 0xFF}, [3]uint8{r, g, b})
	r, g, b = RGB888From565(RGB565(0, 0, 0))
	assert.Equal(t, [3]uint8{0, 0, 0}, [3]uint8{r, g, b})
}

func TestHostResizeReportsOnce(t *testing.T) {
	h := New(HostConfig{Width: 10, Height: 10, Keyboard: NewScriptedKeyboard()}).(*hostHAL)
	h.resize(10, 10)
	h.resize(20, 5)
	h.resize(20, 5)

	select {
	case s := <-h.Display().Resizes():
		assert.Equal(t, Size{W: 20, H: 5}, s)
	default:
		t.Fatal("expected a resize")
	}
	select {
	case s := <-h.Display().Resizes():
		t.Fatalf("unexpected resize %v", s)
	default:
	}
	assert.Equal(t, 20, h.Display().Framebuffer().Width())
}

func TestRunHeadlessFrameBudget(t *testing.T) {
	var steps int
	err := RunHeadless(context.Background(), HeadlessConfig{Frames: 5, Keyboard: NewScriptedKeyboard()},
		func(HAL) (func() error, error) {
			return func() error { steps++; return nil }, nil
		})
	require.NoError(t, err)
	assert.Equal(t, 5, steps)
}

func TestRunHeadlessStop(t *testing.T) {
	var steps int
	err := RunHeadless(context.Background(), HeadlessConfig{Hz: 1000, Keyboard: NewScriptedKeyboard()},
		func(HAL) (func() error, error) {
			return func() error {
				steps++
				if steps == 3 {
					return ErrStop
				}
				return nil
			}, nil
		})
	require.NoError(t, err)
	assert.Equal(t, 3, steps)
}

func TestRunHeadlessPropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	err := RunHeadless(context.Background(), HeadlessConfig{Keyboard: NewScriptedKeyboard()},
		func(HAL) (func() error, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)

	err = RunHeadless(context.Background(), HeadlessConfig{Keyboard: NewScriptedKeyboard()},
		func(HAL) (func() error, error) { return func() error { return boom }, nil })
	assert.ErrorIs(t, err, boom)
}

func TestRunHeadlessContextCancel(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := RunHeadless(ctx, HeadlessConfig{Hz: 100, Keyboard: NewScriptedKeyboard()},
		func(HAL) (func() error, error) { return func() error { return nil }, nil })
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
