package hal

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Width  int
	Height int
	// Hz paces steps with a ticker; zero runs steps back to back.
	Hz int
	// Frames stops the run after that many steps; zero means unlimited.
	Frames   uint64
	Keyboard Keyboard
}

// RunHeadless runs the viewer without opening a window. It returns nil when the
// step asks to stop or the frame budget is spent.
func RunHeadless(ctx context.Context, cfg HeadlessConfig, newApp func(HAL) (func() error, error)) error {
	if cfg.Hz < 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}

	h := New(HostConfig{Width: cfg.Width, Height: cfg.Height, Keyboard: cfg.Keyboard})
	step, err := newApp(h)
	if err != nil {
		return err
	}
	if step == nil {
		return nil
	}

	var tick <-chan time.Time
	if cfg.Hz > 0 {
		t := time.NewTicker(time.Second / time.Duration(cfg.Hz))
		defer t.Stop()
		tick = t.C
	}

	var frames uint64
	for {
		if tick != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tick:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		if err := step(); err != nil {
			if errors.Is(err, ErrStop) {
				return nil
			}
			return err
		}
		frames++
		if cfg.Frames > 0 && frames >= cfg.Frames {
			return nil
		}
	}
}
