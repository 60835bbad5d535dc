package hal

import (
	"context"
	"sync"
)

type mergedKeyboard struct {
	ch   chan KeyEvent
	srcs []Keyboard
}

// MergeKeyboards fans the events of several keyboards into one. The merged
// channel closes once every source has closed or ctx is done.
func MergeKeyboards(ctx context.Context, kbds ...Keyboard) Keyboard {
	m := &mergedKeyboard{ch: make(chan KeyEvent, 64), srcs: kbds}
	var wg sync.WaitGroup
	for _, k := range kbds {
		wg.Add(1)
		go func(src <-chan KeyEvent) {
			defer wg.Done()
			for {
				select {
				case ev, ok := <-src:
					if !ok {
						return
					}
					select {
					case m.ch <- ev:
					case <-ctx.Done():
						return
					}
				case <-ctx.Done():
					return
				}
			}
		}(k.Events())
	}
	go func() {
		wg.Wait()
		close(m.ch)
	}()
	return m
}

func (m *mergedKeyboard) Events() <-chan KeyEvent { return m.ch }

// poll forwards the window loop's poll to sources that need it.
func (m *mergedKeyboard) poll() {
	for _, k := range m.srcs {
		if p, ok := k.(interface{ poll() }); ok {
			p.poll()
		}
	}
}
