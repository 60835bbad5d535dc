package hal

import (
	"bufio"
	"context"
	"io"
)

type streamKeyboard struct {
	ch chan KeyEvent
}

// NewStreamKeyboard decodes VT100 key sequences read from r. The channel closes
// when r is exhausted or ctx is done. A terminal in cooked mode delivers input a
// line at a time.
func NewStreamKeyboard(ctx context.Context, r io.Reader) Keyboard {
	k := &streamKeyboard{ch: make(chan KeyEvent, 64)}
	go k.run(ctx, bufio.NewReader(r))
	return k
}

func (k *streamKeyboard) Events() <-chan KeyEvent { return k.ch }

func (k *streamKeyboard) run(ctx context.Context, br *bufio.Reader) {
	defer close(k.ch)
	for {
		ev, err := readKey(br)
		if err != nil {
			return
		}
		if ev.Code == KeyUnknown && ev.Rune == 0 {
			continue
		}
		select {
		case k.ch <- ev:
		case <-ctx.Done():
			return
		}
	}
}

var csiTilde = map[string]KeyCode{
	"3":  KeyDelete,
	"15": KeyF5,
	"17": KeyF6,
	"18": KeyF7,
	"19": KeyF8,
	"20": KeyF9,
}

func readKey(br *bufio.Reader) (KeyEvent, error) {
	r, _, err := br.ReadRune()
	if err != nil {
		return KeyEvent{}, err
	}
	switch r {
	case 0x1b:
		return readEscape(br)
	case '\r', '\n':
		return KeyEvent{Code: KeyEnter, Press: true}, nil
	case '\t':
		return KeyEvent{Code: KeyTab, Press: true}, nil
	case 0x7f, 0x08:
		return KeyEvent{Code: KeyBackspace, Press: true}, nil
	}
	return KeyEvent{Press: true, Rune: r}, nil
}

// readEscape decodes the sequence after ESC. A lone ESC with nothing buffered
// behind it is the Escape key.
func readEscape(br *bufio.Reader) (KeyEvent, error) {
	if br.Buffered() == 0 {
		return KeyEvent{Code: KeyEscape, Press: true}, nil
	}
	intro, err := br.ReadByte()
	if err != nil {
		return KeyEvent{Code: KeyEscape, Press: true}, nil
	}
	switch intro {
	case 'O':
		b, err := br.ReadByte()
		if err != nil {
			return KeyEvent{}, err
		}
		switch b {
		case 'P':
			return KeyEvent{Code: KeyF1, Press: true}, nil
		case 'Q':
			return KeyEvent{Code: KeyF2, Press: true}, nil
		case 'R':
			return KeyEvent{Code: KeyF3, Press: true}, nil
		case 'S':
			return KeyEvent{Code: KeyF4, Press: true}, nil
		}
		return KeyEvent{}, nil
	case '[':
		var params []byte
		for {
			b, err := br.ReadByte()
			if err != nil {
				return KeyEvent{}, err
			}
			if b >= '0' && b <= '9' || b == ';' {
				params = append(params, b)
				continue
			}
			return csiKey(string(params), b), nil
		}
	}
	// ESC followed by something else: report Escape and keep the byte for the next read.
	_ = br.UnreadByte()
	return KeyEvent{Code: KeyEscape, Press: true}, nil
}

func csiKey(params string, final byte) KeyEvent {
	switch final {
	case 'A':
		return KeyEvent{Code: KeyUp, Press: true}
	case 'B':
		return KeyEvent{Code: KeyDown, Press: true}
	case 'C':
		return KeyEvent{Code: KeyRight, Press: true}
	case 'D':
		return KeyEvent{Code: KeyLeft, Press: true}
	case 'H':
		return KeyEvent{Code: KeyHome, Press: true}
	case 'F':
		return KeyEvent{Code: KeyEnd, Press: true}
	case '~':
		if code, ok := csiTilde[params]; ok {
			return KeyEvent{Code: code, Press: true}
		}
	}
	return KeyEvent{}
}
