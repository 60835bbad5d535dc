package hal

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

type scriptedKeyboard struct {
	ch chan KeyEvent
}

// NewScriptedKeyboard returns a keyboard that delivers evs in order and then
// closes its channel.
func NewScriptedKeyboard(evs ...KeyEvent) Keyboard {
	ch := make(chan KeyEvent, len(evs))
	for _, ev := range evs {
		ch <- ev
	}
	close(ch)
	return &scriptedKeyboard{ch: ch}
}

func (k *scriptedKeyboard) Events() <-chan KeyEvent { return k.ch }

// ParseKeys turns a key script into press events. Plain characters become runes;
// named keys are written in angle brackets, e.g. "ww<left><f9>q".
func ParseKeys(script string) ([]KeyEvent, error) {
	var evs []KeyEvent
	rest := script
	for rest != "" {
		if rest[0] != '<' {
			r, size := utf8.DecodeRuneInString(rest)
			if r == utf8.RuneError && size == 1 {
				return nil, fmt.Errorf("key script: invalid UTF-8 at byte %d", len(script)-len(rest))
			}
			evs = append(evs, KeyEvent{Press: true, Rune: r})
			rest = rest[size:]
			continue
		}
		end := strings.IndexByte(rest, '>')
		if end < 0 {
			return nil, fmt.Errorf("key script: unterminated %q", rest)
		}
		name := strings.ToLower(rest[1:end])
		rest = rest[end+1:]
		switch name {
		case "":
			// "<>" is a literal '<'.
			evs = append(evs, KeyEvent{Press: true, Rune: '<'})
		case "space":
			evs = append(evs, KeyEvent{Press: true, Rune: ' '})
		default:
			code, ok := keyByName(name)
			if !ok {
				return nil, fmt.Errorf("key script: unknown key <%s>", name)
			}
			evs = append(evs, KeyEvent{Code: code, Press: true})
		}
	}
	return evs, nil
}

func keyByName(name string) (KeyCode, bool) {
	if name == "escape" {
		return KeyEscape, true
	}
	for code, n := range keyNames {
		if n == name {
			return code, true
		}
	}
	return KeyUnknown, false
}
