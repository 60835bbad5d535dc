package hal

// HostConfig sizes the host framebuffer and picks its keyboard.
type HostConfig struct {
	Width  int
	Height int

	// Keyboard replaces the window keyboard, e.g. with a scripted or stdin one.
	Keyboard Keyboard
}

// NewWindowKeyboard returns the keyboard fed by the desktop window. It only
// produces events while RunWindow is running.
func NewWindowKeyboard() Keyboard { return newHostKeyboard() }

type hostHAL struct {
	fb      *hostFramebuffer
	kbd     Keyboard
	resizes chan Size
}

// New returns a host HAL implementation.
func New(cfg HostConfig) HAL {
	if cfg.Width <= 0 {
		cfg.Width = 320
	}
	if cfg.Height <= 0 {
		cfg.Height = 180
	}
	kbd := cfg.Keyboard
	if kbd == nil {
		kbd = newHostKeyboard()
	}
	return &hostHAL{
		fb:      newHostFramebuffer(cfg.Width, cfg.Height),
		kbd:     kbd,
		resizes: make(chan Size, 4),
	}
}

func (h *hostHAL) Display() Display { return hostDisplay{h: h} }
func (h *hostHAL) Input() Input     { return hostInput{kbd: h.kbd} }

// resize reallocates the framebuffer and reports the new size, dropping the
// report when the consumer lags behind.
func (h *hostHAL) resize(w, ht int) {
	if !h.fb.resize(w, ht) {
		return
	}
	select {
	case h.resizes <- Size{W: h.fb.width, H: h.fb.height}:
	default:
	}
}

// poll pumps window input into the keyboard channel if the keyboard needs it.
func (h *hostHAL) poll() {
	if p, ok := h.kbd.(interface{ poll() }); ok {
		p.poll()
	}
}

type hostDisplay struct {
	h *hostHAL
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.h.fb }
func (d hostDisplay) Resizes() <-chan Size     { return d.h.resizes }

type hostInput struct {
	kbd Keyboard
}

func (in hostInput) Keyboard() Keyboard { return in.kbd }
