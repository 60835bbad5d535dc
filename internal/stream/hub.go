// Package stream serves rendered frames to WebSocket viewers and accepts key
// input from them.
package stream

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"wirecam/hal"
	"wirecam/internal/viewer"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

const sendBuffer = 8

type client struct {
	id   string
	conn *websocket.Conn
	send chan []byte
}

// Hub broadcasts frames to every connected client. Identical consecutive frames
// are sent once. It is also a hal.Keyboard fed by client input.
type Hub struct {
	log          *zap.Logger
	writeTimeout time.Duration

	mu       sync.Mutex
	clients  map[string]*client
	last     []byte
	lastHash uint64
	closed   bool

	keys chan hal.KeyEvent
}

func NewHub(log *zap.Logger, writeTimeout time.Duration) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	if writeTimeout <= 0 {
		writeTimeout = 2 * time.Second
	}
	return &Hub{
		log:          log.Named("stream"),
		writeTimeout: writeTimeout,
		clients:      make(map[string]*client),
		keys:         make(chan hal.KeyEvent, 64),
	}
}

var _ viewer.Sink = (*Hub)(nil)

// Events returns key presses sent by clients.
func (h *Hub) Events() <-chan hal.KeyEvent { return h.keys }

// Clients reports the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Frame encodes f and queues it for every client. Slow clients miss frames
// instead of stalling the render loop.
func (h *Hub) Frame(f *viewer.Frame) error {
	msg := frameMessage(f)
	sum := contentHash(&msg)

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.last != nil && sum == h.lastHash {
		return nil
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	h.last, h.lastHash = data, sum

	for _, c := range h.clients {
		select {
		case c.send <- data:
		default:
			h.log.Debug("client lagging, frame dropped", zap.String("client", c.id), zap.Uint64("seq", f.Seq))
		}
	}
	return nil
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("upgrade", zap.Error(err))
		return
	}

	c := &client{id: uuid.NewString(), conn: conn, send: make(chan []byte, sendBuffer)}
	hello, _ := json.Marshal(Message{Type: TypeHello, ID: c.id})
	c.send <- hello

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.Close()
		return
	}
	if h.last != nil {
		c.send <- h.last
	}
	h.clients[c.id] = c
	h.mu.Unlock()

	h.log.Info("client connected", zap.String("client", c.id), zap.String("remote", conn.RemoteAddr().String()))

	go h.writeLoop(c)
	h.readLoop(c)
}

func (h *Hub) writeLoop(c *client) {
	for data := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(h.writeTimeout))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.log.Debug("write", zap.String("client", c.id), zap.Error(err))
			c.conn.Close()
			for range c.send {
			}
			return
		}
	}
	_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	c.conn.Close()
}

func (h *Hub) readLoop(c *client) {
	defer h.remove(c)
	for {
		var in Input
		if err := c.conn.ReadJSON(&in); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.log.Debug("read", zap.String("client", c.id), zap.Error(err))
			}
			return
		}
		evs, err := hal.ParseKeys(in.Keys)
		if err != nil {
			h.log.Debug("bad key script", zap.String("client", c.id), zap.Error(err))
			continue
		}
		for _, ev := range evs {
			select {
			case h.keys <- ev:
			default:
			}
		}
	}
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c.id]
	delete(h.clients, c.id)
	h.mu.Unlock()
	if ok {
		close(c.send)
		h.log.Info("client disconnected", zap.String("client", c.id))
	}
}

// Close disconnects every client and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	clients := h.clients
	h.clients = make(map[string]*client)
	h.mu.Unlock()
	for _, c := range clients {
		close(c.send)
	}
}
