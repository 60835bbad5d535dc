package stream

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wirecam/hal"
	"wirecam/internal/canvas"
	"wirecam/internal/viewer"
	"wirecam/wire3d"
)

func testFrame(seq uint64, x float64) *viewer.Frame {
	return &viewer.Frame{
		Seq:      seq,
		Camera:   wire3d.DefaultCamera(),
		Marker:   wire3d.MarkerBraille,
		Mode:     wire3d.RenderVertex,
		Shape:    "cube",
		Segments: []wire3d.Segment2{{A: wire3d.V2(-1, 0), B: wire3d.V2(x, 0)}},
		Grid:     canvas.New(4, 2, wire3d.MarkerBraille),
	}
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	u := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func read(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var m Message
	require.NoError(t, conn.ReadJSON(&m))
	return m
}

func TestHubHelloAndFrames(t *testing.T) {
	hub := NewHub(nil, time.Second)
	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn := dial(t, srv)
	hello := read(t, conn)
	assert.Equal(t, TypeHello, hello.Type)
	_, err := uuid.Parse(hello.ID)
	assert.NoError(t, err)
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, 2*time.Second, 5*time.Millisecond)

	require.NoError(t, hub.Frame(testFrame(1, 1)))
	// Same content under a new sequence number is not resent.
	require.NoError(t, hub.Frame(testFrame(2, 1)))
	require.NoError(t, hub.Frame(testFrame(3, 0.5)))

	m := read(t, conn)
	assert.Equal(t, TypeFrame, m.Type)
	assert.Equal(t, uint64(1), m.Seq)
	assert.Equal(t, "cube", m.Shape)
	assert.Equal(t, "braille", m.Marker)
	assert.Equal(t, [][4]float64{{-1, 0, 1, 0}}, m.Segments)
	require.NotNil(t, m.Camera)
	assert.Equal(t, [3]float64{0, 0, -1}, m.Camera.Position)

	m = read(t, conn)
	assert.Equal(t, uint64(3), m.Seq)
	assert.Equal(t, [][4]float64{{-1, 0, 0.5, 0}}, m.Segments)
}

func TestHubLateJoinerGetsLastFrame(t *testing.T) {
	hub := NewHub(nil, time.Second)
	srv := httptest.NewServer(hub)
	defer srv.Close()

	require.NoError(t, hub.Frame(testFrame(9, 1)))

	conn := dial(t, srv)
	assert.Equal(t, TypeHello, read(t, conn).Type)
	assert.Equal(t, uint64(9), read(t, conn).Seq)
}

func TestHubForwardsKeys(t *testing.T) {
	hub := NewHub(nil, time.Second)
	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn := dial(t, srv)
	read(t, conn)
	require.NoError(t, conn.WriteJSON(Input{Keys: "w<left>"}))

	var got []hal.KeyEvent
	timeout := time.After(2 * time.Second)
	for len(got) < 2 {
		select {
		case ev := <-hub.Events():
			got = append(got, ev)
		case <-timeout:
			t.Fatal("no key events")
		}
	}
	assert.Equal(t, []hal.KeyEvent{{Press: true, Rune: 'w'}, {Press: true, Code: hal.KeyLeft}}, got)
}

func TestHubRemovesClosedClients(t *testing.T) {
	hub := NewHub(nil, time.Second)
	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn := dial(t, srv)
	read(t, conn)
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, 2*time.Second, 5*time.Millisecond)

	conn.Close()
	assert.Eventually(t, func() bool { return hub.Clients() == 0 }, 2*time.Second, 5*time.Millisecond)
}

func TestHubCloseDisconnects(t *testing.T) {
	hub := NewHub(nil, time.Second)
	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn := dial(t, srv)
	read(t, conn)
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, 2*time.Second, 5*time.Millisecond)

	hub.Close()
	assert.Zero(t, hub.Clients())
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "got %v", err)
}

func TestRaycastFrameCarriesRows(t *testing.T) {
	f := testFrame(1, 1)
	f.Mode = wire3d.RenderRaycast
	f.Segments = nil
	f.Grid.Set(0, 0)

	m := frameMessage(f)
	assert.Nil(t, m.Segments)
	assert.Equal(t, []string{"⠁   ", "    "}, m.Rows)
}

func TestEmptyVertexFrameCarriesNoRows(t *testing.T) {
	f := testFrame(1, 1)
	f.Segments = nil
	f.Grid.Set(0, 0)

	m := frameMessage(f)
	assert.Empty(t, m.Segments)
	assert.NotNil(t, m.Segments)
	assert.Nil(t, m.Rows)
}

func TestContentHashIgnoresSeq(t *testing.T) {
	a := frameMessage(testFrame(1, 1))
	b := frameMessage(testFrame(2, 1))
	c := frameMessage(testFrame(2, 0.25))
	assert.Equal(t, contentHash(&a), contentHash(&b))
	assert.NotEqual(t, contentHash(&a), contentHash(&c))
}

func TestIndexHTMLUsesPath(t *testing.T) {
	assert.Contains(t, indexHTML("/live"), `location.host + "/live"`)
}
