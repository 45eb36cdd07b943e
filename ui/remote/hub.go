// Package remote mirrors the control panel to browser clients over a
// websocket and tracks the connected clients' cameras.
package remote

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/soocke/compare-viewer/assets"
	"github.com/soocke/compare-viewer/domain/crop"
	"github.com/soocke/compare-viewer/ui/panel"
	"github.com/soocke/compare-viewer/ui/widget"
)

const writeWait = 5 * time.Second

// ErrClosed is returned when writing to a disconnected client.
var ErrClosed = errors.New("remote: client disconnected")

// Hub is a widget.Surface that broadcasts every widget change to all
// connected clients and queues their input as Events.
type Hub struct {
	logger   *slog.Logger
	upgrader websocket.Upgrader
	events   chan Event
	done     chan struct{}
	once     sync.Once

	mu      sync.Mutex
	clients map[string]*Client
	order   []string
	states  map[string]widget.State
	handle  *Message
}

var (
	_ widget.Surface     = (*Hub)(nil)
	_ panel.ClientSource = (*Hub)(nil)
	_ panel.Client       = (*Client)(nil)
)

// NewHub returns a hub whose event queue holds up to buffer messages.
func NewHub(logger *slog.Logger, buffer int) *Hub {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if buffer < 1 {
		buffer = 64
	}
	return &Hub{
		logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		events:  make(chan Event, buffer),
		done:    make(chan struct{}),
		clients: make(map[string]*Client),
		states:  make(map[string]widget.State),
	}
}

// Events delivers client input. Drain it from the goroutine that owns the panel.
func (h *Hub) Events() <-chan Event { return h.events }

func (h *Hub) Install(w widget.Widget) {
	st := widget.Snapshot(w)
	h.mu.Lock()
	if _, ok := h.states[st.Name]; !ok {
		h.order = append(h.order, st.Name)
	}
	h.states[st.Name] = st
	h.mu.Unlock()
	h.broadcast(Message{Type: TypeState, State: &st})
}

func (h *Hub) Update(w widget.Widget) { h.Install(w) }

// SetHandle publishes the crop handle.
func (h *Hub) SetHandle(hd crop.Handle) {
	pos := [3]float64{hd.Position.X, hd.Position.Y, hd.Position.Z}
	q := hd.Orientation
	wxyz := [4]float64{q.Real, q.Imag, q.Jmag, q.Kmag}
	vis := hd.Visible
	msg := Message{Type: TypeHandle, Position: &pos, WXYZ: &wxyz, Visible: &vis}
	h.mu.Lock()
	h.handle = &msg
	h.mu.Unlock()
	h.broadcast(msg)
}

// Clients returns a snapshot of the connected clients.
func (h *Hub) Clients() []panel.Client {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]panel.Client, 0, len(h.clients))
	for _, c := range h.clients {
		out = append(out, c)
	}
	return out
}

// Handler serves the client page at / and the websocket at /ws.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", h.serveHome)
	mux.HandleFunc("/ws", h.serveWS)
	return mux
}

// Close disconnects every client and stops queuing events.
func (h *Hub) Close() {
	h.once.Do(func() { close(h.done) })
	for _, c := range h.Clients() {
		c.(*Client).close()
	}
}

func (h *Hub) serveHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(assets.ClientHTML)
}

func (h *Hub) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	c := &Client{id: uuid.NewString(), conn: conn}

	h.mu.Lock()
	tree := make([]widget.State, 0, len(h.order))
	for _, name := range h.order {
		tree = append(tree, h.states[name])
	}
	handle := h.handle
	h.clients[c.id] = c
	h.mu.Unlock()
	h.logger.Info("client connected", "client", c.id)

	defer func() {
		h.mu.Lock()
		delete(h.clients, c.id)
		h.mu.Unlock()
		c.close()
		h.logger.Info("client disconnected", "client", c.id)
	}()

	if err := c.send(Message{Type: TypeTree, Tree: tree}); err != nil {
		return
	}
	if handle != nil {
		if err := c.send(*handle); err != nil {
			return
		}
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			h.logger.Warn("bad client message", "client", c.id, "error", err)
			continue
		}
		if msg.Type == TypeCamera {
			c.updateCamera(msg)
			continue
		}
		select {
		case h.events <- Event{Client: c.id, Msg: msg}:
		case <-h.done:
			return
		}
	}
}

func (h *Hub) broadcast(msg Message) {
	for _, c := range h.Clients() {
		cl := c.(*Client)
		if err := cl.send(msg); err != nil {
			h.logger.Warn("dropping client", "client", cl.id, "error", err)
			cl.close()
		}
	}
}

// Client is one websocket connection.
type Client struct {
	id   string
	conn *websocket.Conn

	writeMu sync.Mutex

	mu     sync.Mutex
	cam    panel.Camera
	hasCam bool
	closed bool
}

func (c *Client) ID() string { return c.id }

// Camera returns the last camera the client reported.
func (c *Client) Camera() (panel.Camera, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return panel.Camera{}, ErrClosed
	}
	if !c.hasCam {
		return panel.Camera{}, errors.New("remote: client has not reported a camera")
	}
	return c.cam, nil
}

// SetUpDirection tells the client's orbit controls which way is up.
func (c *Client) SetUpDirection(up r3.Vec) error {
	u := [3]float64{up.X, up.Y, up.Z}
	return c.send(Message{Type: TypeUp, Up: &u})
}

// updateCamera applies a camera message over the last known camera.
func (c *Client) updateCamera(msg Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	prev := c.cam
	if !c.hasCam {
		prev.Orientation = quat.Number{Real: 1}
	}
	pos, q := msg.PoseOr(prev.Position, prev.Orientation)
	c.cam = panel.Camera{Position: pos, Orientation: q}
	c.hasCam = true
}

func (c *Client) send(msg Message) error {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return ErrClosed
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

func (c *Client) close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()
	_ = c.conn.Close()
}
