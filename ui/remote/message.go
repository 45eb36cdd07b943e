package remote

import (
	"encoding/json"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/soocke/compare-viewer/ui/widget"
)

// Message types. Server to client: tree, state, handle, up.
// Client to server: set, click, camera, handle.
const (
	TypeTree   = "tree"
	TypeState  = "state"
	TypeHandle = "handle"
	TypeUp     = "up"
	TypeSet    = "set"
	TypeClick  = "click"
	TypeCamera = "camera"
)

// Message is the single JSON envelope exchanged over the websocket.
type Message struct {
	Type     string          `json:"type"`
	Name     string          `json:"name,omitempty"`
	Value    json.RawMessage `json:"value,omitempty"`
	State    *widget.State   `json:"state,omitempty"`
	Tree     []widget.State  `json:"tree,omitempty"`
	Position *[3]float64     `json:"position,omitempty"`
	WXYZ     *[4]float64     `json:"wxyz,omitempty"`
	Visible  *bool           `json:"visible,omitempty"`
	Up       *[3]float64     `json:"up,omitempty"`
}

// Event is a client message queued for the panel goroutine.
type Event struct {
	Client string
	Msg    Message
}

// PoseOr decodes the position and orientation carried by camera and handle
// messages. A part the message leaves out is taken from pos or q.
func (m Message) PoseOr(pos r3.Vec, q quat.Number) (r3.Vec, quat.Number) {
	if p := m.Position; p != nil {
		pos = r3.Vec{X: p[0], Y: p[1], Z: p[2]}
	}
	if w := m.WXYZ; w != nil {
		q = quat.Number{Real: w[0], Imag: w[1], Jmag: w[2], Kmag: w[3]}
	}
	return pos, q
}
