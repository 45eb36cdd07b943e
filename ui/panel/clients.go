package panel

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/soocke/compare-viewer/domain/crop"
)

// Camera is a connected client's viewpoint.
type Camera struct {
	Position    r3.Vec
	Orientation quat.Number
}

// Client is one connected remote viewer. Methods fail once the client has
// disconnected.
type Client interface {
	ID() string
	Camera() (Camera, error)
	SetUpDirection(up r3.Vec) error
}

// ClientSource returns a snapshot of the connected clients.
type ClientSource interface {
	Clients() []Client
}

// ResetCamera sets every client's orbit up direction to its camera's
// current up vector. Clients that fail are logged and skipped; the joined
// failures are returned for reporting only.
func (p *Panel) ResetCamera() error {
	var errs []error
	for _, c := range p.clients() {
		cam, err := c.Camera()
		if err == nil {
			up := r3.Rotation(cam.Orientation).Rotate(r3.Vec{Y: -1})
			err = c.SetUpDirection(up)
		}
		if err != nil {
			p.opts.Logger.Warn("skipping client", "client", c.ID(), "error", err)
			errs = append(errs, fmt.Errorf("client %s: %w", c.ID(), err))
		}
	}
	return errors.Join(errs...)
}

// InsertCamera records the camera of every connected client.
func (p *Panel) InsertCamera() ([]Camera, error) {
	var (
		cams []Camera
		errs []error
	)
	for _, c := range p.clients() {
		cam, err := c.Camera()
		if err != nil {
			p.opts.Logger.Warn("skipping client", "client", c.ID(), "error", err)
			errs = append(errs, fmt.Errorf("client %s: %w", c.ID(), err))
			continue
		}
		p.opts.Logger.Info("client camera",
			"client", c.ID(),
			"x", cam.Position.X, "y", cam.Position.Y, "z", cam.Position.Z,
			"wxyz", []float64{cam.Orientation.Real, cam.Orientation.Imag, cam.Orientation.Jmag, cam.Orientation.Kmag},
		)
		cams = append(cams, cam)
	}
	return cams, errors.Join(errs...)
}

func (p *Panel) clients() []Client {
	if p.opts.Clients == nil {
		return nil
	}
	return p.opts.Clients.Clients()
}

// HandleMoved writes a dragged crop handle back into the center and
// rotation fields without re-running their callbacks. The new handle is
// still reported through HandleChanged.
func (p *Panel) HandleMoved(pos r3.Vec, q quat.Number) {
	box := p.crop.HandleMoved(pos, q)
	p.cropCenter.Force(box.Center)
	p.cropRot.Force(box.RPY)
	p.handleChanged()
	p.rerender()
}

// CropBox returns the oriented crop box in world units.
func (p *Panel) CropBox() crop.Box { return p.crop.Box() }

func (p *Panel) CropHandle() crop.Handle { return p.crop.Handle() }
