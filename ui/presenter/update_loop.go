package presenter

import (
	"log/slog"
	"time"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/soocke/compare-viewer/domain/crop"
	"github.com/soocke/compare-viewer/ui/registry"
	"github.com/soocke/compare-viewer/ui/remote"
	"github.com/soocke/compare-viewer/ui/widget"
)

// maxEventsPerTick bounds how much remote input one tick applies so a
// chatty client cannot starve the rest of the loop.
const maxEventsPerTick = 64

// RemotePanel is what the loop needs to apply remote input.
type RemotePanel interface {
	Registry() *registry.Registry
	CropHandle() crop.Handle
	HandleMoved(pos r3.Vec, q quat.Number)
}

// EventSource yields queued client messages.
type EventSource interface {
	Events() <-chan remote.Event
}

// Loop aggregates feature presenters and drives periodic updates.
//
// It applies remote input to the panel, calls Tick/ProcessFrame on the
// sub-presenters and invokes a scheduler callback. Every call happens on the
// panel goroutine. The zero value is usable (methods are nil-safe).
type Loop struct {
	Events   EventSource
	Panel    RemotePanel
	Error    *ErrorPresenter
	Retrain  *RetrainPresenter
	Schedule func()
	Logger   *slog.Logger
}

func NewLoop(events EventSource, panel RemotePanel, errs *ErrorPresenter, rt *RetrainPresenter, schedule func(), logger *slog.Logger) *Loop {
	return &Loop{Events: events, Panel: panel, Error: errs, Retrain: rt, Schedule: schedule, Logger: logger}
}

func (l *Loop) Tick() {
	if l == nil {
		return
	}
	now := time.Now()
	l.drainEvents()
	if l.Retrain != nil {
		l.Retrain.Tick(now)
	}
	if l.Error != nil {
		l.Error.ProcessFrame()
	}
	if l.Schedule != nil {
		l.Schedule()
	}
}

func (l *Loop) drainEvents() {
	if l.Events == nil || l.Panel == nil {
		return
	}
	ch := l.Events.Events()
	for range maxEventsPerTick {
		select {
		case ev, ok := <-ch:
			if !ok {
				return
			}
			l.apply(ev)
		default:
			return
		}
	}
}

func (l *Loop) apply(ev remote.Event) {
	msg := ev.Msg
	switch msg.Type {
	case remote.TypeSet, remote.TypeClick:
		w, ok := l.Panel.Registry().Lookup(msg.Name)
		if !ok {
			l.warn("unknown element", ev, nil)
			return
		}
		if msg.Type == remote.TypeClick {
			if b, ok := w.(*widget.Button); ok {
				b.Click()
				return
			}
			l.warn("click on non-button", ev, nil)
			return
		}
		if err := widget.Assign(w, msg.Value); err != nil {
			l.warn("rejected value", ev, err)
		}
	case remote.TypeHandle:
		h := l.Panel.CropHandle()
		l.Panel.HandleMoved(msg.PoseOr(h.Position, h.Orientation))
	default:
		l.warn("unexpected message", ev, nil)
	}
}

func (l *Loop) warn(event string, ev remote.Event, err error) {
	if l.Logger == nil {
		return
	}
	if err != nil {
		l.Logger.Warn(event, "client", ev.Client, "type", ev.Msg.Type, "name", ev.Msg.Name, "error", err)
		return
	}
	l.Logger.Warn(event, "client", ev.Client, "type", ev.Msg.Type, "name", ev.Msg.Name)
}
