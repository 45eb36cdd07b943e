package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	tk "modernc.org/tk9.0"

	"github.com/soocke/compare-viewer/domain/render"
	"github.com/soocke/compare-viewer/ui/theme"
	"github.com/soocke/compare-viewer/ui/view"
	"github.com/soocke/compare-viewer/ui/widget"
)

const (
	shutdownWait = 2 * time.Second
	rescanSettle = 500 * time.Millisecond
)

type app struct {
	c      *Container
	logger *slog.Logger
	title  string
	width  int
	height int

	server  *http.Server
	srvErr  chan error
	rescan  chan struct{}
	afterID string
	ctx     context.Context
	err     error
}

func NewApp(title string, width, height int, c *Container) *app {
	return &app{
		c:      c,
		logger: c.Logger,
		title:  title,
		width:  width,
		height: height,
		srvErr: make(chan error, 1),
		rescan: make(chan struct{}, 1),
	}
}

// Run serves the remote surface and drives the panel until ctx is done, the
// server fails or the local window is closed.
func (a *app) Run(ctx context.Context) error {
	a.ctx = ctx
	if a.c.Settings.Local {
		return a.runLocal()
	}
	if err := a.c.Wire(ctx, a.c.Hub, nil); err != nil {
		return err
	}
	defer a.c.Close()
	if err := a.serve(); err != nil {
		return err
	}
	a.watch()

	t := time.NewTicker(a.c.tickInterval())
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return a.shutdown()
		case err := <-a.srvErr:
			return err
		case <-t.C:
			a.tick()
		}
	}
}

func (a *app) runLocal() error {
	theme.SetDark(a.c.Config.DarkMode)
	tk.App.WmTitle(a.title)
	tk.WmProtocol(tk.App, "WM_DELETE_WINDOW", a.exitHandler)
	tk.WmGeometry(tk.App, fmt.Sprintf("%dx%d+100+100", a.width, a.height))

	root := view.NewRootView(a.logger)
	root.Build(a.exitHandler)
	if err := a.c.Wire(a.ctx, widget.Surfaces{a.c.Hub, root.Panel}, root); err != nil {
		tk.Destroy(tk.App)
		return err
	}
	defer a.c.Close()
	if err := a.serve(); err != nil {
		tk.Destroy(tk.App)
		return err
	}
	a.watch()

	a.scheduleUpdate()
	tk.App.Wait()
	if a.err != nil {
		return a.err
	}
	return a.shutdown()
}

// tick runs one panel update on the panel goroutine.
func (a *app) tick() {
	select {
	case <-a.rescan:
		a.c.rescan()
	default:
	}
	a.c.Loop.Tick()
}

func (a *app) update() {
	if a.ctx.Err() != nil {
		a.exitHandler()
		return
	}
	select {
	case err := <-a.srvErr:
		a.err = err
		a.exitHandler()
		return
	default:
	}
	a.tick()
	a.scheduleUpdate()
}

// scheduleUpdate queues the next tick on Tk's event loop.
func (a *app) scheduleUpdate() {
	a.afterID = tk.TclAfter(a.c.tickInterval(), a.update)
}

func (a *app) exitHandler() {
	if a.afterID != "" {
		tk.TclAfterCancel(a.afterID)
		a.afterID = ""
	}
	tk.Destroy(tk.App)
}

// serve binds the listen address synchronously and serves in the background.
func (a *app) serve() error {
	addr := a.c.Config.ListenAddr
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	a.server = &http.Server{Handler: a.c.Hub.Handler(), ReadHeaderTimeout: 5 * time.Second}
	a.logger.Info("viewer listening", "addr", "http://"+ln.Addr().String())
	go func() {
		if err := a.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.srvErr <- err
		}
	}()
	return nil
}

func (a *app) shutdown() error {
	if a.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownWait)
	defer cancel()
	return a.server.Shutdown(ctx)
}

// watch requests a rescan on the panel goroutine whenever a render
// directory changes.
func (a *app) watch() {
	notify := func() {
		select {
		case a.rescan <- struct{}{}:
		default:
		}
	}
	for _, src := range a.c.Sources {
		go func() {
			if err := render.Watch(a.ctx, src.Root(), rescanSettle, notify, a.logger); err != nil {
				a.logger.Warn("frame watch disabled", "root", src.Root(), "error", err)
			}
		}()
	}
}
