package presenter

import (
	"errors"
	"image"
	"log/slog"
	"sync"
	"time"

	"github.com/soocke/compare-viewer/domain/errorvis"
	"github.com/soocke/compare-viewer/ui/model"
)

// ErrorPanel is the part of the control panel the error presenter reads and writes.
type ErrorPanel interface {
	ErrorViewActive() bool
	ErrorParams(channels int) errorvis.Params
	SetErrorPercentage(percent float64)
}

// PreviewView displays the latest error visualization.
type PreviewView interface {
	UpdatePreview(img image.Image, percent float64)
}

type framePair struct {
	a, b image.Image
	seq  uint64
}

type errorTask struct {
	pair   framePair
	params errorvis.Params
}

type errorResult struct {
	seq      uint64
	img      image.Image
	percent  float64
	duration time.Duration
	err      error
}

// ErrorPresenter turns pairs of rendered frames into error visualizations.
//
// Submit may be called from any goroutine; the frames are processed on a worker and the result is applied
// by ProcessFrame, which must run on the panel goroutine.
type ErrorPresenter struct {
	Panel ErrorPanel
	Model *model.PreviewModel
	View  PreviewView

	logger *slog.Logger

	mu      sync.Mutex
	pending *framePair
	nextSeq uint64

	workCh     chan errorTask
	resultCh   chan errorResult
	workerOnce sync.Once
}

func NewErrorPresenter(panel ErrorPanel, m *model.PreviewModel, view PreviewView, logger *slog.Logger) *ErrorPresenter {
	return &ErrorPresenter{
		Panel:    panel,
		Model:    m,
		View:     view,
		logger:   logger,
		workCh:   make(chan errorTask, 1),
		resultCh: make(chan errorResult, 1),
	}
}

// Submit queues a frame pair for background processing. Only the newest
// pair is kept.
func (p *ErrorPresenter) Submit(a, b image.Image) {
	if p == nil || a == nil || b == nil {
		return
	}
	p.mu.Lock()
	p.nextSeq++
	p.pending = &framePair{a: a, b: b, seq: p.nextSeq}
	p.mu.Unlock()
}

// ProcessFrame applies a finished result, if any, and dispatches the newest
// submitted pair to the worker.
func (p *ErrorPresenter) ProcessFrame() {
	if p == nil || p.Panel == nil || p.workCh == nil {
		return
	}
	p.ensureWorker()

	select {
	case res := <-p.resultCh:
		p.handleResult(res)
	default:
	}

	p.mu.Lock()
	pair := p.pending
	p.pending = nil
	p.mu.Unlock()
	if pair == nil || !p.Panel.ErrorViewActive() {
		return
	}
	task := errorTask{pair: *pair, params: p.Panel.ErrorParams(errorvis.Channels(pair.a))}
	select {
	case p.workCh <- task:
	default:
		select {
		case <-p.workCh:
		default:
		}
		select {
		case p.workCh <- task:
		default:
		}
	}
}

// Close stops the worker. Further ProcessFrame calls are no-ops.
func (p *ErrorPresenter) Close() {
	if p == nil || p.workCh == nil {
		return
	}
	p.ensureWorker()
	close(p.workCh)
	p.workCh = nil
}

func (p *ErrorPresenter) ensureWorker() {
	p.workerOnce.Do(func() {
		go p.runWorker(p.workCh)
	})
}

func (p *ErrorPresenter) runWorker(work <-chan errorTask) {
	for task := range work {
		res := compute(task)
		select {
		case p.resultCh <- res:
		default:
			select {
			case <-p.resultCh:
			default:
			}
			select {
			case p.resultCh <- res:
			default:
			}
		}
	}
}

func compute(task errorTask) errorResult {
	start := time.Now()
	res := errorResult{seq: task.pair.seq}
	out, err := errorvis.Highlight(errorvis.FromImage(task.pair.a), errorvis.FromImage(task.pair.b), task.params)
	res.duration = time.Since(start)
	if err != nil {
		res.err = err
		return res
	}
	res.img = out.Image.ToImage()
	res.percent = out.BeyondPercent
	return res
}

func (p *ErrorPresenter) handleResult(res errorResult) {
	if res.err != nil {
		p.logFailure(res.err)
		return
	}
	// The view may have been switched off while the worker was busy.
	if !p.Panel.ErrorViewActive() {
		return
	}
	if p.logger != nil {
		p.logger.Debug("error frame", "seq", res.seq, "percent", res.percent, "duration", res.duration)
	}
	p.apply(res)
}

func (p *ErrorPresenter) apply(res errorResult) {
	p.Panel.SetErrorPercentage(res.percent)
	p.Model.Set(res.img, res.percent)
	if p.View != nil {
		p.View.UpdatePreview(res.img, res.percent)
	}
}

func (p *ErrorPresenter) logFailure(err error) {
	if p.logger == nil {
		return
	}
	if errors.Is(err, errorvis.ErrShapeMismatch) {
		p.logger.Warn("error view skipped", "error", err)
		return
	}
	p.logger.Error("error view", "error", err)
}
