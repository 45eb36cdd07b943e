package presenter

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/soocke/compare-viewer/domain/retrain"
)

// JobModel tracks the state of the single retrain job.
type JobModel interface {
	Start(now time.Time) bool
	SetOutputDir(dir string)
	Finish(err error, now time.Time)
	Running() bool
	Status(now time.Time) (dir string, elapsed time.Duration, err error)
}

// Launcher narrows what the presenter needs from retrain.Pipeline.
type Launcher interface {
	Run(ctx context.Context, src, checkpoint string) (*retrain.Job, error)
}

// RetrainControl is the panel side of retraining.
type RetrainControl interface {
	SetRetrainEnabled(bool)
}

// RetrainStatusView displays a one-line job summary.
type RetrainStatusView interface {
	SetRetrainStatus(text string)
}

// RetrainPresenter starts retrain jobs from the panel and tracks them.
type RetrainPresenter struct {
	model      JobModel
	launcher   Launcher
	control    RetrainControl
	logger     *slog.Logger
	src        string
	checkpoint string

	// ctx bounds the pose stage and synchronous training.
	ctx    context.Context
	finish chan struct{}

	// View is optional; Tick pushes status changes into it.
	View       RetrainStatusView
	lastStatus string
}

func NewRetrainPresenter(ctx context.Context, model JobModel, launcher Launcher, control RetrainControl, src, checkpoint string, logger *slog.Logger) *RetrainPresenter {
	if ctx == nil {
		ctx = context.Background()
	}
	return &RetrainPresenter{
		model:      model,
		launcher:   launcher,
		control:    control,
		logger:     logger,
		src:        src,
		checkpoint: checkpoint,
		ctx:        ctx,
		finish:     make(chan struct{}, 1),
	}
}

// Retrain launches the pipeline unless a job is already running. The pose
// stage blocks, so the pipeline runs on its own goroutine and the panel is
// updated from Tick.
func (r *RetrainPresenter) Retrain() {
	if r == nil || r.model == nil || r.launcher == nil {
		return
	}
	if !r.model.Start(time.Now()) {
		if r.logger != nil {
			r.logger.Info("retrain already running")
		}
		return
	}
	r.setEnabled(false)
	go r.run()
}

func (r *RetrainPresenter) run() {
	defer func() {
		select {
		case r.finish <- struct{}{}:
		default:
		}
	}()
	if r.logger != nil {
		r.logger.Info("retrain started", "data", r.src, "checkpoint", r.checkpoint)
	}
	job, err := r.launcher.Run(r.ctx, r.src, r.checkpoint)
	if err != nil {
		r.model.Finish(err, time.Now())
		if r.logger != nil {
			r.logger.Error("retrain failed", "error", err)
		}
		return
	}
	r.model.SetOutputDir(job.OutputDir)
	if r.logger != nil {
		r.logger.Info("training", "output", job.OutputDir, "log", job.Log, "hint", job.Hint)
	}
	err = job.Wait(r.ctx)
	r.model.Finish(err, time.Now())
	if r.logger == nil {
		return
	}
	if err != nil {
		r.logger.Error("training failed", "output", job.OutputDir, "error", err)
		return
	}
	r.logger.Info("training finished", "output", job.OutputDir)
}

// Tick re-enables the retrain button once the job is done and refreshes
// the status view. Must run on the panel goroutine.
func (r *RetrainPresenter) Tick(now time.Time) {
	if r == nil || r.model == nil {
		return
	}
	select {
	case <-r.finish:
		if !r.model.Running() {
			r.setEnabled(true)
		}
	default:
	}
	if r.View == nil {
		return
	}
	status := r.Status(now)
	if status != r.lastStatus {
		r.lastStatus = status
		r.View.SetRetrainStatus(status)
	}
}

// Status summarizes the job for display.
func (r *RetrainPresenter) Status(now time.Time) string {
	if r == nil || r.model == nil {
		return "Retrain: idle"
	}
	running := r.model.Running()
	dir, elapsed, err := r.model.Status(now)
	elapsed = elapsed.Truncate(time.Second)
	switch {
	case running && dir == "":
		return fmt.Sprintf("Retrain: recomputing poses (%s)", elapsed)
	case running:
		return fmt.Sprintf("Retrain: training %s (%s)", dir, elapsed)
	case err != nil:
		return fmt.Sprintf("Retrain: failed: %v", err)
	case dir != "":
		return fmt.Sprintf("Retrain: finished %s (%s)", dir, elapsed)
	}
	return "Retrain: idle"
}

func (r *RetrainPresenter) setEnabled(b bool) {
	if r.control != nil {
		r.control.SetRetrainEnabled(b)
	}
}
