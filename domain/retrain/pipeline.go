// Package retrain recomputes camera poses for an edited image folder and
// trains a fresh model on the result, by driving two external tools.
package retrain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"
)

// ErrExternalProcess marks a failed or unlaunchable external tool.
var ErrExternalProcess = errors.New("retrain: external process failed")

// TimestampLayout names each run's output directory.
const TimestampLayout = "2006-01-02_150405"

// TrainLog names the file under the output directory that receives the
// output of detached training.
const TrainLog = "train.log"

// Default argv templates. {input} is the source image directory, {output}
// the new run directory and {config} the prior checkpoint config.
var (
	DefaultPoseCommand  = []string{"ns-process-data", "images", "--data", "{input}", "--output-dir", "{output}"}
	DefaultTrainCommand = []string{"ns-train", "splatfacto", "--data", "{output}", "--output-dir", "{output}/outputs"}
)

// OutputDir replaces the last segment of src with a timestamp of now.
func OutputDir(src string, now time.Time) string {
	return filepath.Join(filepath.Dir(filepath.Clean(src)), now.Format(TimestampLayout))
}

// Pipeline runs pose recomputation followed by training.
type Pipeline struct {
	Runner       Runner
	PoseCommand  []string
	TrainCommand []string
	// Detached launches training without waiting for it.
	Detached bool
	Now      func() time.Time
	Logger   *slog.Logger
}

// Job is a started training run. Done receives the training outcome once,
// then closes. For detached runs a nil result only means the process exited
// cleanly; the checkpoint under OutputDir is the real completion signal.
type Job struct {
	OutputDir string
	Hint      string
	// Log is the output file of detached training; empty otherwise.
	Log       string
	done      chan error
}

func (j *Job) Done() <-chan error { return j.done }

// Wait blocks until training ends or ctx is done.
func (j *Job) Wait(ctx context.Context) error {
	select {
	case err := <-j.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run executes both stages for src. Stage one always blocks; if it fails
// Run returns an ErrExternalProcess error and training never starts. When
// the pipeline is not detached, Run also blocks on training and the
// returned Job is already done.
func (p Pipeline) Run(ctx context.Context, src, checkpoint string) (*Job, error) {
	if src == "" {
		return nil, errors.New("retrain: source directory is required")
	}
	runner := p.Runner
	if runner == nil {
		runner = ExecRunner{}
	}
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	logger := p.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	poseCmd, trainCmd := p.PoseCommand, p.TrainCommand
	if len(poseCmd) == 0 {
		poseCmd = DefaultPoseCommand
	}
	if len(trainCmd) == 0 {
		trainCmd = DefaultTrainCommand
	}

	out := OutputDir(src, now())
	vars := map[string]string{"input": src, "output": out, "data": out, "config": checkpoint}

	logger.Info("recomputing poses", "input", src, "output", out)
	if err := runner.Run(ctx, Expand(poseCmd, vars)); err != nil {
		return nil, fmt.Errorf("%w: pose recomputation: %w", ErrExternalProcess, err)
	}

	job := &Job{
		OutputDir: out,
		Hint:      hint(out, checkpoint),
		done:      make(chan error, 1),
	}
	argv := Expand(trainCmd, vars)
	logger.Info("training", "output", out, "detached", p.Detached)
	if !p.Detached {
		if err := runner.Run(ctx, argv); err != nil {
			err = fmt.Errorf("%w: training: %w", ErrExternalProcess, err)
			job.done <- err
			close(job.done)
			return job, err
		}
		job.done <- nil
		close(job.done)
		return job, nil
	}

	job.Log = filepath.Join(out, TrainLog)
	exit, err := runner.Start(argv, job.Log)
	if err != nil {
		return nil, fmt.Errorf("%w: training: %w", ErrExternalProcess, err)
	}
	go func() {
		defer close(job.done)
		if err := <-exit; err != nil {
			logger.Error("training failed", "output", out, "error", err)
			job.done <- fmt.Errorf("%w: training: %w", ErrExternalProcess, err)
			return
		}
		logger.Info("training exited", "output", out)
		job.done <- nil
	}()
	return job, nil
}

func hint(out, checkpoint string) string {
	h := fmt.Sprintf("new checkpoint: look for config.yml under %s", filepath.Join(out, "outputs"))
	if checkpoint != "" {
		h += fmt.Sprintf("; compare with %s", checkpoint)
	}
	return h
}
