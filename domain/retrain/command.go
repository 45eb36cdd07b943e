package retrain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// stderrTail bounds how much captured stderr goes into an error message.
const stderrTail = 2048

// SafeCommand wraps exec.Cmd with a buffer catching stderr, so a failing
// tool's own diagnostics survive into the returned error.
type SafeCommand struct {
	*exec.Cmd
	Stderr *bytes.Buffer
}

// NewSafeCommand prepares argv[0] with the remaining arguments. The process
// is killed if ctx is done before it exits.
func NewSafeCommand(ctx context.Context, argv ...string) *SafeCommand {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	stderr := &bytes.Buffer{}
	cmd.Stderr = stderr
	return &SafeCommand{Cmd: cmd, Stderr: stderr}
}

// explain wraps err with the tail of the captured stderr. Call only after
// the process has exited.
func (s *SafeCommand) explain(err error) error {
	if err == nil {
		return nil
	}
	return explainOutput(s.Path, s.Stderr.String(), err)
}

func explainOutput(path, out string, err error) error {
	msg := strings.TrimSpace(out)
	if len(msg) > stderrTail {
		msg = "..." + msg[len(msg)-stderrTail:]
	}
	if msg == "" {
		return fmt.Errorf("%s: %w", path, err)
	}
	return fmt.Errorf("%s: %w: %s", path, err, msg)
}

// logTail reads at most stderrTail bytes from the end of the file at path.
func logTail(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()
	if fi, err := f.Stat(); err == nil && fi.Size() > stderrTail {
		if _, err := f.Seek(-stderrTail, io.SeekEnd); err != nil {
			return ""
		}
	}
	b, _ := io.ReadAll(f)
	return string(b)
}

// Runner executes external tools.
type Runner interface {
	// Run blocks until the process exits.
	Run(ctx context.Context, argv []string) error
	// Start launches the process with stdout and stderr appended to the
	// file at logPath and returns a channel that receives its exit result
	// once. The process is not tied to any context and keeps running after
	// the caller exits.
	Start(argv []string, logPath string) (<-chan error, error)
}

// ExecRunner runs tools as OS processes.
type ExecRunner struct{}

var _ Runner = ExecRunner{}

var errEmptyCommand = errors.New("retrain: empty command")

func (ExecRunner) Run(ctx context.Context, argv []string) error {
	if len(argv) == 0 {
		return errEmptyCommand
	}
	cmd := NewSafeCommand(ctx, argv...)
	return cmd.explain(cmd.Run())
}

func (ExecRunner) Start(argv []string, logPath string) (<-chan error, error) {
	if len(argv) == 0 {
		return nil, errEmptyCommand
	}
	if logPath == "" {
		return nil, errors.New("retrain: log path is required")
	}
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return nil, err
	}
	logFile, err := os.Create(logPath)
	if err != nil {
		return nil, err
	}
	// An *os.File is handed to the child as its own descriptor, so no pipe
	// ties the child's output to this process.
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdout = logFile
	cmd.Stderr = logFile
	err = cmd.Start()
	logFile.Close()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", argv[0], err)
	}
	done := make(chan error, 1)
	go func() {
		if err := cmd.Wait(); err != nil {
			done <- explainOutput(cmd.Path, logTail(logPath), err)
		} else {
			done <- nil
		}
		close(done)
	}()
	return done, nil
}

// Expand substitutes {name} placeholders in every argument.
func Expand(template []string, vars map[string]string) []string {
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	r := strings.NewReplacer(pairs...)
	out := make([]string, len(template))
	for i, arg := range template {
		out[i] = r.Replace(arg)
	}
	return out
}
