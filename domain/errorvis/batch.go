package errorvis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/disintegration/imaging"

	// Extra decoders so renders exported as TIFF or WebP can be compared too.
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DefaultExtensions are the file types a batch picks up when none are given.
var DefaultExtensions = []string{".jpg"}

// Batch describes one directory-pair comparison run.
type Batch struct {
	RGBDir     string // renders used as the base image
	GTDir      string // reference renders
	OutDir     string // recreated before every run
	Params     Params
	Extensions []string
	Workers    int
	Logger     *slog.Logger
	// Progress, when set, is called once per finished pair (processed or skipped).
	Progress func(name string)
}

// Skip records a pair that produced no output.
type Skip struct {
	Name string
	Err  error
}

// Report summarizes a batch run.
type Report struct {
	Processed []string
	Skipped   []Skip
}

// DefaultOutDir returns the "error" directory next to rgbDir.
func DefaultOutDir(rgbDir string) string {
	return filepath.Join(filepath.Dir(filepath.Clean(rgbDir)), "error")
}

// CommonNames lists the file names present in both directories whose
// extension is in exts (case-insensitive), sorted.
func CommonNames(dirA, dirB string, exts []string) ([]string, error) {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	a, err := listImages(dirA, exts)
	if err != nil {
		return nil, err
	}
	b, err := listImages(dirB, exts)
	if err != nil {
		return nil, err
	}
	var out []string
	for name := range a {
		if b[name] {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out, nil
}

func listImages(dir string, exts []string) (map[string]bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}
	out := make(map[string]bool, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		for _, want := range exts {
			if ext == strings.ToLower(want) {
				out[e.Name()] = true
				break
			}
		}
	}
	return out, nil
}

// ComputeDir writes one highlighted error image per common file name.
// Pairs that fail (shape mismatch, undecodable file) are logged and listed in
// the report; they never stop the rest of the batch. The returned error is
// reserved for run-level problems: unreadable directories, an output
// directory that cannot be recreated, or cancellation.
func ComputeDir(ctx context.Context, b Batch) (Report, error) {
	var rep Report
	if err := checkOutDir(b); err != nil {
		return rep, err
	}
	names, err := CommonNames(b.RGBDir, b.GTDir, b.Extensions)
	if err != nil {
		return rep, err
	}
	if err := recreateDir(b.OutDir); err != nil {
		return rep, err
	}
	workers := b.Workers
	if workers < 1 {
		workers = 1
	}

	type outcome struct {
		name string
		err  error
	}
	tasks := make(chan string, workers)
	results := make(chan outcome, workers*2)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for name := range tasks {
				results <- outcome{name: name, err: b.processPair(name)}
			}
		}()
	}

	go func() {
		defer close(tasks)
		for _, name := range names {
			select {
			case tasks <- name:
			case <-ctx.Done():
				return
			}
		}
	}()
	go func() {
		wg.Wait()
		close(results)
	}()

	for res := range results {
		if res.err != nil {
			rep.Skipped = append(rep.Skipped, Skip{Name: res.name, Err: res.err})
			if b.Logger != nil {
				if errors.Is(res.err, ErrShapeMismatch) {
					b.Logger.Warn("image shapes do not match", "name", res.name, "error", res.err)
				} else {
					b.Logger.Error("error image failed", "name", res.name, "error", res.err)
				}
			}
		} else {
			rep.Processed = append(rep.Processed, res.name)
			if b.Logger != nil {
				b.Logger.Debug("error image saved", "name", res.name)
			}
		}
		if b.Progress != nil {
			b.Progress(res.name)
		}
	}
	sort.Strings(rep.Processed)
	sort.Slice(rep.Skipped, func(i, j int) bool { return rep.Skipped[i].Name < rep.Skipped[j].Name })
	if err := ctx.Err(); err != nil {
		return rep, err
	}
	return rep, nil
}

func (b Batch) processPair(name string) error {
	a, err := imaging.Open(filepath.Join(b.RGBDir, name))
	if err != nil {
		return fmt.Errorf("open rgb: %w", err)
	}
	g, err := imaging.Open(filepath.Join(b.GTDir, name))
	if err != nil {
		return fmt.Errorf("open gt: %w", err)
	}
	res, err := Highlight(FromImage(a), FromImage(g), b.Params)
	if err != nil {
		return err
	}
	return imaging.Save(res.Image.ToImage(), outputPath(b.OutDir, name), imaging.JPEGQuality(95))
}

// outputPath keeps the input name unless imaging cannot encode that format,
// in which case the image is written as PNG.
func outputPath(dir, name string) string {
	if _, err := imaging.FormatFromFilename(name); err != nil {
		name = strings.TrimSuffix(name, filepath.Ext(name)) + ".png"
	}
	return filepath.Join(dir, name)
}

func checkOutDir(b Batch) error {
	if b.OutDir == "" {
		return errors.New("errorvis: output directory is required")
	}
	out := filepath.Clean(b.OutDir)
	if out == filepath.Clean(b.RGBDir) || out == filepath.Clean(b.GTDir) {
		return fmt.Errorf("errorvis: output directory %s would overwrite an input directory", b.OutDir)
	}
	return nil
}

func recreateDir(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("clear %s: %w", dir, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	return nil
}
