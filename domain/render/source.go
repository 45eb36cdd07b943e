// Package render reads pre-rendered frames from disk in place of a live
// renderer. Each output type (rgb, depth, ...) is a subdirectory holding one
// image per viewpoint; a directory without image subdirectories is a single
// rgb output. Frames are addressed by output and a time in [0, 1].
package render

import (
	"errors"
	"fmt"
	"image"
	"math"
	"os"
	"path/filepath"
	"slices"
	"sort"

	"github.com/disintegration/imaging"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/soocke/compare-viewer/domain/errorvis"
)

// OutputRGB names the output of a flat frame directory.
const OutputRGB = "rgb"

const cacheSize = 16

// Extensions are the frame file types read when OpenDir gets none.
var Extensions = []string{".png", ".jpg", ".jpeg"}

// ErrNoFrames is returned when an output is unknown or holds no images.
var ErrNoFrames = errors.New("render: no frames")

// DirSource serves decoded frames from a directory tree. Not safe for
// concurrent use.
type DirSource struct {
	root    string
	exts    []string
	outputs []string
	names   map[string][]string
	flat    bool
	cache   *lru.Cache[string, image.Image]
}

// OpenDir scans root for outputs. exts filters file names; nil means
// Extensions.
func OpenDir(root string, exts []string) (*DirSource, error) {
	if len(exts) == 0 {
		exts = Extensions
	}
	cache, err := lru.New[string, image.Image](cacheSize)
	if err != nil {
		return nil, err
	}
	s := &DirSource{root: root, exts: slices.Clone(exts), cache: cache}
	if err := s.Rescan(); err != nil {
		return nil, err
	}
	return s, nil
}

// Rescan re-reads the directory tree and drops cached frames.
func (s *DirSource) Rescan() error {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	names := make(map[string][]string)
	var outputs []string
	flat := false
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		dir := filepath.Join(s.root, e.Name())
		list, err := errorvis.CommonNames(dir, dir, s.exts)
		if err != nil || len(list) == 0 {
			continue
		}
		outputs = append(outputs, e.Name())
		names[e.Name()] = list
	}
	if len(outputs) == 0 {
		list, err := errorvis.CommonNames(s.root, s.root, s.exts)
		if err != nil {
			return fmt.Errorf("render: %w", err)
		}
		if len(list) == 0 {
			return fmt.Errorf("%w in %s", ErrNoFrames, s.root)
		}
		outputs = []string{OutputRGB}
		names[OutputRGB] = list
		flat = true
	}
	sort.Strings(outputs)
	s.outputs, s.names, s.flat = outputs, names, flat
	s.cache.Purge()
	return nil
}

func (s *DirSource) Root() string { return s.root }

// Outputs lists the available output types, sorted.
func (s *DirSource) Outputs() []string { return slices.Clone(s.outputs) }

// Names lists the frame file names of output, sorted.
func (s *DirSource) Names(output string) []string { return slices.Clone(s.names[output]) }

// NameAt maps t in [0, 1] onto the frames of output.
func (s *DirSource) NameAt(output string, t float64) (string, error) {
	list := s.names[output]
	if len(list) == 0 {
		return "", fmt.Errorf("%w: output %q", ErrNoFrames, output)
	}
	t = min(max(t, 0), 1)
	return list[int(math.Round(t*float64(len(list)-1)))], nil
}

// Frame loads the frame of output at time t.
func (s *DirSource) Frame(output string, t float64) (image.Image, string, error) {
	name, err := s.NameAt(output, t)
	if err != nil {
		return nil, "", err
	}
	img, err := s.Load(output, name)
	return img, name, err
}

// Load decodes one frame by name, serving repeated requests from a small
// cache.
func (s *DirSource) Load(output, name string) (image.Image, error) {
	if _, ok := s.names[output]; !ok {
		return nil, fmt.Errorf("%w: output %q", ErrNoFrames, output)
	}
	path := s.path(output, name)
	if img, ok := s.cache.Get(path); ok {
		return img, nil
	}
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	s.cache.Add(path, img)
	return img, nil
}

func (s *DirSource) path(output, name string) string {
	if s.flat {
		return filepath.Join(s.root, name)
	}
	return filepath.Join(s.root, output, name)
}
