package config

import (
	"encoding/json"
	"os"
	"slices"

	"github.com/soocke/compare-viewer/domain/errorvis"
	"github.com/soocke/compare-viewer/domain/retrain"
)

// Config holds runtime configuration for the viewer, the batch error run and
// retraining. Fields may be loaded from a JSON file and overridden by
// command-line flags.
type Config struct {
	Debug      bool    `json:"debug"`
	ListenAddr string  `json:"listen_addr"`
	ScaleRatio float64 `json:"scale_ratio"`
	TickMS     int     `json:"tick_ms"`
	DarkMode   bool    `json:"dark_mode"`

	// Error visualization
	ErrorThreshold float64 `json:"error_threshold"` // 0..1 fraction of the largest distance
	ErrorEmphasis  int     `json:"error_emphasis"`
	ErrorColor     string  `json:"error_color"`

	// Training
	MaxRes                int      `json:"max_res"`
	TrainUtil             float64  `json:"train_util"`
	DefaultCompositeDepth bool     `json:"default_composite_depth"`
	PoseCommand           []string `json:"pose_command"`
	TrainCommand          []string `json:"train_command"`
	TrainDetached         bool     `json:"train_detached"`

	// Batch
	BatchWorkers    int      `json:"batch_workers"`
	ImageExtensions []string `json:"image_extensions"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:                 false,
		ListenAddr:            "127.0.0.1:7007",
		ScaleRatio:            1,
		TickMS:                50,
		ErrorThreshold:        0.5,
		ErrorEmphasis:         0,
		ErrorColor:            "yellow",
		MaxRes:                512,
		TrainUtil:             0.85,
		DefaultCompositeDepth: true,
		PoseCommand:           slices.Clone(retrain.DefaultPoseCommand),
		TrainCommand:          slices.Clone(retrain.DefaultTrainCommand),
		TrainDetached:         true,
		BatchWorkers:          4,
		ImageExtensions:       slices.Clone(errorvis.DefaultExtensions),
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	def := DefaultConfig()
	if c.ListenAddr == "" {
		c.ListenAddr = def.ListenAddr
	}
	if c.ScaleRatio <= 0 {
		c.ScaleRatio = def.ScaleRatio
	}
	if c.TickMS <= 0 {
		c.TickMS = def.TickMS
	}
	if c.ErrorThreshold < 0 || c.ErrorThreshold > 1 {
		c.ErrorThreshold = def.ErrorThreshold
	}
	if c.ErrorEmphasis < 0 || c.ErrorEmphasis > errorvis.EmphasisMax {
		c.ErrorEmphasis = def.ErrorEmphasis
	}
	if _, ok := errorvis.PaletteColor(c.ErrorColor); !ok {
		c.ErrorColor = def.ErrorColor
	}
	if c.MaxRes < 64 || c.MaxRes > 2048 {
		c.MaxRes = def.MaxRes
	}
	if c.TrainUtil < 0 || c.TrainUtil > 1 {
		c.TrainUtil = def.TrainUtil
	}
	if len(c.PoseCommand) == 0 {
		c.PoseCommand = def.PoseCommand
	}
	if len(c.TrainCommand) == 0 {
		c.TrainCommand = def.TrainCommand
	}
	if c.BatchWorkers <= 0 {
		c.BatchWorkers = def.BatchWorkers
	}
	if len(c.ImageExtensions) == 0 {
		c.ImageExtensions = def.ImageExtensions
	}
	return nil
}

// Load attempts to read configuration from the given JSON file path. If the file does not
// exist it returns DefaultConfig(). On JSON error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return DefaultConfig(), err
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
