package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

var ErrInvalid = errors.New("config: invalid")

// Job names one skeleton/atlas pair to bake.
type Job struct {
	Name     string `json:"name"`
	Skeleton string `json:"skeleton"`
	Atlas    string `json:"atlas"`
	// Texture is the page image; empty means look it up next to the atlas.
	Texture string `json:"texture"`
}

// Config holds all configurable paths and bake settings.
type Config struct {
	// Paths
	Jobs      []Job  `json:"jobs"`
	OutputDir string `json:"output_dir"`

	// Bake settings
	TextureSizeAdjustment int  `json:"texture_size_adjustment"`
	StrictBones           bool `json:"strict_bones"`

	// Output settings
	RenderSize  int   `json:"render_size"`
	Supersample int   `json:"supersample"`
	WebPQuality int   `json:"webp_quality"` // ignored: previews are lossless WebP
	Workers     int   `json:"workers"`
	Preview     *bool `json:"preview"`
	OBJ         *bool `json:"obj"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	// Job paths are relative to the config file.
	base := filepath.Dir(path)
	for i := range cfg.Jobs {
		j := &cfg.Jobs[i]
		j.Skeleton = joinRel(base, j.Skeleton)
		j.Atlas = joinRel(base, j.Atlas)
		j.Texture = joinRel(base, j.Texture)
	}
	cfg.OutputDir = joinRel(base, cfg.OutputDir)

	return cfg, nil
}

func joinRel(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Skeleton  string
	Atlas     string
	Texture   string
	OutputDir string

	Adjustment  int
	RenderSize  int
	Workers     int
	StrictBones bool
	NoPreview   bool
	NoOBJ       bool
}

// Resolve applies flags and fills in defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// A job given on the command line replaces the file's job list.
	if flags.Skeleton != "" || flags.Atlas != "" {
		c.Jobs = []Job{{
			Skeleton: flags.Skeleton,
			Atlas:    flags.Atlas,
			Texture:  flags.Texture,
		}}
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Adjustment != 0 {
		c.TextureSizeAdjustment = flags.Adjustment
	}
	if flags.RenderSize > 0 {
		c.RenderSize = flags.RenderSize
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.StrictBones {
		c.StrictBones = true
	}
	if flags.NoPreview {
		c.Preview = boolPtr(false)
	}
	if flags.NoOBJ {
		c.OBJ = boolPtr(false)
	}

	for i := range c.Jobs {
		if c.Jobs[i].Name == "" {
			c.Jobs[i].Name = jobName(c.Jobs[i].Skeleton)
		}
	}

	// Defaults
	if c.OutputDir == "" {
		c.OutputDir = "baked"
	}
	if c.TextureSizeAdjustment == 0 {
		c.TextureSizeAdjustment = 2
	}
	if c.RenderSize <= 0 {
		c.RenderSize = 512
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.WebPQuality <= 0 {
		c.WebPQuality = 90
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Preview == nil {
		c.Preview = boolPtr(true)
	}
	if c.OBJ == nil {
		c.OBJ = boolPtr(true)
	}
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	if c.TextureSizeAdjustment < 1 || c.TextureSizeAdjustment > 10 {
		return fmt.Errorf("%w: texture_size_adjustment %d not in [1,10]", ErrInvalid, c.TextureSizeAdjustment)
	}
	if c.WebPQuality > 100 {
		return fmt.Errorf("%w: webp_quality %d not in [1,100]", ErrInvalid, c.WebPQuality)
	}
	for i, j := range c.Jobs {
		if j.Skeleton == "" {
			return fmt.Errorf("%w: job %d: missing skeleton path", ErrInvalid, i)
		}
		if j.Atlas == "" {
			return fmt.Errorf("%w: job %d: missing atlas path", ErrInvalid, i)
		}
	}
	return nil
}

// PreviewEnabled reports whether WebP previews are written.
func (c *Config) PreviewEnabled() bool { return c.Preview == nil || *c.Preview }

// OBJEnabled reports whether OBJ/MTL files are written.
func (c *Config) OBJEnabled() bool { return c.OBJ == nil || *c.OBJ }

func jobName(skeletonPath string) string {
	base := filepath.Base(skeletonPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func boolPtr(b bool) *bool { return &b }
