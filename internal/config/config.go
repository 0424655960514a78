// Package config holds the application settings: compiled-in defaults, an optional JSON
// overlay and command-line overrides.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/Carmen-Shannon/oxy-waddle/internal/assets"
	"github.com/Carmen-Shannon/oxy-waddle/internal/waddle"
	"github.com/Carmen-Shannon/oxy-waddle/internal/world"
)

// Window holds the window settings.
type Window struct {
	Title      string  `json:"title"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	FrameLimit float64 `json:"frame_limit"`
	Resizable  bool    `json:"resizable"`
	MinWidth   int     `json:"min_width"`
	MinHeight  int     `json:"min_height"`
	MaxWidth   int     `json:"max_width"`
	MaxHeight  int     `json:"max_height"`
}

// Graphics holds the renderer settings.
type Graphics struct {
	VSync bool `json:"vsync"`
	// MSAA is the sample count: 1 (off), 4, 8 or 16. Zero means off.
	MSAA int `json:"msaa"`
	// Software requests a fallback adapter such as lavapipe or SwiftShader.
	Software bool `json:"software"`
}

// Config holds every setting of the application. It is built once at startup and read
// only after that.
type Config struct {
	Window   Window   `json:"window"`
	Graphics Graphics `json:"graphics"`

	// AssetDir is the directory asset paths resolve against.
	AssetDir string `json:"asset_dir"`
	// Seed drives shape placement and pick colors. Zero means time-based.
	Seed    uint64 `json:"seed"`
	Profile bool   `json:"profile"`
	Workers int    `json:"workers"`

	Waddle waddle.Config `json:"waddle"`
	Assets assets.Config `json:"assets"`
	World  world.Config  `json:"world"`
}

// Default returns the compiled-in settings.
func Default() Config {
	return Config{
		Window: Window{
			Title:     "oxy-waddle",
			Width:     1280,
			Height:    720,
			Resizable: true,
			MinWidth:  600,
			MinHeight: 200,
			MaxWidth:  3840,
			MaxHeight: 2160,
		},
		Graphics: Graphics{VSync: true, MSAA: 4},
		AssetDir: ".",
		Workers:  2,
		Waddle:   waddle.DefaultConfig(),
		Assets:   assets.DefaultConfig(),
		World:    world.DefaultConfig(),
	}
}

// Load reads a JSON file over the defaults. Fields the file does not set keep their
// default values.
//
// Parameters:
//   - path: the JSON file; empty returns the defaults
//
// Returns:
//   - Config: the merged settings
//   - error: error if the file cannot be read or parsed
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	AssetDir string
	Seed     uint64
	Profile  bool
	Attach   string
	Workers  int
}

// Resolve applies CLI overrides and fills in derived defaults.
// Flags take priority when non-zero/non-empty.
//
// Parameters:
//   - flags: the parsed command line
//
// Returns:
//   - error: error if a flag value is invalid
func (c *Config) Resolve(flags Flags) error {
	if flags.AssetDir != "" {
		c.AssetDir = flags.AssetDir
	}
	if flags.Seed != 0 {
		c.Seed = flags.Seed
	}
	if flags.Profile {
		c.Profile = true
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Attach != "" {
		p, err := assets.ParseAttachPolicy(flags.Attach)
		if err != nil {
			return err
		}
		c.Assets.Attach = p
	}

	if c.AssetDir == "" {
		c.AssetDir = "."
	}
	if c.Workers <= 0 {
		c.Workers = min(runtime.NumCPU(), 4)
	}
	return nil
}

// Validate reports every setting that cannot work.
//
// Returns:
//   - error: the joined problems, or nil
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("config: window size %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Window.FrameLimit < 0 {
		errs = append(errs, fmt.Errorf("config: negative frame limit %v", c.Window.FrameLimit))
	}
	switch c.Graphics.MSAA {
	case 0, 1, 4, 8, 16:
	default:
		errs = append(errs, fmt.Errorf("config: msaa %d not one of 1, 4, 8, 16", c.Graphics.MSAA))
	}
	if err := c.Waddle.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Assets.PenguinOBJ == "" || c.Assets.HatOBJ == "" {
		errs = append(errs, errors.New("config: penguin and hat models are required"))
	}
	if c.Assets.LegMarker == "" {
		errs = append(errs, errors.New("config: leg marker is required"))
	}
	if f := c.World.Fog; f.Far <= f.Near {
		errs = append(errs, fmt.Errorf("config: fog far %v not beyond near %v", f.Far, f.Near))
	}
	if cam := c.World.Camera; cam.Near <= 0 || cam.Far <= cam.Near {
		errs = append(errs, fmt.Errorf("config: camera range %v..%v", cam.Near, cam.Far))
	}
	return errors.Join(errs...)
}
