// Package config loads the demo's settings from YAML.
//
// A file only needs the keys it wants to change, everything else keeps the value from Default.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidSize  = errors.New("sizes must be positive")
	ErrInvalidColor = errors.New("invalid color")
)

type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Renderer RendererConfig `yaml:"renderer"`
	Assets   AssetsConfig   `yaml:"assets"`
}

type WindowConfig struct {
	Title     string `yaml:"title"`
	Width     int32  `yaml:"width"`
	Height    int32  `yaml:"height"`
	VSync     bool   `yaml:"vsync"`
	MSAA      bool   `yaml:"msaa"`
	Resizable bool   `yaml:"resizable"`
}

type RendererConfig struct {
	AutoClear  bool  `yaml:"auto_clear"`
	ClearColor Color `yaml:"clear_color"`

	// Size of the off-screen target the demo renders into
	TargetWidth  int32 `yaml:"target_width"`
	TargetHeight int32 `yaml:"target_height"`

	// Verbose turns on resource creation logs
	Verbose bool `yaml:"verbose"`
}

type AssetsConfig struct {
	// Texture is an image file (png, jpeg, tga, bmp or webp) shown on the plane. Empty uses a generated checkerboard
	Texture string `yaml:"texture"`
	// Model is an optional model file drawn into the render target
	Model string `yaml:"model"`
	// Shader is an optional combined shader file replacing the built in one
	Shader string `yaml:"shader"`
	// Snapshot is where the render target is written as WebP when requested
	Snapshot string `yaml:"snapshot"`
}

// Color is an RGBA color with components in [0, 1].
// In YAML it is either a list of 3 or 4 numbers, or a hex string like '#336699' or '#336699ff'
type Color [4]float32

func (c *Color) UnmarshalYAML(value *yaml.Node) error {

	switch value.Kind {
	case yaml.ScalarNode:

		parsed, err := ParseHexColor(value.Value)
		if err != nil {
			return err
		}
		*c = parsed
		return nil

	case yaml.SequenceNode:

		var comps []float32
		if err := value.Decode(&comps); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidColor, err)
		}

		if len(comps) != 3 && len(comps) != 4 {
			return fmt.Errorf("%w: expected 3 or 4 components but got %d", ErrInvalidColor, len(comps))
		}

		out := Color{0, 0, 0, 1}
		copy(out[:], comps)
		*c = out
		return nil

	default:
		return fmt.Errorf("%w: line %d must be a list or a hex string", ErrInvalidColor, value.Line)
	}
}

// ParseHexColor parses '#rrggbb' or '#rrggbbaa' (the '#' is optional)
func ParseHexColor(s string) (Color, error) {

	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return Color{}, fmt.Errorf("%w: '%s' is not in the form #rrggbb or #rrggbbaa", ErrInvalidColor, s)
	}

	c := Color{0, 0, 0, 1}
	for i := 0; i < len(hex)/2; i++ {

		v, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("%w: '%s': %v", ErrInvalidColor, s, err)
		}

		c[i] = float32(v) / 255
	}

	return c, nil
}

func (c Color) RGBA() (r, g, b, a float32) {
	return c[0], c[1], c[2], c[3]
}

func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:     "fourgl",
			Width:     1280,
			Height:    720,
			VSync:     true,
			MSAA:      true,
			Resizable: true,
		},
		Renderer: RendererConfig{
			AutoClear:    true,
			ClearColor:   Color{0, 0, 0, 1},
			TargetWidth:  512,
			TargetHeight: 512,
		},
		Assets: AssetsConfig{
			Snapshot: "snapshot.webp",
		},
	}
}

// Parse overlays the YAML in data on top of Default and validates the result
func Parse(data []byte) (*Config, error) {

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Load reads and parses the config file at path
func Load(path string) (*Config, error) {

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	return Parse(data)
}

func (c *Config) Validate() error {

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window is %dx%d", ErrInvalidSize, c.Window.Width, c.Window.Height)
	}

	if c.Renderer.TargetWidth <= 0 || c.Renderer.TargetHeight <= 0 {
		return fmt.Errorf("%w: render target is %dx%d", ErrInvalidSize, c.Renderer.TargetWidth, c.Renderer.TargetHeight)
	}

	for i := 0; i < len(c.Renderer.ClearColor); i++ {
		if v := c.Renderer.ClearColor[i]; v < 0 || v > 1 {
			return fmt.Errorf("%w: clear color component %d is %v, must be in [0, 1]", ErrInvalidColor, i, v)
		}
	}

	return nil
}
