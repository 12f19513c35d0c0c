package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestParseOverlaysDefaults(t *testing.T) {

	cfg, err := Parse([]byte(`
window:
  title: demo
  width: 640
renderer:
  clear_color: [0.5, 0.25, 0]
assets:
  texture: tex.png
`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	def := Default()

	if cfg.Window.Title != "demo" || cfg.Window.Width != 640 {
		t.Errorf("window = %+v, want title 'demo' and width 640", cfg.Window)
	}

	if cfg.Window.Height != def.Window.Height {
		t.Errorf("Window.Height = %d, want default %d", cfg.Window.Height, def.Window.Height)
	}

	if cfg.Renderer.AutoClear != def.Renderer.AutoClear {
		t.Errorf("Renderer.AutoClear = %v, want default %v", cfg.Renderer.AutoClear, def.Renderer.AutoClear)
	}

	if want := (Color{0.5, 0.25, 0, 1}); cfg.Renderer.ClearColor != want {
		t.Errorf("Renderer.ClearColor = %v, want %v", cfg.Renderer.ClearColor, want)
	}

	if cfg.Assets.Texture != "tex.png" || cfg.Assets.Snapshot != def.Assets.Snapshot {
		t.Errorf("assets = %+v, want texture 'tex.png' and default snapshot", cfg.Assets)
	}
}

func TestColorFormats(t *testing.T) {

	tests := []struct {
		name    string
		yaml    string
		want    Color
		wantErr bool
	}{
		{name: "hex rgb", yaml: `"#ff0000"`, want: Color{1, 0, 0, 1}},
		{name: "hex rgba", yaml: `"#00ff0000"`, want: Color{0, 1, 0, 0}},
		{name: "hex without hash", yaml: `0000ff`, want: Color{0, 0, 1, 1}},
		{name: "list rgba", yaml: `[0, 0, 0, 0.5]`, want: Color{0, 0, 0, 0.5}},
		{name: "short hex", yaml: `"#fff"`, wantErr: true},
		{name: "bad hex digits", yaml: `"#gg0000"`, wantErr: true},
		{name: "too many components", yaml: `[1, 1, 1, 1, 1]`, wantErr: true},
		{name: "map", yaml: `{r: 1}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {

			cfg, err := Parse([]byte("renderer:\n  clear_color: " + tt.yaml + "\n"))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse() succeeded, want error")
				}
				return
			}

			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}

			if cfg.Renderer.ClearColor != tt.want {
				t.Errorf("ClearColor = %v, want %v", cfg.Renderer.ClearColor, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {

	tests := []struct {
		name   string
		modify func(c *Config)
		want   error
	}{
		{name: "default", modify: func(c *Config) {}, want: nil},
		{name: "zero window width", modify: func(c *Config) { c.Window.Width = 0 }, want: ErrInvalidSize},
		{name: "negative target", modify: func(c *Config) { c.Renderer.TargetHeight = -1 }, want: ErrInvalidSize},
		{name: "color out of range", modify: func(c *Config) { c.Renderer.ClearColor[2] = 2 }, want: ErrInvalidColor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {

			c := Default()
			tt.modify(c)

			err := c.Validate()
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {

	path := filepath.Join(t.TempDir(), "demo.yaml")
	if err := os.WriteFile(path, []byte("window:\n  vsync: false\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Window.VSync {
		t.Error("Window.VSync = true, want false")
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() of a missing file succeeded")
	}
}
