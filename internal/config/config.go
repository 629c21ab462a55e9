// Package config holds the tunables of the wave scene and loads them from YAML.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Window struct {
	Width         int     `yaml:"width"`
	Height        int     `yaml:"height"`
	Title         string  `yaml:"title"`
	TargetFPS     int     `yaml:"target_fps"`
	MaxPixelRatio float64 `yaml:"max_pixel_ratio"`
	Antialias     bool    `yaml:"antialias"`
	Wallpaper     bool    `yaml:"wallpaper"`
}

type Zoom struct {
	Initial float64 `yaml:"initial"`
	Min     float64 `yaml:"min"`
	Max     float64 `yaml:"max"`
	Speed   float64 `yaml:"speed"`
	Step    float64 `yaml:"step"`
}

type Camera struct {
	FovY     float64 `yaml:"fovy"`
	Near     float64 `yaml:"near"`
	Far      float64 `yaml:"far"`
	Distance float64 `yaml:"distance"`
}

type Geometry struct {
	Size     float64 `yaml:"size"`
	Segments int     `yaml:"segments"`
}

// Shaders names the four shader sources, relative to the asset root or package.
type Shaders struct {
	WaveVertex        string `yaml:"wave_vertex"`
	WaveFragment      string `yaml:"wave_fragment"`
	CompositeVertex   string `yaml:"composite_vertex"`
	CompositeFragment string `yaml:"composite_fragment"`
}

type Assets struct {
	Dir     string  `yaml:"dir"`
	Package string  `yaml:"package"`
	Shaders Shaders `yaml:"shaders"`
}

type Config struct {
	Window   Window   `yaml:"window"`
	Zoom     Zoom     `yaml:"zoom"`
	Camera   Camera   `yaml:"camera"`
	Geometry Geometry `yaml:"geometry"`
	Assets   Assets   `yaml:"assets"`
	TimeStep float64  `yaml:"time_step"`
	LogLevel string   `yaml:"log_level"`
}

// Default returns the configuration the scene was tuned with.
func Default() Config {
	return Config{
		Window: Window{
			Width:         1280,
			Height:        720,
			Title:         "Wave Scene",
			TargetFPS:     60,
			MaxPixelRatio: 2,
			Antialias:     true,
		},
		Zoom: Zoom{
			Initial: 1,
			Min:     0.5,
			Max:     2.0,
			Speed:   0.1,
			Step:    0.1,
		},
		Camera: Camera{
			FovY:     45,
			Near:     0.1,
			Far:      1000,
			Distance: 1,
		},
		Geometry: Geometry{
			Size:     2,
			Segments: 100,
		},
		Assets: Assets{
			Dir: ".",
			Shaders: Shaders{
				WaveVertex:        "shaders/greenStripes.vert",
				WaveFragment:      "shaders/greenStripes.frag",
				CompositeVertex:   "shaders/pingpong.vert",
				CompositeFragment: "shaders/pingpong.frag",
			},
		},
		TimeStep: 0.01,
		LogLevel: "warn",
	}
}

// Load reads a YAML file over the defaults. Keys missing from the file keep
// their default value.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Window.MaxPixelRatio < 1 {
		errs = append(errs, fmt.Errorf("max_pixel_ratio must be >= 1, got %g", c.Window.MaxPixelRatio))
	}
	if c.Zoom.Min <= 0 || c.Zoom.Min > c.Zoom.Max {
		errs = append(errs, fmt.Errorf("zoom bounds invalid: min=%g max=%g", c.Zoom.Min, c.Zoom.Max))
	}
	if c.Zoom.Initial < c.Zoom.Min || c.Zoom.Initial > c.Zoom.Max {
		errs = append(errs, fmt.Errorf("initial zoom %g outside [%g, %g]", c.Zoom.Initial, c.Zoom.Min, c.Zoom.Max))
	}
	if c.Zoom.Speed <= 0 || c.Zoom.Speed > 1 {
		errs = append(errs, fmt.Errorf("zoom speed must be in (0, 1], got %g", c.Zoom.Speed))
	}
	if c.Zoom.Step <= 0 {
		errs = append(errs, fmt.Errorf("zoom step must be positive, got %g", c.Zoom.Step))
	}
	if c.TimeStep <= 0 {
		errs = append(errs, fmt.Errorf("time_step must be positive, got %g", c.TimeStep))
	}
	if c.Geometry.Size <= 0 || c.Geometry.Segments <= 0 {
		errs = append(errs, fmt.Errorf("geometry invalid: size=%g segments=%d", c.Geometry.Size, c.Geometry.Segments))
	}
	if c.Camera.FovY <= 0 || c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		errs = append(errs, fmt.Errorf("camera invalid: fovy=%g near=%g far=%g", c.Camera.FovY, c.Camera.Near, c.Camera.Far))
	}

	s := c.Assets.Shaders
	if s.WaveVertex == "" || s.WaveFragment == "" || s.CompositeVertex == "" || s.CompositeFragment == "" {
		errs = append(errs, errors.New("all four shader paths must be set"))
	}

	return errors.Join(errs...)
}
