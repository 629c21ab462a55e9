// Package assets fetches the shader sources the scene is built from.
package assets

import (
	"errors"
	"fmt"
	"strings"

	"wavescene/internal/utils"
)

// ErrEmptySource is returned for an asset that exists but holds no text.
var ErrEmptySource = errors.New("shader source is empty")

// Paths names the four shader assets in load order.
type Paths struct {
	WaveVertex        string
	WaveFragment      string
	CompositeVertex   string
	CompositeFragment string
}

func DefaultPaths() Paths {
	return Paths{
		WaveVertex:        "shaders/greenStripes.vert",
		WaveFragment:      "shaders/greenStripes.frag",
		CompositeVertex:   "shaders/pingpong.vert",
		CompositeFragment: "shaders/pingpong.frag",
	}
}

// ShaderSources is the text of both programs, ready to compile.
type ShaderSources struct {
	WaveVertex        string
	WaveFragment      string
	CompositeVertex   string
	CompositeFragment string
}

// Load reads the four shader assets in order and stops at the first failure.
func Load(src Source, paths Paths) (ShaderSources, error) {
	var out ShaderSources

	steps := []struct {
		name string
		dst  *string
	}{
		{paths.WaveVertex, &out.WaveVertex},
		{paths.WaveFragment, &out.WaveFragment},
		{paths.CompositeVertex, &out.CompositeVertex},
		{paths.CompositeFragment, &out.CompositeFragment},
	}

	for _, step := range steps {
		data, err := src.ReadFile(step.name)
		if err != nil {
			return ShaderSources{}, fmt.Errorf("load shader %s: %w", step.name, err)
		}

		text := strings.TrimPrefix(string(data), "\ufeff")
		if strings.TrimSpace(text) == "" {
			return ShaderSources{}, fmt.Errorf("load shader %s: %w", step.name, ErrEmptySource)
		}

		utils.Debug("Assets: Loaded %s (%d bytes)", step.name, len(text))
		*step.dst = text
	}

	return out, nil
}
