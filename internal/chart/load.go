package chart

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// File is the on-disk shape of a run: a list of charts analyzed together.
type File struct {
	Charts []Chart `json:"charts" toml:"chart" yaml:"charts"`
}

// LoadFile reads a chart file and normalizes every position in it. The
// format is chosen by extension: .toml, .yaml/.yml or .json.
func LoadFile(path string) ([]Chart, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	charts, err := Parse(data, strings.ToLower(filepath.Ext(path)))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	return charts, nil
}

// Parse decodes chart data in the format named by ext (including the dot)
// and normalizes every position.
func Parse(data []byte, ext string) ([]Chart, error) {
	var f File
	switch ext {
	case ".toml":
		if err := toml.Unmarshal(data, &f); err != nil {
			return nil, err
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, err
		}
	case ".json":
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	for i := range f.Charts {
		if f.Charts[i].Kind == "" {
			f.Charts[i].Kind = KindNatal
		}
		f.Charts[i].Normalize()
	}
	return f.Charts, nil
}
