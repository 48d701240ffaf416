// Package config holds the chart configuration consumed by the normalizer
// chain's match predicates and by layout sizing. Only its read-only query
// surface is used during compilation; theme resolution beyond simple
// defaults-plus-overlay is out of scope.
package config

import (
	"fmt"
	"os"

	"dario.cat/mergo"
	"github.com/goccy/go-yaml"
)

// Config is the resolved chart configuration.
type Config struct {
	View      ViewConfig      `yaml:"view"      json:"view"`
	Line      LineConfig      `yaml:"line"      json:"line"`
	Area      AreaConfig      `yaml:"area"      json:"area"`
	BoxPlot   BoxPlotConfig   `yaml:"boxplot"   json:"boxplot"`
	ErrorBar  ErrorBarConfig  `yaml:"errorbar"  json:"errorbar"`
	ErrorBand ErrorBandConfig `yaml:"errorband" json:"errorband"`
	Scale     ScaleConfig     `yaml:"scale"     json:"scale"`
	Concat    ConcatConfig    `yaml:"concat"    json:"concat"`
	Facet     FacetConfig     `yaml:"facet"     json:"facet"`
}

// ViewConfig sets the default view size for units that declare none.
type ViewConfig struct {
	ContinuousWidth  float64 `yaml:"continuousWidth"  json:"continuousWidth"`
	ContinuousHeight float64 `yaml:"continuousHeight" json:"continuousHeight"`
	DiscreteStep     float64 `yaml:"discreteStep"     json:"discreteStep"`
}

// LineConfig controls line marks; Point turns on the point overlay for every
// line unit that does not opt out.
type LineConfig struct {
	Point bool `yaml:"point" json:"point"`
}

// AreaConfig controls area marks; Line and Point turn on the respective
// overlays.
type AreaConfig struct {
	Line  bool `yaml:"line"  json:"line"`
	Point bool `yaml:"point" json:"point"`
}

// BoxPlotConfig controls box plot expansion.
type BoxPlotConfig struct {
	Size   float64 `yaml:"size"   json:"size"`
	Extent string  `yaml:"extent" json:"extent"`
}

// ErrorBarConfig controls error bar expansion.
type ErrorBarConfig struct {
	Extent string `yaml:"extent" json:"extent"`
	Ticks  bool   `yaml:"ticks"  json:"ticks"`
}

// ErrorBandConfig controls error band expansion.
type ErrorBandConfig struct {
	Extent  string `yaml:"extent"  json:"extent"`
	Borders bool   `yaml:"borders" json:"borders"`
}

// ScaleConfig carries the default band step used by range-step rewriting.
type ScaleConfig struct {
	RangeStep float64 `yaml:"rangeStep" json:"rangeStep"`
}

// ConcatConfig controls spacing between concatenated children.
type ConcatConfig struct {
	Spacing float64 `yaml:"spacing" json:"spacing"`
}

// FacetConfig controls spacing between facet cells.
type FacetConfig struct {
	Spacing float64 `yaml:"spacing" json:"spacing"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		View: ViewConfig{
			ContinuousWidth:  200,
			ContinuousHeight: 200,
			DiscreteStep:     20,
		},
		BoxPlot: BoxPlotConfig{
			Size:   14,
			Extent: "min-max",
		},
		ErrorBar: ErrorBarConfig{
			Extent: "stderr",
			Ticks:  true,
		},
		ErrorBand: ErrorBandConfig{
			Extent: "stderr",
		},
		Scale: ScaleConfig{
			RangeStep: 20,
		},
		Concat: ConcatConfig{
			Spacing: 10,
		},
		Facet: FacetConfig{
			Spacing: 20,
		},
	}
}

// Load reads a configuration file and overlays it on the defaults. User
// values win over defaults field by field.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	var user Config
	if err := yaml.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg := Default()
	if err := cfg.Merge(&user); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Merge overlays non-zero fields of other onto c.
func (c *Config) Merge(other *Config) error {
	if other == nil {
		return nil
	}
	if err := mergo.Merge(c, other, mergo.WithOverride); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}
	return nil
}
