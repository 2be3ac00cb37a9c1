// Package config loads gsnview settings from a TOML file.
//
// A configuration file has three optional tables. Keys that are absent keep
// their default value:
//
//	[layout]
//	wrap_width = 32
//	hgap = 20
//	vgap = 40
//	margin = 20
//	align = "left"      # or "center"
//	orthogonal = false
//
//	[font]
//	family = "'Go Mono', monospace"
//	size = 12.0
//	char_width = 0      # set both to override the measured metrics
//	line_height = 0
//
//	[render]
//	format = "svg"      # or "dot"
//	engine = "native"   # or "graphviz"
//	legend = true
//	stylesheets = ["custom.css"]
//	layers = ["level"]
//	output_dir = "out"
package config

import (
	"os"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/gsnview/pkg/errors"
	"github.com/matzehuels/gsnview/pkg/fonts"
	"github.com/matzehuels/gsnview/pkg/layout"
)

// Output formats and layout engines.
const (
	FormatSVG = "svg"
	FormatDOT = "dot"

	EngineNative   = "native"
	EngineGraphviz = "graphviz"
)

// Layout alignments.
const (
	AlignLeft   = "left"
	AlignCenter = "center"
)

// Config is the complete configuration.
type Config struct {
	Layout LayoutConfig `toml:"layout"`
	Font   FontConfig   `toml:"font"`
	Render RenderConfig `toml:"render"`
}

// LayoutConfig holds the layout engine settings.
type LayoutConfig struct {
	WrapWidth  int    `toml:"wrap_width"`
	HGap       int    `toml:"hgap"`
	VGap       int    `toml:"vgap"`
	Margin     int    `toml:"margin"`
	Align      string `toml:"align"`
	Orthogonal bool   `toml:"orthogonal"`
}

// FontConfig holds the font used for measuring and in the stylesheet.
type FontConfig struct {
	Family     string  `toml:"family"`
	Size       float64 `toml:"size"`
	CharWidth  int     `toml:"char_width"`
	LineHeight int     `toml:"line_height"`
}

// RenderConfig holds output settings.
type RenderConfig struct {
	Format      string   `toml:"format"`
	Engine      string   `toml:"engine"`
	Legend      bool     `toml:"legend"`
	Stylesheets []string `toml:"stylesheets"`
	Layers      []string `toml:"layers"`
	OutputDir   string   `toml:"output_dir"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Layout: LayoutConfig{
			WrapWidth: layout.DefaultWrapWidth,
			HGap:      layout.DefaultHGap,
			VGap:      layout.DefaultVGap,
			Margin:    layout.DefaultMargin,
			Align:     AlignLeft,
		},
		Font: FontConfig{
			Family: fonts.FallbackFontFamily,
			Size:   fonts.DefaultSize,
		},
		Render: RenderConfig{
			Format: FormatSVG,
			Engine: EngineNative,
			Legend: true,
		},
	}
}

// Load reads the file at path over the defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Config{}, errors.New(errors.ErrCodeFileNotFound, "config file not found: %s", path)
	}
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read config %s", path)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "config %s", path)
	}
	return cfg, nil
}

// Parse decodes TOML data over the defaults and validates the result.
// Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidInput, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enumerations and ranges.
func (c Config) Validate() error {
	switch {
	case !slices.Contains([]string{AlignLeft, AlignCenter}, c.Layout.Align):
		return errors.New(errors.ErrCodeInvalidInput, "layout.align must be %q or %q, got %q", AlignLeft, AlignCenter, c.Layout.Align)
	case c.Layout.WrapWidth < 0, c.Layout.HGap < 0, c.Layout.VGap < 0, c.Layout.Margin < 0:
		return errors.New(errors.ErrCodeInvalidInput, "layout sizes must not be negative")
	case c.Font.Size < 0, c.Font.CharWidth < 0, c.Font.LineHeight < 0:
		return errors.New(errors.ErrCodeInvalidInput, "font sizes must not be negative")
	case !slices.Contains([]string{FormatSVG, FormatDOT}, c.Render.Format):
		return errors.New(errors.ErrCodeInvalidInput, "render.format must be %q or %q, got %q", FormatSVG, FormatDOT, c.Render.Format)
	case !slices.Contains([]string{EngineNative, EngineGraphviz}, c.Render.Engine):
		return errors.New(errors.ErrCodeInvalidInput, "render.engine must be %q or %q, got %q", EngineNative, EngineGraphviz, c.Render.Engine)
	}
	return nil
}

// LayoutOptions converts the layout table to layout.Options.
func (c Config) LayoutOptions() layout.Options {
	opts := layout.Options{
		WrapWidth: c.Layout.WrapWidth,
		HGap:      c.Layout.HGap,
		VGap:      c.Layout.VGap,
		Margin:    c.Layout.Margin,
	}
	if c.Layout.Align == AlignCenter {
		opts.Align = layout.AlignCenter
	}
	return opts
}

// Metrics returns the font metrics for measuring. Explicit character width
// and line height take precedence over metrics derived from the font.
func (c Config) Metrics() (fonts.Metrics, error) {
	if c.Font.CharWidth > 0 && c.Font.LineHeight > 0 {
		return fonts.Fixed(c.Font.CharWidth, c.Font.LineHeight), nil
	}
	size := c.Font.Size
	if size <= 0 {
		size = fonts.DefaultSize
	}
	return fonts.New(size)
}
