// Package fonts provides the font metrics used to size node labels.
//
// Text measurement is approximate: every glyph is assumed to have the
// advance width of 'M' in the Go Mono font at the requested size. The font
// is parsed once from the copy embedded in golang.org/x/image and faces are
// cached per size.
package fonts

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// FontFamily is the CSS font-family used for node labels.
const FontFamily = "Go Mono"

// FallbackFontFamily lists fallback fonts for viewers without Go Mono.
const FallbackFontFamily = `'Go Mono', 'DejaVu Sans Mono', Menlo, Consolas, monospace`

// DefaultSize is the default font size in pixels.
const DefaultSize = 12.0

// Metrics describes the font used for label text.
type Metrics struct {
	Family     string
	Size       float64
	CharWidth  int // average advance of one character
	LineHeight int // baseline-to-baseline distance
}

// Degenerate reports whether the metrics cannot size text.
func (m Metrics) Degenerate() bool {
	return m.CharWidth <= 0 || m.LineHeight <= 0
}

// TextWidth returns the width of n characters.
func (m Metrics) TextWidth(n int) int { return n * m.CharWidth }

// Cache for the parsed font and derived metrics (computed once per size).
var (
	monoFont    *sfnt.Font
	monoErr     error
	monoOnce    sync.Once
	metricsMu   sync.Mutex
	metricsByPt = map[float64]Metrics{}
)

func mono() (*sfnt.Font, error) {
	monoOnce.Do(func() {
		monoFont, monoErr = opentype.Parse(gomono.TTF)
	})
	return monoFont, monoErr
}

// New measures Go Mono at size pixels (72 DPI, no hinting).
func New(size float64) (Metrics, error) {
	if size <= 0 {
		return Metrics{}, fmt.Errorf("invalid font size %v", size)
	}

	metricsMu.Lock()
	defer metricsMu.Unlock()
	if m, ok := metricsByPt[size]; ok {
		return m, nil
	}

	f, err := mono()
	if err != nil {
		return Metrics{}, fmt.Errorf("parse go mono: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return Metrics{}, fmt.Errorf("create face: %w", err)
	}
	defer face.Close()

	adv, ok := face.GlyphAdvance('M')
	if !ok {
		return Metrics{}, fmt.Errorf("go mono has no glyph for 'M'")
	}
	m := Metrics{
		Family:     FontFamily,
		Size:       size,
		CharWidth:  adv.Round(),
		LineHeight: face.Metrics().Height.Ceil(),
	}
	metricsByPt[size] = m
	return m, nil
}

// Default returns the metrics for DefaultSize.
// It panics if the embedded font cannot be parsed, which would be a build
// defect rather than a runtime condition.
func Default() Metrics {
	m, err := New(DefaultSize)
	if err != nil {
		panic(err)
	}
	return m
}

// Fixed returns metrics with explicit character width and line height,
// bypassing font measurement. Used for configured overrides and tests.
func Fixed(charWidth, lineHeight int) Metrics {
	return Metrics{Family: FontFamily, Size: DefaultSize, CharWidth: charWidth, LineHeight: lineHeight}
}
