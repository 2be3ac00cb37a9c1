// Package pipeline provides the load → validate → resolve → layout → render
// pipeline of gsnview.
//
// This package is the one place where GSN modules are read from disk and
// diagrams are written back. The CLI drives it through a [Runner]; the
// layout and rendering packages it orchestrates never touch the file system.
//
// # Architecture
//
// The pipeline consists of five stages:
//
//  1. Load: Parse every input and reference-only module file
//  2. Validate: Check elements, cross-module references, duplicates and
//     cycles, collecting every finding in one [errors.Diagnostics]
//  3. Resolve: Assemble the argument, complete and architecture views
//  4. Layout: Measure, rank, order and place nodes; route edges
//  5. Render: Compose scenes and serialize them as SVG or DOT
//
// A validation error stops the run before anything is written, so no
// partial set of diagrams is ever produced.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Inputs:   []string{"main.gsn.yaml", "sub.gsn.yaml"},
//	    Argument: true,
//	    Config:   config.Default(),
//	})
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gsnview/pkg/config"
	"github.com/matzehuels/gsnview/pkg/errors"
	"github.com/matzehuels/gsnview/pkg/gsn"
)

// Output formats.
const (
	FormatSVG = config.FormatSVG
	FormatDOT = config.FormatDOT
)

// Layout engines.
const (
	EngineNative   = config.EngineNative
	EngineGraphviz = config.EngineGraphviz
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG: true,
	FormatDOT: true,
}

// ValidEngines is the set of supported layout engines.
var ValidEngines = map[string]bool{
	EngineNative:   true,
	EngineGraphviz: true,
}

// Options contains all configuration for a pipeline run.
type Options struct {
	// Inputs are the module files whose views are rendered.
	Inputs []string

	// Excluded are module files loaded only to resolve references. They
	// are validated but not rendered, and away nodes into them link to
	// the element URL instead of a generated diagram.
	Excluded []string

	// Views to render.
	Argument     bool
	Complete     bool
	Architecture bool

	// EvidenceFile is the Markdown evidence report to write. Relative
	// paths are resolved against the output directory.
	EvidenceFile string

	// Config holds layout, font and render settings.
	Config config.Config

	// Logger receives progress and degenerate-sizing warnings.
	Logger *log.Logger
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Modules are all loaded modules, inputs first.
	Modules []*gsn.Module

	// Diagnostics holds every validation finding, including warnings of a
	// successful run.
	Diagnostics errors.Diagnostics

	// Artifacts maps output file names (relative to the output directory)
	// to their content, in generation order.
	Artifacts []Artifact

	// Written lists the paths written to disk.
	Written []string

	Stats Stats
}

// Artifact is one generated output file.
type Artifact struct {
	Name string
	View string
	Data []byte
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Modules    int
	Elements   int
	Views      int
	LoadTime   time.Duration
	RenderTime time.Duration
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, dot)", format)
	}
	return nil
}

// ValidateEngine checks that a layout engine is valid.
func ValidateEngine(engine string) error {
	if !ValidEngines[engine] {
		return fmt.Errorf("invalid engine: %q (must be one of: native, graphviz)", engine)
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if len(o.Inputs) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "no input files")
	}
	if o.Config.Render.Format == "" {
		o.Config.Render.Format = FormatSVG
	}
	if o.Config.Render.Engine == "" {
		o.Config.Render.Engine = EngineNative
	}
	if err := ValidateFormat(o.Config.Render.Format); err != nil {
		return err
	}
	if err := ValidateEngine(o.Config.Render.Engine); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// Extension returns the file extension of the configured format.
func (o *Options) Extension() string {
	return "." + o.Config.Render.Format
}
