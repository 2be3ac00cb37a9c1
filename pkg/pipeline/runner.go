package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gsnview/pkg/fonts"
	"github.com/matzehuels/gsnview/pkg/gsn"
	"github.com/matzehuels/gsnview/pkg/observability"
	"github.com/matzehuels/gsnview/pkg/report"
	"github.com/matzehuels/gsnview/pkg/resolve"
	"github.com/matzehuels/gsnview/pkg/route"
)

// Runner executes the pipeline. It holds no state besides the logger, so
// one Runner may serve several runs.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. If logger is nil, log.Default() is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Check loads and validates the modules without rendering anything. The
// returned error is the *errors.ValidationError of the findings, if any.
func (r *Runner) Check(ctx context.Context, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := r.logger(opts)

	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, len(opts.Inputs)+len(opts.Excluded))

	result := &Result{}
	start := time.Now()
	modules, _, err := Load(ctx, opts.Inputs, opts.Excluded)
	if err != nil {
		hooks.OnLoadComplete(ctx, 0, 0, time.Since(start), err)
		return nil, err
	}
	result.Modules = modules
	result.Stats.Modules = len(modules)
	for _, m := range modules {
		result.Stats.Elements += len(m.Elements)
	}

	Validate(modules, &result.Diagnostics)
	result.Stats.LoadTime = time.Since(start)
	hooks.OnLoadComplete(ctx, result.Stats.Modules, result.Stats.Elements, result.Stats.LoadTime, result.Diagnostics.Err())
	logger.Info("validated modules",
		"modules", result.Stats.Modules,
		"elements", result.Stats.Elements,
		"errors", len(result.Diagnostics.Errors),
		"warnings", len(result.Diagnostics.Warnings),
		"duration", result.Stats.LoadTime)

	return result, result.Diagnostics.Err()
}

// Evidence validates the modules and returns the evidence report of the
// input modules.
func (r *Runner) Evidence(ctx context.Context, opts Options) (string, *Result, error) {
	result, err := r.Check(ctx, opts)
	if err != nil {
		return "", result, err
	}
	inputs := result.Modules[:len(opts.Inputs)]
	return report.Evidence(inputs, report.Options{Layers: opts.Config.Render.Layers}), result, nil
}

// Execute runs the complete pipeline and writes the outputs. Nothing is
// written unless every stage succeeds. Cancellation of ctx is honoured
// between views.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	result, err := r.Check(ctx, opts)
	if err != nil {
		return result, err
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return result, err
	}
	logger := r.logger(opts)

	start := time.Now()
	inputs := result.Modules[:len(opts.Inputs)]
	views, err := r.Views(inputs, result.Modules, opts)
	if err != nil {
		return result, err
	}

	var m fonts.Metrics
	if opts.Config.Render.Engine == EngineNative && opts.Config.Render.Format == FormatSVG {
		if m, err = opts.Config.Metrics(); err != nil {
			return result, fmt.Errorf("font metrics: %w", err)
		}
	}

	for _, v := range views {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		data, err := renderView(ctx, v, m, opts)
		if err != nil {
			return result, err
		}
		result.Artifacts = append(result.Artifacts, Artifact{Name: v.File, View: v.Name, Data: data})
		logger.Debug("rendered view", "view", v.Name, "file", v.File, "bytes", len(data))
	}
	result.Stats.Views = len(views)

	if opts.EvidenceFile != "" {
		md := report.Evidence(inputs, report.Options{Layers: opts.Config.Render.Layers})
		result.Artifacts = append(result.Artifacts, Artifact{Name: opts.EvidenceFile, View: "evidence", Data: []byte(md)})
	}
	result.Stats.RenderTime = time.Since(start)

	if err := ctx.Err(); err != nil {
		return result, err
	}
	if err := r.write(result, opts.Config.Render.OutputDir); err != nil {
		return result, err
	}

	logger.Info("rendered outputs",
		"views", result.Stats.Views,
		"files", len(result.Written),
		"duration", result.Stats.RenderTime)
	return result, nil
}

// Views resolves the views selected in opts. inputs are the modules to
// render; loaded holds every module.
func (r *Runner) Views(inputs, loaded []*gsn.Module, opts Options) ([]*View, error) {
	ext := opts.Extension()
	ropts := resolve.Options{Outputs: map[string]string{}, Layers: opts.Config.Render.Layers}
	if opts.Argument {
		for _, m := range inputs {
			ropts.Outputs[m.Name] = m.Name + ext
		}
	}

	var views []*View
	if opts.Argument {
		for _, m := range inputs {
			g, err := resolve.Argument(m, loaded, ropts)
			if err != nil {
				return nil, err
			}
			views = append(views, &View{Name: m.Name, File: m.Name + ext, Brief: m.Brief, Graph: g})
		}
	}
	if opts.Complete {
		g, err := resolve.Complete(inputs, loaded, ropts)
		if err != nil {
			return nil, err
		}
		views = append(views, &View{Name: resolve.CompleteView, File: resolve.CompleteView + ext, Combined: true, Graph: g})
	}
	if opts.Architecture {
		g, err := resolve.Architecture(inputs, ropts)
		if err != nil {
			return nil, err
		}
		views = append(views, &View{Name: resolve.ArchitectureView, File: resolve.ArchitectureView + ext, Graph: g})
	}
	return views, nil
}

// renderView lays out and renders one view, reporting both stages to the
// registered observability hooks.
func renderView(ctx context.Context, v *View, m fonts.Metrics, opts Options) ([]byte, error) {
	cfg := opts.Config
	hooks := observability.Pipeline()

	if cfg.Render.Engine == EngineGraphviz || cfg.Render.Format == FormatDOT {
		start := time.Now()
		hooks.OnRenderStart(ctx, v.Name, cfg.Render.Format)
		data, err := RenderNodelink(ctx, v, cfg)
		hooks.OnRenderComplete(ctx, v.Name, cfg.Render.Format, len(data), time.Since(start), err)
		return data, err
	}

	start := time.Now()
	hooks.OnLayoutStart(ctx, v.Name, v.Graph.Len())
	laid, err := GenerateLayout(v, m, cfg.LayoutOptions(), route.Options{Orthogonal: cfg.Layout.Orthogonal}, opts.Logger)
	hooks.OnLayoutComplete(ctx, v.Name, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("layout %s: %w", v.Name, err)
	}

	start = time.Now()
	hooks.OnRenderStart(ctx, v.Name, cfg.Render.Format)
	data, err := Render(ctx, laid, m, cfg)
	hooks.OnRenderComplete(ctx, v.Name, cfg.Render.Format, len(data), time.Since(start), err)
	return data, err
}

// write stores every artifact below dir. Absolute artifact names are used
// as they are.
func (r *Runner) write(result *Result, dir string) error {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	for _, a := range result.Artifacts {
		path := a.Name
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("create directory for %s: %w", path, err)
		}
		if err := os.WriteFile(path, a.Data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		result.Written = append(result.Written, path)
	}
	return nil
}

// logger returns the logger of opts, falling back to the runner's.
func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}
