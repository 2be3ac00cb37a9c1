package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/gsnview/pkg/buildinfo"
	"github.com/matzehuels/gsnview/pkg/config"
	"github.com/matzehuels/gsnview/pkg/fonts"
	"github.com/matzehuels/gsnview/pkg/render"
	"github.com/matzehuels/gsnview/pkg/render/nodelink"
	"github.com/matzehuels/gsnview/pkg/render/svg"
)

// Render generates the output of one laid-out view in the configured
// format.
func Render(ctx context.Context, v *Laid, m fonts.Metrics, cfg config.Config) ([]byte, error) {
	if cfg.Render.Format == FormatDOT {
		return []byte(nodelink.ToDOT(v.Graph, nodelinkOptions(cfg))), nil
	}

	opts := []render.Option{
		render.WithMargin(cfg.Layout.Margin),
		render.WithStylesheets(cfg.Render.Stylesheets...),
	}
	if cfg.Render.Legend {
		opts = append(opts, render.WithLegend(buildinfo.Version, v.Brief))
	}
	if v.Combined {
		opts = append(opts, render.WithCombined())
	}

	s, err := render.Compose(v.Graph, v.Layout, v.Routes, m, opts...)
	if err != nil {
		return nil, fmt.Errorf("compose %s: %w", v.Name, err)
	}
	return svg.Render(s, svg.WithFont(cfg.Font.Family, cfg.Font.Size))
}

// RenderNodelink renders one view through Graphviz instead of the native
// layout engine.
func RenderNodelink(ctx context.Context, v *View, cfg config.Config) ([]byte, error) {
	dot := nodelink.ToDOT(v.Graph, nodelinkOptions(cfg))
	if cfg.Render.Format == FormatDOT {
		return []byte(dot), nil
	}
	data, err := nodelink.RenderSVG(ctx, dot)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", v.Name, err)
	}
	return data, nil
}

func nodelinkOptions(cfg config.Config) nodelink.Options {
	return nodelink.Options{Detailed: true, WrapWidth: cfg.Layout.WrapWidth}
}
