package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gsnview/pkg/config"
	"github.com/matzehuels/gsnview/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	outputDir    string   // directory receiving the diagrams
	excluded     []string // modules loaded for reference only
	argument     bool     // one diagram per input module
	complete     bool     // all input modules in one diagram
	architecture bool     // module dependency diagram
	evidence     string   // evidence report file
	layers       []string // element attributes shown under the text
	format       string   // output format: svg, dot
	engine       string   // layout engine: native, graphviz
	stylesheets  []string // stylesheet URLs imported by the SVG
	noLegend     bool     // omit the legend
	configFile   string   // TOML configuration file
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{argument: true}

	cmd := &cobra.Command{
		Use:   "render [files...]",
		Short: "Render GSN modules to diagrams",
		Long: `Render validates the given GSN modules and writes one diagram per module.
Use --complete for a diagram of all modules together and --architecture for
the module dependency diagram. Nothing is written if validation fails.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts.configFile)
			if err != nil {
				return err
			}
			applyRenderFlags(cmd, &cfg, &opts)
			if err := pipeline.ValidateFormat(cfg.Render.Format); err != nil {
				return err
			}
			if err := pipeline.ValidateEngine(cfg.Render.Engine); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args, cfg, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.outputDir, "output-dir", "o", "", "directory for the generated files (default: current directory)")
	cmd.Flags().StringSliceVarP(&opts.excluded, "exclude", "x", nil, "module files loaded only to resolve references")
	cmd.Flags().BoolVar(&opts.argument, "argument", opts.argument, "render one diagram per input module")
	cmd.Flags().BoolVar(&opts.complete, "complete", false, "render all input modules in one diagram")
	cmd.Flags().BoolVar(&opts.architecture, "architecture", false, "render the module architecture diagram")
	cmd.Flags().StringVarP(&opts.evidence, "evidence", "e", "", "write the list of evidence to this file")
	cmd.Flags().StringSliceVarP(&opts.layers, "layer", "l", nil, "element attributes to show (repeatable)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: svg (default), dot")
	cmd.Flags().StringVar(&opts.engine, "engine", "", "layout engine: native (default), graphviz")
	cmd.Flags().StringSliceVarP(&opts.stylesheets, "stylesheet", "s", nil, "stylesheet URL imported by the SVG (repeatable)")
	cmd.Flags().BoolVar(&opts.noLegend, "no-legend", false, "omit the legend")
	cmd.Flags().StringVar(&opts.configFile, "config", "", "TOML configuration file")

	return cmd
}

// applyRenderFlags overrides the configuration with every flag set on the
// command line.
func applyRenderFlags(cmd *cobra.Command, cfg *config.Config, opts *renderOpts) {
	flags := cmd.Flags()
	if flags.Changed("output-dir") {
		cfg.Render.OutputDir = opts.outputDir
	}
	if flags.Changed("layer") {
		cfg.Render.Layers = opts.layers
	}
	if flags.Changed("format") {
		cfg.Render.Format = opts.format
	}
	if flags.Changed("engine") {
		cfg.Render.Engine = opts.engine
	}
	if flags.Changed("stylesheet") {
		cfg.Render.Stylesheets = opts.stylesheets
	}
	if opts.noLegend {
		cfg.Render.Legend = false
	}
}

// runRender executes the render pipeline and reports the written files.
func (c *CLI) runRender(ctx context.Context, inputs []string, cfg config.Config, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	if !opts.argument && !opts.complete && !opts.architecture && opts.evidence == "" {
		return fmt.Errorf("nothing to render: enable --argument, --complete, --architecture or --evidence")
	}

	var spinner *Spinner
	if logger.GetLevel() > LogDebug {
		spinner = startSpinner(ctx, os.Stderr, "Loading modules...")
	}
	restore := trackSpinner(spinner)
	result, err := c.newRunner().Execute(ctx, pipeline.Options{
		Inputs:       inputs,
		Excluded:     opts.excluded,
		Argument:     opts.argument,
		Complete:     opts.complete,
		Architecture: opts.architecture,
		EvidenceFile: opts.evidence,
		Config:       cfg,
		Logger:       logger,
	})
	restore()
	spinner.Stop()

	if result != nil {
		printDiagnostics(result.Diagnostics)
	}
	if err != nil {
		return err
	}

	prog.done(fmt.Sprintf("Rendered %d views from %d modules", result.Stats.Views, result.Stats.Modules))
	for _, path := range result.Written {
		printFile(path)
	}
	return nil
}
