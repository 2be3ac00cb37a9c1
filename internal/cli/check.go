package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gsnview/pkg/pipeline"
	"github.com/matzehuels/gsnview/pkg/report"
)

// checkCommand creates the check command, which validates modules without
// rendering them.
func (c *CLI) checkCommand() *cobra.Command {
	var excluded []string

	cmd := &cobra.Command{
		Use:   "check [files...]",
		Short: "Validate GSN modules",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			prog := newProgress(loggerFromContext(ctx))

			result, err := c.newRunner().Check(ctx, pipeline.Options{
				Inputs:   args,
				Excluded: excluded,
				Logger:   loggerFromContext(ctx),
			})
			if result != nil {
				printDiagnostics(result.Diagnostics)
			}
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Checked %d elements in %d modules", result.Stats.Elements, result.Stats.Modules))
			printSuccess("%d errors and %d warnings detected.", 0, len(result.Diagnostics.Warnings))
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&excluded, "exclude", "x", nil, "module files loaded only to resolve references")
	return cmd
}

// evidenceCommand creates the evidence command, which writes the list of
// evidence of the input modules.
func (c *CLI) evidenceCommand() *cobra.Command {
	var (
		excluded []string
		output   string
		layers   []string
	)

	cmd := &cobra.Command{
		Use:   "evidence [files...]",
		Short: "Write the list of evidence as Markdown",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			opts := pipeline.Options{
				Inputs:   args,
				Excluded: excluded,
				Logger:   loggerFromContext(ctx),
			}
			opts.Config.Render.Layers = layers

			md, result, err := c.newRunner().Evidence(ctx, opts)
			if result != nil {
				printDiagnostics(result.Diagnostics)
			}
			if err != nil {
				return err
			}

			if output == "" {
				_, err := fmt.Fprint(os.Stdout, md)
				return err
			}
			if err := os.WriteFile(output, []byte(md), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			printSuccess("%s", report.Title)
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&excluded, "exclude", "x", nil, "module files loaded only to resolve references")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringSliceVarP(&layers, "layer", "l", nil, "element attributes to list (repeatable)")
	return cmd
}
