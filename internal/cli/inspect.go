package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/kirigami/pkg/kirigami"
	"github.com/matzehuels/kirigami/pkg/kirigami/debug"
	"github.com/matzehuels/kirigami/pkg/pipeline"
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		baseDepth int
		lines     bool
		sorted    bool
	)

	cmd := &cobra.Command{
		Use:   "inspect [pattern]",
		Short: "Print the facet grid and line counts of a pattern",
		Long: `Print the facet grid and line counts of a pattern.

Each cell of the grid shows the facet orientation (u for an upward riser,
f for a horizontal face) followed by its depth. Use --lines to list every
cut and fold segment.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{PatternPath: args[0]}
			if cmd.Flags().Changed("base-depth") {
				opts.BasePlaneDepth = &baseDepth
			}
			return c.runInspect(cmd.Context(), opts, lines, sorted)
		},
	}

	cmd.Flags().IntVar(&baseDepth, "base-depth", 0, "override the pattern's base plane depth")
	cmd.Flags().BoolVar(&lines, "lines", false, "list every line")
	cmd.Flags().BoolVar(&sorted, "sorted", false, "list lines in canonical sorted order")

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, opts pipeline.Options, listLines, sorted bool) error {
	logger := loggerFromContext(ctx)

	p, err := pipeline.LoadPattern(opts)
	if err != nil {
		return err
	}
	cfg, err := pipeline.Facetize(p)
	if err != nil {
		return err
	}
	all, err := cfg.CollectLines()
	if err != nil {
		return err
	}
	logger.Debug("scanned lines", "count", len(all))

	if p.Name != "" {
		fmt.Println(StyleTitle.Render(p.Name))
	}
	printKeyValue("Width", strconv.Itoa(cfg.Width()))
	printKeyValue("Height", strconv.Itoa(cfg.Height()))
	printKeyValue("Base depth", strconv.Itoa(cfg.BasePlaneDepth()))
	printKeyValue("Background", strconv.Itoa(cfg.BackgroundPlaneHeight()))
	printKeyValue("Lines", formatLineCounts(pipeline.CountLines(all)))
	printNewline()

	fmt.Println(debug.Grid(cfg))

	if listLines {
		if sorted {
			kirigami.SortLines(all)
		}
		printNewline()
		for _, l := range all {
			fmt.Println(debug.Line(l))
		}
	}
	return nil
}
