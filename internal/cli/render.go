package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/matzehuels/kirigami/pkg/pipeline"
)

// renderFlags holds the command-line flags for the render command.
type renderFlags struct {
	output         string // output file (single format) or base path
	formats        string // comma-separated output formats
	cellSize       string // WxH of one grid cell
	pageSize       string // WxH of the page the sheet is fitted into
	preserveAspect bool   // keep cells square
	config         string // TOML render configuration
	baseDepth      int    // base plane depth override
	sorted         bool   // emit lines in canonical order
	scale          float64
	refresh        bool
	cacheFlags
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	flags := renderFlags{preserveAspect: true}

	cmd := &cobra.Command{
		Use:   "render [pattern]",
		Short: "Render a depth pattern to SVG, JSON, PDF or PNG",
		Long: `Render a depth pattern as a cut-and-fold sheet.

The pattern is a JSON, TOML or CSV file holding the depth of every cell.
Flags override values from --config, which override the built-in defaults.
Results are cached locally for faster subsequent runs.`,
		Example: `  kirigami render examples/stairs.json --page-size 210x297
  kirigami render heart.csv -f svg,pdf -o out/heart
  kirigami render stairs.json -f json -o -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd, args[0])
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (single format), base path (multiple), or - for stdout")
	cmd.Flags().StringVarP(&flags.formats, "format", "f", "", "output format(s): svg (default), json, pdf, png (comma-separated)")
	cmd.Flags().StringVar(&flags.cellSize, "cell-size", "", "size of one grid cell, e.g. 10x10")
	cmd.Flags().StringVar(&flags.pageSize, "page-size", "", "fit the sheet into a page, e.g. 210x297")
	cmd.Flags().BoolVar(&flags.preserveAspect, "preserve-aspect", flags.preserveAspect, "keep cells square")
	cmd.Flags().StringVarP(&flags.config, "config", "c", "", "TOML render configuration file")
	cmd.Flags().IntVar(&flags.baseDepth, "base-depth", 0, "override the pattern's base plane depth")
	cmd.Flags().BoolVar(&flags.sorted, "sorted", false, "write lines in canonical sorted order")
	cmd.Flags().Float64Var(&flags.scale, "scale", 0, "PNG scale factor (default 2)")
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "ignore cached artifacts")
	flags.cacheFlags.register(cmd)

	return cmd
}

// options turns flags into pipeline options. Only flags the user set are
// copied so that the config file can fill in the rest.
func (f *renderFlags) options(cmd *cobra.Command, input string) (pipeline.Options, error) {
	opts := pipeline.Options{
		PatternPath: input,
		Formats:     parseFormats(f.formats),
		Scale:       f.scale,
		Refresh:     f.refresh,
	}

	var err error
	if f.cellSize != "" {
		if opts.CellWidth, opts.CellHeight, err = parseSize("cell size", f.cellSize); err != nil {
			return opts, err
		}
	}
	if f.pageSize != "" {
		if opts.PageWidth, opts.PageHeight, err = parseSize("page size", f.pageSize); err != nil {
			return opts, err
		}
	}
	if cmd.Flags().Changed("preserve-aspect") {
		on := f.preserveAspect
		opts.PreserveAspect = &on
	}
	if cmd.Flags().Changed("sorted") {
		on := f.sorted
		opts.Sorted = &on
	}
	if cmd.Flags().Changed("base-depth") {
		base := f.baseDepth
		opts.BasePlaneDepth = &base
	}

	if f.config != "" {
		cfg, err := pipeline.LoadRenderConfig(f.config)
		if err != nil {
			return opts, err
		}
		cfg.Apply(&opts)
	}

	return opts, opts.ValidateAndSetDefaults()
}

// runRender executes the pipeline and writes the artifacts.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, flags renderFlags) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	runner, err := c.newRunner(ctx, flags.cacheFlags, nil)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = logger
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %s", displayName(result, input)))

	if flags.output == "-" {
		return writeStdout(result.Artifacts, opts.Formats)
	}

	paths, err := writeArtifacts(result.Artifacts, opts.Formats, input, flags.output)
	if err != nil {
		return err
	}

	printSuccess("Rendered %s", displayName(result, input))
	printStats(result.Stats.Width, result.Stats.Height, result.Stats.Lines, result.CacheInfo.RenderHit)
	for _, p := range paths {
		printFile(p)
	}
	printNewline()
	printNextStep("Inspect the facet grid", fmt.Sprintf("%s inspect %s", appName, input))
	return nil
}

func displayName(result *pipeline.Result, input string) string {
	if result.Pattern != nil && result.Pattern.Name != "" {
		return result.Pattern.Name
	}
	return filepath.Base(input)
}

// writeArtifacts writes one file per format and returns the paths written.
// A single format goes to output as given; several formats share output as
// a base path with the format as extension.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) ([]string, error) {
	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		path := output
		if len(formats) > 1 || path == "" {
			path = basePath(output, input) + "." + format
		}
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return paths, err
			}
		}
		if err := writeFile(path, artifacts[format]); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeStdout(artifacts map[string][]byte, formats []string) error {
	if len(formats) != 1 {
		return fmt.Errorf("--output - needs exactly one format, got %d", len(formats))
	}
	if binaryFormat(formats[0]) && isatty.IsTerminal(os.Stdout.Fd()) {
		return fmt.Errorf("refusing to write %s to a terminal, redirect stdout or use --output", formats[0])
	}
	return writeTo(nopCloser{os.Stdout}, artifacts[formats[0]])
}

// binaryFormat reports whether a format's artifact is not text.
func binaryFormat(format string) bool {
	return format == pipeline.FormatPDF || format == pipeline.FormatPNG
}

func writeFile(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	return writeTo(out, data)
}

func writeTo(out io.WriteCloser, data []byte) error {
	if _, err := out.Write(data); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if slices.Contains([]string{pipeline.FormatSVG, pipeline.FormatJSON, pipeline.FormatPDF, pipeline.FormatPNG}, strings.TrimPrefix(ext, ".")) {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// nopCloser wraps an io.Writer with a no-op Close method.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
