package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/carousel/pkg/pipeline"
)

// renderCommand creates the render command for writing snapshots.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
		active     int
		from       int
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [scene]",
		Short: "Render a snapshot of a scene to SVG or JSON",
		Long: `Render a snapshot of a scene to SVG or JSON.

Without --at the snapshot shows the settled layout. With --at the snapshot
shows the transition into the active item from the previous one (or from
--from), sampled the given time after it started:

  carousel render scene.yaml --active 3 --at 200ms -o frame.svg

The dot and ring.svg formats draw the items as a node-link ring diagram
(Graphviz source or SVG rendered in-process):

  carousel render scene.yaml -f svg,ring.svg

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			if cmd.Flags().Changed("active") {
				opts.ActiveItem = &active
			}
			if cmd.Flags().Changed("from") {
				opts.From = &from
			}
			return c.runRender(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json, dot, ring.svg (comma-separated)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "re-render and overwrite cached results")
	cmd.Flags().IntVar(&active, "active", 0, "active item (default: from scene)")
	cmd.Flags().IntVar(&from, "from", 0, "item the transition starts from (default: active-1)")
	cmd.Flags().DurationVar(&opts.At, "at", 0, "sample the transition this long after it started")
	cmd.Flags().Float64Var(&opts.Width, "width", 0, "container width (default: from scene)")
	cmd.Flags().Float64Var(&opts.Height, "height", 0, "container height (default: from scene)")
	cmd.Flags().BoolVar(&opts.Labels, "labels", true, "draw item labels (svg)")
	cmd.Flags().StringVar(&opts.Fill, "fill", "", "fill color of inactive items (svg)")
	cmd.Flags().StringVar(&opts.Background, "background", "", "background color (svg)")

	return cmd
}

// runRender loads the scene, runs the pipeline and writes every artifact.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	sc, err := runner.LoadScene(input)
	if err != nil {
		return err
	}
	opts.Logger = c.Logger

	spinner := newSpinner(ctx, "Rendering snapshot...")
	spinner.Start()

	result, err := runner.Execute(ctx, sc, opts)
	if err != nil {
		if spinner.Interrupted() {
			spinner.Stop()
			return ctx.Err()
		}
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.StopWithSuccess("Render complete")

	paths, err := writeArtifacts(result.Artifacts, opts.Formats, input, output)
	if err != nil {
		return err
	}

	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats.ItemCount, result.Config.ActiveItem, result.CacheInfo.RenderHit)
	return nil
}

// writeArtifacts writes one file per format. A single format goes to output
// (or <input>.<format>); several formats share output as base path. A
// derived path never overwrites the scene file itself.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) ([]string, error) {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	if output != "" && len(formats) > 1 {
		base = strings.TrimSuffix(output, filepath.Ext(output))
	}

	var paths []string
	for _, format := range formats {
		path := base + "." + format
		if output != "" && len(formats) == 1 {
			path = output
		} else if path == input {
			path = base + ".snapshot." + format
		}
		if err := os.WriteFile(path, artifacts[format], 0644); err != nil {
			return paths, fmt.Errorf("write output %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
