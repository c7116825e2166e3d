package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/carousel/pkg/carousel"
	"github.com/matzehuels/carousel/pkg/pipeline"
	"github.com/matzehuels/carousel/pkg/scene"
)

// tapCommand creates the tap command, which replays taps against a scene.
func (c *CLI) tapCommand() *cobra.Command {
	var (
		xs    []float64
		width float64
		write bool
	)

	cmd := &cobra.Command{
		Use:   "tap [scene]",
		Short: "Replay taps against a scene and print the active item",
		Long: `Replay taps against a scene and print the active item.

Each --x is the horizontal position of one tap in container coordinates.
A tap on the left half selects the previous item, anything else selects
the next one, wrapping around at both ends:

  carousel tap scene.yaml --x 100 --x 450

With --write the resulting active item is stored back into the scene file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTap(cmd.Context(), args[0], xs, width, write)
		},
	}

	cmd.Flags().Float64SliceVar(&xs, "x", nil, "tap position (repeatable)")
	cmd.Flags().Float64Var(&width, "width", 0, "container width (default: from scene)")
	cmd.Flags().BoolVar(&write, "write", false, "store the resulting active item in the scene file")

	return cmd
}

// runTap drives a carousel through the taps and reports each step.
func (c *CLI) runTap(ctx context.Context, input string, xs []float64, width float64, write bool) error {
	sc, err := scene.Load(input)
	if err != nil {
		return err
	}
	cfg, err := sc.LayoutConfig()
	if err != nil {
		return err
	}
	opts := pipeline.Options{Width: width}
	opts.SetLayoutDefaults(sc)

	start := time.Now()
	ctrl := carousel.New(scene.AsItems(sc.Recorders()),
		carousel.WithConfig(cfg),
		carousel.WithSize(opts.Width, opts.Height),
		carousel.WithLogger(c.Logger),
		carousel.WithContext(ctx))
	if _, err := ctrl.Load(); err != nil {
		return fmt.Errorf("initial layout: %w", err)
	}

	if len(xs) == 0 {
		printWarning("No taps given, showing the starting item")
	}
	printKeyValue("start", fmt.Sprintf("%d", ctrl.ActiveItem()))
	for _, x := range xs {
		from := ctrl.ActiveItem()
		to, err := ctrl.Tap(&carousel.Point{X: x, Y: opts.Height / 2})
		if err != nil {
			return fmt.Errorf("tap at x=%v: %w", x, err)
		}
		printKeyValue(fmt.Sprintf("x=%g", x), fmt.Sprintf("%d %s %d", from, iconArrow, to))
	}
	if pass := ctrl.LastPass(); pass != nil {
		if err := pass.Wait(); err != nil {
			return err
		}
	}
	logElapsed(c.Logger, start, "replayed taps", "taps", len(xs), "active", ctrl.ActiveItem())

	printSuccess("Active item %s", StyleNumber.Render(fmt.Sprintf("%d", ctrl.ActiveItem())))

	if write {
		sc.SetLayoutConfig(ctrl.Config())
		if err := scene.Save(input, sc); err != nil {
			return err
		}
		printFile(input)
	}
	return nil
}
