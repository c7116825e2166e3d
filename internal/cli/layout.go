package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/carousel/pkg/layout"
	"github.com/matzehuels/carousel/pkg/pipeline"
	"github.com/matzehuels/carousel/pkg/scene"
)

// layoutCommand creates the layout command, which prints the targets of one
// layout pass.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		active  int
		noCache bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout [scene]",
		Short: "Compute the carousel layout of a scene",
		Long: `Compute the carousel layout of a scene.

The layout command runs one layout pass over the items of a scene file
(.json, .yaml, .yml or .toml) and prints the target position, rotation,
scale and stacking order of every item. With -o the targets are written
as JSON instead.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("active") {
				opts.ActiveItem = &active
			}
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write targets as JSON to this file")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute and overwrite cached results")
	cmd.Flags().IntVar(&active, "active", 0, "active item (default: from scene)")
	cmd.Flags().Float64Var(&opts.Width, "width", 0, "container width (default: from scene)")
	cmd.Flags().Float64Var(&opts.Height, "height", 0, "container height (default: from scene)")

	return cmd
}

// runLayout loads the scene, runs the layout pass and prints or writes the targets.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
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

	lr, cacheHit, err := runner.GenerateLayoutWithCacheInfo(ctx, sc, opts)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}

	if output != "" {
		data, err := json.MarshalIndent(lr, "", "  ")
		if err != nil {
			return fmt.Errorf("encode layout: %w", err)
		}
		if err := os.WriteFile(output, data, 0644); err != nil {
			return fmt.Errorf("write output %s: %w", output, err)
		}
		printSuccess("Layout complete")
		printFile(output)
		printStats(len(lr.Targets), lr.Config.ActiveItem, cacheHit)
		return nil
	}

	fmt.Fprintln(stdout, targetTable(sc, lr.Targets))
	printStats(len(lr.Targets), lr.Config.ActiveItem, cacheHit)
	printNewline()
	printNextStep("Render", "carousel render "+input)
	return nil
}

// targetTable renders targets as a rounded lipgloss table.
func targetTable(sc *scene.Scene, targets []layout.Target) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	activeStyle := lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	parkedStyle := lipgloss.NewStyle().Foreground(colorDim)

	rows := make([][]string, len(targets))
	for i, t := range targets {
		label := strconv.Itoa(t.Index)
		if i < len(sc.Items) && sc.Items[i].Label != "" {
			label = sc.Items[i].Label
		}
		rows[i] = []string{
			strconv.Itoa(t.Index),
			label,
			string(t.Placement),
			fmt.Sprintf("%.1f", t.X),
			fmt.Sprintf("%.1f", t.Y),
			fmt.Sprintf("%.1f°", t.Rotation),
			fmt.Sprintf("%.2f", t.Scale),
			strconv.Itoa(t.ZIndex),
		}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Item", "Placement", "X", "Y", "Rotation", "Scale", "Z").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if row < 0 || row >= len(targets) {
				return lipgloss.NewStyle()
			}
			switch {
			case targets[row].Placement == layout.PlacementActive:
				return activeStyle
			case targets[row].Placement.Parked():
				return parkedStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		}).
		String()
}
