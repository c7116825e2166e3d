package pipeline

import (
	"fmt"

	"github.com/matzehuels/carousel/pkg/animate"
	"github.com/matzehuels/carousel/pkg/layout"
	"github.com/matzehuels/carousel/pkg/render/nodelink"
	"github.com/matzehuels/carousel/pkg/render/sink"
	"github.com/matzehuels/carousel/pkg/scene"
)

// BuildSnapshot turns a layout result into the snapshot to render. With
// opts.At set, the snapshot shows the transition into the result's active
// item from opts.From (by default the item before it), opts.At after it
// started.
func BuildSnapshot(sc *scene.Scene, lr *LayoutResult, opts Options) (sink.Snapshot, error) {
	items := sink.Items(sc)
	if opts.At <= 0 {
		return sink.NewSnapshot(lr.Width, lr.Height, items, lr.Targets), nil
	}

	fromCfg := lr.Config.Clone()
	if opts.From != nil {
		fromCfg.ActiveItem = layout.Wrap(*opts.From, len(sc.Items))
	} else {
		fromCfg.ActiveItem = layout.Wrap(lr.Config.ActiveItem-1, len(sc.Items))
	}
	from, err := layout.Compute(sc.Measurables(), fromCfg, lr.Width, lr.Height)
	if err != nil {
		return sink.Snapshot{}, fmt.Errorf("layout from item %d: %w", fromCfg.ActiveItem, err)
	}
	sampled, err := sink.Sample(from, lr.Targets, animate.TransitionFor(lr.Config), opts.At)
	if err != nil {
		return sink.Snapshot{}, err
	}
	snap := sink.NewSnapshot(lr.Width, lr.Height, items, sampled)
	snap.At = opts.At
	return snap, nil
}

// RenderSnapshot renders snap in every requested format.
func RenderSnapshot(snap sink.Snapshot, cfg layout.Config, opts Options) (map[string][]byte, error) {
	opts.SetRenderDefaults()
	out := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		switch format {
		case FormatSVG:
			out[format] = sink.RenderSVG(snap, svgOptions(opts)...)
		case FormatDOT:
			out[format] = []byte(nodelink.ToDOT(snap, nodelink.Options{Labels: opts.Labels}))
		case FormatRingSVG:
			data, err := nodelink.RenderSVG(nodelink.ToDOT(snap, nodelink.Options{Labels: opts.Labels}))
			if err != nil {
				return nil, fmt.Errorf("render ring: %w", err)
			}
			out[format] = data
		case FormatJSON:
			data, err := sink.RenderJSON(snap, sink.WithJSONConfig(cfg))
			if err != nil {
				return nil, fmt.Errorf("render json: %w", err)
			}
			out[format] = data
		default:
			return nil, ValidateFormat(format)
		}
	}
	return out, nil
}

func svgOptions(opts Options) []sink.SVGOption {
	var svgOpts []sink.SVGOption
	if opts.Labels {
		svgOpts = append(svgOpts, sink.WithLabels())
	}
	if opts.Fill != "" {
		svgOpts = append(svgOpts, sink.WithFill(opts.Fill))
	}
	if opts.Background != "" {
		svgOpts = append(svgOpts, sink.WithBackground(opts.Background))
	}
	return svgOpts
}
