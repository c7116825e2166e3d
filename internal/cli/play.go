package cli

import (
	"cmp"
	"context"
	"fmt"
	"math"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/carousel/pkg/animate"
	"github.com/matzehuels/carousel/pkg/carousel"
	"github.com/matzehuels/carousel/pkg/errors"
	"github.com/matzehuels/carousel/pkg/scene"
)

const (
	// cellWidth and cellHeight map terminal cells to container pixels.
	cellWidth  = 8.0
	cellHeight = 16.0

	frameInterval = time.Second / 30
	chromeRows    = 3
)

// Play styles
var (
	playActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	playItemStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	playDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	playErrorStyle  = lipgloss.NewStyle().Foreground(colorRed)
)

// playCommand creates the play command, an interactive terminal carousel.
func (c *CLI) playCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "play [scene]",
		Short: "Browse a scene interactively in the terminal",
		Long: `Browse a scene interactively in the terminal.

Use ←/→ (or h/l) to move between items, or click on the left or right half
of the screen. Transitions are animated with the scene's duration and easing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPlay(cmd.Context(), args[0])
		},
	}
}

func (c *CLI) runPlay(ctx context.Context, input string) error {
	sc, err := scene.Load(input)
	if err != nil {
		return err
	}
	cfg, err := sc.LayoutConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sprites := sc.Sprites()
	ctrl := carousel.New(scene.AsItems(sprites),
		carousel.WithConfig(cfg),
		carousel.WithLogger(c.Logger),
		carousel.WithContext(ctx))

	m := newPlayModel(ctrl, sprites, sc)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}

// =============================================================================
// Key bindings
// =============================================================================

type playKeys struct {
	Prev key.Binding
	Next key.Binding
	Quit key.Binding
}

func newPlayKeys() playKeys {
	return playKeys{
		Prev: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l", " "),
			key.WithHelp("→/l", "next"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k playKeys) help() string {
	parts := make([]string, 0, 4)
	for _, b := range []key.Binding{k.Prev, k.Next, k.Quit} {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	parts = append(parts, "click tap")
	return strings.Join(parts, "  ")
}

// =============================================================================
// playModel - Interactive carousel
// =============================================================================

type frameMsg time.Time

type playModel struct {
	ctrl    *carousel.Carousel
	sprites []*animate.Sprite
	labels  []string
	keys    playKeys
	passes  *atomic.Int64

	cols, rows int
	last       time.Time
	err        error
}

func newPlayModel(ctrl *carousel.Carousel, sprites []*animate.Sprite, sc *scene.Scene) playModel {
	labels := make([]string, len(sc.Items))
	for i, it := range sc.Items {
		labels[i] = it.Label
		if labels[i] == "" {
			labels[i] = fmt.Sprintf("%d", i)
		}
	}
	passes := &atomic.Int64{}
	ctrl.Subscribe(func(*carousel.Pass) { passes.Add(1) })
	return playModel{
		ctrl:    ctrl,
		sprites: sprites,
		labels:  labels,
		keys:    newPlayKeys(),
		passes:  passes,
	}
}

func frame() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m playModel) Init() tea.Cmd {
	return frame()
}

func (m playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.cols = msg.Width
		m.rows = max(msg.Height-chromeRows, 3)
		_, err := m.ctrl.Resize(float64(m.cols)*cellWidth, float64(m.rows)*cellHeight)
		if err == nil && !m.ctrl.Ready() {
			_, err = m.ctrl.Load()
		}
		m.setErr(err)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Prev):
			_, err := m.ctrl.Previous()
			m.setErr(err)
		case key.Matches(msg, m.keys.Next):
			_, err := m.ctrl.Next()
			m.setErr(err)
		}

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			pt := &carousel.Point{
				X: (float64(msg.X) + 0.5) * cellWidth,
				Y: (float64(msg.Y) + 0.5) * cellHeight,
			}
			_, err := m.ctrl.Tap(pt)
			m.setErr(err)
		}

	case frameMsg:
		now := time.Time(msg)
		if !m.last.IsZero() {
			dt := now.Sub(m.last)
			for _, s := range m.sprites {
				s.Tick(dt)
			}
		}
		m.last = now
		return m, frame()
	}
	return m, nil
}

// setErr records the outcome of the last event. Errors are shown in the
// status line and do not end the session.
func (m *playModel) setErr(err error) {
	m.err = err
}

func (m playModel) View() string {
	var b strings.Builder

	active := m.ctrl.ActiveItem()
	title := "Carousel"
	if active < len(m.labels) {
		title += "  " + StyleDim.Render("›") + " " + StyleHighlight.Render(m.labels[active])
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")

	if m.cols > 0 {
		b.WriteString(m.canvas())
	}

	if m.err != nil {
		b.WriteString(playErrorStyle.Render(iconError + " " + errors.UserMessage(m.err)))
	} else {
		status := fmt.Sprintf("item %d/%d · %d passes · ", active+1, len(m.sprites), m.passes.Load())
		b.WriteString(playDimStyle.Render(status + m.keys.help()))
	}
	return b.String()
}

// canvas draws every sprite as a labelled box, painting in z-index order.
func (m playModel) canvas() string {
	grid := make([][]rune, m.rows)
	owner := make([][]int, m.rows)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(" ", m.cols))
		owner[r] = make([]int, m.cols)
		for c := range owner[r] {
			owner[r][c] = -1
		}
	}

	order := make([]int, len(m.sprites))
	for i := range order {
		order[i] = i
	}
	states := make([]animate.State, len(m.sprites))
	for i, s := range m.sprites {
		states[i] = s.State()
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(states[a].ZIndex, states[b].ZIndex)
	})

	for _, i := range order {
		s := m.sprites[i]
		cx, cy := s.Center()
		w := math.Max(s.Width()*states[i].Scale/cellWidth, 3)
		h := math.Max(s.Height()*states[i].Scale/cellHeight, 3)
		if math.IsNaN(w) || math.IsNaN(h) {
			continue
		}
		left := int(math.Round(cx/cellWidth - w/2))
		top := int(math.Round(cy/cellHeight - h/2))
		drawBox(grid, owner, i, left, top, int(math.Round(w)), int(math.Round(h)), m.labels[i])
	}

	active := m.ctrl.ActiveItem()
	var b strings.Builder
	for r := range grid {
		start := 0
		for c := 1; c <= m.cols; c++ {
			if c < m.cols && owner[r][c] == owner[r][start] {
				continue
			}
			seg := string(grid[r][start:c])
			switch owner[r][start] {
			case -1:
				b.WriteString(seg)
			case active:
				b.WriteString(playActiveStyle.Render(seg))
			default:
				b.WriteString(playItemStyle.Render(seg))
			}
			start = c
		}
		b.WriteString("\n")
	}
	return b.String()
}

func drawBox(grid [][]rune, owner [][]int, id, left, top, w, h int, label string) {
	put := func(r, c int, ch rune) {
		if r < 0 || r >= len(grid) || c < 0 || c >= len(grid[r]) {
			return
		}
		grid[r][c] = ch
		owner[r][c] = id
	}
	right, bottom := left+w-1, top+h-1
	for r := top; r <= bottom; r++ {
		for c := left; c <= right; c++ {
			ch := ' '
			switch {
			case r == top && c == left:
				ch = '╭'
			case r == top && c == right:
				ch = '╮'
			case r == bottom && c == left:
				ch = '╰'
			case r == bottom && c == right:
				ch = '╯'
			case r == top || r == bottom:
				ch = '─'
			case c == left || c == right:
				ch = '│'
			}
			put(r, c, ch)
		}
	}

	runes := []rune(label)
	if inner := w - 2; len(runes) > inner {
		runes = runes[:max(inner, 0)]
	}
	mid := top + h/2
	start := left + (w-len(runes))/2
	for i, ch := range runes {
		put(mid, start+i, ch)
	}
}
