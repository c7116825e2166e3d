package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// stdout receives every status line; tests swap it out.
var stdout io.Writer = os.Stdout

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)
	StyleLink      = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)
	StyleDim       = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue     = lipgloss.NewStyle().Foreground(colorWhite)
	StyleNumber    = lipgloss.NewStyle().Foreground(colorCyan)
)

var (
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
)

const (
	iconError = "✗"
	iconArrow = "→"
)

// marker is the coloured glyph that opens a status line.
type marker struct {
	glyph string
	style lipgloss.Style
	body  *lipgloss.Style
}

var (
	markSuccess = marker{glyph: "✓", style: lipgloss.NewStyle().Foreground(colorGreen)}
	markError   = marker{glyph: iconError, style: lipgloss.NewStyle().Foreground(colorRed)}
	markInfo    = marker{glyph: "›", style: lipgloss.NewStyle().Foreground(colorGray)}
	markWarning = func() marker {
		s := lipgloss.NewStyle().Foreground(colorYellow)
		return marker{glyph: "!", style: s, body: &s}
	}()
)

func (m marker) print(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if m.body != nil {
		msg = m.body.Render(msg)
	}
	fmt.Fprintln(stdout, m.style.Render(m.glyph)+" "+msg)
}

func printSuccess(format string, args ...any) { markSuccess.print(format, args...) }
func printError(format string, args ...any)   { markError.print(format, args...) }
func printWarning(format string, args ...any) { markWarning.print(format, args...) }
func printInfo(format string, args ...any)    { markInfo.print(format, args...) }

// printDetail prints an indented, muted line under the previous status.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile announces a written output file.
func printFile(path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(stdout, styleKey.Render(key)+" "+StyleValue.Render(value))
}

// printStats summarises a pass: item count, active index, and whether the
// result came from the cache.
func printStats(itemCount, active int, cached bool) {
	origin := lipgloss.NewStyle().Foreground(colorGray).Render("fresh")
	if cached {
		origin = lipgloss.NewStyle().Foreground(colorGreen).Render("cached")
	}
	parts := []string{
		StyleDim.Render(fmt.Sprintf("%d items", itemCount)),
		StyleDim.Render(fmt.Sprintf("active %d", active)),
		origin,
	}
	fmt.Fprintln(stdout, "  "+strings.Join(parts, StyleDim.Render(" · ")))
}

func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

func printNewline() { fmt.Fprintln(stdout) }
