package cli

import (
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yanqian/carbon-footprint/internal/domain/footprint"
)

const (
	chartWidth = 40
	labelWidth = 18
	barGlyph   = "█"
)

var (
	accent      = lipgloss.Color("#2E8B57")
	destructive = lipgloss.Color("#C0392B")
	muted       = lipgloss.Color("#7F8C8D")
)

type palette struct {
	title   lipgloss.Style
	result  lipgloss.Style
	failure lipgloss.Style
	label   lipgloss.Style
	bar     lipgloss.Style
	muted   lipgloss.Style
}

// newPalette binds styles to w so colour is dropped when w is not a terminal.
func newPalette(w io.Writer) palette {
	r := lipgloss.NewRenderer(w)
	return palette{
		title:   r.NewStyle().Bold(true).Underline(true),
		result:  r.NewStyle().Bold(true).Foreground(accent),
		failure: r.NewStyle().Bold(true).Foreground(destructive),
		label:   r.NewStyle().Width(labelWidth),
		bar:     r.NewStyle().Foreground(accent),
		muted:   r.NewStyle().Foreground(muted),
	}
}

func renderEstimate(w io.Writer, est footprint.Estimate) string {
	p := newPalette(w)
	var sb strings.Builder
	sb.WriteString(p.result.Render(est.Display))
	sb.WriteString("\n")
	if len(est.Ranking) > 0 {
		sb.WriteString("\n")
		sb.WriteString(renderChart(p, est.Ranking))
	}
	return sb.String()
}

func renderChart(p palette, items []footprint.Contributor) string {
	var sb strings.Builder
	sb.WriteString(p.title.Render("Contributors"))
	sb.WriteString("\n")
	widths := footprint.BarWidths(items, chartWidth)
	for i, item := range items {
		row := lipgloss.JoinHorizontal(lipgloss.Top,
			p.label.Render(item.Label),
			p.bar.Render(strings.Repeat(barGlyph, widths[i])),
			" ",
			p.muted.Render(strconv.FormatFloat(item.Value, 'f', -1, 64)),
		)
		sb.WriteString(row)
		sb.WriteString("\n")
	}
	return sb.String()
}
