package dashboard

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	title    lipgloss.Style
	subtle   lipgloss.Style
	label    lipgloss.Style
	active   lipgloss.Style
	value    lipgloss.Style
	readout  lipgloss.Style
	err      lipgloss.Style
	panel    lipgloss.Style
	keyHint  lipgloss.Style
	keyName  lipgloss.Style
	gaugeOn  lipgloss.Style
	gaugeOff lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(t.Secondary),
		subtle:   lipgloss.NewStyle().Foreground(t.Muted),
		label:    lipgloss.NewStyle().Foreground(t.Muted).Width(20),
		active:   lipgloss.NewStyle().Bold(true).Foreground(t.Primary).Width(20),
		value:    lipgloss.NewStyle().Foreground(t.Text).Width(9).Align(lipgloss.Right),
		readout:  lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
		err:      lipgloss.NewStyle().Bold(true).Foreground(t.Error),
		panel:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Border).Padding(0, 1),
		keyHint:  lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		keyName:  lipgloss.NewStyle().Bold(true).Foreground(t.Secondary),
		gaugeOn:  lipgloss.NewStyle().Foreground(t.Secondary),
		gaugeOff: lipgloss.NewStyle().Foreground(t.Border),
	}
}

// gauge renders the position of v within [lo, hi].
func (s styles) gauge(v, lo, hi float64, width int) string {
	frac := 1.0
	if hi > lo {
		frac = (v - lo) / (hi - lo)
	}
	filled := int(frac*float64(width) + 0.5)
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return s.gaugeOn.Render(strings.Repeat("█", filled)) + s.gaugeOff.Render(strings.Repeat("░", width-filled))
}

func (s styles) hints(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(s.keyName.Render(pairs[i]))
		b.WriteString(s.keyHint.Render(" " + pairs[i+1]))
	}
	return b.String()
}
