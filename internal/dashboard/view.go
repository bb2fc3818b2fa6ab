package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/suspsim/internal/chart"
	"github.com/san-kum/suspsim/internal/config"
	"github.com/san-kum/suspsim/internal/results"
)

const gaugeWidth = 16

func (m Model) View() string {
	s := m.styles
	title := s.title.Render("SUSPENSION CALCULATOR") + "  " +
		s.subtle.Render(fmt.Sprintf("preset %s · theme %s", m.currentPreset(), m.theme.Name))

	left := lipgloss.JoinVertical(lipgloss.Left,
		s.panel.Render(m.viewSliders()),
		s.panel.Render(m.viewReadouts()),
	)
	top := lipgloss.JoinHorizontal(lipgloss.Top, left, s.panel.Render(m.viewCharts()))

	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(top)
	b.WriteString("\n")
	b.WriteString(s.panel.Render(m.viewResults()))
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(s.subtle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.viewHelp())
	return b.String()
}

func (m Model) currentPreset() string {
	if len(m.presets) == 0 {
		return "-"
	}
	return m.presets[m.preset]
}

func (m Model) viewSliders() string {
	s := m.styles
	var b strings.Builder
	b.WriteString(s.title.Render("PARAMETERS"))
	b.WriteString("\n")
	for i, sl := range m.sliders {
		v := sl.Value(m.vehicle, m.state)
		label := s.label.Render(sl.Label)
		prefix := "  "
		if i == m.cursor {
			label = s.active.Render(sl.Label)
			prefix = s.active.UnsetWidth().Render("▸ ")
		}
		val := s.value.Render(fmt.Sprintf("%.2f", v))
		bar := s.gauge(v, sl.Min, sl.Max, gaugeWidth)
		if sl.Fixed() {
			bar = s.subtle.Render(fmt.Sprintf("%-*s", gaugeWidth, "fixed"))
		}
		fmt.Fprintf(&b, "%s%s %s %s %s\n", prefix, label, val, bar, s.subtle.Render(sl.Unit))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) viewReadouts() string {
	s := m.styles
	if m.err != nil {
		return s.title.Render("RESULTS") + "\n" + s.err.Render(m.err.Error())
	}
	r := m.metrics
	rows := []struct {
		label string
		value float64
		unit  string
	}{
		{"Centripetal Accel.", r.Acceleration, "g"},
		{"Front Weight Shift", r.FrontShift, "N"},
		{"Rear Weight Shift", r.RearShift, "N"},
		{"Lateral Force", r.LateralForce, "N"},
		{"Longitudinal Force", r.LongitudinalForce, "N"},
		{"Tire Slip Angle", r.SlipAngle, "deg"},
	}
	var b strings.Builder
	b.WriteString(s.title.Render("RESULTS"))
	for _, row := range rows {
		fmt.Fprintf(&b, "\n  %s %s %s", s.label.Render(row.label), s.readout.Render(fmt.Sprintf("%10.2f", row.value)), s.subtle.Render(row.unit))
	}
	return b.String()
}

func (m Model) chartOptions() chart.Options {
	w := m.width - 70
	if w < 30 {
		w = 30
	}
	h := (m.height - 20) / 3
	if h < 4 {
		h = 4
	}
	return chart.Options{Width: w, Height: h}
}

func (m Model) viewCharts() string {
	if m.err != nil {
		return m.styles.subtle.Render("charts unavailable")
	}
	opts := m.chartOptions()
	return lipgloss.JoinVertical(lipgloss.Left,
		chart.WeightShift(m.sweep, opts),
		"",
		chart.Acceleration(m.accel, opts),
		"",
		chart.LateralForce(m.lateral, opts),
	)
}

func (m Model) viewResults() string {
	s := m.styles
	n := m.cfg.Dashboard.History
	if n <= 0 {
		n = config.DefaultHistory
	}
	rows := m.results.Tail(n)
	var b strings.Builder
	b.WriteString(s.title.Render(fmt.Sprintf("HISTORY (%d)", m.results.Len())))
	b.WriteString("\n")
	if len(rows) == 0 {
		b.WriteString(s.subtle.Render("no results yet"))
		return b.String()
	}
	if err := results.WriteTable(&b, rows); err != nil {
		b.WriteString(s.err.Render(err.Error()))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) viewHelp() string {
	if !m.help {
		return m.styles.hints("j/k", "select", "h/l", "adjust", "?", "help", "q", "quit")
	}
	return m.styles.hints(
		"j/k", "select", "h/l", "step", "H/L", "10 steps",
		"r", "reset", "p", "preset", "t", "theme",
		"e", "export csv", "q", "quit",
	)
}
