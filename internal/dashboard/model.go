package dashboard

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/san-kum/suspsim/internal/config"
	"github.com/san-kum/suspsim/internal/results"
	"github.com/san-kum/suspsim/internal/suspension"
)

// Model is the interactive suspension dashboard.
type Model struct {
	cfg     *config.Config
	sliders []config.Slider
	cursor  int

	vehicle suspension.VehicleConfiguration
	state   suspension.DynamicState

	metrics suspension.DerivedMetrics
	sweep   []suspension.SweepSample
	accel   []suspension.Point
	lateral []suspension.Point
	err     error

	results *results.Log
	log     zerolog.Logger

	presets []string
	preset  int

	theme     Theme
	styles    styles
	exportDir string
	status    string
	help      bool

	width, height int
	evaluations   int
}

// New builds the dashboard from cfg and evaluates the initial parameters once.
func New(cfg *config.Config, log *results.Log, logger zerolog.Logger) Model {
	if log == nil {
		log = results.NewLog(cfg.Dashboard.MaxRows)
	}
	theme := GetTheme(cfg.Dashboard.Theme)
	m := Model{
		cfg:       cfg,
		sliders:   config.Sliders(),
		vehicle:   cfg.Vehicle,
		state:     cfg.State,
		results:   log,
		log:       logger.With().Str("component", "dashboard").Logger(),
		presets:   config.ListPresets(),
		theme:     theme,
		styles:    newStyles(theme),
		exportDir: ".",
		width:     120,
		height:    40,
	}
	for i, name := range m.presets {
		if name == cfg.Preset {
			m.preset = i
		}
	}
	m.recompute()
	return m
}

// WithExportDir sets where the e key writes result CSV files.
func (m Model) WithExportDir(dir string) Model {
	m.exportDir = dir
	return m
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.sliders)-1 {
			m.cursor++
		}
	case "left", "h":
		m.nudge(-1)
	case "right", "l":
		m.nudge(1)
	case "H", "shift+left":
		m.nudge(-10)
	case "L", "shift+right":
		m.nudge(10)
	case "r":
		m.vehicle, m.state = m.cfg.Vehicle, m.cfg.State
		m.status = "reset to configured defaults"
		m.recompute()
	case "p":
		if len(m.presets) == 0 {
			break
		}
		m.preset = (m.preset + 1) % len(m.presets)
		name := m.presets[m.preset]
		p := config.GetPreset(name)
		m.vehicle, m.state = p.Vehicle, p.State
		m.status = "preset " + name
		m.recompute()
	case "t":
		m.theme = nextTheme(m.theme)
		m.styles = newStyles(m.theme)
	case "e":
		m.export()
	case "?":
		m.help = !m.help
	}
	return m, nil
}

// nudge moves the selected slider by n steps. Nothing is recomputed when
// the value does not change, as at a range boundary or on a fixed slider.
func (m *Model) nudge(n int) {
	s := m.sliders[m.cursor]
	cur := s.Value(m.vehicle, m.state)
	next := s.Nudge(cur, n)
	if next == cur {
		return
	}
	m.vehicle, m.state = s.Set(m.vehicle, m.state, next)
	m.status = ""
	m.recompute()
}

func (m *Model) recompute() {
	m.evaluations++
	res, err := suspension.Evaluate(m.vehicle, m.state)
	if err != nil {
		m.err = err
		m.log.Warn().Err(err).Msg("evaluation rejected")
		return
	}
	m.err = nil
	m.metrics = res
	m.results.Append(res)

	sw := m.cfg.Sweep
	if m.sweep, err = suspension.SweepWeightShift(m.vehicle, m.state, sw.Speeds, sw.Radii, sw.Steps); err != nil {
		m.log.Warn().Err(err).Msg("weight shift sweep failed")
	}
	if m.accel, err = suspension.AccelerationSeries(sw.Speeds, m.state.Radius, m.vehicle.Gravity, sw.Steps); err != nil {
		m.log.Warn().Err(err).Msg("acceleration series failed")
	}
	if m.lateral, err = suspension.LateralForceSeries(sw.Speeds, m.state.Radius, m.vehicle.Gravity, m.vehicle.Weight, sw.Steps); err != nil {
		m.log.Warn().Err(err).Msg("lateral force series failed")
	}
	m.log.Debug().
		Float64("speed", m.state.Speed).
		Float64("radius", m.state.Radius).
		Float64("acceleration", res.Acceleration).
		Msg("evaluated")
}

func (m *Model) export() {
	if m.results.Len() == 0 {
		m.status = "nothing to export"
		return
	}
	path := filepath.Join(m.exportDir, fmt.Sprintf("suspsim-%s.csv", time.Now().Format("20060102-150405")))
	f, err := os.Create(path)
	if err != nil {
		m.status = "export failed: " + err.Error()
		return
	}
	defer f.Close()
	if err := m.results.WriteCSV(f); err != nil {
		m.status = "export failed: " + err.Error()
		return
	}
	m.status = fmt.Sprintf("exported %d rows to %s", m.results.Len(), path)
	m.log.Info().Str("path", path).Int("rows", m.results.Len()).Msg("results exported")
}

// Run starts the dashboard on the alternate screen and blocks until quit.
func Run(cfg *config.Config, log *results.Log, logger zerolog.Logger) error {
	p := tea.NewProgram(New(cfg, log, logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
