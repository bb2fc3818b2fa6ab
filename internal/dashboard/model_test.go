package dashboard

import (
	"errors"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/rs/zerolog"

	"github.com/san-kum/suspsim/internal/config"
	"github.com/san-kum/suspsim/internal/results"
	"github.com/san-kum/suspsim/internal/suspension"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m Model, keys ...tea.KeyMsg) Model {
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(Model)
	}
	return m
}

func selectSlider(m Model, name string) Model {
	for i, s := range m.sliders {
		if s.Name == name {
			m.cursor = i
			return m
		}
	}
	Fail("no slider " + name)
	return m
}

var _ = Describe("Model", func() {
	var (
		cfg *config.Config
		log *results.Log
		m   Model
	)

	BeforeEach(func() {
		cfg = config.DefaultConfig()
		log = results.NewLog(0)
		m = New(cfg, log, zerolog.Nop())
	})

	Context("on start", func() {
		It("evaluates the configured parameters once", func() {
			Expect(m.evaluations).To(Equal(1))
			Expect(m.err).NotTo(HaveOccurred())
			Expect(log.Len()).To(Equal(1))
			Expect(m.metrics.Acceleration).To(BeNumerically("~", 3.276435, 1e-5))
			Expect(m.metrics.FrontShift).To(BeNumerically("~", 94.752939, 1e-5))
			Expect(m.metrics.RearShift).To(BeNumerically("~", 115.809147, 1e-5))
		})

		It("fills the three chart series", func() {
			Expect(m.sweep).To(HaveLen(cfg.Sweep.Steps))
			Expect(m.accel).To(HaveLen(cfg.Sweep.Steps))
			Expect(m.lateral).To(HaveLen(cfg.Sweep.Steps))
		})

		It("shows readouts with two decimals", func() {
			view := m.View()
			Expect(view).To(ContainSubstring("3.28"))
			Expect(view).To(ContainSubstring("94.75"))
			Expect(view).To(ContainSubstring("115.81"))
			Expect(view).To(ContainSubstring("1245.05"))
			Expect(view).To(ContainSubstring("16.00"))
		})
	})

	Context("navigating", func() {
		It("moves the cursor within the slider list", func() {
			m = press(m, runes("k"))
			Expect(m.cursor).To(Equal(0))
			m = press(m, runes("j"), runes("j"))
			Expect(m.cursor).To(Equal(2))
			for range m.sliders {
				m = press(m, tea.KeyMsg{Type: tea.KeyDown})
			}
			Expect(m.cursor).To(Equal(len(m.sliders) - 1))
		})

		It("does not evaluate on selection changes", func() {
			m = press(m, runes("j"), runes("k"))
			Expect(m.evaluations).To(Equal(1))
			Expect(log.Len()).To(Equal(1))
		})
	})

	Context("adjusting a slider", func() {
		It("evaluates once and appends one row per step", func() {
			m = selectSlider(m, config.SliderSpeed)
			m = press(m, runes("l"))
			Expect(m.state.Speed).To(BeNumerically("~", 13.98, 1e-9))
			Expect(m.evaluations).To(Equal(2))
			Expect(log.Len()).To(Equal(2))

			m = press(m, runes("h"), runes("h"))
			Expect(m.state.Speed).To(BeNumerically("~", 13.78, 1e-9))
			Expect(m.evaluations).To(Equal(4))
			Expect(log.Len()).To(Equal(4))

			last, ok := log.Last()
			Expect(ok).To(BeTrue())
			Expect(last.Speed).To(BeNumerically("~", 13.78, 1e-9))
		})

		It("takes ten steps with the shifted keys", func() {
			m = selectSlider(m, config.SliderWeight)
			m = press(m, runes("L"))
			Expect(m.vehicle.Weight).To(BeNumerically("~", 480, 1e-9))
			Expect(m.evaluations).To(Equal(2))
		})

		It("clamps to the slider range and skips unchanged values", func() {
			m = selectSlider(m, config.SliderRadius)
			for i := 0; i < 5; i++ {
				m = press(m, runes("L"))
			}
			Expect(m.state.Radius).To(Equal(10.0))
			n := m.evaluations
			m = press(m, runes("l"))
			Expect(m.state.Radius).To(Equal(10.0))
			Expect(m.evaluations).To(Equal(n))
		})

		It("leaves the fixed wheel base alone", func() {
			m = selectSlider(m, config.SliderWheelBase)
			m = press(m, runes("l"), runes("H"))
			Expect(m.vehicle.WheelBase).To(Equal(suspension.DefaultWheelBase))
			Expect(m.evaluations).To(Equal(1))
		})

		It("keeps the weight ratios summing to one", func() {
			m = selectSlider(m, config.SliderFrontRatio)
			m = press(m, runes("l"))
			Expect(m.vehicle.FrontRatio).To(BeNumerically("~", 0.55, 1e-9))
			Expect(m.vehicle.RearRatio).To(BeNumerically("~", 0.45, 1e-9))

			m = selectSlider(m, config.SliderRearRatio)
			m = press(m, runes("L"))
			Expect(m.vehicle.RearRatio).To(Equal(1.0))
			Expect(m.vehicle.FrontRatio).To(BeNumerically("~", 0, 1e-9))
			Expect(m.err).NotTo(HaveOccurred())
		})
	})

	Context("with invalid configured input", func() {
		BeforeEach(func() {
			cfg.State.Radius = 0
			log = results.NewLog(0)
			m = New(cfg, log, zerolog.Nop())
		})

		It("shows the error and records nothing", func() {
			Expect(errors.Is(m.err, suspension.ErrInvalidInput)).To(BeTrue())
			Expect(log.Len()).To(Equal(0))
			Expect(m.View()).To(ContainSubstring("radius"))
			Expect(m.View()).To(ContainSubstring("charts unavailable"))
		})

		It("recovers once the slider brings the value back in range", func() {
			m = selectSlider(m, config.SliderRadius)
			m = press(m, runes("l"))
			Expect(m.state.Radius).To(Equal(1.0))
			Expect(m.err).NotTo(HaveOccurred())
			Expect(log.Len()).To(Equal(1))
		})
	})

	Context("presets, reset and themes", func() {
		It("cycles to the next preset and evaluates it", func() {
			before := m.currentPreset()
			m = press(m, runes("p"))
			Expect(m.currentPreset()).NotTo(Equal(before))
			p := config.GetPreset(m.currentPreset())
			Expect(m.vehicle).To(Equal(p.Vehicle))
			Expect(m.state).To(Equal(p.State))
			Expect(log.Len()).To(Equal(2))
		})

		It("resets to the configured parameters", func() {
			m = selectSlider(m, config.SliderWeight)
			m = press(m, runes("l"), runes("r"))
			Expect(m.vehicle).To(Equal(cfg.Vehicle))
			Expect(m.state).To(Equal(cfg.State))
			Expect(log.Len()).To(Equal(3))
		})

		It("cycles themes without evaluating", func() {
			first := m.theme.Name
			m = press(m, runes("t"))
			Expect(m.theme.Name).NotTo(Equal(first))
			for i := 1; i < len(Themes); i++ {
				m = press(m, runes("t"))
			}
			Expect(m.theme.Name).To(Equal(first))
			Expect(m.evaluations).To(Equal(1))
		})
	})

	Context("exporting", func() {
		It("writes the results log as CSV", func() {
			dir, err := os.MkdirTemp("", "suspsim-export")
			Expect(err).NotTo(HaveOccurred())
			DeferCleanup(os.RemoveAll, dir)
			m = m.WithExportDir(dir)
			m = press(m, runes("e"))

			var files []string
			files, err = filepath.Glob(filepath.Join(dir, "suspsim-*.csv"))
			Expect(err).NotTo(HaveOccurred())
			Expect(files).To(HaveLen(1))
			data, err := os.ReadFile(files[0])
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(HavePrefix("id,"))
			Expect(m.status).To(ContainSubstring("exported 1 rows"))
		})
	})

	It("quits on q", func() {
		_, cmd := m.Update(runes("q"))
		Expect(cmd).NotTo(BeNil())
		Expect(cmd()).To(Equal(tea.Quit()))
	})
})
