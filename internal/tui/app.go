// Package tui runs a level in the terminal with bubbletea.
package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/rebound/internal/automation"
	"github.com/san-kum/rebound/internal/config"
	"github.com/san-kum/rebound/internal/entity"
	"github.com/san-kum/rebound/internal/logging"
	"github.com/san-kum/rebound/internal/render"
	"github.com/san-kum/rebound/internal/sim"
	"github.com/san-kum/rebound/internal/unique"
	"github.com/san-kum/rebound/internal/viz"
)

const historyLen = 60

type Options struct {
	Config *config.Config
	Theme  string
	// RecordPath receives the recorded scenario when recording stops.
	RecordPath string
}

type model struct {
	cfg        *config.Config
	recordPath string

	sim    *sim.Simulator
	keys   *Keyboard
	theme  viz.Theme
	report sim.FrameReport

	paused    bool
	speed     int
	recording bool
	recorder  *automation.Recorder
	history   []float64
	status    string
	err       error

	width  int
	height int
}

func newModel(opts Options) (model, error) {
	m := model{
		cfg:        opts.Config,
		recordPath: opts.RecordPath,
		keys:       NewKeyboard(),
		theme:      viz.GetTheme(opts.Theme),
		speed:      1,
		width:      80,
		height:     24,
	}
	if m.recordPath == "" {
		m.recordPath = "recorded.yaml"
	}
	if err := m.reset(); err != nil {
		return m, err
	}
	return m, nil
}

func (m *model) reset() error {
	store, err := m.cfg.NewStore()
	if err != nil {
		return err
	}
	m.sim = sim.New(store, m.keys)
	m.keys.Release()
	m.report = sim.FrameReport{}
	m.history = make([]float64, 0, historyLen)
	return nil
}

func (m model) Init() tea.Cmd { return tick(m.fps()) }

type tickMsg time.Time

func tick(fps int) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) fps() int {
	if m.cfg.Render.FPS > 0 {
		return m.cfg.Render.FPS
	}
	return config.DefaultFPS
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if m.err != nil {
			return m, tea.Quit
		}
		if !m.paused {
			for i := 0; i < m.speed; i++ {
				m.step()
			}
		}
		return m, tick(m.fps())
	}
	return m, nil
}

func (m *model) step() {
	report, err := m.sim.Next()
	if err != nil {
		m.err = err
		return
	}
	m.report = report
	if m.recording {
		m.recorder.Sample(m.keys)
	}
	store := m.sim.Store()
	if v, ok := store.Velocity.Get(store.Player); ok {
		m.history = append(m.history, v.Len())
		if len(m.history) > historyLen {
			m.history = m.history[1:]
		}
	}
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	key := msg.String()
	if b, ok := keyButtons[key]; ok {
		m.keys.Press(b)
		return m, nil
	}
	switch key {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case " ", "p":
		m.paused = !m.paused
	case ".":
		if m.paused {
			m.step()
		}
	case "r":
		if err := m.reset(); err != nil {
			m.err = err
			return m, tea.Quit
		}
		m.status = "reset"
	case "x":
		if crate, ok := firstCrate(m.sim.Store()); ok {
			m.sim.Store().Destroy(crate)
			m.status = "despawned " + crate.String()
		}
	case "o":
		m.toggleRecording()
	case "t":
		m.theme = viz.NextTheme(m.theme)
	case "+", "=":
		m.speed = min(m.speed*2, 8)
	case "-", "_":
		m.speed = max(m.speed/2, 1)
	}
	return m, nil
}

func (m *model) toggleRecording() {
	if !m.recording {
		m.recording = true
		m.recorder = &automation.Recorder{}
		m.status = "recording"
		return
	}
	m.recording = false
	sc := m.recorder.Scenario(m.cfg.Name)
	if err := sc.Save(m.recordPath); err != nil {
		logging.Warnf("tui: save scenario: %v", err)
		m.status = "record failed"
		return
	}
	m.status = fmt.Sprintf("saved %d frames to %s", sc.Frames(), m.recordPath)
}

func firstCrate(s *entity.Store) (key unique.Key, ok bool) {
	for k, t := range s.Types.Iter() {
		if t == entity.Crate {
			return k, true
		}
	}
	return key, false
}

func (m model) View() string {
	cw := max(m.width-4, 40)
	ch := max(m.height-10, 10)
	canvas := viz.NewCanvas(cw, ch)
	store := m.sim.Store()
	sprites := render.Snapshot(store, store.Params.PixelsPerUnit)
	viz.DrawScene(canvas, sprites, render.Bounds(sprites))

	var b strings.Builder
	status := viz.StatusRunning.Render("● running")
	if m.paused {
		status = viz.StatusPaused.Render("○ paused")
	}
	if m.recording {
		status += " " + viz.StatusPaused.Render("◉ rec")
	}
	fmt.Fprintf(&b, " %s  %s  %s  x%d\n", viz.Title.Render("rebound"), viz.Subtle.Render(m.cfg.Name), status, m.speed)
	b.WriteString(canvas.Render(m.theme.InkStyles()))

	pos, _ := store.Position(store.Player)
	vel, _ := store.Velocity.Get(store.Player)
	b.WriteString(viz.Metric("frame", fmt.Sprintf("%d", m.sim.Frame())) + "   ")
	b.WriteString(viz.Metric("position", pos.String()) + "\n")
	b.WriteString(viz.Metric("velocity", vel.String()) + "   ")
	b.WriteString(viz.Metric("contacts", fmt.Sprintf("%d/%d", m.report.TerrainContacts, m.report.Started)) + "\n")

	limit := store.Params.VelocityCap.Len()
	if math.IsNaN(limit) || limit <= 0 {
		limit = 1
	}
	b.WriteString(viz.MetricLabel.Render("speed") + viz.Sparkline(m.history, 0, limit, historyLen) + "\n")
	if m.status != "" {
		b.WriteString(viz.Subtle.Render(" "+m.status) + "\n")
	}
	b.WriteString(viz.KeyHint.Render(" arrows/wasd move  space pause  . step  r reset  x despawn  o record  t theme  ±speed  q quit") + "\n")
	return b.String()
}

// Run blocks until the user quits.
func Run(opts Options) error {
	m, err := newModel(opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(model); ok && fm.err != nil {
		return fm.err
	}
	return nil
}
