package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/haptics-runtime/ahap"
	"github.com/wippyai/haptics-runtime/engine"
	"github.com/wippyai/haptics-runtime/feedback"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#D9536B")).
			Padding(0, 1)

	itemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#D9536B"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	eventStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type padState int

const (
	statePad padState = iota
	stateOpenFile
)

type padItem struct {
	name    string
	pattern *ahap.Pattern
}

type padModel struct {
	err       error
	eng       *engine.Engine
	player    *engine.Player
	events    chan engine.Event
	items     []padItem
	selected  int
	intensity float64
	sharpness float64
	loop      bool
	lastEvent string
	state     padState
	fileInput textinput.Model
}

func builtinItems() []padItem {
	return []padItem{
		{"impact light", feedback.ImpactPattern(feedback.ImpactLight)},
		{"impact medium", feedback.ImpactPattern(feedback.ImpactMedium)},
		{"impact heavy", feedback.ImpactPattern(feedback.ImpactHeavy)},
		{"impact soft", feedback.ImpactPattern(feedback.ImpactSoft)},
		{"impact rigid", feedback.ImpactPattern(feedback.ImpactRigid)},
		{"notification success", feedback.NotificationPattern(feedback.NotificationSuccess)},
		{"notification warning", feedback.NotificationPattern(feedback.NotificationWarning)},
		{"notification error", feedback.NotificationPattern(feedback.NotificationError)},
		{"selection tick", feedback.SelectionPattern()},
	}
}

func newPadModel(file string) (*padModel, error) {
	m := &padModel{
		events:    make(chan engine.Event, 16),
		items:     builtinItems(),
		intensity: 1.0,
	}

	if file != "" {
		pat, err := ahap.DecodeFile(file)
		if err != nil {
			return nil, err
		}
		m.items = append(m.items, padItem{name: file, pattern: pat})
		m.selected = len(m.items) - 1
	}

	ti := textinput.New()
	ti.Placeholder = "path/to/pattern.ahap"
	ti.Prompt = "open: "
	ti.Width = 40
	m.fileInput = ti
	return m, nil
}

type engineReadyMsg struct {
	err error
	eng *engine.Engine
}

type engineEventMsg engine.Event

type playedMsg struct{ err error }

func (m *padModel) Init() tea.Cmd {
	return tea.Batch(m.startEngine, m.waitForEvent)
}

func (m *padModel) startEngine() tea.Msg {
	eng, err := engine.New(feedback.DefaultDevice(),
		engine.WithLogger(newLogger()),
		engine.WithStateHandler(func(ev engine.Event) {
			select {
			case m.events <- ev:
			default:
			}
		}))
	if err != nil {
		return engineReadyMsg{err: err}
	}
	if err := eng.Start(context.Background()); err != nil {
		eng.Close()
		return engineReadyMsg{err: err}
	}
	return engineReadyMsg{eng: eng}
}

func (m *padModel) waitForEvent() tea.Msg {
	return engineEventMsg(<-m.events)
}

func (m *padModel) play() tea.Msg {
	if m.eng == nil {
		return playedMsg{err: fmt.Errorf("engine not ready")}
	}
	if m.player != nil {
		m.player.Close()
		m.player = nil
	}

	player, err := m.eng.NewPlayer(m.items[m.selected].pattern)
	if err != nil {
		return playedMsg{err: err}
	}
	if m.loop {
		if err := player.SetLoop(true, 0, 0); err != nil {
			player.Close()
			return playedMsg{err: err}
		}
	}
	if err := player.SendParameter(engine.ParameterIntensityControl, m.intensity, 0); err != nil {
		player.Close()
		return playedMsg{err: err}
	}
	if err := player.SendParameter(engine.ParameterSharpnessControl, m.sharpness, 0); err != nil {
		player.Close()
		return playedMsg{err: err}
	}
	if err := player.Play(0); err != nil {
		player.Close()
		return playedMsg{err: err}
	}
	m.player = player
	return playedMsg{}
}

func (m *padModel) shutdown() {
	if m.player != nil {
		m.player.Close()
	}
	if m.eng != nil {
		m.eng.Close()
	}
}

func (m *padModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.state == stateOpenFile {
			return m.updateOpenFile(msg)
		}

		switch msg.String() {
		case "ctrl+c", "q":
			m.shutdown()
			return m, tea.Quit

		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.selected < len(m.items)-1 {
				m.selected++
			}

		case "enter", " ":
			return m, m.play

		case "s":
			if m.player != nil {
				m.err = m.player.Stop(0)
			}

		case "l":
			m.loop = !m.loop

		case "+", "=":
			m.intensity = clampUnit(m.intensity + 0.1)
			m.sendControls()

		case "-":
			m.intensity = clampUnit(m.intensity - 0.1)
			m.sendControls()

		case "]":
			m.sharpness = clampSigned(m.sharpness + 0.1)
			m.sendControls()

		case "[":
			m.sharpness = clampSigned(m.sharpness - 0.1)
			m.sendControls()

		case "o":
			m.state = stateOpenFile
			m.fileInput.SetValue("")
			m.fileInput.Focus()
		}

	case engineReadyMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.eng = msg.eng

	case engineEventMsg:
		m.lastEvent = engine.Event(msg).Code.String()
		return m, m.waitForEvent

	case playedMsg:
		m.err = msg.err
	}

	return m, nil
}

func (m *padModel) updateOpenFile(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.state = statePad
		return m, nil

	case "enter":
		path := m.fileInput.Value()
		m.state = statePad
		if path == "" {
			return m, nil
		}
		pat, err := ahap.DecodeFile(path)
		if err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		m.items = append(m.items, padItem{name: path, pattern: pat})
		m.selected = len(m.items) - 1
		return m, nil
	}

	var cmd tea.Cmd
	m.fileInput, cmd = m.fileInput.Update(msg)
	return m, cmd
}

func (m *padModel) sendControls() {
	if m.player == nil {
		return
	}
	_ = m.player.SendParameter(engine.ParameterIntensityControl, m.intensity, 0)
	_ = m.player.SendParameter(engine.ParameterSharpnessControl, m.sharpness, 0)
}

const meterWidth = 10

func meter(level float64) string {
	filled := int(level*meterWidth + 0.5)
	if filled > meterWidth {
		filled = meterWidth
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", meterWidth-filled)
	return valueStyle.Render(bar)
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampSigned(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}

func (m *padModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Haptic Pad"))
	if m.eng == nil {
		b.WriteString(" starting engine...")
	}
	b.WriteString("\n\n")

	if m.state == stateOpenFile {
		b.WriteString(m.fileInput.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter load • esc back"))
		return b.String()
	}

	for i, item := range m.items {
		line := fmt.Sprintf("%s (%.2fs)", item.name, item.pattern.Duration())
		if i == m.selected {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + itemStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("intensity %s %s  sharpness %s  loop %s\n",
		meter(m.intensity),
		valueStyle.Render(fmt.Sprintf("%.1f", m.intensity)),
		valueStyle.Render(fmt.Sprintf("%+.1f", m.sharpness)),
		valueStyle.Render(fmt.Sprintf("%v", m.loop))))

	if m.lastEvent != "" {
		b.WriteString(eventStyle.Render("engine: " + m.lastEvent))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(errorStyle.Render("error: " + m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ select • enter play • s stop • l loop • +/- intensity • [/] sharpness • o open • q quit"))
	return b.String()
}

func runInteractive(file string) error {
	m, err := newPadModel(file)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
