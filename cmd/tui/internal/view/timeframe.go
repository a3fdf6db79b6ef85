package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrJamesThe3rd/moneymanager/internal/analytics"
	"github.com/MrJamesThe3rd/moneymanager/internal/clock"
)

// TimeframeSelectedMsg is emitted when the user has selected a valid window.
type TimeframeSelectedMsg struct {
	Window analytics.Window
	Label  string
}

type timeframeState int

const (
	timeframeStateSelect timeframeState = iota
	timeframeStateCustom
)

// TimeframePicker offers the preset timeframes followed by a custom range.
type TimeframePicker struct {
	clock clock.Clock

	state    timeframeState
	presets  []analytics.Timeframe
	selected int // len(presets) selects the custom range

	startInput textinput.Model
	endInput   textinput.Model
	focusIndex int

	err error
}

// NewTimeframePicker starts the cursor on initial. Presets are resolved
// against clk when chosen.
func NewTimeframePicker(clk clock.Clock, initial analytics.Timeframe) TimeframePicker {
	si := textinput.New()
	si.Placeholder = "YYYY-MM-DD"
	si.CharLimit = 10
	si.Width = 12
	si.Prompt = "Start Date: "

	ei := textinput.New()
	ei.Placeholder = "YYYY-MM-DD"
	ei.CharLimit = 10
	ei.Width = 12
	ei.Prompt = "End Date:   "

	p := TimeframePicker{
		clock:      clk,
		state:      timeframeStateSelect,
		presets:    analytics.Timeframes,
		startInput: si,
		endInput:   ei,
	}

	for i, tf := range p.presets {
		if tf == initial {
			p.selected = i
		}
	}

	return p
}

func (m TimeframePicker) Init() tea.Cmd {
	return nil
}

func (m TimeframePicker) Update(msg tea.Msg) (TimeframePicker, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch m.state {
		case timeframeStateSelect:
			return m.updateSelect(msg)
		case timeframeStateCustom:
			if next, cmd, handled := m.updateCustom(msg); handled {
				return next, cmd
			}
		}
	}

	if m.state == timeframeStateCustom {
		return m.updateInputs(msg)
	}

	return m, nil
}

func (m TimeframePicker) custom() bool {
	return m.selected == len(m.presets)
}

func (m TimeframePicker) updateSelect(msg tea.KeyMsg) (TimeframePicker, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		if m.selected > 0 {
			m.selected--
		}
	case tea.KeyDown:
		if m.selected < len(m.presets) {
			m.selected++
		}
	case tea.KeyEnter:
		if m.custom() {
			m.state = timeframeStateCustom
			m.startInput.Focus()
			m.focusIndex = 0

			return m, textinput.Blink
		}

		tf := m.presets[m.selected]
		selected := TimeframeSelectedMsg{Window: tf.Window(m.clock.Now()), Label: tf.String()}

		return m, func() tea.Msg { return selected }
	}

	return m, nil
}

func (m TimeframePicker) updateCustom(msg tea.KeyMsg) (TimeframePicker, tea.Cmd, bool) {
	switch msg.String() {
	case "tab", "shift+tab":
		m.focusIndex = (m.focusIndex + 1) % 2
		m.startInput.Blur()
		m.endInput.Blur()

		if m.focusIndex == 0 {
			m.startInput.Focus()
			return m, textinput.Blink, true
		}

		m.endInput.Focus()

		return m, textinput.Blink, true

	case "enter":
		w, err := parseCustomWindow(m.startInput.Value(), m.endInput.Value())
		if err != nil {
			m.err = err
			return m, nil, true
		}

		m.err = nil
		selected := TimeframeSelectedMsg{Window: w, Label: analytics.DateRangeText(w)}

		return m, func() tea.Msg { return selected }, true

	case "esc":
		m.state = timeframeStateSelect
		m.err = nil

		return m, nil, true
	}

	return m, nil, false
}

// parseCustomWindow accepts an empty start or end as an open bound.
func parseCustomWindow(start, end string) (analytics.Window, error) {
	var from, to *time.Time

	if start != "" {
		t, err := time.Parse(time.DateOnly, start)
		if err != nil {
			return analytics.Window{}, fmt.Errorf("invalid start date (YYYY-MM-DD)")
		}

		from = &t
	}

	if end != "" {
		t, err := time.Parse(time.DateOnly, end)
		if err != nil {
			return analytics.Window{}, fmt.Errorf("invalid end date (YYYY-MM-DD)")
		}

		to = &t
	}

	return analytics.NewWindow(from, to)
}

func (m TimeframePicker) updateInputs(msg tea.Msg) (TimeframePicker, tea.Cmd) {
	var cmds []tea.Cmd

	var c tea.Cmd

	m.startInput, c = m.startInput.Update(msg)
	cmds = append(cmds, c)
	m.endInput, c = m.endInput.Update(msg)
	cmds = append(cmds, c)

	return m, tea.Batch(cmds...)
}

func (m TimeframePicker) View() string {
	errStr := ""
	if m.err != nil {
		errStr = errorStyle.Render(fmt.Sprintf("\n\nError: %v", m.err))
	}

	if m.state == timeframeStateCustom {
		return fmt.Sprintf(
			"Enter Custom Range (either bound may be left empty):\n\n%s\n%s\n\n(Enter to confirm, Tab to switch, Esc to back)%s",
			m.startInput.View(),
			m.endInput.View(),
			errStr,
		)
	}

	labels := make([]string, 0, len(m.presets)+1)
	for _, tf := range m.presets {
		labels = append(labels, tf.String())
	}

	labels = append(labels, "Custom Range")

	s := "Select Timeframe:\n\n"

	for i, label := range labels {
		cursor := " "
		if m.selected == i {
			cursor = ">"
		}

		s += fmt.Sprintf("%s %s\n", cursor, label)
	}

	s += "\n(Enter to select, Esc to back)"

	return s + errStr
}

// IsSelecting returns true if the picker is in the selection state (not custom input).
func (m TimeframePicker) IsSelecting() bool {
	return m.state == timeframeStateSelect
}

// Reset returns the picker to the preset list.
func (m *TimeframePicker) Reset() {
	m.state = timeframeStateSelect
	m.err = nil
	m.startInput.SetValue("")
	m.endInput.SetValue("")
}
