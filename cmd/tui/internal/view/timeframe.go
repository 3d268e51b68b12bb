package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Timeframe represents a predefined or custom date range selection.
type Timeframe int

const (
	TimeframeThisMonth Timeframe = 0
	TimeframeLastMonth Timeframe = 1
	TimeframeLast90    Timeframe = 2
	TimeframeThisYear  Timeframe = 3
	TimeframeAll       Timeframe = 4
	TimeframeCustom    Timeframe = 5
)

func (t Timeframe) String() string {
	switch t {
	case TimeframeThisMonth:
		return "This Month"
	case TimeframeLastMonth:
		return "Last Month"
	case TimeframeLast90:
		return "Last 90 Days"
	case TimeframeThisYear:
		return "This Year"
	case TimeframeAll:
		return "All Time"
	case TimeframeCustom:
		return "Custom Range"
	}

	return "Unknown"
}

func timeframeToDateRange(tf Timeframe) (time.Time, time.Time) {
	now := time.Now().UTC()

	var start, end time.Time

	switch tf {
	case TimeframeThisMonth:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		end = now
	case TimeframeLastMonth:
		lastMonth := now.AddDate(0, -1, 0)
		start = time.Date(lastMonth.Year(), lastMonth.Month(), 1, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(0, 1, -1)
	case TimeframeLast90:
		start = now.AddDate(0, 0, -89)
		end = now
	case TimeframeThisYear:
		start = time.Date(now.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
		end = now
	}

	return start, end
}

func normalizeDateRange(start, end time.Time) (time.Time, time.Time) {
	return time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC),
		time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 0, time.UTC)
}

// TimeframeSelectedMsg is emitted when the user has selected a valid
// date range. Start and End are zero values when All is true.
type TimeframeSelectedMsg struct {
	Start time.Time
	End   time.Time
	All   bool
}

type timeframeState int

const (
	timeframeStateSelect timeframeState = iota
	timeframeStateCustom
)

// TimeframePicker is a reusable component for selecting a date range.
type TimeframePicker struct {
	state    timeframeState
	selected Timeframe

	startInput textinput.Model
	endInput   textinput.Model
	focusIndex int

	err error
}

func NewTimeframePicker() TimeframePicker {
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

	return TimeframePicker{
		state:      timeframeStateSelect,
		selected:   TimeframeThisMonth,
		startInput: si,
		endInput:   ei,
	}
}

func (m TimeframePicker) Init() tea.Cmd {
	return nil
}

func (m TimeframePicker) Update(msg tea.Msg) (TimeframePicker, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch m.state {
		case timeframeStateSelect:
			return m.updateSelect(keyMsg)
		case timeframeStateCustom:
			return m.updateCustom(keyMsg)
		}
	}

	if m.state == timeframeStateCustom {
		return m.updateInputs(msg)
	}

	return m, nil
}

func (m TimeframePicker) updateSelect(msg tea.KeyMsg) (TimeframePicker, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		if m.selected > TimeframeThisMonth {
			m.selected--
		}
	case tea.KeyDown:
		if m.selected < TimeframeCustom {
			m.selected++
		}
	case tea.KeyEnter:
		if m.selected == TimeframeCustom {
			m.state = timeframeStateCustom
			m.startInput.Focus()
			m.focusIndex = 0

			return m, textinput.Blink
		}

		if m.selected == TimeframeAll {
			return m, func() tea.Msg {
				return TimeframeSelectedMsg{All: true}
			}
		}

		start, end := timeframeToDateRange(m.selected)
		start, end = normalizeDateRange(start, end)

		return m, func() tea.Msg {
			return TimeframeSelectedMsg{Start: start, End: end}
		}
	}

	return m, nil
}

func (m TimeframePicker) updateCustom(msg tea.KeyMsg) (TimeframePicker, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab":
		m.focusIndex = (m.focusIndex + 1) % 2
		m.startInput.Blur()
		m.endInput.Blur()

		if m.focusIndex == 0 {
			m.startInput.Focus()
			return m, textinput.Blink
		}

		m.endInput.Focus()

		return m, textinput.Blink

	case "enter":
		start, err := time.Parse(time.DateOnly, m.startInput.Value())
		if err != nil {
			m.err = fmt.Errorf("invalid start date (YYYY-MM-DD)")
			return m, nil
		}

		end, err := time.Parse(time.DateOnly, m.endInput.Value())
		if err != nil {
			m.err = fmt.Errorf("invalid end date (YYYY-MM-DD)")
			return m, nil
		}

		m.err = nil
		start, end = normalizeDateRange(start, end)

		return m, func() tea.Msg {
			return TimeframeSelectedMsg{Start: start, End: end}
		}

	case "esc":
		m.state = timeframeStateSelect
		m.err = nil

		return m, nil
	}

	return m.updateInputs(msg)
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
		errStr = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(fmt.Sprintf("\n\nError: %v", m.err))
	}

	if m.state == timeframeStateCustom {
		return fmt.Sprintf(
			"Enter Custom Range:\n\n%s\n%s\n\n(Enter to confirm, Tab to switch, Esc to back)%s",
			m.startInput.View(),
			m.endInput.View(),
			errStr,
		)
	}

	s := "Select Timeframe:\n\n"

	for i := TimeframeThisMonth; i <= TimeframeCustom; i++ {
		cursor := " "
		if m.selected == i {
			cursor = ">"
		}

		s += fmt.Sprintf("%s %s\n", cursor, i.String())
	}

	s += "\n(Enter to select, Esc to back)"

	return s + errStr
}

// IsSelecting reports whether the picker is in the selection state.
func (m TimeframePicker) IsSelecting() bool {
	return m.state == timeframeStateSelect
}
