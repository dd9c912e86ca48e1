package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.editingYear {
			return m.updateYearInput(msg)
		}
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case SummaryLoadedMsg:
		m.income = msg.Summary
		m.computed = false
		m.recompute()
		if msg.Err != nil && m.err == nil {
			m.err = msg.Err
		}
		return m, nil
	}
	return m, nil
}

// handleKeyPress processes keyboard input outside year editing
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	slider := &m.sliders[m.focus]

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.setFocus((m.focus + sliderCount - 1) % sliderCount)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.setFocus((m.focus + 1) % sliderCount)
		return m, nil

	case key.Matches(msg, m.keys.Left):
		slider.Decrement(1)
	case key.Matches(msg, m.keys.Right):
		slider.Increment(1)
	case key.Matches(msg, m.keys.BigLeft):
		slider.Decrement(10)
	case key.Matches(msg, m.keys.BigRight):
		slider.Increment(10)
	case key.Matches(msg, m.keys.Reset):
		slider.SetValue(decimal.Zero)
	case key.Matches(msg, m.keys.ResetAll):
		for i := range m.sliders {
			m.sliders[i].SetValue(decimal.Zero)
		}

	case key.Matches(msg, m.keys.Year):
		if m.source == nil {
			return m, nil
		}
		m.editingYear = true
		m.yearInput.SetValue(strconv.Itoa(m.income.Year))
		return m, m.yearInput.Focus()

	default:
		return m, nil
	}

	m.recompute()
	return m, nil
}

func (m *Model) setFocus(i int) {
	m.sliders[m.focus].IsFocused = false
	m.focus = i
	m.sliders[m.focus].IsFocused = true
}

// updateYearInput handles keys while the year field is focused
func (m Model) updateYearInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.editingYear = false
		m.yearInput.Blur()
		return m, nil

	case tea.KeyEnter:
		m.editingYear = false
		m.yearInput.Blur()
		year, err := strconv.Atoi(strings.TrimSpace(m.yearInput.Value()))
		if err != nil || year <= 0 {
			return m, nil
		}
		return m, loadSummaryCmd(m.source, year)
	}

	var cmd tea.Cmd
	m.yearInput, cmd = m.yearInput.Update(msg)
	return m, cmd
}
