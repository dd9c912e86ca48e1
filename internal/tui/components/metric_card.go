package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/headroom/internal/tui/tuistyles"
)

// MetricCard displays a single metric with label, value, and optional change
type MetricCard struct {
	Label  string
	Value  string
	Change *Change
	Width  int
}

// Change is a metric's movement against the baseline.
type Change struct {
	Up        bool
	Favorable bool
	Text      string
}

// NewMetricCard creates a new metric card
func NewMetricCard(label, value string) *MetricCard {
	return &MetricCard{Label: label, Value: value, Width: 24}
}

// WithChange attaches a baseline comparison.
func (m *MetricCard) WithChange(up, favorable bool, text string) *MetricCard {
	m.Change = &Change{Up: up, Favorable: favorable, Text: text}
	return m
}

// Render returns the bordered card
func (m *MetricCard) Render() string {
	content := tuistyles.MetricLabelStyle.Render(m.Label) + "\n" + tuistyles.MetricValueStyle.Render(m.Value)
	if m.Change != nil {
		style := tuistyles.MetricTrendStyle(m.Change.Favorable)
		content += "\n" + style.Render(fmt.Sprintf("%s %s", tuistyles.TrendIndicator(m.Change.Up), m.Change.Text))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(0, 1).
		Width(m.Width).
		Render(content)
}

// MetricRow renders cards side by side.
func MetricRow(cards []*MetricCard) string {
	rendered := make([]string, 0, len(cards))
	for _, c := range cards {
		rendered = append(rendered, c.Render())
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}
