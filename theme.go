package main

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent = lipgloss.Color("#7C3AED")
	colorFresh  = lipgloss.Color("#10B981")
	colorDrag   = lipgloss.Color("#F59E0B")
	colorMuted  = lipgloss.Color("#6B7280")
	colorError  = lipgloss.Color("#EF4444")

	styleGrid      = lipgloss.NewStyle().Foreground(colorMuted).Faint(true)
	styleConnector = lipgloss.NewStyle().Foreground(colorAccent)
	styleMarker    = lipgloss.NewStyle().Bold(true)
	styleFresh     = lipgloss.NewStyle().Bold(true).Foreground(colorFresh)
	styleDragging  = lipgloss.NewStyle().Bold(true).Foreground(colorDrag)
	styleSelected  = lipgloss.NewStyle().Bold(true).Reverse(true)

	stylePanel      = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderForeground(colorMuted).Padding(0, 1)
	stylePanelTitle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	styleRowActive  = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	styleFieldLabel = lipgloss.NewStyle().Foreground(colorMuted)
	styleStatusErr  = lipgloss.NewStyle().Foreground(colorError)
	styleStatusOK   = lipgloss.NewStyle().Foreground(colorFresh)
)
