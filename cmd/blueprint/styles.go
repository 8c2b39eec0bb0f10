package main

import (
	"github.com/charmbracelet/lipgloss"
)

var styles = struct {
	heading   lipgloss.Style
	success   lipgloss.Style
	errorText lipgloss.Style
	muted     lipgloss.Style
}{
	heading:   lipgloss.NewStyle().Bold(true),
	success:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	errorText: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
}
