package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme is the color palette of the profile screen.
type Theme struct {
	Name   string
	Accent lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
	Border lipgloss.Color
	Error  lipgloss.Color
	Star   lipgloss.Color
}

var themes = map[string]Theme{
	"emerald": {
		Name:   "emerald",
		Accent: lipgloss.Color("#34d399"),
		Text:   lipgloss.Color("#f3f4f6"),
		Muted:  lipgloss.Color("#9ca3af"),
		Border: lipgloss.Color("#374151"),
		Error:  lipgloss.Color("#fca5a5"),
		Star:   lipgloss.Color("#facc15"),
	},
	"violet": {
		Name:   "violet",
		Accent: lipgloss.Color("#a78bfa"),
		Text:   lipgloss.Color("#ede9fe"),
		Muted:  lipgloss.Color("#8b8ba7"),
		Border: lipgloss.Color("#4c1d95"),
		Error:  lipgloss.Color("#f87171"),
		Star:   lipgloss.Color("#fbbf24"),
	},
	"mono": {
		Name:   "mono",
		Accent: lipgloss.Color("15"),
		Text:   lipgloss.Color("7"),
		Muted:  lipgloss.Color("8"),
		Border: lipgloss.Color("8"),
		Error:  lipgloss.Color("9"),
		Star:   lipgloss.Color("11"),
	},
}

// LookupTheme returns the theme with the given name.
func LookupTheme(name string) (Theme, error) {
	t, ok := themes[strings.ToLower(name)]
	if !ok {
		return Theme{}, fmt.Errorf("unknown theme %q", name)
	}
	return t, nil
}

type styles struct {
	title   lipgloss.Style
	accent  lipgloss.Style
	text    lipgloss.Style
	muted   lipgloss.Style
	errBox  lipgloss.Style
	star    lipgloss.Style
	badge   lipgloss.Style
	card    lipgloss.Style
	section lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		title:   lipgloss.NewStyle().Foreground(t.Text).Bold(true),
		accent:  lipgloss.NewStyle().Foreground(t.Accent),
		text:    lipgloss.NewStyle().Foreground(t.Text),
		muted:   lipgloss.NewStyle().Foreground(t.Muted),
		errBox:  lipgloss.NewStyle().Foreground(t.Error).Border(lipgloss.RoundedBorder()).BorderForeground(t.Error).Padding(0, 1),
		star:    lipgloss.NewStyle().Foreground(t.Star),
		badge:   lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		card:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Border).Padding(0, 1),
		section: lipgloss.NewStyle().Foreground(t.Accent).Bold(true).MarginTop(1),
	}
}
