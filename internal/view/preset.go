// Package view renders lookup results in the terminal.
package view

import (
	"fmt"
	"sort"
	"strings"

	"github.com/naka-gawa/gitfinder/internal/domain"
)

// Features toggles the optional sections of the profile screen.
type Features struct {
	Issues     bool
	Activity   bool
	Languages  bool
	Readme     bool
	FilterSort bool
}

// Preset is a named feature set.
type Preset struct {
	Name string
	Features
}

var presets = map[string]Preset{
	"basic":    {Name: "basic", Features: Features{Issues: true}},
	"insights": {Name: "insights", Features: Features{Activity: true, Languages: true}},
	"full":     {Name: "full", Features: Features{Activity: true, Languages: true, Readme: true, FilterSort: true}},
}

// LookupPreset returns the preset with the given name.
func LookupPreset(name string) (Preset, error) {
	p, ok := presets[strings.ToLower(name)]
	if !ok {
		return Preset{}, fmt.Errorf("unknown preset %q (want one of %s)", name, strings.Join(PresetNames(), ", "))
	}
	return p, nil
}

// PresetNames lists the known presets alphabetically.
func PresetNames() []string {
	out := make([]string, 0, len(presets))
	for name := range presets {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Parts returns the dependent fetches the preset displays.
func (p Preset) Parts() []domain.Part {
	parts := []domain.Part{domain.PartRepositories}
	if p.Activity {
		parts = append(parts, domain.PartEvents)
	}
	if p.Readme {
		parts = append(parts, domain.PartReadme)
	}
	if p.Issues {
		parts = append(parts, domain.PartIssues)
	}
	return parts
}
