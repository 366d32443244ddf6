package ui

import (
	_ "embed"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/libtour/libtour/pkg/errors"
)

type colorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

type styleDef struct {
	Bold       bool   `yaml:"bold,omitempty"`
	Italic     bool   `yaml:"italic,omitempty"`
	Foreground string `yaml:"foreground,omitempty"`
	Width      int    `yaml:"width,omitempty"`
	MarginTop  int    `yaml:"marginTop,omitempty"`
}

type styleSheet struct {
	Colors map[string]colorDef `yaml:"colors"`
	Styles map[string]styleDef `yaml:"styles"`
}

// Styles maps semantic names to lipgloss styles.
type Styles map[string]lipgloss.Style

//go:embed styles.yaml
var embeddedStyles []byte

var defaultStyles = mustParseStyles(embeddedStyles)

// ParseStyles builds a style set from a YAML style sheet. Foregrounds name
// entries of its colors section.
func ParseStyles(data []byte) (Styles, error) {
	var sheet styleSheet
	if err := yaml.Unmarshal(data, &sheet); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to parse style sheet")
	}

	colors := make(map[string]lipgloss.AdaptiveColor, len(sheet.Colors))
	for name, def := range sheet.Colors {
		colors[name] = lipgloss.AdaptiveColor{Light: def.Light, Dark: def.Dark}
	}

	styles := make(Styles, len(sheet.Styles))
	for name, def := range sheet.Styles {
		style := lipgloss.NewStyle().Bold(def.Bold).Italic(def.Italic)
		if def.Foreground != "" {
			color, ok := colors[def.Foreground]
			if !ok {
				return nil, errors.Newf(errors.ErrConfigValid, "style %s uses unknown color %q", name, def.Foreground)
			}
			style = style.Foreground(color)
		}
		if def.Width > 0 {
			style = style.Width(def.Width)
		}
		if def.MarginTop > 0 {
			style = style.MarginTop(def.MarginTop)
		}
		styles[name] = style
	}
	return styles, nil
}

func mustParseStyles(data []byte) Styles {
	styles, err := ParseStyles(data)
	if err != nil {
		panic(err)
	}
	return styles
}

// Get returns the named style, or an empty style if it is not defined.
func (s Styles) Get(name string) lipgloss.Style {
	if style, ok := s[name]; ok {
		return style
	}
	return lipgloss.NewStyle()
}
