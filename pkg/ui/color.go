package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"

	"github.com/libtour/libtour/pkg/errors"
)

// ColorMode selects when output is colored.
type ColorMode int

const (
	// ColorAuto colors output written to a color-capable terminal
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

func (m ColorMode) String() string {
	switch m {
	case ColorAuto:
		return "auto"
	case ColorAlways:
		return "always"
	case ColorNever:
		return "never"
	default:
		return fmt.Sprintf("color(%d)", int(m))
	}
}

// ParseColorMode parses the --color flag value.
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(s) {
	case "auto", "":
		return ColorAuto, nil
	case "always", "on":
		return ColorAlways, nil
	case "never", "off":
		return ColorNever, nil
	default:
		return ColorAuto, errors.Newf(errors.ErrInvalidInput, "unknown color mode %q", s).
			WithDetail("allowed", []string{"auto", "always", "never"})
	}
}

// UseColor reports whether output to w should be colored under mode.
func UseColor(mode ColorMode, w io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return false
	}
	return termenv.NewOutput(f).ColorProfile() != termenv.Ascii
}

// Configure applies the color decision for w to lipgloss and pterm, which
// both keep process-wide state.
func Configure(mode ColorMode, w io.Writer) bool {
	color := UseColor(mode, w)
	if color {
		if mode == ColorAlways {
			lipgloss.SetColorProfile(termenv.ANSI256)
		}
		pterm.EnableStyling()
	} else {
		lipgloss.SetColorProfile(termenv.Ascii)
		pterm.DisableStyling()
	}
	return color
}
