package ui_test

import (
	"bytes"
	"testing"

	"github.com/libtour/libtour/pkg/errors"
	"github.com/libtour/libtour/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColorMode(t *testing.T) {
	tests := []struct {
		input   string
		want    ui.ColorMode
		wantErr bool
	}{
		{"", ui.ColorAuto, false},
		{"auto", ui.ColorAuto, false},
		{"ALWAYS", ui.ColorAlways, false},
		{"never", ui.ColorNever, false},
		{"off", ui.ColorNever, false},
		{"sometimes", ui.ColorAuto, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ui.ParseColorMode(tt.input)
			if tt.wantErr {
				assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestColorModeString(t *testing.T) {
	assert.Equal(t, "auto", ui.ColorAuto.String())
	assert.Equal(t, "always", ui.ColorAlways.String())
	assert.Equal(t, "never", ui.ColorNever.String())
	assert.Equal(t, "color(7)", ui.ColorMode(7).String())
}

func TestUseColor(t *testing.T) {
	var buf bytes.Buffer
	assert.True(t, ui.UseColor(ui.ColorAlways, &buf))
	assert.False(t, ui.UseColor(ui.ColorNever, &buf))
	assert.False(t, ui.UseColor(ui.ColorAuto, &buf), "a buffer is not a terminal")
}

func TestParseStyles(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		styles, err := ui.ParseStyles([]byte(`
colors:
  red: {light: "#f00", dark: "#f00"}
styles:
  Alert: {bold: true, foreground: red}
`))
		require.NoError(t, err)
		assert.True(t, styles.Get("Alert").GetBold())
		assert.False(t, styles.Get("Missing").GetBold(), "unknown styles fall back to plain")
	})

	t.Run("unknown_color", func(t *testing.T) {
		_, err := ui.ParseStyles([]byte("styles:\n  Alert: {foreground: nope}\n"))
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
	})

	t.Run("bad_yaml", func(t *testing.T) {
		_, err := ui.ParseStyles([]byte("styles: ["))
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
	})
}

func TestPrinterPlain(t *testing.T) {
	var buf bytes.Buffer
	p := ui.NewPrinter(&buf, false)

	p.Header("Random")
	p.Field("seed", 12411)
	p.Trace("Constructor called for singleton #%d!", 1)
	p.Success("same instance")
	p.Error(errors.New(errors.ErrNotFound, "no demo"))

	assert.Equal(t,
		"== Random ==\nseed: 12411\nConstructor called for singleton #1!\nsame instance\nError: [NOT_FOUND] no demo\n",
		buf.String())
}

func TestPrinterTable(t *testing.T) {
	var buf bytes.Buffer
	p := ui.NewPrinter(&buf, false)

	require.NoError(t, p.Table([]string{"key", "value"}, [][]string{{"1", "Hello"}, {"2", "World"}}))

	out := buf.String()
	assert.Contains(t, out, "key")
	assert.Contains(t, out, "Hello")
	assert.Contains(t, out, "World")
}

func TestPrinterMarkdown(t *testing.T) {
	var buf bytes.Buffer
	p := ui.NewPrinter(&buf, false)

	require.NoError(t, p.Markdown("# libtour\n\nA tour of **libraries**.\n"))
	assert.Contains(t, buf.String(), "libtour")
	assert.Contains(t, buf.String(), "libraries")
}
