package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/pterm/pterm"

	"github.com/libtour/libtour/pkg/errors"
)

// Printer writes styled output to a writer. It is safe for concurrent use
// and is itself an io.Writer, so trace output can share it.
type Printer struct {
	mu     sync.Mutex
	out    io.Writer
	styles Styles
	color  bool
	// MarkdownStyle is a glamour style name or path; "auto" detects it
	MarkdownStyle string
}

// NewPrinter returns a Printer using the embedded styles.
func NewPrinter(out io.Writer, color bool) *Printer {
	return &Printer{out: out, styles: defaultStyles, color: color, MarkdownStyle: "auto"}
}

// Write writes b unstyled.
func (p *Printer) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.out.Write(b)
}

// Header prints a section title.
func (p *Printer) Header(title string) {
	fmt.Fprintln(p, p.render("Header", "== "+title+" =="))
}

// Field prints a labelled value.
func (p *Printer) Field(label string, value any) {
	fmt.Fprintf(p, "%s %s\n", p.render("Label", label+":"), p.render("Value", fmt.Sprint(value)))
}

// Line prints plain text.
func (p *Printer) Line(format string, args ...any) {
	fmt.Fprintf(p, format+"\n", args...)
}

// Trace prints a lifecycle trace line, such as a constructor report.
func (p *Printer) Trace(format string, args ...any) {
	fmt.Fprintln(p, p.render("Trace", fmt.Sprintf(format, args...)))
}

// Success prints a passed check.
func (p *Printer) Success(format string, args ...any) {
	fmt.Fprintln(p, p.render("Success", fmt.Sprintf(format, args...)))
}

// Error prints err in the error style.
func (p *Printer) Error(err error) {
	fmt.Fprintln(p, p.render("Error", "Error: "+err.Error()))
}

// Table prints rows under a header row.
func (p *Printer) Table(header []string, rows [][]string) error {
	data := make(pterm.TableData, 0, len(rows)+1)
	data = append(data, header)
	data = append(data, rows...)

	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to render table")
	}
	_, err = fmt.Fprintln(p, out)
	return err
}

// Markdown renders content with glamour. Without color the notty style is
// used; on renderer failure the raw markdown is printed.
func (p *Printer) Markdown(content string) error {
	var opts []glamour.TermRendererOption
	switch {
	case !p.color:
		opts = append(opts, glamour.WithStylePath("notty"))
	case p.MarkdownStyle != "" && p.MarkdownStyle != "auto":
		opts = append(opts, glamour.WithStylePath(p.MarkdownStyle))
	default:
		opts = append(opts, glamour.WithAutoStyle())
	}

	rendered := content
	if r, err := glamour.NewTermRenderer(opts...); err == nil {
		if s, err := r.Render(content); err == nil {
			rendered = s
		}
	}
	_, err := io.WriteString(p, rendered)
	return err
}

func (p *Printer) render(style, text string) string {
	if !p.color {
		return strings.TrimSpace(text)
	}
	return p.styles.Get(style).Render(text)
}
