// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"github.com/arthur-debert/templating/pkg/style"
	"github.com/arthur-debert/templating/pkg/ui/display"
)

// Renderer writes results styled with lipgloss, tables through pterm
type Renderer struct {
	output io.Writer
}

// New creates a new terminal renderer
func New(w io.Writer) *Renderer {
	return &Renderer{output: w}
}

// RenderResult renders a report or delimiter table
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *display.Report:
		return r.renderReport(v)
	case *display.DelimiterTable:
		return r.renderDelimiters(v)
	default:
		return fmt.Errorf("terminal renderer: unsupported result type %T", result)
	}
}

func (r *Renderer) renderReport(rep *display.Report) error {
	var b strings.Builder

	if rep.Skipped {
		fmt.Fprintf(&b, "%s %s %s\n",
			style.SkippedIndicator,
			style.TitleStyle.Render(rep.Scope),
			style.MutedStyle.Render("skipped: "+rep.Reason))
		_, err := io.WriteString(r.output, b.String())
		return err
	}

	fmt.Fprintf(&b, "%s %s %s → %s\n",
		style.SuccessIndicator,
		style.TitleStyle.Render(rep.Scope),
		style.PathStyle.Render(rep.SourceDirectory),
		style.PathStyle.Render(rep.OutputDirectory))

	if rep.Copied == 0 {
		b.WriteString(style.Indent(style.MutedStyle.Render(fmt.Sprintf("up to date (%d files)", rep.UpToDate)), 1))
		b.WriteString("\n")
	} else {
		summary := fmt.Sprintf("copied %s, up to date %s",
			style.CountStyle.Render(strconv.Itoa(rep.Copied)),
			style.CountStyle.Render(strconv.Itoa(rep.UpToDate)))
		b.WriteString(style.Indent(summary, 1))
		b.WriteString("\n")
		for _, f := range rep.CopiedFiles {
			b.WriteString(style.Indent(style.PathStyle.Render(f), 2))
			b.WriteString("\n")
		}
	}

	_, err := io.WriteString(r.output, b.String())
	return err
}

func (r *Renderer) renderDelimiters(table *display.DelimiterTable) error {
	data := pterm.TableData{{"BEGIN", "END", "ORIGIN"}}
	for _, row := range table.Rows {
		data = append(data, []string{
			row.Begin,
			row.End,
			style.DelimiterStyle(row.Origin).Render(row.Origin),
		})
	}

	rendered, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(r.output, rendered)
	return err
}

// RenderError renders an error in the error style
func (r *Renderer) RenderError(err error) error {
	_, werr := fmt.Fprintln(r.output, style.ErrorIndicator+" "+style.ErrorStyle.Render(err.Error()))
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}
