// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/templating/pkg/ui/display"
)

// Renderer writes results as plain lines
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
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
		return fmt.Errorf("text renderer: unsupported result type %T", result)
	}
}

func (r *Renderer) renderReport(rep *display.Report) error {
	if rep.Skipped {
		_, err := fmt.Fprintf(r.output, "%s: skipped (%s)\n", rep.Scope, rep.Reason)
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s -> %s\n", rep.Scope, rep.SourceDirectory, rep.OutputDirectory)
	if rep.Copied == 0 {
		fmt.Fprintf(&b, "  up to date (%d files)\n", rep.UpToDate)
	} else {
		fmt.Fprintf(&b, "  copied %d, up to date %d\n", rep.Copied, rep.UpToDate)
		for _, f := range rep.CopiedFiles {
			fmt.Fprintf(&b, "    %s\n", f)
		}
	}
	_, err := io.WriteString(r.output, b.String())
	return err
}

func (r *Renderer) renderDelimiters(table *display.DelimiterTable) error {
	for _, row := range table.Rows {
		if _, err := fmt.Fprintf(r.output, "%s\t%s\t%s\n", row.Begin, row.End, row.Origin); err != nil {
			return err
		}
	}
	return nil
}

// RenderError renders an error as a single line
func (r *Renderer) RenderError(err error) error {
	_, werr := fmt.Fprintf(r.output, "Error: %v\n", err)
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}
