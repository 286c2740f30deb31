// Package ui renders command results as styled terminal output, plain text or JSON.
package ui

import (
	"fmt"
	"io"

	"github.com/arthur-debert/templating/pkg/ui/json"
	"github.com/arthur-debert/templating/pkg/ui/terminal"
	"github.com/arthur-debert/templating/pkg/ui/text"
)

// Renderer is the common interface for all output renderers
type Renderer interface {
	// RenderResult renders a *display.Report or *display.DelimiterTable
	RenderResult(result interface{}) error

	// RenderError renders an error with appropriate formatting
	RenderError(err error) error

	// RenderMessage renders a simple message
	RenderMessage(msg string) error
}

// NewRenderer creates a renderer for format, detecting the format for w when
// it is FormatAuto
func NewRenderer(format Format, w io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		return NewRenderer(DetectFormat(w), w)
	case FormatTerminal:
		return terminal.New(w), nil
	case FormatText:
		return text.New(w), nil
	case FormatJSON:
		return json.New(w), nil
	default:
		return nil, fmt.Errorf("unknown format: %v", format)
	}
}
