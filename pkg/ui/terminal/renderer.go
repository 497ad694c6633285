// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/homebrew-automation/pkg/errors"
	"github.com/arthur-debert/homebrew-automation/pkg/publish"
	"github.com/arthur-debert/homebrew-automation/pkg/style"
	"github.com/charmbracelet/lipgloss"
)

// Renderer provides rich terminal output using lipgloss styles
type Renderer struct {
	output io.Writer
}

// New creates a new terminal renderer
func New(w io.Writer) *Renderer {
	return &Renderer{output: w}
}

// RenderResult renders any result type with rich terminal formatting
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case publish.Artifact:
		return r.renderArtifact(v)
	case *publish.Artifact:
		return r.renderArtifact(*v)
	case fmt.Stringer:
		_, err := fmt.Fprintln(r.output, style.NormalStyle.Render(v.String()))
		return err
	default:
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
}

func (r *Renderer) renderArtifact(a publish.Artifact) error {
	row := func(label, value string) string {
		return lipgloss.JoinHorizontal(lipgloss.Top, style.LabelStyle.Render(label), value)
	}
	lines := []string{
		style.SuccessStyle.Render("✓ ") + style.NormalStyle.Render(a.Filename),
		row("path", style.PathStyle.Render(a.Path)),
		row("sha256", a.SHA256),
		row("size", fmt.Sprintf("%d bytes", a.Size)),
	}
	_, err := fmt.Fprintln(r.output, strings.Join(lines, "\n"))
	return err
}

// RenderError renders an error with its code highlighted
func (r *Renderer) RenderError(err error) error {
	msg := err.Error()
	if e, ok := err.(*errors.Error); ok {
		msg = e.Message
		if e.Wrapped != nil {
			msg += ": " + e.Wrapped.Error()
		}
		msg = style.MutedStyle.Render(string(e.Code)) + " " + msg
	}
	_, werr := fmt.Fprintln(r.output, style.ErrorStyle.Render("✗ Error")+" "+msg)
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, style.InfoStyle.Render(msg))
	return err
}
