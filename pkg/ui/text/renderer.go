// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"

	"github.com/arthur-debert/homebrew-automation/pkg/publish"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) *Renderer {
	return &Renderer{output: output}
}

// RenderResult renders any result type as plain text
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case publish.Artifact:
		return r.renderArtifact(v)
	case *publish.Artifact:
		return r.renderArtifact(*v)
	case fmt.Stringer:
		_, err := fmt.Fprintln(r.output, v.String())
		return err
	default:
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
}

func (r *Renderer) renderArtifact(a publish.Artifact) error {
	_, err := fmt.Fprintf(r.output, "%s\npath: %s\nsha256: %s\nsize: %d\n",
		a.Filename, a.Path, a.SHA256, a.Size)
	return err
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	_, err2 := fmt.Fprintf(r.output, "Error: %v\n", err)
	return err2
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}
