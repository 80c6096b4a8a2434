package display

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/linkany/pkg/types"
)

// Renderer writes results, errors and messages in one output format
type Renderer interface {
	RenderResult(result *types.Result) error
	RenderError(err error) error
	RenderMessage(msg string) error
}

// NewRenderer creates a renderer for format. FormatAuto inspects output.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		if file, ok := output.(*os.File); ok {
			return NewRenderer(DetectFormat(file), output)
		}
		return NewRenderer(FormatText, output)
	case FormatTerminal:
		return NewTextRenderer(output, true), nil
	case FormatText:
		return NewTextRenderer(output, false), nil
	case FormatJSON:
		return NewJSONRenderer(output), nil
	default:
		return nil, fmt.Errorf("unknown format: %v", format)
	}
}

// JSONRenderer writes indented JSON documents
type JSONRenderer struct {
	encoder *json.Encoder
}

// NewJSONRenderer creates a JSON renderer
func NewJSONRenderer(output io.Writer) *JSONRenderer {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	return &JSONRenderer{encoder: encoder}
}

// RenderResult writes the result document
func (r *JSONRenderer) RenderResult(result *types.Result) error {
	return r.encoder.Encode(result)
}

// RenderError renders an error as JSON
func (r *JSONRenderer) RenderError(err error) error {
	return r.encoder.Encode(map[string]string{"error": err.Error()})
}

// RenderMessage renders a simple message as JSON
func (r *JSONRenderer) RenderMessage(msg string) error {
	return r.encoder.Encode(map[string]string{"message": msg})
}
