package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/linkany/pkg/types"
	"github.com/charmbracelet/lipgloss"
)

var (
	successColor = lipgloss.AdaptiveColor{Light: "#28A745", Dark: "#4CDD76"}
	errorColor   = lipgloss.AdaptiveColor{Light: "#DC3545", Dark: "#FF6B7D"}
	warningColor = lipgloss.AdaptiveColor{Light: "#FFC107", Dark: "#FFD54F"}
	mutedColor   = lipgloss.AdaptiveColor{Light: "#6C757D", Dark: "#ADB5BD"}
	headingColor = lipgloss.AdaptiveColor{Light: "#212529", Dark: "#F8F9FA"}
)

type palette struct {
	heading  func(string) string
	success  func(string) string
	failure  func(string) string
	warning  func(string) string
	muted    func(string) string
	statuses map[types.StepStatus]func(string) string
}

func styledPalette() palette {
	render := func(s lipgloss.Style) func(string) string {
		return func(text string) string { return s.Render(text) }
	}
	success := render(lipgloss.NewStyle().Foreground(successColor).Bold(true))
	failure := render(lipgloss.NewStyle().Foreground(errorColor).Bold(true))
	muted := render(lipgloss.NewStyle().Foreground(mutedColor))
	return palette{
		heading: render(lipgloss.NewStyle().Foreground(headingColor).Bold(true)),
		success: success,
		failure: failure,
		warning: render(lipgloss.NewStyle().Foreground(warningColor).Bold(true)),
		muted:   muted,
		statuses: map[types.StepStatus]func(string) string{
			types.StatusExecuted: success,
			types.StatusFailed:   failure,
			types.StatusSkipped:  muted,
			types.StatusPlanned:  muted,
		},
	}
}

func plainPalette() palette {
	same := func(text string) string { return text }
	return palette{
		heading: same, success: same, failure: same, warning: same, muted: same,
		statuses: map[types.StepStatus]func(string) string{},
	}
}

// TextRenderer writes a human readable summary of a result
type TextRenderer struct {
	output  io.Writer
	palette palette
}

// NewTextRenderer creates a text renderer, styled with colors when styled
// is true.
func NewTextRenderer(output io.Writer, styled bool) *TextRenderer {
	p := plainPalette()
	if styled {
		p = styledPalette()
	}
	return &TextRenderer{output: output, palette: p}
}

// RenderResult writes the outcome line, then steps, warnings, errors and
// the rollback plan when there is one.
func (r *TextRenderer) RenderResult(result *types.Result) error {
	p := r.palette
	var b strings.Builder

	outcome := p.success("ok")
	if !result.OK {
		outcome = p.failure("failed")
	}
	fmt.Fprintf(&b, "%s %s %s\n", p.heading(string(result.Operation)), outcome,
		p.muted(fmt.Sprintf("(%dms)", result.DurationMs)))
	if result.ManifestPath != "" {
		fmt.Fprintf(&b, "%s %s\n", p.muted("manifest:"), result.ManifestPath)
	}

	if len(result.Steps) == 0 {
		b.WriteString(p.muted("No changes.") + "\n")
	}
	for _, s := range result.Steps {
		status := string(s.Status)
		if style, ok := p.statuses[s.Status]; ok {
			status = style(status)
		}
		line := fmt.Sprintf("  %-8s %s: %s", status, s.Kind, s.Message)
		if paths := formatPaths(s.Paths); paths != "" {
			line += " " + p.muted("("+paths+")")
		}
		b.WriteString(line + "\n")
		if s.Error != "" {
			b.WriteString("           " + p.failure(s.Error) + "\n")
		}
	}

	for _, w := range result.Warnings {
		b.WriteString(p.warning("warning: ") + w + "\n")
	}
	for _, e := range result.Errors {
		b.WriteString(p.failure("error: ") + e + "\n")
	}

	if len(result.RollbackSteps) > 0 && !result.OK {
		b.WriteString(p.heading("Rollback plan:") + "\n")
		b.WriteString(FormatPlan(result.RollbackSteps) + "\n")
	}

	_, err := io.WriteString(r.output, b.String())
	return err
}

// RenderError writes an error line
func (r *TextRenderer) RenderError(err error) error {
	_, werr := fmt.Fprintln(r.output, r.palette.failure("error: ")+err.Error())
	return werr
}

// RenderMessage writes msg as is
func (r *TextRenderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}
