package output

import (
	"encoding/json"
	"fmt"
	"html"
	"io"
	"regexp"
	"strings"

	"github.com/Egor213/LogLens/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Renderer writes a parse result to an output stream.
type Renderer interface {
	Render(w io.Writer, records []domain.LogRecord) error
}

// New returns the renderer for format ("json" or "text"). pretty indents JSON.
func New(format string, pretty bool) (Renderer, error) {
	switch strings.ToLower(format) {
	case "json":
		return JSONRenderer{Indent: pretty}, nil
	case "text", "":
		return TextRenderer{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// JSONRenderer writes the records as one JSON array, like the HTTP API.
type JSONRenderer struct {
	Indent bool
}

func (r JSONRenderer) Render(w io.Writer, records []domain.LogRecord) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if r.Indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(records)
}

var (
	styleFatal   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	styleWarning = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	styleNotice  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	styleCount   = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	styleTime    = lipgloss.NewStyle().Faint(true)
)

var anchorPattern = regexp.MustCompile(`<a href='([^']*)'>(.*?)</a>`)

// TextRenderer prints one block per record, colored by its tag.
type TextRenderer struct{}

func (TextRenderer) Render(w io.Writer, records []domain.LogRecord) error {
	for _, rec := range records {
		header := fmt.Sprintf("%s %s %s",
			styleTime.Render(rec.Timestamp),
			styleCount.Render(fmt.Sprintf("x%d", rec.Count)),
			styleForTags(rec.Tags).Render(rec.Tags),
		)
		if _, err := fmt.Fprintf(w, "%s\n%s\n\n", strings.TrimRight(header, " "), PlainMessage(rec.Message)); err != nil {
			return err
		}
	}
	return nil
}

func styleForTags(tags string) lipgloss.Style {
	switch domain.SeverityOf(tags) {
	case domain.SeverityFatal:
		return styleFatal
	case domain.SeverityWarning:
		return styleWarning
	case domain.SeverityNotice:
		return styleNotice
	default:
		return lipgloss.NewStyle()
	}
}

// PlainMessage turns a record message back into terminal text: links become
// "text (uri)" and HTML entities are decoded.
func PlainMessage(msg string) string {
	msg = anchorPattern.ReplaceAllString(msg, "$2 ($1)")
	return html.UnescapeString(msg)
}
