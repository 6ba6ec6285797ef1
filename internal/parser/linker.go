package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Egor213/LogLens/internal/domain"
	"github.com/valyala/fasttemplate"
)

const (
	tagStart = "{{"
	tagEnd   = "}}"
)

// referencePattern matches stack-trace style file references at the end of a
// line: "/app/x.php on line 12", "/app/x.php:12", "C:\app\x.php(12)".
var referencePattern = regexp.MustCompile(`(?m)([A-Z]:)?([\\/][^:(\s]+)(?: on line |[:(])([0-9]+)\)?\r?$`)

// Linker rewrites file references in an escaped message into editor links.
type Linker struct {
	template *fasttemplate.Template
	search   string
	replace  string
}

// NewLinker returns a nil *Linker when linking is disabled; its Link is a no-op.
func NewLinker(cfg domain.ParseConfig) (*Linker, error) {
	if cfg.LinkTemplate == "" {
		return nil, nil
	}
	tpl, err := fasttemplate.NewTemplate(cfg.LinkTemplate, tagStart, tagEnd)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrLinkTemplate, cfg.LinkTemplate, err)
	}
	return &Linker{
		template: tpl,
		search:   cfg.LinkPathSearch,
		replace:  cfg.LinkPathReplace,
	}, nil
}

func (l *Linker) Link(msg string) string {
	if l == nil {
		return msg
	}
	matches := referencePattern.FindAllStringSubmatchIndex(msg, -1)
	if len(matches) == 0 {
		return msg
	}

	var b strings.Builder
	b.Grow(len(msg) + len(matches)*64)
	last := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		if end > start && msg[end-1] == '\r' {
			end--
		}
		path := group(msg, m, 1) + group(msg, m, 2)
		line := group(msg, m, 3)

		b.WriteString(msg[last:start])
		b.WriteString("<a href='")
		b.WriteString(l.URI(path, line))
		b.WriteString("'>")
		b.WriteString(msg[start:end])
		b.WriteString("</a>")
		last = end
	}
	b.WriteString(msg[last:])
	return b.String()
}

// URI renders the link target for a path and line number.
func (l *Linker) URI(path, line string) string {
	if l.search != "" {
		path = strings.ReplaceAll(path, l.search, l.replace)
	}
	return l.template.ExecuteString(map[string]interface{}{
		"path":        path,
		"line_number": line,
	})
}

func group(s string, m []int, n int) string {
	if m[2*n] < 0 {
		return ""
	}
	return s[m[2*n]:m[2*n+1]]
}
