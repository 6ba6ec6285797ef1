// Package parser turns raw error log text into grouped, typed records.
//
// An entry starts at a line beginning with a bracketed timestamp and runs up
// to the next such line, so stack traces and dumps stay with their entry.
// Entries with the same trimmed message body are folded into one record.
package parser

import (
	"hash/crc32"
	"strings"
	"unicode/utf8"

	"github.com/Egor213/LogLens/internal/domain"
)

// Parser holds only immutable state and is safe for concurrent use.
type Parser struct {
	linker *Linker
}

func New(cfg domain.ParseConfig) (*Parser, error) {
	linker, err := NewLinker(cfg)
	if err != nil {
		return nil, err
	}
	return &Parser{linker: linker}, nil
}

// Parse is a one-shot helper around New and (*Parser).Parse.
func Parse(raw string, cfg domain.ParseConfig) ([]domain.LogRecord, error) {
	p, err := New(cfg)
	if err != nil {
		return nil, err
	}
	return p.Parse(raw)
}

func (p *Parser) ParseBytes(raw []byte) ([]domain.LogRecord, error) {
	return p.Parse(string(raw))
}

// Parse returns one record per distinct message body in first-occurrence order.
func (p *Parser) Parse(raw string) ([]domain.LogRecord, error) {
	if !utf8.ValidString(raw) {
		return nil, &DecodeError{Offset: invalidOffset(raw)}
	}

	acc := aggregate{records: make(map[uint32]domain.LogRecord)}
	for _, b := range splitBlocks(raw) {
		acc = p.fold(acc, b)
	}
	return acc.result(), nil
}

type block struct {
	timestamp string
	message   string
}

type aggregate struct {
	order   []uint32
	records map[uint32]domain.LogRecord
}

func (a aggregate) result() []domain.LogRecord {
	out := make([]domain.LogRecord, 0, len(a.order))
	for _, id := range a.order {
		out = append(out, a.records[id])
	}
	return out
}

// fold merges one entry into acc. Identity comes from the raw trimmed body,
// before escaping or linking; the other fields are overwritten on repeats.
func (p *Parser) fold(acc aggregate, b block) aggregate {
	body := trim(b.message)
	id := crc32.ChecksumIEEE([]byte(body))

	rec, seen := acc.records[id]
	if !seen {
		rec = domain.LogRecord{ID: id}
		acc.order = append(acc.order, id)
	}

	msg := Escape(body)
	rec.Count++
	rec.Timestamp = NormalizeTimestamp(b.timestamp)
	// Tags come from the escaped text before linking, so anchor markup never
	// reaches them. A message that starts with a path is tagged from the
	// path's words, not from link markup.
	rec.Tags = Classify(msg)
	rec.Message = p.linker.Link(msg)

	acc.records[id] = rec
	return acc
}

// splitBlocks cuts raw at every line that starts with "[...]". Text before the
// first such line is dropped.
func splitBlocks(raw string) []block {
	var (
		blocks   []block
		msgStart int
	)
	for pos := 0; pos < len(raw); {
		lineEnd, next := len(raw), len(raw)
		if i := strings.IndexByte(raw[pos:], '\n'); i >= 0 {
			lineEnd = pos + i
			next = lineEnd + 1
		}

		if ts, ok := delimiter(raw[pos:lineEnd]); ok {
			if n := len(blocks); n > 0 {
				blocks[n-1].message = raw[msgStart:pos]
			}
			blocks = append(blocks, block{timestamp: ts})
			msgStart = pos + len(ts) + 2
		}
		pos = next
	}
	if n := len(blocks); n > 0 {
		blocks[n-1].message = raw[msgStart:]
	}
	return blocks
}

func delimiter(line string) (string, bool) {
	if len(line) == 0 || line[0] != '[' {
		return "", false
	}
	i := strings.IndexByte(line[1:], ']')
	if i < 0 {
		return "", false
	}
	return line[1 : i+1], true
}

func invalidOffset(s string) int {
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return len(s)
}
