package source

import (
	"fmt"
	"os"
	"strings"
)

// Source enumerates the paragraphs of one playback run.
type Source interface {
	ParagraphCount() int
	Paragraph(index int) string
}

// TextSource holds an already-split paragraph queue. It is consumed
// front-to-back by the engine and never mutated.
type TextSource struct {
	paragraphs []string
}

func (s *TextSource) ParagraphCount() int { return len(s.paragraphs) }

func (s *TextSource) Paragraph(index int) string { return s.paragraphs[index] }

// FromString builds a source by splitting raw text on blank lines.
func FromString(text string) *TextSource {
	return &TextSource{paragraphs: Split(text)}
}

// FromFile reads a UTF-8 text file and splits it into paragraphs.
func FromFile(path string) (*TextSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return FromString(string(data)), nil
}

// Split breaks text into paragraphs on blank-line separators. Each
// paragraph is trimmed; empty entries are dropped. Inner single
// newlines are collapsed to spaces so a hard-wrapped file still reads
// as one paragraph.
func Split(text string) []string {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	var out []string
	for _, block := range strings.Split(normalized, "\n\n") {
		p := strings.TrimSpace(block)
		if p == "" {
			continue
		}
		p = strings.Join(strings.Fields(p), " ")
		out = append(out, p)
	}
	return out
}
