package render

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	chromastyles "github.com/alecthomas/chroma/v2/styles"
)

// documentTheme colours generated pull request bodies and work summaries.
const documentTheme = "dracula"

// Span is a run of document text sharing one look. Color is "" for the
// terminal default.
type Span struct {
	Text  string
	Color string
	Bold  bool
}

// DocLine is one line of a generated document.
type DocLine struct {
	Spans []Span
}

// Plain returns the line without styling.
func (l DocLine) Plain() string {
	var b strings.Builder
	for _, s := range l.Spans {
		b.WriteString(s.Text)
	}
	return b.String()
}

// MarkdownLines splits a generated Markdown document into styled lines, one
// per line of doc. The trailing newline every document ends with does not
// yield an empty last line. Adjacent tokens with the same look are merged
// so a heading or table row comes back as few spans as possible.
func MarkdownLines(doc string) []DocLine {
	doc = strings.TrimSuffix(doc, "\n")
	lines := strings.Split(doc, "\n")

	iterator, err := markdownLexer().Tokenise(nil, doc)
	if err != nil {
		return plainDocLines(lines)
	}
	theme := chromastyles.Get(documentTheme)

	out := make([]DocLine, 0, len(lines))
	var current DocLine
	for _, token := range iterator.Tokens() {
		entry := theme.Get(token.Type)
		look := Span{Bold: entry.Bold == chroma.Yes}
		if entry.Colour.IsSet() {
			look.Color = entry.Colour.String()
		}
		for i, part := range strings.Split(token.Value, "\n") {
			if i > 0 {
				out = append(out, current)
				current = DocLine{}
			}
			current.add(part, look)
		}
	}
	out = append(out, current)

	for len(out) < len(lines) {
		out = append(out, DocLine{})
	}
	return out[:len(lines)]
}

func (l *DocLine) add(text string, look Span) {
	if text == "" {
		return
	}
	if n := len(l.Spans); n > 0 && l.Spans[n-1].Color == look.Color && l.Spans[n-1].Bold == look.Bold {
		l.Spans[n-1].Text += text
		return
	}
	look.Text = text
	l.Spans = append(l.Spans, look)
}

func markdownLexer() chroma.Lexer {
	lexer := lexers.Get("markdown")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return chroma.Coalesce(lexer)
}

func plainDocLines(lines []string) []DocLine {
	out := make([]DocLine, len(lines))
	for i, line := range lines {
		if line != "" {
			out[i] = DocLine{Spans: []Span{{Text: line}}}
		}
	}
	return out
}
