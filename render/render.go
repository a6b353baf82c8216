package render

import (
	"fmt"
	"io"
	"strings"

	sent "github.com/revelaction/subsent/sentence"
	"github.com/revelaction/subsent/split"
)

const (
	FormatText  = "text"
	FormatLemma = "lemma"
	FormatJSON  = "json"

	// gap is written between two tokens of a clause that are not
	// contiguous in the sentence
	gap = " "
)

var (
	Black   = "\033[1;30m"
	Red     = "\033[1;31m"
	Green   = "\033[1;32m"
	Yellow  = "\033[0;33m"
	Purple  = "\033[1;34m"
	Magenta = "\033[1;35m"
	Teal    = "\033[1;36m"
	Gray    = "\033[0;37m"
	White   = "\033[1;37m"
	Off     = "\033[0m"
	//Yellow256  = "\033[1;38;5;202m"
	Yellow256 = "\033[1;38;5;130m"
	Grey256   = "\033[1;38;5;145m"
	Green256  = "\033[1;38;5;70m"
	ClearLine = "\033[K"
)

// Renderer renders the clauses of a doc.
type Renderer interface {
	Render(doc sent.Doc, clauses []split.Clause) error
}

// SupportedFormats returns the formats of the text renderer.
func SupportedFormats() []string {
	return []string{FormatText, FormatLemma}
}

// TextRenderer writes one clause per line.
type TextRenderer struct {
	W io.Writer

	// HasColor highlights the root of each clause
	HasColor bool

	HasPrefix bool

	PrefixFunc func(doc sent.Doc, c split.Clause) string

	// Format determines the format of the clause
	//
	// text: the words of the clause, spaced as in the original text
	// lemma: the lemmas of the clause
	Format string
}

var _ Renderer = (*TextRenderer)(nil)

func NewTextRenderer(w io.Writer) *TextRenderer {
	return &TextRenderer{
		W:         w,
		HasPrefix: true,
		Format:    FormatText,
	}
}

func (r *TextRenderer) Render(doc sent.Doc, clauses []split.Clause) error {
	for _, c := range clauses {
		var text string
		switch r.Format {
		case FormatLemma:
			text = lemma(c.Tokens)
		default:
			text = r.text(c.Tokens, []sent.Token{c.Root})
		}

		if _, err := fmt.Fprintf(r.W, "%s%s\n", r.prefix(doc, c), text); err != nil {
			return err
		}
	}

	return nil
}

// Sentence writes the whole sentence s, marking the tokens in marks.
func (r *TextRenderer) Sentence(s []sent.Token, marks []sent.Token, prefix string) error {
	_, err := fmt.Fprintf(r.W, "%s%s\n", prefix, r.text(s, marks))
	return err
}

// Text returns the words of tokens spaced as in the original text.
func Text(tokens []sent.Token) string {
	r := TextRenderer{}
	return r.text(tokens, nil)
}

func (r *TextRenderer) text(tokens, marks []sent.Token) string {
	var str strings.Builder
	for i, token := range tokens {
		if i == 0 {
			str.WriteString(colorToken(token, marks, r.HasColor))
			continue
		}

		last := tokens[i-1]

		// both (or more) parts of a multi token word have the same `text`
		// and the same `idx`, the text is written once.
		//
		//   {"id": 455, "text": "envolverse", "idx": 2431, "index": 4, "lemma": "envolver"},
		//   {"id": 456, "text": "envolverse", "idx": 2431, "index": 5, "lemma": "él"},
		diff := token.Idx - last.Idx
		if diff <= 0 {
			continue
		}

		// a token of the sentence between last and token is missing from
		// the clause
		if token.SentenceId != last.SentenceId || token.Index > last.Index+1 {
			str.WriteString(gap)
		} else {
			str.WriteString(strings.Repeat(" ", max(diff-len([]rune(last.Text)), 0)))
		}
		str.WriteString(colorToken(token, marks, r.HasColor))
	}

	return strings.ReplaceAll(str.String(), "\n", " ")
}

func (r *TextRenderer) prefix(doc sent.Doc, c split.Clause) string {
	if !r.HasPrefix {
		return ""
	}

	if r.PrefixFunc != nil {
		return r.PrefixFunc(doc, c)
	}

	return fmt.Sprintf("[%s %2d %4d:%-14s] ✍  ", title(doc.Title, r.HasColor), doc.Id, c.SentenceId, root(c))
}

func root(c split.Clause) string {
	text := []rune(c.Root.Text)
	if len(text) > 14 {
		text = text[:14]
	}
	return string(text)
}

// NextFormat sets the Format option to a different one, following the
// SupportedFormats() order.
func (r *TextRenderer) NextFormat() {
	supported := SupportedFormats()
	for i, format := range supported {
		if format == r.Format {
			r.Format = supported[(i+1)%len(supported)]
			return
		}
	}
	r.Format = supported[0]
}

func (r *TextRenderer) NextPrefix() {
	// toggle
	r.HasPrefix = !r.HasPrefix
}

// lemma renders the lemma field of the tokens
func lemma(tokens []sent.Token) string {
	lemmas := make([]string, 0, len(tokens))
	for _, t := range tokens {
		lemmas = append(lemmas, t.Lemma)
	}

	return strings.Join(lemmas, " ")
}

func colorToken(token sent.Token, marks []sent.Token, hasColor bool) string {
	if !hasColor {
		return token.Text
	}

	for _, mt := range marks {
		if mt.Id == token.Id {
			return Green256 + token.Text + Off
		}
	}

	return token.Text
}

func title(t string, hasColor bool) string {
	var part string
	if len([]rune(t)) <= 20 {
		part = fmt.Sprintf("%-20s", t)
	} else {
		part = string([]rune(t)[:20])
	}

	if !hasColor {
		return part
	}
	return Grey256 + part + Off
}
