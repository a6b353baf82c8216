package query

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/c-bata/go-prompt"

	"github.com/revelaction/subsent/render"
	sent "github.com/revelaction/subsent/sentence"
	"github.com/revelaction/subsent/split"
	"github.com/revelaction/subsent/storage"
)

const (
	quitCommand = "quit"

	// maxSuggestions of docs shown by the completer
	maxSuggestions = 12
)

// Handler reads "<doc> [<sentence>]" lines and prints the clauses of the doc
// or of one of its sentences.
type Handler struct {
	DocRepo  storage.DocReader
	Splitter *split.Splitter
	Renderer *render.TextRenderer
	Out      io.Writer

	docs []sent.Doc
}

func NewHandler(dr storage.DocReader, s *split.Splitter, r *render.TextRenderer, out io.Writer) *Handler {
	return &Handler{
		DocRepo:  dr,
		Splitter: s,
		Renderer: r,
		Out:      out,
	}
}

func (h *Handler) Run() error {
	docs, err := h.DocRepo.List("")
	if err != nil {
		return err
	}
	h.docs = docs

	fmt.Fprintln(h.Out, "🔑 <doc> [sentence], Ctrl+X: Toggle prefix, Ctrl+F: next Format, 🔧 quit")

	// initialize prompt history
	history := []string{}

	for {
		in := prompt.Input("      ✂  ", h.completer,
			prompt.OptionTitle("subsent query"),
			prompt.OptionPrefixTextColor(prompt.Yellow),
			prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
			prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
			prompt.OptionMaxSuggestion(maxSuggestions),
			prompt.OptionSuggestionBGColor(prompt.DarkGray),
			prompt.OptionHistory(history),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlF,
				Fn: func(buf *prompt.Buffer) {
					h.Renderer.NextFormat()
					fmt.Fprintln(h.Out, "Format set to: "+h.Renderer.Format)
				}}),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlX,
				Fn: func(buf *prompt.Buffer) {
					h.Renderer.NextPrefix()
					fmt.Fprintf(h.Out, "Prefix set to %t\n", h.Renderer.HasPrefix)
				}}),
		)

		in = strings.TrimSpace(in)
		if in == quitCommand {
			return nil
		}
		if in == "" {
			continue
		}

		history = append(history, in)
		if err := h.Answer(in); err != nil {
			fmt.Fprintf(h.Out, "✍  %v\n", err)
		}
	}
}

// Answer prints the clauses requested by the line in.
func (h *Handler) Answer(in string) error {
	docId, sentId, err := parse(in)
	if err != nil {
		return err
	}

	if sentId == nil {
		doc, clauses, err := storage.ReadClauses(h.DocRepo, h.Splitter, docId)
		if err != nil {
			return err
		}
		return h.Renderer.Render(doc, clauses)
	}

	doc, err := h.DocRepo.Read(docId)
	if err != nil {
		return err
	}

	tree, err := sent.NewTree(doc)
	if err != nil {
		return err
	}

	clauses, err := h.Splitter.SplitSentence(tree, *sentId)
	if err != nil {
		return err
	}

	roots := make([]sent.Token, 0, len(clauses))
	for _, c := range clauses {
		roots = append(roots, c.Root)
	}
	if err := h.Renderer.Sentence(doc.Tokens[*sentId], roots, fmt.Sprintf("📖 %d-%d ", docId, *sentId)); err != nil {
		return err
	}
	return h.Renderer.Render(doc, clauses)
}

func (h *Handler) completer(in prompt.Document) []prompt.Suggest {
	return h.complete(in.TextBeforeCursor())
}

// complete suggests doc ids while the first word is typed.
func (h *Handler) complete(befCursor string) []prompt.Suggest {
	s := []prompt.Suggest{}

	if befCursor == "" || strings.Contains(befCursor, " ") {
		return s
	}

	for _, doc := range h.docs {
		id := strconv.Itoa(doc.Id)
		if strings.HasPrefix(id, befCursor) || strings.Contains(doc.Title, befCursor) {
			s = append(s, prompt.Suggest{Text: id, Description: "📖 " + doc.Title})
		}
	}

	return s
}

func parse(in string) (docId int, sentId *int, err error) {
	fields := strings.Fields(in)
	if len(fields) == 0 || len(fields) > 2 {
		return 0, nil, errors.New("usage: <doc> [sentence]")
	}

	docId, err = strconv.Atoi(fields[0])
	if err != nil {
		return 0, nil, fmt.Errorf("doc id %q is not a number", fields[0])
	}

	if len(fields) == 2 {
		id, err := strconv.Atoi(fields[1])
		if err != nil {
			return 0, nil, fmt.Errorf("sentence id %q is not a number", fields[1])
		}
		sentId = &id
	}

	return docId, sentId, nil
}
