package render

import (
	"encoding/json"
	"io"

	sent "github.com/revelaction/subsent/sentence"
	"github.com/revelaction/subsent/split"
)

// ClauseView is the serialized form of a clause.
type ClauseView struct {
	DocId      int          `json:"doc"`
	SentenceId int          `json:"sent"`
	Root       sent.Token   `json:"root"`
	Start      int          `json:"start"`
	End        int          `json:"end"`
	Text       string       `json:"text"`
	Tokens     []sent.Token `json:"tokens"`
}

// NewClauseViews returns the views of the clauses of doc.
func NewClauseViews(doc sent.Doc, clauses []split.Clause) []ClauseView {
	views := make([]ClauseView, 0, len(clauses))
	for _, c := range clauses {
		views = append(views, ClauseView{
			DocId:      doc.Id,
			SentenceId: c.SentenceId,
			Root:       c.Root,
			Start:      c.Start(),
			End:        c.End(),
			Text:       Text(c.Tokens),
			Tokens:     c.Tokens,
		})
	}
	return views
}

// JSONRenderer writes clauses as JSON to a writer.
type JSONRenderer struct {
	W io.Writer
}

// NewJSONRenderer creates a JSONRenderer writing to w.
func NewJSONRenderer(w io.Writer) *JSONRenderer {
	return &JSONRenderer{W: w}
}

// Render serializes the clauses as a JSON array.
func (r *JSONRenderer) Render(doc sent.Doc, clauses []split.Clause) error {
	return json.NewEncoder(r.W).Encode(NewClauseViews(doc, clauses))
}

// compile-time interface check
var _ Renderer = (*JSONRenderer)(nil)
