package render

import (
	"bytes"
	"encoding/json"
	"testing"

	sent "github.com/revelaction/subsent/sentence"
	"github.com/revelaction/subsent/split"
)

func TestJSONRendererRenderEmpty(t *testing.T) {
	var buf bytes.Buffer
	r := NewJSONRenderer(&buf)
	if err := r.Render(sent.Doc{}, nil); err != nil {
		t.Fatalf("render: %v", err)
	}

	var results []ClauseView
	if err := json.Unmarshal(buf.Bytes(), &results); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}

	if len(results) != 0 {
		t.Fatalf("expected 0 results, got %d", len(results))
	}
}

func TestJSONRendererRenderOneClause(t *testing.T) {
	cat := sent.Token{Id: 7, Index: 0, Head: 1, SentenceId: 2, Idx: 40, Lemma: "cat", Text: "cat"}
	sleeps := sent.Token{Id: 8, Index: 1, Head: 1, SentenceId: 2, Idx: 44, Lemma: "sleep", Text: "sleeps", Dep: "ROOT"}
	c := split.Clause{
		Root:       sleeps,
		SentenceId: 2,
		Tokens:     []sent.Token{cat, sleeps},
	}

	var buf bytes.Buffer
	r := NewJSONRenderer(&buf)
	if err := r.Render(sent.Doc{Id: 5}, []split.Clause{c}); err != nil {
		t.Fatalf("render: %v", err)
	}

	var results []ClauseView
	if err := json.Unmarshal(buf.Bytes(), &results); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}

	got := results[0]
	if got.DocId != 5 || got.SentenceId != 2 {
		t.Errorf("expected doc 5 sent 2, got doc %d sent %d", got.DocId, got.SentenceId)
	}

	if got.Text != "cat sleeps" {
		t.Errorf("expected text 'cat sleeps', got %q", got.Text)
	}

	if got.Start != 40 || got.End != 44 {
		t.Errorf("expected offsets 40-44, got %d-%d", got.Start, got.End)
	}

	if got.Root.Text != "sleeps" {
		t.Errorf("expected root 'sleeps', got %q", got.Root.Text)
	}

	if len(got.Tokens) != 2 {
		t.Fatalf("expected 2 tokens, got %d", len(got.Tokens))
	}
}
