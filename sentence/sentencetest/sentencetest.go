// Package sentencetest provides parsed documents for tests.
package sentencetest

import (
	"math/rand"
	"strings"

	sent "github.com/revelaction/subsent/sentence"
)

// W is a word of a test sentence. Head is the in-sentence index of the
// governing word; the root points to itself.
type W struct {
	Text string
	Pos  string
	Dep  string
	Head int
}

// Doc builds a doc from sentences of words. Ids run over the whole doc and
// offsets are computed as if the words were separated by a single space,
// punctuation excepted.
func Doc(title string, sentences ...[]W) sent.Doc {
	doc := sent.Doc{Title: title}
	id, offset := 0, 0
	for sid, words := range sentences {
		tokens := make([]sent.Token, 0, len(words))
		for i, w := range words {
			if offset > 0 && !isPunct(w.Text) {
				offset++
			}
			tokens = append(tokens, sent.Token{
				Id:         id,
				Head:       w.Head,
				SentenceId: sid,
				Pos:        w.Pos,
				Dep:        w.Dep,
				Idx:        offset,
				Text:       w.Text,
				Lemma:      strings.ToLower(w.Text),
				Index:      i,
			})
			offset += len([]rune(w.Text))
			id++
		}
		doc.Tokens = append(doc.Tokens, tokens)
	}
	return doc
}

func isPunct(s string) bool {
	return strings.Trim(s, ".,;:!?") == ""
}

// Subsentencizer is "When I want to split a sentence, I apply my custom
// subsentencizer and wait for the results to be yielded."
// "want" is a clausal complement of "apply", "wait" a conjunct.
func Subsentencizer() sent.Doc {
	return Doc("subsentencizer", []W{
		{"When", "ADV", "advmod", 2},
		{"I", "PRON", "nsubj", 2},
		{"want", "VERB", "ccomp", 9},
		{"to", "PART", "aux", 4},
		{"split", "VERB", "xcomp", 2},
		{"a", "DET", "det", 6},
		{"sentence", "NOUN", "dobj", 4},
		{",", "PUNCT", "punct", 9},
		{"I", "PRON", "nsubj", 9},
		{"apply", "VERB", "ROOT", 9},
		{"my", "PRON", "poss", 12},
		{"custom", "ADJ", "amod", 12},
		{"subsentencizer", "NOUN", "dobj", 9},
		{"and", "CCONJ", "cc", 9},
		{"wait", "VERB", "conj", 9},
		{"for", "ADP", "prep", 14},
		{"the", "DET", "det", 17},
		{"results", "NOUN", "pobj", 15},
		{"to", "PART", "aux", 20},
		{"be", "AUX", "auxpass", 20},
		{"yielded", "VERB", "relcl", 17},
		{".", "PUNCT", "punct", 9},
	})
}

// Nested is "I think that you said that he left." with three clauses, each
// embedded in the previous one.
func Nested() sent.Doc {
	return Doc("nested", []W{
		{"I", "PRON", "nsubj", 1},
		{"think", "VERB", "ROOT", 1},
		{"that", "SCONJ", "mark", 4},
		{"you", "PRON", "nsubj", 4},
		{"said", "VERB", "ccomp", 1},
		{"that", "SCONJ", "mark", 7},
		{"he", "PRON", "nsubj", 7},
		{"left", "VERB", "ccomp", 4},
		{".", "PUNCT", "punct", 1},
	})
}

// NestedInverted is "He left, you said, I think." where the embedded
// clauses precede the clauses embedding them.
func NestedInverted() sent.Doc {
	return Doc("nested-inverted", []W{
		{"He", "PRON", "nsubj", 1},
		{"left", "VERB", "ccomp", 4},
		{",", "PUNCT", "punct", 4},
		{"you", "PRON", "nsubj", 4},
		{"said", "VERB", "ccomp", 7},
		{",", "PUNCT", "punct", 7},
		{"I", "PRON", "nsubj", 7},
		{"think", "VERB", "ROOT", 7},
		{".", "PUNCT", "punct", 7},
	})
}

// TwoSentences is "I sleep and she reads. He left."
func TwoSentences() sent.Doc {
	return Doc("two-sentences",
		[]W{
			{"I", "PRON", "nsubj", 1},
			{"sleep", "VERB", "ROOT", 1},
			{"and", "CCONJ", "cc", 1},
			{"she", "PRON", "nsubj", 4},
			{"reads", "VERB", "conj", 1},
			{".", "PUNCT", "punct", 1},
		},
		[]W{
			{"He", "PRON", "nsubj", 1},
			{"left", "VERB", "ROOT", 1},
			{".", "PUNCT", "punct", 1},
		},
	)
}

// Simple is "The old cat sleeps." with no clause besides the root.
func Simple() sent.Doc {
	return Doc("simple", []W{
		{"The", "DET", "det", 2},
		{"old", "ADJ", "amod", 2},
		{"cat", "NOUN", "nsubj", 3},
		{"sleeps", "VERB", "ROOT", 3},
		{".", "PUNCT", "punct", 3},
	})
}

var (
	randomPos  = []string{"VERB", "ADJ", "NOUN", "PRON", "ADP"}
	randomDeps = []string{"conj", "ccomp", "nsubj", "obj", "advcl"}
)

// Random builds a single sentence doc of n words with a random valid
// dependency tree.
func Random(r *rand.Rand, n int) sent.Doc {
	order := r.Perm(n)
	words := make([]W, n)
	root := order[0]
	words[root] = W{Text: "w", Pos: "VERB", Dep: sent.RootDep, Head: root}
	for k := 1; k < n; k++ {
		i := order[k]
		words[i] = W{
			Text: "w",
			Pos:  randomPos[r.Intn(len(randomPos))],
			Dep:  randomDeps[r.Intn(len(randomDeps))],
			Head: order[r.Intn(k)],
		}
	}
	return Doc("random", words)
}
