package sentence

import "strings"

// RootDep is the dependency label of the token heading a sentence.
const RootDep = "ROOT"

type Doc struct {
	Id int `json:"id"`

	Title string `json:"title"`

	Labels []string `json:"labels,omitempty"`
	Tokens [][]Token `json:"tokens"`
}

// Token represents a word of the sentence, with POS and metadata.
type Token struct {
	// The position of the token in the whole doc, starting at 0.
	Id int `json:"id"`

	// The Index of the governing token in the same sentence. The root of
	// the sentence points to itself.
	Head       int    `json:"head"`
	SentenceId int    `json:"sent"`
	Pos        string `json:"pos"`
	Dep        string `json:"dep"`

	// A string containing detailed POS data
	Tag string `json:"tag"`

	// the index of the start character of the token in the original doc (set by spacy, stanza)
	Idx int `json:"idx"`

	// The unmodified word
	Text string `json:"text"`

	// The lemma of the word
	Lemma string `json:"lemma"`

	// The index of the word in the sentence, starting at 0.
	Index int `json:"index"`
}

// IsRoot reports whether t heads its sentence.
func (t Token) IsRoot() bool {
	return t.Head == t.Index
}

// HasDep reports whether the dependency label of t is dep. ROOT is compared
// case insensitively, UD treebanks write it lowercase.
func (t Token) HasDep(dep string) bool {
	if strings.EqualFold(dep, RootDep) {
		return strings.EqualFold(t.Dep, RootDep)
	}
	return t.Dep == dep
}

// End returns the offset just after the token text.
func (t Token) End() int {
	return t.Idx + len([]rune(t.Text))
}

// NumTokens returns the number of tokens over all sentences.
func (d Doc) NumTokens() int {
	n := 0
	for _, s := range d.Tokens {
		n += len(s)
	}
	return n
}
