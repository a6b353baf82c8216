package sentence_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sent "github.com/revelaction/subsent/sentence"
	"github.com/revelaction/subsent/sentence/sentencetest"
)

func texts(tokens []sent.Token) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, t.Text)
	}
	return out
}

func TestNewTreeSubtree(t *testing.T) {
	tree, err := sent.NewTree(sentencetest.Nested())
	require.NoError(t, err)

	tokens := tree.Tokens()
	require.Len(t, tokens, 9)

	// root
	assert.Len(t, tree.Subtree(tokens[1]), 9)
	// said
	assert.Equal(t, []string{"that", "you", "said", "that", "he", "left"}, texts(tree.Subtree(tokens[4])))
	// left
	assert.Equal(t, []string{"that", "he", "left"}, texts(tree.Subtree(tokens[7])))
	// leaf
	assert.Equal(t, []string{"."}, texts(tree.Subtree(tokens[8])))
}

func TestSubtreeUnknownToken(t *testing.T) {
	tree, err := sent.NewTree(sentencetest.Simple())
	require.NoError(t, err)

	assert.Nil(t, tree.Subtree(sent.Token{Id: 99}))
}

func TestSubtreeStaysInSentence(t *testing.T) {
	tree, err := sent.NewTree(sentencetest.TwoSentences())
	require.NoError(t, err)

	sentences := tree.Sentences()
	require.Len(t, sentences, 2)

	// Both roots have Index 1, their subtrees must not mix.
	first := tree.Subtree(sentences[0][1])
	second := tree.Subtree(sentences[1][1])
	assert.Len(t, first, 6)
	assert.Equal(t, []string{"He", "left", "."}, texts(second))
}

func TestValidateSentence(t *testing.T) {
	valid := sentencetest.Simple().Tokens[0]

	tests := []struct {
		name   string
		mutate func([]sent.Token)
	}{
		{"no root", func(s []sent.Token) { s[3].Head = 2 }},
		{"two roots", func(s []sent.Token) { s[0].Head = 0 }},
		{"head outside sentence", func(s []sent.Token) { s[4].Head = 42 }},
		{"cycle", func(s []sent.Token) { s[0].Head = 1; s[1].Head = 0 }},
		{"duplicated index", func(s []sent.Token) { s[4].Index = 0 }},
	}

	require.NoError(t, sent.ValidateSentence(valid))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := append([]sent.Token(nil), valid...)
			tt.mutate(s)
			err := sent.ValidateSentence(s)
			assert.ErrorIs(t, err, sent.ErrInvalidTree)
		})
	}

	assert.ErrorIs(t, sent.ValidateSentence(nil), sent.ErrInvalidTree)
}

func TestNewTreeInvalid(t *testing.T) {
	doc := sentencetest.TwoSentences()
	doc.Tokens[1][0].Head = 7

	_, err := sent.NewTree(doc)
	require.ErrorIs(t, err, sent.ErrInvalidTree)
	assert.Contains(t, err.Error(), "sentence 1")
}

func TestNewTreeDuplicatedId(t *testing.T) {
	doc := sentencetest.TwoSentences()
	doc.Tokens[1][0].Id = 0

	_, err := sent.NewTree(doc)
	assert.ErrorIs(t, err, sent.ErrInvalidTree)
}

// orphanParse reports a subtree that misses part of the sentence.
type orphanParse struct {
	*sent.Tree
}

func (p orphanParse) Subtree(t sent.Token) []sent.Token {
	return p.Tree.Subtree(t)[:1]
}

func TestValidate(t *testing.T) {
	tree, err := sent.NewTree(sentencetest.Subsentencizer())
	require.NoError(t, err)

	require.NoError(t, sent.Validate(tree))
	assert.ErrorIs(t, sent.Validate(orphanParse{tree}), sent.ErrInvalidTree)
}

func TestTokenHasDep(t *testing.T) {
	assert.True(t, sent.Token{Dep: "root"}.HasDep(sent.RootDep))
	assert.True(t, sent.Token{Dep: "ROOT"}.HasDep("root"))
	assert.True(t, sent.Token{Dep: "conj"}.HasDep("conj"))
	assert.False(t, sent.Token{Dep: "CONJ"}.HasDep("conj"))
}

func TestDocNumTokens(t *testing.T) {
	assert.Equal(t, 9, sentencetest.TwoSentences().NumTokens())
	assert.Equal(t, 0, sent.Doc{}.NumTokens())
}
