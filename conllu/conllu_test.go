package conllu_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revelaction/subsent/conllu"
	"github.com/revelaction/subsent/render"
	sent "github.com/revelaction/subsent/sentence"
	"github.com/revelaction/subsent/split"
)

const twoSentences = `# newdoc id = reviews-1
# sent_id = 1
# text = I sleep and she reads.
1	I	I	PRON	PRP	Case=Nom	2	nsubj	_	_
2	sleep	sleep	VERB	VBP	_	0	root	_	_
3	and	and	CCONJ	CC	_	5	cc	_	_
4	she	she	PRON	PRP	_	5	nsubj	_	_
5	reads	read	VERB	VBZ	_	2	conj	_	SpaceAfter=No
6	.	.	PUNCT	.	_	2	punct	_	_

# sent_id = 2
# text = He didn't.
1	He	he	PRON	PRP	_	3	nsubj	_	_
2-3	didn't	_	_	_	_	_	_	_	SpaceAfter=No
2	did	do	AUX	VBD	_	3	aux	_	_
3	n't	not	PART	RB	_	0	root	_	_
3.1	x	x	X	X	_	_	_	1:dep	_
4	.	.	PUNCT	.	_	3	punct	_	_
`

func TestRead(t *testing.T) {
	doc, err := conllu.Read(strings.NewReader(twoSentences))
	require.NoError(t, err)

	assert.Equal(t, "reviews-1", doc.Title)
	require.Len(t, doc.Tokens, 2)
	require.Len(t, doc.Tokens[0], 6)
	require.Len(t, doc.Tokens[1], 4)

	sleep := doc.Tokens[0][1]
	assert.Equal(t, sent.RootDep, sleep.Dep)
	assert.True(t, sleep.IsRoot())
	assert.Equal(t, 2, sleep.Idx)

	reads := doc.Tokens[0][4]
	assert.Equal(t, 1, reads.Head)
	assert.Equal(t, "read", reads.Lemma)
	assert.Equal(t, 4, reads.Id)

	// no space before the period
	assert.Equal(t, reads.End(), doc.Tokens[0][5].Idx)

	second := doc.Tokens[1]
	assert.Equal(t, 1, second[0].SentenceId)
	assert.Equal(t, 6, second[0].Id)
	assert.Equal(t, "Case=Nom", doc.Tokens[0][0].Tag)
	assert.Equal(t, "VBD", second[1].Tag)
}

// tokenAt returns the text at the offset of tok.
func tokenAt(text string, tok sent.Token) string {
	runes := []rune(text)
	end := min(tok.End(), len(runes))
	return string(runes[min(tok.Idx, end):end])
}

func TestReadMultiwordOffsets(t *testing.T) {
	doc, err := conllu.Read(strings.NewReader(twoSentences))
	require.NoError(t, err)

	text := "I sleep and she reads. He didn't."
	for _, sentence := range doc.Tokens {
		for _, tok := range sentence {
			assert.Equal(t, tok.Text, tokenAt(text, tok), "token %d", tok.Id)
		}
	}

	second := doc.Tokens[1]
	assert.Equal(t, 26, second[1].Idx)
	assert.Equal(t, 29, second[2].Idx)
	assert.Equal(t, 32, second[3].Idx)
	assert.Equal(t, "He didn't.", render.Text(second))
}

const contraction = `# text = Vino del norte.
1	Vino	venir	VERB	_	_	0	root	_	_
2-3	del	_	_	_	_	_	_	_	_
2	de	de	ADP	_	_	4	case	_	_
3	el	el	DET	_	_	4	det	_	_
4	norte	norte	NOUN	_	_	1	obl	_	SpaceAfter=No
5	.	.	PUNCT	_	_	1	punct	_	_
`

func TestReadMultiwordSharedForm(t *testing.T) {
	doc, err := conllu.Read(strings.NewReader(contraction))
	require.NoError(t, err)
	require.Len(t, doc.Tokens[0], 5)

	de, el := doc.Tokens[0][1], doc.Tokens[0][2]
	assert.Equal(t, "del", de.Text)
	assert.Equal(t, "del", el.Text)
	assert.Equal(t, 5, de.Idx)
	assert.Equal(t, 5, el.Idx)
	assert.Equal(t, "el", el.Lemma)
	assert.Equal(t, 2, el.Index)
	assert.Equal(t, 3, el.Head)

	assert.Equal(t, 9, doc.Tokens[0][3].Idx)
	assert.Equal(t, 14, doc.Tokens[0][4].Idx)
	assert.Equal(t, "Vino del norte.", render.Text(doc.Tokens[0]))

	_, err = sent.NewTree(doc)
	assert.NoError(t, err)
}

func TestParseRowRange(t *testing.T) {
	row, ok, err := conllu.ParseRow(strings.Split("2-3\tdidn't\t_\t_\t_\t_\t_\t_\t_\tSpaceAfter=No", "\t"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, row.IsRange())
	assert.Equal(t, 2, row.ID)
	assert.Equal(t, 3, row.Last)
	assert.False(t, row.SpaceAfter())

	_, ok, err = conllu.ParseRow(strings.Split("3.1\tx\tx\tX\tX\t_\t_\t_\t1:dep\t_", "\t"))
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = conllu.ParseRow(strings.Split("3-2\tx\t_\t_\t_\t_\t_\t_\t_\t_", "\t"))
	assert.Error(t, err)
}

func TestReadSplits(t *testing.T) {
	doc, err := conllu.Read(strings.NewReader(twoSentences))
	require.NoError(t, err)
	tree, err := sent.NewTree(doc)
	require.NoError(t, err)

	clauses, err := split.New().SplitAll(tree)
	require.NoError(t, err)
	require.Len(t, clauses, 3)
	assert.Equal(t, "sleep", clauses[0].Root.Text)
	assert.Equal(t, "reads", clauses[1].Root.Text)
	assert.Equal(t, "n't", clauses[2].Root.Text)
}

func TestReadSyntaxError(t *testing.T) {
	_, err := conllu.Read(strings.NewReader("# c\n1\tI\tI\tPRON\n"))
	require.ErrorIs(t, err, conllu.ErrSyntax)
	assert.Contains(t, err.Error(), "line 2")

	_, err = conllu.Read(strings.NewReader("x\tI\tI\tPRON\t_\t_\t0\troot\t_\t_\n"))
	assert.ErrorIs(t, err, conllu.ErrSyntax)
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain"+conllu.Ext)
	body := strings.Replace(twoSentences, "# newdoc id = reviews-1\n", "", 1)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	doc, err := conllu.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "plain.conllu", doc.Title)

	_, err = conllu.ReadFile(filepath.Join(t.TempDir(), "missing.conllu"))
	assert.Error(t, err)
}
