package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revelaction/subsent/render"
	sent "github.com/revelaction/subsent/sentence"
	"github.com/revelaction/subsent/sentence/sentencetest"
	"github.com/revelaction/subsent/split"
	"github.com/revelaction/subsent/storage"
	"github.com/revelaction/subsent/storage/sqlite/zombiezen"
)

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := run(append([]string{"subsent"}, args...), UI{Out: &out, Err: &errOut})
	return out.String(), errOut.String(), err
}

func writeDoc(t *testing.T, path string, doc sent.Doc) string {
	t.Helper()
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func docDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeDoc(t, filepath.Join(dir, "a.json"), sentencetest.TwoSentences())
	nested := sentencetest.Nested()
	nested.Labels = []string{"news"}
	writeDoc(t, filepath.Join(dir, "b.json"), nested)
	return dir
}

func TestSplitFile(t *testing.T) {
	t.Setenv(envConfig, "")
	file := writeDoc(t, filepath.Join(t.TempDir(), "two.json"), sentencetest.TwoSentences())

	out, _, err := runCLI(t, "split", "--no-color", "--no-prefix", file)
	require.NoError(t, err)
	assert.Equal(t, "I sleep and .\nshe reads\nHe left.\n", out)

	out, _, err = runCLI(t, "split", "--no-color", "--no-prefix", "--sent", "1", file)
	require.NoError(t, err)
	assert.Equal(t, "He left.\n", out)
}

func TestSplitJSON(t *testing.T) {
	t.Setenv(envConfig, "")
	file := writeDoc(t, filepath.Join(t.TempDir(), "two.json"), sentencetest.TwoSentences())

	out, _, err := runCLI(t, "split", "--format", "json", file)
	require.NoError(t, err)

	var views []render.ClauseView
	require.NoError(t, json.Unmarshal([]byte(out), &views))
	require.Len(t, views, 3)
	assert.Equal(t, "she reads", views[1].Text)
	assert.Equal(t, 1, views[2].SentenceId)
}

func TestSplitDocId(t *testing.T) {
	t.Setenv(envConfig, "")
	dir := docDir(t)

	out, _, err := runCLI(t, "split", "-d", dir, "--no-color", "--no-prefix", "1")
	require.NoError(t, err)
	assert.Equal(t, "I think .\nthat you said\nthat he left\n", out)

	t.Setenv(envDocPath, dir)
	out, _, err = runCLI(t, "split", "--no-color", "--no-prefix", "1")
	require.NoError(t, err)
	assert.Equal(t, "I think .\nthat you said\nthat he left\n", out)
}

func TestSplitErrors(t *testing.T) {
	t.Setenv(envConfig, "")
	t.Setenv(envDocPath, "")

	_, _, err := runCLI(t, "split")
	assert.Error(t, err)

	_, _, err = runCLI(t, "split", "3")
	assert.ErrorIs(t, err, errNoDocPath)

	_, _, err = runCLI(t, "split", "nothing")
	assert.Error(t, err)

	_, _, err = runCLI(t, "split", "--format", "xml", "0")
	assert.ErrorContains(t, err, "unknown format")

	doc := sentencetest.TwoSentences()
	doc.Tokens[1][0].Head = 2
	doc.Tokens[1][2].Head = 0
	file := writeDoc(t, filepath.Join(t.TempDir(), "broken.json"), doc)
	_, _, err = runCLI(t, "split", file)
	assert.ErrorIs(t, err, sent.ErrInvalidTree)
}

func TestConfig(t *testing.T) {
	dir := t.TempDir()
	file := writeDoc(t, filepath.Join(dir, "two.json"), sentencetest.TwoSentences())

	legacy := filepath.Join(dir, "legacy.yaml")
	require.NoError(t, os.WriteFile(legacy, []byte("resolver: innermost-first\nmode: document-per-sentence\n"), 0o644))

	out, _, err := runCLI(t, "-c", legacy, "split", "--no-color", "--no-prefix", file)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSuffix(out, "\n"), "\n"), 6)

	bogus := filepath.Join(dir, "bogus.yaml")
	require.NoError(t, os.WriteFile(bogus, []byte("mode: bogus\n"), 0o644))
	_, _, err = runCLI(t, "--config", bogus, "split", file)
	assert.Error(t, err)
}

func TestVerbose(t *testing.T) {
	t.Setenv(envConfig, "")
	file := writeDoc(t, filepath.Join(t.TempDir(), "two.json"), sentencetest.TwoSentences())

	_, errOut, err := runCLI(t, "split", file)
	require.NoError(t, err)
	assert.Empty(t, errOut)

	_, errOut, err = runCLI(t, "-v", "split", file)
	require.NoError(t, err)
	assert.Contains(t, errOut, "split sentence")
	assert.Contains(t, errOut, "doc split")
}

func TestSentence(t *testing.T) {
	t.Setenv(envConfig, "")
	file := writeDoc(t, filepath.Join(t.TempDir(), "two.json"), sentencetest.TwoSentences())

	out, _, err := runCLI(t, "sentence", "--no-color", file, "1")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "📖 0-1 He left.", lines[0])
	assert.True(t, strings.HasSuffix(lines[1], "He left."))

	_, _, err = runCLI(t, "sentence", file, "2")
	assert.ErrorContains(t, err, "out of bounds")

	_, _, err = runCLI(t, "sentence", file, "one")
	assert.Error(t, err)
}

func TestStat(t *testing.T) {
	t.Setenv(envConfig, "")
	file := writeDoc(t, filepath.Join(t.TempDir(), "two.json"), sentencetest.TwoSentences())

	out, _, err := runCLI(t, "stat", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Num sentences 2, num tokens 9, num clauses 3\n")
	assert.Contains(t, out, "Unassigned tokens 0, overlapping tokens 0, empty clauses 0\n")
}

func TestDoc(t *testing.T) {
	t.Setenv(envConfig, "")
	dir := docDir(t)

	// labels are only read when filtering
	out, _, err := runCLI(t, "doc", "-d", dir)
	require.NoError(t, err)
	assert.Equal(t, "   0 📖 a.json\n   1 📖 b.json\n", out)

	out, _, err = runCLI(t, "doc", "-d", dir, "--label", "new")
	require.NoError(t, err)
	assert.Equal(t, "   1 📖 b.json [news]\n", out)

	_, _, err = runCLI(t, "doc", "-d", filepath.Join(dir, "missing"))
	assert.ErrorContains(t, err, "repository not found")
}

func TestImportDoc(t *testing.T) {
	t.Setenv(envConfig, "")
	dir := docDir(t)
	db := filepath.Join(t.TempDir(), "docs.db")

	out, _, err := runCLI(t, "import-doc", "--from", dir, "--to", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Successfully imported 2 docs (6 clauses)")

	out, _, err = runCLI(t, "doc", "-d", db)
	require.NoError(t, err)
	assert.Equal(t, "   1 📖 a.json\n   2 📖 b.json [news]\n", out)

	out, _, err = runCLI(t, "split", "-d", db, "--no-color", "--no-prefix", "2")
	require.NoError(t, err)
	assert.Equal(t, "I think .\nthat you said\nthat he left\n", out)

	_, _, err = runCLI(t, "import-doc", "--from", dir)
	assert.Error(t, err)

	pool, err := zombiezen.NewPool(db)
	require.NoError(t, err)
	defer pool.Close()
	mode, clauses, err := zombiezen.NewDocStore(pool).Clauses(2)
	require.NoError(t, err)
	assert.Equal(t, split.ModeSentence, mode)
	assert.Len(t, clauses, 3)
}

func TestImportDocOtherMode(t *testing.T) {
	dir := docDir(t)
	db := filepath.Join(t.TempDir(), "docs.db")
	_, _, err := runCLI(t, "import-doc", "--from", dir, "--to", db)
	require.NoError(t, err)

	// clauses stored in sentence mode are not reused in another mode
	legacy := filepath.Join(t.TempDir(), "legacy.yaml")
	require.NoError(t, os.WriteFile(legacy, []byte("mode: document-per-sentence\n"), 0o644))
	out, _, err := runCLI(t, "-c", legacy, "split", "-d", db, "--no-color", "--no-prefix", "1")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSuffix(out, "\n"), "\n"), 6)

	_, _, err = runCLI(t, "-c", legacy, "split", "--save", "-d", db, "1")
	require.NoError(t, err)

	pool, err := zombiezen.NewPool(db)
	require.NoError(t, err)
	defer pool.Close()
	mode, clauses, err := zombiezen.NewDocStore(pool).Clauses(1)
	require.NoError(t, err)
	assert.Equal(t, split.ModeDocumentPerSentence, mode)
	assert.Len(t, clauses, 6)
}

func TestSplitSaveErrors(t *testing.T) {
	t.Setenv(envConfig, "")
	dir := docDir(t)

	_, _, err := runCLI(t, "split", "--save", "-d", dir, "0")
	assert.ErrorIs(t, err, storage.ErrReadOnly)

	_, _, err = runCLI(t, "split", "--save", filepath.Join(dir, "a.json"))
	assert.ErrorContains(t, err, "--save")
}

func TestVersion(t *testing.T) {
	out, _, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "subsent version dev (commit: none)\n", out)
}
