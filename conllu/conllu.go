// Package conllu reads CoNLL-U files into docs.
//
// For a description of the format see
// https://universaldependencies.org/format.html
//
// Empty nodes (1.1) are skipped. The character offsets of the tokens are
// rebuilt from the surface forms, honoring SpaceAfter=No in the MISC column.
// A multiword token (2-3) is one surface word: its MISC column decides the
// space after it.
package conllu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	sent "github.com/revelaction/subsent/sentence"
)

const (
	FieldSeparator    = "\t"
	NumFields         = 10
	MiscSeparator     = "|"
	noSpaceAfter      = "SpaceAfter=No"
	newDocComment     = "# newdoc id ="
	emptyField        = "_"
	conlluRootDepRel  = "root"
	conlluRootHeadIdx = 0
)

// Ext is the file extension of CoNLL-U files.
const Ext = ".conllu"

var ErrSyntax = errors.New("conllu syntax error")

// A Row is a single parsed word or multiword token line.
type Row struct {
	ID     int
	// Last is the last word ID of a multiword token, 0 for words.
	Last   int
	Form   string
	Lemma  string
	UPos   string
	XPos   string
	Feats  string
	Head   int
	DepRel string
	Misc   string
}

// SpaceAfter reports whether the word is followed by a space.
func (r Row) SpaceAfter() bool {
	for _, m := range strings.Split(r.Misc, MiscSeparator) {
		if m == noSpaceAfter {
			return false
		}
	}
	return true
}

// IsRange reports whether the row is a multiword token.
func (r Row) IsRange() bool {
	return r.Last > 0
}

func parseString(value string) string {
	if value == emptyField {
		return ""
	}
	return value
}

// ParseRow parses the fields of a word or multiword token line. It returns
// ok false for empty node lines.
func ParseRow(fields []string) (row Row, ok bool, err error) {
	if len(fields) != NumFields {
		return row, false, fmt.Errorf("expected %d fields, got %d", NumFields, len(fields))
	}

	if strings.Contains(fields[0], ".") {
		return row, false, nil
	}

	if first, last, found := strings.Cut(fields[0], "-"); found {
		return parseRange(first, last, fields)
	}

	row.ID, err = strconv.Atoi(fields[0])
	if err != nil {
		return row, false, fmt.Errorf("error parsing ID field (%s): %w", fields[0], err)
	}

	row.Head, err = strconv.Atoi(fields[6])
	if err != nil {
		return row, false, fmt.Errorf("error parsing HEAD field (%s): %w", fields[6], err)
	}

	row.Form = fields[1]
	row.Lemma = parseString(fields[2])
	row.UPos = parseString(fields[3])
	row.XPos = parseString(fields[4])
	row.Feats = parseString(fields[5])
	row.DepRel = parseString(fields[7])
	row.Misc = parseString(fields[9])
	return row, true, nil
}

func parseRange(first, last string, fields []string) (row Row, ok bool, err error) {
	row.ID, err = strconv.Atoi(first)
	if err != nil {
		return row, false, fmt.Errorf("error parsing ID field (%s): %w", fields[0], err)
	}
	row.Last, err = strconv.Atoi(last)
	if err != nil {
		return row, false, fmt.Errorf("error parsing ID field (%s): %w", fields[0], err)
	}
	if row.Last < row.ID {
		return row, false, fmt.Errorf("empty multiword range %s", fields[0])
	}

	row.Form = fields[1]
	row.Misc = parseString(fields[9])
	return row, true, nil
}

// Read reads all sentences of r into a doc.
func Read(r io.Reader) (sent.Doc, error) {
	var (
		doc    sent.Doc
		rows   []Row
		lineNo int
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	b := builder{}
	flush := func() {
		if len(rows) > 0 {
			doc.Tokens = append(doc.Tokens, b.sentence(rows, len(doc.Tokens)))
			rows = nil
		}
	}

	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")

		switch {
		case strings.TrimSpace(line) == "":
			flush()
			continue
		case strings.HasPrefix(line, newDocComment):
			doc.Title = strings.TrimSpace(strings.TrimPrefix(line, newDocComment))
			continue
		case strings.HasPrefix(line, "#"):
			continue
		}

		row, ok, err := ParseRow(strings.Split(line, FieldSeparator))
		if err != nil {
			return sent.Doc{}, fmt.Errorf("%w: line %d: %w", ErrSyntax, lineNo, err)
		}
		if ok {
			rows = append(rows, row)
		}
	}

	if err := scanner.Err(); err != nil {
		return sent.Doc{}, fmt.Errorf("IO error: %w", err)
	}

	flush()
	return doc, nil
}

// ReadFile reads a CoNLL-U file. The doc title defaults to the file name.
func ReadFile(path string) (sent.Doc, error) {
	f, err := os.Open(path)
	if err != nil {
		return sent.Doc{}, fmt.Errorf("IO error: %w", err)
	}
	defer f.Close()

	doc, err := Read(f)
	if err != nil {
		return sent.Doc{}, err
	}

	if doc.Title == "" {
		doc.Title = filepath.Base(path)
	}
	return doc, nil
}

// builder numbers tokens and keeps the character offset across sentences.
type builder struct {
	id     int
	offset int
}

func (b *builder) sentence(rows []Row, sid int) []sent.Token {
	tokens := make([]sent.Token, 0, len(rows))
	for i := 0; i < len(rows); i++ {
		row := rows[i]
		if !row.IsRange() {
			tokens = append(tokens, b.token(row, sid, b.offset, row.Form))
			b.advance(row)
			continue
		}

		var parts []Row
		for i+1 < len(rows) && !rows[i+1].IsRange() && rows[i+1].ID <= row.Last {
			i++
			parts = append(parts, rows[i])
		}
		tokens = append(tokens, b.multiword(row, parts, sid)...)
		b.advance(row)
	}
	return tokens
}

// multiword returns the parts of the multiword token mw. When the part forms
// spell the surface form (did + n't) each part gets its own offset, else
// (de + el = del) all parts share the surface form and its offset.
func (b *builder) multiword(mw Row, parts []Row, sid int) []sent.Token {
	var spelled strings.Builder
	for _, p := range parts {
		spelled.WriteString(p.Form)
	}
	own := spelled.String() == mw.Form

	tokens := make([]sent.Token, 0, len(parts))
	offset := b.offset
	for _, p := range parts {
		if !own {
			tokens = append(tokens, b.token(p, sid, b.offset, mw.Form))
			continue
		}
		tokens = append(tokens, b.token(p, sid, offset, p.Form))
		offset += len([]rune(p.Form))
	}
	return tokens
}

func (b *builder) token(row Row, sid, idx int, text string) sent.Token {
	index := row.ID - 1
	head := row.Head - 1
	dep := row.DepRel
	if row.Head == conlluRootHeadIdx {
		head = index
		if dep == conlluRootDepRel {
			dep = sent.RootDep
		}
	}

	tag := row.Feats
	if tag == "" {
		tag = row.XPos
	}

	t := sent.Token{
		Id:         b.id,
		Head:       head,
		SentenceId: sid,
		Pos:        row.UPos,
		Dep:        dep,
		Tag:        tag,
		Idx:        idx,
		Text:       text,
		Lemma:      row.Lemma,
		Index:      index,
	}
	b.id++
	return t
}

// advance moves the offset past the surface word of row.
func (b *builder) advance(row Row) {
	b.offset += len([]rune(row.Form))
	if row.SpaceAfter() {
		b.offset++
	}
}
