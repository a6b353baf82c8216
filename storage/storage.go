package storage

import (
	"errors"

	sent "github.com/revelaction/subsent/sentence"
	"github.com/revelaction/subsent/split"
)

// ErrNotFound is returned when a document does not exist
var ErrNotFound = errors.New("not found")

// ErrReadOnly is returned by stores that cannot be written
var ErrReadOnly = errors.New("read-only storage")

// DocReader defines read operations for document storage
type DocReader interface {
	// List returns the metadata (Id, Title, Labels) of documents.
	// If labelMatch is not empty, only documents with at least one label containing the string are returned.
	// Content (Tokens) is not loaded.
	List(labelMatch string) ([]sent.Doc, error)

	// Read returns a document by ID
	Read(id int) (sent.Doc, error)
}

// DocWriter defines write operations for document storage
type DocWriter interface {
	// Write persists a document and its sentences, returning its new ID
	Write(doc sent.Doc) (int, error)
}

// DocRepository combines read and write operations
type DocRepository interface {
	DocReader
	DocWriter
}

// ClauseReader reads the clauses a document was split into
type ClauseReader interface {
	// Clauses returns the stored clauses of a document and the mode they
	// were split in, ErrNotFound if it was never split.
	Clauses(docId int) (split.Mode, []split.Clause, error)
}

// ClauseWriter persists the clauses of a document
type ClauseWriter interface {
	// WriteClauses replaces the clauses of the document
	WriteClauses(docId int, mode split.Mode, clauses []split.Clause) error
}

// ClauseRepository combines read and write operations
type ClauseRepository interface {
	ClauseReader
	ClauseWriter
}

// ReadClauses returns the document docId and its clauses. Clauses stored by
// a ClauseReader repository are used when they were split in the mode of s,
// otherwise the document is split with s.
func ReadClauses(r DocReader, s *split.Splitter, docId int) (sent.Doc, []split.Clause, error) {
	doc, err := r.Read(docId)
	if err != nil {
		return sent.Doc{}, nil, err
	}

	if cr, ok := r.(ClauseReader); ok {
		mode, clauses, err := cr.Clauses(docId)
		switch {
		case err == nil && mode == s.Mode():
			return doc, clauses, nil
		case err != nil && !errors.Is(err, ErrNotFound):
			return sent.Doc{}, nil, err
		}
	}

	tree, err := sent.NewTree(doc)
	if err != nil {
		return sent.Doc{}, nil, err
	}
	clauses, err := s.SplitAll(tree)
	if err != nil {
		return sent.Doc{}, nil, err
	}
	return doc, clauses, nil
}

// Preloader defines an optional capability for repositories that require
// or support eager loading of data into memory.
type Preloader interface {
	Preload(labelMatch string, cb func(current, total int, name string)) error
}
