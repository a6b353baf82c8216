package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sent "github.com/revelaction/subsent/sentence"
	"github.com/revelaction/subsent/storage"
)

// DocStore reads the JSON and CoNLL-U docs of a directory. Ids follow the
// file name order. Docs are read on first access and kept in memory.
type DocStore struct {
	docDir string

	// In-memory cache
	docs   []sent.Doc
	files  []string
	loaded []bool
}

var _ storage.DocRepository = (*DocStore)(nil)
var _ storage.Preloader = (*DocStore)(nil)

// NewDocStore creates a filesystem document handler.
func NewDocStore(docDir string) (*DocStore, error) {
	files, err := os.ReadDir(docDir)
	if err != nil {
		return nil, err
	}

	h := &DocStore{docDir: docDir}
	for _, file := range files {
		if file.IsDir() || !IsDocFile(file.Name()) {
			continue
		}

		h.docs = append(h.docs, sent.Doc{
			Id:    len(h.docs),
			Title: file.Name(),
		})
		h.files = append(h.files, file.Name())
	}
	h.loaded = make([]bool, len(h.docs))

	return h, nil
}

func (h *DocStore) load(id int) error {
	if h.loaded[id] {
		return nil
	}

	fullDoc, err := ReadFile(filepath.Join(h.docDir, h.files[id]))
	if err != nil {
		return fmt.Errorf("doc %q: %w", h.files[id], err)
	}

	// Copy loaded content into existing metadata struct
	doc := &h.docs[id]
	doc.Tokens = fullDoc.Tokens
	doc.Labels = fullDoc.Labels
	h.loaded[id] = true
	return nil
}

// Preload reads all docs into memory.
func (h *DocStore) Preload(labelMatch string, cb func(current, total int, name string)) error {
	total := len(h.docs)
	for i := range h.docs {
		if cb != nil {
			cb(i+1, total, h.files[i])
		}

		if err := h.load(i); err != nil {
			return err
		}
	}

	return nil
}

// List returns the doc metadata. Filtering by label needs to read the docs.
func (h *DocStore) List(labelMatch string) ([]sent.Doc, error) {
	docs := make([]sent.Doc, 0, len(h.docs))
	for i, doc := range h.docs {
		if labelMatch != "" {
			if err := h.load(i); err != nil {
				return nil, err
			}
			doc = h.docs[i]
			if !hasLabel(doc.Labels, labelMatch) {
				continue
			}
		}

		docs = append(docs, sent.Doc{Id: doc.Id, Title: doc.Title, Labels: doc.Labels})
	}
	return docs, nil
}

func (h *DocStore) Read(id int) (sent.Doc, error) {
	if id < 0 || id >= len(h.docs) {
		return sent.Doc{}, fmt.Errorf("doc %d: %w", id, storage.ErrNotFound)
	}

	if err := h.load(id); err != nil {
		return sent.Doc{}, err
	}
	return h.docs[id], nil
}

func (h *DocStore) Write(doc sent.Doc) (int, error) {
	return 0, storage.ErrReadOnly
}

func hasLabel(labels []string, match string) bool {
	for _, l := range labels {
		if strings.Contains(l, match) {
			return true
		}
	}
	return false
}
