package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/gosuri/uiprogress"
	"zombiezen.com/go/sqlite/sqlitex"

	sent "github.com/revelaction/subsent/sentence"
	"github.com/revelaction/subsent/split"
	"github.com/revelaction/subsent/storage"
	"github.com/revelaction/subsent/storage/filesystem"
	"github.com/revelaction/subsent/storage/sqlite/zombiezen"
)

var errNoDocPath = errors.New("Doc path must be specified via -d or " + envDocPath)

// Pool opens the SQLite pool once per run.
type Pool struct {
	p *sqlitex.Pool
}

func (p *Pool) Open(path string) (*sqlitex.Pool, error) {
	if p.p != nil {
		return p.p, nil
	}
	pool, err := zombiezen.NewPool(path)
	if err != nil {
		return nil, err
	}
	if err := zombiezen.CreateSchemas(pool, zombiezen.DocsSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create docs tables: %w", err)
	}
	p.p = pool
	return p.p, nil
}

func (p *Pool) Close() error {
	if p.p != nil {
		err := p.p.Close()
		p.p = nil
		return err
	}
	return nil
}

// NewDocRepository returns the filesystem store for a directory and the
// SQLite store for a file.
func NewDocRepository(p *Pool, path string) (storage.DocRepository, error) {
	if path == "" {
		return nil, errNoDocPath
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("repository not found: %s", path)
	}

	if info.IsDir() {
		return filesystem.NewDocStore(path)
	}

	pool, err := p.Open(path)
	if err != nil {
		return nil, err
	}
	return zombiezen.NewDocStore(pool), nil
}

// loadDoc reads arg as a doc file if it names one, else as a doc id of the
// repository at docPath.
func (e *env) loadDoc(docPath, arg string) (sent.Doc, error) {
	if isFile(arg) {
		return filesystem.ReadFile(arg)
	}

	docId, err := parseDocId(arg)
	if err != nil {
		return sent.Doc{}, err
	}

	repo, err := NewDocRepository(&e.pool, docPath)
	if err != nil {
		return sent.Doc{}, err
	}
	return repo.Read(docId)
}

// docClauses returns the doc named by arg and its clauses. Clauses stored
// in the repository are used when they were split in the configured mode.
func (e *env) docClauses(docPath, arg string) (sent.Doc, []split.Clause, error) {
	if isFile(arg) {
		doc, err := filesystem.ReadFile(arg)
		if err != nil {
			return sent.Doc{}, nil, err
		}
		tree, err := sent.NewTree(doc)
		if err != nil {
			return sent.Doc{}, nil, err
		}
		clauses, err := e.splitter.SplitAll(tree)
		if err != nil {
			return sent.Doc{}, nil, err
		}
		return doc, clauses, nil
	}

	docId, err := parseDocId(arg)
	if err != nil {
		return sent.Doc{}, nil, err
	}

	repo, err := NewDocRepository(&e.pool, docPath)
	if err != nil {
		return sent.Doc{}, nil, err
	}
	return storage.ReadClauses(repo, e.splitter, docId)
}

// saveClauses stores the clauses of docId, split in the configured mode.
func (e *env) saveClauses(docPath string, docId int, clauses []split.Clause) error {
	repo, err := NewDocRepository(&e.pool, docPath)
	if err != nil {
		return err
	}

	cw, ok := repo.(storage.ClauseWriter)
	if !ok {
		return fmt.Errorf("repository %s: %w", docPath, storage.ErrReadOnly)
	}
	return cw.WriteClauses(docId, e.splitter.Mode(), clauses)
}

func isFile(arg string) bool {
	if !filesystem.IsDocFile(arg) {
		return false
	}
	_, err := os.Stat(arg)
	return err == nil
}

func parseDocId(arg string) (int, error) {
	docId, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("%q is neither a doc file nor a doc id", arg)
	}
	return docId, nil
}

// preload loads every doc of stores that read lazily, showing a progress bar.
func preload(repo storage.DocReader) error {
	p, ok := repo.(storage.Preloader)
	if !ok {
		return nil
	}

	var bar *uiprogress.Bar
	uiprogress.Start()
	defer uiprogress.Stop()

	return p.Preload("", func(current, total int, name string) {
		if bar == nil {
			bar = uiprogress.AddBar(total)
			bar.AppendCompleted()
			bar.PrependElapsed()
		}
		bar.Incr()
	})
}
