package zombiezen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	sent "github.com/revelaction/subsent/sentence"
	"github.com/revelaction/subsent/split"
	"github.com/revelaction/subsent/storage"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// DocStore keeps docs, one row per sentence, and the clauses they were
// split into.
type DocStore struct {
	pool *sqlitex.Pool
}

var _ storage.DocRepository = (*DocStore)(nil)
var _ storage.ClauseRepository = (*DocStore)(nil)

func NewDocStore(pool *sqlitex.Pool) *DocStore {
	return &DocStore{pool: pool}
}

func (h *DocStore) List(labelMatch string) ([]sent.Doc, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	var docs []sent.Doc
	err = sqlitex.Execute(conn, "SELECT id, title, labels FROM docs WHERE labels LIKE ? ORDER BY id", &sqlitex.ExecOptions{
		Args: []interface{}{"%" + labelMatch + "%"},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			doc := sent.Doc{
				Id:    stmt.ColumnInt(0),
				Title: stmt.ColumnText(1),
			}
			labelsStr := stmt.ColumnText(2)
			if labelsStr != "" {
				doc.Labels = strings.Split(labelsStr, ",")
			}
			docs = append(docs, doc)
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (h *DocStore) Read(id int) (sent.Doc, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return sent.Doc{}, err
	}
	defer h.pool.Put(conn)

	doc := sent.Doc{Id: id}
	found := false
	err = sqlitex.Execute(conn, "SELECT title, labels FROM docs WHERE id = ?", &sqlitex.ExecOptions{
		Args: []interface{}{id},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			found = true
			doc.Title = stmt.ColumnText(0)
			if labelsStr := stmt.ColumnText(1); labelsStr != "" {
				doc.Labels = strings.Split(labelsStr, ",")
			}
			return nil
		},
	})
	if err != nil {
		return sent.Doc{}, err
	}
	if !found {
		return sent.Doc{}, fmt.Errorf("doc %d: %w", id, storage.ErrNotFound)
	}

	err = sqlitex.Execute(conn, "SELECT data FROM sentences WHERE doc_id = ? ORDER BY sent_id", &sqlitex.ExecOptions{
		Args: []interface{}{id},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			var tokens []sent.Token
			if err := json.Unmarshal([]byte(stmt.ColumnText(0)), &tokens); err != nil {
				return err
			}
			doc.Tokens = append(doc.Tokens, tokens)
			return nil
		},
	})
	if err != nil {
		return sent.Doc{}, err
	}

	return doc, nil
}

func (h *DocStore) Write(doc sent.Doc) (id int, err error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return 0, err
	}
	defer h.pool.Put(conn)

	// Start Transaction
	defer sqlitex.Save(conn)(&err)

	return writeDoc(conn, doc)
}

// WriteClauses replaces the clauses of a stored doc.
func (h *DocStore) WriteClauses(docId int, mode split.Mode, clauses []split.Clause) (err error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer h.pool.Put(conn)

	defer sqlitex.Save(conn)(&err)

	exists := false
	err = sqlitex.Execute(conn, "SELECT 1 FROM docs WHERE id = ?", &sqlitex.ExecOptions{
		Args: []interface{}{docId},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			exists = true
			return nil
		},
	})
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("doc %d: %w", docId, storage.ErrNotFound)
	}

	return writeClauses(conn, docId, mode, clauses)
}

// WriteWithClauses stores a new doc together with its clauses. Either both
// are stored or none.
func (h *DocStore) WriteWithClauses(doc sent.Doc, mode split.Mode, clauses []split.Clause) (id int, err error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return 0, err
	}
	defer h.pool.Put(conn)

	defer sqlitex.Save(conn)(&err)

	id, err = writeDoc(conn, doc)
	if err != nil {
		return 0, err
	}
	if err = writeClauses(conn, id, mode, clauses); err != nil {
		return 0, err
	}
	return id, nil
}

func writeDoc(conn *sqlite.Conn, doc sent.Doc) (int, error) {
	labels := strings.Join(doc.Labels, ",")
	err := sqlitex.Execute(conn, "INSERT INTO docs (title, labels) VALUES (?, ?)", &sqlitex.ExecOptions{
		Args: []interface{}{doc.Title, labels},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to insert doc: %w", err)
	}
	docID := conn.LastInsertRowID()

	for sid, sentence := range doc.Tokens {
		data, err := json.Marshal(sentence)
		if err != nil {
			return 0, err
		}

		err = sqlitex.Execute(conn, "INSERT INTO sentences (doc_id, sent_id, data) VALUES (?, ?, ?)", &sqlitex.ExecOptions{
			Args: []interface{}{docID, sid, string(data)},
		})
		if err != nil {
			return 0, fmt.Errorf("failed to insert sentence: %w", err)
		}
	}

	return int(docID), nil
}

func writeClauses(conn *sqlite.Conn, docId int, mode split.Mode, clauses []split.Clause) error {
	err := sqlitex.Execute(conn, "DELETE FROM clauses WHERE doc_id = ?", &sqlitex.ExecOptions{
		Args: []interface{}{docId},
	})
	if err != nil {
		return fmt.Errorf("failed to delete clauses: %w", err)
	}

	for seq, c := range clauses {
		data, err := json.Marshal(c)
		if err != nil {
			return err
		}

		err = sqlitex.Execute(conn, "INSERT INTO clauses (doc_id, seq, sent_id, root_id, data) VALUES (?, ?, ?, ?, ?)", &sqlitex.ExecOptions{
			Args: []interface{}{docId, seq, c.SentenceId, c.Root.Id, string(data)},
		})
		if err != nil {
			return fmt.Errorf("failed to insert clause: %w", err)
		}
	}

	err = sqlitex.Execute(conn, "INSERT OR REPLACE INTO split_docs (doc_id, mode) VALUES (?, ?)", &sqlitex.ExecOptions{
		Args: []interface{}{docId, mode.String()},
	})
	if err != nil {
		return fmt.Errorf("failed to mark doc as split: %w", err)
	}

	return nil
}

// Clauses returns the stored clauses of a doc in the order they were
// written, and the mode they were split in.
func (h *DocStore) Clauses(docId int) (split.Mode, []split.Clause, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return 0, nil, err
	}
	defer h.pool.Put(conn)

	var (
		isSplit  bool
		modeName string
	)
	err = sqlitex.Execute(conn, "SELECT mode FROM split_docs WHERE doc_id = ?", &sqlitex.ExecOptions{
		Args: []interface{}{docId},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			isSplit = true
			modeName = stmt.ColumnText(0)
			return nil
		},
	})
	if err != nil {
		return 0, nil, err
	}
	if !isSplit {
		return 0, nil, fmt.Errorf("clauses of doc %d: %w", docId, storage.ErrNotFound)
	}

	mode, err := split.ParseMode(modeName)
	if err != nil {
		return 0, nil, fmt.Errorf("clauses of doc %d: %w", docId, err)
	}

	clauses := []split.Clause{}
	err = sqlitex.Execute(conn, "SELECT data FROM clauses WHERE doc_id = ? ORDER BY seq", &sqlitex.ExecOptions{
		Args: []interface{}{docId},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			var c split.Clause
			if err := json.Unmarshal([]byte(stmt.ColumnText(0)), &c); err != nil {
				return err
			}
			clauses = append(clauses, c)
			return nil
		},
	})
	if err != nil {
		return 0, nil, err
	}

	return mode, clauses, nil
}
