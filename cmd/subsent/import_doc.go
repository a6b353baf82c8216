package main

import (
	"errors"
	"fmt"

	"github.com/gosuri/uiprogress"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	sent "github.com/revelaction/subsent/sentence"
	"github.com/revelaction/subsent/storage/filesystem"
	"github.com/revelaction/subsent/storage/sqlite/zombiezen"
)

type ImportDocOptions struct {
	From string
	To   string
}

func importDocCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "import-doc",
		Usage: "copy the docs of a directory into a SQLite file, with their clauses",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "from", Usage: "Docs directory"},
			&cli.StringFlag{Name: "to", Usage: "SQLite file, created if missing"},
		},
		Action: func(c *cli.Context) error {
			opts := ImportDocOptions{From: c.String("from"), To: c.String("to")}
			if opts.From == "" || opts.To == "" {
				return errors.New("import-doc needs --from and --to")
			}
			return importDocCommand(e, opts)
		},
	}
}

func importDocCommand(e *env, opts ImportDocOptions) error {
	src, err := filesystem.NewDocStore(opts.From)
	if err != nil {
		return err
	}

	pool, err := e.pool.Open(opts.To)
	if err != nil {
		return err
	}
	dst := zombiezen.NewDocStore(pool)

	fmt.Fprintf(e.ui.Out, "Reading docs from %s...\n", opts.From)
	docs, err := src.List("")
	if err != nil {
		return err
	}

	uiprogress.Start()
	bar := uiprogress.AddBar(len(docs))
	bar.AppendCompleted()
	bar.PrependElapsed()

	count, numClauses := 0, 0
	for _, docMeta := range docs {
		doc, err := src.Read(docMeta.Id)
		if err != nil {
			uiprogress.Stop()
			return fmt.Errorf("failed to read doc %s: %w", docMeta.Title, err)
		}

		tree, err := sent.NewTree(doc)
		if err != nil {
			uiprogress.Stop()
			return fmt.Errorf("doc %s: %w", docMeta.Title, err)
		}
		clauses, err := e.splitter.SplitAll(tree)
		if err != nil {
			uiprogress.Stop()
			return fmt.Errorf("failed to split doc %s: %w", docMeta.Title, err)
		}

		id, err := dst.WriteWithClauses(doc, e.splitter.Mode(), clauses)
		if err != nil {
			uiprogress.Stop()
			return fmt.Errorf("failed to write doc %s: %w", docMeta.Title, err)
		}

		e.logger.Debug("doc imported", zap.String("title", doc.Title), zap.Int("id", id), zap.Int("clauses", len(clauses)))
		count++
		numClauses += len(clauses)
		bar.Incr()
	}
	uiprogress.Stop()

	fmt.Fprintf(e.ui.Out, "Successfully imported %d docs (%d clauses) from %s to %s\n", count, numClauses, opts.From, opts.To)
	return nil
}
