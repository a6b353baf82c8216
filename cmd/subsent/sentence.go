package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/subsent/render"
	sent "github.com/revelaction/subsent/sentence"
)

func sentenceCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:      "sentence",
		Usage:     "print a sentence with its clause roots marked, then its clauses",
		ArgsUsage: "<doc-id|file> <sent-id>",
		Flags: []cli.Flag{
			docPathFlag(),
			&cli.BoolFlag{Name: "no-color", Usage: "Do not highlight clause roots"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return errors.New("sentence needs a doc and a sentence id")
			}
			sentId, err := strconv.Atoi(c.Args().Get(1))
			if err != nil {
				return fmt.Errorf("sentence id %q is not a number", c.Args().Get(1))
			}
			return sentenceCommand(e, c.String("doc-path"), c.Args().First(), sentId, c.Bool("no-color"))
		},
	}
}

func sentenceCommand(e *env, docPath, arg string, sentId int, noColor bool) error {
	doc, err := e.loadDoc(docPath, arg)
	if err != nil {
		return err
	}

	tree, err := sent.NewTree(doc)
	if err != nil {
		return err
	}

	clauses, err := e.splitter.SplitSentence(tree, sentId)
	if err != nil {
		return err
	}

	r := render.NewTextRenderer(e.ui.Out)
	r.HasColor = !noColor

	roots := make([]sent.Token, 0, len(clauses))
	for _, c := range clauses {
		roots = append(roots, c.Root)
	}
	if err := r.Sentence(doc.Tokens[sentId], roots, fmt.Sprintf("📖 %d-%d ", doc.Id, sentId)); err != nil {
		return err
	}
	return r.Render(doc, clauses)
}
