package main

import (
	"errors"
	"fmt"
	"slices"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/revelaction/subsent/render"
	sent "github.com/revelaction/subsent/sentence"
)

type SplitOptions struct {
	DocPath  string
	Format   string
	NoColor  bool
	NoPrefix bool
	Save     bool
	Sent     *int // nil = not set
}

func splitCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:      "split",
		Usage:     "print the clauses of a doc",
		ArgsUsage: "<doc-id|file.json|file.conllu>",
		Flags: []cli.Flag{
			docPathFlag(),
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   render.FormatText,
				Usage:   "Output format: text, lemma or json",
			},
			&cli.BoolFlag{Name: "no-color", Usage: "Do not highlight clause roots"},
			&cli.BoolFlag{Name: "no-prefix", Usage: "Do not prefix clauses with doc and sentence"},
			&cli.BoolFlag{Name: "save", Usage: "Store the clauses in the SQLite repository"},
			&cli.IntFlag{Name: "sent", Aliases: []string{"s"}, Value: -1, Usage: "Only split this sentence"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return errors.New("split needs exactly one doc id or file")
			}

			opts := SplitOptions{
				DocPath:  c.String("doc-path"),
				Format:   c.String("format"),
				NoColor:  c.Bool("no-color"),
				NoPrefix: c.Bool("no-prefix"),
				Save:     c.Bool("save"),
			}
			if c.IsSet("sent") {
				s := c.Int("sent")
				opts.Sent = &s
			}
			return splitCommand(e, opts, c.Args().First())
		},
	}
}

func splitCommand(e *env, opts SplitOptions, arg string) error {
	if opts.Format != render.FormatJSON && !slices.Contains(render.SupportedFormats(), opts.Format) {
		return fmt.Errorf("unknown format %q", opts.Format)
	}

	if opts.Save && (opts.Sent != nil || isFile(arg)) {
		return errors.New("--save needs a whole doc of the repository")
	}

	var r render.Renderer
	if opts.Format == render.FormatJSON {
		r = render.NewJSONRenderer(e.ui.Out)
	} else {
		tr := render.NewTextRenderer(e.ui.Out)
		tr.HasColor = !opts.NoColor
		tr.HasPrefix = !opts.NoPrefix
		tr.Format = opts.Format
		r = tr
	}

	if opts.Sent != nil {
		doc, err := e.loadDoc(opts.DocPath, arg)
		if err != nil {
			return err
		}
		tree, err := sent.NewTree(doc)
		if err != nil {
			return err
		}
		clauses, err := e.splitter.SplitSentence(tree, *opts.Sent)
		if err != nil {
			return err
		}
		return r.Render(doc, clauses)
	}

	doc, clauses, err := e.docClauses(opts.DocPath, arg)
	if err != nil {
		return err
	}

	if opts.Save {
		if err := e.saveClauses(opts.DocPath, doc.Id, clauses); err != nil {
			return err
		}
	}

	e.logger.Debug("doc split",
		zap.String("title", doc.Title),
		zap.Int("sentences", len(doc.Tokens)),
		zap.Int("clauses", len(clauses)),
	)
	return r.Render(doc, clauses)
}
