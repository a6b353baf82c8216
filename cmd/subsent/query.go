package main

import (
	"github.com/urfave/cli/v2"

	"github.com/revelaction/subsent/query"
	"github.com/revelaction/subsent/render"
)

type QueryOptions struct {
	NoColor  bool
	NoPrefix bool
	Format   string
	DocPath  string
}

func queryCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "query",
		Usage: "explore the clauses of a repository interactively",
		Flags: []cli.Flag{
			docPathFlag(),
			&cli.BoolFlag{Name: "no-color", Usage: "Do not highlight clause roots"},
			&cli.BoolFlag{Name: "no-prefix", Usage: "Do not prefix clauses with doc and sentence"},
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: render.FormatText, Usage: "Output format: text or lemma"},
		},
		Action: func(c *cli.Context) error {
			return queryCommand(e, QueryOptions{
				NoColor:  c.Bool("no-color"),
				NoPrefix: c.Bool("no-prefix"),
				Format:   c.String("format"),
				DocPath:  c.String("doc-path"),
			})
		},
	}
}

func queryCommand(e *env, opts QueryOptions) error {
	repo, err := NewDocRepository(&e.pool, opts.DocPath)
	if err != nil {
		return err
	}

	if err := preload(repo); err != nil {
		return err
	}

	r := render.NewTextRenderer(e.ui.Out)
	r.HasColor = !opts.NoColor
	r.HasPrefix = !opts.NoPrefix
	r.Format = opts.Format

	// now present the REPL
	h := query.NewHandler(repo, e.splitter, r, e.ui.Out)
	return h.Run()
}
