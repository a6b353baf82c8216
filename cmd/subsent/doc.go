package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"
)

func docCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "doc",
		Usage: "list the docs of a repository",
		Flags: []cli.Flag{
			docPathFlag(),
			&cli.StringFlag{Name: "label", Aliases: []string{"l"}, Usage: "Only docs with a label containing this"},
		},
		Action: func(c *cli.Context) error {
			return docCommand(e, c.String("doc-path"), c.String("label"))
		},
	}
}

func docCommand(e *env, docPath, label string) error {
	repo, err := NewDocRepository(&e.pool, docPath)
	if err != nil {
		return err
	}

	docs, err := repo.List(label)
	if err != nil {
		return err
	}

	for _, doc := range docs {
		fmt.Fprintf(e.ui.Out, "%4d 📖 %s", doc.Id, doc.Title)
		if len(doc.Labels) > 0 {
			fmt.Fprintf(e.ui.Out, " [%s]", strings.Join(doc.Labels, ", "))
		}
		fmt.Fprintln(e.ui.Out)
	}
	return nil
}
