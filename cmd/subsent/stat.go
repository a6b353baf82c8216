package main

import (
	"errors"
	"fmt"
	"sort"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/subsent/stat"
)

func statCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:      "stat",
		Usage:     "print split statistics of a doc",
		ArgsUsage: "<doc-id|file>",
		Flags:     []cli.Flag{docPathFlag()},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return errors.New("stat needs exactly one doc id or file")
			}
			return statCommand(e, c.String("doc-path"), c.Args().First())
		},
	}
}

func statCommand(e *env, docPath, arg string) error {
	doc, clauses, err := e.docClauses(docPath, arg)
	if err != nil {
		return err
	}

	hdl := stat.NewHandler()
	hdl.Aggregate(doc, clauses)
	stats := hdl.Get()

	fmt.Fprintf(e.ui.Out, "Num sentences %d, num tokens %d, num clauses %d\n", stats.NumSentences, stats.NumTokens, stats.NumClauses)
	fmt.Fprintf(e.ui.Out, "Clauses per sentence %.2f, tokens per clause %.2f\n", stats.ClausesPerSentenceMean, stats.TokensPerClauseMean)
	fmt.Fprintf(e.ui.Out, "Unassigned tokens %d, overlapping tokens %d, empty clauses %d\n", stats.Unassigned, stats.Overlapping, stats.EmptyClauses)

	sizes := make([]int, 0, len(stats.TokensPerClauseDis))
	for size := range stats.TokensPerClauseDis {
		sizes = append(sizes, size)
	}
	sort.Ints(sizes)
	for _, size := range sizes {
		fmt.Fprintf(e.ui.Out, "%4d tokens: %d\n", size, stats.TokensPerClauseDis[size])
	}

	return nil
}
