package main

import (
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/revelaction/subsent/server"
	"github.com/revelaction/subsent/storage"
)

func serveCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "serve the split HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "doc-path",
				Aliases: []string{"d"},
				Usage:   "Path to docs directory or SQLite file, the /docs routes answer 404 without it",
				EnvVars: []string{envDocPath},
			},
			&cli.StringFlag{Name: "addr", Value: ":8080", Usage: "Listen address"},
		},
		Action: func(c *cli.Context) error {
			return serveCommand(e, c.String("doc-path"), c.String("addr"))
		},
	}
}

func serveCommand(e *env, docPath, addr string) error {
	var repo storage.DocReader
	if docPath != "" {
		r, err := NewDocRepository(&e.pool, docPath)
		if err != nil {
			return err
		}
		repo = r
	}

	e.logger.Info("listening", zap.String("addr", addr), zap.Bool("repository", repo != nil))
	return server.New(e.splitter, repo, e.logger).Run(addr)
}
