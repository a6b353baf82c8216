package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/revelaction/subsent/config"
	"github.com/revelaction/subsent/split"
)

const (
	envConfig  = "SUBSENT_CONFIG"
	envDocPath = "SUBSENT_DOC_PATH"
)

// UI contains the output streams for the application.
// Used for injecting buffers during testing.
type UI struct {
	Out io.Writer
	Err io.Writer
}

// env holds what the commands share, built once the global flags are parsed.
type env struct {
	ui       UI
	logger   *zap.Logger
	splitter *split.Splitter
	pool     Pool
}

func main() {
	ui := UI{Out: os.Stdout, Err: os.Stderr}

	if err := run(os.Args, ui); err != nil {
		fprintErr(ui.Err, err)
		os.Exit(1)
	}
}

func fprintErr(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "subsent: %v\n", err)
}

func run(args []string, ui UI) error {
	e := &env{ui: ui, logger: zap.NewNop()}
	return newApp(e).Run(args)
}

func newApp(e *env) *cli.App {
	return &cli.App{
		Name:      "subsent",
		Usage:     "split dependency parsed sentences into clauses",
		Writer:    e.ui.Out,
		ErrWriter: e.ui.Err,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML file with root rules, resolver and mode",
				EnvVars: []string{envConfig},
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log to stderr",
			},
		},
		Before: func(c *cli.Context) error {
			return e.setup(c.String("config"), c.Bool("verbose"))
		},
		After: func(c *cli.Context) error {
			return e.close()
		},
		Commands: []*cli.Command{
			splitCmd(e),
			sentenceCmd(e),
			statCmd(e),
			docCmd(e),
			importDocCmd(e),
			queryCmd(e),
			serveCmd(e),
			versionCmd(e),
		},
	}
}

func (e *env) setup(configPath string, verbose bool) error {
	if verbose {
		e.logger = newLogger(e.ui.Err)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	e.splitter, err = cfg.Splitter(e.logger)
	if err != nil {
		return err
	}

	e.logger.Debug("config loaded",
		zap.String("path", configPath),
		zap.String("mode", e.splitter.Mode().String()),
	)
	return nil
}

func (e *env) close() error {
	_ = e.logger.Sync()
	return e.pool.Close()
}

// newLogger returns a development logger writing to w.
func newLogger(w io.Writer) *zap.Logger {
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(w),
		zap.DebugLevel,
	)
	return zap.New(core, zap.Development())
}

func docPathFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "doc-path",
		Aliases: []string{"d"},
		Usage:   "Path to docs directory or SQLite file",
		EnvVars: []string{envDocPath},
	}
}
