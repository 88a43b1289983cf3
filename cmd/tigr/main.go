package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/Roybie/tigr/pkg/driver"
	"github.com/Roybie/tigr/pkg/interpreter"
	"github.com/Roybie/tigr/pkg/lexer"
	"github.com/Roybie/tigr/pkg/runtime"
)

const cliToolVersion = "tigr 0.1.0-dev"

var (
	// package logger instance
	log = logrus.New()

	TAG = "tigr"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// cli holds the parsed command line.
type cli struct {
	stdout io.Writer
	stderr io.Writer

	configPath string
	logLevel   string
	debug      bool

	lexFile   string
	lexFormat string

	runTree string
	dumpEnv bool
	watch   bool

	convertTree string
	convertTo   string
}

func newApp(c *cli) (*kingpin.Application, map[string]func() int) {
	app := kingpin.New("tigr", "Runtime for the tigr expression language.")
	app.Version(cliToolVersion)
	app.UsageWriter(c.stderr)
	app.ErrorWriter(c.stderr)

	app.Flag("config", "Configuration in YML format.").Envar("TIGR_CONFIG").StringVar(&c.configPath)
	app.Flag("log-level", "Log level (overrides the configuration).").StringVar(&c.logLevel)
	app.Flag("debug", "Debug mode (debug logging and evaluation trace).").Short('d').BoolVar(&c.debug)

	formats := make([]string, 0, len(driver.Formats))
	for _, f := range driver.Formats {
		formats = append(formats, string(f))
	}

	lex := app.Command("lex", "Tokenize a source file and write the token stream.")
	lex.Arg("file", "Source file.").Required().StringVar(&c.lexFile)
	lex.Flag("format", "Output format.").Short('f').Default(string(driver.FormatJSON)).EnumVar(&c.lexFormat, formats...)

	runCmd := app.Command("run", "Evaluate a serialized syntax tree.")
	runCmd.Arg("tree", "Tree file (.json, .yaml or .msgpack).").Required().StringVar(&c.runTree)
	runCmd.Flag("dump-env", "Print the root environment after evaluation.").BoolVar(&c.dumpEnv)
	runCmd.Flag("watch", "Evaluate again whenever the tree file changes.").Short('w').BoolVar(&c.watch)

	convert := app.Command("convert", "Re-encode a syntax tree in another format.")
	convert.Arg("tree", "Tree file.").Required().StringVar(&c.convertTree)
	convert.Flag("to", "Output format.").Short('t').Default(string(driver.FormatYAML)).EnumVar(&c.convertTo, formats...)

	repl := app.Command("repl", "Start an interactive session.")

	actions := map[string]func() int{
		lex.FullCommand():     c.runLex,
		runCmd.FullCommand():  c.runRun,
		convert.FullCommand(): c.runConvert,
		repl.FullCommand():    c.runREPL,
	}
	return app, actions
}

func run(args []string, stdout, stderr io.Writer) int {
	c := &cli{stdout: stdout, stderr: stderr}
	app, actions := newApp(c)
	command, err := app.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "tigr: %v\n", err)
		return 2
	}
	action, ok := actions[command]
	if !ok {
		app.Usage(args)
		return 2
	}
	return action()
}

// loadConfig reads the configuration and applies logging flags on top.
func (c *cli) loadConfig() (*driver.Config, error) {
	cfg, err := driver.LoadConfig(c.configPath)
	if err != nil {
		return nil, err
	}
	if c.logLevel != "" {
		cfg.LogLevel = c.logLevel
	}
	if c.debug {
		cfg.LogLevel = logrus.DebugLevel.String()
		cfg.Trace = true
	}
	if err := cfg.ApplyLogLevels(); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	if ll, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.Level = ll
	}
	log.Debugf("[%s]: config %q, log level %s", TAG, cfg.Path, cfg.LogLevel)
	return cfg, nil
}

func (c *cli) fail(format string, args ...any) int {
	fmt.Fprintf(c.stderr, format+"\n", args...)
	return 1
}

func (c *cli) runLex() int {
	if _, err := c.loadConfig(); err != nil {
		return c.fail("%v", err)
	}
	src, err := os.ReadFile(c.lexFile)
	if err != nil {
		return c.fail("cannot read %s: %v", c.lexFile, err)
	}
	records, err := driver.Tokenize(string(src))
	if err != nil {
		var lerr *lexer.LexicalError
		if errors.As(err, &lerr) {
			reportLexicalError(c.stderr, string(src), lerr)
			return 1
		}
		return c.fail("%v", err)
	}
	if err := driver.EncodeTokens(c.stdout, records, driver.Format(c.lexFormat)); err != nil {
		return c.fail("%v", err)
	}
	return 0
}

// reportLexicalError prints the offending source line with a pointer under
// the rejected character.
func reportLexicalError(w io.Writer, src string, lerr *lexer.LexicalError) {
	start := strings.LastIndexByte(src[:lerr.Offset], '\n') + 1
	end := strings.IndexByte(src[lerr.Offset:], '\n')
	if end < 0 {
		end = len(src)
	} else {
		end += lerr.Offset
	}
	line := strings.TrimRight(src[start:end], "\r")
	column := len([]rune(src[start:lerr.Offset]))

	fmt.Fprintf(w, "Error on line %d:\n", lerr.Line)
	fmt.Fprintln(w, line)
	fmt.Fprintf(w, "%s└> Unexpected Character %q\n", strings.Repeat(" ", column), lerr.Char)
}

func (c *cli) runRun() int {
	cfg, err := c.loadConfig()
	if err != nil {
		return c.fail("%v", err)
	}
	status := c.evaluateTree(cfg)
	if !c.watch {
		return status
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	log.Infof("[%s]: watching %s", TAG, c.runTree)
	err = driver.Watch(ctx, c.runTree, driver.DefaultDebounce, func() {
		fmt.Fprintf(c.stdout, "--- %s changed\n", c.runTree)
		c.evaluateTree(cfg)
	})
	if err != nil {
		return c.fail("%v", err)
	}
	return 0
}

// evaluateTree loads the tree and evaluates it in a fresh interpreter.
func (c *cli) evaluateTree(cfg *driver.Config) int {
	expr, err := driver.LoadTree(c.runTree)
	if err != nil {
		return c.fail("%v", err)
	}
	opts, err := cfg.InterpreterOptions(c.stdout)
	if err != nil {
		return c.fail("%v", err)
	}
	interp := interpreter.New(append(opts, interpreter.WithLogger(log))...)
	val, err := interp.Evaluate(expr)
	if err != nil {
		return c.fail("runtime error: %v", err)
	}
	fmt.Fprintln(c.stdout, runtime.Format(val))
	if c.dumpEnv || cfg.DumpEnv {
		if err := interp.DumpEnvironment(c.stdout); err != nil {
			return c.fail("%v", err)
		}
	}
	return 0
}

func (c *cli) runConvert() int {
	if _, err := c.loadConfig(); err != nil {
		return c.fail("%v", err)
	}
	expr, err := driver.LoadTree(c.convertTree)
	if err != nil {
		return c.fail("%v", err)
	}
	if err := driver.EncodeTree(c.stdout, expr, driver.Format(c.convertTo)); err != nil {
		return c.fail("%v", err)
	}
	return 0
}

// package initialization
func init() {
	// be silent by default
	log.Level = logrus.WarnLevel
}
