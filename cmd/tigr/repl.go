package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/Roybie/tigr/pkg/driver"
	"github.com/Roybie/tigr/pkg/interpreter"
	"github.com/Roybie/tigr/pkg/lexer"
	"github.com/Roybie/tigr/pkg/runtime"
)

const (
	banner      = "tigr repl. Type :help for help, :quit to exit."
	promptMain  = "tigr> "
	historyFile = ".tigr_history"
)

const helpText = `Commands:
  :load TREE   evaluate a serialized tree in this session
  :env         print the session's root environment
  :reset       start over with a fresh interpreter
  :quit        leave the session
Any other line is tokenized and its tokens are printed.
`

// session is the state of one interactive session. Trees loaded with :load
// share the same root environment until :reset.
type session struct {
	cfg    *driver.Config
	out    io.Writer
	interp *interpreter.Interpreter
}

func newSession(cfg *driver.Config, out io.Writer) (*session, error) {
	s := &session{cfg: cfg, out: out}
	if err := s.reset(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *session) reset() error {
	opts, err := s.cfg.InterpreterOptions(s.out)
	if err != nil {
		return err
	}
	s.interp = interpreter.New(append(opts, interpreter.WithLogger(log))...)
	return nil
}

// handle processes one input line and reports whether the session is over.
func (s *session) handle(line string) (exit bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	if !strings.HasPrefix(trimmed, ":") {
		s.tokenize(line)
		return false
	}

	fields := strings.Fields(trimmed)
	switch strings.ToLower(fields[0]) {
	case ":help":
		fmt.Fprint(s.out, helpText)
	case ":quit", ":exit":
		return true
	case ":reset":
		if err := s.reset(); err != nil {
			fmt.Fprintln(s.out, err)
			return false
		}
		fmt.Fprintln(s.out, "interpreter reset.")
	case ":env":
		if err := s.interp.DumpEnvironment(s.out); err != nil {
			fmt.Fprintln(s.out, err)
		}
	case ":load":
		if len(fields) < 2 {
			fmt.Fprintln(s.out, "usage: :load <tree>")
			return false
		}
		s.load(fields[1])
	default:
		fmt.Fprintln(s.out, "unknown command. Type :help for help.")
	}
	return false
}

func (s *session) tokenize(line string) {
	items, err := lexer.Scan(line)
	for _, item := range items {
		fmt.Fprintln(s.out, item)
	}
	var lerr *lexer.LexicalError
	if errors.As(err, &lerr) {
		reportLexicalError(s.out, line, lerr)
	}
}

func (s *session) load(path string) {
	expr, err := driver.LoadTree(path)
	if err != nil {
		fmt.Fprintln(s.out, err)
		return
	}
	val, err := s.interp.Evaluate(expr)
	if err != nil {
		fmt.Fprintf(s.out, "runtime error: %v\n", err)
		return
	}
	fmt.Fprintln(s.out, runtime.Format(val))
}

func (c *cli) runREPL() int {
	cfg, err := c.loadConfig()
	if err != nil {
		return c.fail("%v", err)
	}
	s, err := newSession(cfg, c.stdout)
	if err != nil {
		return c.fail("%v", err)
	}
	fmt.Fprintln(c.stdout, banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	// history is best-effort
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	for {
		line, err := ln.Prompt(promptMain)
		if err != nil {
			// Ctrl+D, Ctrl+C or closed input
			fmt.Fprintln(c.stdout)
			break
		}
		if strings.TrimSpace(line) != "" {
			ln.AppendHistory(line)
		}
		if s.handle(line) {
			break
		}
	}

	if f, err := os.Create(histPath); err == nil {
		_, _ = ln.WriteHistory(f)
		_ = f.Close()
	}
	return 0
}
