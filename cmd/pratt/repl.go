package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	pratt "github.com/archermarx/pratt-parser"
)

var helpText = `
REPL commands:
  :tokens  Toggle printing of the token stream
  :ast     Toggle printing of the syntax tree
  :help    Show this help
  :quit    Exit the REPL
`

type replCmd struct {
	History string `help:"History file (default ~/.pratt_history)." env:"PRATT_HISTORY"`
}

// replState holds the toggles changed by ':' commands.
type replState struct {
	showTokens bool
	showAST    bool
}

func (c *replCmd) historyPath() string {
	if c.History != "" {
		return c.History
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, historyFile)
}

func (c *replCmd) Run(env *runEnv) error {
	fmt.Fprintf(env.stdout, "pratt %s REPL\nCtrl+C cancels input, Ctrl+D exits. Type :help for commands.\n", pratt.Version)

	histPath := c.historyPath()

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	} else {
		env.log.Debug().Str("path", histPath).Err(err).Msg("no history loaded")
	}

	st := &replState{}
	for {
		src, ok := readByParseProbe(ln, promptMain, promptCont)
		if !ok {
			fmt.Fprintln(env.stdout)
			return nil
		}

		trimmed := strings.TrimSpace(src)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			if quit := st.command(env.stdout, trimmed); quit {
				return nil
			}
			continue
		}

		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
		if err := st.eval(env.stdout, src); err != nil {
			fmt.Fprintln(os.Stderr, red(err.Error()))
		}
	}
}

// command runs a ':' command and reports whether the REPL should exit.
func (st *replState) command(w io.Writer, cmd string) bool {
	switch strings.ToLower(cmd) {
	case ":quit", ":q":
		return true
	case ":tokens":
		st.showTokens = !st.showTokens
		fmt.Fprintf(w, "token printing %s\n", onOff(st.showTokens))
	case ":ast":
		st.showAST = !st.showAST
		fmt.Fprintf(w, "AST printing %s\n", onOff(st.showAST))
	case ":help":
		fmt.Fprint(w, helpText)
	default:
		fmt.Fprintf(w, "unknown command. Type :help for a list.\n")
	}
	return false
}

func (st *replState) eval(w io.Writer, src string) error {
	if st.showTokens {
		toks, err := pratt.Tokenize([]byte(src))
		if err != nil {
			return pratt.WrapErrorWithSource(err, src)
		}
		printTokens(w, toks)
	}
	e, err := pratt.Parse(src)
	if err != nil {
		return pratt.WrapErrorWithSource(err, src)
	}
	if st.showAST {
		fmt.Fprintf(w, "%s\n", green(e.String()))
	}
	v, err := pratt.Eval(e)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, blue(v))
	return nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// readByParseProbe keeps prompting with the continuation prompt while the
// accumulated input is incomplete, e.g. an open '(' or a trailing operator.
func readByParseProbe(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		var line string
		var err error
		if b.Len() == 0 {
			line, err = ln.Prompt(prompt)
		} else {
			line, err = ln.Prompt(cont)
		}
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			b.Reset()
			continue
		}
		if err != nil {
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, true
		}
		if strings.TrimSpace(src) == "" {
			return src, true
		}
		_, perr := pratt.Parse(src)
		if perr != nil && pratt.IsIncomplete(perr) {
			continue
		}
		return src, true
	}
}
