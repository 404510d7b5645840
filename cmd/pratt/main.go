package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/alecthomas/repr"
	"github.com/fatih/color"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"

	pratt "github.com/archermarx/pratt-parser"
)

const (
	appName     = "pratt"
	historyFile = ".pratt_history"
	promptMain  = "==> "
	promptCont  = "... "
)

var (
	red   = color.New(color.FgRed).SprintFunc()
	green = color.New(color.FgGreen).SprintFunc()
	blue  = color.New(color.FgHiBlue).SprintFunc()
)

type globals struct {
	LogLevel string `help:"Log level (debug, info, warn, error)." default:"warn" env:"PRATT_LOG_LEVEL"`
	NoColor  bool   `help:"Disable colored output." env:"PRATT_NO_COLOR"`
}

type cli struct {
	globals

	Eval    evalCmd    `cmd:"" default:"withargs" help:"Evaluate an expression (default command)."`
	Tokens  tokensCmd  `cmd:"" help:"Print the token stream of an expression."`
	AST     astCmd     `cmd:"" name:"ast" help:"Print the syntax tree in prefix notation."`
	Dump    dumpCmd    `cmd:"" help:"Dump the Go structure of the syntax tree."`
	File    fileCmd    `cmd:"" help:"Evaluate one expression per line of a file."`
	Repl    replCmd    `cmd:"" help:"Start an interactive session."`
	Version versionCmd `cmd:"" help:"Print the compiled version."`
}

// runEnv is bound into every command's Run method.
type runEnv struct {
	log    zerolog.Logger
	stdout io.Writer
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.WarnLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(lvl).
		With().
		Timestamp().
		Str("component", appName).
		Logger()
}

func main() {
	var c cli
	kctx := kong.Parse(&c,
		kong.Name(appName),
		kong.Description("Parse and evaluate integer arithmetic with a Pratt parser.\n\n"+
			"Operators: + - * / ^ (right-associative) and postfix !. "+
			"Expressions starting with '-' must follow '--', e.g. pratt -- -5!"),
		kong.UsageOnError(),
	)

	if c.NoColor {
		color.NoColor = true
	}
	env := &runEnv{log: newLogger(c.LogLevel), stdout: os.Stdout}

	if err := kctx.Run(env); err != nil {
		fmt.Fprintln(os.Stderr, red(err.Error()))
		os.Exit(1)
	}
}

// -----------------------------------------------------------------------------
// eval
// -----------------------------------------------------------------------------

type evalCmd struct {
	Tokens bool     `help:"Print the token stream before the result."`
	AST    bool     `name:"ast" help:"Print the syntax tree before the result."`
	Expr   []string `arg:"" help:"Expression; several arguments are joined with spaces."`
}

func (c *evalCmd) Run(env *runEnv) error {
	src := strings.Join(c.Expr, " ")
	env.log.Debug().Str("src", src).Msg("evaluating")

	if c.Tokens {
		toks, err := pratt.Tokenize([]byte(src))
		if err != nil {
			return pratt.WrapErrorWithSource(err, src)
		}
		printTokens(env.stdout, toks)
	}

	e, err := pratt.Parse(src)
	if err != nil {
		return pratt.WrapErrorWithSource(err, src)
	}
	env.log.Debug().Stringer("ast", e).Msg("parsed")

	if c.AST {
		fmt.Fprintln(env.stdout, green("#== AST ====="))
		fmt.Fprintf(env.stdout, "%s\n\n", e)
	}

	v, err := pratt.Eval(e)
	if err != nil {
		return err
	}
	fmt.Fprintln(env.stdout, blue(v))
	return nil
}

func printTokens(w io.Writer, toks []pratt.Token) {
	fmt.Fprintln(w, green("#== Tokens =="))
	for _, t := range toks {
		if t.Type == pratt.EOF {
			break
		}
		fmt.Fprintln(w, t)
	}
	fmt.Fprintln(w)
}

// -----------------------------------------------------------------------------
// tokens / ast / dump
// -----------------------------------------------------------------------------

type tokensCmd struct {
	Expr []string `arg:"" help:"Expression to tokenize."`
}

func (c *tokensCmd) Run(env *runEnv) error {
	src := strings.Join(c.Expr, " ")
	toks, err := pratt.Tokenize([]byte(src))
	if err != nil {
		return pratt.WrapErrorWithSource(err, src)
	}
	env.log.Debug().Int("count", len(toks)-1).Msg("lexed")
	for _, t := range toks {
		if t.Type == pratt.EOF {
			break
		}
		fmt.Fprintln(env.stdout, t)
	}
	return nil
}

type astCmd struct {
	Expr []string `arg:"" help:"Expression to parse."`
}

func (c *astCmd) Run(env *runEnv) error {
	src := strings.Join(c.Expr, " ")
	e, err := pratt.Parse(src)
	if err != nil {
		return pratt.WrapErrorWithSource(err, src)
	}
	fmt.Fprintln(env.stdout, e)
	return nil
}

type dumpCmd struct {
	Expr []string `arg:"" help:"Expression to parse."`
}

func (c *dumpCmd) Run(env *runEnv) error {
	src := strings.Join(c.Expr, " ")
	e, err := pratt.Parse(src)
	if err != nil {
		return pratt.WrapErrorWithSource(err, src)
	}
	fmt.Fprintln(env.stdout, repr.String(e, repr.Indent("  ")))
	return nil
}

// -----------------------------------------------------------------------------
// file
// -----------------------------------------------------------------------------

type fileCmd struct {
	KeepGoing bool   `help:"Report every failing line instead of stopping at the first."`
	Path      string `arg:"" type:"existingfile" help:"File with one expression per line; blank lines and lines starting with '#' are skipped."`
}

func (c *fileCmd) Run(env *runEnv) error {
	f, err := os.Open(c.Path)
	if err != nil {
		return fmt.Errorf("%s: cannot read %s: %w", appName, c.Path, err)
	}
	defer f.Close()
	return evalLines(env, f, c.Path, c.KeepGoing)
}

// evalLines evaluates each expression line of r and prints its result. The
// first failure aborts unless keepGoing is set, in which case every failure
// is collected into one error.
func evalLines(env *runEnv, r io.Reader, name string, keepGoing bool) error {
	var errs *multierror.Error
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		src := strings.TrimSpace(sc.Text())
		if src == "" || strings.HasPrefix(src, "#") {
			continue
		}
		v, err := pratt.Evaluate(src)
		if err != nil {
			err = fmt.Errorf("%s:%d: %w", name, lineNo, pratt.WrapErrorWithSource(err, src))
			if !keepGoing {
				return err
			}
			env.log.Debug().Int("line", lineNo).Err(err).Msg("line failed")
			errs = multierror.Append(errs, err)
			continue
		}
		fmt.Fprintln(env.stdout, blue(v))
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return errs.ErrorOrNil()
}

// -----------------------------------------------------------------------------
// version
// -----------------------------------------------------------------------------

type versionCmd struct{}

func (versionCmd) Run(env *runEnv) error {
	fmt.Fprintf(env.stdout, "%s %s (built %s)\n", appName, pratt.Version, pratt.BuildDate)
	return nil
}
