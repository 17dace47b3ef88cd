package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/funvibe/sol/internal/config"
	"github.com/funvibe/sol/internal/definitions"
	"github.com/funvibe/sol/internal/syntax"
)

const appName = "sol"

// app holds what every command needs: the project configuration, the
// definitions it names and where output goes.
type app struct {
	cfg     *config.Config
	catalog *definitions.Catalog
	aliases map[string]syntax.Node
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
	color   bool
}

func newApp(cfg *config.Config, stdin io.Reader, stdout, stderr io.Writer) (*app, error) {
	catalog, err := definitions.FromConfig(cfg)
	if err != nil {
		return nil, err
	}
	return &app{
		cfg:     cfg,
		catalog: catalog,
		aliases: catalog.Aliases(),
		stdin:   stdin,
		stdout:  stdout,
		stderr:  stderr,
	}, nil
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// useColor decides whether diagnostics on stderr are colored.
func useColor(mode string) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		return isTerminal(os.Stderr) && os.Getenv("NO_COLOR") == ""
	}
}

func (a *app) red(s string) string {
	if !a.color {
		return s
	}
	return "\x1b[31m" + s + "\x1b[0m"
}

func (a *app) errorf(format string, args ...interface{}) {
	fmt.Fprintln(a.stderr, a.red(fmt.Sprintf(format, args...)))
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			if os.Getenv("DEBUG") == "1" {
				panic(r)
			}
			fmt.Fprintf(os.Stderr, "Internal error: %v\n", r)
			fmt.Fprintln(os.Stderr, "This is a bug. Please report it.")
			os.Exit(1)
		}
	}()

	if len(os.Args) >= 2 {
		switch os.Args[1] {
		case "-h", "--help", "help":
			usage(os.Stdout)
			return
		}
	}

	wd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	cfg, err := config.LoadFrom(wd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	a, err := newApp(cfg, os.Stdin, os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	a.color = useColor(cfg.Color)

	os.Exit(a.run(os.Args[1:]))
}

// run dispatches a command line (without the program name) and returns the
// exit code.
func (a *app) run(args []string) int {
	if len(args) == 0 {
		if f, ok := a.stdin.(*os.File); ok && isTerminal(f) {
			return a.cmdRepl(nil)
		}
		return a.cmdFmt([]string{"-"})
	}

	switch args[0] {
	case "fmt":
		return a.cmdFmt(args[1:])
	case "deps":
		return a.cmdDeps(args[1:])
	case "ast":
		return a.cmdAst(args[1:])
	case "encode":
		return a.cmdEncode(args[1:])
	case "decode":
		return a.cmdDecode(args[1:])
	case "serve":
		return a.cmdServe(args[1:])
	case "repl":
		return a.cmdRepl(args[1:])
	case "-h", "--help", "help":
		usage(a.stdout)
		return 0
	default:
		a.errorf("%s: unknown command %q", appName, args[0])
		usage(a.stderr)
		return 2
	}
}

func usage(w io.Writer) {
	fmt.Fprintf(w, `Usage:
  %[1]s fmt <file|dir>...    Print every term of each file in canonical form
  %[1]s deps <file>          Print the free names of a file, one per line
  %[1]s ast <file>           Print the syntax tree of every term, names unresolved
  %[1]s encode <file>        Write the first term of a file in binary form
  %[1]s decode <file>        Print a term written by encode
  %[1]s serve [addr]         Start the gRPC service (default %[2]s)
  %[1]s repl                 Start an interactive session
  %[1]s help                 Show this message

A file argument of "-" reads standard input. fmt given a directory reads
every %[4]s file below it. Definitions listed in %[3]s
may be used by name and are printed by name.
`, appName, config.DefaultServeAddr, config.ConfigFileName, config.SourceFileExt)
}
