package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/funvibe/sol/internal/config"
	"github.com/funvibe/sol/internal/diagnostics"
	"github.com/funvibe/sol/internal/pipeline"
	"github.com/funvibe/sol/internal/reader"
)

const (
	promptMain = "sol> "
	promptCont = "...> "
)

// prompter is the part of *liner.State the loop uses.
type prompter interface {
	Prompt(prompt string) (string, error)
}

func (a *app) cmdRepl(_ []string) int {
	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, config.HistoryFileName)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	fmt.Fprintf(a.stdout, "%s: type a term, :help for commands, :quit to leave\n", appName)
	return a.replLoop(ln)
}

func (a *app) replLoop(p prompter) int {
	var lastDeps []string

	for {
		input, ok := a.readByParseProbe(p)
		if !ok {
			fmt.Fprintln(a.stdout)
			return 0
		}
		trimmed := strings.TrimSpace(input)
		if trimmed == "" {
			continue
		}

		if strings.HasPrefix(trimmed, ":") {
			switch strings.ToLower(trimmed) {
			case ":quit", ":q":
				return 0
			case ":deps":
				for _, name := range lastDeps {
					fmt.Fprintln(a.stdout, name)
				}
			case ":defs":
				for _, name := range a.catalog.Names() {
					def, _ := a.catalog.Get(name)
					fmt.Fprintf(a.stdout, "%s = %s\n", name, def.Text)
				}
			case ":help":
				fmt.Fprintln(a.stdout, ":deps  free names of the last input")
				fmt.Fprintln(a.stdout, ":defs  definitions from "+config.ConfigFileName)
				fmt.Fprintln(a.stdout, ":quit  leave")
			default:
				fmt.Fprintln(a.stdout, "unknown command. Type :help for a list.")
			}
			continue
		}

		if h, ok := p.(interface{ AppendHistory(string) }); ok {
			h.AppendHistory(strings.ReplaceAll(input, "\n", " "))
		}

		var deps []string
		err := a.eachTerm(input, "", func(ctx *pipeline.PipelineContext) {
			fmt.Fprintln(a.stdout, ctx.Output)
			deps = appendNew(deps, ctx.Dependencies)
		})
		if err != nil {
			a.errorf("%s", err)
			continue
		}
		lastDeps = deps
	}
}

// readByParseProbe reads lines until the collected text parses or fails for
// a reason other than running out of input.
func (a *app) readByParseProbe(p prompter) (string, bool) {
	var b strings.Builder

	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := p.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			b.Reset()
			continue
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, true
		}
		if !diagnostics.IsIncomplete(a.probe(src)) {
			return src, true
		}
	}
}

// probe reads every term in src and returns the first error.
func (a *app) probe(src string) error {
	offset := 0
	for !atEnd(src, offset) {
		res, err := reader.ParseWithAliases(src, offset, a.aliases)
		if err != nil {
			return err
		}
		offset = res.EndOffset
	}
	return nil
}

func appendNew(list, names []string) []string {
	for _, name := range names {
		found := false
		for _, have := range list {
			if have == name {
				found = true
				break
			}
		}
		if !found {
			list = append(list, name)
		}
	}
	return list
}
