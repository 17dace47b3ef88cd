package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/funvibe/sol/internal/config"
	"github.com/funvibe/sol/internal/lexer"
	"github.com/funvibe/sol/internal/parser"
	"github.com/funvibe/sol/internal/pipeline"
	"github.com/funvibe/sol/internal/prettyprinter"
	"github.com/funvibe/sol/internal/printer"
	"github.com/funvibe/sol/internal/resolver"
	"github.com/funvibe/sol/internal/scope"
	"github.com/funvibe/sol/internal/service"
	"github.com/funvibe/sol/internal/termcodec"
	"github.com/funvibe/sol/internal/token"
)

var renderPipeline = pipeline.New(
	&parser.ParserProcessor{},
	&resolver.ResolverProcessor{},
	&scope.AnalyzerProcessor{},
	&printer.RenderProcessor{},
)

func (a *app) readSource(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(a.stdin)
	}
	return os.ReadFile(path)
}

// sourceFiles expands a directory argument into the source files below it,
// in lexical order. Other arguments are returned as given.
func sourceFiles(path string) ([]string, error) {
	if path == "-" {
		return []string{path}, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	err = filepath.Walk(path, func(filePath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !fi.IsDir() && filepath.Ext(filePath) == config.SourceFileExt {
			files = append(files, filePath)
		}
		return nil
	})
	return files, err
}

// atEnd reports whether only separators remain from offset on.
func atEnd(source string, offset int) bool {
	return lexer.NewAt(source, offset).NextToken().Type == token.EOF
}

// eachTerm reads the terms of source one after another and calls fn with
// the finished context of each.
func (a *app) eachTerm(source, path string, fn func(ctx *pipeline.PipelineContext)) error {
	offset := 0
	for !atEnd(source, offset) {
		ctx := renderPipeline.Run(&pipeline.PipelineContext{
			SourceCode:  source,
			FilePath:    path,
			StartOffset: offset,
			Aliases:     a.aliases,
			Lookup:      a.catalog.Lookup,
			Reserved:    a.catalog.Names(),
		})
		if err := ctx.Err(); err != nil {
			return err
		}
		fn(ctx)
		offset = ctx.EndOffset
	}
	return nil
}

func (a *app) cmdFmt(args []string) int {
	if len(args) == 0 {
		a.errorf("Usage: %s fmt <file|dir> [file2...]", appName)
		return 2
	}

	var paths []string
	status := 0
	for _, arg := range args {
		files, err := sourceFiles(arg)
		if err != nil {
			a.errorf("Error reading file: %s", err)
			status = 1
			continue
		}
		paths = append(paths, files...)
	}

	for _, path := range paths {
		data, err := a.readSource(path)
		if err != nil {
			a.errorf("Error reading file: %s", err)
			status = 1
			continue
		}
		err = a.eachTerm(string(data), path, func(ctx *pipeline.PipelineContext) {
			fmt.Fprintln(a.stdout, ctx.Output)
		})
		if err != nil {
			a.errorf("%s", err)
			status = 1
		}
	}
	return status
}

func (a *app) cmdDeps(args []string) int {
	if len(args) != 1 {
		a.errorf("Usage: %s deps <file>", appName)
		return 2
	}

	data, err := a.readSource(args[0])
	if err != nil {
		a.errorf("Error reading file: %s", err)
		return 1
	}

	seen := make(map[string]bool)
	err = a.eachTerm(string(data), args[0], func(ctx *pipeline.PipelineContext) {
		for _, name := range ctx.Dependencies {
			if !seen[name] {
				seen[name] = true
				fmt.Fprintln(a.stdout, name)
			}
		}
	})
	if err != nil {
		a.errorf("%s", err)
		return 1
	}
	return 0
}

// cmdAst prints the surface tree of every term, before names are
// resolved.
func (a *app) cmdAst(args []string) int {
	if len(args) != 1 {
		a.errorf("Usage: %s ast <file>", appName)
		return 2
	}

	data, err := a.readSource(args[0])
	if err != nil {
		a.errorf("Error reading file: %s", err)
		return 1
	}

	source := string(data)
	pp := &parser.ParserProcessor{}
	for offset := 0; !atEnd(source, offset); {
		ctx := pp.Process(&pipeline.PipelineContext{
			SourceCode:  source,
			FilePath:    args[0],
			StartOffset: offset,
		})
		if err := ctx.Err(); err != nil {
			a.errorf("%s", err)
			return 1
		}
		treePrinter := prettyprinter.NewTreePrinter()
		ctx.AstRoot.Accept(treePrinter)
		fmt.Fprint(a.stdout, treePrinter.String())
		offset = ctx.EndOffset
	}
	return 0
}

func (a *app) cmdEncode(args []string) int {
	if len(args) != 1 {
		a.errorf("Usage: %s encode <file>", appName)
		return 2
	}

	data, err := a.readSource(args[0])
	if err != nil {
		a.errorf("Error reading file: %s", err)
		return 1
	}

	ctx := renderPipeline.Run(&pipeline.PipelineContext{
		SourceCode: string(data),
		FilePath:   args[0],
		Aliases:    a.aliases,
	})
	if err := ctx.Err(); err != nil {
		a.errorf("%s", err)
		return 1
	}
	if !atEnd(ctx.SourceCode, ctx.EndOffset) {
		a.errorf("%s: only the first term can be encoded; text remains at offset %d", args[0], ctx.EndOffset)
		return 1
	}

	if _, err := a.stdout.Write(termcodec.Encode(ctx.Term)); err != nil {
		a.errorf("Error writing output: %s", err)
		return 1
	}
	return 0
}

func (a *app) cmdDecode(args []string) int {
	if len(args) != 1 {
		a.errorf("Usage: %s decode <file>", appName)
		return 2
	}

	data, err := a.readSource(args[0])
	if err != nil {
		a.errorf("Error reading file: %s", err)
		return 1
	}
	t, err := termcodec.Decode(data)
	if err != nil {
		a.errorf("%s: %s", args[0], err)
		return 1
	}
	p := &printer.Printer{Lookup: a.catalog.Lookup, Reserved: a.catalog.Names()}
	fmt.Fprintln(a.stdout, p.Print(t))
	return 0
}

func (a *app) cmdServe(args []string) int {
	addr := a.cfg.Serve.Addr
	switch len(args) {
	case 0:
	case 1:
		addr = args[0]
	default:
		a.errorf("Usage: %s serve [addr]", appName)
		return 2
	}

	srv, err := service.New(a.catalog)
	if err != nil {
		a.errorf("Error: %s", err)
		return 1
	}
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		a.errorf("Error: %s", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("%s serving %s on %s (%d definitions)", appName, service.ServiceName, lis.Addr(), a.catalog.Len())
	if err := srv.Serve(ctx, lis); err != nil {
		a.errorf("Error: %s", err)
		return 1
	}
	log.Printf("%s stopped", appName)
	return 0
}
