package main

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/funvibe/sol/internal/diagnostics"
	"github.com/funvibe/sol/internal/lexer"
	"github.com/funvibe/sol/internal/parser"
	"github.com/funvibe/sol/internal/pipeline"
	"github.com/funvibe/sol/internal/printer"
	"github.com/funvibe/sol/internal/resolver"
	"github.com/funvibe/sol/internal/scope"
	"github.com/funvibe/sol/internal/token"
)

var analysisPipeline = pipeline.New(
	&parser.ParserProcessor{},
	&resolver.ResolverProcessor{},
	&scope.AnalyzerProcessor{},
	&printer.RenderProcessor{},
)

// termInfo is one top-level term of a document.
type termInfo struct {
	Start        int // offset of its first token
	End          int // offset just past its last token
	Output       string
	Dependencies []string
}

// DocumentState stores the state of a single open document
type DocumentState struct {
	Content string
	Terms   []termInfo                    // Terms read before the first error
	Err     *diagnostics.DiagnosticError // First error, if any
	Mu      sync.RWMutex
}

func (s *LanguageServer) handleDidOpen(params DidOpenTextDocumentParams) error {
	uri := params.TextDocument.URI
	docState := &DocumentState{}
	s.analyzeDocument(docState, params.TextDocument.Text, uri)

	s.mu.Lock()
	s.documents[uri] = docState
	s.mu.Unlock()

	log.Printf("Opened file: %s", uri)
	return s.publishDiagnostics(uri, docState)
}

func (s *LanguageServer) handleDidChange(params DidChangeTextDocumentParams) error {
	// Full sync: the last change carries the whole text.
	if len(params.ContentChanges) == 0 {
		return nil
	}
	uri := params.TextDocument.URI

	s.mu.RLock()
	docState, exists := s.documents[uri]
	s.mu.RUnlock()
	if !exists {
		return fmt.Errorf("document %s not found", uri)
	}

	s.analyzeDocument(docState, params.ContentChanges[len(params.ContentChanges)-1].Text, uri)

	log.Printf("Changed file: %s", uri)
	return s.publishDiagnostics(uri, docState)
}

func (s *LanguageServer) handleDidClose(params DidCloseTextDocumentParams) error {
	s.mu.Lock()
	delete(s.documents, params.TextDocument.URI)
	s.mu.Unlock()
	log.Printf("Closed file: %s", params.TextDocument.URI)
	return nil
}

// analyzeDocument reads the terms of content one after another, stopping
// at the first error, and stores the result in docState.
func (s *LanguageServer) analyzeDocument(docState *DocumentState, content string, uri string) {
	var terms []termInfo
	var firstErr *diagnostics.DiagnosticError

	offset := 0
	for {
		first := lexer.NewAt(content, offset).NextToken()
		if first.Type == token.EOF {
			break
		}
		ctx := analysisPipeline.Run(&pipeline.PipelineContext{
			SourceCode:  content,
			FilePath:    s.uriToPath(uri),
			StartOffset: offset,
			Aliases:     s.aliases,
			Lookup:      s.catalog.Lookup,
			Reserved:    s.catalog.Names(),
		})
		if ctx.HasErrors() {
			firstErr = ctx.Errors[0]
			break
		}
		terms = append(terms, termInfo{
			Start:        first.Offset,
			End:          ctx.EndOffset,
			Output:       ctx.Output,
			Dependencies: ctx.Dependencies,
		})
		offset = ctx.EndOffset
	}

	docState.Mu.Lock()
	docState.Content = content
	docState.Terms = terms
	docState.Err = firstErr
	docState.Mu.Unlock()
}

func (s *LanguageServer) uriToPath(uri string) string {
	return strings.TrimPrefix(uri, "file://")
}
