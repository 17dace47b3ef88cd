package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/funvibe/sol/internal/printer"
	"github.com/funvibe/sol/internal/reader"
)

// handleHover describes what is under the cursor. In order of preference:
// a named definition, the parenthesized subterm whose bracket the cursor
// is on (read on its own, so enclosing binders show as free names), or
// the whole top-level term.
func (s *LanguageServer) handleHover(id interface{}, params HoverParams) error {
	log.Printf("Handling hover request for %s at line %d, char %d", params.TextDocument.URI, params.Position.Line, params.Position.Character)

	s.mu.RLock()
	docState, exists := s.documents[params.TextDocument.URI]
	s.mu.RUnlock()

	var hover *Hover
	if exists {
		docState.Mu.RLock()
		hover = s.hoverAt(docState, offsetAt(docState.Content, params.Position))
		docState.Mu.RUnlock()
	}

	return s.sendResponse(ResponseMessage{
		Jsonrpc: "2.0",
		ID:      id,
		Result:  hover,
	})
}

func (s *LanguageServer) hoverAt(doc *DocumentState, offset int) *Hover {
	content := doc.Content

	if word, start := wordAt(content, offset); word != "" {
		if def, ok := s.catalog.Get(word); ok {
			return newHover(content, start, start+len(word),
				fmt.Sprintf("definition `%s`\n\n```sol\n%s\n```", def.Name, def.Text))
		}
	}

	opener := -1
	if offset < len(content) {
		switch content[offset] {
		case '(':
			opener = offset
		case ')':
			opener = findMatchingOpener(content, offset)
		}
	}
	if opener >= 0 {
		if res, err := reader.ParseWithAliases(content, opener, s.aliases); err == nil {
			p := &printer.Printer{Lookup: s.catalog.Lookup, FreeNames: res.Dependencies, Reserved: s.catalog.Names()}
			return newHover(content, opener, res.EndOffset, describe(p.Print(res.Term), res.Dependencies))
		}
	}

	for _, t := range doc.Terms {
		if t.Start <= offset && offset < t.End {
			return newHover(content, t.Start, t.End, describe(t.Output, t.Dependencies))
		}
	}
	return nil
}

func describe(text string, deps []string) string {
	var sb strings.Builder
	sb.WriteString("```sol\n")
	sb.WriteString(text)
	sb.WriteString("\n```")
	if len(deps) > 0 {
		sb.WriteString("\n\nfree: ")
		sb.WriteString(strings.Join(deps, ", "))
	}
	return sb.String()
}

func newHover(content string, start, end int, markdown string) *Hover {
	return &Hover{
		Contents: MarkupContent{Kind: "markdown", Value: markdown},
		Range: &Range{
			Start: positionAt(content, start),
			End:   positionAt(content, end),
		},
	}
}
