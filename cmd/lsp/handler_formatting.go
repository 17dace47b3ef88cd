package main

import (
	"log"
	"strings"
)

// handleFormatting replaces the document with the canonical form of each
// of its terms, one per line. A document that does not read cleanly is
// left alone.
func (s *LanguageServer) handleFormatting(id interface{}, params DocumentFormattingParams) error {
	log.Printf("Handling formatting request for %s", params.TextDocument.URI)

	s.mu.RLock()
	docState, exists := s.documents[params.TextDocument.URI]
	s.mu.RUnlock()

	edits := []TextEdit{}
	if exists {
		docState.Mu.RLock()
		if docState.Err == nil && len(docState.Terms) > 0 {
			var sb strings.Builder
			for _, t := range docState.Terms {
				sb.WriteString(t.Output)
				sb.WriteString("\n")
			}
			if formatted := sb.String(); formatted != docState.Content {
				edits = append(edits, TextEdit{
					Range: Range{
						Start: Position{Line: 0, Character: 0},
						End:   positionAt(docState.Content, len(docState.Content)),
					},
					NewText: formatted,
				})
			}
		}
		docState.Mu.RUnlock()
	}

	return s.sendResponse(ResponseMessage{
		Jsonrpc: "2.0",
		ID:      id,
		Result:  edits,
	})
}
