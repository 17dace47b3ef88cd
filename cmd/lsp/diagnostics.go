package main

import (
	"github.com/funvibe/sol/internal/diagnostics"
)

func (s *LanguageServer) publishDiagnostics(uri string, docState *DocumentState) error {
	docState.Mu.RLock()
	lspDiagnostics := s.convertDiagnostics(docState.Err)
	docState.Mu.RUnlock()

	return s.sendNotification(NotificationMessage{
		Jsonrpc: "2.0",
		Method:  "textDocument/publishDiagnostics",
		Params: PublishDiagnosticsParams{
			URI:         uri,
			Diagnostics: lspDiagnostics,
		},
	})
}

// convertDiagnostics turns a reader error into LSP form. A nil error gives
// an empty, non-nil list, which clears the client's markers.
func (s *LanguageServer) convertDiagnostics(err *diagnostics.DiagnosticError) []Diagnostic {
	result := make([]Diagnostic, 0, 1)
	if err == nil {
		return result
	}

	// LSP uses 0-based lines and columns
	line := err.Line - 1
	start := err.Column - 1
	if line < 0 {
		line = 0
	}
	if start < 0 {
		start = 0
	}
	width := len([]rune(err.Token.Lexeme))
	if width == 0 {
		width = 1
	}

	return append(result, Diagnostic{
		Range: Range{
			Start: Position{Line: line, Character: start},
			End:   Position{Line: line, Character: start + width},
		},
		Severity: SeverityError,
		Code:     string(err.Code),
		Message:  err.Message,
		Source:   "sol",
	})
}
