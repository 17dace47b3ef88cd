package diagnostics_test

import (
	"fmt"
	"testing"

	"github.com/funvibe/sol/internal/diagnostics"
	"github.com/funvibe/sol/internal/token"
)

func TestErrorFormat(t *testing.T) {
	tok := token.Token{Type: token.RPAREN, Lexeme: ")", Offset: 4, Line: 1, Column: 5}
	err := diagnostics.NewError(diagnostics.ErrP003, tok, "unexpected ')'")

	if got, want := err.Error(), "1:5: [P003] unexpected ')'"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	err.File = "main.sol"
	if got, want := err.Error(), "main.sol:1:5: [P003] unexpected ')'"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if err.Offset != 4 {
		t.Errorf("offset: got %d", err.Offset)
	}
}

func TestIsIncomplete(t *testing.T) {
	testCases := []struct {
		code diagnostics.ErrorCode
		want bool
	}{
		{diagnostics.ErrP001, true},
		{diagnostics.ErrP002, true},
		{diagnostics.ErrP003, false},
		{diagnostics.ErrP004, false},
	}
	for _, tc := range testCases {
		err := diagnostics.NewError(tc.code, token.Token{}, tc.code.Title())
		if got := diagnostics.IsIncomplete(err); got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.code, got, tc.want)
		}
		wrapped := fmt.Errorf("reading: %w", err)
		if got := diagnostics.IsIncomplete(wrapped); got != tc.want {
			t.Errorf("%s wrapped: got %v, want %v", tc.code, got, tc.want)
		}
	}
	if diagnostics.IsIncomplete(fmt.Errorf("plain")) {
		t.Error("plain error reported as incomplete")
	}
}
