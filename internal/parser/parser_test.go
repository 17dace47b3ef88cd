package parser_test

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/funvibe/sol/internal/parser"
	"github.com/funvibe/sol/internal/pipeline"
	"github.com/funvibe/sol/internal/prettyprinter"
)

var update = flag.Bool("update", false, "update snapshot files")

func TestParser(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{"application", "(f a b c)"},
		{"lambda_identity", "(A:* (x:A x))"},
		{"pi_type", "(A.* (x.A A))"},
		{"fixpoint", "loop@(loop loop)"},
		{"let_alias", "T=* (y:T y)"},
		{"separators", "(f, x; y)"},
		{"detached_assign", "(f = x)"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := &pipeline.PipelineContext{SourceCode: tc.input}

			parserProcessor := &parser.ParserProcessor{}
			ctx = parserProcessor.Process(ctx)

			if len(ctx.Errors) > 0 {
				var errorMessages []string
				for _, err := range ctx.Errors {
					errorMessages = append(errorMessages, err.Error())
				}
				t.Fatalf("parsing failed with errors:\n%s", strings.Join(errorMessages, "\n"))
			}

			// 1. Tree Printer (AST Structure)
			treePrinter := prettyprinter.NewTreePrinter()
			ctx.AstRoot.Accept(treePrinter)
			treeOutput := treePrinter.String()

			// 2. Code Printer (Source Code Reconstruction)
			codePrinter := prettyprinter.NewCodePrinter()
			ctx.AstRoot.Accept(codePrinter)
			codeOutput := codePrinter.String()

			actual := "--- Input ---\n" + tc.input + "\n\n--- AST Tree ---\n" + treeOutput + "\n--- Source Code ---\n" + codeOutput

			snapshotFile := filepath.Join("testdata", tc.name+".snap")

			if *update {
				err := os.WriteFile(snapshotFile, []byte(actual), 0644)
				if err != nil {
					t.Fatalf("failed to update snapshot: %v", err)
				}
				return
			}

			expected, err := os.ReadFile(snapshotFile)
			if err != nil {
				t.Fatalf("failed to read snapshot file: %v. Run with -update flag to create it.", err)
			}

			if string(expected) != actual {
				t.Errorf("snapshot mismatch:\n--- expected\n%s\n--- actual\n%s", string(expected), actual)
			}
		})
	}
}

func TestEndOffset(t *testing.T) {
	testCases := []struct {
		input string
		start int
		want  int
	}{
		{"  x rest", 0, 3},
		{"(f a) (g)", 0, 5},
		{"(f a) (g b)", 5, 11},
		{"x:* x", 0, 5},
		{"x=* x ", 0, 5},
	}

	for _, tc := range testCases {
		ctx := (&parser.ParserProcessor{}).Process(&pipeline.PipelineContext{
			SourceCode:  tc.input,
			StartOffset: tc.start,
		})
		if len(ctx.Errors) > 0 {
			t.Errorf("%q: unexpected error %v", tc.input, ctx.Errors[0])
			continue
		}
		if ctx.EndOffset != tc.want {
			t.Errorf("%q from %d: end offset %d, want %d", tc.input, tc.start, ctx.EndOffset, tc.want)
		}
	}
}
