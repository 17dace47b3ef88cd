package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/funvibe/sol/internal/config"
	"github.com/funvibe/sol/internal/termcodec"
)

func testApp(t *testing.T, stdin string, defs ...config.Definition) (*app, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	cfg := config.Default()
	cfg.Definitions = defs
	var stdout, stderr bytes.Buffer
	a, err := newApp(cfg, strings.NewReader(stdin), &stdout, &stderr)
	if err != nil {
		t.Fatalf("newApp: %v", err)
	}
	return a, &stdout, &stderr
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

var identityDef = config.Definition{Name: "id", Source: "(A:* (x:A x))"}

func TestFmt(t *testing.T) {
	path := writeFile(t, "terms.sol", "(x:* (y:* x))\n\n(f a b)\nloop@(loop loop)\n(T:* (v:T v)) ;;\n")
	a, stdout, stderr := testApp(t, "", identityDef)

	if code := a.run([]string{"fmt", path}); code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	want := "(b:* (a:* b))\n(f a b)\na@(a a)\nid\n"
	if stdout.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", stdout, want)
	}
}

func TestFmtDirectory(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"a.sol":       "(x:* x)\n",
		"b.txt":       "not a term (\n",
		"sub/c.sol":   "(f a)\n",
		"sub/d.sol.x": "(",
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	a, stdout, stderr := testApp(t, "")
	if code := a.run([]string{"fmt", dir}); code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	if got, want := stdout.String(), "(a:* a)\n(f a)\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFmtMissingPath(t *testing.T) {
	a, _, stderr := testApp(t, "")
	if code := a.run([]string{"fmt", filepath.Join(t.TempDir(), "nope")}); code != 1 {
		t.Errorf("exit %d", code)
	}
	if !strings.Contains(stderr.String(), "Error reading file") {
		t.Errorf("stderr %q", stderr)
	}
}

func TestFmtDefinitionNamedLikeBinder(t *testing.T) {
	path := writeFile(t, "terms.sol", "(y:* (y (z:* z)))\n")
	a, stdout, stderr := testApp(t, "", config.Definition{Name: "a", Source: "(x:* x)"})

	if code := a.run([]string{"fmt", path}); code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	if got, want := stdout.String(), "(b:* (b a))\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFmtStdin(t *testing.T) {
	a, stdout, _ := testApp(t, "(id *)", identityDef)
	if code := a.run([]string{"fmt", "-"}); code != 0 {
		t.Fatalf("exit %d", code)
	}
	if got := stdout.String(); got != "(id *)\n" {
		t.Errorf("got %q", got)
	}
}

func TestFmtReportsErrors(t *testing.T) {
	path := writeFile(t, "bad.sol", "(f a\n")
	a, _, stderr := testApp(t, "")

	if code := a.run([]string{"fmt", path}); code != 1 {
		t.Fatalf("exit %d", code)
	}
	msg := stderr.String()
	if !strings.Contains(msg, "P002") || !strings.Contains(msg, path+":1:1") {
		t.Errorf("diagnostic: %q", msg)
	}
	if strings.Contains(msg, "\x1b[") {
		t.Error("color should be off unless requested")
	}
}

func TestDeps(t *testing.T) {
	path := writeFile(t, "deps.sol", "(y x y) (z:* (w z x))")
	a, stdout, _ := testApp(t, "")
	if code := a.run([]string{"deps", path}); code != 0 {
		t.Fatalf("exit %d", code)
	}
	if got := stdout.String(); got != "y\nx\nw\n" {
		t.Errorf("got %q", got)
	}
}

func TestEncodeDecode(t *testing.T) {
	src := writeFile(t, "t.sol", "(A:* (x:A (f x)))")
	a, stdout, stderr := testApp(t, "")
	if code := a.run([]string{"encode", src}); code != 0 {
		t.Fatalf("encode: exit %d: %s", code, stderr)
	}
	if _, err := termcodec.Decode(stdout.Bytes()); err != nil {
		t.Fatalf("encode wrote an undecodable term: %v", err)
	}

	bin := writeFile(t, "t.bin", stdout.String())
	a, stdout, stderr = testApp(t, "")
	if code := a.run([]string{"decode", bin}); code != 0 {
		t.Fatalf("decode: exit %d: %s", code, stderr)
	}
	if got := stdout.String(); got != "(a:* (a:a (f1 a)))\n" {
		t.Errorf("got %q", got)
	}
}

func TestEncodeRejectsSeveralTerms(t *testing.T) {
	src := writeFile(t, "two.sol", "* *")
	a, _, stderr := testApp(t, "")
	if code := a.run([]string{"encode", src}); code != 1 {
		t.Fatalf("exit %d", code)
	}
	if !strings.Contains(stderr.String(), "only the first term") {
		t.Errorf("got %q", stderr)
	}
}

func TestDecodeMalformed(t *testing.T) {
	bin := writeFile(t, "bad.bin", "\xff")
	a, _, stderr := testApp(t, "")
	if code := a.run([]string{"decode", bin}); code != 1 {
		t.Fatalf("exit %d", code)
	}
	if !strings.Contains(stderr.String(), "malformed") {
		t.Errorf("got %q", stderr)
	}
}

func TestUsage(t *testing.T) {
	a, stdout, stderr := testApp(t, "")
	if code := a.run([]string{"help"}); code != 0 || !strings.Contains(stdout.String(), "Usage:") {
		t.Errorf("help: exit %d, output %q", code, stdout)
	}
	if code := a.run([]string{"frobnicate"}); code != 2 || !strings.Contains(stderr.String(), "unknown command") {
		t.Errorf("unknown command: exit %d, stderr %q", code, stderr)
	}
	if code := a.run([]string{"fmt"}); code != 2 {
		t.Errorf("fmt without files: exit %d", code)
	}
}

func TestNoArgsReadsPipedInput(t *testing.T) {
	a, stdout, _ := testApp(t, "(x:* x)")
	if code := a.run(nil); code != 0 {
		t.Fatalf("exit %d", code)
	}
	if got := stdout.String(); got != "(a:* a)\n" {
		t.Errorf("got %q", got)
	}
}

func TestBadDefinition(t *testing.T) {
	cfg := config.Default()
	cfg.Definitions = []config.Definition{{Name: "k", Source: "(a:* b)"}}
	if _, err := newApp(cfg, nil, io.Discard, io.Discard); err == nil {
		t.Error("expected an error for an open definition")
	}
}

type scriptedPrompter struct {
	lines   []string
	prompts []string
	history []string
}

func (s *scriptedPrompter) Prompt(prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

func (s *scriptedPrompter) AppendHistory(item string) {
	s.history = append(s.history, item)
}

func TestReplLoop(t *testing.T) {
	a, stdout, stderr := testApp(t, "", identityDef)
	p := &scriptedPrompter{lines: []string{
		"(f",
		"  (T:* (v:T v)))",
		":deps",
		")",
		":defs",
		":bogus",
	}}

	if code := a.replLoop(p); code != 0 {
		t.Fatalf("exit %d", code)
	}

	want := "(f id)\nf\nid = (a:* (a:a a))\nunknown command. Type :help for a list.\n\n"
	if stdout.String() != want {
		t.Errorf("output:\n%q\nwant:\n%q", stdout.String(), want)
	}
	if !strings.Contains(stderr.String(), "P003") {
		t.Errorf("stderr: %q", stderr)
	}
	if p.prompts[1] != promptCont {
		t.Errorf("second prompt: got %q, want continuation", p.prompts[1])
	}
	if len(p.history) != 2 || p.history[0] != "(f   (T:* (v:T v)))" {
		t.Errorf("history: %q", p.history)
	}
}

func TestReplQuit(t *testing.T) {
	a, stdout, _ := testApp(t, "")
	p := &scriptedPrompter{lines: []string{":quit", "(x:* x)"}}
	if code := a.replLoop(p); code != 0 {
		t.Fatalf("exit %d", code)
	}
	if stdout.Len() != 0 {
		t.Errorf("nothing should run after :quit, got %q", stdout)
	}
}

func TestAst(t *testing.T) {
	path := writeFile(t, "let.sol", "T=* (y:T y)\nz")
	a, stdout, _ := testApp(t, "")
	if code := a.run([]string{"ast", path}); code != 0 {
		t.Fatalf("exit %d", code)
	}
	want := "Let T\n  Universe\n  Lam y\n    Ref T\n    Ref y\nRef z\n"
	if got := stdout.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}
