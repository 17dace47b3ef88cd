package main

import (
	"log"
	"os"

	"github.com/funvibe/sol/internal/config"
	"github.com/funvibe/sol/internal/definitions"
)

func main() {
	log.SetFlags(0)          // Disable timestamp in logs
	log.SetOutput(os.Stderr) // Log to stderr, not stdout (stdout is for LSP protocol)

	catalog := definitions.New()
	if wd, err := os.Getwd(); err == nil {
		cfg, err := config.LoadFrom(wd)
		if err != nil {
			log.Printf("Ignoring configuration: %v", err)
		} else if c, err := definitions.FromConfig(cfg); err != nil {
			log.Printf("Ignoring definitions: %v", err)
		} else {
			catalog = c
		}
	}

	server := NewLanguageServer(os.Stdout, catalog)
	server.Start(os.Stdin)
	os.Exit(server.ExitCode())
}

// findMatchingOpener finds the position of the matching opening bracket for a closing bracket at closePos.
// Returns -1 if not found.
func findMatchingOpener(content string, closePos int) int {
	if closePos < 0 || closePos >= len(content) || content[closePos] != ')' {
		return -1
	}
	depth := 0
	for i := closePos; i >= 0; i-- {
		switch content[i] {
		case ')':
			depth++
		case '(':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
