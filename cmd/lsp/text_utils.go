package main

import "unicode/utf8"

func getLine(content string, lineIndex int) string {
	start := 0
	currentLine := 0
	n := len(content)

	for i := 0; i < n; i++ {
		if content[i] == '\n' {
			if currentLine == lineIndex {
				return content[start:i]
			}
			start = i + 1
			currentLine++
		}
	}

	if currentLine == lineIndex {
		return content[start:]
	}

	return ""
}

// wordAt returns the identifier covering offset and where it starts. A
// cursor just past the end of a word still counts.
func wordAt(content string, offset int) (string, int) {
	if offset < 0 || offset > len(content) {
		return "", -1
	}
	if offset == len(content) || !isIdentifierChar(content[offset]) {
		if offset == 0 || !isIdentifierChar(content[offset-1]) {
			return "", -1
		}
		offset--
	}

	start := offset
	for start > 0 && isIdentifierChar(content[start-1]) {
		start--
	}
	end := offset
	for end < len(content) && isIdentifierChar(content[end]) {
		end++
	}
	return content[start:end], start
}

func isIdentifierChar(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9') || b == '_'
}

// offsetAt maps an LSP position to a byte offset. Characters are counted
// in runes, as the lexer counts columns.
func offsetAt(content string, pos Position) int {
	offset := 0
	for line := 0; line < pos.Line; line++ {
		next := len(getLine(content, line)) + 1
		if offset+next > len(content) {
			return len(content)
		}
		offset += next
	}
	lineStr := getLine(content, pos.Line)
	for i := 0; i < pos.Character && len(lineStr) > 0; i++ {
		_, w := utf8.DecodeRuneInString(lineStr)
		lineStr = lineStr[w:]
		offset += w
	}
	return offset
}

// positionAt maps a byte offset back to an LSP position.
func positionAt(content string, offset int) Position {
	if offset > len(content) {
		offset = len(content)
	}
	var pos Position
	for _, r := range content[:offset] {
		if r == '\n' {
			pos.Line++
			pos.Character = 0
		} else {
			pos.Character++
		}
	}
	return pos
}
