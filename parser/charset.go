package parser

import (
	"strings"
	"unicode"
)

// escapes maps the character after the escape character to its text.
var escapes = map[rune]string{
	'\'': "'",
	'"':  `"`,
	'\\': `\`,
	'0':  "\x00",
	'a':  "\a",
	'b':  "\b",
	'f':  "\f",
	'n':  "\n",
	'r':  "\r",
	't':  "\t",
	'v':  "\v",
	'{':  "{",
	'}':  "}",
	':':  ":",
	'(':  "(",
	')':  ")",
	'|':  "|",
}

// charset holds the character classes of a parser.
type charset struct {
	selectorChars string
	operatorChars string
}

// isSelectorChar reports whether r may appear in a selector name.
func (c *charset) isSelectorChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' ||
		strings.ContainsRune(c.selectorChars, r)
}

// isOperatorChar reports whether r separates selectors.
func (c *charset) isOperatorChar(r rune) bool {
	switch r {
	case '.', '?', '[', ']':
		return true
	}
	return strings.ContainsRune(c.operatorChars, r)
}

// validOperator reports whether op may precede the selector at index.
func (c *charset) validOperator(op string, index int) bool {
	switch op {
	case "":
		return index == 0
	case "[", "?[":
		return true
	case ".", "?.":
		return index > 0
	}
	if c.operatorChars == "" || index == 0 {
		return false
	}
	for _, r := range op {
		if !strings.ContainsRune(c.operatorChars, r) {
			return false
		}
	}
	return true
}

// isIdentStart reports whether r can start a formatter name.
func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

// isIdentChar reports whether r can continue a formatter name.
func isIdentChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// isHex reports whether s is a string of hexadecimal digits.
func isHex(s string) bool {
	if s == "" {
		return false
	}
	for _, ch := range s {
		isDigit := ch >= '0' && ch <= '9'
		isLower := ch >= 'a' && ch <= 'f'
		isUpper := ch >= 'A' && ch <= 'F'
		if !isDigit && !isLower && !isUpper {
			return false
		}
	}
	return true
}
