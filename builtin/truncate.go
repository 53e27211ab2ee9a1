package builtin

import (
	"strings"
	"unicode/utf8"
)

// ellipsis marks removed text.
const ellipsis = "..."

// truncateStart keeps the last maxLen runes, ellipsis included.
func truncateStart(s string, maxLen int) string {
	n := utf8.RuneCountInString(s)
	if n <= maxLen {
		return s
	}
	runes := []rune(s)
	if maxLen <= len(ellipsis) {
		return string(runes[n-maxLen:])
	}
	return ellipsis + string(runes[n-maxLen+len(ellipsis):])
}

// truncateMiddle keeps the start and the end of s, ellipsis between.
func truncateMiddle(s string, maxLen int) string {
	n := utf8.RuneCountInString(s)
	if n <= maxLen {
		return s
	}
	runes := []rune(s)
	if maxLen <= len(ellipsis) {
		return string(runes[:maxLen])
	}
	keep := maxLen - len(ellipsis)
	head := (keep + 1) / 2
	tail := keep - head
	return string(runes[:head]) + ellipsis + string(runes[n-tail:])
}

// truncateSmart cuts at a sentence or word boundary in the second half of
// the allowed length, and falls back to a hard cut.
func truncateSmart(s string, maxLen int) string {
	n := utf8.RuneCountInString(s)
	if n <= maxLen {
		return s
	}
	if maxLen <= len(ellipsis) {
		return truncate(s, maxLen)
	}

	runes := []rune(s)
	breakPoint := maxLen - len(ellipsis)

	for i := breakPoint; i > maxLen/2; i-- {
		if runes[i] == '.' || runes[i] == '!' || runes[i] == '?' {
			return string(runes[:i+1])
		}
	}
	for i := breakPoint; i > maxLen/2; i-- {
		if runes[i] == ' ' || runes[i] == '\n' {
			return string(runes[:i]) + ellipsis
		}
	}
	return string(runes[:breakPoint]) + ellipsis
}

// truncateLines keeps the first maxLines lines.
func truncateLines(s string, maxLines int) string {
	if maxLines <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) <= maxLines {
		return s
	}
	return strings.Join(lines[:maxLines], "\n") + "\n" + ellipsis
}
