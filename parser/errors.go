package parser

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSyntax is matched by every *Errors value.
var ErrSyntax = errors.New("template syntax error")

// Issue classifies a parse error.
type Issue int

const (
	// IssueMissingClosingBrace is an unterminated placeholder.
	IssueMissingClosingBrace Issue = iota + 1

	// IssueTooManyClosingBraces is a '}' outside any placeholder.
	IssueTooManyClosingBraces

	// IssueInvalidSelectorChar is a character not allowed in a selector.
	IssueInvalidSelectorChar

	// IssueInvalidOperator is a misplaced or unknown selector operator.
	IssueInvalidOperator

	// IssueInvalidAlignment is an alignment that is not an integer.
	IssueInvalidAlignment
)

var issueMessages = map[Issue]string{
	IssueMissingClosingBrace:  "format string is missing a closing brace",
	IssueTooManyClosingBraces: "format string has too many closing braces",
	IssueInvalidSelectorChar:  "invalid character in the selector",
	IssueInvalidOperator:      "invalid selector operator",
	IssueInvalidAlignment:     "alignment must be an integer",
}

// String returns the issue description.
func (i Issue) String() string {
	if msg, ok := issueMessages[i]; ok {
		return msg
	}
	return fmt.Sprintf("issue(%d)", int(i))
}

// Error is one parse issue.
type Error struct {
	Position int   // Offset in the template
	Issue    Issue // Issue kind
	Message  string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s at position %d", e.Message, e.Position)
}

// Is reports ErrSyntax.
func (e *Error) Is(target error) bool {
	return target == ErrSyntax
}

// Errors collects the issues found in one template.
type Errors struct {
	Template string
	Issues   []*Error
}

// Error implements the error interface.
func (e *Errors) Error() string {
	msgs := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		msgs[i] = issue.Error()
	}
	return fmt.Sprintf("template %q has %d issue(s): %s", e.Template, len(e.Issues), strings.Join(msgs, "; "))
}

// Is reports ErrSyntax.
func (e *Errors) Is(target error) bool {
	return target == ErrSyntax
}

// HasIssues reports whether any issue was recorded.
func (e *Errors) HasIssues() bool {
	return e != nil && len(e.Issues) > 0
}

// First returns the first issue, or nil.
func (e *Errors) First() *Error {
	if !e.HasIssues() {
		return nil
	}
	return e.Issues[0]
}

func (e *Errors) add(pos int, issue Issue, detail string) *Error {
	msg := issue.String()
	if detail != "" {
		msg += ": " + detail
	}
	err := &Error{Position: pos, Issue: issue, Message: msg}
	e.Issues = append(e.Issues, err)
	return err
}
