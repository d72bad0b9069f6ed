package parser

import "fmt"

// ParseError reports a malformed domain or problem section. File and
// Section locate the fault; Line is the source line of the offending
// token when known.
type ParseError struct {
	File    string
	Section string
	Line    int
	Msg     string
}

func (e *ParseError) Error() string {
	loc := e.File
	if e.Line > 0 {
		loc = fmt.Sprintf("%s:%d", e.File, e.Line)
	}
	if e.Section != "" {
		return fmt.Sprintf("%s: %s: %s", loc, e.Section, e.Msg)
	}
	return fmt.Sprintf("%s: %s", loc, e.Msg)
}

func parseErrf(file, section string, line int, format string, args ...any) error {
	return &ParseError{File: file, Section: section, Line: line, Msg: fmt.Sprintf(format, args...)}
}
