// Package sexpr tokenizes PDDL text into nested s-expression trees.
//
// The grammar is minimal: "(" opens a list, ")" closes it, ";" starts a
// line comment, and any other run of non-whitespace characters is an
// atom. PDDL is case-insensitive, so all input is lowercased before
// tokenizing.
package sexpr

import (
	"fmt"
	"io"
	"strings"
)

// Node is one element of a token tree: either an atom or a list of
// child nodes. Nodes are immutable after scanning.
type Node struct {
	// Atom is the token text. Empty for lists.
	Atom string

	// List holds child nodes. Nil for atoms.
	List []*Node

	// Line is the 1-based source line where the node started.
	Line int
}

// IsAtom reports whether the node is a bare token.
func (n *Node) IsAtom() bool { return n.List == nil }

// String renders the node back as an s-expression.
func (n *Node) String() string {
	if n.IsAtom() {
		return n.Atom
	}
	parts := make([]string, len(n.List))
	for i, c := range n.List {
		parts[i] = c.String()
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// SyntaxError reports unbalanced or stray parentheses with enough
// context to locate the fault in the input file.
type SyntaxError struct {
	File string
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	}
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Msg)
}

// Scanner produces token trees from a single input text. Each call to
// Next returns one top-level form; io.EOF signals end of input.
type Scanner struct {
	file string
	src  string
	pos  int
	line int
}

// NewScanner creates a scanner over text. The file name is only used
// in error messages.
func NewScanner(file, text string) *Scanner {
	return &Scanner{file: file, src: strings.ToLower(text), line: 1}
}

// Parse scans text that must contain exactly one top-level form.
func Parse(file, text string) (*Node, error) {
	s := NewScanner(file, text)
	root, err := s.Next()
	if err == io.EOF {
		return nil, &SyntaxError{File: file, Line: s.line, Msg: "empty input"}
	}
	if err != nil {
		return nil, err
	}
	if _, err := s.Next(); err != io.EOF {
		if err != nil {
			return nil, err
		}
		return nil, &SyntaxError{File: file, Line: s.line, Msg: "more than one top-level expression"}
	}
	return root, nil
}

// ParseAll scans every top-level form to end of input.
func ParseAll(file, text string) ([]*Node, error) {
	s := NewScanner(file, text)
	var nodes []*Node
	for {
		n, err := s.Next()
		if err == io.EOF {
			return nodes, nil
		}
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
}

// Next returns the next top-level form, or io.EOF when the input is
// exhausted. A form is either a single atom or a balanced list.
func (s *Scanner) Next() (*Node, error) {
	var stack []*Node
	for {
		tok, line, ok := s.token()
		if !ok {
			if len(stack) > 0 {
				return nil, &SyntaxError{File: s.file, Line: stack[len(stack)-1].Line, Msg: "missing close parenthesis"}
			}
			return nil, io.EOF
		}
		switch tok {
		case "(":
			stack = append(stack, &Node{List: []*Node{}, Line: line})
		case ")":
			if len(stack) == 0 {
				return nil, &SyntaxError{File: s.file, Line: line, Msg: "missing open parenthesis"}
			}
			done := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return done, nil
			}
			parent := stack[len(stack)-1]
			parent.List = append(parent.List, done)
		default:
			atom := &Node{Atom: tok, Line: line}
			if len(stack) == 0 {
				return atom, nil
			}
			parent := stack[len(stack)-1]
			parent.List = append(parent.List, atom)
		}
	}
}

// token returns the next lexical token, skipping whitespace and
// comments. The third result is false at end of input.
func (s *Scanner) token() (string, int, bool) {
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		switch {
		case c == '\n':
			s.line++
			s.pos++
		case c == ' ' || c == '\t' || c == '\r' || c == '\f':
			s.pos++
		case c == ';':
			for s.pos < len(s.src) && s.src[s.pos] != '\n' {
				s.pos++
			}
		case c == '(' || c == ')':
			s.pos++
			return string(c), s.line, true
		default:
			start := s.pos
			for s.pos < len(s.src) && !isDelimiter(s.src[s.pos]) {
				s.pos++
			}
			return s.src[start:s.pos], s.line, true
		}
	}
	return "", s.line, false
}

func isDelimiter(c byte) bool {
	switch c {
	case '(', ')', ';', ' ', '\t', '\r', '\n', '\f':
		return true
	}
	return false
}
