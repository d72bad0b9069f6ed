// Package parser turns s-expression token trees into structured Domain
// and Problem values.
//
// Section dispatch goes through a registry: each top-level keyword
// (":types", ":predicates", ":action", ":init", ...) maps to a handler
// registered at construction time. The base parser registers only the
// propositional STRIPS subset (typing, negative preconditions,
// equality); extensions register additional handlers and requirement
// tokens without modifying the core.
package parser

import (
	"github.com/c360studio/stripsolve/pddl"
	"github.com/c360studio/stripsolve/pddl/sexpr"
)

// SupportedRequirements is the requirement subset the base parser
// accepts. Other tokens fail unless registered via WithRequirement.
var SupportedRequirements = []string{
	":strips",
	":typing",
	":negative-preconditions",
	":equality",
}

// DomainContext carries parsing state through domain section handlers.
type DomainContext struct {
	File   string
	Parser *Parser
	Domain *pddl.Domain

	// DeclaredTypes collects the names introduced by :types. Parameter
	// and object types are validated against this set (plus the
	// universal type) once all sections are parsed.
	DeclaredTypes map[string]struct{}

	// Constants records :constants declarations for post-parse type
	// validation, which cannot happen inline because :types may follow
	// :constants in the file.
	Constants []pddl.TypedName
}

// ProblemContext carries parsing state through problem section handlers.
type ProblemContext struct {
	File    string
	Parser  *Parser
	Domain  *pddl.Domain
	Problem *pddl.Problem
}

// DomainSectionHandler parses one domain section. The group is the
// section's token list with the leading keyword removed.
type DomainSectionHandler func(ctx *DomainContext, group []*sexpr.Node) error

// ProblemSectionHandler parses one problem section.
type ProblemSectionHandler func(ctx *ProblemContext, group []*sexpr.Node) error

// Parser parses PDDL domain and problem descriptions. The zero value
// is not usable; construct with New.
type Parser struct {
	domainSections  map[string]DomainSectionHandler
	problemSections map[string]ProblemSectionHandler
	requirements    map[string]struct{}
}

// Option customizes a Parser at construction.
type Option func(*Parser)

// WithRequirement accepts an additional :requirements token. The token
// is recorded on parsed domains but does not change base parsing
// behavior; pair it with section handlers that implement the extension.
func WithRequirement(req string) Option {
	return func(p *Parser) { p.requirements[req] = struct{}{} }
}

// WithDomainSection registers an extra domain section handler.
func WithDomainSection(keyword string, h DomainSectionHandler) Option {
	return func(p *Parser) { p.domainSections[keyword] = h }
}

// WithProblemSection registers an extra problem section handler.
func WithProblemSection(keyword string, h ProblemSectionHandler) Option {
	return func(p *Parser) { p.problemSections[keyword] = h }
}

// New creates a parser with the core section handlers registered.
func New(opts ...Option) *Parser {
	p := &Parser{
		domainSections:  make(map[string]DomainSectionHandler),
		problemSections: make(map[string]ProblemSectionHandler),
		requirements:    make(map[string]struct{}),
	}
	for _, r := range SupportedRequirements {
		p.requirements[r] = struct{}{}
	}

	p.domainSections["domain"] = parseDomainName
	p.domainSections[":requirements"] = parseRequirements
	p.domainSections[":types"] = parseTypes
	p.domainSections[":constants"] = parseConstants
	p.domainSections[":predicates"] = parsePredicates
	p.domainSections[":action"] = parseAction

	p.problemSections["problem"] = parseProblemName
	p.problemSections[":domain"] = parseDomainRef
	p.problemSections[":requirements"] = parseProblemRequirements
	p.problemSections[":objects"] = parseObjects
	p.problemSections[":init"] = parseInit
	p.problemSections[":goal"] = parseGoal

	for _, opt := range opts {
		opt(p)
	}
	return p
}

// RegisterDomainSection adds or replaces a domain section handler.
func (p *Parser) RegisterDomainSection(keyword string, h DomainSectionHandler) {
	p.domainSections[keyword] = h
}

// RegisterProblemSection adds or replaces a problem section handler.
func (p *Parser) RegisterProblemSection(keyword string, h ProblemSectionHandler) {
	p.problemSections[keyword] = h
}

// ParseDomain tokenizes and parses one domain description. The file
// name is used only for error context.
func (p *Parser) ParseDomain(file, text string) (*pddl.Domain, error) {
	root, err := sexpr.Parse(file, text)
	if err != nil {
		return nil, err
	}
	return p.ParseDomainNode(file, root)
}

// ParseDomainNode parses a domain from an already-scanned token tree
// rooted at (define (domain NAME) ...).
func (p *Parser) ParseDomainNode(file string, root *sexpr.Node) (*pddl.Domain, error) {
	groups, err := defineGroups(file, root)
	if err != nil {
		return nil, err
	}

	ctx := &DomainContext{
		File:          file,
		Parser:        p,
		Domain:        &pddl.Domain{Types: pddl.NewHierarchy()},
		DeclaredTypes: make(map[string]struct{}),
	}
	for _, group := range groups {
		keyword := group.List[0].Atom
		handler, ok := p.domainSections[keyword]
		if !ok {
			return nil, parseErrf(file, keyword, group.Line, "unknown domain section")
		}
		if err := handler(ctx, group.List[1:]); err != nil {
			return nil, err
		}
	}
	if ctx.Domain.Name == "" {
		return nil, parseErrf(file, "", root.Line, "missing (domain NAME) declaration")
	}
	if err := validateDomain(ctx); err != nil {
		return nil, err
	}
	return ctx.Domain, nil
}

// ParseProblem tokenizes and parses one problem instance against an
// already-parsed domain.
func (p *Parser) ParseProblem(d *pddl.Domain, file, text string) (*pddl.Problem, error) {
	root, err := sexpr.Parse(file, text)
	if err != nil {
		return nil, err
	}
	return p.ParseProblemNode(d, file, root)
}

// ParseProblemNode parses a problem from an already-scanned token tree
// rooted at (define (problem NAME) ...).
func (p *Parser) ParseProblemNode(d *pddl.Domain, file string, root *sexpr.Node) (*pddl.Problem, error) {
	groups, err := defineGroups(file, root)
	if err != nil {
		return nil, err
	}

	ctx := &ProblemContext{
		File:   file,
		Parser: p,
		Domain: d,
		Problem: &pddl.Problem{
			Objects: d.Types.Clone(),
			Init:    pddl.NewState(),
		},
	}
	for _, group := range groups {
		keyword := group.List[0].Atom
		handler, ok := p.problemSections[keyword]
		if !ok {
			return nil, parseErrf(file, keyword, group.Line, "unknown problem section")
		}
		if err := handler(ctx, group.List[1:]); err != nil {
			return nil, err
		}
	}
	if ctx.Problem.Name == "" {
		return nil, parseErrf(file, "", root.Line, "missing (problem NAME) declaration")
	}
	return ctx.Problem, nil
}

// defineGroups checks the (define ...) shell and returns the section
// groups. Every group must be a list with a leading keyword atom.
func defineGroups(file string, root *sexpr.Node) ([]*sexpr.Node, error) {
	if root.IsAtom() || len(root.List) == 0 || !root.List[0].IsAtom() || root.List[0].Atom != "define" {
		return nil, parseErrf(file, "", root.Line, "expected (define ...) form")
	}
	groups := root.List[1:]
	for _, g := range groups {
		if g.IsAtom() || len(g.List) == 0 || !g.List[0].IsAtom() {
			return nil, parseErrf(file, "", g.Line, "expected a (keyword ...) section, got %s", g.String())
		}
	}
	return groups, nil
}
