// Package parser implements the root driver: it turns raw native
// configuration text into a validated, canonically rendered document
// by walking the caller's composition models against the lexed tree.
package parser

import (
	"github.com/pkg/errors"

	"github.com/andaru/yangmap/document"
	"github.com/andaru/yangmap/mapping"
	"github.com/andaru/yangmap/maperr"
	"github.com/andaru/yangmap/native"
	"github.com/andaru/yangmap/yang"
)

// InitFunc transforms raw input into the native tree root. The
// default runs the native lexer with its default sentinels.
type InitFunc func(raw string) (*native.Node, error)

type root struct {
	name string
	comp *mapping.Node
}

// Parser maps native configuration onto a schema authority's
// document model using one composition per selected top level schema
// subtree.
//
// A Parser is immutable after New and safe for concurrent Process
// calls; each call owns a fresh mapping context.
type Parser struct {
	authority *yang.Authority
	init      InitFunc
	roots     []root
}

// Option is a Parser option function
type Option func(*Parser)

// WithRoot selects a top level schema subtree for processing: name is
// the fully qualified schema name the result is keyed by, comp the
// composition model populating it. Roots are processed in the order
// given.
func WithRoot(name string, comp *mapping.Node) Option {
	return func(p *Parser) { p.roots = append(p.roots, root{name: name, comp: comp}) }
}

// WithInit replaces the initialization hook transforming raw input
// into the native tree.
func WithInit(fn InitFunc) Option {
	return func(p *Parser) { p.init = fn }
}

// WithLexer sets the initialization hook to the native lexer with the
// given options.
func WithLexer(opts ...native.Option) Option {
	return WithInit(func(raw string) (*native.Node, error) {
		return native.Parse(raw, opts...)
	})
}

// New returns a Parser for the given schema authority.
func New(authority *yang.Authority, opts ...Option) *Parser {
	p := &Parser{
		authority: authority,
		init: func(raw string) (*native.Node, error) {
			return native.Parse(raw)
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Result is one successfully processed document.
type Result struct {
	// Doc is the assembled document, keyed by fully qualified
	// schema names.
	Doc *document.Doc
	// XML is the schema authority's canonical rendering of Doc.
	XML []byte
}

// Process runs the full pipeline over raw configuration text: lex,
// map each selected root, assemble, validate, render. Processing is
// fail fast; no partial result is returned. An absent root is simply
// omitted from the document.
func (p *Parser) Process(raw string) (*Result, error) {
	rootNative, err := p.init(raw)
	if err != nil {
		return nil, errors.Wrap(err, "initializing native tree")
	}
	ctx := mapping.NewContext(rootNative)

	doc := document.New()
	for _, r := range p.roots {
		ctx.Current = rootNative
		v, err := mapping.Map(r.comp, ctx)
		if maperr.IsAbsent(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		doc.Set(r.name, v)
	}

	if err := p.authority.Validate(doc); err != nil {
		return nil, err
	}
	rendered, err := p.authority.Render(doc)
	if err != nil {
		return nil, errors.Wrap(err, "rendering document")
	}
	return &Result{Doc: doc, XML: rendered}, nil
}
