package cssparse

import (
	"strings"

	"github.com/gocssom/cssom/internal/charstream"
	"github.com/gocssom/cssom/internal/csslex"
)

// Options configures parsing behavior. It mirrors the reader-settings
// fields of spec.md §6 that affect the parser specifically.
type Options struct {
	BrowserCompliant        bool
	KeepDeprecatedProps     bool
	ErrorHandler            ErrorHandler
	CharstreamOptions       charstream.Options
}

// Parser is a single-threaded, synchronous, recursive-descent parser. One
// instance processes exactly one input end-to-end; it is not reused.
type Parser struct {
	lex  *csslex.Lexer
	opts Options

	cur            csslex.Token
	hadSpaceBefore bool
}

// New creates a Parser reading CSS text from src.
func New(src string, opts Options) *Parser {
	stream := charstream.NewFromString(src, opts.CharstreamOptions)
	p := &Parser{lex: csslex.New(stream), opts: opts}
	p.advance()
	return p
}

func (p *Parser) advance() {
	p.hadSpaceBefore = false
	for {
		p.cur = p.lex.Next()
		switch p.cur.Kind {
		case csslex.Whitespace:
			p.hadSpaceBefore = true
			continue
		case csslex.Comment:
			continue
		}
		return
	}
}

func (p *Parser) atEOF() bool {
	return p.cur.Kind == csslex.EOF
}

func (p *Parser) reportError(rec ParseErrorRecord) {
	if p.opts.ErrorHandler != nil {
		p.opts.ErrorHandler.OnParseError(rec)
	}
}

// fail raises a ParseException. In strict mode this always aborts the
// parse. In browser-compliant mode it is reserved for violations the
// recovery ladder cannot repair (e.g. @import or @namespace inside a
// conditional group rule).
func (p *Parser) fail(msg string) {
	exc := &ParseException{Message: msg, Token: p.cur}
	if p.opts.ErrorHandler != nil {
		p.opts.ErrorHandler.OnParseException(exc)
	}
	panic(fatalParseError{exc})
}

// recoverToSemiOrBrace implements the declaration-level half of the
// browser-compliant recovery ladder: skip to the next ';' or matching '}'
// at the current nesting depth, reporting the skipped range.
func (p *Parser) recoverToSemiOrBrace(context string) {
	first := p.cur
	last := first
	depth := 0
	for {
		if p.atEOF() {
			break
		}
		if p.cur.Kind == csslex.LBrace {
			depth++
		} else if p.cur.Kind == csslex.RBrace {
			if depth == 0 {
				break
			}
			depth--
		} else if p.cur.Kind == csslex.Semicolon && depth == 0 {
			last = p.cur
			p.advance()
			break
		}
		last = p.cur
		p.advance()
	}
	p.reportError(ParseErrorRecord{
		Message:      "malformed " + context + ", skipped to recovery point",
		Offending:    first,
		FirstSkipped: &first,
		LastSkipped:  &last,
	})
}

// recoverToBalancedBrace implements the rule-level half of the recovery
// ladder: skip to the next balanced '}' at the nesting depth active when
// the call began. A parse error inside a nested construct never cascades
// past the enclosing balanced brace.
func (p *Parser) recoverToBalancedBrace(context string) {
	first := p.cur
	last := first
	depth := 0
	for !p.atEOF() {
		if p.cur.Kind == csslex.LBrace {
			depth++
		} else if p.cur.Kind == csslex.RBrace {
			if depth == 0 {
				last = p.cur
				p.advance()
				break
			}
			depth--
		}
		last = p.cur
		p.advance()
	}
	p.reportError(ParseErrorRecord{
		Message:      "malformed " + context + ", skipped to enclosing brace",
		Offending:    first,
		FirstSkipped: &first,
		LastSkipped:  &last,
	})
}

func (p *Parser) expect(k csslex.Kind) (csslex.Token, bool) {
	if p.cur.Kind != k {
		return p.cur, false
	}
	tok := p.cur
	p.advance()
	return tok, true
}

// Parse runs the parser end-to-end and returns the stylesheet CST root, or
// nil if a fatal ParseException aborted the parse (strict mode, or an
// unrecoverable browser-compliant violation). The caller's error/exception
// handlers have already been invoked by the time Parse returns.
func Parse(src string, opts Options) (root *CSTNode) {
	p := New(src, opts)
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(fatalParseError); ok {
				root = nil
				return
			}
			panic(r)
		}
	}()
	root = p.parseStylesheet()
	return root
}

func (p *Parser) parseStylesheet() *CSTNode {
	sheet := NewNode(NStylesheet)
	for !p.atEOF() {
		if p.cur.Kind == csslex.CDO || p.cur.Kind == csslex.CDC {
			p.advance()
			continue
		}
		node := p.parseTopLevelItem(true)
		if node != nil {
			sheet.Append(node)
		}
	}
	return sheet
}

// parseTopLevelItem parses one item that may appear at stylesheet root or
// nested inside a conditional group rule. allowImportNamespace is false
// inside @media/@supports/@layer bodies, where @import/@namespace are a
// grammar violation (spec.md §4.3 "Nested rule containment").
func (p *Parser) parseTopLevelItem(allowImportNamespace bool) *CSTNode {
	if p.cur.Kind == csslex.AtKeyword {
		name := strings.ToLower(p.cur.Image)
		switch name {
		case "charset":
			return p.parseCharset()
		case "import":
			if !allowImportNamespace {
				p.fail("@import is not allowed inside a conditional group rule")
			}
			return p.parseImport()
		case "namespace":
			if !allowImportNamespace {
				p.fail("@namespace is not allowed inside a conditional group rule")
			}
			return p.parseNamespace()
		case "media":
			return p.parseMediaRule()
		case "supports":
			return p.parseSupportsRule()
		case "layer":
			return p.parseLayerRule()
		case "keyframes", "-webkit-keyframes", "-moz-keyframes":
			return p.parseKeyframesRule()
		case "page":
			return p.parsePageRule()
		case "font-face":
			return p.parseFontFaceRule()
		default:
			return p.parseUnknownAtRule()
		}
	}
	return p.parseStyleRule()
}

func (p *Parser) parseCharset() *CSTNode {
	first := p.cur
	p.advance() // consume '@charset'
	if p.cur.Kind != csslex.String {
		if p.opts.BrowserCompliant {
			p.recoverToSemiOrBrace("@charset rule")
			return nil
		}
		p.fail("expected a string after @charset")
	}
	node := NewNode(NCharset)
	node.Text = p.cur.Image
	node.FirstToken = &first
	p.advance()
	if p.cur.Kind == csslex.Semicolon {
		p.advance()
	} else if p.opts.BrowserCompliant {
		p.recoverToSemiOrBrace("@charset rule")
	} else {
		p.fail("expected ';' after @charset value")
	}
	return node
}

func (p *Parser) parseImport() *CSTNode {
	first := p.cur
	p.advance() // consume '@import'
	node := NewNode(NImport)
	node.FirstToken = &first

	switch p.cur.Kind {
	case csslex.String:
		uri := NewNode(NURI)
		uri.Text = p.cur.Image
		node.Append(uri)
		p.advance()
	case csslex.URL, csslex.Function:
		uriNode, ok := p.parseURITerm()
		if ok {
			node.Append(uriNode)
		}
	default:
		if p.opts.BrowserCompliant {
			p.recoverToSemiOrBrace("@import rule")
			return node
		}
		p.fail("expected a URL after @import")
	}

	if p.cur.Kind != csslex.Semicolon {
		mediaList := p.parseMediaQueryList(true)
		node.Append(mediaList)
	}

	if p.cur.Kind == csslex.Semicolon {
		p.advance()
	} else if p.opts.BrowserCompliant {
		p.recoverToSemiOrBrace("@import rule")
	} else {
		p.fail("expected ';' to terminate @import")
	}
	return node
}

func (p *Parser) parseNamespace() *CSTNode {
	first := p.cur
	p.advance() // consume '@namespace'
	node := NewNode(NNamespace)
	node.FirstToken = &first

	if p.cur.Kind == csslex.Ident {
		prefix := NewNode(NIdent)
		prefix.Text = p.cur.Image
		node.Append(prefix)
		p.advance()
	}

	switch p.cur.Kind {
	case csslex.String:
		uri := NewNode(NURI)
		uri.Text = p.cur.Image
		node.Append(uri)
		p.advance()
	case csslex.URL:
		node.Append(&CSTNode{Type: NURI, Text: p.cur.Image})
		p.advance()
	default:
		if p.opts.BrowserCompliant {
			p.recoverToSemiOrBrace("@namespace rule")
			return node
		}
		p.fail("expected a namespace URI")
	}

	if p.cur.Kind == csslex.Semicolon {
		p.advance()
	} else if p.opts.BrowserCompliant {
		p.recoverToSemiOrBrace("@namespace rule")
	} else {
		p.fail("expected ';' to terminate @namespace")
	}
	return node
}

// parseURITerm parses either a `url(...)` token (already fully lexed with
// its body resolved) or a `url("...")` function call whose argument is a
// string token.
func (p *Parser) parseURITerm() (*CSTNode, bool) {
	if p.cur.Kind == csslex.URL {
		n := &CSTNode{Type: NURI, Text: p.cur.Image}
		p.advance()
		return n, true
	}
	if p.cur.Kind == csslex.Function && strings.EqualFold(p.cur.Image, "url") {
		p.advance()
		if p.cur.Kind != csslex.String {
			return nil, false
		}
		n := &CSTNode{Type: NURI, Text: p.cur.Image}
		p.advance()
		if p.cur.Kind == csslex.RParen {
			p.advance()
		}
		return n, true
	}
	return nil, false
}
