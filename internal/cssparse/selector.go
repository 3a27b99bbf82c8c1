package cssparse

import (
	"strings"

	"github.com/gocssom/cssom/internal/csslex"
)

// parseStyleRule parses a qualified rule: selector-list '{' declaration-list '}'.
func (p *Parser) parseStyleRule() *CSTNode {
	first := p.cur
	selList := p.parseSelectorList()

	if p.cur.Kind != csslex.LBrace {
		if p.opts.BrowserCompliant {
			p.recoverToBalancedBrace("style rule")
			return nil
		}
		p.fail("expected '{' to begin a declaration block")
	}
	p.advance() // consume '{'

	decls := p.parseDeclarationList()

	if p.cur.Kind == csslex.RBrace {
		p.advance()
	} else if p.opts.BrowserCompliant {
		p.recoverToBalancedBrace("style rule")
	} else {
		p.fail("expected '}' to close a declaration block")
	}

	rule := NewNode(NStyleRule, selList, decls)
	rule.FirstToken = &first
	return rule
}

// parseSelectorList parses a comma-separated list of complex selectors.
func (p *Parser) parseSelectorList() *CSTNode {
	list := NewNode(NSelectorList)
	list.Append(p.parseSelector())
	for p.cur.Kind == csslex.Comma {
		p.advance()
		list.Append(p.parseSelector())
	}
	return list
}

// parseSelector parses one complex selector: a chain of simple-selector
// sequences joined by combinators (descendant/>/+/~).
func (p *Parser) parseSelector() *CSTNode {
	sel := NewNode(NSelector)
	sel.Append(p.parseSimpleSelectorSequence())
	for {
		combinator := ""
		switch {
		case p.cur.Kind == csslex.Delim && (p.cur.Image == ">" || p.cur.Image == "+" || p.cur.Image == "~"):
			combinator = p.cur.Image
			p.advance()
		case p.hadSpaceBefore && p.startsSimpleSelector():
			combinator = " "
		default:
			return sel
		}
		if !p.startsSimpleSelector() {
			if p.opts.BrowserCompliant {
				return sel
			}
			p.fail("expected a selector after combinator")
		}
		next := p.parseSimpleSelectorSequence()
		next.Value = combinator
		sel.Append(next)
	}
}

func (p *Parser) startsSimpleSelector() bool {
	switch p.cur.Kind {
	case csslex.Ident, csslex.Hash, csslex.Colon, csslex.LBracket:
		return true
	case csslex.Delim:
		return p.cur.Image == "*" || p.cur.Image == "." || p.cur.Image == "|"
	}
	return false
}

// parseSimpleSelectorSequence parses a type/universal selector followed by
// any number of hash/class/attribute/pseudo qualifiers.
func (p *Parser) parseSimpleSelectorSequence() *CSTNode {
	first := p.cur
	seq := NewNode(NSimpleSelector)
	seq.FirstToken = &first

	switch {
	case p.cur.Kind == csslex.Delim && p.cur.Image == "*":
		seq.Text = "*"
		p.advance()
	case p.cur.Kind == csslex.Ident:
		seq.Text = p.cur.Image
		p.advance()
	default:
		seq.Text = ""
	}

	for {
		switch {
		case p.cur.Kind == csslex.Hash:
			n := &CSTNode{Type: NIdent, Text: p.cur.Image, Value: "#"}
			p.advance()
			seq.Append(n)
		case p.cur.Kind == csslex.Delim && p.cur.Image == ".":
			p.advance()
			if p.cur.Kind != csslex.Ident {
				if p.opts.BrowserCompliant {
					return seq
				}
				p.fail("expected a class name after '.'")
			}
			n := &CSTNode{Type: NIdent, Text: p.cur.Image, Value: "."}
			p.advance()
			seq.Append(n)
		case p.cur.Kind == csslex.LBracket:
			seq.Append(p.parseAttributeSelector())
		case p.cur.Kind == csslex.Colon:
			seq.Append(p.parsePseudo())
		default:
			return seq
		}
	}
}

// parseAttributeSelector parses '[' ident (op value)? ']'.
func (p *Parser) parseAttributeSelector() *CSTNode {
	first := p.cur
	p.advance() // consume '['
	node := NewNode(NAttributeSelector)
	node.FirstToken = &first

	if p.cur.Kind != csslex.Ident {
		if p.opts.BrowserCompliant {
			p.recoverToSemiOrBrace("attribute selector")
			return node
		}
		p.fail("expected an attribute name")
	}
	node.Text = p.cur.Image
	p.advance()

	if p.cur.Kind == csslex.Colon {
		// namespaced attribute: ns|attr — '|' lexes as Delim, not handled
		// here since the lexer never produces a colon here; kept for
		// forward compatibility with namespace-prefixed attributes.
	}

	op := ""
	switch {
	case p.cur.Kind == csslex.Delim && p.cur.Image == "=":
		op = "="
		p.advance()
	case p.cur.Kind == csslex.Delim && (p.cur.Image == "~" || p.cur.Image == "|" || p.cur.Image == "^" || p.cur.Image == "$" || p.cur.Image == "*"):
		opChar := p.cur.Image
		p.advance()
		if p.cur.Kind == csslex.Delim && p.cur.Image == "=" {
			op = opChar + "="
			p.advance()
		} else {
			if p.opts.BrowserCompliant {
				return node
			}
			p.fail("malformed attribute operator")
		}
	}
	if op != "" {
		node.Value = op
		switch p.cur.Kind {
		case csslex.String:
			node.Append(&CSTNode{Type: NString, Text: p.cur.Image})
			p.advance()
		case csslex.Ident:
			node.Append(&CSTNode{Type: NIdent, Text: p.cur.Image})
			p.advance()
		default:
			if !p.opts.BrowserCompliant {
				p.fail("expected attribute value")
			}
		}
	}

	if p.cur.Kind == csslex.RBracket {
		p.advance()
	} else if p.opts.BrowserCompliant {
		p.recoverToSemiOrBrace("attribute selector")
	} else {
		p.fail("expected ']' to close attribute selector")
	}
	return node
}

// pseudoFunctionsWithSelectorList enumerates the pseudo-class/element
// functions whose argument is itself a selector list rather than an
// opaque token run: the CSS 4 logical combinators plus the shadow-DOM
// pseudos that take a compound/complex selector argument.
var pseudoFunctionsWithSelectorList = map[string]bool{
	"not": true, "is": true, "where": true, "has": true,
	"host": true, "host-context": true, "slotted": true,
}

// parsePseudo parses ':' ['or '::'] ident, or ':' ident '(' ... ')'.
func (p *Parser) parsePseudo() *CSTNode {
	first := p.cur
	p.advance() // consume ':'
	doubleColon := false
	if p.cur.Kind == csslex.Colon {
		doubleColon = true
		p.advance()
	}

	node := NewNode(NPseudo)
	node.FirstToken = &first
	node.Value = doubleColon

	switch p.cur.Kind {
	case csslex.Ident:
		node.Text = p.cur.Image
		p.advance()
		return node
	case csslex.Function:
		name := strings.ToLower(p.cur.Image)
		node.Text = p.cur.Image
		p.advance()

		switch {
		case name == "nth-child" || name == "nth-last-child" || name == "nth-of-type" || name == "nth-last-of-type":
			node.Append(p.parseNth())
		case pseudoFunctionsWithSelectorList[name]:
			node.Append(p.parseSelectorList())
		default:
			node.Append(p.parseGenericFunctionArgs())
		}

		if p.cur.Kind == csslex.RParen {
			p.advance()
		} else if !p.opts.BrowserCompliant {
			p.fail("expected ')' to close pseudo-class function")
		}
		return node
	default:
		if p.opts.BrowserCompliant {
			return node
		}
		p.fail("expected a pseudo-class or pseudo-element name")
		return node
	}
}

// parseNth parses the An+B micro-syntax used by :nth-child() and friends,
// plus the CSS 4 "of <selector-list>" suffix.
func (p *Parser) parseNth() *CSTNode {
	node := NewNode(NNth)
	var sb strings.Builder
	for p.cur.Kind != csslex.RParen && !p.atEOF() {
		if p.cur.Kind == csslex.Ident && strings.EqualFold(p.cur.Image, "of") {
			p.advance()
			node.Text = sb.String()
			node.Append(p.parseSelectorList())
			return node
		}
		sb.WriteString(p.cur.Image)
		p.advance()
	}
	node.Text = sb.String()
	return node
}

// parseGenericFunctionArgs collects raw tokens until the matching ')',
// used for pseudo-class functions whose argument grammar this parser does
// not model explicitly (e.g. :lang(), :dir()).
func (p *Parser) parseGenericFunctionArgs() *CSTNode {
	node := NewNode(NExpression)
	for p.cur.Kind != csslex.RParen && !p.atEOF() {
		node.Append(&CSTNode{Type: NIdent, Text: p.cur.Image})
		p.advance()
	}
	return node
}
