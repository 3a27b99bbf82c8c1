package cssparse

import (
	"strings"

	"github.com/gocssom/cssom/internal/csslex"
)

// deprecatedPropertyPrefixes are IE6/7 hacks that leak a property past the
// property-name grammar. They are only accepted when KeepDeprecatedProps
// is set, matching spec.md's "keep_deprecated_properties" reader setting.
var deprecatedPropertyPrefixes = []string{"*", "_", "$"}

func deprecatedPrefixListed(pfx string) bool {
	for _, p := range deprecatedPropertyPrefixes {
		if p == pfx {
			return true
		}
	}
	return false
}

// parseDeclarationList parses a ';'-separated run of declarations, stopping
// at the first unmatched '}'. It is used both for style-rule bodies and
// for the more permissive bodies the interpreter validates afterward.
func (p *Parser) parseDeclarationList() *CSTNode {
	list := NewNode(NDeclarationList)
	for {
		for p.cur.Kind == csslex.Semicolon {
			p.advance()
		}
		if p.cur.Kind == csslex.RBrace || p.atEOF() {
			return list
		}
		decl := p.parseDeclaration()
		if decl != nil {
			list.Append(decl)
		}
		if p.cur.Kind == csslex.Semicolon {
			continue
		}
		if p.cur.Kind == csslex.RBrace || p.atEOF() {
			return list
		}
		if p.opts.BrowserCompliant {
			p.recoverToSemiOrBrace("declaration")
		} else {
			p.fail("expected ';' or '}' after a declaration")
		}
	}
}

// parseDeclaration parses ident ':' expression ('!' 'important')?, folding
// in the deprecated '*'/'_' property prefixes and custom-property names
// (those beginning with "--").
func (p *Parser) parseDeclaration() *CSTNode {
	first := p.cur

	prefix := ""
	if p.cur.Kind == csslex.Delim {
		for _, pfx := range deprecatedPropertyPrefixes {
			if p.cur.Image == pfx {
				prefix = pfx
				break
			}
		}
	}
	if prefix != "" {
		if !p.opts.KeepDeprecatedProps {
			if p.opts.BrowserCompliant {
				p.recoverToSemiOrBrace("declaration")
				return nil
			}
			p.fail("deprecated property prefix not permitted")
		}
		p.advance()
	}

	if p.cur.Kind != csslex.Ident {
		if p.opts.BrowserCompliant {
			p.recoverToSemiOrBrace("declaration")
			return nil
		}
		p.fail("expected a property name")
	}

	// "_" is a name-start code point (CSS Syntax §4.3), so a "_zoom" hack
	// survives tokenization as a single ident rather than a Delim("_") plus
	// Ident("zoom") the way "*"/"$" do. Split it off here instead.
	rawName := p.cur.Image
	if prefix == "" && strings.HasPrefix(rawName, "_") && deprecatedPrefixListed("_") {
		if !p.opts.KeepDeprecatedProps {
			if p.opts.BrowserCompliant {
				p.recoverToSemiOrBrace("declaration")
				return nil
			}
			p.fail("deprecated property prefix not permitted")
		}
		prefix = "_"
		rawName = strings.TrimPrefix(rawName, "_")
	}

	name := prefix + rawName
	isCustom := strings.HasPrefix(p.cur.Image, "--")
	p.advance()

	if p.cur.Kind != csslex.Colon {
		if p.opts.BrowserCompliant {
			p.recoverToSemiOrBrace("declaration")
			return nil
		}
		p.fail("expected ':' after property name")
	}
	p.advance()

	decl := NewNode(NDeclaration)
	decl.Text = name
	decl.Value = isCustom
	decl.FirstToken = &first

	expr := p.parseExpression(isCustom)
	decl.Append(expr)

	if p.cur.Kind == csslex.Delim && p.cur.Image == "!" {
		p.advance()
		if p.cur.Kind == csslex.Ident && strings.EqualFold(p.cur.Image, "important") {
			p.advance()
			decl.Append(NewNode(NImportant))
		} else if !p.opts.BrowserCompliant {
			p.fail("expected 'important' after '!'")
		}
	}
	return decl
}

// parseExpression parses a sequence of comma- and slash-separated value
// terms. When rawCustomProperty is set (a "--*" custom property), the
// value is collected as an opaque token run per spec.md's custom-property
// handling rather than interpreted through the term grammar.
func (p *Parser) parseExpression(rawCustomProperty bool) *CSTNode {
	expr := NewNode(NExpression)
	if rawCustomProperty {
		return p.parseRawValue(expr)
	}
	expr.Append(p.parseExpressionMember())
	for {
		switch {
		case p.cur.Kind == csslex.Comma:
			p.advance()
			m := p.parseExpressionMember()
			m.Value = ","
			expr.Append(m)
		case p.cur.Kind == csslex.Delim && p.cur.Image == "/":
			p.advance()
			m := p.parseExpressionMember()
			m.Value = "/"
			expr.Append(m)
		default:
			return expr
		}
	}
}

// parseRawValue collects tokens verbatim until ';', '!', or an unmatched
// '}', tracking brace/paren/bracket nesting so a custom property's value
// may itself contain balanced braces.
func (p *Parser) parseRawValue(expr *CSTNode) *CSTNode {
	depth := 0
	for {
		if p.atEOF() {
			return expr
		}
		if depth == 0 {
			if p.cur.Kind == csslex.Semicolon || p.cur.Kind == csslex.RBrace {
				return expr
			}
			if p.cur.Kind == csslex.Delim && p.cur.Image == "!" {
				return expr
			}
		}
		switch p.cur.Kind {
		case csslex.LBrace, csslex.LParen, csslex.LBracket:
			depth++
		case csslex.RBrace, csslex.RParen, csslex.RBracket:
			if depth == 0 {
				return expr
			}
			depth--
		}
		expr.Append(&CSTNode{Type: NIdent, Text: p.cur.Image})
		p.advance()
	}
}

// parseExpressionMember parses a run of adjacent value terms (whitespace-
// separated, e.g. "1px solid red") into a single NExpressionMember node.
func (p *Parser) parseExpressionMember() *CSTNode {
	member := NewNode(NExpressionMember)
	for p.startsTerm() {
		member.Append(p.parseTerm())
	}
	return member
}

func (p *Parser) startsTerm() bool {
	switch p.cur.Kind {
	case csslex.Ident, csslex.Function, csslex.String, csslex.URL,
		csslex.Number, csslex.Percentage, csslex.Dimension, csslex.Hash:
		return true
	case csslex.Delim:
		return p.cur.Image == "+" || p.cur.Image == "-" || p.cur.Image == "#"
	case csslex.LBracket:
		return true // grid-template-columns line-names: [col-start]
	}
	return false
}

// parseTerm parses one value term: a literal, a function call (including
// calc()), a hash color, or a bracketed line-names group.
func (p *Parser) parseTerm() *CSTNode {
	switch p.cur.Kind {
	case csslex.Number:
		n := &CSTNode{Type: NNumber, Text: p.cur.Image}
		p.advance()
		return n
	case csslex.Percentage:
		n := &CSTNode{Type: NNumber, Text: p.cur.Image, Value: "%"}
		p.advance()
		return n
	case csslex.Dimension:
		n := &CSTNode{Type: NNumber, Text: p.cur.NumericValue, Value: p.cur.Unit}
		p.advance()
		return n
	case csslex.String:
		n := &CSTNode{Type: NString, Text: p.cur.Image}
		p.advance()
		return n
	case csslex.Ident:
		n := &CSTNode{Type: NIdent, Text: p.cur.Image}
		p.advance()
		return n
	case csslex.Hash:
		n := &CSTNode{Type: NIdent, Text: p.cur.Image, Value: "#"}
		p.advance()
		return n
	case csslex.URL:
		n := &CSTNode{Type: NURI, Text: p.cur.Image}
		p.advance()
		return n
	case csslex.LBracket:
		return p.parseLineNames()
	case csslex.Function:
		name := strings.ToLower(p.cur.Image)
		if name == "calc" || name == "min" || name == "max" || name == "clamp" {
			return p.parseCalc()
		}
		return p.parseFunction()
	case csslex.Delim:
		sign := p.cur.Image
		p.advance()
		inner := p.parseTerm()
		inner.Text = sign + inner.Text
		return inner
	default:
		n := &CSTNode{Type: NIdent, Text: p.cur.Image}
		p.advance()
		return n
	}
}

// parseLineNames parses a grid-template '[' ident* ']' line-names group.
func (p *Parser) parseLineNames() *CSTNode {
	p.advance() // consume '['
	node := NewNode(NLineNames)
	for p.cur.Kind == csslex.Ident {
		node.Append(&CSTNode{Type: NIdent, Text: p.cur.Image})
		p.advance()
	}
	if p.cur.Kind == csslex.RBracket {
		p.advance()
	} else if !p.opts.BrowserCompliant {
		p.fail("expected ']' to close line-names group")
	}
	return node
}

// parseFunction parses name '(' arg-list ')' for an ordinary function call,
// where arg-list is a comma-separated run of expression members.
func (p *Parser) parseFunction() *CSTNode {
	node := NewNode(NFunction)
	node.Text = p.cur.Image
	p.advance() // consume 'name(' — the lexer folds the paren into the Function token

	if p.cur.Kind != csslex.RParen {
		node.Append(p.parseExpressionMember())
		for p.cur.Kind == csslex.Comma {
			p.advance()
			node.Append(p.parseExpressionMember())
		}
	}
	if p.cur.Kind == csslex.RParen {
		p.advance()
	} else if !p.opts.BrowserCompliant {
		p.fail("expected ')' to close function call")
	}
	return node
}

// parseCalc parses calc()/min()/max()/clamp() using the CSS Values 4
// grammar: calc() ::= calc-sum; a sum of products, where a product is a
// run of values joined by '*'/'/'.
func (p *Parser) parseCalc() *CSTNode {
	node := NewNode(NCalc)
	node.Text = p.cur.Image
	p.advance() // consume 'calc('

	node.Append(p.parseCalcSum())
	for p.cur.Kind == csslex.Comma {
		p.advance()
		node.Append(p.parseCalcSum())
	}

	if p.cur.Kind == csslex.RParen {
		p.advance()
	} else if !p.opts.BrowserCompliant {
		p.fail("expected ')' to close calc()")
	}
	return node
}

func (p *Parser) parseCalcSum() *CSTNode {
	sum := NewNode(NCalcSum)
	sum.Append(p.parseCalcProduct())
	for p.cur.Kind == csslex.Delim && (p.cur.Image == "+" || p.cur.Image == "-") {
		op := p.cur.Image
		p.advance()
		next := p.parseCalcProduct()
		next.Value = op
		sum.Append(next)
	}
	return sum
}

func (p *Parser) parseCalcProduct() *CSTNode {
	product := NewNode(NCalcProduct)
	product.Append(p.parseCalcValue())
	for p.cur.Kind == csslex.Delim && (p.cur.Image == "*" || p.cur.Image == "/") {
		op := p.cur.Image
		p.advance()
		next := p.parseCalcValue()
		next.Value = op
		product.Append(next)
	}
	return product
}

func (p *Parser) parseCalcValue() *CSTNode {
	if p.cur.Kind == csslex.Function && strings.EqualFold(p.cur.Image, "calc") {
		return p.parseCalc()
	}
	if p.cur.Kind == csslex.LParen {
		p.advance()
		inner := p.parseCalcSum()
		if p.cur.Kind == csslex.RParen {
			p.advance()
		} else if !p.opts.BrowserCompliant {
			p.fail("expected ')' in calc() subexpression")
		}
		return inner
	}
	return p.parseTerm()
}
