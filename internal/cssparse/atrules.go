package cssparse

import (
	"strings"

	"github.com/gocssom/cssom/internal/csslex"
)

// parseMediaRule parses '@media' media-query-list '{' rule* '}'.
func (p *Parser) parseMediaRule() *CSTNode {
	first := p.cur
	p.advance() // consume '@media'

	rule := NewNode(NMediaRule)
	rule.FirstToken = &first
	rule.Append(p.parseMediaQueryList(false))

	if p.cur.Kind != csslex.LBrace {
		if p.opts.BrowserCompliant {
			p.recoverToBalancedBrace("@media rule")
			return rule
		}
		p.fail("expected '{' to begin @media body")
	}
	p.advance()

	for p.cur.Kind != csslex.RBrace && !p.atEOF() {
		item := p.parseTopLevelItem(false)
		if item != nil {
			rule.Append(item)
		}
	}
	if p.cur.Kind == csslex.RBrace {
		p.advance()
	} else if p.opts.BrowserCompliant {
		p.recoverToBalancedBrace("@media rule")
	} else {
		p.fail("expected '}' to close @media body")
	}
	return rule
}

// parseMediaQueryList parses a comma-separated run of media queries. When
// allowEmpty is set (the @import position, where an absent media list
// means "all"), a leading ';' yields an empty list rather than an error.
func (p *Parser) parseMediaQueryList(allowEmpty bool) *CSTNode {
	list := NewNode(NMediaList)
	if allowEmpty && (p.cur.Kind == csslex.Semicolon || p.atEOF()) {
		return list
	}
	list.Append(p.parseMediaQuery())
	for p.cur.Kind == csslex.Comma {
		p.advance()
		list.Append(p.parseMediaQuery())
	}
	return list
}

// parseMediaQuery parses [only|not]? media-type (and media-expression)*,
// or a bare parenthesized media-expression list.
func (p *Parser) parseMediaQuery() *CSTNode {
	query := NewNode(NMediaQuery)

	if p.cur.Kind == csslex.Ident && (strings.EqualFold(p.cur.Image, "only") || strings.EqualFold(p.cur.Image, "not")) {
		query.Append(&CSTNode{Type: NIdent, Text: p.cur.Image, Value: "modifier"})
		p.advance()
	}

	if p.cur.Kind == csslex.Ident {
		query.Append(&CSTNode{Type: NIdent, Text: p.cur.Image, Value: "type"})
		p.advance()
		for p.cur.Kind == csslex.Ident && strings.EqualFold(p.cur.Image, "and") {
			p.advance()
			query.Append(p.parseMediaExpression())
		}
		return query
	}

	for p.cur.Kind == csslex.LParen {
		query.Append(p.parseMediaExpression())
		if p.cur.Kind == csslex.Ident && strings.EqualFold(p.cur.Image, "and") {
			p.advance()
			continue
		}
		if p.cur.Kind == csslex.Ident && strings.EqualFold(p.cur.Image, "or") {
			p.advance()
			continue
		}
		break
	}
	return query
}

// parseMediaExpression parses '(' feature [':' value]? ')'.
func (p *Parser) parseMediaExpression() *CSTNode {
	first := p.cur
	p.advance() // consume '('
	expr := NewNode(NMediaExpression)
	expr.FirstToken = &first

	if p.cur.Kind != csslex.Ident {
		if p.opts.BrowserCompliant {
			p.recoverToSemiOrBrace("media feature")
			return expr
		}
		p.fail("expected a media feature name")
	}
	expr.Text = p.cur.Image
	p.advance()

	if p.cur.Kind == csslex.Colon {
		p.advance()
		expr.Append(p.parseExpressionMember())
	}

	if p.cur.Kind == csslex.RParen {
		p.advance()
	} else if p.opts.BrowserCompliant {
		p.recoverToSemiOrBrace("media feature")
	} else {
		p.fail("expected ')' to close media feature")
	}
	return expr
}

// parseSupportsRule parses '@supports' supports-condition '{' rule* '}'.
func (p *Parser) parseSupportsRule() *CSTNode {
	first := p.cur
	p.advance() // consume '@supports'

	rule := NewNode(NSupportsRule)
	rule.FirstToken = &first
	rule.Append(p.parseSupportsCondition())

	if p.cur.Kind != csslex.LBrace {
		if p.opts.BrowserCompliant {
			p.recoverToBalancedBrace("@supports rule")
			return rule
		}
		p.fail("expected '{' to begin @supports body")
	}
	p.advance()

	for p.cur.Kind != csslex.RBrace && !p.atEOF() {
		item := p.parseTopLevelItem(false)
		if item != nil {
			rule.Append(item)
		}
	}
	if p.cur.Kind == csslex.RBrace {
		p.advance()
	} else if p.opts.BrowserCompliant {
		p.recoverToBalancedBrace("@supports rule")
	} else {
		p.fail("expected '}' to close @supports body")
	}
	return rule
}

// parseSupportsCondition parses the recursive not/and/or condition grammar
// of CSS Conditional Rules 3 §3.
func (p *Parser) parseSupportsCondition() *CSTNode {
	if p.cur.Kind == csslex.Ident && strings.EqualFold(p.cur.Image, "not") {
		p.advance()
		neg := NewNode(NSupportsNegation)
		neg.Append(p.parseSupportsConditionInParens())
		return neg
	}
	cond := p.parseSupportsConditionInParens()
	if p.cur.Kind == csslex.Ident && (strings.EqualFold(p.cur.Image, "and") || strings.EqualFold(p.cur.Image, "or")) {
		op := strings.ToLower(p.cur.Image)
		group := NewNode(NSupportsCondition)
		group.Value = op
		group.Append(cond)
		for p.cur.Kind == csslex.Ident && strings.EqualFold(p.cur.Image, op) {
			p.advance()
			group.Append(p.parseSupportsConditionInParens())
		}
		return group
	}
	return cond
}

func (p *Parser) parseSupportsConditionInParens() *CSTNode {
	if p.cur.Kind != csslex.LParen {
		if p.opts.BrowserCompliant {
			return NewNode(NSupportsCondition)
		}
		p.fail("expected '(' to begin a supports condition")
	}
	p.advance()

	if p.cur.Kind == csslex.Ident && strings.EqualFold(p.cur.Image, "not") {
		return p.closeParenSupports(func() *CSTNode {
			p.advance()
			neg := NewNode(NSupportsNegation)
			neg.Append(p.parseSupportsConditionInParens())
			return neg
		})
	}

	// Disambiguate a nested condition "((...) and (...))" from a feature
	// test "(prop: value)" by checking whether another '(' follows directly.
	if p.cur.Kind == csslex.LParen {
		return p.closeParenSupports(p.parseSupportsCondition)
	}

	decl := NewNode(NSupportsDeclaration)
	if p.cur.Kind != csslex.Ident {
		if p.opts.BrowserCompliant {
			return p.closeParenSupports(func() *CSTNode { return decl })
		}
		p.fail("expected a property name in supports condition")
	}
	decl.Text = p.cur.Image
	p.advance()
	if p.cur.Kind == csslex.Colon {
		p.advance()
		decl.Append(p.parseExpressionMember())
	}
	return p.closeParenSupports(func() *CSTNode { return decl })
}

func (p *Parser) closeParenSupports(inner func() *CSTNode) *CSTNode {
	node := inner()
	if p.cur.Kind == csslex.RParen {
		p.advance()
	} else if p.opts.BrowserCompliant {
		p.recoverToSemiOrBrace("supports condition")
	} else {
		p.fail("expected ')' to close supports condition")
	}
	return node
}

// parseLayerRule parses both statement form ('@layer a, b;') and block
// form ('@layer a { ... }' or the anonymous '@layer { ... }').
func (p *Parser) parseLayerRule() *CSTNode {
	first := p.cur
	p.advance() // consume '@layer'

	rule := NewNode(NLayerRule)
	rule.FirstToken = &first

	names := NewNode(NLayerNameList)
	if p.cur.Kind == csslex.Ident {
		names.Append(&CSTNode{Type: NIdent, Text: p.cur.Image})
		p.advance()
		for p.cur.Kind == csslex.Comma {
			p.advance()
			if p.cur.Kind == csslex.Ident {
				names.Append(&CSTNode{Type: NIdent, Text: p.cur.Image})
				p.advance()
			}
		}
	}
	rule.Append(names)

	switch p.cur.Kind {
	case csslex.Semicolon:
		p.advance()
		return rule
	case csslex.LBrace:
		p.advance()
		for p.cur.Kind != csslex.RBrace && !p.atEOF() {
			item := p.parseTopLevelItem(false)
			if item != nil {
				rule.Append(item)
			}
		}
		if p.cur.Kind == csslex.RBrace {
			p.advance()
		} else if p.opts.BrowserCompliant {
			p.recoverToBalancedBrace("@layer rule")
		} else {
			p.fail("expected '}' to close @layer body")
		}
		return rule
	default:
		if p.opts.BrowserCompliant {
			p.recoverToSemiOrBrace("@layer rule")
			return rule
		}
		p.fail("expected ';' or '{' after @layer name list")
		return rule
	}
}

// parseKeyframesRule parses '@keyframes' name '{' (selector-list '{' decls '}')* '}'.
func (p *Parser) parseKeyframesRule() *CSTNode {
	first := p.cur
	p.advance() // consume '@keyframes'/'@-webkit-keyframes'/...

	rule := NewNode(NKeyframesRule)
	rule.FirstToken = &first

	if p.cur.Kind == csslex.Ident || p.cur.Kind == csslex.String {
		rule.Text = p.cur.Image
		p.advance()
	} else if !p.opts.BrowserCompliant {
		p.fail("expected a keyframes animation name")
	}

	if p.cur.Kind != csslex.LBrace {
		if p.opts.BrowserCompliant {
			p.recoverToBalancedBrace("@keyframes rule")
			return rule
		}
		p.fail("expected '{' to begin @keyframes body")
	}
	p.advance()

	for p.cur.Kind != csslex.RBrace && !p.atEOF() {
		rule.Append(p.parseKeyframeBlock())
	}
	if p.cur.Kind == csslex.RBrace {
		p.advance()
	} else if p.opts.BrowserCompliant {
		p.recoverToBalancedBrace("@keyframes rule")
	} else {
		p.fail("expected '}' to close @keyframes body")
	}
	return rule
}

func (p *Parser) parseKeyframeBlock() *CSTNode {
	selectors := NewNode(NKeyframeSelectorList)
	selectors.Append(p.parseKeyframeSelector())
	for p.cur.Kind == csslex.Comma {
		p.advance()
		selectors.Append(p.parseKeyframeSelector())
	}

	if p.cur.Kind != csslex.LBrace {
		if p.opts.BrowserCompliant {
			p.recoverToBalancedBrace("keyframe block")
			return selectors
		}
		p.fail("expected '{' to begin a keyframe block")
	}
	p.advance()
	decls := p.parseDeclarationList()
	if p.cur.Kind == csslex.RBrace {
		p.advance()
	} else if p.opts.BrowserCompliant {
		p.recoverToBalancedBrace("keyframe block")
	} else {
		p.fail("expected '}' to close a keyframe block")
	}

	block := NewNode(NStyleRule, selectors, decls)
	return block
}

func (p *Parser) parseKeyframeSelector() *CSTNode {
	switch {
	case p.cur.Kind == csslex.Percentage:
		n := &CSTNode{Type: NIdent, Text: p.cur.Image}
		p.advance()
		return n
	case p.cur.Kind == csslex.Ident:
		n := &CSTNode{Type: NIdent, Text: p.cur.Image}
		p.advance()
		return n
	default:
		if p.opts.BrowserCompliant {
			return &CSTNode{Type: NIdent}
		}
		p.fail("expected a keyframe selector (a percentage, 'from', or 'to')")
		return nil
	}
}

// parsePageRule parses '@page' page-selector? '{' (declaration | margin-box)* '}'.
func (p *Parser) parsePageRule() *CSTNode {
	first := p.cur
	p.advance() // consume '@page'

	rule := NewNode(NPageRule)
	rule.FirstToken = &first

	sel := NewNode(NPageSelector)
	if p.cur.Kind == csslex.Ident {
		sel.Text = p.cur.Image
		p.advance()
	}
	for p.cur.Kind == csslex.Colon {
		p.advance()
		if p.cur.Kind == csslex.Ident {
			sel.Append(&CSTNode{Type: NIdent, Text: p.cur.Image})
			p.advance()
		}
	}
	rule.Append(sel)

	if p.cur.Kind != csslex.LBrace {
		if p.opts.BrowserCompliant {
			p.recoverToBalancedBrace("@page rule")
			return rule
		}
		p.fail("expected '{' to begin @page body")
	}
	p.advance()

	for p.cur.Kind != csslex.RBrace && !p.atEOF() {
		if p.cur.Kind == csslex.AtKeyword {
			rule.Append(p.parsePageMarginBox())
			continue
		}
		for p.cur.Kind == csslex.Semicolon {
			p.advance()
		}
		if p.cur.Kind == csslex.RBrace || p.atEOF() {
			break
		}
		decl := p.parseDeclaration()
		if decl != nil {
			rule.Append(decl)
		}
		if p.cur.Kind != csslex.Semicolon && p.cur.Kind != csslex.RBrace && !p.atEOF() {
			if p.opts.BrowserCompliant {
				p.recoverToSemiOrBrace("@page declaration")
			} else {
				p.fail("expected ';' or '}' after a @page declaration")
			}
		}
	}
	if p.cur.Kind == csslex.RBrace {
		p.advance()
	} else if p.opts.BrowserCompliant {
		p.recoverToBalancedBrace("@page rule")
	} else {
		p.fail("expected '}' to close @page body")
	}
	return rule
}

func (p *Parser) parsePageMarginBox() *CSTNode {
	first := p.cur
	box := NewNode(NPageMarginBox)
	box.Text = p.cur.Image
	box.FirstToken = &first
	p.advance()

	if p.cur.Kind != csslex.LBrace {
		if p.opts.BrowserCompliant {
			p.recoverToBalancedBrace("page margin box")
			return box
		}
		p.fail("expected '{' to begin a page margin box")
	}
	p.advance()
	box.Append(p.parseDeclarationList())
	if p.cur.Kind == csslex.RBrace {
		p.advance()
	} else if p.opts.BrowserCompliant {
		p.recoverToBalancedBrace("page margin box")
	} else {
		p.fail("expected '}' to close a page margin box")
	}
	return box
}

// parseFontFaceRule parses '@font-face' '{' declaration-list '}'. It is
// modeled as an NUnknownAtRule carrying a fixed name so the interpreter
// can special-case it without a dedicated CST node type.
func (p *Parser) parseFontFaceRule() *CSTNode {
	first := p.cur
	p.advance() // consume '@font-face'

	rule := NewNode(NUnknownAtRule)
	rule.Text = "font-face"
	rule.FirstToken = &first

	if p.cur.Kind != csslex.LBrace {
		if p.opts.BrowserCompliant {
			p.recoverToBalancedBrace("@font-face rule")
			return rule
		}
		p.fail("expected '{' to begin @font-face body")
	}
	p.advance()
	rule.Append(p.parseDeclarationList())
	if p.cur.Kind == csslex.RBrace {
		p.advance()
	} else if p.opts.BrowserCompliant {
		p.recoverToBalancedBrace("@font-face rule")
	} else {
		p.fail("expected '}' to close @font-face body")
	}
	return rule
}

// parseUnknownAtRule preserves forward-compatibility with at-rules this
// parser does not model: it captures the raw prelude and, if present, a
// balanced braced body, without interpreting either.
func (p *Parser) parseUnknownAtRule() *CSTNode {
	first := p.cur
	name := strings.TrimPrefix(p.cur.Image, "@")
	p.advance()

	rule := NewNode(NUnknownAtRule)
	rule.Text = name
	rule.FirstToken = &first

	prelude := NewNode(NExpression)
	for p.cur.Kind != csslex.LBrace && p.cur.Kind != csslex.Semicolon && !p.atEOF() {
		prelude.Append(&CSTNode{Type: NIdent, Text: p.cur.Image})
		p.advance()
	}
	rule.Append(prelude)

	if p.cur.Kind == csslex.Semicolon {
		p.advance()
		return rule
	}
	if p.cur.Kind == csslex.LBrace {
		depth := 0
		body := NewNode(NExpression)
		for {
			if p.atEOF() {
				break
			}
			if p.cur.Kind == csslex.LBrace {
				depth++
				if depth == 1 {
					p.advance()
					continue
				}
			} else if p.cur.Kind == csslex.RBrace {
				depth--
				if depth == 0 {
					p.advance()
					break
				}
			}
			body.Append(&CSTNode{Type: NIdent, Text: p.cur.Image})
			p.advance()
		}
		rule.Append(body)
	}
	return rule
}
