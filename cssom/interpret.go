package cssom

import (
	"strconv"
	"strings"

	"github.com/gocssom/cssom/internal/cssparse"
)

// interpreter walks a cssparse CST and builds a CascadingStyleSheet,
// applying the shape checks spec.md §4.4 enumerates and routing
// diagnostics sideways to the injected handler rather than failing the
// whole pass.
type interpreter struct {
	parseID           string
	handler           InterpretErrorHandler
	useSourceLocation bool
	validator         PropertyValidator

	sawCharset bool
}

func newInterpreter(parseID string, handler InterpretErrorHandler, useSourceLocation bool, validator PropertyValidator) *interpreter {
	if handler == nil {
		handler = DiscardErrorHandler{}
	}
	return &interpreter{parseID: parseID, handler: handler, useSourceLocation: useSourceLocation, validator: validator}
}

func (in *interpreter) warn(node *cssparse.CSTNode, msg string) {
	in.handler.OnCSSInterpretationWarning(InterpretationMessage{ParseID: in.parseID, Message: msg, Node: node})
}

func (in *interpreter) fail(node *cssparse.CSTNode, msg string) {
	in.handler.OnCSSInterpretationError(InterpretationMessage{ParseID: in.parseID, Message: msg, Node: node})
	panic(interpretFatal{msg})
}

// interpretFatal unwinds an unrecoverable shape violation (spec.md §4.4's
// "Interpretation error ... then raised as a fatal interpretation error")
// back to Interpret, mirroring fatalParseError in cssparse.
type interpretFatal struct{ msg string }

func (in *interpreter) loc(n *cssparse.CSTNode) *SourceLocation {
	if !in.useSourceLocation || n == nil || n.FirstToken == nil {
		return nil
	}
	last := n.LastToken
	if last == nil {
		last = n.FirstToken
	}
	return &SourceLocation{
		BeginLine: n.FirstToken.BeginLine, BeginCol: n.FirstToken.BeginCol,
		EndLine: last.EndLine, EndCol: last.EndCol,
	}
}

// Interpret walks root and returns the built stylesheet, or nil if an
// unrecoverable shape error aborted interpretation (the handler has
// already been called).
func Interpret(root *cssparse.CSTNode, parseID string, handler InterpretErrorHandler, useSourceLocation bool, validator PropertyValidator) (sheet *CascadingStyleSheet) {
	in := newInterpreter(parseID, handler, useSourceLocation, validator)
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(interpretFatal); ok {
				sheet = nil
				return
			}
			panic(r)
		}
	}()
	return in.stylesheet(root)
}

func (in *interpreter) stylesheet(root *cssparse.CSTNode) *CascadingStyleSheet {
	sheet := &CascadingStyleSheet{Location: in.loc(root)}
	sawNonImportNamespace := false
	for _, child := range root.Children {
		switch child.Type {
		case cssparse.NCharset:
			if in.sawCharset {
				in.warn(child, "duplicate @charset rule ignored")
				continue
			}
			in.sawCharset = true
			sheet.Charset = child.Text
		case cssparse.NImport:
			if sawNonImportNamespace {
				in.warn(child, "@import after other rules is out of order")
			}
			sheet.Imports = append(sheet.Imports, in.importRule(child))
		case cssparse.NNamespace:
			if sawNonImportNamespace {
				in.warn(child, "@namespace after other rules is out of order")
			}
			sheet.Namespaces = append(sheet.Namespaces, in.namespaceRule(child))
		default:
			sawNonImportNamespace = true
			if r := in.topLevelRule(child); r != nil {
				sheet.Rules = append(sheet.Rules, r)
			}
		}
	}
	return sheet
}

func (in *interpreter) importRule(n *cssparse.CSTNode) *CSSImportRule {
	r := &CSSImportRule{Location: in.loc(n)}
	if n.Arity() > 2 {
		in.warn(n, "@import rule has unexpected extra children")
	}
	if c := n.Child(0); c != nil && c.Type == cssparse.NURI {
		r.URI = c.Text
	} else if n.Text != "" {
		r.URI = n.Text
	}
	if r.URI == "" {
		in.warn(n, "@import rule has no URI")
	}
	if c := n.Child(1); c != nil && c.Type == cssparse.NMediaList {
		r.Media = in.mediaList(c)
	}
	return r
}

func (in *interpreter) namespaceRule(n *cssparse.CSTNode) *CSSNamespaceRule {
	r := &CSSNamespaceRule{Location: in.loc(n)}
	idx := 0
	if c := n.Child(0); c != nil && c.Type == cssparse.NIdent {
		r.Prefix = c.Text
		idx = 1
	}
	if c := n.Child(idx); c != nil {
		r.URI = c.Text
	}
	return r
}

func (in *interpreter) topLevelRule(n *cssparse.CSTNode) *TopLevelRule {
	switch n.Type {
	case cssparse.NStyleRule:
		return &TopLevelRule{Type: RuleStyle, Location: in.loc(n), Style: in.styleRule(n)}
	case cssparse.NMediaRule:
		return &TopLevelRule{Type: RuleMedia, Location: in.loc(n), Media: in.mediaRule(n)}
	case cssparse.NSupportsRule:
		return &TopLevelRule{Type: RuleSupports, Location: in.loc(n), Supports: in.supportsRule(n)}
	case cssparse.NLayerRule:
		return &TopLevelRule{Type: RuleLayer, Location: in.loc(n), Layer: in.layerRule(n)}
	case cssparse.NKeyframesRule:
		kr := in.keyframesRule(n)
		if kr == nil {
			return nil
		}
		return &TopLevelRule{Type: RuleKeyframes, Location: in.loc(n), Keyframes: kr}
	case cssparse.NPageRule:
		return &TopLevelRule{Type: RulePage, Location: in.loc(n), Page: in.pageRule(n)}
	case cssparse.NUnknownAtRule:
		if n.Text == "font-face" {
			return &TopLevelRule{Type: RuleFontFace, Location: in.loc(n), FontFace: in.fontFaceRule(n)}
		}
		return &TopLevelRule{Type: RuleUnknown, Location: in.loc(n), Unknown: in.unknownRule(n)}
	default:
		in.warn(n, "unrecognized top-level construct skipped")
		return nil
	}
}

func (in *interpreter) styleRule(n *cssparse.CSTNode) *CSSStyleRule {
	r := &CSSStyleRule{Location: in.loc(n)}
	if c := n.Child(0); c != nil {
		if c.Type == cssparse.NSelectorList {
			r.Selectors = in.selectorList(c)
		} else if c.Type == cssparse.NKeyframeSelectorList {
			// keyframe blocks are modeled with NStyleRule too; callers
			// that need keyframe selectors go through keyframesRule.
		}
	}
	if c := n.Child(1); c != nil && c.Type == cssparse.NDeclarationList {
		r.Declarations = in.declarationList(c)
	}
	return r
}

func (in *interpreter) fontFaceRule(n *cssparse.CSTNode) *CSSFontFaceRule {
	r := &CSSFontFaceRule{Location: in.loc(n)}
	if c := n.Child(0); c != nil && c.Type == cssparse.NDeclarationList {
		r.Declarations = in.declarationList(c)
	}
	return r
}

func (in *interpreter) selectorList(n *cssparse.CSTNode) []*CSSSelector {
	out := make([]*CSSSelector, 0, n.Arity())
	for _, c := range n.Children {
		if c.Type == cssparse.NSelector {
			out = append(out, in.selector(c))
		}
	}
	return out
}

func combinatorFor(v any) SelectorCombinator {
	s, _ := v.(string)
	switch s {
	case ">":
		return CombinatorChild
	case "+":
		return CombinatorNextSibling
	case "~":
		return CombinatorSubsequentSibling
	case " ":
		return CombinatorDescendant
	default:
		return CombinatorNone
	}
}

func (in *interpreter) selector(n *cssparse.CSTNode) *CSSSelector {
	sel := &CSSSelector{}
	for _, c := range n.Children {
		if c.Type != cssparse.NSimpleSelector {
			continue
		}
		sel.Members = append(sel.Members, in.simpleSelector(c))
	}
	return sel
}

func (in *interpreter) simpleSelector(n *cssparse.CSTNode) *CSSSimpleSelector {
	s := &CSSSimpleSelector{Combinator: combinatorFor(n.Value), TypeName: n.Text}
	for _, c := range n.Children {
		switch c.Type {
		case cssparse.NIdent:
			switch c.Value {
			case "#":
				s.IDs = append(s.IDs, c.Text)
			case ".":
				s.Classes = append(s.Classes, c.Text)
			}
		case cssparse.NAttributeSelector:
			s.Attributes = append(s.Attributes, in.attributeSelector(c))
		case cssparse.NPseudo:
			s.Pseudos = append(s.Pseudos, in.pseudoSelector(c))
		}
	}
	return s
}

var validAttrOperators = map[string]bool{"": true, "=": true, "~=": true, "|=": true, "^=": true, "$=": true, "*=": true}

func (in *interpreter) attributeSelector(n *cssparse.CSTNode) *CSSAttributeSelector {
	a := &CSSAttributeSelector{Name: n.Text}
	if n.Arity() == 0 {
		return a
	}
	op, _ := n.Value.(string)
	if !validAttrOperators[op] {
		in.warn(n, "unrecognized attribute operator '"+op+"'")
		op = ""
	}
	a.Operator = op
	if c := n.Child(0); c != nil {
		a.Value = c.Text
	}
	return a
}

func (in *interpreter) pseudoSelector(n *cssparse.CSTNode) *CSSPseudoSelector {
	p := &CSSPseudoSelector{Name: n.Text}
	doubleColon, _ := n.Value.(bool)
	p.DoubleColon = doubleColon

	switch n.Arity() {
	case 0:
		p.Kind = PseudoSimple
		return p
	case 1:
		child := n.Child(0)
		switch child.Type {
		case cssparse.NNth:
			p.Kind = PseudoNth
			p.NthText = child.Text
			if len(child.Children) > 0 {
				if sl := child.Child(0); sl != nil && sl.Type == cssparse.NSelectorList {
					p.Args = in.selectorList(sl)
				}
			}
			return p
		case cssparse.NSelectorList:
			name := strings.ToLower(n.Text)
			switch name {
			case "host", "host-context":
				p.Kind = PseudoHost
			case "slotted":
				p.Kind = PseudoSlotted
			default:
				p.Kind = PseudoLogical
			}
			p.Args = in.selectorList(child)
			return p
		default:
			p.Kind = PseudoFunctionArgs
			var sb strings.Builder
			in.flattenExprTree(child, &sb)
			p.RawArgs = sb.String()
			return p
		}
	default:
		in.warn(n, "pseudo-selector has unexpected arity, treating as unsupported")
		p.Kind = PseudoFunctionArgs
		return p
	}
}

func (in *interpreter) flattenExprTree(n *cssparse.CSTNode, sb *strings.Builder) {
	if n == nil {
		return
	}
	if n.Text != "" {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(n.Text)
	}
	for _, c := range n.Children {
		in.flattenExprTree(c, sb)
	}
}

func (in *interpreter) declarationList(n *cssparse.CSTNode) []*CSSDeclaration {
	out := make([]*CSSDeclaration, 0, n.Arity())
	for _, c := range n.Children {
		if c.Type != cssparse.NDeclaration {
			continue
		}
		if d := in.declaration(c); d != nil {
			out = append(out, d)
		}
	}
	return out
}

// A declaration node always carries its value expression as its first
// child and, when present, a trailing NImportant marker as its second —
// so arity alone can't distinguish a normal declaration (1 child) from
// an empty one (also 1 child, holding an empty expression). Emptiness is
// checked on the expression node itself instead.
func (in *interpreter) declaration(n *cssparse.CSTNode) *CSSDeclaration {
	if n.Arity() < 1 || n.Arity() > 2 {
		in.fail(n, "declaration has unexpected arity")
		return nil
	}
	exprNode := n.Child(0)
	if exprNode == nil || exprNode.Type != cssparse.NExpression {
		in.fail(n, "declaration's first child must be its value expression")
		return nil
	}
	isCustom, _ := n.Value.(bool)

	empty := exprNode.Arity() == 0 ||
		(!isCustom && exprNode.Arity() == 1 && exprNode.Child(0).Arity() == 0)
	if empty {
		in.warn(n, "declaration '"+n.Text+"' has an empty value and was dropped")
		return nil
	}

	d := &CSSDeclaration{Property: n.Text, Location: in.loc(n), IsCustom: isCustom}
	d.Expression = in.expression(exprNode)

	if n.Arity() == 2 {
		if c := n.Child(1); c == nil || c.Type != cssparse.NImportant {
			in.fail(n, "declaration's second child must be !important")
		}
		d.Important = true
	}
	if in.validator != nil {
		if known, valid := in.validator.Validate(d.Property, d.Expression); known && !valid {
			in.warn(n, "value not valid for property '"+d.Property+"'")
		}
	}
	return d
}

func (in *interpreter) expression(n *cssparse.CSTNode) *CSSExpression {
	e := &CSSExpression{}
	if n.Arity() > 0 && n.Child(0) != nil && n.Child(0).Type == cssparse.NExpressionMember {
		for i, c := range n.Children {
			m := in.expressionMember(c)
			if i > 0 {
				switch c.Value {
				case ",":
					m.Operator = MemberOperatorComma
				case "/":
					m.Operator = MemberOperatorSlash
				}
			}
			e.Members = append(e.Members, m)
		}
		return e
	}
	// Custom-property raw value: a flat run of NIdent tokens re-joined
	// with a single space between every pair of tokens.
	var sb strings.Builder
	for _, c := range n.Children {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(c.Text)
	}
	e.Members = append(e.Members, &CSSExpressionMember{Kind: MemberRaw, RawText: sb.String()})
	return e
}

func (in *interpreter) expressionMember(n *cssparse.CSTNode) *CSSExpressionMember {
	m := &CSSExpressionMember{Kind: MemberTerms}
	for _, c := range n.Children {
		m.Terms = append(m.Terms, in.term(c))
	}
	return m
}

func (in *interpreter) term(n *cssparse.CSTNode) *CSSTerm {
	switch n.Type {
	case cssparse.NNumber:
		unit, _ := n.Value.(string)
		num, _ := strconv.ParseFloat(strings.TrimPrefix(n.Text, "+"), 64)
		switch unit {
		case "":
			return &CSSTerm{Kind: TermNumber, Text: n.Text, Number: num}
		case "%":
			return &CSSTerm{Kind: TermPercentage, Text: n.Text, Number: num}
		default:
			return &CSSTerm{Kind: TermDimension, Text: n.Text, Number: num, Unit: unit}
		}
	case cssparse.NString:
		return &CSSTerm{Kind: TermString, Text: n.Text}
	case cssparse.NIdent:
		if n.Value == "#" || isHexColor("#"+n.Text) {
			return &CSSTerm{Kind: TermHashColor, Text: n.Text}
		}
		return &CSSTerm{Kind: TermIdent, Text: n.Text}
	case cssparse.NURI:
		return &CSSTerm{Kind: TermURI, Text: n.Text}
	case cssparse.NLineNames:
		t := &CSSTerm{Kind: TermLineNames}
		for _, c := range n.Children {
			t.Line = append(t.Line, c.Text)
		}
		return t
	case cssparse.NCalc:
		return &CSSTerm{Kind: TermCalc, Text: n.Text, Calc: in.calc(n)}
	case cssparse.NFunction:
		t := &CSSTerm{Kind: TermFunction, Text: n.Text}
		for _, c := range n.Children {
			if c.Type == cssparse.NExpressionMember {
				t.Args = append(t.Args, in.expressionMember(c))
			}
		}
		return t
	default:
		return &CSSTerm{Kind: TermIdent, Text: n.Text}
	}
}

func (in *interpreter) calc(n *cssparse.CSTNode) *CSSCalc {
	c := &CSSCalc{}
	for _, s := range n.Children {
		if s.Type == cssparse.NCalcSum {
			c.Sums = append(c.Sums, in.calcSum(s))
		}
	}
	return c
}

func calcOpFor(v any) CSSCalcOp {
	s, _ := v.(string)
	switch s {
	case "+":
		return CalcOpAdd
	case "-":
		return CalcOpSub
	case "*":
		return CalcOpMul
	case "/":
		return CalcOpDiv
	default:
		return CalcOpNone
	}
}

func (in *interpreter) calcSum(n *cssparse.CSTNode) *CSSCalcSum {
	s := &CSSCalcSum{}
	for i, c := range n.Children {
		if c.Type != cssparse.NCalcProduct {
			in.warn(n, "unrecognized operator in calc() sum, skipped")
			continue
		}
		prod := in.calcProduct(c)
		if i > 0 {
			op := calcOpFor(c.Value)
			if op == CalcOpNone {
				in.warn(c, "unknown calc() sum operator, treated as '+'")
				op = CalcOpAdd
			}
			prod.Op = op
		}
		s.Products = append(s.Products, prod)
	}
	return s
}

func (in *interpreter) calcProduct(n *cssparse.CSTNode) *CSSCalcProduct {
	p := &CSSCalcProduct{}
	for i := 0; i < n.Arity(); i++ {
		c := n.Child(i)
		factor := &CSSCalcFactor{}
		if c.Type == cssparse.NCalcSum {
			factor.Sum = in.calcSum(c)
		} else {
			factor.Value = in.term(c)
		}
		if i > 0 {
			op := calcOpFor(c.Value)
			if op == CalcOpNone {
				in.warn(c, "unknown calc() product operator, treated as '*'")
				op = CalcOpMul
			}
			factor.Op = op
		}
		p.Factors = append(p.Factors, factor)
	}
	return p
}

func (in *interpreter) mediaList(n *cssparse.CSTNode) []*CSSMediaQuery {
	out := make([]*CSSMediaQuery, 0, n.Arity())
	for _, c := range n.Children {
		if c.Type == cssparse.NMediaQuery {
			out = append(out, in.mediaQuery(c))
		}
	}
	return out
}

func (in *interpreter) mediaQuery(n *cssparse.CSTNode) *CSSMediaQuery {
	q := &CSSMediaQuery{}
	for _, c := range n.Children {
		switch {
		case c.Type == cssparse.NIdent && c.Value == "modifier":
			switch strings.ToLower(c.Text) {
			case "not":
				q.Modifier = MediaModifierNot
			case "only":
				q.Modifier = MediaModifierOnly
			default:
				in.fail(c, "unrecognized media query modifier '"+c.Text+"'")
			}
		case c.Type == cssparse.NIdent && c.Value == "type":
			q.Medium = c.Text
			if !knownMediaType(c.Text) {
				in.warn(c, "unknown media type '"+c.Text+"'")
			}
		case c.Type == cssparse.NMediaExpression:
			q.Expressions = append(q.Expressions, in.mediaExpression(c))
		}
	}
	return q
}

func knownMediaType(t string) bool {
	switch strings.ToLower(t) {
	case "all", "print", "screen", "speech":
		return true
	}
	return false
}

func (in *interpreter) mediaExpression(n *cssparse.CSTNode) *CSSMediaExpression {
	e := &CSSMediaExpression{Feature: n.Text}
	if c := n.Child(0); c != nil && c.Type == cssparse.NExpressionMember {
		e.Value = in.expressionMember(c)
	}
	return e
}

func (in *interpreter) mediaRule(n *cssparse.CSTNode) *CSSMediaRule {
	r := &CSSMediaRule{Location: in.loc(n)}
	for i, c := range n.Children {
		if i == 0 && c.Type == cssparse.NMediaList {
			r.Queries = in.mediaList(c)
			continue
		}
		if top := in.topLevelRule(c); top != nil {
			r.Rules = append(r.Rules, top)
		}
	}
	return r
}

func (in *interpreter) supportsRule(n *cssparse.CSTNode) *CSSSupportsRule {
	r := &CSSSupportsRule{Location: in.loc(n)}
	for i, c := range n.Children {
		if i == 0 {
			r.Condition = in.supportsCondition(c)
			continue
		}
		if top := in.topLevelRule(c); top != nil {
			r.Rules = append(r.Rules, top)
		}
	}
	return r
}

func (in *interpreter) supportsCondition(n *cssparse.CSTNode) *CSSSupportsCondition {
	switch n.Type {
	case cssparse.NSupportsNegation:
		c := &CSSSupportsCondition{Kind: SupportsNegation}
		if child := n.Child(0); child != nil {
			c.Children = append(c.Children, in.supportsCondition(child))
		}
		return c
	case cssparse.NSupportsDeclaration:
		d := &CSSDeclaration{Property: n.Text}
		if child := n.Child(0); child != nil && child.Type == cssparse.NExpressionMember {
			d.Expression = &CSSExpression{Members: []*CSSExpressionMember{in.expressionMember(child)}}
		}
		return &CSSSupportsCondition{Kind: SupportsDeclarationLeaf, Declaration: d}
	case cssparse.NSupportsCondition:
		op, _ := n.Value.(string)
		kind := SupportsAnd
		if strings.EqualFold(op, "or") {
			kind = SupportsOr
		} else if !strings.EqualFold(op, "and") {
			in.warn(n, "unrecognized supports operator '"+op+"'")
		}
		c := &CSSSupportsCondition{Kind: kind}
		for _, child := range n.Children {
			c.Children = append(c.Children, in.supportsCondition(child))
		}
		return c
	default:
		in.warn(n, "unrecognized supports-condition shape")
		return &CSSSupportsCondition{Kind: SupportsDeclarationLeaf}
	}
}

func (in *interpreter) layerRule(n *cssparse.CSTNode) *CSSLayerRule {
	r := &CSSLayerRule{Location: in.loc(n)}
	for i, c := range n.Children {
		if i == 0 && c.Type == cssparse.NLayerNameList {
			for _, nm := range c.Children {
				r.Names = append(r.Names, nm.Text)
			}
			continue
		}
		if top := in.topLevelRule(c); top != nil {
			r.Rules = append(r.Rules, top)
		}
	}
	return r
}

// keyframesRule builds a keyframes rule from its blocks. A brace-imbalanced
// block (the only way parseKeyframeBlock ever emits a bare selector-list
// instead of an NStyleRule) means the recovery ladder already skipped
// forward past an unknown amount of the rest of the stylesheet, so the
// whole @keyframes rule — not just the offending block — is dropped; the
// caller (topLevelRule) treats a nil result as "no rule produced".
func (in *interpreter) keyframesRule(n *cssparse.CSTNode) *CSSKeyframesRule {
	r := &CSSKeyframesRule{Name: n.Text, Location: in.loc(n)}
	for _, c := range n.Children {
		if c.Type != cssparse.NStyleRule {
			in.warn(c, "keyframes rule has a malformed block and was dropped")
			return nil
		}
		selNode := c.Child(0)
		if selNode == nil || selNode.Type != cssparse.NKeyframeSelectorList {
			in.warn(c, "keyframes declaration-list with no preceding selector-list was dropped")
			return nil
		}
		block := &CSSKeyframeBlock{}
		for _, s := range selNode.Children {
			block.Selectors = append(block.Selectors, s.Text)
		}
		if decls := c.Child(1); decls != nil && decls.Type == cssparse.NDeclarationList {
			block.Declarations = in.declarationList(decls)
		}
		r.Blocks = append(r.Blocks, block)
	}
	return r
}

func (in *interpreter) pageRule(n *cssparse.CSTNode) *CSSPageRule {
	r := &CSSPageRule{Location: in.loc(n)}
	for i, c := range n.Children {
		if i == 0 && c.Type == cssparse.NPageSelector {
			sel := &CSSPageSelector{Type: c.Text}
			for _, p := range c.Children {
				sel.Pseudos = append(sel.Pseudos, p.Text)
			}
			r.Selector = sel
			continue
		}
		switch c.Type {
		case cssparse.NDeclaration:
			if d := in.declaration(c); d != nil {
				r.Declarations = append(r.Declarations, d)
			}
		case cssparse.NPageMarginBox:
			box := &CSSPageMarginBox{Name: c.Text}
			if decls := c.Child(0); decls != nil && decls.Type == cssparse.NDeclarationList {
				box.Declarations = in.declarationList(decls)
			}
			r.MarginBoxes = append(r.MarginBoxes, box)
		}
	}
	return r
}

func (in *interpreter) unknownRule(n *cssparse.CSTNode) *CSSUnknownRule {
	r := &CSSUnknownRule{Name: n.Text, Location: in.loc(n)}
	if c := n.Child(0); c != nil {
		var sb strings.Builder
		for i, t := range c.Children {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(t.Text)
		}
		r.Prelude = sb.String()
	}
	if c := n.Child(1); c != nil {
		r.HasBody = true
		var sb strings.Builder
		for i, t := range c.Children {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(t.Text)
		}
		r.Body = sb.String()
	}
	return r
}
