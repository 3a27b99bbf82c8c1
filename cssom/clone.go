package cssom

// Clone returns an independent deep copy of the stylesheet: mutating the
// clone never affects the original, satisfying spec.md §4.5's "every node
// supports a deep-clone operation" and the §8 round-trip property
// ("deep-clone then serialize equals serialize original").
func (s *CascadingStyleSheet) Clone() *CascadingStyleSheet {
	if s == nil {
		return nil
	}
	out := &CascadingStyleSheet{Charset: s.Charset, Location: cloneLoc(s.Location)}
	for _, imp := range s.Imports {
		out.Imports = append(out.Imports, imp.clone())
	}
	for _, ns := range s.Namespaces {
		nsc := *ns
		out.Namespaces = append(out.Namespaces, &nsc)
	}
	for _, r := range s.Rules {
		out.Rules = append(out.Rules, r.clone())
	}
	return out
}

func cloneLoc(l *SourceLocation) *SourceLocation {
	if l == nil {
		return nil
	}
	c := *l
	return &c
}

func (r *CSSImportRule) clone() *CSSImportRule {
	if r == nil {
		return nil
	}
	out := &CSSImportRule{URI: r.URI, Location: cloneLoc(r.Location)}
	for _, m := range r.Media {
		out.Media = append(out.Media, m.clone())
	}
	return out
}

func (r *TopLevelRule) clone() *TopLevelRule {
	if r == nil {
		return nil
	}
	out := &TopLevelRule{Type: r.Type, Location: cloneLoc(r.Location)}
	switch r.Type {
	case RuleStyle:
		out.Style = r.Style.clone()
	case RulePage:
		out.Page = r.Page.clone()
	case RuleFontFace:
		out.FontFace = r.FontFace.clone()
	case RuleMedia:
		out.Media = r.Media.clone()
	case RuleKeyframes:
		out.Keyframes = r.Keyframes.clone()
	case RuleSupports:
		out.Supports = r.Supports.clone()
	case RuleLayer:
		out.Layer = r.Layer.clone()
	case RuleUnknown:
		out.Unknown = r.Unknown.clone()
	}
	return out
}

func (r *CSSStyleRule) clone() *CSSStyleRule {
	if r == nil {
		return nil
	}
	out := &CSSStyleRule{Location: cloneLoc(r.Location)}
	for _, sel := range r.Selectors {
		out.Selectors = append(out.Selectors, sel.clone())
	}
	for _, d := range r.Declarations {
		out.Declarations = append(out.Declarations, d.clone())
	}
	return out
}

func (r *CSSFontFaceRule) clone() *CSSFontFaceRule {
	if r == nil {
		return nil
	}
	out := &CSSFontFaceRule{Location: cloneLoc(r.Location)}
	for _, d := range r.Declarations {
		out.Declarations = append(out.Declarations, d.clone())
	}
	return out
}

func (s *CSSSelector) clone() *CSSSelector {
	if s == nil {
		return nil
	}
	out := &CSSSelector{}
	for _, m := range s.Members {
		out.Members = append(out.Members, m.clone())
	}
	return out
}

func (s *CSSSimpleSelector) clone() *CSSSimpleSelector {
	if s == nil {
		return nil
	}
	out := &CSSSimpleSelector{Combinator: s.Combinator, TypeName: s.TypeName}
	out.IDs = append(out.IDs, s.IDs...)
	out.Classes = append(out.Classes, s.Classes...)
	for _, a := range s.Attributes {
		ac := *a
		out.Attributes = append(out.Attributes, &ac)
	}
	for _, ps := range s.Pseudos {
		out.Pseudos = append(out.Pseudos, ps.clone())
	}
	return out
}

func (p *CSSPseudoSelector) clone() *CSSPseudoSelector {
	if p == nil {
		return nil
	}
	out := &CSSPseudoSelector{
		Kind: p.Kind, Name: p.Name, DoubleColon: p.DoubleColon,
		NthText: p.NthText, RawArgs: p.RawArgs,
	}
	for _, sel := range p.Args {
		out.Args = append(out.Args, sel.clone())
	}
	return out
}

func (d *CSSDeclaration) clone() *CSSDeclaration {
	if d == nil {
		return nil
	}
	return &CSSDeclaration{
		Property: d.Property, IsCustom: d.IsCustom, Important: d.Important,
		Expression: d.Expression.clone(), Location: cloneLoc(d.Location),
	}
}

func (e *CSSExpression) clone() *CSSExpression {
	if e == nil {
		return nil
	}
	out := &CSSExpression{}
	for _, m := range e.Members {
		out.Members = append(out.Members, m.clone())
	}
	return out
}

func (m *CSSExpressionMember) clone() *CSSExpressionMember {
	if m == nil {
		return nil
	}
	out := &CSSExpressionMember{Operator: m.Operator, Kind: m.Kind, RawText: m.RawText}
	for _, t := range m.Terms {
		out.Terms = append(out.Terms, t.clone())
	}
	return out
}

func (t *CSSTerm) clone() *CSSTerm {
	if t == nil {
		return nil
	}
	out := &CSSTerm{Kind: t.Kind, Text: t.Text, Number: t.Number, Unit: t.Unit}
	for _, a := range t.Args {
		out.Args = append(out.Args, a.clone())
	}
	out.Calc = t.Calc.clone()
	out.Line = append(out.Line, t.Line...)
	return out
}

func (c *CSSCalc) clone() *CSSCalc {
	if c == nil {
		return nil
	}
	out := &CSSCalc{}
	for _, s := range c.Sums {
		out.Sums = append(out.Sums, s.clone())
	}
	return out
}

func (s *CSSCalcSum) clone() *CSSCalcSum {
	if s == nil {
		return nil
	}
	out := &CSSCalcSum{Op: s.Op}
	for _, pr := range s.Products {
		out.Products = append(out.Products, pr.clone())
	}
	return out
}

func (p *CSSCalcProduct) clone() *CSSCalcProduct {
	if p == nil {
		return nil
	}
	out := &CSSCalcProduct{Op: p.Op}
	for _, f := range p.Factors {
		out.Factors = append(out.Factors, f.clone())
	}
	return out
}

func (f *CSSCalcFactor) clone() *CSSCalcFactor {
	if f == nil {
		return nil
	}
	return &CSSCalcFactor{Op: f.Op, Value: f.Value.clone(), Sum: f.Sum.clone()}
}

func (q *CSSMediaQuery) clone() *CSSMediaQuery {
	if q == nil {
		return nil
	}
	out := &CSSMediaQuery{Modifier: q.Modifier, Medium: q.Medium}
	for _, e := range q.Expressions {
		out.Expressions = append(out.Expressions, e.clone())
	}
	return out
}

func (e *CSSMediaExpression) clone() *CSSMediaExpression {
	if e == nil {
		return nil
	}
	return &CSSMediaExpression{Feature: e.Feature, Value: e.Value.clone()}
}

func (r *CSSMediaRule) clone() *CSSMediaRule {
	if r == nil {
		return nil
	}
	out := &CSSMediaRule{Location: cloneLoc(r.Location)}
	for _, q := range r.Queries {
		out.Queries = append(out.Queries, q.clone())
	}
	for _, child := range r.Rules {
		out.Rules = append(out.Rules, child.clone())
	}
	return out
}

func (c *CSSSupportsCondition) clone() *CSSSupportsCondition {
	if c == nil {
		return nil
	}
	out := &CSSSupportsCondition{Kind: c.Kind, Declaration: c.Declaration.clone()}
	for _, ch := range c.Children {
		out.Children = append(out.Children, ch.clone())
	}
	return out
}

func (r *CSSSupportsRule) clone() *CSSSupportsRule {
	if r == nil {
		return nil
	}
	out := &CSSSupportsRule{Condition: r.Condition.clone(), Location: cloneLoc(r.Location)}
	for _, child := range r.Rules {
		out.Rules = append(out.Rules, child.clone())
	}
	return out
}

func (r *CSSLayerRule) clone() *CSSLayerRule {
	if r == nil {
		return nil
	}
	out := &CSSLayerRule{Location: cloneLoc(r.Location)}
	out.Names = append(out.Names, r.Names...)
	for _, child := range r.Rules {
		out.Rules = append(out.Rules, child.clone())
	}
	return out
}

func (b *CSSKeyframeBlock) clone() *CSSKeyframeBlock {
	if b == nil {
		return nil
	}
	out := &CSSKeyframeBlock{}
	out.Selectors = append(out.Selectors, b.Selectors...)
	for _, d := range b.Declarations {
		out.Declarations = append(out.Declarations, d.clone())
	}
	return out
}

func (r *CSSKeyframesRule) clone() *CSSKeyframesRule {
	if r == nil {
		return nil
	}
	out := &CSSKeyframesRule{Name: r.Name, Location: cloneLoc(r.Location)}
	for _, b := range r.Blocks {
		out.Blocks = append(out.Blocks, b.clone())
	}
	return out
}

func (r *CSSPageRule) clone() *CSSPageRule {
	if r == nil {
		return nil
	}
	out := &CSSPageRule{Location: cloneLoc(r.Location)}
	if r.Selector != nil {
		sc := *r.Selector
		sc.Pseudos = append([]string(nil), r.Selector.Pseudos...)
		out.Selector = &sc
	}
	for _, d := range r.Declarations {
		out.Declarations = append(out.Declarations, d.clone())
	}
	for _, mb := range r.MarginBoxes {
		out.MarginBoxes = append(out.MarginBoxes, mb.clone())
	}
	return out
}

func (b *CSSPageMarginBox) clone() *CSSPageMarginBox {
	if b == nil {
		return nil
	}
	out := &CSSPageMarginBox{Name: b.Name}
	for _, d := range b.Declarations {
		out.Declarations = append(out.Declarations, d.clone())
	}
	return out
}

func (r *CSSUnknownRule) clone() *CSSUnknownRule {
	if r == nil {
		return nil
	}
	c := *r
	c.Location = cloneLoc(r.Location)
	return &c
}
