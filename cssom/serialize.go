package cssom

import "strings"

// WriterSettings configures Serialize. It carries the settings table
// spec.md §6 assigns to the (out-of-scope) external writer; this module
// carries a baseline implementation behind the same contract so the §8
// round-trip property is testable without a separate writer component.
// QuoteURLs governs @import URIs only: url() terms inside declarations
// are always written quoted. CheckVersionSupport is not read by Serialize.
type WriterSettings struct {
	Optimized          bool // drop whitespace and empty rules
	NewLine            string
	Indent             string
	QuoteURLs          bool
	CheckVersionSupport bool
}

// DefaultWriterSettings returns pretty-printing defaults: one rule per
// line, two-space indent, unix newlines, quoted URLs.
func DefaultWriterSettings() WriterSettings {
	return WriterSettings{NewLine: "\n", Indent: "  ", QuoteURLs: true}
}

// OptimizedWriterSettings returns the settings used by the round-trip
// scenarios in spec.md §8: no whitespace beyond what the grammar requires.
func OptimizedWriterSettings() WriterSettings {
	return WriterSettings{Optimized: true, NewLine: "", Indent: "", QuoteURLs: false}
}

func (w WriterSettings) nl() string {
	if w.Optimized {
		return ""
	}
	return w.NewLine
}

func (w WriterSettings) indentN(depth int) string {
	if w.Optimized {
		return ""
	}
	return strings.Repeat(w.Indent, depth)
}

// Serialize renders the stylesheet back to CSS text.
func (s *CascadingStyleSheet) Serialize(w WriterSettings) string {
	var sb strings.Builder
	if s.Charset != "" {
		sb.WriteString(`@charset "`)
		sb.WriteString(s.Charset)
		sb.WriteString(`";`)
		sb.WriteString(w.nl())
	}
	for _, imp := range s.Imports {
		imp.serialize(&sb, w)
	}
	for _, ns := range s.Namespaces {
		ns.serialize(&sb, w)
	}
	for _, r := range s.Rules {
		r.serialize(&sb, w, 0)
	}
	return sb.String()
}

func (r *CSSImportRule) serialize(sb *strings.Builder, w WriterSettings) {
	sb.WriteString("@import ")
	writeURI(sb, r.URI, w)
	for i, m := range r.Media {
		if i == 0 {
			sb.WriteByte(' ')
		} else {
			sb.WriteString(", ")
		}
		m.serialize(sb)
	}
	sb.WriteByte(';')
	sb.WriteString(w.nl())
}

func (r *CSSNamespaceRule) serialize(sb *strings.Builder, w WriterSettings) {
	sb.WriteString("@namespace ")
	if r.Prefix != "" {
		sb.WriteString(r.Prefix)
		sb.WriteByte(' ')
	}
	sb.WriteByte('"')
	sb.WriteString(r.URI)
	sb.WriteString(`";`)
	sb.WriteString(w.nl())
}

func writeURI(sb *strings.Builder, uri string, w WriterSettings) {
	if w.QuoteURLs {
		sb.WriteString(`url("`)
		sb.WriteString(uri)
		sb.WriteString(`")`)
	} else {
		sb.WriteString("url(")
		sb.WriteString(uri)
		sb.WriteByte(')')
	}
}

func (r *TopLevelRule) serialize(sb *strings.Builder, w WriterSettings, depth int) {
	switch r.Type {
	case RuleStyle:
		r.Style.serialize(sb, w, depth)
	case RulePage:
		r.Page.serialize(sb, w, depth)
	case RuleFontFace:
		r.FontFace.serialize(sb, w, depth)
	case RuleMedia:
		r.Media.serialize(sb, w, depth)
	case RuleSupports:
		r.Supports.serialize(sb, w, depth)
	case RuleLayer:
		r.Layer.serialize(sb, w, depth)
	case RuleKeyframes:
		r.Keyframes.serialize(sb, w, depth)
	case RuleUnknown:
		r.Unknown.serialize(sb, w, depth)
	}
}

// serialize renders the rule. An empty declaration list still emits a
// "{}" block (spec.md §8 scenario 4: ".section{}" survives optimized
// serialization rather than being dropped).
func (r *CSSStyleRule) serialize(sb *strings.Builder, w WriterSettings, depth int) {
	sb.WriteString(w.indentN(depth))
	for i, s := range r.Selectors {
		if i > 0 {
			sb.WriteByte(',')
			if !w.Optimized {
				sb.WriteByte(' ')
			}
		}
		s.serialize(sb)
	}
	sb.WriteByte('{')
	serializeDeclBody(sb, r.Declarations, w, depth+1)
	sb.WriteString(w.indentN(depth))
	sb.WriteByte('}')
	sb.WriteString(w.nl())
}

func serializeDeclBody(sb *strings.Builder, decls []*CSSDeclaration, w WriterSettings, depth int) {
	sb.WriteString(w.nl())
	for i, d := range decls {
		sb.WriteString(w.indentN(depth))
		d.serialize(sb, w)
		if i < len(decls)-1 || !w.Optimized {
			sb.WriteByte(';')
		}
		sb.WriteString(w.nl())
	}
}

func (d *CSSDeclaration) serialize(sb *strings.Builder, w WriterSettings) {
	sb.WriteString(d.Property)
	sb.WriteByte(':')
	if !w.Optimized {
		sb.WriteByte(' ')
	}
	if d.Expression != nil {
		d.Expression.serialize(sb)
	}
	if d.Important {
		sb.WriteString("!important")
	}
}

func (e *CSSExpression) serialize(sb *strings.Builder) {
	for i, m := range e.Members {
		switch m.Operator {
		case MemberOperatorComma:
			sb.WriteByte(',')
		case MemberOperatorSlash:
			sb.WriteByte('/')
		default:
			if i > 0 {
				sb.WriteByte(' ')
			}
		}
		m.serialize(sb)
	}
}

func (m *CSSExpressionMember) serialize(sb *strings.Builder) {
	if m.Kind == MemberRaw {
		sb.WriteString(m.RawText)
		return
	}
	for i, t := range m.Terms {
		if i > 0 {
			sb.WriteByte(' ')
		}
		t.serialize(sb)
	}
}

func (t *CSSTerm) serialize(sb *strings.Builder) {
	switch t.Kind {
	case TermString:
		sb.WriteByte('"')
		sb.WriteString(t.Text)
		sb.WriteByte('"')
	case TermHashColor:
		sb.WriteByte('#')
		sb.WriteString(t.Text)
	case TermURI:
		writeURI(sb, t.Text, WriterSettings{QuoteURLs: true})
	case TermFunction:
		sb.WriteString(t.Text)
		sb.WriteByte('(')
		for i, a := range t.Args {
			if i > 0 {
				sb.WriteByte(',')
			}
			a.serialize(sb)
		}
		sb.WriteByte(')')
	case TermCalc:
		sb.WriteString(t.Text)
		sb.WriteByte('(')
		for i, s := range t.Calc.Sums {
			if i > 0 {
				sb.WriteByte(',')
			}
			s.serialize(sb)
		}
		sb.WriteByte(')')
	case TermLineNames:
		sb.WriteByte('[')
		sb.WriteString(strings.Join(t.Line, " "))
		sb.WriteByte(']')
	default:
		sb.WriteString(t.Text)
		sb.WriteString(t.Unit)
	}
}

func calcOpString(op CSSCalcOp) string {
	switch op {
	case CalcOpAdd:
		return " + "
	case CalcOpSub:
		return " - "
	case CalcOpMul:
		return "*"
	case CalcOpDiv:
		return "/"
	default:
		return ""
	}
}

func (s *CSSCalcSum) serialize(sb *strings.Builder) {
	for i, p := range s.Products {
		if i > 0 {
			sb.WriteString(calcOpString(p.Op))
		}
		p.serialize(sb)
	}
}

func (p *CSSCalcProduct) serialize(sb *strings.Builder) {
	for i, f := range p.Factors {
		if i > 0 {
			sb.WriteString(calcOpString(f.Op))
		}
		f.serialize(sb)
	}
}

func (f *CSSCalcFactor) serialize(sb *strings.Builder) {
	if f.Sum != nil {
		sb.WriteByte('(')
		f.Sum.serialize(sb)
		sb.WriteByte(')')
		return
	}
	if f.Value != nil {
		f.Value.serialize(sb)
	}
}

func (s *CSSSelector) serialize(sb *strings.Builder) {
	for i, m := range s.Members {
		if i > 0 {
			switch m.Combinator {
			case CombinatorChild:
				sb.WriteByte('>')
			case CombinatorNextSibling:
				sb.WriteByte('+')
			case CombinatorSubsequentSibling:
				sb.WriteByte('~')
			default:
				sb.WriteByte(' ')
			}
		}
		m.serialize(sb)
	}
}

func (s *CSSSimpleSelector) serialize(sb *strings.Builder) {
	sb.WriteString(s.TypeName)
	for _, id := range s.IDs {
		sb.WriteByte('#')
		sb.WriteString(id)
	}
	for _, c := range s.Classes {
		sb.WriteByte('.')
		sb.WriteString(c)
	}
	for _, a := range s.Attributes {
		a.serialize(sb)
	}
	for _, p := range s.Pseudos {
		p.serialize(sb)
	}
}

func (a *CSSAttributeSelector) serialize(sb *strings.Builder) {
	sb.WriteByte('[')
	sb.WriteString(a.Name)
	if a.Operator != "" {
		sb.WriteString(a.Operator)
		sb.WriteByte('"')
		sb.WriteString(a.Value)
		sb.WriteByte('"')
	}
	sb.WriteByte(']')
}

func (p *CSSPseudoSelector) serialize(sb *strings.Builder) {
	if p.DoubleColon {
		sb.WriteString("::")
	} else {
		sb.WriteByte(':')
	}
	sb.WriteString(p.Name)
	switch p.Kind {
	case PseudoSimple:
		return
	case PseudoNth:
		sb.WriteByte('(')
		sb.WriteString(p.NthText)
		sb.WriteByte(')')
	case PseudoLogical, PseudoHost, PseudoSlotted:
		sb.WriteByte('(')
		for i, sel := range p.Args {
			if i > 0 {
				sb.WriteByte(',')
			}
			sel.serialize(sb)
		}
		sb.WriteByte(')')
	case PseudoFunctionArgs:
		sb.WriteByte('(')
		sb.WriteString(p.RawArgs)
		sb.WriteByte(')')
	}
}

func (q *CSSMediaQuery) serialize(sb *strings.Builder) {
	switch q.Modifier {
	case MediaModifierNot:
		sb.WriteString("not ")
	case MediaModifierOnly:
		sb.WriteString("only ")
	}
	sb.WriteString(q.Medium)
	for i, e := range q.Expressions {
		if q.Medium != "" || i > 0 {
			sb.WriteString(" and ")
		}
		e.serialize(sb)
	}
}

func (e *CSSMediaExpression) serialize(sb *strings.Builder) {
	sb.WriteByte('(')
	sb.WriteString(e.Feature)
	if e.Value != nil {
		sb.WriteByte(':')
		e.Value.serialize(sb)
	}
	sb.WriteByte(')')
}

func (r *CSSMediaRule) serialize(sb *strings.Builder, w WriterSettings, depth int) {
	sb.WriteString(w.indentN(depth))
	sb.WriteString("@media ")
	for i, q := range r.Queries {
		if i > 0 {
			sb.WriteString(", ")
		}
		q.serialize(sb)
	}
	sb.WriteByte('{')
	sb.WriteString(w.nl())
	for _, child := range r.Rules {
		child.serialize(sb, w, depth+1)
	}
	sb.WriteString(w.indentN(depth))
	sb.WriteByte('}')
	sb.WriteString(w.nl())
}

func (c *CSSSupportsCondition) serialize(sb *strings.Builder) {
	switch c.Kind {
	case SupportsNegation:
		sb.WriteString("not ")
		if len(c.Children) > 0 {
			c.Children[0].serialize(sb)
		}
	case SupportsAnd, SupportsOr:
		op := " and "
		if c.Kind == SupportsOr {
			op = " or "
		}
		for i, child := range c.Children {
			if i > 0 {
				sb.WriteString(op)
			}
			child.serialize(sb)
		}
	case SupportsDeclarationLeaf:
		sb.WriteByte('(')
		if c.Declaration != nil {
			sb.WriteString(c.Declaration.Property)
			if c.Declaration.Expression != nil {
				sb.WriteByte(':')
				c.Declaration.Expression.serialize(sb)
			}
		}
		sb.WriteByte(')')
	}
}

func (r *CSSSupportsRule) serialize(sb *strings.Builder, w WriterSettings, depth int) {
	sb.WriteString(w.indentN(depth))
	sb.WriteString("@supports ")
	if r.Condition != nil {
		r.Condition.serialize(sb)
	}
	sb.WriteByte('{')
	sb.WriteString(w.nl())
	for _, child := range r.Rules {
		child.serialize(sb, w, depth+1)
	}
	sb.WriteString(w.indentN(depth))
	sb.WriteByte('}')
	sb.WriteString(w.nl())
}

func (r *CSSLayerRule) serialize(sb *strings.Builder, w WriterSettings, depth int) {
	sb.WriteString(w.indentN(depth))
	sb.WriteString("@layer")
	if len(r.Names) > 0 {
		sb.WriteByte(' ')
		sb.WriteString(strings.Join(r.Names, ", "))
	}
	if r.Rules == nil {
		sb.WriteByte(';')
		sb.WriteString(w.nl())
		return
	}
	sb.WriteByte('{')
	sb.WriteString(w.nl())
	for _, child := range r.Rules {
		child.serialize(sb, w, depth+1)
	}
	sb.WriteString(w.indentN(depth))
	sb.WriteByte('}')
	sb.WriteString(w.nl())
}

func (r *CSSKeyframesRule) serialize(sb *strings.Builder, w WriterSettings, depth int) {
	sb.WriteString(w.indentN(depth))
	sb.WriteString("@keyframes ")
	sb.WriteString(r.Name)
	sb.WriteByte('{')
	sb.WriteString(w.nl())
	for _, b := range r.Blocks {
		sb.WriteString(w.indentN(depth + 1))
		sb.WriteString(strings.Join(b.Selectors, ","))
		sb.WriteByte('{')
		serializeDeclBody(sb, b.Declarations, w, depth+2)
		sb.WriteString(w.indentN(depth + 1))
		sb.WriteByte('}')
		sb.WriteString(w.nl())
	}
	sb.WriteString(w.indentN(depth))
	sb.WriteByte('}')
	sb.WriteString(w.nl())
}

func (r *CSSPageRule) serialize(sb *strings.Builder, w WriterSettings, depth int) {
	sb.WriteString(w.indentN(depth))
	sb.WriteString("@page")
	if r.Selector != nil {
		if r.Selector.Type != "" {
			sb.WriteByte(' ')
			sb.WriteString(r.Selector.Type)
		}
		for _, p := range r.Selector.Pseudos {
			sb.WriteByte(':')
			sb.WriteString(p)
		}
	}
	sb.WriteByte('{')
	serializeDeclBody(sb, r.Declarations, w, depth+1)
	for _, box := range r.MarginBoxes {
		sb.WriteString(w.indentN(depth + 1))
		sb.WriteByte('@')
		sb.WriteString(box.Name)
		sb.WriteByte('{')
		serializeDeclBody(sb, box.Declarations, w, depth+2)
		sb.WriteString(w.indentN(depth + 1))
		sb.WriteByte('}')
		sb.WriteString(w.nl())
	}
	sb.WriteString(w.indentN(depth))
	sb.WriteByte('}')
	sb.WriteString(w.nl())
}

func (r *CSSFontFaceRule) serialize(sb *strings.Builder, w WriterSettings, depth int) {
	sb.WriteString(w.indentN(depth))
	sb.WriteString("@font-face{")
	serializeDeclBody(sb, r.Declarations, w, depth+1)
	sb.WriteString(w.indentN(depth))
	sb.WriteByte('}')
	sb.WriteString(w.nl())
}

func (r *CSSUnknownRule) serialize(sb *strings.Builder, w WriterSettings, depth int) {
	sb.WriteString(w.indentN(depth))
	sb.WriteByte('@')
	sb.WriteString(r.Name)
	if r.Prelude != "" {
		sb.WriteByte(' ')
		sb.WriteString(r.Prelude)
	}
	if !r.HasBody {
		sb.WriteByte(';')
		sb.WriteString(w.nl())
		return
	}
	sb.WriteByte('{')
	sb.WriteString(r.Body)
	sb.WriteByte('}')
	sb.WriteString(w.nl())
}
