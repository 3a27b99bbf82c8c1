package cssom

// Visitor traverses a CascadingStyleSheet in document order, invoking
// enter/exit callbacks per rule type and OnDeclaration per declaration,
// per spec.md §4.6's enter -> [children visited] -> exit state machine.
// All methods are optional; embed DefaultVisitor to get no-op defaults.
type Visitor interface {
	EnterStyleRule(r *CSSStyleRule)
	ExitStyleRule(r *CSSStyleRule)
	EnterMediaRule(r *CSSMediaRule)
	ExitMediaRule(r *CSSMediaRule)
	EnterSupportsRule(r *CSSSupportsRule)
	ExitSupportsRule(r *CSSSupportsRule)
	EnterLayerRule(r *CSSLayerRule)
	ExitLayerRule(r *CSSLayerRule)
	EnterKeyframesRule(r *CSSKeyframesRule)
	ExitKeyframesRule(r *CSSKeyframesRule)
	EnterPageRule(r *CSSPageRule)
	ExitPageRule(r *CSSPageRule)
	OnDeclaration(d *CSSDeclaration)
}

// DefaultVisitor implements Visitor with no-op methods; embed it in a
// concrete visitor to override only the callbacks that matter.
type DefaultVisitor struct{}

func (DefaultVisitor) EnterStyleRule(*CSSStyleRule)         {}
func (DefaultVisitor) ExitStyleRule(*CSSStyleRule)          {}
func (DefaultVisitor) EnterMediaRule(*CSSMediaRule)         {}
func (DefaultVisitor) ExitMediaRule(*CSSMediaRule)          {}
func (DefaultVisitor) EnterSupportsRule(*CSSSupportsRule)   {}
func (DefaultVisitor) ExitSupportsRule(*CSSSupportsRule)    {}
func (DefaultVisitor) EnterLayerRule(*CSSLayerRule)         {}
func (DefaultVisitor) ExitLayerRule(*CSSLayerRule)          {}
func (DefaultVisitor) EnterKeyframesRule(*CSSKeyframesRule) {}
func (DefaultVisitor) ExitKeyframesRule(*CSSKeyframesRule)  {}
func (DefaultVisitor) EnterPageRule(*CSSPageRule)           {}
func (DefaultVisitor) ExitPageRule(*CSSPageRule)            {}
func (DefaultVisitor) OnDeclaration(*CSSDeclaration)        {}

// Walk traverses sheet with v, visiting rules in declaration order.
func Walk(sheet *CascadingStyleSheet, v Visitor) {
	if sheet == nil {
		return
	}
	for _, r := range sheet.Rules {
		walkTopLevel(r, v)
	}
}

func walkTopLevel(r *TopLevelRule, v Visitor) {
	switch r.Type {
	case RuleStyle:
		v.EnterStyleRule(r.Style)
		for _, d := range r.Style.Declarations {
			v.OnDeclaration(d)
		}
		v.ExitStyleRule(r.Style)
	case RuleFontFace:
		for _, d := range r.FontFace.Declarations {
			v.OnDeclaration(d)
		}
	case RuleMedia:
		v.EnterMediaRule(r.Media)
		for _, child := range r.Media.Rules {
			walkTopLevel(child, v)
		}
		v.ExitMediaRule(r.Media)
	case RuleSupports:
		v.EnterSupportsRule(r.Supports)
		for _, child := range r.Supports.Rules {
			walkTopLevel(child, v)
		}
		v.ExitSupportsRule(r.Supports)
	case RuleLayer:
		v.EnterLayerRule(r.Layer)
		for _, child := range r.Layer.Rules {
			walkTopLevel(child, v)
		}
		v.ExitLayerRule(r.Layer)
	case RuleKeyframes:
		v.EnterKeyframesRule(r.Keyframes)
		for _, b := range r.Keyframes.Blocks {
			for _, d := range b.Declarations {
				v.OnDeclaration(d)
			}
		}
		v.ExitKeyframesRule(r.Keyframes)
	case RulePage:
		v.EnterPageRule(r.Page)
		for _, d := range r.Page.Declarations {
			v.OnDeclaration(d)
		}
		for _, box := range r.Page.MarginBoxes {
			for _, d := range box.Declarations {
				v.OnDeclaration(d)
			}
		}
		v.ExitPageRule(r.Page)
	}
}

// URLRef is a mutable reference to a URI-bearing position in the CSSOM:
// either an @import rule's URI or a URI-valued expression term. Mutating
// Set is observable after traversal completes, per spec.md §4.6's "the
// visitor exposes the URI term by reference, not by value."
type URLRef struct {
	get func() string
	set func(string)
}

func (u *URLRef) Get() string    { return u.get() }
func (u *URLRef) Set(uri string) { u.set(uri) }

func importURLRef(r *CSSImportRule) *URLRef {
	return &URLRef{
		get: func() string { return r.URI },
		set: func(s string) { r.URI = s },
	}
}

func termURLRef(t *CSSTerm) *URLRef {
	return &URLRef{
		get: func() string { return t.Text },
		set: func(s string) { t.Text = s },
	}
}

// URLVisitorFunc is invoked once per URL-bearing position: the mutable
// reference and the stack of enclosing top-level rules (outermost first,
// nil for a stand-alone import or declaration list with no enclosing
// rule), per spec.md's "keep this as an explicit stack parameter" design
// note.
type URLVisitorFunc func(ref *URLRef, enclosing []*TopLevelRule)

// VisitURLs walks sheet, invoking fn at every @import URI and every
// URI-valued expression term, threading the enclosing top-level rule
// stack through recursive descent into nested conditional group rules.
func VisitURLs(sheet *CascadingStyleSheet, fn URLVisitorFunc) {
	if sheet == nil {
		return
	}
	for _, imp := range sheet.Imports {
		fn(importURLRef(imp), nil)
	}
	for _, r := range sheet.Rules {
		visitURLsInTopLevel(r, nil, fn)
	}
}

func visitURLsInTopLevel(r *TopLevelRule, stack []*TopLevelRule, fn URLVisitorFunc) {
	switch r.Type {
	case RuleStyle:
		visitURLsInDeclarations(r.Style.Declarations, append(stack, r), fn)
	case RuleFontFace:
		visitURLsInDeclarations(r.FontFace.Declarations, append(stack, r), fn)
	case RuleMedia:
		next := append(stack, r)
		for _, child := range r.Media.Rules {
			visitURLsInTopLevel(child, next, fn)
		}
	case RuleSupports:
		next := append(stack, r)
		for _, child := range r.Supports.Rules {
			visitURLsInTopLevel(child, next, fn)
		}
	case RuleLayer:
		next := append(stack, r)
		for _, child := range r.Layer.Rules {
			visitURLsInTopLevel(child, next, fn)
		}
	case RuleKeyframes:
		next := append(stack, r)
		for _, b := range r.Keyframes.Blocks {
			visitURLsInDeclarations(b.Declarations, next, fn)
		}
	case RulePage:
		next := append(stack, r)
		visitURLsInDeclarations(r.Page.Declarations, next, fn)
		for _, box := range r.Page.MarginBoxes {
			visitURLsInDeclarations(box.Declarations, next, fn)
		}
	}
}

func visitURLsInDeclarations(decls []*CSSDeclaration, stack []*TopLevelRule, fn URLVisitorFunc) {
	for _, d := range decls {
		if d.Expression == nil {
			continue
		}
		for _, m := range d.Expression.Members {
			for _, t := range m.Terms {
				if t.Kind == TermURI {
					fn(termURLRef(t), stack)
				}
			}
		}
	}
}
