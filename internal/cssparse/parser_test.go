package cssparse

import "testing"

func TestParseSimpleStyleRule(t *testing.T) {
	root := Parse("a { color: red; }", Options{})
	if root == nil {
		t.Fatal("expected a non-nil root")
	}
	if root.Type != NStylesheet || root.Arity() != 1 {
		t.Fatalf("expected 1 top-level rule, got %+v", root)
	}
	rule := root.Child(0)
	if rule.Type != NStyleRule || rule.Arity() != 2 {
		t.Fatalf("expected style rule with selector list + declaration list, got %+v", rule)
	}
	selList, decls := rule.Child(0), rule.Child(1)
	if selList.Type != NSelectorList || selList.Arity() != 1 {
		t.Fatalf("expected 1 selector, got %+v", selList)
	}
	if decls.Type != NDeclarationList || decls.Arity() != 1 {
		t.Fatalf("expected 1 declaration, got %+v", decls)
	}
	decl := decls.Child(0)
	if decl.Type != NDeclaration || decl.Text != "color" {
		t.Fatalf("expected declaration 'color', got %+v", decl)
	}
}

func TestParseMultipleSelectorsAndDeclarations(t *testing.T) {
	root := Parse("a, b.cls { color: red; width: 10px; }", Options{})
	rule := root.Child(0)
	selList := rule.Child(0)
	if selList.Arity() != 2 {
		t.Fatalf("expected 2 selectors, got %d", selList.Arity())
	}
	decls := rule.Child(1)
	if decls.Arity() != 2 {
		t.Fatalf("expected 2 declarations, got %d", decls.Arity())
	}
}

func TestParseCombinators(t *testing.T) {
	root := Parse("a > b + c ~ d e { color: red; }", Options{})
	sel := root.Child(0).Child(0).Child(0)
	if sel.Type != NSelector || sel.Arity() != 5 {
		t.Fatalf("expected 5 simple-selector sequences, got %+v", sel)
	}
	wantCombs := []string{"", ">", "+", "~", " "}
	for i, want := range wantCombs {
		got, _ := sel.Child(i).Value.(string)
		if i == 0 {
			continue // first has no combinator
		}
		if got != want {
			t.Errorf("combinator %d: want %q, got %q", i, want, got)
		}
	}
}

func TestParseAttributeSelectorOperators(t *testing.T) {
	tests := []struct {
		src string
		op  string
	}{
		{`[a=b]{color:red;}`, "="},
		{`[a~=b]{color:red;}`, "~="},
		{`[a|=b]{color:red;}`, "|="},
		{`[a^=b]{color:red;}`, "^="},
		{`[a$=b]{color:red;}`, "$="},
		{`[a*=b]{color:red;}`, "*="},
	}
	for _, tt := range tests {
		t.Run(tt.op, func(t *testing.T) {
			root := Parse(tt.src, Options{})
			if root == nil {
				t.Fatal("expected non-nil root")
			}
			seq := root.Child(0).Child(0).Child(0).Child(0)
			attr := seq.Child(0)
			if attr.Type != NAttributeSelector {
				t.Fatalf("expected attribute selector, got %+v", attr)
			}
			op, _ := attr.Value.(string)
			if op != tt.op {
				t.Errorf("expected op %q, got %q", tt.op, op)
			}
			if attr.Arity() != 1 || attr.Child(0).Text != "b" {
				t.Errorf("expected value 'b', got %+v", attr)
			}
		})
	}
}

func TestParsePseudoClassesAndLogicalSelectors(t *testing.T) {
	root := Parse("a:hover, b:not(.cls), c:nth-child(2n+1), d:nth-child(odd of .x) {color:red;}", Options{})
	selList := root.Child(0).Child(0)
	if selList.Arity() != 4 {
		t.Fatalf("expected 4 selectors, got %d", selList.Arity())
	}

	hover := selList.Child(0).Child(0).Child(0)
	if hover.Type != NPseudo || hover.Text != "hover" {
		t.Fatalf("expected simple pseudo 'hover', got %+v", hover)
	}

	not := selList.Child(1).Child(0).Child(0)
	if not.Type != NPseudo || not.Text != "not" || not.Arity() != 1 {
		t.Fatalf("expected :not() with 1 child, got %+v", not)
	}
	if not.Child(0).Type != NSelectorList {
		t.Fatalf("expected :not() argument to be a selector list, got %+v", not.Child(0))
	}

	nth := selList.Child(2).Child(0).Child(0)
	if nth.Type != NPseudo || nth.Arity() != 1 {
		t.Fatalf("expected :nth-child() with 1 child, got %+v", nth)
	}
	if nth.Child(0).Type != NNth || nth.Child(0).Text != "2n+1" {
		t.Fatalf("expected nth '2n+1', got %+v", nth.Child(0))
	}

	nthOf := selList.Child(3).Child(0).Child(0)
	nthNode := nthOf.Child(0)
	if nthNode.Type != NNth || nthNode.Arity() != 1 {
		t.Fatalf("expected nth-of-selector-list, got %+v", nthNode)
	}
	if nthNode.Child(0).Type != NSelectorList {
		t.Fatalf("expected 'of' selector list, got %+v", nthNode.Child(0))
	}
}

func TestParseShadowDOMPseudosTakeSelectorLists(t *testing.T) {
	root := Parse(":host(.foo), :host-context(.bar), ::slotted(span) {color:red;}", Options{})
	selList := root.Child(0).Child(0)
	if selList.Arity() != 3 {
		t.Fatalf("expected 3 selectors, got %d", selList.Arity())
	}

	host := selList.Child(0).Child(0).Child(0)
	if host.Type != NPseudo || host.Text != "host" || host.Arity() != 1 {
		t.Fatalf("expected :host() with 1 child, got %+v", host)
	}
	if host.Child(0).Type != NSelectorList {
		t.Fatalf("expected :host() argument to be a selector list, got %+v", host.Child(0))
	}

	hostContext := selList.Child(1).Child(0).Child(0)
	if hostContext.Type != NPseudo || hostContext.Text != "host-context" || hostContext.Arity() != 1 {
		t.Fatalf("expected :host-context() with 1 child, got %+v", hostContext)
	}
	if hostContext.Child(0).Type != NSelectorList {
		t.Fatalf("expected :host-context() argument to be a selector list, got %+v", hostContext.Child(0))
	}

	slotted := selList.Child(2).Child(0).Child(0)
	if slotted.Type != NPseudo || slotted.Text != "slotted" || !slotted.Value.(bool) {
		t.Fatalf("expected '::slotted()' with double-colon marker, got %+v", slotted)
	}
	if slotted.Arity() != 1 || slotted.Child(0).Type != NSelectorList {
		t.Fatalf("expected ::slotted() argument to be a selector list, got %+v", slotted.Child(0))
	}
}

func TestParseImportantDeclaration(t *testing.T) {
	root := Parse("a { color: red !important; }", Options{})
	decl := root.Child(0).Child(1).Child(0)
	if decl.Arity() != 2 || decl.Child(1).Type != NImportant {
		t.Fatalf("expected declaration with !important marker, got %+v", decl)
	}
}

func TestParseCustomProperty(t *testing.T) {
	root := Parse("a { --main-color: { not css }; }", Options{})
	decl := root.Child(0).Child(1).Child(0)
	isCustom, _ := decl.Value.(bool)
	if !isCustom {
		t.Fatalf("expected custom property flag set, got %+v", decl)
	}
}

func TestParseCalcExpression(t *testing.T) {
	root := Parse("a { width: calc(100% - 2 * 3px); }", Options{})
	decl := root.Child(0).Child(1).Child(0)
	expr := decl.Child(0)
	member := expr.Child(0)
	calc := member.Child(0)
	if calc.Type != NCalc {
		t.Fatalf("expected NCalc, got %+v", calc)
	}
	sum := calc.Child(0)
	if sum.Type != NCalcSum || sum.Arity() != 2 {
		t.Fatalf("expected calc-sum with 2 products, got %+v", sum)
	}
	second := sum.Child(1)
	op, _ := second.Value.(string)
	if op != "-" {
		t.Errorf("expected '-' sum operator, got %q", op)
	}
	if second.Type != NCalcProduct || second.Arity() != 2 {
		t.Fatalf("expected product with 2 factors, got %+v", second)
	}
}

func TestParseMediaRule(t *testing.T) {
	root := Parse("@media screen and (min-width: 10px) { a { color: red; } }", Options{})
	mediaRule := root.Child(0)
	if mediaRule.Type != NMediaRule {
		t.Fatalf("expected NMediaRule, got %+v", mediaRule)
	}
}

func TestParseAtCharsetImportNamespace(t *testing.T) {
	root := Parse(`@charset "UTF-8"; @import url(foo.css); @namespace svg url(http://www.w3.org/2000/svg);`, Options{})
	if root.Arity() != 3 {
		t.Fatalf("expected 3 top-level items, got %d", root.Arity())
	}
	if root.Child(0).Type != NCharset || root.Child(0).Text != "UTF-8" {
		t.Errorf("expected charset UTF-8, got %+v", root.Child(0))
	}
	if root.Child(1).Type != NImport {
		t.Errorf("expected import rule, got %+v", root.Child(1))
	}
	if root.Child(2).Type != NNamespace {
		t.Errorf("expected namespace rule, got %+v", root.Child(2))
	}
}

func TestParseUnknownAtRuleKeptForForwardCompatibility(t *testing.T) {
	root := Parse("@unknown-rule foo bar { a: b; }", Options{})
	if root.Arity() != 1 || root.Child(0).Type != NUnknownAtRule {
		t.Fatalf("expected unknown at-rule preserved, got %+v", root)
	}
}

func TestStrictModeFailsOnMalformedRule(t *testing.T) {
	root := Parse("a { color: ", Options{BrowserCompliant: false})
	if root != nil {
		t.Fatalf("expected nil root on strict-mode failure, got %+v", root)
	}
}

func TestBrowserCompliantModeRecoversFromMalformedRule(t *testing.T) {
	var errs []ParseErrorRecord
	handler := recordingHandler{errs: &errs}
	root := Parse("a { color ; } b { color: blue; }", Options{BrowserCompliant: true, ErrorHandler: &handler})
	if root == nil {
		t.Fatal("expected browser-compliant mode to recover a non-nil root")
	}
	if len(errs) == 0 {
		t.Error("expected at least one recorded parse error")
	}
	found := false
	for _, r := range root.Children {
		if r.Type == NStyleRule && r.Arity() == 2 {
			sel := r.Child(0).Child(0).Child(0)
			if sel.Text == "b" {
				found = true
			}
		}
	}
	if !found {
		t.Errorf("expected rule 'b' to still be parsed after recovery, got %+v", root)
	}
}

type recordingHandler struct {
	errs *[]ParseErrorRecord
	excs []*ParseException
}

func (h *recordingHandler) OnParseError(r ParseErrorRecord) {
	*h.errs = append(*h.errs, r)
}

func (h *recordingHandler) OnParseException(e *ParseException) {
	h.excs = append(h.excs, e)
}

func TestDeprecatedPropertyPrefixRequiresOptIn(t *testing.T) {
	tests := []struct {
		name string
		css  string
		want string
	}{
		{"star prefix", "a { *zoom: 1; }", "*zoom"},
		{"underscore prefix", "a { _zoom: 1; }", "_zoom"},
		{"dollar prefix", "a { $zoom: 1; }", "$zoom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := Parse(tt.css, Options{BrowserCompliant: true})
			decls := root.Child(0).Child(1)
			if decls.Arity() != 0 {
				t.Fatalf("expected deprecated-prefixed declaration dropped without opt-in, got %+v", decls)
			}

			root2 := Parse(tt.css, Options{BrowserCompliant: true, KeepDeprecatedProps: true})
			decls2 := root2.Child(0).Child(1)
			if decls2.Arity() != 1 || decls2.Child(0).Text != tt.want {
				t.Fatalf("expected %q kept with opt-in, got %+v", tt.want, decls2)
			}
		})
	}
}

func TestParseFunctionTerm(t *testing.T) {
	root := Parse(`a { background: url(x.png) linear-gradient(red, blue); }`, Options{})
	decls := root.Child(0).Child(1)
	expr := decls.Child(0).Child(0)
	member := expr.Child(0)
	if member.Arity() != 2 {
		t.Fatalf("expected 2 terms, got %+v", member)
	}
	if member.Child(0).Type != NURI {
		t.Errorf("expected first term to be a URI, got %+v", member.Child(0))
	}
	fn := member.Child(1)
	if fn.Type != NFunction || fn.Text != "linear-gradient" || fn.Arity() != 2 {
		t.Fatalf("expected linear-gradient(...) with 2 args, got %+v", fn)
	}
}

func TestParseLineNames(t *testing.T) {
	root := Parse("a { grid-template-columns: [col-start] 1fr [col-end]; }", Options{})
	expr := root.Child(0).Child(1).Child(0).Child(0)
	first := expr.Child(0).Child(0)
	if first.Type != NLineNames || first.Arity() != 1 || first.Child(0).Text != "col-start" {
		t.Fatalf("expected line-names [col-start], got %+v", first)
	}
}
