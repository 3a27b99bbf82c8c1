package cssprops

import (
	"testing"

	"github.com/gocssom/cssom/cssom"
)

func declExpr(t *testing.T, css string) *cssom.CSSExpression {
	t.Helper()
	sheet := cssom.ParseString(css, cssom.DefaultReaderSettings())
	if sheet == nil || len(sheet.Rules) == 0 || sheet.Rules[0].Style == nil || len(sheet.Rules[0].Style.Declarations) == 0 {
		t.Fatalf("expected a parseable declaration from %q, got %+v", css, sheet)
	}
	return sheet.Rules[0].Style.Declarations[0].Expression
}

func TestValidateUnknownProperty(t *testing.T) {
	v := New()
	known, valid := v.Validate("frobnicate", declExpr(t, "a { frobnicate: 1; }"))
	if known || valid {
		t.Errorf("expected unknown property, got known=%v valid=%v", known, valid)
	}
}

func TestValidateCustomPropertyAlwaysUnknown(t *testing.T) {
	v := New()
	known, _ := v.Validate("--accent", declExpr(t, "a { --accent: 1; }"))
	if known {
		t.Error("expected custom properties to report known=false")
	}
}

func TestValidateFontSize(t *testing.T) {
	v := New()
	tests := []struct {
		css   string
		valid bool
	}{
		{"a { font-size: 12px; }", true},
		{"a { font-size: large; }", true},
		{"a { font-size: 50%; }", true},
		{"a { font-size: bogus; }", false},
	}
	for _, tt := range tests {
		known, valid := v.Validate("font-size", declExpr(t, tt.css))
		if !known {
			t.Fatalf("%q: expected font-size to be known", tt.css)
		}
		if valid != tt.valid {
			t.Errorf("%q: expected valid=%v, got %v", tt.css, tt.valid, valid)
		}
	}
}

func TestValidateColor(t *testing.T) {
	v := New()
	tests := []struct {
		css   string
		valid bool
	}{
		{"a { color: red; }", true},
		{"a { color: #ff0000; }", true},
		{"a { color: rgba(1,2,3,4); }", true},
		{"a { color: 12px; }", false},
	}
	for _, tt := range tests {
		_, valid := v.Validate("color", declExpr(t, tt.css))
		if valid != tt.valid {
			t.Errorf("%q: expected valid=%v, got %v", tt.css, tt.valid, valid)
		}
	}
}

func TestValidateWidthAcceptsAuto(t *testing.T) {
	v := New()
	_, valid := v.Validate("width", declExpr(t, "a { width: auto; }"))
	if !valid {
		t.Error("expected width:auto to be valid")
	}
}

func TestValidateDisplayKeyword(t *testing.T) {
	v := New()
	_, valid := v.Validate("display", declExpr(t, "a { display: flex; }"))
	if !valid {
		t.Error("expected display:flex to be valid")
	}
	_, valid = v.Validate("display", declExpr(t, "a { display: bogus; }"))
	if valid {
		t.Error("expected display:bogus to be invalid")
	}
}

func TestValidateGlobalKeywordAlwaysValid(t *testing.T) {
	v := New()
	known, valid := v.Validate("width", declExpr(t, "a { width: inherit; }"))
	if !known || !valid {
		t.Error("expected a global keyword to be valid for any known property")
	}
}
