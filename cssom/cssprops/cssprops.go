// Package cssprops is a minimal PropertyValidator implementation. A real
// property-validation table (spec.md's out-of-scope "large static
// catalogue of ECSSProperty entries") would replace or extend this; this
// package exists to give the cssom.PropertyValidator trait one concrete,
// testable implementation rather than leaving it purely hypothetical.
//
// Grounded on the teacher's css/values.go font-size parsing: the same
// named-keyword-table-plus-unit-suffix shape, generalized from a single
// property (font-size) to a small registry of length/color/keyword
// properties.
package cssprops

import (
	"strings"

	"github.com/gocssom/cssom/cssom"
)

// lengthUnits lists the dimension units the length-valued checks accept.
// The lexer itself takes any identifier after a number as a unit.
var lengthUnits = map[string]bool{
	"px": true, "em": true, "rem": true, "pt": true, "pc": true, "in": true,
	"cm": true, "mm": true, "q": true, "vh": true, "vw": true, "vmin": true, "vmax": true,
	"fr": true,
}

// namedFontSizes mirrors CSS 2.1 §15.7's absolute-size keywords, grounded
// on the teacher's css/values.go ParseFontSize named-size table.
var namedFontSizes = map[string]bool{
	"xx-small": true, "x-small": true, "small": true, "medium": true,
	"large": true, "x-large": true, "xx-large": true, "smaller": true, "larger": true,
}

var globalKeywords = map[string]bool{
	"inherit": true, "initial": true, "unset": true, "revert": true,
}

// registry maps a property name to the check applied to its expression.
type registry map[string]func(*cssom.CSSExpression) bool

// Validator implements cssom.PropertyValidator for a small, hand-picked
// set of common properties (font-size, color, display, width/height).
// Properties outside the registry report known=false — the interpreter
// treats that as "not validated", never as an error.
type Validator struct {
	checks registry
}

// New builds a Validator with the built-in property registry.
func New() *Validator {
	v := &Validator{checks: registry{}}
	v.checks["font-size"] = v.checkFontSize
	v.checks["display"] = v.checkKeyword(
		"block", "inline", "inline-block", "flex", "inline-flex",
		"grid", "inline-grid", "none", "contents", "table", "list-item",
	)
	v.checks["color"] = v.checkColor
	v.checks["width"] = v.checkLengthOrPercentOrAuto
	v.checks["height"] = v.checkLengthOrPercentOrAuto
	return v
}

// Validate implements cssom.PropertyValidator.
func (v *Validator) Validate(name string, expr *cssom.CSSExpression) (known bool, valid bool) {
	if strings.HasPrefix(name, "--") {
		return false, false
	}
	name = strings.ToLower(strings.TrimLeft(name, "*_$"))
	check, ok := v.checks[name]
	if !ok {
		return false, false
	}
	if expr != nil && len(expr.Members) == 1 && len(expr.Members[0].Terms) == 1 {
		if t := expr.Members[0].Terms[0]; t.Kind == cssom.TermIdent && globalKeywords[strings.ToLower(t.Text)] {
			return true, true
		}
	}
	return true, check(expr)
}

func soleTerm(expr *cssom.CSSExpression) *cssom.CSSTerm {
	if expr == nil || len(expr.Members) != 1 || len(expr.Members[0].Terms) != 1 {
		return nil
	}
	return expr.Members[0].Terms[0]
}

func (v *Validator) checkFontSize(expr *cssom.CSSExpression) bool {
	t := soleTerm(expr)
	if t == nil {
		return false
	}
	switch t.Kind {
	case cssom.TermDimension:
		return lengthUnits[strings.ToLower(t.Unit)]
	case cssom.TermPercentage, cssom.TermNumber:
		return true
	case cssom.TermIdent:
		return namedFontSizes[strings.ToLower(t.Text)]
	default:
		return false
	}
}

func (v *Validator) checkColor(expr *cssom.CSSExpression) bool {
	t := soleTerm(expr)
	if t == nil {
		return false
	}
	switch t.Kind {
	case cssom.TermHashColor, cssom.TermIdent:
		return true
	case cssom.TermFunction:
		switch strings.ToLower(t.Text) {
		case "rgb", "rgba", "hsl", "hsla":
			return true
		}
	}
	return false
}

func (v *Validator) checkLengthOrPercentOrAuto(expr *cssom.CSSExpression) bool {
	t := soleTerm(expr)
	if t == nil {
		return false
	}
	switch t.Kind {
	case cssom.TermDimension:
		return lengthUnits[strings.ToLower(t.Unit)]
	case cssom.TermPercentage, cssom.TermNumber:
		return true
	case cssom.TermIdent:
		return strings.EqualFold(t.Text, "auto")
	default:
		return false
	}
}

func (v *Validator) checkKeyword(allowed ...string) func(*cssom.CSSExpression) bool {
	set := make(map[string]bool, len(allowed))
	for _, a := range allowed {
		set[a] = true
	}
	return func(expr *cssom.CSSExpression) bool {
		t := soleTerm(expr)
		if t == nil || t.Kind != cssom.TermIdent {
			return false
		}
		return set[strings.ToLower(t.Text)]
	}
}
