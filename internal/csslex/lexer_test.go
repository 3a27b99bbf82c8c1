package csslex

import (
	"testing"

	"github.com/gocssom/cssom/internal/charstream"
)

// lex returns the significant tokens (whitespace and comments dropped),
// mirroring how the parser consumes the lexer.
func lex(src string) []Token {
	l := New(charstream.NewFromString(src, charstream.DefaultOptions()))
	var toks []Token
	for {
		tok := l.Next()
		if tok.Kind == EOF {
			break
		}
		if tok.Kind == Whitespace || tok.Kind == Comment {
			continue
		}
		toks = append(toks, tok)
	}
	return toks
}

func TestLexIdentAndDelim(t *testing.T) {
	toks := lex("color:red")
	if len(toks) != 3 {
		t.Fatalf("expected 3 tokens, got %d", len(toks))
	}
	if toks[0].Kind != Ident || toks[0].Image != "color" {
		t.Errorf("token 0: got kind=%v image=%q", toks[0].Kind, toks[0].Image)
	}
	if toks[1].Kind != Colon {
		t.Errorf("token 1: expected Colon, got %v", toks[1].Kind)
	}
	if toks[2].Kind != Ident || toks[2].Image != "red" {
		t.Errorf("token 2: got kind=%v image=%q", toks[2].Kind, toks[2].Image)
	}
}

func TestLexString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"double quotes", `"hello"`, "hello"},
		{"single quotes", `'world'`, "world"},
		{"with spaces", `"hello world"`, "hello world"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks := lex(tt.input)
			if len(toks) != 1 {
				t.Fatalf("expected 1 token, got %d", len(toks))
			}
			if toks[0].Kind != String {
				t.Errorf("expected String, got %v", toks[0].Kind)
			}
			if toks[0].Image != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, toks[0].Image)
			}
		})
	}
}

func TestLexBadStringOnBareNewline(t *testing.T) {
	toks := lex("\"abc\ndef\"")
	if len(toks) == 0 || toks[0].Kind != BadString {
		t.Fatalf("expected BadString, got %+v", toks)
	}
}

func TestLexNumberPercentageDimension(t *testing.T) {
	toks := lex("3 50% 12px -4.5em")
	if len(toks) != 4 {
		t.Fatalf("expected 4 tokens, got %d: %+v", len(toks), toks)
	}
	if toks[0].Kind != Number || toks[0].Image != "3" {
		t.Errorf("token 0: %+v", toks[0])
	}
	if toks[1].Kind != Percentage {
		t.Errorf("token 1: expected Percentage, got %v", toks[1].Kind)
	}
	if toks[2].Kind != Dimension || toks[2].Unit != "px" {
		t.Errorf("token 2: expected Dimension unit px, got %+v", toks[2])
	}
	if toks[3].Kind != Dimension || toks[3].Unit != "em" || toks[3].NumericValue != "-4.5" {
		t.Errorf("token 3: %+v", toks[3])
	}
}

func TestLexDimensionUnitStartingWithE(t *testing.T) {
	toks := lex("3em")
	if len(toks) != 1 || toks[0].Kind != Dimension || toks[0].Unit != "em" {
		t.Fatalf("expected single Dimension(em), got %+v", toks)
	}
}

func TestLexExponentNumber(t *testing.T) {
	toks := lex("1e3")
	if len(toks) != 1 || toks[0].Kind != Number {
		t.Fatalf("expected single Number, got %+v", toks)
	}
}

func TestLexHashIDVsUnrestricted(t *testing.T) {
	toks := lex("#header #123")
	if len(toks) != 2 {
		t.Fatalf("expected 2 hash tokens, got %d: %+v", len(toks), toks)
	}
	if toks[0].Kind != Hash || !toks[0].HashIsID {
		t.Errorf("expected id-like hash, got %+v", toks[0])
	}
	last := toks[len(toks)-1]
	if last.Kind != Hash || last.HashIsID {
		t.Errorf("expected unrestricted hash, got %+v", last)
	}
}

func TestLexFunctionVsIdent(t *testing.T) {
	toks := lex("calc(1px) color")
	if toks[0].Kind != Function || toks[0].Image != "calc" {
		t.Errorf("token 0: expected Function(calc), got %+v", toks[0])
	}
}

func TestLexAtKeyword(t *testing.T) {
	toks := lex("@media")
	if len(toks) != 1 || toks[0].Kind != AtKeyword || toks[0].Image != "media" {
		t.Fatalf("expected AtKeyword(media), got %+v", toks)
	}
}

func TestLexURLToken(t *testing.T) {
	toks := lex("url(a.gif)")
	if len(toks) != 1 || toks[0].Kind != URL || toks[0].Image != "a.gif" {
		t.Fatalf("expected URL(a.gif), got %+v", toks)
	}
}

func TestLexURLWithQuotedArgIsFunction(t *testing.T) {
	toks := lex(`url("a.gif")`)
	if len(toks) != 3 || toks[0].Kind != Function || toks[1].Kind != String || toks[2].Kind != RParen {
		t.Fatalf("expected Function+String+RParen, got %+v", toks)
	}
}

func TestLexCDOCDC(t *testing.T) {
	toks := lex("<!-- -->")
	if len(toks) != 2 || toks[0].Kind != CDO || toks[1].Kind != CDC {
		t.Fatalf("expected CDO,CDC, got %+v", toks)
	}
}

func TestLexCommentBetweenIdentsSkipped(t *testing.T) {
	toks := lex("a/* c */b")
	if len(toks) != 2 {
		t.Fatalf("expected 2 idents (comment dropped), got %d: %+v", len(toks), toks)
	}
}

func TestLexCustomPropertyIdent(t *testing.T) {
	toks := lex("--main-color")
	if len(toks) != 1 || toks[0].Kind != Ident || toks[0].Image != "--main-color" {
		t.Fatalf("expected custom property ident, got %+v", toks)
	}
}

func TestLexVendorPrefixedIdentViaHyphen(t *testing.T) {
	toks := lex("-webkit-transform")
	if len(toks) != 1 || toks[0].Kind != Ident || toks[0].Image != "-webkit-transform" {
		t.Fatalf("expected vendor-prefixed ident, got %+v", toks)
	}
}

func TestSkipToRecoveryPointStopsAtSemicolon(t *testing.T) {
	l := New(charstream.NewFromString("garbage ) ; color:red", charstream.DefaultOptions()))
	_, _, stopped := l.SkipToRecoveryPoint()
	if stopped.Kind != Semicolon {
		t.Fatalf("expected to stop at semicolon, stopped at %v", stopped.Kind)
	}
	next := l.Next()
	if next.Kind != Whitespace {
		t.Fatalf("expected whitespace after recovery point, got %v", next.Kind)
	}
}
