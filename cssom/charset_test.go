package cssom

import (
	"testing"

	"github.com/gocssom/cssom/cssomlog"
)

func TestResolveCharsetBOM(t *testing.T) {
	log := cssomlog.New(nil, cssomlog.ErrorLevel)
	tests := []struct {
		name string
		raw  []byte
		want string
	}{
		{"utf-8 BOM", []byte{0xEF, 0xBB, 0xBF, 'a'}, "UTF-8"},
		{"utf-16le BOM", []byte{0xFF, 0xFE, 'a'}, "UTF-16LE"},
		{"utf-16be BOM", []byte{0xFE, 0xFF, 'a'}, "UTF-16BE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveCharset(tt.raw, "", log)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveCharsetAtRule(t *testing.T) {
	log := cssomlog.New(nil, cssomlog.ErrorLevel)
	got := resolveCharset([]byte(`@charset "ISO-8859-1"; a{color:red}`), "", log)
	if got != "ISO-8859-1" {
		t.Errorf("got %q, want ISO-8859-1", got)
	}
}

func TestResolveCharsetFallback(t *testing.T) {
	log := cssomlog.New(nil, cssomlog.ErrorLevel)
	if got := resolveCharset([]byte("a{color:red}"), "", log); got != "ISO-8859-1" {
		t.Errorf("expected default fallback ISO-8859-1, got %q", got)
	}
	if got := resolveCharset([]byte("a{color:red}"), "UTF-8", log); got != "UTF-8" {
		t.Errorf("expected caller-supplied fallback honored, got %q", got)
	}
}

func TestSniffAtCharsetRequiresOffsetZero(t *testing.T) {
	if _, ok := sniffAtCharset([]byte(` @charset "UTF-8";`)); ok {
		t.Error("expected a leading space to prevent @charset detection")
	}
	if name, ok := sniffAtCharset([]byte(`@charset "UTF-8"; rest`)); !ok || name != "UTF-8" {
		t.Errorf("expected UTF-8 detected at offset zero, got %q, %v", name, ok)
	}
}

func TestDecodeToUTF8PassesThroughUTF8(t *testing.T) {
	out, err := decodeToUTF8([]byte("hello"), "UTF-8")
	if err != nil || out != "hello" {
		t.Errorf("expected passthrough decode, got %q, %v", out, err)
	}
}

func TestDecodeToUTF8FromISO8859_1(t *testing.T) {
	// 0xE9 in ISO-8859-1 is U+00E9 (é).
	out, err := decodeToUTF8([]byte{'a', 0xE9}, "ISO-8859-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "aé" {
		t.Errorf("got %q, want %q", out, "aé")
	}
}
