package cssom

import (
	"bytes"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/gocssom/cssom/cssomlog"
)

// resolveCharset implements spec.md §6's "Encoding resolution order":
// BOM, then a leading @charset rule, then the fallback (default
// ISO-8859-1), decoding with golang.org/x/text rather than a hand-rolled
// byte table.
func resolveCharset(raw []byte, fallback string, log *cssomlog.Logger) string {
	switch {
	case bytes.HasPrefix(raw, []byte{0xEF, 0xBB, 0xBF}):
		return "UTF-8"
	case bytes.HasPrefix(raw, []byte{0xFF, 0xFE}):
		return "UTF-16LE"
	case bytes.HasPrefix(raw, []byte{0xFE, 0xFF}):
		return "UTF-16BE"
	}

	if name, ok := sniffAtCharset(raw); ok {
		return name
	}

	if fallback == "" {
		log.Debug("no BOM or @charset found, falling back to ISO-8859-1")
		return "ISO-8859-1"
	}
	return fallback
}

// sniffAtCharset looks for a leading `@charset "name";` rule — it must
// appear at byte offset zero per the CSS Syntax spec, so a simple prefix
// scan suffices without invoking the full lexer.
func sniffAtCharset(raw []byte) (string, bool) {
	const prefix = `@charset "`
	if !bytes.HasPrefix(raw, []byte(prefix)) {
		return "", false
	}
	rest := raw[len(prefix):]
	end := bytes.IndexByte(rest, '"')
	if end < 0 {
		return "", false
	}
	return string(rest[:end]), true
}

// encodingFor resolves a charset name to a golang.org/x/text encoding.
// Names this module doesn't special-case fall back to ISO-8859-1, the
// spec's own default fallback charset.
func encodingFor(name string) encoding.Encoding {
	switch strings.ToUpper(name) {
	case "UTF-8", "UTF8":
		return unicode.UTF8
	case "UTF-16LE":
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	case "UTF-16BE":
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
	default:
		return charmap.ISO8859_1
	}
}

// decodeToUTF8 transforms raw bytes in the named encoding into a UTF-8
// string using golang.org/x/text/transform.
func decodeToUTF8(raw []byte, name string) (string, error) {
	enc := encodingFor(name)
	if enc == unicode.UTF8 {
		return string(raw), nil
	}
	r := transform.NewReader(bytes.NewReader(raw), enc.NewDecoder())
	decoded, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}
