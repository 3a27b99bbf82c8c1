package charstream

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func readAll(s *Stream) (string, error) {
	var out []rune
	for {
		r, err := s.ReadChar()
		if err != nil {
			return string(out), err
		}
		out = append(out, r)
	}
}

func TestFilterNulBecomesReplacementChar(t *testing.T) {
	s := NewFromString("a\x00b", DefaultOptions())
	out, _ := readAll(s)
	require.Equal(t, "a�b", out)
}

func TestFilterFormFeedAndCRBecomeNewline(t *testing.T) {
	s := NewFromString("a\fb\r\nc\rd", DefaultOptions())
	out, _ := readAll(s)
	require.Equal(t, "a\nb\nc\nd", out)
}

func TestEscapeHexSequence(t *testing.T) {
	s := NewFromString(`\41 BC`, DefaultOptions())
	out, _ := readAll(s)
	require.Equal(t, "ABC", out)
}

func TestEscapeContinuation(t *testing.T) {
	s := NewFromString("\\\nfoo", DefaultOptions())
	out, _ := readAll(s)
	require.Equal(t, "foo", out)
}

func TestEscapeNineWithoutBrowserCompliantIsTab(t *testing.T) {
	s := NewFromString(`\9x`, DefaultOptions())
	out, _ := readAll(s)
	// Non-browser-compliant mode: \9 is a one-hex-digit escape for U+0009.
	if out != "\tx" {
		t.Errorf("expected tab escape, got %q", out)
	}
}

func TestBrowserCompliantNineHackKeepsBackslashLiteral(t *testing.T) {
	opts := DefaultOptions()
	opts.BrowserCompliant = true
	s := NewFromString(`\9`, opts)
	out, _ := readAll(s)
	require.Equal(t, `\9`, out)
}

func TestOverflowEscapeDroppedAndReported(t *testing.T) {
	var reported rune
	opts := DefaultOptions()
	opts.OnOverflowEscape = func(cp rune, line, col int) {
		reported = cp
	}
	s := NewFromString(`\110000x`, opts)
	out, _ := readAll(s)
	require.Equal(t, "x", out)
	require.Equal(t, rune(0x110000), reported)
}

func TestBeginTokenImageAndPositions(t *testing.T) {
	s := NewFromString("div { color: red; }", DefaultOptions())
	s.BeginToken()
	for i := 0; i < 2; i++ {
		s.ReadChar()
	}
	if got := s.Image(); got != "div" {
		t.Errorf("expected image 'div', got %q", got)
	}
	if s.BeginLine() != 1 || s.BeginCol() != 1 {
		t.Errorf("expected token to begin at (1,1), got (%d,%d)", s.BeginLine(), s.BeginCol())
	}
}

func TestBackupRedeliversCharacters(t *testing.T) {
	s := NewFromString("abc", DefaultOptions())
	s.BeginToken()
	s.ReadChar()
	s.ReadChar()
	s.Backup(2)
	if got := s.Image(); got != "a" {
		t.Errorf("expected image 'a' before redelivery, got %q", got)
	}
	r, _ := s.ReadChar()
	require.Equal(t, 'b', r)
}

func TestTabAdvancesToNextStop(t *testing.T) {
	s := NewFromString("a\tb", DefaultOptions())
	s.ReadChar() // 'a' at col 1, next col becomes 2
	// BeginToken consumes the tab; the next column advances to 9.
	s.BeginToken()
	if s.EndCol() != 9 {
		t.Errorf("expected column 9 after tab, got %d", s.EndCol())
	}
}

func TestRingGrowsAcrossLongToken(t *testing.T) {
	long := make([]byte, minRingCapacity+500)
	for i := range long {
		long[i] = 'a'
	}
	s := NewFromString(string(long), DefaultOptions())
	s.BeginToken()
	for i := 0; i < len(long); i++ {
		if _, err := s.ReadChar(); err != nil {
			t.Fatalf("unexpected error at %d: %v", i, err)
		}
	}
	if got := len(s.Image()); got != len(long) {
		t.Errorf("expected image length %d, got %d", len(long), got)
	}
}
