package cssomlog

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, WarnLevel)
	l.Info("should be dropped")
	if buf.Len() != 0 {
		t.Fatalf("expected no output below the configured level, got %q", buf.String())
	}
	l.Warn("should appear")
	if !strings.Contains(buf.String(), "should appear") {
		t.Errorf("expected warn message in output, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "[WARN]") {
		t.Errorf("expected level tag in output, got %q", buf.String())
	}
}

func TestWithFieldsMergesAndPreservesEarlierFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, DebugLevel)
	l1 := l.WithFields(map[string]interface{}{"a": 1})
	l2 := l1.WithFields(map[string]interface{}{"b": 2})
	l2.Info("msg")
	out := buf.String()
	if !strings.Contains(out, "a=1") || !strings.Contains(out, "b=2") {
		t.Errorf("expected both fields present, got %q", out)
	}
}

func TestWithFieldsDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, DebugLevel)
	base := l.WithFields(map[string]interface{}{"a": 1})
	_ = base.WithFields(map[string]interface{}{"b": 2})
	base.Info("msg")
	if strings.Contains(buf.String(), "b=2") {
		t.Errorf("expected parent logger unaffected by a later WithFields call, got %q", buf.String())
	}
}

func TestWithParseIDAttachesParseIDField(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, DebugLevel)
	l.WithParseID("abc-123").Info("parsing")
	if !strings.Contains(buf.String(), "parse_id=abc-123") {
		t.Errorf("expected parse_id field in output, got %q", buf.String())
	}
}

func TestFormattedVariants(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, DebugLevel)
	l.Warnf("value is %d", 42)
	if !strings.Contains(buf.String(), "value is 42") {
		t.Errorf("expected formatted message, got %q", buf.String())
	}
}

func TestLogFieldsAreOneOff(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, DebugLevel)
	l.LogFields(InfoLevel, "first", map[string]interface{}{"x": 1})
	l.Info("second")
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d", len(lines))
	}
	if strings.Contains(lines[1], "x=1") {
		t.Errorf("expected one-off field not attached to later calls, got %q", lines[1])
	}
}

func TestLevelString(t *testing.T) {
	tests := map[Level]string{
		DebugLevel: "DEBUG", InfoLevel: "INFO", WarnLevel: "WARN", ErrorLevel: "ERROR",
	}
	for lvl, want := range tests {
		if lvl.String() != want {
			t.Errorf("Level(%d).String() = %q, want %q", lvl, lvl.String(), want)
		}
	}
}

func TestPackageLevelSetLevelAndGetLevel(t *testing.T) {
	orig := GetLevel()
	defer SetLevel(orig)

	SetLevel(ErrorLevel)
	if GetLevel() != ErrorLevel {
		t.Errorf("expected GetLevel to reflect SetLevel, got %v", GetLevel())
	}
}

func TestPackageLevelSetOutputAndWithParseID(t *testing.T) {
	var buf bytes.Buffer
	origLevel := GetLevel()
	defer func() {
		SetOutput(io.Discard)
		SetLevel(origLevel)
	}()
	SetOutput(&buf)
	SetLevel(DebugLevel)
	WithParseID("xyz").Info("hello")
	if !strings.Contains(buf.String(), "parse_id=xyz") {
		t.Errorf("expected parse_id in package-level logger output, got %q", buf.String())
	}
}
