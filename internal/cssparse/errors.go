package cssparse

import "github.com/gocssom/cssom/internal/csslex"

// ParseErrorRecord describes one recoverable grammar violation: a skip
// performed in browser-compliant mode. It carries enough context for a
// caller to build a positioned diagnostic without the parser itself
// knowing how diagnostics should be formatted.
type ParseErrorRecord struct {
	Message      string
	Offending    csslex.Token
	Expected     []string
	FirstSkipped *csslex.Token
	LastSkipped  *csslex.Token
}

// ParseException is a fatal grammar violation: one that aborted the parse
// in strict mode, or that could not be recovered even in browser-compliant
// mode.
type ParseException struct {
	Message string
	Token   csslex.Token
}

func (e *ParseException) Error() string {
	return e.Message
}

// ErrorHandler receives recoverable parse errors and fatal parse
// exceptions. Both methods may be called any number of times during a
// single parse; neither return value is examined, matching the
// fire-and-forget, side-channel error reporting spec.md describes.
type ErrorHandler interface {
	OnParseError(ParseErrorRecord)
	OnParseException(*ParseException)
}

// fatalParseError is the internal panic payload used to unwind a strict-
// mode (or unrecoverable browser-compliant-mode) parse back to Parse,
// mirroring the generated-parser convention of throwing a ParseException
// rather than threading an error return through every production.
type fatalParseError struct {
	exc *ParseException
}
