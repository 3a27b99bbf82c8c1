// Package cssom is the CSS object model: the typed, mutable tree the
// interpreter builds from a cssparse CST, plus the visitor framework and
// baseline serializer that operate on it.
//
// Spec references:
// - CSS Object Model (CSSOM) https://www.w3.org/TR/cssom-1/
// - CSS Syntax Level 3 §5.4 (rule/declaration construction)
package cssom

import (
	"fmt"

	"github.com/gocssom/cssom/internal/cssparse"
)

// InterpretErrorHandler receives diagnostics raised while walking the CST
// into a CSSOM. Warnings are recoverable (interpretation continues);
// errors are shape violations the interpreter cannot repair.
type InterpretErrorHandler interface {
	OnCSSInterpretationWarning(msg InterpretationMessage)
	OnCSSInterpretationError(msg InterpretationMessage)
}

// InterpretationMessage carries one interpreter diagnostic, tagged with
// the ParseID of the parse that produced it so concurrent callers (see
// cssom.ParseAll) can correlate it back to a specific input.
type InterpretationMessage struct {
	ParseID string
	Message string
	Node    *cssparse.CSTNode
}

func (m InterpretationMessage) String() string {
	return fmt.Sprintf("[%s] %s", m.ParseID, m.Message)
}

// ParseError mirrors cssparse.ParseErrorRecord plus the parse identity,
// delivered to ReaderSettings.ErrorHandler.
type ParseError struct {
	ParseID string
	Record  cssparse.ParseErrorRecord
}

// ParseException mirrors cssparse.ParseException plus the parse identity,
// delivered to ReaderSettings.ExceptionHandler.
type ParseException struct {
	ParseID string
	Inner   *cssparse.ParseException
}

func (e *ParseException) Error() string {
	return e.Inner.Error()
}

// ErrorHandler receives recoverable parse errors and fatal parse
// exceptions for one parse, tagged with that parse's identity.
type ErrorHandler interface {
	OnParseError(ParseError)
	OnParseException(*ParseException)
}

// DiscardErrorHandler implements both ErrorHandler and
// InterpretErrorHandler by ignoring everything; it is the zero-config
// default used when ReaderSettings leaves the handler fields nil.
type DiscardErrorHandler struct{}

func (DiscardErrorHandler) OnParseError(ParseError)                        {}
func (DiscardErrorHandler) OnParseException(*ParseException)               {}
func (DiscardErrorHandler) OnCSSInterpretationWarning(InterpretationMessage) {}
func (DiscardErrorHandler) OnCSSInterpretationError(InterpretationMessage)   {}

// CollectingErrorHandler accumulates every diagnostic it receives, for
// callers (tests, lint tooling) that want the full record rather than a
// callback. It is not safe for concurrent use on its own — wrap it in
// SynchronizedErrorHandler when driving cssom.ParseAll.
type CollectingErrorHandler struct {
	ParseErrors     []ParseError
	ParseExceptions []*ParseException
	Warnings        []InterpretationMessage
	Errors          []InterpretationMessage
}

func (c *CollectingErrorHandler) OnParseError(e ParseError) {
	c.ParseErrors = append(c.ParseErrors, e)
}

func (c *CollectingErrorHandler) OnParseException(e *ParseException) {
	c.ParseExceptions = append(c.ParseExceptions, e)
}

func (c *CollectingErrorHandler) OnCSSInterpretationWarning(m InterpretationMessage) {
	c.Warnings = append(c.Warnings, m)
}

func (c *CollectingErrorHandler) OnCSSInterpretationError(m InterpretationMessage) {
	c.Errors = append(c.Errors, m)
}
