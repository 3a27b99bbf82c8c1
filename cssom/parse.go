package cssom

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/gocssom/cssom/cssomlog"
	"github.com/gocssom/cssom/internal/charstream"
	"github.com/gocssom/cssom/internal/cssparse"
)

// MetricsRecorder receives parse-lifecycle observations. Nil by default;
// cssom/cssommetrics.PrometheusMetrics is the Prometheus-backed
// implementation.
type MetricsRecorder interface {
	ObserveParseDuration(d time.Duration)
	IncParseErrors(n int)
	IncInterpretationWarnings(n int)
}

// ReaderSettings configures one Parse call. It implements the
// configuration table in spec.md §6.
type ReaderSettings struct {
	FallbackCharset        string
	ErrorHandler           ErrorHandler
	BrowserCompliantMode   bool
	UseSourceLocation      bool
	TabSize                int
	InterpretErrorHandler  InterpretErrorHandler
	CSSUnescape            bool
	KeepDeprecatedProps    bool
	PropertyValidator      PropertyValidator
	Metrics                MetricsRecorder
}

// DefaultReaderSettings returns spec.md §6's documented defaults:
// browser-compliant mode off, source locations on, tab size 8, unescaping
// on, deprecated properties dropped.
func DefaultReaderSettings() ReaderSettings {
	return ReaderSettings{
		FallbackCharset:   "",
		UseSourceLocation: true,
		TabSize:           8,
		CSSUnescape:       true,
	}
}

type bridgeHandler struct {
	parseID string
	errs    ErrorHandler
	metrics MetricsRecorder
}

func (b *bridgeHandler) OnParseError(rec cssparse.ParseErrorRecord) {
	if b.metrics != nil {
		b.metrics.IncParseErrors(1)
	}
	if b.errs != nil {
		b.errs.OnParseError(ParseError{ParseID: b.parseID, Record: rec})
	}
}

func (b *bridgeHandler) OnParseException(exc *cssparse.ParseException) {
	if b.errs != nil {
		b.errs.OnParseException(&ParseException{ParseID: b.parseID, Inner: exc})
	}
}

type bridgeInterpretHandler struct {
	parseID string
	inner   InterpretErrorHandler
	metrics MetricsRecorder
}

func (b *bridgeInterpretHandler) OnCSSInterpretationWarning(m InterpretationMessage) {
	if b.metrics != nil {
		b.metrics.IncInterpretationWarnings(1)
	}
	m.ParseID = b.parseID
	if b.inner != nil {
		b.inner.OnCSSInterpretationWarning(m)
	}
}

func (b *bridgeInterpretHandler) OnCSSInterpretationError(m InterpretationMessage) {
	m.ParseID = b.parseID
	if b.inner != nil {
		b.inner.OnCSSInterpretationError(m)
	}
}

// Parse decodes raw as CSS text (resolving its charset per §6), parses it
// and interprets the result into a CascadingStyleSheet. It returns nil if
// a fatal parse or interpretation error aborted processing — settings'
// error handlers have already been invoked by the time Parse returns.
//
// Every call is tagged with a random v4 ParseID (github.com/google/uuid),
// threaded through cssomlog and attached to every ParseError/
// InterpretationMessage this call produces, so a caller running many
// concurrent parses (see ParseAll) can correlate a diagnostic back to its
// input.
func Parse(raw []byte, settings ReaderSettings) *CascadingStyleSheet {
	parseID := uuid.NewString()
	log := cssomlog.WithParseID(parseID)
	start := time.Now()
	defer func() {
		if settings.Metrics != nil {
			settings.Metrics.ObserveParseDuration(time.Since(start))
		}
	}()

	charsetName := resolveCharset(raw, settings.FallbackCharset, log)
	text, err := decodeToUTF8(raw, charsetName)
	if err != nil {
		log.Warnf("charset decode failed for %q, treating input as raw UTF-8: %v", charsetName, err)
		text = string(raw)
	}

	return parseText(text, parseID, settings, log)
}

// ParseString parses already-decoded text directly, bypassing charset
// resolution, for the "already-decoded text" reader entry point spec.md
// §6 describes.
func ParseString(text string, settings ReaderSettings) *CascadingStyleSheet {
	parseID := uuid.NewString()
	log := cssomlog.WithParseID(parseID)
	start := time.Now()
	defer func() {
		if settings.Metrics != nil {
			settings.Metrics.ObserveParseDuration(time.Since(start))
		}
	}()
	return parseText(text, parseID, settings, log)
}

func parseText(text string, parseID string, settings ReaderSettings, log *cssomlog.Logger) *CascadingStyleSheet {
	tabSize := settings.TabSize
	if tabSize == 0 {
		tabSize = 8
	}

	parseOpts := cssparse.Options{
		BrowserCompliant:    settings.BrowserCompliantMode,
		KeepDeprecatedProps: settings.KeepDeprecatedProps,
		ErrorHandler: &bridgeHandler{
			parseID: parseID, errs: settings.ErrorHandler, metrics: settings.Metrics,
		},
		CharstreamOptions: charstream.Options{
			TabSize:          tabSize,
			Unescape:         settings.CSSUnescape,
			BrowserCompliant: settings.BrowserCompliantMode,
			TrackPosition:    true,
		},
	}

	cst := cssparse.Parse(text, parseOpts)
	if cst == nil {
		log.Debug("parse aborted, no CST produced")
		return nil
	}

	interpretHandler := &bridgeInterpretHandler{
		parseID: parseID, inner: settings.InterpretErrorHandler, metrics: settings.Metrics,
	}
	sheet := Interpret(cst, parseID, interpretHandler, settings.UseSourceLocation, settings.PropertyValidator)
	return sheet
}

// ParseAll parses each entry of sources concurrently, bounded by
// maxConcurrency (a value <= 0 means unbounded), using
// golang.org/x/sync/errgroup. Each individual Parse call still runs
// synchronously end-to-end on one goroutine, preserving the single-
// threaded-per-parse invariant of spec.md §5; only the fan-out across
// independent sources is concurrent. The returned slice has the same
// length and order as sources; an entry is nil if that source's parse
// failed fatally.
func ParseAll(sources [][]byte, settings ReaderSettings, maxConcurrency int) []*CascadingStyleSheet {
	results := make([]*CascadingStyleSheet, len(sources))
	var g errgroup.Group
	if maxConcurrency > 0 {
		g.SetLimit(maxConcurrency)
	}
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			results[i] = Parse(src, settings)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// SynchronizedErrorHandler wraps an ErrorHandler/InterpretErrorHandler
// pair with a mutex, so a single collecting handler can be shared safely
// across the concurrent parses ParseAll drives — spec.md §5's "a
// collecting error handler ... must guard its internal list with a
// mutex," made reusable instead of hand-rolled per caller.
type SynchronizedErrorHandler struct {
	mu    sync.Mutex
	Inner interface {
		ErrorHandler
		InterpretErrorHandler
	}
}

func (s *SynchronizedErrorHandler) OnParseError(e ParseError) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Inner.OnParseError(e)
}

func (s *SynchronizedErrorHandler) OnParseException(e *ParseException) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Inner.OnParseException(e)
}

func (s *SynchronizedErrorHandler) OnCSSInterpretationWarning(m InterpretationMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Inner.OnCSSInterpretationWarning(m)
}

func (s *SynchronizedErrorHandler) OnCSSInterpretationError(m InterpretationMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Inner.OnCSSInterpretationError(m)
}
