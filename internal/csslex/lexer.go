package csslex

import (
	"strings"

	"github.com/gocssom/cssom/internal/charstream"
)

// Lexer produces CSS 3 tokens from a character stream. It is the
// generalization of the teacher's flat, single-purpose Tokenizer: the
// switch-on-first-character shape is the same, but every production is
// extended to the full CSS 3 token set (custom-property idents, url(),
// numeric units, CDO/CDC, at-keywords with escapes already resolved by the
// character stream below it).
//
// Spec references:
// - CSS Syntax Level 3 §4.3 Tokenizer algorithms
type Lexer struct {
	stream *charstream.Stream
	prev   *Token
}

// New creates a Lexer reading from stream. The stream is expected to have
// already applied input preprocessing and (if enabled) escape unescaping;
// the lexer works entirely in terms of the filtered, unescaped characters
// it reads from stream.
func New(stream *charstream.Stream) *Lexer {
	return &Lexer{stream: stream}
}

// Prev returns the token immediately preceding the one most recently
// returned by Next, or nil at the start of the stream.
func (l *Lexer) Prev() *Token {
	if l.prev == nil {
		return nil
	}
	return l.prev.Prev
}

// Next returns the next token, including whitespace and comment tokens.
// Callers that want only significant tokens should skip those kinds
// themselves (the parser does this in its own advance method).
func (l *Lexer) Next() Token {
	tok := l.next()
	if l.prev != nil {
		before := *l.prev
		before.Prev = nil
		tok.Prev = &before
	}
	cur := tok
	l.prev = &cur
	return tok
}

func (l *Lexer) next() Token {
	r, err := l.stream.BeginToken()
	if err != nil {
		return l.finish(Token{Kind: EOF})
	}

	switch {
	case isWhitespace(r):
		return l.readWhitespace()
	case r == '"' || r == '\'':
		return l.readString(r)
	case r == '#':
		return l.readHash()
	case isDigit(r):
		l.stream.Backup(1)
		return l.readNumeric()
	case r == '+' || r == '-' || r == '.':
		return l.readSignOrDot(r)
	case r == '@':
		return l.readAtKeyword()
	case r == '\\':
		l.stream.Backup(1)
		return l.readIdentLike()
	case isNameStart(r):
		l.stream.Backup(1)
		return l.readIdentLike()
	case r == '/':
		return l.readSlash()
	case r == '<':
		return l.readCDO()
	}

	switch r {
	case ':':
		return l.finish(Token{Kind: Colon, Image: ":"})
	case ';':
		return l.finish(Token{Kind: Semicolon, Image: ";"})
	case ',':
		return l.finish(Token{Kind: Comma, Image: ","})
	case '{':
		return l.finish(Token{Kind: LBrace, Image: "{"})
	case '}':
		return l.finish(Token{Kind: RBrace, Image: "}"})
	case '(':
		return l.finish(Token{Kind: LParen, Image: "("})
	case ')':
		return l.finish(Token{Kind: RParen, Image: ")"})
	case '[':
		return l.finish(Token{Kind: LBracket, Image: "["})
	case ']':
		return l.finish(Token{Kind: RBracket, Image: "]"})
	}

	return l.finish(Token{Kind: Delim, Image: string(r)})
}

func (l *Lexer) finish(t Token) Token {
	if t.Image == "" {
		t.Image = l.stream.Image()
	}
	t.BeginLine, t.BeginCol = l.stream.BeginLine(), l.stream.BeginCol()
	t.EndLine, t.EndCol = l.stream.EndLine(), l.stream.EndCol()
	return t
}

func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isNameStart(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_' || r > 127
}

func isNameChar(r rune) bool {
	return isNameStart(r) || isDigit(r) || r == '-'
}

func (l *Lexer) readWhitespace() Token {
	for {
		r, err := l.stream.ReadChar()
		if err != nil || !isWhitespace(r) {
			if err == nil {
				l.stream.Backup(1)
			}
			break
		}
	}
	return l.finish(Token{Kind: Whitespace})
}

func (l *Lexer) readString(quote rune) Token {
	var sb strings.Builder
	for {
		r, err := l.stream.ReadChar()
		if err != nil {
			// Unterminated string: CSS treats EOF as a (non-bad) string end.
			return l.finish(Token{Kind: String, Image: sb.String()})
		}
		if r == quote {
			return l.finish(Token{Kind: String, Image: sb.String()})
		}
		if r == '\n' {
			l.stream.Backup(1)
			return l.finish(Token{Kind: BadString, Image: sb.String()})
		}
		sb.WriteRune(r)
	}
}

func (l *Lexer) readName() string {
	var sb strings.Builder
	for {
		r, err := l.stream.ReadChar()
		if err != nil || !isNameChar(r) {
			if err == nil {
				l.stream.Backup(1)
			}
			break
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func (l *Lexer) readHash() Token {
	r, err := l.stream.ReadChar()
	if err != nil || !isNameChar(r) {
		if err == nil {
			l.stream.Backup(1)
		}
		return l.finish(Token{Kind: Delim, Image: "#"})
	}
	isID := isNameStart(r)
	l.stream.Backup(1)
	name := l.readName()
	return l.finish(Token{Kind: Hash, Image: name, HashIsID: isID})
}

func (l *Lexer) readAtKeyword() Token {
	r, err := l.stream.ReadChar()
	if err != nil || !(isNameStart(r) || r == '-') {
		if err == nil {
			l.stream.Backup(1)
		}
		return l.finish(Token{Kind: Delim, Image: "@"})
	}
	l.stream.Backup(1)
	name := l.readName()
	return l.finish(Token{Kind: AtKeyword, Image: name})
}

func (l *Lexer) readSignOrDot(first rune) Token {
	// Could be the start of a number ("-1px", ".5em", "+3"), a
	// custom-property / vendor-prefixed ident ("-moz-foo", "--accent"),
	// or CDC ("-->").
	if first == '-' {
		r1, err1 := l.stream.ReadChar()
		if err1 != nil {
			return l.finish(Token{Kind: Delim, Image: "-"})
		}
		if r1 == '-' {
			r2, err2 := l.stream.ReadChar()
			if err2 == nil && r2 == '>' {
				return l.finish(Token{Kind: CDC, Image: "-->"})
			}
			if err2 == nil {
				l.stream.Backup(1) // un-read r2
			}
			l.stream.Backup(2) // un-read r1 and the leading '-'
			return l.readIdentLike()
		}
		if isDigit(r1) || r1 == '.' {
			l.stream.Backup(2)
			return l.readNumeric()
		}
		if isNameStart(r1) || r1 == '\\' {
			l.stream.Backup(2)
			return l.readIdentLike()
		}
		l.stream.Backup(1)
		return l.finish(Token{Kind: Delim, Image: "-"})
	}

	if first == '.' {
		r1, err1 := l.stream.ReadChar()
		if err1 == nil && isDigit(r1) {
			l.stream.Backup(2)
			return l.readNumeric()
		}
		if err1 == nil {
			l.stream.Backup(1)
		}
		return l.finish(Token{Kind: Delim, Image: "."})
	}

	// first == '+'
	r1, err1 := l.stream.ReadChar()
	if err1 == nil && (isDigit(r1) || r1 == '.') {
		l.stream.Backup(2)
		return l.readNumeric()
	}
	if err1 == nil {
		l.stream.Backup(1)
	}
	return l.finish(Token{Kind: Delim, Image: "+"})
}

func (l *Lexer) readNumeric() Token {
	var sb strings.Builder

	r, err := l.stream.ReadChar()
	if err == nil && (r == '+' || r == '-') {
		sb.WriteRune(r)
		r, err = l.stream.ReadChar()
	}
	for err == nil && isDigit(r) {
		sb.WriteRune(r)
		r, err = l.stream.ReadChar()
	}
	if err == nil && r == '.' {
		peekDigit, perr := l.stream.ReadChar()
		if perr == nil && isDigit(peekDigit) {
			sb.WriteRune('.')
			sb.WriteRune(peekDigit)
			r, err = l.stream.ReadChar()
			for err == nil && isDigit(r) {
				sb.WriteRune(r)
				r, err = l.stream.ReadChar()
			}
		} else {
			if perr == nil {
				l.stream.Backup(1)
			}
		}
	}
	if err == nil && (r == 'e' || r == 'E') {
		expMark := r
		next1, err1 := l.stream.ReadChar()
		switch {
		case err1 == nil && isDigit(next1):
			sb.WriteRune(expMark)
			sb.WriteRune(next1)
			r, err = l.stream.ReadChar()
			for err == nil && isDigit(r) {
				sb.WriteRune(r)
				r, err = l.stream.ReadChar()
			}
		case err1 == nil && (next1 == '+' || next1 == '-'):
			next2, err2 := l.stream.ReadChar()
			if err2 == nil && isDigit(next2) {
				sb.WriteRune(expMark)
				sb.WriteRune(next1)
				sb.WriteRune(next2)
				r, err = l.stream.ReadChar()
				for err == nil && isDigit(r) {
					sb.WriteRune(r)
					r, err = l.stream.ReadChar()
				}
			} else {
				if err2 == nil {
					l.stream.Backup(1)
				}
				l.stream.Backup(1) // un-read next1
				r, err = expMark, nil
			}
		default:
			if err1 == nil {
				l.stream.Backup(1)
			}
			r, err = expMark, nil
		}
	}

	numeric := sb.String()

	if err == nil && r == '%' {
		return l.finish(Token{Kind: Percentage, NumericValue: numeric, Image: numeric + "%"})
	}
	if err == nil && (isNameStart(r) || r == '\\') {
		l.stream.Backup(1)
		unit := l.readName()
		return l.finish(Token{Kind: Dimension, NumericValue: numeric, Unit: unit, Image: numeric + unit})
	}
	if err == nil {
		l.stream.Backup(1)
	}
	return l.finish(Token{Kind: Number, NumericValue: numeric, Image: numeric})
}

// readIdentLike reads an identifier and, depending on what follows,
// reclassifies it as a Function or url() token.
func (l *Lexer) readIdentLike() Token {
	name := l.readName()
	r, err := l.stream.ReadChar()
	if err != nil || r != '(' {
		if err == nil {
			l.stream.Backup(1)
		}
		return l.finish(Token{Kind: Ident, Image: name})
	}

	if strings.EqualFold(name, "url") {
		if tok, ok := l.tryReadURL(); ok {
			return tok
		}
		// Not a bare URL body (e.g. it starts with a quote); treat as an
		// ordinary function and let the parser consume the string token
		// that follows.
	}
	return l.finish(Token{Kind: Function, Image: name})
}

// tryReadURL consumes a url(...) token body when it is not a quoted
// string, per the dedicated "consume a url token" algorithm. ok is false
// when the body turned out to start with a quote, in which case the '('
// has still been consumed and the caller should fall back to emitting a
// Function token.
func (l *Lexer) tryReadURL() (Token, bool) {
	for {
		r, err := l.stream.ReadChar()
		if err != nil || !isWhitespace(r) {
			if err == nil {
				l.stream.Backup(1)
			}
			break
		}
	}
	r, err := l.stream.ReadChar()
	if err == nil && (r == '"' || r == '\'') {
		l.stream.Backup(1)
		return Token{}, false
	}
	if err == nil {
		l.stream.Backup(1)
	}

	var sb strings.Builder
	for {
		r, err := l.stream.ReadChar()
		if err != nil {
			return l.finish(Token{Kind: URL, Image: sb.String()}), true
		}
		if r == ')' {
			return l.finish(Token{Kind: URL, Image: sb.String()}), true
		}
		if isWhitespace(r) {
			for {
				nr, nerr := l.stream.ReadChar()
				if nerr != nil {
					return l.finish(Token{Kind: URL, Image: sb.String()}), true
				}
				if nr == ')' {
					return l.finish(Token{Kind: URL, Image: sb.String()}), true
				}
				if !isWhitespace(nr) {
					// Trailing whitespace followed by something other than
					// ')' is an error; recover as a bad-url and skip to
					// the matching close paren.
					l.skipBadURLRemainder()
					return l.finish(Token{Kind: BadURL, Image: sb.String()}), true
				}
			}
		}
		if r == '(' || r == '"' || r == '\'' {
			l.skipBadURLRemainder()
			return l.finish(Token{Kind: BadURL, Image: sb.String()}), true
		}
		sb.WriteRune(r)
	}
}

func (l *Lexer) skipBadURLRemainder() {
	for {
		r, err := l.stream.ReadChar()
		if err != nil || r == ')' {
			return
		}
	}
}

func (l *Lexer) readSlash() Token {
	r, err := l.stream.ReadChar()
	if err != nil || r != '*' {
		if err == nil {
			l.stream.Backup(1)
		}
		return l.finish(Token{Kind: Delim, Image: "/"})
	}
	for {
		c, cerr := l.stream.ReadChar()
		if cerr != nil {
			return l.finish(Token{Kind: Comment})
		}
		if c == '*' {
			c2, cerr2 := l.stream.ReadChar()
			if cerr2 == nil && c2 == '/' {
				return l.finish(Token{Kind: Comment})
			}
			if cerr2 == nil {
				l.stream.Backup(1)
			}
		}
	}
}

func (l *Lexer) readCDO() Token {
	consumed := 0
	for _, want := range []rune{'!', '-', '-'} {
		r, err := l.stream.ReadChar()
		if err != nil {
			l.stream.Backup(consumed)
			return l.finish(Token{Kind: Delim, Image: "<"})
		}
		consumed++
		if r != want {
			l.stream.Backup(consumed)
			return l.finish(Token{Kind: Delim, Image: "<"})
		}
	}
	return l.finish(Token{Kind: CDO, Image: "<!--"})
}

// SkipToRecoveryPoint implements the lexer-level half of browser-compliant
// recovery: advance past tokens until a ';' or a balanced '}' is found at
// the brace depth active when the call began, returning the first and
// last tokens consumed (the stopping token included; both are nil only
// when the stream is already at EOF).
func (l *Lexer) SkipToRecoveryPoint() (first, last *Token, stoppedAt Token) {
	depth := 0
	for {
		tok := l.Next()
		if tok.Kind == EOF {
			return first, last, tok
		}
		if first == nil {
			t := tok
			first = &t
		}
		t := tok
		last = &t
		switch tok.Kind {
		case LBrace:
			depth++
		case RBrace:
			if depth == 0 {
				return first, last, tok
			}
			depth--
		case Semicolon:
			if depth == 0 {
				return first, last, tok
			}
		}
	}
}
