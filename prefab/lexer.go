package prefab

import (
	"fmt"
	"strconv"
	"strings"
)

// Lexer state machine over prefab/scene definition source.
// A one-token lookahead buffer backs Peek.
type Lexer struct {
	file  string
	input []byte
	pos   int // current position in input (points to current char)
	line  int
	col   int

	startLine int // position where the current token began
	startCol  int

	buffered  bool
	lookahead Token

	failed  bool
	lastErr string
}

func NewLexer(file string, input []byte) *Lexer {
	return &Lexer{
		file:  file,
		input: input,
		line:  1,
		col:   1,
	}
}

// Next returns the next token in the stream, consuming input
func (l *Lexer) Next() Token {
	if l.buffered {
		l.buffered = false
		return l.lookahead
	}
	return l.scan()
}

// Peek returns the next token without consuming it
func (l *Lexer) Peek() Token {
	if !l.buffered {
		l.lookahead = l.scan()
		l.buffered = true
	}
	return l.lookahead
}

// Failed reports whether the lexer has emitted an error token
func (l *Lexer) Failed() bool {
	return l.failed
}

// LastError returns the message of the most recent error token, or ""
func (l *Lexer) LastError() string {
	return l.lastErr
}

func (l *Lexer) scan() Token {
	l.skipSpaceAndComments()
	l.startLine = l.line
	l.startCol = l.col

	if l.pos >= len(l.input) {
		return l.newToken(TokenEOF, "")
	}

	ch := l.peekByte()

	switch ch {
	case '@':
		l.advance()
		return l.newToken(TokenAt, "@")
	case '(':
		l.advance()
		return l.newToken(TokenLParen, "(")
	case ')':
		l.advance()
		return l.newToken(TokenRParen, ")")
	case '{':
		l.advance()
		return l.newToken(TokenLBrace, "{")
	case '}':
		l.advance()
		return l.newToken(TokenRBrace, "}")
	case ':':
		l.advance()
		return l.newToken(TokenColon, ":")
	case ',':
		l.advance()
		return l.newToken(TokenComma, ",")
	case '"':
		return l.readString()
	case '-':
		// A minus glued to a digit is a negative numeric literal,
		// otherwise it stands alone.
		if l.pos+1 < len(l.input) && isDigit(l.input[l.pos+1]) {
			return l.readNumber()
		}
		l.advance()
		return l.newToken(TokenMinus, "-")
	}

	if isDigit(ch) {
		return l.readNumber()
	}

	if isAlpha(ch) || ch == '_' {
		return l.readIdent()
	}

	l.advance()
	return l.errorToken(fmt.Sprintf("unexpected character %q", ch))
}

// newToken stamps the position where the token's first byte was
// scanned; literal width never enters into it, so quoted and escaped
// strings report the opening quote's column
func (l *Lexer) newToken(typ TokenType, literal string) Token {
	return Token{Type: typ, Literal: literal, Line: l.startLine, Col: l.startCol}
}

// errorToken records the lexer error state and emits a single error
// token with a file:line:col prefixed message, positioned at the start
// of the offending token. The lexer stays usable; callers decide
// whether to abort.
func (l *Lexer) errorToken(msg string) Token {
	full := fmt.Sprintf("%s:%d:%d: %s", l.file, l.startLine, l.startCol, msg)
	l.failed = true
	l.lastErr = full
	return Token{Type: TokenError, Literal: full, Line: l.startLine, Col: l.startCol}
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	ch := l.input[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return ch
}

func (l *Lexer) peekByte() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

// skipSpaceAndComments consumes whitespace plus both comment styles
// (// and #) through end of line
func (l *Lexer) skipSpaceAndComments() {
	for l.pos < len(l.input) {
		ch := l.peekByte()
		if ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' {
			l.advance()
			continue
		}
		if ch == '#' || (ch == '/' && l.pos+1 < len(l.input) && l.input[l.pos+1] == '/') {
			for l.pos < len(l.input) && l.peekByte() != '\n' {
				l.advance()
			}
			continue
		}
		break
	}
}

func (l *Lexer) readIdent() Token {
	start := l.pos
	for l.pos < len(l.input) {
		ch := l.peekByte()
		if isAlpha(ch) || isDigit(ch) || ch == '_' {
			l.advance()
		} else {
			break
		}
	}
	return l.newToken(TokenIdent, string(l.input[start:l.pos]))
}

// readNumber scans a decimal integer or float with optional fractional
// part and/or exponent. A leading '-' has already been validated to be
// glued to a digit.
func (l *Lexer) readNumber() Token {
	start := l.pos
	isFloat := false

	if l.peekByte() == '-' {
		l.advance()
	}
	for l.pos < len(l.input) && isDigit(l.peekByte()) {
		l.advance()
	}
	if l.peekByte() == '.' && l.pos+1 < len(l.input) && isDigit(l.input[l.pos+1]) {
		isFloat = true
		l.advance()
		for l.pos < len(l.input) && isDigit(l.peekByte()) {
			l.advance()
		}
	}
	if ch := l.peekByte(); ch == 'e' || ch == 'E' {
		// Exponent needs at least one digit, optionally signed
		save := l.pos
		j := l.pos + 1
		if j < len(l.input) && (l.input[j] == '+' || l.input[j] == '-') {
			j++
		}
		if j < len(l.input) && isDigit(l.input[j]) {
			isFloat = true
			for l.pos < j {
				l.advance()
			}
			for l.pos < len(l.input) && isDigit(l.peekByte()) {
				l.advance()
			}
		} else {
			l.pos = save
		}
	}

	lit := string(l.input[start:l.pos])
	if isFloat {
		f, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			return l.errorToken(fmt.Sprintf("malformed float literal %q", lit))
		}
		tok := l.newToken(TokenFloat, lit)
		tok.Float = f
		return tok
	}
	n, err := strconv.ParseInt(lit, 10, 64)
	if err != nil {
		return l.errorToken(fmt.Sprintf("malformed integer literal %q", lit))
	}
	tok := l.newToken(TokenInteger, lit)
	tok.Int = n
	return tok
}

func (l *Lexer) readString() Token {
	// Consume opening quote
	l.advance()
	start := l.pos
	escaped := false
	for l.pos < len(l.input) {
		ch := l.peekByte()
		if ch == '\n' {
			return l.errorToken("unterminated string")
		}
		if ch == '"' && !escaped {
			lit := string(l.input[start:l.pos])
			l.advance() // consume closing quote
			tok := l.newToken(TokenString, unescape(lit))
			return tok
		}
		if ch == '\\' && !escaped {
			escaped = true
		} else {
			escaped = false
		}
		l.advance()
	}
	return l.errorToken("unterminated string")
}

// unescape handles the backslash escapes the writer emits
func unescape(s string) string {
	if !strings.Contains(s, "\\") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 >= len(s) {
			b.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '"':
			b.WriteByte('"')
		case '\\':
			b.WriteByte('\\')
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isAlpha(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}
