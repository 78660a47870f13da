package parser

import (
	"fmt"
	"strings"
)

// Lexer tokenizes DOPLER rule and condition text.
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      byte // current char under examination
	line    int  // current line number (1-based)
	col     int  // current column number (1-based)

	// Errors collected for ILLEGAL tokens, in input order.
	Errors []error
}

// NewLexer creates a new Lexer for the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{
		input: input,
		line:  1,
		col:   0,
	}
	l.readChar()
	return l
}

// readChar advances to the next character.
func (l *Lexer) readChar() {
	if l.pos < len(l.input) && l.ch == '\n' {
		l.line++
		l.col = 0
	}
	if l.readPos >= len(l.input) {
		l.ch = 0 // ASCII NUL = EOF
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
	l.col++
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

// currentPos returns the current position.
func (l *Lexer) currentPos() Position {
	return Position{
		Line:   l.line,
		Column: l.col,
		Offset: min(l.pos, len(l.input)),
	}
}

// NextToken returns the next token.
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	tok := l.scan()
	tok.End = l.currentPos()
	return tok
}

// All drains the lexer and returns every token up to and including EOF.
func (l *Lexer) All() []Token {
	var toks []Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == TOKEN_EOF {
			return toks
		}
	}
}

func (l *Lexer) scan() Token {
	pos := l.currentPos()

	switch l.ch {
	case 0:
		if l.pos < len(l.input) {
			l.readChar()
			return l.illegal(pos, fmt.Sprintf(ErrIllegalCharacter, byte(0)))
		}
		return Token{Type: TOKEN_EOF, Pos: pos}
	case '=':
		if l.peekChar() == '=' {
			return l.twoChar(TOKEN_EQ, "==", pos)
		}
		return l.oneChar(TOKEN_ASSIGN, pos)
	case '!':
		if l.peekChar() == '=' {
			return l.twoChar(TOKEN_NE, "!=", pos)
		}
		return l.oneChar(TOKEN_NOT, pos)
	case '<':
		if l.peekChar() == '=' {
			return l.twoChar(TOKEN_LE, "<=", pos)
		}
		return l.oneChar(TOKEN_LT, pos)
	case '>':
		if l.peekChar() == '=' {
			return l.twoChar(TOKEN_GE, ">=", pos)
		}
		return l.oneChar(TOKEN_GT, pos)
	case '&':
		if l.peekChar() == '&' {
			return l.twoChar(TOKEN_AND, "&&", pos)
		}
		l.readChar()
		return l.illegal(pos, fmt.Sprintf(ErrIllegalCharacter, '&'))
	case '|':
		if l.peekChar() == '|' {
			return l.twoChar(TOKEN_OR, "||", pos)
		}
		l.readChar()
		return l.illegal(pos, fmt.Sprintf(ErrIllegalCharacter, '|'))
	case '-':
		return l.oneChar(TOKEN_MINUS, pos)
	case '.':
		return l.oneChar(TOKEN_DOT, pos)
	case ',':
		return l.oneChar(TOKEN_COMMA, pos)
	case ';':
		return l.oneChar(TOKEN_SEMICOLON, pos)
	case '(':
		return l.oneChar(TOKEN_LPAREN, pos)
	case ')':
		return l.oneChar(TOKEN_RPAREN, pos)
	case '{':
		return l.oneChar(TOKEN_LBRACE, pos)
	case '}':
		return l.oneChar(TOKEN_RBRACE, pos)
	case '\'':
		lit, ok := l.readQuoted('\'')
		if !ok {
			return l.illegal(pos, ErrUnterminatedString)
		}
		return Token{Type: TOKEN_STRING, Literal: lit, Pos: pos}
	case '"':
		// Quoted identifier: decision or option names that clash with
		// keywords or contain spaces.
		lit, ok := l.readQuoted('"')
		if !ok {
			return l.illegal(pos, ErrUnterminatedIdent)
		}
		return Token{Type: TOKEN_IDENT, Literal: lit, Pos: pos, Quoted: true}
	}

	switch {
	case isLetter(l.ch) || l.ch == '_':
		lit := l.readIdentifier()
		return Token{Type: LookupIdent(lit), Literal: lit, Pos: pos}
	case isDigit(l.ch):
		lit := l.readNumber()
		// 4WD, 2ndGear: a digit-led name is an identifier, not a number.
		if isLetter(l.ch) || l.ch == '_' {
			lit += l.readIdentifier()
			return Token{Type: TOKEN_IDENT, Literal: lit, Pos: pos}
		}
		return Token{Type: TOKEN_NUMBER, Literal: lit, Pos: pos}
	default:
		ch := l.ch
		l.readChar()
		return l.illegal(pos, fmt.Sprintf(ErrIllegalCharacter, ch))
	}
}

func (l *Lexer) oneChar(t TokenType, pos Position) Token {
	lit := string(l.ch)
	l.readChar()
	return Token{Type: t, Literal: lit, Pos: pos}
}

func (l *Lexer) twoChar(t TokenType, lit string, pos Position) Token {
	l.readChar()
	l.readChar()
	return Token{Type: t, Literal: lit, Pos: pos}
}

// illegal records a lexical error and returns an ILLEGAL token spanning the
// consumed text.
func (l *Lexer) illegal(pos Position, msg string) Token {
	l.Errors = append(l.Errors, &LexError{Pos: pos, Message: msg})
	return Token{Type: TOKEN_ILLEGAL, Literal: l.input[pos.Offset:min(l.pos, len(l.input))], Pos: pos}
}

// skipWhitespace skips spaces, tabs and line breaks.
func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

// readQuoted reads a literal delimited by quote. A doubled quote inside the
// literal stands for one quote character. ok is false when input ends first.
func (l *Lexer) readQuoted(quote byte) (string, bool) {
	l.readChar() // skip opening quote

	var result strings.Builder
	for l.pos < len(l.input) {
		if l.ch == quote {
			if l.peekChar() == quote {
				result.WriteByte(quote)
				l.readChar()
				l.readChar()
				continue
			}
			l.readChar() // skip closing quote
			return result.String(), true
		}
		result.WriteByte(l.ch)
		l.readChar()
	}
	return result.String(), false
}

// readIdentifier reads an unquoted identifier.
func (l *Lexer) readIdentifier() string {
	start := l.pos
	for isLetter(l.ch) || isDigit(l.ch) || l.ch == '_' {
		l.readChar()
	}
	return l.input[start:l.pos]
}

// readNumber reads a number literal: digits, an optional fraction and an
// optional exponent.
func (l *Lexer) readNumber() string {
	start := l.pos
	for isDigit(l.ch) {
		l.readChar()
	}

	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	if l.ch == 'e' || l.ch == 'E' {
		next := l.peekChar()
		signed := (next == '+' || next == '-') && l.readPos+1 < len(l.input) && isDigit(l.input[l.readPos+1])
		if isDigit(next) || signed {
			l.readChar()
			if signed {
				l.readChar()
			}
			for isDigit(l.ch) {
				l.readChar()
			}
		}
	}

	return l.input[start:l.pos]
}

// isLetter accepts ASCII letters and any byte of a multi-byte UTF-8 sequence,
// so identifiers may use non-ASCII letters.
func isLetter(ch byte) bool {
	return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') || ch >= 0x80
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
