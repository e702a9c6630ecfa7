// Package lexer implements the xs lexical analyzer.
package lexer

import (
	"strings"

	"github.com/xs-lang/xs/internal/errors"
	"github.com/xs-lang/xs/internal/position"
)

// lexState is the character-classification state of the scanner.
type lexState int

const (
	stateNormal lexState = iota
	stateString
	stateLineComment
	stateBlockComment
	stateNumber
)

// Lexer represents the lexical analyzer
type Lexer struct {
	input    string
	filename string

	position int // current position in input (points to current char)
	line     int // current line number, 1-based
	column   int // current column number, 1-based byte column

	state lexState
}

// New creates a new lexer instance
func New(input string) *Lexer {
	return NewWithFilename(input, "")
}

// NewWithFilename creates a new lexer instance with filename for error reporting
func NewWithFilename(input, filename string) *Lexer {
	return &Lexer{
		input:    input,
		filename: filename,
		line:     1,
		column:   1,
	}
}

// ch returns the character under examination, 0 at end of input.
func (l *Lexer) ch() byte {
	return l.peekChar(0)
}

// peekChar returns the character offset places ahead without advancing.
func (l *Lexer) peekChar(offset int) byte {
	if l.position+offset >= len(l.input) {
		return 0
	}
	return l.input[l.position+offset]
}

func (l *Lexer) atEOF() bool {
	return l.position >= len(l.input)
}

// readChar advances past the current character.
func (l *Lexer) readChar() {
	if l.atEOF() {
		return
	}
	if l.input[l.position] == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	l.position++
}

func (l *Lexer) skipWhitespace() {
	for {
		switch l.ch() {
		case ' ', '\t', '\r', '\n':
			l.readChar()
		default:
			return
		}
	}
}

// getCurrentPosition returns current position in source
func (l *Lexer) getCurrentPosition() position.Position {
	return position.Position{Filename: l.filename, Line: l.line, Column: l.column, Offset: l.position}
}

func (l *Lexer) newToken(tokenType TokenType, literal string, start position.Position) Token {
	return Token{
		Kind:    tokenType.Kind(),
		Type:    tokenType,
		Literal: literal,
		Pos:     start,
		End:     l.getCurrentPosition(),
		Index:   -1,
	}
}

// Tokenize scans the whole input and returns the raw token stream,
// comments included, terminated by a single EOF token.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens, nil
		}
	}
}

// NextToken scans the next raw token.
func (l *Lexer) NextToken() (Token, error) {
	l.skipWhitespace()
	start := l.getCurrentPosition()

	if l.atEOF() {
		return l.newToken(TokenEOF, "", start), nil
	}

	l.state = l.dispatch()
	defer func() { l.state = stateNormal }()

	switch l.state {
	case stateString:
		return l.readString(start)
	case stateLineComment:
		return l.readLineComment(start), nil
	case stateBlockComment:
		return l.readBlockComment(start)
	case stateNumber:
		return l.readNumber(start)
	}
	return l.readOperatorOrIdentifier(start)
}

// dispatch chooses the state for the token starting at the current char.
func (l *Lexer) dispatch() lexState {
	c := l.ch()
	switch {
	case c == '"':
		return stateString
	case c == '/' && l.peekChar(1) == '/':
		return stateLineComment
	case c == '/' && l.peekChar(1) == '*':
		return stateBlockComment
	case isDigit(c):
		return stateNumber
	}
	return stateNormal
}

// twoCharOperators lists greedy two-character operators.
var twoCharOperators = map[string]TokenType{
	"->": TokenArrow,
	"&&": TokenAnd,
	"||": TokenOr,
	"+=": TokenPlusAssign,
	"-=": TokenMinusAssign,
	"*=": TokenMulAssign,
	"/=": TokenDivAssign,
	"%=": TokenModAssign,
	"!=": TokenNe,
	"==": TokenEq,
	">=": TokenGe,
	"<=": TokenLe,
}

var oneCharOperators = map[byte]TokenType{
	'(': TokenLParen,
	')': TokenRParen,
	'[': TokenLBracket,
	']': TokenRBracket,
	'{': TokenLBrace,
	'}': TokenRBrace,
	':': TokenColon,
	',': TokenComma,
	'.': TokenDot,
	'&': TokenAmpersand,
	';': TokenSemicolon,
	'~': TokenTilde,
	'+': TokenPlus,
	'-': TokenMinus,
	'*': TokenMul,
	'/': TokenDiv,
	'%': TokenMod,
	'!': TokenNot,
	'=': TokenAssign,
	'>': TokenGt,
	'<': TokenLt,
}

func (l *Lexer) readOperatorOrIdentifier(start position.Position) (Token, error) {
	c := l.ch()

	if c == '*' && l.peekChar(1) == '/' {
		return Token{}, errors.Lex(start, errors.CodeUnmatchedCommentEnd, "unmatched `*/`")
	}

	if l.position+1 < len(l.input) {
		pair := l.input[l.position : l.position+2]
		if tt, ok := twoCharOperators[pair]; ok {
			l.readChar()
			l.readChar()
			return l.newToken(tt, pair, start), nil
		}
	}

	if tt, ok := oneCharOperators[c]; ok {
		l.readChar()
		return l.newToken(tt, string(c), start), nil
	}

	if isIdentifierChar(c) {
		ident := l.readIdentifier()
		return l.newToken(lookupIdent(ident), ident, start), nil
	}

	return Token{}, errors.Lex(start, errors.CodeUnexpectedChar, "unexpected character `%c`", c)
}

// readIdentifier consumes an identifier or keyword run.
func (l *Lexer) readIdentifier() string {
	begin := l.position
	for isIdentifierChar(l.ch()) {
		l.readChar()
	}
	return l.input[begin:l.position]
}

// readNumber consumes digits and at most one `.` that is followed by a
// digit. A `.` not followed by a digit ends the number.
func (l *Lexer) readNumber(start position.Position) (Token, error) {
	begin := l.position
	hasDot := false
	for {
		c := l.ch()
		if isDigit(c) {
			l.readChar()
			continue
		}
		if c == '.' && isDigit(l.peekChar(1)) {
			if hasDot {
				return Token{}, errors.Lex(start, errors.CodeMalformedNumber,
					"malformed number `%s`", l.input[begin:l.position+2])
			}
			hasDot = true
			l.readChar()
			continue
		}
		break
	}

	tt := TokenInteger
	if hasDot {
		tt = TokenFloat
	}
	return l.newToken(tt, l.input[begin:l.position], start), nil
}

// readString consumes a double-quoted string; the literal holds the
// decoded value.
func (l *Lexer) readString(start position.Position) (Token, error) {
	var sb strings.Builder
	l.readChar() // opening quote

	for !l.atEOF() {
		c := l.ch()
		switch c {
		case '"':
			l.readChar()
			return l.newToken(TokenString, sb.String(), start), nil
		case '\\':
			escPos := l.getCurrentPosition()
			decoded, ok := unescape(l.peekChar(1))
			if !ok {
				if l.position+1 >= len(l.input) {
					return Token{}, errors.Lex(start, errors.CodeUnterminatedString, "unterminated string")
				}
				return Token{}, errors.Lex(escPos, errors.CodeUnknownEscape,
					"unknown escape `\\%c`", l.peekChar(1))
			}
			sb.WriteByte(decoded)
			l.readChar()
			l.readChar()
		default:
			sb.WriteByte(c)
			l.readChar()
		}
	}

	return Token{}, errors.Lex(start, errors.CodeUnterminatedString, "unterminated string")
}

func unescape(c byte) (byte, bool) {
	switch c {
	case '\\':
		return '\\', true
	case 't':
		return '\t', true
	case 'r':
		return '\r', true
	case 'n':
		return '\n', true
	case '"':
		return '"', true
	}
	return 0, false
}

// readLineComment consumes `//` through the end of the line, newline excluded.
func (l *Lexer) readLineComment(start position.Position) Token {
	begin := l.position
	for !l.atEOF() && l.ch() != '\n' {
		l.readChar()
	}
	return l.newToken(TokenLineComment, strings.TrimRight(l.input[begin:l.position], "\r"), start)
}

// readBlockComment consumes a possibly nested `/* ... */` comment.
func (l *Lexer) readBlockComment(start position.Position) (Token, error) {
	begin := l.position
	l.readChar()
	l.readChar()

	depth := 1
	for !l.atEOF() {
		switch {
		case l.ch() == '/' && l.peekChar(1) == '*':
			depth++
			l.readChar()
		case l.ch() == '*' && l.peekChar(1) == '/':
			depth--
			l.readChar()
		}
		l.readChar()
		if depth == 0 {
			return l.newToken(TokenBlockComment, l.input[begin:l.position], start), nil
		}
	}

	return Token{}, errors.Lex(start, errors.CodeUnterminatedComment, "unterminated comment")
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

// isIdentifierChar admits raw bytes >= 0x80 so UTF-8 sequences pass through.
func isIdentifierChar(ch byte) bool {
	return isLetter(ch) || isDigit(ch) || ch >= 0x80
}
