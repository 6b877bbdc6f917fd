package fexpr

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"
)

type lexToken struct {
	// text is the source text of the token.
	text string
	kind tokenKind
	// pos is the byte offset of the start of the token.
	pos int
	// num is the value of a tokenNum.
	num float64
	// sym is the resolved binding of a tokenVar or tokenFunc.
	sym Binding
	// err is the error of a tokenError.
	err error
}

func (t lexToken) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

type tokenKind int8

const (
	tokenNone tokenKind = iota
	// tokenEOF indicates the end of the input.
	tokenEOF
	// tokenError indicates invalid input. Once a lexer produces it, it
	// produces nothing else.
	tokenError
	// tokenNum is a number literal.
	tokenNum
	// tokenVar is an identifier bound to a variable.
	tokenVar
	// tokenFunc is an identifier bound to a function or closure.
	tokenFunc
	// tokenInfix is a binary operator, or a sign where a term is expected.
	tokenInfix
	// tokenOpen is (.
	tokenOpen
	// tokenClose is ).
	tokenClose
	// tokenSep is ,.
	tokenSep
)

func (k tokenKind) String() string {
	switch k {
	case tokenNone:
		return "None"
	case tokenEOF:
		return "EOF"
	case tokenError:
		return "Error"
	case tokenNum:
		return "Num"
	case tokenVar:
		return "Var"
	case tokenFunc:
		return "Func"
	case tokenInfix:
		return "Infix"
	case tokenOpen:
		return "Open"
	case tokenClose:
		return "Close"
	case tokenSep:
		return "Sep"
	default:
		return "tokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Operators contains the bytes which are infix operators.
const Operators = "+-*/^%"

type lexer struct {
	src string
	// next is the offset of the first byte not yet scanned.
	next int
	syms *symtab
	// tok is the current token.
	tok lexToken
}

func lex(src string, syms *symtab) *lexer {
	return &lexer{src: src, syms: syms}
}

// advance scans the next token into l.tok. At the end of the input, it keeps
// producing EOF tokens. After an error token, it keeps producing that token.
func (l *lexer) advance() {
	if l.tok.kind == tokenError {
		return
	}
	for l.next < len(l.src) {
		start := l.next
		c := l.src[start]
		switch {
		case isDigit(c), c == '.':
			l.scanNum()
			return
		case isLower(c):
			l.scanIdent()
			return
		case c == ' ', c == '\t', c == '\n', c == '\r':
			l.next++
			continue
		case strings.IndexByte(Operators, c) >= 0:
			l.next++
			l.tok = lexToken{text: l.src[start:l.next], kind: tokenInfix, pos: start}
		case c == '(':
			l.next++
			l.tok = lexToken{text: "(", kind: tokenOpen, pos: start}
		case c == ')':
			l.next++
			l.tok = lexToken{text: ")", kind: tokenClose, pos: start}
		case c == ',':
			l.next++
			l.tok = lexToken{text: ",", kind: tokenSep, pos: start}
		default:
			_, sz := utf8.DecodeRuneInString(l.src[start:])
			l.next += sz
			l.error(start, "")
		}
		return
	}
	l.tok = lexToken{kind: tokenEOF, pos: l.next}
}

// scanNum scans a number literal: digits, an optional fraction, and an
// optional exponent. An exponent marker not followed by digits is left for
// the next token.
func (l *lexer) scanNum() {
	start := l.next
	i := skipDigits(l.src, start)
	if i < len(l.src) && l.src[i] == '.' {
		i = skipDigits(l.src, i+1)
	}
	if i-start == 1 && l.src[start] == '.' {
		l.next = i
		l.error(start, "number")
		return
	}
	if i < len(l.src) && (l.src[i] == 'e' || l.src[i] == 'E') {
		j := i + 1
		if j < len(l.src) && (l.src[j] == '+' || l.src[j] == '-') {
			j++
		}
		if j < len(l.src) && isDigit(l.src[j]) {
			i = skipDigits(l.src, j)
		}
	}
	l.next = i
	text := l.src[start:i]
	v, err := strconv.ParseFloat(text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		// ParseFloat accepts everything we scan, but be sure.
		l.error(start, "number")
		return
	}
	// Out of range literals are ±Inf or 0 already.
	l.tok = lexToken{text: text, kind: tokenNum, pos: start, num: v}
}

// scanIdent scans an identifier and resolves it.
func (l *lexer) scanIdent() {
	start := l.next
	i := start + 1
	for i < len(l.src) && isIdentByte(l.src[i]) {
		i++
	}
	l.next = i
	text := l.src[start:i]
	b, ok := l.syms.lookup(text)
	if !ok {
		l.tok = lexToken{text: text, kind: tokenError, pos: start, err: &NameError{Name: text, Col: l.col()}}
		return
	}
	if b.Value != nil {
		l.tok = lexToken{text: text, kind: tokenVar, pos: start, sym: b}
		return
	}
	l.tok = lexToken{text: text, kind: tokenFunc, pos: start, sym: b}
}

// error sets the current token to a lexing error for the text from start to
// the cursor.
func (l *lexer) error(start int, kind string) {
	text := l.src[start:l.next]
	l.tok = lexToken{
		text: text,
		kind: tokenError,
		pos:  start,
		err:  &LexError{Text: text, Kind: kind, Col: l.col()},
	}
}

// col returns the error position for the current cursor: the number of bytes
// consumed, but at least 1.
func (l *lexer) col() int {
	if l.next < 1 {
		return 1
	}
	return l.next
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isLower(c byte) bool {
	return 'a' <= c && c <= 'z'
}

func isIdentByte(c byte) bool {
	return isLower(c) || isDigit(c) || c == '_'
}

func skipDigits(s string, i int) int {
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	return i
}

// LexError indicates an invalid token. It implements InputError.
type LexError struct {
	// Text is the invalid token.
	Text string
	// Kind is the type of token the lexer was scanning. This may be "number"
	// or the empty string if a token kind hadn't been decided.
	Kind string
	// Col is the number of bytes scanned by the lexer up to and including
	// the invalid token.
	Col int
}

func (err *LexError) Error() string {
	if err.Kind == "" {
		return errpos(err.Col, "invalid token "+strconv.Quote(err.Text))
	}
	return errpos(err.Col, "invalid "+err.Kind+" token "+strconv.Quote(err.Text))
}

func (err *LexError) Pos() int {
	return err.Col
}
