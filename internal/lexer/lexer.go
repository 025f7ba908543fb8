package lexer

import (
	"opal/internal/source"
	"opal/internal/token"
)

// Lexer scans one source file into significant tokens, recording comments
// and blank-line offsets into a token.Extra side table as it goes.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	extra  token.Extra
	look   *token.Token // 1 элементный буфер для токена
	last   token.Kind   // последний значимый токен (для отрицательных литералов)

	// lineHasContent отмечает, что на текущей строке уже был токен или
	// комментарий; строка без контента даёт запись в Extra.EmptyLines.
	lineHasContent bool
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
		last:   token.Invalid,
	}
}

// Extra returns the trivia collected so far. Complete only after the lexer
// has returned EOF.
func (lx *Lexer) Extra() *token.Extra {
	return &lx.extra
}

// Next возвращает следующий **значимый** токен. После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		lx.last = tok.Kind
		return tok
	}

	lx.skipTrivia()

	if lx.cursor.EOF() {
		return token.Token{
			Kind: token.EOF,
			Span: lx.cursor.SpanFrom(lx.cursor.Mark()),
		}
	}

	ch := lx.cursor.Peek()
	var tok token.Token

	switch {
	case ch == '_' || isIdentStart(ch):
		tok = lx.scanIdentOrKeyword()

	case isDec(ch):
		tok = lx.scanNumber(false)

	case ch == '-' && isDec(lx.cursor.PeekAt(1)) && !endsOperand(lx.last):
		// "-1" как литерал, но только не после операнда: "a - 1" остаётся
		// бинарным минусом.
		tok = lx.scanNumber(true)

	case ch == '"':
		tok = lx.scanString()

	default:
		tok = lx.scanOperatorOrPunct()
	}

	lx.lineHasContent = true
	lx.last = tok.Kind
	return tok
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	if lx.look == nil {
		saved := lx.last
		tok := lx.Next()
		lx.last = saved
		lx.look = &tok
	}
	return *lx.look
}

// Tokens drains the lexer into a slice, including the trailing EOF token.
func (lx *Lexer) Tokens() []token.Token {
	var out []token.Token
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

func endsOperand(k token.Kind) bool {
	return token.Token{Kind: k}.EndsOperand()
}

func isIdentStart(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentContinue(b byte) bool {
	return isIdentStart(b) || isDec(b) || b == '_'
}

func isDec(b byte) bool {
	return b >= '0' && b <= '9'
}

func isHex(b byte) bool {
	return isDec(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}
