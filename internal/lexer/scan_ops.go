package lexer

import (
	"fmt"

	"opal/internal/token"
)

// scanOperatorOrPunct сканирует оператор или пунктуацию, жадно выбирая
// самую длинную последовательность.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	b := lx.cursor.Bump()

	kind := token.Invalid
	switch b {
	case '(':
		kind = token.LParen
	case ')':
		kind = token.RParen
	case '{':
		kind = token.LBrace
	case '}':
		kind = token.RBrace
	case '[':
		kind = token.LBracket
	case ']':
		kind = token.RBracket
	case ',':
		kind = token.Comma
	case ':':
		kind = token.Colon
	case '#':
		kind = token.Hash
	case '@':
		kind = token.At

	case '.':
		kind = token.Dot
		if lx.cursor.Eat('.') {
			kind = token.DotDot
		}

	case '=':
		kind = token.Equal
		if lx.cursor.Eat('=') {
			kind = token.EqualEqual
		}

	case '!':
		kind = token.Bang
		if lx.cursor.Eat('=') {
			kind = token.NotEqual
		}

	case '|':
		kind = token.Vbar
		if lx.cursor.Eat('|') {
			kind = token.VbarVbar
		} else if lx.cursor.Eat('>') {
			kind = token.PipeOp
		}

	case '&':
		if lx.cursor.Eat('&') {
			kind = token.AmperAmper
		}

	case '<':
		switch {
		case lx.cursor.Eat('<'):
			kind = token.LtLt
		case lx.cursor.Eat('>'):
			kind = token.LtGt
		case lx.cursor.Eat('-'):
			kind = token.LArrow
		case lx.cursor.Eat('='):
			kind = token.LtEq
			if lx.cursor.Eat('.') {
				kind = token.LtEqDot
			}
		case lx.cursor.Eat('.'):
			kind = token.LtDot
		default:
			kind = token.Lt
		}

	case '>':
		switch {
		case lx.cursor.Eat('>'):
			kind = token.GtGt
		case lx.cursor.Eat('='):
			kind = token.GtEq
			if lx.cursor.Eat('.') {
				kind = token.GtEqDot
			}
		case lx.cursor.Eat('.'):
			kind = token.GtDot
		default:
			kind = token.Gt
		}

	case '+':
		kind = token.Plus
		if lx.cursor.Eat('.') {
			kind = token.PlusDot
		}

	case '-':
		switch {
		case lx.cursor.Eat('>'):
			kind = token.RArrow
		case lx.cursor.Eat('.'):
			kind = token.MinusDot
		default:
			kind = token.Minus
		}

	case '*':
		kind = token.Star
		if lx.cursor.Eat('.') {
			kind = token.StarDot
		}

	case '/':
		kind = token.Slash
		if lx.cursor.Eat('.') {
			kind = token.SlashDot
		}

	case '%':
		kind = token.Percent
	}

	span := lx.cursor.SpanFrom(start)
	if kind == token.Invalid {
		lx.report("unknown-char", span, fmt.Sprintf("unknown character %q", rune(b)))
	}
	return token.Token{
		Kind: kind,
		Span: span,
		Text: string(lx.file.Content[span.Start:span.End]),
	}
}
