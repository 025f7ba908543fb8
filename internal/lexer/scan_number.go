package lexer

import (
	"opal/internal/source"
	"opal/internal/token"
)

// scanNumber сканирует целый или вещественный литерал. Подчёркивания
// сохраняются как есть — канонизацию делает форматтер, не лексер.
func (lx *Lexer) scanNumber(negative bool) token.Token {
	start := lx.cursor.Mark()
	if negative {
		lx.cursor.Bump() // '-'
	}

	// 0x / 0o / 0b — префиксные литералы без дробной части
	if lx.cursor.Peek() == '0' {
		next := lx.cursor.PeekAt(1)
		if next == 'x' || next == 'X' || next == 'o' || next == 'O' || next == 'b' || next == 'B' {
			lx.cursor.Bump()
			lx.cursor.Bump()
			digits := 0
			for !lx.cursor.EOF() && (isHex(lx.cursor.Peek()) || lx.cursor.Peek() == '_') {
				if lx.cursor.Peek() != '_' {
					digits++
				}
				lx.cursor.Bump()
			}
			span := lx.cursor.SpanFrom(start)
			if digits == 0 {
				lx.report("bad-number", span, "radix literal has no digits")
			}
			return lx.numberToken(token.IntLit, span)
		}
	}

	lx.eatDigits()

	kind := token.IntLit
	if lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1)) {
		kind = token.FloatLit
		lx.cursor.Bump() // '.'
		lx.eatDigits()

		// научная нотация: 1.5e3, 1.5e-3
		if e := lx.cursor.Peek(); e == 'e' || e == 'E' {
			sign := uint32(1)
			if s := lx.cursor.PeekAt(1); s == '+' || s == '-' {
				sign = 2
			}
			if isDec(lx.cursor.PeekAt(sign)) {
				for i := uint32(0); i < sign; i++ {
					lx.cursor.Bump()
				}
				lx.eatDigits()
			}
		}
	}

	return lx.numberToken(kind, lx.cursor.SpanFrom(start))
}

func (lx *Lexer) eatDigits() {
	for !lx.cursor.EOF() && (isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_') {
		lx.cursor.Bump()
	}
}

func (lx *Lexer) numberToken(kind token.Kind, span source.Span) token.Token {
	return token.Token{
		Kind: kind,
		Span: span,
		Text: string(lx.file.Content[span.Start:span.End]),
	}
}
