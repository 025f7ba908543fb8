package lexer

import (
	"opal/internal/token"
)

// scanString сканирует строковый литерал. Escape-последовательности не
// интерпретируются: форматтер выводит содержимое дословно. Сырые переводы
// строк внутри строки допустимы (многострочные литералы).
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'
	contentStart := lx.cursor.Off

	terminated := false
	for !lx.cursor.EOF() {
		b := lx.cursor.Bump()
		if b == '\\' {
			if !lx.cursor.EOF() {
				lx.cursor.Bump()
			}
			continue
		}
		if b == '"' {
			terminated = true
			break
		}
	}

	span := lx.cursor.SpanFrom(start)
	contentEnd := lx.cursor.Off
	if terminated {
		contentEnd--
	} else {
		lx.report("unterminated-string", span, "unterminated string literal")
	}

	return token.Token{
		Kind: token.StringLit,
		Span: span,
		Text: string(lx.file.Content[contentStart:contentEnd]),
	}
}
