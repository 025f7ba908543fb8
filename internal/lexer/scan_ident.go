package lexer

import (
	"opal/internal/token"
)

// scanIdentOrKeyword сканирует имя, UpName или discard-имя.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	first := lx.cursor.Bump()

	for !lx.cursor.EOF() && isIdentContinue(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}

	span := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[span.Start:span.End])

	var kind token.Kind
	switch {
	case first == '_':
		kind = token.DiscardName
	case first >= 'A' && first <= 'Z':
		kind = token.UpName
	default:
		kind = token.LookupKeyword(text)
	}

	return token.Token{Kind: kind, Span: span, Text: text}
}
