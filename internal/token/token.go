package token

import (
	"opal/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsLiteral reports whether the token is a numeric or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwAs, KwAssert, KwCase, KwConst, KwFn, KwIf, KwImport, KwLet,
		KwOpaque, KwPanic, KwPub, KwTodo, KwType, KwUse:
		return true
	default:
		return false
	}
}

// EndsOperand reports whether the token can terminate an operand expression.
// Используется лексером, чтобы отличить бинарный минус от отрицательного
// литерала.
func (t Token) EndsOperand() bool {
	switch t.Kind {
	case Name, UpName, DiscardName, IntLit, FloatLit, StringLit,
		RParen, RBrace, RBracket, GtGt, DotDot:
		return true
	default:
		return false
	}
}
