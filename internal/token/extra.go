package token

import (
	"opal/internal/source"
)

// Extra holds the out-of-band trivia collected while lexing a module:
// comment spans (content only, marker excluded) and the newline offsets of
// blank source lines. Every slice is strictly increasing by offset because
// the lexer appends in scan order; nothing re-sorts them afterwards.
type Extra struct {
	Comments       []source.Span // '//'
	DocComments    []source.Span // '///'
	ModuleComments []source.Span // '////'
	EmptyLines     []uint32      // offset of the '\n' closing each blank line
}

// HasTrivia reports whether any trivia was recorded at all.
func (e *Extra) HasTrivia() bool {
	return len(e.Comments) > 0 || len(e.DocComments) > 0 ||
		len(e.ModuleComments) > 0 || len(e.EmptyLines) > 0
}
