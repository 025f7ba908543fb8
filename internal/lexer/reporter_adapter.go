package lexer

import (
	"opal/internal/diag"
	"opal/internal/source"
)

// ReporterAdapter адаптирует diag.Reporter для использования в лексере
type ReporterAdapter struct {
	Bag *diag.Bag
}

// Reporter returns a lexer Reporter that forwards diagnostics to the bag.
func (r *ReporterAdapter) Reporter() Reporter {
	return &bagForwarder{bag: r.Bag}
}

type bagForwarder struct {
	bag *diag.Bag
}

func (f *bagForwarder) Report(kind string, span source.Span, msg string) {
	if f.bag == nil {
		return
	}
	code := diag.LexInfo
	switch kind {
	case "unknown-char":
		code = diag.LexUnknownChar
	case "unterminated-string":
		code = diag.LexUnterminatedString
	case "bad-number":
		code = diag.LexBadNumber
	case "bad-escape":
		code = diag.LexBadEscape
	}
	f.bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     code,
		Message:  msg,
		Primary:  span,
	})
}
