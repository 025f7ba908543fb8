package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"opal/internal/source"
	"opal/internal/token"
)

// FormatTokensPretty prints one token per line with its resolved position:
//
//	main.opal:1:1  KwPub    "pub"
//	main.opal:1:5  KwFn     "fn"
func FormatTokensPretty(w io.Writer, fs *source.FileSet, tokens []token.Token) error {
	for _, tok := range tokens {
		file := fs.Get(tok.Span.File)
		start, _ := fs.Resolve(tok.Span)
		var err error
		if tok.Text != "" {
			_, err = fmt.Fprintf(w, "%s:%d:%d\t%s\t%q\n",
				file.Path, start.Line, start.Col, tok.Kind.String(), tok.Text)
		} else {
			_, err = fmt.Fprintf(w, "%s:%d:%d\t%s\n",
				file.Path, start.Line, start.Col, tok.Kind.String())
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// FormatTriviaPretty выводит сводку тривии: счётчики и спаны комментариев.
func FormatTriviaPretty(w io.Writer, fs *source.FileSet, extra *token.Extra) error {
	if extra == nil || !extra.HasTrivia() {
		_, err := fmt.Fprintln(w, "no trivia")
		return err
	}
	groups := []struct {
		label string
		spans []source.Span
	}{
		{"comments", extra.Comments},
		{"doc comments", extra.DocComments},
		{"module comments", extra.ModuleComments},
	}
	for _, group := range groups {
		if len(group.spans) == 0 {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s (%d):\n", group.label, len(group.spans)); err != nil {
			return err
		}
		for _, span := range group.spans {
			start, _ := fs.Resolve(span)
			if _, err := fmt.Fprintf(w, "  %d:%d %s\n", start.Line, start.Col, span.String()); err != nil {
				return err
			}
		}
	}
	if len(extra.EmptyLines) > 0 {
		if _, err := fmt.Fprintf(w, "blank lines: %d\n", len(extra.EmptyLines)); err != nil {
			return err
		}
	}
	return nil
}

type tokenJSON struct {
	Kind  string `json:"kind"`
	Text  string `json:"text,omitempty"`
	Line  uint32 `json:"line"`
	Col   uint32 `json:"col"`
	Start uint32 `json:"start"`
	End   uint32 `json:"end"`
}

// FormatTokensJSON prints the token stream as an indented JSON array.
func FormatTokensJSON(w io.Writer, fs *source.FileSet, tokens []token.Token) error {
	payload := make([]tokenJSON, 0, len(tokens))
	for _, tok := range tokens {
		start, _ := fs.Resolve(tok.Span)
		payload = append(payload, tokenJSON{
			Kind:  tok.Kind.String(),
			Text:  tok.Text,
			Line:  start.Line,
			Col:   start.Col,
			Start: tok.Span.Start,
			End:   tok.Span.End,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
