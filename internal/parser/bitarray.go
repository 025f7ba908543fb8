package parser

import (
	"strconv"

	"fortio.org/safecast"

	"opal/internal/ast"
	"opal/internal/diag"
	"opal/internal/token"
)

var bitOptionKinds = map[string]ast.BitOptionKind{
	"bytes":           ast.BitOptBytes,
	"int":             ast.BitOptInt,
	"float":           ast.BitOptFloat,
	"bits":            ast.BitOptBits,
	"utf8":            ast.BitOptUtf8,
	"utf16":           ast.BitOptUtf16,
	"utf32":           ast.BitOptUtf32,
	"utf8_codepoint":  ast.BitOptUtf8Codepoint,
	"utf16_codepoint": ast.BitOptUtf16Codepoint,
	"utf32_codepoint": ast.BitOptUtf32Codepoint,
	"signed":          ast.BitOptSigned,
	"unsigned":        ast.BitOptUnsigned,
	"big":             ast.BitOptBig,
	"little":          ast.BitOptLittle,
	"native":          ast.BitOptNative,
}

// parseBitArraySegments разбирает содержимое `<<...>>` после открывающего
// токена. Значения и размеры параметризованы: выражения, паттерны и
// константы используют общий каркас.
func parseBitArraySegments[T any](p *Parser, parseValue, parseSize func() (T, bool)) ([]ast.BitArraySegment[T], token.Token, bool) {
	var segments []ast.BitArraySegment[T]

	for !p.at(token.GtGt) && !p.at(token.EOF) {
		start := p.cur.Span
		value, ok := parseValue()
		if !ok {
			return nil, token.Token{}, false
		}
		segment := ast.BitArraySegment[T]{Location: start, Value: value}

		if p.eat(token.Colon) {
			for {
				option, ok := parseBitArrayOption(p, parseSize)
				if !ok {
					return nil, token.Token{}, false
				}
				segment.Options = append(segment.Options, option)
				segment.Location = segment.Location.Cover(option.Location)
				if !p.eat(token.Minus) {
					break
				}
			}
		}

		segments = append(segments, segment)
		if !p.eat(token.Comma) {
			break
		}
	}

	closing, ok := p.expect(token.GtGt, "to close bit array")
	if !ok {
		return nil, token.Token{}, false
	}
	return segments, closing, true
}

func parseBitArrayOption[T any](p *Parser, parseSize func() (T, bool)) (ast.BitArrayOption[T], bool) {
	start := p.cur.Span

	// `<<x:8>>` — размер без слова size
	if p.at(token.IntLit) {
		value, ok := parseSize()
		if !ok {
			return ast.BitArrayOption[T]{}, false
		}
		return ast.BitArrayOption[T]{
			Location:  start,
			Kind:      ast.BitOptSize,
			Value:     value,
			ShortForm: true,
		}, true
	}

	nameTok, ok := p.expectName("as bit array option")
	if !ok {
		return ast.BitArrayOption[T]{}, false
	}

	switch nameTok.Text {
	case "size":
		if _, ok := p.expect(token.LParen, "after size"); !ok {
			return ast.BitArrayOption[T]{}, false
		}
		value, ok := parseSize()
		if !ok {
			return ast.BitArrayOption[T]{}, false
		}
		closing, ok := p.expect(token.RParen, "to close size option")
		if !ok {
			return ast.BitArrayOption[T]{}, false
		}
		return ast.BitArrayOption[T]{
			Location: start.Cover(closing.Span),
			Kind:     ast.BitOptSize,
			Value:    value,
		}, true

	case "unit":
		if _, ok := p.expect(token.LParen, "after unit"); !ok {
			return ast.BitArrayOption[T]{}, false
		}
		unitTok, ok := p.expect(token.IntLit, "as unit value")
		if !ok {
			return ast.BitArrayOption[T]{}, false
		}
		parsed, err := strconv.ParseUint(unitTok.Text, 10, 32)
		if err != nil {
			p.reportAt(diag.SynUnexpectedToken, unitTok.Span, "invalid unit value "+unitTok.Text)
			return ast.BitArrayOption[T]{}, false
		}
		unit, err := safecast.Conv[uint8](parsed)
		if err != nil || unit < 1 {
			p.reportAt(diag.SynUnexpectedToken, unitTok.Span, "unit must be between 1 and 256")
			return ast.BitArrayOption[T]{}, false
		}
		closing, ok := p.expect(token.RParen, "to close unit option")
		if !ok {
			return ast.BitArrayOption[T]{}, false
		}
		return ast.BitArrayOption[T]{
			Location: start.Cover(closing.Span),
			Kind:     ast.BitOptUnit,
			Unit:     unit,
		}, true

	default:
		kind, known := bitOptionKinds[nameTok.Text]
		if !known {
			p.reportAt(diag.SynUnexpectedToken, nameTok.Span, "unknown bit array option "+nameTok.Text)
			return ast.BitArrayOption[T]{}, false
		}
		return ast.BitArrayOption[T]{Location: nameTok.Span, Kind: kind}, true
	}
}

// parseBitArrayExpr — `<<...>>` в позиции выражения. Значения сегментов
// разбираются без бинарных операторов, как в остальных позициях сегмента.
func (p *Parser) parseBitArrayExpr() (ast.Expr, bool) {
	open := p.advance() // <<

	sizeValue := func() (ast.Expr, bool) { return p.parseUnary() }
	segments, closing, ok := parseBitArraySegments(p, func() (ast.Expr, bool) { return p.parseUnary() }, sizeValue)
	if !ok {
		return nil, false
	}

	bits := &ast.BitArrayExpr{Segments: segments}
	bits.Location = open.Span.Cover(closing.Span)
	return bits, true
}
