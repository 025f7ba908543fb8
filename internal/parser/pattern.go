package parser

import (
	"opal/internal/ast"
	"opal/internal/diag"
	"opal/internal/source"
	"opal/internal/token"
)

func (p *Parser) parsePattern() (ast.Pattern, bool) {
	pattern, ok := p.parsePatternPrimary()
	if !ok {
		return nil, false
	}

	// `pattern as name`; строковый префикс обрабатывает as сам
	if p.at(token.KwAs) {
		p.advance()
		nameTok, ok := p.expectName("after as in pattern")
		if !ok {
			return nil, false
		}
		assign := &ast.AssignPat{Name: nameTok.Text, Pattern: pattern}
		assign.Location = pattern.Loc().Cover(nameTok.Span)
		return assign, true
	}
	return pattern, true
}

func (p *Parser) parsePatternPrimary() (ast.Pattern, bool) {
	switch p.cur.Kind {
	case token.IntLit:
		tok := p.advance()
		pat := &ast.IntPat{Value: tok.Text}
		pat.Location = tok.Span
		return pat, true

	case token.FloatLit:
		tok := p.advance()
		pat := &ast.FloatPat{Value: tok.Text}
		pat.Location = tok.Span
		return pat, true

	case token.StringLit:
		return p.parseStringPattern()

	case token.DiscardName:
		tok := p.advance()
		pat := &ast.DiscardPat{Name: tok.Text}
		pat.Location = tok.Span
		return pat, true

	case token.Name:
		if p.next.Kind == token.Dot {
			moduleTok := p.advance()
			p.advance() // .
			nameTok, ok := p.expectUpName("after module qualifier in pattern")
			if !ok {
				return nil, false
			}
			return p.parseConstructorPattern(moduleTok.Span, moduleTok.Text, nameTok)
		}
		tok := p.advance()
		pat := &ast.VarPat{Name: tok.Text}
		pat.Location = tok.Span
		return pat, true

	case token.UpName:
		nameTok := p.advance()
		return p.parseConstructorPattern(nameTok.Span, "", nameTok)

	case token.LBracket:
		return p.parseListPattern()

	case token.Hash:
		return p.parseTuplePattern()

	case token.LtLt:
		return p.parseBitArrayPattern()

	default:
		p.report(diag.SynExpectPattern, "expected a pattern, got "+p.cur.Kind.String())
		return nil, false
	}
}

// parseStringPattern — строковый литерал либо префикс: `"pre" as p <> rest`.
func (p *Parser) parseStringPattern() (ast.Pattern, bool) {
	strTok := p.advance()

	prefixAssignment := ""
	var assignSpan token.Token
	hasAssign := false
	if p.at(token.KwAs) && p.next.Kind == token.Name {
		p.advance() // as
		assignSpan = p.advance()
		prefixAssignment = assignSpan.Text
		hasAssign = true
	}

	if p.eat(token.LtGt) {
		if !p.at(token.Name) && !p.at(token.DiscardName) {
			p.report(diag.SynExpectPattern, "expected a name after <> in pattern, got "+p.cur.Kind.String())
			return nil, false
		}
		restTok := p.advance()
		pat := &ast.StringPrefixPat{
			Prefix:           strTok.Text,
			PrefixAssignment: prefixAssignment,
			Rest:             restTok.Text,
		}
		pat.Location = strTok.Span.Cover(restTok.Span)
		return pat, true
	}

	str := &ast.StringPat{Value: strTok.Text}
	str.Location = strTok.Span
	if !hasAssign {
		return str, true
	}
	assign := &ast.AssignPat{Name: prefixAssignment, Pattern: str}
	assign.Location = strTok.Span.Cover(assignSpan.Span)
	return assign, true
}

func (p *Parser) parseConstructorPattern(start source.Span, module string, nameTok token.Token) (ast.Pattern, bool) {
	pat := &ast.ConstructorPat{Name: nameTok.Text, Module: module}
	pat.Location = start.Cover(nameTok.Span)

	if !p.at(token.LParen) {
		return pat, true
	}
	p.advance()

	for !p.at(token.RParen) && !p.at(token.EOF) {
		if p.at(token.DotDot) {
			p.advance()
			pat.Spread = true
			p.eat(token.Comma)
			break
		}

		arg := ast.CallArg[ast.Pattern]{Location: p.cur.Span}
		if p.at(token.Name) && p.next.Kind == token.Colon {
			arg.Label = p.advance().Text
			p.advance() // :
		}
		value, ok := p.parsePattern()
		if !ok {
			return nil, false
		}
		arg.Value = value
		arg.Location = arg.Location.Cover(value.Loc())
		pat.Arguments = append(pat.Arguments, arg)

		if !p.eat(token.Comma) {
			break
		}
	}

	closing, ok := p.expect(token.RParen, "to close constructor pattern")
	if !ok {
		return nil, false
	}
	pat.Location = start.Cover(closing.Span)
	return pat, true
}

func (p *Parser) parseListPattern() (ast.Pattern, bool) {
	openTok := p.advance() // [

	list := &ast.ListPat{}

	for !p.at(token.RBracket) && !p.at(token.EOF) {
		if p.at(token.DotDot) {
			dotsTok := p.advance()
			if p.at(token.RBracket) {
				tail := &ast.DiscardPat{Name: "_"}
				tail.Location = dotsTok.Span
				list.Tail = tail
			} else {
				tail, ok := p.parsePattern()
				if !ok {
					return nil, false
				}
				list.Tail = tail
			}
			break
		}

		element, ok := p.parsePattern()
		if !ok {
			return nil, false
		}
		list.Elements = append(list.Elements, element)
		if !p.eat(token.Comma) {
			break
		}
	}

	closing, ok := p.expect(token.RBracket, "to close list pattern")
	if !ok {
		return nil, false
	}
	list.Location = openTok.Span.Cover(closing.Span)
	return list, true
}

func (p *Parser) parseTuplePattern() (ast.Pattern, bool) {
	hashTok := p.advance() // #
	if _, ok := p.expect(token.LParen, "after # in tuple pattern"); !ok {
		return nil, false
	}

	tuple := &ast.TuplePat{}
	for !p.at(token.RParen) && !p.at(token.EOF) {
		element, ok := p.parsePattern()
		if !ok {
			return nil, false
		}
		tuple.Elems = append(tuple.Elems, element)
		if !p.eat(token.Comma) {
			break
		}
	}

	closing, ok := p.expect(token.RParen, "to close tuple pattern")
	if !ok {
		return nil, false
	}
	tuple.Location = hashTok.Span.Cover(closing.Span)
	return tuple, true
}

func (p *Parser) parseBitArrayPattern() (ast.Pattern, bool) {
	open := p.advance() // <<

	// внутри size() имя ссылается на уже связанную переменную
	sizeValue := func() (ast.Pattern, bool) {
		switch p.cur.Kind {
		case token.IntLit:
			tok := p.advance()
			pat := &ast.IntPat{Value: tok.Text}
			pat.Location = tok.Span
			return pat, true
		case token.Name:
			tok := p.advance()
			pat := &ast.VarUsagePat{Name: tok.Text}
			pat.Location = tok.Span
			return pat, true
		default:
			p.report(diag.SynExpectPattern, "expected a size, got "+p.cur.Kind.String())
			return nil, false
		}
	}

	segments, closing, ok := parseBitArraySegments(p, p.parsePattern, sizeValue)
	if !ok {
		return nil, false
	}

	bits := &ast.BitArrayPat{Segments: segments}
	bits.Location = open.Span.Cover(closing.Span)
	return bits, true
}
