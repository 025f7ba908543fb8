package parser

import (
	"opal/internal/ast"
	"opal/internal/diag"
	"opal/internal/token"
)

func (p *Parser) parseTypeAst() (ast.TypeAst, bool) {
	switch p.cur.Kind {
	case token.DiscardName:
		tok := p.advance()
		hole := &ast.TypeHole{Name: tok.Text}
		hole.Location = tok.Span
		return hole, true

	case token.Name:
		if p.next.Kind == token.Dot {
			moduleTok := p.advance()
			p.advance() // .
			nameTok, ok := p.expectUpName("after module qualifier in type")
			if !ok {
				return nil, false
			}
			return p.parseTypeConstructor(moduleTok, nameTok)
		}
		tok := p.advance()
		v := &ast.TypeVar{Name: tok.Text}
		v.Location = tok.Span
		return v, true

	case token.UpName:
		nameTok := p.advance()
		return p.parseTypeConstructor(token.Token{}, nameTok)

	case token.KwFn:
		return p.parseTypeFn()

	case token.Hash:
		return p.parseTypeTuple()

	default:
		p.report(diag.SynExpectType, "expected a type, got "+p.cur.Kind.String())
		return nil, false
	}
}

func (p *Parser) parseTypeConstructor(moduleTok, nameTok token.Token) (ast.TypeAst, bool) {
	ctor := &ast.TypeConstructor{Name: nameTok.Text}
	ctor.Location = nameTok.Span
	if moduleTok.Kind == token.Name {
		ctor.Module = moduleTok.Text
		ctor.Location = moduleTok.Span.Cover(nameTok.Span)
	}

	if !p.at(token.LParen) {
		return ctor, true
	}
	p.advance()

	for !p.at(token.RParen) && !p.at(token.EOF) {
		argument, ok := p.parseTypeAst()
		if !ok {
			return nil, false
		}
		ctor.Arguments = append(ctor.Arguments, argument)
		if !p.eat(token.Comma) {
			break
		}
	}

	closing, ok := p.expect(token.RParen, "to close type arguments")
	if !ok {
		return nil, false
	}
	ctor.Location = ctor.Location.Cover(closing.Span)
	return ctor, true
}

func (p *Parser) parseTypeFn() (ast.TypeAst, bool) {
	fnTok := p.advance() // fn
	if _, ok := p.expect(token.LParen, "to open fn type parameters"); !ok {
		return nil, false
	}

	fn := &ast.TypeFn{}
	for !p.at(token.RParen) && !p.at(token.EOF) {
		argument, ok := p.parseTypeAst()
		if !ok {
			return nil, false
		}
		fn.Arguments = append(fn.Arguments, argument)
		if !p.eat(token.Comma) {
			break
		}
	}
	if _, ok := p.expect(token.RParen, "to close fn type parameters"); !ok {
		return nil, false
	}

	if _, ok := p.expect(token.RArrow, "in fn type"); !ok {
		return nil, false
	}
	ret, ok := p.parseTypeAst()
	if !ok {
		return nil, false
	}
	fn.Return = ret
	fn.Location = fnTok.Span.Cover(ret.Loc())
	return fn, true
}

func (p *Parser) parseTypeTuple() (ast.TypeAst, bool) {
	hashTok := p.advance() // #
	if _, ok := p.expect(token.LParen, "after # in tuple type"); !ok {
		return nil, false
	}

	tuple := &ast.TypeTuple{}
	for !p.at(token.RParen) && !p.at(token.EOF) {
		element, ok := p.parseTypeAst()
		if !ok {
			return nil, false
		}
		tuple.Elems = append(tuple.Elems, element)
		if !p.eat(token.Comma) {
			break
		}
	}

	closing, ok := p.expect(token.RParen, "to close tuple type")
	if !ok {
		return nil, false
	}
	tuple.Location = hashTok.Span.Cover(closing.Span)
	return tuple, true
}
