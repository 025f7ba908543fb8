package parser

import (
	"opal/internal/ast"
	"opal/internal/diag"
	"opal/internal/source"
	"opal/internal/token"
)

func (p *Parser) parseConstantValue() (ast.Constant, bool) {
	switch p.cur.Kind {
	case token.IntLit:
		tok := p.advance()
		c := &ast.ConstInt{Value: tok.Text}
		c.Location = tok.Span
		return c, true

	case token.FloatLit:
		tok := p.advance()
		c := &ast.ConstFloat{Value: tok.Text}
		c.Location = tok.Span
		return c, true

	case token.StringLit:
		tok := p.advance()
		c := &ast.ConstString{Value: tok.Text}
		c.Location = tok.Span
		return c, true

	case token.Hash:
		return p.parseConstTuple()

	case token.LBracket:
		return p.parseConstList()

	case token.LtLt:
		return p.parseConstBitArray()

	case token.UpName:
		nameTok := p.advance()
		return p.parseConstRecord("", nameTok, nameTok.Span)

	case token.Name:
		moduleTok := p.advance()
		if !p.eat(token.Dot) {
			v := &ast.ConstVar{Name: moduleTok.Text}
			v.Location = moduleTok.Span
			return v, true
		}
		switch p.cur.Kind {
		case token.UpName:
			nameTok := p.advance()
			return p.parseConstRecord(moduleTok.Text, nameTok, moduleTok.Span)
		case token.Name:
			nameTok := p.advance()
			v := &ast.ConstVar{Name: nameTok.Text, Module: moduleTok.Text}
			v.Location = moduleTok.Span.Cover(nameTok.Span)
			return v, true
		default:
			p.report(diag.SynExpectIdentifier, "expected a name after module qualifier, got "+p.cur.Kind.String())
			return nil, false
		}

	default:
		p.report(diag.SynExpectExpr, "expected a constant, got "+p.cur.Kind.String())
		return nil, false
	}
}

func (p *Parser) parseConstRecord(module string, nameTok token.Token, start source.Span) (ast.Constant, bool) {
	record := &ast.ConstRecord{Name: nameTok.Text, Module: module}
	record.Location = start.Cover(nameTok.Span)

	if !p.at(token.LParen) {
		return record, true
	}
	p.advance()

	for !p.at(token.RParen) && !p.at(token.EOF) {
		arg := ast.CallArg[ast.Constant]{Location: p.cur.Span}
		if p.at(token.Name) && p.next.Kind == token.Colon {
			arg.Label = p.advance().Text
			p.advance() // :
		}
		value, ok := p.parseConstantValue()
		if !ok {
			return nil, false
		}
		arg.Value = value
		arg.Location = arg.Location.Cover(value.Loc())
		record.Arguments = append(record.Arguments, arg)

		if !p.eat(token.Comma) {
			break
		}
	}

	closing, ok := p.expect(token.RParen, "to close constructor arguments")
	if !ok {
		return nil, false
	}
	record.Location = start.Cover(closing.Span)
	return record, true
}

func (p *Parser) parseConstTuple() (ast.Constant, bool) {
	hashTok := p.advance() // #
	if _, ok := p.expect(token.LParen, "after # in tuple constant"); !ok {
		return nil, false
	}

	tuple := &ast.ConstTuple{}
	for !p.at(token.RParen) && !p.at(token.EOF) {
		element, ok := p.parseConstantValue()
		if !ok {
			return nil, false
		}
		tuple.Elements = append(tuple.Elements, element)
		if !p.eat(token.Comma) {
			break
		}
	}

	closing, ok := p.expect(token.RParen, "to close tuple constant")
	if !ok {
		return nil, false
	}
	tuple.Location = hashTok.Span.Cover(closing.Span)
	return tuple, true
}

func (p *Parser) parseConstList() (ast.Constant, bool) {
	openTok := p.advance() // [

	list := &ast.ConstList{}
	for !p.at(token.RBracket) && !p.at(token.EOF) {
		element, ok := p.parseConstantValue()
		if !ok {
			return nil, false
		}
		list.Elements = append(list.Elements, element)
		if !p.eat(token.Comma) {
			break
		}
	}

	closing, ok := p.expect(token.RBracket, "to close list constant")
	if !ok {
		return nil, false
	}
	list.Location = openTok.Span.Cover(closing.Span)
	return list, true
}

func (p *Parser) parseConstBitArray() (ast.Constant, bool) {
	open := p.advance() // <<

	sizeValue := func() (ast.Constant, bool) {
		switch p.cur.Kind {
		case token.IntLit:
			tok := p.advance()
			c := &ast.ConstInt{Value: tok.Text}
			c.Location = tok.Span
			return c, true
		case token.Name:
			tok := p.advance()
			c := &ast.ConstVar{Name: tok.Text}
			c.Location = tok.Span
			return c, true
		default:
			p.report(diag.SynExpectExpr, "expected a size, got "+p.cur.Kind.String())
			return nil, false
		}
	}

	segments, closing, ok := parseBitArraySegments(p, p.parseConstantValue, sizeValue)
	if !ok {
		return nil, false
	}

	bits := &ast.ConstBitArray{Segments: segments}
	bits.Location = open.Span.Cover(closing.Span)
	return bits, true
}
