package parser

import (
	"opal/internal/ast"
	"opal/internal/diag"
	"opal/internal/token"
)

// parseGuard разбирает выражение после if в ветви case. Грамматика уже
// выражений: без вызовов, конвейеров и блоков; скобочная группировка
// пишется фигурными скобками и в AST не сохраняется.
func (p *Parser) parseGuard() (ast.Guard, bool) {
	return p.parseGuardBinary(1)
}

func guardBinaryPrecedence(k token.Kind) uint8 {
	if k == token.PipeOp {
		return 0
	}
	return binaryPrecedence(k)
}

func (p *Parser) parseGuardBinary(minPrecedence uint8) (ast.Guard, bool) {
	left, ok := p.parseGuardUnary()
	if !ok {
		return nil, false
	}

	for {
		precedence := guardBinaryPrecedence(p.cur.Kind)
		if precedence == 0 || precedence < minPrecedence {
			return left, true
		}
		opTok := p.advance()

		right, ok := p.parseGuardBinary(precedence + 1)
		if !ok {
			return nil, false
		}

		bin := &ast.GuardBinOp{Op: tokenBinOp(opTok.Kind), Left: left, Right: right}
		bin.Location = left.Loc().Cover(right.Loc())
		left = bin
	}
}

func (p *Parser) parseGuardUnary() (ast.Guard, bool) {
	if p.at(token.Bang) {
		bangTok := p.advance()
		inner, ok := p.parseGuardUnary()
		if !ok {
			return nil, false
		}
		not := &ast.GuardNot{Guard: inner}
		not.Location = bangTok.Span.Cover(inner.Loc())
		return not, true
	}
	return p.parseGuardPrimary()
}

func (p *Parser) parseGuardPrimary() (ast.Guard, bool) {
	switch p.cur.Kind {
	case token.LBrace:
		p.advance()
		inner, ok := p.parseGuard()
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.RBrace, "to close guard group"); !ok {
			return nil, false
		}
		return inner, true

	case token.Name:
		tok := p.advance()
		var guard ast.Guard
		v := &ast.GuardVar{Name: tok.Text}
		v.Location = tok.Span
		guard = v
		return p.parseGuardAccessors(guard)

	case token.IntLit, token.FloatLit, token.StringLit,
		token.UpName, token.Hash, token.LBracket, token.LtLt:
		value, ok := p.parseConstantValue()
		if !ok {
			return nil, false
		}
		constant := &ast.GuardConstant{Value: value}
		constant.Location = value.Loc()
		return constant, true

	default:
		p.report(diag.SynExpectExpr, "expected a guard expression, got "+p.cur.Kind.String())
		return nil, false
	}
}

// parseGuardAccessors — хвост из .field и .0 после переменной.
func (p *Parser) parseGuardAccessors(guard ast.Guard) (ast.Guard, bool) {
	for p.at(token.Dot) {
		switch p.next.Kind {
		case token.IntLit:
			p.advance() // .
			indexTok := p.advance()
			index, ok := parseTupleIndexValue(indexTok.Text)
			if !ok {
				p.reportAt(diag.SynUnexpectedToken, indexTok.Span, "invalid tuple index "+indexTok.Text)
				return nil, false
			}
			tupleIndex := &ast.GuardTupleIndex{Tuple: guard, Index: index}
			tupleIndex.Location = guard.Loc().Cover(indexTok.Span)
			guard = tupleIndex

		case token.Name:
			p.advance() // .
			labelTok := p.advance()
			access := &ast.GuardFieldAccess{Container: guard, Label: labelTok.Text}
			access.Location = guard.Loc().Cover(labelTok.Span)
			guard = access

		default:
			p.report(diag.SynExpectIdentifier, "expected a field or index after . in guard")
			return nil, false
		}
	}
	return guard, true
}
