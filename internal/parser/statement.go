package parser

import (
	"opal/internal/ast"
	"opal/internal/token"
)

// parseStatements разбирает тело до terminator (не съедая его).
func (p *Parser) parseStatements(terminator token.Kind) ([]ast.Statement, bool) {
	var statements []ast.Statement
	for !p.at(terminator) && !p.at(token.EOF) {
		statement, ok := p.parseStatement()
		if !ok {
			return nil, false
		}
		statements = append(statements, statement)
	}
	return statements, true
}

func (p *Parser) parseStatement() (ast.Statement, bool) {
	switch p.cur.Kind {
	case token.KwLet:
		return p.parseAssignment()
	case token.KwUse:
		return p.parseUse()
	default:
		expr, ok := p.parseExpression()
		if !ok {
			return nil, false
		}
		return &ast.ExprStmt{Expr: expr}, true
	}
}

func (p *Parser) parseAssignment() (ast.Statement, bool) {
	letTok := p.advance() // let

	kind := ast.AssignLet
	if p.eat(token.KwAssert) {
		kind = ast.AssignLetAssert
	}

	pattern, ok := p.parsePattern()
	if !ok {
		return nil, false
	}

	assignment := &ast.Assignment{Kind: kind, Pattern: pattern}

	if p.eat(token.Colon) {
		annotation, ok := p.parseTypeAst()
		if !ok {
			return nil, false
		}
		assignment.Annotation = annotation
	}

	if _, ok := p.expect(token.Equal, "in let binding"); !ok {
		return nil, false
	}

	value, ok := p.parseExpression()
	if !ok {
		return nil, false
	}
	assignment.Value = value
	assignment.Location = letTok.Span.Cover(value.Loc())
	return assignment, true
}

func (p *Parser) parseUse() (ast.Statement, bool) {
	useTok := p.advance() // use

	use := &ast.Use{}

	for !p.at(token.LArrow) && !p.at(token.EOF) {
		patternStart := p.cur.Span
		pattern, ok := p.parsePattern()
		if !ok {
			return nil, false
		}
		assignment := ast.UseAssignment{Location: patternStart.Cover(pattern.Loc()), Pattern: pattern}
		if p.eat(token.Colon) {
			annotation, ok := p.parseTypeAst()
			if !ok {
				return nil, false
			}
			assignment.Annotation = annotation
			assignment.Location = assignment.Location.Cover(annotation.Loc())
		}
		use.Assignments = append(use.Assignments, assignment)
		if !p.eat(token.Comma) {
			break
		}
	}

	if _, ok := p.expect(token.LArrow, "in use expression"); !ok {
		return nil, false
	}

	call, ok := p.parseExpression()
	if !ok {
		return nil, false
	}
	use.Call = call
	use.Location = useTok.Span.Cover(call.Loc())
	return use, true
}
