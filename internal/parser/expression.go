package parser

import (
	"opal/internal/ast"
	"opal/internal/diag"
	"opal/internal/token"
)

func (p *Parser) parseExpression() (ast.Expr, bool) {
	return p.parseBinary(1)
}

// binaryPrecedence — приоритет бинарного оператора по токену; 0 — не оператор.
func binaryPrecedence(k token.Kind) uint8 {
	switch k {
	case token.VbarVbar:
		return 1
	case token.AmperAmper:
		return 2
	case token.EqualEqual, token.NotEqual:
		return 3
	case token.Lt, token.LtEq, token.Gt, token.GtEq,
		token.LtDot, token.LtEqDot, token.GtDot, token.GtEqDot:
		return 4
	case token.LtGt:
		return 5
	case token.PipeOp:
		return 6
	case token.Plus, token.Minus, token.PlusDot, token.MinusDot:
		return 7
	case token.Star, token.Slash, token.Percent, token.StarDot, token.SlashDot:
		return 8
	}
	return 0
}

func tokenBinOp(k token.Kind) ast.BinOp {
	switch k {
	case token.VbarVbar:
		return ast.OpOr
	case token.AmperAmper:
		return ast.OpAnd
	case token.EqualEqual:
		return ast.OpEq
	case token.NotEqual:
		return ast.OpNotEq
	case token.Lt:
		return ast.OpLtInt
	case token.LtEq:
		return ast.OpLtEqInt
	case token.LtDot:
		return ast.OpLtFloat
	case token.LtEqDot:
		return ast.OpLtEqFloat
	case token.Gt:
		return ast.OpGtInt
	case token.GtEq:
		return ast.OpGtEqInt
	case token.GtDot:
		return ast.OpGtFloat
	case token.GtEqDot:
		return ast.OpGtEqFloat
	case token.LtGt:
		return ast.OpConcatenate
	case token.Plus:
		return ast.OpAddInt
	case token.PlusDot:
		return ast.OpAddFloat
	case token.Minus:
		return ast.OpSubInt
	case token.MinusDot:
		return ast.OpSubFloat
	case token.Star:
		return ast.OpMultInt
	case token.StarDot:
		return ast.OpMultFloat
	case token.Slash:
		return ast.OpDivInt
	case token.SlashDot:
		return ast.OpDivFloat
	default:
		return ast.OpRemainderInt
	}
}

// parseBinary — восхождение по приоритетам; все операторы левоассоциативны,
// конвейер сплющивается в один узел.
func (p *Parser) parseBinary(minPrecedence uint8) (ast.Expr, bool) {
	left, ok := p.parseUnary()
	if !ok {
		return nil, false
	}

	for {
		precedence := binaryPrecedence(p.cur.Kind)
		if precedence == 0 || precedence < minPrecedence {
			return left, true
		}
		opTok := p.advance()

		right, ok := p.parseBinary(precedence + 1)
		if !ok {
			return nil, false
		}

		if opTok.Kind == token.PipeOp {
			if pipe, isPipe := left.(*ast.Pipeline); isPipe {
				pipe.Expressions = append(pipe.Expressions, right)
				pipe.Location = pipe.Location.Cover(right.Loc())
				continue
			}
			pipe := &ast.Pipeline{Expressions: []ast.Expr{left, right}}
			pipe.Location = left.Loc().Cover(right.Loc())
			left = pipe
			continue
		}

		bin := &ast.BinExpr{Op: tokenBinOp(opTok.Kind), Left: left, Right: right}
		bin.Location = left.Loc().Cover(right.Loc())
		left = bin
	}
}

func (p *Parser) parseUnary() (ast.Expr, bool) {
	switch p.cur.Kind {
	case token.Bang:
		bangTok := p.advance()
		value, ok := p.parseUnary()
		if !ok {
			return nil, false
		}
		negate := &ast.NegateBool{Value: value}
		negate.Location = bangTok.Span.Cover(value.Loc())
		return negate, true

	case token.Minus:
		minusTok := p.advance()
		value, ok := p.parseUnary()
		if !ok {
			return nil, false
		}
		negate := &ast.NegateInt{Value: value}
		negate.Location = minusTok.Span.Cover(value.Loc())
		return negate, true
	}
	return p.parsePostfix()
}

// parsePostfix — первичное выражение плюс хвост из доступов и вызовов.
func (p *Parser) parsePostfix() (ast.Expr, bool) {
	expr, ok := p.parsePrimary()
	if !ok {
		return nil, false
	}

	for {
		switch {
		case p.at(token.Dot) && p.next.Kind == token.IntLit:
			p.advance() // .
			indexTok := p.advance()
			index, ok := parseTupleIndexValue(indexTok.Text)
			if !ok {
				p.reportAt(diag.SynUnexpectedToken, indexTok.Span, "invalid tuple index "+indexTok.Text)
				return nil, false
			}
			tupleIndex := &ast.TupleIndex{Tuple: expr, Index: index}
			tupleIndex.Location = expr.Loc().Cover(indexTok.Span)
			expr = tupleIndex

		case p.at(token.Dot) && (p.next.Kind == token.Name || p.next.Kind == token.UpName):
			p.advance() // .
			labelTok := p.advance()
			access := &ast.FieldAccess{Container: expr, Label: labelTok.Text}
			access.Location = expr.Loc().Cover(labelTok.Span)
			expr = access

		case p.at(token.LParen):
			called, ok := p.parseCallTail(expr)
			if !ok {
				return nil, false
			}
			expr = called

		default:
			return expr, true
		}
	}
}

// parseCallTail разбирает скобки вызова: обычный вызов, обновление записи
// или capture-форму с дыркой `_`.
func (p *Parser) parseCallTail(fun ast.Expr) (ast.Expr, bool) {
	p.advance() // (

	// Ctor(..base, field: value) — обновление записи
	if p.at(token.DotDot) {
		return p.parseRecordUpdateTail(fun)
	}

	var args []ast.CallArg[ast.Expr]
	holes := 0
	for !p.at(token.RParen) && !p.at(token.EOF) {
		arg, isHole, ok := p.parseCallArg()
		if !ok {
			return nil, false
		}
		if isHole {
			holes++
			if holes > 1 {
				p.reportAt(diag.SynBadCapture, arg.Location, "only one argument hole is allowed per capture")
				return nil, false
			}
		}
		args = append(args, arg)
		if !p.eat(token.Comma) {
			break
		}
	}
	closing, ok := p.expect(token.RParen, "to close call arguments")
	if !ok {
		return nil, false
	}

	call := &ast.Call{Fun: fun, Arguments: args}
	call.Location = fun.Loc().Cover(closing.Span)
	if holes == 0 {
		return call, true
	}

	// f(_, 2) — сахар для fn(x) { f(x, 2) }
	capture := &ast.Fn{
		IsCapture: true,
		Arguments: []ast.Arg{{Location: call.Location, Names: ast.ArgNames{Name: ast.CaptureVariable}}},
		Body:      []ast.Statement{&ast.ExprStmt{Expr: call}},
	}
	capture.Location = call.Location
	capture.EndPosition = closing.Span.Start
	return capture, true
}

func (p *Parser) parseCallArg() (ast.CallArg[ast.Expr], bool, bool) {
	arg := ast.CallArg[ast.Expr]{Location: p.cur.Span}

	if p.at(token.Name) && p.next.Kind == token.Colon {
		arg.Label = p.advance().Text
		p.advance() // :
	}

	if p.at(token.DiscardName) && p.cur.Text == "_" {
		holeTok := p.advance()
		hole := &ast.Var{Name: ast.CaptureVariable}
		hole.Location = holeTok.Span
		arg.Value = hole
		arg.Location = arg.Location.Cover(holeTok.Span)
		return arg, true, true
	}

	value, ok := p.parseExpression()
	if !ok {
		return ast.CallArg[ast.Expr]{}, false, false
	}
	arg.Value = value
	arg.Location = arg.Location.Cover(value.Loc())
	return arg, false, true
}

func (p *Parser) parseRecordUpdateTail(constructor ast.Expr) (ast.Expr, bool) {
	p.advance() // ..

	record, ok := p.parseExpression()
	if !ok {
		return nil, false
	}

	update := &ast.RecordUpdate{Constructor: constructor, Record: record}

	for p.eat(token.Comma) {
		if p.at(token.RParen) {
			break
		}
		labelTok, ok := p.expectName("as record field")
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.Colon, "after record field label"); !ok {
			return nil, false
		}
		value, ok := p.parseExpression()
		if !ok {
			return nil, false
		}
		update.Arguments = append(update.Arguments, ast.RecordUpdateArg{
			Location: labelTok.Span.Cover(value.Loc()),
			Label:    labelTok.Text,
			Value:    value,
		})
	}

	closing, ok := p.expect(token.RParen, "to close record update")
	if !ok {
		return nil, false
	}
	update.Location = constructor.Loc().Cover(closing.Span)
	return update, true
}

func (p *Parser) parsePrimary() (ast.Expr, bool) {
	switch p.cur.Kind {
	case token.IntLit:
		tok := p.advance()
		lit := &ast.IntLit{Value: tok.Text}
		lit.Location = tok.Span
		return lit, true

	case token.FloatLit:
		tok := p.advance()
		lit := &ast.FloatLit{Value: tok.Text}
		lit.Location = tok.Span
		return lit, true

	case token.StringLit:
		tok := p.advance()
		lit := &ast.StringLit{Value: tok.Text}
		lit.Location = tok.Span
		return lit, true

	case token.Name, token.UpName:
		tok := p.advance()
		v := &ast.Var{Name: tok.Text}
		v.Location = tok.Span
		return v, true

	case token.KwTodo:
		tok := p.advance()
		todo := &ast.Todo{}
		todo.Location = tok.Span
		if p.eat(token.KwAs) {
			msgTok, ok := p.expect(token.StringLit, "as todo message")
			if !ok {
				return nil, false
			}
			msg := msgTok.Text
			todo.Message = &msg
			todo.Location = tok.Span.Cover(msgTok.Span)
		}
		return todo, true

	case token.KwPanic:
		tok := p.advance()
		pan := &ast.Panic{}
		pan.Location = tok.Span
		if p.eat(token.KwAs) {
			msgTok, ok := p.expect(token.StringLit, "as panic message")
			if !ok {
				return nil, false
			}
			msg := msgTok.Text
			pan.Message = &msg
			pan.Location = tok.Span.Cover(msgTok.Span)
		}
		return pan, true

	case token.KwFn:
		return p.parseAnonymousFn()

	case token.KwCase:
		return p.parseCase()

	case token.LBracket:
		return p.parseList()

	case token.Hash:
		return p.parseTuple()

	case token.LtLt:
		return p.parseBitArrayExpr()

	case token.LBrace:
		return p.parseBlock()

	default:
		p.report(diag.SynExpectExpr, "expected an expression, got "+p.cur.Kind.String())
		return nil, false
	}
}

func (p *Parser) parseAnonymousFn() (ast.Expr, bool) {
	fnTok := p.advance() // fn

	if _, ok := p.expect(token.LParen, "to open fn parameters"); !ok {
		return nil, false
	}
	args, _, ok := p.parseFnArgs()
	if !ok {
		return nil, false
	}

	fn := &ast.Fn{Arguments: args}

	if p.eat(token.RArrow) {
		annotation, ok := p.parseTypeAst()
		if !ok {
			return nil, false
		}
		fn.ReturnAnnotation = annotation
	}

	if _, ok := p.expect(token.LBrace, "to open fn body"); !ok {
		return nil, false
	}
	body, ok := p.parseStatements(token.RBrace)
	if !ok {
		return nil, false
	}
	if len(body) == 0 {
		p.report(diag.SynEmptyBlock, "anonymous functions must have a body")
		return nil, false
	}
	fn.Body = body

	closing, ok := p.expect(token.RBrace, "to close fn body")
	if !ok {
		return nil, false
	}
	fn.Location = fnTok.Span.Cover(closing.Span)
	fn.EndPosition = closing.Span.Start
	return fn, true
}

func (p *Parser) parseCase() (ast.Expr, bool) {
	caseTok := p.advance() // case

	c := &ast.Case{}

	for !p.at(token.LBrace) && !p.at(token.EOF) {
		subject, ok := p.parseExpression()
		if !ok {
			return nil, false
		}
		c.Subjects = append(c.Subjects, subject)
		if !p.eat(token.Comma) {
			break
		}
	}

	if _, ok := p.expect(token.LBrace, "to open case clauses"); !ok {
		return nil, false
	}

	for !p.at(token.RBrace) && !p.at(token.EOF) {
		clause, ok := p.parseClause()
		if !ok {
			return nil, false
		}
		c.Clauses = append(c.Clauses, clause)
	}
	if len(c.Clauses) == 0 {
		p.report(diag.SynEmptyCase, "case expressions must have at least one clause")
		return nil, false
	}

	closing, ok := p.expect(token.RBrace, "to close case clauses")
	if !ok {
		return nil, false
	}
	c.Location = caseTok.Span.Cover(closing.Span)
	c.EndPosition = closing.Span.Start
	return c, true
}

func (p *Parser) parseClause() (ast.Clause, bool) {
	start := p.cur.Span

	patternRow := func() ([]ast.Pattern, bool) {
		var patterns []ast.Pattern
		for {
			pattern, ok := p.parsePattern()
			if !ok {
				return nil, false
			}
			patterns = append(patterns, pattern)
			if !p.eat(token.Comma) {
				return patterns, true
			}
		}
	}

	patterns, ok := patternRow()
	if !ok {
		return ast.Clause{}, false
	}
	clause := ast.Clause{Location: start, Patterns: patterns}

	for p.eat(token.Vbar) {
		alternative, ok := patternRow()
		if !ok {
			return ast.Clause{}, false
		}
		clause.AlternativePatterns = append(clause.AlternativePatterns, alternative)
	}

	if p.eat(token.KwIf) {
		guard, ok := p.parseGuard()
		if !ok {
			return ast.Clause{}, false
		}
		clause.Guard = guard
	}

	if _, ok := p.expect(token.RArrow, "in case clause"); !ok {
		return ast.Clause{}, false
	}

	then, ok := p.parseExpression()
	if !ok {
		return ast.Clause{}, false
	}
	clause.Then = then
	clause.Location = start.Cover(then.Loc())
	return clause, true
}

func (p *Parser) parseList() (ast.Expr, bool) {
	openTok := p.advance() // [

	list := &ast.List{}

	for !p.at(token.RBracket) && !p.at(token.EOF) {
		if p.at(token.DotDot) {
			p.advance()
			tail, ok := p.parseExpression()
			if !ok {
				return nil, false
			}
			list.Tail = tail
			break
		}

		element, ok := p.parseExpression()
		if !ok {
			return nil, false
		}
		list.Elements = append(list.Elements, element)
		if !p.eat(token.Comma) {
			break
		}
	}

	closing, ok := p.expect(token.RBracket, "to close list")
	if !ok {
		return nil, false
	}
	list.Location = openTok.Span.Cover(closing.Span)
	return list, true
}

func (p *Parser) parseTuple() (ast.Expr, bool) {
	hashTok := p.advance() // #
	if _, ok := p.expect(token.LParen, "after # in tuple"); !ok {
		return nil, false
	}

	tuple := &ast.Tuple{}
	for !p.at(token.RParen) && !p.at(token.EOF) {
		element, ok := p.parseExpression()
		if !ok {
			return nil, false
		}
		tuple.Elements = append(tuple.Elements, element)
		if !p.eat(token.Comma) {
			break
		}
	}

	closing, ok := p.expect(token.RParen, "to close tuple")
	if !ok {
		return nil, false
	}
	tuple.Location = hashTok.Span.Cover(closing.Span)
	return tuple, true
}

func (p *Parser) parseBlock() (ast.Expr, bool) {
	openTok := p.advance() // {

	statements, ok := p.parseStatements(token.RBrace)
	if !ok {
		return nil, false
	}
	if len(statements) == 0 {
		p.report(diag.SynEmptyBlock, "blocks must contain at least one statement")
		return nil, false
	}

	closing, ok := p.expect(token.RBrace, "to close block")
	if !ok {
		return nil, false
	}
	block := &ast.Block{Statements: statements}
	block.Location = openTok.Span.Cover(closing.Span)
	return block, true
}

// parseTupleIndexValue разбирает индекс кортежа из текста токена.
func parseTupleIndexValue(text string) (uint32, bool) {
	var index uint32
	if text == "" {
		return 0, false
	}
	for i := 0; i < len(text); i++ {
		ch := text[i]
		if ch < '0' || ch > '9' {
			return 0, false
		}
		index = index*10 + uint32(ch-'0')
	}
	return index, true
}
