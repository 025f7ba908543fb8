package format

import (
	"strconv"

	"opal/internal/ast"
	"opal/internal/doc"
)

func (p *Formatter) expr(expr ast.Expr) *doc.Document {
	comments := p.popComments(startByteIndex(expr))

	var document *doc.Document
	switch e := expr.(type) {
	case *ast.Placeholder:
		panic("placeholders should not be formatted")

	case *ast.Panic:
		if e.Message != nil {
			document = doc.Text("panic as \"" + *e.Message + "\"")
		} else {
			document = doc.Text("panic")
		}

	case *ast.Todo:
		if e.Message != nil {
			document = doc.Text("todo as \"" + *e.Message + "\"")
		} else {
			document = doc.Text("todo")
		}

	case *ast.Pipeline:
		document = p.pipeline(e)

	case *ast.IntLit:
		document = intDoc(e.Value)

	case *ast.FloatLit:
		document = floatDoc(e.Value)

	case *ast.StringLit:
		document = stringDoc(e.Value)

	case *ast.Block:
		document = p.block(e.Statements)

	case *ast.Var:
		if e.Name == ast.CaptureVariable {
			document = doc.Text("_")
		} else {
			document = doc.Text(e.Name)
		}

	case *ast.TupleIndex:
		document = p.tupleIndex(e)

	case *ast.NegateInt:
		document = p.negateInt(e.Value)

	case *ast.NegateBool:
		document = p.negateBool(e.Value)

	case *ast.Fn:
		if e.IsCapture {
			document = p.fnCapture(e.Body)
		} else {
			document = p.exprFn(e)
		}

	case *ast.List:
		document = p.list(e.Elements, e.Tail)

	case *ast.Call:
		document = p.call(e.Fun, e.Arguments)

	case *ast.BinExpr:
		document = p.binOp(e)

	case *ast.Case:
		document = p.caseDoc(e)

	case *ast.FieldAccess:
		container := p.expr(e.Container)
		if _, ok := e.Container.(*ast.TupleIndex); ok {
			container = container.Surround("{ ", " }")
		}
		document = container.AppendText(".").AppendText(e.Label)

	case *ast.Tuple:
		elems := make([]*doc.Document, 0, len(e.Elements))
		for _, elem := range e.Elements {
			elems = append(elems, p.expr(elem))
		}
		document = doc.Text("#").Append(wrapArgs(elems)).Group()

	case *ast.BitArrayExpr:
		simple := true
		segments := make([]*doc.Document, 0, len(e.Segments))
		for i := range e.Segments {
			segment := &e.Segments[i]
			if !ast.IsSimpleConstant(segment.Value) {
				simple = false
			}
			segments = append(segments, bitArraySegment(segment, p.bitArraySegmentExpr))
		}
		document = bitArray(segments, simple)

	case *ast.RecordUpdate:
		document = p.recordUpdate(e)

	default:
		panic("unknown expression kind")
	}

	return commented(document, comments)
}

func (p *Formatter) call(fun ast.Expr, args []ast.CallArg[ast.Expr]) *doc.Document {
	var expr *doc.Document
	switch fun.(type) {
	case *ast.Placeholder:
		panic("placeholders should not be formatted")
	case *ast.Pipeline:
		expr = breakBlock(p.expr(fun))
	default:
		expr = p.expr(fun)
	}

	if len(args) == 1 && isBreakableExpr(args[0].Value) && !p.anyComments(args[0].Location.Start) {
		return expr.AppendText("(").
			Append(p.callArg(&args[0])).
			AppendText(")").
			Group()
	}

	docs := make([]*doc.Document, 0, len(args))
	for i := range args {
		docs = append(docs, p.callArg(&args[i]))
	}
	return expr.Append(wrapArgs(docs).Group()).Group()
}

func (p *Formatter) callArg(arg *ast.CallArg[ast.Expr]) *doc.Document {
	label := doc.Nil()
	if arg.Label != "" {
		label = commented(
			doc.Text(arg.Label).AppendText(": "),
			p.popComments(arg.Location.Start),
		)
	}
	return label.Append(p.expr(arg.Value))
}

func (p *Formatter) caseDoc(c *ast.Case) *doc.Document {
	subjects := make([]*doc.Document, 0, len(c.Subjects))
	for _, s := range c.Subjects {
		subjects = append(subjects, p.expr(s))
	}
	subjectsDoc := doc.Break("case", "case ").
		Append(doc.Join(subjects, doc.Break(",", ", "))).
		Nest(indent).
		Append(doc.Break("", " ")).
		AppendText("{").
		Group()

	clausesDoc := doc.Nil()
	for i := range c.Clauses {
		clausesDoc = clausesDoc.Append(p.clause(&c.Clauses[i], i))
	}

	return subjectsDoc.
		Append(doc.Line().Append(clausesDoc).Nest(indent)).
		Append(doc.Line()).
		AppendText("}").
		ForceBreak()
}

func (p *Formatter) clause(clause *ast.Clause, index int) *doc.Document {
	spaceBefore := p.popEmptyLines(clause.Location.Start)
	comments := p.popComments(clause.Location.Start)

	patternRow := func(patterns []ast.Pattern) *doc.Document {
		docs := make([]*doc.Document, 0, len(patterns))
		for _, pattern := range patterns {
			docs = append(docs, p.pattern(pattern))
		}
		return doc.Join(docs, doc.Text(", "))
	}

	rows := []*doc.Document{patternRow(clause.Patterns)}
	for _, alternative := range clause.AlternativePatterns {
		rows = append(rows, patternRow(alternative))
	}
	clauseDoc := doc.Join(rows, doc.Break("", " ").AppendText("| ")).Group()

	if clause.Guard != nil {
		clauseDoc = clauseDoc.AppendText(" if ").Append(p.clauseGuard(clause.Guard))
	}
	clauseDoc = commented(clauseDoc, comments)

	switch {
	case index == 0:
	case spaceBefore:
		clauseDoc = doc.Lines(2).Append(clauseDoc)
	default:
		clauseDoc = doc.Lines(1).Append(clauseDoc)
	}

	return clauseDoc.AppendText(" ->").Append(p.caseClauseValue(clause.Then))
}

func (p *Formatter) caseClauseValue(expr ast.Expr) *doc.Document {
	var d *doc.Document
	switch e := expr.(type) {
	case *ast.Fn, *ast.List, *ast.Tuple, *ast.BitArrayExpr:
		d = doc.Text(" ").Append(p.expr(expr))

	case *ast.Case:
		d = doc.Line().Append(p.expr(expr)).Nest(indent)

	case *ast.Block:
		d = doc.Concat(
			doc.Text(" {"),
			doc.Concat(doc.Line(), p.statements(e.Statements)).Nest(indent),
			doc.Line(),
			doc.Text("}"),
		)

	default:
		d = doc.Break("", " ").Append(p.expr(expr)).Nest(indent)
	}
	return d.Group()
}

func (p *Formatter) assignedValue(expr ast.Expr) *doc.Document {
	if _, ok := expr.(*ast.Case); ok {
		return doc.Text(" ").Append(p.expr(expr)).Group()
	}
	return p.caseClauseValue(expr)
}

func (p *Formatter) binOp(e *ast.BinExpr) *doc.Document {
	precedence := e.Op.Precedence()
	left := operatorSide(p.expr(e.Left), precedence, ast.BinOpPrecedence(e.Left))
	right := operatorSide(p.expr(e.Right), precedence, ast.BinOpPrecedence(e.Right)-1)
	return left.AppendText(" " + e.Op.Name() + " ").Append(right)
}

func (p *Formatter) pipeline(pipe *ast.Pipeline) *doc.Document {
	docs := make([]*doc.Document, 0, len(pipe.Expressions)*3)
	first := pipe.Expressions[0]
	docs = append(docs, operatorSide(p.expr(first), 5, ast.BinOpPrecedence(first)))

	for _, expr := range pipe.Expressions[1:] {
		comments := p.popComments(expr.Loc().Start)

		var d *doc.Document
		if fn, ok := expr.(*ast.Fn); ok && fn.IsCapture {
			stmt, ok := fn.Body[0].(*ast.ExprStmt)
			if !ok {
				panic("non expression capture body")
			}
			d = p.pipeCaptureRightHandSide(stmt.Expr)
		} else {
			d = p.expr(expr)
		}

		docs = append(docs, doc.Line())
		docs = append(docs, commented(doc.Text("|> "), comments))
		docs = append(docs, operatorSide(d, 4, ast.BinOpPrecedence(expr)))
	}

	return doc.Concat(docs...).ForceBreak()
}

func (p *Formatter) pipeCaptureRightHandSide(fun ast.Expr) *doc.Document {
	call, ok := fun.(*ast.Call)
	if !ok {
		panic("function capture found not to have a function call body when formatting")
	}

	args := call.Arguments
	holeInFirstPosition := len(args) > 0 && ast.IsCaptureHole(args[0].Value)

	switch {
	case holeInFirstPosition && len(args) == 1:
		// x |> fun(_)
		return p.expr(call.Fun)

	case holeInFirstPosition:
		// x |> fun(_, 2, 3)
		rest := make([]*doc.Document, 0, len(args)-1)
		for i := range args[1:] {
			rest = append(rest, p.callArg(&args[i+1]))
		}
		return p.expr(call.Fun).Append(wrapArgs(rest).Group())

	default:
		// x |> fun(1, _, 3)
		docs := make([]*doc.Document, 0, len(args))
		for i := range args {
			docs = append(docs, p.callArg(&args[i]))
		}
		return p.expr(call.Fun).Append(wrapArgs(docs).Group())
	}
}

func (p *Formatter) fnCapture(body []ast.Statement) *doc.Document {
	if len(body) != 1 {
		panic("function capture found not to have a single statement call")
	}
	stmt, ok := body[0].(*ast.ExprStmt)
	if !ok {
		panic("function capture body found not to be a call in the formatter")
	}
	call, ok := stmt.Expr.(*ast.Call)
	if !ok {
		panic("function capture body found not to be a call in the formatter")
	}

	args := call.Arguments
	if len(args) == 2 && isBreakableExpr(args[1].Value) && ast.IsCaptureHole(args[0].Value) {
		return p.expr(call.Fun).
			AppendText("(_, ").
			Append(p.callArg(&args[1])).
			AppendText(")").
			Group()
	}

	docs := make([]*doc.Document, 0, len(args))
	for i := range args {
		docs = append(docs, p.callArg(&args[i]))
	}
	return p.expr(call.Fun).Append(wrapArgs(docs).Group())
}

func (p *Formatter) exprFn(fn *ast.Fn) *doc.Document {
	args := make([]*doc.Document, 0, len(fn.Arguments))
	for i := range fn.Arguments {
		args = append(args, p.fnArg(&fn.Arguments[i]))
	}
	header := doc.Text("fn").Append(wrapArgs(args).Group())

	if fn.ReturnAnnotation != nil {
		header = header.AppendText(" -> ").Append(p.typeAst(fn.ReturnAnnotation))
	}

	return header.AppendText(" ").Append(wrapBlock(p.statements(fn.Body))).Group()
}

func (p *Formatter) statements(statements []ast.Statement) *doc.Document {
	previousPosition := uint32(0)
	documents := make([]*doc.Document, 0, len(statements)*2)
	for i, statement := range statements {
		precedingNewline := p.popEmptyLines(previousPosition + 1)
		if i != 0 && precedingNewline {
			documents = append(documents, doc.Lines(2))
		} else if i != 0 {
			documents = append(documents, doc.Lines(1))
		}
		previousPosition = statement.Loc().End
		documents = append(documents, p.statement(statement).Group())
	}

	d := doc.Concat(documents...)
	if len(statements) == 1 {
		if _, ok := statements[0].(*ast.ExprStmt); ok {
			return d
		}
	}
	return d.ForceBreak()
}

func (p *Formatter) statement(statement ast.Statement) *doc.Document {
	switch s := statement.(type) {
	case *ast.ExprStmt:
		return p.expr(s.Expr)
	case *ast.Assignment:
		return p.assignment(s)
	case *ast.Use:
		return p.useDoc(s)
	}
	panic("unknown statement kind")
}

func (p *Formatter) assignment(assignment *ast.Assignment) *doc.Document {
	comments := p.popComments(assignment.Location.Start)
	p.popEmptyLines(assignment.Pattern.Loc().End)

	keyword := "let "
	if assignment.Kind == ast.AssignLetAssert {
		keyword = "let assert "
	}

	pattern := p.pattern(assignment.Pattern)
	if assignment.Annotation != nil {
		pattern = pattern.AppendText(": ").Append(p.typeAst(assignment.Annotation))
	}

	d := doc.Text(keyword).
		Append(pattern.Group()).
		AppendText(" =").
		Append(p.assignedValue(assignment.Value))
	return commented(d, comments)
}

func (p *Formatter) useDoc(use *ast.Use) *doc.Document {
	comments := p.popComments(use.Location.Start)

	var call *doc.Document
	if _, ok := use.Call.(*ast.Call); ok {
		call = doc.Text(" ").Append(p.expr(use.Call)).Group()
	} else {
		call = doc.Concat(doc.Break("", " "), p.expr(use.Call)).Nest(indent).Group()
	}

	var d *doc.Document
	if len(use.Assignments) == 0 {
		d = doc.Text("use <-").Append(call)
	} else {
		left := []*doc.Document{doc.Text("use"), doc.Break("", " ")}
		for i := range use.Assignments {
			if i > 0 {
				left = append(left, doc.Break(",", ", "))
			}
			assignment := &use.Assignments[i]
			pattern := p.pattern(assignment.Pattern)
			if assignment.Annotation != nil {
				pattern = pattern.AppendText(": ").Append(p.typeAst(assignment.Annotation))
			}
			left = append(left, pattern.Group())
		}
		leftDoc := doc.Concat(left...).Nest(indent).Append(doc.Break("", " ")).Group()
		d = doc.Concat(leftDoc, doc.Text("<-"), call).Group()
	}

	return commented(d, comments)
}

func (p *Formatter) block(statements []ast.Statement) *doc.Document {
	return doc.Concat(
		doc.Text("{"),
		doc.Concat(doc.Break("", " "), p.statements(statements)).Nest(indent),
		doc.Break("", " "),
		doc.Text("}"),
	).Group()
}

func (p *Formatter) list(elements []ast.Expr, tail ast.Expr) *doc.Document {
	if len(elements) == 0 {
		if tail != nil {
			return p.expr(tail)
		}
		return doc.Text("[]")
	}

	allSimple := tail == nil
	if allSimple {
		for _, e := range elements {
			if !ast.IsSimpleConstant(e) {
				allSimple = false
				break
			}
		}
	}

	docs := make([]*doc.Document, 0, len(elements)*2)
	for i, e := range elements {
		if i > 0 {
			if allSimple {
				docs = append(docs, doc.FlexBreak(",", ", "))
			} else {
				docs = append(docs, doc.Break(",", ", "))
			}
		}
		docs = append(docs, p.expr(e))
	}

	d := doc.Break("[", "[").Append(doc.Concat(docs...))

	if tail == nil {
		d = d.Nest(indent).Append(doc.Break(",", ""))
	} else {
		comments := p.popComments(tail.Loc().Start)
		tailDoc := commented(doc.Text("..").Append(p.expr(tail)), comments)
		d = d.Append(doc.Break(",", ", ")).
			Append(tailDoc).
			Nest(indent).
			Append(doc.Break("", ""))
	}

	return d.AppendText("]").Group()
}

func (p *Formatter) recordUpdate(update *ast.RecordUpdate) *doc.Document {
	constructor := p.expr(update.Constructor)
	comments := p.popComments(update.Record.Loc().Start)
	spread := commented(doc.Text("..").Append(p.expr(update.Record)), comments)

	args := []*doc.Document{spread}
	for i := range update.Arguments {
		args = append(args, p.recordUpdateArg(&update.Arguments[i]))
	}
	return constructor.Append(wrapArgs(args)).Group()
}

func (p *Formatter) recordUpdateArg(arg *ast.RecordUpdateArg) *doc.Document {
	comments := p.popComments(arg.Location.Start)
	d := doc.Text(arg.Label).AppendText(": ").Append(p.expr(arg.Value))
	return commented(d, comments)
}

func (p *Formatter) tupleIndex(e *ast.TupleIndex) *doc.Document {
	d := p.expr(e.Tuple)
	if _, ok := e.Tuple.(*ast.TupleIndex); ok {
		d = d.Surround("{", "}")
	}
	return d.AppendText(".").AppendText(strconv.FormatUint(uint64(e.Index), 10))
}

func (p *Formatter) negateBool(expr ast.Expr) *doc.Document {
	if _, ok := expr.(*ast.BinExpr); ok {
		return doc.Text("!").Append(wrapBlock(p.expr(expr)))
	}
	return doc.Text("!").Append(p.expr(expr))
}

func (p *Formatter) negateInt(expr ast.Expr) *doc.Document {
	switch expr.(type) {
	case *ast.BinExpr, *ast.NegateInt:
		return doc.Text("- ").Append(p.expr(expr))
	}
	return doc.Text("-").Append(p.expr(expr))
}

func (p *Formatter) bitArraySegmentExpr(expr ast.Expr) *doc.Document {
	switch expr.(type) {
	case *ast.Placeholder:
		panic("placeholders should not be formatted")
	case *ast.BinExpr:
		return wrapBlock(p.expr(expr))
	}
	return p.expr(expr)
}
