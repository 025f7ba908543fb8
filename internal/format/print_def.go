package format

import (
	"sort"

	"opal/internal/ast"
	"opal/internal/doc"
)

func (p *Formatter) definition(definition ast.Definition) *doc.Document {
	switch d := definition.(type) {
	case *ast.Function:
		return p.statementFn(d)
	case *ast.TypeAlias:
		return p.typeAlias(d)
	case *ast.CustomType:
		return p.customType(d)
	case *ast.Import:
		return p.importDoc(d)
	case *ast.ModuleConstant:
		return p.moduleConstant(d)
	}
	panic("unknown definition kind")
}

func (p *Formatter) importDoc(imp *ast.Import) *doc.Document {
	second := doc.Nil()
	if len(imp.UnqualifiedValues) > 0 || len(imp.UnqualifiedTypes) > 0 {
		types := append([]ast.UnqualifiedImport(nil), imp.UnqualifiedTypes...)
		values := append([]ast.UnqualifiedImport(nil), imp.UnqualifiedValues...)
		sort.SliceStable(types, func(i, j int) bool { return types[i].Name < types[j].Name })
		sort.SliceStable(values, func(i, j int) bool { return values[i].Name < values[j].Name })

		var names []*doc.Document
		for _, t := range types {
			names = append(names, doc.Text("type ").Append(unqualifiedImportDoc(t)))
		}
		for _, v := range values {
			names = append(names, unqualifiedImportDoc(v))
		}

		unqualified := doc.Break("", "").
			Append(doc.Join(names, doc.FlexBreak(",", ", "))).
			Nest(indent).
			Append(doc.Break(",", "")).
			Group()
		second = doc.Text(".{").Append(unqualified).AppendText("}")
	}

	d := doc.Concat(doc.Text("import "), doc.Text(imp.Module), second)
	if imp.AsName != "" {
		return d.AppendText(" as ").AppendText(imp.AsName)
	}
	return d
}

func unqualifiedImportDoc(u ast.UnqualifiedImport) *doc.Document {
	if u.As == "" {
		return doc.Text(u.Name)
	}
	return doc.Text(u.Name).AppendText(" as ").AppendText(u.As)
}

func (p *Formatter) moduleConstant(c *ast.ModuleConstant) *doc.Document {
	head := pubDoc(c.Public).AppendText("const ").AppendText(c.Name)
	if c.Annotation != nil {
		head = head.AppendText(": ").Append(p.typeAst(c.Annotation))
	}
	return head.AppendText(" = ").Append(p.constExpr(c.Value))
}

func (p *Formatter) deprecationAttr(d ast.Deprecation) *doc.Document {
	if !d.Deprecated {
		return doc.Nil()
	}
	return doc.Concat(
		doc.Text("@deprecated(\""),
		doc.Text(d.Message),
		doc.Text("\")"),
		doc.Line(),
	)
}

func (p *Formatter) fnArg(arg *ast.Arg) *doc.Document {
	comments := p.popComments(arg.Location.Start)
	d := doc.Text(arg.Names.String())
	if arg.Annotation != nil {
		d = d.AppendText(": ").Append(p.typeAst(arg.Annotation))
	}
	return commented(d.Group(), comments)
}

func (p *Formatter) statementFn(fn *ast.Function) *doc.Document {
	attributes := p.deprecationAttr(fn.Deprecation)

	external := func(target string, impl *ast.ExternalImpl) *doc.Document {
		return doc.Concat(
			doc.Text("@external("+target+", \""),
			doc.Text(impl.Module),
			doc.Text("\", \""),
			doc.Text(impl.Function),
			doc.Text("\")"),
			doc.Line(),
		)
	}
	if fn.ExternalErlang != nil {
		attributes = attributes.Append(external("erlang", fn.ExternalErlang))
	}
	if fn.ExternalJavaScript != nil {
		attributes = attributes.Append(external("javascript", fn.ExternalJavaScript))
	}

	args := make([]*doc.Document, 0, len(fn.Arguments))
	for i := range fn.Arguments {
		args = append(args, p.fnArg(&fn.Arguments[i]))
	}
	signature := pubDoc(fn.Public).
		AppendText("fn ").
		AppendText(fn.Name).
		Append(wrapArgs(args))

	if fn.ReturnAnnotation != nil {
		signature = signature.AppendText(" -> ").Append(p.typeAst(fn.ReturnAnnotation))
	}
	signature = signature.Group()

	head := attributes.Append(signature)

	// Функции без тела (только @external-реализации) печатаются одной шапкой.
	if !fn.HasBody() {
		return head
	}

	body := p.statements(fn.Body)

	if trailing := printedComments(p.popComments(fn.EndPosition), false); trailing != nil {
		body = body.Append(doc.Line()).Append(trailing)
	}

	return head.AppendText(" {").
		Append(doc.Line().Append(body).Nest(indent).Group()).
		Append(doc.Line()).
		AppendText("}")
}

func (p *Formatter) recordConstructor(constructor *ast.RecordConstructor) *doc.Document {
	comments := p.popComments(constructor.Location.Start)
	docComments := p.docCommentsDoc(constructor.Location.Start)

	d := doc.Text(constructor.Name)
	if len(constructor.Arguments) > 0 {
		args := make([]*doc.Document, 0, len(constructor.Arguments))
		for i := range constructor.Arguments {
			arg := &constructor.Arguments[i]
			argComments := p.popComments(arg.Location.Start)
			var argDoc *doc.Document
			if arg.Label != "" {
				argDoc = doc.Text(arg.Label).AppendText(": ").Append(p.typeAst(arg.Ast))
			} else {
				argDoc = p.typeAst(arg.Ast)
			}
			argDoc = p.docCommentsDoc(arg.Location.Start).Append(argDoc).Group()
			args = append(args, commented(argDoc, argComments))
		}
		d = d.Append(wrapArgs(args)).Group()
	}

	return commented(docComments.Append(d).Group(), comments)
}

func (p *Formatter) customType(ct *ast.CustomType) *doc.Document {
	p.popEmptyLines(ct.Location.End)

	d := p.deprecationAttr(ct.Deprecation).Append(pubDoc(ct.Public))
	if ct.Opaque {
		d = d.AppendText("opaque type ")
	} else {
		d = d.AppendText("type ")
	}
	if len(ct.Parameters) == 0 {
		d = d.AppendText(ct.Name)
	} else {
		params := make([]*doc.Document, 0, len(ct.Parameters))
		for _, param := range ct.Parameters {
			params = append(params, doc.Text(param))
		}
		d = d.Append(doc.Text(ct.Name).Append(wrapArgs(params)).Group())
	}

	if len(ct.Constructors) == 0 {
		return d
	}
	d = d.AppendText(" {")

	var inner *doc.Document = doc.Nil()
	for i := range ct.Constructors {
		constructor := &ct.Constructors[i]
		sep := doc.Line()
		if p.popEmptyLines(constructor.Location.Start) {
			sep = doc.Lines(2)
		}
		inner = inner.Append(sep.Append(p.recordConstructor(constructor)))
	}

	if trailing := printedComments(p.popComments(ct.EndPosition), false); trailing != nil {
		inner = inner.Append(doc.Line()).Append(trailing)
	}
	inner = inner.Nest(indent).Group()

	return d.Append(inner).Append(doc.Line()).AppendText("}")
}

func (p *Formatter) typeAlias(alias *ast.TypeAlias) *doc.Document {
	head := p.deprecationAttr(alias.Deprecation).
		Append(pubDoc(alias.Public)).
		AppendText("type ").
		AppendText(alias.Alias)

	if len(alias.Parameters) > 0 {
		params := make([]*doc.Document, 0, len(alias.Parameters))
		for _, param := range alias.Parameters {
			params = append(params, doc.Text(param))
		}
		head = head.Append(wrapArgs(params).Group())
	}

	return head.AppendText(" =").
		Append(doc.Line().Append(p.typeAst(alias.TypeAst)).Group().Nest(indent))
}
