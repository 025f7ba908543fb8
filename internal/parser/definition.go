package parser

import (
	"strings"

	"opal/internal/ast"
	"opal/internal/diag"
	"opal/internal/token"
)

// attributes — разобранные @-атрибуты перед определением.
type attributes struct {
	start       uint32
	hasStart    bool
	target      *ast.Target
	deprecation ast.Deprecation
	externalErl *ast.ExternalImpl
	externalJS  *ast.ExternalImpl
}

func (p *Parser) parseModule() *ast.Module {
	module := &ast.Module{}
	for !p.at(token.EOF) {
		definition, ok := p.parseTargetedDefinition()
		if !ok {
			p.resyncTop()
			continue
		}
		module.Definitions = append(module.Definitions, definition)
	}
	return module
}

func (p *Parser) parseTargetedDefinition() (ast.TargetedDefinition, bool) {
	attrs, ok := p.parseAttributes()
	if !ok {
		return ast.TargetedDefinition{}, false
	}

	definition, ok := p.parseDefinition(attrs)
	if !ok {
		return ast.TargetedDefinition{}, false
	}
	return ast.TargetedDefinition{Target: attrs.target, Definition: definition}, true
}

// parseAttributes собирает @target / @deprecated / @external.
func (p *Parser) parseAttributes() (attributes, bool) {
	var attrs attributes
	for p.at(token.At) {
		atTok := p.advance()
		if !attrs.hasStart {
			attrs.start = atTok.Span.Start
			attrs.hasStart = true
		}

		nameTok, ok := p.expectName("after @")
		if !ok {
			return attrs, false
		}

		switch nameTok.Text {
		case "target":
			if _, ok := p.expect(token.LParen, "after @target"); !ok {
				return attrs, false
			}
			targetTok, ok := p.expectName("inside @target")
			if !ok {
				return attrs, false
			}
			var target ast.Target
			switch targetTok.Text {
			case "erlang":
				target = ast.TargetErlang
			case "javascript":
				target = ast.TargetJavaScript
			default:
				p.reportAt(diag.SynBadAttribute, targetTok.Span,
					"unknown target \""+targetTok.Text+"\", expected erlang or javascript")
				return attrs, false
			}
			attrs.target = &target
			if _, ok := p.expect(token.RParen, "to close @target"); !ok {
				return attrs, false
			}

		case "deprecated":
			if _, ok := p.expect(token.LParen, "after @deprecated"); !ok {
				return attrs, false
			}
			msgTok, ok := p.expect(token.StringLit, "inside @deprecated")
			if !ok {
				return attrs, false
			}
			attrs.deprecation = ast.Deprecation{Deprecated: true, Message: msgTok.Text}
			if _, ok := p.expect(token.RParen, "to close @deprecated"); !ok {
				return attrs, false
			}

		case "external":
			if _, ok := p.expect(token.LParen, "after @external"); !ok {
				return attrs, false
			}
			targetTok, ok := p.expectName("inside @external")
			if !ok {
				return attrs, false
			}
			if _, ok := p.expect(token.Comma, "after @external target"); !ok {
				return attrs, false
			}
			moduleTok, ok := p.expect(token.StringLit, "as @external module")
			if !ok {
				return attrs, false
			}
			if _, ok := p.expect(token.Comma, "after @external module"); !ok {
				return attrs, false
			}
			fnTok, ok := p.expect(token.StringLit, "as @external function")
			if !ok {
				return attrs, false
			}
			if _, ok := p.expect(token.RParen, "to close @external"); !ok {
				return attrs, false
			}
			impl := &ast.ExternalImpl{Module: moduleTok.Text, Function: fnTok.Text}
			switch targetTok.Text {
			case "erlang":
				attrs.externalErl = impl
			case "javascript":
				attrs.externalJS = impl
			default:
				p.reportAt(diag.SynBadAttribute, targetTok.Span,
					"unknown external target \""+targetTok.Text+"\"")
				return attrs, false
			}

		default:
			p.reportAt(diag.SynBadAttribute, nameTok.Span, "unknown attribute @"+nameTok.Text)
			return attrs, false
		}
	}
	return attrs, true
}

func (p *Parser) parseDefinition(attrs attributes) (ast.Definition, bool) {
	start := p.cur.Span.Start
	if attrs.hasStart {
		start = attrs.start
	}

	public := false
	if p.at(token.KwPub) {
		public = true
		p.advance()
	}

	switch p.cur.Kind {
	case token.KwImport:
		if public {
			p.report(diag.SynUnexpectedToken, "imports can not be public")
			return nil, false
		}
		return p.parseImport(start)

	case token.KwFn:
		return p.parseFunction(start, public, attrs)

	case token.KwConst:
		return p.parseModuleConstant(start, public)

	case token.KwType, token.KwOpaque:
		return p.parseTypeDefinition(start, public, attrs)

	default:
		p.report(diag.SynUnexpectedTopLevel, "unexpected token at module level: "+p.cur.Kind.String())
		return nil, false
	}
}

func (p *Parser) parseImport(start uint32) (ast.Definition, bool) {
	importTok := p.advance() // import

	var segments []string
	seg, ok := p.expectName("as module path")
	if !ok {
		return nil, false
	}
	segments = append(segments, seg.Text)
	end := seg.Span.End
	for p.at(token.Slash) {
		p.advance()
		seg, ok = p.expectName("in module path")
		if !ok {
			return nil, false
		}
		segments = append(segments, seg.Text)
		end = seg.Span.End
	}

	imp := &ast.Import{Module: strings.Join(segments, "/")}

	if p.at(token.Dot) {
		p.advance()
		if _, ok := p.expect(token.LBrace, "after . in import"); !ok {
			return nil, false
		}
		for !p.at(token.RBrace) && !p.at(token.EOF) {
			isType := p.eat(token.KwType)

			var name string
			switch {
			case p.at(token.Name), p.at(token.UpName):
				name = p.advance().Text
			default:
				p.report(diag.SynExpectIdentifier, "expected an imported name")
				return nil, false
			}

			var asName string
			if p.eat(token.KwAs) {
				if !p.at(token.Name) && !p.at(token.UpName) {
					p.report(diag.SynExpectIdentAfterAs, "expected a name after as")
					return nil, false
				}
				asName = p.advance().Text
			}

			unqualified := ast.UnqualifiedImport{Name: name, As: asName}
			if isType {
				imp.UnqualifiedTypes = append(imp.UnqualifiedTypes, unqualified)
			} else {
				imp.UnqualifiedValues = append(imp.UnqualifiedValues, unqualified)
			}

			if !p.eat(token.Comma) {
				break
			}
		}
		closing, ok := p.expect(token.RBrace, "to close import list")
		if !ok {
			return nil, false
		}
		end = closing.Span.End
	}

	if p.eat(token.KwAs) {
		if !p.at(token.Name) && !p.at(token.DiscardName) {
			p.report(diag.SynExpectIdentAfterAs, "expected a module alias after as")
			return nil, false
		}
		alias := p.advance()
		imp.AsName = alias.Text
		end = alias.Span.End
	}

	imp.Location = spanBetween(importTok.Span.File, start, end)
	return imp, true
}

func (p *Parser) parseModuleConstant(start uint32, public bool) (ast.Definition, bool) {
	constTok := p.advance() // const

	nameTok, ok := p.expectName("as constant name")
	if !ok {
		return nil, false
	}

	constant := &ast.ModuleConstant{Name: nameTok.Text, Public: public}

	if p.eat(token.Colon) {
		annotation, ok := p.parseTypeAst()
		if !ok {
			return nil, false
		}
		constant.Annotation = annotation
	}

	if _, ok := p.expect(token.Equal, "in constant definition"); !ok {
		return nil, false
	}

	value, ok := p.parseConstantValue()
	if !ok {
		return nil, false
	}
	constant.Value = value
	constant.Location = spanBetween(constTok.Span.File, start, value.Loc().End)
	return constant, true
}

func (p *Parser) parseTypeDefinition(start uint32, public bool, attrs attributes) (ast.Definition, bool) {
	opaque := false
	if p.at(token.KwOpaque) {
		opaque = true
		p.advance()
		if !p.at(token.KwType) {
			p.report(diag.SynUnexpectedToken, "expected type after opaque")
			return nil, false
		}
	}
	typeTok := p.advance() // type

	nameTok, ok := p.expectUpName("as type name")
	if !ok {
		return nil, false
	}
	headerEnd := nameTok.Span.End

	var parameters []string
	if p.at(token.LParen) {
		p.advance()
		for !p.at(token.RParen) && !p.at(token.EOF) {
			param, ok := p.expectName("as type parameter")
			if !ok {
				return nil, false
			}
			parameters = append(parameters, param.Text)
			if !p.eat(token.Comma) {
				break
			}
		}
		closing, ok := p.expect(token.RParen, "to close type parameters")
		if !ok {
			return nil, false
		}
		headerEnd = closing.Span.End
	}

	// type X = Y — синоним
	if p.eat(token.Equal) {
		if opaque {
			p.report(diag.SynUnexpectedToken, "type aliases can not be opaque")
			return nil, false
		}
		aliased, ok := p.parseTypeAst()
		if !ok {
			return nil, false
		}
		alias := &ast.TypeAlias{
			Alias:       nameTok.Text,
			Parameters:  parameters,
			TypeAst:     aliased,
			Public:      public,
			Deprecation: attrs.deprecation,
		}
		alias.Location = spanBetween(typeTok.Span.File, start, aliased.Loc().End)
		return alias, true
	}

	ct := &ast.CustomType{
		Name:        nameTok.Text,
		Public:      public,
		Opaque:      opaque,
		Parameters:  parameters,
		Deprecation: attrs.deprecation,
	}
	ct.Location = spanBetween(typeTok.Span.File, start, headerEnd)

	// Тип без тела: внешний тип, только имя.
	if !p.at(token.LBrace) {
		ct.EndPosition = headerEnd
		return ct, true
	}
	p.advance() // {

	for !p.at(token.RBrace) && !p.at(token.EOF) {
		constructor, ok := p.parseRecordConstructor()
		if !ok {
			return nil, false
		}
		ct.Constructors = append(ct.Constructors, constructor)
	}

	closing, ok := p.expect(token.RBrace, "to close type definition")
	if !ok {
		return nil, false
	}
	ct.EndPosition = closing.Span.Start
	return ct, true
}

func (p *Parser) parseRecordConstructor() (ast.RecordConstructor, bool) {
	nameTok, ok := p.expectUpName("as record constructor name")
	if !ok {
		return ast.RecordConstructor{}, false
	}

	constructor := ast.RecordConstructor{
		Location: nameTok.Span,
		Name:     nameTok.Text,
	}

	if !p.at(token.LParen) {
		return constructor, true
	}
	p.advance()

	for !p.at(token.RParen) && !p.at(token.EOF) {
		var arg ast.RecordConstructorArg
		argStart := p.cur.Span

		// label: Type
		if p.at(token.Name) && p.next.Kind == token.Colon {
			arg.Label = p.advance().Text
			p.advance() // :
		}

		typ, ok := p.parseTypeAst()
		if !ok {
			return ast.RecordConstructor{}, false
		}
		arg.Ast = typ
		arg.Location = argStart.Cover(typ.Loc())
		constructor.Arguments = append(constructor.Arguments, arg)

		if !p.eat(token.Comma) {
			break
		}
	}
	if _, ok := p.expect(token.RParen, "to close record constructor"); !ok {
		return ast.RecordConstructor{}, false
	}
	return constructor, true
}

func (p *Parser) parseFunction(start uint32, public bool, attrs attributes) (ast.Definition, bool) {
	fnTok := p.advance() // fn

	nameTok, ok := p.expectName("as function name")
	if !ok {
		return nil, false
	}

	fn := &ast.Function{
		Name:               nameTok.Text,
		Public:             public,
		Deprecation:        attrs.deprecation,
		ExternalErlang:     attrs.externalErl,
		ExternalJavaScript: attrs.externalJS,
	}

	if _, ok := p.expect(token.LParen, "to open function parameters"); !ok {
		return nil, false
	}
	args, closing, ok := p.parseFnArgs()
	if !ok {
		return nil, false
	}
	fn.Arguments = args
	headerEnd := closing.Span.End

	if p.eat(token.RArrow) {
		annotation, ok := p.parseTypeAst()
		if !ok {
			return nil, false
		}
		fn.ReturnAnnotation = annotation
		headerEnd = annotation.Loc().End
	}

	fn.Location = spanBetween(fnTok.Span.File, start, headerEnd)

	// Тело опционально: @external-функции живут одной шапкой.
	if !p.at(token.LBrace) {
		fn.EndPosition = headerEnd
		return fn, true
	}
	p.advance() // {

	body, ok := p.parseStatements(token.RBrace)
	if !ok {
		return nil, false
	}
	fn.Body = body

	closingBrace, ok := p.expect(token.RBrace, "to close function body")
	if !ok {
		return nil, false
	}
	fn.EndPosition = closingBrace.Span.Start
	return fn, true
}

// parseFnArgs разбирает параметры до закрывающей скобки включительно.
func (p *Parser) parseFnArgs() ([]ast.Arg, token.Token, bool) {
	var args []ast.Arg
	for !p.at(token.RParen) && !p.at(token.EOF) {
		arg, ok := p.parseFnArg()
		if !ok {
			return nil, token.Token{}, false
		}
		args = append(args, arg)
		if !p.eat(token.Comma) {
			break
		}
	}
	closing, ok := p.expect(token.RParen, "to close parameters")
	if !ok {
		return nil, token.Token{}, false
	}
	return args, closing, true
}

func (p *Parser) parseFnArg() (ast.Arg, bool) {
	start := p.cur.Span

	var names ast.ArgNames
	switch {
	case p.at(token.Name) && (p.next.Kind == token.Name || p.next.Kind == token.DiscardName):
		names.Label = p.advance().Text
		names.Name = p.advance().Text
	case p.at(token.Name) || p.at(token.DiscardName):
		names.Name = p.advance().Text
	default:
		p.report(diag.SynExpectIdentifier, "expected a parameter name, got "+p.cur.Kind.String())
		return ast.Arg{}, false
	}

	arg := ast.Arg{Location: start, Names: names}
	if p.eat(token.Colon) {
		annotation, ok := p.parseTypeAst()
		if !ok {
			return ast.Arg{}, false
		}
		arg.Annotation = annotation
		arg.Location = start.Cover(annotation.Loc())
	}
	return arg, true
}
