// Package parser строит нетипизированное AST модуля по потоку токенов.
// Восстановление после ошибок грубое: прокрутка до стартера следующей
// конструкции; частично разобранные определения в модуль не попадают.
//
// Назначение: единственный производитель ast.Module.
// Не делает: проверки типов, разрешения имён, форматирования.
// Зависимости: internal/ast, internal/lexer, internal/token, internal/diag.
package parser

import (
	"slices"

	"opal/internal/ast"
	"opal/internal/diag"
	"opal/internal/lexer"
	"opal/internal/source"
	"opal/internal/token"
)

// Parser — состояние разбора одного файла.
type Parser struct {
	lx   *lexer.Lexer
	bag  *diag.Bag
	cur  token.Token // текущий токен
	next token.Token // один токен вперёд
}

// Parse разбирает файл целиком и возвращает модуль вместе с тривией лексера.
// Диагностики складываются в bag; при ошибках модуль может быть неполным.
func Parse(sf *source.File, bag *diag.Bag) (*ast.Module, *token.Extra) {
	adapter := lexer.ReporterAdapter{Bag: bag}
	lx := lexer.New(sf, lexer.Options{Reporter: adapter.Reporter()})

	p := &Parser{lx: lx, bag: bag}
	p.cur = lx.Next()
	p.next = lx.Next()

	module := p.parseModule()
	return module, lx.Extra()
}

// advance съедает текущий токен и возвращает его.
func (p *Parser) advance() token.Token {
	tok := p.cur
	p.cur = p.next
	if p.next.Kind != token.EOF {
		p.next = p.lx.Next()
	}
	return tok
}

func (p *Parser) at(k token.Kind) bool {
	return p.cur.Kind == k
}

func (p *Parser) atAny(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.cur.Kind)
}

// eat съедает токен вида k, если он текущий.
func (p *Parser) eat(k token.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

// expect съедает токен вида k или репортит SynUnexpectedToken.
func (p *Parser) expect(k token.Kind, context string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.report(diag.SynUnexpectedToken, "expected "+k.String()+" "+context+", got "+p.cur.Kind.String())
	return p.cur, false
}

func (p *Parser) report(code diag.Code, msg string) {
	p.reportAt(code, p.cur.Span, msg)
}

func (p *Parser) reportAt(code diag.Code, span source.Span, msg string) {
	if p.bag == nil {
		return
	}
	p.bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     code,
		Message:  msg,
		Primary:  span,
	})
}

// expectName ожидает имя в нижнем регистре.
func (p *Parser) expectName(context string) (token.Token, bool) {
	if p.at(token.Name) {
		return p.advance(), true
	}
	p.report(diag.SynExpectIdentifier, "expected a name "+context+", got "+p.cur.Kind.String())
	return p.cur, false
}

// expectUpName ожидает имя конструктора/типа.
func (p *Parser) expectUpName(context string) (token.Token, bool) {
	if p.at(token.UpName) {
		return p.advance(), true
	}
	p.report(diag.SynExpectIdentifier, "expected an uppercase name "+context+", got "+p.cur.Kind.String())
	return p.cur, false
}

// resyncTop прокручивает вход до следующего определения верхнего уровня.
func (p *Parser) resyncTop() {
	p.advance()
	for !p.at(token.EOF) && !isDefinitionStarter(p.cur.Kind) {
		p.advance()
	}
}

func isDefinitionStarter(k token.Kind) bool {
	switch k {
	case token.KwImport, token.KwPub, token.KwFn, token.KwType,
		token.KwConst, token.KwOpaque, token.At:
		return true
	}
	return false
}

func spanBetween(file source.FileID, start, end uint32) source.Span {
	return source.Span{File: file, Start: start, End: end}
}
