package ast

import (
	"opal/internal/source"
)

// TypeAst — аннотация типа в исходнике.
type TypeAst interface {
	Loc() source.Span
	typeAstNode()
}

func (*TypeHole) typeAstNode()        {}
func (*TypeVar) typeAstNode()         {}
func (*TypeConstructor) typeAstNode() {}
func (*TypeFn) typeAstNode()          {}
func (*TypeTuple) typeAstNode()       {}

// TypeHole — `_` или `_name` в позиции типа.
type TypeHole struct {
	node
	Name string
}

type TypeVar struct {
	node
	Name string
}

// TypeConstructor — `Name(args)` либо `module.Name(args)`.
type TypeConstructor struct {
	node
	Module    string // пусто для неквалифицированного имени
	Name      string
	Arguments []TypeAst
}

// TypeFn — `fn(a, b) -> c`.
type TypeFn struct {
	node
	Arguments []TypeAst
	Return    TypeAst
}

// TypeTuple — `#(a, b)`.
type TypeTuple struct {
	node
	Elems []TypeAst
}
