package ast

import (
	"opal/internal/source"
)

// Statement — элемент тела функции или блока.
type Statement interface {
	Loc() source.Span
	statementNode()
}

func (*ExprStmt) statementNode()   {}
func (*Assignment) statementNode() {}
func (*Use) statementNode()        {}

// ExprStmt — выражение в позиции statement.
type ExprStmt struct {
	Expr Expr
}

func (s *ExprStmt) Loc() source.Span { return s.Expr.Loc() }

// AssignmentKind различает let и let assert.
type AssignmentKind uint8

const (
	AssignLet AssignmentKind = iota
	AssignLetAssert
)

// Assignment — `let pattern = value` либо `let assert pattern = value`.
type Assignment struct {
	node
	Kind       AssignmentKind
	Pattern    Pattern
	Annotation TypeAst // nil, если аннотации нет
	Value      Expr
}

// UseAssignment — один паттерн слева от `<-` в use.
type UseAssignment struct {
	Location   source.Span
	Pattern    Pattern
	Annotation TypeAst
}

// Use — `use a, b <- call(...)`. Call хранит правую часть без
// callback-аргумента, который достроит компилятор.
type Use struct {
	node
	Assignments []UseAssignment
	Call        Expr
}
