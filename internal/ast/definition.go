package ast

import (
	"opal/internal/source"
)

// Definition is a top level module entry.
type Definition interface {
	Loc() source.Span
	definitionNode()
}

func (*Function) definitionNode()       {}
func (*Import) definitionNode()         {}
func (*CustomType) definitionNode()     {}
func (*TypeAlias) definitionNode()      {}
func (*ModuleConstant) definitionNode() {}

// Deprecation хранит сообщение атрибута @deprecated.
type Deprecation struct {
	Deprecated bool
	Message    string
}

// ExternalImpl указывает на реализацию функции на целевой платформе.
type ExternalImpl struct {
	Module   string
	Function string
}

// Function — определение fn на верхнем уровне.
//
// Location покрывает заголовок с первого атрибута до закрывающей скобки
// списка параметров (или аннотации возврата); EndPosition — байт закрывающей
// '}' тела.
type Function struct {
	node
	EndPosition        uint32
	Name               string
	Arguments          []Arg
	Body               []Statement
	Public             bool
	ReturnAnnotation   TypeAst // nil, если аннотации нет
	Deprecation        Deprecation
	ExternalErlang     *ExternalImpl
	ExternalJavaScript *ExternalImpl
}

// HasBody сообщает, было ли у функции тело в исходнике. Функции, состоящие
// из одних @external-реализаций, печатаются без фигурных скобок.
func (f *Function) HasBody() bool {
	return len(f.Body) > 0
}

// UnqualifiedImport — одно имя из списка `.{...}` импорта.
type UnqualifiedImport struct {
	Name string
	As   string // пусто, если без переименования
}

// Import — определение import.
type Import struct {
	node
	Module            string // путь модуля через "/"
	AsName            string // пусто, если без as; дискард хранится как "_name"
	UnqualifiedValues []UnqualifiedImport
	UnqualifiedTypes  []UnqualifiedImport
}

// RecordConstructorArg — аргумент конструктора записи, с меткой или без.
type RecordConstructorArg struct {
	Location source.Span
	Label    string
	Ast      TypeAst
}

// RecordConstructor — один вариант пользовательского типа.
type RecordConstructor struct {
	Location  source.Span
	Name      string
	Arguments []RecordConstructorArg
}

// CustomType — определение type с конструкторами.
//
// Location заканчивается перед '{'; EndPosition — байт закрывающей '}'.
// Пустой список конструкторов означает тип без тела.
type CustomType struct {
	node
	EndPosition  uint32
	Name         string
	Public       bool
	Opaque       bool
	Parameters   []string
	Constructors []RecordConstructor
	Deprecation  Deprecation
}

// TypeAlias — определение `type X = Y`.
type TypeAlias struct {
	node
	Alias      string
	Parameters []string
	TypeAst    TypeAst
	Public     bool
	Deprecation Deprecation
}

// ModuleConstant — определение const.
type ModuleConstant struct {
	node
	Name       string
	Annotation TypeAst // nil, если аннотации нет
	Value      Constant
	Public     bool
}
