package ast

import (
	"opal/internal/source"
)

// CaptureVariable — имя, под которым парсер заводит дырку `_` в capture-вызове.
const CaptureVariable = "_capture"

// Expr — нетипизированное выражение.
type Expr interface {
	Loc() source.Span
	exprNode()
}

func (*IntLit) exprNode()       {}
func (*FloatLit) exprNode()     {}
func (*StringLit) exprNode()    {}
func (*Var) exprNode()          {}
func (*Todo) exprNode()         {}
func (*Panic) exprNode()        {}
func (*Block) exprNode()        {}
func (*Fn) exprNode()           {}
func (*List) exprNode()         {}
func (*Call) exprNode()         {}
func (*BinExpr) exprNode()      {}
func (*Pipeline) exprNode()     {}
func (*Case) exprNode()         {}
func (*FieldAccess) exprNode()  {}
func (*Tuple) exprNode()        {}
func (*TupleIndex) exprNode()   {}
func (*BitArrayExpr) exprNode() {}
func (*RecordUpdate) exprNode() {}
func (*NegateInt) exprNode()    {}
func (*NegateBool) exprNode()   {}
func (*Placeholder) exprNode()  {}

// IntLit хранит текст литерала как в исходнике, включая знак, подчёркивания
// и префикс системы счисления.
type IntLit struct {
	node
	Value string
}

type FloatLit struct {
	node
	Value string
}

// StringLit хранит содержимое между кавычками дословно, escape-ы не раскрыты.
type StringLit struct {
	node
	Value string
}

type Var struct {
	node
	Name string
}

// Todo — `todo` или `todo as "message"`.
type Todo struct {
	node
	Message *string // nil, если сообщения нет
}

// Panic — `panic` или `panic as "message"`.
type Panic struct {
	node
	Message *string
}

// Block — `{ stmt... }`.
type Block struct {
	node
	Statements []Statement
}

// Fn — анонимная функция. IsCapture отмечает, что узел порождён из
// capture-записи f(_, 2), тело тогда — единственный вызов.
type Fn struct {
	node
	Arguments        []Arg
	Body             []Statement
	ReturnAnnotation TypeAst
	IsCapture        bool
	EndPosition      uint32
}

// List — `[a, b, ..tail]`.
type List struct {
	node
	Elements []Expr
	Tail     Expr // nil, если хвоста нет
}

type Call struct {
	node
	Fun       Expr
	Arguments []CallArg[Expr]
}

type BinExpr struct {
	node
	Op    BinOp
	Left  Expr
	Right Expr
}

// Pipeline — цепочка `a |> f |> g`; Expressions[0] — вход, дальше стадии.
type Pipeline struct {
	node
	Expressions []Expr
}

// Clause — одна ветвь case.
type Clause struct {
	Location            source.Span
	Patterns            []Pattern
	AlternativePatterns [][]Pattern
	Guard               Guard // nil, если if-условия нет
	Then                Expr
}

type Case struct {
	node
	EndPosition uint32
	Subjects    []Expr
	Clauses     []Clause
}

// FieldAccess — `container.label`; доступ к полю либо к значению модуля.
type FieldAccess struct {
	node
	Container Expr
	Label     string
}

type Tuple struct {
	node
	Elements []Expr
}

type TupleIndex struct {
	node
	Tuple Expr
	Index uint32
}

type BitArrayExpr struct {
	node
	Segments []BitArraySegment[Expr]
}

// RecordUpdateArg — `label: value` внутри обновления записи.
type RecordUpdateArg struct {
	Location source.Span
	Label    string
	Value    Expr
}

// RecordUpdate — `Ctor(..record, label: value)`.
type RecordUpdate struct {
	node
	Constructor Expr
	Record      Expr
	Arguments   []RecordUpdateArg
}

type NegateInt struct {
	node
	Value Expr
}

type NegateBool struct {
	node
	Value Expr
}

// Placeholder — узел, оставленный парсером на месте невосстановимой ошибки.
// До принтера доходить не должен.
type Placeholder struct {
	node
}

// IsSimpleConstant сообщает, что выражение — голый литерал; такие элементы
// коллекций пакуются flex-переносами вместо строгих.
func IsSimpleConstant(e Expr) bool {
	switch e.(type) {
	case *IntLit, *FloatLit, *StringLit:
		return true
	}
	return false
}

// BinOpPrecedence — приоритет выражения как операнда: у бинарных операторов
// их собственный, у конвейера PipePrecedence, у остального максимальный.
func BinOpPrecedence(e Expr) uint8 {
	switch e := e.(type) {
	case *BinExpr:
		return e.Op.Precedence()
	case *Pipeline:
		return PipePrecedence
	default:
		return MaxPrecedence
	}
}

// IsCaptureHole распознаёт дырку `_` внутри capture-вызова.
func IsCaptureHole(e Expr) bool {
	v, ok := e.(*Var)
	return ok && v.Name == CaptureVariable
}
