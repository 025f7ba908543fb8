package ast

import (
	"opal/internal/source"
)

// Constant — значение const-определения.
type Constant interface {
	Loc() source.Span
	constantNode()
}

func (*ConstInt) constantNode()      {}
func (*ConstFloat) constantNode()    {}
func (*ConstString) constantNode()   {}
func (*ConstTuple) constantNode()    {}
func (*ConstList) constantNode()     {}
func (*ConstRecord) constantNode()   {}
func (*ConstBitArray) constantNode() {}
func (*ConstVar) constantNode()      {}

type ConstInt struct {
	node
	Value string
}

type ConstFloat struct {
	node
	Value string
}

type ConstString struct {
	node
	Value string
}

type ConstTuple struct {
	node
	Elements []Constant
}

type ConstList struct {
	node
	Elements []Constant
}

// ConstRecord — вызов конструктора в константе: `Ok(1)`, `mod.Pair(a: 1)`.
type ConstRecord struct {
	node
	Name      string
	Module    string
	Arguments []CallArg[Constant]
}

type ConstBitArray struct {
	node
	Segments []BitArraySegment[Constant]
}

// ConstVar — ссылка на другую константу, возможно квалифицированная.
type ConstVar struct {
	node
	Name   string
	Module string
}

// IsSimpleConst сообщает, что константа — голый литерал.
func IsSimpleConst(c Constant) bool {
	switch c.(type) {
	case *ConstInt, *ConstFloat, *ConstString:
		return true
	}
	return false
}
