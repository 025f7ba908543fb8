package ast

import (
	"opal/internal/source"
)

// Guard — выражение после if в ветви case. Отдельная грамматика: только
// операторы, константы и доступы к полям.
type Guard interface {
	Loc() source.Span
	guardNode()
}

func (*GuardBinOp) guardNode()        {}
func (*GuardVar) guardNode()          {}
func (*GuardTupleIndex) guardNode()   {}
func (*GuardFieldAccess) guardNode()  {}
func (*GuardModuleSelect) guardNode() {}
func (*GuardConstant) guardNode()     {}
func (*GuardNot) guardNode()          {}

type GuardBinOp struct {
	node
	Op    BinOp
	Left  Guard
	Right Guard
}

type GuardVar struct {
	node
	Name string
}

type GuardTupleIndex struct {
	node
	Tuple Guard
	Index uint32
}

type GuardFieldAccess struct {
	node
	Container Guard
	Label     string
}

// GuardModuleSelect — `module.constant` в guard-е.
type GuardModuleSelect struct {
	node
	ModuleAlias string
	Label       string
}

// GuardConstant оборачивает литерал или коллекцию констант.
type GuardConstant struct {
	node
	Value Constant
}

// GuardNot — `!guard`.
type GuardNot struct {
	node
	Guard Guard
}

// GuardPrecedence — приоритет guard-узла как операнда.
func GuardPrecedence(g Guard) uint8 {
	if b, ok := g.(*GuardBinOp); ok {
		return b.Op.GuardPrecedence()
	}
	return 5
}
