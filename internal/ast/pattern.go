package ast

import (
	"opal/internal/source"
)

// Pattern — паттерн let-связывания или ветви case.
type Pattern interface {
	Loc() source.Span
	patternNode()
}

func (*IntPat) patternNode()          {}
func (*FloatPat) patternNode()        {}
func (*StringPat) patternNode()       {}
func (*VarPat) patternNode()          {}
func (*VarUsagePat) patternNode()     {}
func (*AssignPat) patternNode()       {}
func (*DiscardPat) patternNode()      {}
func (*ListPat) patternNode()         {}
func (*ConstructorPat) patternNode()  {}
func (*TuplePat) patternNode()        {}
func (*BitArrayPat) patternNode()     {}
func (*StringPrefixPat) patternNode() {}

type IntPat struct {
	node
	Value string
}

type FloatPat struct {
	node
	Value string
}

type StringPat struct {
	node
	Value string
}

type VarPat struct {
	node
	Name string
}

// VarUsagePat — ссылка на уже связанную переменную в размере сегмента
// битового массива: `<<payload:size(n)>>`.
type VarUsagePat struct {
	node
	Name string
}

// AssignPat — `pattern as name`.
type AssignPat struct {
	node
	Name    string
	Pattern Pattern
}

type DiscardPat struct {
	node
	Name string
}

type ListPat struct {
	node
	Elements []Pattern
	Tail     Pattern // nil, если хвоста нет
}

// ConstructorPat — паттерн конструктора, возможно с модульным префиксом и
// многоточием: `Ok(x)`, `option.Some(_)`, `Wibble(a, ..)`.
type ConstructorPat struct {
	node
	Name      string
	Module    string // пусто для неквалифицированного имени
	Arguments []CallArg[Pattern]
	Spread    bool
}

type TuplePat struct {
	node
	Elems []Pattern
}

type BitArrayPat struct {
	node
	Segments []BitArraySegment[Pattern]
}

// StringPrefixPat — `"pre" as p <> rest`.
type StringPrefixPat struct {
	node
	Prefix           string
	PrefixAssignment string // пусто, если префикс не связывается
	Rest             string // имя или дискард справа от <>
}
