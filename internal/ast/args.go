package ast

import (
	"opal/internal/source"
)

// ArgNames — имя параметра функции, возможно с внешней меткой.
// Дискард хранится с ведущим подчёркиванием прямо в Name.
type ArgNames struct {
	Label string
	Name  string
}

func (a ArgNames) String() string {
	if a.Label != "" {
		return a.Label + " " + a.Name
	}
	return a.Name
}

// Arg — параметр fn.
type Arg struct {
	Location   source.Span
	Names      ArgNames
	Annotation TypeAst // nil, если аннотации нет
}

// CallArg — аргумент вызова, конструктора паттерна или константы,
// возможно с меткой.
type CallArg[T any] struct {
	Location source.Span
	Label    string
	Value    T
}
