// Package ast определяет нетипизированное синтаксическое дерево модуля.
// Узлы хранят только то, что нужно для каноничной печати: спаны, имена и
// сырой текст литералов. Семантического анализа здесь нет.
package ast

import (
	"opal/internal/source"
)

// node несёт спан узла; встраивается в каждый вариант дерева.
type node struct {
	Location source.Span
}

// Loc возвращает спан узла в исходнике.
func (n node) Loc() source.Span { return n.Location }

// Target ограничивает определение одной целевой платформой.
type Target uint8

const (
	TargetErlang Target = iota
	TargetJavaScript
)

func (t Target) String() string {
	if t == TargetJavaScript {
		return "javascript"
	}
	return "erlang"
}

// Module is a parsed source file: an ordered list of definitions, each
// optionally restricted to a compilation target.
type Module struct {
	Definitions []TargetedDefinition
}

// TargetedDefinition couples a definition with an optional @target attribute.
type TargetedDefinition struct {
	Target     *Target // nil — определение для всех платформ
	Definition Definition
}
