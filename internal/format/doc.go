// Package format превращает разобранный модуль в каноничный текст:
// строит документ (internal/doc) по AST, вплетая комментарии и пустые
// строки из побочной таблицы лексера, и печатает его в ширину 80.
//
// Назначение: единственный способ получить отформатированный исходник.
// Не делает: семантического анализа, проверки типов, IO.
// Зависимости: internal/ast, internal/doc, internal/lexer, internal/parser,
// internal/source, internal/diag.
package format
