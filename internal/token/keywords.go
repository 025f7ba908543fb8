package token

var keywords = map[string]Kind{
	"as":     KwAs,
	"assert": KwAssert,
	"case":   KwCase,
	"const":  KwConst,
	"fn":     KwFn,
	"if":     KwIf,
	"import": KwImport,
	"let":    KwLet,
	"opaque": KwOpaque,
	"panic":  KwPanic,
	"pub":    KwPub,
	"todo":   KwTodo,
	"type":   KwType,
	"use":    KwUse,
}

// LookupKeyword returns the keyword kind for name, or Name if it is a plain
// identifier.
func LookupKeyword(name string) Kind {
	if k, ok := keywords[name]; ok {
		return k
	}
	return Name
}
