package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Name represents a lowercase identifier.
	Name
	// UpName represents a capitalized identifier (type or record constructor).
	UpName
	// DiscardName represents `_` or a `_name` identifier.
	DiscardName

	// IntLit represents the integer literal token.
	IntLit
	// FloatLit represents the float literal token.
	FloatLit
	// StringLit represents the string literal token.
	StringLit

	// KwAs represents the 'as' keyword.
	KwAs // as
	// KwAssert represents the 'assert' keyword.
	KwAssert // assert
	// KwCase represents the 'case' keyword.
	KwCase // case
	// KwConst represents the 'const' keyword.
	KwConst // const
	// KwFn represents the 'fn' keyword.
	KwFn // fn
	// KwIf represents the 'if' keyword (clause guards).
	KwIf // if
	// KwImport represents the 'import' keyword.
	KwImport // import
	// KwLet represents the 'let' keyword.
	KwLet // let
	// KwOpaque represents the 'opaque' keyword.
	KwOpaque // opaque
	// KwPanic represents the 'panic' keyword.
	KwPanic // panic
	// KwPub represents the 'pub' keyword.
	KwPub // pub
	// KwTodo represents the 'todo' keyword.
	KwTodo // todo
	// KwType represents the 'type' keyword.
	KwType // type
	// KwUse represents the 'use' keyword.
	KwUse // use

	// LParen represents '('.
	LParen
	// RParen represents ')'.
	RParen
	// LBrace represents '{'.
	LBrace
	// RBrace represents '}'.
	RBrace
	// LBracket represents '['.
	LBracket
	// RBracket represents ']'.
	RBracket
	// LtLt represents '<<' (bit array open).
	LtLt
	// GtGt represents '>>' (bit array close).
	GtGt

	// Comma represents ','.
	Comma
	// Colon represents ':'.
	Colon
	// Hash represents '#'.
	Hash
	// Bang represents '!'.
	Bang
	// Equal represents '='.
	Equal
	// EqualEqual represents '=='.
	EqualEqual
	// NotEqual represents '!='.
	NotEqual
	// Vbar represents '|'.
	Vbar
	// VbarVbar represents '||'.
	VbarVbar
	// AmperAmper represents '&&'.
	AmperAmper
	// LtGt represents '<>' (string concatenation).
	LtGt
	// PipeOp represents '|>'.
	PipeOp
	// Dot represents '.'.
	Dot
	// DotDot represents '..'.
	DotDot
	// At represents '@'.
	At

	// Lt represents '<'.
	Lt
	// Gt represents '>'.
	Gt
	// LtEq represents '<='.
	LtEq
	// GtEq represents '>='.
	GtEq
	// LtDot represents '<.'.
	LtDot
	// GtDot represents '>.'.
	GtDot
	// LtEqDot represents '<=.'.
	LtEqDot
	// GtEqDot represents '>=.'.
	GtEqDot

	// Plus represents '+'.
	Plus
	// Minus represents '-'.
	Minus
	// Star represents '*'.
	Star
	// Slash represents '/'.
	Slash
	// Percent represents '%'.
	Percent
	// PlusDot represents '+.'.
	PlusDot
	// MinusDot represents '-.'.
	MinusDot
	// StarDot represents '*.'.
	StarDot
	// SlashDot represents '/.'.
	SlashDot

	// RArrow represents '->'.
	RArrow
	// LArrow represents '<-'.
	LArrow
)

var kindNames = map[Kind]string{
	Invalid:     "invalid",
	EOF:         "eof",
	Name:        "name",
	UpName:      "upname",
	DiscardName: "discard",
	IntLit:      "int",
	FloatLit:    "float",
	StringLit:   "string",
	KwAs:        "as",
	KwAssert:    "assert",
	KwCase:      "case",
	KwConst:     "const",
	KwFn:        "fn",
	KwIf:        "if",
	KwImport:    "import",
	KwLet:       "let",
	KwOpaque:    "opaque",
	KwPanic:     "panic",
	KwPub:       "pub",
	KwTodo:      "todo",
	KwType:      "type",
	KwUse:       "use",
	LParen:      "(",
	RParen:      ")",
	LBrace:      "{",
	RBrace:      "}",
	LBracket:    "[",
	RBracket:    "]",
	LtLt:        "<<",
	GtGt:        ">>",
	Comma:       ",",
	Colon:       ":",
	Hash:        "#",
	Bang:        "!",
	Equal:       "=",
	EqualEqual:  "==",
	NotEqual:    "!=",
	Vbar:        "|",
	VbarVbar:    "||",
	AmperAmper:  "&&",
	LtGt:        "<>",
	PipeOp:      "|>",
	Dot:         ".",
	DotDot:      "..",
	At:          "@",
	Lt:          "<",
	Gt:          ">",
	LtEq:        "<=",
	GtEq:        ">=",
	LtDot:       "<.",
	GtDot:       ">.",
	LtEqDot:     "<=.",
	GtEqDot:     ">=.",
	Plus:        "+",
	Minus:       "-",
	Star:        "*",
	Slash:       "/",
	Percent:     "%",
	PlusDot:     "+.",
	MinusDot:    "-.",
	StarDot:     "*.",
	SlashDot:    "/.",
	RArrow:      "->",
	LArrow:      "<-",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}
