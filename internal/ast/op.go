package ast

// BinOp — бинарный оператор выражений и guard-ов.
type BinOp uint8

const (
	OpAnd BinOp = iota
	OpOr
	OpEq
	OpNotEq
	OpLtInt
	OpLtEqInt
	OpLtFloat
	OpLtEqFloat
	OpGtInt
	OpGtEqInt
	OpGtFloat
	OpGtEqFloat
	OpAddInt
	OpAddFloat
	OpSubInt
	OpSubFloat
	OpMultInt
	OpMultFloat
	OpDivInt
	OpDivFloat
	OpRemainderInt
	OpConcatenate
)

// PipePrecedence — приоритет конвейера |> как операнда: сильнее сравнений
// и конкатенации, слабее арифметики.
const PipePrecedence uint8 = 5

// MaxPrecedence — приоритет любого не-бинарного операнда.
const MaxPrecedence uint8 = 0xff

var opNames = [...]string{
	OpAnd:          "&&",
	OpOr:           "||",
	OpEq:           "==",
	OpNotEq:        "!=",
	OpLtInt:        "<",
	OpLtEqInt:      "<=",
	OpLtFloat:      "<.",
	OpLtEqFloat:    "<=.",
	OpGtInt:        ">",
	OpGtEqInt:      ">=",
	OpGtFloat:      ">.",
	OpGtEqFloat:    ">=.",
	OpAddInt:       "+",
	OpAddFloat:     "+.",
	OpSubInt:       "-",
	OpSubFloat:     "-.",
	OpMultInt:      "*",
	OpMultFloat:    "*.",
	OpDivInt:       "/",
	OpDivFloat:     "/.",
	OpRemainderInt: "%",
	OpConcatenate:  "<>",
}

// Name возвращает написание оператора в исходнике.
func (op BinOp) Name() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return "?"
}

func (op BinOp) String() string { return op.Name() }

// Precedence возвращает приоритет связывания: чем больше, тем сильнее.
// Конвейер |> занимает уровень PipePrecedence между сравнениями-конкатенацией
// и арифметикой.
func (op BinOp) Precedence() uint8 {
	switch op {
	case OpOr:
		return 1
	case OpAnd:
		return 2
	case OpEq, OpNotEq:
		return 3
	case OpLtInt, OpLtEqInt, OpLtFloat, OpLtEqFloat,
		OpGtInt, OpGtEqInt, OpGtFloat, OpGtEqFloat:
		return 4
	case OpConcatenate:
		return 5
	case OpAddInt, OpAddFloat, OpSubInt, OpSubFloat:
		return 7
	default:
		return 8
	}
}

// GuardPrecedence — приоритет оператора в guard-выражении; все остальные
// guard-узлы имеют максимальный приоритет 5.
func (op BinOp) GuardPrecedence() uint8 {
	switch op {
	case OpOr:
		return 1
	case OpAnd:
		return 2
	case OpEq, OpNotEq:
		return 3
	case OpLtInt, OpLtEqInt, OpLtFloat, OpLtEqFloat,
		OpGtInt, OpGtEqInt, OpGtFloat, OpGtEqFloat:
		return 4
	default:
		return 5
	}
}
