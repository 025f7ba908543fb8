package format

import (
	"strconv"

	"opal/internal/ast"
	"opal/internal/doc"
)

func pubDoc(public bool) *doc.Document {
	if public {
		return doc.Text("pub ")
	}
	return doc.Nil()
}

// breakBlock оборачивает документ в фигурные скобки, всегда в столбик.
func breakBlock(d *doc.Document) *doc.Document {
	return doc.Text("{").
		Append(doc.Line().Append(d).Nest(indent)).
		Append(doc.Line()).
		AppendText("}").
		ForceBreak()
}

// wrapBlock оборачивает документ в фигурные скобки, в строку если влезает.
func wrapBlock(d *doc.Document) *doc.Document {
	return doc.Break("{", "{ ").
		Append(d).
		Nest(indent).
		Append(doc.Break("", " ")).
		AppendText("}")
}

// wrapArgs печатает список аргументов в круглых скобках с висячей запятой
// в разломанном виде.
func wrapArgs(args []*doc.Document) *doc.Document {
	if len(args) == 0 {
		return doc.Text("()")
	}
	return doc.Break("(", "(").
		Append(doc.Join(args, doc.Break(",", ", "))).
		Nest(indent).
		Append(doc.Break(",", "")).
		AppendText(")")
}

// wrapArgsWithSpread — как wrapArgs, но с многоточием после аргументов:
// Wibble(a, b, ..).
func wrapArgsWithSpread(args []*doc.Document) *doc.Document {
	if len(args) == 0 {
		return doc.Text("()")
	}
	return doc.Break("(", "(").
		Append(doc.Join(args, doc.Break(",", ", "))).
		Append(doc.Break(",", ", ")).
		AppendText("..").
		Nest(indent).
		Append(doc.Break(",", "")).
		AppendText(")").
		Group()
}

func bitArray(segments []*doc.Document, isSimple bool) *doc.Document {
	comma := doc.Break(",", ", ")
	if isSimple {
		comma = doc.FlexBreak(",", ", ")
	}
	return doc.Break("<<", "<<").
		Append(doc.Join(segments, comma)).
		Nest(indent).
		Append(doc.Break(",", "")).
		AppendText(">>").
		Group()
}

func bitArraySegment[T any](segment *ast.BitArraySegment[T], toDoc func(T) *doc.Document) *doc.Document {
	if len(segment.Options) == 0 {
		return toDoc(segment.Value)
	}
	options := make([]*doc.Document, 0, len(segment.Options))
	for i := range segment.Options {
		options = append(options, segmentOption(&segment.Options[i], toDoc))
	}
	return toDoc(segment.Value).AppendText(":").Append(doc.Join(options, doc.Text("-")))
}

func segmentOption[T any](option *ast.BitArrayOption[T], toDoc func(T) *doc.Document) *doc.Document {
	switch option.Kind {
	case ast.BitOptSize:
		if option.ShortForm {
			return toDoc(option.Value)
		}
		return doc.Text("size(").Append(toDoc(option.Value)).AppendText(")")

	case ast.BitOptUnit:
		return doc.Text("unit(" + strconv.Itoa(int(option.Unit)) + ")")

	default:
		return doc.Text(option.Kind.String())
	}
}

// operatorSide берёт операнд в блок, когда его приоритет слабее требуемого.
func operatorSide(d *doc.Document, op, side uint8) *doc.Document {
	if op > side {
		return wrapBlock(d).Group()
	}
	return d
}

func isBreakableExpr(expr ast.Expr) bool {
	switch expr.(type) {
	case *ast.Fn, *ast.Block, *ast.Call, *ast.Case,
		*ast.List, *ast.Tuple, *ast.BitArrayExpr:
		return true
	}
	return false
}

// startByteIndex — байт, с которого выражение начинается в исходнике;
// у конвейера это начало его первой стадии.
func startByteIndex(expr ast.Expr) uint32 {
	if pipe, ok := expr.(*ast.Pipeline); ok && len(pipe.Expressions) > 0 {
		return startByteIndex(pipe.Expressions[0])
	}
	return expr.Loc().Start
}
