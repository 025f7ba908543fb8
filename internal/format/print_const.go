package format

import (
	"opal/internal/ast"
	"opal/internal/doc"
)

func (p *Formatter) constExpr(value ast.Constant) *doc.Document {
	switch c := value.(type) {
	case *ast.ConstInt:
		return intDoc(c.Value)

	case *ast.ConstFloat:
		return floatDoc(c.Value)

	case *ast.ConstString:
		return stringDoc(c.Value)

	case *ast.ConstList:
		return p.constList(c.Elements)

	case *ast.ConstTuple:
		elems := make([]*doc.Document, 0, len(c.Elements))
		for _, e := range c.Elements {
			elems = append(elems, p.constExpr(e))
		}
		return doc.Text("#").Append(wrapArgs(elems)).Group()

	case *ast.ConstBitArray:
		simple := true
		segments := make([]*doc.Document, 0, len(c.Segments))
		for i := range c.Segments {
			segment := &c.Segments[i]
			if !ast.IsSimpleConst(segment.Value) {
				simple = false
			}
			segments = append(segments, bitArraySegment(segment, p.constExpr))
		}
		return bitArray(segments, simple)

	case *ast.ConstRecord:
		head := doc.Text(c.Name)
		if c.Module != "" {
			head = doc.Text(c.Module).AppendText(".").AppendText(c.Name)
		}
		if len(c.Arguments) == 0 {
			return head
		}
		args := make([]*doc.Document, 0, len(c.Arguments))
		for i := range c.Arguments {
			args = append(args, p.constantCallArg(&c.Arguments[i]))
		}
		return head.Append(wrapArgs(args)).Group()

	case *ast.ConstVar:
		if c.Module != "" {
			return doc.Text(c.Module).AppendText(".").AppendText(c.Name)
		}
		return doc.Text(c.Name)
	}
	panic("unknown constant kind")
}

func (p *Formatter) constList(elements []ast.Constant) *doc.Document {
	if len(elements) == 0 {
		return doc.Text("[]")
	}

	allSimple := true
	for _, e := range elements {
		if !ast.IsSimpleConst(e) {
			allSimple = false
			break
		}
	}

	docs := make([]*doc.Document, 0, len(elements)*2)
	for i, e := range elements {
		if i > 0 {
			if allSimple {
				docs = append(docs, doc.FlexBreak(",", ", "))
			} else {
				docs = append(docs, doc.Break(",", ", "))
			}
		}
		docs = append(docs, p.constExpr(e))
	}

	return doc.Break("[", "[").
		Append(doc.Concat(docs...)).
		Nest(indent).
		Append(doc.Break(",", "")).
		AppendText("]").
		Group()
}

func (p *Formatter) constantCallArg(arg *ast.CallArg[ast.Constant]) *doc.Document {
	if arg.Label == "" {
		return p.constExpr(arg.Value)
	}
	return doc.Text(arg.Label).AppendText(": ").Append(p.constExpr(arg.Value))
}
