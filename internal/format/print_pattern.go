package format

import (
	"opal/internal/ast"
	"opal/internal/doc"
)

func (p *Formatter) pattern(pattern ast.Pattern) *doc.Document {
	comments := p.popComments(pattern.Loc().Start)

	var d *doc.Document
	switch pat := pattern.(type) {
	case *ast.IntPat:
		d = intDoc(pat.Value)

	case *ast.FloatPat:
		d = floatDoc(pat.Value)

	case *ast.StringPat:
		d = stringDoc(pat.Value)

	case *ast.VarPat:
		d = doc.Text(pat.Name)

	case *ast.VarUsagePat:
		d = doc.Text(pat.Name)

	case *ast.AssignPat:
		d = p.pattern(pat.Pattern).AppendText(" as ").AppendText(pat.Name)

	case *ast.DiscardPat:
		d = doc.Text(pat.Name)

	case *ast.ListPat:
		d = p.listPattern(pat.Elements, pat.Tail)

	case *ast.ConstructorPat:
		d = p.patternConstructor(pat)

	case *ast.TuplePat:
		elems := make([]*doc.Document, 0, len(pat.Elems))
		for _, elem := range pat.Elems {
			elems = append(elems, p.pattern(elem))
		}
		d = doc.Text("#").Append(wrapArgs(elems)).Group()

	case *ast.BitArrayPat:
		segments := make([]*doc.Document, 0, len(pat.Segments))
		for i := range pat.Segments {
			segments = append(segments, bitArraySegment(&pat.Segments[i], p.pattern))
		}
		d = bitArray(segments, false)

	case *ast.StringPrefixPat:
		left := stringDoc(pat.Prefix)
		if pat.PrefixAssignment != "" {
			left = left.AppendText(" as ").AppendText(pat.PrefixAssignment)
		}
		d = left.AppendText(" <> ").AppendText(pat.Rest)

	default:
		panic("unknown pattern kind")
	}

	return commented(d, comments)
}

func (p *Formatter) listPattern(elements []ast.Pattern, tail ast.Pattern) *doc.Document {
	if len(elements) == 0 {
		if tail != nil {
			return p.pattern(tail)
		}
		return doc.Text("[]")
	}

	docs := make([]*doc.Document, 0, len(elements))
	for _, e := range elements {
		docs = append(docs, p.pattern(e))
	}
	d := doc.Break("[", "[").Append(doc.Join(docs, doc.Break(",", ", ")))

	if tail == nil {
		d = d.Nest(indent).Append(doc.Break(",", ""))
	} else {
		comments := p.popComments(tail.Loc().Start)
		var tailDoc *doc.Document
		if _, discard := tail.(*ast.DiscardPat); discard {
			tailDoc = doc.Text("..")
		} else {
			tailDoc = doc.Text("..").Append(p.pattern(tail))
		}
		d = d.Append(doc.Break(",", ", ")).
			Append(commented(tailDoc, comments)).
			Nest(indent).
			Append(doc.Break("", ""))
	}

	return d.AppendText("]").Group()
}

func (p *Formatter) patternConstructor(pat *ast.ConstructorPat) *doc.Document {
	isBreakable := func(pattern ast.Pattern) bool {
		switch inner := pattern.(type) {
		case *ast.TuplePat, *ast.ListPat, *ast.BitArrayPat:
			return true
		case *ast.ConstructorPat:
			return len(inner.Arguments) > 0
		}
		return false
	}

	name := doc.Text(pat.Name)
	if pat.Module != "" {
		name = doc.Text(pat.Module).AppendText(".").AppendText(pat.Name)
	}

	switch {
	case len(pat.Arguments) == 0 && pat.Spread:
		return name.AppendText("(..)")

	case len(pat.Arguments) == 0:
		return name

	case pat.Spread:
		args := make([]*doc.Document, 0, len(pat.Arguments))
		for i := range pat.Arguments {
			args = append(args, p.patternCallArg(&pat.Arguments[i]))
		}
		return name.Append(wrapArgsWithSpread(args))

	case len(pat.Arguments) == 1 && isBreakable(pat.Arguments[0].Value):
		return name.AppendText("(").
			Append(p.patternCallArg(&pat.Arguments[0])).
			AppendText(")").
			Group()

	default:
		args := make([]*doc.Document, 0, len(pat.Arguments))
		for i := range pat.Arguments {
			args = append(args, p.patternCallArg(&pat.Arguments[i]))
		}
		return name.Append(wrapArgs(args)).Group()
	}
}

func (p *Formatter) patternCallArg(arg *ast.CallArg[ast.Pattern]) *doc.Document {
	if arg.Label == "" {
		return p.pattern(arg.Value)
	}
	return doc.Text(arg.Label).AppendText(": ").Append(p.pattern(arg.Value))
}
