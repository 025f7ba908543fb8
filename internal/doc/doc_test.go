package doc

import (
	"testing"
)

func TestTextAndConcat(t *testing.T) {
	d := Concat(Text("hello"), Text(", "), Text("world"))
	if got := d.Print(80); got != "hello, world" {
		t.Fatalf("got %q", got)
	}
}

func TestGroupFitsStaysFlat(t *testing.T) {
	d := Concat(
		Text("["),
		Break("", ""),
		Text("1"),
		Break(",", ", "),
		Text("2"),
		Break("", ""),
		Text("]"),
	).Group()
	if got := d.Print(80); got != "[1, 2]" {
		t.Fatalf("got %q", got)
	}
}

func TestGroupBreaksWhenTooWide(t *testing.T) {
	inner := Concat(
		Break("", ""),
		Text("first_element"),
		Break(",", ", "),
		Text("second_element"),
	).Nest(2)
	d := Concat(Text("["), inner, Break(",", ""), Text("]")).Group()

	want := "[\n  first_element,\n  second_element,\n]"
	if got := d.Print(10); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestForceBreakBreaksEnclosingGroup(t *testing.T) {
	inner := Concat(
		Break("", ""),
		Text("a"),
		Break(",", ", "),
		Text("b"),
	).Nest(2).ForceBreak()
	d := Concat(Text("["), inner, Break(",", ""), Text("]")).Group()

	want := "[\n  a,\n  b,\n]"
	if got := d.Print(80); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestForceBreakStopsAtGroupBoundary(t *testing.T) {
	// Разлом не выходит за границу вложенной группы.
	inner := Concat(Break("", ""), Text("x")).ForceBreak().Group()
	outer := Concat(Text("a"), Break("", " "), Text("b ")).Group().Append(inner)

	want := "a b \nx"
	if got := outer.Print(80); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFlexBreakPacksLines(t *testing.T) {
	d := Concat(
		Text("one"),
		FlexBreak(",", ", "),
		Text("two"),
		FlexBreak(",", ", "),
		Text("three"),
		FlexBreak(",", ", "),
		Text("four"),
	).Group()

	// Ширина 12: влезает по два элемента на строку.
	want := "one, two,\nthree, four"
	if got := d.Print(12); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestLineResetsWidth(t *testing.T) {
	d := Concat(Text("abc"), Line(), Text("def")).Nest(2)
	want := "abc\n  def"
	if got := d.Print(80); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestLinesEmitsBlank(t *testing.T) {
	d := Concat(Text("a"), Lines(2), Text("b"))
	want := "a\n\nb"
	if got := d.Print(80); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestJoin(t *testing.T) {
	d := Join([]*Document{Text("a"), Text("b"), Text("c")}, Text("-"))
	if got := d.Print(80); got != "a-b-c" {
		t.Fatalf("got %q", got)
	}
}

func TestSurroundAndIsEmpty(t *testing.T) {
	if !Nil().IsEmpty() {
		t.Fatal("nil should be empty")
	}
	if !Concat(Nil(), Text("")).IsEmpty() {
		t.Fatal("vec of empties should be empty")
	}
	if Text("x").IsEmpty() {
		t.Fatal("text is not empty")
	}
	d := Text("x").Surround("(", ")")
	if got := d.Print(80); got != "(x)" {
		t.Fatalf("got %q", got)
	}
}
