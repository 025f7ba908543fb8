package format

import (
	"strings"
	"testing"
)

func mustFormat(t *testing.T, src string) string {
	t.Helper()
	out, err := Source("main.opal", []byte(src))
	if err != nil {
		t.Fatalf("Source() failed: %v", err)
	}
	return out
}

// assertFormat проверяет результат и его неподвижность: повторное
// форматирование каноничного текста ничего не меняет.
func assertFormat(t *testing.T, src, want string) {
	t.Helper()
	got := mustFormat(t, src)
	if got != want {
		t.Fatalf("formatted output mismatch\n--- got ---\n%s\n--- want ---\n%s", got, want)
	}
	again := mustFormat(t, got)
	if again != got {
		t.Fatalf("formatting is not stable\n--- first ---\n%s\n--- second ---\n%s", got, again)
	}
}

func TestFormatSimpleFunction(t *testing.T) {
	src := "pub fn main() {\n  1\n}\n"
	assertFormat(t, src, src)
}

func TestFormatCollapsesWhitespace(t *testing.T) {
	src := "pub   fn main()   {   1   }"
	want := "pub fn main() {\n  1\n}\n"
	assertFormat(t, src, want)
}

func TestFormatIntegerGrouping(t *testing.T) {
	src := "pub const big = 100000\n\nconst hex = 0xFF\n\nconst bin = 0b1010\n"
	want := "pub const big = 100_000\n\nconst hex = 0xFF\n\nconst bin = 0b1010\n"
	assertFormat(t, src, want)
}

func TestFormatNegativeRadixLiterals(t *testing.T) {
	src := "const a = -0x12345678\n\nconst b = -0b1010\n\nconst c = -0o777\n\nconst d = -100000\n"
	want := "const a = -0x12345678\n\nconst b = -0b1010\n\nconst c = -0o777\n\nconst d = -100_000\n"
	assertFormat(t, src, want)
}

func TestFormatFloatTrimming(t *testing.T) {
	src := "const a = 1.50\n\nconst b = 1.0\n\nconst c = 3.1400\n"
	want := "const a = 1.5\n\nconst b = 1.0\n\nconst c = 3.14\n"
	assertFormat(t, src, want)
}

func TestFormatSeparatesDefinitions(t *testing.T) {
	src := "const a = 1\nconst b = 2\n"
	want := "const a = 1\n\nconst b = 2\n"
	assertFormat(t, src, want)
}

func TestFormatPrecedenceWithoutBlocks(t *testing.T) {
	src := "pub fn main() {\n  1 + 2 * 3\n}\n"
	assertFormat(t, src, src)
}

func TestFormatKeepsBlocks(t *testing.T) {
	src := "pub fn main() {\n  { 1 + 2 } * 3\n}\n"
	assertFormat(t, src, src)

	src = "pub fn sub(a: Int, b: Int, c: Int) -> Int {\n  a - { b - c }\n}\n"
	assertFormat(t, src, src)
}

func TestFormatPipelineIsVertical(t *testing.T) {
	src := "pub fn main() {\n  x |> f(2)\n}\n"
	want := "pub fn main() {\n  x\n  |> f(2)\n}\n"
	assertFormat(t, src, want)
}

func TestFormatPipelineCaptureFirstHole(t *testing.T) {
	// дырка в первой позиции избыточна и опускается
	src := "pub fn main() {\n  x |> f(_, 2)\n}\n"
	want := "pub fn main() {\n  x\n  |> f(2)\n}\n"
	assertFormat(t, src, want)

	src = "pub fn main() {\n  x |> f(_)\n}\n"
	want = "pub fn main() {\n  x\n  |> f\n}\n"
	assertFormat(t, src, want)
}

func TestFormatPipelineCaptureOtherHole(t *testing.T) {
	src := "pub fn main() {\n  x |> f(1, _)\n}\n"
	want := "pub fn main() {\n  x\n  |> f(1, _)\n}\n"
	assertFormat(t, src, want)
}

func TestFormatStandaloneCapture(t *testing.T) {
	src := "pub fn main() {\n  let add2 = add(_, 2)\n  add2(1)\n}\n"
	assertFormat(t, src, src)
}

func TestFormatCaseExpression(t *testing.T) {
	src := "pub fn describe(x) {\n" +
		"  case x {\n" +
		"    1 -> \"one\"\n" +
		"    _ -> \"other\"\n" +
		"  }\n" +
		"}\n"
	assertFormat(t, src, src)
}

func TestFormatCaseAlternativesAndGuard(t *testing.T) {
	src := "pub fn sign(n) {\n" +
		"  case n {\n" +
		"    0 | 1 -> n\n" +
		"    n if n > 0 -> 1\n" +
		"    _ -> -1\n" +
		"  }\n" +
		"}\n"
	assertFormat(t, src, src)
}

func TestFormatLetAssert(t *testing.T) {
	src := "pub fn main() {\n  let assert Ok(x) = run()\n  x\n}\n"
	assertFormat(t, src, src)
}

func TestFormatUseStatement(t *testing.T) {
	src := "pub fn main() {\n  use x <- result.try(parse(input))\n  Ok(x)\n}\n"
	assertFormat(t, src, src)
}

func TestFormatTodoAndPanic(t *testing.T) {
	src := "pub fn later() {\n  todo as \"write me\"\n}\n\npub fn never() {\n  panic\n}\n"
	assertFormat(t, src, src)
}

func TestFormatCustomType(t *testing.T) {
	src := "pub type Option(a) {\n  Some(a)\n  None\n}\n"
	assertFormat(t, src, src)
}

func TestFormatOpaqueType(t *testing.T) {
	src := "pub opaque type Counter {\n  Counter(value: Int)\n}\n"
	assertFormat(t, src, src)
}

func TestFormatTypeAliasBreaksAfterEquals(t *testing.T) {
	src := "pub type Headers = List(#(String, String))\n"
	want := "pub type Headers =\n  List(#(String, String))\n"
	assertFormat(t, src, want)
}

func TestFormatImports(t *testing.T) {
	src := "import one/two.{b, a, type Z, type A}\nimport one/alpha\n"
	want := "import one/two.{type A, type Z, a, b}\nimport one/alpha\n"
	assertFormat(t, src, want)
}

func TestFormatImportAlias(t *testing.T) {
	src := "import core/string as s\n"
	assertFormat(t, src, src)
}

func TestFormatComments(t *testing.T) {
	src := "// greeting helper\npub fn main() {\n  // say it\n  greet()\n}\n"
	assertFormat(t, src, src)
}

func TestFormatDocComments(t *testing.T) {
	src := "/// Says hello.\npub fn hello() {\n  \"hello\"\n}\n"
	assertFormat(t, src, src)
}

func TestFormatModuleComments(t *testing.T) {
	src := "//// The main module.\n\npub fn main() {\n  0\n}\n"
	assertFormat(t, src, src)
}

func TestFormatCollapsesBlankLines(t *testing.T) {
	src := "pub fn main() {\n  1\n\n\n\n  2\n}\n"
	want := "pub fn main() {\n  1\n\n  2\n}\n"
	assertFormat(t, src, want)
}

func TestFormatListLiteral(t *testing.T) {
	src := "pub fn main() {\n  [1, 2, 3]\n}\n"
	assertFormat(t, src, src)
}

func TestFormatListWithTail(t *testing.T) {
	src := "pub fn prepend(x, rest) {\n  [x, ..rest]\n}\n"
	assertFormat(t, src, src)
}

func TestFormatLongSimpleListPacks(t *testing.T) {
	src := "const xs = [1111, 1111, 1111, 1111, 1111, 1111, 1111, 1111, 1111, 1111, 1111, 1111, 1111, 1111]\n"
	want := "const xs = [\n" +
		"  1111, 1111, 1111, 1111, 1111, 1111, 1111, 1111, 1111, 1111, 1111, 1111, 1111,\n" +
		"  1111,\n" +
		"]\n"
	assertFormat(t, src, want)
}

func TestFormatCallWidthBoundary(t *testing.T) {
	first := strings.Repeat("a", 35)
	second := strings.Repeat("b", 35)

	// "  call(" + 35 + ", " + 35 + ")" — ровно 80 колонок, остаётся плоским.
	src := "pub fn main() {\n  call(" + first + ", " + second + ")\n}\n"
	assertFormat(t, src, src)

	// Один лишний символ — аргументы по одному на строку с висячей запятой.
	wide := strings.Repeat("a", 36)
	src = "pub fn main() {\n  call(" + wide + ", " + second + ")\n}\n"
	want := "pub fn main() {\n" +
		"  call(\n" +
		"    " + wide + ",\n" +
		"    " + second + ",\n" +
		"  )\n" +
		"}\n"
	assertFormat(t, src, want)
}

func TestFormatTuples(t *testing.T) {
	src := "pub fn pair() {\n  #(1, \"two\")\n}\n"
	assertFormat(t, src, src)
}

func TestFormatTupleIndex(t *testing.T) {
	src := "pub fn first(p) {\n  p.0\n}\n"
	assertFormat(t, src, src)
}

func TestFormatBitArray(t *testing.T) {
	src := "pub fn pack(b) {\n  <<1, 2:size(8)-unit(2), b:16-little>>\n}\n"
	assertFormat(t, src, src)
}

func TestFormatRecordUpdate(t *testing.T) {
	src := "pub fn rename(person) {\n  Person(..person, name: \"Jane\")\n}\n"
	assertFormat(t, src, src)
}

func TestFormatNegation(t *testing.T) {
	src := "pub fn main() {\n  !x\n}\n"
	assertFormat(t, src, src)

	src = "pub fn main() {\n  -x\n}\n"
	assertFormat(t, src, src)
}

func TestFormatAnonymousFunction(t *testing.T) {
	src := "pub fn main() {\n  let double = fn(x) { x * 2 }\n  double(2)\n}\n"
	assertFormat(t, src, src)
}

func TestFormatExternalFunction(t *testing.T) {
	src := "@external(erlang, \"lists\", \"reverse\")\npub fn reverse(list: List(a)) -> List(a)\n"
	assertFormat(t, src, src)
}

func TestFormatDeprecated(t *testing.T) {
	src := "@deprecated(\"Use run instead\")\npub fn go() {\n  run()\n}\n"
	assertFormat(t, src, src)
}

func TestFormatTargetedDefinition(t *testing.T) {
	src := "@target(erlang)\npub fn main() {\n  0\n}\n"
	assertFormat(t, src, src)
}

func TestFormatStringConcat(t *testing.T) {
	src := "pub fn greet(name) {\n  \"hello \" <> name\n}\n"
	assertFormat(t, src, src)
}

func TestFormatParseError(t *testing.T) {
	_, err := Source("broken.opal", []byte("pub fn {\n"))
	if err == nil {
		t.Fatalf("expected a parse error")
	}
	if _, ok := err.(*ParseError); !ok {
		t.Fatalf("expected *ParseError, got %T", err)
	}
}
