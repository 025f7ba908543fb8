package ast

import (
	"opal/internal/source"
)

// BitOptionKind — вид опции сегмента битового массива.
type BitOptionKind uint8

const (
	BitOptBytes BitOptionKind = iota
	BitOptInt
	BitOptFloat
	BitOptBits
	BitOptUtf8
	BitOptUtf16
	BitOptUtf32
	BitOptUtf8Codepoint
	BitOptUtf16Codepoint
	BitOptUtf32Codepoint
	BitOptSigned
	BitOptUnsigned
	BitOptBig
	BitOptLittle
	BitOptNative
	BitOptSize
	BitOptUnit
)

var bitOptionNames = [...]string{
	BitOptBytes:          "bytes",
	BitOptInt:            "int",
	BitOptFloat:          "float",
	BitOptBits:           "bits",
	BitOptUtf8:           "utf8",
	BitOptUtf16:          "utf16",
	BitOptUtf32:          "utf32",
	BitOptUtf8Codepoint:  "utf8_codepoint",
	BitOptUtf16Codepoint: "utf16_codepoint",
	BitOptUtf32Codepoint: "utf32_codepoint",
	BitOptSigned:         "signed",
	BitOptUnsigned:       "unsigned",
	BitOptBig:            "big",
	BitOptLittle:         "little",
	BitOptNative:         "native",
	BitOptSize:           "size",
	BitOptUnit:           "unit",
}

func (k BitOptionKind) String() string {
	if int(k) < len(bitOptionNames) {
		return bitOptionNames[k]
	}
	return "?"
}

// BitArrayOption — опция сегмента. Value заполнен только для BitOptSize;
// ShortForm отмечает запись размера без слова size: `<<x:8>>`.
// Unit заполнен только для BitOptUnit.
type BitArrayOption[T any] struct {
	Location  source.Span
	Kind      BitOptionKind
	Value     T
	ShortForm bool
	Unit      uint8
}

// BitArraySegment — `value:opt1-opt2` внутри `<<...>>`.
type BitArraySegment[T any] struct {
	Location source.Span
	Value    T
	Options  []BitArrayOption[T]
}
