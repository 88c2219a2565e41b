// Package langset defines the active-language bitmask consulted by every
// keyword, punctuator, and classifier lookup in the pipeline.
package langset

// Mask is a bitset of source languages. Callers may combine bits (e.g.
// CPP|ObjC) to enable Objective-C++ style lookups, matching the original
// tokenizer's LANG_* OR-able flags.
type Mask uint16

const (
	C Mask = 1 << iota
	CPP
	CS
	D
	Java
	ObjC
	Pawn
	Vala
	ECMA

	// PPOnly marks a keyword table entry that is only a keyword inside a
	// preprocessor directive (e.g. "defined" in #if expressions).
	PPOnly
)

// All enables every language; used by punctuation that is universal
// (braces, semicolons, ...).
const All = C | CPP | CS | D | Java | ObjC | Pawn | Vala | ECMA

// Has reports whether any bit of want is present in m.
func (m Mask) Has(want Mask) bool {
	return m&want != 0
}

// Names returns the canonical short names set in m, stable order, for
// diagnostics and debug printing.
func (m Mask) Names() []string {
	var out []string
	for _, e := range []struct {
		bit  Mask
		name string
	}{
		{C, "C"}, {CPP, "CPP"}, {CS, "CS"}, {D, "D"}, {Java, "JAVA"},
		{ObjC, "OC"}, {Pawn, "PAWN"}, {Vala, "VALA"}, {ECMA, "ECMA"},
	} {
		if m.Has(e.bit) {
			out = append(out, e.name)
		}
	}
	return out
}

func (m Mask) String() string {
	names := m.Names()
	if len(names) == 0 {
		return "NONE"
	}
	s := names[0]
	for _, n := range names[1:] {
		s += "|" + n
	}
	return s
}
