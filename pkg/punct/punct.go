// Package punct implements the longest-match punctuator lookup table,
// bucketed by symbol length exactly as the original tokenizer's
// symbols4/symbols3/symbols2/symbols1 tables (src/c_token.c) are: the
// lexer tries the longest bucket first so a prefix symbol (e.g. "%:")
// never shadows a longer one that starts with it (e.g. "%:%:").
package punct

import (
	"github.com/uncrustify-go/frontend/pkg/langset"
	"github.com/uncrustify-go/frontend/pkg/token"
)

// MaxLen is the length of the longest recognized punctuator.
const MaxLen = 4

// entry pairs a literal spelling with the Kind it classifies to before
// any context-sensitive narrowing (e.g. "-" always lexes as Arith and the
// classifier may retag it Neg; "++"/"--" lex as IncDecAfter and may become
// IncDecBefore),
// gated by the set of languages that recognize the spelling at all.
type entry struct {
	sym  string
	kind token.Kind
	lang langset.Mask
}

var table4 = []entry{
	{"%:%:", token.PPOther, langset.C | langset.CPP},
}

var table3 = []entry{
	{"<<=", token.Assign, langset.All},
	{">>=", token.Assign, langset.All},
	{"...", token.Ellipsis, langset.All},
	{"->*", token.Member, langset.CPP},
}

var table2 = []entry{
	{"++", token.IncDecAfter, langset.All},
	{"--", token.IncDecAfter, langset.All},
	{"%=", token.Assign, langset.All},
	{"&=", token.Assign, langset.All},
	{"*=", token.Assign, langset.All},
	{"+=", token.Assign, langset.All},
	{"-=", token.Assign, langset.All},
	{"/=", token.Assign, langset.All},
	{"^=", token.Assign, langset.All},
	{"|=", token.Assign, langset.All},
	{"!=", token.Compare, langset.All},
	{"<=", token.Compare, langset.All},
	{"==", token.Compare, langset.All},
	{">=", token.Compare, langset.All},
	{"<<", token.Arith, langset.All},
	{">>", token.Arith, langset.All},
	{"->", token.Arrow, langset.All},
	{".*", token.Member, langset.CPP},
	{"::", token.Member, langset.CPP | langset.CS | langset.D | langset.Vala | langset.Pawn},
	{"||", token.Bool, langset.All},
	{"&&", token.Bool, langset.All},
	{"##", token.PPOther, langset.All},
	{"<:", token.SquareOpen, langset.C | langset.CPP},
	{":>", token.SquareClose, langset.C | langset.CPP},
	{"<%", token.BraceOpen, langset.C | langset.CPP},
	{"%>", token.BraceClose, langset.C | langset.CPP},
	{"%:", token.Pound, langset.C | langset.CPP},
	{"=>", token.FatArrow, langset.CS | langset.D},
	{"??", token.Question, langset.CS},
}

var table1 = []entry{
	{"#", token.Pound, langset.All},
	{"%", token.Arith, langset.All},
	{"&", token.Addr, langset.All},
	{"*", token.Arith, langset.All},
	{"+", token.Arith, langset.All},
	{"^", token.Arith, langset.All},
	{"-", token.Arith, langset.All},
	{"|", token.Arith, langset.All},
	{"/", token.Arith, langset.All},
	{"!", token.Bool, langset.All},
	{"~", token.Arith, langset.All},
	{",", token.Punctuator, langset.All},
	{".", token.Member, langset.All},
	{":", token.Colon, langset.All},
	{";", token.Punctuator, langset.All},
	{"<", token.AngleOpen, langset.All},
	{">", token.AngleClose, langset.All},
	{"=", token.Assign, langset.All},
	{"?", token.Question, langset.All},
	{"(", token.ParenOpen, langset.All},
	{")", token.ParenClose, langset.All},
	{"[", token.SquareOpen, langset.All},
	{"]", token.SquareClose, langset.All},
	{"{", token.BraceOpen, langset.All},
	{"}", token.BraceClose, langset.All},
	{"@", token.Punctuator, langset.ObjC},
}

var byLen = [MaxLen + 1][]entry{
	4: table4,
	3: table3,
	2: table2,
	1: table1,
}

// Lookup tries the longest-match punctuator starting at the front of s
// (s may be longer than the punctuator; only a prefix is matched) that
// is valid under the active language mask langs, trying 4-byte, then
// 3-, 2-, and 1-byte buckets in that order so no symbol is shadowed by
// one of its own prefixes. When nothing matches under langs but langs
// includes C or CPP, the probe retries once with langset.ObjC folded
// in, so Objective-C constructs (e.g. a bare "@" before a message send)
// are still recognized when a .m/.mm file is lexed under a plain C or
// C++ mask. A zero n (with Kind Illegal) means no match was found.
func Lookup(s string, langs langset.Mask) (token.Kind, int) {
	if kind, n, ok := probe(s, langs); ok {
		return kind, n
	}
	if langs.Has(langset.C) || langs.Has(langset.CPP) {
		if kind, n, ok := probe(s, langs|langset.ObjC); ok {
			return kind, n
		}
	}
	return token.Illegal, 0
}

func probe(s string, langs langset.Mask) (token.Kind, int, bool) {
	for n := MaxLen; n >= 1; n-- {
		if len(s) < n {
			continue
		}
		cand := s[:n]
		for _, e := range byLen[n] {
			if e.sym == cand && e.lang&langs != 0 {
				return e.kind, n, true
			}
		}
	}
	return token.Illegal, 0, false
}
