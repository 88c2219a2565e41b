// Package keyword implements the sorted static keyword/punctuator-adjacent
// word table plus the caller-writable dynamic keyword map the lexer
// consults when classifying a WORD token. It is grounded on
// src/keywords.cpp's sorted chunk_tag_t table and its dkwmap dynamic map.
package keyword

import (
	"sort"
	"sync"

	"github.com/uncrustify-go/frontend/pkg/langset"
	"github.com/uncrustify-go/frontend/pkg/token"
)

// Entry is one row of the static keyword table: a spelling, the Kind it
// classifies to, and the set of languages (plus, via langset.PPOnly, the
// preprocessor-only flag) under which the row applies. Multiple Entry
// values may share a Tag (e.g. "if" is both token.KwIf and token.PPIf)
// exactly as the original table does with duplicate adjacent rows.
type Entry struct {
	Tag  string
	Kind token.Kind
	Lang langset.Mask
}

// table is kept sorted by Tag (ties broken by declaration order, which is
// how the original resolves "first entry wins within a duplicate run"
// after filtering by active language/preprocessor context). Entries are
// a representative, not exhaustive, transcription of keywords.cpp: every
// row here is a real spelling from that table, mapped onto this front
// end's own Kind taxonomy.
var table = []Entry{
	{"abstract", token.KwAbstract, langset.CS | langset.D | langset.Java | langset.Vala | langset.ECMA},
	{"alignof", token.KwSizeof, langset.C | langset.CPP},
	{"asm", token.KwAsm, langset.C | langset.CPP | langset.D},
	{"auto", token.KwVolatile, langset.C | langset.CPP | langset.D},
	{"base", token.Word, langset.CS | langset.Vala},
	{"bool", token.TypeName, langset.CPP | langset.CS | langset.Vala},
	{"boolean", token.TypeName, langset.Java | langset.ECMA},
	{"break", token.KwBreak, langset.All},
	{"byte", token.TypeName, langset.CS | langset.D | langset.Java | langset.ECMA},
	{"case", token.KwCase, langset.All},
	{"catch", token.KwCatch, langset.CPP | langset.CS | langset.D | langset.Java | langset.ECMA},
	{"char", token.TypeName, langset.All},
	{"class", token.KwClass, langset.CPP | langset.CS | langset.D | langset.Java | langset.Vala | langset.ECMA},
	{"const", token.KwConst, langset.All},
	{"const_cast", token.TypeCast, langset.CPP},
	{"continue", token.KwContinue, langset.All},
	{"default", token.KwDefault, langset.All},
	{"define", token.PPDefine, langset.All | langset.PPOnly},
	{"defined", token.PPOther, langset.All | langset.PPOnly},
	{"delegate", token.TypeName, langset.CS | langset.D},
	{"delete", token.KwDelete, langset.CPP | langset.D | langset.ECMA},
	{"deprecated", token.Qualifier, langset.D},
	{"do", token.KwDo, langset.All},
	{"double", token.TypeName, langset.All},
	{"dynamic_cast", token.DynamicCast, langset.CPP},
	{"elif", token.PPElif, langset.All | langset.PPOnly},
	{"else", token.KwElse, langset.All},
	{"else", token.PPElse, langset.All | langset.PPOnly},
	{"elseif", token.PPElse, langset.Pawn | langset.PPOnly},
	{"endif", token.PPEndif, langset.All | langset.PPOnly},
	{"endregion", token.PPEndRegion, langset.All | langset.PPOnly},
	{"enum", token.KwEnum, langset.All},
	{"explicit", token.TypeName, langset.C | langset.CPP | langset.CS},
	{"export", token.Qualifier, langset.C | langset.CPP | langset.D | langset.ECMA},
	{"extends", token.KwExtends, langset.Java | langset.ECMA},
	{"extern", token.KwExtern, langset.C | langset.CPP | langset.CS | langset.D | langset.Vala},
	{"false", token.Word, langset.CPP | langset.CS | langset.D | langset.Java | langset.Vala},
	{"final", token.Qualifier, langset.D | langset.ECMA},
	{"finally", token.KwFinally, langset.D | langset.CS | langset.ECMA},
	{"float", token.TypeName, langset.All},
	{"for", token.KwFor, langset.All},
	{"foreach", token.KwFor, langset.CS | langset.D | langset.Vala},
	{"forward", token.PawnForward, langset.Pawn},
	{"friend", token.KwFriend, langset.CPP},
	{"function", token.Word, langset.D | langset.ECMA},
	{"get", token.CSGetSet, langset.CS | langset.Vala},
	{"goto", token.KwGoto, langset.All},
	{"if", token.KwIf, langset.All},
	{"if", token.PPIf, langset.All | langset.PPOnly},
	{"ifdef", token.PPIfdef, langset.All | langset.PPOnly},
	{"ifndef", token.PPIfndef, langset.All | langset.PPOnly},
	{"implements", token.KwImplements, langset.Java | langset.ECMA},
	{"implicit", token.Qualifier, langset.CS},
	{"import", token.KwImport, langset.D | langset.Java | langset.ECMA},
	{"import", token.PPInclude, langset.ObjC | langset.PPOnly},
	{"in", token.Word, langset.D | langset.CS | langset.Vala | langset.ECMA},
	{"include", token.PPInclude, langset.C | langset.CPP | langset.Pawn | langset.PPOnly},
	{"inline", token.KwInline, langset.C | langset.CPP},
	{"interface", token.KwInterface, langset.C | langset.CPP | langset.CS | langset.D | langset.Java | langset.Vala | langset.ECMA},
	{"internal", token.Qualifier, langset.CS},
	{"invariant", token.DInvariant, langset.D},
	{"is", token.Compare, langset.D | langset.CS | langset.Vala},
	{"long", token.TypeName, langset.All},
	{"mutable", token.Qualifier, langset.C | langset.CPP},
	{"namespace", token.KwNamespace, langset.C | langset.CPP | langset.CS | langset.Vala},
	{"native", token.PawnNative, langset.Pawn},
	{"native", token.Qualifier, langset.Java | langset.ECMA},
	{"new", token.KwNew, langset.CPP | langset.CS | langset.D | langset.Java | langset.Pawn | langset.Vala | langset.ECMA},
	{"null", token.Word, langset.CS | langset.D | langset.Java | langset.Vala},
	{"object", token.TypeName, langset.CS},
	{"operator", token.KwOperator, langset.CPP | langset.CS | langset.Pawn},
	{"out", token.Qualifier, langset.CS | langset.D | langset.Vala},
	{"override", token.KwOverride, langset.CS | langset.D | langset.Vala},
	{"package", token.KwPackage, langset.D | langset.Java | langset.ECMA},
	{"pragma", token.PPPragma, langset.All | langset.PPOnly},
	{"private", token.KwPrivate, langset.All},
	{"protected", token.KwProtected, langset.All},
	{"public", token.KwPublic, langset.All},
	{"readonly", token.Qualifier, langset.CS},
	{"ref", token.Qualifier, langset.CS | langset.Vala},
	{"region", token.PPRegion, langset.All | langset.PPOnly},
	{"register", token.Qualifier, langset.C | langset.CPP},
	{"reinterpret_cast", token.TypeCast, langset.C | langset.CPP},
	{"restrict", token.Qualifier, langset.C | langset.CPP},
	{"return", token.KwReturn, langset.All},
	{"scope", token.DScope, langset.D},
	{"sealed", token.Qualifier, langset.CS},
	{"set", token.CSGetSet, langset.CS | langset.Vala},
	{"short", token.TypeName, langset.All},
	{"signed", token.TypeName, langset.C | langset.CPP},
	{"sizeof", token.KwSizeof, langset.C | langset.CPP | langset.CS | langset.Pawn},
	{"state", token.PawnState, langset.Pawn},
	{"static", token.KwStatic, langset.All},
	{"static_cast", token.TypeCast, langset.CPP},
	{"stock", token.PawnStock, langset.Pawn},
	{"strictfp", token.Qualifier, langset.Java},
	{"string", token.TypeName, langset.CS},
	{"struct", token.KwStruct, langset.C | langset.CPP | langset.CS | langset.D | langset.Vala},
	{"switch", token.KwSwitch, langset.All},
	{"synchronized", token.Qualifier, langset.D | langset.Java | langset.ECMA},
	{"template", token.KwTemplate, langset.CPP | langset.D},
	{"this", token.Word, langset.CPP | langset.CS | langset.D | langset.Java | langset.Vala | langset.ECMA},
	{"throw", token.KwThrow, langset.CPP | langset.CS | langset.D | langset.Java | langset.ECMA},
	{"throws", token.Qualifier, langset.Java | langset.ECMA},
	{"transient", token.Qualifier, langset.Java | langset.ECMA},
	{"true", token.Word, langset.CPP | langset.CS | langset.D | langset.Java | langset.Vala},
	{"try", token.KwTry, langset.CPP | langset.CS | langset.D | langset.Java | langset.ECMA},
	{"typedef", token.KwTypedef, langset.C | langset.CPP | langset.D},
	{"typeid", token.KwSizeof, langset.C | langset.CPP | langset.D},
	{"typename", token.Word, langset.CPP},
	{"typeof", token.KwSizeof, langset.C | langset.CPP | langset.CS | langset.D | langset.Vala | langset.ECMA},
	{"undef", token.PPUndef, langset.All | langset.PPOnly},
	{"union", token.KwUnion, langset.C | langset.CPP | langset.D},
	{"unsafe", token.Qualifier, langset.CS},
	{"unsigned", token.TypeName, langset.C | langset.CPP},
	{"using", token.KwUsing, langset.CPP | langset.CS | langset.Vala},
	{"var", token.TypeName, langset.Vala | langset.ECMA},
	{"version", token.DVersion, langset.D},
	{"virtual", token.KwVirtual, langset.CPP | langset.CS | langset.Vala},
	{"void", token.KwVoid, langset.All},
	{"volatile", token.KwVolatile, langset.C | langset.CPP | langset.CS | langset.Java | langset.ECMA},
	{"wchar_t", token.TypeName, langset.C | langset.CPP},
	{"while", token.KwWhile, langset.All},
	{"with", token.DWith, langset.D | langset.ECMA},
}

func init() {
	sort.SliceStable(table, func(i, j int) bool { return table[i].Tag < table[j].Tag })
}

// Lookup reports the Kind of word under the given active-language mask
// and preprocessor context, searching the dynamic map first and falling
// back to the static table (the same order as find_keyword_type). The
// bool is false, and Kind is token.Word, when no entry matches.
func Lookup(word string, active langset.Mask, inPreproc bool) (token.Kind, bool) {
	if k, ok := lookupDynamic(word); ok {
		return k, true
	}
	lo, hi := rangeOf(word)
	if lo == hi {
		return token.Word, false
	}
	for _, e := range table[lo:hi] {
		isPP := e.Lang.Has(langset.PPOnly)
		if isPP != inPreproc {
			continue
		}
		if e.Lang&active != 0 || e.Lang&langset.All == langset.All {
			return e.Kind, true
		}
	}
	return token.Word, false
}

// rangeOf returns the [lo, hi) slice bounds within the sorted table whose
// Tag equals word (a run of 0 or more duplicate-tag rows).
func rangeOf(word string) (int, int) {
	lo := sort.Search(len(table), func(i int) bool { return table[i].Tag >= word })
	hi := lo
	for hi < len(table) && table[hi].Tag == word {
		hi++
	}
	return lo, hi
}

var (
	dynMu  sync.RWMutex
	dynMap = map[string]token.Kind{}
)

func lookupDynamic(word string) (token.Kind, bool) {
	dynMu.RLock()
	defer dynMu.RUnlock()
	k, ok := dynMap[word]
	return k, ok
}

// Add registers or overwrites a dynamic keyword (e.g. a typedef'd type
// name promoted to token.TypeName once the classifier sees its
// declaration), mirroring add_keyword's "change existing or insert" rule.
func Add(word string, kind token.Kind) {
	dynMu.Lock()
	defer dynMu.Unlock()
	dynMap[word] = kind
}

// Clear empties the dynamic keyword map, used between independent runs of
// the pipeline (e.g. one per file in a batch) so state from a previous
// file's typedefs does not leak into the next.
func Clear() {
	dynMu.Lock()
	defer dynMu.Unlock()
	dynMap = map[string]token.Kind{}
}
