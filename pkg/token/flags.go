package token

// Flags is a bitset of context flags carried on every Token. Names mirror
// the flag list below.
type Flags uint64

const (
	FlagInPreproc Flags = 1 << iota
	FlagInStruct
	FlagInEnum
	FlagInClass
	FlagInTypedef
	FlagInTemplate
	FlagInFuncDef
	FlagInFuncCall
	FlagInConstArgs
	FlagInSParen
	FlagInFor
	FlagInArrayAssign
	FlagInOCMsg
	FlagStmtStart
	FlagExprStart
	FlagPunctuator
	FlagVar1st
	FlagVar1stDef
	FlagVarDef
	FlagVarType
	FlagVarInline
	FlagLValue
	FlagOneLiner
	FlagEmptyBody
	FlagDontIndent
	FlagInserted
	FlagAnchor
	FlagLongBlock
	FlagOCRType
	FlagOCAType
	FlagOCBoxed
)

// CopyFlags is the subset of flags that propagate from the anchor token to
// a token inserted next to it (e.g. a virtual brace inheriting IN_PREPROC
// and nesting context from its surrounding statement).
const CopyFlags = FlagInPreproc | FlagInStruct | FlagInEnum | FlagInClass |
	FlagInTypedef | FlagInTemplate | FlagInFuncDef | FlagInFor | FlagInOCMsg

// Has reports whether every bit of want is set in f.
func (f Flags) Has(want Flags) bool { return f&want == want }

// Any reports whether any bit of want is set in f.
func (f Flags) Any(want Flags) bool { return f&want != 0 }

// Set returns f with every bit of want set.
func (f Flags) Set(want Flags) Flags { return f | want }

// Clear returns f with every bit of want cleared.
func (f Flags) Clear(want Flags) Flags { return f &^ want }
