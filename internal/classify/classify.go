// Package classify implements the third and largest pipeline stage: the
// context-sensitive labeling pass that disambiguates tokens the lexer and
// frame pass could only classify generically (an AngleOpen that is really
// a COMPARE, an Arith that is really a DEREF or PTR_TYPE, a WORD that
// heads a function definition vs. a function call vs. a constructor-style
// variable declaration) and recognizes the language-specific constructs
// this handles (templates, lambdas, Objective-C interfaces and
// messages, C# properties, Java lambdas, Pawn's virtual semicolons, SQL
// embedded regions, macro wrappers).
//
// Three ordered sweeps run over the already brace/level-annotated list
// produced by internal/frame, followed by a set of independent
// language-specific handlers keyed on distinctive tokens. Every sweep is
// best-effort: if a hypothesis cannot be confirmed, the token is left with
// its prior Kind rather than guessed at — no sweep here ever reports a
// diag.Warning or diag.Fatal of its own.
package classify

import (
	"github.com/uncrustify-go/frontend/internal/diag"
	"github.com/uncrustify-go/frontend/pkg/langset"
	"github.com/uncrustify-go/frontend/pkg/token"
)

// Walker threads the per-file state (the active class/struct name stack
// used to recognize constructors, the set of names promoted to TYPE by a
// typedef/template/class declaration) through the sweeps and handlers. It
// is the classifier's counterpart to internal/frame's walker: one value
// constructed per Run, never reused across files.
type Walker struct {
	lst    *token.List
	langs  langset.Mask
	diags  *diag.Bag
	source string
	file   string

	// classNames is the stack of enclosing class/struct names, innermost
	// last, used to recognize a same-named FuncDef as a constructor.
	classNames []string

	// typeNames collects identifiers promoted to TYPE by a typedef,
	// class/struct/enum/template declaration, so a later sweep recognizes
	// them as type heads even though the keyword table has never heard
	// of them.
	typeNames map[string]bool
}

// Run performs classification over lst: sweep 1 (local contextual fixes),
// sweep 2 (function/variable/typedef recognition), sweep 3 (variable
// declarations), then the independent language-specific handlers.
func Run(lst *token.List, langs langset.Mask, diags *diag.Bag, source, file string) {
	w := &Walker{
		lst: lst, langs: langs, diags: diags, source: source, file: file,
		typeNames: make(map[string]bool),
	}
	w.sweepLocalFixes()
	w.sweepFunctions()
	w.sweepVariables()
	w.sweepLanguageHandlers()
}

// --- ref-based traversal helpers shared by every sweep ---
//
// These walk the arena directly via List.Next/Prev/At rather than a
// Cursor, since most classifier work starts from a Ref already located by
// an outer loop (the token under a cursor, the open bracket of a pair)
// and needs to look forward or backward from that specific point.

// prevCode returns the Ref and Token of the nearest non-trivia,
// non-ignored token before r, or (NoRef, EOF) if none exists.
func (w *Walker) prevCode(r token.Ref) (token.Ref, token.Token) {
	for p := w.lst.Prev(r); p != token.NoRef; p = w.lst.Prev(p) {
		t := w.lst.At(p)
		if !t.Kind.IsTrivia() && t.Kind != token.Ignored {
			return p, *t
		}
	}
	return token.NoRef, token.Token{Kind: token.EOF}
}

// nextCode returns the Ref and Token of the nearest non-trivia,
// non-ignored token after r, or (NoRef, EOF) if none exists.
func (w *Walker) nextCode(r token.Ref) (token.Ref, token.Token) {
	for n := w.lst.Next(r); n != token.NoRef; n = w.lst.Next(n) {
		t := w.lst.At(n)
		if !t.Kind.IsTrivia() && t.Kind != token.Ignored {
			return n, *t
		}
	}
	return token.NoRef, token.Token{Kind: token.EOF}
}

// matchClose finds openRef's matching close bracket by same-kind depth
// counting (so an unrelated nested bracket family never perturbs the
// count): the Nth token whose Kind equals openRef's Kind increases depth,
// the Nth token of the paired close Kind decreases it, and the close that
// brings depth back to 0 is the match. Returns NoRef, false if openRef is
// not a bracket-open or no match is found before the list ends.
func (w *Walker) matchClose(openRef token.Ref) (token.Ref, bool) {
	open := w.lst.At(openRef)
	if open.Kind.Role() != token.Open {
		return token.NoRef, false
	}
	closeKind, _ := open.Kind.Pair()
	depth := 1
	for r := w.lst.Next(openRef); r != token.NoRef; r = w.lst.Next(r) {
		switch w.lst.At(r).Kind {
		case open.Kind:
			depth++
		case closeKind:
			depth--
			if depth == 0 {
				return r, true
			}
		}
	}
	return token.NoRef, false
}

// matchOpen is matchClose run backward: given a close bracket Ref, finds
// its matching open by same-kind depth counting.
func (w *Walker) matchOpen(closeRef token.Ref) (token.Ref, bool) {
	close := w.lst.At(closeRef)
	if close.Kind.Role() != token.Close {
		return token.NoRef, false
	}
	openKind, _ := close.Kind.Pair()
	depth := 1
	for r := w.lst.Prev(closeRef); r != token.NoRef; r = w.lst.Prev(r) {
		switch w.lst.At(r).Kind {
		case close.Kind:
			depth++
		case openKind:
			depth--
			if depth == 0 {
				return r, true
			}
		}
	}
	return token.NoRef, false
}

// forEachInRange calls fn for every token strictly between openRef and
// closeRef, in order.
func (w *Walker) forEachInRange(openRef, closeRef token.Ref, fn func(r token.Ref, t *token.Token)) {
	for r := w.lst.Next(openRef); r != token.NoRef && r != closeRef; r = w.lst.Next(r) {
		fn(r, w.lst.At(r))
	}
}

// flagBetween ORs flag onto every token strictly between openRef and
// closeRef.
func (w *Walker) flagBetween(openRef, closeRef token.Ref, flag token.Flags) {
	w.forEachInRange(openRef, closeRef, func(_ token.Ref, t *token.Token) {
		t.Flags = t.Flags.Set(flag)
	})
}

// isSemicolon reports whether t is the generic Punctuator ';' the lexer
// emits (no dedicated Kind exists for it; internal/frame uses the same
// test).
func isSemicolon(t token.Token) bool {
	return t.Kind == token.Punctuator && t.Lexeme() == ";"
}

func isComma(t token.Token) bool {
	return t.Kind == token.Punctuator && t.Lexeme() == ","
}

// isTypeHead reports whether t is a token that can begin (or continue) a
// type name in a declaration/cast context: a real TypeName/Qualifier, a
// keyword-table WORD promoted to TYPE by an earlier typedef/class/enum
// sighting, or one of the built-in type-ish keywords the table tags
// loosely as qualifiers (const/volatile/static/inline stay tagged as
// types here rather than as a dedicated qualifier kind; see DESIGN.md).
func (w *Walker) isTypeHead(t token.Token) bool {
	switch t.Kind {
	case token.TypeName, token.Qualifier, token.KwVoid, token.KwConst, token.KwVolatile,
		token.KwStatic, token.KwInline, token.VarType, token.PtrType, token.Byref:
		return true
	case token.Word:
		return w.typeNames[t.Lexeme()]
	default:
		return false
	}
}

// markType promotes word (by spelling) to a recognized type name for the
// remainder of this file's classification — the dynamic counterpart of a
// typedef'd/class/struct/enum-declared/template-parameter name.
func (w *Walker) markType(word string) {
	if word != "" {
		w.typeNames[word] = true
	}
}
