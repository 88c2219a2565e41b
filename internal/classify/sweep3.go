package classify

import "github.com/uncrustify-go/frontend/pkg/token"

// sweepVariables performs the third classification sweep: at each statement start
// that begins with a type-like head, collect the leading type run as
// VAR_TYPE, tag the first declared name VAR_1ST_DEF, and walk forward
// over any further comma-separated names marking them VAR_DEF, stopping
// at the terminating ';'.
func (w *Walker) sweepVariables() {
	for r := w.lst.Head(); r != token.NoRef; r = w.lst.Next(r) {
		t := w.lst.At(r)
		if !t.Flags.Has(token.FlagStmtStart) || t.Flags.Has(token.FlagInEnum) {
			continue
		}
		if !w.canStartVarDecl(*t) {
			continue
		}
		w.classifyVarDecl(r)
	}
}

func (w *Walker) canStartVarDecl(t token.Token) bool {
	switch t.Kind {
	case token.TypeName, token.Qualifier, token.KwVoid, token.KwConst, token.KwVolatile,
		token.KwStatic, token.KwInline, token.KwExtern:
		return true
	case token.Word:
		return w.typeNames[t.Lexeme()]
	default:
		return false
	}
}

// classifyVarDecl collects the type-run starting at headRef and, once a
// plain WORD ends that run, hands off to walkRemainingNames. It also
// normalizes a DEREF/ADDR mistag sweep 1 can leave on a pointer/reference
// decorator that is actually part of the declaration's type (sweep 1
// only sees FlagExprStart and has no notion of "this is a declaration",
// so "int *p" taken alone looks like a dereference of p to sweep 1's
// neighbor rule).
func (w *Walker) classifyVarDecl(headRef token.Ref) {
	r := headRef
	sawType := false
	for {
		t := w.lst.At(r)
		switch {
		case t.Kind == token.TypeName || t.Kind == token.Qualifier || t.Kind == token.KwVoid ||
			t.Kind == token.KwConst || t.Kind == token.KwVolatile || t.Kind == token.KwStatic ||
			t.Kind == token.KwInline || t.Kind == token.KwExtern:
			t.Flags = t.Flags.Set(token.FlagVarType)
			sawType = true

		case t.Kind == token.Word && w.typeNames[t.Lexeme()]:
			t.Kind = token.TypeName
			t.Flags = t.Flags.Set(token.FlagVarType)
			sawType = true

		case t.Kind == token.Member && t.Lexeme() == "::":
			t.Flags = t.Flags.Set(token.FlagVarType)

		case t.Kind == token.PtrType || t.Kind == token.Byref:
			t.Flags = t.Flags.Set(token.FlagVarType)

		case t.Kind == token.Deref || t.Kind == token.Addr:
			if t.Kind == token.Deref {
				t.Kind = token.PtrType
			} else {
				t.Kind = token.Byref
			}
			t.Flags = t.Flags.Set(token.FlagVarType)

		case t.Kind == token.Word:
			if !sawType {
				return
			}
			w.markVarName(r, true)
			w.walkRemainingNames(r)
			return

		default:
			return
		}

		nr, _ := w.nextCode(r)
		if nr == token.NoRef {
			return
		}
		r = nr
	}
}

func (w *Walker) markVarName(r token.Ref, first bool) {
	t := w.lst.At(r)
	if first {
		t.Flags = t.Flags.Set(token.FlagVar1stDef | token.FlagVarDef)
	} else {
		t.Flags = t.Flags.Set(token.FlagVarDef)
	}
}

// walkRemainingNames continues past the first declared name to the
// terminating ';', skipping over any "= initializer" expression and
// bracketed/parenthesized content (so a function-call or array-size
// initializer's own commas are never mistaken for declarator
// separators), and tags the WORD immediately after a top-level ',' as a
// further VAR_DEF. A '*'/'&' appearing where a further name is expected
// is retagged PTR_TYPE/BYREF for the same reason classifyVarDecl
// normalizes the first one.
func (w *Walker) walkRemainingNames(nameRef token.Ref) {
	r := nameRef
	expectName := false
	depth := 0
	for {
		nr, nt := w.nextCode(r)
		if nr == token.NoRef {
			return
		}
		t := w.lst.At(nr)
		switch {
		case t.Kind.Role() == token.Open:
			depth++
		case t.Kind.Role() == token.Close:
			depth--
		case depth > 0:
			// inside an array-size or call expression; skip.
		case isSemicolon(nt):
			return
		case isComma(nt):
			expectName = true
		case nt.Kind == token.Assign:
			r = w.skipInitializer(nr)
			expectName = true
			continue
		case expectName && ((nt.Kind == token.Arith && nt.Lexeme() == "*") || nt.Kind == token.Addr || nt.Kind == token.Deref):
			if nt.Kind == token.Addr {
				t.Kind = token.Byref
			} else {
				t.Kind = token.PtrType
			}
		case expectName && nt.Kind == token.Word:
			w.markVarName(nr, false)
			expectName = false
		}
		r = nr
	}
}

// skipInitializer advances from an '=' token past its initializer
// expression, stopping just before the next top-level ','/';' so
// walkRemainingNames resumes scanning for further declared names there.
func (w *Walker) skipInitializer(assignRef token.Ref) token.Ref {
	r := assignRef
	depth := 0
	for {
		nr, nt := w.nextCode(r)
		if nr == token.NoRef {
			return r
		}
		switch {
		case nt.Kind.Role() == token.Open:
			depth++
		case nt.Kind.Role() == token.Close:
			depth--
		case depth == 0 && (isSemicolon(nt) || isComma(nt)):
			return r
		}
		r = nr
	}
}
