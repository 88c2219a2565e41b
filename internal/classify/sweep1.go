package classify

import "github.com/uncrustify-go/frontend/pkg/token"

// sweepLocalFixes performs the first classification sweep. It runs as four
// ordered passes rather than one, because each later pass's heuristic
// depends on a decision the previous one already made: cast detection
// needs enum/struct/class names already promoted to TYPE; angle-bracket
// resolution needs cast detection to have run first so a named cast's
// `<T>` is recognized the same way a template's is; unary-operator
// retagging needs to know whether the closing paren immediately before it
// ended a cast.
func (w *Walker) sweepLocalFixes() {
	w.classifyTypeDecls()
	w.classifyCasts()
	w.classifyAngles()
	w.classifyUnaryOps()
}

// classifyTypeDecls handles "enum/struct/union/class/namespace followed
// by an identifier reclassifies the identifier as TYPE; the following
// {...} gets the appropriate IN_* flag set on every enclosed token."
// Constructor recognition (sweep 2) consults the classNames stack this
// pass pushes/pops.
func (w *Walker) classifyTypeDecls() {
	for r := w.lst.Head(); r != token.NoRef; r = w.lst.Next(r) {
		t := w.lst.At(r)
		var flag token.Flags
		switch t.Kind {
		case token.KwStruct:
			flag = token.FlagInStruct
		case token.KwUnion:
			flag = token.FlagInStruct
		case token.KwEnum:
			flag = token.FlagInEnum
		case token.KwClass:
			flag = token.FlagInClass
		case token.KwNamespace:
			flag = 0
		default:
			continue
		}

		nameRef, name := w.nextCode(r)
		isClassLike := t.Kind == token.KwClass || t.Kind == token.KwStruct
		if name.Kind == token.Word {
			w.lst.At(nameRef).Kind = token.TypeName
			w.markType(name.Lexeme())
			if isClassLike {
				w.classNames = append(w.classNames, name.Lexeme())
			}
		} else if isClassLike {
			w.classNames = append(w.classNames, "")
		}

		braceRef, popClass := w.findDeclBrace(nameRef)
		if braceRef == token.NoRef {
			if isClassLike {
				w.popClassName()
			}
			continue
		}
		closeRef, ok := w.matchClose(braceRef)
		if ok {
			if flag != 0 {
				w.flagBetween(braceRef, closeRef, flag)
			}
			if t.Kind == token.KwClass || t.Kind == token.KwStruct {
				w.lst.At(braceRef).ParentKind = t.Kind
				w.lst.At(closeRef).ParentKind = t.Kind
			}
		}
		if isClassLike && popClass {
			w.popClassName()
		}
	}
}

func (w *Walker) popClassName() {
	if n := len(w.classNames); n > 0 {
		w.classNames = w.classNames[:n-1]
	}
}

// findDeclBrace scans forward from a type-declaration name (or the
// keyword itself, if anonymous) for the '{' that opens its body, bailing
// out at the first ';' (a forward declaration or prototype has no body)
// reports popClass=true whenever it DID search (so the caller always
// balances its classNames push with a pop), even when no brace is found.
func (w *Walker) findDeclBrace(from token.Ref) (token.Ref, bool) {
	r := from
	for {
		nr, t := w.nextCode(r)
		if nr == token.NoRef {
			return token.NoRef, true
		}
		switch t.Kind {
		case token.BraceOpen:
			return nr, true
		case token.Punctuator:
			if t.Lexeme() == ";" {
				return token.NoRef, true
			}
		}
		r = nr
	}
}

// classifyCasts implements "A `(` whose ... content is a comma-free
// type-like sequence becomes a C cast" plus the named C++ cast operators
// (dynamic_cast/static_cast/const_cast/reinterpret_cast, already tagged
// token.DynamicCast by the keyword table).
func (w *Walker) classifyCasts() {
	for r := w.lst.Head(); r != token.NoRef; r = w.lst.Next(r) {
		t := w.lst.At(r)
		switch t.Kind {
		case token.ParenOpen:
			w.tryCStyleCast(r, t)
		case token.DynamicCast:
			w.tryNamedCast(r)
		}
	}
}

// tryCStyleCast recognizes "(int)x", "(Foo *)x", "(unsigned long)x": a
// plain grouping paren (never a call — internal/frame's openParen already
// routed call parens to FParenOpen) whose content is a single, comma-free type-like
// token run, immediately followed by a token that can start an operand.
func (w *Walker) tryCStyleCast(openRef token.Ref, open *token.Token) {
	closeRef, ok := w.matchClose(openRef)
	if !ok {
		return
	}
	if !w.castContentIsType(openRef, closeRef) {
		return
	}
	_, after := w.nextCode(closeRef)
	if !canStartOperand(after) {
		return
	}
	open.ParentKind = token.TypeCast
	w.lst.At(closeRef).ParentKind = token.TypeCast
	w.retagCastContentTypes(openRef, closeRef)
}

// castContentIsType reports whether every token strictly between openRef
// and closeRef could plausibly be part of a type name: a type head, a
// pointer/reference decorator, "::", or an array-type "[]" — and the
// range is non-empty.
func (w *Walker) castContentIsType(openRef, closeRef token.Ref) bool {
	nonEmpty := false
	ok := true
	w.forEachInRange(openRef, closeRef, func(_ token.Ref, t *token.Token) {
		if t.Kind.IsTrivia() || t.Kind == token.Ignored {
			return
		}
		nonEmpty = true
		switch t.Kind {
		case token.TypeName, token.Qualifier, token.KwVoid, token.KwConst, token.KwVolatile,
			token.SquareOpen, token.SquareClose, token.TSquare:
		case token.Word:
			if !w.typeNames[t.Lexeme()] {
				ok = false
			}
		case token.Arith:
			if t.Lexeme() != "*" {
				ok = false
			}
		case token.Addr:
			// '&' as a reference decorator inside a cast's type.
		case token.Member:
			if t.Lexeme() != "::" {
				ok = false
			}
		default:
			ok = false
		}
	})
	return ok && nonEmpty
}

// retagCastContentTypes retags a bare WORD inside a confirmed cast's
// parens as TYPE, and its pointer/reference decorators.
func (w *Walker) retagCastContentTypes(openRef, closeRef token.Ref) {
	w.forEachInRange(openRef, closeRef, func(_ token.Ref, t *token.Token) {
		switch {
		case t.Kind == token.Word:
			t.Kind = token.TypeName
			w.markType(t.Lexeme())
		case t.Kind == token.Arith && t.Lexeme() == "*":
			t.Kind = token.PtrType
		case t.Kind == token.Addr:
			t.Kind = token.Byref
		}
	})
}

// canStartOperand reports whether t looks like the start of an
// expression operand, the signal that a preceding "(type)" run really was
// a cast rather than a parenthesized expression read on its own.
func canStartOperand(t token.Token) bool {
	switch t.Kind {
	case token.Word, token.Number, token.NumberFP, token.String, token.StringMulti,
		token.Char, token.ParenOpen, token.FParenOpen, token.Addr, token.KwSizeof,
		token.KwNew, token.IncDecBefore:
		return true
	case token.Arith:
		return t.Lexeme() == "*" || t.Lexeme() == "-" || t.Lexeme() == "+" || t.Lexeme() == "~"
	case token.Bool:
		return t.Lexeme() == "!"
	default:
		return false
	}
}

// tryNamedCast recognizes "dynamic_cast<T>(expr)" and its const/static/
// reinterpret_cast siblings: castRef is already Kind token.DynamicCast
// from the keyword table; this just retags the angle content as
// template-like types and the trailing call parens' parent as the cast.
func (w *Walker) tryNamedCast(castRef token.Ref) {
	angleRef, angle := w.nextCode(castRef)
	if angle.Kind != token.AngleOpen {
		return
	}
	closeRef, ok := w.matchClose(angleRef)
	if !ok {
		return
	}
	w.retagCastContentTypes(angleRef, closeRef)
	w.flagBetween(angleRef, closeRef, token.FlagInTemplate)

	pRef, p := w.nextCode(closeRef)
	if p.Kind == token.ParenOpen || p.Kind == token.FParenOpen {
		w.lst.At(pRef).ParentKind = token.TypeCast
	}
}

// classifyAngles implements "`<...>` is tentatively an angle pair only if
// the preceding identifier can head a template and the enclosed content
// contains only identifier/type/member/star/qualifier tokens (no `==`,
// no `;`, no unbalanced parens); else each `<` reverts to COMPARE."
func (w *Walker) classifyAngles() {
	for r := w.lst.Head(); r != token.NoRef; r = w.lst.Next(r) {
		if w.lst.At(r).Kind != token.AngleOpen {
			continue
		}
		w.resolveAngle(r)
	}
}

func (w *Walker) resolveAngle(openRef token.Ref) {
	open := w.lst.At(openRef)
	_, prev := w.prevCode(openRef)
	if !w.canHeadTemplate(prev) {
		open.Kind = token.Compare
		return
	}
	closeRef, ok := w.matchClose(openRef)
	if !ok || !w.angleContentValid(openRef, closeRef) {
		open.Kind = token.Compare
		return
	}
	w.flagBetween(openRef, closeRef, token.FlagInTemplate)
	w.retagAngleTypeArgs(openRef, closeRef)
}

// canHeadTemplate reports whether prev is a token that can introduce a
// template-instantiation angle bracket: an identifier (known or
// provisional — the content check is what actually decides), a type
// name, or a named-cast keyword.
func (w *Walker) canHeadTemplate(prev token.Token) bool {
	switch prev.Kind {
	case token.Word, token.TypeName, token.DynamicCast, token.KwTemplate:
		return true
	default:
		return false
	}
}

// angleContentValid rejects the compare-operator family, assignment,
// statement/block punctuation, and unbalanced parens inside the
// candidate angle range — any of which means this was never a template
// instantiation to begin with.
func (w *Walker) angleContentValid(openRef, closeRef token.Ref) bool {
	nonEmpty := false
	ok := true
	parenDepth := 0
	w.forEachInRange(openRef, closeRef, func(_ token.Ref, t *token.Token) {
		if t.Kind.IsTrivia() || t.Kind == token.Ignored {
			return
		}
		nonEmpty = true
		switch t.Kind {
		case token.ParenOpen, token.FParenOpen:
			parenDepth++
		case token.ParenClose, token.FParenClose:
			parenDepth--
			if parenDepth < 0 {
				ok = false
			}
		case token.Compare, token.Bool, token.Assign, token.BraceOpen, token.BraceClose,
			token.SParenOpen, token.SParenClose, token.KwIf, token.KwFor, token.KwWhile,
			token.KwSwitch, token.FatArrow:
			ok = false
		default:
			if isSemicolon(*t) {
				ok = false
			}
		}
	})
	return ok && nonEmpty && parenDepth == 0
}

// retagAngleTypeArgs retags a bare WORD type argument inside a confirmed
// template angle range as TYPE, matching sweep 1's "Enum/struct/... gets
// the following identifier reclassified" treatment applied here to
// template arguments instead of a declaration name.
func (w *Walker) retagAngleTypeArgs(openRef, closeRef token.Ref) {
	w.forEachInRange(openRef, closeRef, func(_ token.Ref, t *token.Token) {
		if t.Kind == token.Word && w.typeNames[t.Lexeme()] {
			t.Kind = token.TypeName
		}
	})
}

// classifyUnaryOps retags the ambiguous arithmetic-family punctuators
// ('*', '+', '-', '^', '&') by neighbor rule. '&' always lexes as
// token.Addr (punct.go); '*'/'+'/'-'/'^' lex as
// token.Arith; both land here so the same neighbor logic narrows them to
// PTR_TYPE/BYREF, DEREF/ADDR/POS/NEG, or back to plain ARITH.
func (w *Walker) classifyUnaryOps() {
	for r := w.lst.Head(); r != token.NoRef; r = w.lst.Next(r) {
		t := w.lst.At(r)
		lex := t.Lexeme()
		switch {
		case t.Kind == token.Addr, t.Kind == token.Arith && isAmbiguousArith(lex):
			w.retagAmbiguousOp(r, t, lex)
		case t.Kind == token.IncDecAfter && t.Flags.Has(token.FlagExprStart):
			t.Kind = token.IncDecBefore
		}
	}
}

func isAmbiguousArith(lex string) bool {
	switch lex {
	case "*", "+", "-", "^":
		return true
	default:
		return false
	}
}

func (w *Walker) retagAmbiguousOp(r token.Ref, t *token.Token, lex string) {
	byref := lex == "&"
	_, prev := w.prevCode(r)

	switch {
	case w.isTypeHead(prev) || (prev.Kind == token.Member && prev.Lexeme() == "::"):
		if byref {
			t.Kind = token.Byref
		} else {
			t.Kind = token.PtrType
		}
	case prev.Kind == token.ParenClose && prev.ParentKind == token.TypeCast:
		switch {
		case byref:
			t.Kind = token.Addr
		case lex == "*":
			t.Kind = token.Deref
		default:
			t.Kind = token.Arith
		}
	case t.Flags.Has(token.FlagExprStart):
		switch lex {
		case "*":
			t.Kind = token.Deref
		case "&":
			t.Kind = token.Addr
		case "+":
			t.Kind = token.Pos
		case "-":
			t.Kind = token.Neg
		default:
			t.Kind = token.Arith
		}
	default:
		t.Kind = token.Arith
	}
}
