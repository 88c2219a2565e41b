package classify

import "github.com/uncrustify-go/frontend/pkg/token"

// sweepFunctions performs the second classification sweep: for each WORD
// immediately before an FPAREN_OPEN (frame.go already routed every
// call/declaration paren there), decide FUNC_DEF / FUNC_PROTO /
// FUNC_CALL / FUNC_CTOR_VAR / FUNC_CLASS_DEF / FUNC_CLASS_PROTO, fix up
// the parameter list, and — as an independent second step over the same
// list — recognize the "paren pair immediately followed by another paren
// pair" function-pointer/function-type shape.
func (w *Walker) sweepFunctions() {
	for r := w.lst.Head(); r != token.NoRef; r = w.lst.Next(r) {
		t := w.lst.At(r)
		if t.Kind != token.Word {
			continue
		}
		nr, next := w.nextCode(r)
		if next.Kind != token.FParenOpen {
			continue
		}
		w.classifyFuncName(r, t, nr)
	}
	w.classifyFuncPointers()
}

// classifyFuncName implements the three-step recognition of §4.5 sweep 2
// item 1-2 for the WORD at nameRef, whose very next code token is the
// FPAREN_OPEN at parenRef.
func (w *Walker) classifyFuncName(nameRef token.Ref, name *token.Token, parenRef token.Ref) {
	headRef, hasType := w.findReturnTypeHead(nameRef)
	closeRef, ok := w.matchClose(parenRef)
	if !ok {
		return
	}
	_, after := w.nextCode(closeRef)
	isCtorName := w.isCurrentClassName(name.Lexeme())

	looksDef := after.Kind == token.BraceOpen || (after.Kind == token.Colon && isCtorName)
	looksProto := isSemicolon(after)

	switch {
	case !hasType && !isCtorName && !looksDef:
		name.Kind = token.FuncCall
		name.Flags = name.Flags.Set(token.FlagInFuncCall)
		w.tagFuncParens(parenRef, closeRef, token.FuncCall)

	case looksDef:
		if isCtorName {
			name.Kind = token.FuncClassDef
		} else {
			name.Kind = token.FuncDef
		}
		name.Flags = name.Flags.Set(token.FlagInFuncDef)
		w.tagFuncParens(parenRef, closeRef, token.FuncDef)
		w.tagReturnType(headRef, nameRef, token.FuncDef)
		w.fixFuncDefParams(parenRef, closeRef)

	case looksProto:
		if w.looksLikeCtorVar(parenRef, closeRef) {
			name.Kind = token.FuncCtorVar
			name.Flags = name.Flags.Set(token.FlagVar1stDef)
			return
		}
		if isCtorName {
			name.Kind = token.FuncClassProto
		} else {
			name.Kind = token.FuncProto
		}
		w.tagFuncParens(parenRef, closeRef, token.FuncProto)
		w.tagReturnType(headRef, nameRef, token.FuncProto)
		w.fixFuncDefParams(parenRef, closeRef)

	default:
		if w.looksLikeCtorVar(parenRef, closeRef) {
			name.Kind = token.FuncCtorVar
			name.Flags = name.Flags.Set(token.FlagVar1stDef)
		} else {
			name.Kind = token.FuncCall
			w.tagFuncParens(parenRef, closeRef, token.FuncCall)
		}
	}
}

func (w *Walker) isCurrentClassName(name string) bool {
	if len(w.classNames) == 0 {
		return false
	}
	return w.classNames[len(w.classNames)-1] == name
}

// findReturnTypeHead walks left from nameRef, skipping pointer/ref/
// qualifier/template decorators exactly as §4.5 sweep 2 item 1 directs,
// and reports the Ref of the token it stopped on when that token is a
// plausible type head. Jumping an entire "<...>" template-argument list
// in one step (rather than token by token) keeps "vector<int> foo(" from
// being rejected by the first stray AngleOpen/Close it meets along the
// way.
func (w *Walker) findReturnTypeHead(nameRef token.Ref) (token.Ref, bool) {
	r := nameRef
	for {
		pr, pt := w.prevCode(r)
		if pr == token.NoRef {
			return token.NoRef, false
		}
		switch pt.Kind {
		case token.AngleClose:
			if openRef, ok := w.matchOpen(pr); ok {
				r = openRef
				continue
			}
			return token.NoRef, false
		case token.PtrType, token.Byref, token.Qualifier, token.KwStatic, token.KwInline,
			token.KwVirtual, token.KwOverride, token.KwAbstract, token.KwExtern,
			token.KwConst, token.KwVolatile, token.KwFriend:
			r = pr
			continue
		case token.Member:
			if pt.Lexeme() == "::" {
				r = pr
				continue
			}
			return token.NoRef, false
		case token.TypeName, token.KwVoid:
			return pr, true
		case token.Word:
			return pr, true
		default:
			return token.NoRef, false
		}
	}
}

// tagReturnType attributes every token from headRef (inclusive) up to
// nameRef (exclusive) with parent tag and FlagVarType, per §4.5 sweep 2
// item 2's "attribute the return-type tokens with the same parent."
func (w *Walker) tagReturnType(headRef, nameRef token.Ref, tag token.Kind) {
	if headRef == token.NoRef {
		return
	}
	for r := headRef; r != token.NoRef && r != nameRef; r = w.lst.Next(r) {
		t := w.lst.At(r)
		if t.Kind.IsTrivia() || t.Kind == token.Ignored {
			continue
		}
		t.ParentKind = tag
		t.Flags = t.Flags.Set(token.FlagVarType)
	}
}

func (w *Walker) tagFuncParens(parenRef, closeRef token.Ref, tag token.Kind) {
	w.lst.At(parenRef).ParentKind = tag
	w.lst.At(closeRef).ParentKind = tag
}

// looksLikeCtorVar implements "If the candidate is at function-body scope
// and its parentheses contain items that cannot be prototype parameters
// (numeric literals, string literals, bare &x, function calls), it is
// downgraded to a constructor-style variable declaration."
func (w *Walker) looksLikeCtorVar(openRef, closeRef token.Ref) bool {
	if w.lst.At(openRef).BraceLevel == 0 {
		return false
	}
	found := false
	w.forEachInRange(openRef, closeRef, func(_ token.Ref, t *token.Token) {
		switch t.Kind {
		case token.Number, token.NumberFP, token.String, token.StringMulti, token.Char, token.FuncCall:
			found = true
		}
	})
	return found
}

// fixFuncDefParams implements §4.5 sweep 2 item 3: split the parameter
// list on top-level commas and fix up each parameter independently.
func (w *Walker) fixFuncDefParams(openRef, closeRef token.Ref) {
	depth := 0
	segStart := w.lst.Next(openRef)
	for r := segStart; r != closeRef && r != token.NoRef; r = w.lst.Next(r) {
		t := w.lst.At(r)
		switch {
		case t.Kind.Role() == token.Open:
			depth++
		case t.Kind.Role() == token.Close:
			depth--
		case isComma(*t) && depth == 0:
			w.fixOneParam(segStart, r)
			segStart = w.lst.Next(r)
		}
	}
	if segStart != closeRef {
		w.fixOneParam(segStart, closeRef)
	}
}

// fixOneParam retags a single comma-delimited parameter: its pointer/ref
// decorators become PTR_TYPE/BYREF, its leading WORD(s) become TYPE, and
// its final WORD (the parameter name, if more than one WORD is present)
// gets VAR_1ST_DEF|VAR_DEF.
func (w *Walker) fixOneParam(start, end token.Ref) {
	var words []token.Ref
	for r := start; r != end && r != token.NoRef; r = w.lst.Next(r) {
		t := w.lst.At(r)
		if t.Kind.IsTrivia() || t.Kind == token.Ignored {
			continue
		}
		switch {
		case t.Kind == token.Word:
			words = append(words, r)
		case t.Kind == token.Arith && t.Lexeme() == "*":
			t.Kind = token.PtrType
		case t.Kind == token.Addr:
			t.Kind = token.Byref
		}
	}
	if len(words) == 0 {
		return
	}
	if len(words) == 1 {
		t := w.lst.At(words[0])
		t.Kind = token.TypeName
		w.markType(t.Lexeme())
		return
	}
	nameRef := words[len(words)-1]
	name := w.lst.At(nameRef)
	name.Flags = name.Flags.Set(token.FlagVar1stDef | token.FlagVarDef)
	for _, r := range words[:len(words)-1] {
		t := w.lst.At(r)
		t.Kind = token.TypeName
		t.Flags = t.Flags.Set(token.FlagVarType)
		w.markType(t.Lexeme())
	}
}

// classifyFuncPointers implements §4.5 sweep 2 item 4: "A paren pair
// immediately followed by another paren pair indicates a function-pointer
// or function-type": "void (*name)(args)".
func (w *Walker) classifyFuncPointers() {
	for r := w.lst.Head(); r != token.NoRef; r = w.lst.Next(r) {
		t := w.lst.At(r)
		if t.Kind != token.ParenOpen || t.ParentKind == token.TypeCast {
			continue
		}
		w.tryFuncPointer(r, t)
	}
}

func (w *Walker) tryFuncPointer(openRef token.Ref, open *token.Token) {
	closeRef, ok := w.matchClose(openRef)
	if !ok {
		return
	}
	starRef, star := w.nextCode(openRef)
	if star.Lexeme() != "*" {
		return
	}
	switch star.Kind {
	case token.Arith, token.Deref, token.PtrType:
	default:
		return
	}
	nameRef, name := w.nextCode(starRef)
	if name.Kind != token.Word {
		return
	}
	if afterNameRef, _ := w.nextCode(nameRef); afterNameRef != closeRef {
		return
	}
	outerOpenRef, outerOpen := w.nextCode(closeRef)
	if outerOpen.Kind != token.ParenOpen && outerOpen.Kind != token.FParenOpen {
		return
	}
	outerCloseRef, ok := w.matchClose(outerOpenRef)
	if !ok {
		return
	}

	open.Kind = token.TParenOpen
	w.lst.At(closeRef).Kind = token.TParenClose
	w.lst.At(starRef).Kind = token.PtrType
	nameTok := w.lst.At(nameRef)
	nameTok.Kind = token.FuncTypeVar
	nameTok.Flags = nameTok.Flags.Set(token.FlagVar1stDef)

	outer := w.lst.At(outerOpenRef)
	outer.Kind = token.FParenOpen
	outer.ParentKind = token.FuncTypeVar
	outerClose := w.lst.At(outerCloseRef)
	outerClose.Kind = token.FParenClose
	outerClose.ParentKind = token.FuncTypeVar
	w.fixFuncDefParams(outerOpenRef, outerCloseRef)
}
