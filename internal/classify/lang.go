package classify

import (
	"github.com/uncrustify-go/frontend/pkg/langset"
	"github.com/uncrustify-go/frontend/pkg/token"
)

// sweepLanguageHandlers runs the independent language-
// specific handlers. Unlike the three numbered sweeps above, these are
// not chained to one another — each is keyed on a distinctive token or
// token pair and runs only when its language is active.
func (w *Walker) sweepLanguageHandlers() {
	if w.langs.Has(langset.CPP) {
		w.classifyLambdas()
	}
	if w.langs.Has(langset.D) {
		w.classifyDTemplates()
	}
	if w.langs.Has(langset.ObjC) {
		w.classifyObjCAtKeywords()
		w.classifyObjCMessages()
		w.classifyObjCBlocks()
	}
	if w.langs.Has(langset.CS) {
		w.classifyCSAttributes()
		w.classifyCSProperties()
		w.classifyCSNullable()
	}
	if w.langs.Has(langset.Java) {
		w.classifyJavaAssert()
		w.classifyJavaLambdas()
	}
	if w.langs.Has(langset.Pawn) {
		w.classifyPawnVSemis()
	}
	w.classifySQLRegions()
	w.classifyFuncWraps()
}

// --- C++ lambdas ---

// classifyLambdas recognizes "[capture](params)[->type]{body}". The
// capture list is a '[' that cannot be an array subscript — it carries
// FlagExprStart, the same signal sweep 1's classifyUnaryOps already
// trusts to tell a dereference from a declaration. An empty capture
// list "[]" lexes as an ordinary adjacent SquareOpen/SquareClose pair
// (punct has no "[]" fusion rule), so matchClose handles it the same
// as any non-empty capture list.
func (w *Walker) classifyLambdas() {
	for r := w.lst.Head(); r != token.NoRef; r = w.lst.Next(r) {
		t := w.lst.At(r)
		if t.Kind == token.SquareOpen && t.Flags.Has(token.FlagExprStart) {
			w.tryLambda(r)
		}
	}
}

func (w *Walker) tryLambda(openRef token.Ref) bool {
	open := w.lst.At(openRef)
	closeRef, ok := w.matchClose(openRef)
	if !ok {
		return false
	}
	parenRef, paren := w.nextCode(closeRef)
	if paren.Kind != token.ParenOpen && paren.Kind != token.FParenOpen {
		return false
	}
	parenCloseRef, ok := w.matchClose(parenRef)
	if !ok {
		return false
	}

	open.ParentKind = token.FuncDef
	w.lst.At(closeRef).ParentKind = token.FuncDef
	w.lst.At(parenRef).Kind = token.FParenOpen
	w.lst.At(parenRef).ParentKind = token.FuncDef
	w.lst.At(parenCloseRef).Kind = token.FParenClose
	w.lst.At(parenCloseRef).ParentKind = token.FuncDef
	w.fixFuncDefParams(parenRef, parenCloseRef)

	after := parenCloseRef
	if arrowRef, arrow := w.nextCode(parenCloseRef); arrow.Kind == token.Arrow {
		if typeRef, typ := w.nextCode(arrowRef); typ.Kind == token.Word {
			w.lst.At(typeRef).Kind = token.TypeName
			w.markType(typ.Lexeme())
			after = typeRef
		}
	}
	if braceRef, brace := w.nextCode(after); brace.Kind == token.BraceOpen {
		w.lst.At(braceRef).ParentKind = token.FuncDef
		if bodyClose, ok := w.matchClose(braceRef); ok {
			w.lst.At(bodyClose).ParentKind = token.FuncDef
		}
	}
	return true
}

// --- D templates ---

// classifyDTemplates recognizes "template name(params) { body }": the
// parameter list is a bare comma-separated name list (D template
// parameters carry no declared type of their own the way a function
// parameter does), so every bare WORD there becomes a type parameter name,
// promoted to TYPE for the remainder of the file and specifically retagged
// everywhere it recurs inside the template body.
func (w *Walker) classifyDTemplates() {
	for r := w.lst.Head(); r != token.NoRef; r = w.lst.Next(r) {
		t := w.lst.At(r)
		if t.Kind != token.KwTemplate {
			continue
		}
		w.tryDTemplate(r)
	}
}

func (w *Walker) tryDTemplate(templateRef token.Ref) {
	nameRef, name := w.nextCode(templateRef)
	if name.Kind != token.Word {
		return
	}
	w.lst.At(nameRef).Kind = token.DTemplate
	w.markType(name.Lexeme())

	parenRef, paren := w.nextCode(nameRef)
	if paren.Kind != token.ParenOpen && paren.Kind != token.FParenOpen {
		return
	}
	parenClose, ok := w.matchClose(parenRef)
	if !ok {
		return
	}
	params := map[string]bool{}
	w.forEachInRange(parenRef, parenClose, func(_ token.Ref, pt *token.Token) {
		if pt.Kind == token.Word {
			params[pt.Lexeme()] = true
			pt.Kind = token.TypeName
			w.markType(pt.Lexeme())
		}
	})

	braceRef, brace := w.nextCode(parenClose)
	if brace.Kind != token.BraceOpen {
		return
	}
	bodyClose, ok := w.matchClose(braceRef)
	if !ok {
		return
	}
	w.flagBetween(braceRef, bodyClose, token.FlagInTemplate)
	w.forEachInRange(braceRef, bodyClose, func(_ token.Ref, bt *token.Token) {
		if bt.Kind == token.Word && params[bt.Lexeme()] {
			bt.Kind = token.TypeName
		}
	})
}

// --- Objective-C ---

// classifyObjCAtKeywords handles the '@'-prefixed directives: the lexer
// gives '@' a plain Punctuator Kind and the following identifier a plain
// WORD (only Java's annotations get dedicated lexer support), so every
// one of these is recognized here from the raw lexeme pair.
func (w *Walker) classifyObjCAtKeywords() {
	for r := w.lst.Head(); r != token.NoRef; r = w.lst.Next(r) {
		at := w.lst.At(r)
		if at.Kind != token.Punctuator || at.Lexeme() != "@" {
			continue
		}
		nameRef, name := w.nextCode(r)
		if name.Kind != token.Word {
			continue
		}
		nameTok := w.lst.At(nameRef)
		switch name.Lexeme() {
		case "interface":
			at.Kind = token.OCAt
			nameTok.Kind = token.OCInterface
			w.classifyObjCHeader(nameRef, token.OCInterface)
		case "implementation":
			at.Kind = token.OCAt
			nameTok.Kind = token.OCImplementation
			w.classifyObjCHeader(nameRef, token.OCImplementation)
		case "protocol":
			at.Kind = token.OCAt
			nameTok.Kind = token.OCProtocol
			w.classifyObjCHeader(nameRef, token.OCProtocol)
		case "end":
			at.Kind = token.OCAt
			nameTok.Kind = token.OCEnd
		case "try":
			at.Kind = token.OCAt
			nameTok.Kind = token.OCTry
		case "catch":
			at.Kind = token.OCAt
			nameTok.Kind = token.OCCatch
		case "finally":
			at.Kind = token.OCAt
			nameTok.Kind = token.OCFinally
		case "dynamic":
			at.Kind = token.OCAt
			nameTok.Kind = token.OCDynamic
		case "property":
			at.Kind = token.OCAt
			nameTok.Kind = token.OCProperty
			w.classifyObjCProperty(nameRef)
		}
	}
}

// classifyObjCHeader handles "@interface Name [: Super] [<Proto,...>]
// { ivars } ... @end" (and the @implementation/@protocol siblings,
// which share the same head shape minus some optional parts).
func (w *Walker) classifyObjCHeader(nameRef token.Ref, kind token.Kind) {
	classRef, class := w.nextCode(nameRef)
	if class.Kind != token.Word {
		return
	}
	w.lst.At(classRef).Kind = token.TypeName
	w.markType(class.Lexeme())

	r := classRef
	if colonRef, colon := w.nextCode(classRef); colon.Kind == token.Colon {
		if superRef, super := w.nextCode(colonRef); super.Kind == token.Word {
			w.lst.At(superRef).Kind = token.TypeName
			w.markType(super.Lexeme())
			r = superRef
		}
	}
	if angleRef, angle := w.nextCode(r); angle.Kind == token.AngleOpen {
		if closeRef, ok := w.matchClose(angleRef); ok {
			w.retagAngleTypeArgs(angleRef, closeRef)
			r = closeRef
		}
	}
	if braceRef, brace := w.nextCode(r); brace.Kind == token.BraceOpen {
		if closeRef, ok := w.matchClose(braceRef); ok {
			w.lst.At(braceRef).ParentKind = kind
			w.lst.At(closeRef).ParentKind = kind
			w.flagBetween(braceRef, closeRef, token.FlagInStruct)
		}
	}
}

// classifyObjCProperty handles "@property (attrs) Type name;".
func (w *Walker) classifyObjCProperty(nameRef token.Ref) {
	r := nameRef
	if parenRef, paren := w.nextCode(nameRef); paren.Kind == token.ParenOpen {
		if closeRef, ok := w.matchClose(parenRef); ok {
			w.lst.At(parenRef).ParentKind = token.OCProperty
			w.lst.At(closeRef).ParentKind = token.OCProperty
			r = closeRef
		}
	}
	if typeRef, typ := w.nextCode(r); typ.Kind == token.Word {
		w.lst.At(typeRef).Kind = token.TypeName
		w.markType(typ.Lexeme())
	}
}

// classifyObjCMessages recognizes "[receiver selector]" and "[receiver
// sel1:arg1 sel2:arg2]" message sends: a '[' at expression-start
// (FlagExprStart) whose content has a bare WORD as the selector, or one
// or more "WORD ':'" keyword-argument pairs.
func (w *Walker) classifyObjCMessages() {
	for r := w.lst.Head(); r != token.NoRef; r = w.lst.Next(r) {
		t := w.lst.At(r)
		if t.Kind != token.SquareOpen || !t.Flags.Has(token.FlagExprStart) {
			continue
		}
		w.tryObjCMessage(r)
	}
}

func (w *Walker) tryObjCMessage(openRef token.Ref) {
	closeRef, ok := w.matchClose(openRef)
	if !ok {
		return
	}
	receiverRef, receiver := w.nextCode(openRef)
	if receiver.Kind != token.Word {
		return
	}

	sawKeywordArg := false
	sawBareWord := false
	sawSelector := false
	w.forEachInRange(openRef, closeRef, func(r token.Ref, t *token.Token) {
		if r == receiverRef || t.Kind != token.Word {
			return
		}
		if nr, nt := w.nextCode(r); nt.Kind == token.Colon {
			if !sawSelector {
				t.Kind = token.OCMsgFunc
			} else {
				t.Kind = token.OCSelector
			}
			sawSelector = true
			w.lst.At(nr).Kind = token.OCColon
			sawKeywordArg = true
		} else if !sawSelector {
			t.Kind = token.OCMsgFunc
			sawSelector = true
			sawBareWord = true
		}
	})
	if !sawKeywordArg && !sawBareWord {
		return
	}
	w.lst.At(openRef).ParentKind = token.OCMessageSend
	w.lst.At(closeRef).ParentKind = token.OCMessageSend
}

// classifyObjCBlocks recognizes the two block syntaxes §4.5 names: a block
// literal "^ret (args) { body }" (a '^' at expression-start, i.e. the same
// signal that already tells classifyUnaryOps a '*' is a DEREF rather than a
// multiplication), and a block-typed variable/parameter declarator
// "ret (^name)(args)" — the function-pointer shape of sweep 2's
// classifyFuncPointers with a '^' standing where that recognizer expects a
// '*'.
func (w *Walker) classifyObjCBlocks() {
	for r := w.lst.Head(); r != token.NoRef; r = w.lst.Next(r) {
		t := w.lst.At(r)
		switch {
		case t.Kind == token.Arith && t.Lexeme() == "^" && t.Flags.Has(token.FlagExprStart):
			w.tryObjCBlockLiteral(r, t)
		case t.Kind == token.ParenOpen:
			w.tryObjCBlockType(r)
		}
	}
}

func (w *Walker) tryObjCBlockLiteral(caretRef token.Ref, caret *token.Token) {
	r := caretRef
	if typRef, typ := w.nextCode(caretRef); typ.Kind == token.Word {
		w.lst.At(typRef).Kind = token.TypeName
		w.markType(typ.Lexeme())
		r = typRef
	}
	parenRef, paren := w.nextCode(r)
	if paren.Kind != token.ParenOpen && paren.Kind != token.FParenOpen {
		return
	}
	closeRef, ok := w.matchClose(parenRef)
	if !ok {
		return
	}
	braceRef, brace := w.nextCode(closeRef)
	if brace.Kind != token.BraceOpen {
		return
	}
	bodyClose, ok := w.matchClose(braceRef)
	if !ok {
		return
	}

	caret.Kind = token.OCBlockCaret
	w.lst.At(parenRef).Kind = token.FParenOpen
	w.lst.At(parenRef).ParentKind = token.OCBlockLiteral
	w.lst.At(closeRef).Kind = token.FParenClose
	w.lst.At(closeRef).ParentKind = token.OCBlockLiteral
	w.fixFuncDefParams(parenRef, closeRef)
	w.lst.At(braceRef).ParentKind = token.OCBlockLiteral
	w.lst.At(bodyClose).ParentKind = token.OCBlockLiteral
}

// tryObjCBlockType recognizes "(^name)(args)" immediately following a
// return-type head, e.g. "void (^completion)(int status)": openRef stays a
// plain ParenOpen, since internal/frame only promotes a paren to FParenOpen when
// it follows an identifier, which a bare caret never is.
func (w *Walker) tryObjCBlockType(openRef token.Ref) {
	caretRef, caret := w.nextCode(openRef)
	if caret.Kind != token.Arith || caret.Lexeme() != "^" {
		return
	}
	nameRef, name := w.nextCode(caretRef)
	if name.Kind != token.Word {
		return
	}
	closeRef, close := w.nextCode(nameRef)
	if close.Kind != token.ParenClose {
		return
	}
	argsRef, args := w.nextCode(closeRef)
	if args.Kind != token.ParenOpen && args.Kind != token.FParenOpen {
		return
	}
	argsClose, ok := w.matchClose(argsRef)
	if !ok {
		return
	}

	w.lst.At(openRef).Kind = token.TParenOpen
	w.lst.At(openRef).ParentKind = token.OCBlockType
	w.lst.At(closeRef).Kind = token.TParenClose
	w.lst.At(closeRef).ParentKind = token.OCBlockType
	w.lst.At(caretRef).Kind = token.OCBlockCaret
	nameTok := w.lst.At(nameRef)
	nameTok.Kind = token.FuncTypeVar
	nameTok.Flags = nameTok.Flags.Set(token.FlagVar1stDef)

	outerOpen := w.lst.At(argsRef)
	outerOpen.Kind = token.FParenOpen
	outerOpen.ParentKind = token.OCBlockType
	outerClose := w.lst.At(argsClose)
	outerClose.Kind = token.FParenClose
	outerClose.ParentKind = token.OCBlockType
	w.fixFuncDefParams(argsRef, argsClose)
}

// --- C# ---

// classifyCSAttributes recognizes "[Name(...)]" / "[assembly: Name(...)]"
// attribute brackets: a '[' at statement-start (not expression-start —
// an attribute decorates the declaration that follows it) opening on a
// WORD.
func (w *Walker) classifyCSAttributes() {
	for r := w.lst.Head(); r != token.NoRef; r = w.lst.Next(r) {
		t := w.lst.At(r)
		if t.Kind != token.SquareOpen || !t.Flags.Has(token.FlagStmtStart) {
			continue
		}
		nameRef, name := w.nextCode(r)
		if name.Kind != token.Word {
			continue
		}
		closeRef, ok := w.matchClose(r)
		if !ok {
			continue
		}
		t.ParentKind = token.CSSquareStmt
		w.lst.At(closeRef).ParentKind = token.CSSquareStmt
		w.lst.At(nameRef).Kind = token.TypeName
		w.markType(name.Lexeme())
	}
}

// classifyCSProperties recognizes "{ get; set; }" auto-property bodies;
// "get"/"set" are already tagged token.CSGetSet by the keyword table, so
// this just attributes the enclosing brace pair.
func (w *Walker) classifyCSProperties() {
	for r := w.lst.Head(); r != token.NoRef; r = w.lst.Next(r) {
		t := w.lst.At(r)
		if t.Kind != token.BraceOpen {
			continue
		}
		if _, next := w.nextCode(r); next.Kind != token.CSGetSet {
			continue
		}
		closeRef, ok := w.matchClose(r)
		if !ok {
			continue
		}
		t.ParentKind = token.CSProperty
		w.lst.At(closeRef).ParentKind = token.CSProperty
	}
}

// classifyCSNullable retags a '?' immediately after a type head as
// CSNullable ("int? x") rather than the ternary operator, when what
// follows it looks like a declarator rather than an expression.
func (w *Walker) classifyCSNullable() {
	for r := w.lst.Head(); r != token.NoRef; r = w.lst.Next(r) {
		t := w.lst.At(r)
		if t.Kind != token.Question {
			continue
		}
		if _, prev := w.prevCode(r); !w.isTypeHead(prev) {
			continue
		}
		_, next := w.nextCode(r)
		if next.Kind == token.Word || next.Kind == token.ParenClose || next.Kind == token.FParenClose ||
			isComma(next) || isSemicolon(next) {
			t.Kind = token.CSNullable
		}
	}
}

// --- Java ---

// classifyJavaAssert retags the statement-start WORD "assert" (the
// keyword table leaves it a plain WORD, since "assert" is also a legal
// identifier in older Java source) as JavaAssert.
func (w *Walker) classifyJavaAssert() {
	for r := w.lst.Head(); r != token.NoRef; r = w.lst.Next(r) {
		t := w.lst.At(r)
		if t.Kind == token.Word && t.Lexeme() == "assert" && t.Flags.Has(token.FlagStmtStart) {
			t.Kind = token.JavaAssert
		}
	}
}

// classifyJavaLambdas retags the "->" in "(params) -> body" / "x -> body"
// as JavaLambda, distinguishing it from a C-style arrow by what precedes
// it: a closed parameter-list paren, or the lone WORD of a single
// implicit-type parameter.
func (w *Walker) classifyJavaLambdas() {
	for r := w.lst.Head(); r != token.NoRef; r = w.lst.Next(r) {
		t := w.lst.At(r)
		if t.Kind != token.Arrow {
			continue
		}
		if _, prev := w.prevCode(r); prev.Kind == token.ParenClose || prev.Kind == token.FParenClose || prev.Kind == token.Word {
			t.Kind = token.JavaLambda
		}
	}
}

// --- Pawn ---

// classifyPawnVSemis marks Pawn's implicit end-of-statement newlines — a
// statement can end at a newline instead of an explicit ';'. kind.go
// carries no dedicated virtual-semicolon Kind, so this marks the newline
// with FlagAnchor and the following code token with FlagStmtStart, the
// same pair a real ';' already produces, rather than inventing a new
// Kind for what is a formatting-level distinction, not a classification
// one.
func (w *Walker) classifyPawnVSemis() {
	for r := w.lst.Head(); r != token.NoRef; r = w.lst.Next(r) {
		t := w.lst.At(r)
		if t.Kind != token.Newline {
			continue
		}
		_, prev := w.prevCode(r)
		if prev.Flags.Has(token.FlagInPreproc) {
			// A macro body's internal line breaks never gain a
			// synthetic statement terminator: structural synthesis
			// must not cross a preprocessor boundary.
			continue
		}
		if !w.pawnStatementCanEnd(prev) {
			continue
		}
		nextRef, _ := w.nextCode(r)
		if nextRef == token.NoRef {
			continue
		}
		t.Flags = t.Flags.Set(token.FlagAnchor)
		w.lst.At(nextRef).Flags = w.lst.At(nextRef).Flags.Set(token.FlagStmtStart)
	}
}

// pawnStatementCanEnd reports whether prev is a token after which a Pawn
// statement may legally end without an explicit ';': not a binary/
// continuation operator, not an open bracket, not a keyword still
// expecting a condition or body, not a comma.
func (w *Walker) pawnStatementCanEnd(prev token.Token) bool {
	switch {
	case prev.Kind == token.EOF:
		return false
	case prev.Kind.Role() == token.Open:
		return false
	case prev.Kind.IsOperator() && prev.Kind != token.IncDecBefore && prev.Kind != token.IncDecAfter:
		return false
	case prev.Kind == token.Colon || prev.Kind == token.Question:
		return false
	case prev.Kind.IsKeyword():
		return false
	case isComma(prev):
		return false
	default:
		return true
	}
}

// --- embedded SQL ---

// classifySQLRegions retags the words inside an "EXEC SQL ... ;"
// directive as SQLWord. Embedded SQL is a preprocessor-adjacent
// convention layered on top of whichever host language is active, not a
// language of its own, so this runs unconditionally.
func (w *Walker) classifySQLRegions() {
	for r := w.lst.Head(); r != token.NoRef; r = w.lst.Next(r) {
		t := w.lst.At(r)
		if t.Kind != token.Word || t.Lexeme() != "EXEC" {
			continue
		}
		sqlRef, sql := w.nextCode(r)
		if sql.Kind != token.Word || sql.Lexeme() != "SQL" {
			continue
		}
		w.lst.At(sqlRef).Kind = token.SQLWord
		end := sqlRef
		for {
			nr, nt := w.nextCode(end)
			if nr == token.NoRef || isSemicolon(nt) {
				break
			}
			w.lst.At(nr).Kind = token.SQLWord
			end = nr
		}
	}
}

// --- FUNC_WRAP/PROTO_WRAP macros ---

// classifyFuncWraps recognizes the FUNC_WRAP macro idiom used in place
// of a plain function signature — e.g. "DLL_EXPORT(int, foo, (int x))"
// — distinguished from an ordinary macro call by a body brace or ';'
// immediately following its closing paren and a nested paren pair inside
// its own argument list (the wrapped parameter list).
func (w *Walker) classifyFuncWraps() {
	for r := w.lst.Head(); r != token.NoRef; r = w.lst.Next(r) {
		t := w.lst.At(r)
		if t.Kind != token.MacroFunc || !t.Flags.Has(token.FlagStmtStart) {
			continue
		}
		parenRef, paren := w.nextCode(r)
		if paren.Kind != token.FParenOpen && paren.Kind != token.ParenOpen {
			continue
		}
		closeRef, ok := w.matchClose(parenRef)
		if !ok || !w.hasNestedParens(parenRef, closeRef) {
			continue
		}
		_, after := w.nextCode(closeRef)
		if after.Kind != token.BraceOpen && !isSemicolon(after) {
			continue
		}
		t.Kind = token.FuncWrap
		w.lst.At(parenRef).ParentKind = token.FuncWrap
		w.lst.At(closeRef).ParentKind = token.FuncWrap
	}
}

func (w *Walker) hasNestedParens(openRef, closeRef token.Ref) bool {
	found := false
	w.forEachInRange(openRef, closeRef, func(_ token.Ref, t *token.Token) {
		if t.Kind == token.ParenOpen || t.Kind == token.FParenOpen {
			found = true
		}
	})
	return found
}
