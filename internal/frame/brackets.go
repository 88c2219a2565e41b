package frame

import (
	"github.com/uncrustify-go/frontend/internal/diag"
	"github.com/uncrustify-go/frontend/pkg/token"
)

// pushBracket stamps t (already retagged to its specific open Kind by the
// caller) with the pre-increment Level/BraceLevel/PPLevel — the open and
// its matching close share this value, per §3 invariant 4 — then records
// the bracket on the BracketStack and advances the counters for whatever
// comes next.
func (w *walker) pushBracket(t *token.Token, openKind, parent token.Kind) {
	t.ParentKind = parent
	t.Level = w.level
	t.BraceLevel = w.braceLevel
	t.PPLevel = w.ppLevel

	w.brackets.push(openKind, parent)
	w.level++
	if openKind == token.BraceOpen || openKind == token.VBraceOpen {
		w.braceLevel++
	}
}

// closeBracket matches the close punctuator at ref (a generic
// ParenClose/BraceClose/SquareClose the lexer emitted, or a VBRACE_CLOSE
// this pass spliced in) against the BracketStack, decrements the
// counters first, then stamps it with the resulting (outer) level and
// retags it to the specific close Kind paired with whatever specific
// open Kind was pushed. An unmatched close is reported as a Warning and
// left with its lexer-assigned kind and the current (un-decremented)
// level, per §7's "recoverable syntax" handling.
//
// ref is also the anchor a cascading body-close chains its own
// VBRACE_CLOSE onto (see frameClosed): using ref rather than the
// cursor's position means nested cascades splice their closes in
// nesting order even though the cursor itself never moves off the
// triggering token.
func (w *walker) closeBracket(cur *token.Cursor, ref token.Ref) {
	t := cur.List().At(ref)
	top, ok := w.brackets.pop()
	if !ok {
		w.diags.Addf(diag.Warning, t.Pos(), w.source, w.file, "unbalanced close bracket %q", t.Lexeme())
		t.Level = w.level
		t.BraceLevel = w.braceLevel
		t.PPLevel = w.ppLevel
		return
	}

	w.level--
	if top.openKind == token.BraceOpen || top.openKind == token.VBraceOpen {
		w.braceLevel--
	}

	if closeKind, ok := top.openKind.Pair(); ok {
		t.Kind = closeKind
	}
	t.ParentKind = top.parentKind
	t.Level = w.level
	t.BraceLevel = w.braceLevel
	t.PPLevel = w.ppLevel

	switch top.openKind {
	case token.SParenOpen:
		w.afterSParenClose(cur)
	case token.BraceOpen, token.VBraceOpen:
		if frm := w.stack.Top(); frm != nil && awaitingBody(frm.Stage) && w.level == frm.BodyLevel-1 {
			w.closeCurrentBody(cur, ref)
		}
	}
}

// afterSParenClose advances whichever compound-frame stage was waiting
// on this statement-paren's matching close: if/for/while/switch/catch's
// condition paren (StageParen1) now expects the body; a do...while's
// trailing condition paren (StageParen2) now expects the closing ';'.
func (w *walker) afterSParenClose(cur *token.Cursor) {
	top := w.stack.Top()
	if top == nil {
		return
	}
	switch top.Stage {
	case StageParen1:
		top.Stage = StageBrace2
	case StageParen2:
		top.Stage = StageDoSemi
	}
}

func awaitingBody(s Stage) bool {
	return s == StageBrace2 || s == StageBraceDo
}

// openParen retags a lexer-generic '(' into SParenOpen (the condition
// paren of a compound statement whose frame is waiting for one) or
// FParenOpen (a call/declaration paren, heuristically identified by a
// preceding identifier-like token) or leaves it ParenOpen (a plain
// grouping paren), per §4.4 item 5's parent-kind attribution.
func (w *walker) openParen(cur *token.Cursor, t *token.Token) {
	top := w.stack.Top()
	switch {
	case top != nil && (top.Stage == StageParen1 || top.Stage == StageParen2):
		t.Kind = token.SParenOpen
		w.pushBracket(t, token.SParenOpen, top.ParentKind)
		t.Flags = t.Flags.Set(token.FlagInSParen)
		if top.OpenKind == token.KwFor {
			t.Flags = t.Flags.Set(token.FlagInFor)
		}
	case w.prevHeadsCall():
		t.Kind = token.FParenOpen
		w.pushBracket(t, token.FParenOpen, token.FuncCall)
		t.Flags = t.Flags.Set(token.FlagInFuncCall)
	default:
		w.pushBracket(t, token.ParenOpen, token.None)
	}
}

// prevHeadsCall reports whether the most recently seen code token can
// head a function-call/declaration paren: an identifier, type name, or
// macro-function name, but not a keyword already consumed into a
// compound-statement frame (if/for/while/switch/catch/sizeof/return, ...).
func (w *walker) prevHeadsCall() bool {
	switch w.prevKind {
	case token.Word, token.TypeName, token.MacroFunc, token.KwOperator, token.Qualifier:
		return true
	default:
		return false
	}
}

// openBrace retags/attributes a lexer-generic '{': when a compound
// frame is waiting for its body (StageBrace2/StageBraceDo), the brace's
// ParentKind comes from the frame (its matching close is handled by
// closeBracket's BraceOpen/VBraceOpen case); otherwise the ParentKind is
// attributed from the simple neighbor rules of §4.5
// sweep 1 (refined further by the classifier): after '=' it is an
// aggregate initializer, after a close-paren a function/control body,
// otherwise an anonymous block.
func (w *walker) openBrace(t *token.Token) {
	top := w.stack.Top()
	var parent token.Kind
	switch {
	case top != nil && awaitingBody(top.Stage):
		parent = top.ParentKind
	case w.prevKind == token.Assign:
		parent = token.Assign
	case w.prevKind == token.FParenClose || w.prevKind == token.ParenClose:
		parent = token.FuncDef
	default:
		parent = token.None
	}

	w.pushBracket(t, token.BraceOpen, parent)

	if top != nil && awaitingBody(top.Stage) {
		top.BodyStarted = true
		top.BodyLevel = w.level
	}
}

// openSquare attributes a '[': an array subscript when it follows
// something subscriptable, otherwise an array-type declarator.
func (w *walker) openSquare(t *token.Token) {
	var parent token.Kind
	switch w.prevKind {
	case token.Word, token.TypeName, token.SquareClose, token.ParenClose, token.FParenClose:
		parent = token.Word
	default:
		parent = token.None
	}
	w.pushBracket(t, token.SquareOpen, parent)
}
