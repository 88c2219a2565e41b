package frame

import (
	"github.com/uncrustify-go/frontend/pkg/langset"
	"github.com/uncrustify-go/frontend/pkg/token"
)

// onCodeToken processes the single non-trivia, non-preprocessor token
// under cur: it resolves any pending else-if/do-while transition, opens
// a virtual brace if one is now due, stamps nesting/PP level and
// STMT_START/EXPR_START, dispatches brackets/semicolons/compound
// keywords, and finally advances the cursor past this token (and, for
// "else if", implicitly past none extra — the merge never consumes a
// second token, it only rewrites the pending frame).
func (w *walker) onCodeToken(cur *token.Cursor) {
	t := cur.CurrentPtr()

	if t.Kind == token.VBraceClose {
		// Spliced in after the cursor by onSemicolon/frameClosed, which
		// already matched and stamped it; restamping it here would give
		// it the outer level left behind by any cascade that followed.
		w.prevKind = t.Kind
		cur.Advance()
		return
	}

	consumed :=w.resolveElseIf(t) || w.resolveDoWhile(cur, t)

	w.maybeOpenVBrace(cur, t)
	w.stampAmbient(t)
	w.markPending(t)

	if !consumed {
		switch {
		case isBracketOpen(t.Kind):
			w.dispatchOpen(cur, t)
		case isBracketClose(t.Kind):
			w.closeBracket(cur, cur.Ref())
		case t.Kind == token.Punctuator && t.Lexeme() == ";":
			w.onSemicolon(cur, t)
		case isCompoundKeyword(t.Kind):
			w.dispatchKeyword(cur, t)
		}
	}

	w.updatePending(t)
	w.prevKind = t.Kind
	cur.Advance()
}

func isBracketOpen(k token.Kind) bool {
	return k == token.ParenOpen || k == token.BraceOpen || k == token.SquareOpen
}

func isBracketClose(k token.Kind) bool {
	return k == token.ParenClose || k == token.BraceClose || k == token.SquareClose
}

func isCompoundKeyword(k token.Kind) bool {
	switch k {
	case token.KwIf, token.KwFor, token.KwWhile, token.KwSwitch, token.KwDo,
		token.KwTry, token.KwCatch, token.KwFinally, token.KwElse,
		token.DVersion, token.KwVolatile, token.DScope:
		return true
	default:
		return false
	}
}

func (w *walker) dispatchOpen(cur *token.Cursor, t *token.Token) {
	switch t.Kind {
	case token.ParenOpen:
		w.openParen(cur, t)
	case token.BraceOpen:
		w.openBrace(t)
	case token.SquareOpen:
		w.openSquare(t)
	}
}

// dispatchKeyword pushes the frame for whichever compound-statement
// keyword was just seen, per the stage table of §4.4.
func (w *walker) dispatchKeyword(cur *token.Cursor, t *token.Token) {
	switch t.Kind {
	case token.KwIf, token.KwFor, token.KwWhile, token.KwSwitch:
		w.pushFrame(t.Kind, StageParen1, t.OrigLine)
	case token.KwDo:
		w.pushFrame(token.KwDo, StageBraceDo, t.OrigLine)
	case token.KwTry, token.KwFinally:
		w.pushFrame(t.Kind, StageBrace2, t.OrigLine)
	case token.KwCatch:
		w.onCatch(cur, t)
	case token.KwElse:
		w.pushFrame(token.KwElse, StageElseIf, t.OrigLine)
	case token.DVersion:
		// D's "version(Cond) { ... }" (and the bare "version { ... }"
		// debug-version form): the stage table's row for version/braced/
		// volatile starts directly at StageBrace2 rather than gating on a
		// tracked condition paren — the "(Cond)" between the keyword and
		// the body, when present, is left to the ordinary bracket stack
		// (openParen/closeBracket) to balance like any other plain paren.
		w.pushFrame(token.DVersion, StageBrace2, t.OrigLine)
	case token.KwVolatile:
		// D's deprecated "volatile { ... }" braced statement form is only
		// recognized in D source, and only when a body brace is actually
		// next — everywhere else "volatile" is the ordinary type
		// qualifier and must not push a frame.
		if w.langs.Has(langset.D) && w.peekNextCode(cur).Kind == token.BraceOpen {
			w.pushFrame(token.KwVolatile, StageBrace2, t.OrigLine)
		}
	case token.DScope:
		// D's "scope(exit|success|failure) stmt;" guard: the condition
		// paren always follows the keyword, but (same as version) it is
		// left to the ordinary bracket stack rather than tracked as a
		// dedicated paren stage, since it never gates entry to the body
		// the way an if/while/for condition does.
		w.pushFrame(token.DScope, StageBrace2, t.OrigLine)
	}
}

func (w *walker) pushFrame(openKind token.Kind, stage Stage, line int) {
	w.stack.Push(Frame{OpenKind: openKind, Stage: stage, ParentKind: openKind, OpenLine: line})
}

// onCatch looks one code token ahead to decide whether this catch takes
// a condition paren (most C-family dialects) or goes straight to a body
// (e.g. a bare catch-all).
func (w *walker) onCatch(cur *token.Cursor, t *token.Token) {
	if w.peekNextCode(cur).Kind == token.ParenOpen {
		w.pushFrame(token.KwCatch, StageParen1, t.OrigLine)
	} else {
		w.pushFrame(token.KwCatch, StageBrace2, t.OrigLine)
	}
}

// markPending writes STMT_START/EXPR_START onto t from the pending state
// left by the previous token, per §3 invariant 6 (EXPR_START is a
// superset of STMT_START).
func (w *walker) markPending(t *token.Token) {
	if w.stmtPending {
		t.Flags = t.Flags.Set(token.FlagStmtStart)
	}
	if w.exprPending {
		t.Flags = t.Flags.Set(token.FlagExprStart)
	}
}

// updatePending recomputes the pending state for the token after t, once
// t's final (possibly retagged) Kind is known.
func (w *walker) updatePending(t *token.Token) {
	switch {
	case t.Kind == token.BraceOpen || t.Kind == token.BraceClose ||
		t.Kind == token.VBraceOpen || t.Kind == token.VBraceClose ||
		(t.Kind == token.Punctuator && t.Lexeme() == ";"):
		w.stmtPending, w.exprPending = true, true
	case t.Kind == token.Assign || t.Kind == token.Question || t.Kind == token.Colon ||
		t.Kind == token.ParenOpen || t.Kind == token.FParenOpen || t.Kind == token.SParenOpen ||
		t.Kind == token.KwReturn || (t.Kind == token.Punctuator && t.Lexeme() == ","):
		w.stmtPending, w.exprPending = false, true
	default:
		w.stmtPending, w.exprPending = false, false
	}
}
