package frame

import "github.com/uncrustify-go/frontend/pkg/token"

// maybeOpenVBrace implements §4.4 item 3: when a compound-statement
// stage is awaiting a body and the current token is not the '{' that
// would supply a real one, a VBRACE_OPEN is spliced in just before it.
// Only the first token of the body triggers this (guarded by HasVBrace),
// and only once a stage is actually awaiting one (real '{' is handled by
// openBrace instead, which never sets HasVBrace).
func (w *walker) maybeOpenVBrace(cur *token.Cursor, t *token.Token) {
	top := w.stack.Top()
	if top == nil || !awaitingBody(top.Stage) || top.BodyStarted || t.Kind == token.BraceOpen {
		return
	}
	ref := cur.InsertBefore(token.Token{Kind: token.VBraceOpen, Flags: t.Flags & token.CopyFlags})
	w.pushBracket(cur.List().At(ref), token.VBraceOpen, top.ParentKind)
	top.BodyStarted = true
	top.HasVBrace = true
	top.BodyLevel = w.level
}

// forceCloseVBracesAcrossPreproc implements the "virtual braces must not
// cross a preprocessor directive" rule: a '#' forces closure of whichever
// vbrace body is currently open, as if its body had ended right there.
func (w *walker) forceCloseVBracesAcrossPreproc(cur *token.Cursor) {
	top := w.stack.Top()
	if top == nil || !top.HasVBrace || !awaitingBody(top.Stage) {
		return
	}
	ref := cur.InsertBefore(token.Token{Kind: token.VBraceClose})
	w.closeBracket(cur, ref)
}

// onSemicolon implements the ordinary "single statement body ends at its
// own ';'" case, and the do...while's final terminating ';' (StageDoSemi,
// which has no vbrace/brace of its own left to close — its body already
// closed back when the matching 'while' was seen).
func (w *walker) onSemicolon(cur *token.Cursor, t *token.Token) {
	top := w.stack.Top()
	switch {
	case top != nil && top.Stage == StageDoSemi:
		f := *top
		w.stack.Pop()
		w.frameClosed(cur, f, cur.Ref())
	case top != nil && top.OpenKind == token.KwDo:
		// A do-body's own ';' never closes its vbrace (real or virtual) —
		// that only happens once the matching 'while' is seen.
	case top != nil && top.HasVBrace && w.level == top.BodyLevel:
		ref := cur.List().InsertAfter(cur.Ref(), token.Token{Kind: token.VBraceClose})
		w.closeBracket(cur, ref)
	}
}

// closeCurrentBody fires once a frame's body (real '}' or vbrace) has
// just closed at exactly this frame's level. A do-frame's body closing
// only advances it to StageWhile (awaiting the matching 'while' keyword,
// §4.4's do/while/paren2/close chain); every other construct is done and
// pops off the stack.
func (w *walker) closeCurrentBody(cur *token.Cursor, ref token.Ref) {
	top := w.stack.Top()
	if top == nil {
		return
	}
	if top.OpenKind == token.KwDo {
		top.Stage = StageWhile
		return
	}
	f := *top
	w.stack.Pop()
	w.frameClosed(cur, f, ref)
}

// frameClosed runs once f's own body has fully closed. An if/else-if/else
// frame defers to a lookahead: when 'else' follows, the enclosing vbrace
// (if any) must not cascade-close yet, since the whole if/else chain —
// not just this branch — is the single statement that vbrace wraps.
// Otherwise, if the frame now on top of the stack has its own vbrace open
// at exactly this level, that vbrace's body was exactly this completed
// construct, so it cascades closed too (recursively, for arbitrarily
// nested brace-less constructs).
func (w *walker) frameClosed(cur *token.Cursor, f Frame, after token.Ref) {
	if (f.OpenKind == token.KwIf || f.OpenKind == token.KwElse) && w.peekNextCodeIsElse(cur) {
		return
	}
	top := w.stack.Top()
	if top == nil || !top.HasVBrace || w.level != top.BodyLevel {
		return
	}
	ref := cur.List().InsertAfter(after, token.Token{Kind: token.VBraceClose})
	w.closeBracket(cur, ref)
}

// peekNextCode returns the next non-trivia token after cur's current
// position, skipping whitespace/newlines/comments/ignored spans.
func (w *walker) peekNextCode(cur *token.Cursor) token.Token {
	c := cur.Clone()
	c.Advance()
	for {
		t := c.Current()
		if t.Kind == token.EOF || (!t.Kind.IsTrivia() && t.Kind != token.Ignored) {
			return t
		}
		c.Advance()
	}
}

// peekNextCodeIsElse looks past cur's current position — and past any
// close brackets this same cascade just spliced in or that the source
// itself supplied — for a following 'else'.
func (w *walker) peekNextCodeIsElse(cur *token.Cursor) bool {
	c := cur.Clone()
	c.Advance()
	for {
		t := c.Current()
		switch {
		case t.Kind == token.EOF:
			return false
		case t.Kind.IsTrivia(), t.Kind == token.Ignored, t.Kind == token.BraceClose, t.Kind == token.VBraceClose:
			c.Advance()
			continue
		}
		return t.Kind == token.KwElse
	}
}

// resolveElseIf applies stage ELSEIF's transition (§4.4 item 2): a
// following 'if' rewrites the frame in place into a fresh if-frame
// (collapsing "else if" into one entry instead of nesting it), reporting
// true so the caller skips the normal if-keyword dispatch for this same
// token. Anything else means a bare else, which now awaits its own body.
func (w *walker) resolveElseIf(t *token.Token) bool {
	top := w.stack.Top()
	if top == nil || top.Stage != StageElseIf {
		return false
	}
	if t.Kind == token.KwIf {
		top.OpenKind = token.KwIf
		top.ParentKind = token.KwIf
		top.Stage = StageParen1
		return true
	}
	top.Stage = StageBrace2
	return false
}

// resolveDoWhile recognizes the 'while' keyword that closes a do-body
// rather than the start of an ordinary while-loop, and advances the
// do-frame to await its trailing condition paren (StageParen2, distinct
// from an ordinary loop's StageParen1 so its close routes to StageDoSemi
// instead of StageBrace2).
//
// A real-brace do-body was already closed by its '}' (closeCurrentBody
// left the frame in StageWhile); a brace-less one is still sitting in
// StageBraceDo with its vbrace open; that vbrace's rule is "closes when
// the matching 'while' is seen" (§4.4 item 3), so it is force-closed
// here, right before 'while' itself is stamped.
func (w *walker) resolveDoWhile(cur *token.Cursor, t *token.Token) bool {
	top := w.stack.Top()
	if top == nil || t.Kind != token.KwWhile {
		return false
	}
	switch top.Stage {
	case StageWhile:
		top.Stage = StageParen2
		return true
	case StageBraceDo:
		if !top.HasVBrace {
			return false
		}
		ref := cur.InsertBefore(token.Token{Kind: token.VBraceClose})
		w.closeBracket(cur, ref)
		top.Stage = StageParen2
		return true
	default:
		return false
	}
}
