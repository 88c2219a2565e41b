// Package frame implements the second pipeline stage: walking the raw
// token list left to right, inserting virtual braces around
// brace-less compound-statement bodies, and stamping every token with
// its nesting level, brace level, preprocessor level, and parent
// bracket kind. It consumes the list lexer produced and mutates it in
// place via pkg/token.Cursor splicing.
package frame

import (
	"github.com/uncrustify-go/frontend/internal/diag"
	"github.com/uncrustify-go/frontend/pkg/langset"
	"github.com/uncrustify-go/frontend/pkg/token"
)

// walker threads the per-file state (compound-frame stack, bracket
// stack, level counters, preprocessor conditional nesting, #define
// save/restore) through one left-to-right pass over a token.List. Its
// preprocessor handling follows the shape of a lexer-side conditional
// frame stack, generalized from Pascal's {$IFDEF}/{$ELSE}/{$ENDIF} to
// this spec's `#if`/`#ifdef`/`#ifndef`/`#else`/`#elif`/`#endif` family
// plus the brace/vbrace nesting that family never had to model.
type walker struct {
	lst    *token.List
	langs  langset.Mask
	diags  *diag.Bag
	source string
	file   string

	stack    Stack
	brackets BracketStack

	level      int
	braceLevel int
	ppLevel    int

	inDirective    bool
	awaitingName   bool
	pendingPPDelta int

	defineSaved *savedOuter

	// stmtPending/exprPending gate STMT_START/EXPR_START on the next
	// code token (§3 invariant 6); both start true for the file's first
	// token. prevKind is the previous code token's final Kind, used for
	// FParen/SParen/brace parent-kind attribution.
	stmtPending bool
	exprPending bool
	prevKind    token.Kind
}

// savedOuter snapshots the frame/bracket/level state that a #define body
// must not see (and must not be allowed to corrupt), restored once the
// define's terminating newline is reached.
type savedOuter struct {
	stack      Stack
	brackets   BracketStack
	level      int
	braceLevel int
}

// Run performs the frame pass over lst: virtual-brace insertion, bracket
// nesting and parent-kind attribution, the linear #if/#ifdef stack, and
// STMT_START/EXPR_START marking. The only diagnostic this pass appends to
// diags is a Warning for an unbalanced close bracket; an unexpected token
// at a compound-statement stage or an else with no preceding if is not
// reported. source/file are carried through only for diagnostic
// rendering.
func Run(lst *token.List, langs langset.Mask, diags *diag.Bag, source, file string) {
	w := &walker{lst: lst, langs: langs, diags: diags, source: source, file: file, stmtPending: true, exprPending: true}
	cur := token.NewCursor(lst)
	for !cur.IsEOF() {
		w.step(cur)
	}
}

// step processes exactly the token currently under cur, advancing it by
// one position (inserted tokens are spliced before the cursor and never
// move it).
func (w *walker) step(cur *token.Cursor) {
	t := cur.CurrentPtr()
	if t == nil {
		return
	}

	if t.Kind == token.Ignored {
		cur.Advance()
		return
	}

	if t.Kind.IsTrivia() {
		w.stampAmbient(t)
		if t.Kind == token.Newline {
			w.onLineEnd(t)
		}
		cur.Advance()
		return
	}

	switch {
	case t.Kind == token.Pound:
		w.onPound(cur, t)
		cur.Advance()
	case isDirectiveName(t.Kind):
		w.onDirectiveName(t)
		cur.Advance()
	default:
		w.onCodeToken(cur)
	}
}

func isDirectiveName(k token.Kind) bool {
	switch k {
	case token.PPDefine, token.PPUndef, token.PPInclude, token.PPIf, token.PPIfdef,
		token.PPIfndef, token.PPElse, token.PPElif, token.PPEndif, token.PPRegion,
		token.PPEndRegion, token.PPPragma, token.PPOther:
		return true
	default:
		return false
	}
}

// stampAmbient writes the walker's current counters onto a token that
// does not itself change nesting (trivia, or any ordinary code token
// that is not a bracket).
func (w *walker) stampAmbient(t *token.Token) {
	t.Level = w.level
	t.BraceLevel = w.braceLevel
	t.PPLevel = w.ppLevel
}

// onPound handles the '#' that opens a preprocessor logical line
// (§4.4 item 1). A pending virtual brace is force-closed first, since
// virtual braces must never straddle a preprocessor boundary (§3
// invariant 5).
func (w *walker) onPound(cur *token.Cursor, t *token.Token) {
	w.forceCloseVBracesAcrossPreproc(cur)
	w.stampAmbient(t)
	w.inDirective = true
	w.awaitingName = true
}

// onDirectiveName handles the directive keyword immediately following
// '#' (define/undef/include/if/ifdef/.../endif/region/endregion/pragma,
// or PPOther for an unrecognized directive whose body the lexer already
// packed into a single PREPROC_BODY token downstream).
func (w *walker) onDirectiveName(t *token.Token) {
	w.stampAmbient(t)
	w.awaitingName = false

	switch t.Kind {
	case token.PPIf, token.PPIfdef, token.PPIfndef:
		w.pendingPPDelta = 1
	case token.PPEndif:
		w.pendingPPDelta = -1
	case token.PPDefine:
		w.enterDefine()
	}
}

// onLineEnd applies the deferred effects of the directive that just
// ended: popping back out of a #define body, and adjusting pp_level so
// that the directive's own line (already stamped) keeps the level it
// was opened/closed at, while subsequent tokens see the new nesting.
func (w *walker) onLineEnd(newline *token.Token) {
	if !w.inDirective {
		return
	}
	w.inDirective = false
	w.awaitingName = false

	if w.defineSaved != nil {
		w.exitDefine()
	}
	if w.pendingPPDelta != 0 {
		w.ppLevel += w.pendingPPDelta
		if w.ppLevel < 0 {
			w.ppLevel = 0
		}
		w.pendingPPDelta = 0
	}
}

// enterDefine implements "#define pushes the current frame and starts a
// fresh frame (level 1) confined to the define body" (§4.4 item 1): the
// compound-frame stack, bracket stack, and level counters are swapped
// out for empty ones so a macro body's own braces/parens never leak
// into, or get confused with, the enclosing code's nesting.
func (w *walker) enterDefine() {
	w.defineSaved = &savedOuter{
		stack:      w.stack,
		brackets:   w.brackets,
		level:      w.level,
		braceLevel: w.braceLevel,
	}
	w.stack = Stack{}
	w.brackets = BracketStack{}
	w.level = 0
	w.braceLevel = 0
}

func (w *walker) exitDefine() {
	saved := w.defineSaved
	w.defineSaved = nil
	w.stack = saved.stack
	w.brackets = saved.brackets
	w.level = saved.level
	w.braceLevel = saved.braceLevel
}
