// Package frame implements the second pipeline stage: walking the raw
// token list left to right, inserting virtual braces around
// brace-less compound-statement bodies, and stamping every token with
// its nesting level, brace level, preprocessor level, and parent
// bracket kind. It consumes the list lexer produced and mutates it in
// place via pkg/token.Cursor splicing.
package frame

import "github.com/uncrustify-go/frontend/pkg/token"

// Stage encodes which sub-construct of a compound statement the frame
// at the top of the stack is waiting for next.
type Stage int

const (
	// StageParen1 is waiting for the '(' condition of if/for/while/switch.
	StageParen1 Stage = iota
	// StageBrace2 is waiting for the body: a real '{' or, failing that,
	// a single statement promoted to a virtual brace.
	StageBrace2
	// StageElseIf is waiting to see whether 'else' is followed by 'if'
	// (chained into a nested if-frame) or goes straight to a body.
	StageElseIf
	// StageBraceDo is waiting for a do-statement's body.
	StageBraceDo
	// StageWhile is waiting for the 'while' keyword that closes a do-body.
	StageWhile
	// StageParen2 is waiting for the '(' condition of a do...while.
	StageParen2
	// StageDoSemi is waiting for the terminating ';' after a do...while's
	// trailing condition paren has closed.
	StageDoSemi
)

// Frame is one entry of the parse-frame stack: a pending
// compound-statement awaiting its next sub-token, per the
// (open-kind, stage, parent-kind, open-line) tuple.
type Frame struct {
	OpenKind   token.Kind
	Stage      Stage
	ParentKind token.Kind
	OpenLine   int

	// BodyStarted reports whether the body's opening bracket (real '{' or
	// synthetic VBRACE_OPEN) has been seen yet, so a stage that stays
	// "awaiting body" for its whole body (do's StageBraceDo) doesn't
	// retrigger virtual-brace insertion on every token inside a real one.
	BodyStarted bool
	// HasVBrace reports whether the body's opener was virtual rather
	// than a real '{'.
	HasVBrace bool

	// BodyLevel is the walker's Level counter value inside the frame's
	// body (real brace or virtual brace), i.e. immediately after that
	// bracket was pushed. A body-closing event (';' at this exact level,
	// or the matching '}') is only this frame's own close when the
	// walker's Level, after the close, equals BodyLevel-1.
	BodyLevel int
}

// Stack is the pending-statement stack the frame pass threads through
// its walk. Pushing happens when a compound-statement keyword is
// consumed; popping happens once its body (real or virtual) closes.
type Stack struct {
	frames []Frame
}

// Push adds a new pending frame.
func (s *Stack) Push(f Frame) { s.frames = append(s.frames, f) }

// Pop removes the most recent frame, if any.
func (s *Stack) Pop() {
	if len(s.frames) > 0 {
		s.frames = s.frames[:len(s.frames)-1]
	}
}

// Top returns the most recent frame, or nil if the stack is empty.
func (s *Stack) Top() *Frame {
	if len(s.frames) == 0 {
		return nil
	}
	return &s.frames[len(s.frames)-1]
}

// Depth reports how many frames are pending.
func (s *Stack) Depth() int { return len(s.frames) }

// bracketFrame tracks one open bracket (real or virtual brace) for
// level/parent-kind bookkeeping, pushed on open and popped on its
// matching close.
type bracketFrame struct {
	openKind   token.Kind
	parentKind token.Kind
}

// BracketStack is the stack of currently-open brackets, including open
// virtual braces.
type BracketStack struct {
	entries []bracketFrame
}

func (b *BracketStack) push(kind, parent token.Kind) {
	b.entries = append(b.entries, bracketFrame{openKind: kind, parentKind: parent})
}

func (b *BracketStack) pop() (bracketFrame, bool) {
	if len(b.entries) == 0 {
		return bracketFrame{}, false
	}
	top := b.entries[len(b.entries)-1]
	b.entries = b.entries[:len(b.entries)-1]
	return top, true
}

func (b *BracketStack) top() (bracketFrame, bool) {
	if len(b.entries) == 0 {
		return bracketFrame{}, false
	}
	return b.entries[len(b.entries)-1], true
}

func (b *BracketStack) depth() int { return len(b.entries) }
