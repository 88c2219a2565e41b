package frame

import (
	"testing"

	"github.com/uncrustify-go/frontend/internal/diag"
	"github.com/uncrustify-go/frontend/pkg/langset"
	"github.com/uncrustify-go/frontend/pkg/token"
)

// build assembles a token.List from bare (Kind, Lexeme) pairs, skipping
// the whitespace/newline tokens the lexer would normally interleave —
// the frame pass never looks at their text, only their Kind, so tests
// can omit them except where a newline's line-end effect matters.
func build(pairs ...any) *token.List {
	lst := token.NewList(len(pairs))
	for i := 0; i < len(pairs); i += 2 {
		k := pairs[i].(token.Kind)
		text := pairs[i+1].(string)
		lst.Append(token.New(k, text, token.Position{Line: 1, Column: 1}))
	}
	return lst
}

func run(lst *token.List) []token.Token {
	Run(lst, langset.C, diag.NewBag(), "", "")
	return lst.Slice()
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func countKind(toks []token.Token, k token.Kind) int {
	n := 0
	for _, t := range toks {
		if t.Kind == k {
			n++
		}
	}
	return n
}

// Virtual brace over if: "if (x) return 1;"
func TestVirtualBraceOverIf(t *testing.T) {
	lst := build(
		token.KwIf, "if",
		token.ParenOpen, "(",
		token.Word, "x",
		token.ParenClose, ")",
		token.KwReturn, "return",
		token.Number, "1",
		token.Punctuator, ";",
	)
	toks := run(lst)

	ks := kinds(toks)
	wantIdx := -1
	for i, k := range ks {
		if k == token.VBraceOpen {
			wantIdx = i
		}
	}
	if wantIdx == -1 {
		t.Fatalf("no VBRACE_OPEN inserted, got %v", ks)
	}
	if toks[wantIdx+1].Kind != token.KwReturn {
		t.Errorf("VBRACE_OPEN must precede 'return', got %s next", toks[wantIdx+1].Kind)
	}
	if toks[len(toks)-1].Kind != token.VBraceClose {
		t.Errorf("expected trailing VBRACE_CLOSE, got %s", toks[len(toks)-1].Kind)
	}

	var outerLevel, returnLevel int
	for _, tok := range toks {
		if tok.Kind == token.KwIf {
			outerLevel = tok.BraceLevel
		}
		if tok.Kind == token.KwReturn {
			returnLevel = tok.BraceLevel
		}
	}
	if returnLevel != outerLevel+1 {
		t.Errorf("brace_level of return = outer+1 expected, got outer=%d return=%d", outerLevel, returnLevel)
	}
}

// Nested brace-less ifs cascade-close their virtual braces together:
// "if (a) if (b) foo();"
func TestCascadingVBraceNestedIf(t *testing.T) {
	lst := build(
		token.KwIf, "if", token.ParenOpen, "(", token.Word, "a", token.ParenClose, ")",
		token.KwIf, "if", token.ParenOpen, "(", token.Word, "b", token.ParenClose, ")",
		token.Word, "foo", token.ParenOpen, "(", token.ParenClose, ")", token.Punctuator, ";",
	)
	toks := run(lst)

	if got := countKind(toks, token.VBraceOpen); got != 2 {
		t.Fatalf("expected 2 VBRACE_OPEN, got %d: %v", got, kinds(toks))
	}
	if got := countKind(toks, token.VBraceClose); got != 2 {
		t.Fatalf("expected 2 VBRACE_CLOSE, got %d: %v", got, kinds(toks))
	}
	last := toks[len(toks)-2:]
	if last[0].Kind != token.VBraceClose || last[1].Kind != token.VBraceClose {
		t.Errorf("expected the two VBRACE_CLOSE to cascade back-to-back at the end, got %v", kinds(toks))
	}
}

// A dangling else suppresses the outer cascade until it too completes:
// "if (a) if (b) foo(); else bar();"
func TestElseSuppressesCascade(t *testing.T) {
	lst := build(
		token.KwIf, "if", token.ParenOpen, "(", token.Word, "a", token.ParenClose, ")",
		token.KwIf, "if", token.ParenOpen, "(", token.Word, "b", token.ParenClose, ")",
		token.Word, "foo", token.ParenOpen, "(", token.ParenClose, ")", token.Punctuator, ";",
		token.KwElse, "else",
		token.Word, "bar", token.ParenOpen, "(", token.ParenClose, ")", token.Punctuator, ";",
	)
	toks := run(lst)

	if got := countKind(toks, token.VBraceOpen); got != 3 {
		t.Fatalf("expected 3 VBRACE_OPEN (outer, inner-if, else), got %d: %v", got, kinds(toks))
	}
	if got := countKind(toks, token.VBraceClose); got != 3 {
		t.Fatalf("expected 3 VBRACE_CLOSE, got %d: %v", got, kinds(toks))
	}

	// The first ';' (closing foo()) must be followed by exactly one
	// VBRACE_CLOSE (the inner if's), not an immediate cascade.
	for i, tok := range toks {
		if tok.Kind == token.Punctuator && tok.Lexeme() == ";" && toks[i+1].Kind == token.VBraceClose {
			if i+2 < len(toks) && toks[i+2].Kind == token.VBraceClose {
				t.Errorf("outer vbrace cascaded before the trailing else was seen")
			}
			break
		}
	}

	last := toks[len(toks)-2:]
	if last[0].Kind != token.VBraceClose || last[1].Kind != token.VBraceClose {
		t.Errorf("expected else-body close and outer cascade back-to-back at the end, got %v", kinds(toks))
	}
}

// A brace-less do-while's body vbrace closes at the matching 'while',
// not at the body's own ';'.
func TestDoWhileVBraceClosesAtWhile(t *testing.T) {
	lst := build(
		token.KwDo, "do",
		token.Word, "foo", token.ParenOpen, "(", token.ParenClose, ")", token.Punctuator, ";",
		token.KwWhile, "while", token.ParenOpen, "(", token.Word, "cond", token.ParenClose, ")",
		token.Punctuator, ";",
	)
	toks := run(lst)

	var semiIdx, whileIdx, vbraceCloseIdx int = -1, -1, -1
	for i, tok := range toks {
		switch {
		case tok.Kind == token.Punctuator && tok.Lexeme() == ";" && semiIdx == -1:
			semiIdx = i
		case tok.Kind == token.KwWhile:
			whileIdx = i
		case tok.Kind == token.VBraceClose && vbraceCloseIdx == -1:
			vbraceCloseIdx = i
		}
	}
	if semiIdx == -1 || whileIdx == -1 || vbraceCloseIdx == -1 {
		t.Fatalf("missing expected tokens: %v", kinds(toks))
	}
	if vbraceCloseIdx <= semiIdx {
		t.Errorf("vbrace must not close at the body's own ';'")
	}
	if vbraceCloseIdx >= whileIdx {
		t.Errorf("vbrace must close before 'while' is stamped, got close at %d, while at %d", vbraceCloseIdx, whileIdx)
	}
	if countKind(toks, token.VBraceOpen) != 1 || countKind(toks, token.VBraceClose) != 1 {
		t.Fatalf("expected exactly one vbrace pair, got %v", kinds(toks))
	}
}

// Bracket balance and level monotonicity: every open/close pair leaves
// Level back where it started, and Level never goes negative.
func TestLevelInvariants(t *testing.T) {
	lst := build(
		token.KwFor, "for", token.ParenOpen, "(", token.Punctuator, ";", token.Punctuator, ";", token.ParenClose, ")",
		token.BraceOpen, "{",
		token.Word, "a", token.ParenOpen, "(", token.Word, "b", token.ParenClose, ")", token.Punctuator, ";",
		token.BraceClose, "}",
	)
	toks := run(lst)

	for _, tok := range toks {
		if tok.Level < 0 || tok.BraceLevel < 0 {
			t.Fatalf("negative level stamped on %v", tok)
		}
	}
	if toks[0].Level != toks[len(toks)-1].Level {
		t.Errorf("level did not return to its starting value: first=%d last=%d", toks[0].Level, toks[len(toks)-1].Level)
	}
}

// Preprocessor containment: once a single-statement body has started, a
// stray '#' forces its virtual brace closed rather than letting it
// straddle the directive.
func TestPreprocessorForcesVBraceClosed(t *testing.T) {
	lst := build(
		token.KwIf, "if", token.ParenOpen, "(", token.Word, "a", token.ParenClose, ")",
		token.Word, "foo",
		token.Pound, "#", token.PPEndif, "endif", token.Newline, "\n",
		token.Word, "bar", token.Punctuator, ";",
	)
	toks := run(lst)

	openIdx, closeIdx, poundIdx := -1, -1, -1
	for i, tok := range toks {
		switch tok.Kind {
		case token.VBraceOpen:
			openIdx = i
		case token.VBraceClose:
			if closeIdx == -1 {
				closeIdx = i
			}
		case token.Pound:
			poundIdx = i
		}
	}
	if openIdx == -1 || closeIdx == -1 || poundIdx == -1 {
		t.Fatalf("missing expected tokens: %v", kinds(toks))
	}
	if closeIdx >= poundIdx {
		t.Errorf("vbrace must force-close before the '#', got close at %d, pound at %d", closeIdx, poundIdx)
	}
}
