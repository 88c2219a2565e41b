package lexer

import (
	"testing"

	"github.com/uncrustify-go/frontend/internal/diag"
	"github.com/uncrustify-go/frontend/pkg/langset"
	"github.com/uncrustify-go/frontend/pkg/token"
)

func lexAll(t *testing.T, src string, lang langset.Mask) []token.Token {
	t.Helper()
	diags := diag.NewBag()
	l := New([]rune(src), lang, DefaultOptions(), diags, "<test>")
	return l.Tokenize().Slice()
}

func codeKinds(toks []token.Token) []token.Kind {
	var out []token.Kind
	for _, tok := range toks {
		if tok.Kind.IsTrivia() || tok.Kind == token.EOF {
			continue
		}
		out = append(out, tok.Kind)
	}
	return out
}

// Empty input yields only the synthetic EOF.
func TestTokenizeEmptyInput(t *testing.T) {
	toks := lexAll(t, "", langset.C)
	if len(toks) != 1 || toks[0].Kind != token.EOF {
		t.Fatalf("expected a single EOF token, got %v", toks)
	}
}

// A leading BOM is its own token, excluded from IN_PREPROC.
func TestTokenizeByteOrderMark(t *testing.T) {
	toks := lexAll(t, string(rune(0xFEFF))+"int x;", langset.C)
	if toks[0].Kind != token.ByteOrderMark {
		t.Fatalf("expected ByteOrderMark first, got %s", toks[0].Kind)
	}
	if toks[0].Flags.Has(token.FlagInPreproc) {
		t.Errorf("BOM must not be counted in IN_PREPROC")
	}
}

func TestTokenizeNumbers(t *testing.T) {
	cases := []struct {
		src  string
		kind token.Kind
	}{
		{"42", token.Number},
		{"0x1F", token.Number},
		{"0b1010", token.Number},
		{"3.14", token.NumberFP},
		{"1e10", token.NumberFP},
		{"100u", token.Number},
		{"1'000'000", token.Number},
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			toks := lexAll(t, tc.src, langset.C)
			if got := codeKinds(toks); len(got) != 1 || got[0] != tc.kind {
				t.Errorf("lexing %q: got kinds %v, want [%s]", tc.src, got, tc.kind)
			}
		})
	}
}

// A single decimal point is a number; two adjacent dots is not (reserved
// for range/ellipsis-like punctuators elsewhere in the grammar).
func TestTokenizeNumberSingleDot(t *testing.T) {
	toks := lexAll(t, "1.5", langset.C)
	got := codeKinds(toks)
	if len(got) != 1 || got[0] != token.NumberFP {
		t.Fatalf("got %v, want single NUMBER_FP", got)
	}
}

func TestTokenizeRawStringMatchingTag(t *testing.T) {
	src := `R"tag(hello )notthetag) world)tag"`
	toks := lexAll(t, src, langset.CPP)
	got := codeKinds(toks)
	if len(got) != 1 || got[0] != token.String {
		t.Fatalf("got %v, want single STRING", got)
	}
	if toks[0].Lexeme() != src {
		t.Errorf("raw string must only terminate on the exact matching tag; got %q", toks[0].Lexeme())
	}
}

func TestTokenizeUDLSuffixRevertsOnFormatMacro(t *testing.T) {
	// "%" PRIx32 glues a format-specifier macro directly onto a string
	// literal; the lexer must not gobble PRIx32 as a user-defined-literal
	// suffix.
	toks := lexAll(t, `"%" PRIx32`, langset.CPP)
	got := codeKinds(toks)
	if len(got) != 2 {
		t.Fatalf("got %v, want STRING then WORD (suffix not gobbled)", got)
	}
	if toks2 := nonTrivia(toks); toks2[0].Lexeme() != `"%"` {
		t.Errorf("format-macro suffix must not be folded into the string, got %q", toks2[0].Lexeme())
	}
}

func nonTrivia(toks []token.Token) []token.Token {
	var out []token.Token
	for _, tok := range toks {
		if tok.Kind.IsTrivia() || tok.Kind == token.EOF {
			continue
		}
		out = append(out, tok)
	}
	return out
}

func TestTokenizeCSVerbatimAndInterpolated(t *testing.T) {
	toks := lexAll(t, `@"a""b"`, langset.CS)
	got := nonTrivia(toks)
	if len(got) != 1 || got[0].Kind != token.String {
		t.Fatalf("got %v, want single STRING", got)
	}

	toks = lexAll(t, `$"{1 + "x"}"`, langset.CS)
	got = nonTrivia(toks)
	if len(got) != 1 || got[0].Kind != token.String {
		t.Fatalf("interpolated string with nested string literal: got %v", got)
	}
}

// Comment-embedded disable/enable markers switch subsequent tokens to
// IGNORED, verbatim, until the matching enable marker.
func TestTokenizeIgnoreMarkers(t *testing.T) {
	src := "a;\n/* *INDENT-OFF* */\nb c\n/* *INDENT-ON* */\nd;"
	toks := nonTrivia(lexAll(t, src, langset.C))

	var sawIgnored bool
	var dIdx = -1
	for i, tok := range toks {
		if tok.Kind == token.Ignored {
			sawIgnored = true
		}
		if tok.Kind == token.Word && tok.Lexeme() == "d" {
			dIdx = i
		}
	}
	if !sawIgnored {
		t.Fatalf("expected IGNORED tokens between markers, got %v", toks)
	}
	if dIdx == -1 || toks[dIdx].Kind != token.Word {
		t.Errorf("token after the enable marker must resume normal classification")
	}
}

// An odd trailing-backslash count at a `#define` continuation keeps the
// directive going; an even count ends it.
func TestDefineBackslashContinuationParity(t *testing.T) {
	// One backslash (odd) continues the directive onto the next line.
	toks := nonTrivia(lexAll(t, "#define X \\\nY\n", langset.C))
	for _, tok := range toks {
		if tok.Kind == token.Word && tok.Lexeme() == "Y" {
			if !tok.Flags.Has(token.FlagInPreproc) {
				t.Errorf("continuation should keep Y inside the directive")
			}
		}
	}
}

func TestTokenizePawnQuotedForms(t *testing.T) {
	toks := nonTrivia(lexAll(t, `\"abc"`, langset.Pawn))
	if len(toks) != 1 || toks[0].Kind != token.String {
		t.Fatalf("got %v, want single STRING", toks)
	}
}
