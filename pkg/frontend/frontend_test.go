package frontend_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uncrustify-go/frontend/pkg/frontend"
	"github.com/uncrustify-go/frontend/pkg/langset"
	"github.com/uncrustify-go/frontend/pkg/token"
)

func run(t *testing.T, src string, lang langset.Mask) frontend.Result {
	t.Helper()
	res := frontend.Run([]rune(src), lang, frontend.DefaultOptions(), "<test>")
	require.False(t, res.HasFatal(), "unexpected fatal diagnostic(s): %v", res.Diags)
	return res
}

// Pointer vs. multiplication.
func TestRunPointerVsMultiplication(t *testing.T) {
	res := run(t, "int *p = a * b;", langset.C)

	var kinds []token.Kind
	res.List.Each(func(_ token.Ref, tok *token.Token) bool {
		if !tok.Kind.IsTrivia() && tok.Kind != token.EOF {
			kinds = append(kinds, tok.Kind)
		}
		return true
	})

	assert.Contains(t, kinds, token.PtrType, "pointer * must classify as PTR_TYPE")
	assert.Contains(t, kinds, token.Arith, "multiplication * must classify as ARITH")
}

// Virtual brace over a brace-less if body.
func TestRunVirtualBraceOverIf(t *testing.T) {
	res := run(t, "if (x) return 1;", langset.C)

	var sawOpen, sawClose bool
	res.List.Each(func(_ token.Ref, tok *token.Token) bool {
		switch tok.Kind {
		case token.VBraceOpen:
			sawOpen = true
		case token.VBraceClose:
			sawClose = true
		}
		return true
	})
	assert.True(t, sawOpen, "expected a VBRACE_OPEN")
	assert.True(t, sawClose, "expected a VBRACE_CLOSE")
}

// Empty input yields only the synthetic EOF.
func TestRunEmptyInput(t *testing.T) {
	res := run(t, "", langset.C)
	toks := res.List.Slice()
	require.Len(t, toks, 1)
	assert.Equal(t, token.EOF, toks[0].Kind)
}

// A leading BOM is its own token, not IN_PREPROC.
func TestRunByteOrderMark(t *testing.T) {
	res := run(t, string(rune(0xFEFF))+"int x;", langset.C)
	toks := res.List.Slice()
	require.NotEmpty(t, toks)
	assert.Equal(t, token.ByteOrderMark, toks[0].Kind)
	assert.False(t, toks[0].Flags.Has(token.FlagInPreproc))
}

// dump renders the non-trivia tokens of a Result as a stable,
// human-readable text block suitable for golden-snapshot comparison:
// kind, lexeme (when non-empty), and the structural fields every pass
// in the pipeline is responsible for stamping.
func dump(res frontend.Result) string {
	var sb strings.Builder
	res.List.Each(func(_ token.Ref, tok *token.Token) bool {
		if tok.Kind.IsTrivia() {
			return true
		}
		lex := tok.Lexeme()
		if lex == "" {
			fmt.Fprintf(&sb, "%-14s level=%d brace=%d\n", tok.Kind, tok.Level, tok.BraceLevel)
		} else {
			fmt.Fprintf(&sb, "%-14s %-12q level=%d brace=%d\n", tok.Kind, lex, tok.Level, tok.BraceLevel)
		}
		return true
	})
	return sb.String()
}

// TestRunEndToEndSnapshots exercises the full pipeline over one
// representative program per major dialect and snapshots the resulting
// classified-token dump, in the style of a go-snaps fixture runner that
// snapshots one interpreted program per language feature.
func TestRunEndToEndSnapshots(t *testing.T) {
	cases := []struct {
		name string
		src  string
		lang langset.Mask
	}{
		{
			name: "template_vs_less_than",
			src:  "vector<int> v; if (a < b) {}",
			lang: langset.CPP,
		},
		{
			name: "c_style_cast_vs_call",
			src:  "y = (int)x + foo(3);",
			lang: langset.C,
		},
		{
			name: "constructor_variable_ambiguity",
			src:  "void f() { Foo bar(1, 2); }",
			lang: langset.CPP,
		},
		{
			name: "objc_message_send",
			src:  `[arr addObject:@"x"];`,
			lang: langset.ObjC,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := run(t, tc.src, tc.lang)
			snaps.MatchSnapshot(t, dump(res))
		})
	}
}
