package classify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uncrustify-go/frontend/pkg/frontend"
	"github.com/uncrustify-go/frontend/pkg/langset"
	"github.com/uncrustify-go/frontend/pkg/token"
)

func classify(t *testing.T, src string, lang langset.Mask) *token.List {
	t.Helper()
	res := frontend.Run([]rune(src), lang, frontend.DefaultOptions(), "<test>")
	require.False(t, res.HasFatal(), "unexpected fatal diagnostic(s): %v", res.Diags)
	return res.List
}

func find(t *testing.T, lst *token.List, lexeme string) *token.Token {
	t.Helper()
	var found *token.Token
	lst.Each(func(_ token.Ref, tok *token.Token) bool {
		if tok.Lexeme() == lexeme && found == nil {
			found = tok
		}
		return true
	})
	require.NotNil(t, found, "no token with lexeme %q", lexeme)
	return found
}

// Constructor-variable ambiguity (scenario 5): at function-body scope,
// "Foo bar(1, 2);" is a variable declaration, not a prototype.
func TestConstructorVariableAmbiguity(t *testing.T) {
	lst := classify(t, "void f() { Foo bar(1, 2); }", langset.CPP)

	bar := find(t, lst, "bar")
	assert.Equal(t, token.FuncCtorVar, bar.Kind)
	assert.True(t, bar.Flags.Has(token.FlagVar1stDef))
}

// The same shape at file scope is an ordinary prototype.
func TestConstructorVariableAmbiguityAtFileScopeIsPrototype(t *testing.T) {
	lst := classify(t, "Foo bar(1, 2);", langset.CPP)

	bar := find(t, lst, "bar")
	assert.Equal(t, token.FuncProto, bar.Kind)
}

// Objective-C message send (scenario 6): the leading selector word is
// OC_MSG_FUNC, ':' is OC_COLON, and the brackets carry OC_MSG as parent.
func TestObjCMessageSend(t *testing.T) {
	lst := classify(t, `[arr addObject:@"x"];`, langset.ObjC)

	addObject := find(t, lst, "addObject")
	assert.Equal(t, token.OCMsgFunc, addObject.Kind)

	str := find(t, lst, `@"x"`)
	assert.Equal(t, token.String, str.Kind)
	assert.True(t, str.Flags.Has(token.FlagOCBoxed))

	var openKind, closeKind token.Kind
	lst.Each(func(_ token.Ref, tok *token.Token) bool {
		switch tok.Kind {
		case token.SquareOpen:
			openKind = tok.ParentKind
		case token.SquareClose:
			closeKind = tok.ParentKind
		}
		return true
	})
	assert.Equal(t, token.OCMessageSend, openKind)
	assert.Equal(t, token.OCMessageSend, closeKind)
}

// A multi-keyword send tags only the first selector word OC_MSG_FUNC;
// later keyword-argument words stay OC_SELECTOR.
func TestObjCMessageSendMultiKeyword(t *testing.T) {
	lst := classify(t, `[dict setObject:val forKey:key];`, langset.ObjC)

	setObject := find(t, lst, "setObject")
	assert.Equal(t, token.OCMsgFunc, setObject.Kind)

	forKey := find(t, lst, "forKey")
	assert.Equal(t, token.OCSelector, forKey.Kind)
}

// void (*name)(args): the function-pointer recognizer must fire even
// though the leading '*' has already been retagged to DEREF by the
// unary-operator sweep that runs before it.
func TestFuncPointerDeclaration(t *testing.T) {
	lst := classify(t, "void (*name)(int x);", langset.C)

	star := find(t, lst, "*")
	assert.Equal(t, token.PtrType, star.Kind)

	name := find(t, lst, "name")
	assert.Equal(t, token.FuncTypeVar, name.Kind)
	assert.True(t, name.Flags.Has(token.FlagVar1stDef))

	var tparenOpens, tparenCloses int
	lst.Each(func(_ token.Ref, tok *token.Token) bool {
		switch tok.Kind {
		case token.TParenOpen:
			tparenOpens++
		case token.TParenClose:
			tparenCloses++
		}
		return true
	})
	assert.Equal(t, 1, tparenOpens)
	assert.Equal(t, 1, tparenCloses)
}

// A genuine dereference at expression-start must still classify as
// DEREF, not get swept into the function-pointer shape.
func TestGenuineDereferenceIsNotFuncPointer(t *testing.T) {
	lst := classify(t, "x = (*p);", langset.C)

	star := find(t, lst, "*")
	assert.Equal(t, token.Deref, star.Kind)
}
