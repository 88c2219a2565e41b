package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/uncrustify-go/frontend/pkg/token"
)

func TestKindRoleAndPair(t *testing.T) {
	cases := []struct {
		open  token.Kind
		close token.Kind
	}{
		{token.ParenOpen, token.ParenClose},
		{token.BraceOpen, token.BraceClose},
		{token.SquareOpen, token.SquareClose},
		{token.VBraceOpen, token.VBraceClose},
		{token.FParenOpen, token.FParenClose},
		{token.SParenOpen, token.SParenClose},
		{token.TParenOpen, token.TParenClose},
		{token.AngleOpen, token.AngleClose},
	}
	for _, tc := range cases {
		assert.Equal(t, token.Open, tc.open.Role())
		assert.Equal(t, token.Close, tc.close.Role())

		pair, ok := tc.open.Pair()
		assert.True(t, ok)
		assert.Equal(t, tc.close, pair)

		pair, ok = tc.close.Pair()
		assert.True(t, ok)
		assert.Equal(t, tc.open, pair)
	}

	assert.Equal(t, token.NotBracket, token.Word.Role())
	_, ok := token.Word.Pair()
	assert.False(t, ok)
}

func TestKindFamilyPredicates(t *testing.T) {
	assert.True(t, token.CommentLine.IsTrivia())
	assert.False(t, token.Word.IsTrivia())

	assert.True(t, token.String.IsLiteral())
	assert.False(t, token.Word.IsLiteral())

	assert.True(t, token.Word.IsIdent())
	assert.True(t, token.Attribute.IsIdent())
	assert.False(t, token.KwIf.IsIdent())

	assert.True(t, token.KwIf.IsKeyword())
	assert.False(t, token.Word.IsKeyword())

	assert.True(t, token.FuncDef.IsFuncTag())
	assert.True(t, token.FuncCtorVar.IsFuncTag())

	assert.True(t, token.ParenOpen.IsBracket())
	assert.True(t, token.SquareClose.IsBracket())
	assert.False(t, token.Word.IsBracket())

	assert.True(t, token.PPDefine.IsPreproc())
	assert.False(t, token.KwIf.IsPreproc())
}

func TestKindStringNames(t *testing.T) {
	assert.Equal(t, "ATTRIBUTE", token.Attribute.String())
	assert.Equal(t, "OC_MSG_FUNC", token.OCMsgFunc.String())
	assert.Equal(t, "TSQUARE", token.TSquare.String())
}
