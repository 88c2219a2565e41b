package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uncrustify-go/frontend/pkg/token"
)

func TestListAppendAndWalk(t *testing.T) {
	lst := token.NewList(4)
	a := lst.Append(token.New(token.Word, "a", token.Position{Line: 1, Column: 1}))
	b := lst.Append(token.New(token.Word, "b", token.Position{Line: 1, Column: 3}))
	c := lst.Append(token.New(token.Word, "c", token.Position{Line: 1, Column: 5}))

	require.Equal(t, 3, lst.Len())
	assert.Equal(t, a, lst.Head())
	assert.Equal(t, c, lst.Tail())
	assert.Equal(t, b, lst.Next(a))
	assert.Equal(t, a, lst.Prev(b))
	assert.Equal(t, token.NoRef, lst.Next(c))
	assert.Equal(t, token.NoRef, lst.Prev(a))

	var lexemes []string
	lst.Each(func(_ token.Ref, tok *token.Token) bool {
		lexemes = append(lexemes, tok.Lexeme())
		return true
	})
	assert.Equal(t, []string{"a", "b", "c"}, lexemes)
}

func TestListInsertAndRemove(t *testing.T) {
	lst := token.NewList(4)
	a := lst.Append(token.New(token.Word, "a", token.Position{Line: 1, Column: 1}))
	c := lst.Append(token.New(token.Word, "c", token.Position{Line: 1, Column: 3}))

	b := lst.InsertAfter(a, token.New(token.Word, "b", token.Position{Line: 1, Column: 2}))
	require.Equal(t, 3, lst.Len())
	assert.Equal(t, b, lst.Next(a))
	assert.Equal(t, c, lst.Next(b))

	head := lst.InsertBefore(a, token.New(token.Word, "head", token.Position{Line: 0, Column: 0}))
	assert.Equal(t, head, lst.Head())

	lst.Remove(b)
	assert.Equal(t, c, lst.Next(a))
	assert.Equal(t, 3, lst.Len())

	got := make([]string, 0)
	for _, tok := range lst.Slice() {
		got = append(got, tok.Lexeme())
	}
	assert.Equal(t, []string{"head", "a", "c"}, got)
}
