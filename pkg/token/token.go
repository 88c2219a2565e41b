package token

import "fmt"

const literalPreviewLen = 20

// Token is one node of the canonical token stream. Tokens are created by
// the lexer and by the frame pass / classifier's insertion routines
// (virtual braces, split "[]"); after that only the classification fields
// below the Orig* line may change.
type Token struct {
	Kind       Kind
	ParentKind Kind

	text []rune

	// Immutable once set by the lexer.
	OrigLine   int
	OrigCol    int
	OrigColEnd int
	OrigPrevSp int // whitespace width preceding this token on its line

	// Mutated by later (external) passes; read-only to this module's core.
	Column       int
	ColumnIndent int

	Level      int
	BraceLevel int
	PPLevel    int

	NLCount int
	Flags   Flags
}

// New creates a Token with the given kind, literal text, and position.
// New derives OrigColEnd from the rune count of text.
func New(kind Kind, text string, pos Position) Token {
	runes := []rune(text)
	return Token{
		Kind:       kind,
		text:       runes,
		OrigLine:   pos.Line,
		OrigCol:    pos.Column,
		OrigColEnd: pos.Column + len(runes),
	}
}

// Lexeme returns the token's literal source text. Whitespace/newline
// tokens return "".
func (t Token) Lexeme() string { return string(t.text) }

// SetLexeme overwrites the literal text; used by later passes that
// rewrite a token in place rather than replacing it in the list.
func (t *Token) SetLexeme(s string) { t.text = []rune(s) }

// Length returns the rune length of the token's literal text.
func (t Token) Length() int { return len(t.text) }

// Pos returns the token's original position as a Position value.
func (t Token) Pos() Position {
	return Position{Line: t.OrigLine, Column: t.OrigCol}
}

func (t Token) String() string {
	if t.Kind == EOF {
		return fmt.Sprintf("EOF at %d:%d", t.OrigLine, t.OrigCol)
	}
	if len(t.text) == 0 {
		return fmt.Sprintf("%s at %d:%d", t.Kind, t.OrigLine, t.OrigCol)
	}
	if len(t.text) > literalPreviewLen {
		preview := string(t.text[:literalPreviewLen])
		return fmt.Sprintf("%s(%q...) at %d:%d", t.Kind, preview, t.OrigLine, t.OrigCol)
	}
	return fmt.Sprintf("%s(%q) at %d:%d", t.Kind, t.Lexeme(), t.OrigLine, t.OrigCol)
}
