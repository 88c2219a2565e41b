package token

import "fmt"

// Position identifies a location in the original decoded input. Column and
// Line are 1-based and count runes (not bytes), except that the lexer
// advances Column past a tab to the next tab stop (Options.InputTabSize).
type Position struct {
	Line   int
	Column int
	Offset int
}

// IsValid reports whether p names a real location (Line must be positive;
// Offset 0 and Column 0 are both otherwise legitimate, e.g. for EOF at an
// empty file).
func (p Position) IsValid() bool {
	return p.Line > 0
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}
