package lexer

import "github.com/uncrustify-go/frontend/pkg/token"

// lexPoundDirective consumes a '#' (or the %: digraph, handled instead by
// lexPunctuator) at the start of a logical line and opens preprocessor
// mode: every subsequent token up to the terminating unescaped newline is
// flagged FlagInPreproc (§3 invariant 5), and the very next identifier is
// classified as the directive name rather than looked up normally.
func (l *Lexer) lexPoundDirective(pos token.Position) token.Token {
	l.advance()
	l.inPreprocLine = true
	l.ppFirstTokSeen = false
	l.inDefineBody = false
	l.pendingDefineName = false
	tok := token.New(token.Pound, "#", pos)
	tok.Flags = tok.Flags.Set(token.FlagInPreproc)
	return tok
}

// markDefineBody is invoked once the macro name following a PPDefine
// directive token has been consumed, so the rest of the same logical
// line is known to be macro body text (see definePPBody).
func (l *Lexer) markDefineBody() { l.inDefineBody = true }
