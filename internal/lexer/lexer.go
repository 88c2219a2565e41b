// Package lexer turns decoded Unicode source text into the raw token
// sequence the frame pass and classifier build on. It is adapted from
// a rune-buffer-plus-cursor design (checkpoint/restore
// state, a first-rune dispatch table, one-token-per-iteration emission)
// generalized from a single scripting-language grammar to the
// character-table/keyword-table/punctuator-table-driven, multi-language
// front end this package is part of.
package lexer

import (
	"strings"

	"github.com/uncrustify-go/frontend/internal/diag"
	"github.com/uncrustify-go/frontend/pkg/chartable"
	"github.com/uncrustify-go/frontend/pkg/langset"
	"github.com/uncrustify-go/frontend/pkg/punct"
	"github.com/uncrustify-go/frontend/pkg/token"
)

// Stats tallies the line-ending bytes observed in the input, used by
// later stages to pick an output EOL style.
type Stats struct {
	CRCount   int
	LFCount   int
	CRLFCount int
}

// Lexer holds the immutable decoded input and a mutable cursor, plus the
// small amount of state (ignore-mode, preprocessor-line tracking) that
// must survive across NextToken calls. Unlike a Lexer scoped to one file, which
// buffers tokens for a parser's lookahead, this one is driven start to
// finish by Tokenize and appends directly into the List it builds; no
// pass re-reads the lexer afterward.
type Lexer struct {
	input []rune
	lang  langset.Mask
	opts  Options
	diags *diag.Bag
	file  string

	pos  int
	line int
	col  int

	// inPreprocLine is true from a '#' at the start of a logical line
	// until the next unescaped newline; every token lexed in that window
	// is flagged FlagInPreproc.
	inPreprocLine  bool
	ppFirstTokSeen bool
	inDefineBody   bool
	// pendingDefineName is true for the single word between a PPDefine
	// token and the macro name that follows it; consuming that word
	// flips inDefineBody on for the remainder of the logical line.
	pendingDefineName bool

	// ignoreMode is true between a disable-marker comment and the next
	// enable-marker comment; tokens lexed in that window are emitted as
	// Ignored with their exact source text.
	ignoreMode bool

	stats Stats
}

// state is a lightweight checkpoint of the cursor, used for speculative
// lexing (string-suffix gobbling, raw-string tag matching) that may need
// to back out. Copying it is just copying three ints plus two bools.
type state struct {
	pos            int
	line           int
	col            int
	inPreprocLine  bool
	ppFirstTokSeen bool
}

// New returns a Lexer over decoded input for the given active-language
// mask. A leading UTF-8 BOM is recognized but left in the input so
// Tokenize emits it as a dedicated ByteOrderMark token, matching the
// §8 boundary-behavior requirement that the BOM is its own token.
func New(input []rune, lang langset.Mask, opts Options, diags *diag.Bag, file string) *Lexer {
	return &Lexer{
		input: input,
		lang:  lang,
		opts:  opts,
		diags: diags,
		file:  file,
		line:  1,
		col:   1,
	}
}

// Stats returns the line-ending counts accumulated so far.
func (l *Lexer) Stats() Stats { return l.stats }

func (l *Lexer) save() state {
	return state{pos: l.pos, line: l.line, col: l.col, inPreprocLine: l.inPreprocLine, ppFirstTokSeen: l.ppFirstTokSeen}
}

func (l *Lexer) restore(s state) {
	l.pos, l.line, l.col = s.pos, s.line, s.col
	l.inPreprocLine, l.ppFirstTokSeen = s.inPreprocLine, s.ppFirstTokSeen
}

func (l *Lexer) eof() bool { return l.pos >= len(l.input) }

func (l *Lexer) cur() rune {
	if l.eof() {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) at(n int) rune {
	if l.pos+n >= len(l.input) || l.pos+n < 0 {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) advance() rune {
	r := l.cur()
	l.pos++
	switch r {
	case '\n':
		l.line++
		l.col = 1
	case '\t':
		tabSize := l.opts.InputTabSize
		if tabSize <= 0 {
			tabSize = 8
		}
		l.col = ((l.col-1)/tabSize+1)*tabSize + 1
	default:
		l.col++
	}
	return r
}

func (l *Lexer) pos0() token.Position {
	return token.Position{Line: l.line, Column: l.col, Offset: l.pos}
}

func (l *Lexer) warn(pos token.Position, format string, args ...any) {
	l.diags.Addf(diag.Warning, pos, string(l.input), l.file, format, args...)
}

// Tokenize runs the lexer to completion and returns the resulting token
// List, terminated by a single EOF token.
func (l *Lexer) Tokenize() *token.List {
	list := token.NewList(len(l.input)/3 + 16)

	if len(l.input) >= 1 && l.input[0] == 0xFEFF {
		pos := l.pos0()
		l.advance()
		list.Append(token.New(token.ByteOrderMark, string(rune(0xFEFF)), pos))
	}

	for !l.eof() {
		tok, ok := l.nextToken()
		if !ok {
			continue
		}
		list.Append(tok)
	}

	list.Append(token.New(token.EOF, "", l.pos0()))
	return list
}

// nextToken classifies and consumes exactly one lexeme. The bool return
// is false when the lexeme produced no token (never currently the case,
// kept for symmetry with handlers that may skip synthetic markers).
func (l *Lexer) nextToken() (token.Token, bool) {
	pos := l.pos0()
	ch := l.cur()

	var tok token.Token
	switch {
	case ch == '\r' || ch == '\n':
		tok = l.lexNewline(pos)
	case ch == ' ' || ch == '\t':
		tok = l.lexWhitespace(pos)
	case ch == '\\' && l.isBackslashNewline() && !l.opts.DisableProcessingNLCont:
		tok = l.lexBackslashNewline(pos)
	case ch == '\\' && l.at(1) == '"' && l.lang.Has(langset.Pawn):
		l.advance()
		tok = l.lexQuoted(pos, '"', "\\")
	case ch == '/' && (l.at(1) == '/' || l.at(1) == '*'):
		tok = l.lexComment(pos)
	case ch == '/' && l.at(1) == '+' && l.lang.Has(langset.D):
		tok = l.lexDNestedComment(pos)
	case l.ignoreMode:
		tok = l.lexIgnored(pos)
	case ch == '#' && l.atLineStart():
		tok = l.lexPoundDirective(pos)
	case ch == '"' || ch == '\'':
		tok = l.lexQuoted(pos, ch, "")
	case ch == '`' && l.lang.Has(langset.D):
		tok = l.lexBacktickString(pos)
	case ch == '!' && l.at(1) == '"' && l.lang.Has(langset.Pawn):
		l.advance()
		tok = l.lexQuotedOpts(pos, '"', "!", false)
	case isStringPrefix(ch) && l.hasQuoteAfterPrefix():
		tok = l.lexPrefixedString(pos)
	case isDigit(ch) || (ch == '.' && isDigit(l.at(1))):
		tok = l.lexNumber(pos)
	case chartable.IsKw1(ch) || ch == '\\' && (l.at(1) == 'u' || l.at(1) == 'U'):
		tok = l.lexWord(pos)
	case ch == '@' && l.lang.Has(langset.Java) && chartable.IsKw1(l.at(1)):
		tok = l.lexAnnotation(pos)
	case ch == '[' && l.at(1) == '[' && l.lang.Has(langset.CPP):
		tok = l.lexAttribute(pos)
	default:
		tok = l.lexPunctuator(pos)
	}
	return tok, true
}

func (l *Lexer) atLineStart() bool { return l.col == 1 }

func isDigit(ch rune) bool { return ch >= '0' && ch <= '9' }

func isStringPrefix(ch rune) bool {
	switch ch {
	case 'L', 'S', 'u', 'U', 'R', '@', '$', 'r', 'x':
		return true
	default:
		return false
	}
}

// hasQuoteAfterPrefix performs a short, checkpointed lookahead to decide
// whether a letter like 'L' or 'u' is really a string-literal prefix
// (L"...") or just the start of an ordinary identifier (Length). Mirrors
// an isCharLiteralStandalone checkpoint-lookahead idiom.
func (l *Lexer) hasQuoteAfterPrefix() bool {
	s := l.save()
	defer l.restore(s)

	switch l.cur() {
	case 'u':
		if l.at(1) == '8' && (l.at(2) == '"' || l.at(2) == '\'') {
			return true
		}
		return l.at(1) == '"' || l.at(1) == '\''
	case 'L', 'S', 'U':
		return l.at(1) == '"' || l.at(1) == '\''
	case 'R':
		return l.lang.Has(langset.CPP) && l.at(1) == '"'
	case '@':
		if l.lang.Has(langset.ObjC) && !l.lang.Has(langset.CS) {
			return l.at(1) == '"'
		}
		return l.lang.Has(langset.CS) && (l.at(1) == '"' || l.at(1) == '$')
	case '$':
		return l.lang.Has(langset.CS) && (l.at(1) == '"' || l.at(1) == '@')
	case 'r', 'x':
		return l.lang.Has(langset.D) && l.at(1) == '"'
	default:
		return false
	}
}

func (l *Lexer) isBackslashNewline() bool {
	// Only the odd-numbered backslash of a run can continue a line: an
	// even run ending at the newline leaves it unescaped.
	n := 0
	for i := l.pos - 1; i >= 0 && l.input[i] == '\\'; i-- {
		n++
	}
	if n%2 == 1 {
		return false
	}
	s := l.save()
	defer l.restore(s)
	l.advance() // consume backslash
	for l.cur() == ' ' || l.cur() == '\t' {
		l.advance()
	}
	return l.cur() == '\n' || l.cur() == '\r'
}

func (l *Lexer) lexWhitespace(pos token.Position) token.Token {
	for l.cur() == ' ' || l.cur() == '\t' {
		l.advance()
	}
	return token.New(token.Whitespace, "", pos)
}

func (l *Lexer) lexBackslashNewline(pos token.Position) token.Token {
	l.advance() // backslash
	for l.cur() == ' ' || l.cur() == '\t' {
		l.advance()
	}
	l.consumeEOL()
	tok := token.New(token.NLCont, "", pos)
	tok.NLCount = 1
	return tok
}

func (l *Lexer) lexNewline(pos token.Position) token.Token {
	n := 0
	for {
		switch {
		case l.cur() == '\r' && l.at(1) == '\n':
			l.advance()
			l.advance()
			l.stats.CRLFCount++
		case l.cur() == '\n':
			l.advance()
			l.stats.LFCount++
		case l.cur() == '\r':
			l.advance()
			l.stats.CRCount++
		default:
			tok := token.New(token.Newline, "", pos)
			tok.NLCount = n
			if l.inPreprocLine {
				l.inPreprocLine = false
				l.ppFirstTokSeen = false
				l.inDefineBody = false
				l.pendingDefineName = false
			}
			return tok
		}
		n++
		for l.cur() == ' ' || l.cur() == '\t' {
			l.advance()
		}
	}
}

func (l *Lexer) consumeEOL() {
	switch {
	case l.cur() == '\r' && l.at(1) == '\n':
		l.advance()
		l.advance()
		l.stats.CRLFCount++
	case l.cur() == '\n':
		l.advance()
		l.stats.LFCount++
	case l.cur() == '\r':
		l.advance()
		l.stats.CRCount++
	}
}

func (l *Lexer) lexPunctuator(pos token.Position) token.Token {
	window := l.window(punct.MaxLen)
	kind, n := punct.Lookup(window, l.lang)
	if n == 0 {
		bad := l.advance()
		l.warn(pos, "unknown byte %q", bad)
		return l.flagPreproc(token.New(token.Unknown, string(bad), pos))
	}
	var sb strings.Builder
	for i := 0; i < n; i++ {
		sb.WriteRune(l.advance())
	}
	return l.flagPreproc(token.New(kind, sb.String(), pos))
}

func (l *Lexer) window(n int) string {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		r := l.at(i)
		if r == 0 {
			break
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// flagPreproc sets FlagInPreproc on tok when the cursor is currently
// inside a preprocessor logical line (§3 invariant 5).
func (l *Lexer) flagPreproc(tok token.Token) token.Token {
	if l.inPreprocLine {
		tok.Flags = tok.Flags.Set(token.FlagInPreproc)
	}
	return tok
}

func (l *Lexer) lexAttribute(pos token.Position) token.Token {
	var sb strings.Builder
	sb.WriteRune(l.advance())
	sb.WriteRune(l.advance())
	depth := 1
	parenDepth := 0
	for !l.eof() && depth > 0 {
		ch := l.cur()
		switch {
		case ch == '(':
			parenDepth++
		case ch == ')':
			parenDepth--
		case ch == '[' && parenDepth == 0:
			depth++
		case ch == ']' && parenDepth == 0:
			depth--
			if depth == 0 {
				sb.WriteRune(l.advance())
				continue
			}
		}
		sb.WriteRune(l.advance())
	}
	return l.flagPreproc(token.New(token.Attribute, sb.String(), pos))
}
