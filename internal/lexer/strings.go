package lexer

import (
	"strings"

	"github.com/uncrustify-go/frontend/pkg/langset"
	"github.com/uncrustify-go/frontend/pkg/token"
)

// lexQuoted consumes a plain quoted literal (prefix already in sb, quote
// not yet consumed). Grounded on original_source's parse_string: the
// escape character(s) are configurable, a literal tab is optionally
// rewritten to "\t", and an embedded raw newline upgrades the token from
// String to StringMulti instead of ending the literal (matching the
// original's line-continuation-inside-quotes behavior).
func (l *Lexer) lexQuoted(pos token.Position, quote rune, prefix string) token.Token {
	return l.lexQuotedOpts(pos, quote, prefix, true)
}

func (l *Lexer) lexQuotedOpts(pos token.Position, quote rune, prefix string, allowEscape bool) token.Token {
	var sb strings.Builder
	sb.WriteString(prefix)
	sb.WriteRune(l.advance()) // opening quote

	kind := token.String
	if quote == '\'' {
		kind = token.Char
	}

	nl := 0
	escaped := false
	shouldEscapeTabs := allowEscape && l.opts.StringReplaceTabChars

	for !l.eof() {
		ch := l.cur()

		if ch == '\t' && shouldEscapeTabs {
			l.advance()
			esc := l.opts.StringEscapeChar
			if esc == 0 {
				esc = '\\'
			}
			sb.WriteRune(esc)
			sb.WriteRune('t')
			continue
		}

		ch = l.advance()
		sb.WriteRune(ch)

		switch {
		case ch == '\n':
			nl++
			kind = token.StringMulti
		case ch == '\r' && l.cur() != '\n':
			sb.WriteRune(l.advance())
			nl++
			kind = token.StringMulti
		}

		if escaped {
			escaped = false
			continue
		}

		if allowEscape {
			if l.opts.StringEscapeChar != 0 && ch == l.opts.StringEscapeChar {
				escaped = true
				continue
			}
			if l.opts.StringEscapeChar2 != 0 && ch == l.opts.StringEscapeChar2 && l.cur() == quote {
				escaped = true
				continue
			}
			if ch == '\\' && l.opts.StringEscapeChar == 0 && l.opts.StringEscapeChar2 == 0 {
				escaped = true
				continue
			}
		}

		if ch == quote {
			break
		}
	}

	tok := l.consumeSuffix(sb.String(), pos, kind)
	tok.NLCount = nl
	return l.flagPreproc(tok)
}

// consumeSuffix gobbles a trailing user-defined-literal suffix
// (identifier characters immediately following the closing quote), with
// a revert guard for format-specifier-looking suffixes such as PRIx32 or
// SCNx64 that are macro names, not literal suffixes.
func (l *Lexer) consumeSuffix(text string, pos token.Position, kind token.Kind) token.Token {
	s := l.save()
	var suf strings.Builder
	for isIdentStart(l.cur(), suf.Len() == 0) {
		suf.WriteRune(l.advance())
	}
	suffix := suf.String()
	if suffix != "" && looksLikeFormatMacro(suffix) {
		l.restore(s)
		suffix = ""
	}
	return token.New(kind, text+suffix, pos)
}

func isIdentStart(ch rune, first bool) bool {
	if first {
		return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
	}
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9')
}

// looksLikeFormatMacro reports whether a gobbled suffix is actually one
// of the PRI.../SCN... <cinttypes> format-specifier macros glued onto a
// string literal ("%" PRIx32), which must not be folded into the string
// token as a user-defined-literal suffix.
func looksLikeFormatMacro(s string) bool {
	return strings.HasPrefix(s, "PRI") || strings.HasPrefix(s, "SCN")
}

// lexPrefixedString handles the L/S/u/U/u8/R/@/$/r/x prefixed literal
// forms once hasQuoteAfterPrefix has confirmed a quote follows.
func (l *Lexer) lexPrefixedString(pos token.Position) token.Token {
	switch l.cur() {
	case 'R':
		if l.lang.Has(langset.CPP) {
			l.advance()
			return l.lexRawString(pos)
		}
	case '@':
		if l.lang.Has(langset.ObjC) && !l.lang.Has(langset.CS) {
			var prefix strings.Builder
			prefix.WriteRune(l.advance())
			tok := l.lexQuoted(pos, l.cur(), prefix.String())
			tok.Flags = tok.Flags.Set(token.FlagOCBoxed)
			return tok
		}
		if l.lang.Has(langset.CS) {
			return l.lexCSString(pos)
		}
	case '$':
		if l.lang.Has(langset.CS) {
			return l.lexCSString(pos)
		}
	case 'r', 'x':
		if l.lang.Has(langset.D) {
			var prefix strings.Builder
			prefix.WriteRune(l.advance())
			return l.lexQuotedOpts(pos, l.cur(), prefix.String(), false)
		}
	}

	var prefix strings.Builder
	if l.cur() == 'u' && l.at(1) == '8' {
		prefix.WriteRune(l.advance())
		prefix.WriteRune(l.advance())
	} else {
		prefix.WriteRune(l.advance())
	}
	return l.lexQuoted(pos, l.cur(), prefix.String())
}

// lexRawString consumes a C++11 raw string literal R"tag(...)tag" whose
// terminating sequence is the exact tag between the matching parens.
func (l *Lexer) lexRawString(pos token.Position) token.Token {
	var sb strings.Builder
	sb.WriteString("R")
	sb.WriteRune(l.advance()) // opening quote

	var tag strings.Builder
	for l.cur() != '(' && !l.eof() {
		tag.WriteRune(l.advance())
	}
	sb.WriteString(tag.String())
	if l.cur() == '(' {
		sb.WriteRune(l.advance())
	}

	closer := ")" + tag.String() + "\""
	for !l.eof() {
		if l.cur() == ')' && l.window(len(closer)) == closer {
			for range closer {
				sb.WriteRune(l.advance())
			}
			break
		}
		sb.WriteRune(l.advance())
	}
	return l.flagPreproc(l.consumeSuffix(sb.String(), pos, token.String))
}

// lexBacktickString consumes a D Wysiwyg `...` string, which recognizes
// no escapes at all.
func (l *Lexer) lexBacktickString(pos token.Position) token.Token {
	return l.lexQuotedOpts(pos, '`', "", false)
}

// lexCSString handles C# verbatim (@"...") and interpolated ($"...") or
// combined ($@"..."/@$"...") string forms. Interpolation braces can
// nest further interpolated strings, so a small depth stack tracks
// { }-expressions versus the enclosing string(s), mirroring
// original_source's CsStringParseState stack.
func (l *Lexer) lexCSString(pos token.Position) token.Token {
	type csState struct {
		verbatim bool
		depth    int
	}
	var sb strings.Builder
	var stack []csState

	readOpener := func() (csState, bool) {
		verbatim := false
		n := 0
		if l.at(n) == '$' {
			n++
		}
		if l.at(n) == '@' {
			verbatim = true
			n++
		}
		if l.at(n) != '"' {
			return csState{}, false
		}
		for i := 0; i <= n; i++ {
			sb.WriteRune(l.advance())
		}
		return csState{verbatim: verbatim}, true
	}

	st, ok := readOpener()
	if !ok {
		return l.lexQuoted(pos, l.cur(), "")
	}
	stack = append(stack, st)

	kind := token.String
	for len(stack) > 0 && !l.eof() {
		top := &stack[len(stack)-1]
		if top.depth > 0 {
			if l.cur() == '}' {
				sb.WriteRune(l.advance())
				if l.cur() == '}' {
					sb.WriteRune(l.advance())
				} else {
					top.depth--
				}
				continue
			}
			if next, ok := readOpener(); ok {
				stack = append(stack, next)
				continue
			}
		}

		ch := l.advance()
		sb.WriteRune(ch)

		switch {
		case ch == '\n':
			kind = token.StringMulti
		case ch == '\r':
			kind = token.StringMulti
			if l.cur() == '\n' {
				sb.WriteRune(l.advance())
			}
		case top.depth > 0:
			// inside an interpolation expression, only newline handling applies
		case ch == '\\' && !top.verbatim:
			if !l.eof() {
				sb.WriteRune(l.advance())
			}
		case ch == '"' && top.verbatim && l.cur() == '"':
			sb.WriteRune(l.advance())
		case ch == '"':
			stack = stack[:len(stack)-1]
		case ch == '{':
			top.depth++
		}
	}

	tok := token.New(kind, sb.String(), pos)
	return l.flagPreproc(tok)
}
