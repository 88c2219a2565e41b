package lexer

import (
	"regexp"
	"strings"

	"github.com/uncrustify-go/frontend/pkg/langset"
	"github.com/uncrustify-go/frontend/pkg/token"
)

// lexComment consumes a "//" line comment or a "/* */" block comment (D's
// "/+ +/" comments go to lexDNestedComment from nextToken). Grounded
// on original_source/src/tokenizer/tokenize.cpp's parse_comment: a C++
// comment continues onto the next physical line when its text ends in an
// odd number of backslashes, and two adjacent "/* */" comments separated
// only by spaces/tabs are folded into one token.
func (l *Lexer) lexComment(pos token.Position) token.Token {
	l.advance() // '/'
	second := l.advance()

	var sb strings.Builder
	sb.WriteRune('/')
	sb.WriteRune(second)

	var tok token.Token
	if second == '/' {
		tok = l.lexLineComment(pos, &sb)
	} else {
		tok = l.lexBlockComment(pos, &sb)
	}
	l.scanMarkers(tok.Lexeme())
	return l.flagPreproc(tok)
}

func (l *Lexer) lexLineComment(pos token.Position, sb *strings.Builder) token.Token {
	nl := 0
	for {
		bs := 0
		for !l.eof() && l.cur() != '\r' && l.cur() != '\n' {
			if l.cur() == '\\' && !l.lang.Has(langset.CS) {
				bs++
			} else {
				bs = 0
			}
			sb.WriteRune(l.advance())
		}
		if bs%2 == 0 || l.eof() {
			break
		}
		if l.cur() == '\r' && l.at(1) == '\n' {
			sb.WriteRune(l.advance())
			sb.WriteRune(l.advance())
			l.stats.CRLFCount++
		} else if l.cur() == '\n' {
			sb.WriteRune(l.advance())
			l.stats.LFCount++
		} else if l.cur() == '\r' {
			sb.WriteRune(l.advance())
			l.stats.CRCount++
		}
		nl++
	}
	tok := token.New(token.CommentLine, sb.String(), pos)
	tok.NLCount = nl
	return tok
}

func (l *Lexer) lexBlockComment(pos token.Position, sb *strings.Builder) token.Token {
	nl := 0
	for !l.eof() {
		if l.cur() == '*' && l.at(1) == '/' {
			sb.WriteRune(l.advance())
			sb.WriteRune(l.advance())

			s := l.save()
			oldLen := sb.Len()
			for l.cur() == ' ' || l.cur() == '\t' {
				sb.WriteRune(l.advance())
			}
			if l.cur() == '/' && l.at(1) == '*' {
				continue
			}
			l.restore(s)
			truncated := sb.String()[:oldLen]
			sb.Reset()
			sb.WriteString(truncated)
			break
		}
		ch := l.advance()
		sb.WriteRune(ch)
		switch ch {
		case '\n':
			nl++
			l.stats.LFCount++
		case '\r':
			if l.cur() == '\n' {
				sb.WriteRune(l.advance())
				l.stats.CRLFCount++
			} else {
				l.stats.CRCount++
			}
			nl++
		}
	}
	tok := token.New(token.CommentMulti, sb.String(), pos)
	tok.NLCount = nl
	return tok
}

// lexDNestedComment consumes a D "/+ ... +/" comment, which nests: a "/+"
// inside the comment increases depth instead of being ignored.
func (l *Lexer) lexDNestedComment(pos token.Position) token.Token {
	var sb strings.Builder
	sb.WriteRune(l.advance()) // '/'
	sb.WriteRune(l.advance()) // '+'
	depth := 1
	nl := 0
	for depth > 0 && !l.eof() {
		switch {
		case l.cur() == '+' && l.at(1) == '/':
			sb.WriteRune(l.advance())
			sb.WriteRune(l.advance())
			depth--
		case l.cur() == '/' && l.at(1) == '+':
			sb.WriteRune(l.advance())
			sb.WriteRune(l.advance())
			depth++
		default:
			ch := l.advance()
			sb.WriteRune(ch)
			if ch == '\n' {
				nl++
				l.stats.LFCount++
			} else if ch == '\r' {
				nl++
				if l.cur() == '\n' {
					sb.WriteRune(l.advance())
					l.stats.CRLFCount++
				} else {
					l.stats.CRCount++
				}
			}
		}
	}
	tok := token.New(token.CommentMulti, sb.String(), pos)
	tok.NLCount = nl
	l.scanMarkers(tok.Lexeme())
	return l.flagPreproc(tok)
}

// scanMarkers looks for the configured disable/enable marker text inside
// a just-lexed comment and flips ignoreMode accordingly. A plain
// substring search is used unless the marker has been customized away
// from the built-in default AND ProcessingCmtAsRegex is set, matching
// the original's refusal to compile its own default marker as a regex.
func (l *Lexer) scanMarkers(text string) {
	off := l.opts.DisableMarker
	on := l.opts.EnableMarker

	if l.ignoreMode {
		if on != "" && l.markerMatches(text, on) {
			l.ignoreMode = false
		}
		return
	}
	if off != "" && l.markerMatches(text, off) {
		onFound := on != "" && l.markerMatches(text, on)
		offIdx := strings.Index(text, off)
		onIdx := strings.Index(text, on)
		if !onFound || onIdx < offIdx {
			l.ignoreMode = true
		}
	}
}

const (
	defaultDisableMarker = "*INDENT-OFF*"
	defaultEnableMarker  = "*INDENT-ON*"
)

func (l *Lexer) markerMatches(text, marker string) bool {
	if l.opts.ProcessingCmtAsRegex && marker != defaultDisableMarker && marker != defaultEnableMarker {
		re, err := regexp.Compile(marker)
		if err != nil {
			return strings.Contains(text, marker)
		}
		return re.MatchString(text)
	}
	return strings.Contains(text, marker)
}

// lexIgnored consumes the remainder of the current physical line as a
// single verbatim IGNORED token while ignoreMode is active, per
// original_source's parse_ignored. The enable marker is still detected
// inside ordinary (non-comment) lines so pass-through mode can be lifted
// by a bare marker string, not just one embedded in a comment.
func (l *Lexer) lexIgnored(pos token.Position) token.Token {
	if l.cur() == '\r' || l.cur() == '\n' {
		return l.lexNewline(pos)
	}
	var sb strings.Builder
	for !l.eof() && l.cur() != '\r' && l.cur() != '\n' {
		sb.WriteRune(l.advance())
	}
	text := sb.String()
	l.scanMarkers(text)
	return token.New(token.Ignored, text, pos)
}
