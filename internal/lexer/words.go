package lexer

import (
	"strings"

	"github.com/uncrustify-go/frontend/pkg/chartable"
	"github.com/uncrustify-go/frontend/pkg/keyword"
	"github.com/uncrustify-go/frontend/pkg/token"
)

// lexWord scans KW1 KW2* (with \uXXXX escapes folded in as identifier
// characters) and classifies the result as a macro name/pattern inside a
// #define body, or looks it up in the keyword table, or falls back to
// token.Word.
func (l *Lexer) lexWord(pos token.Position) token.Token {
	var sb strings.Builder
	first := true
	for {
		if l.cur() == '\\' && (l.at(1) == 'u' || l.at(1) == 'U') {
			sb.WriteRune(l.advance())
			sb.WriteRune(l.advance())
			n := 4
			if sb.String()[sb.Len()-1] == 'U' {
				n = 8
			}
			for i := 0; i < n && isHexDigit(l.cur()); i++ {
				sb.WriteRune(l.advance())
			}
			first = false
			continue
		}
		if first && !chartable.IsKw1(l.cur()) {
			break
		}
		if !first && !chartable.IsKw2(l.cur()) {
			break
		}
		sb.WriteRune(l.advance())
		first = false
	}
	text := sb.String()

	if l.inPreprocLine && !l.ppFirstTokSeen {
		l.ppFirstTokSeen = true
		if kind, ok := directiveKind(text); ok {
			if kind == token.PPDefine {
				l.pendingDefineName = true
			}
			return l.flagPreproc(token.New(kind, text, pos))
		}
	}
	if l.inPreprocLine && l.pendingDefineName {
		l.pendingDefineName = false
		l.markDefineBody()
		if l.cur() == '(' {
			return l.flagPreproc(token.New(token.MacroFunc, text, pos))
		}
		return l.flagPreproc(token.New(token.Macro, text, pos))
	}
	if l.inPreprocLine && l.definePPBody(text) && l.opts.PPIgnoreDefineBody {
		return l.flagPreproc(token.New(token.PPBody, text, pos))
	}

	if kind, ok := keyword.Lookup(text, l.lang, l.inPreprocLine); ok {
		return l.flagPreproc(token.New(kind, text, pos))
	}
	return l.flagPreproc(token.New(token.Word, text, pos))
}

func isHexDigit(ch rune) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

// definePPBody reports whether the lexer is inside a #define body, past
// the macro name (which lexWord has already classified MACRO/MACRO_FUNC).
//
// The state comes from lexWord's pendingDefineName/markDefineBody
// bookkeeping; lexPoundDirective resets it at each new directive.
func (l *Lexer) definePPBody(word string) bool {
	return l.inDefineBody
}

// directiveKind maps a preprocessor directive spelling to its Kind. Only
// recognized for the token immediately following '#' (or '#' + digraph)
// at the start of a preprocessor line.
func directiveKind(word string) (token.Kind, bool) {
	switch word {
	case "define":
		return token.PPDefine, true
	case "undef":
		return token.PPUndef, true
	case "include", "import":
		return token.PPInclude, true
	case "if":
		return token.PPIf, true
	case "ifdef":
		return token.PPIfdef, true
	case "ifndef":
		return token.PPIfndef, true
	case "else":
		return token.PPElse, true
	case "elif", "elseif":
		return token.PPElif, true
	case "endif":
		return token.PPEndif, true
	case "region":
		return token.PPRegion, true
	case "endregion":
		return token.PPEndRegion, true
	case "pragma":
		return token.PPPragma, true
	default:
		return token.PPOther, false
	}
}

func (l *Lexer) lexAnnotation(pos token.Position) token.Token {
	l.advance() // '@'
	var sb strings.Builder
	sb.WriteRune('@')
	for chartable.IsKw1(l.cur()) || (sb.Len() > 1 && chartable.IsKw2(l.cur())) {
		sb.WriteRune(l.advance())
	}
	if sb.String() == "@interface" {
		return l.flagPreproc(token.New(token.OCInterface, sb.String(), pos))
	}
	return l.flagPreproc(token.New(token.Annotation, sb.String(), pos))
}
