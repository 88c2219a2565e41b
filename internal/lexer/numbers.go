package lexer

import (
	"strings"
	"unicode"

	"github.com/uncrustify-go/frontend/pkg/chartable"
	"github.com/uncrustify-go/frontend/pkg/langset"
	"github.com/uncrustify-go/frontend/pkg/token"
)

func isOctDigit(ch rune) bool { return ch >= '0' && ch <= '7' }
func isBinDigit(ch rune) bool { return ch == '0' || ch == '1' }

// isDigitSep reports whether ch is one of the digit-group separators the
// original tokenizer passes through inside a numeric literal ("'" per
// C++14 and Objective-C, "_" per Java/C#/D/Ruby-style literals).
func isDigitSep(ch rune) bool { return ch == '_' || ch == '\'' }

// lexNumber scans a numeric literal: decimal/hex/octal/binary/MS-hex
// integers, decimal points, exponents, and the integer/float suffix
// alphabet, grounded on original_source's parse_number. A number
// immediately followed by an I/F/D/M suffix but no decimal point (e.g.
// a macro-like "1F" that's actually meant as an identifier) is rejected
// back to a WORD per the original's point_found fallback.
func (l *Lexer) lexNumber(pos token.Position) token.Token {
	var sb strings.Builder
	isFloat := l.cur() == '.'
	didHex := false

	if l.cur() == '0' && !l.lang.Has(langset.CS) {
		sb.WriteRune(l.advance())

		s := l.save()
		var probe strings.Builder
		for isHexDigit(l.cur()) || l.cur() == 'h' || l.cur() == 'H' {
			probe.WriteRune(l.advance())
		}
		isMSHex := probe.Len() > 0 && strings.HasSuffix(strings.ToLower(probe.String()), "h")
		l.restore(s)

		if isMSHex {
			didHex = true
			for isHexDigit(l.cur()) || isDigitSep(l.cur()) {
				sb.WriteRune(l.advance())
			}
			sb.WriteRune(l.advance()) // 'h'
		} else {
			switch unicode.ToUpper(l.cur()) {
			case 'X':
				didHex = true
				sb.WriteRune(l.advance())
				for isHexDigit(l.cur()) || isDigitSep(l.cur()) {
					sb.WriteRune(l.advance())
				}
			case 'B':
				sb.WriteRune(l.advance())
				for isBinDigit(l.cur()) || isDigitSep(l.cur()) {
					sb.WriteRune(l.advance())
				}
			case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
				for isOctDigit(l.cur()) || isDigitSep(l.cur()) {
					sb.WriteRune(l.advance())
				}
			}
		}
	} else {
		for isDigit(l.cur()) || isDigitSep(l.cur()) {
			sb.WriteRune(l.advance())
		}
	}

	if l.cur() == '.' && l.at(1) != '.' {
		sb.WriteRune(l.advance())
		isFloat = true
		if didHex {
			for isHexDigit(l.cur()) || isDigitSep(l.cur()) {
				sb.WriteRune(l.advance())
			}
		} else {
			for isDigit(l.cur()) || isDigitSep(l.cur()) {
				sb.WriteRune(l.advance())
			}
		}
	}

	if up := unicode.ToUpper(l.cur()); up == 'E' || up == 'P' {
		isFloat = true
		sb.WriteRune(l.advance())
		if l.cur() == '+' || l.cur() == '-' {
			sb.WriteRune(l.advance())
		}
		for isDigit(l.cur()) || isDigitSep(l.cur()) {
			sb.WriteRune(l.advance())
		}
	}

	for {
		up := unicode.ToUpper(l.cur())
		if up == 'I' || up == 'F' || up == 'D' || up == 'M' {
			if strings.ContainsRune(sb.String(), '.') {
				isFloat = true
				sb.WriteRune(l.advance())
				continue
			}
			// no decimal point: this is a bare identifier glued to
			// digits (e.g. a macro), not a float suffix. Fall back.
			for chartable.IsKw2(l.cur()) {
				sb.WriteRune(l.advance())
			}
			return l.flagPreproc(token.New(token.Word, sb.String(), pos))
		}
		if up != 'L' && up != 'U' {
			break
		}
		sb.WriteRune(l.advance())
	}

	if l.cur() == '8' {
		sb.WriteRune(l.advance())
	}
	if (l.cur() == '1' && l.at(1) == '6') || (l.cur() == '3' && l.at(1) == '2') || (l.cur() == '6' && l.at(1) == '4') {
		sb.WriteRune(l.advance())
		sb.WriteRune(l.advance())
	}
	if l.cur() == '1' && l.at(1) == '2' && l.at(2) == '8' {
		sb.WriteRune(l.advance())
		sb.WriteRune(l.advance())
		sb.WriteRune(l.advance())
	}

	kind := token.Number
	if isFloat {
		kind = token.NumberFP
	}
	return l.flagPreproc(token.New(kind, sb.String(), pos))
}
