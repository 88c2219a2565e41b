package lexer

// Options carries the subset of the formatter's option map that the
// lexer itself consults (§6 of the external-interfaces contract). Every
// other option belongs to the printer/alignment passes this front end
// hands off to and is out of scope here.
type Options struct {
	// EnableMarker / DisableMarker are the comment marker strings that
	// toggle pass-through (IGNORED) lexing. Defaults match the classic
	// "*INDENT-ON*" / "*INDENT-OFF*" uncrustify spelling.
	EnableMarker  string
	DisableMarker string
	// ProcessingCmtAsRegex interprets EnableMarker/DisableMarker as
	// regular expressions instead of literal substrings. Per the
	// original tokenizer, this only applies when the configured marker
	// differs from the built-in default text.
	ProcessingCmtAsRegex bool

	// PPIgnoreDefineBody passes every token inside a #define body
	// through as PPBody without further classification.
	PPIgnoreDefineBody bool

	// StringEscapeChar / StringEscapeChar2 are secondary escape
	// characters recognized inside string literals, in addition to '\\'.
	StringEscapeChar  rune
	StringEscapeChar2 rune

	// StringReplaceTabChars, when set, rewrites a literal tab inside an
	// escape-aware string literal as the escape character followed by
	// 't'. No diagnostic is reported for the replacement.
	StringReplaceTabChars bool

	// InputTabSize is the column width assigned to a tab for Column
	// bookkeeping.
	InputTabSize int

	// DisableProcessingNLCont turns off the NL_CONT token: a trailing
	// backslash lexes as an UNKNOWN token and the newline after it ends
	// the logical line. A continued macro body is still tokenized, not
	// passed through as a single token.
	DisableProcessingNLCont bool
}

// DefaultOptions returns the option set the lexer uses when the caller
// supplies none, matching the original tool's built-in defaults.
func DefaultOptions() Options {
	return Options{
		EnableMarker:  "*INDENT-ON*",
		DisableMarker: "*INDENT-OFF*",
		InputTabSize:  8,
	}
}
