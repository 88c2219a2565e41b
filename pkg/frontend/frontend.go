// Package frontend is the single external entry point for the pipeline:
// it runs the lexer, the frame pass, and the classifier over decoded
// input in that fixed order (§5's "pass ordering, not locking" design
// call) and hands back the resulting token list plus accumulated
// diagnostics. Everything upstream of this package (CLI flag parsing,
// file I/O, encoding/BOM detection) and everything downstream (the
// printer/alignment passes) is an external collaborator.
package frontend

import (
	"github.com/sirupsen/logrus"

	"github.com/uncrustify-go/frontend/internal/classify"
	"github.com/uncrustify-go/frontend/internal/diag"
	"github.com/uncrustify-go/frontend/internal/frame"
	"github.com/uncrustify-go/frontend/internal/lexer"
	"github.com/uncrustify-go/frontend/pkg/keyword"
	"github.com/uncrustify-go/frontend/pkg/langset"
	"github.com/uncrustify-go/frontend/pkg/token"
)

// NewlineStyle names the EOL convention a downstream printer should
// target, per the "newlines" option.
type NewlineStyle int

const (
	// NewlineAuto falls back to whichever of CR/LF/CRLF was the majority
	// of the input, computed from Result.Stats once lexing completes.
	NewlineAuto NewlineStyle = iota
	NewlineLF
	NewlineCR
	NewlineCRLF
)

// Options is the plain struct carrying exactly the option fields
// logging uses as consulted by the core. It is not a general
// config-registration layer: option parsing/registration stays an
// external concern.
type Options struct {
	EnableProcessingCmt  string
	DisableProcessingCmt string
	ProcessingCmtAsRegex bool

	PPIgnoreDefineBody bool

	StringEscapeChar      rune
	StringEscapeChar2     rune
	StringReplaceTabChars bool

	InputTabSize int

	Newlines                NewlineStyle
	DisableProcessingNLCont bool

	WarnLevelTabsInVerbatimStrings diag.Severity

	// Logger receives info/debug-level pipeline tracing when non-nil.
	// Left nil by default so the hot per-token loops never pay for a
	// logging call; set it (e.g. to logrus.StandardLogger()) to enable
	// tracing, typically gated behind a --trace CLI flag.
	Logger logrus.FieldLogger
}

// DefaultOptions mirrors the built-in defaults the original tool ships,
// translated into this struct's fields.
func DefaultOptions() Options {
	return Options{
		EnableProcessingCmt:  "*INDENT-ON*",
		DisableProcessingCmt: "*INDENT-OFF*",
		InputTabSize:         8,
	}
}

func (o Options) toLexerOptions() lexer.Options {
	lo := lexer.DefaultOptions()
	if o.EnableProcessingCmt != "" {
		lo.EnableMarker = o.EnableProcessingCmt
	}
	if o.DisableProcessingCmt != "" {
		lo.DisableMarker = o.DisableProcessingCmt
	}
	lo.ProcessingCmtAsRegex = o.ProcessingCmtAsRegex
	lo.PPIgnoreDefineBody = o.PPIgnoreDefineBody
	lo.StringEscapeChar = o.StringEscapeChar
	lo.StringEscapeChar2 = o.StringEscapeChar2
	lo.StringReplaceTabChars = o.StringReplaceTabChars
	if o.InputTabSize > 0 {
		lo.InputTabSize = o.InputTabSize
	}
	lo.DisableProcessingNLCont = o.DisableProcessingNLCont
	return lo
}

// Stats tallies the line-ending bytes observed in the input, used by a
// downstream printer to pick an output EOL style when NewlineAuto is in
// effect.
type Stats struct {
	CRCount   int
	LFCount   int
	CRLFCount int
}

// Majority returns the EOL style with the highest observed count. A tie
// goes to the earlier of LF, CR, CRLF, so empty input gives NewlineLF.
func (s Stats) Majority() NewlineStyle {
	style, count := NewlineLF, s.LFCount
	if s.CRCount > count {
		style, count = NewlineCR, s.CRCount
	}
	if s.CRLFCount > count {
		style, count = NewlineCRLF, s.CRLFCount
	}
	return style
}

// Result is everything Run hands back to a caller: the fully classified
// token list (§3), every diagnostic accumulated across the three passes
// (§7), and the line-ending counts (§6).
type Result struct {
	List  *token.List
	Diags []diag.Diagnostic
	Stats Stats
}

// HasFatal reports whether any diagnostic in the result is Fatal; per
// §7, a caller seeing true must not emit output from List.
func (r Result) HasFatal() bool {
	for _, d := range r.Diags {
		if d.Severity == diag.Fatal {
			return true
		}
	}
	return false
}

// Run executes the full front-end pipeline — lexer, frame pass,
// classifier, in that order — over decoded input for the given active
// language mask, and returns the resulting Result. This is the single
// blocking call: no goroutines, no suspension
// points, no cancellation.
func Run(input []rune, lang langset.Mask, opts Options, file string) Result {
	source := string(input)
	diags := diag.NewBag()

	log := opts.Logger
	if log != nil {
		log.WithField("file", file).WithField("lang", lang.String()).Info("lexing")
	}

	lx := lexer.New(input, lang, opts.toLexerOptions(), diags, file)
	list := lx.Tokenize()
	lstats := lx.Stats()

	if log != nil {
		log.WithField("tokens", list.Len()).Debug("lexer complete")
	}

	frame.Run(list, lang, diags, source, file)
	if log != nil {
		log.Debug("frame pass complete")
	}

	classify.Run(list, lang, diags, source, file)
	if log != nil {
		log.WithField("diagnostics", diags.Len()).Debug("classifier complete")
	}

	return Result{
		List:  list,
		Diags: diags.All(),
		Stats: Stats{CRCount: lstats.CRCount, LFCount: lstats.LFCount, CRLFCount: lstats.CRLFCount},
	}
}

// Session documents the reset contract of §5: the static
// character/keyword/punctuator tables are process-wide package-level
// state (read-only after init), and the only genuinely per-file state
// (lexer cursor, diag.Bag, classify.Walker) is constructed fresh inside
// Run. The one piece of state that *does* persist across files is
// pkg/keyword's dynamic map — writable only before lexing begins — so
// Session wraps it with an explicit add/reset API rather than leaving
// callers to poke the package-level map directly.
type Session struct{}

// NewSession returns a Session backed by pkg/keyword's dynamic table.
func NewSession() *Session { return &Session{} }

// AddKeyword registers a project-specific type/macro word, consulted
// before the static table by every subsequent lexer word lookup. Must
// be called before RunFile, never concurrently with it (§5).
func (s *Session) AddKeyword(word string, kind token.Kind) { keyword.Add(word, kind) }

// Reset clears the dynamic keyword table between independent files or
// projects so one file's typedefs never leak into the next.
func (s *Session) Reset() { keyword.Clear() }

// RunFile runs the pipeline for one file using the Session's dynamic
// keyword table. Session is not safe for concurrent use by more than
// one goroutine (§5: "never share a Session across concurrent
// goroutines").
func (s *Session) RunFile(input []rune, lang langset.Mask, opts Options, file string) Result {
	return Run(input, lang, opts, file)
}
