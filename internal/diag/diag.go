// Package diag formats and accumulates the diagnostics produced while
// lexing, framing, and classifying a file. It is adapted from a
// compiler-error formatter: the same source-line-plus-caret rendering,
// generalized to the four severities
// the pipeline can emit and to carrying many diagnostics per run instead
// of aborting on the first one (this front end never stops early; it
// degrades to best-effort output and reports what went wrong).
package diag

import (
	"fmt"
	"strings"

	"github.com/uncrustify-go/frontend/pkg/token"
)

// Severity classifies how serious a Diagnostic is. Uncertain names a
// guess among equally plausible Kinds; no pass of the pipeline records
// one (the classifier settles such guesses without a diagnostic).
type Severity int

const (
	Info Severity = iota
	Uncertain
	Warning
	Fatal
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Uncertain:
		return "uncertain"
	case Warning:
		return "warning"
	case Fatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Diagnostic is a single reported condition, tied to a position in the
// original source text.
type Diagnostic struct {
	Severity Severity
	Message  string
	Pos      token.Position
	Source   string // full original text, for source-line extraction
	File     string
}

// New constructs a Diagnostic.
func New(sev Severity, pos token.Position, message, source, file string) Diagnostic {
	return Diagnostic{Severity: sev, Message: message, Pos: pos, Source: source, File: file}
}

func (d Diagnostic) Error() string { return d.Format(false) }

// Format renders a single diagnostic with a source-line excerpt and a
// caret pointing at the offending column. color enables ANSI styling.
func (d Diagnostic) Format(color bool) string {
	var sb strings.Builder

	if d.File != "" {
		fmt.Fprintf(&sb, "%s in %s:%d:%d\n", strings.ToUpper(d.Severity.String()), d.File, d.Pos.Line, d.Pos.Column)
	} else {
		fmt.Fprintf(&sb, "%s at line %d:%d\n", strings.ToUpper(d.Severity.String()), d.Pos.Line, d.Pos.Column)
	}

	if line := d.sourceLine(d.Pos.Line); line != "" {
		lineNumStr := fmt.Sprintf("%4d | ", d.Pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(line)
		sb.WriteString("\n")

		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+max0(d.Pos.Column-1)))
		if color {
			sb.WriteString(colorFor(d.Severity))
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(d.Message)
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

func colorFor(sev Severity) string {
	switch sev {
	case Fatal:
		return "\033[1;31m" // bold red
	case Warning:
		return "\033[1;33m" // bold yellow
	default:
		return "\033[1;36m" // bold cyan
	}
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func (d Diagnostic) sourceLine(lineNum int) string {
	if d.Source == "" {
		return ""
	}
	lines := strings.Split(d.Source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// Bag accumulates diagnostics across a single Run, keeping every
// severity rather than stopping at the first Fatal (callers decide what
// to do with a Fatal entry; the pipeline itself keeps going so later
// passes still produce their best-effort output).
type Bag struct {
	items []Diagnostic
}

// NewBag returns an empty Bag. The zero value is also ready to use;
// NewBag exists so callers that pass a Bag around (frame.Run,
// classify.Run) read the same way a constructor-per-type
// style does.
func NewBag() *Bag { return &Bag{} }

// Add appends a Diagnostic to the bag.
func (b *Bag) Add(d Diagnostic) { b.items = append(b.items, d) }

// Addf is a convenience wrapper that formats Message with fmt.Sprintf.
func (b *Bag) Addf(sev Severity, pos token.Position, source, file, format string, args ...any) {
	b.Add(New(sev, pos, fmt.Sprintf(format, args...), source, file))
}

// All returns every accumulated diagnostic, in report order.
func (b *Bag) All() []Diagnostic { return b.items }

// HasFatal reports whether any accumulated diagnostic is Fatal.
func (b *Bag) HasFatal() bool {
	for _, d := range b.items {
		if d.Severity == Fatal {
			return true
		}
	}
	return false
}

// Len reports how many diagnostics have been recorded.
func (b *Bag) Len() int { return len(b.items) }

// Format renders every diagnostic in the bag, numbering them when there
// is more than one.
func (b *Bag) Format(color bool) string {
	if len(b.items) == 0 {
		return ""
	}
	if len(b.items) == 1 {
		return b.items[0].Format(color)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d diagnostic(s):\n\n", len(b.items))
	for i, d := range b.items {
		fmt.Fprintf(&sb, "[%d of %d]\n", i+1, len(b.items))
		sb.WriteString(d.Format(color))
		if i < len(b.items)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}
