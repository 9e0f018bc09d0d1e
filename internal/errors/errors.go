// Package errors implements the diagnostic taxonomy and reporter
// shared by every phase of the pipeline (scan, parse, resolve, run).
// Spans key on CharPos rather than raw line/column ints so the caret
// line can be sized by Unicode display width.
package errors

import (
	"fmt"
	"strings"

	"github.com/lox-lang/lox-go/internal/source"
)

// Phase identifies which pipeline stage raised a diagnostic.
type Phase string

const (
	PhaseSyntax  Phase = "SyntaxError"
	PhaseParse   Phase = "ParseError"
	PhaseResolve Phase = "ResolveError"
	PhaseRuntime Phase = "RuntimeError"
)

// Kind enumerates the specific diagnostic within a phase, per
// spec.md §7.
type Kind string

const (
	UnterminatedString  Kind = "UnterminatedString"
	UnexpectedCharacter Kind = "UnexpectedCharacter"

	ExpectedExpression Kind = "ExpectedExpression"
	UnexpectedToken    Kind = "UnexpectedToken"
	InvalidAssignment  Kind = "InvalidAssignment"
	MaximumArguments   Kind = "MaximumArguments"

	ReadDuringInitializer  Kind = "ReadDuringInitializer"
	VarAlreadyExistInScope Kind = "VarAlreadyExistInScope"
	ReturnFromTopLevel     Kind = "ReturnFromTopLevel"
	ReturnInsideInit       Kind = "ReturnInsideInit"
	CallThisOutsideClass   Kind = "CallThisOutsideClass"

	UndefinedVariable       Kind = "UndefinedVariable"
	UndefinedProperty       Kind = "UndefinedProperty"
	OnlyInstancesHaveFields Kind = "OnlyInstancesHaveFields"
	ObjectNotCallable       Kind = "ObjectNotCallable"
	NumberArgumentsMismatch Kind = "NumberArgumentsMismatch"
	SuperclassMustBeClass   Kind = "SuperclassMustBeClass"
	WriteError              Kind = "WriteError"
	StackOverflow           Kind = "StackOverflow"
	Negation                Kind = "Negation"
	Addition                Kind = "Addition"
	Subtraction             Kind = "Subtraction"
	Multiplication          Kind = "Multiplication"
	Division                Kind = "Division"
	ZeroDivision            Kind = "ZeroDivision"
	Comparison              Kind = "Comparison"
)

// Diagnostic is a single positioned error from any phase. All four
// phases share this shape, per spec.md §7.
type Diagnostic struct {
	Phase   Phase
	Kind    Kind
	Message string
	Start   source.CharPos
	End     source.CharPos
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("[line %d]: %s: %s", d.Start.Line+1, d.Kind, d.Message)
}

// New builds a Diagnostic whose span covers a single CharPos (start
// == end), the common case for a single offending character or token.
func New(phase Phase, kind Kind, msg string, at source.CharPos) *Diagnostic {
	return &Diagnostic{Phase: phase, Kind: kind, Message: msg, Start: at, End: at}
}

// NewSpan builds a Diagnostic covering an explicit [start, end] span.
func NewSpan(phase Phase, kind Kind, msg string, start, end source.CharPos) *Diagnostic {
	return &Diagnostic{Phase: phase, Kind: kind, Message: msg, Start: start, End: end}
}

// Reporter renders diagnostics against a source text, reproducing the
// offending line and underlining the span with carets sized by each
// character's display width, exactly as the original error/reporter.rs
// does for a single-line span.
type Reporter struct {
	source string
	index  *source.Index
}

// NewReporter builds a Reporter over one source text.
func NewReporter(src string, idx *source.Index) *Reporter {
	return &Reporter{source: src, index: idx}
}

// Report renders one diagnostic as:
//
//	[line L]: KIND: message
//	<source line reproduced>
//	<carets under the offending span>
func (r *Reporter) Report(d *Diagnostic) string {
	var sb strings.Builder
	sb.WriteString(d.Error())
	sb.WriteByte('\n')

	if d.Start.Line == d.End.Line {
		sb.WriteString(r.oneLine(d.Start.Line, d.Start.Column, d.End.Column))
	} else {
		// Multi-line spans: underline to end-of-line on the first
		// line, full carets on interior lines, from column 0 on the
		// last — spec.md §4.7 permits this but does not require more
		// than single-line fidelity; this keeps both behaviors.
		sb.WriteString(r.toEndOfLine(d.Start.Line, d.Start.Column))
		for line := d.Start.Line + 1; line < d.End.Line; line++ {
			sb.WriteByte('\n')
			sb.WriteString(r.fullLine(line))
		}
		sb.WriteByte('\n')
		sb.WriteString(r.fromStart(d.End.Line, d.End.Column))
	}

	return sb.String()
}

// ReportAll renders every diagnostic, source-order, separated by
// blank lines.
func (r *Reporter) ReportAll(diags []*Diagnostic) string {
	parts := make([]string, 0, len(diags))
	for _, d := range diags {
		parts = append(parts, r.Report(d))
	}
	return strings.Join(parts, "\n\n")
}

func (r *Reporter) oneLine(line, startCol, endCol int) string {
	text := r.index.Line(r.source, line)
	return text + "\n" + caretRun(text, startCol, endCol)
}

func (r *Reporter) toEndOfLine(line, startCol int) string {
	text := r.index.Line(r.source, line)
	return text + "\n" + caretRun(text, startCol, runeLen(text))
}

func (r *Reporter) fromStart(line, endCol int) string {
	text := r.index.Line(r.source, line)
	return text + "\n" + caretRun(text, 0, endCol)
}

func (r *Reporter) fullLine(line int) string {
	text := r.index.Line(r.source, line)
	return text + "\n" + caretRun(text, 0, runeLen(text))
}

func runeLen(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}

// caretRun draws a line of spaces up to startCol then carets from
// startCol through endCol inclusive, one cell per rune's display
// width (a zero-width rune is drawn one cell wide, and each column
// past the end of the line gets one caret, so a span always yields at
// least one caret).
func caretRun(text string, startCol, endCol int) string {
	var sb strings.Builder
	col := 0
	for _, r := range text {
		width := source.DisplayWidth(r)
		if width == 0 {
			width = 1
		}
		if col >= startCol && col <= endCol {
			sb.WriteString(strings.Repeat("^", width))
		} else {
			sb.WriteString(strings.Repeat(" ", width))
		}
		col++
	}
	if endCol >= col {
		// Span runs past the end of the visible line (e.g. "Expected
		// ';'" at EOL): pad with one caret per column through endCol.
		for ; col <= endCol; col++ {
			sb.WriteString("^")
		}
	}
	return strings.TrimRight(sb.String(), " ")
}
