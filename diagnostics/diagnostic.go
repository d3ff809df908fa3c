package diagnostics

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/reusee/bfem/executor"
	"github.com/reusee/bfem/parser"
	"github.com/reusee/bfem/program"
)

// Diagnostic is a message located at a span of a source text.
type Diagnostic struct {
	Message  string
	Label    string
	Span     program.Span
	Source   Source
	Internal bool
	Err      error
}

const faultLabel = "error occurs here"

// FromError builds a diagnostic from a parse error or an execution fault.
func FromError(err error, source Source) (Diagnostic, bool) {
	// Fault also satisfies parser.Spanned, match it first
	var f *executor.Fault
	if errors.As(err, &f) {
		return Diagnostic{
			Message:  f.Error(),
			Label:    faultLabel,
			Span:     f.Span,
			Source:   source,
			Internal: f.Internal(),
			Err:      err,
		}, true
	}
	var spanned parser.Spanned
	if errors.As(err, &spanned) {
		return Diagnostic{
			Message: spanned.Error(),
			Label:   faultLabel,
			Span:    spanned.ErrorSpan(),
			Source:  source,
			Err:     err,
		}, true
	}
	return Diagnostic{}, false
}

func (d Diagnostic) Error() string {
	return d.String()
}

func (d Diagnostic) Unwrap() error {
	return d.Err
}

func (d Diagnostic) String() string {
	var sb strings.Builder
	d.write(&sb)
	return sb.String()
}

func (d Diagnostic) Render(w io.Writer) error {
	_, err := io.WriteString(w, d.String())
	return err
}

func (d Diagnostic) write(sb *strings.Builder) {
	if d.Internal {
		sb.WriteString("internal error: ")
	} else {
		sb.WriteString("error: ")
	}
	sb.WriteString(d.Message)
	sb.WriteString("\n")
	writeExcerpt(sb, d.Source, []program.Annotation{{
		Span:        d.Span,
		Description: d.Label,
	}})
}

// writeExcerpt prints every line touched by the annotations, each followed by
// caret lines for the annotations that start on it.
func writeExcerpt(sb *strings.Builder, source Source, annotations []program.Annotation) {
	if len(annotations) == 0 {
		return
	}
	first := source.Position(annotations[0].Span.Offset)
	name := source.Name
	if name == "" {
		name = "<source>"
	}
	fmt.Fprintf(sb, "  --> %s:%d:%d\n", name, first.Line, first.Column)

	byLine := make(map[int][]program.Annotation)
	var lines []int
	for _, a := range annotations {
		pos := source.Position(a.Span.Offset)
		if _, ok := byLine[pos.Line]; !ok {
			lines = append(lines, pos.Line)
		}
		byLine[pos.Line] = append(byLine[pos.Line], a)
	}

	gutter := len(strconv.Itoa(lines[len(lines)-1]))
	blank := strings.Repeat(" ", gutter)

	fmt.Fprintf(sb, "%s |\n", blank)
	for _, n := range lines {
		text, start := source.Line(n)
		fmt.Fprintf(sb, "%*d | %s\n", gutter, n, expandTabs(text))
		for _, a := range byLine[n] {
			from := min(a.Span.Offset-start, len(text))
			to := min(a.Span.End()-start, len(text))
			sb.WriteString(blank)
			sb.WriteString(" | ")
			pad(sb, text[:from])
			underline(sb, text[from:to])
			if a.Description != "" {
				sb.WriteString(" ")
				sb.WriteString(a.Description)
			}
			sb.WriteString("\n")
		}
	}
}

// Explain renders the source with one label per annotation.
func Explain(w io.Writer, title string, source Source, annotations []program.Annotation) error {
	var sb strings.Builder
	sb.WriteString(title)
	sb.WriteString("\n")
	writeExcerpt(&sb, source, annotations)
	_, err := io.WriteString(w, sb.String())
	return err
}
