// Package diag holds the recoverable build-error taxonomy and its
// terminal reporter. Errors here are conditions a front end can cause and
// fix (dangling labels, duplicate bindings, bad literals); malformed-graph
// conditions inside the analysis layers are contract violations and panic
// instead of passing through this package.
package diag

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Level represents the severity of a diagnostic.
type Level string

const (
	Error   Level = "error"
	Warning Level = "warning"
	Note    Level = "note"
)

// Position is a location in front-end source text.
type Position struct {
	Filename string
	Line     int
	Column   int
}

func (p Position) String() string {
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

// BuildError is a structured, recoverable construction error.
type BuildError struct {
	Level    Level
	Code     string
	Message  string
	Position Position
	Length   int
	Notes    []string
	HelpText string
}

func (e BuildError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s[%s]: %s", e.Level, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Level, e.Message)
}

// Builder provides a fluent interface for constructing build errors.
type Builder struct {
	err BuildError
}

// NewError starts an error-level diagnostic.
func NewError(code, message string, pos Position) *Builder {
	return &Builder{
		err: BuildError{
			Level:    Error,
			Code:     code,
			Message:  message,
			Position: pos,
			Length:   1,
		},
	}
}

// NewWarning starts a warning-level diagnostic.
func NewWarning(code, message string, pos Position) *Builder {
	b := NewError(code, message, pos)
	b.err.Level = Warning
	return b
}

// WithLength sets the length of the offending span.
func (b *Builder) WithLength(length int) *Builder {
	b.err.Length = length
	return b
}

// WithNote attaches an additional context note.
func (b *Builder) WithNote(note string) *Builder {
	b.err.Notes = append(b.err.Notes, note)
	return b
}

// WithHelp attaches help text.
func (b *Builder) WithHelp(help string) *Builder {
	b.err.HelpText = help
	return b
}

// Build returns the completed diagnostic.
func (b *Builder) Build() BuildError {
	return b.err
}

// Reporter formats diagnostics against a source file with caret context.
type Reporter struct {
	filename string
	lines    []string
}

// NewReporter creates a reporter for one source file.
func NewReporter(filename, source string) *Reporter {
	return &Reporter{
		filename: filename,
		lines:    strings.Split(source, "\n"),
	}
}

// Format renders a diagnostic with its source line and caret underline.
func (r *Reporter) Format(err BuildError) string {
	var result strings.Builder

	levelColor := r.levelColor(err.Level)
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	if err.Code != "" {
		result.WriteString(fmt.Sprintf("%s[%s]: %s\n",
			levelColor(string(err.Level)), err.Code, err.Message))
	} else {
		result.WriteString(fmt.Sprintf("%s: %s\n",
			levelColor(string(err.Level)), err.Message))
	}

	width := len(fmt.Sprintf("%d", err.Position.Line))
	indent := strings.Repeat(" ", width)

	result.WriteString(fmt.Sprintf("%s %s %s:%d:%d\n",
		indent, dim("-->"), r.filename, err.Position.Line, err.Position.Column))

	if err.Position.Line > 0 && err.Position.Line <= len(r.lines) {
		line := r.lines[err.Position.Line-1]
		result.WriteString(fmt.Sprintf("%s %s\n", indent, dim("│")))
		result.WriteString(fmt.Sprintf("%s %s %s\n",
			bold(fmt.Sprintf("%*d", width, err.Position.Line)), dim("│"), line))

		length := err.Length
		if length < 1 {
			length = 1
		}
		caret := strings.Repeat(" ", max(err.Position.Column-1, 0)) +
			strings.Repeat("^", length)
		result.WriteString(fmt.Sprintf("%s %s %s\n",
			indent, dim("│"), levelColor(caret)))
	}

	for _, note := range err.Notes {
		result.WriteString(fmt.Sprintf("%s %s note: %s\n", indent, dim("="), note))
	}
	if err.HelpText != "" {
		result.WriteString(fmt.Sprintf("%s %s help: %s\n", indent, dim("="), err.HelpText))
	}

	return result.String()
}

func (r *Reporter) levelColor(level Level) func(...interface{}) string {
	switch level {
	case Warning:
		return color.New(color.FgYellow, color.Bold).SprintFunc()
	case Note:
		return color.New(color.FgCyan, color.Bold).SprintFunc()
	default:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	}
}
