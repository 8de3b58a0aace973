package parser

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

type Severity uint8

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityNote
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "note"
	}
}

// Label attaches a message to a source range.
type Label struct {
	Range   TextRange
	Message string
}

// Diagnostic is an error or warning with a primary label and optional
// secondary labels that cross-reference related code.
type Diagnostic struct {
	Severity  Severity
	Message   string
	File      string
	Primary   *Label
	Secondary []Label
}

// Range returns the primary range, or an empty range when there is none.
func (d Diagnostic) Range() TextRange {
	if d.Primary == nil {
		return TextRange{}
	}
	return d.Primary.Range
}

func (d Diagnostic) String() string {
	var b strings.Builder
	if d.File != "" {
		b.WriteString(d.File)
		b.WriteString(": ")
	}
	b.WriteString(d.Severity.String())
	if d.Primary != nil {
		fmt.Fprintf(&b, " [%s]", d.Primary.Range)
	}
	b.WriteString(": ")
	b.WriteString(d.Message)
	return b.String()
}

// ToDiagnostic is implemented by anything that can be reported through
// Parser.Error.
type ToDiagnostic interface {
	ToDiagnostic() Diagnostic
}

func (d Diagnostic) ToDiagnostic() Diagnostic {
	return d
}

// DiagnosticBuilder assembles a Diagnostic. Each call returns an updated copy,
// so a partially built diagnostic can be shared without aliasing.
type DiagnosticBuilder struct {
	diag Diagnostic
}

func NewDiagnostic(severity Severity, message string) DiagnosticBuilder {
	return DiagnosticBuilder{diag: Diagnostic{Severity: severity, Message: message}}
}

func (b DiagnosticBuilder) File(file string) DiagnosticBuilder {
	b.diag.File = file
	return b
}

func (b DiagnosticBuilder) Severity(s Severity) DiagnosticBuilder {
	b.diag.Severity = s
	return b
}

func (b DiagnosticBuilder) Primary(r TextRange, label string) DiagnosticBuilder {
	b.diag.Primary = &Label{Range: r, Message: label}
	return b
}

func (b DiagnosticBuilder) Secondary(r TextRange, label string) DiagnosticBuilder {
	secondary := make([]Label, len(b.diag.Secondary), len(b.diag.Secondary)+1)
	copy(secondary, b.diag.Secondary)
	b.diag.Secondary = append(secondary, Label{Range: r, Message: label})
	return b
}

func (b DiagnosticBuilder) Build() Diagnostic {
	d := b.diag
	if d.Primary != nil {
		primary := *d.Primary
		d.Primary = &primary
	}
	return d
}

func (b DiagnosticBuilder) ToDiagnostic() Diagnostic {
	return b.Build()
}

// ErrBuilder starts an error diagnostic for the file being parsed.
func (p *Parser) ErrBuilder(message string) DiagnosticBuilder {
	return NewDiagnostic(SeverityError, message).File(p.file)
}

// Error appends d to the diagnostics sink and records it in the event buffer
// at the current position, so a rewind discards both together.
func (p *Parser) Error(d ToDiagnostic) {
	diag := d.ToDiagnostic()
	if diag.File == "" {
		diag.File = p.file
	}
	p.diagnostics = append(p.diagnostics, diag)
	p.events = append(p.events, Event{Kind: EventError, Diag: len(p.diagnostics) - 1})
}

// ExpectedFunc builds the diagnostic for a missing node at r.
type ExpectedFunc func(p *Parser, r TextRange) DiagnosticBuilder

// ExpectedNode reports that a node named name was expected at r.
func ExpectedNode(name string, r TextRange, p *Parser) DiagnosticBuilder {
	return ExpectedAny([]string{name}, r, p)
}

// ExpectedAny reports that one of names was expected at r.
func ExpectedAny(names []string, r TextRange, p *Parser) DiagnosticBuilder {
	var what string
	switch len(names) {
	case 0:
		what = "a node"
	case 1:
		what = withArticle(names[0])
	default:
		parts := make([]string, len(names))
		for i, n := range names {
			parts[i] = withArticle(n)
		}
		what = strings.Join(parts[:len(parts)-1], ", ") + " or " + parts[len(parts)-1]
	}
	msg := fmt.Sprintf("expected %s but instead found %s", what, p.describeAt(r))
	if p.tokens.rangeIsEOF(r) {
		msg = fmt.Sprintf("expected %s but instead the file ends", what)
	}
	return p.ErrBuilder(msg).Primary(r, "Expected "+what+" here")
}

func withArticle(name string) string {
	if name == "" {
		return name
	}
	switch name[0] {
	case 'a', 'e', 'i', 'o', 'u':
		return "an " + name
	case '`', '\'', '"':
		return name
	}
	return "a " + name
}

func (p *Parser) describeAt(r TextRange) string {
	text := strings.TrimSpace(string(p.source[clamp(r.Start, len(p.source)):clamp(r.End, len(p.source))]))
	if text == "" {
		return "nothing"
	}
	if len(text) > 30 {
		cut := 30
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut] + "..."
	}
	return "'" + text + "'"
}

func clamp(n, max int) int {
	if n < 0 {
		return 0
	}
	if n > max {
		return max
	}
	return n
}
