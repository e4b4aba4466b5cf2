package diagnostic

import (
	"fmt"
	"strings"
)

// Diagnostic codes.
const (
	CodeArrayUnsupported = "array-unsupported"
	CodeUnknownTag       = "unknown-tag"
	CodeNullLeaf         = "null-leaf"
)

// Severity ranks a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
)

var severityNames = [...]string{
	SeverityInfo:    "info",
	SeverityWarning: "warning",
}

// String returns a human-readable severity name.
func (s Severity) String() string {
	if s < 0 || int(s) >= len(severityNames) {
		return "unknown"
	}

	return severityNames[s]
}

// Diagnostic is one finding about a schema field.
type Diagnostic struct {
	Severity Severity
	Code     string
	Message  string
	// Entity is the DTO being converted.
	Entity string
	// FieldPath is the dotted key path of the field.
	FieldPath   string
	Suggestions []string
}

// Diagnostics groups findings by severity, each group in the order the
// fields were visited.
type Diagnostics struct {
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Add files diag under its severity.
func (d *Diagnostics) Add(diag Diagnostic) {
	if diag.Severity == SeverityWarning {
		d.Warnings = append(d.Warnings, diag)
		return
	}

	d.Infos = append(d.Infos, diag)
}

// Warn records a warning.
func (d *Diagnostics) Warn(code, entity, path, format string, args ...any) {
	d.Add(newDiagnostic(SeverityWarning, code, entity, path, format, args))
}

// Note records an informational finding.
func (d *Diagnostics) Note(code, entity, path, format string, args ...any) {
	d.Add(newDiagnostic(SeverityInfo, code, entity, path, format, args))
}

func newDiagnostic(sev Severity, code, entity, path, format string, args []any) Diagnostic {
	return Diagnostic{
		Severity:  sev,
		Code:      code,
		Message:   fmt.Sprintf(format, args...),
		Entity:    entity,
		FieldPath: path,
	}
}

// Len returns the number of findings.
func (d *Diagnostics) Len() int {
	return len(d.Warnings) + len(d.Infos)
}

// All returns warnings followed by infos.
func (d *Diagnostics) All() []Diagnostic {
	out := make([]Diagnostic, 0, d.Len())
	out = append(out, d.Warnings...)

	return append(out, d.Infos...)
}

// String formats the diagnostic as "[Entity] path: [code] message".
func (d Diagnostic) String() string {
	var b strings.Builder

	if d.Entity != "" {
		b.WriteString("[" + d.Entity + "]")
	}

	if d.FieldPath != "" {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}

		b.WriteString(d.FieldPath)
	}

	if b.Len() > 0 {
		b.WriteString(": ")
	}

	if d.Code != "" {
		b.WriteString("[" + d.Code + "] ")
	}

	b.WriteString(d.Message)

	if len(d.Suggestions) > 0 {
		b.WriteString(" (did you mean " + strings.Join(d.Suggestions, ", ") + "?)")
	}

	return b.String()
}
