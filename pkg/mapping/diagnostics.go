package mapping

import "fmt"

// Severity ranks a diagnostic for logging.
type Severity int

const (
	SeverityDebug Severity = iota
	SeverityInfo
	SeverityWarning
)

func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// Kind classifies what happened.
type Kind string

const (
	// KindConfiguration flags a target service or namespace that neither the
	// caller nor the document supplied.
	KindConfiguration Kind = "configuration"
	// KindMalformedServerURL flags a first server URL whose path could not be
	// extracted.
	KindMalformedServerURL Kind = "malformed_server_url"
	// KindOperationSuppressed records a deliberate drop from the output.
	KindOperationSuppressed Kind = "operation_suppressed"
)

// Diagnostic is a non-fatal event raised while deriving routes.
type Diagnostic struct {
	Kind        Kind
	Severity    Severity
	Message     string
	OperationID string
}

func (d Diagnostic) String() string {
	if d.OperationID == "" {
		return fmt.Sprintf("%s: %s", d.Severity, d.Message)
	}
	return fmt.Sprintf("%s: %s (operation %s)", d.Severity, d.Message, d.OperationID)
}

// Diagnostics is an ordered collection of events.
type Diagnostics []Diagnostic

// Add appends a diagnostic built from a format string.
func (d *Diagnostics) Add(kind Kind, severity Severity, operationID, format string, args ...any) {
	*d = append(*d, Diagnostic{
		Kind:        kind,
		Severity:    severity,
		Message:     fmt.Sprintf(format, args...),
		OperationID: operationID,
	})
}

// OfKind filters the collection.
func (d Diagnostics) OfKind(kind Kind) Diagnostics {
	var out Diagnostics
	for _, diag := range d {
		if diag.Kind == kind {
			out = append(out, diag)
		}
	}
	return out
}

// AtLeast returns diagnostics with severity >= min.
func (d Diagnostics) AtLeast(min Severity) Diagnostics {
	var out Diagnostics
	for _, diag := range d {
		if diag.Severity >= min {
			out = append(out, diag)
		}
	}
	return out
}
