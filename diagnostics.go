package idlc

import "fmt"

// DiagnosticKind classifies a Diagnostic per the error families in spec §7.
type DiagnosticKind int

const (
	KindIO DiagnosticKind = iota
	KindParse
	KindRange
	KindCycle
	KindDuplicate
	KindUnresolved
	KindLayout
	KindCapacity
	KindConfiguration
	KindWarning
)

func (k DiagnosticKind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindParse:
		return "parse"
	case KindRange:
		return "range"
	case KindCycle:
		return "cycle"
	case KindDuplicate:
		return "duplicate"
	case KindUnresolved:
		return "unresolved"
	case KindLayout:
		return "layout"
	case KindCapacity:
		return "capacity"
	case KindConfiguration:
		return "configuration"
	case KindWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// Diagnostic is the one error type every pass in the compiler produces.
// It carries enough structure (kind, message, optional span and path) for
// the frontend to format consistently, the way teacher's ParsingError
// carries Message/Label/Production/Span.
type Diagnostic struct {
	Kind    DiagnosticKind
	Message string
	Path    string
	Span    *Span
}

func (d *Diagnostic) Error() string {
	if d.Path != "" && d.Span != nil {
		return fmt.Sprintf("%s: %s @ %s", d.Path, d.Message, d.Span)
	}
	if d.Path != "" {
		return fmt.Sprintf("%s: %s", d.Path, d.Message)
	}
	return d.Message
}

func newDiag(kind DiagnosticKind, path string, span *Span, format string, args ...any) *Diagnostic {
	return &Diagnostic{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Path:    path,
		Span:    span,
	}
}

// fatal is the pipeline-wide "this pass cannot continue" constructor.
// Every semantic/MIR pass returns one of these instead of a bare error,
// matching the idlc_errors::unrecoverable! convention in the original
// compiler this spec was distilled from.
func fatal(kind DiagnosticKind, format string, args ...any) *Diagnostic {
	return newDiag(kind, "", nil, format, args...)
}

func fatalAt(kind DiagnosticKind, path string, span Span, format string, args ...any) *Diagnostic {
	return newDiag(kind, path, &span, format, args...)
}

// newWarning builds a non-fatal Diagnostic; the store raises one when an
// include matches more than one include root. The frontend prints these
// without aborting the pipeline.
func newWarning(path string, format string, args ...any) *Diagnostic {
	return newDiag(KindWarning, path, nil, format, args...)
}

// FatalIO wraps a filesystem error (missing input, unwritable output) as
// a KindIO Diagnostic for the frontend to report uniformly with every
// other pipeline failure.
func FatalIO(path string, err error) *Diagnostic {
	return newDiag(KindIO, path, nil, "%s", err)
}
