package idlc

import (
	"fmt"
	"os"
	"strings"
)

// MarkingStyle is a backend's comment style, used both to reformat a
// function's attached documentation and to format a file-top marking
// banner. Grounded on idlc_codegen/src/marking.rs::MarkingStyle.
type MarkingStyle int

const (
	StyleRust MarkingStyle = iota
	StyleC
	StyleJava
)

func (s MarkingStyle) start() string {
	if s == StyleJava {
		return "/**\n"
	}
	return ""
}

func (s MarkingStyle) end() string {
	if s == StyleJava {
		return " */\n"
	}
	return ""
}

func (s MarkingStyle) prefix() string {
	if s == StyleJava {
		return " * "
	}
	return "// "
}

// FormatDocumentation reformats a function's attached documentation
// comment per style: trimmed input lines, each emitted with the style's
// prefix, wrapped in the style's delimiters where it has any.
func FormatDocumentation(doc *Documentation, style MarkingStyle) string {
	if doc == nil || strings.TrimSpace(doc.Text) == "" {
		return ""
	}
	var b strings.Builder
	b.WriteString(style.start())
	for _, line := range strings.Split(doc.Text, "\n") {
		b.WriteString(style.prefix())
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(style.end())
	return b.String()
}

// LoadMarking reads path and reformats every line with style's comment
// prefix, for use as a file-top banner (e.g. a license header).
func LoadMarking(path string, style MarkingStyle) (string, *Diagnostic) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fatal(KindIO, "cannot read marking file %s: %v", path, err)
	}
	var b strings.Builder
	b.WriteString(style.start())
	for _, line := range strings.Split(strings.TrimRight(string(raw), "\n"), "\n") {
		fmt.Fprintf(&b, "%s%s\n", style.prefix(), line)
	}
	b.WriteString(style.end())
	return b.String(), nil
}
