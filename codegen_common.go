package idlc

import (
	"fmt"
	"strings"
)

// CountsToken is the packed (in_bufs, out_bufs, in_objs, out_objs) tuple
// every backend passes alongside the opcode and argument array, so the
// generic invoke primitive on both sides can validate argument shape
// without inspecting the IDL itself.
type CountsToken struct {
	InputBuffers  int
	OutputBuffers int
	InputObjects  int
	OutputObjects int
}

// PackCounts mirrors counts_pack(in_bufs, out_bufs, in_objs, out_objs)
// from idlc_codegen/src/counts.rs: a single token both sides of the
// wire agree on.
func PackCounts(c *Counter) CountsToken {
	return CountsToken{
		InputBuffers:  c.InputBuffers,
		OutputBuffers: c.OutputBuffers,
		InputObjects:  c.InputObjects,
		OutputObjects: c.OutputObjects,
	}
}

// EscapeIdent renames ident if it collides with a reserved keyword in
// any backend language, suffixing with an underscore — one of the
// escaping strategies spec §4.H leaves to the backend, shared by the C,
// C++ and Java backends so they generate the same name. The Rust backend
// escapes with raw identifiers instead (rustIdent).
func EscapeIdent(ident string) string {
	if IsReservedKeyword(ident) {
		return ident + "_"
	}
	return ident
}

// cTypeName maps a primitive to its C/C++ stdint name.
func cTypeName(p Primitive) string {
	switch p {
	case Uint8:
		return "uint8_t"
	case Uint16:
		return "uint16_t"
	case Uint32:
		return "uint32_t"
	case Uint64:
		return "uint64_t"
	case Int8:
		return "int8_t"
	case Int16:
		return "int16_t"
	case Int32:
		return "int32_t"
	case Int64:
		return "int64_t"
	case Float32:
		return "float"
	case Float64:
		return "double"
	default:
		return "uint8_t"
	}
}

func javaTypeName(p Primitive) string {
	switch p {
	case Uint8, Int8:
		return "byte"
	case Uint16, Int16:
		return "short"
	case Uint32, Int32:
		return "int"
	case Uint64, Int64:
		return "long"
	case Float32:
		return "float"
	case Float64:
		return "double"
	default:
		return "byte"
	}
}

func rustTypeName(p Primitive) string {
	switch p {
	case Uint8:
		return "u8"
	case Uint16:
		return "u16"
	case Uint32:
		return "u32"
	case Uint64:
		return "u64"
	case Int8:
		return "i8"
	case Int16:
		return "i16"
	case Int32:
		return "i32"
	case Int64:
		return "i64"
	case Float32:
		return "f32"
	case Float64:
		return "f64"
	default:
		return "u8"
	}
}

// mirTypeRefName resolves a MIRType to the name a backend would use to
// reference it textually (before that backend's own primitive mapping is
// applied): a struct's own ident, or "object" for the opaque handle.
func mirTypeRefName(t MIRType) string {
	switch t.Kind {
	case MIRStructRef:
		return t.Struct.Ident.Name
	case MIRObject:
		return "object"
	default:
		return ""
	}
}

func opcodeHex(op uint32) string {
	return fmt.Sprintf("0x%04x", op)
}

// snake lowercases an IDL identifier for use in emitted C/C++ names. It
// does not insert underscores at case boundaries.
func snake(ident string) string {
	return strings.ToLower(ident)
}

func upperSnake(ident string) string {
	return strings.ToUpper(ident)
}

// pascalCase renders a snake_case or lowerCamel identifier in
// UpperCamelCase, for Java class/type names.
func pascalCase(ident string) string {
	parts := strings.FieldsFunc(ident, func(r rune) bool { return r == '_' })
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	if b.Len() == 0 {
		return ident
	}
	return b.String()
}
