package idlc

// reservedKeywords is the union of C17, C++23, and Java reserved words.
// Rust's own keyword list is excluded, matching the original's reasoning
// in idlc_codegen/src/keywords.rs: Rust has raw-identifier escaping
// (`r#ident`) so a Rust-only keyword never forces an emission failure,
// while the other three backends must reject or rename a collision
// outright.
var reservedKeywords = buildReservedKeywords()

func buildReservedKeywords() map[string]struct{} {
	set := make(map[string]struct{})
	add := func(words ...string) {
		for _, w := range words {
			set[w] = struct{}{}
		}
	}

	// C17 keywords.
	add(
		"auto", "break", "case", "char", "const", "continue", "default", "do",
		"double", "else", "enum", "extern", "float", "for", "goto", "if",
		"inline", "int", "long", "register", "restrict", "return", "short",
		"signed", "sizeof", "static", "struct", "switch", "typedef", "union",
		"unsigned", "void", "volatile", "while", "_Alignas", "_Alignof",
		"_Atomic", "_Bool", "_Complex", "_Generic", "_Imaginary", "_Noreturn",
		"_Static_assert", "_Thread_local",
	)

	// C++23 keywords (adds to the C list).
	add(
		"alignas", "alignof", "and", "and_eq", "asm", "atomic_cancel",
		"atomic_commit", "atomic_noexcept", "bitand", "bitor", "bool",
		"catch", "char8_t", "char16_t", "char32_t", "class", "compl",
		"concept", "consteval", "constexpr", "constinit", "const_cast",
		"co_await", "co_return", "co_yield", "decltype", "delete",
		"dynamic_cast", "explicit", "export", "false", "friend", "mutable",
		"namespace", "new", "noexcept", "not", "not_eq", "nullptr",
		"operator", "or", "or_eq", "private", "protected", "public",
		"reflexpr", "reinterpret_cast", "requires", "static_assert",
		"static_cast", "synchronized", "template", "this", "thread_local",
		"throw", "true", "try", "typeid", "typename", "using", "virtual",
		"wchar_t", "xor", "xor_eq",
	)

	// Java keywords and reserved literals.
	add(
		"abstract", "assert", "boolean", "break", "byte", "case", "catch",
		"class", "const", "continue", "default", "do", "double", "else",
		"enum", "extends", "final", "finally", "float", "for", "goto", "if",
		"implements", "import", "instanceof", "int", "interface", "long",
		"native", "new", "package", "private", "protected", "public",
		"return", "short", "static", "strictfp", "super", "switch",
		"synchronized", "this", "throw", "throws", "transient", "try",
		"void", "volatile", "while", "true", "false", "null", "var",
		"record", "yield", "sealed", "permits",
	)

	return set
}

// IsReservedKeyword reports whether ident collides with a reserved word
// in any of the emission targets that can't escape it syntactically.
func IsReservedKeyword(ident string) bool {
	_, ok := reservedKeywords[ident]
	return ok
}
