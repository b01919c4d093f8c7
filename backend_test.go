package idlc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lowerSingleInterface(t *testing.T, dir string) (*MIR, *MIRInterface) {
	t.Helper()
	mir := lowerMIR(t, dir, `struct Point {
  int32 x;
  int32 y;
};
interface Shape {
  error BadInput;
  method area(in Point p, out int32 result);
};
`)
	iface := findInterface(mir, "Shape")
	require.NotNil(t, iface)
	return mir, iface
}

func TestCBackendGeneratesOpcodeDefinesAndStruct(t *testing.T) {
	mir, iface := lowerSingleInterface(t, t.TempDir())
	b := CBackend{}
	impl := b.GenerateImplementation(mir, iface, NewCompilerConfig())
	assert.Contains(t, impl, "SHAPE_OP_AREA")
	assert.Contains(t, impl, "point_t")
	assert.True(t, strings.Contains(impl, "#ifndef MINK_SHAPE_H"))

	skel := b.GenerateInvoke(mir, iface, NewCompilerConfig())
	assert.Contains(t, skel, "shape_invoke")
	assert.Contains(t, skel, "0x0000")
}

func TestCppBackendGeneratesNamespacedClass(t *testing.T) {
	mir, iface := lowerSingleInterface(t, t.TempDir())
	b := CppBackend{}
	impl := b.GenerateImplementation(mir, iface, NewCompilerConfig())
	assert.Contains(t, impl, "namespace")
	assert.Contains(t, impl, "Shape")
}

func TestJavaBackendGeneratesClassAndSkeleton(t *testing.T) {
	mir, iface := lowerSingleInterface(t, t.TempDir())
	b := JavaBackend{}
	impl := b.GenerateImplementation(mir, iface, NewCompilerConfig())
	assert.Contains(t, impl, "public final class Shape")
	assert.Contains(t, impl, "OP_AREA")

	skel := b.GenerateInvoke(mir, iface, NewCompilerConfig())
	assert.Contains(t, skel, "ShapeSkeleton")
}

func TestRustBackendGeneratesReprCStructAndImpl(t *testing.T) {
	mir, iface := lowerSingleInterface(t, t.TempDir())
	b := RustBackend{}
	impl := b.GenerateImplementation(mir, iface, NewCompilerConfig())
	assert.Contains(t, impl, "#[repr(C)]")
	assert.Contains(t, impl, "pub struct Shape")
	assert.Contains(t, impl, "OP_AREA")
}

func TestAllBackendsAgreeOnOpcodeAcrossEmission(t *testing.T) {
	mir, iface := lowerSingleInterface(t, t.TempDir())
	cfg := NewCompilerConfig()
	backends := []Backend{CBackend{}, CppBackend{}, JavaBackend{}, RustBackend{}}
	for _, b := range backends {
		out := strings.ToLower(b.GenerateImplementation(mir, iface, cfg))
		assert.Contains(t, out, "area", b.Name())
		assert.Contains(t, out, opcodeHex(iface.Functions[0].Opcode), b.Name())
	}
}

func TestEscapeIdentSuffixesReservedWord(t *testing.T) {
	assert.Equal(t, "class_", EscapeIdent("class"))
	assert.Equal(t, "area", EscapeIdent("area"))
}

func TestIsReservedKeywordCoversCCppAndJavaNotRust(t *testing.T) {
	assert.True(t, IsReservedKeyword("class"))
	assert.True(t, IsReservedKeyword("interface"))
	assert.False(t, IsReservedKeyword("impl"))
}
