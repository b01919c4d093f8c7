package idlc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDumpASTRendersStructsAndInterfaces(t *testing.T) {
	dir := t.TempDir()
	root := writeIDL(t, dir, "root.idl", `struct Point {
  int32 x;
  int32 y;
};
interface Shape {
  error BadInput;
  method area(in Point p, out int32 result);
};
`)
	store := NewIDLStore(NewCompilerConfig())
	unit, diag := store.LoadRoot(root)
	require.Nil(t, diag)

	out := DumpAST(unit)
	assert.Contains(t, out, "struct Point")
	assert.Contains(t, out, "field x int32")
	assert.Contains(t, out, "interface Shape")
	assert.Contains(t, out, "error BadInput")
	assert.Contains(t, out, "method area")
}

func TestDumpMIRRendersOpcodesAndStructSize(t *testing.T) {
	mir := lowerMIR(t, t.TempDir(), `struct Point {
  int32 x;
  int32 y;
};
interface Shape {
  method area(in Point p, out int32 result);
};
`)
	out := DumpMIR(mir)
	assert.Contains(t, out, "struct Point size=8")
	assert.Contains(t, out, "method area op=0x0000")
}

func TestDumpYAMLRoundTripsPlainValue(t *testing.T) {
	out, err := DumpYAML(map[string]int{"x": 1})
	require.NoError(t, err)
	assert.Contains(t, out, "x: 1")
}
