package idlc

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadStore(t *testing.T, dir, rootSrc string) (*IDLStore, *Diagnostic) {
	t.Helper()
	root := writeIDL(t, dir, "root.idl", rootSrc)
	store := NewIDLStore(NewCompilerConfig())
	_, diag := store.LoadRoot(root)
	return store, diag
}

func TestCheckDuplicateParametersRejectsDuplicate(t *testing.T) {
	dir := t.TempDir()
	store, diag := loadStore(t, dir, `interface I {
  method m(in int32 a, in int32 a);
};
`)
	require.Nil(t, diag)
	diag = CheckDuplicateParameters(store)
	require.NotNil(t, diag)
	assert.Equal(t, KindDuplicate, diag.Kind)
}

func TestCheckDuplicateParametersAllowsDistinctNames(t *testing.T) {
	dir := t.TempDir()
	store, diag := loadStore(t, dir, `interface I {
  method m(in int32 a, in int32 b);
};
`)
	require.Nil(t, diag)
	assert.Nil(t, CheckDuplicateParameters(store))
}

func TestCheckAcyclicityDetectsStructFieldCycle(t *testing.T) {
	dir := t.TempDir()
	store, diag := loadStore(t, dir, `struct A {
  B b;
};
struct B {
  A a;
};
`)
	require.Nil(t, diag)
	_, diag = CheckAcyclicity(store)
	require.NotNil(t, diag)
	assert.Equal(t, KindCycle, diag.Kind)
}

func TestCheckAcyclicityDetectsInterfaceBaseCycle(t *testing.T) {
	dir := t.TempDir()
	store, diag := loadStore(t, dir, `interface A : B {
  method m();
};
interface B : A {
  method n();
};
`)
	require.Nil(t, diag)
	_, diag = CheckAcyclicity(store)
	require.NotNil(t, diag)
	assert.Equal(t, KindCycle, diag.Kind)
}

func TestCheckAcyclicityOrdersLeavesFirst(t *testing.T) {
	dir := t.TempDir()
	store, diag := loadStore(t, dir, `struct Leaf {
  int32 v;
};
struct Parent {
  Leaf leaf;
};
`)
	require.Nil(t, diag)
	order, diag := CheckAcyclicity(store)
	require.Nil(t, diag)

	leafIdx, parentIdx := -1, -1
	for i, n := range order {
		if n == "Leaf" {
			leafIdx = i
		}
		if n == "Parent" {
			parentIdx = i
		}
	}
	require.NotEqual(t, -1, leafIdx)
	require.NotEqual(t, -1, parentIdx)
	assert.Less(t, leafIdx, parentIdx)
}

func TestVerifyStructLayoutsRejectsMisalignment(t *testing.T) {
	dir := t.TempDir()
	store, diag := loadStore(t, dir, `struct Bad {
  uint8 a;
  uint32 b;
};
`)
	require.Nil(t, diag)
	order, diag := CheckAcyclicity(store)
	require.Nil(t, diag)
	_, diag = VerifyStructLayouts(store, order)
	require.NotNil(t, diag)
	assert.Equal(t, KindLayout, diag.Kind)
}

func TestVerifyStructLayoutsRejectsOversize(t *testing.T) {
	dir := t.TempDir()
	store, diag := loadStore(t, dir, `struct Big {
  uint8[2000] buf;
};
`)
	require.Nil(t, diag)
	order, diag := CheckAcyclicity(store)
	require.Nil(t, diag)
	_, diag = VerifyStructLayouts(store, order)
	require.NotNil(t, diag)
	assert.Equal(t, KindLayout, diag.Kind)
}

func TestVerifyStructLayoutsComputesNestedStructSize(t *testing.T) {
	dir := t.TempDir()
	store, diag := loadStore(t, dir, `struct Leaf {
  uint32 v;
};
struct Parent {
  Leaf leaf;
  uint32 tag;
};
`)
	require.Nil(t, diag)
	order, diag := CheckAcyclicity(store)
	require.Nil(t, diag)
	layouts, diag := VerifyStructLayouts(store, order)
	require.Nil(t, diag)

	assert.Equal(t, 4, layouts["Leaf"].size)
	assert.Equal(t, 8, layouts["Parent"].size)
}

func TestVerifyStructLayoutsRejectsUnresolvedField(t *testing.T) {
	dir := t.TempDir()
	writeIDL(t, dir, "root.idl", "struct Parent {\n  Missing m;\n};\n")
	store := NewIDLStore(NewCompilerConfig())
	path := filepath.Join(dir, "root.idl")
	_, diag := store.LoadRoot(path)
	require.Nil(t, diag)
	order, diag := CheckAcyclicity(store)
	require.Nil(t, diag)
	_, diag = VerifyStructLayouts(store, order)
	require.NotNil(t, diag)
	assert.Equal(t, KindUnresolved, diag.Kind)
}
