package idlc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeIDL(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestIDLStoreLoadsIncludesAndInjectsObjectHandle(t *testing.T) {
	dir := t.TempDir()
	writeIDL(t, dir, "common.idl", `struct Point {
  int32 x;
  int32 y;
};
`)
	root := writeIDL(t, dir, "root.idl", `include "common.idl";
interface Greeter {
  method ping();
};
`)

	store := NewIDLStore(NewCompilerConfig())
	_, diag := store.LoadRoot(root)
	require.Nil(t, diag)

	_, ok := store.StructLookup("Point")
	assert.True(t, ok)

	handle, ok := store.StructLookup("Greeter")
	require.True(t, ok)
	require.Len(t, handle.Fields, 2)
	assert.Equal(t, "invoke", handle.Fields[0].Ident.Name)
	assert.Equal(t, "context", handle.Fields[1].Ident.Name)
}

func TestIDLStoreDetectsIncludeCycle(t *testing.T) {
	dir := t.TempDir()
	writeIDL(t, dir, "a.idl", `include "b.idl";
`)
	writeIDL(t, dir, "b.idl", `include "c.idl";
`)
	writeIDL(t, dir, "c.idl", `include "a.idl";
`)
	root := filepath.Join(dir, "a.idl")

	store := NewIDLStore(NewCompilerConfig())
	_, diag := store.LoadRoot(root)
	require.NotNil(t, diag)
	assert.Equal(t, KindCycle, diag.Kind)
}

func TestIDLStoreRejectsDuplicateSymbol(t *testing.T) {
	dir := t.TempDir()
	root := writeIDL(t, dir, "root.idl", `struct A {
  int32 x;
};
struct A {
  int32 y;
};
`)
	store := NewIDLStore(NewCompilerConfig())
	_, diag := store.LoadRoot(root)
	require.NotNil(t, diag)
	assert.Equal(t, KindDuplicate, diag.Kind)
}

func TestIDLStoreResolvesIncludeRootsWithWarningOnTie(t *testing.T) {
	dir := t.TempDir()
	rootA := filepath.Join(dir, "rootsA")
	rootB := filepath.Join(dir, "rootsB")
	require.NoError(t, os.MkdirAll(rootA, 0o755))
	require.NoError(t, os.MkdirAll(rootB, 0o755))
	writeIDL(t, rootA, "shared.idl", `struct S { int32 v; };`)
	writeIDL(t, rootB, "shared.idl", `struct S { int32 v; };`)

	main := writeIDL(t, dir, "main.idl", `include "shared.idl";`)

	cfg := NewCompilerConfig()
	cfg.IncludeRoots = []string{rootA, rootB}
	store := NewIDLStore(cfg)
	_, diag := store.LoadRoot(main)
	require.Nil(t, diag)
	require.Len(t, store.Warnings, 1)
}

func TestIDLStoreMissingIncludeIsFatal(t *testing.T) {
	dir := t.TempDir()
	root := writeIDL(t, dir, "main.idl", `include "missing.idl";`)
	store := NewIDLStore(NewCompilerConfig())
	_, diag := store.LoadRoot(root)
	require.NotNil(t, diag)
	assert.Equal(t, KindIO, diag.Kind)
}
