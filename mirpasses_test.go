package idlc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyInterfaceCollisionsRejectsMethodNameCollisionAcrossChain(t *testing.T) {
	dir := t.TempDir()
	mir := lowerMIR(t, dir, `interface Base {
  method run();
};
interface Derived : Base {
  method run();
};
`)
	diag := VerifyInterfaceCollisions(mir)
	require.NotNil(t, diag)
	assert.Equal(t, KindDuplicate, diag.Kind)
}

func TestVerifyInterfaceCollisionsRejectsErrorNameCollidingWithConst(t *testing.T) {
	dir := t.TempDir()
	mir := lowerMIR(t, dir, `interface Base {
  const uint8 Status = 1;
};
interface Derived : Base {
  error Status;
};
`)
	diag := VerifyInterfaceCollisions(mir)
	require.NotNil(t, diag)
	assert.Equal(t, KindDuplicate, diag.Kind)
}

func TestVerifyInterfaceCollisionsAllowsDistinctChain(t *testing.T) {
	dir := t.TempDir()
	mir := lowerMIR(t, dir, `interface Base {
  method run();
  error Failure;
};
interface Derived : Base {
  method stop();
  error Timeout;
};
`)
	assert.Nil(t, VerifyInterfaceCollisions(mir))
}
