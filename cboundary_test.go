package cppdemangle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDemangleInto checks the fixed-capacity-buffer adaptor against a
// buffer that comfortably fits the result, and against one too small
// to hold it.
func TestDemangleInto(t *testing.T) {
	buf := make([]byte, 64)
	n, isMethod, err := DemangleInto("_Z3fooiPKc", buf)
	require.NoError(t, err)
	assert.False(t, isMethod)
	assert.Equal(t, "foo(int, char const*)", string(buf[:n]))

	small := make([]byte, 3)
	_, _, err = DemangleInto("_Z3fooiPKc", small)
	assert.ErrorIs(t, err, ErrBufferTooSmall)

	_, _, err = DemangleInto("_Z3fooiPKc", nil)
	assert.ErrorIs(t, err, ErrBufferTooSmall)
}

// TestDemangleIntoInvalid checks that a parse failure surfaces its
// underlying error rather than a buffer-related one.
func TestDemangleIntoInvalid(t *testing.T) {
	buf := make([]byte, 64)
	_, _, err := DemangleInto("_Z", buf)
	assert.Error(t, err)
}

// TestNextArgumentInto walks a parameter list through the cookie-based
// adaptor, checking the cookie only advances on success.
func TestNextArgumentInto(t *testing.T) {
	var cookie uint32
	buf := make([]byte, 64)

	n, tag, size, err := NextArgumentInto(&cookie, "_Z3fooiPKc", buf)
	require.NoError(t, err)
	assert.Equal(t, "int", string(buf[:n]))
	assert.Equal(t, ArgInt, tag)
	assert.Equal(t, 4, size)
	assert.EqualValues(t, 1, cookie)

	n, _, _, err = NextArgumentInto(&cookie, "_Z3fooiPKc", buf)
	require.NoError(t, err)
	assert.Equal(t, "char const*", string(buf[:n]))
	assert.EqualValues(t, 2, cookie)

	beforeErr := cookie
	_, _, _, err = NextArgumentInto(&cookie, "_Z3fooiPKc", buf)
	assert.ErrorIs(t, err, ErrNoMoreArguments)
	assert.Equal(t, beforeErr, cookie, "cookie must not change on error")
}

// TestNextArgumentIntoNormalizesError checks that a not-mangled input
// at the argument-iterator boundary maps to ErrInvalid, per spec.md
// §4.6 and normalizeArgIterError.
func TestNextArgumentIntoNormalizesError(t *testing.T) {
	var cookie uint32
	buf := make([]byte, 64)
	_, _, _, err := NextArgumentInto(&cookie, "", buf)
	assert.ErrorIs(t, err, ErrInvalid)
}

// TestModuleTable checks that the module table's hooks are bound and
// callable, mirroring the host's module_info lifecycle contract.
func TestModuleTable(t *testing.T) {
	m := NewModuleTable()
	assert.NoError(t, m.Init())

	buf := make([]byte, 64)
	n, _, err := m.Demangle("_Z3fooiPKc", buf)
	require.NoError(t, err)
	assert.Equal(t, "foo(int, char const*)", string(buf[:n]))

	assert.NoError(t, m.Uninit())
}
