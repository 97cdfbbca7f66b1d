package cppdemangle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestToStringDispatch checks that ToString routes to the Itanium
// engine for "_Z"-prefixed input and to the legacy engine otherwise,
// per demangle_symbol's one-way fallback: a name that doesn't look
// like Itanium is never retried against the Itanium engine after the
// legacy attempt.
func TestToStringDispatch(t *testing.T) {
	itanium, _, err := ToString("_Z3fooiPKc")
	require.NoError(t, err)
	assert.Equal(t, "foo(int, char const*)", itanium)

	legacy, _, err := ToString("add__FiT1")
	require.NoError(t, err)
	assert.Equal(t, "add(int, int)", legacy)
}

// TestToStringEmptyAndBareItanium checks spec.md §8's boundary list:
// empty input and the bare "_Z" prefix (no encoding at all) are both
// reported as errors, not demangled as empty strings.
func TestToStringEmptyAndBareItanium(t *testing.T) {
	_, _, err := ToString("")
	assert.Error(t, err)

	_, _, err = ToString("_Z")
	assert.Error(t, err)
}

// TestFilter checks the best-effort wrapper: a demanglable name comes
// back rendered, anything else passes through unchanged.
func TestFilter(t *testing.T) {
	assert.Equal(t, "foo(int, char const*)", Filter("_Z3fooiPKc"))
	assert.Equal(t, "not a mangled name", Filter("not a mangled name"))
	assert.Equal(t, "", Filter(""))
}

// TestNextArgumentDispatch checks that NextArgument routes to the
// right engine for both schemes and terminates correctly.
func TestNextArgumentDispatch(t *testing.T) {
	name, tag, size, _, err := NextArgument("_Z3fooiPKc", 0)
	require.NoError(t, err)
	assert.Equal(t, "int", name)
	assert.Equal(t, ArgInt, tag)
	assert.Equal(t, 4, size)

	name, tag, _, _, err = NextArgument("add__FiT1", 0)
	require.NoError(t, err)
	assert.Equal(t, "int", name)
	assert.Equal(t, ArgInt, tag)
}

// TestNextArgumentNoMore checks that exhausting a parameter list ends
// in ErrNoMoreArguments for both schemes.
func TestNextArgumentNoMore(t *testing.T) {
	_, _, _, _, err := NextArgument("_ZN3foo3barEv", 0)
	assert.ErrorIs(t, err, ErrNoMoreArguments)

	_, _, _, _, err = NextArgument("reset__Fv", 0)
	assert.ErrorIs(t, err, ErrNoMoreArguments)
}
