package cppdemangle

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLegacyToString exercises the gcc2/ARM scheme, including spec.md
// §8 scenario 6: a nested-class method with a function-pointer
// parameter and a trailing "Pv".
func TestLegacyToString(t *testing.T) {
	var tests = []struct {
		name  string
		input string
		want  string
	}{
		{
			"nested class, function-pointer argument, trailing Pv",
			"SyncDraw__Q28BPrivate9IconCachePQ28BPrivate5ModelP5BViewG6BPointQ28BPrivate12IconDrawMode9icon_sizePFP5BViewG6BPointP7BBitmapPv_vPv",
			"BPrivate::IconCache::SyncDraw(BPrivate::Model*, BView*, BPoint, BPrivate::IconDrawMode, icon_size, void (*)(BView*, BPoint, BBitmap*, void*), void*)",
		},
		{
			"plain free function, repeated argument via 'T' back-reference",
			"add__FiT1",
			"add(int, int)",
		},
		{
			"unsigned and const qualifiers",
			"get__FUiCi",
			"get(unsigned int, int const)",
		},
		{
			"no arguments (void)",
			"reset__Fv",
			"reset()",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, err := legacyToString(tt.input)
			require.NoError(t, err, "legacyToString(%q)", tt.input)
			assert.Equal(t, tt.want, got, "legacyToString(%q)", tt.input)
		})
	}
}

// TestLegacyIsFreeFunction checks the method-vs-function flag's
// documented heuristic (spec.md §9 open question 1): the presence of
// an "F" right after "__" marks a free function; its absence is always
// reported as a method, even though that is a guess.
func TestLegacyIsFreeFunction(t *testing.T) {
	_, isMethod, err := legacyToString("add__FiT1")
	require.NoError(t, err)
	assert.False(t, isMethod, "F-tagged free function")

	_, isMethod, err = legacyToString("Draw__5BViewP5BRect")
	require.NoError(t, err)
	assert.True(t, isMethod, "no F tag, guessed method")
}

// TestLegacyTooManyArguments checks spec.md §7's split behaviour: the
// whole-symbol demangle still succeeds with an empty parameter list
// once the 32-argument cap is exceeded, but the per-argument
// enumerator reports ErrTooManyArguments.
func TestLegacyTooManyArguments(t *testing.T) {
	mangled := "over__F" + strings.Repeat("i", 33)

	got, _, err := legacyToString(mangled)
	require.NoError(t, err, "legacyToString(%q)", mangled)
	assert.Equal(t, "over()", got)

	_, _, _, _, err = legacyNextArgument(mangled, 0)
	assert.ErrorIs(t, err, ErrTooManyArguments)
}

// TestLegacyNextArgument walks a multi-argument legacy signature's
// parameters one cookie at a time, including a 'T' back-reference
// that repeats an earlier argument.
func TestLegacyNextArgument(t *testing.T) {
	const mangled = "move__F3fooT1"
	var got []ArgType
	cookie := 0
	for {
		_, tag, _, next, err := legacyNextArgument(mangled, cookie)
		if err == ErrNoMoreArguments {
			break
		}
		require.NoError(t, err, "legacyNextArgument(%q, %d)", mangled, cookie)
		got = append(got, tag)
		cookie = next
	}
	assert.Len(t, got, 2)

	_, _, _, _, err := legacyNextArgument(mangled, 2)
	assert.ErrorIs(t, err, ErrNoMoreArguments)
}

// TestLegacyBackReferences checks the 'T' (repeat-one) and 'N'
// (repeat-N-times) back-reference operators against an explicit
// history of previously parsed argument types.
func TestLegacyBackReferences(t *testing.T) {
	// "foo__FiT1" == foo(int, int): 'T1' repeats argument 1 ("i").
	got, _, err := legacyToString("foo__FiT1")
	require.NoError(t, err)
	assert.Equal(t, "foo(int, int)", got)

	// "bar__FiN21" == bar(int, int, int): 'N21' repeats argument 1
	// twice more.
	got, _, err = legacyToString("bar__FiN21")
	require.NoError(t, err)
	assert.Equal(t, "bar(int, int, int)", got)
}

// TestLegacyBackReferenceOutOfRange checks that a 'T' or 'N'
// back-reference pointing past the history parsed so far is rejected
// rather than panicking (spec.md §8's boundary list).
func TestLegacyBackReferenceOutOfRange(t *testing.T) {
	var tests = []string{
		"foo__FT1", // no prior argument to repeat
		"foo__FN21",
	}
	for _, in := range tests {
		_, _, err := legacyToString(in)
		assert.Error(t, err, "legacyToString(%q)", in)
	}
}

// TestParseLegacyQualifiedTypeName covers the Q-prefixed
// namespace/class qualification grammar, including the "_<n>_" form
// used for more than nine components.
func TestParseLegacyQualifiedTypeName(t *testing.T) {
	var tests = []struct {
		input string
		want  string
	}{
		{"Q28BPrivate5Model", "BPrivate::Model"},
		{"Q_10_1a1b1c1d1e1f1g1h1i1j", "a::b::c::d::e::f::g::h::i::j"},
	}
	for _, tt := range tests {
		got, err := renderLegacyQualifiedName(tt.input)
		require.NoError(t, err, "renderLegacyQualifiedName(%q)", tt.input)
		assert.Equal(t, tt.want, got)
	}
}

// TestLegacyNotMangled checks degenerate and unsupported inputs.
func TestLegacyNotMangled(t *testing.T) {
	_, _, err := legacyToString("")
	assert.ErrorIs(t, err, ErrNotMangled)

	_, _, err = legacyToString("_H9template_thing")
	assert.ErrorIs(t, err, ErrUnsupported)

	_, _, err = legacyToString("plainname")
	assert.ErrorIs(t, err, ErrNotMangled)
}
