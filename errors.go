package cppdemangle

import "errors"

// Sentinel errors returned by the package. Callers should compare
// against these with errors.Is rather than matching error strings.
var (
	// ErrNotMangled is returned when the input does not look like a
	// mangled name for the engine that was asked to parse it (for the
	// Itanium engine, no "_Z" prefix).
	ErrNotMangled = errors.New("cppdemangle: not a mangled name")

	// ErrInvalid is returned for a grammar violation, a truncated
	// input, or a production that ran out of characters before its
	// required terminator.
	ErrInvalid = errors.New("cppdemangle: invalid mangled name")

	// ErrUnsupported is returned for grammar productions the engine
	// deliberately does not implement (Dp, Dt, DT, sZ, template
	// argument packs, sp<expression>, gcc2 templates).
	ErrUnsupported = errors.New("cppdemangle: unsupported mangling")

	// ErrBufferTooSmall is returned when the caller-supplied buffer
	// overflowed during rendering. It is distinct from ErrInvalid: the
	// parse itself succeeded.
	ErrBufferTooSmall = errors.New("cppdemangle: output buffer too small")

	// ErrInternal marks a rendering hook failing after a successful
	// parse. It should never happen; seeing it means a node's render
	// method returned false without there being an overflow.
	ErrInternal = errors.New("cppdemangle: internal error")

	// ErrInvalidParameterIndex is returned by the argument iterator
	// when asked for an index outside the function's parameter list.
	ErrInvalidParameterIndex = errors.New("cppdemangle: invalid parameter index")

	// ErrNoMoreArguments is the argument iterator's "end of arguments"
	// signal. It is not a failure; callers loop until they see it.
	ErrNoMoreArguments = errors.New("cppdemangle: no more arguments")

	// ErrTooManyArguments is returned by the legacy argument iterator,
	// for any cookie, when the symbol's argument list exceeds the
	// 32-argument cap spec.md §4.2 imposes on the gcc2 scheme.
	ErrTooManyArguments = errors.New("cppdemangle: too many arguments")
)

// argIterError distinguishes, at the argument-iterator boundary, the
// handful of error kinds spec.md §4.6 maps differently than the
// whole-symbol entry point does ("bad value" vs "buffer overflow" vs
// "no memory" vs "bad index"). Go doesn't need the numeric B_* status
// codes the original host boundary uses, so this just normalizes to
// one of the sentinels above; ErrUnsupported and ErrInvalid both
// collapse to ErrInvalid here exactly as spec.md §4.6 requires.
func normalizeArgIterError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotMangled), errors.Is(err, ErrUnsupported):
		return ErrInvalid
	default:
		return err
	}
}
