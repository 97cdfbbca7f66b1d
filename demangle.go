// Package cppdemangle turns compiler-mangled C++ symbol names back
// into readable source-level text.
//
// Two unrelated mangling schemes are supported: the Itanium C++ ABI
// used by gcc 3 and every compiler compatible with it, and the older
// ARM/cfront-derived scheme gcc 2.x used on BeOS. ToString and Filter
// auto-detect which scheme a name belongs to; NextArgument walks a
// function's parameter list one type at a time without allocating a
// full rendered string.
package cppdemangle

import (
	"errors"
	"strings"
)

// ToString demangles a single mangled C++ symbol, trying the Itanium
// engine first when the name looks like one and falling back to the
// legacy gcc2 engine otherwise, mirroring demangle.cpp's
// demangle_symbol. The bool result reports whether the symbol is
// classified as a method on an object, as opposed to a free function,
// a class-scoped non-member, or a plain data symbol — best-effort for
// the legacy scheme, which has no symbol table to consult either.
func ToString(mangled string) (string, bool, error) {
	if looksLikeItanium(mangled) {
		if s, isMethod, err := itaniumToString(mangled); err == nil {
			return s, isMethod, nil
		}
	}
	return legacyToString(mangled)
}

// Filter demangles name if possible, returning it unchanged otherwise
// — the best-effort form used when scanning arbitrary text (a stack
// trace, a linker map) for embedded mangled symbols, grounded on
// c++filt.cpp's default non-strict behavior.
func Filter(name string) string {
	if s, _, err := ToString(name); err == nil {
		return s
	}
	return name
}

// NextArgument reports the cookie'th (0-based) parameter of mangled's
// function signature: its rendered display name, its semantic type
// tag, and a suggested size in bytes for reading it from a register
// or stack slot. next is the cookie to pass on the following call.
// Reaching the end of the parameter list is reported as
// ErrNoMoreArguments, not a failure; callers loop until they see it:
//
//	for cookie := 0; ; {
//		_, tag, _, next, err := cppdemangle.NextArgument(mangled, cookie)
//		if errors.Is(err, cppdemangle.ErrNoMoreArguments) {
//			break
//		}
//		if err != nil {
//			return err
//		}
//		cookie = next
//	}
//
// This mirrors get_next_argument's cookie-driven enumeration without
// needing a full ToString render first.
func NextArgument(mangled string, cookie int) (name string, tag ArgType, size int, next int, err error) {
	if looksLikeItanium(mangled) {
		name, tag, size, next, err = itaniumNextArgument(mangled, cookie)
		if err == nil || errors.Is(err, ErrNoMoreArguments) || errors.Is(err, ErrInvalidParameterIndex) {
			return name, tag, size, next, err
		}
	}
	return legacyNextArgument(mangled, cookie)
}

// itaniumToString renders the Itanium demangling of mangled into a
// freshly sized buffer, generous enough that legitimate symbols never
// overflow it.
func itaniumToString(mangled string) (string, bool, error) {
	n, err := demangleItanium(mangled)
	if err != nil {
		return "", false, err
	}
	buf := newOutputBuffer(len(mangled)*8 + 64)
	if !n.getName(buf) || buf.hadOverflow() {
		if buf.hadOverflow() {
			return "", false, ErrBufferTooSmall
		}
		return "", false, ErrInternal
	}
	rendered := buf.String()
	return rendered, isObjectMethodKind(n.objectKind(), rendered), nil
}

// isObjectMethodKind decides demangle_symbol_gcc3's "_isObjectMethod"
// out-parameter from the parsed node's object-type classification.
// Data, plain functions, and class-qualified methods referenced by
// name (Class::method) are not object methods; a cast operator always
// is. Anything the classifier couldn't pin down falls back to
// demangle_symbol_gcc3's own fallback: assume it is one unless the
// rendered name has no "::" to even suggest a class.
func isObjectMethodKind(k objectKind, rendered string) bool {
	switch k {
	case objectData, objectFunction, objectMethodOfClass:
		return false
	case objectMethodOfObject:
		return true
	default: // objectUnknown, objectMethodUnknown
		return strings.Contains(rendered, "::")
	}
}

// itaniumNextArgument resolves mangled as an Itanium encoding and
// walks to its cookie'th parameter.
func itaniumNextArgument(mangled string, cookie int) (string, ArgType, int, int, error) {
	if cookie < 0 {
		return "", ArgUnknown, 0, 0, ErrInvalidParameterIndex
	}
	n, err := demangleItanium(mangled)
	if err != nil {
		return "", ArgUnknown, 0, 0, err
	}
	fn, ok := n.(*functionNode)
	if !ok {
		return "", ArgUnknown, 0, 0, ErrNoMoreArguments
	}
	p := fn.firstParam
	for i := 0; p != nil && i < cookie; i++ {
		p = p.next()
	}
	if p == nil {
		return "", ArgUnknown, 0, 0, ErrNoMoreArguments
	}

	buf := newOutputBuffer(4096)
	if !p.getName(buf) || buf.hadOverflow() {
		return "", ArgUnknown, 0, 0, ErrBufferTooSmall
	}
	tag := p.typeInfo().typ
	size, _ := tag.builtinSize()
	return buf.String(), tag, size, cookie + 1, nil
}
