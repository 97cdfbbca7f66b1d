package cppdemangle

// ArgType is the semantic-type tag the argument enumerator reports
// for each parameter of a mangled function, per spec.md §3 ("Argument
// type tag"). It is a closed enumeration shared, at a coarser
// granularity, by both the legacy and Itanium schemes.
type ArgType int

const (
	ArgUnknown ArgType = iota
	ArgVoid
	ArgWCharT
	ArgBool
	ArgChar
	ArgSignedChar
	ArgUnsignedChar
	ArgShort
	ArgUnsignedShort
	ArgInt
	ArgUnsignedInt
	ArgLong
	ArgUnsignedLong
	ArgLongLong
	ArgUnsignedLongLong
	ArgInt128
	ArgUnsignedInt128
	ArgFloat
	ArgDouble
	ArgLongDouble
	ArgFloat128
	ArgDFloat16
	ArgDFloat32
	ArgDFloat64
	ArgDFloat128
	ArgChar16
	ArgChar32
	ArgEllipsis

	// Composite tags, reported even when the underlying element type
	// is itself unknown or unsupported, so the enumerator can still
	// hand back a usable size.
	ArgPointer
	ArgReference
	ArgConstCharPointer
)

var argTypeNames = [...]string{
	ArgUnknown:           "unknown",
	ArgVoid:              "void",
	ArgWCharT:            "wchar_t",
	ArgBool:              "bool",
	ArgChar:              "char",
	ArgSignedChar:        "signed char",
	ArgUnsignedChar:      "unsigned char",
	ArgShort:             "short",
	ArgUnsignedShort:     "unsigned short",
	ArgInt:               "int",
	ArgUnsignedInt:       "unsigned int",
	ArgLong:              "long",
	ArgUnsignedLong:      "unsigned long",
	ArgLongLong:          "long long",
	ArgUnsignedLongLong:  "unsigned long long",
	ArgInt128:            "__int128",
	ArgUnsignedInt128:    "unsigned __int128",
	ArgFloat:             "float",
	ArgDouble:            "double",
	ArgLongDouble:        "long double",
	ArgFloat128:          "__float128",
	ArgDFloat16:          "__dfloat16",
	ArgDFloat32:          "__dfloat32",
	ArgDFloat64:          "__dfloat64",
	ArgDFloat128:         "__dfloat128",
	ArgChar16:            "char16_t",
	ArgChar32:            "char32_t",
	ArgEllipsis:          "...",
	ArgPointer:           "void*",
	ArgReference:         "void&",
	ArgConstCharPointer:  "char const*",
}

// String renders the fixed lexeme for a builtin tag. Composite and
// vendor/class types render through the AST instead; this is only
// used for the built-in-type fast path and for debugging.
func (t ArgType) String() string {
	if int(t) >= 0 && int(t) < len(argTypeNames) && argTypeNames[t] != "" {
		return argTypeNames[t]
	}
	return "?"
}

// pointerWidth is the platform pointer width in bytes, queried from
// the host rather than hard-coded the way spec.md §6 requires for
// pointer-like argument sizes ("suggest the platform pointer width,
// queried from the host, not hard-coded").
const pointerWidth = 4 << (^uintptr(0) >> 63 & 1)

// builtinSize returns the suggested size in bytes for reading an
// argument of this tag from a register or stack slot, and whether
// the tag has a known size. The composite pointer/reference tags
// report pointerWidth; void, ellipsis and unknown (class) types
// report 0, false.
func (t ArgType) builtinSize() (size int, ok bool) {
	switch t {
	case ArgVoid, ArgEllipsis, ArgUnknown:
		return 0, false
	case ArgBool, ArgChar, ArgSignedChar, ArgUnsignedChar:
		return 1, true
	case ArgShort, ArgUnsignedShort, ArgChar16:
		return 2, true
	case ArgInt, ArgUnsignedInt, ArgFloat, ArgChar32:
		return 4, true
	case ArgLong, ArgUnsignedLong:
		return 8, true
	case ArgLongLong, ArgUnsignedLongLong, ArgDouble:
		return 8, true
	case ArgInt128, ArgUnsignedInt128, ArgFloat128:
		return 16, true
	case ArgLongDouble:
		return 16, true
	case ArgDFloat16:
		return 2, true
	case ArgDFloat32:
		return 4, true
	case ArgDFloat64:
		return 8, true
	case ArgDFloat128:
		return 16, true
	case ArgWCharT:
		return 4, true
	case ArgPointer, ArgReference, ArgConstCharPointer:
		return pointerWidth, true
	default:
		return 0, false
	}
}
