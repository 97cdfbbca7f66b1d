package cppdemangle

import (
	"errors"
	"strconv"
	"strings"
)

// legacyArg is one resolved argument of a gcc2/ARM-mangled parameter
// list: its semantic tag plus its fully rendered display text. The
// legacy scheme has no AST worth building — a mangled type is just a
// short run of one-letter codes — so both ToString and NextArgument
// share this flat slice instead of a node tree.
type legacyArg struct {
	tag     ArgType
	display string
}

// legacyParsed is the result of locating and splitting a gcc2-style
// mangled name: the qualified, already-demangled "Namespace::Class::
// Method" text, and a cursor positioned at the start of the unparsed
// argument-type list.
type legacyParsed struct {
	qualifiedName string
	argsCursor    cursor
	isFreeFunc    bool
}

// parseLegacyMangledStart locates the "__" separator the ARM scheme
// uses between a function's source name and its encoded argument
// list, mirroring gcc2.cpp's mangled_start: scanning is greedy from
// the right, since a method name may itself legitimately contain
// "__", and backs off to an earlier candidate split whenever what
// follows doesn't parse as a plausible type list.
func parseLegacyMangledStart(s string) (legacyParsed, error) {
	if len(s) == 0 {
		return legacyParsed{}, ErrNotMangled
	}
	if strings.HasPrefix(s, "_H") {
		return legacyParsed{}, ErrUnsupported // gcc2 templates, non-goal
	}

	for idx := strings.LastIndex(s, "__"); idx > 0; idx = strings.LastIndex(s[:idx], "__") {
		rest := s[idx+2:]
		isFree := false
		class := ""
		candidate := rest
		if strings.HasPrefix(candidate, "F") {
			isFree = true
			candidate = candidate[1:]
		} else {
			cc := newCursor(strings.TrimPrefix(candidate, "C"))
			var err error
			if cc.skipPrefixByte('Q') {
				class, err = parseLegacyQualifiedTypeName(&cc)
			} else {
				class, err = parseLegacyCountedName(&cc)
			}
			if err != nil {
				continue
			}
			candidate = cc.s
		}
		if candidate != "" && !looksLikeLegacyArgList(candidate) {
			continue
		}
		qualified, err := renderLegacyQualifiedName(s[:idx])
		if err != nil {
			continue
		}
		return legacyParsed{
			qualifiedName: strings.TrimPrefix(class+"::", "::") + qualified,
			argsCursor:    newCursor(candidate),
			isFreeFunc:    isFree,
		}, nil
	}
	return legacyParsed{}, ErrNotMangled
}

func looksLikeLegacyArgList(s string) bool {
	if s == "v" {
		return true
	}
	c := newCursor(s)
	_, _, err := parseLegacyType(&c, 0)
	return err == nil
}

// renderLegacyQualifiedName decodes the portion of a legacy mangled
// name before "__": either plain source text, or a Q-prefixed
// sequence of counted namespace/class components (gcc2.cpp's
// count_namespaces / skip_namespaces).
func renderLegacyQualifiedName(s string) (string, error) {
	if len(s) == 0 {
		return "", ErrInvalid
	}
	if s[0] != 'Q' {
		return s, nil
	}
	c := newCursor(s[1:])
	name, err := parseLegacyQualifiedTypeName(&c)
	if err != nil {
		return "", err
	}
	if c.remaining() != 0 {
		return "", ErrInvalid
	}
	return name, nil
}

// parseLegacyQualifiedTypeName reads "<count><len><name>..." (or the
// "_<count>_" form for more than nine components) from c, used both
// for the Q-prefixed name preceding "__" and for a Q-type appearing
// inside an argument list.
func parseLegacyQualifiedTypeName(c *cursor) (string, error) {
	count, err := parseLegacyNamespaceCount(c)
	if err != nil {
		return "", err
	}
	parts := make([]string, 0, count)
	for i := 0; i < count; i++ {
		name, err := parseLegacyCountedName(c)
		if err != nil {
			return "", err
		}
		parts = append(parts, name)
	}
	return strings.Join(parts, "::"), nil
}

func parseLegacyNamespaceCount(c *cursor) (int, error) {
	if c.skipPrefixByte('_') {
		start := c.s
		n := 0
		for isDigit(c.peek()) {
			c.skip(1)
			n++
		}
		if n == 0 {
			return 0, ErrInvalid
		}
		digits := start[:n]
		if !c.skipPrefixByte('_') {
			return 0, ErrInvalid
		}
		v, convErr := strconv.Atoi(digits)
		if convErr != nil {
			return 0, ErrInvalid
		}
		return v, nil
	}
	if !isDigit(c.peek()) {
		return 0, ErrInvalid
	}
	return int(c.advance() - '0'), nil
}

func parseLegacyCountedName(c *cursor) (string, error) {
	start := c.s
	n := 0
	for isDigit(c.peek()) {
		c.skip(1)
		n++
	}
	if n == 0 {
		return "", ErrInvalid
	}
	length, convErr := strconv.Atoi(start[:n])
	if convErr != nil || length < 0 || length > c.remaining() {
		return "", ErrInvalid
	}
	name := c.s[:length]
	c.skip(length)
	return name, nil
}

// parseLegacyType reads one ARM-encoded type, returning both its
// rendered display text and its coarse ArgType classification,
// grounded on gcc2.cpp's argument_type.
func parseLegacyType(c *cursor, depth int) (string, ArgType, error) {
	if depth > maxRecursionDepth {
		return "", ArgUnknown, ErrInvalid
	}

	switch {
	case c.skipPrefixByte('U'):
		d, t, err := parseLegacyType(c, depth+1)
		if err != nil {
			return "", ArgUnknown, err
		}
		return "unsigned " + d, unsignedLegacyVariant(t), nil
	case c.skipPrefixByte('S'):
		d, t, err := parseLegacyType(c, depth+1)
		if err != nil {
			return "", ArgUnknown, err
		}
		return "signed " + d, t, nil
	case c.skipPrefixByte('C'):
		d, t, err := parseLegacyType(c, depth+1)
		if err != nil {
			return "", ArgUnknown, err
		}
		return d + " const", t, nil
	case c.skipPrefixByte('G'):
		return parseLegacyType(c, depth+1)
	case c.skipPrefixByte('P'):
		if c.skipPrefixByte('F') {
			return parseLegacyFunctionPointerType(c, depth+1)
		}
		d, t, err := parseLegacyType(c, depth+1)
		if err != nil {
			return "", ArgUnknown, err
		}
		if t == ArgChar {
			return "char*", ArgConstCharPointer, nil
		}
		return d + "*", ArgPointer, nil
	case c.skipPrefixByte('R'):
		d, _, err := parseLegacyType(c, depth+1)
		if err != nil {
			return "", ArgUnknown, err
		}
		return d + "&", ArgReference, nil
	case c.skipPrefixByte('Q'):
		name, err := parseLegacyQualifiedTypeName(c)
		if err != nil {
			return "", ArgUnknown, err
		}
		return name, ArgUnknown, nil
	case isDigit(c.peek()):
		name, err := parseLegacyCountedName(c)
		if err != nil {
			return "", ArgUnknown, err
		}
		return name, ArgUnknown, nil
	default:
		b := c.advance()
		switch b {
		case 'v':
			return "void", ArgVoid, nil
		case 'c':
			return "char", ArgChar, nil
		case 'b':
			return "bool", ArgBool, nil
		case 's':
			return "short", ArgShort, nil
		case 'i':
			return "int", ArgInt, nil
		case 'l':
			return "long", ArgLong, nil
		case 'x':
			return "long long", ArgLongLong, nil
		case 'f':
			return "float", ArgFloat, nil
		case 'd':
			return "double", ArgDouble, nil
		case 'r':
			return "long double", ArgLongDouble, nil
		case 'w':
			return "wchar_t", ArgWCharT, nil
		case 'e':
			return "...", ArgEllipsis, nil
		default:
			return "", ArgUnknown, ErrInvalid
		}
	}
}

func unsignedLegacyVariant(t ArgType) ArgType {
	switch t {
	case ArgChar:
		return ArgUnsignedChar
	case ArgShort:
		return ArgUnsignedShort
	case ArgInt:
		return ArgUnsignedInt
	case ArgLong:
		return ArgUnsignedLong
	case ArgLongLong:
		return ArgUnsignedLongLong
	default:
		return t
	}
}

// parseLegacyFunctionPointerType reads "F<types>_<type>" as the
// pointee of a preceding 'P', ARM's only function-type production
// (a bare, non-pointer function type has no complete mangled form
// in this scheme). It renders the C declarator form the spec's
// function-pointer-parameter scenario requires, e.g.
// "void (*)(BView*, BPoint, BBitmap*, void*)".
func parseLegacyFunctionPointerType(c *cursor, depth int) (string, ArgType, error) {
	var params []string
	first := true
	for {
		if c.remaining() == 0 {
			return "", ArgUnknown, ErrInvalid
		}
		if c.hasPrefixByte('_') {
			break
		}
		if first && c.hasPrefixByte('v') && c.at(1) == '_' {
			c.skip(1)
			first = false
			continue
		}
		first = false
		d, _, err := parseLegacyType(c, depth)
		if err != nil {
			return "", ArgUnknown, err
		}
		params = append(params, d)
	}
	c.skip(1) // '_'
	ret, _, err := parseLegacyType(c, depth)
	if err != nil {
		return "", ArgUnknown, err
	}
	return ret + " (*)(" + strings.Join(params, ", ") + ")", ArgPointer, nil
}

// parseLegacyIndex reads a number used by the 'N'/'T' back-reference
// operators: a multi-digit run followed by '_' is read as one decimal
// number (the '_' is consumed); otherwise a single digit is read.
func parseLegacyIndex(c *cursor) (int, error) {
	n := 0
	for isDigit(c.at(n)) {
		n++
	}
	if n == 0 {
		return 0, ErrInvalid
	}
	if n == 1 || c.at(n) != '_' {
		return int(c.advance() - '0'), nil
	}
	v, err := strconv.Atoi(c.s[:n])
	if err != nil {
		return 0, ErrInvalid
	}
	c.skip(n + 1)
	return v, nil
}

// legacyMaxArguments bounds the expansion of 'N' repeat operators the
// way get_next_argument_internal's 32-entry cap does.
const legacyMaxArguments = 32

// parseLegacyArgumentList walks a gcc2 argument-type cursor once,
// expanding 'T<i>' (repeat the i'th previous argument) and
// 'N<k><i>' (repeat it k times) back-references against the list of
// arguments parsed so far.
func parseLegacyArgumentList(c cursor) ([]legacyArg, error) {
	if c.remaining() == 0 {
		return nil, nil
	}
	if c.remaining() == 1 && c.peek() == 'v' {
		return nil, nil
	}

	var args []legacyArg
	var history []legacyArg
	for c.remaining() > 0 {
		if len(args) >= legacyMaxArguments {
			return nil, ErrTooManyArguments
		}
		switch {
		case c.skipPrefixByte('T'):
			idx, err := parseLegacyIndex(&c)
			if err != nil {
				return nil, err
			}
			if idx < 1 || idx > len(history) {
				return nil, ErrInvalid
			}
			args = append(args, history[idx-1])
		case c.skipPrefixByte('N'):
			count, err := parseLegacyIndex(&c)
			if err != nil {
				return nil, err
			}
			idx, err := parseLegacyIndex(&c)
			if err != nil {
				return nil, err
			}
			if idx < 1 || idx > len(history) {
				return nil, ErrInvalid
			}
			if count < 0 || len(args)+count > legacyMaxArguments {
				return nil, ErrTooManyArguments
			}
			for i := 0; i < count; i++ {
				args = append(args, history[idx-1])
			}
		default:
			display, tag, err := parseLegacyType(&c, 0)
			if err != nil {
				return nil, err
			}
			entry := legacyArg{tag: tag, display: display}
			args = append(args, entry)
			history = append(history, entry)
		}
	}
	return args, nil
}

// legacyToString renders the full "Namespace::Class::Method(args...)"
// signature. The original demangle_symbol_gcc2 stops at the bare
// qualified name; this engine additionally expands the argument list
// through parseLegacyArgumentList so a caller gets a complete,
// parenthesized signature instead of a type-free name.
func legacyToString(s string) (string, bool, error) {
	parsed, err := parseLegacyMangledStart(s)
	if err != nil {
		return "", false, err
	}
	isMethod := !parsed.isFreeFunc

	args, err := parseLegacyArgumentList(parsed.argsCursor)
	if err != nil {
		if errors.Is(err, ErrTooManyArguments) {
			// The whole-symbol demangle still succeeds with an empty
			// parameter list; only the per-argument iterator reports
			// the overflow (spec.md §7, "legacy symbol with more than
			// 32 arguments").
			return parsed.qualifiedName + "()", isMethod, nil
		}
		return "", false, err
	}
	displays := make([]string, len(args))
	for i, a := range args {
		displays[i] = a.display
	}
	return parsed.qualifiedName + "(" + strings.Join(displays, ", ") + ")", isMethod, nil
}

// legacyNextArgument reports the cookie'th (0-based) argument of a
// gcc2-mangled name, mirroring get_next_argument_gcc2's cookie-driven
// enumeration.
func legacyNextArgument(s string, cookie int) (string, ArgType, int, int, error) {
	if cookie < 0 {
		return "", ArgUnknown, 0, 0, ErrInvalidParameterIndex
	}
	parsed, err := parseLegacyMangledStart(s)
	if err != nil {
		return "", ArgUnknown, 0, 0, err
	}
	args, err := parseLegacyArgumentList(parsed.argsCursor)
	if err != nil {
		return "", ArgUnknown, 0, 0, err
	}
	if cookie >= len(args) {
		return "", ArgUnknown, 0, 0, ErrNoMoreArguments
	}
	arg := args[cookie]
	size, _ := arg.tag.builtinSize()
	return arg.display, arg.tag, size, cookie + 1, nil
}
