package cppdemangle

import "strconv"

// maxRecursionDepth bounds recursive-descent nesting (types and
// expressions), guarding against both pathological and malicious
// input the way spec.md §4.3 requires ("a parser must not recurse
// without bound on attacker-controlled input").
const maxRecursionDepth = 256

// itaniumDemangler holds all per-call parser state for one Itanium
// C++ ABI (gcc 3+) mangled name: the input cursor, the referenceable
// list (substitution table), and the template-parameter scope stack.
// It is created fresh for every call and discarded afterward; nothing
// it owns outlives the call, so there is no explicit teardown step
// the way the original host's arena-based engine needed one (Go's
// garbage collector reclaims the whole AST once the caller is done
// with it).
type itaniumDemangler struct {
	c cursor

	// subs is the referenceable list: every substitutable type or
	// name is appended here in completion order, and S_/S<seq>_
	// back-references index into it (spec.md §3 invariant 2).
	subs []node

	// templateStack is the scoped "templatised node" pointer spec.md
	// §9 describes, made explicit as a stack so a template-param
	// reference inside a nested template resolves against the
	// innermost enclosing template args, restoring the outer scope
	// on return (spec.md §4.5).
	templateStack []node

	depth int
}

func newItaniumDemangler(s string) *itaniumDemangler {
	return &itaniumDemangler{c: newCursor(s)}
}

// looksLikeItanium reports whether s carries the "_Z" prefix that
// marks an Itanium C++ ABI mangled name, mirroring
// looks_like_gcc3_symbol in the original dispatcher.
func looksLikeItanium(s string) bool {
	return newCursor(s).hasPrefix("_Z")
}

func demangleItanium(s string) (node, error) {
	d := newItaniumDemangler(s)
	n, err := d.parse()
	if err != nil {
		return nil, err
	}
	return n, nil
}

func (d *itaniumDemangler) parse() (node, error) {
	if !d.c.skipPrefix("_Z") {
		return nil, ErrNotMangled
	}
	n, err := d.parseEncoding()
	if err != nil {
		return nil, err
	}
	if d.c.remaining() != 0 {
		return nil, ErrInvalid
	}
	return n, nil
}

func (d *itaniumDemangler) registerSubstitution(n node) {
	if n != nil && n.isReferenceable() {
		d.subs = append(d.subs, n)
	}
}

func (d *itaniumDemangler) substitutionByIndex(i int) (node, error) {
	if i < 0 || i >= len(d.subs) {
		return nil, ErrInvalid
	}
	return d.subs[i], nil
}

// --- <encoding> --------------------------------------------------------

func (d *itaniumDemangler) parseEncoding() (node, error) {
	if n, ok, err := d.tryParseSpecialName(); ok {
		return n, err
	}

	name, err := d.parseName()
	if err != nil {
		return nil, err
	}
	if d.c.remaining() == 0 {
		return name, nil
	}

	fn := newFunctionNode(name, true, false)
	first := true
	for d.c.remaining() > 0 {
		if first && d.c.hasPrefixByte('v') && d.c.remaining() == 1 {
			d.c.skip(1)
			break
		}
		first = false
		typ, err := d.parseType()
		if err != nil {
			return nil, err
		}
		fn.addParameter(typ)
	}
	return fn, nil
}

// --- <special-name> ------------------------------------------------------

func (d *itaniumDemangler) tryParseSpecialName() (node, bool, error) {
	switch {
	case d.c.skipPrefix("TV"):
		t, err := d.parseType()
		return wrapSpecial("vtable for ", t, err)
	case d.c.skipPrefix("TT"):
		t, err := d.parseType()
		return wrapSpecial("VTT for ", t, err)
	case d.c.skipPrefix("TI"):
		t, err := d.parseType()
		return wrapSpecial("typeinfo for ", t, err)
	case d.c.skipPrefix("TS"):
		t, err := d.parseType()
		return wrapSpecial("typeinfo name for ", t, err)
	case d.c.skipPrefix("Tc"):
		if err := d.skipCallOffset(); err != nil {
			return nil, true, err
		}
		if err := d.skipCallOffset(); err != nil {
			return nil, true, err
		}
		e, err := d.parseEncoding()
		return wrapSpecial("covariant return thunk to ", e, err)
	case d.c.skipPrefix("Tv"):
		if err := d.skipCallOffset(); err != nil {
			return nil, true, err
		}
		e, err := d.parseEncoding()
		return wrapSpecial("virtual thunk to ", e, err)
	case d.c.skipPrefix("Th"):
		if err := d.skipCallOffset(); err != nil {
			return nil, true, err
		}
		e, err := d.parseEncoding()
		return wrapSpecial("non-virtual thunk to ", e, err)
	case d.c.skipPrefix("GV"):
		n, err := d.parseName()
		return wrapSpecial("guard variable for ", n, err)
	default:
		return nil, false, nil
	}
}

func wrapSpecial(prefix string, child node, err error) (node, bool, error) {
	if err != nil {
		return nil, true, err
	}
	return newSpecialNameNode(prefix, child), true, nil
}

func (d *itaniumDemangler) skipCallOffset() error {
	switch {
	case d.c.skipPrefixByte('h'):
		if _, err := d.parseNumber(); err != nil {
			return err
		}
		if !d.c.skipPrefixByte('_') {
			return ErrInvalid
		}
		return nil
	case d.c.skipPrefixByte('v'):
		if _, err := d.parseNumber(); err != nil {
			return err
		}
		if !d.c.skipPrefixByte('_') {
			return ErrInvalid
		}
		if _, err := d.parseNumber(); err != nil {
			return err
		}
		if !d.c.skipPrefixByte('_') {
			return ErrInvalid
		}
		return nil
	default:
		return ErrInvalid
	}
}

// --- <name> and friends --------------------------------------------------

func (d *itaniumDemangler) parseName() (node, error) {
	switch {
	case d.c.hasPrefixByte('N'):
		return d.parseNestedName()
	case d.c.hasPrefixByte('Z'):
		return d.parseLocalName()
	case d.c.skipPrefix("St"):
		u, err := d.parseUnqualifiedName()
		if err != nil {
			return nil, err
		}
		combined := newPrefixedNode(newSimpleTypeNameNode("std"), u)
		d.registerSubstitution(combined)
		return combined, nil
	default:
		u, err := d.parseUnqualifiedName()
		if err != nil {
			return nil, err
		}
		d.registerSubstitution(u)
		if d.c.hasPrefixByte('I') {
			tmpl := newTemplateNode(u)
			if err := d.parseTemplateArgsInto(tmpl); err != nil {
				return nil, err
			}
			d.registerSubstitution(tmpl)
			return tmpl, nil
		}
		return u, nil
	}
}

func (d *itaniumDemangler) parseNestedName() (node, error) {
	d.c.skip(1) // 'N'
	cv, hasCV := d.parseCVQualifiers()
	prefix, err := d.parsePrefix()
	if err != nil {
		return nil, err
	}
	if !d.c.skipPrefixByte('E') {
		return nil, ErrInvalid
	}
	if hasCV {
		return newCVQualifiersNode(cv, prefix), nil
	}
	return prefix, nil
}

// parsePrefix parses the left-recursive <prefix> production
// iteratively, accumulating the chain of "::"-joined components into
// nested prefixedNodes and registering each completed component (and
// the component combined with the next) as a substitution candidate,
// per spec.md §4.5.
func (d *itaniumDemangler) parsePrefix() (node, error) {
	var result node
	for {
		if d.c.remaining() == 0 {
			return nil, ErrInvalid
		}
		if d.c.hasPrefixByte('E') {
			if result == nil {
				return nil, ErrInvalid
			}
			return result, nil
		}
		if d.c.hasPrefixByte('I') {
			if result == nil {
				return nil, ErrInvalid
			}
			tmpl := newTemplateNode(result)
			if err := d.parseTemplateArgsInto(tmpl); err != nil {
				return nil, err
			}
			d.registerSubstitution(tmpl)
			result = tmpl
			continue
		}
		if result == nil && d.c.hasPrefixByte('T') {
			tp, err := d.parseTemplateParam()
			if err != nil {
				return nil, err
			}
			result = tp
			continue
		}
		if result == nil && d.c.hasPrefixByte('S') {
			sub, err := d.tryParseSubstitution()
			if err != nil {
				return nil, err
			}
			result = sub
			continue
		}

		u, err := d.parseUnqualifiedName()
		if err != nil {
			return nil, err
		}
		if result == nil {
			result = u
		} else {
			result = newPrefixedNode(result, u)
		}
		d.registerSubstitution(result)
	}
}

func (d *itaniumDemangler) parseLocalName() (node, error) {
	d.c.skip(1) // 'Z'
	enc, err := d.parseEncoding()
	if err != nil {
		return nil, err
	}
	if !d.c.skipPrefixByte('E') {
		return nil, ErrInvalid
	}
	if d.c.skipPrefixByte('s') {
		d.skipDiscriminator()
		return newSpecialNameNode("string literal in ", enc), nil
	}
	inner, err := d.parseName()
	if err != nil {
		return nil, err
	}
	d.skipDiscriminator()
	return newPrefixedNode(enc, inner), nil
}

func (d *itaniumDemangler) skipDiscriminator() {
	if d.c.skipPrefixByte('_') {
		for isDigit(d.c.peek()) {
			d.c.skip(1)
		}
	}
}

func (d *itaniumDemangler) parseUnqualifiedName() (node, error) {
	switch {
	case d.c.hasPrefixByte('C') && isCtorDtorDigit(d.c.at(1)):
		return d.parseCtorDtorName(true)
	case d.c.hasPrefixByte('D') && isCtorDtorDigit(d.c.at(1)):
		return d.parseCtorDtorName(false)
	case isDigit(d.c.peek()):
		return d.parseSourceName()
	default:
		return d.parseOperatorName()
	}
}

func isCtorDtorDigit(b byte) bool { return b >= '0' && b <= '3' }

func (d *itaniumDemangler) parseCtorDtorName(isCtor bool) (node, error) {
	d.c.skip(1) // 'C' or 'D'
	variant := int(d.c.peek() - '0')
	d.c.skip(1)
	return newXtructorNode(isCtor, variant), nil
}

func (d *itaniumDemangler) parseSourceName() (node, error) {
	s, err := d.parseNumber()
	if err != nil {
		return nil, err
	}
	if len(s) > 0 && s[0] == 'n' {
		return nil, ErrInvalid
	}
	length, convErr := strconv.Atoi(s)
	if convErr != nil || length < 0 || length > d.c.remaining() {
		return nil, ErrInvalid
	}
	name := d.c.s[:length]
	d.c.skip(length)
	return newSimpleNameNode(name), nil
}

func (d *itaniumDemangler) parseOperatorName() (node, error) {
	if d.c.skipPrefix("cv") {
		t, err := d.parseType()
		if err != nil {
			return nil, err
		}
		return newCastOperatorNode(t), nil
	}
	if d.c.hasPrefixByte('v') && isDigit(d.c.at(1)) {
		d.c.skip(2)
		name, err := d.parseSourceName()
		if err != nil {
			return nil, err
		}
		return newVendorOperatorNode(name), nil
	}
	info := lookupOperator(&d.c)
	if info == nil {
		return nil, ErrInvalid
	}
	return newOperatorNode(info), nil
}

func (d *itaniumDemangler) parseCVQualifiers() (cvQualifier, bool) {
	var q cvQualifier
	any := false
	if d.c.skipPrefixByte('r') {
		q |= cvRestrict
		any = true
	}
	if d.c.skipPrefixByte('V') {
		q |= cvVolatile
		any = true
	}
	if d.c.skipPrefixByte('K') {
		q |= cvConst
		any = true
	}
	return q, any
}

// --- <substitution> ------------------------------------------------------

func (d *itaniumDemangler) tryParseSubstitution() (node, error) {
	d.c.skip(1) // 'S'
	switch {
	case d.c.skipPrefixByte('t'):
		base := node(newSimpleTypeNameNode("std"))
		if d.looksLikeUnqualifiedNameStart() {
			u, err := d.parseUnqualifiedName()
			if err != nil {
				return nil, err
			}
			combined := newPrefixedNode(base, u)
			d.registerSubstitution(combined)
			return combined, nil
		}
		return base, nil
	case d.c.skipPrefixByte('a'):
		return newSimpleTypeNameNode("std::allocator"), nil
	case d.c.skipPrefixByte('b'):
		return newSimpleTypeNameNode("std::basic_string"), nil
	case d.c.skipPrefixByte('s'):
		return newSimpleTypeNameNode("std::string"), nil
	case d.c.skipPrefixByte('i'):
		return newSimpleTypeNameNode("std::istream"), nil
	case d.c.skipPrefixByte('o'):
		return newSimpleTypeNameNode("std::ostream"), nil
	case d.c.skipPrefixByte('d'):
		return newSimpleTypeNameNode("std::iostream"), nil
	case d.c.skipPrefixByte('_'):
		return d.substitutionByIndex(0)
	case isDigit(d.c.peek()) || isUpper(d.c.peek()):
		idx, err := d.parseSeqID()
		if err != nil {
			return nil, err
		}
		if !d.c.skipPrefixByte('_') {
			return nil, ErrInvalid
		}
		return d.substitutionByIndex(idx + 1)
	default:
		return nil, ErrInvalid
	}
}

func (d *itaniumDemangler) looksLikeUnqualifiedNameStart() bool {
	if d.c.remaining() == 0 {
		return false
	}
	b := d.c.peek()
	return b != 'E' && b != 'I'
}

func (d *itaniumDemangler) parseSeqID() (int, error) {
	n := 0
	any := false
	for {
		c := d.c.peek()
		var v int
		switch {
		case isDigit(c):
			v = int(c - '0')
		case isUpper(c):
			v = int(c-'A') + 10
		default:
			if !any {
				return 0, ErrInvalid
			}
			return n, nil
		}
		n = n*36 + v
		d.c.skip(1)
		any = true
	}
}

// --- <type> ----------------------------------------------------------

func (d *itaniumDemangler) parseType() (node, error) {
	if d.depth >= maxRecursionDepth {
		return nil, ErrInvalid
	}
	d.depth++
	defer func() { d.depth-- }()

	if cv, hasCV := d.parseCVQualifiers(); hasCV {
		inner, err := d.parseType()
		if err != nil {
			return nil, err
		}
		n := newCVQualifiersNode(cv, inner)
		d.registerSubstitution(n)
		return n, nil
	}

	switch {
	case d.c.skipPrefixByte('P'):
		return d.parseModifiedType(modPointer)
	case d.c.skipPrefixByte('R'):
		return d.parseModifiedType(modReference)
	case d.c.skipPrefixByte('O'):
		return d.parseModifiedType(modRValueReference)
	case d.c.skipPrefixByte('C'):
		return d.parseModifiedType(modComplex)
	case d.c.skipPrefixByte('G'):
		return d.parseModifiedType(modImaginary)
	case d.c.skipPrefixByte('U'):
		name, err := d.parseSourceName()
		if err != nil {
			return nil, err
		}
		inner, err := d.parseType()
		if err != nil {
			return nil, err
		}
		n := newVendorTypeModifierNode(name, inner)
		d.registerSubstitution(n)
		return n, nil
	case d.c.hasPrefixByte('F'):
		return d.parseFunctionType()
	case d.c.hasPrefixByte('A'):
		return d.parseArrayType()
	case d.c.hasPrefixByte('M'):
		return d.parsePointerToMemberType()
	case d.c.hasPrefixByte('T'):
		return d.parseTemplateParam()
	case d.c.hasPrefixByte('S'):
		return d.tryParseSubstitution()
	case d.c.hasPrefixByte('L'):
		return d.parseExprPrimary()
	default:
		return d.parseClassEnumOrBuiltinType()
	}
}

func (d *itaniumDemangler) parseModifiedType(mod typeModifierKind) (node, error) {
	inner, err := d.parseType()
	if err != nil {
		return nil, err
	}
	n := newTypeModifierNode(mod, inner)
	d.registerSubstitution(n)
	return n, nil
}

// parseClassEnumOrBuiltinType dispatches between <class-enum-type>
// (a plain <name>) and <builtin-type>; both are reached only once
// none of the single-letter prefixes above matched.
func (d *itaniumDemangler) parseClassEnumOrBuiltinType() (node, error) {
	if isDigit(d.c.peek()) || d.c.hasPrefixByte('N') || d.c.hasPrefixByte('Z') {
		n, err := d.parseName()
		if err != nil {
			return nil, err
		}
		return n, nil
	}
	return d.parseBuiltinType()
}

func (d *itaniumDemangler) parseBuiltinType() (node, error) {
	switch {
	case d.c.skipPrefix("Dd"):
		return newSimpleTypeNode(ArgDFloat64), nil
	case d.c.skipPrefix("De"):
		return newSimpleTypeNode(ArgDFloat128), nil
	case d.c.skipPrefix("Df"):
		return newSimpleTypeNode(ArgDFloat32), nil
	case d.c.skipPrefix("Dh"):
		return newSimpleTypeNode(ArgDFloat16), nil
	case d.c.skipPrefix("Ds"):
		return newSimpleTypeNode(ArgChar16), nil
	case d.c.skipPrefix("Di"):
		return newSimpleTypeNode(ArgChar32), nil
	case d.c.hasPrefix("Dp"), d.c.hasPrefix("Dt"), d.c.hasPrefix("DT"):
		return nil, ErrUnsupported
	case d.c.skipPrefixByte('u'):
		name, err := d.parseSourceName()
		if err != nil {
			return nil, err
		}
		d.registerSubstitution(name)
		return name, nil
	}

	b := d.c.advance()
	switch b {
	case 'v':
		return newSimpleTypeNode(ArgVoid), nil
	case 'w':
		return newSimpleTypeNode(ArgWCharT), nil
	case 'b':
		return newSimpleTypeNode(ArgBool), nil
	case 'c':
		return newSimpleTypeNode(ArgChar), nil
	case 'a':
		return newSimpleTypeNode(ArgSignedChar), nil
	case 'h':
		return newSimpleTypeNode(ArgUnsignedChar), nil
	case 's':
		return newSimpleTypeNode(ArgShort), nil
	case 't':
		return newSimpleTypeNode(ArgUnsignedShort), nil
	case 'i':
		return newSimpleTypeNode(ArgInt), nil
	case 'j':
		return newSimpleTypeNode(ArgUnsignedInt), nil
	case 'l':
		return newSimpleTypeNode(ArgLong), nil
	case 'm':
		return newSimpleTypeNode(ArgUnsignedLong), nil
	case 'x':
		return newSimpleTypeNode(ArgLongLong), nil
	case 'y':
		return newSimpleTypeNode(ArgUnsignedLongLong), nil
	case 'n':
		return newSimpleTypeNode(ArgInt128), nil
	case 'o':
		return newSimpleTypeNode(ArgUnsignedInt128), nil
	case 'f':
		return newSimpleTypeNode(ArgFloat), nil
	case 'd':
		return newSimpleTypeNode(ArgDouble), nil
	case 'e':
		return newSimpleTypeNode(ArgLongDouble), nil
	case 'g':
		return newSimpleTypeNode(ArgFloat128), nil
	case 'z':
		return newSimpleTypeNode(ArgEllipsis), nil
	default:
		return nil, ErrInvalid
	}
}

func (d *itaniumDemangler) parseFunctionType() (node, error) {
	d.c.skip(1) // 'F'
	externC := d.c.skipPrefixByte('Y')
	fn := newFunctionTypeNode(externC)

	first := true
	for {
		if d.c.remaining() == 0 {
			return nil, ErrInvalid
		}
		if d.c.hasPrefixByte('E') {
			break
		}
		if first && d.c.hasPrefixByte('v') && d.c.at(1) == 'E' {
			d.c.skip(1)
			first = false
			continue
		}
		t, err := d.parseType()
		if err != nil {
			return nil, err
		}
		if first {
			fn.setReturnType(t)
			first = false
		} else {
			fn.addParam(t)
		}
	}
	d.c.skip(1) // 'E'
	if d.c.hasPrefixByte('R') || d.c.hasPrefixByte('O') {
		d.c.skip(1) // ref-qualifier, rendering-irrelevant here
	}
	d.registerSubstitution(fn)
	return fn, nil
}

func (d *itaniumDemangler) parseArrayType() (node, error) {
	d.c.skip(1) // 'A'
	var dim string
	hasDim := false
	if isDigit(d.c.peek()) {
		start := d.c
		for isDigit(d.c.peek()) {
			d.c.skip(1)
		}
		dim = start.s[:len(start.s)-len(d.c.s)]
		hasDim = true
	} else if !d.c.hasPrefixByte('_') {
		return nil, ErrUnsupported // expression-length array, non-goal
	}
	if !d.c.skipPrefixByte('_') {
		return nil, ErrInvalid
	}
	elem, err := d.parseType()
	if err != nil {
		return nil, err
	}
	n := newArrayNode(elem, dim, hasDim)
	d.registerSubstitution(n)
	return n, nil
}

func (d *itaniumDemangler) parsePointerToMemberType() (node, error) {
	d.c.skip(1) // 'M'
	class, err := d.parseType()
	if err != nil {
		return nil, err
	}
	member, err := d.parseType()
	if err != nil {
		return nil, err
	}
	n := newPointerToMemberNode(class, member)
	d.registerSubstitution(n)
	return n, nil
}

func (d *itaniumDemangler) parseTemplateParam() (node, error) {
	d.c.skip(1) // 'T'
	index := 0
	if !d.c.skipPrefixByte('_') {
		n, err := d.parseDecimal()
		if err != nil {
			return nil, err
		}
		index = n + 1
		if !d.c.skipPrefixByte('_') {
			return nil, ErrInvalid
		}
	}
	if len(d.templateStack) == 0 {
		return nil, ErrInvalid
	}
	scope := d.templateStack[len(d.templateStack)-1]
	arg := scope.templateParameterAt(index)
	if arg == nil {
		return nil, ErrInvalid
	}
	return newSubstitutionNode(arg), nil
}

// --- <template-args> ---------------------------------------------------

func (d *itaniumDemangler) parseTemplateArgsInto(tmpl *templateNode) error {
	if !d.c.skipPrefixByte('I') {
		return ErrInvalid
	}
	d.templateStack = append(d.templateStack, tmpl)
	defer func() { d.templateStack = d.templateStack[:len(d.templateStack)-1] }()

	for {
		if d.c.remaining() == 0 {
			return ErrInvalid
		}
		if d.c.skipPrefixByte('E') {
			break
		}
		arg, err := d.parseTemplateArg()
		if err != nil {
			return err
		}
		tmpl.addArgument(arg)
	}
	if tmpl.firstArg == nil {
		return ErrInvalid
	}
	return nil
}

func (d *itaniumDemangler) parseTemplateArg() (node, error) {
	switch {
	case d.c.skipPrefixByte('X'):
		e, err := d.parseExpression()
		if err != nil {
			return nil, err
		}
		if !d.c.skipPrefixByte('E') {
			return nil, ErrInvalid
		}
		return e, nil
	case d.c.hasPrefixByte('J'), d.c.hasPrefixByte('I'):
		return nil, ErrUnsupported // template argument packs, non-goal
	case d.c.hasPrefixByte('L'):
		return d.parseExprPrimary()
	default:
		return d.parseType()
	}
}

func (d *itaniumDemangler) parseExprPrimary() (node, error) {
	d.c.skip(1) // 'L'
	if d.c.hasPrefix("_Z") {
		d.c.skip(2)
		inner, err := d.parseEncoding()
		if err != nil {
			return nil, err
		}
		if !d.c.skipPrefixByte('E') {
			return nil, ErrInvalid
		}
		return inner, nil
	}
	typ, err := d.parseType()
	if err != nil {
		return nil, err
	}
	start := d.c
	for d.c.remaining() > 0 && d.c.peek() != 'E' {
		d.c.skip(1)
	}
	if d.c.remaining() == 0 {
		return nil, ErrInvalid
	}
	raw := start.s[:len(start.s)-len(d.c.s)]
	d.c.skip(1) // 'E'
	return newTypedNumberLiteralNode(typ, raw), nil
}

// --- <expression> (the subset needed by template arguments) -----------

func (d *itaniumDemangler) parseExpression() (node, error) {
	if d.depth >= maxRecursionDepth {
		return nil, ErrInvalid
	}
	d.depth++
	defer func() { d.depth-- }()

	switch {
	case d.c.skipPrefix("cl"):
		callee, err := d.parseExpression()
		if err != nil {
			return nil, err
		}
		call := newCallNode(callee)
		for {
			if d.c.remaining() == 0 {
				return nil, ErrInvalid
			}
			if d.c.skipPrefixByte('E') {
				break
			}
			arg, err := d.parseExpression()
			if err != nil {
				return nil, err
			}
			call.addSubExpression(arg)
		}
		return call, nil
	case d.c.skipPrefix("cv"):
		typ, err := d.parseType()
		if err != nil {
			return nil, err
		}
		conv := newConversionExpressionNode(typ)
		if d.c.skipPrefixByte('_') {
			for {
				if d.c.remaining() == 0 {
					return nil, ErrInvalid
				}
				if d.c.skipPrefixByte('E') {
					break
				}
				arg, err := d.parseExpression()
				if err != nil {
					return nil, err
				}
				conv.addSubExpression(arg)
			}
		} else {
			arg, err := d.parseExpression()
			if err != nil {
				return nil, err
			}
			conv.addSubExpression(arg)
		}
		return conv, nil
	case d.c.skipPrefix("sr"):
		typ, err := d.parseType()
		if err != nil {
			return nil, err
		}
		name, err := d.parseUnqualifiedName()
		if err != nil {
			return nil, err
		}
		dep := node(newDependentNameNode(typ, name))
		if d.c.hasPrefixByte('I') {
			tmpl := newTemplateNode(dep)
			if err := d.parseTemplateArgsInto(tmpl); err != nil {
				return nil, err
			}
			return tmpl, nil
		}
		return dep, nil
	case d.c.skipPrefix("st"):
		typ, err := d.parseType()
		if err != nil {
			return nil, err
		}
		return newSizeofAlignofNode("sizeof", typ), nil
	case d.c.skipPrefix("sz"):
		e, err := d.parseExpression()
		if err != nil {
			return nil, err
		}
		return newSizeofAlignofNode("sizeof", e), nil
	case d.c.skipPrefix("at"):
		typ, err := d.parseType()
		if err != nil {
			return nil, err
		}
		return newSizeofAlignofNode("alignof", typ), nil
	case d.c.skipPrefix("az"):
		e, err := d.parseExpression()
		if err != nil {
			return nil, err
		}
		return newSizeofAlignofNode("alignof", e), nil
	case d.c.hasPrefixByte('T'):
		return d.parseTemplateParam()
	case d.c.hasPrefixByte('L'):
		return d.parseExprPrimary()
	default:
		info := lookupOperator(&d.c)
		if info == nil {
			return nil, ErrUnsupported
		}
		opExpr := newOperatorExpressionNode(info)
		arity := info.arity
		if arity < 0 {
			arity = 0
		}
		for i := 0; i < arity; i++ {
			operand, err := d.parseExpression()
			if err != nil {
				return nil, err
			}
			opExpr.addSubExpression(operand)
		}
		return opExpr, nil
	}
}

// --- shared numeric lexing ----------------------------------------------

// parseNumber reads a <number> (optional leading 'n' for negative,
// then a run of decimal digits) and returns its raw text, 'n' prefix
// included when present.
func (d *itaniumDemangler) parseNumber() (string, error) {
	neg := d.c.hasPrefixByte('n')
	start := d.c
	if neg {
		d.c.skip(1)
	}
	n := 0
	for isDigit(d.c.peek()) {
		d.c.skip(1)
		n++
	}
	if n == 0 {
		return "", ErrInvalid
	}
	return start.s[:len(start.s)-len(d.c.s)], nil
}

// parseDecimal reads a non-negative <number> and returns it as an int.
func (d *itaniumDemangler) parseDecimal() (int, error) {
	s, err := d.parseNumber()
	if err != nil {
		return 0, err
	}
	if s[0] == 'n' {
		return 0, ErrInvalid
	}
	v, convErr := strconv.Atoi(s)
	if convErr != nil {
		return 0, ErrInvalid
	}
	return v, nil
}
