package cppdemangle

import "strconv"

// objectKind classifies what kind of entity a demangled node denotes,
// mirroring spec.md §4.3 "Object-type classification".
type objectKind int

const (
	objectUnknown objectKind = iota
	objectData
	objectFunction
	objectMethodOfClass
	objectMethodOfObject
	objectMethodUnknown
)

// prefixKind classifies the prefix of a <nested-name>, used only to
// decide whether a FunctionNode can tell from its name's prefix alone
// that it is a free function (spec.md §4.3).
type prefixKind int

const (
	prefixNone prefixKind = iota
	prefixNamespace
	prefixClass
	prefixUnknown
)

// cvQualifier bits, spec.md §3 "CV qualifier".
type cvQualifier int

const (
	cvRestrict cvQualifier = 1 << iota
	cvVolatile
	cvConst
)

// typeModifierKind selects which suffix a TypeModifierNode appends.
type typeModifierKind int

const (
	modPointer typeModifierKind = iota
	modReference
	modRValueReference
	modComplex
	modImaginary
)

var typeModifierSuffixes = [...]string{
	modPointer:         "*",
	modReference:       "&",
	modRValueReference: "&&",
	modComplex:         " complex",
	modImaginary:       " imaginary",
}

// typeInfo pairs a builtin ArgType tag with any CV qualifiers seen on
// the way to it; this is what Node.Type() returns throughout the
// Itanium AST (spec.md §3, "Argument type tag" + §4.3).
type typeInfo struct {
	typ ArgType
	cv  cvQualifier
}

func newTypeInfo(t ArgType) typeInfo { return typeInfo{typ: t} }

func (t typeInfo) withCV(cv cvQualifier) typeInfo {
	return typeInfo{typ: t.typ, cv: t.cv | cv}
}

// nameDecorationInfo threads the chain of pending decorations (CV
// qualifiers, pointer/reference wrapping, ...) that must be applied
// around a function's name, per spec.md §4.3 "Function rendering".
type nameDecorationInfo struct {
	firstDecorator        node
	closestCVDecoratorList node
}

// cvQualifierInfo locates the innermost run of CV-qualifier decorator
// nodes wrapping a name, so a FunctionNode can print them after its
// own parameter list instead of before its name (spec.md §4.3 step 2).
type cvQualifierInfo struct {
	firstCVQualifier    node
	firstNonCVQualifier node
}

// node is the common interface every Itanium AST variant implements.
// Go has no virtual dispatch through embedding, so nodeBase below
// carries a "self" back-reference for the handful of default methods
// that need to call back into the overriding type — the same pattern
// spec.md §9 describes as "polymorphism without inheritance": a
// tagged variant dispatching through per-kind helpers, here expressed
// as a Go interface instead of a switch over a kind tag.
type node interface {
	getName(buf *outputBuffer) bool
	getDecoratedName(buf *outputBuffer, info *nameDecorationInfo) bool
	addDecoration(buf *outputBuffer, stop node) bool
	getCVQualifierInfo(info *cvQualifierInfo)
	getUnqualifiedNode(before node) node
	isTemplatized() bool
	templateParameterAt(index int) node
	isNoReturnValueFunction() bool
	isTypeName(name string) bool
	objectKind() objectKind
	prefixKind() prefixKind
	typeInfo() typeInfo

	setParent(p node)
	parentNode() node

	isReferenceable() bool
	setReferenceable(v bool)
	nextReferenceable() node
	setNextReferenceable(n node)

	next() node
	setNext(n node)
}

// nodeBase supplies the default implementation for every method of
// node that is not pure-virtual in the original design. Every
// concrete node type embeds this and must call attachSelf after
// construction so the self-referencing defaults work.
type nodeBase struct {
	self          node
	parent        node
	nextSibling   node
	nextRef       node
	referenceable bool
}

func attachSelf(self node, b *nodeBase) {
	b.self = self
	b.referenceable = true
}

func (b *nodeBase) getDecoratedName(buf *outputBuffer, info *nameDecorationInfo) bool {
	if !b.self.getName(buf) {
		return false
	}
	return info.firstDecorator == nil || info.firstDecorator.addDecoration(buf, nil)
}

func (b *nodeBase) addDecoration(buf *outputBuffer, stop node) bool { return true }

func (b *nodeBase) getCVQualifierInfo(info *cvQualifierInfo) { info.firstNonCVQualifier = b.self }

func (b *nodeBase) getUnqualifiedNode(before node) node { return b.self }

func (b *nodeBase) isTemplatized() bool { return false }

func (b *nodeBase) templateParameterAt(index int) node { return nil }

func (b *nodeBase) isNoReturnValueFunction() bool { return false }

func (b *nodeBase) isTypeName(name string) bool { return false }

func (b *nodeBase) objectKind() objectKind { return objectUnknown }

func (b *nodeBase) prefixKind() prefixKind { return prefixNone }

func (b *nodeBase) typeInfo() typeInfo { return typeInfo{} }

func (b *nodeBase) setParent(p node) { b.parent = p }

func (b *nodeBase) parentNode() node { return b.parent }

func (b *nodeBase) isReferenceable() bool { return b.referenceable }

func (b *nodeBase) setReferenceable(v bool) { b.referenceable = v }

func (b *nodeBase) nextReferenceable() node { return b.nextRef }

func (b *nodeBase) setNextReferenceable(n node) { b.nextRef = n }

func (b *nodeBase) next() node { return b.nextSibling }

func (b *nodeBase) setNext(n node) { b.nextSibling = n }

// --- simpleNameNode: a raw byte-run identifier ("simple-name") -----

type simpleNameNode struct {
	nodeBase
	name string
}

func newSimpleNameNode(name string) *simpleNameNode {
	n := &simpleNameNode{name: name}
	attachSelf(n, &n.nodeBase)
	return n
}

func (n *simpleNameNode) getName(buf *outputBuffer) bool { return buf.appendString(n.name) }

// --- simpleTypeNode: a builtin type lexeme ("simple-type") ---------

type simpleTypeNode struct {
	nodeBase
	name string
	typ  ArgType
}

// newSimpleTypeNode builds a builtin-type leaf. Per the Itanium ABI's
// substitution rule, single-lexeme builtin types are never themselves
// substitution candidates, only the compound types built from them.
func newSimpleTypeNode(t ArgType) *simpleTypeNode {
	n := &simpleTypeNode{name: t.String(), typ: t}
	attachSelf(n, &n.nodeBase)
	n.setReferenceable(false)
	return n
}

// newSimpleTypeNameNode builds a simple-type node standing in for a
// name that isn't one of the builtin tags (e.g. the literal "std"
// filler text, or one of the fixed "std::allocator"-style canonical
// substitution abbreviations, both of which already have a reserved
// meaning and should not be entered into the dynamic substitution
// table a second time).
func newSimpleTypeNameNode(name string) *simpleTypeNode {
	n := &simpleTypeNode{name: name, typ: ArgUnknown}
	attachSelf(n, &n.nodeBase)
	n.setReferenceable(false)
	return n
}

func (n *simpleTypeNode) getName(buf *outputBuffer) bool { return buf.appendString(n.name) }

func (n *simpleTypeNode) isTypeName(name string) bool { return n.name == name }

func (n *simpleTypeNode) objectKind() objectKind { return objectData }

func (n *simpleTypeNode) typeInfo() typeInfo { return newTypeInfo(n.typ) }

// --- typedNumberLiteralNode: "(T)N" literal --------------------------

type typedNumberLiteralNode struct {
	nodeBase
	typ    node
	number string
}

func newTypedNumberLiteralNode(typ node, number string) *typedNumberLiteralNode {
	n := &typedNumberLiteralNode{typ: typ, number: number}
	typ.setParent(n)
	attachSelf(n, &n.nodeBase)
	return n
}

func (n *typedNumberLiteralNode) getName(buf *outputBuffer) bool {
	if n.typ.isTypeName("bool") && n.number == "0" {
		return buf.appendString("false")
	}
	if n.typ.isTypeName("bool") && n.number == "1" {
		return buf.appendString("true")
	}

	if !n.typ.isTypeName("int") {
		buf.appendByte('(')
		if !n.typ.getName(buf) {
			return false
		}
		buf.appendByte(')')
	}

	if len(n.number) > 0 && n.number[0] == 'n' {
		buf.appendByte('-')
		return buf.appendString(n.number[1:])
	}
	return buf.appendString(n.number)
}

func (n *typedNumberLiteralNode) objectKind() objectKind { return objectData }

// --- xtructorNode: constructor/destructor -----------------------------

type xtructorNode struct {
	nodeBase
	isConstructor bool
	variant       int
	unqualified   node
}

func newXtructorNode(isConstructor bool, variant int) *xtructorNode {
	n := &xtructorNode{isConstructor: isConstructor, variant: variant}
	attachSelf(n, &n.nodeBase)
	return n
}

// setParent resolves the ctor/dtor's printed name by walking the
// parent chain to find the nearest enclosing unqualified name, per
// spec.md §3 invariant 4: "xtructor nodes ... select the nearest
// prior sibling in the prefixed chain".
func (n *xtructorNode) setParent(p node) {
	n.unqualified = p.getUnqualifiedNode(n)
	n.nodeBase.setParent(p)
}

func (n *xtructorNode) getName(buf *outputBuffer) bool {
	if n.unqualified == nil {
		return false
	}
	if !n.isConstructor {
		buf.appendByte('~')
	}
	return n.unqualified.getName(buf)
}

func (n *xtructorNode) isNoReturnValueFunction() bool { return true }

func (n *xtructorNode) objectKind() objectKind { return objectMethodOfClass }

// --- specialNameNode: "vtable for ", "typeinfo for ", ... -------------

type specialNameNode struct {
	nodeBase
	prefix string
	child  node
}

func newSpecialNameNode(prefix string, child node) *specialNameNode {
	n := &specialNameNode{prefix: prefix, child: child}
	child.setParent(n)
	attachSelf(n, &n.nodeBase)
	return n
}

func (n *specialNameNode) getName(buf *outputBuffer) bool {
	return buf.appendString(n.prefix) && n.child.getName(buf)
}

// --- decoratingNode: shared base for CV/pointer/vendor/PTM wrappers ---

type decoratingNode struct {
	nodeBase
	child node
}

func (n *decoratingNode) initDecorating(self node, child node) {
	n.child = child
	child.setParent(self)
	attachSelf(self, &n.nodeBase)
}

func (n *decoratingNode) getName(buf *outputBuffer) bool {
	info := &nameDecorationInfo{firstDecorator: n.self}
	return n.child.getDecoratedName(buf, info)
}

func (n *decoratingNode) getDecoratedName(buf *outputBuffer, info *nameDecorationInfo) bool {
	info.closestCVDecoratorList = nil
	return n.child.getDecoratedName(buf, info)
}

// --- cvQualifiersNode --------------------------------------------------

type cvQualifiersNode struct {
	decoratingNode
	qualifiers cvQualifier
}

func newCVQualifiersNode(qualifiers cvQualifier, child node) *cvQualifiersNode {
	n := &cvQualifiersNode{qualifiers: qualifiers}
	n.initDecorating(n, child)
	return n
}

func (n *cvQualifiersNode) getDecoratedName(buf *outputBuffer, info *nameDecorationInfo) bool {
	if info.closestCVDecoratorList == nil {
		info.closestCVDecoratorList = n
	}
	return n.child.getDecoratedName(buf, info)
}

func (n *cvQualifiersNode) addDecoration(buf *outputBuffer, stop node) bool {
	if node(n) == stop {
		return true
	}
	if !n.child.addDecoration(buf, stop) {
		return false
	}
	if n.qualifiers&cvRestrict != 0 {
		buf.appendString(" restrict")
	}
	if n.qualifiers&cvVolatile != 0 {
		buf.appendString(" volatile")
	}
	if n.qualifiers&cvConst != 0 {
		buf.appendString(" const")
	}
	return true
}

func (n *cvQualifiersNode) getCVQualifierInfo(info *cvQualifierInfo) {
	if info.firstCVQualifier == nil {
		info.firstCVQualifier = n
	}
	n.child.getCVQualifierInfo(info)
}

func (n *cvQualifiersNode) isTemplatized() bool             { return n.child.isTemplatized() }
func (n *cvQualifiersNode) templateParameterAt(i int) node  { return n.child.templateParameterAt(i) }
func (n *cvQualifiersNode) isNoReturnValueFunction() bool   { return n.child.isNoReturnValueFunction() }
func (n *cvQualifiersNode) objectKind() objectKind          { return n.child.objectKind() }
func (n *cvQualifiersNode) prefixKind() prefixKind          { return n.child.prefixKind() }
func (n *cvQualifiersNode) typeInfo() typeInfo              { return n.child.typeInfo().withCV(n.qualifiers) }

// --- typeModifierNode: pointer/reference/rvalue-ref/complex/imaginary -

type typeModifierNode struct {
	decoratingNode
	modifier typeModifierKind
}

func newTypeModifierNode(modifier typeModifierKind, child node) *typeModifierNode {
	n := &typeModifierNode{modifier: modifier}
	n.initDecorating(n, child)
	return n
}

func (n *typeModifierNode) addDecoration(buf *outputBuffer, stop node) bool {
	if node(n) == stop {
		return true
	}
	return n.child.addDecoration(buf, stop) && buf.appendString(typeModifierSuffixes[n.modifier])
}

func (n *typeModifierNode) objectKind() objectKind { return objectData }

func (n *typeModifierNode) typeInfo() typeInfo {
	t := n.child.typeInfo()
	if t.typ == ArgChar && t.cv&cvConst != 0 {
		return newTypeInfo(ArgConstCharPointer)
	}
	switch n.modifier {
	case modPointer:
		return newTypeInfo(ArgPointer)
	case modReference:
		return newTypeInfo(ArgReference)
	default:
		return typeInfo{}
	}
}

// --- vendorTypeModifierNode: "U<source-name><type>" -------------------

type vendorTypeModifierNode struct {
	decoratingNode
	name node
}

func newVendorTypeModifierNode(name node, child node) *vendorTypeModifierNode {
	n := &vendorTypeModifierNode{name: name}
	n.initDecorating(n, child)
	name.setParent(n)
	return n
}

func (n *vendorTypeModifierNode) addDecoration(buf *outputBuffer, stop node) bool {
	if node(n) == stop {
		return true
	}
	return n.child.addDecoration(buf, stop) && buf.appendByte(' ') && n.name.getName(buf)
}

func (n *vendorTypeModifierNode) objectKind() objectKind { return objectData }

// --- operatorNode: "operator +" etc. (never referenceable) ------------

type operatorNode struct {
	nodeBase
	info *operatorInfo
}

func newOperatorNode(info *operatorInfo) *operatorNode {
	n := &operatorNode{info: info}
	attachSelf(n, &n.nodeBase)
	n.setReferenceable(false)
	return n
}

func (n *operatorNode) getName(buf *outputBuffer) bool {
	if isAlpha(n.info.printed[0]) {
		buf.appendString("operator ")
	} else {
		buf.appendString("operator")
	}
	return buf.appendString(n.info.printed)
}

func (n *operatorNode) objectKind() objectKind {
	if n.info.flags&opIsMember != 0 {
		return objectMethodOfClass
	}
	return objectUnknown
}

// --- vendorOperatorNode: "v<digit><source-name>" -----------------------

type vendorOperatorNode struct {
	nodeBase
	name node
}

func newVendorOperatorNode(name node) *vendorOperatorNode {
	n := &vendorOperatorNode{name: name}
	name.setParent(n)
	attachSelf(n, &n.nodeBase)
	n.setReferenceable(false)
	return n
}

func (n *vendorOperatorNode) getName(buf *outputBuffer) bool {
	return buf.appendString("operator ") && n.name.getName(buf)
}

// --- castOperatorNode: "operator T()" -----------------------------------

type castOperatorNode struct {
	nodeBase
	child node
}

func newCastOperatorNode(child node) *castOperatorNode {
	n := &castOperatorNode{child: child}
	child.setParent(n)
	attachSelf(n, &n.nodeBase)
	return n
}

func (n *castOperatorNode) getName(buf *outputBuffer) bool {
	return buf.appendString("operator ") && n.child.getName(buf)
}

func (n *castOperatorNode) isNoReturnValueFunction() bool { return true }

func (n *castOperatorNode) objectKind() objectKind { return objectMethodOfObject }

// --- prefixedNode: "left::right" (also used as dependent-name-node) ----

type prefixedNode struct {
	nodeBase
	prefix node
	child  node
}

func newPrefixedNode(prefix, child node) *prefixedNode {
	n := &prefixedNode{prefix: prefix, child: child}
	prefix.setParent(n)
	child.setParent(n)
	attachSelf(n, &n.nodeBase)
	return n
}

func (n *prefixedNode) getName(buf *outputBuffer) bool {
	return n.prefix.getName(buf) && buf.appendString("::") && n.child.getName(buf)
}

func (n *prefixedNode) getUnqualifiedNode(before node) node {
	if before == n.child {
		return n.prefix.getUnqualifiedNode(before)
	}
	return n.child.getUnqualifiedNode(before)
}

func (n *prefixedNode) isNoReturnValueFunction() bool { return n.child.isNoReturnValueFunction() }

func (n *prefixedNode) objectKind() objectKind { return n.child.objectKind() }

// prefixKind reports prefixClass for any qualified name. A qualified
// name can legitimately also be a namespace-scoped free function, but
// without a symbol table to tell the two apart this engine resolves
// the ambiguity the same way the original host's strstr("::")
// heuristic effectively did: a "::"-qualified encoding renders as a
// method unless something more specific overrides it.
func (n *prefixedNode) prefixKind() prefixKind { return prefixClass }

// dependentNameNode renders "<type>::<unqualified-name>", the node for
// a dependent name expression (`sr <type> <unqualified-name>`). The
// original demangler typedefs this directly to its PrefixedNode; this
// engine mirrors that rather than duplicating the rendering logic.
type dependentNameNode = prefixedNode

func newDependentNameNode(typ, name node) *dependentNameNode {
	return newPrefixedNode(typ, name)
}

// --- templateNode: "base<arg, arg, ...>" --------------------------------

type templateNode struct {
	nodeBase
	base      node
	firstArg  node
	lastArg   node
}

func newTemplateNode(base node) *templateNode {
	n := &templateNode{base: base}
	base.setParent(n)
	attachSelf(n, &n.nodeBase)
	return n
}

func (n *templateNode) addArgument(child node) {
	child.setParent(n)
	if n.lastArg != nil {
		n.lastArg.setNext(child)
	} else {
		n.firstArg = child
	}
	n.lastArg = child
}

func (n *templateNode) getName(buf *outputBuffer) bool {
	if !n.base.getName(buf) {
		return false
	}
	buf.appendByte('<')
	for child := n.firstArg; child != nil; child = child.next() {
		if child != n.firstArg {
			buf.appendString(", ")
		}
		if !child.getName(buf) {
			return false
		}
	}
	if buf.lastByte() == '>' {
		buf.appendByte(' ')
	}
	return buf.appendByte('>')
}

func (n *templateNode) getUnqualifiedNode(before node) node {
	if n.base != before {
		return n.base.getUnqualifiedNode(before)
	}
	return n
}

func (n *templateNode) isTemplatized() bool { return true }

func (n *templateNode) templateParameterAt(index int) node {
	child := n.firstArg
	for child != nil {
		if index == 0 {
			return child
		}
		index--
		child = child.next()
	}
	return nil
}

func (n *templateNode) isNoReturnValueFunction() bool { return n.base.isNoReturnValueFunction() }
func (n *templateNode) objectKind() objectKind        { return n.base.objectKind() }
func (n *templateNode) prefixKind() prefixKind        { return n.base.prefixKind() }

// --- substitutionNode: delegates every query to its target --------------

type substitutionNode struct {
	nodeBase
	target node
}

func newSubstitutionNode(target node) *substitutionNode {
	n := &substitutionNode{target: target}
	attachSelf(n, &n.nodeBase)
	n.setReferenceable(false)
	return n
}

func (n *substitutionNode) getName(buf *outputBuffer) bool { return n.target.getName(buf) }

func (n *substitutionNode) getDecoratedName(buf *outputBuffer, info *nameDecorationInfo) bool {
	return n.target.getDecoratedName(buf, info)
}

func (n *substitutionNode) addDecoration(buf *outputBuffer, stop node) bool {
	return n.target.addDecoration(buf, stop)
}

func (n *substitutionNode) getCVQualifierInfo(info *cvQualifierInfo) {
	n.target.getCVQualifierInfo(info)
}

func (n *substitutionNode) isTemplatized() bool { return n.target.isTemplatized() }

func (n *substitutionNode) templateParameterAt(i int) node { return n.target.templateParameterAt(i) }

func (n *substitutionNode) isNoReturnValueFunction() bool { return n.target.isNoReturnValueFunction() }

func (n *substitutionNode) isTypeName(name string) bool { return n.target.isTypeName(name) }

func (n *substitutionNode) objectKind() objectKind { return n.target.objectKind() }

func (n *substitutionNode) prefixKind() prefixKind { return n.target.prefixKind() }

func (n *substitutionNode) typeInfo() typeInfo { return n.target.typeInfo() }

// itoa stringifies a decimal integer with strconv.Itoa; nothing in the
// package calls it.
func itoa(n int) string { return strconv.Itoa(n) }
