package cppdemangle

// --- namedTypeNode: wraps a name node standing for a type -------------
//
// Delegates every query to an inner name (original_source/gcc3+.cpp's
// NamedTypeNode). The parser does not construct it on its own:
// class-enum-type references and vendor extended types
// ("u<source-name>") are returned as their bare name nodes, and this
// type is used only as the base that objectNode and functionNode embed.

type namedTypeNode struct {
	nodeBase
	name node
}

func newNamedTypeNode(name node) *namedTypeNode {
	n := &namedTypeNode{name: name}
	name.setParent(n)
	attachSelf(n, &n.nodeBase)
	return n
}

func (n *namedTypeNode) getName(buf *outputBuffer) bool { return n.name.getName(buf) }

func (n *namedTypeNode) isNoReturnValueFunction() bool { return n.name.isNoReturnValueFunction() }

func (n *namedTypeNode) isTypeName(name string) bool { return n.name.isTypeName(name) }

func (n *namedTypeNode) objectKind() objectKind { return n.name.objectKind() }

func (n *namedTypeNode) prefixKind() prefixKind { return n.name.prefixKind() }

func (n *namedTypeNode) isTemplatized() bool { return n.name.isTemplatized() }

func (n *namedTypeNode) templateParameterAt(i int) node { return n.name.templateParameterAt(i) }

func (n *namedTypeNode) typeInfo() typeInfo { return n.name.typeInfo() }

// --- objectNode: a named type classified as data by default ----------

type objectNode struct {
	namedTypeNode
}

func newObjectNode(name node) *objectNode {
	n := &objectNode{}
	n.namedTypeNode = namedTypeNode{name: name}
	name.setParent(n)
	attachSelf(n, &n.nodeBase)
	return n
}

func (n *objectNode) objectKind() objectKind { return objectData }

// --- functionNode: a named type plus a parenthesized parameter list ---

type functionNode struct {
	objectNode
	hasReturnType bool
	isExternC     bool
	firstParam    node
	lastParam     node
}

func newFunctionNode(name node, hasReturnType, isExternC bool) *functionNode {
	n := &functionNode{hasReturnType: hasReturnType, isExternC: isExternC}
	n.namedTypeNode = namedTypeNode{name: name}
	name.setParent(n)
	attachSelf(n, &n.nodeBase)
	return n
}

func (n *functionNode) addParameter(param node) {
	param.setParent(n)
	if n.lastParam != nil {
		n.lastParam.setNext(param)
	} else {
		n.firstParam = param
	}
	n.lastParam = param
}

func (n *functionNode) getName(buf *outputBuffer) bool {
	info := &nameDecorationInfo{}
	return n.getDecoratedName(buf, info)
}

// getDecoratedName renders "name(params)" rather than the naive
// "name" then "(params)" in sequence, because a member function's
// trailing cv-qualifiers ("Foo::bar() const") are mangled as part of
// <nested-name>'s leading <CV-qualifiers> — i.e. n.name may already be
// wrapped in a cvQualifiersNode. Left alone, rendering n.name.getName
// directly would print the qualifier before the parameter list
// ("Foo::bar const()"); instead the qualifier wrapper is located and
// skipped while rendering the name, and its suffix is appended only
// after the parameter list closes.
func (n *functionNode) getDecoratedName(buf *outputBuffer, info *nameDecorationInfo) bool {
	var cvInfo cvQualifierInfo
	n.name.getCVQualifierInfo(&cvInfo)

	if !cvInfo.firstNonCVQualifier.getName(buf) {
		return false
	}
	buf.appendByte('(')
	for p := n.firstParam; p != nil; p = p.next() {
		if p != n.firstParam {
			buf.appendString(", ")
		}
		if !p.getName(buf) {
			return false
		}
	}
	buf.appendByte(')')

	if cvInfo.firstCVQualifier != nil {
		if !cvInfo.firstCVQualifier.addDecoration(buf, cvInfo.firstNonCVQualifier) {
			return false
		}
	}

	if info.firstDecorator != nil {
		if !info.firstDecorator.addDecoration(buf, nil) {
			return false
		}
	}
	return true
}

func (n *functionNode) objectKind() objectKind {
	switch n.name.prefixKind() {
	case prefixClass:
		return objectMethodOfClass
	case prefixNamespace:
		return objectFunction
	default:
		return objectMethodUnknown
	}
}

// --- arrayNode: "elementType[N]" or "elementType[]" --------------------

type arrayNode struct {
	nodeBase
	element    node
	dimension  string // "" for an unspecified-length array
	hasDimension bool
}

func newArrayNode(element node, dimension string, hasDimension bool) *arrayNode {
	n := &arrayNode{element: element, dimension: dimension, hasDimension: hasDimension}
	element.setParent(n)
	attachSelf(n, &n.nodeBase)
	return n
}

func (n *arrayNode) getName(buf *outputBuffer) bool {
	info := &nameDecorationInfo{firstDecorator: n}
	return n.element.getDecoratedName(buf, info)
}

func (n *arrayNode) addDecoration(buf *outputBuffer, stop node) bool {
	if node(n) == stop {
		return true
	}
	buf.appendString("[")
	if n.hasDimension {
		buf.appendString(n.dimension)
	}
	return buf.appendString("]")
}

func (n *arrayNode) objectKind() objectKind { return objectData }

// --- pointerToMemberNode: rendered "memberType(classType::*)" ----------

type pointerToMemberNode struct {
	decoratingNode
	class node
}

func newPointerToMemberNode(class, member node) *pointerToMemberNode {
	n := &pointerToMemberNode{class: class}
	n.initDecorating(n, member)
	class.setParent(n)
	return n
}

func (n *pointerToMemberNode) addDecoration(buf *outputBuffer, stop node) bool {
	if node(n) == stop {
		return true
	}
	if !n.child.addDecoration(buf, stop) {
		return false
	}
	buf.appendByte('(')
	if !n.class.getName(buf) {
		return false
	}
	return buf.appendString("::*)")
}

func (n *pointerToMemberNode) objectKind() objectKind { return objectData }

// --- multiSubExpressionsNode family: call / operator-expr / convert ----
//
// These render a variadic argument list between fixed decoration text,
// used for <expr-primary> call/operator/cast forms that survive into
// this scope (mainly as substitutable sub-expressions within template
// arguments and default-argument-free function types).

type multiSubExpressionsNode struct {
	nodeBase
	first node
	last  node
}

func (n *multiSubExpressionsNode) addSubExpression(child node) {
	child.setParent(n.self)
	if n.last != nil {
		n.last.setNext(child)
	} else {
		n.first = child
	}
	n.last = child
}

func (n *multiSubExpressionsNode) renderArgs(buf *outputBuffer) bool {
	for c := n.first; c != nil; c = c.next() {
		if c != n.first {
			buf.appendString(", ")
		}
		if !c.getName(buf) {
			return false
		}
	}
	return true
}

type callNode struct {
	multiSubExpressionsNode
	callee node
}

func newCallNode(callee node) *callNode {
	n := &callNode{callee: callee}
	callee.setParent(n)
	attachSelf(n, &n.nodeBase)
	return n
}

func (n *callNode) getName(buf *outputBuffer) bool {
	if !n.callee.getName(buf) {
		return false
	}
	buf.appendByte('(')
	if !n.renderArgs(buf) {
		return false
	}
	return buf.appendByte(')')
}

func (n *callNode) objectKind() objectKind { return objectData }

type operatorExpressionNode struct {
	multiSubExpressionsNode
	info *operatorInfo
}

func newOperatorExpressionNode(info *operatorInfo) *operatorExpressionNode {
	n := &operatorExpressionNode{info: info}
	attachSelf(n, &n.nodeBase)
	return n
}

func (n *operatorExpressionNode) getName(buf *outputBuffer) bool {
	switch {
	case n.info.arity == 1 && n.first != nil:
		buf.appendString(n.info.printed)
		buf.appendByte('(')
		if !n.first.getName(buf) {
			return false
		}
		return buf.appendByte(')')
	case n.info.arity == 2 && n.first != nil && n.first.next() != nil:
		buf.appendByte('(')
		if !n.first.getName(buf) {
			return false
		}
		buf.appendString(") ")
		buf.appendString(n.info.printed)
		buf.appendString(" (")
		if !n.first.next().getName(buf) {
			return false
		}
		return buf.appendByte(')')
	default:
		buf.appendString(n.info.printed)
		buf.appendByte('(')
		if !n.renderArgs(buf) {
			return false
		}
		return buf.appendByte(')')
	}
}

func (n *operatorExpressionNode) objectKind() objectKind { return objectData }

// conversionExpressionNode renders a functional-style cast expression
// ("cv" in the grammar), which takes either exactly one argument or,
// in its rarer n-ary form, a parenthesized list.
type conversionExpressionNode struct {
	multiSubExpressionsNode
	target node
}

func newConversionExpressionNode(target node) *conversionExpressionNode {
	n := &conversionExpressionNode{target: target}
	target.setParent(n)
	attachSelf(n, &n.nodeBase)
	return n
}

func (n *conversionExpressionNode) getName(buf *outputBuffer) bool {
	buf.appendByte('(')
	if !n.target.getName(buf) {
		return false
	}
	buf.appendByte(')')
	buf.appendByte('(')
	if !n.renderArgs(buf) {
		return false
	}
	return buf.appendByte(')')
}

func (n *conversionExpressionNode) objectKind() objectKind { return objectData }

// sizeofAlignofNode renders "sizeof(...)" / "alignof(...)" over
// either a <type> or an <expression> operand.
type sizeofAlignofNode struct {
	nodeBase
	keyword string
	operand node
}

func newSizeofAlignofNode(keyword string, operand node) *sizeofAlignofNode {
	n := &sizeofAlignofNode{keyword: keyword, operand: operand}
	operand.setParent(n)
	attachSelf(n, &n.nodeBase)
	return n
}

func (n *sizeofAlignofNode) getName(buf *outputBuffer) bool {
	buf.appendString(n.keyword)
	buf.appendByte('(')
	if !n.operand.getName(buf) {
		return false
	}
	return buf.appendByte(')')
}

func (n *sizeofAlignofNode) objectKind() objectKind { return objectData }

// functionTypeNode renders a free-standing function type ("F...E"),
// used where a function appears as data — most commonly as the
// pointee of a function-pointer parameter, where the enclosing
// typeModifierNode's "(*)" decoration is spliced in between the
// return type and the parameter list exactly as a real C declarator
// would place it.
type functionTypeNode struct {
	nodeBase
	returnType node
	firstParam node
	lastParam  node
	externC    bool
}

func newFunctionTypeNode(externC bool) *functionTypeNode {
	n := &functionTypeNode{externC: externC}
	attachSelf(n, &n.nodeBase)
	return n
}

func (n *functionTypeNode) setReturnType(t node) {
	n.returnType = t
	t.setParent(n)
}

func (n *functionTypeNode) addParam(p node) {
	p.setParent(n)
	if n.lastParam != nil {
		n.lastParam.setNext(p)
	} else {
		n.firstParam = p
	}
	n.lastParam = p
}

func (n *functionTypeNode) getName(buf *outputBuffer) bool {
	info := &nameDecorationInfo{firstDecorator: n}
	if n.returnType != nil {
		return n.returnType.getDecoratedName(buf, info)
	}
	buf.appendString("void")
	return info.firstDecorator.addDecoration(buf, nil)
}

func (n *functionTypeNode) getDecoratedName(buf *outputBuffer, info *nameDecorationInfo) bool {
	if info.firstDecorator == nil {
		return n.getName(buf)
	}
	if n.returnType == nil {
		buf.appendString("void")
	} else if !n.returnType.getName(buf) {
		return false
	}
	buf.appendString(" (")
	if !info.firstDecorator.addDecoration(buf, n) {
		return false
	}
	buf.appendByte(')')
	return n.addDecoration(buf, nil)
}

func (n *functionTypeNode) addDecoration(buf *outputBuffer, stop node) bool {
	if node(n) == stop {
		return true
	}
	buf.appendByte('(')
	for p := n.firstParam; p != nil; p = p.next() {
		if p != n.firstParam {
			buf.appendString(", ")
		}
		if !p.getName(buf) {
			return false
		}
	}
	return buf.appendByte(')')
}

func (n *functionTypeNode) objectKind() objectKind { return objectData }
