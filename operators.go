package cppdemangle

// operatorFlag bits for an operatorInfo entry.
type operatorFlag int

const (
	// opTypeParam marks operators (sizeof/alignof of a type) whose
	// first argument is a <type> rather than an <expression>.
	opTypeParam operatorFlag = 1 << iota
	// opIsMember marks operators that are always a class member
	// (new/delete and their array forms), used by ObjectType
	// classification (spec.md §4.3 "Object-type classification").
	opIsMember
)

// operatorInfo is one row of the fixed operator table spec.md §4.4
// describes: a two-letter mangled form, its printable spelling, its
// arity (-1 for variadic), and classification flags.
type operatorInfo struct {
	mangled string
	printed string
	arity   int
	flags   operatorFlag
}

// operatorTable is the fixed, immutable operator table both the
// operator-name and expression productions of the Itanium grammar
// search linearly, grounded on original_source/gcc3+.cpp's
// kOperatorInfos. Order matters only in that longer/more specific
// mangled prefixes must not be shadowed by shorter ones; none collide
// here since every mangled form is exactly two letters.
var operatorTable = []operatorInfo{
	{"nw", "new", -1, opIsMember},
	{"na", "new[]", -1, opIsMember},
	{"dl", "delete", -1, opIsMember},
	{"da", "delete[]", -1, opIsMember},
	{"ps", "+", 1, 0}, // unary plus
	{"ng", "-", 1, 0}, // unary minus
	{"ad", "&", 1, 0}, // address-of
	{"de", "*", 1, 0}, // dereference
	{"co", "~", 1, 0},
	{"pl", "+", 2, 0},
	{"mi", "-", 2, 0},
	{"ml", "*", 2, 0},
	{"dv", "/", 2, 0},
	{"rm", "%", 2, 0},
	{"an", "&", 2, 0},
	{"or", "|", 2, 0},
	{"eo", "^", 2, 0},
	{"aS", "=", 2, 0},
	{"pL", "+=", 2, 0},
	{"mI", "-=", 2, 0},
	{"mL", "*=", 2, 0},
	{"dV", "/=", 2, 0},
	{"rM", "%=", 2, 0},
	{"aN", "&=", 2, 0},
	{"oR", "|=", 2, 0},
	{"eO", "^=", 2, 0},
	{"ls", "<<", 2, 0},
	{"rs", ">>", 2, 0},
	{"lS", "<<=", 2, 0},
	{"rS", ">>=", 2, 0},
	{"eq", "==", 2, 0},
	{"ne", "!=", 2, 0},
	{"lt", "<", 2, 0},
	{"gt", ">", 2, 0},
	{"le", "<=", 2, 0},
	{"ge", ">=", 2, 0},
	{"nt", "!", 1, 0},
	{"aa", "&&", 2, 0},
	{"oo", "||", 2, 0},
	{"pp", "++", 1, 0},
	{"mm", "--", 1, 0},
	{"cm", ",", -1, 0},
	{"pm", "->*", 2, 0},
	{"pt", "->", 2, 0},
	{"cl", "()", -1, 0},
	{"ix", "[]", -1, 0},
	{"qu", "?", 3, 0},
	{"st", "sizeof", 1, opTypeParam},  // sizeof (a type)
	{"sz", "sizeof", 1, 0},            // sizeof (an expression)
	{"at", "alignof", 1, opTypeParam}, // alignof (a type)
	{"az", "alignof", 1, 0},           // alignof (an expression)
}

// lookupOperator scans the table for the operator whose mangled form
// is a prefix of the cursor, consuming it on a match.
func lookupOperator(c *cursor) *operatorInfo {
	for i := range operatorTable {
		if c.skipPrefix(operatorTable[i].mangled) {
			return &operatorTable[i]
		}
	}
	return nil
}

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isUpper(b byte) bool {
	return b >= 'A' && b <= 'Z'
}
