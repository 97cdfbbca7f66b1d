package cppdemangle

// This file adapts the package's Go API to the fixed-capacity-buffer
// calling convention of the original host boundary
// (original_source's demangle.h/demangle.cpp): a caller-owned output
// buffer instead of an allocated string, an in/out cookie instead of
// a return value, and the package's ordinary sentinel errors in place
// of the original's numeric B_* status codes — translated at this one
// seam via normalizeArgIterError (errors.go), exactly as spec.md §4.6
// requires for the argument-iterator boundary. Only the calling
// convention is fixed-capacity: the adaptors call ToString and
// NextArgument, which allocate, and then copy the result into the
// caller's buffer.

// DemangleInto renders the demangling of mangled into buf, truncating
// to len(buf) rather than growing it, and reports whether the result
// is classified as a method on an object — the pair demangle_symbol's
// "const char*" return plus its "bool* _isObjectMethod" out-parameter
// stands for.
//
// It returns the number of bytes written. If the rendered name does
// not fit, buf holds its first len(buf) bytes and the error is
// ErrBufferTooSmall; a nil error means the whole name was written.
func DemangleInto(mangled string, buf []byte) (n int, isObjectMethod bool, err error) {
	s, isMethod, err := ToString(mangled)
	if err != nil {
		return 0, false, err
	}
	n = copy(buf, s)
	if n < len(s) {
		return n, isMethod, ErrBufferTooSmall
	}
	return n, isMethod, nil
}

// NextArgumentInto is DemangleInto's counterpart for
// get_next_argument: it renders the cookie'th parameter's display
// name into buf and reports its ArgType and suggested size, advancing
// *cookie for the next call the way the original's uint32* cookie
// out-parameter does. *cookie is left unchanged on error.
func NextArgumentInto(cookie *uint32, mangled string, buf []byte) (n int, tag ArgType, size int, err error) {
	name, t, sz, next, err := NextArgument(mangled, int(*cookie))
	if err != nil {
		return 0, ArgUnknown, 0, normalizeArgIterError(err)
	}
	n = copy(buf, name)
	if n < len(name) {
		return n, t, sz, ErrBufferTooSmall
	}
	*cookie = uint32(next)
	return n, t, sz, nil
}

// ModuleTable is the Go analogue of Haiku's
// debugger_demangle_module_info: a small, fixed table of operations a
// host can register once and invoke repeatedly, standing in for the
// original's module_info/std_ops hook table.
type ModuleTable struct {
	Demangle     func(mangled string, buf []byte) (int, bool, error)
	NextArgument func(cookie *uint32, mangled string, buf []byte) (int, ArgType, int, error)
}

// NewModuleTable returns a ModuleTable bound to this package's
// boundary adaptors, ready for a host to install.
func NewModuleTable() *ModuleTable {
	return &ModuleTable{
		Demangle:     DemangleInto,
		NextArgument: NextArgumentInto,
	}
}

// Init is the table's B_MODULE_INIT hook. This package keeps no
// process-wide state, so it only exists to satisfy the module
// lifecycle contract std_ops implements; it always succeeds.
func (m *ModuleTable) Init() error { return nil }

// Uninit is the table's B_MODULE_UNINIT hook, symmetric with Init.
func (m *ModuleTable) Uninit() error { return nil }
