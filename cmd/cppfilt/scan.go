package main

import "strings"

// isMangleCharPosix reports whether c can appear inside a mangled
// identifier: c++filt.cpp's is_mangle_char_posix.
func isMangleCharPosix(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') || c == '_'
}

// findItaniumPrefix looks for the next "_Z" marking the start of an
// Itanium-mangled name, the way c++filt.cpp's look_for_itanium_prefix
// scans for the next '_' or '?' and checks a 5-byte window around it
// for "_Z" (Itanium symbols are prefixed by 1-4 underscores then Z).
// Like the original, this checks only the first underscore-or-'?'
// candidate in s; it does not keep scanning past a non-matching one.
func findItaniumPrefix(s string) (pos int, found bool) {
	idx := strings.IndexAny(s, "_?")
	if idx == -1 {
		return 0, false
	}
	windowEnd := idx + 5
	if windowEnd > len(s) {
		windowEnd = len(s)
	}
	if strings.Contains(s[idx:windowEnd], "_Z") {
		return idx, true
	}
	return 0, false
}

// findGCC2Symbol looks for a legacy "__" separator scanning backward
// from the end of s, then walks left over mangle-characters to find
// the symbol's start, mirroring c++filt.cpp's look_for_gcc2_symbol.
// The separator is never accepted at position 0 (a name can't be
// entirely "__").
func findGCC2Symbol(s string) (pos int, found bool) {
	mangled := -1
	i := len(s) - 1
	for i > 1 {
		if s[i] == '_' {
			if s[i-1] == '_' {
				mangled = i + 1
				break
			}
			i--
		}
		i--
	}
	if mangled == -1 {
		return 0, false
	}
	for mangled > 1 && isMangleCharPosix(s[mangled-1]) {
		mangled--
	}
	return mangled, true
}
