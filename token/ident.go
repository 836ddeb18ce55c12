package token

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

var keywords = map[string]bool{
	"and": true, "break": true, "continue": true, "def": true,
	"elif": true, "else": true, "for": true, "if": true,
	"in": true, "lambda": true, "load": true, "not": true,
	"or": true, "pass": true, "return": true, "while": true,
}

func IsKeyword(v string) bool {
	return keywords[v]
}

// IsIdentifier reports whether v can name a variable, parameter or
// keyword argument.
func IsIdentifier(v string) bool {
	if v == "" || keywords[v] {
		return false
	}
	for i, r := range v {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}

// IsDottedName reports whether v is a sequence of identifiers joined by
// dots, such as native.cc_library.  Function calls are named this way.
// load is accepted here even though it is a keyword.
func IsDottedName(v string) bool {
	if v == "load" {
		return true
	}
	for _, part := range strings.Split(v, ".") {
		if !IsIdentifier(part) {
			return false
		}
	}
	return true
}

// Len is the length of v as counted by layout decisions: runes, not bytes.
func Len(v string) int {
	return utf8.RuneCountInString(v)
}
