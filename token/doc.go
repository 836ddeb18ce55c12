// Package token holds the lexical rules of Starlark needed to produce
// source text: string literal quoting and identifier checks.
package token
