package token

import (
	"encoding/hex"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Quote returns v as a double quoted Starlark string literal.  Control
// characters without a short escape are written as \uXXXX; all other
// runes, including non-ASCII ones, are copied as UTF-8.  v must be valid
// UTF-8; invalid bytes come out as U+FFFD.
func Quote(v string) string {
	d := make([]byte, 1, len(v)+2)
	d[0] = '"'
	ucs := []byte{0, 0}
	cps := []byte{0, 0, 0, 0}
	for _, r := range v {
		switch r {
		case '"':
			d = append(d, '\\', '"')
		case '\\':
			d = append(d, '\\', '\\')
		case '\b':
			d = append(d, '\\', 'b')
		case '\f':
			d = append(d, '\\', 'f')
		case '\n':
			d = append(d, '\\', 'n')
		case '\r':
			d = append(d, '\\', 'r')
		case '\t':
			d = append(d, '\\', 't')
		default:
			if unicode.IsControl(r) {
				ucs[0] = byte(r >> 8)
				ucs[1] = byte(r)
				cps = hex.AppendEncode(cps[:0], ucs)
				d = append(d, '\\', 'u', cps[0], cps[1], cps[2], cps[3])
			} else {
				d = utf8.AppendRune(d, r)
			}
		}
	}
	d = append(d, '"')
	return string(d)
}

// Unquote is the inverse of Quote.
func Unquote(q string) (string, error) {
	n := len(q)
	if n < 2 || q[0] != '"' || q[n-1] != '"' {
		return "", ErrUnterminated
	}
	b := &strings.Builder{}
	esc := false
	i := 1
	for i < n-1 {
		r, sz := utf8.DecodeRuneInString(q[i:])
		i += sz
		if r == utf8.RuneError && sz == 1 {
			return "", ErrBadUTF8
		}
		if !esc {
			switch r {
			case '\\':
				esc = true
			case '"':
				return "", ErrUnterminated
			default:
				b.WriteRune(r)
			}
			continue
		}
		esc = false
		switch r {
		case '"', '\\':
			b.WriteRune(r)
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'u':
			if i+4 > n-1 {
				return "", ErrBadUnicode
			}
			dst := []byte{0, 0}
			if _, err := hex.Decode(dst, []byte(q[i:i+4])); err != nil {
				return "", ErrBadUnicode
			}
			b.WriteRune(rune(dst[0])<<8 | rune(dst[1]))
			i += 4
		default:
			return "", ErrBadEscape
		}
	}
	if esc {
		return "", ErrUnterminated
	}
	return b.String(), nil
}
