// Package render substitutes booking data into the confirmation email
// template. The template is arbitrary HTML/CSS that may contain literal
// braces (style blocks), so substitution runs as a three-pass
// escape/substitute/unescape over a fixed placeholder vocabulary.
package render

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingBinding is returned when the template references a known
// placeholder for which no binding value was supplied.
var ErrMissingBinding = errors.New("missing template binding")

// Placeholders is the fixed, case-sensitive vocabulary of double-brace
// slots recognized in templates. Keeping the set enumerable is what
// makes the selective unescape pass possible; arbitrary-key templating
// is deliberately unsupported.
var Placeholders = []string{"name", "price", "hyperlink", "mentor_name"}

// Render replaces the known {{placeholder}} slots in tmpl with values
// from bindings while leaving every literal brace in the document
// untouched.
//
// Pass 1 doubles every brace, turning literal braces into an escaped
// form and the placeholder delimiters into quadruple braces. Pass 2
// collapses the quadrupled form back to single braces for the known
// placeholder names only. Pass 3 substitutes the single-brace slots
// from bindings, then halves the remaining doubled braces to restore
// the original literals.
//
// Binding keys with no matching placeholder are ignored. A placeholder
// present in tmpl with no binding returns ErrMissingBinding. Rendering
// already-rendered output again is a no-op.
func Render(tmpl string, bindings map[string]string) (string, error) {
	s := strings.ReplaceAll(tmpl, "{", "{{")
	s = strings.ReplaceAll(s, "}", "}}")

	for _, name := range Placeholders {
		s = strings.ReplaceAll(s, "{{{{"+name+"}}}}", "{"+name+"}")
	}

	out, err := substitute(s, bindings)
	if err != nil {
		return "", err
	}

	out = strings.ReplaceAll(out, "{{", "{")
	out = strings.ReplaceAll(out, "}}", "}")
	return out, nil
}

// substitute resolves single-brace {key} slots from bindings. After the
// first two passes every brace in s is either part of a doubled pair
// (literal) or delimits a known placeholder, so the scan only has to
// distinguish those two shapes.
func substitute(s string, bindings map[string]string) (string, error) {
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); {
		switch s[i] {
		case '{':
			if i+1 < len(s) && s[i+1] == '{' {
				b.WriteString("{{")
				i += 2
				continue
			}
			end := strings.IndexByte(s[i+1:], '}')
			if end < 0 {
				// Unterminated slot; leave as-is.
				b.WriteByte(s[i])
				i++
				continue
			}
			key := s[i+1 : i+1+end]
			val, ok := bindings[key]
			if !ok {
				return "", fmt.Errorf("%w: %q", ErrMissingBinding, key)
			}
			b.WriteString(val)
			i += end + 2
		case '}':
			if i+1 < len(s) && s[i+1] == '}' {
				b.WriteString("}}")
				i += 2
				continue
			}
			b.WriteByte(s[i])
			i++
		default:
			b.WriteByte(s[i])
			i++
		}
	}

	return b.String(), nil
}
