// Package placeholder defines the fixed vocabulary of substitution tokens a
// data-bound element may reference, and the {Group.Field} token syntax.
package placeholder

import (
	"errors"
	"strings"
)

// Token is a parsed {Group.Field} reference. It is a pure lookup key; any
// formatting of the resolved value is the render engine's concern.
type Token struct {
	Group string
	Field string
}

var ErrNotAToken = errors.New("not_a_token")

// Parse accepts exactly the shape {Group.Field}: one opening brace, a group
// and a field separated by a single dot, one closing brace, case-sensitive,
// no nesting or escaping. Anything else returns ErrNotAToken and is treated
// by callers as literal text.
func Parse(raw string) (Token, error) {
	if len(raw) < 5 || raw[0] != '{' || raw[len(raw)-1] != '}' {
		return Token{}, ErrNotAToken
	}
	body := raw[1 : len(raw)-1]
	if strings.ContainsAny(body, "{}") {
		return Token{}, ErrNotAToken
	}
	dot := strings.Index(body, ".")
	if dot <= 0 || dot == len(body)-1 || strings.Contains(body[dot+1:], ".") {
		return Token{}, ErrNotAToken
	}
	return Token{Group: body[:dot], Field: body[dot+1:]}, nil
}

// String renders the token back to its {Group.Field} wire form.
func (t Token) String() string {
	return "{" + t.Group + "." + t.Field + "}"
}
