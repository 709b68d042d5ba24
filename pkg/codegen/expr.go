package codegen

import (
	"fmt"
	"strconv"
	"strings"
)

// Expr is a rendered C++ expression.
type Expr string

// Expresser is implemented by normalized values that know their C++ form
// (sizes, colours, keywords, fonts).
type Expresser interface {
	Expr() string
}

// Ref references a variable declared elsewhere, usually by the host.
func Ref(id string) Expr { return Expr(id) }

// AddressOf takes the address of a variable.
func AddressOf(id string) Expr { return Expr("&" + id) }

// Call renders fn(args...).
func Call(fn string, args ...any) Expr {
	return Expr(fn + "(" + joinArgs(args) + ")")
}

// Method renders obj->method(args...).
func Method(obj Expr, method string, args ...any) Expr {
	return Expr(string(obj) + "->" + method + "(" + joinArgs(args) + ")")
}

// Literal renders a Go value as a C++ literal. Strings become escaped string
// literals; Expr and Expresser values are emitted verbatim.
func Literal(v any) string {
	switch val := v.(type) {
	case nil:
		return "nullptr"
	case Expr:
		return string(val)
	case Expresser:
		return val.Expr()
	case string:
		return QuoteString(val)
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case uint32:
		return fmt.Sprintf("0x%X", val)
	case float64:
		s := strconv.FormatFloat(val, 'f', -1, 64)
		if !strings.ContainsAny(s, ".e") {
			s += ".0"
		}
		return s + "f"
	default:
		return fmt.Sprint(val)
	}
}

// QuoteString renders s as a C++ string literal. Control characters use
// three digit octal escapes, which unlike \x escapes cannot swallow the
// following character.
func QuoteString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '?':
			// avoid trigraphs
			b.WriteString(`\?`)
		default:
			if c < 0x20 || c == 0x7F {
				fmt.Fprintf(&b, `\%03o`, c)
				continue
			}
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func joinArgs(args []any) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = Literal(arg)
	}
	return strings.Join(parts, ", ")
}
