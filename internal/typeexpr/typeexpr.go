// Package typeexpr parses the type expressions used by catalog documents:
//
//	Pet
//	Acme.Outer+Inner
//	list<Pet>  Pet[]
//	map<string, Pet>
//	nullable<Status>  Status?
//	Box<int32>
package typeexpr

import (
	"fmt"
	"strings"
)

// Expr is a parsed type expression.
type Expr struct {
	Name string
	Args []*Expr
}

// Well-known constructor names.
const (
	List     = "list"
	Map      = "map"
	Nullable = "nullable"
)

// String renders the expression in canonical form.
func (e *Expr) String() string {
	if e == nil {
		return ""
	}
	if len(e.Args) == 0 {
		return e.Name
	}
	parts := make([]string, len(e.Args))
	for i, arg := range e.Args {
		parts[i] = arg.String()
	}
	return e.Name + "<" + strings.Join(parts, ",") + ">"
}

// SyntaxError reports a malformed expression.
type SyntaxError struct {
	Input  string
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("typeexpr: %s at offset %d in %q", e.Msg, e.Offset, e.Input)
}

// Parse parses input into an expression tree. The shorthands "T[]" and "T?"
// expand to list<T> and nullable<T>.
func Parse(input string) (*Expr, error) {
	p := &parser{input: input}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos < len(p.input) {
		return nil, p.errorf("unexpected %q", p.input[p.pos])
	}
	return expr, nil
}

// MustParse panics when Parse fails.
func MustParse(input string) *Expr {
	expr, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return expr
}

type parser struct {
	input string
	pos   int
}

func (p *parser) parseExpr() (*Expr, error) {
	p.skipSpace()
	name := p.ident()
	if name == "" {
		if p.pos >= len(p.input) {
			return nil, p.errorf("expected type name")
		}
		return nil, p.errorf("unexpected %q", p.input[p.pos])
	}
	expr := &Expr{Name: name}

	p.skipSpace()
	if p.peek() == '<' {
		p.pos++
		for {
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			expr.Args = append(expr.Args, arg)
			p.skipSpace()
			switch p.peek() {
			case ',':
				p.pos++
				continue
			case '>':
				p.pos++
			default:
				return nil, p.errorf("expected ',' or '>'")
			}
			break
		}
	}

	if err := validate(expr, p); err != nil {
		return nil, err
	}

	for {
		p.skipSpace()
		switch {
		case strings.HasPrefix(p.input[p.pos:], "[]"):
			p.pos += 2
			expr = &Expr{Name: List, Args: []*Expr{expr}}
		case p.peek() == '?':
			p.pos++
			expr = &Expr{Name: Nullable, Args: []*Expr{expr}}
		default:
			return expr, nil
		}
	}
}

func validate(expr *Expr, p *parser) error {
	want := -1
	switch expr.Name {
	case List, Nullable:
		want = 1
	case Map:
		want = 2
	}
	if want >= 0 && len(expr.Args) != want {
		return p.errorf("%s expects %d type arguments, got %d", expr.Name, want, len(expr.Args))
	}
	return nil
}

func (p *parser) ident() string {
	start := p.pos
	for p.pos < len(p.input) && isIdentByte(p.input[p.pos]) {
		p.pos++
	}
	return p.input[start:p.pos]
}

func isIdentByte(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '_', c == '.', c == '+', c == '-', c == '$':
		return true
	default:
		return false
	}
}

func (p *parser) peek() byte {
	if p.pos < len(p.input) {
		return p.input[p.pos]
	}
	return 0
}

func (p *parser) skipSpace() {
	for p.pos < len(p.input) && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t') {
		p.pos++
	}
}

func (p *parser) errorf(format string, args ...any) error {
	return &SyntaxError{Input: p.input, Offset: p.pos, Msg: fmt.Sprintf(format, args...)}
}
