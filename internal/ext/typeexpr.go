package ext

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/yolang-dev/yolang/internal/typesystem"
)

// ParseType parses a type expression from yolang.yaml into a
// monotype. Supported forms: the primitive names, Ptr<T>,
// Array<T, N>, tuples "(T, U)", functions "Fn(T, U) -> R", and
// capitalized struct names.
func ParseType(s string) (typesystem.Type, error) {
	p := &typeParser{input: s}
	t, err := p.parse()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.input) {
		return nil, fmt.Errorf("unexpected %q in type expression %q", p.input[p.pos:], s)
	}
	return t, nil
}

type typeParser struct {
	input string
	pos   int
}

var primitives = map[string]typesystem.TCon{
	"unit":   typesystem.Unit,
	"bool":   typesystem.Bool,
	"u8":     typesystem.U8,
	"u32":    typesystem.U32,
	"char":   typesystem.Char,
	"string": typesystem.Str,
}

func (p *typeParser) parse() (typesystem.Type, error) {
	p.skipSpace()
	if p.peek() == '(' {
		return p.parseTuple()
	}

	name := p.ident()
	if name == "" {
		return nil, fmt.Errorf("expected type name at %q", p.rest())
	}

	switch name {
	case typesystem.FnTypeName:
		return p.parseFn()
	case typesystem.PtrTypeName:
		args, err := p.parseArgs(1)
		if err != nil {
			return nil, err
		}
		return typesystem.Ptr(args[0]), nil
	case typesystem.ArrayTypeName:
		return p.parseArray()
	}

	if prim, ok := primitives[name]; ok {
		return prim, nil
	}
	if unicode.IsUpper(rune(name[0])) {
		return typesystem.TNamedStruct{Name: name}, nil
	}
	return nil, fmt.Errorf("unknown type %q", name)
}

// parseFn parses "(T, U) -> R" after the Fn keyword.
func (p *typeParser) parseFn() (typesystem.Type, error) {
	if !p.eat('(') {
		return nil, fmt.Errorf("expected '(' after Fn at %q", p.rest())
	}
	var params []typesystem.Type
	p.skipSpace()
	if !p.eat(')') {
		for {
			t, err := p.parse()
			if err != nil {
				return nil, err
			}
			params = append(params, t)
			p.skipSpace()
			if p.eat(',') {
				continue
			}
			if p.eat(')') {
				break
			}
			return nil, fmt.Errorf("expected ',' or ')' at %q", p.rest())
		}
	}
	p.skipSpace()
	if !strings.HasPrefix(p.input[p.pos:], "->") {
		return nil, fmt.Errorf("expected '->' at %q", p.rest())
	}
	p.pos += 2
	ret, err := p.parse()
	if err != nil {
		return nil, err
	}
	return typesystem.Fn(params, ret), nil
}

func (p *typeParser) parseTuple() (typesystem.Type, error) {
	p.eat('(')
	var elems []typesystem.Type
	for {
		t, err := p.parse()
		if err != nil {
			return nil, err
		}
		elems = append(elems, t)
		p.skipSpace()
		if p.eat(',') {
			continue
		}
		if p.eat(')') {
			break
		}
		return nil, fmt.Errorf("expected ',' or ')' at %q", p.rest())
	}
	return typesystem.Tuple(elems...), nil
}

func (p *typeParser) parseArray() (typesystem.Type, error) {
	if !p.eat('<') {
		return nil, fmt.Errorf("expected '<' after Array at %q", p.rest())
	}
	elem, err := p.parse()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if !p.eat(',') {
		return nil, fmt.Errorf("expected ',' in Array at %q", p.rest())
	}
	p.skipSpace()
	digits := p.ident()
	n, err := strconv.Atoi(digits)
	if err != nil || n < 0 {
		return nil, fmt.Errorf("invalid array length %q", digits)
	}
	p.skipSpace()
	if !p.eat('>') {
		return nil, fmt.Errorf("expected '>' after Array length at %q", p.rest())
	}
	return typesystem.Array(elem, n), nil
}

// parseArgs parses "<T, ...>" with exactly n arguments.
func (p *typeParser) parseArgs(n int) ([]typesystem.Type, error) {
	if !p.eat('<') {
		return nil, fmt.Errorf("expected '<' at %q", p.rest())
	}
	args := make([]typesystem.Type, 0, n)
	for {
		t, err := p.parse()
		if err != nil {
			return nil, err
		}
		args = append(args, t)
		p.skipSpace()
		if p.eat(',') {
			continue
		}
		if p.eat('>') {
			break
		}
		return nil, fmt.Errorf("expected ',' or '>' at %q", p.rest())
	}
	if len(args) != n {
		return nil, fmt.Errorf("expected %d type arguments, got %d", n, len(args))
	}
	return args, nil
}

func (p *typeParser) ident() string {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.input) {
		c := rune(p.input[p.pos])
		if unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_' {
			p.pos++
		} else {
			break
		}
	}
	return p.input[start:p.pos]
}

func (p *typeParser) skipSpace() {
	for p.pos < len(p.input) && p.input[p.pos] == ' ' {
		p.pos++
	}
}

func (p *typeParser) peek() byte {
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *typeParser) eat(c byte) bool {
	p.skipSpace()
	if p.pos < len(p.input) && p.input[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

func (p *typeParser) rest() string {
	if p.pos >= len(p.input) {
		return "<end>"
	}
	return p.input[p.pos:]
}
