// Package when implements the small boolean expression language used for
// menu visibility predicates, evaluated against a key/value context
// snapshot.
//
// Grammar, loosest binding first:
//
//	expr    := and { "||" and }
//	and     := unary { "&&" unary }
//	unary   := "!" unary | primary
//	primary := "(" expr ")" | key [ ("==" | "!=") literal ]
//
// Literals are single-quoted strings, numbers, true and false; an unquoted
// word on the right-hand side of a comparison is treated as a string
// literal. A bare key tests the truthiness of its value: missing keys,
// false, zero and the empty string are falsy, everything else truthy.
package when

import (
	"fmt"
	"strconv"
	"strings"
)

// Getter is the read surface of a context snapshot.
type Getter interface {
	Get(key string) (any, bool)
}

// Evaluator evaluates when clauses. It satisfies the menu package's
// ContextEvaluator interface.
type Evaluator struct{}

// Evaluate parses expr and evaluates it against ctx. ctx may be a Getter, a
// map[string]any or nil (nil behaves as an empty snapshot). A parse error or
// an unusable ctx returns an error; the menu core hides such items.
func (Evaluator) Evaluate(expr string, ctx any) (bool, error) {
	return Evaluate(expr, ctx)
}

// Evaluate is the package-level form of Evaluator.Evaluate.
func Evaluate(expr string, ctx any) (bool, error) {
	n, err := Parse(expr)
	if err != nil {
		return false, err
	}

	var g Getter
	switch c := ctx.(type) {
	case nil:
		g = mapGetter(nil)
	case Getter:
		g = c
	case map[string]any:
		g = mapGetter(c)
	default:
		return false, fmt.Errorf("unsupported context type %T", ctx)
	}
	return n.eval(g), nil
}

// Parse validates expr and returns its evaluable form. The empty expression
// is an error here; absent predicates are the menu core's concern.
func Parse(expr string) (Node, error) {
	tokens, err := tokenize(expr)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	n, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.tokens) {
		return nil, fmt.Errorf("unexpected %q at end of expression", p.tokens[p.pos].text)
	}
	return n, nil
}

type mapGetter map[string]any

func (m mapGetter) Get(key string) (any, bool) {
	v, ok := m[key]
	return v, ok
}

// Node is a parsed when clause.
type Node interface {
	eval(g Getter) bool
}

type orNode struct{ children []Node }

func (n orNode) eval(g Getter) bool {
	for _, c := range n.children {
		if c.eval(g) {
			return true
		}
	}
	return false
}

type andNode struct{ children []Node }

func (n andNode) eval(g Getter) bool {
	for _, c := range n.children {
		if !c.eval(g) {
			return false
		}
	}
	return true
}

type notNode struct{ child Node }

func (n notNode) eval(g Getter) bool {
	return !n.child.eval(g)
}

type keyNode struct{ key string }

func (n keyNode) eval(g Getter) bool {
	v, ok := g.Get(n.key)
	if !ok {
		return false
	}
	return truthy(v)
}

type cmpNode struct {
	key     string
	literal any
	negate  bool
}

func (n cmpNode) eval(g Getter) bool {
	v, _ := g.Get(n.key)
	eq := equals(v, n.literal)
	if n.negate {
		return !eq
	}
	return eq
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	default:
		if f, ok := toFloat(v); ok {
			return f != 0
		}
		return true
	}
}

func equals(v, literal any) bool {
	if lf, ok := literal.(float64); ok {
		if vf, ok := toFloat(v); ok {
			return vf == lf
		}
	}
	if v == nil {
		return false
	}
	return fmt.Sprint(v) == fmt.Sprint(literal)
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint64:
		return float64(t), true
	case float32:
		return float64(t), true
	case float64:
		return t, true
	}
	return 0, false
}

type tokenKind int

const (
	tokenKey tokenKind = iota
	tokenString
	tokenAnd
	tokenOr
	tokenNot
	tokenEq
	tokenNeq
	tokenLParen
	tokenRParen
)

type token struct {
	kind tokenKind
	text string
}

func tokenize(expr string) ([]token, error) {
	var tokens []token
	i := 0
	for i < len(expr) {
		c := expr[i]
		switch {
		case c == ' ' || c == '\t':
			i++
		case c == '(':
			tokens = append(tokens, token{tokenLParen, "("})
			i++
		case c == ')':
			tokens = append(tokens, token{tokenRParen, ")"})
			i++
		case c == '!':
			if i+1 < len(expr) && expr[i+1] == '=' {
				tokens = append(tokens, token{tokenNeq, "!="})
				i += 2
			} else {
				tokens = append(tokens, token{tokenNot, "!"})
				i++
			}
		case strings.HasPrefix(expr[i:], "=="):
			tokens = append(tokens, token{tokenEq, "=="})
			i += 2
		case strings.HasPrefix(expr[i:], "&&"):
			tokens = append(tokens, token{tokenAnd, "&&"})
			i += 2
		case strings.HasPrefix(expr[i:], "||"):
			tokens = append(tokens, token{tokenOr, "||"})
			i += 2
		case c == '\'':
			end := strings.IndexByte(expr[i+1:], '\'')
			if end < 0 {
				return nil, fmt.Errorf("unterminated string at offset %d", i)
			}
			tokens = append(tokens, token{tokenString, expr[i+1 : i+1+end]})
			i += end + 2
		case isKeyChar(c):
			start := i
			for i < len(expr) && isKeyChar(expr[i]) {
				i++
			}
			tokens = append(tokens, token{tokenKey, expr[start:i]})
		default:
			return nil, fmt.Errorf("unexpected character %q at offset %d", c, i)
		}
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("empty expression")
	}
	return tokens, nil
}

func isKeyChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' ||
		c == '.' || c == '_' || c == '-'
}

type parser struct {
	tokens []token
	pos    int
}

func (p *parser) parseOr() (Node, error) {
	child, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	children := []Node{child}
	for p.accept(tokenOr) {
		child, err = p.parseAnd()
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	if len(children) == 1 {
		return children[0], nil
	}
	return orNode{children}, nil
}

func (p *parser) parseAnd() (Node, error) {
	child, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	children := []Node{child}
	for p.accept(tokenAnd) {
		child, err = p.parseUnary()
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	if len(children) == 1 {
		return children[0], nil
	}
	return andNode{children}, nil
}

func (p *parser) parseUnary() (Node, error) {
	if p.accept(tokenNot) {
		child, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return notNode{child}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (Node, error) {
	if p.accept(tokenLParen) {
		n, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if !p.accept(tokenRParen) {
			return nil, fmt.Errorf("missing closing parenthesis")
		}
		return n, nil
	}

	key, ok := p.acceptText(tokenKey)
	if !ok {
		return nil, fmt.Errorf("expected key at position %d", p.pos)
	}

	negate := false
	switch {
	case p.accept(tokenEq):
	case p.accept(tokenNeq):
		negate = true
	default:
		return keyNode{key}, nil
	}

	literal, err := p.parseLiteral()
	if err != nil {
		return nil, err
	}
	return cmpNode{key: key, literal: literal, negate: negate}, nil
}

func (p *parser) parseLiteral() (any, error) {
	if s, ok := p.acceptText(tokenString); ok {
		return s, nil
	}
	word, ok := p.acceptText(tokenKey)
	if !ok {
		return nil, fmt.Errorf("expected literal at position %d", p.pos)
	}
	switch word {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	if f, err := strconv.ParseFloat(word, 64); err == nil {
		return f, nil
	}
	// Unquoted words compare as strings.
	return word, nil
}

func (p *parser) accept(kind tokenKind) bool {
	if p.pos < len(p.tokens) && p.tokens[p.pos].kind == kind {
		p.pos++
		return true
	}
	return false
}

func (p *parser) acceptText(kind tokenKind) (string, bool) {
	if p.pos < len(p.tokens) && p.tokens[p.pos].kind == kind {
		p.pos++
		return p.tokens[p.pos-1].text, true
	}
	return "", false
}
