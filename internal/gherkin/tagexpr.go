package gherkin

import (
	"fmt"
	"strings"
)

// TagExpression is a boolean expression over tag names, e.g.
// "@smoke and not @regression". Operators are and, or, not
// (case-insensitive) with parentheses; not binds tightest, then and,
// then or.
type TagExpression interface {
	Match(tags []Tag) bool
}

type tagOperand string

func (o tagOperand) Match(tags []Tag) bool {
	for _, t := range tags {
		if t.Name == string(o) {
			return true
		}
	}
	return false
}

type notExpr struct{ inner TagExpression }

func (e notExpr) Match(tags []Tag) bool { return !e.inner.Match(tags) }

type andExpr struct{ left, right TagExpression }

func (e andExpr) Match(tags []Tag) bool { return e.left.Match(tags) && e.right.Match(tags) }

type orExpr struct{ left, right TagExpression }

func (e orExpr) Match(tags []Tag) bool { return e.left.Match(tags) || e.right.Match(tags) }

// ParseTagExpression parses a tag expression with a small recursive
// descent parser.
func ParseTagExpression(input string) (TagExpression, error) {
	tokens, err := lexTagExpression(input)
	if err != nil {
		return nil, err
	}
	p := &tagExprParser{tokens: tokens}
	expr, err := p.orLevel()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok != "" {
		return nil, fmt.Errorf("unexpected %q in tag expression", tok)
	}
	return expr, nil
}

func lexTagExpression(input string) ([]string, error) {
	var tokens []string
	for _, field := range strings.Fields(strings.ReplaceAll(strings.ReplaceAll(input, "(", " ( "), ")", " ) ")) {
		switch {
		case field == "(" || field == ")":
			tokens = append(tokens, field)
		case strings.EqualFold(field, "and"), strings.EqualFold(field, "or"), strings.EqualFold(field, "not"):
			tokens = append(tokens, strings.ToLower(field))
		case strings.HasPrefix(field, "@"):
			tokens = append(tokens, field)
		default:
			return nil, fmt.Errorf("invalid tag expression token %q", field)
		}
	}
	return tokens, nil
}

type tagExprParser struct {
	tokens []string
	pos    int
}

func (p *tagExprParser) peek() string {
	if p.pos >= len(p.tokens) {
		return ""
	}
	return p.tokens[p.pos]
}

func (p *tagExprParser) next() string {
	tok := p.peek()
	p.pos++
	return tok
}

func (p *tagExprParser) orLevel() (TagExpression, error) {
	left, err := p.andLevel()
	if err != nil {
		return nil, err
	}
	for p.peek() == "or" {
		p.next()
		right, err := p.andLevel()
		if err != nil {
			return nil, err
		}
		left = orExpr{left, right}
	}
	return left, nil
}

func (p *tagExprParser) andLevel() (TagExpression, error) {
	left, err := p.factor()
	if err != nil {
		return nil, err
	}
	for p.peek() == "and" {
		p.next()
		right, err := p.factor()
		if err != nil {
			return nil, err
		}
		left = andExpr{left, right}
	}
	return left, nil
}

func (p *tagExprParser) factor() (TagExpression, error) {
	switch tok := p.next(); {
	case tok == "not":
		inner, err := p.factor()
		if err != nil {
			return nil, err
		}
		return notExpr{inner}, nil
	case tok == "(":
		expr, err := p.orLevel()
		if err != nil {
			return nil, err
		}
		if p.next() != ")" {
			return nil, fmt.Errorf("missing closing parenthesis in tag expression")
		}
		return expr, nil
	case strings.HasPrefix(tok, "@"):
		return tagOperand(tok), nil
	case tok == "":
		return nil, fmt.Errorf("empty tag expression")
	default:
		return nil, fmt.Errorf("unexpected %q in tag expression", tok)
	}
}
