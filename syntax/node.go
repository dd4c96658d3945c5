package syntax

import (
	"slices"
	"strings"
)

// Parts lists the pieces of a declaration in source order.
type Parts struct {
	Modifiers []Token
	Header    []Token // keyword, type, name, parameters and an opening brace for containers
	Members   []*Node
	Closing   []Token
}

// Node is an immutable declaration. Every With* method returns a new Node that
// keeps the receiver's ID; the receiver itself is never modified.
type Node struct {
	id        ID
	kind      NodeKind
	modifiers []Token
	header    []Token
	members   []*Node
	closing   []Token
}

// NewNode creates a node with a fresh identity. The slices in parts are copied.
func NewNode(kind NodeKind, parts Parts) *Node {
	return &Node{
		id:        nextID(),
		kind:      kind,
		modifiers: slices.Clone(parts.Modifiers),
		header:    slices.Clone(parts.Header),
		members:   slices.Clone(parts.Members),
		closing:   slices.Clone(parts.Closing),
	}
}

func (n *Node) ID() ID { return n.id }
func (n *Node) Kind() NodeKind { return n.kind }
func (n *Node) Modifiers() []Token { return slices.Clone(n.modifiers) }
func (n *Node) Header() []Token { return slices.Clone(n.header) }
func (n *Node) Members() []*Node { return slices.Clone(n.members) }
func (n *Node) Closing() []Token { return slices.Clone(n.closing) }

func (n *Node) clone() *Node {
	c := *n
	return &c
}

// WithModifiers returns a copy of n with the modifier list replaced.
func (n *Node) WithModifiers(modifiers []Token) *Node {
	c := n.clone()
	c.modifiers = slices.Clone(modifiers)
	return c
}

// WithHeader returns a copy of n with the header tokens replaced.
func (n *Node) WithHeader(header []Token) *Node {
	c := n.clone()
	c.header = slices.Clone(header)
	return c
}

// WithMembers returns a copy of n with the member list replaced.
func (n *Node) WithMembers(members []*Node) *Node {
	c := n.clone()
	c.members = slices.Clone(members)
	return c
}

// WithClosing returns a copy of n with the closing tokens replaced.
func (n *Node) WithClosing(closing []Token) *Node {
	c := n.clone()
	c.closing = slices.Clone(closing)
	return c
}

// HasModifier reports whether a modifier of kind is present.
func (n *Node) HasModifier(kind Kind) bool {
	return slices.ContainsFunc(n.modifiers, func(t Token) bool { return t.kind == kind })
}

// FirstToken returns the first token of n in source order.
func (n *Node) FirstToken() (Token, bool) {
	var first Token
	found := false
	n.walkTokens(func(t Token) bool {
		first, found = t, true
		return false
	})
	return first, found
}

// LastToken returns the final token of n in source order.
func (n *Node) LastToken() (Token, bool) {
	tokens := n.Tokens()
	if len(tokens) == 0 {
		return Token{}, false
	}
	return tokens[len(tokens)-1], true
}

// Tokens returns every token of n, descending into members.
func (n *Node) Tokens() []Token {
	var tokens []Token
	n.walkTokens(func(t Token) bool {
		tokens = append(tokens, t)
		return true
	})
	return tokens
}

// walkTokens visits tokens in source order until fn returns false.
func (n *Node) walkTokens(fn func(Token) bool) bool {
	for _, group := range [][]Token{n.modifiers, n.header} {
		for _, t := range group {
			if !fn(t) {
				return false
			}
		}
	}
	for _, m := range n.members {
		if !m.walkTokens(fn) {
			return false
		}
	}
	for _, t := range n.closing {
		if !fn(t) {
			return false
		}
	}
	return true
}

// LeadingTrivia returns the leading trivia of the declaration, which is the
// leading trivia of its first token.
func (n *Node) LeadingTrivia() TriviaList {
	first, ok := n.FirstToken()
	if !ok {
		return nil
	}
	return first.Leading()
}

// TrailingTrivia returns the trailing trivia of the last token.
func (n *Node) TrailingTrivia() TriviaList {
	last, ok := n.LastToken()
	if !ok {
		return nil
	}
	return last.Trailing()
}

// WithLeadingTrivia returns a copy of n whose first token carries trivia as leading trivia.
func (n *Node) WithLeadingTrivia(trivia TriviaList) *Node {
	first, ok := n.FirstToken()
	if !ok {
		return n
	}
	c, _ := n.replaceToken(first.id, first.WithLeadingTrivia(trivia...))
	return c
}

// WithoutLeadingTrivia returns a copy of n with no leading trivia.
func (n *Node) WithoutLeadingTrivia() *Node {
	return n.WithLeadingTrivia(nil)
}

// WithTrailingTrivia returns a copy of n whose last token carries trivia as trailing trivia.
func (n *Node) WithTrailingTrivia(trivia TriviaList) *Node {
	last, ok := n.LastToken()
	if !ok {
		return n
	}
	c, _ := n.replaceToken(last.id, last.WithTrailingTrivia(trivia...))
	return c
}

// ReplaceToken returns a copy of n where the token with tok's ID is replaced by tok.
// The boolean is false when no such token exists below n.
func (n *Node) ReplaceToken(tok Token) (*Node, bool) {
	return n.replaceToken(tok.id, tok)
}

func (n *Node) replaceToken(id ID, tok Token) (*Node, bool) {
	c := n.clone()
	for _, group := range []*[]Token{&c.modifiers, &c.header, &c.closing} {
		if i := slices.IndexFunc(*group, func(t Token) bool { return t.id == id }); i >= 0 {
			*group = slices.Clone(*group)
			(*group)[i] = tok
			return c, true
		}
	}
	for i, m := range n.members {
		if r, ok := m.replaceToken(id, tok); ok {
			c.members = slices.Clone(n.members)
			c.members[i] = r
			return c, true
		}
	}
	return n, false
}

// replaceNode returns a copy of n with the descendant identified by id
// passed through fn. A nil result from fn removes the descendant.
func (n *Node) replaceNode(id ID, fn func(*Node) *Node) (*Node, bool) {
	if n.id == id {
		return fn(n), true
	}
	for i, m := range n.members {
		r, ok := m.replaceNode(id, fn)
		if !ok {
			continue
		}
		c := n.clone()
		c.members = slices.Clone(n.members)
		if r == nil {
			c.members = slices.Delete(c.members, i, i+1)
		} else {
			c.members[i] = r
		}
		return c, true
	}
	return n, false
}

func (n *Node) walk(fn func(Element)) {
	fn(n)
	for _, group := range [][]Token{n.modifiers, n.header} {
		for _, t := range group {
			fn(t)
		}
	}
	for _, m := range n.members {
		m.walk(fn)
	}
	for _, t := range n.closing {
		fn(t)
	}
}

// String renders n with all of its trivia.
func (n *Node) String() string {
	b := strings.Builder{}
	n.walkTokens(func(t Token) bool {
		t.write(&b)
		return true
	})
	return b.String()
}
