package syntax

import "strings"

// Modifiers returns keyword tokens for kinds, each followed by a single space.
func Modifiers(kinds ...Kind) []Token {
	tokens := make([]Token, 0, len(kinds))
	for _, kind := range kinds {
		tokens = append(tokens, Keyword(kind).WithTrailingTrivia(Space()))
	}
	return tokens
}

// Words splits text on spaces and returns one token per word. Every token
// but the last is followed by a single space.
func Words(text string) []Token {
	fields := strings.Fields(text)
	tokens := make([]Token, 0, len(fields))
	for i, f := range fields {
		tok := Word(f)
		if i < len(fields)-1 {
			tok = tok.WithTrailingTrivia(Space())
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// NewMethod builds "<modifiers> <returnType> <name>() { }" followed by an end of line.
func NewMethod(returnType, name string, modifiers ...Kind) *Node {
	return NewNode(Method, Parts{
		Modifiers: Modifiers(modifiers...),
		Header: []Token{
			Word(returnType).WithTrailingTrivia(Space()),
			Ident(name),
			Punct("("),
			Punct(")").WithTrailingTrivia(Space()),
			Punct("{").WithTrailingTrivia(Space()),
			Punct("}").WithTrailingTrivia(EndOfLine()),
		},
	})
}

// NewField builds "<modifiers> <typ> <name>;" followed by an end of line.
func NewField(typ, name string, modifiers ...Kind) *Node {
	return NewNode(Field, Parts{
		Modifiers: Modifiers(modifiers...),
		Header: []Token{
			Word(typ).WithTrailingTrivia(Space()),
			Ident(name),
			Punct(";").WithTrailingTrivia(EndOfLine()),
		},
	})
}

// NewContainer builds an empty container declaration of the form
//
//	<modifiers> <keyword> <name>
//	{
//	}
func NewContainer(kind NodeKind, name string, modifiers ...Kind) *Node {
	var keyword Kind
	switch kind {
	case Namespace:
		keyword = NamespaceKeyword
	case Struct:
		keyword = StructKeyword
	case Interface:
		keyword = InterfaceKeyword
	default:
		kind, keyword = Class, ClassKeyword
	}
	return NewNode(kind, Parts{
		Modifiers: Modifiers(modifiers...),
		Header: []Token{
			Keyword(keyword).WithTrailingTrivia(Space()),
			Ident(name).WithTrailingTrivia(EndOfLine()),
			Punct("{").WithTrailingTrivia(EndOfLine()),
		},
		Closing: []Token{
			Punct("}").WithTrailingTrivia(EndOfLine()),
		},
	})
}

// NewCompilationUnit builds the root of a tree holding members.
func NewCompilationUnit(members ...*Node) *Node {
	return NewNode(CompilationUnit, Parts{Members: members})
}

// MapTokens returns a copy of n with fn applied to every token in source order.
func (n *Node) MapTokens(fn func(Token) Token) *Node {
	c := n.clone()
	c.modifiers = mapTokens(n.modifiers, fn)
	c.header = mapTokens(n.header, fn)
	if n.members != nil {
		c.members = make([]*Node, len(n.members))
		for i, m := range n.members {
			c.members[i] = m.MapTokens(fn)
		}
	}
	c.closing = mapTokens(n.closing, fn)
	return c
}

func mapTokens(tokens []Token, fn func(Token) Token) []Token {
	if tokens == nil {
		return nil
	}
	out := make([]Token, len(tokens))
	for i, t := range tokens {
		out[i] = fn(t)
	}
	return out
}
