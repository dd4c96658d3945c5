package syntax

import (
	"strings"
	"sync/atomic"
)

// ID is the stable identity of a tree element. An element keeps its ID for
// every edited copy derived from it, so an ID names "the same" token or node
// across tree versions.
type ID uint64

// lastID is shared by every tree in the process.
var lastID atomic.Uint64

func nextID() ID {
	return ID(lastID.Add(1))
}

// Element is a token or a node.
type Element interface {
	ID() ID
	String() string
}

// Token is an immutable token value. The zero Token is invalid.
type Token struct {
	id       ID
	kind     Kind
	text     string
	leading  TriviaList
	trailing TriviaList
}

// NewToken creates a token with a fresh identity and no trivia.
func NewToken(kind Kind, text string) Token {
	return Token{id: nextID(), kind: kind, text: text}
}

// Keyword creates a keyword token for kind.
func Keyword(kind Kind) Token {
	return NewToken(kind, kind.String())
}

// Ident creates an identifier token.
func Ident(name string) Token {
	return NewToken(Identifier, name)
}

// Punct creates a punctuation token such as "(" or "{".
func Punct(text string) Token {
	return NewToken(Punctuation, text)
}

// Word creates a keyword token when text spells a keyword and an identifier otherwise.
func Word(text string) Token {
	if kind := KindOf(text); kind != Invalid {
		return NewToken(kind, text)
	}
	if len(text) == 1 && strings.ContainsAny(text, "(){}[];,:=<>.") {
		return Punct(text)
	}
	return Ident(text)
}

func (t Token) ID() ID { return t.id }
func (t Token) Kind() Kind { return t.kind }
func (t Token) Text() string { return t.text }
func (t Token) IsValid() bool { return t.id != 0 }
func (t Token) Leading() TriviaList { return NewTriviaList(t.leading...) }
func (t Token) Trailing() TriviaList { return NewTriviaList(t.trailing...) }
func (t Token) HasLeadingTrivia() bool { return len(t.leading) > 0 }

// WithLeadingTrivia returns a copy of t with its leading trivia replaced.
func (t Token) WithLeadingTrivia(trivia ...Trivia) Token {
	t.leading = NewTriviaList(trivia...)
	return t
}

// WithTrailingTrivia returns a copy of t with its trailing trivia replaced.
func (t Token) WithTrailingTrivia(trivia ...Trivia) Token {
	t.trailing = NewTriviaList(trivia...)
	return t
}

// WithText returns a copy of t spelling text; the kind is recomputed for keywords.
func (t Token) WithText(text string) Token {
	t.text = text
	if kind := KindOf(text); kind != Invalid {
		t.kind = kind
	} else if t.kind.IsKeyword() {
		t.kind = Identifier
	}
	return t
}

// SeparatedFrom reports whether whitespace or an end of line lies between
// prev and t.
func (t Token) SeparatedFrom(prev Token) bool {
	return prev.trailing.HasSeparator() || t.leading.HasSeparator()
}

func (t Token) String() string {
	b := strings.Builder{}
	t.write(&b)
	return b.String()
}

func (t Token) write(b *strings.Builder) {
	b.WriteString(t.leading.String())
	b.WriteString(t.text)
	b.WriteString(t.trailing.String())
}
