// Package modifier inserts, removes and normalizes declaration modifiers
// while keeping the declaration's trivia where a reader expects it.
//
// All functions are pure: they take an immutable declaration and return a
// new one. The input declaration is never changed.
package modifier

import (
	"slices"

	"github.com/newrelic/go-easy-modifiers/syntax"
)

// Editor applies modifier edits using an ordering table and a separator.
type Editor struct {
	table     Table
	separator syntax.TriviaList
}

// NewEditor returns an editor for table. An empty separator defaults to a single space.
func NewEditor(table Table, separator ...syntax.Trivia) *Editor {
	sep := syntax.NewTriviaList(separator...)
	if len(sep) == 0 {
		sep = syntax.NewTriviaList(syntax.Space())
	}
	return &Editor{table: table, separator: sep}
}

var defaultEditor = NewEditor(DefaultTable())

// Table returns the editor's ordering table.
func (e *Editor) Table() Table { return e.table }

// Insert adds a modifier of kind to decl at its canonical position and returns
// the new declaration with a handle to the new token.
//
// When the modifier becomes the first token, the declaration's leading trivia
// moves onto it. Otherwise it is preceded by a single space. If decl already
// has a modifier of kind, decl is returned unchanged with a handle to it.
func (e *Editor) Insert(decl *syntax.Node, kind syntax.Kind) (*syntax.Node, syntax.Annotation, error) {
	index, err := e.table.Locate(decl.Modifiers(), kind)
	if err != nil {
		return nil, syntax.Annotation{}, err
	}
	if existing, ok := findModifier(decl, kind); ok {
		_, a := syntax.Annotate(existing)
		return decl, a, nil
	}

	tok := syntax.Keyword(kind)
	if index == 0 {
		tok = tok.WithLeadingTrivia(decl.LeadingTrivia()...)
		decl = decl.WithoutLeadingTrivia()
	}

	modifiers := decl.Modifiers()
	if index > 0 && !modifiers[index-1].Trailing().HasSeparator() {
		tok = tok.WithLeadingTrivia(syntax.Space())
	}
	modifiers = slices.Insert(modifiers, index, tok)
	decl = decl.WithModifiers(modifiers)

	decl = e.separateAfter(decl, tok.ID())
	decl = e.EnsureSeparated(decl)

	_, a := syntax.Annotate(tok)
	return decl, a, nil
}

// Remove deletes every modifier of kind from decl. Trivia leading the removed
// first modifier is kept on whatever token becomes first, and comments
// attached to any removed modifier move onto the token that follows it.
func (e *Editor) Remove(decl *syntax.Node, kind syntax.Kind) *syntax.Node {
	for {
		modifiers := decl.Modifiers()
		i := slices.IndexFunc(modifiers, func(t syntax.Token) bool { return t.Kind() == kind })
		if i < 0 {
			return decl
		}
		removed := modifiers[i]
		decl = decl.WithModifiers(slices.Delete(modifiers, i, i+1))

		if i == 0 {
			first, ok := decl.FirstToken()
			if !ok {
				continue
			}
			own := withoutSeparators(first.Leading())
			carried := carriedComments(removed.Trailing(), true, false)
			leading := syntax.Concat(removed.Leading(), carried, own)
			decl, _ = decl.ReplaceToken(first.WithLeadingTrivia(leading...))
			continue
		}

		prev := modifiers[i-1]
		if next, ok := tokenAfter(decl, prev.ID()); ok {
			all := syntax.Concat(removed.Leading(), removed.Trailing())
			carried := carriedComments(all, prev.Trailing().HasSeparator(), startsWithSeparator(next.Leading()))
			if len(carried) > 0 {
				decl, _ = decl.ReplaceToken(next.WithLeadingTrivia(syntax.Concat(carried, next.Leading())...))
			}
		}
		// the removed token may have been all that kept its neighbours apart
		decl = e.separateAfter(decl, prev.ID())
	}
}

// carriedComments returns the part of l that has to survive the removal of
// its token: nil when l holds no comment, otherwise l with runs of whitespace
// collapsed and trailing whitespace trimmed. Leading separators are trimmed
// when trimStart is set. A single space follows the last comment unless the
// list already ends a line or the receiving token starts with a separator.
func carriedComments(l syntax.TriviaList, trimStart, followedBySeparator bool) syntax.TriviaList {
	if !slices.ContainsFunc(l, func(t syntax.Trivia) bool { return !t.Kind.IsSeparating() }) {
		return nil
	}

	var out syntax.TriviaList
	for _, t := range l {
		if trimStart && len(out) == 0 && t.Kind.IsSeparating() {
			continue
		}
		if t.Kind == syntax.Whitespace && len(out) > 0 && out[len(out)-1].Kind == syntax.Whitespace {
			continue
		}
		out = append(out, t)
	}
	for len(out) > 0 && out[len(out)-1].Kind == syntax.Whitespace {
		out = out[:len(out)-1]
	}
	if !out.EndsWithEndOfLine() && !followedBySeparator {
		out = out.Append(syntax.Space())
	}
	return out
}

func startsWithSeparator(l syntax.TriviaList) bool {
	return len(l) > 0 && l[0].Kind.IsSeparating()
}

func tokenAfter(decl *syntax.Node, id syntax.ID) (syntax.Token, bool) {
	tokens := decl.Tokens()
	i := slices.IndexFunc(tokens, func(t syntax.Token) bool { return t.ID() == id })
	if i < 0 || i+1 >= len(tokens) {
		return syntax.Token{}, false
	}
	return tokens[i+1], true
}

// EnsureSeparated guarantees whitespace between the last modifier and the
// token after it, prepending the editor's separator to that token when
// needed. Declarations without modifiers are returned unchanged.
func (e *Editor) EnsureSeparated(decl *syntax.Node) *syntax.Node {
	modifiers := decl.Modifiers()
	if len(modifiers) == 0 {
		return decl
	}
	return e.separateAfter(decl, modifiers[len(modifiers)-1].ID())
}

// Normalize makes target the only modifier of its category on decl.
//
// If target is present and nothing conflicts with it, decl is returned unchanged
// with a handle to the existing token. For the exclusive categories (access
// and static) every other modifier of the category is removed first, and
// target is then inserted at its canonical position. A present target does
// not short-circuit: "public private" still loses private.
func (e *Editor) Normalize(decl *syntax.Node, target syntax.Kind) (*syntax.Node, syntax.Annotation, error) {
	category, err := e.table.Category(target)
	if err != nil {
		return nil, syntax.Annotation{}, err
	}

	if category.Exclusive() {
		for _, m := range decl.Modifiers() {
			if m.Kind() == target {
				continue
			}
			if c, err := e.table.Category(m.Kind()); err == nil && c == category {
				decl = e.Remove(decl, m.Kind())
			}
		}
	}
	return e.Insert(decl, target)
}

// MakePublic normalizes decl's accessibility to public.
func (e *Editor) MakePublic(decl *syntax.Node) (*syntax.Node, syntax.Annotation, error) {
	return e.Normalize(decl, syntax.PublicKeyword)
}

// MakeStatic ensures decl carries exactly one static modifier.
func (e *Editor) MakeStatic(decl *syntax.Node) (*syntax.Node, syntax.Annotation, error) {
	return e.Normalize(decl, syntax.StaticKeyword)
}

// separateAfter makes sure the token following id is separated from it.
func (e *Editor) separateAfter(decl *syntax.Node, id syntax.ID) *syntax.Node {
	tokens := decl.Tokens()
	i := slices.IndexFunc(tokens, func(t syntax.Token) bool { return t.ID() == id })
	if i < 0 || i+1 >= len(tokens) {
		return decl
	}
	prev, next := tokens[i], tokens[i+1]
	if next.SeparatedFrom(prev) {
		return decl
	}
	decl, _ = decl.ReplaceToken(next.WithLeadingTrivia(next.Leading().Prepend(e.separator...)...))
	return decl
}

func findModifier(decl *syntax.Node, kind syntax.Kind) (syntax.Token, bool) {
	for _, m := range decl.Modifiers() {
		if m.Kind() == kind {
			return m, true
		}
	}
	return syntax.Token{}, false
}

func withoutSeparators(l syntax.TriviaList) syntax.TriviaList {
	var out syntax.TriviaList
	for _, t := range l {
		if !t.Kind.IsSeparating() {
			out = append(out, t)
		}
	}
	return out
}

// Insert adds kind to decl using the canonical ordering table.
func Insert(decl *syntax.Node, kind syntax.Kind) (*syntax.Node, syntax.Annotation, error) {
	return defaultEditor.Insert(decl, kind)
}

// Remove deletes every modifier of kind from decl.
func Remove(decl *syntax.Node, kind syntax.Kind) *syntax.Node {
	return defaultEditor.Remove(decl, kind)
}

// EnsureSeparated guarantees whitespace after the last modifier of decl,
// prepending separator (a single space when empty) where needed.
func EnsureSeparated(decl *syntax.Node, separator ...syntax.Trivia) *syntax.Node {
	if len(separator) == 0 {
		return defaultEditor.EnsureSeparated(decl)
	}
	return NewEditor(DefaultTable(), separator...).EnsureSeparated(decl)
}

// Normalize makes target the only modifier of its category using the canonical table.
func Normalize(decl *syntax.Node, target syntax.Kind) (*syntax.Node, syntax.Annotation, error) {
	return defaultEditor.Normalize(decl, target)
}

// MakePublic normalizes decl's accessibility to public.
func MakePublic(decl *syntax.Node) (*syntax.Node, syntax.Annotation, error) {
	return defaultEditor.MakePublic(decl)
}

// MakeStatic ensures decl carries exactly one static modifier.
func MakeStatic(decl *syntax.Node) (*syntax.Node, syntax.Annotation, error) {
	return defaultEditor.MakeStatic(decl)
}
