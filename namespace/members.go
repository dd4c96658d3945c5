// Package namespace adds member declarations to namespaces and types while
// keeping the container's formatting: each member starts on its own line at
// the indentation the container already uses.
package namespace

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/newrelic/go-easy-modifiers/syntax"
)

// defaultIndent is added to a container's own indentation for its first member.
const defaultIndent = "    "

// ErrNotContainer is returned when members are added to a declaration that is not a container.
var ErrNotContainer = errors.New("declaration cannot hold members")

// AddMembers appends members to container, before its closing tokens.
func AddMembers(container *syntax.Node, members ...*syntax.Node) (*syntax.Node, []syntax.Annotation, error) {
	return InsertMembers(container, len(container.Members()), members...)
}

// InsertMembers inserts members into container starting at index and returns
// a handle for each inserted member, in order.
func InsertMembers(container *syntax.Node, index int, members ...*syntax.Node) (*syntax.Node, []syntax.Annotation, error) {
	if !container.Kind().IsContainer() {
		return nil, nil, fmt.Errorf("%s: %w", container.Kind(), ErrNotContainer)
	}
	existing := container.Members()
	if index < 0 || index > len(existing) {
		return nil, nil, fmt.Errorf("member index %d out of range [0, %d]", index, len(existing))
	}

	indent := memberIndentation(container)
	formatted := make([]*syntax.Node, 0, len(members))
	annotations := make([]syntax.Annotation, 0, len(members))
	for _, m := range members {
		m = placeOnOwnLine(m, indent)
		_, a := syntax.Annotate(m)
		formatted = append(formatted, m)
		annotations = append(annotations, a)
	}

	// the member before the insertion point must end its line
	if index > 0 {
		prev := existing[index-1]
		if !prev.TrailingTrivia().EndsWithEndOfLine() {
			existing[index-1] = prev.WithTrailingTrivia(prev.TrailingTrivia().Append(syntax.EndOfLine()))
		}
	} else if header := container.Header(); len(header) > 0 {
		last := header[len(header)-1]
		if !last.Trailing().EndsWithEndOfLine() {
			header[len(header)-1] = last.WithTrailingTrivia(last.Trailing().Append(syntax.EndOfLine())...)
			container = container.WithHeader(header)
		}
	}

	container = container.WithMembers(slices.Insert(existing, index, formatted...))
	return container, annotations, nil
}

// memberIndentation is the indentation of the first member, or the closing
// token's indentation plus one level when the container is empty. Compilation
// units are not indented.
func memberIndentation(container *syntax.Node) string {
	if members := container.Members(); len(members) > 0 {
		return members[0].LeadingTrivia().Indentation()
	}
	if container.Kind() == syntax.CompilationUnit {
		return ""
	}
	closing := container.Closing()
	if len(closing) == 0 {
		return defaultIndent
	}
	return closing[0].Leading().Indentation() + defaultIndent
}

// placeOnOwnLine moves every line of m to indent and terminates its last line.
// The indentation m already has on its first line is replaced, so lines nested
// deeper than the first keep their relative indentation.
func placeOnOwnLine(m *syntax.Node, indent string) *syntax.Node {
	if !m.TrailingTrivia().EndsWithEndOfLine() {
		m = m.WithTrailingTrivia(m.TrailingTrivia().Append(syntax.EndOfLine()))
	}
	base := m.LeadingTrivia().Indentation()
	if indent == "" && base == "" {
		return m
	}

	lineStart := true
	return m.MapTokens(func(t syntax.Token) syntax.Token {
		var leading syntax.TriviaList
		for _, tv := range t.Leading() {
			if lineStart {
				switch tv.Kind {
				case syntax.Whitespace:
					leading = appendIndent(leading, indent+strings.TrimPrefix(tv.Text, base))
					lineStart = false
					continue
				case syntax.EndOfLineTrivia:
				default:
					leading = appendIndent(leading, indent)
					lineStart = false
				}
			}
			leading = append(leading, tv)
			if tv.Kind == syntax.EndOfLineTrivia {
				lineStart = true
			}
		}
		if lineStart {
			leading = appendIndent(leading, indent)
		}
		lineStart = t.Trailing().EndsWithEndOfLine()
		return t.WithLeadingTrivia(leading...)
	})
}

func appendIndent(l syntax.TriviaList, text string) syntax.TriviaList {
	if text == "" {
		return l
	}
	return append(l, syntax.Trivia{Kind: syntax.Whitespace, Text: text})
}
