package syntax

import "strings"

// TriviaKind classifies a piece of trivia.
type TriviaKind uint8

const (
	Whitespace TriviaKind = iota
	EndOfLineTrivia
	LineComment
	BlockComment
	DocComment
)

func (k TriviaKind) String() string {
	switch k {
	case Whitespace:
		return "Whitespace"
	case EndOfLineTrivia:
		return "EndOfLine"
	case LineComment:
		return "LineComment"
	case BlockComment:
		return "BlockComment"
	case DocComment:
		return "DocComment"
	default:
		return "Unknown"
	}
}

// IsSeparating reports whether trivia of this kind keeps two tokens apart.
// Comments are not separating: "/*c*/static" still renders glued to the comment.
func (k TriviaKind) IsSeparating() bool {
	return k == Whitespace || k == EndOfLineTrivia
}

// Trivia is a span of non-semantic source text attached to a token.
type Trivia struct {
	Kind TriviaKind
	Text string
}

// Space returns a single space of whitespace trivia.
func Space() Trivia {
	return Trivia{Kind: Whitespace, Text: " "}
}

// Indent returns whitespace trivia made of n spaces.
func Indent(n int) Trivia {
	return Trivia{Kind: Whitespace, Text: strings.Repeat(" ", n)}
}

// EndOfLine returns a single line feed.
func EndOfLine() Trivia {
	return Trivia{Kind: EndOfLineTrivia, Text: "\n"}
}

// Comment returns line or block comment trivia depending on the opening delimiter.
func Comment(text string) Trivia {
	switch {
	case strings.HasPrefix(text, "///"):
		return Trivia{Kind: DocComment, Text: text}
	case strings.HasPrefix(text, "/*"):
		return Trivia{Kind: BlockComment, Text: text}
	default:
		return Trivia{Kind: LineComment, Text: text}
	}
}

// Doc returns a documentation comment. The "/// " prefix is added when missing.
func Doc(text string) Trivia {
	if !strings.HasPrefix(text, "///") {
		text = "/// " + text
	}
	return Trivia{Kind: DocComment, Text: text}
}

// TriviaList is an ordered run of trivia. Lists are treated as values:
// every method returns a fresh list and never reorders its input.
type TriviaList []Trivia

// NewTriviaList copies the given trivia into a new list.
func NewTriviaList(trivia ...Trivia) TriviaList {
	if len(trivia) == 0 {
		return nil
	}
	l := make(TriviaList, len(trivia))
	copy(l, trivia)
	return l
}

// HasSeparator reports whether any element of the list is whitespace or an end of line.
func (l TriviaList) HasSeparator() bool {
	for _, t := range l {
		if t.Kind.IsSeparating() {
			return true
		}
	}
	return false
}

// EndsWithEndOfLine reports whether the final trivia is an end of line.
func (l TriviaList) EndsWithEndOfLine() bool {
	return len(l) > 0 && l[len(l)-1].Kind == EndOfLineTrivia
}

// Prepend returns a new list with trivia placed before the contents of l.
func (l TriviaList) Prepend(trivia ...Trivia) TriviaList {
	return Concat(NewTriviaList(trivia...), l)
}

// Append returns a new list with trivia placed after the contents of l.
func (l TriviaList) Append(trivia ...Trivia) TriviaList {
	return Concat(l, NewTriviaList(trivia...))
}

// Concat joins lists in order into a new list.
func Concat(lists ...TriviaList) TriviaList {
	n := 0
	for _, l := range lists {
		n += len(l)
	}
	if n == 0 {
		return nil
	}
	out := make(TriviaList, 0, n)
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

// Indentation returns the whitespace that follows the last end of line in the list,
// or the whole list when it holds only whitespace.
func (l TriviaList) Indentation() string {
	start := 0
	for i, t := range l {
		if t.Kind == EndOfLineTrivia {
			start = i + 1
		}
	}
	b := strings.Builder{}
	for _, t := range l[start:] {
		if t.Kind != Whitespace {
			return ""
		}
		b.WriteString(t.Text)
	}
	return b.String()
}

func (l TriviaList) String() string {
	b := strings.Builder{}
	for _, t := range l {
		b.WriteString(t.Text)
	}
	return b.String()
}
