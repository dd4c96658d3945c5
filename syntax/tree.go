package syntax

import (
	"errors"
	"fmt"
	"io"
	"maps"
)

var (
	// ErrNotFound is returned when an edit names an element the tree does not hold.
	ErrNotFound = errors.New("element not found in tree")

	// ErrRootRemoval is returned when an edit would delete the root of a tree.
	ErrRootRemoval = errors.New("cannot remove the root of a tree")
)

// Status describes what a tree knows about an annotated element.
type Status uint8

const (
	// Unknown means the element never belonged to this tree's lineage.
	Unknown Status = iota
	// Live means the element is present in the tree.
	Live
	// Removed means an earlier edit of this tree lineage deleted the element.
	Removed
)

func (s Status) String() string {
	switch s {
	case Live:
		return "Live"
	case Removed:
		return "Removed"
	default:
		return "Unknown"
	}
}

// Tree is an immutable syntax tree. Edits return a new Tree and leave the
// receiver untouched; callers thread the returned tree forward themselves.
//
// A Tree indexes every element by ID when created, so annotation lookups are
// map probes. Elements that disappear between versions are tombstoned.
type Tree struct {
	root    *Node
	index   map[ID]Element
	removed map[ID]struct{}
}

// NewTree indexes root and returns a tree for it.
func NewTree(root *Node) *Tree {
	return newTree(root, nil)
}

func newTree(root *Node, removed map[ID]struct{}) *Tree {
	t := &Tree{
		root:    root,
		index:   map[ID]Element{},
		removed: removed,
	}
	if t.removed == nil {
		t.removed = map[ID]struct{}{}
	}
	if root != nil {
		root.walk(func(e Element) {
			t.index[e.ID()] = e
		})
	}
	return t
}

// derive builds the next version of the tree. Anything indexed by t that is
// absent from root is tombstoned; anything that comes back is revived.
func (t *Tree) derive(root *Node) *Tree {
	removed := maps.Clone(t.removed)
	next := newTree(root, removed)
	for id := range t.index {
		if _, ok := next.index[id]; !ok {
			next.removed[id] = struct{}{}
		}
	}
	for id := range next.index {
		delete(next.removed, id)
	}
	return next
}

func (t *Tree) Root() *Node { return t.root }

// Lookup returns the element an annotation refers to in this version of the tree.
// It reports false if the element was removed or never belonged to the tree.
func (t *Tree) Lookup(a Annotation) (Element, bool) {
	if t == nil || a.IsZero() {
		return nil, false
	}
	e, ok := t.index[a.id]
	return e, ok
}

// LookupToken is Lookup restricted to tokens.
func (t *Tree) LookupToken(a Annotation) (Token, bool) {
	e, ok := t.Lookup(a)
	if !ok {
		return Token{}, false
	}
	tok, ok := e.(Token)
	return tok, ok
}

// LookupNode is Lookup restricted to nodes.
func (t *Tree) LookupNode(a Annotation) (*Node, bool) {
	e, ok := t.Lookup(a)
	if !ok {
		return nil, false
	}
	n, ok := e.(*Node)
	return n, ok
}

// Status reports whether the annotated element is live, was removed, or is unknown.
func (t *Tree) Status(a Annotation) Status {
	if t == nil || a.IsZero() {
		return Unknown
	}
	if _, ok := t.index[a.id]; ok {
		return Live
	}
	if _, ok := t.removed[a.id]; ok {
		return Removed
	}
	return Unknown
}

// ReplaceNode returns a new tree where the node with the given ID is
// replaced by the result of fn. fn receives the current version of the node.
// A nil result removes the node; the root can not be removed this way.
func (t *Tree) ReplaceNode(id ID, fn func(*Node) *Node) (*Tree, error) {
	if _, ok := t.index[id].(*Node); !ok {
		return nil, fmt.Errorf("replace node %d: %w", id, ErrNotFound)
	}
	root, _ := t.root.replaceNode(id, fn)
	if root == nil {
		return nil, ErrRootRemoval
	}
	return t.derive(root), nil
}

// ReplaceToken returns a new tree where the token sharing tok's ID is replaced by tok.
func (t *Tree) ReplaceToken(tok Token) (*Tree, error) {
	if _, ok := t.index[tok.id].(Token); !ok {
		return nil, fmt.Errorf("replace token %d: %w", tok.id, ErrNotFound)
	}
	root, _ := t.root.replaceToken(tok.id, tok)
	return t.derive(root), nil
}

// RemoveNode returns a new tree without the node with the given ID. The node
// and everything below it are tombstoned.
func (t *Tree) RemoveNode(id ID) (*Tree, error) {
	if _, ok := t.index[id].(*Node); !ok {
		return nil, fmt.Errorf("remove node %d: %w", id, ErrNotFound)
	}
	if t.root.id == id {
		return nil, ErrRootRemoval
	}
	root, _ := t.root.replaceNode(id, func(*Node) *Node { return nil })
	return t.derive(root), nil
}

func (t *Tree) String() string {
	if t == nil || t.root == nil {
		return ""
	}
	return t.root.String()
}

// Render writes the full text of e, trivia included, to w.
func Render(w io.Writer, e Element) error {
	_, err := io.WriteString(w, e.String())
	return err
}
