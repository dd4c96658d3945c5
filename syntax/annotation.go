package syntax

import "fmt"

// Annotation is an opaque handle to one tree element. It stays valid for
// every tree derived from the tree the element was annotated in.
type Annotation struct {
	id ID
}

// Annotate returns e together with a handle for finding it again. Elements
// carry their identity from creation, so e itself is returned unchanged.
func Annotate[E Element](e E) (E, Annotation) {
	return e, Annotation{id: e.ID()}
}

// AnnotationFor returns the handle for an element identity.
func AnnotationFor(id ID) Annotation {
	return Annotation{id: id}
}

// IsZero reports whether a is the empty handle.
func (a Annotation) IsZero() bool {
	return a.id == 0
}

// ID returns the element identity recorded by a.
func (a Annotation) ID() ID {
	return a.id
}

func (a Annotation) String() string {
	return fmt.Sprintf("annotation#%d", a.id)
}
