package modifier

import (
	"fmt"
	"maps"
	"slices"

	"github.com/newrelic/go-easy-modifiers/syntax"
)

// Category groups modifier kinds for ordering and exclusivity.
type Category uint8

const (
	// Access modifiers control visibility: public, private, protected, internal.
	Access Category = iota
	// Static is the storage modifier.
	Static
	// Other covers every remaining modifier keyword.
	Other
)

var categoryNames = map[string]Category{
	"access": Access,
	"static": Static,
	"other":  Other,
}

// ParseCategory returns the category spelled by name.
func ParseCategory(name string) (Category, error) {
	c, ok := categoryNames[name]
	if !ok {
		return 0, &ConfigError{Value: name, Err: ErrInvalidCategory}
	}
	return c, nil
}

func (c Category) String() string {
	switch c {
	case Access:
		return "access"
	case Static:
		return "static"
	case Other:
		return "other"
	default:
		return "unknown"
	}
}

// Rank orders categories: access < static < other.
func (c Category) Rank() int {
	return int(c)
}

// Exclusive reports whether at most one kind of the category may remain
// after normalization.
func (c Category) Exclusive() bool {
	return c == Access || c == Static
}

// Table is the canonical ordering table. Only kinds in the table may be
// inserted or normalized.
type Table struct {
	categories map[syntax.Kind]Category
}

// NewTable builds a table from kind categories. Every kind must be a modifier keyword.
func NewTable(categories map[syntax.Kind]Category) (Table, error) {
	for kind, c := range categories {
		if !kind.IsModifier() {
			return Table{}, &ConfigError{Value: kind.String(), Err: ErrInvalidKind}
		}
		if c > Other {
			return Table{}, &ConfigError{Value: fmt.Sprintf("%s=%d", kind, c), Err: ErrInvalidCategory}
		}
	}
	return Table{categories: maps.Clone(categories)}, nil
}

// DefaultTable returns the canonical ordering table.
func DefaultTable() Table {
	return Table{categories: map[syntax.Kind]Category{
		syntax.PublicKeyword:    Access,
		syntax.PrivateKeyword:   Access,
		syntax.ProtectedKeyword: Access,
		syntax.InternalKeyword:  Access,
		syntax.StaticKeyword:    Static,
		syntax.AbstractKeyword:  Other,
		syntax.VirtualKeyword:   Other,
		syntax.OverrideKeyword:  Other,
		syntax.SealedKeyword:    Other,
		syntax.ReadonlyKeyword:  Other,
		syntax.ConstKeyword:     Other,
		syntax.ExternKeyword:    Other,
		syntax.UnsafeKeyword:    Other,
		syntax.VolatileKeyword:  Other,
		syntax.AsyncKeyword:     Other,
		syntax.PartialKeyword:   Other,
		syntax.NewKeyword:       Other,
	}}
}

// Kinds returns the kinds in the table in keyword order.
func (t Table) Kinds() []syntax.Kind {
	return slices.Sorted(maps.Keys(t.categories))
}

// Category returns the category of kind, or a ConfigError if the table does not know it.
func (t Table) Category(kind syntax.Kind) (Category, error) {
	c, ok := t.categories[kind]
	if !ok {
		return 0, &ConfigError{Value: kind.String(), Err: ErrInvalidKind}
	}
	return c, nil
}

// rank of an existing modifier token. Tokens the table does not know sort with Other.
func (t Table) rank(kind syntax.Kind) int {
	if c, ok := t.categories[kind]; ok {
		return c.Rank()
	}
	return Other.Rank()
}

// Locate returns the index in [0, len(modifiers)] at which a modifier of kind
// belongs: after every modifier of equal or lower rank and before the first
// modifier of higher rank.
func (t Table) Locate(modifiers []syntax.Token, kind syntax.Kind) (int, error) {
	c, err := t.Category(kind)
	if err != nil {
		return 0, err
	}
	for i, m := range modifiers {
		if t.rank(m.Kind()) > c.Rank() {
			return i, nil
		}
	}
	return len(modifiers), nil
}
