package syntax

// Kind identifies the category of a token.
type Kind uint8

const (
	// Invalid is the zero Kind and never names a real token.
	Invalid Kind = iota
	Identifier
	Punctuation

	// modifier keywords
	PublicKeyword
	PrivateKeyword
	ProtectedKeyword
	InternalKeyword
	StaticKeyword
	AbstractKeyword
	VirtualKeyword
	OverrideKeyword
	SealedKeyword
	ReadonlyKeyword
	ConstKeyword
	ExternKeyword
	UnsafeKeyword
	VolatileKeyword
	AsyncKeyword
	PartialKeyword
	NewKeyword

	// declaration keywords
	ClassKeyword
	StructKeyword
	InterfaceKeyword
	NamespaceKeyword
	VoidKeyword
)

var keywords = map[string]Kind{
	"public":    PublicKeyword,
	"private":   PrivateKeyword,
	"protected": ProtectedKeyword,
	"internal":  InternalKeyword,
	"static":    StaticKeyword,
	"abstract":  AbstractKeyword,
	"virtual":   VirtualKeyword,
	"override":  OverrideKeyword,
	"sealed":    SealedKeyword,
	"readonly":  ReadonlyKeyword,
	"const":     ConstKeyword,
	"extern":    ExternKeyword,
	"unsafe":    UnsafeKeyword,
	"volatile":  VolatileKeyword,
	"async":     AsyncKeyword,
	"partial":   PartialKeyword,
	"new":       NewKeyword,
	"class":     ClassKeyword,
	"struct":    StructKeyword,
	"interface": InterfaceKeyword,
	"namespace": NamespaceKeyword,
	"void":      VoidKeyword,
}

var keywordText = func() map[Kind]string {
	m := make(map[Kind]string, len(keywords))
	for text, kind := range keywords {
		m[kind] = text
	}
	return m
}()

// KindOf returns the keyword kind spelled by text, or Invalid.
func KindOf(text string) Kind {
	return keywords[text]
}

// IsKeyword reports whether k is a keyword kind.
func (k Kind) IsKeyword() bool {
	_, ok := keywordText[k]
	return ok
}

// IsModifier reports whether k is a keyword that may appear in a modifier list.
func (k Kind) IsModifier() bool {
	return k >= PublicKeyword && k <= NewKeyword
}

func (k Kind) String() string {
	if text, ok := keywordText[k]; ok {
		return text
	}
	switch k {
	case Identifier:
		return "Identifier"
	case Punctuation:
		return "Punctuation"
	default:
		return "Invalid"
	}
}

type NodeKind uint8

const (
	CompilationUnit NodeKind = iota
	Namespace
	Class
	Struct
	Interface
	Method
	Field
	Property
)

func (k NodeKind) String() string {
	switch k {
	case CompilationUnit:
		return "CompilationUnit"
	case Namespace:
		return "Namespace"
	case Class:
		return "Class"
	case Struct:
		return "Struct"
	case Interface:
		return "Interface"
	case Method:
		return "Method"
	case Field:
		return "Field"
	case Property:
		return "Property"
	default:
		return "Unknown"
	}
}

// IsContainer reports whether nodes of this kind hold member declarations.
func (k NodeKind) IsContainer() bool {
	switch k {
	case CompilationUnit, Namespace, Class, Struct, Interface:
		return true
	default:
		return false
	}
}
