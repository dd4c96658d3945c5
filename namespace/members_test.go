package namespace

import (
	"testing"

	"github.com/newrelic/go-easy-modifiers/modifier"
	"github.com/newrelic/go-easy-modifiers/syntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddMembers_EmptyNamespace(t *testing.T) {
	ns := syntax.NewContainer(syntax.Namespace, "Jobs")
	class := syntax.NewContainer(syntax.Class, "Worker", syntax.PublicKeyword)

	got, annotations, err := AddMembers(ns, class)
	require.NoError(t, err)
	require.Len(t, annotations, 1)
	assert.Equal(t, class.ID(), annotations[0].ID())

	want := "namespace Jobs\n" +
		"{\n" +
		"    public class Worker\n" +
		"    {\n" +
		"    }\n" +
		"}\n"
	assert.Equal(t, want, got.String())

	// input is untouched
	assert.Equal(t, "namespace Jobs\n{\n}\n", ns.String())
}

func TestAddMembers_NestedThroughTree(t *testing.T) {
	ns := syntax.NewContainer(syntax.Namespace, "Jobs")
	class := syntax.NewContainer(syntax.Class, "Worker")
	ns, _, err := AddMembers(ns, class)
	require.NoError(t, err)
	tree := syntax.NewTree(syntax.NewCompilationUnit(ns))

	run := syntax.NewMethod("void", "Run").WithLeadingTrivia(syntax.TriviaList{syntax.Doc("Runs."), syntax.EndOfLine()})
	var handles []syntax.Annotation
	tree, err = tree.ReplaceNode(class.ID(), func(c *syntax.Node) *syntax.Node {
		var added *syntax.Node
		added, handles, err = AddMembers(c, run, syntax.NewField("int", "count"))
		require.NoError(t, err)
		return added
	})
	require.NoError(t, err)

	want := "namespace Jobs\n" +
		"{\n" +
		"    class Worker\n" +
		"    {\n" +
		"        /// Runs.\n" +
		"        void Run() { }\n" +
		"        int count;\n" +
		"    }\n" +
		"}\n"
	assert.Equal(t, want, tree.String())

	require.Len(t, handles, 2)
	found, ok := tree.LookupNode(handles[0])
	require.True(t, ok)
	assert.Equal(t, "        /// Runs.\n        void Run() { }\n", found.String())

	// the added member can be edited through its handle afterwards
	tree, err = tree.ReplaceNode(found.ID(), func(n *syntax.Node) *syntax.Node {
		n, _, err := modifier.MakePublic(n)
		require.NoError(t, err)
		return n
	})
	require.NoError(t, err)
	assert.Contains(t, tree.String(), "        /// Runs.\n        public void Run() { }\n")
}

func TestAddMembers_FollowsExistingIndentation(t *testing.T) {
	existing := syntax.NewField("int", "a").WithLeadingTrivia(syntax.TriviaList{syntax.Indent(2)})
	class := syntax.NewContainer(syntax.Class, "Pair").WithMembers([]*syntax.Node{existing})

	got, _, err := AddMembers(class, syntax.NewField("int", "b"))
	require.NoError(t, err)
	assert.Equal(t, "class Pair\n{\n  int a;\n  int b;\n}\n", got.String())
}

func TestAddMembers_ReplacesExistingIndentation(t *testing.T) {
	b := syntax.NewField("int", "b").WithLeadingTrivia(syntax.TriviaList{syntax.Indent(4)})
	ns := syntax.NewContainer(syntax.Namespace, "Jobs").WithMembers([]*syntax.Node{b})

	c := syntax.NewField("int", "c").WithLeadingTrivia(syntax.TriviaList{syntax.Indent(4)})
	documented := syntax.NewField("int", "d").WithLeadingTrivia(syntax.TriviaList{
		syntax.Indent(2), syntax.Doc("Count."), syntax.EndOfLine(), syntax.Indent(2),
	})

	got, _, err := AddMembers(ns, c, documented)
	require.NoError(t, err)

	want := "namespace Jobs\n" +
		"{\n" +
		"    int b;\n" +
		"    int c;\n" +
		"    /// Count.\n" +
		"    int d;\n" +
		"}\n"
	assert.Equal(t, want, got.String())
}

func TestAddMembers_KeepsRelativeIndentation(t *testing.T) {
	inner := syntax.NewField("int", "x").WithLeadingTrivia(syntax.TriviaList{syntax.Indent(4)})
	class := syntax.NewContainer(syntax.Class, "Inner").WithMembers([]*syntax.Node{inner})
	require.Equal(t, "class Inner\n{\n    int x;\n}\n", class.String())

	unit, _, err := AddMembers(syntax.NewCompilationUnit(), class)
	require.NoError(t, err)
	assert.Equal(t, "class Inner\n{\n    int x;\n}\n", unit.String())

	ns, _, err := AddMembers(syntax.NewContainer(syntax.Namespace, "Jobs"), class)
	require.NoError(t, err)
	want := "namespace Jobs\n" +
		"{\n" +
		"    class Inner\n" +
		"    {\n" +
		"        int x;\n" +
		"    }\n" +
		"}\n"
	assert.Equal(t, want, ns.String())
}

func TestInsertMembers_EndsPreviousLine(t *testing.T) {
	// a member without a trailing newline would share a line with the next one
	a := syntax.NewNode(syntax.Field, syntax.Parts{
		Header: []syntax.Token{
			syntax.Word("int").WithLeadingTrivia(syntax.Indent(4)).WithTrailingTrivia(syntax.Space()),
			syntax.Ident("a"),
			syntax.Punct(";"),
		},
	})
	class := syntax.NewContainer(syntax.Class, "Pair").WithMembers([]*syntax.Node{a})
	got, _, err := InsertMembers(class, 1, syntax.NewField("int", "b"))
	require.NoError(t, err)
	assert.Equal(t, "class Pair\n{\n    int a;\n    int b;\n}\n", got.String())

	first, _, err := InsertMembers(got, 0, syntax.NewField("int", "z"))
	require.NoError(t, err)
	assert.Equal(t, "class Pair\n{\n    int z;\n    int a;\n    int b;\n}\n", first.String())
}

func TestInsertMembers_Errors(t *testing.T) {
	_, _, err := AddMembers(syntax.NewMethod("void", "Run"), syntax.NewField("int", "x"))
	assert.ErrorIs(t, err, ErrNotContainer)

	_, _, err = InsertMembers(syntax.NewContainer(syntax.Class, "C"), 3, syntax.NewField("int", "x"))
	assert.Error(t, err)
}

func TestAddMembers_CompilationUnit(t *testing.T) {
	unit := syntax.NewCompilationUnit()
	got, _, err := AddMembers(unit, syntax.NewContainer(syntax.Namespace, "A"))
	require.NoError(t, err)
	assert.Equal(t, "namespace A\n{\n}\n", got.String())
}
