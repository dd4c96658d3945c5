package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testApp = `package app

// worker processes jobs.
type worker struct {
	count int
}

// newWorker creates a worker.
func newWorker() *worker { return &worker{} }

func (w *worker) run() int {
	worker := 1
	return w.count + worker
}

var limit = newWorker()

func helper() {}

func Helper() {}
`

// createTestApp writes a single file module and loads it.
// loading runs the go command, so this is skipped in short mode
func createTestApp(t *testing.T, contents string) (string, []*decorator.Package) {
	if testing.Short() {
		t.Skip("Skipping package loading tests in short mode")
	}

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module example.com/app\n\ngo 1.22\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.go"), []byte(contents), 0644))

	pkgs, err := Load(dir)
	require.NoError(t, err)
	require.Len(t, pkgs, 1)
	return dir, pkgs
}

func diff(t *testing.T, m *Manager) string {
	t.Helper()
	buf := &bytes.Buffer{}
	require.NoError(t, m.WriteDiff(buf))
	return buf.String()
}

func TestExport_RenamesDeclarationAndUses(t *testing.T) {
	dir, pkgs := createTestApp(t, testApp)
	m := NewManager(pkgs, dir, nil)

	annotations, err := m.Export("worker")
	require.NoError(t, err)
	require.Len(t, annotations, 1)

	node, ok := m.Lookup(annotations[0])
	require.True(t, ok)
	assert.Equal(t, "Worker", node.(*dst.Ident).Name)

	got := diff(t, m)
	assert.Contains(t, got, "app.go")
	assert.Contains(t, got, "+// Worker processes jobs.")
	assert.Contains(t, got, "+type Worker struct {")
	assert.Contains(t, got, "+func newWorker() *Worker { return &Worker{} }")
	assert.Contains(t, got, "+func (w *Worker) run() int {")
	assert.NotContains(t, got, "+\tworker := 1", "the local variable is a different object")
	assert.Equal(t, 1, m.Modified())
}

func TestExport_Idempotent(t *testing.T) {
	dir, pkgs := createTestApp(t, testApp)
	m := NewManager(pkgs, dir, nil)

	first, err := m.Export("newWorker")
	require.NoError(t, err)
	before := diff(t, m)

	second, err := m.Export("NewWorker")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, before, diff(t, m))
	assert.Contains(t, before, "+// NewWorker creates a worker.")
	assert.Contains(t, before, "+var limit = NewWorker()")
}

func TestExport_AlreadyExportedLeavesFileAlone(t *testing.T) {
	dir, pkgs := createTestApp(t, testApp)
	m := NewManager(pkgs, dir, nil)

	annotations, err := m.Export("Helper")
	require.NoError(t, err)
	require.Len(t, annotations, 1)
	assert.Equal(t, 0, m.Modified())
	assert.Empty(t, diff(t, m))
}

func TestExport_NameConflict(t *testing.T) {
	dir, pkgs := createTestApp(t, testApp)
	m := NewManager(pkgs, dir, nil)

	_, err := m.Export("helper")
	assert.ErrorIs(t, err, ErrNameConflict)
	assert.Contains(t, diff(t, m), "+// EXPORT WARN: helper can not be exported as Helper")
}

func TestExport_NotDeclared(t *testing.T) {
	dir, pkgs := createTestApp(t, testApp)
	m := NewManager(pkgs, dir, nil)

	tests := []string{"missing", "run", "count"}
	for _, name := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := m.Export(name)
			assert.ErrorIs(t, err, ErrNotDeclared)
		})
	}
}

func TestLookup_RemovedNode(t *testing.T) {
	dir, pkgs := createTestApp(t, testApp)
	m := NewManager(pkgs, dir, nil)

	annotations, err := m.Export("limit")
	require.NoError(t, err)
	require.Len(t, annotations, 1)

	file := pkgs[0].Syntax[0]
	file.Decls = file.Decls[:len(file.Decls)-3]

	_, ok := m.Lookup(annotations[0])
	assert.False(t, ok)
	_, ok = m.Lookup(Annotation{})
	assert.False(t, ok)
}

func TestExportedName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "worker", want: "Worker"},
		{in: "x", want: "X"},
		{in: "élan", want: "Élan"},
		{in: "_hidden", want: "X_hidden"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, exportedName(tt.in))
		})
	}
}

func TestRewriteDoc(t *testing.T) {
	tests := []struct {
		name  string
		start dst.Decorations
		want  dst.Decorations
	}{
		{
			name:  "leading word",
			start: dst.Decorations{"// worker processes jobs."},
			want:  dst.Decorations{"// Worker processes jobs."},
		},
		{
			name:  "only word",
			start: dst.Decorations{"//worker"},
			want:  dst.Decorations{"//Worker"},
		},
		{
			name:  "prefix of a longer word",
			start: dst.Decorations{"// workers are pooled."},
			want:  dst.Decorations{"// workers are pooled."},
		},
		{
			name:  "only the first line",
			start: dst.Decorations{"// A pool.", "// worker is reused."},
			want:  dst.Decorations{"// A pool.", "// worker is reused."},
		},
		{
			name: "no comments",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decs := &dst.NodeDecs{Start: tt.start}
			rewriteDoc(decs, "worker", "Worker")
			assert.Equal(t, tt.want, decs.Start)
		})
	}
}
