// Package export makes package level Go identifiers public.
//
// Go has no access modifiers: an identifier is public when its name starts
// with an upper case letter. Exporting therefore renames the declaration and
// every use of it, and rewrites the leading word of its doc comment when that
// word is the old name. Like the modifier normalizer, exporting is idempotent:
// an identifier that is already exported is left alone and a handle to it is
// returned.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"go/ast"
	"go/types"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
	"github.com/dave/dst/decorator/resolver/gopackages"
	"github.com/newrelic/go-easy-modifiers/internal/comment"
	"github.com/newrelic/go-easy-modifiers/internal/util"
	godiffpatch "github.com/sourcegraph/go-diff-patch"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/go/packages"
)

const defaultPackagePattern = "./..."

var (
	// ErrNotDeclared is returned when no loaded package declares the name at package scope.
	ErrNotDeclared = errors.New("no package level declaration with that name")

	// ErrNameConflict is returned when the exported spelling is already declared.
	ErrNameConflict = errors.New("exported name is already declared")
)

// Annotation is a handle to a dst node in a loaded package. It stays valid
// until the node is removed from the package's syntax.
type Annotation struct {
	pkg  *decorator.Package
	node dst.Node
}

// IsZero reports whether a is the empty handle.
func (a Annotation) IsZero() bool {
	return a.node == nil
}

// Load decorates the packages matched by patterns, relative to dir.
func Load(dir string, patterns ...string) ([]*decorator.Package, error) {
	if len(patterns) == 0 {
		patterns = []string{defaultPackagePattern}
	}
	return decorator.Load(&packages.Config{Dir: dir, Mode: packages.LoadSyntax}, patterns...)
}

// Manager keeps the state of an export run across all loaded packages.
//
// Please access this object's data through methods rather than directly manipulating it.
type Manager struct {
	userAppPath string // path to the user's application as provided by the user
	packages    []*decorator.Package
	modified    map[*dst.File]*decorator.Package
	logger      *zap.Logger
}

// NewManager returns a manager for pkgs. Diff file names are made relative to userAppPath.
func NewManager(pkgs []*decorator.Package, userAppPath string, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		userAppPath: userAppPath,
		packages:    pkgs,
		modified:    map[*dst.File]*decorator.Package{},
		logger:      logger,
	}
}

// declaration is a package level name found in the syntax of a package.
type declaration struct {
	pkg   *decorator.Package
	file  *dst.File
	decl  dst.Decl
	spec  dst.Spec // nil for functions
	ident *dst.Ident
}

func (m *Manager) find(name string) []declaration {
	var found []declaration
	for _, pkg := range m.packages {
		for _, file := range pkg.Syntax {
			for _, decl := range file.Decls {
				ident := util.DeclName(decl, name)
				if ident == nil {
					continue
				}
				found = append(found, declaration{
					pkg:   pkg,
					file:  file,
					decl:  decl,
					spec:  specOf(decl, ident),
					ident: ident,
				})
			}
		}
	}
	return found
}

func specOf(decl dst.Decl, ident *dst.Ident) dst.Spec {
	gen, ok := decl.(*dst.GenDecl)
	if !ok {
		return nil
	}
	for _, spec := range gen.Specs {
		switch s := spec.(type) {
		case *dst.TypeSpec:
			if s.Name == ident {
				return s
			}
		case *dst.ValueSpec:
			if slices.Contains(s.Names, ident) {
				return s
			}
		}
	}
	return nil
}

// Export makes the package level identifier name public in every loaded
// package that declares it, and returns a handle to each declaring identifier.
func (m *Manager) Export(name string) ([]Annotation, error) {
	decls := m.find(name)
	if len(decls) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrNotDeclared)
	}

	annotations := make([]Annotation, 0, len(decls))
	var errs []error
	for _, d := range decls {
		a, err := m.export(d)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		annotations = append(annotations, a)
	}
	return annotations, errors.Join(errs...)
}

func (m *Manager) export(d declaration) (Annotation, error) {
	oldName := d.ident.Name
	handle := Annotation{pkg: d.pkg, node: d.ident}
	if ast.IsExported(oldName) {
		comment.Info(d.pkg, d.ident, fmt.Sprintf("%s is already exported", oldName))
		return handle, nil
	}

	newName := exportedName(oldName)
	if d.pkg.Types != nil && d.pkg.Types.Scope().Lookup(newName) != nil {
		comment.Warn(d.pkg, d.decl, fmt.Sprintf("%s can not be exported as %s", oldName, newName),
			fmt.Sprintf("%s is already declared in package %s", newName, d.pkg.Name))
		m.modified[d.file] = d.pkg
		return Annotation{}, fmt.Errorf("export %s as %s: %w", oldName, newName, ErrNameConflict)
	}

	target := util.ObjectOf(d.ident, d.pkg)
	renamed := 0
	for _, file := range d.pkg.Syntax {
		changed := false
		dst.Inspect(file, func(n dst.Node) bool {
			ident, ok := n.(*dst.Ident)
			if !ok || ident.Name != oldName {
				return true
			}
			if ident != d.ident && !sameObject(util.ObjectOf(ident, d.pkg), target) {
				return true
			}
			ident.Name = newName
			changed = true
			renamed++
			return true
		})
		if changed {
			m.modified[file] = d.pkg
		}
	}

	rewriteDoc(d.decl.Decorations(), oldName, newName)
	if d.spec != nil {
		rewriteDoc(d.spec.Decorations(), oldName, newName)
	}

	m.logger.Debug("exported identifier",
		zap.String("package", d.pkg.PkgPath),
		zap.String("from", oldName),
		zap.String("to", newName),
		zap.Int("identifiers", renamed))
	comment.Info(d.pkg, d.ident, fmt.Sprintf("exported %s as %s", oldName, newName))
	return handle, nil
}

// sameObject reports whether o is the package level object target.
func sameObject(o, target types.Object) bool {
	if o == nil || target == nil {
		return false
	}
	if o == target {
		return true
	}
	if o.Pkg() == nil || target.Pkg() == nil || o.Pkg().Path() != target.Pkg().Path() {
		return false
	}
	return o.Name() == target.Name() && o.Pkg().Scope().Lookup(o.Name()) == o
}

// exportedName upper cases the first letter of name.
func exportedName(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError || r == '_' {
		return "X" + name
	}
	return string(unicode.ToUpper(r)) + name[size:]
}

// rewriteDoc replaces oldName with newName when it is the first word of the
// first doc comment line.
func rewriteDoc(decs *dst.NodeDecs, oldName, newName string) {
	for i, line := range decs.Start {
		if !strings.HasPrefix(line, "//") {
			continue
		}
		text := strings.TrimPrefix(line, "//")
		lead := text[:len(text)-len(strings.TrimLeft(text, " \t"))]
		rest := strings.TrimPrefix(text, lead)
		if rest == oldName || strings.HasPrefix(rest, oldName+" ") {
			decs.Start[i] = "//" + lead + newName + strings.TrimPrefix(rest, oldName)
		}
		return
	}
}

// Lookup returns the node an annotation refers to, or false when the node is
// no longer part of its package's syntax.
func (m *Manager) Lookup(a Annotation) (dst.Node, bool) {
	if a.IsZero() || a.pkg == nil {
		return nil, false
	}
	found := false
	for _, file := range a.pkg.Syntax {
		dst.Inspect(file, func(n dst.Node) bool {
			if n == a.node {
				found = true
			}
			return !found
		})
		if found {
			return a.node, true
		}
	}
	return nil, false
}

// Modified returns the number of files changed so far.
func (m *Manager) Modified() int {
	return len(m.modified)
}

type patch struct {
	name string
	text string
}

// WriteDiff writes a unified diff of every modified file to w, ordered by file name.
func (m *Manager) WriteDiff(w io.Writer) error {
	files := make([]*dst.File, 0, len(m.modified))
	for file := range m.modified {
		files = append(files, file)
	}

	absAppPath, err := filepath.Abs(m.userAppPath)
	if err != nil {
		return err
	}

	patches := make([]patch, len(files))
	g := errgroup.Group{}
	for i, file := range files {
		g.Go(func() error {
			pkg := m.modified[file]
			path := pkg.Decorator.Filenames[file]
			originalFile, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			// what this file will be named in the diff file
			diffFileName, err := filepath.Rel(absAppPath, path)
			if err != nil {
				return err
			}

			r := decorator.NewRestorerWithImports(pkg.PkgPath, gopackages.New(pkg.Dir))
			modifiedFile := bytes.NewBuffer([]byte{})
			if err := r.Fprint(modifiedFile, file); err != nil {
				return err
			}

			patches[i] = patch{
				name: diffFileName,
				text: godiffpatch.GeneratePatch(diffFileName, string(originalFile), modifiedFile.String()),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	slices.SortFunc(patches, func(a, b patch) int { return strings.Compare(a.name, b.name) })
	for _, p := range patches {
		if _, err := io.WriteString(w, p.text); err != nil {
			return err
		}
	}
	return nil
}
