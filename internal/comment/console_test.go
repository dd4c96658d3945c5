package comment

import (
	"go/ast"
	"go/token"
	"path/filepath"
	"testing"

	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/tools/go/packages"
)

func TestAddComment(t *testing.T) {
	fset := token.NewFileSet()
	file := fset.AddFile(filepath.Join("home", "user", "app", "main.go"), -1, 100)
	file.SetLines([]int{0, 10, 20})

	dstNode1 := &dst.Ident{Name: "hi"}
	astNode1 := &ast.Ident{Name: "hi", NamePos: file.Pos(13)}

	pkg := &decorator.Package{
		Decorator: &decorator.Decorator{
			Map: decorator.Map{
				Ast: decorator.AstMap{
					Nodes: map[dst.Node]ast.Node{
						dstNode1: astNode1,
					},
				},
			},
		},
		Package: &packages.Package{
			Fset: fset,
		},
	}

	core, logs := observer.New(zap.InfoLevel)
	testPrinter := &ConsolePrinter{appRoot: "app", logger: zap.New(core)}

	testPrinter.Add(pkg, dstNode1, InfoHeader, "message", "additionalInfo")
	testPrinter.Add(nil, &dst.Ident{Name: "other"}, WarnHeader, "warning")
	require.Len(t, testPrinter.records, 2)
	assert.Equal(t, filepath.Join("app", "main.go")+" 2:4", testPrinter.records[0].position)
	assert.Equal(t, "", testPrinter.records[1].position)

	testPrinter.Flush()
	assert.Empty(t, testPrinter.records)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "message", entries[0].Message)
	assert.Equal(t, zap.InfoLevel, entries[0].Level)
	assert.Equal(t, map[string]interface{}{
		"header":   InfoHeader,
		"position": filepath.Join("app", "main.go") + " 2:4",
		"details":  []interface{}{"additionalInfo"},
	}, entries[0].ContextMap())
	assert.Equal(t, zap.WarnLevel, entries[1].Level)
}

func TestNilPrinter(t *testing.T) {
	var p *ConsolePrinter
	p.Add(nil, nil, InfoHeader, "ignored")
	p.Flush()

	printer = nil
	WriteAll()
}

func TestLocalize(t *testing.T) {
	sep := string(filepath.Separator)
	assert.Equal(t, "app"+sep+"pkg"+sep+"a.go", localize(sep+"src"+sep+"app"+sep+"pkg"+sep+"a.go", "app"))
	assert.Equal(t, sep+"elsewhere"+sep+"a.go", localize(sep+"elsewhere"+sep+"a.go", "app"))
}
