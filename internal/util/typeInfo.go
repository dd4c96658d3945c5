package util

import (
	"go/ast"
	"go/token"
	"go/types"

	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
)

// ObjectOf returns the types.Object an identifier defines or uses, according
// to the go types info of its package.
func ObjectOf(ident *dst.Ident, pkg *decorator.Package) types.Object {
	if ident == nil || pkg == nil || pkg.Package == nil || pkg.Decorator == nil || pkg.TypesInfo == nil {
		return nil
	}
	var astIdent *ast.Ident
	switch v := pkg.Decorator.Ast.Nodes[ident].(type) {
	case *ast.SelectorExpr:
		if v != nil {
			astIdent = v.Sel
		}
	case *ast.Ident:
		astIdent = v
	}
	if astIdent == nil {
		return nil
	}
	return pkg.TypesInfo.ObjectOf(astIdent)
}

// Position returns the source position of a dst node, or nil if the node was
// not produced by the decorator of pkg.
func Position(node dst.Node, pkg *decorator.Package) *token.Position {
	if node == nil || pkg == nil || pkg.Package == nil || pkg.Decorator == nil {
		return nil
	}

	astNode := pkg.Decorator.Ast.Nodes[node]
	if astNode == nil {
		return nil
	}

	pos := pkg.Fset.Position(astNode.Pos())
	return &pos
}

// DeclName returns the identifier a package level declaration defines under
// name, or nil when the declaration does not define it.
func DeclName(decl dst.Decl, name string) *dst.Ident {
	switch v := decl.(type) {
	case *dst.FuncDecl:
		if v.Recv == nil && v.Name.Name == name {
			return v.Name
		}
	case *dst.GenDecl:
		for _, spec := range v.Specs {
			switch s := spec.(type) {
			case *dst.TypeSpec:
				if s.Name.Name == name {
					return s.Name
				}
			case *dst.ValueSpec:
				for _, n := range s.Names {
					if n.Name == name {
						return n
					}
				}
			}
		}
	}
	return nil
}
