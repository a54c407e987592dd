package config

import (
	"go/ast"
	"go/doc"
	"go/parser"
	"go/token"
	"io/fs"
	"strings"
	"testing"
)

// Exported names in these packages are read from the godoc of the game
// tooling, so each one carries a comment.
func TestExportedNamesDocumented(t *testing.T) {
	for _, dir := range []string{".", "../engine/shop"} {
		fset := token.NewFileSet()
		pkgs, err := parser.ParseDir(fset, dir, func(fi fs.FileInfo) bool {
			return !strings.HasSuffix(fi.Name(), "_test.go")
		}, parser.ParseComments)
		if err != nil {
			t.Fatalf("parse %s: %v", dir, err)
		}
		for _, pkg := range pkgs {
			for _, name := range undocumented(doc.New(pkg, dir, 0)) {
				t.Errorf("%s: %s has no doc comment", dir, name)
			}
		}
	}
}

func undocumented(p *doc.Package) []string {
	var out []string
	values := func(vs []*doc.Value) {
		for _, v := range vs {
			if v.Doc == "" {
				out = append(out, strings.Join(v.Names, ", "))
			}
		}
	}
	funcs := func(list []*doc.Func) {
		for _, f := range list {
			if f.Doc == "" && ast.IsExported(f.Name) {
				out = append(out, f.Name)
			}
		}
	}
	values(p.Consts)
	values(p.Vars)
	funcs(p.Funcs)
	for _, typ := range p.Types {
		if typ.Doc == "" {
			out = append(out, typ.Name)
		}
		values(typ.Consts)
		values(typ.Vars)
		funcs(typ.Funcs)
		funcs(typ.Methods)
	}
	return out
}
