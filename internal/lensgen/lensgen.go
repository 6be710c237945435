package lensgen

import (
	"bytes"
	"errors"
	"fmt"
	"go/ast"
	"go/format"
	"go/printer"
	"go/token"
	"io"
	"maps"
	"path/filepath"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"golang.org/x/tools/go/ast/astutil"
	"golang.org/x/tools/go/packages"

	"github.com/chrisdone/basic-lens/internal/codefmt"
	"github.com/chrisdone/basic-lens/internal/lensgen/parse"
	"github.com/chrisdone/basic-lens/internal/typeinfo"
)

// Lensgen generates lens code for the target package. Call [Lensgen.Build]
// and then [Lensgen.Generate] to get the generated code. All potential errors
// are returned by Build. Once Build succeeds, Generate never fails.
type Lensgen struct {
	p   *parse.Parser
	ns  codefmt.NS
	buf *bytes.Buffer
	w   *codefmt.Writer

	// lenses maps directive positions to built lenses, in source order.
	lenses *linkedhashmap.Map

	// segments are the shared segment lenses backing dotted paths, in the
	// order they were first needed. implicits indexes them by receiver type
	// and field name so that paths traversing the same field share one.
	segments  []*segment
	implicits *typeinfo.Lookup[*segment]
}

// New creates a new [Lensgen] for the given package. If the package does not
// satisfy the requirements, an error is returned. The package must have its
// Syntax, Types and TypesInfo. And it must not have any errors.
func New(pkg *packages.Package) (*Lensgen, error) {
	parser, err := parse.New(pkg)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	return &Lensgen{
		p:         parser,
		ns:        codefmt.NewNS(pkg.Types.Scope()),
		buf:       &buf,
		w:         codefmt.NewWriter(&buf, pkg),
		lenses:    linkedhashmap.New(),
		implicits: typeinfo.NewLookup[*segment](),
	}, nil
}

// Build prepares code generation by parsing directives and resolving their
// field paths. All potential errors are returned by this method. It must be
// called before [Lensgen.Generate].
func (g *Lensgen) Build() error {
	ds, err := g.p.ParseDirectives()
	if err != nil {
		return err
	}
	if len(ds) == 0 {
		// No lens directives found
		return nil
	}

	var errs error
	for _, d := range ds {
		lens, err := g.build(d)
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		g.lenses.Put(d.Pos(), lens)
	}
	return errs
}

// Generate generates lens code for the package. It must be called after
// [Lensgen.Build] succeeds.
func (g *Lensgen) Generate() []byte {
	if g.lenses.Size() == 0 {
		return nil
	}

	g.writeLensCode()
	g.mergeCode()
	return g.frameCode()
}

// writeLensCode writes declaration code for directive lenses and the shared
// segment lenses backing dotted paths.
func (g *Lensgen) writeLensCode() {
	lensPkg := g.w.Import("github.com/chrisdone/basic-lens", "lens")

	g.w.Printf("// basic-lens: field lenses\n\n")
	g.lenses.Each(func(_, value any) {
		lens := value.(*fieldLens)
		w := g.w.WithNS(maps.Clone(g.ns))
		lens.WriteDefineCode(w, lensPkg)
		g.w.Printf("\n")
	})

	if len(g.segments) != 0 {
		g.w.Printf("// basic-lens: shared segment lenses\n\n")
		for _, seg := range g.segments {
			w := g.w.WithNS(maps.Clone(g.ns))
			seg.WriteDefineCode(w, lensPkg)
			g.w.Printf("\n")
		}
	}
}

// mergeCode copies non-directive code from the source files tagged with
// "//go:build lens". Directive declarations are erased because their variables
// are redeclared by the generated lenses.
func (g *Lensgen) mergeCode() {
	for _, file := range g.p.LensGoFiles() {
		name := filepath.Base(g.p.Pkg().Fset.File(file.Pos()).Name())
		first := true

		for _, decl := range file.Decls {
			if gen, ok := decl.(*ast.GenDecl); ok {
				if gen.Tok == token.IMPORT {
					// Skip import declarations in files. Required imports will
					// be collected from their usage, and then rewritten as an
					// import declaration group.
					continue
				}
			}

			if first {
				fmt.Fprintf(g.buf, "// %s:\n\n", name)
				first = false
			}

			// Erase lens directives
			decl = astutil.Apply(decl, func(c *astutil.Cursor) bool {
				spec, ok := c.Node().(*ast.ValueSpec)
				if !ok {
					return true
				}

				// Find non-directive values
				var names []*ast.Ident
				var values []ast.Expr
				for i := range spec.Names {
					if i >= len(spec.Values) {
						names = append(names, spec.Names[i])
						continue
					}

					if _, ok := g.lenses.Get(spec.Values[i].Pos()); !ok {
						names = append(names, spec.Names[i])
						values = append(values, spec.Values[i])
					}
				}

				if len(names) == 0 {
					// Input:  var ( a = lens.Field[...](...) )
					// Output: var ()
					c.Delete()
				} else {
					// Input:  var ( a, b = lens.Field[...](...), 42 )
					// Output: var ( b = 42 )
					c.Replace(&ast.ValueSpec{
						Doc:     spec.Doc,
						Names:   names,
						Type:    spec.Type,
						Values:  values,
						Comment: spec.Comment,
					})
				}

				return false
			}, nil).(ast.Decl)

			// Skip empty declarations
			if gen, ok := decl.(*ast.GenDecl); ok {
				if len(gen.Specs) == 0 {
					continue
				}
			}

			// Prevent import name conflicts when merging multiple files into one
			decl = codefmt.RewriteImports(g.w, decl)

			// Write rewritten declaration code
			printer.Fprint(g.buf, g.p.Pkg().Fset, &printer.CommentedNode{
				Node:     decl,
				Comments: file.Comments,
			})
			fmt.Fprintf(g.buf, "\n\n")
		}
	}
}

func (g *Lensgen) frameCode() []byte {
	// Prepend header code
	versionSuffix := ""
	if Version != "" {
		versionSuffix = "@" + Version
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "//go:build !lens\n")
	fmt.Fprintf(&buf, "// Code generated by github.com/chrisdone/basic-lens%s. DO NOT EDIT.\n", versionSuffix)
	fmt.Fprintf(&buf, "package %s\n", g.p.Pkg().Name)

	if len(g.w.Imports()) != 0 {
		fmt.Fprintf(&buf, "import (\n")
		for alias, imp := range g.w.Imports() {
			if imp.HasAlias {
				fmt.Fprintf(&buf, "%s %q\n", alias, imp.Path())
			} else {
				fmt.Fprintf(&buf, "%q\n", imp.Path())
			}
		}
		fmt.Fprintf(&buf, ")\n")
	}

	_, _ = io.Copy(&buf, g.buf)
	code := buf.Bytes()

	// Apply gofmt if succeeded
	if fmtCode, err := format.Source(code); err == nil {
		code = fmtCode
	}
	return code
}
