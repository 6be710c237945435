package lensgen

import (
	"fmt"
	"go/types"
	"strings"

	"github.com/chrisdone/basic-lens/internal/codefmt"
	"github.com/chrisdone/basic-lens/internal/lensgen/parse"
	"github.com/chrisdone/basic-lens/internal/typeinfo"
)

// fieldLens is a directive resolved against its receiver type: the chain of
// struct fields the path traverses, ready to be written out.
type fieldLens struct {
	d    parse.Directive
	hops []hop
	segs []*segment // shared segment lenses; nil for single-field paths
}

// hop is one step of a field path: a struct type and the focused field on it.
type hop struct {
	recv  typeinfo.Type
	field *types.Var
}

// segment is a lens for a single hop of a dotted path. It is declared once
// under an implicit name and reused by every path traversing the same field.
type segment struct {
	hop
	name string
}

// build resolves the directive's field path into hops, checks the declared
// focus type, and allocates shared segment lenses for dotted paths.
func (g *Lensgen) build(d parse.Directive) (*fieldLens, error) {
	lens := &fieldLens{d: d}

	cur := d.Recv
	for i, seg := range d.Path {
		if !cur.IsStruct() {
			if i == 0 {
				return nil, codefmt.Errorf(g.p, d.PathExpr(), "lens receiver %t is not a struct", cur)
			}
			return nil, codefmt.Errorf(g.p, d.PathExpr(), "cannot focus %s: %t is not a struct", seg, cur)
		}

		field, ok := cur.StructField(seg)
		if !ok {
			if names := cur.FieldNames(); len(names) != 0 {
				return nil, codefmt.Errorf(g.p, d.PathExpr(), "unknown field %s in %t\n\thave: %s",
					seg, cur, strings.Join(names, ", "))
			}
			return nil, codefmt.Errorf(g.p, d.PathExpr(), "unknown field %s in %t", seg, cur)
		}

		if !field.Exported() && field.Pkg() != g.p.Pkg().Types {
			return nil, codefmt.Errorf(g.p, d.PathExpr(), "cannot focus unexported field %s of %t", seg, cur)
		}

		lens.hops = append(lens.hops, hop{recv: cur, field: field})
		cur = typeinfo.TypeOf(field.Type())
	}

	if !cur.Identical(d.Focus) {
		return nil, codefmt.Errorf(g.p, d.PathExpr(), "field %s of %t is %t, not %t",
			strings.Join(d.Path, "."), d.Recv, cur, d.Focus)
	}

	// A dotted path becomes a composition of segment lenses. Segments are
	// shared: two paths through the same field reuse one declaration.
	if len(lens.hops) > 1 {
		for _, h := range lens.hops {
			seg, ok := g.implicits.Get(h.recv, h.field.Name())
			if !ok {
				base := h.recv.Name()
				if base == "" {
					base = "struct"
				}
				name := g.ns.Name(fmt.Sprintf("lens_%s_%s", base, h.field.Name()))
				seg = &segment{hop: h, name: name}
				g.implicits.Put(h.recv, h.field.Name(), seg)
				g.segments = append(g.segments, seg)
			}
			lens.segs = append(lens.segs, seg)
		}
	}

	return lens, nil
}

// WriteDefineCode writes the variable declaration for the directive lens. A
// single-field path is declared as a lens literal; a dotted path is declared
// as a composition of its segment lenses.
func (lens *fieldLens) WriteDefineCode(w *codefmt.Writer, lensPkg string) {
	if lens.d.Doc != nil {
		for _, c := range lens.d.Doc.List {
			w.Printf("%s\n", c.Text)
		}
	}

	if len(lens.hops) == 1 {
		writeHopLens(w, lensPkg, lens.d.Name(), lens.hops[0])
		return
	}

	names := make([]string, len(lens.segs))
	for i, seg := range lens.segs {
		names[i] = seg.name
	}
	w.Printf("var %s = %s\n", lens.d.Name(), composeExpr(lensPkg, names))
}

// WriteDefineCode writes the variable declaration for a shared segment lens.
func (seg *segment) WriteDefineCode(w *codefmt.Writer, lensPkg string) {
	writeHopLens(w, lensPkg, seg.name, seg.hop)
}

// composeExpr nests Compose calls right-associatively over the given lens
// names.
func composeExpr(lensPkg string, names []string) string {
	if len(names) == 1 {
		return names[0]
	}
	return fmt.Sprintf("%s.Compose(%s, %s)", lensPkg, names[0], composeExpr(lensPkg, names[1:]))
}

// writeHopLens writes a lens literal focusing one struct field. The literal
// reads the field, applies the peeked step, and maps over the wrapped result
// to rebuild a struct equal to the source except for that field. Keeping the
// shape this rigid is what makes the lens laws hold by construction.
func writeHopLens(w *codefmt.Writer, lensPkg, name string, h hop) {
	ftyp := typeinfo.TypeOf(h.field.Type())

	peek := w.Name("peek")
	s := w.Name("s")
	v := w.Name("v")
	out := w.Name("out")

	w.Printf("var %s = %s.Lens[%t, %t, %t, %t](\n", name, lensPkg, h.recv, h.recv, ftyp, ftyp)
	w.Printf("\tfunc(%s func(%t) %s.Functor, %s %t) %s.Functor {\n", peek, ftyp, lensPkg, s, h.recv, lensPkg)
	w.Printf("\t\treturn %s(%s.%s).Map(func(%s any) any {\n", peek, s, h.field.Name(), v)
	w.Printf("\t\t\t%s := %s\n", out, s)
	w.Printf("\t\t\t%s.%s = %s.(%t)\n", out, h.field.Name(), v, ftyp)
	w.Printf("\t\t\treturn %s\n", out)
	w.Printf("\t\t})\n")
	w.Printf("\t})\n")
}
