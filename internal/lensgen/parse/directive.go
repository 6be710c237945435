package parse

import (
	"errors"
	"go/ast"
	"go/constant"
	"go/token"
	"go/types"
	"iter"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/chrisdone/basic-lens/internal/codefmt"
	"github.com/chrisdone/basic-lens/internal/typeinfo"
)

// Directive represents one lens declaration made by lens.Field, carrying the
// receiver type, the declared focus type, and the field path to resolve.
type Directive struct {
	Recv  typeinfo.Type // receiver struct type (S)
	Focus typeinfo.Type // declared focus type (A)
	Path  []string      // field path segments

	name     string
	pathExpr ast.Expr

	pkg *packages.Package
	pos token.Pos

	Doc     *ast.CommentGroup
	Comment *ast.CommentGroup
}

// Pkg returns the package where the directive is called. Directive implements
// [codefmt.Pkger] by this method.
func (d Directive) Pkg() *packages.Package { return d.pkg }

// Pos returns the token position where the directive is called. Directive
// implements [codefmt.Poser] by this method.
func (d Directive) Pos() token.Pos { return d.pos }

// Name returns the name of the variable that holds the directive. The
// generated lens is declared under the same name.
func (d Directive) Name() string { return d.name }

// PathExpr returns the path argument expression, for diagnostics.
func (d Directive) PathExpr() ast.Expr { return d.pathExpr }

// String returns a string representation of the directive. For example,
// `lens.Field[Person, int]("Age")`.
func (d Directive) String() string {
	var buf strings.Builder
	buf.WriteString("lens.Field")
	codefmt.Fprintf(d, &buf, "[%t, %t](%q)", d.Recv, d.Focus, strings.Join(d.Path, "."))
	return buf.String()
}

// ParseDirectives parses all [Directive]s from the AST, in source order.
func (p *Parser) ParseDirectives() ([]Directive, error) {
	var errs error
	var ds []Directive

	for _, file := range p.LensGoFiles() {
		for d, err := range p.parseDirectivesInFile(file) {
			if err != nil {
				errs = errors.Join(errs, err)
				continue
			}
			ds = append(ds, d)
		}
	}

	if errs != nil {
		return nil, errs
	}
	return ds, nil
}

// parseDirectivesInFile parses and yields [Directive]s in the given file.
func (p *Parser) parseDirectivesInFile(file *ast.File) iter.Seq2[Directive, error] {
	return func(yield func(Directive, error) bool) {
		for _, decl := range file.Decls {
			gen, ok := decl.(*ast.GenDecl)
			if !ok {
				continue
			}

			for _, spec := range gen.Specs {
				val, ok := spec.(*ast.ValueSpec)
				if !ok {
					continue
				}

				if len(val.Names) != len(val.Values) {
					// Directives return exactly one value, so an assignment
					// like `a, b = lens.Field...` cannot hold one.
					continue
				}

				for i := range val.Values {
					call, ok := val.Values[i].(*ast.CallExpr)
					if !ok {
						continue
					}

					if !p.IsDirective(call, "Field") {
						continue
					}

					d, err := p.parseDirective(val.Names[i], call, val.Doc, val.Comment)
					if err != nil {
						if !yield(Directive{}, err) {
							return
						}
						continue
					}

					if !yield(d, nil) {
						return
					}
				}
			}
		}
	}
}

// parseDirective parses a [Directive] from the given AST nodes.
func (p *Parser) parseDirective(id *ast.Ident, call *ast.CallExpr, doc, comment *ast.CommentGroup) (Directive, error) {
	d := Directive{
		pkg:     p.Pkg(),
		pos:     call.Pos(),
		Doc:     doc,
		Comment: comment,
	}

	if id == nil || id.Name == "_" {
		return Directive{}, codefmt.Errorf(p, codefmt.Pos(call.Pos()), "cannot assign lens to blank identifier")
	}
	d.name = id.Name

	// The call's result type is lens.Lens[S, S, A, A]; the receiver and focus
	// types are read off its type arguments.
	named, ok := types.Unalias(p.Pkg().TypesInfo.TypeOf(call)).(*types.Named)
	if !ok || named.TypeArgs().Len() != 4 {
		return Directive{}, codefmt.Errorf(p, d, "cannot determine type arguments of %c", call)
	}
	d.Recv = typeinfo.TypeOf(named.TypeArgs().At(0))
	d.Focus = typeinfo.TypeOf(named.TypeArgs().At(2))

	// The field path must be a string constant so it can be resolved at
	// generation time.
	arg := call.Args[0]
	d.pathExpr = arg
	tv, ok := p.Pkg().TypesInfo.Types[arg]
	if !ok || tv.Value == nil || tv.Value.Kind() != constant.String {
		return Directive{}, codefmt.Errorf(p, d, "field path must be a string constant")
	}

	path := constant.StringVal(tv.Value)
	if path == "" {
		return Directive{}, codefmt.Errorf(p, d, "empty field path")
	}

	d.Path = strings.Split(path, ".")
	for _, seg := range d.Path {
		if !token.IsIdentifier(seg) {
			return Directive{}, codefmt.Errorf(p, d, "invalid field path %q", path)
		}
	}

	return d, nil
}
