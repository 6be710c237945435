// Package lens provides a minimal van Laarhoven lens: a composable,
// type-changing reference into one field of a structure, plus a directive for
// generating field lenses at build time.
//
// A [Lens] is a single function value that serves three operations. [View]
// reads the focused part, [Set] replaces it, and [Over] transforms it. The
// lens itself never knows which operation is running: it only threads one
// focused step through the surrounding structure, and the operation chooses
// the [Functor] strategy that decides whether the step captures the current
// value or substitutes a new one.
//
// Lenses can be written by hand with [Make]:
//
//	type Person struct {
//		Name string
//		Age  int
//	}
//
//	var PersonAge = lens.Make(
//		func(p Person) int { return p.Age },
//		func(p Person, age int) Person { p.Age = age; return p },
//	)
//
//	lens.View(PersonAge, p)        // p.Age
//	lens.Set(PersonAge, 42, p)     // p with Age replaced
//	lens.Over(PersonAge, dbl, p)   // p with Age doubled
//
// Hand-writing one lens per field is boilerplate identical in shape for every
// field, so the [Field] directive generates them instead. Add a build
// constraint to files containing directives:
//
//	//go:build lens
//
// and declare a lens with the receiver type, the focus type, and the field
// name:
//
//	// source:
//	var PersonAge = lens.Field[Person, int]("Age")
//
//	// generated: (simplified)
//	var PersonAge = lens.Lens[Person, Person, int, int](
//		func(peek func(int) lens.Functor, s Person) lens.Functor {
//			return peek(s.Age).Map(func(v any) any {
//				out := s
//				out.Age = v.(int)
//				return out
//			})
//		})
//
// After declaring directives, run the lensgen command. It generates
// lens_gen.go for your package:
//
//	go run github.com/chrisdone/basic-lens/cmd/lensgen
//
// A directive naming a field that does not exist on the receiver struct fails
// at generation time with a diagnostic identifying the unknown field; nothing
// is checked or can fail at runtime.
//
// # Laws
//
// Every lens must satisfy three laws for all structures s and values v:
//
//	View(l, Set(l, v, s)) == v             // Get-Put
//	Set(l, View(l, s), s) == s             // Put-Get
//	Set(l, v, Set(l, v, s)) == Set(l, v, s) // Put-Put
//
// Generated lenses satisfy them by construction: they perform exactly one
// field substitution per invocation and never inspect any other field. For
// hand-written lenses the laws are the author's responsibility; the
// [github.com/chrisdone/basic-lens/pkg/lenstest] package checks them as
// properties.
//
// # Composition
//
// [Compose] nests lenses by plain function composition, so a lens into a
// nested field needs no dedicated machinery:
//
//	PersonCity := lens.Compose(PersonAddress, AddressCity)
//
// The [Field] directive accepts a dotted path ("Address.City") and generates
// such a composition.
package lens

// Functor is the behavior-strategy capability a [Lens] is generic over: a
// wrapped value supporting a structure-preserving Map. The package supplies
// the only two strategies the operations need, so user code never implements
// Functor; it appears in signatures only so that lenses can be written by
// hand.
type Functor interface {
	// Map transforms the wrapped value, or ignores the transformation,
	// depending on the strategy.
	Map(fn func(any) any) Functor

	// Unwrap recovers the value determined by the strategy.
	Unwrap() any
}

// ident is the identity strategy. Map applies the transformation and Unwrap
// recovers exactly the wrapped value. It makes a lens actually substitute,
// which drives [Set] and [Over].
type ident struct{ v any }

func (i ident) Map(fn func(any) any) Functor { return ident{fn(i.v)} }
func (i ident) Unwrap() any                  { return i.v }

// konst is the constant-capture strategy. Map ignores every transformation,
// so the value captured at the focus survives untouched to Unwrap. It makes a
// lens degenerate to extraction, which drives [View].
type konst struct{ v any }

func (k konst) Map(func(any) any) Functor { return k }
func (k konst) Unwrap() any               { return k.v }

// Lens is a reference into a value of type S focused on a part of type A,
// with the potential to change S to T by replacing the part with a B. It is
// the van Laarhoven encoding: given one focused step and a source, it threads
// the step through the structure and returns the rebuilt whole inside the
// step's strategy.
//
// A lens carries no data of its own. It is constructed once, by hand with
// [Make] or at build time by [Field], and is immutable and safe for
// concurrent use.
type Lens[S, T, A, B any] func(peek func(A) Functor, s S) Functor

// View extracts the focused part from s.
//
// The lens is driven with the constant-capture strategy: the step packages
// the currently focused value and every reassembly Map is ignored, so Unwrap
// returns exactly the captured value.
func View[S, T, A, B any](l Lens[S, T, A, B], s S) A {
	return l(func(a A) Functor { return konst{a} }, s).Unwrap().(A)
}

// Over applies fn to the focused part of s and reassembles the rest of the
// structure unchanged.
//
// The lens is driven with the identity strategy: the step wraps fn's result
// and the reassembly Maps thread the structure through, so Unwrap returns the
// rebuilt whole.
func Over[S, T, A, B any](l Lens[S, T, A, B], fn func(A) B, s S) T {
	return l(func(a A) Functor { return ident{fn(a)} }, s).Unwrap().(T)
}

// Set replaces the focused part of s with b, discarding the old value. It is
// [Over] with a constant transformation, not a separate primitive.
func Set[S, T, A, B any](l Lens[S, T, A, B], b B, s S) T {
	return Over(l, func(A) B { return b }, s)
}

// Make builds a lens from a getter and a putter. This is the fixed template
// every lawful lens follows; get and put must focus the same part, and put
// must preserve everything outside it.
func Make[S, T, A, B any](get func(S) A, put func(S, B) T) Lens[S, T, A, B] {
	return func(peek func(A) Functor, s S) Functor {
		return peek(get(s)).Map(func(b any) any { return put(s, b.(B)) })
	}
}

// Compose nests inner inside outer, yielding a lens from S all the way down
// to A. Composition is associative, and composing two lawful lenses yields a
// lawful lens.
func Compose[S, T, M, N, A, B any](outer Lens[S, T, M, N], inner Lens[M, N, A, B]) Lens[S, T, A, B] {
	return func(peek func(A) Functor, s S) Functor {
		return outer(func(m M) Functor { return inner(peek, m) }, s)
	}
}

// Field directive generates a lens focused on the named field of struct type
// S at build time:
//
//	// source:
//	var PersonAge = lens.Field[Person, int]("Age")
//
// The variable that holds the directive is rewritten to the actual lens when
// lensgen generates code. The path must be a string constant naming a field
// of S, and A must be that field's type; violations are reported at
// generation time with a position-annotated diagnostic.
//
// A dotted path generates a [Compose] chain through nested struct fields:
//
//	var PersonCity = lens.Field[Person, string]("Address.City")
//
// Generated lenses do not change types (S=T, A=B) because a Go struct field
// keeps its declared type across updates. Hand-written lenses retain the full
// type-changing form.
func Field[S, A any](path string) Lens[S, S, A, A] {
	panic("lens: not generated")
}
