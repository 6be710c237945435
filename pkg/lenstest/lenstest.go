// Package lenstest provides a property-based harness for checking the lens
// laws against a concrete lens. It is meant for tests of hand-written lenses
// built with [lens.Make]; generated lenses satisfy the laws by construction.
//
//	lenstest.Check(t, ageLens,
//		genPerson, gen.IntRange(0, 150),
//		func(age int) int { return age + 1 },
//	)
package lenstest

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/prop"

	lens "github.com/chrisdone/basic-lens"
)

// Properties returns the lens laws as gopter properties for the given lens.
//
// genS generates sources and genA generates focus values. fn is an arbitrary
// function on the focus used to relate Over to View and Set. opts are passed
// to [cmp.Equal] for every comparison, so unexported fields or approximate
// equality can be handled the usual go-cmp way.
func Properties[S, A any](l lens.Lens[S, S, A, A], genS, genA gopter.Gen, fn func(A) A, opts ...cmp.Option) *gopter.Properties {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("put-get: setting the viewed value changes nothing", prop.ForAll(
		func(s S) bool {
			return cmp.Equal(lens.Set(l, lens.View(l, s), s), s, opts...)
		},
		genS,
	))

	properties.Property("get-put: viewing a set value returns it", prop.ForAll(
		func(s S, a A) bool {
			return cmp.Equal(lens.View(l, lens.Set(l, a, s)), a, opts...)
		},
		genS, genA,
	))

	properties.Property("put-put: the last set wins", prop.ForAll(
		func(s S, a, b A) bool {
			return cmp.Equal(lens.Set(l, b, lens.Set(l, a, s)), lens.Set(l, b, s), opts...)
		},
		genS, genA, genA,
	))

	properties.Property("over agrees with view and set", prop.ForAll(
		func(s S) bool {
			return cmp.Equal(lens.Over(l, fn, s), lens.Set(l, fn(lens.View(l, s)), s), opts...)
		},
		genS,
	))

	return properties
}

// Check runs the lens laws against the given lens and reports violations
// through t.
func Check[S, A any](t *testing.T, l lens.Lens[S, S, A, A], genS, genA gopter.Gen, fn func(A) A, opts ...cmp.Option) {
	t.Helper()
	Properties(l, genS, genA, fn, opts...).TestingRun(t)
}
