package lens_test

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"

	lens "github.com/chrisdone/basic-lens"
	"github.com/chrisdone/basic-lens/pkg/lenstest"
)

func genCell() gopter.Gen {
	return gopter.CombineGens(
		gen.Rune(),
		gen.Int(),
	).Map(func(vals []any) cell {
		return cell{Ch: vals[0].(rune), Age: vals[1].(int)}
	})
}

func genAddress() gopter.Gen {
	return gopter.CombineGens(
		gen.AlphaString(),
		gen.NumString(),
	).Map(func(vals []any) address {
		return address{City: vals[0].(string), Zip: vals[1].(string)}
	})
}

func genPerson() gopter.Gen {
	return gopter.CombineGens(
		gen.AlphaString(),
		genAddress(),
	).Map(func(vals []any) person {
		return person{Name: vals[0].(string), Address: vals[1].(address)}
	})
}

func TestAgeLensLaws(t *testing.T) {
	lenstest.Check(t, ageLens,
		genCell(), gen.Int(),
		func(age int) int { return age + 1 },
	)
}

func TestChLensLaws(t *testing.T) {
	lenstest.Check(t, chLens,
		genCell(), gen.Rune(),
		func(ch rune) rune { return ch + 1 },
	)
}

func TestAddressLensLaws(t *testing.T) {
	lenstest.Check(t, addressLens,
		genPerson(), genAddress(),
		func(a address) address { a.City, a.Zip = a.Zip, a.City; return a },
	)
}

func TestComposedLensLaws(t *testing.T) {
	composed := lens.Compose(addressLens, cityLens)
	lenstest.Check(t, composed,
		genPerson(), gen.AlphaString(),
		func(city string) string { return city + "!" },
	)
}
