//go:build lens

package testdata

import lens "github.com/chrisdone/basic-lens"

type Person struct {
	Name string
	Age  int
}

var (
	Name = lens.Field[Person, string]("Name") // ok
	Age  = lens.Field[Person, int]("Age")     // ok
)

var pathVar = "Name"

var (
	_        = lens.Field[Person, int]("Age")        // want `cannot assign lens to blank identifier`
	FromVar  = lens.Field[Person, string](pathVar)   // want `field path must be a string constant`
	Empty    = lens.Field[Person, string]("")        // want `empty field path`
	Trailing = lens.Field[Person, string]("Name ")   // want `invalid field path "Name "`
	Doubled  = lens.Field[Person, string]("Name..X") // want `invalid field path "Name\.\.X"`
)
