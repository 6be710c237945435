//go:build lens

package testdata

import (
	"bytes"

	lens "github.com/chrisdone/basic-lens"
)

type Person struct {
	Name string
	Age  int
}

type Empty struct{}

var (
	Unknown    = lens.Field[Person, string]("Email")     // want `unknown field Email in Person`
	NotStruct  = lens.Field[int, int]("X")               // want `lens receiver int is not a struct`
	IntoString = lens.Field[Person, string]("Name.City") // want `cannot focus City: string is not a struct`
	WrongFocus = lens.Field[Person, string]("Age")       // want `field Age of Person is int, not string`
	NoFields   = lens.Field[Empty, int]("X")             // want `unknown field X in Empty`
	Foreign    = lens.Field[bytes.Buffer, []byte]("buf") // want `cannot focus unexported field buf of bytes\.Buffer`
)
