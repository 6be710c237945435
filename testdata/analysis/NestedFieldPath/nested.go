//go:build lens

package testdata

import lens "github.com/chrisdone/basic-lens"

type Address struct {
	City string
	Zip  string
}

type Person struct {
	Name    string
	Address Address
}

type Company struct {
	HQ Address
}

var (
	City      = lens.Field[Person, string]("Address.City") // ok
	Zip       = lens.Field[Person, string]("Address.Zip")  // ok: shares lens_Person_Address
	HQCity    = lens.Field[Company, string]("HQ.City")     // ok: shares lens_Address_City
	WrongLeaf = lens.Field[Person, int]("Address.City")    // want `field Address\.City of Person is string, not int`
)
