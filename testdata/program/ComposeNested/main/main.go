//go:build lens

package main

import (
	"fmt"

	lens "github.com/chrisdone/basic-lens"
)

type Address struct {
	City string
	Zip  string
}

type Person struct {
	Name    string
	Address Address
}

var (
	cityLens   = lens.Field[Person, string]("Address.City")
	addrLens   = lens.Field[Person, Address]("Address")
	cityOfAddr = lens.Field[Address, string]("City")
)

func main() {
	p := Person{Name: "Alice", Address: Address{City: "Paris", Zip: "75000"}}

	fmt.Println(lens.View(cityLens, p))
	fmt.Println(lens.View(cityOfAddr, lens.View(addrLens, p)))

	// A dotted path lens must agree with the explicit composition.
	composed := lens.Compose(addrLens, cityOfAddr)
	q := lens.Set(composed, "Lyon", p)
	if q != lens.Set(cityLens, "Lyon", p) {
		panic("composed disagrees with dotted path")
	}

	fmt.Println(q.Name, q.Address.City, q.Address.Zip)
}
