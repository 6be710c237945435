package main

import (
	"fmt"

	lens "github.com/chrisdone/basic-lens"
)

type Box[T any] struct {
	Label string
	Value T
}

// contents focuses the value of a box and may change its type on write.
func contents[A, B any]() lens.Lens[Box[A], Box[B], A, B] {
	return lens.Make(
		func(b Box[A]) A { return b.Value },
		func(b Box[A], v B) Box[B] { return Box[B]{Label: b.Label, Value: v} },
	)
}

func main() {
	b := Box[int]{Label: "n", Value: 21}

	doubled := lens.Over(contents[int, int](), func(n int) int { return n * 2 }, b)
	fmt.Println(doubled.Label, doubled.Value)

	named := lens.Set(contents[int, string](), "forty-two", doubled)
	fmt.Println(named.Label, named.Value)

	fmt.Println(lens.View(contents[string, string](), named))
}
