//go:build lens

package main

import (
	"fmt"

	lens "github.com/chrisdone/basic-lens"
)

type Cell struct {
	Ch  rune
	Age int
}

var (
	chLens  = lens.Field[Cell, rune]("Ch")
	ageLens = lens.Field[Cell, int]("Age")
)

func main() {
	c := Cell{Ch: 'a', Age: 10}

	fmt.Println(lens.View(ageLens, c))

	doubled := lens.Over(ageLens, func(n int) int { return n * 2 }, c)
	fmt.Printf("%c %d\n", lens.View(chLens, doubled), lens.View(ageLens, doubled))

	renamed := lens.Set(chLens, 'b', c)
	fmt.Printf("%c %d\n", renamed.Ch, renamed.Age)

	if c.Ch != 'a' || c.Age != 10 {
		panic("source mutated")
	}
}
