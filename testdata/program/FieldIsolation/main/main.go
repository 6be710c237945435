//go:build lens

package main

import (
	"fmt"

	lens "github.com/chrisdone/basic-lens"
)

type Server struct {
	Host string
	Port int
	TLS  bool
}

var portLens = lens.Field[Server, int]("Port")

func main() {
	s := Server{Host: "localhost", Port: 8080, TLS: true}

	s2 := lens.Set(portLens, 9090, s)
	if s2.Host != s.Host || s2.TLS != s.TLS {
		panic("sibling fields changed")
	}
	if s.Port != 8080 {
		panic("source mutated")
	}

	fmt.Println(s2.Host, s2.Port, s2.TLS)
}
