//go:build lens

package main

import (
	"fmt"

	lens "github.com/chrisdone/basic-lens"
)

type Limits struct {
	MaxConns int
	Timeout  int
}

type Database struct {
	DSN    string
	Limits Limits
}

type Config struct {
	Name     string
	Database Database
}

var (
	Name     = lens.Field[Config, string]("Name")
	DSN      = lens.Field[Config, string]("Database.DSN")
	MaxConns = lens.Field[Config, int]("Database.Limits.MaxConns")
	Timeout  = lens.Field[Config, int]("Database.Limits.Timeout")
)

func main() {
	cfg := Config{
		Name: "orders",
		Database: Database{
			DSN:    "postgres://localhost/orders",
			Limits: Limits{MaxConns: 10, Timeout: 30},
		},
	}

	// Read deeply nested fields without spelling out the path.
	fmt.Println(lens.View(Name, cfg), lens.View(DSN, cfg))

	// Update a nested field. The original config is untouched.
	tuned := lens.Set(MaxConns, 50, cfg)
	tuned = lens.Over(Timeout, func(s int) int { return s * 2 }, tuned)
	fmt.Println(tuned.Database.Limits.MaxConns, tuned.Database.Limits.Timeout)
	fmt.Println(cfg.Database.Limits.MaxConns, cfg.Database.Limits.Timeout)
}
