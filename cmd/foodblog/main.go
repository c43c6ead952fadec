// Command foodblog stores recipes in a SQLite file and searches them by
// ingredient and meal.
package main

import "github.com/petar-djukic/foodblog/internal/cli"

func main() {
	cli.Execute()
}
