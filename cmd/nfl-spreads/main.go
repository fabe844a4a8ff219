package main

import "github.com/pfrederiksen/nfl-spreads/internal/cli"

func main() {
	cli.Execute()
}
