package main

import "github.com/birchwood/ethnograph/internal/cli"

func main() {
	cli.Execute()
}
