package main

import "flake-freshness/internal/cli"

func main() {
	cli.Execute()
}
