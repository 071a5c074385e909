package main

import "github.com/cbout22/skill-sync/internal/cli"

func main() {
	cli.Execute()
}
