package main

import "github.com/rockhound/boston-shows/internal/cli"

func main() {
	cli.Execute()
}
