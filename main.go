package main

import "github.com/PhysCorp/MarbleMachine/internal/cli"

func main() {
	cli.Execute()
}
