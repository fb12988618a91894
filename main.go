package main

import "github.com/onflyair/cargofit/cmd"

func main() {
	cmd.Execute()
}
