package main

import "github.com/chriserin/gherk/cmd"

func main() {
	cmd.Execute()
}
