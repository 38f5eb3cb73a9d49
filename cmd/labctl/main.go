package main

import "infralab/cmd/labctl/commands"

func main() {
	commands.Execute()
}
