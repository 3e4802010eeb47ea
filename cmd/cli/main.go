package main

import "bookplanner/cmd/cli/command"

func main() {
	command.Execute()
}
