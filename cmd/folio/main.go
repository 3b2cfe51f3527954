package main

import "github.com/rashisahu/folio/internal/commands"

func main() {
	commands.Execute()
}
