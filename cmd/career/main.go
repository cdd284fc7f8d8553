// Command career runs the career linker API server and its maintenance tasks
package main

import "github.com/ismail-dev-code/career-linker-server/cmd/career/cmd"

func main() {
	cmd.Execute()
}
