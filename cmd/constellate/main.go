// Command constellate analyzes chart files from the command line.
package main

import "github.com/papapumpkin/constellate/cmd"

func main() {
	cmd.Execute()
}
