// Command supportchat is a terminal client for the customer support agent.
package main

import "github.com/diogo/supportchat/internal/commands"

func main() {
	commands.Execute()
}
