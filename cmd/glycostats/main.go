package main

import "glycostats/cmd/glycostats/command"

func main() {
	command.Execute()
}
