package main

import "pocket-cards/cmd"

func main() {
	cmd.Execute()
}
