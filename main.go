package main

import "parts-finder/cmd"

func main() {
	cmd.Execute()
}
