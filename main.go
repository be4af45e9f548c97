package main

import "github.com/seguido/seguido/cmd"

func main() {
	cmd.Execute()
}
