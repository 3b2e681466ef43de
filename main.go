package main

import "github.com/njclarkbmf/oraschemagen/cmd"

func main() {
	cmd.Execute()
}
