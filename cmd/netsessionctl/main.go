package main

import "github.com/sh1/netsession/cmd/netsessionctl/cmd"

func main() {
	cmd.Execute()
}
