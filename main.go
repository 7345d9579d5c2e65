package main

import "github.com/netfibra/backoffice/cmd"

func main() {
	cmd.Execute()
}
