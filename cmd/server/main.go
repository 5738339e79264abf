package main

import "github.com/rinkline/server/cmd/server/cmd"

func main() {
	cmd.Execute()
}
