package main

import "github.com/papapumpkin/perigee/cmd"

func main() {
	cmd.Execute()
}
