package main

import "github.com/kholland/moviedeck/cmd"

func main() {
	cmd.Execute()
}
