package main

import "github.com/nanoimg/nanoimg/cmd"

func main() {
	cmd.Execute()
}
