package main

import "github.com/time-gift24/mdflow/cmd"

func main() {
	cmd.Execute()
}
