package main

import "github.com/alexiusacademia/goglass/cmd"

func main() {
	cmd.Execute()
}
