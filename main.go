package main

import "github.com/fairlens/fairlens/cmd"

func main() {
	cmd.Execute()
}
