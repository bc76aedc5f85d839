package main

import "github.com/naka-gawa/gitfinder/cmd"

func main() {
	cmd.Execute()
}
