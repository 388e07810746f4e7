package main

import "github.com/Arunachalam-140897/DevEngine/pkg/cli"

func main() {
	cli.Execute()
}
