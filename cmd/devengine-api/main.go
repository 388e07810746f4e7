package main

import (
	"os"

	"github.com/Arunachalam-140897/DevEngine/pkg/api"
)

func main() {
	if err := api.Serve(); err != nil {
		os.Exit(1)
	}
}
