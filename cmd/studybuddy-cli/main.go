package main

import (
	"os"

	"github.com/xiaot623/gogo/studybuddy/internal/cli"
)

var version = "dev"

func main() {
	if err := cli.Execute(version); err != nil {
		os.Exit(1)
	}
}
