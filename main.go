package main

import (
	"os"

	"github.com/thenoetrevino/tock/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
