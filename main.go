package main

import (
	"os"

	"github.com/HaByeong/WhaleStream/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
