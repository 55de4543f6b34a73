package main

import (
	"fmt"
	"os"

	"github.com/hasbyte1/go-laravel-hashing/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "hashctl:", err)
		os.Exit(1)
	}
}
