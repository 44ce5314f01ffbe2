package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/gumshoe-sql/gumshoe/internal/cli"
)

func main() {
	// Local overrides like GUMSHOE_DATA; a missing .env is not an error.
	_ = godotenv.Load()

	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
