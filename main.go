package main

import (
	"fmt"
	"os"

	"gitprompt/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if cmd.IsFlagError(err) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
