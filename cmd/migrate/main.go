// Command migrate applies the embedded goose migrations to the trip board
// database. The server can also do this at startup with AUTO_MIGRATE=true.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, openDB).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
