//go:build !windows

package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Fprintln(os.Stderr, "dyncall drives the Windows Runtime and only runs on windows")
	os.Exit(1)
}
