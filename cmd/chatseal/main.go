// Command chatseal encrypts chat messages, runs key exchanges and manages
// the encrypted channel vault.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := run(os.Args[1:], DefaultConfig()); err != nil {
		fmt.Fprintln(os.Stderr, "chatseal:", err)
		os.Exit(1)
	}
}
