package main

import (
	"os"

	"github.com/moriq/kabuscan/cmd/kabuscan/commands"
)

// main is the entry point for the kabuscan CLI
// ⭐ 統合CLI入口: go run ./cmd/kabuscan [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
