package main

import (
	"os"

	"github.com/abdulwahidchohan/ai-edu-coach-project/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
