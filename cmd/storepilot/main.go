// cmd/storepilot/main.go
package main

import (
	"os"

	"github.com/your-org/store-pilot/cmd/storepilot/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
