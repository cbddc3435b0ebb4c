// calendarctl prints calendar weeks, nutrient statuses and dashboard pages
// from the terminal using the same rules as the API.
// Usage: go run ./cmd/calendarctl week --offset -1
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
