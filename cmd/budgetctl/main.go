// Command budgetctl runs maintenance tasks against the budget tracker.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
