package main

import "os"

func main() {
	if err := newRootCmd(&App{}).Execute(); err != nil {
		// Cobra prints the error, so we just need to exit.
		os.Exit(1)
	}
}
