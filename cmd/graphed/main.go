// Command graphed inspects and converts saved node graph editor sessions.
package main

import "os"

func main() {
	if err := rootCmd().Execute(); err != nil {
		bad.Fprintf(os.Stderr, "graphed: %v\n", err)
		os.Exit(1)
	}
}
