// Command scatter renders and explores the salary scatter plot without the
// HTTP server.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
