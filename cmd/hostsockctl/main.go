// Command hostsockctl is a small operator/debug harness around the
// client package: connect to a host endpoint, print what the
// leader-avoidance loop observes, and optionally expose its Prometheus
// metrics over HTTP.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}
