// Command bundledeps resolves, records and installs the bundle dependencies
// of a BUNDLES.bazel workspace.
package main

import (
	"context"
	"os"
)

func main() {
	if err := New().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
