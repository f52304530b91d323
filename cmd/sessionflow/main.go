// Command sessionflow inspects and drives a persisted session from the
// terminal: resolve where the app would land, show the stored flags, log
// out, or walk through onboarding with scripted screens.
package main

import (
	"context"
	"os"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
