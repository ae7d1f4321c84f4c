// Command server runs the application-statistics HTTP API.
package main

import (
	"context"
	"fmt"
	"os"

	"yhstat/internal/app"
)

func main() {
	ctx := context.Background()

	application, err := app.New(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "startup failed: %v\n", err)
		os.Exit(1)
	}

	if err := application.Run(ctx); err != nil {
		application.Logger.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}
