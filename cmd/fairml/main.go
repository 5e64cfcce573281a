// Command fairml audits tabular datasets for group fairness.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	loadEnv(slog.Default(), ".env")

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadEnv reads environment overrides from the given files. A missing file
// is normal, so it is only reported at debug level.
func loadEnv(logger *slog.Logger, files ...string) {
	if err := godotenv.Load(files...); err != nil {
		logger.Debug("no .env file loaded, using system environment", "error", err)
	}
}
