package main

import (
	"log/slog"
	"os"
)

// @title Accounting Back-Office API
// @version 1.0
// @description Chart of accounts, double-entry vouchers with an approval workflow, and budgets.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := newRootCommand(logger).Execute(); err != nil {
		os.Exit(1)
	}
}
