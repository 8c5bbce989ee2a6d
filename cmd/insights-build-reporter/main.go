// insights-build-reporter publishes Specmatic contract test results to
// Specmatic Insights.
//
// Usage:
//
//	insights-build-reporter --specmatic-insights-host=https://insights.example.com
//	insights-build-reporter --sih=https://insights.example.com --sc=build/reports/specmatic/coverage_report.json --dry-run
//
// Inputs are optional report fragments (API coverage, stub usage, central
// repository usage, test data, specmatic config) either named explicitly or
// discovered under --reports-dir. The normalized report is written to
// build-report.html and, unless --dry-run is given, posted to
// {host}/api/github-build-report.
//
// Exit codes: 0 success, 1 failure, 2 usage or configuration error.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dkoosis/insights-build-reporter/internal/cli"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return cli.Run(ctx, os.Args[1:], os.Stdout, os.Stderr, cli.Deps{})
}
