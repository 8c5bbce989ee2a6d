// Package config resolves the reporter's runtime settings.
//
// # Configuration Precedence
//
// Values are resolved in the following order (highest to lowest priority):
//
//  1. CLI flags (--specmatic-insights-host, --dry-run, --reports-dir, etc.)
//  2. Environment variables (SPECMATIC_INSIGHTS_HOST, SPECMATIC_INSIGHTS_DRY_RUN, ...)
//  3. Hardcoded defaults
//
// The source of every resolved value is recorded in Config.Sources so
// --debug can show where a setting came from.
//
// # Environment Variables
//
//   - SPECMATIC_INSIGHTS_HOST: Insights base URL
//   - SPECMATIC_INSIGHTS_DRY_RUN: "true" or "1" skips the upload
//   - SPECMATIC_INSIGHTS_NO_VERIFY: "true" or "1" disables TLS verification
//   - SPECMATIC_INSIGHTS_DEBUG: "true" or "1" enables debug output
//   - SPECMATIC_INSIGHTS_THEME: console theme (default or mono)
//   - SPECMATIC_REPORTS_DIR: directory scanned for report fragments
//   - GITHUB_API_URL: GitHub REST endpoint, set by GitHub Actions
//   - NO_COLOR: any non-empty value forces the mono theme
//
// # Build Identity
//
// Identity flags are all-or-nothing: once any of them is given, the five
// required fields (org, repo name, repo id, repo url, branch name) must all
// be present. Without identity flags the CLI falls back to --build-metadata
// and then to the CI environment.
package config
