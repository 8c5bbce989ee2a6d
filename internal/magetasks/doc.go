// Package magetasks provides the build, test and lint tasks used by the
// Magefile of insights-build-reporter.
package magetasks
