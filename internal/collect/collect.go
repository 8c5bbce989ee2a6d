// Package collect locates, parses and validates the optional report
// fragments for one build.
//
// Paths given on the command line are strict: a file that exists but does not
// parse or validate aborts the run. Files discovered in the reports directory
// and the specmatic config file are best-effort and only logged on failure.
package collect

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dkoosis/insights-build-reporter/internal/detect"
	"github.com/dkoosis/insights-build-reporter/internal/docread"
	"github.com/dkoosis/insights-build-reporter/pkg/buildreport"
	"github.com/dkoosis/insights-build-reporter/pkg/specmatic"
)

// File names looked up in the reports directory.
const (
	CoverageFile    = "coverage_report.json"
	StubUsageFile   = "stub_usage_report.json"
	CentralRepoFile = "central_contract_repo_report.json"
	TestDataFile    = "test_data_report.json"
)

// ConfigFiles are tried in order in the working directory.
var ConfigFiles = []string{"specmatic.yaml", "specmatic.yml", "specmatic.json"}

const testDataLabel = "specmatic test data"
const configLabel = "specmatic configuration"

// Logger receives progress and best-effort failures.
type Logger interface {
	Info(format string, args ...any)
	Error(format string, args ...any)
	Debug(format string, args ...any)
}

// Request names the inputs of one run. Empty explicit paths fall back to
// discovery; relative paths are resolved against WorkDir.
type Request struct {
	Coverage    string
	StubUsage   string
	CentralRepo string
	TestData    string
	Config      string
	ReportsDir  string
	WorkDir     string
}

// Fragments are the inputs that were found and accepted.
type Fragments struct {
	Coverage    *specmatic.CoverageReport
	StubUsage   *specmatic.StubUsageReport
	CentralRepo *specmatic.CentralRepoReport
	TestData    json.RawMessage
	Config      any

	// Files maps each loaded input to the file it came from.
	Files map[string]string
}

// Inputs converts f for buildreport.Assemble.
func (f *Fragments) Inputs() buildreport.Inputs {
	return buildreport.Inputs{
		Coverage:    f.Coverage,
		StubUsage:   f.StubUsage,
		CentralRepo: f.CentralRepo,
		TestData:    f.TestData,
		Config:      f.Config,
	}
}

// Load reads every fragment named or discovered by req.
func Load(req Request, log Logger) (*Fragments, error) {
	out := &Fragments{Files: make(map[string]string)}
	var err error

	if out.Coverage, err = loadFragment(req, log, out.Files, specmatic.KindCoverage, req.Coverage, CoverageFile, specmatic.ValidateCoverage); err != nil {
		return nil, err
	}
	if out.StubUsage, err = loadFragment(req, log, out.Files, specmatic.KindStubUsage, req.StubUsage, StubUsageFile, specmatic.ValidateStubUsage); err != nil {
		return nil, err
	}
	if out.CentralRepo, err = loadFragment(req, log, out.Files, specmatic.KindCentralRepo, req.CentralRepo, CentralRepoFile, specmatic.ValidateCentralRepo); err != nil {
		return nil, err
	}
	if out.TestData, err = loadTestData(req, log, out.Files); err != nil {
		return nil, err
	}
	out.Config = loadConfig(req, log, out.Files)
	return out, nil
}

// target picks the explicit path when given, else the discovered one.
func (r Request) target(explicit, discovered string) (path string, strict bool) {
	if explicit != "" {
		return r.resolve(explicit), true
	}
	return filepath.Join(r.reportsDir(), discovered), false
}

func (r Request) resolve(path string) string {
	if filepath.IsAbs(path) || r.WorkDir == "" {
		return path
	}
	return filepath.Join(r.WorkDir, path)
}

func (r Request) reportsDir() string {
	if r.ReportsDir == "" {
		return r.resolve(".")
	}
	return r.resolve(r.ReportsDir)
}

func loadFragment[T any](req Request, log Logger, files map[string]string, kind specmatic.Kind, explicit, discovered string, validate func(any) (T, error)) (T, error) {
	var zero T
	path, strict := req.target(explicit, discovered)

	doc, err := docread.ReadFile(path)
	if err != nil {
		return zero, readFailure(log, kind.String(), path, strict, err)
	}

	v, err := validate(doc.Tree)
	if err != nil {
		if strict {
			return zero, fmt.Errorf("failed to parse %s %s: %w", kind, path, err)
		}
		log.Error("Skipping %s %s: %v", kind, path, err)
		return zero, nil
	}
	log.Info("Loaded %s from %s", kind, path)
	files[kind.String()] = path
	return v, nil
}

// readFailure decides whether a read or parse failure aborts the run. Missing
// and unreadable files never do; unparseable explicit files do.
func readFailure(log Logger, label, path string, strict bool, err error) error {
	var ioErr *docread.IOError
	switch {
	case docread.IsNotFound(err) && !strict:
		log.Debug("No %s at %s", label, path)
		return nil
	case errors.As(err, &ioErr):
		log.Error("Error reading %s: %s: %v", label, path, ioErr.Err)
		return nil
	case strict:
		return fmt.Errorf("failed to parse %s: %w", label, err)
	default:
		log.Error("Skipping %s: %v", label, err)
		return nil
	}
}

func loadTestData(req Request, log Logger, files map[string]string) (json.RawMessage, error) {
	path, strict := req.target(req.TestData, TestDataFile)

	data, err := docread.ReadRaw(path)
	if err != nil {
		return nil, readFailure(log, testDataLabel, path, strict, err)
	}

	var tree any
	if err := json.Unmarshal(data, &tree); err != nil {
		perr := &docread.ParseError{Path: path, Primary: detect.JSON, Err: err}
		if strict {
			return nil, fmt.Errorf("failed to parse %s as valid JSON: %w", testDataLabel, perr)
		}
		log.Error("Skipping %s %s: %v", testDataLabel, path, err)
		return nil, nil
	}
	if tree == nil {
		log.Info("Skipping %s %s: document is null", testDataLabel, path)
		return nil, nil
	}
	log.Info("Loaded %s from %s", testDataLabel, path)
	files[testDataLabel] = path
	return json.RawMessage(data), nil
}

// loadConfig never fails; an unusable config file is logged and skipped.
func loadConfig(req Request, log Logger, files map[string]string) any {
	candidates := make([]string, 0, len(ConfigFiles))
	if req.Config != "" {
		candidates = append(candidates, req.resolve(req.Config))
	} else {
		for _, name := range ConfigFiles {
			candidates = append(candidates, req.resolve(name))
		}
	}

	for _, path := range candidates {
		doc, err := docread.ReadFile(path)
		if docread.IsNotFound(err) && req.Config == "" {
			continue
		}
		if err != nil {
			log.Error("Could not read %s from %s: %v", configLabel, path, err)
			return nil
		}
		log.Info("Parsed %s config from %s", doc.Format, path)
		files[configLabel] = path
		return specmatic.Normalize(doc.Tree)
	}
	log.Info("No specmatic config path provided")
	return nil
}
