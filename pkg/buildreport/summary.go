package buildreport

// FragmentSummary counts what one fragment contributed to a report.
type FragmentSummary struct {
	Name       string
	Entries    int
	Operations int
}

// Summary describes the contents of a report for console output.
type Summary struct {
	ConfigPath string
	Fragments  []FragmentSummary
	TestData   bool
	Config     bool
}

// Summary counts the entries and operations of each fragment present in r.
func (r *Report) Summary() Summary {
	s := Summary{
		ConfigPath: r.SpecmaticConfigPath,
		TestData:   len(r.SpecmaticTestData) > 0,
		Config:     r.SpecmaticConfig != nil,
	}
	if r.SpecmaticCoverage != nil {
		fs := FragmentSummary{Name: "coverage", Entries: len(r.SpecmaticCoverage)}
		for _, e := range r.SpecmaticCoverage {
			fs.Operations += len(e.Operations)
		}
		s.Fragments = append(s.Fragments, fs)
	}
	if r.SpecmaticStubUsage != nil {
		fs := FragmentSummary{Name: "stub usage", Entries: len(r.SpecmaticStubUsage)}
		for _, e := range r.SpecmaticStubUsage {
			fs.Operations += len(e.Operations)
		}
		s.Fragments = append(s.Fragments, fs)
	}
	if r.SpecmaticCentralRepoReport != nil {
		fs := FragmentSummary{Name: "central repo", Entries: len(r.SpecmaticCentralRepoReport)}
		for _, e := range r.SpecmaticCentralRepoReport {
			fs.Operations += len(e.Operations)
		}
		s.Fragments = append(s.Fragments, fs)
	}
	return s
}
