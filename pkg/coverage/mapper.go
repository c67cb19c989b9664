// Package coverage tracks scenario coverage across the consolidation of the
// reader E2E suite. It maps scenario names between the original per-feature
// spec files and the consolidated files that replaced them, and reports
// anything the consolidation dropped.
//
// All operations are pure functions over in-memory string lists. A scenario
// missing from the consolidated suite is reported, never raised as an error.
package coverage

import (
	"fmt"
	"sort"
)

// Mapper holds the two scenario mappings under comparison: original spec
// files to their scenario names, and consolidated files to theirs.
type Mapper struct {
	Original     map[string][]string
	Consolidated map[string][]string
}

// NewMapper returns a Mapper loaded with the default catalog.
func NewMapper() *Mapper {
	c := DefaultCatalog()
	return &Mapper{Original: c.Original, Consolidated: c.Consolidated}
}

// CoverageResult summarizes how much of the original suite the consolidated
// suite retains.
type CoverageResult struct {
	Total    int      // scenarios in the original suite
	Covered  int      // of those, present somewhere in the consolidated suite
	Coverage float64  // Covered/Total as a percentage; 100 when Total is 0
	Missing  []string // original scenarios absent from every consolidated file, sorted
}

// ValidateCoverage computes the set of original scenario names absent from
// the consolidated mapping. Duplicate names within a mapping count once.
func (m *Mapper) ValidateCoverage() CoverageResult {
	consolidated := nameSet(m.Consolidated)

	seen := make(map[string]bool)
	var missing []string
	total := 0
	for _, names := range m.Original {
		for _, name := range names {
			if seen[name] {
				continue
			}
			seen[name] = true
			total++
			if !consolidated[name] {
				missing = append(missing, name)
			}
		}
	}
	sort.Strings(missing)

	covered := total - len(missing)
	coverage := 100.0
	if total > 0 {
		coverage = float64(covered) / float64(total) * 100
	}
	return CoverageResult{
		Total:    total,
		Covered:  covered,
		Coverage: coverage,
		Missing:  missing,
	}
}

// ScenarioPlacement records where (if anywhere) a single original scenario
// landed after consolidation. An empty AbsorbedBy means the scenario was
// dropped.
type ScenarioPlacement struct {
	Name       string
	AbsorbedBy []string
}

// FileReport is the per-original-file breakdown of scenario placements.
type FileReport struct {
	OriginalFile string
	Scenarios    []ScenarioPlacement
}

// GenerateDetailedReport cross-references every original file's scenarios
// against the consolidated files that absorbed them. Files and scenarios are
// sorted for stable output.
func (m *Mapper) GenerateDetailedReport() []FileReport {
	files := sortedKeys(m.Original)
	consolidatedFiles := sortedKeys(m.Consolidated)

	reports := make([]FileReport, 0, len(files))
	for _, file := range files {
		names := append([]string(nil), m.Original[file]...)
		sort.Strings(names)

		placements := make([]ScenarioPlacement, 0, len(names))
		for _, name := range names {
			var absorbedBy []string
			for _, cf := range consolidatedFiles {
				if contains(m.Consolidated[cf], name) {
					absorbedBy = append(absorbedBy, cf)
				}
			}
			placements = append(placements, ScenarioPlacement{Name: name, AbsorbedBy: absorbedBy})
		}
		reports = append(reports, FileReport{OriginalFile: file, Scenarios: placements})
	}
	return reports
}

// Distribution thresholds. A consolidated file above maxSharePercent is
// overloaded and makes the suite unbalanced; one below minSharePercent only
// draws a merge recommendation.
const (
	maxSharePercent = 40.0
	minSharePercent = 15.0
)

// FileShare is one consolidated file's slice of the total scenario count.
type FileShare struct {
	File    string
	Count   int
	Percent float64
}

// DistributionResult reports whether scenarios are spread evenly across the
// consolidated files.
type DistributionResult struct {
	IsBalanced      bool
	Total           int
	PerFile         []FileShare
	Recommendations []string
}

// ValidateDistribution checks the consolidated files against the fixed share
// thresholds. A file holding more than 40% of all scenarios flags the suite
// as unbalanced; exactly 40% is still balanced. A file under 15% produces a
// recommendation without affecting IsBalanced.
func (m *Mapper) ValidateDistribution() DistributionResult {
	files := sortedKeys(m.Consolidated)

	total := 0
	for _, file := range files {
		total += len(m.Consolidated[file])
	}

	result := DistributionResult{IsBalanced: true, Total: total}
	for _, file := range files {
		count := len(m.Consolidated[file])
		percent := 0.0
		if total > 0 {
			percent = float64(count) / float64(total) * 100
		}
		result.PerFile = append(result.PerFile, FileShare{File: file, Count: count, Percent: percent})

		if percent > maxSharePercent {
			result.IsBalanced = false
			result.Recommendations = append(result.Recommendations,
				fmt.Sprintf("%s holds %.1f%% of all scenarios (limit %.0f%%); split it into smaller files", file, percent, maxSharePercent))
		} else if total > 0 && percent < minSharePercent {
			result.Recommendations = append(result.Recommendations,
				fmt.Sprintf("%s holds only %.1f%% of all scenarios; consider merging it into a neighbor", file, percent))
		}
	}
	return result
}

func nameSet(m map[string][]string) map[string]bool {
	set := make(map[string]bool)
	for _, names := range m {
		for _, name := range names {
			set[name] = true
		}
	}
	return set
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func contains(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
