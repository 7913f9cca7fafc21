// Package configprocessor provides shared scenario validation utilities
// that produce warnings rather than hard failures.
package configprocessor

import "fmt"

// IncomeInfo is the subset of an income stream's fields relevant to
// warning-level validation.
type IncomeInfo struct {
	StartAge int
	EndAge   int
}

// ScenarioInfo is the subset of a scenario's fields relevant to
// warning-level validation.
type ScenarioInfo struct {
	CurrentAge int
	EndAge     int
	Incomes    []IncomeInfo
	LumpAges   []int
	ToyAges    []int
}

// Processor validates scenario structure and returns warnings.
type Processor struct{}

// NewProcessor creates a new scenario processor.
func NewProcessor() *Processor {
	return &Processor{}
}

// ValidateConfiguration validates the scenario and returns warnings. It
// never returns an error: structural failures that should block a run are
// reported separately via pkg/validation as simerrors.ValidationError.
func (p *Processor) ValidateConfiguration(s ScenarioInfo) []string {
	var warnings []string

	if s.EndAge <= s.CurrentAge {
		// Caught as a hard ValidationError elsewhere; skip further
		// age-relative warnings since the horizon is degenerate.
		return warnings
	}

	for _, inc := range s.Incomes {
		if inc.EndAge < inc.StartAge {
			warnings = append(warnings, fmt.Sprintf(
				"income stream ends (%d) before it starts (%d)", inc.EndAge, inc.StartAge))
			continue
		}
		if inc.StartAge >= s.EndAge {
			warnings = append(warnings, fmt.Sprintf(
				"income stream starts at age %d, at or after end_age %d, and will never activate",
				inc.StartAge, s.EndAge))
		}
		if inc.EndAge < s.CurrentAge {
			warnings = append(warnings, fmt.Sprintf(
				"income stream ends at age %d, before current_age %d, and will never activate",
				inc.EndAge, s.CurrentAge))
		}
	}

	for _, age := range s.LumpAges {
		if age < s.CurrentAge || age > s.EndAge {
			warnings = append(warnings, fmt.Sprintf(
				"lump event at age %d is outside the simulation horizon [%d, %d] and will never apply",
				age, s.CurrentAge, s.EndAge))
		}
	}

	for _, age := range s.ToyAges {
		if age < s.CurrentAge || age > s.EndAge {
			warnings = append(warnings, fmt.Sprintf(
				"toy purchase at age %d is outside the simulation horizon [%d, %d] and will never apply",
				age, s.CurrentAge, s.EndAge))
		}
	}

	return warnings
}
