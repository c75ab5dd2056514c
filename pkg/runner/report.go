package runner

import (
	"time"

	"github.com/aretw0/automata/pkg/domain"
)

// Status labels.
const (
	StatusPass  = "PASS"
	StatusFail  = "FAIL"
	StatusError = "ERROR"
)

// CaseOutcome is the verdict for one word next to the expected one.
type CaseOutcome struct {
	domain.CaseResult
	Expected *bool `json:"expected,omitempty"`
}

// Matches reports whether the verdict agrees with the expectation. Cases
// without an expectation always match.
func (c CaseOutcome) Matches() bool {
	return c.Expected == nil || *c.Expected == c.Accepted
}

// SuiteResult is the outcome of one suite.
type SuiteResult struct {
	ID       string         `json:"id"`
	Variant  domain.Variant `json:"variant,omitempty"`
	Language string         `json:"language,omitempty"`
	Cases    []CaseOutcome  `json:"cases,omitempty"`

	// Empty is the emptiness verdict, set only when the suite expects one.
	Empty       *bool `json:"empty,omitempty"`
	ExpectEmpty *bool `json:"expect_empty,omitempty"`

	Error    string           `json:"error,omitempty"`
	Kind     domain.ErrorKind `json:"kind,omitempty"`
	Duration time.Duration    `json:"duration_ns"`
}

// Mismatches returns the cases whose verdict differs from the expectation.
func (s *SuiteResult) Mismatches() []CaseOutcome {
	var out []CaseOutcome
	for _, c := range s.Cases {
		if !c.Matches() {
			out = append(out, c)
		}
	}
	return out
}

// EmptinessMatches reports whether the emptiness verdict agrees with the
// expectation.
func (s *SuiteResult) EmptinessMatches() bool {
	return s.ExpectEmpty == nil || (s.Empty != nil && *s.Empty == *s.ExpectEmpty)
}

// Status classifies the suite as passed, failed or errored.
func (s *SuiteResult) Status() string {
	switch {
	case s.Error != "":
		return StatusError
	case len(s.Mismatches()) > 0 || !s.EmptinessMatches():
		return StatusFail
	default:
		return StatusPass
	}
}

// Report aggregates the outcome of a run.
type Report struct {
	Suites   []*SuiteResult `json:"suites"`
	Passed   int            `json:"passed"`
	Failed   int            `json:"failed"`
	Errored  int            `json:"errored"`
	Duration time.Duration  `json:"duration_ns"`
}

func (r *Report) add(s *SuiteResult) {
	r.Suites = append(r.Suites, s)
	switch s.Status() {
	case StatusPass:
		r.Passed++
	case StatusFail:
		r.Failed++
	default:
		r.Errored++
	}
}

// OK reports whether every suite passed.
func (r *Report) OK() bool {
	return r.Failed == 0 && r.Errored == 0
}
