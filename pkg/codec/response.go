package codec

import (
	"errors"

	"github.com/aretw0/automata/pkg/domain"
)

// CaseResult pairs a test case, echoed as it was received, with its verdict.
type CaseResult struct {
	Input    any  `json:"input"`
	Accepted bool `json:"accepted"`
}

// ProcessResponse is the envelope of an evaluation.
type ProcessResponse struct {
	Success  bool             `json:"success"`
	Results  []CaseResult     `json:"results,omitempty"`
	Error    string           `json:"error,omitempty"`
	Kind     domain.ErrorKind `json:"kind,omitempty"`
	Problems []string         `json:"problems,omitempty"`
}

// EmptinessResponse is the envelope of an emptiness check. Results is true
// when the language is empty.
type EmptinessResponse struct {
	Success  bool             `json:"success"`
	Results  *bool            `json:"results,omitempty"`
	Error    string           `json:"error,omitempty"`
	Kind     domain.ErrorKind `json:"kind,omitempty"`
	Problems []string         `json:"problems,omitempty"`
}

// Processed builds a successful evaluation envelope. The inputs are the raw
// test cases of the request.
func Processed(inputs []any, verdicts []bool) ProcessResponse {
	results := make([]CaseResult, len(verdicts))
	for i, ok := range verdicts {
		var in any
		if i < len(inputs) {
			in = inputs[i]
		}
		results[i] = CaseResult{Input: in, Accepted: ok}
	}
	return ProcessResponse{Success: true, Results: results}
}

// ProcessFailed builds a failed evaluation envelope.
func ProcessFailed(err error) ProcessResponse {
	msg, kind, problems := describe(err)
	return ProcessResponse{Error: msg, Kind: kind, Problems: problems}
}

// Checked builds a successful emptiness envelope.
func Checked(empty bool) EmptinessResponse {
	return EmptinessResponse{Success: true, Results: &empty}
}

// CheckFailed builds a failed emptiness envelope.
func CheckFailed(err error) EmptinessResponse {
	msg, kind, problems := describe(err)
	return EmptinessResponse{Error: msg, Kind: kind, Problems: problems}
}

func describe(err error) (string, domain.ErrorKind, []string) {
	var derr *DecodeError
	if errors.As(err, &derr) {
		return err.Error(), domain.KindValidation, nil
	}
	return err.Error(), domain.KindOf(err), domain.ValidationProblems(err)
}
