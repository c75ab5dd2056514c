package domain

// EvaluationRequest bundles everything needed to decide a batch of words.
type EvaluationRequest struct {
	Variant     Variant      `json:"variant"`
	Description *Description `json:"description"`
	Words       []Word       `json:"words"`

	// Budget bounds the configurations explored per word for data-carrying
	// variants. Zero means the engine default.
	Budget int `json:"budget,omitempty"`
}

// CaseResult pairs an input word with its verdict.
type CaseResult struct {
	Input    Word `json:"input"`
	Accepted bool `json:"accepted"`
}

// Suite is a named automaton with a batch of words and, optionally, the
// verdict expected for each of them.
type Suite struct {
	ID          string       `json:"id"`
	Variant     Variant      `json:"variant"`
	Description *Description `json:"description"`
	Words       []Word       `json:"words"`
	Expect      []bool       `json:"expect,omitempty"`
	// Language describes in prose the language the automaton should accept.
	Language string `json:"language,omitempty"`
	// ExpectEmpty, when set, is the expected outcome of the emptiness check.
	ExpectEmpty *bool `json:"expect_empty,omitempty"`
}
