package loam

import "github.com/aretw0/automata/pkg/codec"

// SuiteMetadata is the document shape of a fixture suite. JSON and YAML files
// carry it whole; Markdown files carry it as frontmatter and the body becomes
// the language description.
type SuiteMetadata struct {
	ID           string         `json:"id,omitempty" mapstructure:"id"`
	AutomataType string         `json:"automata_type" mapstructure:"automata_type"`
	Config       map[string]any `json:"config" mapstructure:"config"`
	TestCases    []any          `json:"test_cases,omitempty" mapstructure:"test_cases"`
	Expect       []bool         `json:"expect,omitempty" mapstructure:"expect"`
	ExpectEmpty  *bool          `json:"expect_empty,omitempty" mapstructure:"expect_empty"`
	Language     string         `json:"language,omitempty" mapstructure:"language"`
}

// Request converts the metadata into a wire request. content, when not
// empty, overrides the language description.
func (m SuiteMetadata) Request(content string) *codec.Request {
	language := m.Language
	if content != "" {
		language = content
	}
	return &codec.Request{
		AutomataType: m.AutomataType,
		Config:       m.Config,
		TestCases:    m.TestCases,
		Language:     language,
		Expect:       m.Expect,
		ExpectEmpty:  m.ExpectEmpty,
	}
}
