package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/automata/pkg/domain"
)

var validate = validator.New()

// Request is the body shared by every transport: an automaton family tag, its
// configuration and the words to decide. Fixture files add expectations.
type Request struct {
	AutomataType string         `json:"automata_type" yaml:"automata_type" mapstructure:"automata_type" validate:"required"`
	Config       map[string]any `json:"config" yaml:"config" mapstructure:"config" validate:"required"`
	TestCases    []any          `json:"test_cases,omitempty" yaml:"test_cases,omitempty" mapstructure:"test_cases"`

	Language    string `json:"language,omitempty" yaml:"language,omitempty" mapstructure:"language"`
	Expect      []bool `json:"expect,omitempty" yaml:"expect,omitempty" mapstructure:"expect"`
	ExpectEmpty *bool  `json:"expect_empty,omitempty" yaml:"expect_empty,omitempty" mapstructure:"expect_empty"`
}

// DecodeError reports a body that is not a well-formed request.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return "malformed request: " + e.Err.Error() }

func (e *DecodeError) Unwrap() error { return e.Err }

// DecodeJSON reads a JSON request. Numbers are kept exact.
func DecodeJSON(r io.Reader) (*Request, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, &DecodeError{Err: err}
	}
	return FromMap(raw)
}

// DecodeYAML reads a YAML request.
func DecodeYAML(r io.Reader) (*Request, error) {
	var raw map[string]any
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, &DecodeError{Err: err}
	}
	return FromMap(raw)
}

// DecodeFile reads a request from a .json, .yaml or .yml file.
func DecodeFile(path string) (*Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return DecodeYAML(bytes.NewReader(data))
	default:
		return DecodeJSON(bytes.NewReader(data))
	}
}

// FromMap decodes an already parsed document (JSON object, YAML mapping or
// MCP tool arguments).
func FromMap(raw map[string]any) (*Request, error) {
	var req Request
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &req,
		TagName: "mapstructure",
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, &DecodeError{Err: err}
	}
	if err := validate.Struct(&req); err != nil {
		return nil, &DecodeError{Err: err}
	}
	return &req, nil
}

// Variant parses the automata_type tag.
func (r *Request) Variant() (domain.Variant, error) {
	return domain.ParseVariant(r.AutomataType)
}

// Description parses the configuration for the request's variant.
func (r *Request) Description() (domain.Variant, *domain.Description, error) {
	v, err := r.Variant()
	if err != nil {
		return "", nil, err
	}
	d, err := ParseDescription(v, r.Config)
	return v, d, err
}

// Evaluation builds the domain request. A zero budget keeps the engine default.
func (r *Request) Evaluation(budget int) (domain.EvaluationRequest, error) {
	v, d, err := r.Description()
	if err != nil {
		return domain.EvaluationRequest{}, err
	}
	words, err := ParseWords(v, r.TestCases)
	if err != nil {
		return domain.EvaluationRequest{}, err
	}
	return domain.EvaluationRequest{Variant: v, Description: d, Words: words, Budget: budget}, nil
}

// Suite builds a fixture suite named id.
func (r *Request) Suite(id string) (*domain.Suite, error) {
	ev, err := r.Evaluation(0)
	if err != nil {
		return nil, err
	}
	if len(r.Expect) > 0 && len(r.Expect) != len(ev.Words) {
		return nil, &domain.ValidationError{
			Variant:  ev.Variant,
			Problems: []string{fmt.Sprintf("expect has %d entries for %d test cases", len(r.Expect), len(ev.Words))},
		}
	}
	return &domain.Suite{
		ID:          id,
		Variant:     ev.Variant,
		Description: ev.Description,
		Words:       ev.Words,
		Expect:      r.Expect,
		Language:    r.Language,
		ExpectEmpty: r.ExpectEmpty,
	}, nil
}
