package codec

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
)

// ParseWords converts raw test cases. NFA cases are lists of symbols; data
// cases are lists of [symbol, value] pairs. Either may also be written as a
// string: "a b a" or "(a,1),(b,2)".
func ParseWords(v domain.Variant, cases []any) ([]domain.Word, error) {
	words := make([]domain.Word, len(cases))
	var problems []string
	for i, c := range cases {
		w, err := ParseWord(v, c)
		if err != nil {
			problems = append(problems, fmt.Sprintf("test case %d: %v", i, err))
			continue
		}
		words[i] = w
	}
	if len(problems) > 0 {
		return nil, &domain.ValidationError{Variant: v, Problems: problems}
	}
	return words, nil
}

// ParseWord converts one raw test case.
func ParseWord(v domain.Variant, raw any) (domain.Word, error) {
	if s, ok := raw.(string); ok {
		return parseWordString(v, s)
	}
	steps, ok := raw.([]any)
	if !ok {
		if raw == nil {
			return domain.Word{}, nil
		}
		return nil, fmt.Errorf("expected a list, got %T", raw)
	}
	w := make(domain.Word, 0, len(steps))
	for j, step := range steps {
		e, err := parseElement(v, step)
		if err != nil {
			return nil, fmt.Errorf("position %d: %w", j, err)
		}
		w = append(w, e)
	}
	return w, nil
}

func parseElement(v domain.Variant, step any) (domain.Element, error) {
	pair, isPair := step.([]any)
	if !v.CarriesData() {
		if isPair {
			if len(pair) == 0 {
				return domain.Element{}, fmt.Errorf("empty step")
			}
			return domain.Sym(scalar(pair[0])), nil
		}
		return domain.Sym(scalar(step)), nil
	}
	if !isPair || len(pair) != 2 {
		return domain.Element{}, fmt.Errorf("expected [symbol, value], got %v", step)
	}
	return domain.Datum(scalar(pair[0]), DataValue(pair[1])), nil
}

var pairSep = regexp.MustCompile(`\)\s*,\s*\(`)

func parseWordString(v domain.Variant, s string) (domain.Word, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return domain.Word{}, nil
	}
	if !v.CarriesData() {
		return domain.Symbols(strings.FieldsFunc(s, func(r rune) bool {
			return r == ' ' || r == ','
		})...), nil
	}
	inner := strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
	var w domain.Word
	for _, part := range pairSep.Split(inner, -1) {
		sym, val, ok := strings.Cut(part, ",")
		if !ok {
			return nil, fmt.Errorf("expected (symbol,value), got %q", part)
		}
		w = append(w, domain.Datum(strings.TrimSpace(sym), DataValue(strings.TrimSpace(val))))
	}
	return w, nil
}

// WireWord renders a word the way test cases are written on the wire.
func WireWord(v domain.Variant, w domain.Word) []any {
	out := make([]any, len(w))
	for i, e := range w {
		if !v.CarriesData() {
			out[i] = e.Symbol
			continue
		}
		out[i] = []any{e.Symbol, e.Value}
	}
	return out
}
