package codec

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/aretw0/automata/pkg/domain"
)

// wireConfig is the union of the keys used by all families.
type wireConfig struct {
	Q  []any          `mapstructure:"Q" validate:"required"`
	E  []any          `mapstructure:"E" validate:"required"`
	T  []any          `mapstructure:"T"`
	Q0 any            `mapstructure:"q0"`
	I  []any          `mapstructure:"I"`
	F  []any          `mapstructure:"F"`
	H  []any          `mapstructure:"H"`
	R0 map[string]any `mapstructure:"R0"`
	U  []any          `mapstructure:"U"`
	Fl []any          `mapstructure:"Fl"`
	Fg []any          `mapstructure:"Fg"`

	Discipline string `mapstructure:"discipline"`
	Acceptance string `mapstructure:"acceptance"`
}

var requiredKeys = map[domain.Variant][]string{
	domain.VariantNFA:  {"Q", "E", "T", "q0", "F"},
	domain.VariantRA:   {"Q", "E", "T", "q0", "F", "R0", "U"},
	domain.VariantSAFA: {"Q", "E", "T", "q0", "F", "H"},
	domain.VariantCCA:  {"Q", "E", "T", "I", "F"},
	domain.VariantCMA:  {"Q", "E", "T", "q0", "Fl", "Fg"},
}

// ParseDescription converts a wire configuration into a description. Shape
// problems are collected into a single *domain.ValidationError; semantic
// checks are left to the engine.
func ParseDescription(v domain.Variant, config map[string]any) (*domain.Description, error) {
	p := &parser{variant: v}
	for _, key := range requiredKeys[v] {
		if _, ok := config[key]; !ok {
			p.addf("missing configuration key %q", key)
		}
	}
	if len(p.problems) > 0 {
		return nil, p.err()
	}

	var wc wireConfig
	if err := mapstructure.Decode(config, &wc); err != nil {
		return nil, &domain.ValidationError{Variant: v, Problems: []string{err.Error()}}
	}
	if err := validate.Struct(&wc); err != nil {
		return nil, &domain.ValidationError{Variant: v, Problems: []string{err.Error()}}
	}

	d := &domain.Description{
		States:     p.names("Q", wc.Q),
		Alphabet:   p.names("E", wc.E),
		Final:      p.names("F", wc.F),
		Discipline: wc.Discipline,
		Acceptance: wc.Acceptance,
	}

	switch v {
	case domain.VariantCCA:
		d.Initial = p.names("I", wc.I)
	default:
		d.Initial = p.initial(wc.Q0)
	}

	switch v {
	case domain.VariantNFA:
		p.each("T", wc.T, 3, func(i int, row []any) {
			d.Transitions = append(d.Transitions, domain.Transition{
				Source:       p.name(row[0]),
				Symbol:       p.name(row[1]),
				Destinations: domain.To(p.targets(i, row[2])...),
			})
		})
	case domain.VariantRA:
		d.Registers = registers(wc.R0)
		p.each("U", wc.U, 3, func(_ int, row []any) {
			d.Updates = append(d.Updates, domain.Update{
				State: p.name(row[0]), Symbol: p.name(row[1]), Register: p.name(row[2]),
			})
		})
		p.each("T", wc.T, 4, func(i int, row []any) {
			d.Transitions = append(d.Transitions, domain.Transition{
				Source:       p.name(row[0]),
				Symbol:       p.name(row[1]),
				Register:     blankable(row[2]),
				Destinations: domain.To(p.targets(i, row[3])...),
			})
		})
	case domain.VariantSAFA:
		d.Sets = p.names("H", wc.H)
		p.each("T", wc.T, 4, func(i int, row []any) {
			t := domain.Transition{Source: p.name(row[0]), Symbol: p.name(row[1])}
			t.Check = p.check(i, row[2])
			for _, raw := range p.list(i, row[3]) {
				t.Destinations = append(t.Destinations, p.insertion(i, raw))
			}
			d.Transitions = append(d.Transitions, t)
		})
	case domain.VariantCCA:
		p.each("T", wc.T, 5, func(i int, row []any) {
			d.Transitions = append(d.Transitions, domain.Transition{
				Source:       p.name(row[0]),
				Symbol:       p.name(row[1]),
				Constraint:   p.constraint(i, row[2]),
				Instruction:  p.instruction(i, row[3]),
				Destinations: domain.To(p.targets(i, row[4])...),
			})
		})
	case domain.VariantCMA:
		d.LocalFinal = p.names("Fl", wc.Fl)
		d.GlobalFinal = p.names("Fg", wc.Fg)
		p.each("T", wc.T, 4, func(i int, row []any) {
			d.Transitions = append(d.Transitions, domain.Transition{
				Source:       p.name(row[0]),
				Symbol:       p.name(row[1]),
				Remembered:   blankable(row[2]),
				Destinations: domain.To(p.targets(i, row[3])...),
			})
		})
	}

	if len(p.problems) > 0 {
		return nil, p.err()
	}
	return d, nil
}

type parser struct {
	variant  domain.Variant
	problems []string
}

func (p *parser) addf(format string, args ...any) {
	p.problems = append(p.problems, fmt.Sprintf(format, args...))
}

func (p *parser) err() error {
	return &domain.ValidationError{Variant: p.variant, Problems: p.problems}
}

func (p *parser) name(v any) string {
	return scalar(v)
}

func (p *parser) names(key string, values []any) []string {
	if values == nil {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := v.([]any); ok {
			p.addf("%s: expected a list of names, got nested list", key)
			continue
		}
		out = append(out, scalar(v))
	}
	return out
}

// initial accepts a single state or a list of states.
func (p *parser) initial(v any) []string {
	switch x := v.(type) {
	case nil:
		return nil
	case []any:
		return p.names("q0", x)
	default:
		return []string{scalar(x)}
	}
}

// each walks the rows of a table, checking the row arity.
func (p *parser) each(key string, rows []any, arity int, fn func(i int, row []any)) {
	for i, raw := range rows {
		row, ok := raw.([]any)
		if !ok || len(row) != arity {
			p.addf("%s[%d]: expected a list of %d fields", key, i, arity)
			continue
		}
		fn(i, row)
	}
}

func (p *parser) list(i int, v any) []any {
	switch x := v.(type) {
	case []any:
		return x
	case nil:
		p.addf("T[%d]: missing destinations", i)
		return nil
	default:
		return []any{x}
	}
}

func (p *parser) targets(i int, v any) []string {
	raw := p.list(i, v)
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		out = append(out, scalar(r))
	}
	return out
}

// check reads "h,0" as p(h), "h,1" as !p(h) and "-" as no guard.
func (p *parser) check(i int, v any) *domain.SetCheck {
	s := blankable(v)
	if s == "" {
		return nil
	}
	set, flag, ok := strings.Cut(s, ",")
	set = strings.TrimSpace(set)
	if !ok {
		return &domain.SetCheck{Set: set}
	}
	switch strings.TrimSpace(flag) {
	case "0", "false":
		return &domain.SetCheck{Set: set}
	case "1", "true":
		return &domain.SetCheck{Set: set, Negated: true}
	}
	p.addf("T[%d]: invalid set check %q", i, s)
	return nil
}

// insertion reads "q,h" (insert into h), "q,-" or "q".
func (p *parser) insertion(_ int, v any) domain.Destination {
	s := scalar(v)
	state, set, ok := strings.Cut(s, ",")
	if !ok {
		return domain.Destination{State: strings.TrimSpace(s)}
	}
	return domain.Destination{State: strings.TrimSpace(state), Insert: blankable(set)}
}

// constraint reads [op, n]; "-" or null means no guard.
func (p *parser) constraint(i int, v any) *domain.Constraint {
	row, ok := v.([]any)
	if !ok {
		if blankable(v) != "" {
			p.addf("T[%d]: expected [operator, bound], got %v", i, v)
		}
		return nil
	}
	if len(row) != 2 {
		p.addf("T[%d]: expected [operator, bound], got %d fields", i, len(row))
		return nil
	}
	op, err := domain.ParseOperator(scalar(row[0]))
	if err != nil {
		p.addf("T[%d]: %v", i, err)
		return nil
	}
	bound, err := strconv.Atoi(scalar(row[1]))
	if err != nil {
		p.addf("T[%d]: invalid bound %v", i, row[1])
		return nil
	}
	return &domain.Constraint{Op: op, Bound: bound}
}

func (p *parser) instruction(i int, v any) domain.Instruction {
	s := scalar(v)
	if n, ok := domain.NormalizeValue(v).(int64); ok && n > 0 {
		s = "+" + strconv.FormatInt(n, 10)
	}
	inst, err := domain.ParseInstruction(s)
	if err != nil {
		p.addf("T[%d]: %v", i, err)
	}
	return inst
}

// registers reads R0. Null, "" and "-" are ⊥; numeric strings become numbers.
func registers(r0 map[string]any) map[string]domain.Value {
	out := make(map[string]domain.Value, len(r0))
	for k, v := range r0 {
		if blankable(v) == "" {
			out[k] = nil
			continue
		}
		out[k] = DataValue(v)
	}
	return out
}

// DataValue normalizes a data value read off the wire.
func DataValue(v any) domain.Value {
	if s, ok := v.(string); ok {
		t := strings.TrimSpace(s)
		if i, err := strconv.ParseInt(t, 10, 64); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(t, 64); err == nil {
			return domain.NormalizeValue(f)
		}
		return s
	}
	return domain.NormalizeValue(v)
}

// scalar renders a wire scalar as a name.
func scalar(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case json.Number:
		return x.String()
	}
	return fmt.Sprint(domain.NormalizeValue(v))
}

// blankable renders v, mapping the "no value" spellings to "".
func blankable(v any) string {
	s := scalar(v)
	switch s {
	case "-", "⊥", "none", "None", "null":
		return ""
	}
	return s
}
