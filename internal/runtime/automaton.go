package runtime

import (
	"context"
	"fmt"
	"sort"

	"github.com/aretw0/automata/pkg/domain"
)

// Automaton is a validated, indexed description ready to decide words.
// It is read-only and safe for concurrent use.
type Automaton interface {
	Variant() domain.Variant
	// Strategy identifies the pluggable discipline or acceptance rule the
	// automaton was compiled with, empty for families without one.
	Strategy() string
	// Accepts decides a single word. The budget caps explored configurations
	// for data-carrying variants; zero disables the cap.
	Accepts(ctx context.Context, word domain.Word, budget int) (Verdict, error)
	// Emptiness searches for a reachable accepting node of the variant's
	// finite abstraction.
	Emptiness(ctx context.Context) (Reachability, error)
}

type machine[P any] struct {
	variant domain.Variant
	index   *Index
	sem     Semantics[P]
	metered bool
	graph   func(ctx context.Context) (Reachability, error)
	// strategy fingerprints the plugged rule for verdict caching.
	strategy string
}

func (m *machine[P]) Variant() domain.Variant { return m.variant }

func (m *machine[P]) Strategy() string { return m.strategy }

func (m *machine[P]) Accepts(ctx context.Context, word domain.Word, budget int) (Verdict, error) {
	quota := &Quota{Variant: m.variant}
	if m.metered {
		quota.Limit = budget
	}
	return Accepts(ctx, m.sem, m.index, word, quota)
}

func (m *machine[P]) Emptiness(ctx context.Context) (Reachability, error) {
	if m.graph == nil {
		return Reachability{}, &domain.UnsupportedOperationError{Operation: "emptiness check", Variant: m.variant}
	}
	return m.graph(ctx)
}

// CompileOption configures Compile.
type CompileOption func(*compileConfig)

type compileConfig struct {
	disciplines map[string]SetDiscipline
	acceptances map[string]MemoryAcceptance
}

// WithSetDiscipline registers a SAFA discipline under name, selectable by
// the description's Discipline field.
func WithSetDiscipline(name string, d SetDiscipline) CompileOption {
	return func(c *compileConfig) {
		c.disciplines[name] = d
	}
}

// WithMemoryAcceptance registers a CMA acceptance rule under name, selectable
// by the description's Acceptance field.
func WithMemoryAcceptance(name string, a MemoryAcceptance) CompileOption {
	return func(c *compileConfig) {
		c.acceptances[name] = a
	}
}

// Compile validates the description and builds the automaton for the variant.
// The description is copied, so later changes by the caller are not observed.
func Compile(v domain.Variant, desc *domain.Description, opts ...CompileOption) (Automaton, error) {
	if _, err := domain.ParseVariant(string(v)); err != nil {
		return nil, err
	}
	if err := desc.Validate(v); err != nil {
		return nil, err
	}

	cfg := &compileConfig{
		disciplines: map[string]SetDiscipline{DisciplineMembership: MembershipDiscipline{}},
		acceptances: map[string]MemoryAcceptance{
			AcceptanceClassMemory: ClassMemoryAcceptance{},
			AcceptanceLocalGlobal: LocalGlobalAcceptance{},
		},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	d := desc.Clone()
	idx := NewIndex(d.Transitions)

	switch v {
	case domain.VariantNFA:
		return newNFA(d, idx), nil
	case domain.VariantRA:
		return newRA(d, idx), nil
	case domain.VariantSAFA:
		name := d.Discipline
		if name == "" {
			name = DisciplineMembership
		}
		disc, ok := cfg.disciplines[name]
		if !ok {
			return nil, unknownStrategy(v, "synchronization discipline", name, cfg.disciplines)
		}
		return newSAFA(d, idx, disc, fingerprint(name, disc)), nil
	case domain.VariantCCA:
		return newCCA(d, idx), nil
	case domain.VariantCMA:
		name := d.Acceptance
		if name == "" {
			name = AcceptanceClassMemory
		}
		acc, ok := cfg.acceptances[name]
		if !ok {
			return nil, unknownStrategy(v, "acceptance rule", name, cfg.acceptances)
		}
		return newCMA(d, idx, acc, fingerprint(name, acc)), nil
	}
	return nil, &domain.UnknownVariantError{Tag: string(v)}
}

// fingerprint renders a registered strategy by name, concrete type and
// contents, so that two engines registering different rules under one name
// never share verdicts.
func fingerprint(name string, strategy any) string {
	return fmt.Sprintf("%s=%T%+v", name, strategy, strategy)
}

func unknownStrategy[T any](v domain.Variant, kind, name string, known map[string]T) error {
	names := make([]string, 0, len(known))
	for n := range known {
		names = append(names, n)
	}
	sort.Strings(names)
	return &domain.ValidationError{
		Variant:  v,
		Problems: []string{fmt.Sprintf("unknown %s %q (known: %v)", kind, name, names)},
	}
}
