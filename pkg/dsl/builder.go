package dsl

import (
	"fmt"

	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/domain"
)

// Builder manages the description construction.
type Builder struct {
	variant     domain.Variant
	desc        domain.Description
	transitions []*TransitionBuilder
}

// New creates a builder for the given family.
func New(variant domain.Variant) *Builder {
	return &Builder{variant: variant}
}

// States declares states, in order.
func (b *Builder) States(states ...domain.State) *Builder {
	b.desc.States = append(b.desc.States, states...)
	return b
}

// Alphabet declares symbols.
func (b *Builder) Alphabet(symbols ...domain.Symbol) *Builder {
	b.desc.Alphabet = append(b.desc.Alphabet, symbols...)
	return b
}

// Initial marks initial states.
func (b *Builder) Initial(states ...domain.State) *Builder {
	b.desc.Initial = append(b.desc.Initial, states...)
	return b
}

// Final marks final states.
func (b *Builder) Final(states ...domain.State) *Builder {
	b.desc.Final = append(b.desc.Final, states...)
	return b
}

// LocalFinal marks CMA local final states.
func (b *Builder) LocalFinal(states ...domain.State) *Builder {
	b.desc.LocalFinal = append(b.desc.LocalFinal, states...)
	return b
}

// GlobalFinal marks CMA global final states.
func (b *Builder) GlobalFinal(states ...domain.State) *Builder {
	b.desc.GlobalFinal = append(b.desc.GlobalFinal, states...)
	return b
}

// Registers sets the RA initial valuation; nil values are ⊥.
func (b *Builder) Registers(valuation map[string]any) *Builder {
	if b.desc.Registers == nil {
		b.desc.Registers = make(map[string]domain.Value, len(valuation))
	}
	for name, v := range valuation {
		b.desc.Registers[name] = domain.NormalizeValue(v)
	}
	return b
}

// Update stores the value read on symbol in state into register.
func (b *Builder) Update(state domain.State, symbol domain.Symbol, register string) *Builder {
	b.desc.Updates = append(b.desc.Updates, domain.Update{State: state, Symbol: symbol, Register: register})
	return b
}

// Sets declares SAFA sets.
func (b *Builder) Sets(sets ...string) *Builder {
	b.desc.Sets = append(b.desc.Sets, sets...)
	return b
}

// Discipline selects a named SAFA synchronization discipline.
func (b *Builder) Discipline(name string) *Builder {
	b.desc.Discipline = name
	return b
}

// Acceptance selects a named CMA acceptance rule.
func (b *Builder) Acceptance(name string) *Builder {
	b.desc.Acceptance = name
	return b
}

// On starts a transition reading symbol in source.
func (b *Builder) On(source domain.State, symbol domain.Symbol) *TransitionBuilder {
	tb := &TransitionBuilder{t: domain.Transition{Source: source, Symbol: symbol}}
	b.transitions = append(b.transitions, tb)
	return tb
}

// Build validates and returns the description.
func (b *Builder) Build() (*domain.Description, error) {
	desc := b.desc
	desc.Transitions = make([]domain.Transition, len(b.transitions))
	for i, tb := range b.transitions {
		desc.Transitions[i] = tb.t
	}
	if err := desc.Validate(b.variant); err != nil {
		return nil, err
	}
	return &desc, nil
}

// Suite builds the description and wraps it with words and expectations.
func (b *Builder) Suite(id string, words []domain.Word, expect ...bool) (*domain.Suite, error) {
	desc, err := b.Build()
	if err != nil {
		return nil, err
	}
	if len(expect) > 0 && len(expect) != len(words) {
		return nil, fmt.Errorf("suite %s: %d expectations for %d words", id, len(expect), len(words))
	}
	return &domain.Suite{ID: id, Variant: b.variant, Description: desc, Words: words, Expect: expect}, nil
}

// Loader compiles suites into a memory SuiteLoader.
func Loader(suites ...*domain.Suite) (*memory.Loader, error) {
	loader, err := memory.NewFromSuites(suites...)
	if err != nil {
		return nil, fmt.Errorf("failed to build memory loader: %w", err)
	}
	return loader, nil
}
