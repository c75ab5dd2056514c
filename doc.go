/*
Package automata decides acceptance and emptiness for five families of
finite automata: plain nondeterministic automata (NFA), register automata
(RA), set augmented automata (SAFA), class counting automata (CCA) and class
memory automata (CMA).

The last four read data words: every input element pairs a symbol from a
finite alphabet with a value from an unbounded domain. Their transitions are
guarded by registers, sets, per-value counters or per-value memory.

# Concept

An automaton is a plain domain.Description tagged with its domain.Variant.
The engine validates it, indexes its transitions and runs a breadth-first
search over configurations (state plus variant payload) for every word.
Emptiness is decided on a finite abstraction and is offered for NFA and SAFA.

Searches over data words can blow up; every evaluation carries an exploration
budget and fails with domain.BudgetExceededError rather than returning a
guess.

# Usage

	eng := automata.New(automata.WithWorkers(4))

	verdicts, err := eng.Evaluate(ctx, domain.EvaluationRequest{
		Variant:     domain.VariantRA,
		Description: desc,
		Words:       []domain.Word{{domain.Datum("set", 5)}},
	})

	empty, err := eng.IsEmpty(ctx, domain.VariantNFA, nfa)

# Adapters

The same engine is exposed over HTTP (pkg/adapters/http), as MCP tools
(pkg/adapters/mcp) and through the automata CLI (cmd/automata). Verdicts can
be memoized in memory, on disk or in Redis through ports.VerdictCache.
*/
package automata
