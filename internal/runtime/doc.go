/*
Package runtime implements the decision procedures shared by every automaton
family.

A Description is compiled into an Automaton: an Index of transitions grouped
by (source, symbol) plus the family's Semantics, which tells the generic
breadth-first search how configurations start, move and accept. The same
search decides acceptance for all five families; emptiness is a reachability
question on a finite abstraction (Graph) that only NFA and SAFA provide.

Searches over data-carrying families charge a Quota for every configuration
they generate, so runaway nondeterminism ends in a BudgetExceededError instead
of an unbounded loop.
*/
package runtime
