/*
Package domain contains the core data model of the automaton engine.

It defines the automaton families (variants), the immutable automaton
Description, the input Word, validation of descriptions and the error kinds
shared by every adapter. This package is kept pure and free of external
dependencies like I/O or persistence, following Hexagonal Architecture
principles.

# Key Entities

  - Variant: one of the five supported families (NFA, RA, SAFA, CCA, CMA).
  - Description: states, alphabet, initial/final sets, transitions and the
    variant-specific extras (registers, sets, local/global final states).
  - Transition: a source, a trigger symbol, an optional guard and the
    destinations it may move to.
  - Element / Word: the input consumed by an evaluation, a symbol optionally
    carrying a data value.
*/
package domain
