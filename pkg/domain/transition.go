package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Destination is one target of a transition.
type Destination struct {
	State State `json:"state" yaml:"state"`

	// Insert names the SAFA set that receives the current data value when
	// this destination is taken. Empty means no insertion.
	Insert string `json:"insert,omitempty" yaml:"insert,omitempty"`
}

// To builds plain destinations (no side effects) for the given states.
func To(states ...State) []Destination {
	out := make([]Destination, len(states))
	for i, s := range states {
		out[i] = Destination{State: s}
	}
	return out
}

// SetCheck is the SAFA guard p(h) or, when Negated, !p(h): the current data
// value must (not) belong to set h.
type SetCheck struct {
	Set     string `json:"set" yaml:"set"`
	Negated bool   `json:"negated,omitempty" yaml:"negated,omitempty"`
}

func (c SetCheck) String() string {
	if c.Negated {
		return "!p(" + c.Set + ")"
	}
	return "p(" + c.Set + ")"
}

// Operator compares a class counter against a bound.
type Operator string

const (
	OpEq Operator = "="
	OpNe Operator = "!="
	OpLt Operator = "<"
	OpLe Operator = "<="
	OpGt Operator = ">"
	OpGe Operator = ">="
)

// ParseOperator accepts the ASCII operators and their unicode spellings.
func ParseOperator(s string) (Operator, error) {
	switch strings.TrimSpace(s) {
	case "=", "==":
		return OpEq, nil
	case "!=", "≠":
		return OpNe, nil
	case "<":
		return OpLt, nil
	case "<=", "≤":
		return OpLe, nil
	case ">":
		return OpGt, nil
	case ">=", "≥":
		return OpGe, nil
	}
	return "", fmt.Errorf("unknown comparison operator %q", s)
}

// Valid reports whether o is one of the supported operators.
func (o Operator) Valid() bool {
	switch o {
	case OpEq, OpNe, OpLt, OpLe, OpGt, OpGe:
		return true
	}
	return false
}

// Compare evaluates "a o b".
func (o Operator) Compare(a, b int) bool {
	switch o {
	case OpEq:
		return a == b
	case OpNe:
		return a != b
	case OpLt:
		return a < b
	case OpLe:
		return a <= b
	case OpGt:
		return a > b
	case OpGe:
		return a >= b
	}
	return false
}

// Constraint is the CCA guard (op, e) over the counter of the current data value.
type Constraint struct {
	Op    Operator `json:"op" yaml:"op"`
	Bound int      `json:"bound" yaml:"bound"`
}

// Holds reports whether the counter value satisfies the constraint.
func (c Constraint) Holds(count int) bool {
	return c.Op.Compare(count, c.Bound)
}

func (c Constraint) String() string {
	return fmt.Sprintf("(%s, %d)", c.Op, c.Bound)
}

// Instruction is the CCA counter update. The zero value leaves the counter unchanged.
type Instruction struct {
	Reset bool `json:"reset,omitempty" yaml:"reset,omitempty"`
	Add   int  `json:"add,omitempty" yaml:"add,omitempty"`
}

// ParseInstruction reads the instruction notation: "*" resets, "0" keeps,
// "+n" adds n.
func ParseInstruction(s string) (Instruction, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "", "0":
		return Instruction{}, nil
	case "*":
		return Instruction{Reset: true}, nil
	}
	n, err := strconv.Atoi(strings.TrimPrefix(s, "+"))
	if err != nil || n < 0 {
		return Instruction{}, fmt.Errorf("invalid counter instruction %q", s)
	}
	return Instruction{Add: n}, nil
}

// Apply returns the counter value after the instruction.
func (i Instruction) Apply(count int) int {
	if i.Reset {
		return 0
	}
	return count + i.Add
}

func (i Instruction) String() string {
	switch {
	case i.Reset:
		return "*"
	case i.Add == 0:
		return "0"
	}
	return "+" + strconv.Itoa(i.Add)
}

// Transition defines a rule to move from one state to a set of states.
// Only the fields relevant to the automaton family are set.
type Transition struct {
	Source State  `json:"source" yaml:"source"`
	Symbol Symbol `json:"symbol" yaml:"symbol"`

	// Register is the RA guard: the register whose content must equal the
	// incoming value. Empty means the transition is unguarded.
	Register string `json:"register,omitempty" yaml:"register,omitempty"`

	// Check is the SAFA membership guard. Nil means unguarded.
	Check *SetCheck `json:"check,omitempty" yaml:"check,omitempty"`

	// Constraint and Instruction are the CCA guard and counter update.
	// A nil constraint fires regardless of the counter.
	Constraint  *Constraint `json:"constraint,omitempty" yaml:"constraint,omitempty"`
	Instruction Instruction `json:"instruction,omitempty" yaml:"instruction,omitempty"`

	// Remembered is the CMA memory guard: the state in which the incoming
	// value was last read. The empty state stands for ⊥ (never read).
	Remembered State `json:"remembered,omitempty" yaml:"remembered,omitempty"`

	Destinations []Destination `json:"destinations" yaml:"destinations"`
}

// Targets returns the destination states in declaration order.
func (t Transition) Targets() []State {
	out := make([]State, len(t.Destinations))
	for i, d := range t.Destinations {
		out[i] = d.State
	}
	return out
}
