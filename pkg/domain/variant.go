package domain

// Variant identifies an automaton family.
type Variant string

const (
	// VariantNFA is a plain nondeterministic finite automaton.
	VariantNFA Variant = "NFA"
	// VariantRA is a register automaton over data words.
	VariantRA Variant = "RA"
	// VariantSAFA is a set augmented finite automaton.
	VariantSAFA Variant = "SAFA"
	// VariantCCA is a class counting automaton.
	VariantCCA Variant = "CCA"
	// VariantCMA is a class memory automaton.
	VariantCMA Variant = "CMA"
)

// Variants returns every recognized family in a stable order.
func Variants() []Variant {
	return []Variant{VariantNFA, VariantRA, VariantSAFA, VariantCCA, VariantCMA}
}

// ParseVariant resolves a variant tag as sent by clients ("NFA", "RA", ...).
func ParseVariant(tag string) (Variant, error) {
	switch v := Variant(tag); v {
	case VariantNFA, VariantRA, VariantSAFA, VariantCCA, VariantCMA:
		return v, nil
	}
	return "", &UnknownVariantError{Tag: tag}
}

// SupportsEmptiness reports whether the emptiness check is offered for the family.
func (v Variant) SupportsEmptiness() bool {
	return v == VariantNFA || v == VariantSAFA
}

// MultipleInitial reports whether the family declares a set of initial states
// rather than a single one.
func (v Variant) MultipleInitial() bool {
	return v == VariantNFA || v == VariantCCA
}

// CarriesData reports whether input elements of the family are expected to
// carry a data value next to the symbol.
func (v Variant) CarriesData() bool {
	return v != VariantNFA
}

func (v Variant) String() string { return string(v) }
