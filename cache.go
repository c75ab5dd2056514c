package automata

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/aretw0/automata/pkg/domain"
)

type verdictKey struct {
	Variant     domain.Variant      `json:"variant"`
	Strategy    string              `json:"strategy,omitempty"`
	Description *domain.Description `json:"description"`
	Word        []keyElement        `json:"word"`
}

type keyElement struct {
	Symbol string `json:"s"`
	Value  string `json:"v,omitempty"`
}

// VerdictKey derives the cache key of a word for an automaton: a SHA-256 of
// the canonical JSON encoding of the variant, the strategy fingerprint, the
// description and the word. Values are encoded with their type, so "1" and 1
// yield different keys.
func VerdictKey(variant domain.Variant, strategy string, desc *domain.Description, word domain.Word) (string, error) {
	k := verdictKey{Variant: variant, Strategy: strategy, Description: desc, Word: make([]keyElement, len(word))}
	for i, e := range word {
		k.Word[i] = keyElement{Symbol: e.Symbol}
		if e.HasValue {
			k.Word[i].Value = domain.ValueKey(e.Value)
		}
	}
	data, err := json.Marshal(k)
	if err != nil {
		return "", fmt.Errorf("failed to encode verdict key: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
