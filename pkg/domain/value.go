package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// State is the name of an automaton state.
type State = string

// Symbol is a letter of the finite alphabet.
type Symbol = string

// Value is a data value attached to an input element. After normalization it
// is one of int64, float64, string, bool or nil (⊥).
type Value = any

// Element is one position of an input word.
type Element struct {
	Symbol   Symbol `json:"symbol" yaml:"symbol"`
	Value    Value  `json:"value,omitempty" yaml:"value,omitempty"`
	HasValue bool   `json:"has_value,omitempty" yaml:"has_value,omitempty"`
}

// Word is an input sequence.
type Word []Element

// Sym builds an element carrying only a symbol.
func Sym(symbol Symbol) Element {
	return Element{Symbol: symbol}
}

// Datum builds an element carrying a symbol and a normalized data value.
func Datum(symbol Symbol, value any) Element {
	return Element{Symbol: symbol, Value: NormalizeValue(value), HasValue: true}
}

// Symbols builds a plain word out of symbols.
func Symbols(symbols ...Symbol) Word {
	w := make(Word, len(symbols))
	for i, s := range symbols {
		w[i] = Sym(s)
	}
	return w
}

func (e Element) String() string {
	if !e.HasValue {
		return e.Symbol
	}
	return fmt.Sprintf("(%s, %s)", e.Symbol, FormatValue(e.Value))
}

func (w Word) String() string {
	parts := make([]string, len(w))
	for i, e := range w {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// NormalizeValue folds the numeric zoo of JSON/YAML decoders into int64 or
// float64 so that equal data compare equal regardless of their origin.
// Integral floats become int64.
func NormalizeValue(v any) Value {
	switch x := v.(type) {
	case nil:
		return nil
	case int:
		return int64(x)
	case int8:
		return int64(x)
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case int64:
		return x
	case uint:
		return int64(x)
	case uint8:
		return int64(x)
	case uint16:
		return int64(x)
	case uint32:
		return int64(x)
	case uint64:
		return int64(x)
	case float32:
		return normalizeFloat(float64(x))
	case float64:
		return normalizeFloat(x)
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i
		}
		if f, err := x.Float64(); err == nil {
			return normalizeFloat(f)
		}
		return x.String()
	case string, bool:
		return x
	}
	return fmt.Sprint(v)
}

func normalizeFloat(f float64) Value {
	if f == math.Trunc(f) && !math.IsInf(f, 0) && math.Abs(f) < 1<<53 {
		return int64(f)
	}
	return f
}

// ValueKey renders a normalized value as a typed key. Distinct values have
// distinct keys; "1" and 1 do not collide.
func ValueKey(v Value) string {
	switch x := NormalizeValue(v).(type) {
	case nil:
		return "⊥"
	case int64:
		return "i:" + strconv.FormatInt(x, 10)
	case float64:
		return "f:" + strconv.FormatFloat(x, 'g', -1, 64)
	case string:
		return "s:" + x
	case bool:
		return "b:" + strconv.FormatBool(x)
	default:
		return "s:" + fmt.Sprint(x)
	}
}

// FormatValue renders a value for humans; ⊥ for nil.
func FormatValue(v Value) string {
	if v == nil {
		return "⊥"
	}
	return fmt.Sprint(v)
}
