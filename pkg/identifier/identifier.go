// Package identifier canonicalizes raw membership numbers and player keys
// into a single comparable form.
//
// Source spreadsheets disagree on how identifiers are typed: the same
// membership number may arrive as the text "1050", the text "1050.0", or a
// numeric cell 1050. Normalize folds all of these into the ID "1050" while
// keeping non-numeric keys such as "AB-12" as trimmed literal text.
//
// Normalization has no failure mode. Any value that does not parse as a
// decimal numeric literal is retained verbatim (after trimming).
package identifier

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// ID is a canonical identifier. The zero value is the empty identifier,
// which never matches anything and is never indexed.
type ID string

// String returns the string representation of an ID.
func (id ID) String() string {
	return string(id)
}

// IsEmpty reports whether id is the empty identifier.
func (id ID) IsEmpty() bool {
	return id == ""
}

// IsNumeric reports whether id has the shape of a canonical number:
// an optional leading minus followed by one or more digits.
func (id ID) IsNumeric() bool {
	s := string(id)
	s = strings.TrimPrefix(s, "-")
	return s != "" && isDigits(s)
}

// Normalize canonicalizes a raw scalar value.
//
// Absent values become the empty ID. Text is trimmed. If the trimmed text is
// a decimal numeric literal the result is its integer truncation rendered in
// base 10, so "1050.0", "1050" and 1050 all normalize to "1050".
func Normalize(raw any) ID {
	switch v := raw.(type) {
	case nil:
		return ""
	case ID:
		return normalizeText(string(v))
	case string:
		return normalizeText(v)
	case json.Number:
		return normalizeText(v.String())
	case int:
		return ID(strconv.FormatInt(int64(v), 10))
	case int8:
		return ID(strconv.FormatInt(int64(v), 10))
	case int16:
		return ID(strconv.FormatInt(int64(v), 10))
	case int32:
		return ID(strconv.FormatInt(int64(v), 10))
	case int64:
		return ID(strconv.FormatInt(v, 10))
	case uint:
		return ID(strconv.FormatUint(uint64(v), 10))
	case uint8:
		return ID(strconv.FormatUint(uint64(v), 10))
	case uint16:
		return ID(strconv.FormatUint(uint64(v), 10))
	case uint32:
		return ID(strconv.FormatUint(uint64(v), 10))
	case uint64:
		return ID(strconv.FormatUint(v, 10))
	case float32:
		return normalizeFloat(float64(v), strconv.FormatFloat(float64(v), 'g', -1, 32))
	case float64:
		return normalizeFloat(v, strconv.FormatFloat(v, 'g', -1, 64))
	case fmt.Stringer:
		return normalizeText(v.String())
	default:
		return normalizeText(fmt.Sprint(v))
	}
}

// normalizeText handles the text form shared by every input type.
func normalizeText(s string) ID {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	// Integer literals are truncated exactly, whatever their length.
	if digits, neg, ok := splitInteger(s); ok {
		n, ok := new(big.Int).SetString(digits, 10)
		if !ok {
			return ID(s)
		}
		if neg {
			n.Neg(n)
		}
		return ID(n.String())
	}

	if !isDecimalLiteral(s) {
		return ID(s)
	}
	return truncateDecimal(s)
}

// truncateDecimal truncates a decimal literal toward zero without going
// through float64, so long identifiers keep every digit. Literals beyond
// the float64 range keep their text.
func truncateDecimal(s string) ID {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return ID(s)
	}
	if math.Abs(f) < 1 {
		return "0"
	}
	r, ok := new(big.Rat).SetString(strings.TrimPrefix(s, "+"))
	if !ok {
		return normalizeFloat(f, s)
	}
	n := new(big.Int).Quo(r.Num(), r.Denom())
	return ID(n.String())
}

// normalizeFloat truncates f toward zero. Values with no integer form
// (NaN, infinities) keep their text.
func normalizeFloat(f float64, text string) ID {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return ID(strings.TrimSpace(text))
	}
	t := math.Trunc(f)
	if t == 0 {
		return "0"
	}
	return ID(strconv.FormatFloat(t, 'f', 0, 64))
}

// splitInteger recognizes [+-]digits.
func splitInteger(s string) (digits string, neg bool, ok bool) {
	switch s[0] {
	case '+':
		s = s[1:]
	case '-':
		s, neg = s[1:], true
	}
	if s == "" || !isDigits(s) {
		return "", false, false
	}
	return s, neg, true
}

// isDecimalLiteral accepts [+-]digits[.digits][(e|E)[+-]digits] with at
// least one mantissa digit. Hex floats, underscores and the special names
// accepted by strconv are rejected.
func isDecimalLiteral(s string) bool {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	mantissa := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		mantissa++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			mantissa++
		}
	}
	if mantissa == 0 {
		return false
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		exp := 0
		for i < len(s) && isDigit(s[i]) {
			i++
			exp++
		}
		if exp == 0 {
			return false
		}
	}
	return i == len(s)
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
