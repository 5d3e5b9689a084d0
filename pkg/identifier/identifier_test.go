package identifier_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/tallysheet/pkg/identifier"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want identifier.ID
	}{
		{name: "nil", raw: nil, want: ""},
		{name: "empty string", raw: "", want: ""},
		{name: "whitespace only", raw: "   \t", want: ""},
		{name: "integer text", raw: "1050", want: "1050"},
		{name: "decimal text", raw: "1050.0", want: "1050"},
		{name: "truncates fraction", raw: "1050.9", want: "1050"},
		{name: "negative truncates toward zero", raw: "-7.9", want: "-7"},
		{name: "negative zero", raw: "-0.4", want: "0"},
		{name: "leading zeros dropped", raw: "00123", want: "123"},
		{name: "plus sign", raw: "+42", want: "42"},
		{name: "exponent", raw: "1.5e3", want: "1500"},
		{name: "padded integer", raw: "  1050 ", want: "1050"},
		{name: "int", raw: 1050, want: "1050"},
		{name: "int64", raw: int64(-3), want: "-3"},
		{name: "uint", raw: uint32(9), want: "9"},
		{name: "float64", raw: 1050.0, want: "1050"},
		{name: "float64 fraction", raw: 1050.75, want: "1050"},
		{name: "json number", raw: json.Number("1050.0"), want: "1050"},
		{name: "long digit string kept exact", raw: "123456789012345678901234", want: "123456789012345678901234"},
		{name: "trailing garbage kept literal", raw: "1050abc", want: "1050abc"},
		{name: "non numeric trimmed", raw: " AB-12 ", want: "AB-12"},
		{name: "hex not numeric", raw: "0x1F", want: "0x1F"},
		{name: "underscore not numeric", raw: "1_000", want: "1_000"},
		{name: "inf kept", raw: "inf", want: "inf"},
		{name: "nan kept", raw: "NaN", want: "NaN"},
		{name: "overflow kept", raw: "1e400", want: "1e400"},
		{name: "lone dot", raw: ".", want: "."},
		{name: "dangling exponent", raw: "12e", want: "12e"},
		{name: "leading dot", raw: ".5", want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, identifier.Normalize(tt.raw))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []any{
		nil, "", " 1050.0 ", "1050", 1050, 1050.5, "-0", "AB-12", " p1 ",
		"1e3", "0x10", "inf", "00042", json.Number("7.25"), "1e400",
		"123456789012345678901234.9",
	}
	for _, in := range inputs {
		once := identifier.Normalize(in)
		twice := identifier.Normalize(once)
		assert.Equal(t, once, twice, "input %#v", in)
	}
}

func TestNormalize_NumericEquivalence(t *testing.T) {
	tests := []struct {
		name string
		raw  []any
		want identifier.ID
	}{
		{name: "short", raw: []any{"1050.0", "1050", 1050, json.Number("1050.0")}, want: "1050"},
		{name: "seventeen digits", raw: []any{"12345678901234567", "12345678901234567.0", "12345678901234567.99"}, want: "12345678901234567"},
		{name: "twenty two digits", raw: []any{"9999999999999999999999", "9999999999999999999999.0", "+9999999999999999999999.5"}, want: "9999999999999999999999"},
		{name: "exponent keeps digits", raw: []any{"1234567890123456789", "1.234567890123456789e18"}, want: "1234567890123456789"},
		{name: "negative long", raw: []any{"-123456789012345678901", "-123456789012345678901.7"}, want: "-123456789012345678901"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, raw := range tt.raw {
				assert.Equal(t, tt.want, identifier.Normalize(raw), "input %#v", raw)
			}
		})
	}
}

func TestID_IsNumeric(t *testing.T) {
	assert.True(t, identifier.ID("100").IsNumeric())
	assert.True(t, identifier.ID("-5").IsNumeric())
	assert.False(t, identifier.ID("").IsNumeric())
	assert.False(t, identifier.ID("-").IsNumeric())
	assert.False(t, identifier.ID("p2").IsNumeric())
	assert.False(t, identifier.ID("1050abc").IsNumeric())
}

func TestID_IsEmpty(t *testing.T) {
	assert.True(t, identifier.ID("").IsEmpty())
	assert.False(t, identifier.ID("0").IsEmpty())
}
