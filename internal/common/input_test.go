package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseChoice(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"plain number", "3", 3},
		{"leading digits win", "12x", 12},
		{"non-numeric is zero", "abc", 0},
		{"empty is zero", "", 0},
		{"whitespace trimmed", "  2 \r\n", 2},
		{"zero stays zero", "0", 0},
		{"negative is zero", "-1", 0},
		{"huge input does not overflow", "99999999999999999999", 0},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseChoice(tc.in))
		})
	}
}

func TestIsDigits(t *testing.T) {
	assert.True(t, IsDigits("0"))
	assert.True(t, IsDigits("042"))
	assert.False(t, IsDigits(""))
	assert.False(t, IsDigits("4 2"))
	assert.False(t, IsDigits("-4"))
	assert.False(t, IsDigits("4.2"))
}

func TestSafeForPrompt(t *testing.T) {
	assert.True(t, SafeForPrompt("alice_01"))
	assert.True(t, SafeForPrompt("p:ss"))

	for _, bad := range []string{"a b", "a\tb", "a;b", "a|b", "a&b", "a<b", "a>b", "a*b", `a"b`, "a\nb"} {
		assert.False(t, SafeForPrompt(bad), "expected %q to be rejected", bad)
	}
}

func TestSafeForRecord(t *testing.T) {
	assert.True(t, SafeForRecord("alice_01"))
	assert.True(t, SafeForRecord("p;ss"))

	for _, bad := range []string{"a b", "a:b", "a\nb", "a\rb"} {
		assert.False(t, SafeForRecord(bad), "expected %q to be rejected", bad)
	}
}
