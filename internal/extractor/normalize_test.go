package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	cases := map[string]string{
		"+44 7700 900123":  "7700900123",
		"07700900123":      "7700900123",
		"+61-412-345-678":  "412345678",
		"0044 (0)20 7946":  "207946",
		"":                 "",
		"7700900123":       "7700900123",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizePhone(in), in)
	}
}

func TestNormalizePunctuation(t *testing.T) {
	assert.Equal(t, "Flat 1, 2 Main St, Leeds", NormalizePunctuation("Flat 1，2 Main St，Leeds"))
	assert.Equal(t, "规格: 大", NormalizePunctuation("规格：大"))
	assert.Equal(t, "A/B", NormalizePunctuation("A／B"))
	assert.Equal(t, "Li (Mr)", NormalizePunctuation("Li（Mr）"))
	assert.Equal(t, "already clean", NormalizePunctuation("already clean"))
}

func TestContainsBlacklisted(t *testing.T) {
	assert.True(t, ContainsBlacklisted("Room 5, Campus House, Leeds"))
	assert.True(t, ContainsBlacklisted("12 cottingham road"))
	assert.True(t, ContainsBlacklisted("Flat 9, Hull"))
	assert.False(t, ContainsBlacklisted("3 Station Rd, Solihull"))
	assert.False(t, ContainsBlacklisted(""))
}
