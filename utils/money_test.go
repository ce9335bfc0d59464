package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"100", 10000},
		{"100.5", 10050},
		{"100.50", 10050},
		{"0.99", 99},
		{"0", 0},
		{" 320.00 ", 32000},
	}
	for _, tt := range tests {
		got, err := ParseAmount(tt.in)
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestParseAmountRejectsJunk(t *testing.T) {
	for _, in := range []string{"", "-5", "+5", "1.234", "1.", "abc", "10,50", "1e3"} {
		_, err := ParseAmount(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "320.00", FormatAmount(32000))
	assert.Equal(t, "0.05", FormatAmount(5))
	assert.Equal(t, "-12.30", FormatAmount(-1230))
}
