package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCSV(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: nil,
		},
		{
			name:     "single symbol",
			input:    "AAPL",
			expected: []string{"AAPL"},
		},
		{
			name:     "multiple symbols",
			input:    "AAPL,TSLA,NVDA",
			expected: []string{"AAPL", "TSLA", "NVDA"},
		},
		{
			name:     "spaces around values",
			input:    " AAPL , 005930.KS ",
			expected: []string{"AAPL", "005930.KS"},
		},
		{
			name:     "trailing comma",
			input:    "AAPL,",
			expected: []string{"AAPL"},
		},
		{
			name:     "leading comma",
			input:    ",TSLA",
			expected: []string{"TSLA"},
		},
		{
			name:     "only spaces",
			input:    "   ",
			expected: nil,
		},
		{
			name:     "comma only",
			input:    ",",
			expected: nil,
		},
		{
			name:     "repeated commas",
			input:    ",,AAPL,,TSLA,,",
			expected: []string{"AAPL", "TSLA"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseCSV(tt.input))
		})
	}
}
