package triage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "lowercases and drops stopwords",
			input:    "I have a Fever and a Headache",
			expected: []string{"fever", "headache"},
		},
		{
			name:     "punctuation becomes spaces without merging words",
			input:    "fever,headache!chills",
			expected: []string{"fever", "headache", "chills"},
		},
		{
			name:     "order follows input and duplicates are kept",
			input:    "fever chills fever",
			expected: []string{"fever", "chills", "fever"},
		},
		{
			name:     "all stopwords",
			input:    "I am so very",
			expected: []string{},
		},
		{
			name:     "empty input",
			input:    "",
			expected: []string{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Normalize(tc.input))
		})
	}
}
