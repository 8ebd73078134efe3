package dialog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractNumbers(t *testing.T) {
	tests := []struct {
		input string
		want  []int
	}{
		{"5 days and 2 people", []int{5, 2}},
		{"3", []int{3}},
		{"no numbers here", nil},
		{"", nil},
		{"10days2people", []int{10, 2}},
		{"trip on 2025-03-01", []int{2025, 3, 1}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, extractNumbers(tt.input), "input %q", tt.input)
	}
}
