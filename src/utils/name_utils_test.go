package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/username/tourdesk/backend/src/utils"
)

func TestNormalizeName(t *testing.T) {
	testCases := []struct {
		input string
		want  string
	}{
		{"JOHN SMITH", "john smith"},
		{"  john   smith  ", "john smith"},
		{"John\tSmith", "john smith"},
		{"", ""},
		{"   ", ""},
		{"Ana Maria Costa", "ana maria costa"},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, utils.NormalizeName(tc.input), "input %q", tc.input)
	}
}

func TestStripNamePunctuation(t *testing.T) {
	testCases := []struct {
		input string
		want  string
	}{
		{"Smith, John", "smith john"},
		{"O'Brien Mr.", "o brien mr"},
		{"Anne-Marie Dupont", "anne marie dupont"},
		{"john smith", "john smith"},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, utils.StripNamePunctuation(tc.input), "input %q", tc.input)
	}
}
