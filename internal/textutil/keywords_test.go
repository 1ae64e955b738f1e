package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractKeywords(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "drops stopwords and punctuation",
			input: "What is the CCNA course fee?",
			want:  []string{"ccna", "course", "fee"},
		},
		{
			name:  "dedupes while preserving order",
			input: "python python course, course in python",
			want:  []string{"python", "course"},
		},
		{
			name:  "keeps digits",
			input: "classes on the 5th of September",
			want:  []string{"classes", "5th", "september"},
		},
		{
			name:  "all stopwords",
			input: "what is this about",
			want:  nil,
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractKeywords(tt.input))
		})
	}
}
