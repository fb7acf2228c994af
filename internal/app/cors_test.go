package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOriginAllowed(t *testing.T) {
	patterns := []string{"notes.example.com", "*.example.dev", "localhost:*"}

	cases := []struct {
		origin string
		want   bool
	}{
		{"https://notes.example.com", true},
		{"https://app.example.dev", true},
		{"http://localhost:3000", true},
		{"http://localhost:5173", true},
		{"https://evil.example.org", false},
		{"https://example.com", false},
		{"", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, originAllowed(patterns, tc.origin), tc.origin)
	}
}
