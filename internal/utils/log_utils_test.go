package utils_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/navikt/mrooms/internal/utils"
)

func TestSanitizeLogString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"Empty", "", ""},
		{"Plain", "standup", "standup"},
		{"Newlines", "stand\nup\r", "stand up "},
		{"FormatSpecifier", "100%", "100%%"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, utils.SanitizeLogString(tc.input))
		})
	}

	t.Run("Truncated", func(t *testing.T) {
		long := strings.Repeat("a", utils.MaxLogStringLength+50)
		got := utils.SanitizeLogString(long)
		assert.True(t, strings.HasSuffix(got, "... (truncated)"))
		assert.Len(t, got, utils.MaxLogStringLength+len("... (truncated)"))
	})
}
