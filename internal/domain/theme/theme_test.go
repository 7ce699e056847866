package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	cases := []struct {
		input string
		want  Preference
		ok    bool
	}{
		{"light", Light, true},
		{"dark", Dark, true},
		{" dark\n", "", false},
		{"light ", "", false},
		{"Dark", "", false},
		{"purple", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		got, ok := Parse(tc.input)
		assert.Equal(t, tc.ok, ok, "input %q", tc.input)
		assert.Equal(t, tc.want, got, "input %q", tc.input)
	}
}

func TestPreferenceHelpers(t *testing.T) {
	assert.True(t, Dark.IsDark())
	assert.False(t, Light.IsDark())
	assert.Equal(t, Light, Default)
	assert.Equal(t, "dark", Dark.String())
}
