package environment

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/alexisbeaulieu97/flashgenie/internal/domain/theme"
)

func env(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestProbeResolutionOrder(t *testing.T) {
	cases := []struct {
		name     string
		override string
		terminal bool
		detected bool
		want     bool
	}{
		{name: "override dark", override: "dark", terminal: false, want: true},
		{name: "override light beats detection", override: "LIGHT", terminal: true, detected: true, want: false},
		{name: "invalid override falls through", override: "purple", terminal: true, detected: true, want: true},
		{name: "non interactive", terminal: false, detected: true, want: false},
		{name: "terminal light", terminal: true, detected: false, want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			detectorCalled := false
			probe := NewProbe(
				WithGetenv(env(map[string]string{ColorSchemeEnv: tc.override})),
				WithTerminalCheck(func() bool { return tc.terminal }),
				WithDetector(func() bool { detectorCalled = true; return tc.detected }),
			)

			assert.Equal(t, tc.want, probe.PrefersDark())
			if !tc.terminal {
				assert.False(t, detectorCalled)
			}
		})
	}
}

func TestLipglossApplierSetsBackground(t *testing.T) {
	original := lipgloss.HasDarkBackground()
	t.Cleanup(func() { lipgloss.SetHasDarkBackground(original) })

	applier := LipglossApplier{}
	applier.Apply(theme.Dark)
	assert.True(t, lipgloss.HasDarkBackground())

	applier.Apply(theme.Light)
	assert.False(t, lipgloss.HasDarkBackground())
}
