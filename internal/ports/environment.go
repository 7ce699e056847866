package ports

import "github.com/alexisbeaulieu97/flashgenie/internal/domain/theme"

// ColorSchemeProbe answers "does the host prefer a dark color scheme". Probes
// must not block and report false when the host cannot tell.
type ColorSchemeProbe interface {
	PrefersDark() bool
}

// ThemeApplier propagates a preference to the rendering environment.
type ThemeApplier interface {
	Apply(pref theme.Preference)
}
