// Package environment answers ambient colour-scheme questions and pushes the
// chosen theme into the lipgloss renderer.
package environment

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/flashgenie/internal/domain/theme"
	"github.com/alexisbeaulieu97/flashgenie/internal/ports"
)

// ColorSchemeEnv overrides terminal detection with "dark" or "light".
const ColorSchemeEnv = "FLASHGENIE_COLOR_SCHEME"

// Probe reports the host's dark-scheme preference.
type Probe struct {
	getenv     func(string) string
	isTerminal func() bool
	detect     func() bool
}

// ProbeOption customises a Probe.
type ProbeOption func(*Probe)

// WithGetenv replaces environment lookup.
func WithGetenv(fn func(string) string) ProbeOption {
	return func(p *Probe) { p.getenv = fn }
}

// WithTerminalCheck replaces the interactive-output check.
func WithTerminalCheck(fn func() bool) ProbeOption {
	return func(p *Probe) { p.isTerminal = fn }
}

// WithDetector replaces terminal background detection.
func WithDetector(fn func() bool) ProbeOption {
	return func(p *Probe) { p.detect = fn }
}

// NewProbe builds a Probe reading the process environment and stdout.
func NewProbe(opts ...ProbeOption) *Probe {
	p := &Probe{
		getenv:     os.Getenv,
		isTerminal: func() bool { return term.IsTerminal(int(os.Stdout.Fd())) },
		detect:     lipgloss.HasDarkBackground,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// PrefersDark implements ports.ColorSchemeProbe. The env override wins; a
// non-interactive stdout reports false without querying the terminal.
func (p *Probe) PrefersDark() bool {
	if pref, ok := theme.Parse(strings.ToLower(strings.TrimSpace(p.getenv(ColorSchemeEnv)))); ok {
		return pref.IsDark()
	}
	if !p.isTerminal() {
		return false
	}
	return p.detect()
}

// LipglossApplier flips lipgloss's dark-background flag so every
// AdaptiveColor resolves to the chosen variant.
type LipglossApplier struct{}

// Apply implements ports.ThemeApplier.
func (LipglossApplier) Apply(pref theme.Preference) {
	lipgloss.SetHasDarkBackground(pref.IsDark())
}

var (
	_ ports.ColorSchemeProbe = (*Probe)(nil)
	_ ports.ThemeApplier     = LipglossApplier{}
)
