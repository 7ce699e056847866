// Package theme defines the light/dark preference value.
package theme

// Preference is the visual mode preference.
type Preference string

const (
	Light Preference = "light"
	Dark  Preference = "dark"
)

// Default is used when neither storage nor the environment decides.
const Default = Light

// StorageKey is the fixed durable-storage key the preference is persisted under.
const StorageKey = "flashcardGenieTheme"

// Parse accepts exactly "light" or "dark". Padding and case variants are
// rejected.
func Parse(value string) (Preference, bool) {
	switch p := Preference(value); p {
	case Light, Dark:
		return p, true
	default:
		return "", false
	}
}

// IsDark reports whether p is the dark preference.
func (p Preference) IsDark() bool {
	return p == Dark
}

func (p Preference) String() string {
	return string(p)
}
