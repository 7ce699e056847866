package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/flashgenie/internal/domain/flashcard"
)

func TestNewCardList(t *testing.T) {
	t.Parallel()

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		list := NewCardList(nil)
		require.Equal(t, "", list.View(lipgloss.NewStyle(), lipgloss.NewStyle(), 0))
	})

	t.Run("keeps order and strips markup", func(t *testing.T) {
		t.Parallel()
		list := NewCardList([]flashcard.Card{
			{Term: "<b>Atom</b>", Definition: "Smallest unit &amp; building block"},
			{Term: "Ion", Definition: "Charged <script>x()</script>particle"},
		})

		out := list.View(lipgloss.NewStyle(), lipgloss.NewStyle(), 0)
		require.Contains(t, out, "1. Atom")
		require.Contains(t, out, "Smallest unit & building block")
		require.Contains(t, out, "2. Ion")
		require.Contains(t, out, "Charged particle")
		require.Less(t, strings.Index(out, "1. Atom"), strings.Index(out, "2. Ion"))
		require.NotContains(t, out, "<b>")
	})

	t.Run("drops terminal escapes", func(t *testing.T) {
		t.Parallel()
		list := NewCardList([]flashcard.Card{{Term: "Bell\x07", Definition: "&#27;]52;c;aGk=\x07copied"}})

		out := list.View(lipgloss.NewStyle(), lipgloss.NewStyle(), 0)
		require.Contains(t, out, "1. Bell")
		require.Contains(t, out, "copied")
		require.NotContains(t, out, "\x1b")
		require.NotContains(t, out, "\x07")
	})
}
