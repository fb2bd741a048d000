package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/moodboard/internal/lifecycle"
	"github.com/desertthunder/moodboard/internal/models"
	"github.com/desertthunder/moodboard/internal/players"
)

const (
	// cardHeight is the rendered height of every card: four content lines plus the border.
	cardHeight   = 6
	headerHeight = 3
	footerHeight = 2
)

// intersection returns the fraction of a block at [top, top+height) that lies
// inside the viewport [offset, offset+viewport).
func intersection(top, height, offset, viewport int) float64 {
	if height <= 0 || viewport <= 0 {
		return 0
	}
	lo := max(top, offset)
	hi := min(top+height, offset+viewport)
	if hi <= lo {
		return 0
	}
	return float64(hi-lo) / float64(height)
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if n <= 0 {
		return ""
	}
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}

// badge describes what an embed is doing.
func badge(st lifecycle.Status, mounted bool) (string, lipgloss.Style) {
	if !mounted {
		return "not mounted", styles.help
	}
	switch st.State {
	case players.StateStatic:
		return "static embed", styles.help
	case players.StateMounting, players.StateNotReady:
		if st.Visible {
			return "loading player… play queued", styles.warn
		}
		return "loading player…", styles.warn
	case players.StateReady:
		switch st.Playback {
		case players.PlaybackPlaying:
			if st.Muted {
				return "▶ playing (muted)", styles.ok
			}
			return "▶ playing", styles.ok
		case players.PlaybackPaused:
			return "❚❚ paused", styles.help
		default:
			return "ready", styles.help
		}
	default:
		return st.State.String(), styles.err
	}
}

func renderCard(item *models.Item, st lifecycle.Status, mounted, focused bool, width int) string {
	inner := max(width-4, 10)
	status, badgeStyle := badge(st, mounted)
	lines := []string{
		styles.title.Render(truncate(item.DisplayTitle(), inner)),
		truncate(fmt.Sprintf("[%s] · %s", item.Category(), item.Provider().Label()), inner),
		badgeStyle.Render(truncate(status, inner)),
		styles.help.Render(truncate(item.URL(), inner)),
	}

	style := styles.card
	if focused {
		style = styles.focus
	}
	return style.Width(inner + 2).Padding(0, 1).Render(strings.Join(lines, "\n"))
}
