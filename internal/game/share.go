package game

import (
	"fmt"
	"strings"
)

// ShareMessage assembles the shareable result text. playStreak is the
// player's consecutive-day streak and is only shown once it exceeds one day.
func ShareMessage(results Results, playStreak int, title, url string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s #%d\n", title, results.Edition)
	fmt.Fprintf(&b, "%d/%d", results.Score, results.Total)
	if playStreak > 1 {
		fmt.Fprintf(&b, " 🔥%d", playStreak)
	}
	b.WriteString("\n")
	b.WriteString(results.Grid)
	b.WriteString("\n\n")
	b.WriteString(url)
	return b.String()
}
