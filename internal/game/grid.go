package game

import "strings"

// Grid glyphs. The placeholder keeps bonus-row cells aligned under their
// main-row column without implying a score.
const (
	GlyphCorrect     = "🔲"
	GlyphIncorrect   = "⬛"
	GlyphPlaceholder = "·"
)

// Grid is the glyph matrix summarizing one game: one main-row cell per round
// and, when any round had a bonus, a second row keyed on the bonus outcomes.
// Both encodings below derive from this matrix so they cannot disagree.
type Grid struct {
	Main  []string
	Bonus []string // empty when no round earned a bonus
}

// RenderGrid maps round outcomes to the glyph matrix.
func RenderGrid(answers []RoundAnswer) Grid {
	grid := Grid{Main: make([]string, 0, len(answers))}

	hasBonusRow := false
	for _, answer := range answers {
		if answer.HasBonus {
			hasBonusRow = true
			break
		}
	}

	for _, answer := range answers {
		if answer.Correct {
			grid.Main = append(grid.Main, GlyphCorrect)
		} else {
			grid.Main = append(grid.Main, GlyphIncorrect)
		}
		if !hasBonusRow {
			continue
		}
		switch {
		case !answer.HasBonus:
			grid.Bonus = append(grid.Bonus, GlyphPlaceholder)
		case answer.BonusCorrect != nil && *answer.BonusCorrect:
			grid.Bonus = append(grid.Bonus, GlyphCorrect)
		default:
			grid.Bonus = append(grid.Bonus, GlyphIncorrect)
		}
	}

	return grid
}

// ShareText is the compact plain-text encoding: the main row concatenated,
// then the bonus row space-joined on its own line when present.
func (g Grid) ShareText() string {
	var b strings.Builder
	b.WriteString(strings.Join(g.Main, ""))
	if len(g.Bonus) > 0 {
		b.WriteString("\n")
		b.WriteString(strings.Join(g.Bonus, " "))
	}
	return b.String()
}

// Rows is the positional encoding for on-screen rendering: one slice of
// cells per emitted row.
func (g Grid) Rows() [][]string {
	rows := [][]string{append([]string(nil), g.Main...)}
	if len(g.Bonus) > 0 {
		rows = append(rows, append([]string(nil), g.Bonus...))
	}
	return rows
}
