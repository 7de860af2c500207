package daily

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// salt is embedded obfuscation, not a security boundary: anyone reading the
// binary can recover it and compute every future key. Its only job is to keep
// tomorrow's content file name unguessable to casual players.
const salt = "DailyDeparted2024SecretSalt!@#$"

// Epoch is the launch date. Edition 1 is the puzzle for this day.
var Epoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

const dateLayout = "2006-01-02"

// Key derives the content-lookup token for a date: the first 16 hex
// characters of sha256(salt + ":" + YYYY-MM-DD), with the date always taken
// in UTC so every player worldwide resolves the same key.
func Key(t time.Time) string {
	sum := sha256.Sum256([]byte(salt + ":" + DateString(t)))
	return hex.EncodeToString(sum[:])[:16]
}

// Edition returns the puzzle number for a date, counted from Epoch.
func Edition(t time.Time) int {
	return EditionSince(t, Epoch)
}

// EditionSince counts whole UTC calendar days from epoch to t, plus one.
// Dates at or before the epoch all map to edition 1.
func EditionSince(t, epoch time.Time) int {
	days := int(midnightUTC(t).Sub(midnightUTC(epoch)) / (24 * time.Hour))
	if days < 0 {
		days = 0
	}
	return days + 1
}

// Resolve picks the effective date for a session: an 8-digit YYYYMMDD
// override wins, anything else falls back to the clock. A malformed override
// is ignored silently so a bad query parameter never breaks the game.
func Resolve(override string, now func() time.Time) time.Time {
	if now == nil {
		now = time.Now
	}
	if len(override) == 8 {
		if t, err := time.ParseInLocation("20060102", override, time.UTC); err == nil {
			return t
		}
	}
	return now().UTC()
}

// DateString formats a date as the canonical YYYY-MM-DD UTC string used for
// key derivation and every persisted-record date comparison.
func DateString(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

// Seed returns the numeric YYYYMMDD form of the date, the per-day seed for
// the content shuffle.
func Seed(t time.Time) uint32 {
	t = t.UTC()
	return uint32(t.Year()*10000 + int(t.Month())*100 + t.Day())
}

func midnightUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
