package content

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"daily-departed/internal/daily"
	"daily-departed/internal/game"
)

// Provider derives day documents from a catalog on the server side. Selection
// is the same seeded shuffle the file generator uses, so a pre-rendered file
// and an on-demand answer for the same date are identical.
type Provider struct {
	catalog []game.Subject
	horizon int
	now     func() time.Time

	mu      sync.Mutex
	index   map[string]time.Time // daily key -> date it unlocks
	indexed time.Time            // last date covered by index
}

// DefaultHorizon is how many days past today the key index covers. Keys
// further out resolve once the clock catches up.
const DefaultHorizon = 7

func NewProvider(catalog []game.Subject, horizon int, now func() time.Time) (*Provider, error) {
	if err := ValidateCatalog(catalog); err != nil {
		return nil, err
	}
	if horizon <= 0 {
		horizon = DefaultHorizon
	}
	if now == nil {
		now = time.Now
	}
	return &Provider{
		catalog: catalog,
		horizon: horizon,
		now:     now,
		index:   make(map[string]time.Time),
	}, nil
}

// SubjectsForKey resolves a daily key to its ten subjects. Unknown keys
// (mistyped or beyond the horizon) report not-found without hinting which.
func (p *Provider) SubjectsForKey(key string) ([]game.Subject, bool) {
	p.mu.Lock()
	p.ensureIndexLocked()
	date, ok := p.index[key]
	p.mu.Unlock()
	if !ok {
		return nil, false
	}
	return p.SubjectsForDate(date), true
}

// SubjectsForDate picks the date's ten subjects: a Mulberry32 shuffle seeded
// by the numeric date, first ten taken, then rebalanced so a day is never
// all-alive or all-dead.
func (p *Provider) SubjectsForDate(t time.Time) []game.Subject {
	rng := daily.NewRand(daily.Seed(t))
	shuffled := daily.Pick(rng, p.catalog, len(p.catalog))

	picked := append([]game.Subject(nil), shuffled[:DaySize]...)
	rest := shuffled[DaySize:]

	if uniform, status := allSameStatus(picked); uniform {
		for idx, candidate := range rest {
			if candidate.Status() != status {
				picked[DaySize-1] = rest[idx]
				break
			}
		}
	}
	return picked
}

// Manifest maps edition numbers to daily keys for every indexed date. This
// is the one document that reveals the ordering; day files themselves carry
// no date.
func (p *Provider) Manifest() map[string]string {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ensureIndexLocked()

	manifest := make(map[string]string, len(p.index))
	for key, date := range p.index {
		manifest[strconv.Itoa(daily.Edition(date))] = key
	}
	return manifest
}

// WriteDays pre-renders n day files starting at from, plus the manifest,
// into dir. Filenames are the hashed daily keys, matching what the client
// derives.
func (p *Provider) WriteDays(dir string, from time.Time, n int) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	manifest := make(map[string]string, n)
	for i := 0; i < n; i++ {
		date := from.UTC().AddDate(0, 0, i)
		key := daily.Key(date)

		encoded, err := json.Marshal(p.SubjectsForDate(date))
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(dir, key+".json"), encoded, 0o644); err != nil {
			return err
		}
		manifest[strconv.Itoa(daily.Edition(date))] = key
	}

	encoded, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "manifest.json"), encoded, 0o644)
}

// ensureIndexLocked extends the key index to cover epoch through
// today+horizon. Called with p.mu held.
func (p *Provider) ensureIndexLocked() {
	target := truncateDay(p.now().UTC().AddDate(0, 0, p.horizon))
	if !p.indexed.IsZero() && !p.indexed.Before(target) {
		return
	}

	start := daily.Epoch
	if !p.indexed.IsZero() {
		start = p.indexed.AddDate(0, 0, 1)
	}
	for date := start; !date.After(target); date = date.AddDate(0, 0, 1) {
		p.index[daily.Key(date)] = date
	}
	p.indexed = target
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func allSameStatus(subjects []game.Subject) (bool, game.Status) {
	if len(subjects) == 0 {
		return false, ""
	}
	status := subjects[0].Status()
	for _, subject := range subjects[1:] {
		if subject.Status() != status {
			return false, ""
		}
	}
	return true, status
}

// String implements a compact description for logs.
func (p *Provider) String() string {
	return fmt.Sprintf("provider(catalog=%d, horizon=%dd)", len(p.catalog), p.horizon)
}
