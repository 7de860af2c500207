package content

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"daily-departed/internal/daily"
	"daily-departed/internal/game"
)

func testCatalog(size int) []game.Subject {
	subjects := make([]game.Subject, 0, size)
	for idx := 0; idx < size; idx++ {
		subject := game.Subject{
			ID:         fmt.Sprintf("c%d", idx),
			Name:       fmt.Sprintf("Celebrity %d", idx),
			BirthYear:  1930 + idx%60,
			Profession: "notable person",
		}
		if idx%2 == 0 {
			subject.DeathYear = 2000 + idx%20
			subject.CauseOfDeath = game.Causes[idx%len(game.Causes)]
		}
		subjects = append(subjects, subject)
	}
	return subjects
}

func fixedClock(y int, m time.Month, d int) func() time.Time {
	return func() time.Time { return time.Date(y, m, d, 12, 0, 0, 0, time.UTC) }
}

func newTestProvider(t *testing.T, catalogSize int) *Provider {
	t.Helper()
	provider, err := NewProvider(testCatalog(catalogSize), 7, fixedClock(2024, time.March, 15))
	if err != nil {
		t.Fatalf("NewProvider failed: %v", err)
	}
	return provider
}

func TestProviderResolvesTodayKey(t *testing.T) {
	provider := newTestProvider(t, 40)
	today := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

	subjects, ok := provider.SubjectsForKey(daily.Key(today))
	if !ok {
		t.Fatalf("today's key did not resolve")
	}
	if len(subjects) != DaySize {
		t.Fatalf("expected %d subjects, got %d", DaySize, len(subjects))
	}

	again, ok := provider.SubjectsForKey(daily.Key(today))
	if !ok {
		t.Fatalf("second lookup failed")
	}
	for idx := range subjects {
		if subjects[idx].ID != again[idx].ID {
			t.Fatalf("same key resolved to different picks: %v vs %v", subjects[idx].ID, again[idx].ID)
		}
	}
}

func TestProviderHidesKeysBeyondHorizon(t *testing.T) {
	provider := newTestProvider(t, 40)

	if _, ok := provider.SubjectsForKey(daily.Key(time.Date(2024, time.March, 22, 0, 0, 0, 0, time.UTC))); !ok {
		t.Fatalf("key within horizon should resolve")
	}
	if _, ok := provider.SubjectsForKey(daily.Key(time.Date(2024, time.April, 15, 0, 0, 0, 0, time.UTC))); ok {
		t.Fatalf("key a month out must not resolve")
	}
	if _, ok := provider.SubjectsForKey("deadbeefdeadbeef"); ok {
		t.Fatalf("bogus key must not resolve")
	}
}

func TestProviderPicksMixAliveAndDead(t *testing.T) {
	provider := newTestProvider(t, 24)

	for offset := 0; offset < 30; offset++ {
		date := time.Date(2024, time.March, 1+offset, 0, 0, 0, 0, time.UTC)
		picked := provider.SubjectsForDate(date)

		alive, dead := 0, 0
		for _, subject := range picked {
			if subject.Status() == game.StatusAlive {
				alive++
			} else {
				dead++
			}
		}
		if alive == 0 || dead == 0 {
			t.Fatalf("%s: day must mix statuses, got alive=%d dead=%d", daily.DateString(date), alive, dead)
		}
	}
}

func TestProviderManifestMapsEditionsToKeys(t *testing.T) {
	provider := newTestProvider(t, 40)
	manifest := provider.Manifest()

	today := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	edition := strconv.Itoa(daily.Edition(today))
	if manifest[edition] != daily.Key(today) {
		t.Fatalf("manifest[%s] = %q, want %q", edition, manifest[edition], daily.Key(today))
	}

	// Launch day through today plus the horizon.
	wantEntries := daily.Edition(today) + 7
	if len(manifest) != wantEntries {
		t.Fatalf("manifest has %d entries, want %d", len(manifest), wantEntries)
	}
}

func TestWriteDaysMatchesOnDemandPicks(t *testing.T) {
	provider := newTestProvider(t, 40)
	dir := filepath.Join(t.TempDir(), "days")
	from := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

	if err := provider.WriteDays(dir, from, 3); err != nil {
		t.Fatalf("WriteDays failed: %v", err)
	}

	for offset := 0; offset < 3; offset++ {
		date := from.AddDate(0, 0, offset)
		data, err := os.ReadFile(filepath.Join(dir, daily.Key(date)+".json"))
		if err != nil {
			t.Fatalf("day file missing for %s: %v", daily.DateString(date), err)
		}

		var fromFile []game.Subject
		if err := json.Unmarshal(data, &fromFile); err != nil {
			t.Fatalf("day file is not valid JSON: %v", err)
		}

		onDemand := provider.SubjectsForDate(date)
		if len(fromFile) != len(onDemand) {
			t.Fatalf("file and on-demand picks differ in size")
		}
		for idx := range fromFile {
			if fromFile[idx].ID != onDemand[idx].ID {
				t.Fatalf("file and on-demand picks diverge at %d: %s vs %s", idx, fromFile[idx].ID, onDemand[idx].ID)
			}
		}
	}

	data, err := os.ReadFile(filepath.Join(dir, "manifest.json"))
	if err != nil {
		t.Fatalf("manifest missing: %v", err)
	}
	var manifest map[string]string
	if err := json.Unmarshal(data, &manifest); err != nil {
		t.Fatalf("manifest is not valid JSON: %v", err)
	}
	if len(manifest) != 3 {
		t.Fatalf("manifest has %d entries, want 3", len(manifest))
	}
}

func TestValidateCatalog(t *testing.T) {
	if err := ValidateCatalog(testCatalog(20)); err != nil {
		t.Fatalf("valid catalog rejected: %v", err)
	}

	if err := ValidateCatalog(testCatalog(5)); err == nil {
		t.Fatalf("undersized catalog accepted")
	}

	dup := testCatalog(20)
	dup[3].ID = dup[7].ID
	if err := ValidateCatalog(dup); err == nil {
		t.Fatalf("duplicate ids accepted")
	}

	allAlive := testCatalog(20)
	for idx := range allAlive {
		allAlive[idx].DeathYear = 0
		allAlive[idx].CauseOfDeath = ""
	}
	if err := ValidateCatalog(allAlive); err == nil {
		t.Fatalf("single-status catalog accepted")
	}

	future := testCatalog(20)
	future[0].DeathYear = time.Now().UTC().Year() + 10
	if err := ValidateCatalog(future); err == nil {
		t.Fatalf("future death year accepted")
	}
}
