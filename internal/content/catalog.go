package content

import (
	"encoding/json"
	"fmt"
	"os"

	"daily-departed/internal/game"
)

// LoadCatalog reads and validates the full subject pool that daily picks are
// drawn from.
func LoadCatalog(path string) ([]game.Subject, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var subjects []game.Subject
	if err := json.Unmarshal(data, &subjects); err != nil {
		return nil, fmt.Errorf("malformed catalog %s: %w", path, err)
	}

	if err := ValidateCatalog(subjects); err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return subjects, nil
}

// ValidateCatalog enforces the pool invariants: enough subjects to fill a
// day, unique ids, per-record sanity, and at least one subject of each
// status so a day can always mix alive and dead.
func ValidateCatalog(subjects []game.Subject) error {
	if len(subjects) < DaySize {
		return fmt.Errorf("catalog has %d subjects, need at least %d", len(subjects), DaySize)
	}

	seen := make(map[string]struct{}, len(subjects))
	alive, dead := 0, 0
	for _, subject := range subjects {
		if err := subject.Validate(); err != nil {
			return err
		}
		if _, dup := seen[subject.ID]; dup {
			return fmt.Errorf("duplicate subject id %s", subject.ID)
		}
		seen[subject.ID] = struct{}{}
		if subject.Status() == game.StatusAlive {
			alive++
		} else {
			dead++
		}
	}

	if alive == 0 || dead == 0 {
		return fmt.Errorf("catalog needs both living and deceased subjects (alive=%d dead=%d)", alive, dead)
	}
	return nil
}
