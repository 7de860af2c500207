package game

import (
	"errors"
	"fmt"
	"time"
)

// Status is the alive/dead state a player guesses.
type Status string

const (
	StatusAlive Status = "alive"
	StatusDead  Status = "dead"
)

// Cause is a cause-of-death category. The set is closed; day documents may
// additionally carry free-text detail, but bonus guesses are matched on the
// category alone.
type Cause string

const (
	CauseHeart    Cause = "heart"
	CauseCancer   Cause = "cancer"
	CauseAccident Cause = "accident"
	CauseIllness  Cause = "illness"
	CauseViolence Cause = "violence"
	CauseOverdose Cause = "overdose"
)

// Causes lists every category in presentation order.
var Causes = []Cause{CauseHeart, CauseCancer, CauseAccident, CauseIllness, CauseViolence, CauseOverdose}

// Subject is one person the player judges. The JSON shape is the day-document
// schema served by the content provider; a missing deathYear means alive.
type Subject struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	ImageURL          string `json:"imageUrl,omitempty"`
	BirthYear         int    `json:"birthYear"`
	DeathYear         int    `json:"deathYear,omitempty"`
	Profession        string `json:"profession"`
	ProfessionDisplay string `json:"professionDisplay,omitempty"`
	CauseOfDeath      Cause  `json:"causeOfDeath,omitempty"`
	CauseDetail       string `json:"causeDetail,omitempty"`
}

// Status derives alive/dead from the presence of a death year.
func (s Subject) Status() Status {
	if s.DeathYear != 0 {
		return StatusDead
	}
	return StatusAlive
}

// HasBonusCause reports whether a correct "dead" guess on this subject earns
// a bonus sub-round.
func (s Subject) HasBonusCause() bool {
	return s.Status() == StatusDead && s.CauseOfDeath != ""
}

const maxLifespan = 130

// Validate enforces the record invariants: identity and years must be
// present and plausible, and a cause of death can only accompany a death.
func (s Subject) Validate() error {
	if s.ID == "" || s.Name == "" {
		return errors.New("subject is missing id or name")
	}
	currentYear := time.Now().UTC().Year()
	if s.BirthYear < 1000 || s.BirthYear > currentYear {
		return fmt.Errorf("subject %s: implausible birth year %d", s.ID, s.BirthYear)
	}
	if s.DeathYear != 0 {
		if s.DeathYear < s.BirthYear {
			return fmt.Errorf("subject %s: death year %d precedes birth year %d", s.ID, s.DeathYear, s.BirthYear)
		}
		if s.DeathYear-s.BirthYear > maxLifespan {
			return fmt.Errorf("subject %s: lifespan exceeds %d years", s.ID, maxLifespan)
		}
		if s.DeathYear > currentYear {
			return fmt.Errorf("subject %s: death year %d is in the future", s.ID, s.DeathYear)
		}
	} else if s.CauseOfDeath != "" {
		return fmt.Errorf("subject %s: cause of death on a living subject", s.ID)
	}
	if s.CauseOfDeath != "" && !validCause(s.CauseOfDeath) {
		return fmt.Errorf("subject %s: unknown cause category %q", s.ID, s.CauseOfDeath)
	}
	return nil
}

func validCause(c Cause) bool {
	for _, known := range Causes {
		if c == known {
			return true
		}
	}
	return false
}

// DisplayProfession prefers the display form, falling back to the raw label.
func (s Subject) DisplayProfession() string {
	if s.ProfessionDisplay != "" {
		return s.ProfessionDisplay
	}
	return s.Profession
}
