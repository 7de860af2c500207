package game

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrAlreadyStarted    = errors.New("game already started")
	ErrAlreadyComplete   = errors.New("game already complete")
	ErrNotAwaitingGuess  = errors.New("not awaiting a main guess")
	ErrNotAwaitingBonus  = errors.New("not awaiting a bonus guess")
	ErrNotReadyToAdvance = errors.New("current round is not finished")
	ErrInvalidGuess      = errors.New("guess must be alive or dead")
)

// Phase is the state-machine position within a day's play-through.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseGuessing         // awaiting the alive/dead guess for the current round
	PhaseBonus            // awaiting the cause-of-death guess for the current round
	PhaseRevealed         // round resolved, ready to advance
	PhaseComplete
)

// RoundAnswer records the outcome of one completed main round. BonusCorrect
// is set exactly once, immediately after the main answer, and only when the
// round earned a bonus; it stays nil otherwise (and for a bonus forfeited by
// a reload).
type RoundAnswer struct {
	Correct      bool   `json:"correct"`
	ActualStatus Status `json:"actualStatus"`
	HasBonus     bool   `json:"hasBonus"`
	BonusCorrect *bool  `json:"bonusCorrect,omitempty"`
}

// SavedState is the persisted snapshot of an in-progress game.
type SavedState struct {
	Date          string        `json:"date"`
	Round         int           `json:"currentRound"`
	CurrentStreak int           `json:"currentStreak"`
	BestStreak    int           `json:"bestStreak"`
	Answers       []RoundAnswer `json:"answers"`
	Complete      bool          `json:"complete"`
}

// Results is the finalized summary of a completed game.
type Results struct {
	Date       string        `json:"date"`
	Edition    int           `json:"edition"`
	Score      int           `json:"score"`
	Total      int           `json:"total"`
	MainScore  int           `json:"mainScore"`
	BonusScore int           `json:"bonusScore"`
	BonusTotal int           `json:"bonusTotal"`
	BestStreak int           `json:"bestStreak"`
	Answers    []RoundAnswer `json:"answers"`
	Grid       string        `json:"grid"`
}

// Recorder receives every state-changing event so progress survives a
// process exit. Implemented by store.GameStore.
type Recorder interface {
	SaveState(ctx context.Context, state SavedState) error
	SaveResults(ctx context.Context, results Results) error
}

// Config fixes the shape of one day's game.
type Config struct {
	Rounds  int    // main rounds per game
	Date    string // canonical YYYY-MM-DD the session is valid for
	Edition int
}

const DefaultRounds = 10

// Session is the round state machine for a single day. It is the single
// owner of the in-memory game state; all mutations happen through its
// methods, one event at a time.
type Session struct {
	cfg      Config
	subjects []Subject
	recorder Recorder

	phase   Phase
	round   int // 1-based, 0 before the first round
	streak  int
	best    int
	answers []RoundAnswer
	results *Results
}

// NewSession builds a session over the day's subjects. The subject count
// must match the configured round count.
func NewSession(cfg Config, subjects []Subject, recorder Recorder) (*Session, error) {
	if cfg.Rounds <= 0 {
		cfg.Rounds = DefaultRounds
	}
	if len(subjects) != cfg.Rounds {
		return nil, fmt.Errorf("expected %d subjects, got %d", cfg.Rounds, len(subjects))
	}
	return &Session{
		cfg:      cfg,
		subjects: subjects,
		recorder: recorder,
		phase:    PhaseNotStarted,
	}, nil
}

// Begin starts a fresh game and advances straight into round 1.
func (s *Session) Begin(ctx context.Context) error {
	if s.phase != PhaseNotStarted {
		return ErrAlreadyStarted
	}
	s.round = 0
	s.streak = 0
	s.best = 0
	s.answers = nil
	s.results = nil
	return s.Advance(ctx)
}

// Restore resumes a session from a persisted snapshot instead of Begin.
// A bonus that was pending when the snapshot was taken is not resumed: the
// round's answer already exists with BonusCorrect unset, so the session
// lands in PhaseRevealed and the bonus attempt is forfeited. Intentional
// simplicity, matching the persisted-answers-only schema.
func (s *Session) Restore(saved SavedState) error {
	if s.phase != PhaseNotStarted {
		return ErrAlreadyStarted
	}
	if saved.Complete {
		return ErrAlreadyComplete
	}
	if saved.Round > s.cfg.Rounds || len(saved.Answers) > saved.Round {
		return fmt.Errorf("saved state is inconsistent: round %d with %d answers", saved.Round, len(saved.Answers))
	}
	s.round = saved.Round
	s.streak = saved.CurrentStreak
	s.best = saved.BestStreak
	s.answers = append([]RoundAnswer(nil), saved.Answers...)
	switch {
	case saved.Round == 0:
		s.phase = PhaseNotStarted
	case len(s.answers) >= saved.Round:
		s.phase = PhaseRevealed
	default:
		s.phase = PhaseGuessing
	}
	return nil
}

// SubmitGuess resolves the current round's main question.
func (s *Session) SubmitGuess(ctx context.Context, guess Status) (RoundAnswer, error) {
	if s.phase != PhaseGuessing {
		return RoundAnswer{}, ErrNotAwaitingGuess
	}
	if guess != StatusAlive && guess != StatusDead {
		return RoundAnswer{}, ErrInvalidGuess
	}

	subject := s.subjects[s.round-1]
	actual := subject.Status()
	answer := RoundAnswer{
		Correct:      guess == actual,
		ActualStatus: actual,
	}
	if answer.Correct {
		s.streak++
		if s.streak > s.best {
			s.best = s.streak
		}
		answer.HasBonus = subject.HasBonusCause()
	} else {
		s.streak = 0
	}
	s.answers = append(s.answers, answer)

	if answer.HasBonus {
		s.phase = PhaseBonus
	} else {
		s.phase = PhaseRevealed
	}
	return answer, s.persist(ctx)
}

// SubmitBonus resolves the bonus sub-round that followed the current round's
// correct "dead" guess. It mutates the answer appended by SubmitGuess and
// never an earlier one.
func (s *Session) SubmitBonus(ctx context.Context, guess Cause) (bool, error) {
	if s.phase != PhaseBonus {
		return false, ErrNotAwaitingBonus
	}
	correct := guess == s.subjects[s.round-1].CauseOfDeath
	s.answers[len(s.answers)-1].BonusCorrect = &correct
	s.phase = PhaseRevealed
	return correct, s.persist(ctx)
}

// Advance moves to the next round, or past the last round into Complete.
func (s *Session) Advance(ctx context.Context) error {
	switch s.phase {
	case PhaseComplete:
		return ErrAlreadyComplete
	case PhaseGuessing, PhaseBonus:
		return ErrNotReadyToAdvance
	}
	s.round++
	if s.round > s.cfg.Rounds {
		return s.finish(ctx)
	}
	s.phase = PhaseGuessing
	return s.persist(ctx)
}

func (s *Session) finish(ctx context.Context) error {
	mainScore := 0
	bonusScore := 0
	bonusTotal := 0
	for _, answer := range s.answers {
		if answer.Correct {
			mainScore++
		}
		if answer.HasBonus {
			bonusTotal++
			if answer.BonusCorrect != nil && *answer.BonusCorrect {
				bonusScore++
			}
		}
	}

	results := Results{
		Date:       s.cfg.Date,
		Edition:    s.cfg.Edition,
		Score:      mainScore + bonusScore,
		Total:      s.cfg.Rounds + bonusTotal,
		MainScore:  mainScore,
		BonusScore: bonusScore,
		BonusTotal: bonusTotal,
		BestStreak: s.best,
		Answers:    append([]RoundAnswer(nil), s.answers...),
		Grid:       RenderGrid(s.answers).ShareText(),
	}
	s.results = &results
	s.phase = PhaseComplete

	if s.recorder == nil {
		return nil
	}
	return s.recorder.SaveResults(ctx, results)
}

func (s *Session) persist(ctx context.Context) error {
	if s.recorder == nil {
		return nil
	}
	return s.recorder.SaveState(ctx, s.snapshot())
}

func (s *Session) snapshot() SavedState {
	return SavedState{
		Date:          s.cfg.Date,
		Round:         s.round,
		CurrentStreak: s.streak,
		BestStreak:    s.best,
		Answers:       append([]RoundAnswer(nil), s.answers...),
		Complete:      s.phase == PhaseComplete,
	}
}

// Phase reports the current state-machine position.
func (s *Session) Phase() Phase { return s.phase }

// Round reports the 1-based current round index.
func (s *Session) Round() int { return s.round }

// Rounds reports the configured number of main rounds.
func (s *Session) Rounds() int { return s.cfg.Rounds }

// Streak reports the current run of correct main guesses.
func (s *Session) Streak() int { return s.streak }

// BestStreak reports the best run seen this game.
func (s *Session) BestStreak() int { return s.best }

// CurrentSubject returns the subject for the round in play, or false when no
// round is active.
func (s *Session) CurrentSubject() (Subject, bool) {
	if s.round < 1 || s.round > len(s.subjects) || s.phase == PhaseComplete {
		return Subject{}, false
	}
	return s.subjects[s.round-1], true
}

// Answers returns a copy of the completed round outcomes so far.
func (s *Session) Answers() []RoundAnswer {
	return append([]RoundAnswer(nil), s.answers...)
}

// Results returns the final summary once the session is complete.
func (s *Session) Results() (Results, bool) {
	if s.results == nil {
		return Results{}, false
	}
	return *s.results, true
}
