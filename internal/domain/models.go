package domain

import "time"

// QuizKind selects question count, metadata collection and persistence
// behavior for a session.
type QuizKind string

const (
	KindPractice    QuizKind = "practice"
	KindCompetitive QuizKind = "competitive"
	KindHero        QuizKind = "hero"
)

// Question models an MCQ question; Correct indexes into Options.
type Question struct {
	ID      int      `json:"id"`
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
	Correct int      `json:"correct"`
}

// Valid reports whether the question satisfies the catalog invariant:
// non-empty options and an in-bounds correct index.
func (q Question) Valid() bool {
	return len(q.Options) > 0 && q.Correct >= 0 && q.Correct < len(q.Options)
}

// HasOption reports whether text matches one of the answer options.
func (q Question) HasOption(text string) bool {
	for _, opt := range q.Options {
		if opt == text {
			return true
		}
	}
	return false
}

// IsCorrect grades text by exact match against the correct option.
func (q Question) IsCorrect(text string) bool {
	return q.Valid() && q.Options[q.Correct] == text
}

// Bank is the full question catalog plus the static hero mapping
// (hero ID to indices into Questions).
type Bank struct {
	Questions     []Question    `json:"questions"`
	HeroQuestions map[int][]int `json:"heroQuestions"`
}

// ForHero returns the questions mapped to a hero, skipping out-of-range
// indices. An unmapped hero yields an empty slice.
func (b Bank) ForHero(heroID int) []Question {
	indices := b.HeroQuestions[heroID]
	questions := make([]Question, 0, len(indices))
	for _, i := range indices {
		if i >= 0 && i < len(b.Questions) {
			questions = append(questions, b.Questions[i])
		}
	}
	return questions
}

// Stage tracks a competitive session's progress through metadata
// collection. Practice and hero sessions start at StageInProgress.
type Stage int

const (
	StageInProgress Stage = iota
	StageFirstName
	StageLastName
	StageInstitution
)

// Session is the mutable progress record for one user's in-flight quiz
// attempt of a given kind. The question list is immutable once drawn.
type Session struct {
	UserID    int64
	Kind      QuizKind
	Stage     Stage
	Questions []Question
	Cursor    int
	Score     int
	Total     int

	// Competitive metadata, collected before questions are drawn.
	FirstName   string
	LastName    string
	Institution string

	// Hero quiz selection.
	HeroID   int
	HeroName string

	StartedAt time.Time
}

// Current returns the question under the cursor, if any.
func (s *Session) Current() (Question, bool) {
	if s.Cursor < 0 || s.Cursor >= len(s.Questions) {
		return Question{}, false
	}
	return s.Questions[s.Cursor], true
}

// Done reports whether the cursor has reached the declared total.
func (s *Session) Done() bool {
	return s.Total > 0 && s.Cursor >= s.Total
}

// CompetitiveResult is one persisted competitive attempt.
type CompetitiveResult struct {
	ID          int
	Timestamp   time.Time
	ChatID      int64
	FirstName   string
	LastName    string
	Institution string
	Correct     int
	Total       int
	Percentage  float64
	Grade       string
}

// Statistics aggregates persisted competitive results.
type Statistics struct {
	Participants int
	AverageScore float64
	BestScore    int
}
