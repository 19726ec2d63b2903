package app

import (
	"context"
	"log"
	"math/rand"
	"sort"
	"strings"
	"time"

	"patriot-quiz-bot/internal/domain"
)

// SessionRepository abstracts how quiz sessions are stored, keyed by
// (user, kind). Mutate runs fn under the store's lock so a rapid double
// submission cannot double-count an answer.
type SessionRepository interface {
	Begin(session *domain.Session)
	Get(userID int64, kind domain.QuizKind) (domain.Session, bool)
	Mutate(userID int64, kind domain.QuizKind, fn func(*domain.Session) error) (domain.Session, error)
	End(userID int64, kind domain.QuizKind) (domain.Session, bool)
}

// BankRepository loads the question catalog (from cache/backing store).
type BankRepository interface {
	GetBank(ctx context.Context) (domain.Bank, error)
}

// ResultSink persists finalized competitive attempts and serves the
// leaderboard and aggregate statistics.
type ResultSink interface {
	HasCompleted(ctx context.Context, chatID int64) (bool, error)
	Save(ctx context.Context, result domain.CompetitiveResult) error
	AllResults(ctx context.Context) ([]domain.CompetitiveResult, error)
	Statistics(ctx context.Context) (domain.Statistics, error)
}

const (
	practiceQuestionCount    = 5
	competitiveQuestionCount = 10
	heroQuestionCount        = 5
)

// QuizService contains the quiz use cases: starting modes, collecting
// competitive metadata, grading answers and finalizing sessions.
type QuizService struct {
	sessions SessionRepository
	bank     BankRepository
	sink     ResultSink
}

func NewQuizService(sessions SessionRepository, bank BankRepository, sink ResultSink) *QuizService {
	return &QuizService{sessions: sessions, bank: bank, sink: sink}
}

// SampleQuestions draws n distinct questions from pool uniformly without
// replacement. When n covers the pool, every element is returned exactly
// once in arbitrary order.
func SampleQuestions(pool []domain.Question, n int) []domain.Question {
	if n > len(pool) {
		n = len(pool)
	}
	perm := rand.Perm(len(pool))
	drawn := make([]domain.Question, 0, n)
	for _, i := range perm[:n] {
		drawn = append(drawn, pool[i])
	}
	return drawn
}

// StartPractice opens a practice session with five random questions and
// returns it ready for question delivery.
func (s *QuizService) StartPractice(ctx context.Context, userID int64) (domain.Session, error) {
	bank, err := s.bank.GetBank(ctx)
	if err != nil {
		return domain.Session{}, err
	}
	questions := SampleQuestions(bank.Questions, practiceQuestionCount)
	session := &domain.Session{
		UserID:    userID,
		Kind:      domain.KindPractice,
		Stage:     domain.StageInProgress,
		Questions: questions,
		Total:     len(questions),
		StartedAt: time.Now(),
	}
	s.sessions.Begin(session)
	return *session, nil
}

// StartCompetitive opens a competitive session in the metadata-collection
// stage. The one-attempt check happens here, before any metadata is
// collected; a prior persisted result yields ErrAlreadyCompleted and no
// session. Questions are drawn only after metadata collection finishes.
func (s *QuizService) StartCompetitive(ctx context.Context, userID int64) error {
	completed, err := s.sink.HasCompleted(ctx, userID)
	if err != nil {
		// The sink being unreachable must not lock users out of the flow;
		// the duplicate check will run again on save.
		log.Printf("competitive completion check failed for %d: %v", userID, err)
	}
	if completed {
		return domain.ErrAlreadyCompleted
	}
	s.sessions.Begin(&domain.Session{
		UserID:    userID,
		Kind:      domain.KindCompetitive,
		Stage:     domain.StageFirstName,
		Total:     competitiveQuestionCount,
		StartedAt: time.Now(),
	})
	return nil
}

// CollectFirstName stores the trimmed first name and advances the
// metadata stage.
func (s *QuizService) CollectFirstName(userID int64, text string) error {
	_, err := s.sessions.Mutate(userID, domain.KindCompetitive, func(session *domain.Session) error {
		session.FirstName = strings.TrimSpace(text)
		session.Stage = domain.StageLastName
		return nil
	})
	return err
}

// CollectLastName stores the trimmed last name and advances the
// metadata stage.
func (s *QuizService) CollectLastName(userID int64, text string) error {
	_, err := s.sessions.Mutate(userID, domain.KindCompetitive, func(session *domain.Session) error {
		session.LastName = strings.TrimSpace(text)
		session.Stage = domain.StageInstitution
		return nil
	})
	return err
}

// CollectInstitution stores the trimmed institution, draws the question
// list and flips the session to in-progress.
func (s *QuizService) CollectInstitution(ctx context.Context, userID int64, text string) (domain.Session, error) {
	bank, err := s.bank.GetBank(ctx)
	if err != nil {
		return domain.Session{}, err
	}
	questions := SampleQuestions(bank.Questions, competitiveQuestionCount)
	return s.sessions.Mutate(userID, domain.KindCompetitive, func(session *domain.Session) error {
		session.Institution = strings.TrimSpace(text)
		session.Questions = questions
		session.Total = len(questions)
		session.Stage = domain.StageInProgress
		return nil
	})
}

// StartHeroQuiz opens a hero session with up to five random questions
// mapped to the hero. A hero with no mapped questions yields
// ErrNoQuestions and no session.
func (s *QuizService) StartHeroQuiz(ctx context.Context, userID int64, heroID int, heroName string) (domain.Session, error) {
	bank, err := s.bank.GetBank(ctx)
	if err != nil {
		return domain.Session{}, err
	}
	pool := bank.ForHero(heroID)
	if len(pool) == 0 {
		return domain.Session{}, domain.ErrNoQuestions
	}
	questions := SampleQuestions(pool, heroQuestionCount)
	session := &domain.Session{
		UserID:    userID,
		Kind:      domain.KindHero,
		Stage:     domain.StageInProgress,
		Questions: questions,
		Total:     len(questions),
		HeroID:    heroID,
		HeroName:  heroName,
		StartedAt: time.Now(),
	}
	s.sessions.Begin(session)
	return *session, nil
}

// Session returns the active session for (user, kind), if any.
func (s *QuizService) Session(userID int64, kind domain.QuizKind) (domain.Session, bool) {
	return s.sessions.Get(userID, kind)
}

// SubmitResult reports the outcome of one answer submission.
type SubmitResult struct {
	Correct bool
	Session domain.Session
	// Next is the question to deliver when the quiz continues.
	Next domain.Question
	// Summary is set when the submission finished the quiz.
	Summary *Summary
}

// Summary describes a finalized session.
type Summary struct {
	Kind       domain.QuizKind
	Score      int
	Total      int
	Percentage float64
	Grade      string
	HeroName   string
	// Saved reports whether the competitive result reached the sink.
	// Practice and hero summaries leave it false.
	Saved bool
}

// Submit grades one answer. Text that is not among the current options
// yields ErrInvalidAnswer with no state change. Otherwise the score is
// updated on exact match and the cursor always advances; reaching the
// declared total finalizes the session.
func (s *QuizService) Submit(ctx context.Context, userID int64, kind domain.QuizKind, text string) (SubmitResult, error) {
	var correct bool
	updated, err := s.sessions.Mutate(userID, kind, func(session *domain.Session) error {
		question, ok := session.Current()
		if !ok {
			// Cursor out of step with the drawn list; treat as inactive.
			return domain.ErrNotActive
		}
		if !question.HasOption(text) {
			return domain.ErrInvalidAnswer
		}
		correct = question.IsCorrect(text)
		if correct {
			session.Score++
		}
		session.Cursor++
		return nil
	})
	if err != nil {
		return SubmitResult{}, err
	}

	result := SubmitResult{Correct: correct, Session: updated}
	if updated.Done() {
		summary := s.finish(ctx, updated)
		result.Summary = &summary
		return result, nil
	}
	next, ok := updated.Current()
	if !ok {
		// Declared total exceeds the drawn list; finalize with what we have.
		summary := s.finish(ctx, updated)
		result.Summary = &summary
		return result, nil
	}
	result.Next = next
	return result, nil
}

// Cancel finalizes a session early with its partial score. A cancelled
// competitive session is still persisted, using the attempted count as
// the total so the percentage reflects questions actually seen.
func (s *QuizService) Cancel(ctx context.Context, userID int64, kind domain.QuizKind) (Summary, error) {
	session, ok := s.sessions.End(userID, kind)
	if !ok {
		return Summary{}, domain.ErrNotActive
	}
	summary := Summary{
		Kind:     session.Kind,
		Score:    session.Score,
		Total:    session.Cursor,
		HeroName: session.HeroName,
	}
	if session.Kind == domain.KindCompetitive && session.Cursor > 0 {
		summary.Percentage = domain.Percentage(session.Score, session.Cursor)
		summary.Grade = domain.GradeFor(summary.Percentage)
		summary.Saved = s.persist(ctx, session, session.Cursor)
	}
	return summary, nil
}

// finish computes the final grade and, for competitive sessions, persists
// the result. The session is removed regardless of persistence outcome;
// a failed save only downgrades the confirmation shown to the user.
func (s *QuizService) finish(ctx context.Context, session domain.Session) Summary {
	s.sessions.End(session.UserID, session.Kind)

	percentage := domain.Percentage(session.Score, session.Total)
	summary := Summary{
		Kind:       session.Kind,
		Score:      session.Score,
		Total:      session.Total,
		Percentage: percentage,
		Grade:      domain.GradeFor(percentage),
		HeroName:   session.HeroName,
	}
	if session.Kind == domain.KindCompetitive {
		summary.Saved = s.persist(ctx, session, session.Total)
	}
	return summary
}

func (s *QuizService) persist(ctx context.Context, session domain.Session, total int) bool {
	percentage := domain.Percentage(session.Score, total)
	err := s.sink.Save(ctx, domain.CompetitiveResult{
		Timestamp:   time.Now(),
		ChatID:      session.UserID,
		FirstName:   session.FirstName,
		LastName:    session.LastName,
		Institution: session.Institution,
		Correct:     session.Score,
		Total:       total,
		Percentage:  percentage,
		Grade:       domain.GradeFor(percentage),
	})
	if err != nil {
		log.Printf("failed to persist competitive result for %d: %v", session.UserID, err)
		return false
	}
	return true
}

// Leaderboard returns persisted results ordered by correct answers,
// capped at limit.
func (s *QuizService) Leaderboard(ctx context.Context, limit int) ([]domain.CompetitiveResult, error) {
	results, err := s.sink.AllResults(ctx)
	if err != nil {
		return nil, err
	}
	sorted := make([]domain.CompetitiveResult, len(results))
	copy(sorted, results)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Correct > sorted[j].Correct
	})
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted, nil
}

// Statistics proxies the sink's aggregate view.
func (s *QuizService) Statistics(ctx context.Context) (domain.Statistics, error) {
	return s.sink.Statistics(ctx)
}

// CanPlayCompetitive reports whether the competitive entry should be
// offered to the user. Sink errors fail open, matching StartCompetitive.
func (s *QuizService) CanPlayCompetitive(ctx context.Context, userID int64) bool {
	completed, err := s.sink.HasCompleted(ctx, userID)
	if err != nil {
		return true
	}
	return !completed
}
