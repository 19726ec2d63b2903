package app_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"patriot-quiz-bot/internal/app"
	"patriot-quiz-bot/internal/domain"
	"patriot-quiz-bot/internal/infra/memory"
)

func TestPracticeFlow(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService()

	session, err := service.StartPractice(ctx, 1)
	if err != nil {
		t.Fatalf("start practice: %v", err)
	}
	if len(session.Questions) != 5 || session.Total != 5 {
		t.Fatalf("expected 5 questions, got %d/%d", len(session.Questions), session.Total)
	}

	summary := answerAll(t, ctx, service, 1, domain.KindPractice, true)
	if summary.Score != 5 || summary.Grade != domain.GradeExcellent {
		t.Fatalf("expected perfect score, got %+v", summary)
	}
	if summary.Saved {
		t.Fatalf("practice results must not be persisted")
	}
	if _, ok := service.Session(1, domain.KindPractice); ok {
		t.Fatalf("expected session removed after completion")
	}
}

func TestCompetitiveOneAttempt(t *testing.T) {
	ctx := context.Background()
	service, sink := newTestService()
	sink.completed[7] = true

	err := service.StartCompetitive(ctx, 7)
	if !errors.Is(err, domain.ErrAlreadyCompleted) {
		t.Fatalf("expected ErrAlreadyCompleted, got %v", err)
	}
	if _, ok := service.Session(7, domain.KindCompetitive); ok {
		t.Fatalf("expected no session after rejected start")
	}
	if service.CanPlayCompetitive(ctx, 7) {
		t.Fatalf("expected competitive entry hidden after completion")
	}
}

func TestCompetitiveMetadataAndPersist(t *testing.T) {
	ctx := context.Background()
	service, sink := newTestService()

	if err := service.StartCompetitive(ctx, 2); err != nil {
		t.Fatalf("start competitive: %v", err)
	}
	if err := service.CollectFirstName(2, "  Иван "); err != nil {
		t.Fatalf("collect first name: %v", err)
	}
	if err := service.CollectLastName(2, "Петров"); err != nil {
		t.Fatalf("collect last name: %v", err)
	}
	session, err := service.CollectInstitution(ctx, 2, "Школа №16")
	if err != nil {
		t.Fatalf("collect institution: %v", err)
	}
	if session.Stage != domain.StageInProgress || len(session.Questions) != 10 {
		t.Fatalf("expected 10 questions in progress, got %+v", session)
	}

	summary := answerAll(t, ctx, service, 2, domain.KindCompetitive, true)
	if !summary.Saved {
		t.Fatalf("expected competitive result saved")
	}
	if len(sink.saved) != 1 {
		t.Fatalf("expected one saved result, got %d", len(sink.saved))
	}
	saved := sink.saved[0]
	if saved.FirstName != "Иван" || saved.LastName != "Петров" || saved.Institution != "Школа №16" {
		t.Fatalf("metadata not persisted: %+v", saved)
	}
	if saved.Correct != 10 || saved.Total != 10 || saved.Grade != domain.GradeExcellent {
		t.Fatalf("unexpected persisted score: %+v", saved)
	}
}

func TestInvalidAnswerKeepsState(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService()

	if _, err := service.StartPractice(ctx, 3); err != nil {
		t.Fatalf("start practice: %v", err)
	}
	_, err := service.Submit(ctx, 3, domain.KindPractice, "не вариант")
	if !errors.Is(err, domain.ErrInvalidAnswer) {
		t.Fatalf("expected ErrInvalidAnswer, got %v", err)
	}

	session, ok := service.Session(3, domain.KindPractice)
	if !ok {
		t.Fatalf("expected session to survive invalid answer")
	}
	if session.Cursor != 0 || session.Score != 0 {
		t.Fatalf("expected unchanged state, got cursor %d score %d", session.Cursor, session.Score)
	}
}

func TestCancelPersistsPartialCompetitive(t *testing.T) {
	ctx := context.Background()
	service, sink := newTestService()

	if err := service.StartCompetitive(ctx, 4); err != nil {
		t.Fatalf("start competitive: %v", err)
	}
	_ = service.CollectFirstName(4, "Анна")
	_ = service.CollectLastName(4, "Иванова")
	if _, err := service.CollectInstitution(ctx, 4, "Гимназия №1"); err != nil {
		t.Fatalf("collect institution: %v", err)
	}

	// Two correct, one wrong, then cancel at cursor 3.
	submitCurrent(t, ctx, service, 4, domain.KindCompetitive, true)
	submitCurrent(t, ctx, service, 4, domain.KindCompetitive, true)
	submitCurrent(t, ctx, service, 4, domain.KindCompetitive, false)

	summary, err := service.Cancel(ctx, 4, domain.KindCompetitive)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if summary.Score != 2 || summary.Total != 3 {
		t.Fatalf("expected 2/3 summary, got %+v", summary)
	}
	if len(sink.saved) != 1 || sink.saved[0].Correct != 2 || sink.saved[0].Total != 3 {
		t.Fatalf("expected 2/3 persisted, got %+v", sink.saved)
	}
}

func TestCancelBeforeQuestionsSkipsPersist(t *testing.T) {
	ctx := context.Background()
	service, sink := newTestService()

	if err := service.StartCompetitive(ctx, 5); err != nil {
		t.Fatalf("start competitive: %v", err)
	}
	summary, err := service.Cancel(ctx, 5, domain.KindCompetitive)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if summary.Total != 0 || summary.Saved {
		t.Fatalf("expected empty unsaved summary, got %+v", summary)
	}
	if len(sink.saved) != 0 {
		t.Fatalf("expected nothing persisted, got %d rows", len(sink.saved))
	}
}

func TestSinkFailureFailsOpen(t *testing.T) {
	ctx := context.Background()
	service, sink := newTestService()
	sink.hasErr = errors.New("sheets unreachable")

	if err := service.StartCompetitive(ctx, 6); err != nil {
		t.Fatalf("expected start to fail open, got %v", err)
	}
	if !service.CanPlayCompetitive(ctx, 6) {
		t.Fatalf("expected competitive entry offered while sink is down")
	}
}

func TestHeroQuizRequiresQuestions(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService()

	_, err := service.StartHeroQuiz(ctx, 8, 99, "Безвопросный герой")
	if !errors.Is(err, domain.ErrNoQuestions) {
		t.Fatalf("expected ErrNoQuestions, got %v", err)
	}

	session, err := service.StartHeroQuiz(ctx, 8, 1, "Виктор Усов")
	if err != nil {
		t.Fatalf("start hero quiz: %v", err)
	}
	if session.Total != 3 || session.HeroName != "Виктор Усов" {
		t.Fatalf("expected 3-question hero session, got %+v", session)
	}
}

func TestSampleQuestionsCoversPool(t *testing.T) {
	pool := testBank().Questions
	drawn := app.SampleQuestions(pool, len(pool)+5)
	if len(drawn) != len(pool) {
		t.Fatalf("expected full pool, got %d of %d", len(drawn), len(pool))
	}
	seen := map[int]bool{}
	for _, q := range drawn {
		if seen[q.ID] {
			t.Fatalf("question %d drawn twice", q.ID)
		}
		seen[q.ID] = true
	}
}

func TestLeaderboardOrder(t *testing.T) {
	ctx := context.Background()
	service, sink := newTestService()
	sink.saved = []domain.CompetitiveResult{
		{FirstName: "A", Correct: 4},
		{FirstName: "B", Correct: 9},
		{FirstName: "C", Correct: 7},
	}

	top, err := service.Leaderboard(ctx, 2)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(top) != 2 || top[0].FirstName != "B" || top[1].FirstName != "C" {
		t.Fatalf("unexpected order: %+v", top)
	}
}

// answerAll drives the session to completion, answering correctly or
// wrongly, and returns the final summary.
func answerAll(t *testing.T, ctx context.Context, service *app.QuizService, userID int64, kind domain.QuizKind, correct bool) app.Summary {
	t.Helper()
	for i := 0; i < 20; i++ {
		result := submitCurrent(t, ctx, service, userID, kind, correct)
		if result.Summary != nil {
			return *result.Summary
		}
	}
	t.Fatalf("quiz never finished")
	return app.Summary{}
}

func submitCurrent(t *testing.T, ctx context.Context, service *app.QuizService, userID int64, kind domain.QuizKind, correct bool) app.SubmitResult {
	t.Helper()
	session, ok := service.Session(userID, kind)
	if !ok {
		t.Fatalf("no active session for %d/%s", userID, kind)
	}
	question, ok := session.Current()
	if !ok {
		t.Fatalf("no current question at cursor %d", session.Cursor)
	}
	answer := question.Options[question.Correct]
	if !correct {
		answer = question.Options[(question.Correct+1)%len(question.Options)]
	}
	result, err := service.Submit(ctx, userID, kind, answer)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	return result
}

func newTestService() (*app.QuizService, *fakeSink) {
	loader := memory.NewStaticBankLoader(testBank())
	bank := memory.NewBankRepository(loader, time.Minute)
	sink := &fakeSink{completed: map[int64]bool{}}
	return app.NewQuizService(memory.NewSessionStore(), bank, sink), sink
}

func testBank() domain.Bank {
	questions := make([]domain.Question, 0, 12)
	for i := 0; i < 12; i++ {
		questions = append(questions, domain.Question{
			ID:      i + 1,
			Prompt:  fmt.Sprintf("Вопрос %d", i+1),
			Options: []string{"Верно", "Неверно"},
			Correct: 0,
		})
	}
	return domain.Bank{
		Questions:     questions,
		HeroQuestions: map[int][]int{1: {0, 1, 2}},
	}
}

type fakeSink struct {
	completed map[int64]bool
	saved     []domain.CompetitiveResult
	hasErr    error
	saveErr   error
}

func (s *fakeSink) HasCompleted(_ context.Context, chatID int64) (bool, error) {
	if s.hasErr != nil {
		return false, s.hasErr
	}
	return s.completed[chatID], nil
}

func (s *fakeSink) Save(_ context.Context, result domain.CompetitiveResult) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = append(s.saved, result)
	s.completed[result.ChatID] = true
	return nil
}

func (s *fakeSink) AllResults(_ context.Context) ([]domain.CompetitiveResult, error) {
	return s.saved, nil
}

func (s *fakeSink) Statistics(_ context.Context) (domain.Statistics, error) {
	stats := domain.Statistics{Participants: len(s.saved)}
	for _, r := range s.saved {
		stats.AverageScore += float64(r.Correct)
		if r.Correct > stats.BestScore {
			stats.BestScore = r.Correct
		}
	}
	if stats.Participants > 0 {
		stats.AverageScore /= float64(stats.Participants)
	}
	return stats, nil
}
