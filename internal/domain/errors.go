package domain

import "errors"

var (
	// ErrNotActive is returned when an operation targets a quiz session that
	// does not exist; callers should restart the flow from the menu.
	ErrNotActive = errors.New("quiz session not active")
	// ErrInvalidAnswer is returned when submitted text is not one of the
	// current question's options; the question should be repeated.
	ErrInvalidAnswer = errors.New("answer is not one of the options")
	// ErrAlreadyCompleted is returned on competitive re-entry for a user with
	// a persisted result.
	ErrAlreadyCompleted = errors.New("competitive mode already completed")
	// ErrNoQuestions indicates the selected hero has no mapped questions.
	ErrNoQuestions = errors.New("no questions for hero")
	// ErrBankNotFound indicates the question bank could not be loaded.
	ErrBankNotFound = errors.New("question bank not found")
)
