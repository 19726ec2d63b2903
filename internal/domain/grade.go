package domain

// Grade labels shared by quiz completion messages, the hero quiz and the
// persisted Grade column. Inclusive lower bounds at 90/75/60/40.
const (
	GradeExcellent    = "Отлично"
	GradeVeryGood     = "Очень хорошо"
	GradeGood         = "Хорошо"
	GradeSatisfactory = "Удовлетворительно"
	GradeTryAgain     = "Попробуйте еще раз"
)

// Percentage computes score/total in percent. Total must be positive;
// a non-positive total yields 0.
func Percentage(score, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(score) / float64(total) * 100
}

// GradeFor maps a percentage to its grade tier.
func GradeFor(percentage float64) string {
	switch {
	case percentage >= 90:
		return GradeExcellent
	case percentage >= 75:
		return GradeVeryGood
	case percentage >= 60:
		return GradeGood
	case percentage >= 40:
		return GradeSatisfactory
	default:
		return GradeTryAgain
	}
}
