package telegram

import (
	"errors"
	"fmt"
	"log"
	"time"

	"patriot-quiz-bot/internal/app"
	"patriot-quiz-bot/internal/domain"
	tele "gopkg.in/telebot.v4"
)

func (h *Handler) showQuizMenu(c tele.Context) error {
	chatID := c.Chat().ID
	h.setState(chatID, stateChoosingMode)

	canPlay := h.service.CanPlayCompetitive(h.ctx, chatID)
	text := modeMenuText
	if !canPlay {
		text = modeMenuCompletedText
	}
	return c.Send(text, modeKeyboard(canPlay))
}

func (h *Handler) startPractice(c tele.Context) error {
	chatID := c.Chat().ID
	session, err := h.service.StartPractice(h.ctx, chatID)
	if err != nil {
		log.Printf("start practice for %d: %v", chatID, err)
		return c.Send(genericApologyText, mainKeyboard())
	}
	h.setState(chatID, statePractice)

	if err := c.Send(practiceIntroText, tele.ModeMarkdown); err != nil {
		return err
	}
	h.sendAfter(1500*time.Millisecond, func() {
		h.deliverQuestion(chatID, session)
	})
	return nil
}

func (h *Handler) startCompetitive(c tele.Context) error {
	chatID := c.Chat().ID
	err := h.service.StartCompetitive(h.ctx, chatID)
	if errors.Is(err, domain.ErrAlreadyCompleted) {
		h.setState(chatID, stateIdle)
		return c.Send(alreadyCompletedText, mainKeyboard())
	}
	if err != nil {
		log.Printf("start competitive for %d: %v", chatID, err)
		return c.Send(genericApologyText, mainKeyboard())
	}
	h.setState(chatID, stateCompetitive)
	return c.Send(askFirstNameText, cancelMetaKeyboard(), tele.ModeMarkdown)
}

// onCompetitiveText handles both the metadata-collection prompts and the
// answer flow, depending on the session stage.
func (h *Handler) onCompetitiveText(c tele.Context, text string) error {
	chatID := c.Chat().ID

	if text == btnCancelMeta || text == btnCancelQuiz {
		return h.cancelQuiz(c, domain.KindCompetitive)
	}

	session, ok := h.service.Session(chatID, domain.KindCompetitive)
	if !ok {
		h.setState(chatID, stateIdle)
		return c.Send(notActiveText, mainKeyboard())
	}

	switch session.Stage {
	case domain.StageFirstName:
		if err := h.service.CollectFirstName(chatID, text); err != nil {
			return h.restartFlow(c, err)
		}
		return c.Send(askLastNameText, tele.ModeMarkdown)
	case domain.StageLastName:
		if err := h.service.CollectLastName(chatID, text); err != nil {
			return h.restartFlow(c, err)
		}
		return c.Send(askInstitutionText, tele.ModeMarkdown)
	case domain.StageInstitution:
		updated, err := h.service.CollectInstitution(h.ctx, chatID, text)
		if err != nil {
			return h.restartFlow(c, err)
		}
		if err := c.Send(competitiveIntroText, tele.ModeMarkdown); err != nil {
			return err
		}
		h.sendAfter(2*time.Second, func() {
			h.deliverQuestion(chatID, updated)
		})
		return nil
	default:
		return h.onQuizText(c, domain.KindCompetitive, text)
	}
}

func (h *Handler) onQuizText(c tele.Context, kind domain.QuizKind, text string) error {
	chatID := c.Chat().ID

	if text == btnCancelQuiz || text == btnBackToMenu {
		return h.cancelQuiz(c, kind)
	}

	result, err := h.service.Submit(h.ctx, chatID, kind, text)
	switch {
	case errors.Is(err, domain.ErrInvalidAnswer):
		return c.Send(pickOptionText)
	case errors.Is(err, domain.ErrNotActive):
		return h.restartFlow(c, err)
	case err != nil:
		log.Printf("submit for %d: %v", chatID, err)
		return c.Send(genericApologyText, mainKeyboard())
	}

	if result.Summary != nil {
		h.setState(chatID, stateIdle)
		return c.Send(finishText(*result.Summary), mainKeyboard(), tele.ModeMarkdown)
	}
	h.deliverQuestion(chatID, result.Session)
	return nil
}

func (h *Handler) cancelQuiz(c tele.Context, kind domain.QuizKind) error {
	chatID := c.Chat().ID
	h.setState(chatID, stateIdle)

	summary, err := h.service.Cancel(h.ctx, chatID, kind)
	if errors.Is(err, domain.ErrNotActive) {
		return h.showMainMenu(c)
	}
	if err != nil {
		log.Printf("cancel for %d: %v", chatID, err)
		return c.Send(genericApologyText, mainKeyboard())
	}
	return c.Send(cancelText(summary), mainKeyboard(), tele.ModeMarkdown)
}

// restartFlow handles a session that vanished mid-dialogue.
func (h *Handler) restartFlow(c tele.Context, err error) error {
	chatID := c.Chat().ID
	h.setState(chatID, stateIdle)
	if !errors.Is(err, domain.ErrNotActive) {
		log.Printf("quiz flow error for %d: %v", chatID, err)
	}
	return c.Send(notActiveText, mainKeyboard())
}

// deliverQuestion sends the question under the session cursor to the
// chat. Used both from paced reveals and from the submit path.
func (h *Handler) deliverQuestion(chatID int64, session domain.Session) {
	question, ok := session.Current()
	if !ok {
		return
	}

	var text string
	if session.Kind == domain.KindHero {
		text = fmt.Sprintf("🎖️ *%s*\n❓ Вопрос %d/%d\n\n%s",
			session.HeroName, session.Cursor+1, session.Total, question.Prompt)
	} else {
		text = fmt.Sprintf("❓ *Вопрос %d/%d*\n\n%s",
			session.Cursor+1, session.Total, question.Prompt)
	}

	_, err := h.bot.Send(tele.ChatID(chatID), text, questionKeyboard(question.Options), tele.ModeMarkdown)
	if err != nil {
		log.Printf("deliver question to %d: %v", chatID, err)
	}
}

func finishText(summary app.Summary) string {
	emoji := gradeEmoji[summary.Grade]
	switch summary.Kind {
	case domain.KindCompetitive:
		saved := "✅ *Результат сохранен!*\nСпасибо за участие! 🎯"
		if !summary.Saved {
			saved = "❌ *Ошибка сохранения результата*\nОбратитесь к администратору."
		}
		return fmt.Sprintf(
			"%s *Соревновательный режим завершен!* %s\n\n"+
				"📊 *Ваш результат:*\n"+
				"• Правильных ответов: %d/%d\n"+
				"• Процент: %.1f%%\n"+
				"• Оценка: %s\n\n%s",
			emoji, emoji, summary.Score, summary.Total, summary.Percentage, summary.Grade, saved)
	case domain.KindHero:
		return fmt.Sprintf(
			"🎖️ *Викторина завершена: %s*\n\n"+
				"📊 *Ваш результат:*\n"+
				"• Правильных ответов: %d/%d\n"+
				"• Процент: %.1f%%\n"+
				"• Оценка: %s\n\n"+
				"🔄 Можете пройти викторину еще раз или выбрать другого героя!",
			summary.HeroName, summary.Score, summary.Total, summary.Percentage, summary.Grade)
	default:
		return fmt.Sprintf(
			"%s *Пробный режим завершен!* %s\n\n"+
				"📊 *Ваш результат:*\n"+
				"• Правильных ответов: %d/%d\n"+
				"• Процент: %.1f%%\n"+
				"• Оценка: %s\n\n"+
				"🔄 Можете попробовать еще раз!",
			emoji, emoji, summary.Score, summary.Total, summary.Percentage, summary.Grade)
	}
}

func cancelText(summary app.Summary) string {
	switch summary.Kind {
	case domain.KindCompetitive:
		saved := "✅ *Результат сохранен в таблицу!*\nБольше нельзя пройти этот режим."
		if !summary.Saved {
			saved = "❌ *Ошибка сохранения результата*\nОбратитесь к администратору."
		}
		if summary.Total == 0 {
			// Cancelled before the first question; nothing to persist.
			return "🏆 *Соревновательный режим отменен.*"
		}
		return fmt.Sprintf(
			"🏆 *Соревновательный режим завершен досрочно!*\n\n"+
				"📊 *Ваш результат:*\n"+
				"• Правильных ответов: %d/%d\n\n%s",
			summary.Score, summary.Total, saved)
	case domain.KindHero:
		return fmt.Sprintf(
			"🎖️ *Викторина отменена: %s*\n\n"+
				"📊 *Ваш результат:*\n"+
				"• Правильных ответов: %d/%d",
			summary.HeroName, summary.Score, summary.Total)
	default:
		return fmt.Sprintf(
			"🎯 *Пробный режим завершен досрочно!*\n\n"+
				"📊 *Ваш результат:*\n"+
				"• Правильных ответов: %d/%d",
			summary.Score, summary.Total)
	}
}

// onLeaderboard renders the top five competitive results.
func (h *Handler) onLeaderboard(c tele.Context) error {
	results, err := h.service.Leaderboard(h.ctx, 5)
	if err != nil {
		log.Printf("leaderboard: %v", err)
		return c.Send("❌ Ошибка при загрузке таблицы лидеров. Попробуйте позже.")
	}

	text := "🏆 <b>Топ пять лучших учеников:</b>\n\n"
	if len(results) == 0 {
		text += "1. —\n2. —\n3. —\n4. —\n5. —"
	} else {
		for i, result := range results {
			text += fmt.Sprintf("%d. %s - %s\n", i+1, displayName(result), scoreWord(result.Correct))
		}
		total := 0
		if stats, err := h.service.Statistics(h.ctx); err == nil {
			total = stats.Participants
		}
		text += fmt.Sprintf("\n📊 Всего участников: %d", total)
	}
	return c.Send(text, tele.ModeHTML)
}

func displayName(result domain.CompetitiveResult) string {
	switch {
	case result.LastName != "" && result.FirstName != "":
		return result.LastName + " " + result.FirstName
	case result.FirstName != "":
		return result.FirstName
	case result.LastName != "":
		return result.LastName
	default:
		return "Неизвестный"
	}
}

// scoreWord declines «балл» to agree with the number.
func scoreWord(score int) string {
	if score%10 == 1 && score%100 != 11 {
		return fmt.Sprintf("%d балл", score)
	}
	if score%10 >= 2 && score%10 <= 4 && (score%100 < 12 || score%100 > 14) {
		return fmt.Sprintf("%d балла", score)
	}
	return fmt.Sprintf("%d баллов", score)
}
