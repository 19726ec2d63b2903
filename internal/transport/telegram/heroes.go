package telegram

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"patriot-quiz-bot/internal/content"
	"patriot-quiz-bot/internal/domain"
	tele "gopkg.in/telebot.v4"
)

const heroBrowserText = "💪 *Герои Великой Отечественной войны*\n\n" +
	"В честь этих людей названы улицы города Гродно.\n" +
	"Выберите героя, чтобы узнать его историю:"

const heroQuizMenuText = "🎖️ *Викторины по героям*\n\n" +
	"Выберите героя, чтобы пройти викторину о нем:"

func (h *Handler) showHeroBrowser(c tele.Context) error {
	h.setState(c.Chat().ID, stateIdle)
	return c.Send(heroBrowserText, heroBrowserKeyboard(0), tele.ModeMarkdown)
}

func (h *Handler) showHeroQuizMenu(c tele.Context) error {
	h.setState(c.Chat().ID, stateChoosingHeroQuiz)
	return c.Send(heroQuizMenuText, heroQuizKeyboard(0), tele.ModeMarkdown)
}

// onCallback routes inline keyboard taps by their data token. Longer
// prefixes are matched first so hero_quiz_page_2 is never read as a
// hero selection.
func (h *Handler) onCallback(c tele.Context) error {
	data := strings.TrimSpace(strings.TrimPrefix(c.Callback().Data, "\f"))

	switch {
	case data == "heroes_current_page" || data == "hero_quiz_current_page":
		return c.Respond(&tele.CallbackResponse{})

	case data == "main_menu":
		if err := c.Respond(&tele.CallbackResponse{}); err != nil {
			log.Printf("callback respond: %v", err)
		}
		return h.showMainMenu(c)

	case data == "hero_quiz_back":
		if err := c.Respond(&tele.CallbackResponse{}); err != nil {
			log.Printf("callback respond: %v", err)
		}
		return h.showQuizMenu(c)

	case strings.HasPrefix(data, "heroes_page_"):
		page, err := strconv.Atoi(strings.TrimPrefix(data, "heroes_page_"))
		if err != nil {
			return c.Respond(&tele.CallbackResponse{})
		}
		if err := c.Edit(heroBrowserText, heroBrowserKeyboard(page), tele.ModeMarkdown); err != nil {
			log.Printf("edit hero browser page: %v", err)
		}
		return c.Respond(&tele.CallbackResponse{})

	case strings.HasPrefix(data, "hero_quiz_page_"):
		page, err := strconv.Atoi(strings.TrimPrefix(data, "hero_quiz_page_"))
		if err != nil {
			return c.Respond(&tele.CallbackResponse{})
		}
		if err := c.Edit(heroQuizMenuText, heroQuizKeyboard(page), tele.ModeMarkdown); err != nil {
			log.Printf("edit hero quiz page: %v", err)
		}
		return c.Respond(&tele.CallbackResponse{})

	case strings.HasPrefix(data, "hero_quiz_"):
		heroID, err := strconv.Atoi(strings.TrimPrefix(data, "hero_quiz_"))
		if err != nil {
			return c.Respond(&tele.CallbackResponse{})
		}
		return h.startHeroQuiz(c, heroID)

	case strings.HasPrefix(data, "hero_info_"):
		heroID, err := strconv.Atoi(strings.TrimPrefix(data, "hero_info_"))
		if err != nil {
			return c.Respond(&tele.CallbackResponse{})
		}
		return h.showHeroBio(c, heroID)
	}

	return c.Respond(&tele.CallbackResponse{})
}

func (h *Handler) showHeroBio(c tele.Context, heroID int) error {
	name, ok := content.HeroNames[heroID]
	if !ok {
		return c.Respond(&tele.CallbackResponse{Text: "Герой не найден"})
	}
	bio, ok := content.HeroBios[heroID]
	if !ok {
		bio = "Информация об этом герое готовится к публикации."
	}
	if err := c.Respond(&tele.CallbackResponse{}); err != nil {
		log.Printf("callback respond: %v", err)
	}

	text := fmt.Sprintf("💪 *%s*\n\n%s", name, bio)
	back := &tele.ReplyMarkup{InlineKeyboard: [][]tele.InlineButton{
		{{Text: "⬅️ К списку героев", Data: "heroes_page_0"}},
		{{Text: btnBackToMenu, Data: "main_menu"}},
	}}
	return c.Edit(text, back, tele.ModeMarkdown)
}

func (h *Handler) startHeroQuiz(c tele.Context, heroID int) error {
	chatID := c.Chat().ID
	name, ok := content.HeroNames[heroID]
	if !ok {
		return c.Respond(&tele.CallbackResponse{Text: "Герой не найден"})
	}

	session, err := h.service.StartHeroQuiz(h.ctx, chatID, heroID, name)
	if errors.Is(err, domain.ErrNoQuestions) {
		return c.Respond(&tele.CallbackResponse{Text: noHeroQuestionsText, ShowAlert: true})
	}
	if err != nil {
		log.Printf("start hero quiz %d for %d: %v", heroID, chatID, err)
		return c.Respond(&tele.CallbackResponse{Text: genericApologyText, ShowAlert: true})
	}
	if err := c.Respond(&tele.CallbackResponse{}); err != nil {
		log.Printf("callback respond: %v", err)
	}
	h.setState(chatID, stateHeroQuiz)

	intro := fmt.Sprintf("🎖️ *Викторина: %s*\n"+
		"• Вопросов: %d\n"+
		"• Можно проходить много раз\n"+
		"• Удачи! 🍀", name, session.Total)
	if err := c.Edit(intro, tele.ModeMarkdown); err != nil {
		log.Printf("edit hero quiz intro: %v", err)
	}
	h.sendAfter(2*time.Second, func() {
		h.deliverQuestion(chatID, session)
	})
	return nil
}
