package telegram

import (
	"fmt"
	"log"

	tele "gopkg.in/telebot.v4"
)

func (h *Handler) onAdminStats(c tele.Context) error {
	chatID := c.Chat().ID
	if !h.cfg.IsAdmin(chatID) {
		return c.Send(deniedText)
	}

	users, err := h.registry.ChatIDs(h.ctx)
	if err != nil {
		log.Printf("list registered chats: %v", err)
		return c.Send(genericApologyText)
	}
	stats, err := h.service.Statistics(h.ctx)
	if err != nil {
		log.Printf("load statistics: %v", err)
		return c.Send(genericApologyText)
	}

	text := fmt.Sprintf(
		"📊 *Статистика бота*\n\n"+
			"👥 Пользователей: %d\n"+
			"🏆 Участников соревновательного режима: %d\n"+
			"📈 Средний балл: %.1f\n"+
			"🥇 Лучший результат: %d",
		len(users), stats.Participants, stats.AverageScore, stats.BestScore)
	return c.Send(text, adminKeyboard(), tele.ModeMarkdown)
}

func (h *Handler) onAdminBroadcast(c tele.Context) error {
	chatID := c.Chat().ID
	if !h.cfg.IsAdmin(chatID) {
		return c.Send(deniedText)
	}
	h.setState(chatID, stateAwaitBroadcast)
	return c.Send(broadcastPromptText)
}

// onPhoto only matters while an admin composes a broadcast; any other
// photo is ignored.
func (h *Handler) onPhoto(c tele.Context) error {
	chatID := c.Chat().ID
	if h.state(chatID) != stateAwaitBroadcast {
		return nil
	}
	photo := c.Message().Photo
	if photo == nil {
		return c.Send(broadcastPromptText)
	}
	return h.runBroadcast(c, c.Message().Caption, photo.FileID)
}

// runBroadcast fans the message out in the background and reports the
// outcome to every admin when done.
func (h *Handler) runBroadcast(c tele.Context, text, photoID string) error {
	chatID := c.Chat().ID
	if !h.cfg.IsAdmin(chatID) {
		h.setState(chatID, stateIdle)
		return c.Send(deniedText)
	}
	h.setState(chatID, stateIdle)

	if err := c.Send("📣 Рассылка запущена.", adminKeyboard()); err != nil {
		log.Printf("ack broadcast: %v", err)
	}

	go func() {
		report, err := h.broadcaster.Broadcast(h.ctx, text, photoID)
		if err != nil {
			log.Printf("broadcast aborted: %v", err)
		}
		summary := report.Summary()
		for _, adminID := range h.cfg.Telegram.AdminIDs {
			if _, err := h.bot.Send(tele.ChatID(adminID), summary); err != nil {
				log.Printf("deliver broadcast report to %d: %v", adminID, err)
			}
		}
	}()
	return nil
}

// SendBroadcast implements app.MessageSender. A non-empty photoID turns
// the message into a photo with the text as caption.
func (h *Handler) SendBroadcast(chatID int64, text, photoID string) error {
	recipient := tele.ChatID(chatID)
	if photoID != "" {
		photo := &tele.Photo{
			File:    tele.File{FileID: photoID},
			Caption: text,
		}
		_, err := h.bot.Send(recipient, photo)
		return err
	}
	_, err := h.bot.Send(recipient, text)
	return err
}
