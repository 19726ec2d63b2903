package telegram

import (
	"fmt"

	"patriot-quiz-bot/internal/content"
	tele "gopkg.in/telebot.v4"
)

const heroesPerPage = 5

func mainKeyboard() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}
	menu.Reply(
		menu.Row(menu.Text(btnHeroes), menu.Text(btnQuiz)),
		menu.Row(menu.Text(btnAssistant)),
		menu.Row(menu.Text(btnLeaderboard), menu.Text(btnInfo)),
	)
	return menu
}

func adminKeyboard() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}
	menu.Reply(
		menu.Row(menu.Text(btnAdminStats)),
		menu.Row(menu.Text(btnAdminBroadcast)),
	)
	return menu
}

func modeKeyboard(canPlayCompetitive bool) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}
	rows := []tele.Row{
		menu.Row(menu.Text(btnHeroQuizzes)),
	}
	if canPlayCompetitive {
		rows = append(rows, menu.Row(menu.Text(btnCompetitive)))
	}
	rows = append(rows,
		menu.Row(menu.Text(btnPractice)),
		menu.Row(menu.Text(btnBackToMenu)),
	)
	menu.Reply(rows...)
	return menu
}

func cancelMetaKeyboard() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}
	menu.Reply(menu.Row(menu.Text(btnCancelMeta)))
	return menu
}

func backKeyboard() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}
	menu.Reply(menu.Row(menu.Text(btnBackToMenu)))
	return menu
}

// questionKeyboard spreads answer options over at most four rows, with
// the cancel button on its own final row.
func questionKeyboard(options []string) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}
	var rows []tele.Row

	if len(options) <= 4 {
		for _, option := range options {
			rows = append(rows, menu.Row(menu.Text(option)))
		}
	} else {
		perRow := len(options) / 4
		remainder := len(options) % 4
		index := 0
		for row := 0; row < 4 && index < len(options); row++ {
			count := perRow
			if row < remainder {
				count++
			}
			buttons := make([]tele.Btn, 0, count)
			for i := index; i < index+count && i < len(options); i++ {
				buttons = append(buttons, menu.Text(options[i]))
			}
			rows = append(rows, menu.Row(buttons...))
			index += count
		}
	}

	rows = append(rows, menu.Row(menu.Text(btnCancelQuiz)))
	menu.Reply(rows...)
	return menu
}

// pageBounds clamps page into range and returns the hero ID window for
// that page plus the total page count.
func pageBounds(page int) (clamped, first, last, totalPages int) {
	totalPages = (content.HeroCount + heroesPerPage - 1) / heroesPerPage
	if page < 0 {
		page = 0
	}
	if page >= totalPages {
		page = totalPages - 1
	}
	first = page*heroesPerPage + 1
	last = (page + 1) * heroesPerPage
	if last > content.HeroCount {
		last = content.HeroCount
	}
	return page, first, last, totalPages
}

// heroBrowserKeyboard paginates the hero roster for the information
// browser. Arrows appear only when more pages exist in that direction.
func heroBrowserKeyboard(page int) *tele.ReplyMarkup {
	return heroPages(page, "hero_info_%d", "heroes_page_%d", "heroes_current_page", "main_menu", "")
}

// heroQuizKeyboard paginates the hero roster for quiz selection.
func heroQuizKeyboard(page int) *tele.ReplyMarkup {
	return heroPages(page, "hero_quiz_%d", "hero_quiz_page_%d", "hero_quiz_current_page", "hero_quiz_back", "🎯 ")
}

func heroPages(page int, selectFmt, pageFmt, currentToken, backToken, prefix string) *tele.ReplyMarkup {
	page, first, last, totalPages := pageBounds(page)

	var keyboard [][]tele.InlineButton
	for heroID := first; heroID <= last; heroID++ {
		name, ok := content.HeroNames[heroID]
		if !ok {
			name = fmt.Sprintf("Герой №%d", heroID)
		}
		keyboard = append(keyboard, []tele.InlineButton{{
			Text: prefix + name,
			Data: fmt.Sprintf(selectFmt, heroID),
		}})
	}

	var nav []tele.InlineButton
	if page > 0 {
		nav = append(nav, tele.InlineButton{Text: "⬅️ Назад", Data: fmt.Sprintf(pageFmt, page-1)})
	}
	if totalPages > 1 {
		nav = append(nav, tele.InlineButton{
			Text: fmt.Sprintf("%d/%d", page+1, totalPages),
			Data: currentToken,
		})
	}
	if page < totalPages-1 {
		nav = append(nav, tele.InlineButton{Text: "Далее ➡️", Data: fmt.Sprintf(pageFmt, page+1)})
	}
	if len(nav) > 0 {
		keyboard = append(keyboard, nav)
	}

	keyboard = append(keyboard, []tele.InlineButton{{Text: btnBackToMenu, Data: backToken}})
	return &tele.ReplyMarkup{InlineKeyboard: keyboard}
}
