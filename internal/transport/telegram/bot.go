// Package telegram is the dialogue surface of the bot: it renders menus
// and keyboards, routes free text and callback tokens, and drives the
// quiz engine. All quiz semantics live in internal/app; this package only
// translates between Telegram updates and engine calls.
package telegram

import (
	"context"
	"log"
	"sync"
	"time"

	"patriot-quiz-bot/internal/app"
	"patriot-quiz-bot/internal/assist"
	"patriot-quiz-bot/internal/config"
	"patriot-quiz-bot/internal/domain"
	tele "gopkg.in/telebot.v4"
)

// chatState tracks what the next free-text message from a chat means.
// Quiz-internal progress (metadata stage, cursor) lives in the session;
// this is only the outer menu position.
type chatState int

const (
	stateIdle chatState = iota
	stateChoosingMode
	stateChoosingHeroQuiz
	statePractice
	stateCompetitive
	stateHeroQuiz
	stateAssistant
	stateAwaitBroadcast
)

// Handler wires the Telegram bot to the application services.
type Handler struct {
	bot         *tele.Bot
	service     *app.QuizService
	broadcaster *app.Broadcaster
	registry    app.UserRegistry
	assistant   *assist.Assistant
	cfg         config.Config

	ctx context.Context

	mu     sync.Mutex
	states map[int64]chatState
}

// NewHandler builds the dialogue surface. The broadcaster is created
// here because the handler itself is the message sender it fans out
// through.
func NewHandler(bot *tele.Bot, service *app.QuizService, registry app.UserRegistry, assistant *assist.Assistant, cfg config.Config) *Handler {
	h := &Handler{
		bot:       bot,
		service:   service,
		registry:  registry,
		assistant: assistant,
		cfg:       cfg,
		ctx:       context.Background(),
		states:    make(map[int64]chatState),
	}
	pause := config.TTLDuration(cfg.Broadcast.Pause, 100*time.Millisecond)
	h.broadcaster = app.NewBroadcaster(registry, h, pause)
	return h
}

// Run registers all handlers and polls until ctx is cancelled.
func (h *Handler) Run(ctx context.Context) {
	h.ctx = ctx
	h.register()

	go func() {
		<-ctx.Done()
		h.bot.Stop()
	}()

	log.Printf("starting telegram long polling")
	h.bot.Start()
}

func (h *Handler) register() {
	// Unexpected panics in a single update become a generic apology; the
	// user's session state is left as-is.
	h.bot.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("recovered from handler panic: %v", r)
					_ = c.Send(genericApologyText)
				}
			}()
			return next(c)
		}
	})

	h.bot.Handle("/start", h.onStart)
	h.bot.Handle("/help", func(c tele.Context) error {
		return c.Send(helpText, tele.ModeMarkdown)
	})
	h.bot.Handle("/main_menu", func(c tele.Context) error {
		return h.showMainMenu(c)
	})
	h.bot.Handle("/leaders", h.onLeaderboard)
	h.bot.Handle(tele.OnText, h.onText)
	h.bot.Handle(tele.OnPhoto, h.onPhoto)
	h.bot.Handle(tele.OnCallback, h.onCallback)
}

func (h *Handler) state(chatID int64) chatState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.states[chatID]
}

func (h *Handler) setState(chatID int64, state chatState) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if state == stateIdle {
		delete(h.states, chatID)
		return
	}
	h.states[chatID] = state
}

func (h *Handler) onStart(c tele.Context) error {
	chatID := c.Chat().ID
	if err := h.registry.Register(h.ctx, chatID); err != nil {
		log.Printf("register chat %d: %v", chatID, err)
	}
	h.setState(chatID, stateIdle)

	if h.cfg.IsAdmin(chatID) {
		return c.Send("Вы находитесь в админ панели.", adminKeyboard())
	}
	return h.showMainMenu(c)
}

func (h *Handler) showMainMenu(c tele.Context) error {
	h.setState(c.Chat().ID, stateIdle)
	photo := &tele.Photo{
		File:    tele.FromURL(welcomePhotoURL),
		Caption: welcomeText,
	}
	return c.Send(photo, mainKeyboard())
}

// onText routes free text. Cancellation and in-flow states win over the
// menu labels so an answer option can never be mistaken for a menu tap.
func (h *Handler) onText(c tele.Context) error {
	chatID := c.Chat().ID
	text := c.Text()

	switch h.state(chatID) {
	case statePractice:
		return h.onQuizText(c, domain.KindPractice, text)
	case stateCompetitive:
		return h.onCompetitiveText(c, text)
	case stateHeroQuiz:
		return h.onQuizText(c, domain.KindHero, text)
	case stateAssistant:
		return h.onAssistantText(c, text)
	case stateAwaitBroadcast:
		return h.runBroadcast(c, text, "")
	case stateChoosingMode:
		switch text {
		case btnPractice:
			return h.startPractice(c)
		case btnCompetitive:
			return h.startCompetitive(c)
		case btnHeroQuizzes:
			return h.showHeroQuizMenu(c)
		case btnBackToMenu:
			return h.showMainMenu(c)
		}
	case stateChoosingHeroQuiz:
		if text == btnBackToMenu {
			return h.showMainMenu(c)
		}
	}

	switch text {
	case btnBackToMenu:
		return h.showMainMenu(c)
	case btnQuiz:
		return h.showQuizMenu(c)
	case btnHeroes:
		return h.showHeroBrowser(c)
	case btnLeaderboard:
		return h.onLeaderboard(c)
	case btnInfo:
		return c.Send(infoText, backKeyboard())
	case btnAssistant:
		h.setState(chatID, stateAssistant)
		return c.Send(assistantIntroText, backKeyboard())
	case btnAdminStats:
		return h.onAdminStats(c)
	case btnAdminBroadcast:
		return h.onAdminBroadcast(c)
	}

	return c.Send(unknownText, tele.ModeHTML)
}

func (h *Handler) onAssistantText(c tele.Context, text string) error {
	if text == btnBackToMenu {
		return h.showMainMenu(c)
	}
	if err := c.Notify(tele.Typing); err != nil {
		log.Printf("typing action: %v", err)
	}
	answer := h.assistant.Answer(h.ctx, text)
	return c.Send(answer, backKeyboard())
}

// sendAfter schedules a paced follow-up message without blocking the
// dispatcher; shutdown cancels pending reveals.
func (h *Handler) sendAfter(delay time.Duration, fn func()) {
	go func() {
		select {
		case <-time.After(delay):
			fn()
		case <-h.ctx.Done():
		}
	}()
}
