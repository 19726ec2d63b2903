package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"patriot-quiz-bot/internal/app"
	"patriot-quiz-bot/internal/assist"
	"patriot-quiz-bot/internal/config"
	"patriot-quiz-bot/internal/content"
	"patriot-quiz-bot/internal/infra/memory"
	pgbank "patriot-quiz-bot/internal/infra/postgres"
	redisinfra "patriot-quiz-bot/internal/infra/redis"
	"patriot-quiz-bot/internal/infra/sheets"
	"patriot-quiz-bot/internal/transport/telegram"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	tele "gopkg.in/telebot.v4"
)

// NewStartCmd builds the CLI subcommand to start the bot.
func NewStartCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the Telegram bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBot(cmd.Context(), *configPath)
		},
	}
}

func runBot(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.Sheets.SpreadsheetID == "" {
		return fmt.Errorf("sheets spreadsheet_id not configured")
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
	}

	var loader memory.BankLoader = memory.NewStaticBankLoader(content.DefaultBank())
	if pool != nil {
		loader = pgbank.NewBankLoader(pool)
	}
	bankTTL := config.TTLDuration(cfg.Bank.TTL, 10*time.Minute)
	bankRepo := memory.NewBankRepository(loader, bankTTL)

	sheetsTTL := config.TTLDuration(cfg.Sheets.CacheTTL, time.Minute)
	sheetSink, err := sheets.NewResultSink(ctx, cfg.Sheets.CredentialsFile, cfg.Sheets.SpreadsheetID, sheetsTTL)
	if err != nil {
		return fmt.Errorf("connect to sheets: %w", err)
	}

	var sink app.ResultSink = sheetSink
	var registry app.UserRegistry = memory.NewUserRegistry()
	if redisClient != nil {
		sink = redisinfra.NewCachedSink(redisClient, sheetSink)
		registry = redisinfra.NewUserRegistry(redisClient)
	}

	store := memory.NewSessionStore()
	service := app.NewQuizService(store, bankRepo, sink)

	kb := assist.NewKnowledge(assist.DefaultFacts)
	assistant := assist.NewAssistant(cfg.Assistant.BaseURL, cfg.Assistant.APIKey, cfg.Assistant.Model, kb)

	bot, err := tele.NewBot(tele.Settings{
		Token:  cfg.Telegram.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		return fmt.Errorf("create bot: %w", err)
	}

	handler := telegram.NewHandler(bot, service, registry, assistant, cfg)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-stop:
			log.Println("shutting down bot...")
		case <-runCtx.Done():
		}
		cancel()
	}()

	handler.Run(runCtx)
	return nil
}
