package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"patriot-quiz-bot/internal/domain"
	"github.com/jackc/pgx/v4/pgxpool"
)

// DefaultBankID is the row the bot reads its catalog from.
const DefaultBankID = "default"

// BankLoader loads the question-bank JSONB document from Postgres.
type BankLoader struct {
	pool   *pgxpool.Pool
	bankID string
}

func NewBankLoader(pool *pgxpool.Pool) *BankLoader {
	return &BankLoader{pool: pool, bankID: DefaultBankID}
}

func (l *BankLoader) LoadBank(ctx context.Context) (domain.Bank, error) {
	var raw []byte
	err := l.pool.QueryRow(ctx, `SELECT data FROM question_banks WHERE id=$1`, l.bankID).Scan(&raw)
	if err != nil {
		return domain.Bank{}, fmt.Errorf("load question bank: %w", err)
	}
	var bank domain.Bank
	if err := json.Unmarshal(raw, &bank); err != nil {
		return domain.Bank{}, fmt.Errorf("unmarshal question bank: %w", err)
	}
	return bank, nil
}
