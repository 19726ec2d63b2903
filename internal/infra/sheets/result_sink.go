// Package sheets persists competitive results to a Google spreadsheet.
// The sheet doubles as the leaderboard store and the one-attempt ledger.
package sheets

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"patriot-quiz-bot/internal/domain"
	"golang.org/x/sync/singleflight"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

const timestampLayout = "2006-01-02 15:04:05"

// ExpectedHeaders is the fixed column order of the results sheet.
var ExpectedHeaders = []string{
	"ID",
	"Timestamp",
	"Chat ID",
	"First Name",
	"Last Name",
	"Educational Institution",
	"Correct Answers",
	"Total Questions",
	"Percentage",
	"Grade",
}

// valuesAPI is the slice of the Sheets API the sink needs; narrowed for
// tests.
type valuesAPI interface {
	Get(ctx context.Context, readRange string) ([][]interface{}, error)
	Append(ctx context.Context, row []interface{}) error
	Clear(ctx context.Context) error
}

// ResultSink implements app.ResultSink on top of a spreadsheet. Reads go
// through a TTL cache with singleflight because every quiz-menu open
// triggers a completion check.
type ResultSink struct {
	values        valuesAPI
	spreadsheetID string
	ttl           time.Duration
	clock         func() time.Time
	sf            singleflight.Group

	mu        sync.RWMutex
	cache     []domain.CompetitiveResult
	expiresAt time.Time
}

// NewResultSink connects with a service account credentials file and
// repairs the header row if it is absent or mismatched. The repair
// clears prior data, matching how the sheet was originally managed.
func NewResultSink(ctx context.Context, credentialsFile, spreadsheetID string, ttl time.Duration) (*ResultSink, error) {
	svc, err := sheetsapi.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheetsapi.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	sink := newSinkWithValues(&googleValues{svc: svc, spreadsheetID: spreadsheetID}, spreadsheetID, ttl)
	if err := sink.EnsureHeaders(ctx); err != nil {
		return nil, err
	}
	return sink, nil
}

func newSinkWithValues(values valuesAPI, spreadsheetID string, ttl time.Duration) *ResultSink {
	return &ResultSink{
		values:        values,
		spreadsheetID: spreadsheetID,
		ttl:           ttl,
		clock:         time.Now,
	}
}

// EnsureHeaders rewrites the header row when the first row does not match
// ExpectedHeaders exactly. The rewrite clears the whole sheet first.
func (s *ResultSink) EnsureHeaders(ctx context.Context) error {
	rows, err := s.values.Get(ctx, "1:1")
	if err != nil {
		return fmt.Errorf("read header row: %w", err)
	}
	if len(rows) > 0 && headerMatches(rows[0]) {
		return nil
	}
	log.Printf("results sheet %s has no valid header row, rewriting (clears data)", s.spreadsheetID)
	if err := s.values.Clear(ctx); err != nil {
		return fmt.Errorf("clear sheet: %w", err)
	}
	header := make([]interface{}, len(ExpectedHeaders))
	for i, h := range ExpectedHeaders {
		header[i] = h
	}
	if err := s.values.Append(ctx, header); err != nil {
		return fmt.Errorf("write header row: %w", err)
	}
	s.invalidate()
	return nil
}

func headerMatches(row []interface{}) bool {
	if len(row) != len(ExpectedHeaders) {
		return false
	}
	for i, cell := range row {
		if fmt.Sprint(cell) != ExpectedHeaders[i] {
			return false
		}
	}
	return true
}

// HasCompleted reports whether a chat already has a persisted result.
func (s *ResultSink) HasCompleted(ctx context.Context, chatID int64) (bool, error) {
	results, err := s.records(ctx)
	if err != nil {
		return false, err
	}
	for _, result := range results {
		if result.ChatID == chatID {
			return true, nil
		}
	}
	return false, nil
}

// Save appends one result row. The ID column is the current record count
// plus one; concurrent saves may race on it, which is accepted — the
// column is informational, not a key.
func (s *ResultSink) Save(ctx context.Context, result domain.CompetitiveResult) error {
	results, err := s.records(ctx)
	if err != nil {
		return err
	}
	row := []interface{}{
		len(results) + 1,
		result.Timestamp.Format(timestampLayout),
		strconv.FormatInt(result.ChatID, 10),
		result.FirstName,
		result.LastName,
		result.Institution,
		result.Correct,
		result.Total,
		fmt.Sprintf("%.2f%%", result.Percentage),
		result.Grade,
	}
	if err := s.values.Append(ctx, row); err != nil {
		return fmt.Errorf("append result row: %w", err)
	}
	s.invalidate()
	log.Printf("competitive result saved for chat %d (%d/%d)", result.ChatID, result.Correct, result.Total)
	return nil
}

// AllResults returns every persisted result.
func (s *ResultSink) AllResults(ctx context.Context) ([]domain.CompetitiveResult, error) {
	return s.records(ctx)
}

// Statistics aggregates participants, average and best correct counts.
func (s *ResultSink) Statistics(ctx context.Context) (domain.Statistics, error) {
	results, err := s.records(ctx)
	if err != nil {
		return domain.Statistics{}, err
	}
	stats := domain.Statistics{Participants: len(results)}
	if len(results) == 0 {
		return stats, nil
	}
	total := 0
	for _, result := range results {
		total += result.Correct
		if result.Correct > stats.BestScore {
			stats.BestScore = result.Correct
		}
	}
	stats.AverageScore = float64(total) / float64(len(results))
	return stats, nil
}

func (s *ResultSink) records(ctx context.Context) ([]domain.CompetitiveResult, error) {
	now := s.clock()

	s.mu.RLock()
	if s.expiresAt.After(now) {
		cached := s.cache
		s.mu.RUnlock()
		return cached, nil
	}
	s.mu.RUnlock()

	result, err, _ := s.sf.Do("records", func() (interface{}, error) {
		now := s.clock()
		s.mu.RLock()
		if s.expiresAt.After(now) {
			cached := s.cache
			s.mu.RUnlock()
			return cached, nil
		}
		s.mu.RUnlock()

		rows, err := s.values.Get(ctx, "A2:J")
		if err != nil {
			return nil, fmt.Errorf("read result rows: %w", err)
		}
		results := parseRows(rows)

		s.mu.Lock()
		s.cache = results
		s.expiresAt = now.Add(s.ttl)
		s.mu.Unlock()
		return results, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.CompetitiveResult), nil
}

func (s *ResultSink) invalidate() {
	s.mu.Lock()
	s.expiresAt = time.Time{}
	s.mu.Unlock()
}

func parseRows(rows [][]interface{}) []domain.CompetitiveResult {
	results := make([]domain.CompetitiveResult, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		results = append(results, parseRow(row))
	}
	return results
}

func parseRow(row []interface{}) domain.CompetitiveResult {
	result := domain.CompetitiveResult{}
	result.ID, _ = strconv.Atoi(cell(row, 0))
	result.Timestamp, _ = time.Parse(timestampLayout, cell(row, 1))
	result.ChatID, _ = strconv.ParseInt(cell(row, 2), 10, 64)
	result.FirstName = cell(row, 3)
	result.LastName = cell(row, 4)
	result.Institution = cell(row, 5)
	result.Correct, _ = strconv.Atoi(cell(row, 6))
	result.Total, _ = strconv.Atoi(cell(row, 7))
	result.Percentage, _ = strconv.ParseFloat(strings.TrimSuffix(cell(row, 8), "%"), 64)
	result.Grade = cell(row, 9)
	return result
}

func cell(row []interface{}, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(row[i]))
}

// googleValues adapts the Sheets API values service to valuesAPI.
type googleValues struct {
	svc           *sheetsapi.Service
	spreadsheetID string
}

func (g *googleValues) Get(ctx context.Context, readRange string) ([][]interface{}, error) {
	resp, err := g.svc.Spreadsheets.Values.Get(g.spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}

func (g *googleValues) Append(ctx context.Context, row []interface{}) error {
	_, err := g.svc.Spreadsheets.Values.
		Append(g.spreadsheetID, "A1", &sheetsapi.ValueRange{Values: [][]interface{}{row}}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	return err
}

func (g *googleValues) Clear(ctx context.Context) error {
	_, err := g.svc.Spreadsheets.Values.
		Clear(g.spreadsheetID, "A:Z", &sheetsapi.ClearValuesRequest{}).
		Context(ctx).
		Do()
	return err
}
