// Package store persists fetched price bars, so repeated scans within a
// day hit PostgreSQL instead of Yahoo.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/moriq/kabuscan/internal/contracts"
)

// BarRepository stores and loads daily price bars
// ⭐ SSOT: 株価バーの保存/読み出しはここだけ
type BarRepository struct {
	pool *pgxpool.Pool
}

// NewBarRepository creates a new bar repository
func NewBarRepository(pool *pgxpool.Pool) *BarRepository {
	return &BarRepository{pool: pool}
}

// InitSchema creates the bars table when it does not exist yet
func (r *BarRepository) InitSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS price_bars (
			code       TEXT        NOT NULL,
			trade_date DATE        NOT NULL,
			open       DOUBLE PRECISION NOT NULL,
			high       DOUBLE PRECISION NOT NULL,
			low        DOUBLE PRECISION NOT NULL,
			close      DOUBLE PRECISION NOT NULL,
			volume     BIGINT      NOT NULL,
			fetched_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (code, trade_date)
		)
	`
	if _, err := r.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create price_bars table: %w", err)
	}
	return nil
}

// SaveBars upserts a ticker's series. Re-fetching the same window just
// refreshes the rows, so the scheduler can run it daily without dedup.
func (r *BarRepository) SaveBars(ctx context.Context, code string, series contracts.PriceSeries) error {
	if series.Len() == 0 {
		return nil
	}

	query := `
		INSERT INTO price_bars (code, trade_date, open, high, low, close, volume)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (code, trade_date) DO UPDATE SET
			open = EXCLUDED.open,
			high = EXCLUDED.high,
			low = EXCLUDED.low,
			close = EXCLUDED.close,
			volume = EXCLUDED.volume,
			fetched_at = now()
	`

	batch := &pgx.Batch{}
	for _, b := range series {
		batch.Queue(query, code, b.Date, b.Open, b.High, b.Low, b.Close, b.Volume)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for range series {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to upsert bars for %s: %w", code, err)
		}
	}
	return nil
}

// LoadBars loads a ticker's bars since the given date, oldest first
func (r *BarRepository) LoadBars(ctx context.Context, code string, since time.Time) (contracts.PriceSeries, error) {
	query := `
		SELECT trade_date, open, high, low, close, volume
		FROM price_bars
		WHERE code = $1 AND trade_date >= $2
		ORDER BY trade_date
	`

	rows, err := r.pool.Query(ctx, query, code, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query bars for %s: %w", code, err)
	}
	defer rows.Close()

	var series contracts.PriceSeries
	for rows.Next() {
		var b contracts.PriceBar
		if err := rows.Scan(&b.Date, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume); err != nil {
			return nil, fmt.Errorf("failed to scan bar: %w", err)
		}
		series = append(series, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bars: %w", err)
	}

	return series, nil
}

// LatestDate returns the most recent stored trade date for a ticker,
// zero time when nothing is stored.
func (r *BarRepository) LatestDate(ctx context.Context, code string) (time.Time, error) {
	var latest *time.Time
	err := r.pool.QueryRow(ctx,
		`SELECT max(trade_date) FROM price_bars WHERE code = $1`, code).Scan(&latest)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to query latest date for %s: %w", code, err)
	}
	if latest == nil {
		return time.Time{}, nil
	}
	return *latest, nil
}
