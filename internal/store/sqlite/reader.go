package sqlite

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/ranjananubhav7/algobot/internal/model"

	_ "github.com/mattn/go-sqlite3"
)

// Reader provides read-only access to SQLite for backtests and warm starts.
type Reader struct {
	db *sql.DB
}

// NewReader opens a SQLite connection for reading.
func NewReader(dbPath string) (*Reader, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("sqlite open reader: %w", err)
	}
	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(2)

	log.Printf("[sqlite-reader] opened %s", dbPath)
	return &Reader{db: db}, nil
}

// ReadCandles reads candles for a symbol after the given Unix timestamp
// (0 = all), ordered by timestamp ascending for correct replay order.
func (r *Reader) ReadCandles(symbol string, afterTS int64) ([]model.Candle, error) {
	rows, err := r.db.Query(`
		SELECT symbol, ts, open, high, low, close, volume
		FROM candles
		WHERE symbol = ? AND ts > ?
		ORDER BY ts ASC
	`, symbol, afterTS)
	if err != nil {
		return nil, fmt.Errorf("sqlite query candles: %w", err)
	}
	defer rows.Close()

	var candles []model.Candle
	for rows.Next() {
		var c model.Candle
		var tsUnix int64
		if err := rows.Scan(&c.Symbol, &tsUnix, &c.Open, &c.High, &c.Low, &c.Close, &c.Volume); err != nil {
			return nil, fmt.Errorf("sqlite scan candle: %w", err)
		}
		c.TS = time.Unix(tsUnix, 0).UTC()
		candles = append(candles, c)
	}
	return candles, rows.Err()
}

// Close closes the reader.
func (r *Reader) Close() error {
	return r.db.Close()
}
