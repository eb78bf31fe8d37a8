package replay

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/ranjananubhav7/algobot/internal/model"
	sqlitestore "github.com/ranjananubhav7/algobot/internal/store/sqlite"
)

func seedDB(t *testing.T, candles []model.Candle) *sqlitestore.Reader {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "replay.db")

	w, err := sqlitestore.New(sqlitestore.WriterConfig{DBPath: dbPath})
	if err != nil {
		t.Fatalf("sqlite writer: %v", err)
	}
	if err := w.InsertBatch(candles); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	r, err := sqlitestore.NewReader(dbPath)
	if err != nil {
		t.Fatalf("sqlite reader: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func seedCandles(n int) []model.Candle {
	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]model.Candle, n)
	for i := range out {
		px := 100 + float64(i)
		out[i] = model.Candle{
			Symbol: "BTCUSDT",
			TS:     ts.Add(time.Duration(i) * time.Minute),
			Open:   px, High: px + 1, Low: px - 1, Close: px, Volume: 1,
		}
	}
	return out
}

func TestReplayer_EmitsInOrderAtFullSpeed(t *testing.T) {
	seeded := seedCandles(5)
	reader := seedDB(t, seeded)

	rp := New(reader)
	outCh := make(chan model.Candle, 10)
	if err := rp.Run(context.Background(), "BTCUSDT", 0, 0, outCh); err != nil {
		t.Fatalf("Run: %v", err)
	}
	close(outCh)

	var got []model.Candle
	for c := range outCh {
		got = append(got, c)
	}
	if len(got) != len(seeded) {
		t.Fatalf("replayed %d candles, want %d", len(got), len(seeded))
	}
	for i, c := range got {
		if !c.TS.Equal(seeded[i].TS) {
			t.Errorf("candle %d out of order: %s", i, c.TS)
		}
	}
}

func TestReplayer_FromTimestampFilter(t *testing.T) {
	seeded := seedCandles(5)
	reader := seedDB(t, seeded)

	rp := New(reader)
	outCh := make(chan model.Candle, 10)
	if err := rp.Run(context.Background(), "BTCUSDT", seeded[2].TS.Unix(), 0, outCh); err != nil {
		t.Fatalf("Run: %v", err)
	}
	close(outCh)

	var got []model.Candle
	for c := range outCh {
		got = append(got, c)
	}
	if len(got) != 2 {
		t.Fatalf("replayed %d candles, want 2 after the cutoff", len(got))
	}
	if !got[0].TS.Equal(seeded[3].TS) {
		t.Errorf("first replayed candle = %s, want %s", got[0].TS, seeded[3].TS)
	}
}

func TestReplayer_EmptyDatabaseIsNotAnError(t *testing.T) {
	reader := seedDB(t, seedCandles(1))

	rp := New(reader)
	outCh := make(chan model.Candle, 1)
	if err := rp.Run(context.Background(), "UNKNOWN", 0, 0, outCh); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(outCh) != 0 {
		t.Errorf("unexpected candles for unknown symbol")
	}
}
