// Package config holds all application configuration, loaded from
// environment variables (with optional .env support for local runs).
package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/ranjananubhav7/algobot/internal/model"
	"github.com/ranjananubhav7/algobot/internal/strategy"
)

// Config holds all application configuration.
type Config struct {
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Instrument
	Symbol   string `envconfig:"SYMBOL" default:"BTCUSDT"`
	Interval string `envconfig:"INTERVAL" default:"1m"`

	// Infrastructure
	SQLitePath  string `envconfig:"SQLITE_PATH" default:"data/candles.db"`
	RedisAddr   string `envconfig:"REDIS_ADDR" default:""`
	RedisPass   string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB     int    `envconfig:"REDIS_DB" default:"0"`
	MetricsAddr string `envconfig:"METRICS_ADDR" default:":9090"`

	// Market feed: "ws" streams klines over WebSocket, "sim" generates a
	// random-walk series for offline runs.
	Feed      string `envconfig:"FEED" default:"ws"`
	WSBaseURL string `envconfig:"WS_BASE_URL" default:"wss://stream.binance.com:9443/ws"`

	// Trader
	MaxHistory int `envconfig:"MAX_HISTORY" default:"1000"`
	Precision  int `envconfig:"PRECISION" default:"2"`

	// Strategy parameters. Empty string disables the rule.
	StoicParams string `envconfig:"STOIC_PARAMS" default:"14,28,3"`
	ShrekParams string `envconfig:"SHREK_PARAMS" default:"35,14,5,65"`
	// Moving-average options: semicolon-separated kind:field:initial:final,
	// e.g. "sma:close:10:20;ema:close:9:21".
	MAOptions string `envconfig:"MA_OPTIONS" default:"sma:close:10:20"`

	// Notifications (optional)
	TelegramBotToken string `envconfig:"TELEGRAM_BOT_TOKEN" default:""`
	TelegramChatID   string `envconfig:"TELEGRAM_CHAT_ID" default:""`
	WebhookURL       string `envconfig:"WEBHOOK_URL" default:""`
}

// Load reads configuration from the environment. A missing .env file is not
// an error; production environments set variables directly.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("algobot", &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// ParseInts parses a comma-separated integer list such as "14,28,3".
func ParseInts(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("config: invalid integer %q in %q", p, s)
		}
		out = append(out, n)
	}
	return out, nil
}

// ParseMAOptions parses the MA_OPTIONS format into strategy options.
func ParseMAOptions(s string) ([]strategy.Option, error) {
	var opts []strategy.Option
	for _, spec := range strings.Split(s, ";") {
		spec = strings.TrimSpace(spec)
		if spec == "" {
			continue
		}
		fields := strings.Split(spec, ":")
		if len(fields) != 4 {
			return nil, fmt.Errorf("config: option %q must be kind:field:initial:final", spec)
		}
		initial, err := strconv.Atoi(strings.TrimSpace(fields[2]))
		if err != nil {
			return nil, fmt.Errorf("config: option %q: bad initial bound: %w", spec, err)
		}
		final, err := strconv.Atoi(strings.TrimSpace(fields[3]))
		if err != nil {
			return nil, fmt.Errorf("config: option %q: bad final bound: %w", spec, err)
		}
		opt := strategy.Option{
			Kind:         model.MAKind(strings.ToLower(strings.TrimSpace(fields[0]))),
			Field:        model.PriceField(strings.ToLower(strings.TrimSpace(fields[1]))),
			InitialBound: initial,
			FinalBound:   final,
		}
		if err := opt.Validate(); err != nil {
			return nil, fmt.Errorf("config: option %q: %w", spec, err)
		}
		opts = append(opts, opt)
	}
	return opts, nil
}

// BuildStrategies constructs the configured trend rules against the given
// indicator source. Invalid parameters fail startup, never an evaluation.
func (c *Config) BuildStrategies(src strategy.IndicatorSource) ([]strategy.Strategy, error) {
	var out []strategy.Strategy

	if c.StoicParams != "" {
		ints, err := ParseInts(c.StoicParams)
		if err != nil {
			return nil, err
		}
		if len(ints) != 3 {
			return nil, fmt.Errorf("config: STOIC_PARAMS needs 3 integers, got %d", len(ints))
		}
		st, err := strategy.NewStoic(src, ints[0], ints[1], ints[2], c.Precision)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}

	if c.ShrekParams != "" {
		ints, err := ParseInts(c.ShrekParams)
		if err != nil {
			return nil, err
		}
		if len(ints) != 4 {
			return nil, fmt.Errorf("config: SHREK_PARAMS needs 4 integers, got %d", len(ints))
		}
		sh, err := strategy.NewShrek(src, ints[0], ints[1], ints[2], ints[3], c.Precision)
		if err != nil {
			return nil, err
		}
		out = append(out, sh)
	}

	if c.MAOptions != "" {
		opts, err := ParseMAOptions(c.MAOptions)
		if err != nil {
			return nil, err
		}
		if len(opts) > 0 {
			ma, err := strategy.NewMovingAverage(src, opts)
			if err != nil {
				return nil, err
			}
			out = append(out, ma)
		}
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("config: no strategies configured")
	}
	return out, nil
}
